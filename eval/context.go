package eval

import (
	"fmt"
	"sync"

	"github.com/emirpasic/gods/lists/arraylist"

	"github.com/bnielsen/wolframite/expr"
	"github.com/bnielsen/wolframite/pattern"
)

// ValueKind names one of the per-symbol definition stores.
type ValueKind int

const (
	OwnValues ValueKind = iota
	DownValues
	UpValues
	SubValues
	NValues
	FormatValues
)

func (k ValueKind) String() string {
	switch k {
	case OwnValues:
		return "OwnValues"
	case DownValues:
		return "DownValues"
	case UpValues:
		return "UpValues"
	case SubValues:
		return "SubValues"
	case NValues:
		return "NValues"
	case FormatValues:
		return "FormatValues"
	}
	return fmt.Sprintf("ValueKind(%d)", int(k))
}

// ruleKinds is the number of ValueKind stores per symbol.
const ruleKinds = int(FormatValues) + 1

// symbolValues holds everything a context knows about one symbol.
type symbolValues struct {
	rules  [ruleKinds]*arraylist.List // of *Rule
	deflt  expr.Element               // DefaultValues entry, nil if unset
	sorted [ruleKinds]bool
}

// Context is a scope holding attributes and definitions for symbols.
// Contexts chain: lookups that miss locally continue in the parent,
// while definitions always land in the receiver. A child context can
// therefore shadow global definitions without mutating them.
type Context struct {
	name   string
	parent *Context

	mu     sync.RWMutex
	attrs  map[*expr.Symbol]*expr.AttrSet
	values map[*expr.Symbol]*symbolValues
	seq    uint64
}

// NewContext creates a root context.
func NewContext(name string) *Context {
	return &Context{
		name:   name,
		attrs:  make(map[*expr.Symbol]*expr.AttrSet),
		values: make(map[*expr.Symbol]*symbolValues),
	}
}

// NewChild creates a context chained to ctx.
func (ctx *Context) NewChild(name string) *Context {
	child := NewContext(name)
	child.parent = ctx
	return child
}

// Name returns the context's name.
func (ctx *Context) Name() string { return ctx.name }

// Parent returns the enclosing context, or nil for a root context.
func (ctx *Context) Parent() *Context { return ctx.parent }

func (ctx *Context) String() string {
	if ctx.parent != nil {
		return ctx.parent.String() + "`" + ctx.name
	}
	return ctx.name
}

// --- Attributes -----------------------------------------------------------

// SetAttributes adds attributes to sym in this context. Locked symbols
// reject attribute changes.
func (ctx *Context) SetAttributes(sym *expr.Symbol, attrs ...*expr.Symbol) error {
	for _, a := range attrs {
		if !expr.IsAttribute(a) {
			return fmt.Errorf("%s is not an attribute", a.Name())
		}
	}
	if ctx.AttributesOf(sym).Contains(expr.Locked) {
		return fmt.Errorf("attributes of %s are locked", sym.Name())
	}
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	cur := ctx.attrs[sym]
	ctx.attrs[sym] = cur.Add(attrs...)
	return nil
}

// ClearAttributes removes attributes from sym in this context.
func (ctx *Context) ClearAttributes(sym *expr.Symbol, attrs ...*expr.Symbol) error {
	if ctx.AttributesOf(sym).Contains(expr.Locked) {
		return fmt.Errorf("attributes of %s are locked", sym.Name())
	}
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	if cur, ok := ctx.attrs[sym]; ok {
		ctx.attrs[sym] = cur.Remove(attrs...)
	}
	return nil
}

// AttributesOf returns the attributes of sym, consulting the parent
// chain. Local attributes union with inherited ones.
func (ctx *Context) AttributesOf(sym *expr.Symbol) *expr.AttrSet {
	var inherited *expr.AttrSet
	if ctx.parent != nil {
		inherited = ctx.parent.AttributesOf(sym)
	}
	ctx.mu.RLock()
	local := ctx.attrs[sym]
	ctx.mu.RUnlock()
	return inherited.Union(local)
}

// EffectiveAttrs combines the context attributes of e's head symbol
// with e's own local attributes. Non-symbol heads contribute no
// context attributes.
func (ctx *Context) EffectiveAttrs(e *expr.Expr) *expr.AttrSet {
	var fromHead *expr.AttrSet
	if sym, ok := e.Head().(*expr.Symbol); ok {
		fromHead = ctx.AttributesOf(sym)
	}
	return fromHead.Union(e.Attrs())
}

// --- Definitions ----------------------------------------------------------

func (ctx *Context) valuesFor(sym *expr.Symbol) *symbolValues {
	sv, ok := ctx.values[sym]
	if !ok {
		sv = &symbolValues{}
		ctx.values[sym] = sv
	}
	return sv
}

func (ctx *Context) guardProtected(sym *expr.Symbol) error {
	if ctx.AttributesOf(sym).Contains(expr.Protected) {
		return fmt.Errorf("symbol %s is protected", sym.Name())
	}
	return nil
}

// AddRule enters a rule into one of sym's value stores. Protected
// symbols reject new definitions.
func (ctx *Context) AddRule(kind ValueKind, sym *expr.Symbol, r *Rule) error {
	if err := ctx.guardProtected(sym); err != nil {
		return err
	}
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	sv := ctx.valuesFor(sym)
	if sv.rules[kind] == nil {
		sv.rules[kind] = arraylist.New()
	}
	ctx.seq++
	r.seq = ctx.seq
	sv.rules[kind].Add(r)
	sv.sorted[kind] = false
	return nil
}

// Rules returns sym's definitions of the given kind, highest priority
// first with definition order breaking ties. A context that has local
// entries shadows its parent; otherwise the lookup chains up.
func (ctx *Context) Rules(kind ValueKind, sym *expr.Symbol) []*Rule {
	ctx.mu.Lock()
	sv, ok := ctx.values[sym]
	if ok && sv.rules[kind] != nil && sv.rules[kind].Size() > 0 {
		list := sv.rules[kind]
		if !sv.sorted[kind] {
			list.Sort(ruleComparator)
			sv.sorted[kind] = true
		}
		out := make([]*Rule, 0, list.Size())
		it := list.Iterator()
		for it.Next() {
			out = append(out, it.Value().(*Rule))
		}
		ctx.mu.Unlock()
		return out
	}
	ctx.mu.Unlock()
	if ctx.parent != nil {
		return ctx.parent.Rules(kind, sym)
	}
	return nil
}

// ruleComparator orders rules by descending priority, then by
// insertion sequence.
func ruleComparator(a, b interface{}) int {
	ra, rb := a.(*Rule), b.(*Rule)
	if ra.Priority != rb.Priority {
		if ra.Priority > rb.Priority {
			return -1
		}
		return 1
	}
	if ra.seq < rb.seq {
		return -1
	}
	if ra.seq > rb.seq {
		return 1
	}
	return 0
}

// ClearValues drops all local definitions and the default value of sym.
// Attributes stay. Protected symbols cannot be cleared.
func (ctx *Context) ClearValues(sym *expr.Symbol) error {
	if err := ctx.guardProtected(sym); err != nil {
		return err
	}
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	delete(ctx.values, sym)
	return nil
}

// --- Default values -------------------------------------------------------

// SetDefault records the DefaultValues entry of sym, used by Optional
// patterns without an explicit default.
func (ctx *Context) SetDefault(sym *expr.Symbol, value expr.Element) error {
	if err := ctx.guardProtected(sym); err != nil {
		return err
	}
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	ctx.valuesFor(sym).deflt = value
	return nil
}

// DefaultValue returns sym's default, chaining to the parent. The
// boolean result reports whether a default is set.
func (ctx *Context) DefaultValue(sym *expr.Symbol) (expr.Element, bool) {
	ctx.mu.RLock()
	sv, ok := ctx.values[sym]
	if ok && sv.deflt != nil {
		v := sv.deflt
		ctx.mu.RUnlock()
		return v, true
	}
	ctx.mu.RUnlock()
	if ctx.parent != nil {
		return ctx.parent.DefaultValue(sym)
	}
	return nil, false
}

// --- Definition conveniences ----------------------------------------------

// DefineOwn gives sym an own value: sym rewrites to rhs.
func (ctx *Context) DefineOwn(sym *expr.Symbol, rhs expr.Element, opts ...RuleOption) error {
	return ctx.AddRule(OwnValues, sym, NewRule(sym, rhs, opts...))
}

// DefineDown enters a downvalue rule for the head symbol of lhs.
func (ctx *Context) DefineDown(sym *expr.Symbol, lhs, rhs expr.Element, opts ...RuleOption) error {
	return ctx.AddRule(DownValues, sym, NewRule(lhs, rhs, opts...))
}

// DefineUp enters an upvalue rule, keyed by a symbol occurring in
// lhs's arguments rather than its head.
func (ctx *Context) DefineUp(sym *expr.Symbol, lhs, rhs expr.Element, opts ...RuleOption) error {
	return ctx.AddRule(UpValues, sym, NewRule(lhs, rhs, opts...))
}

// DefineSub enters a subvalue rule for curried forms f[...][...].
func (ctx *Context) DefineSub(sym *expr.Symbol, lhs, rhs expr.Element, opts ...RuleOption) error {
	return ctx.AddRule(SubValues, sym, NewRule(lhs, rhs, opts...))
}

// DefineN enters a numeric-approximation rule, consulted only in
// numeric evaluation mode.
func (ctx *Context) DefineN(sym *expr.Symbol, lhs, rhs expr.Element, opts ...RuleOption) error {
	return ctx.AddRule(NValues, sym, NewRule(lhs, rhs, opts...))
}

// DefineFormat enters a display rule, applied by formatting only,
// never by evaluation.
func (ctx *Context) DefineFormat(sym *expr.Symbol, lhs, rhs expr.Element, opts ...RuleOption) error {
	return ctx.AddRule(FormatValues, sym, NewRule(lhs, rhs, opts...))
}

// keyedSymbol extracts the dispatch symbol for a value kind from an
// expression about to be rewritten: the head symbol for down values,
// the inner head symbol for sub values.
func keyedSymbol(kind ValueKind, e *expr.Expr) (*expr.Symbol, bool) {
	switch kind {
	case SubValues:
		inner, ok := e.Head().(*expr.Expr)
		if !ok {
			return nil, false
		}
		sym, ok := inner.Head().(*expr.Symbol)
		return sym, ok
	default:
		sym, ok := e.Head().(*expr.Symbol)
		return sym, ok
	}
}

// patternMatcherDefaults wires a context into the matcher's Optional
// handling.
func (ctx *Context) defaultFunc() pattern.DefaultFunc {
	return func(head *expr.Symbol) (expr.Element, bool) {
		if head == nil {
			return nil, false
		}
		return ctx.DefaultValue(head)
	}
}
