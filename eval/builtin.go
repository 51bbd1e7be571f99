package eval

import (
	"fmt"
	"sync"

	"github.com/bnielsen/wolframite/expr"
)

// Builtin is a function implemented in Go. Builtins are the last
// rewrite authority the evaluator consults, after all user rules.
// Returning the original expression (or any value Equal to it) means
// "no rewrite"; returning an error means the arguments are outside the
// builtin's domain and the expression stays unevaluated.
type Builtin interface {
	Name() string
	Attributes() *expr.AttrSet
	Apply(ev *Evaluator, ctx *Context, e *expr.Expr) (expr.Element, error)
}

// BuiltinFunc adapts a plain function to the Builtin interface.
type BuiltinFunc func(ev *Evaluator, ctx *Context, e *expr.Expr) (expr.Element, error)

type funcBuiltin struct {
	name  string
	attrs *expr.AttrSet
	fn    BuiltinFunc
}

func (b *funcBuiltin) Name() string               { return b.name }
func (b *funcBuiltin) Attributes() *expr.AttrSet  { return b.attrs }
func (b *funcBuiltin) Apply(ev *Evaluator, ctx *Context, e *expr.Expr) (expr.Element, error) {
	return b.fn(ev, ctx, e)
}

// NewBuiltin wraps fn as a Builtin with the given name and attributes.
// attrs may be nil; Attributes then reports the empty set.
func NewBuiltin(name string, attrs *expr.AttrSet, fn BuiltinFunc) Builtin {
	if name == "" {
		panic("eval: builtin with empty name")
	}
	if fn == nil {
		panic(fmt.Sprintf("eval: builtin %s with nil function", name))
	}
	if attrs == nil {
		attrs = expr.EmptyAttrSet()
	}
	return &funcBuiltin{name: name, attrs: attrs, fn: fn}
}

// Registry maps symbol names to builtins. Registries chain like
// contexts do, so tests can shadow or extend a shared base set.
type Registry struct {
	mu     sync.RWMutex
	parent *Registry
	m      map[string]Builtin
}

// NewRegistry creates an empty registry, optionally chained to parent.
func NewRegistry(parent *Registry) *Registry {
	return &Registry{parent: parent, m: make(map[string]Builtin)}
}

// Register enters b under its name, replacing any previous local
// entry.
func (r *Registry) Register(b Builtin) {
	r.mu.Lock()
	r.m[b.Name()] = b
	r.mu.Unlock()
}

// Lookup finds a builtin for sym, consulting the parent chain.
func (r *Registry) Lookup(sym *expr.Symbol) (Builtin, bool) {
	r.mu.RLock()
	b, ok := r.m[sym.Name()]
	r.mu.RUnlock()
	if ok {
		return b, true
	}
	if r.parent != nil {
		return r.parent.Lookup(sym)
	}
	return nil, false
}

// Names returns the locally registered builtin names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.m))
	for name := range r.m {
		out = append(out, name)
	}
	return out
}

// Reset drops all local registrations. The parent chain is untouched.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.m = make(map[string]Builtin)
	r.mu.Unlock()
}
