package eval

import (
	"github.com/bnielsen/wolframite/expr"
	"github.com/bnielsen/wolframite/pattern"
)

// Evaluation ceilings. Recursion counts nested eval calls within one
// top-level evaluation; iteration counts rewrite/re-evaluate rounds.
const (
	DefaultRecursionLimit = 256
	DefaultIterationLimit = 1000
)

// Evaluator drives expressions to their fixed point under the rules
// and builtins visible in a context. Evaluators are stateless between
// calls; per-call state (depth, iteration count, numeric mode) lives
// on the stack.
type Evaluator struct {
	registry       *Registry
	recursionLimit int
	iterationLimit int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithRegistry installs the builtin registry consulted at the end of
// rule dispatch.
func WithRegistry(r *Registry) Option {
	return func(ev *Evaluator) { ev.registry = r }
}

// WithRecursionLimit overrides the nesting ceiling.
func WithRecursionLimit(n int) Option {
	return func(ev *Evaluator) { ev.recursionLimit = n }
}

// WithIterationLimit overrides the rewrite-round ceiling.
func WithIterationLimit(n int) Option {
	return func(ev *Evaluator) { ev.iterationLimit = n }
}

// NewEvaluator creates an evaluator with default limits and an empty
// registry unless options say otherwise.
func NewEvaluator(opts ...Option) *Evaluator {
	ev := &Evaluator{
		recursionLimit: DefaultRecursionLimit,
		iterationLimit: DefaultIterationLimit,
	}
	for _, opt := range opts {
		opt(ev)
	}
	if ev.registry == nil {
		ev.registry = NewRegistry(nil)
	}
	return ev
}

// Registry returns the evaluator's builtin registry.
func (ev *Evaluator) Registry() *Registry { return ev.registry }

// evalState is the per-top-level-call bookkeeping. The iteration
// counter is shared across the whole call so a ping-ponging pair of
// rules cannot evade the ceiling by alternating subterms.
type evalState struct {
	depth      int
	iterations int
	numeric    bool
}

// Eval evaluates el to a fixed point in ctx. Limit violations abort
// the whole call and return the error; the partial result is el
// itself.
func (ev *Evaluator) Eval(el expr.Element, ctx *Context) (expr.Element, error) {
	st := &evalState{}
	out, err := ev.eval(el, ctx, st)
	if err != nil {
		return el, err
	}
	return out, nil
}

// EvalNumeric evaluates like Eval but additionally consults NValues
// definitions during rule dispatch.
func (ev *Evaluator) EvalNumeric(el expr.Element, ctx *Context) (expr.Element, error) {
	st := &evalState{numeric: true}
	out, err := ev.eval(el, ctx, st)
	if err != nil {
		return el, err
	}
	return out, nil
}

func (ev *Evaluator) eval(el expr.Element, ctx *Context, st *evalState) (expr.Element, error) {
	st.depth++
	defer func() { st.depth-- }()
	if st.depth > ev.recursionLimit {
		return el, &RecursionLimitError{Limit: ev.recursionLimit}
	}

	switch t := el.(type) {
	case expr.Int, expr.Real, expr.Cmplx, expr.Str, expr.Bool, expr.Null:
		return el, nil
	case *expr.Symbol:
		return ev.evalSymbol(t, ctx, st)
	case *expr.Expr:
		return ev.evalExpr(t, ctx, st)
	}
	return el, nil
}

// evalSymbol resolves own values. A symbol with no own value is its
// own fixed point.
func (ev *Evaluator) evalSymbol(sym *expr.Symbol, ctx *Context, st *evalState) (expr.Element, error) {
	rules := ctx.Rules(OwnValues, sym)
	if len(rules) == 0 {
		return sym, nil
	}
	out, matched, err := ev.TryRules(rules, sym, ctx)
	if err != nil {
		return sym, err
	}
	if !matched || expr.Equal(out, sym) {
		return sym, nil
	}
	if err := st.spin(ev); err != nil {
		return sym, err
	}
	return ev.eval(out, ctx, st)
}

// spin accounts one rewrite round against the iteration ceiling.
func (st *evalState) spin(ev *Evaluator) error {
	st.iterations++
	if st.iterations > ev.iterationLimit {
		return &IterationLimitError{Limit: ev.iterationLimit}
	}
	return nil
}

// evalExpr runs one expression through the standard evaluation
// procedure, looping whenever a rewrite fires until a fixed point.
func (ev *Evaluator) evalExpr(e *expr.Expr, ctx *Context, st *evalState) (expr.Element, error) {
	cur := expr.Element(e)
	for {
		ce, ok := cur.(*expr.Expr)
		if !ok {
			// a rewrite produced an atom or symbol
			return ev.eval(cur, ctx, st)
		}
		out, err := ev.evalOnce(ce, ctx, st)
		if err != nil {
			return cur, err
		}
		if expr.Equal(out, cur) {
			return out, nil
		}
		if err := st.spin(ev); err != nil {
			return cur, err
		}
		cur = out
	}
}

// evalOnce performs a single pass of the standard procedure: head,
// attributes, arguments, structural normalization, then rule dispatch.
func (ev *Evaluator) evalOnce(e *expr.Expr, ctx *Context, st *evalState) (expr.Element, error) {
	tracer().Debugf("eval %s", e)

	// Head first, unless the raw head is HoldAllComplete.
	head := e.Head()
	if !ev.holdsCompletely(head, ctx) {
		h, err := ev.eval(head, ctx, st)
		if err != nil {
			return e, err
		}
		if !expr.Equal(h, head) {
			e = e.WithHead(h)
		}
	}

	attrs := ctx.EffectiveAttrs(e)

	// Arguments, honoring the hold attributes.
	if !expr.HoldsCompletely(attrs) {
		out, err := ev.evalArgs(e, attrs, ctx, st)
		if err != nil {
			return e, err
		}
		e = out
	}

	// Sequence splicing. HoldAllComplete implies sequence holding.
	if !attrs.Contains(expr.SequenceHold) && !expr.HoldsCompletely(attrs) {
		e = SpliceSequences(e)
	}

	if attrs.Contains(expr.Flat) {
		e = FlattenSame(e)
	}
	if attrs.Contains(expr.Orderless) {
		e = SortOrderless(e)
	}
	if attrs.Contains(expr.Listable) {
		if threaded, ok := ThreadListable(e); ok {
			return threaded, nil
		}
	}

	out, err := ev.dispatch(e, attrs, ctx, st)
	if err != nil || !expr.Equal(out, e) {
		return out, err
	}
	// OneIdentity collapses a single-argument form only after no rule
	// and no builtin has claimed the expression.
	if attrs.Contains(expr.OneIdentity) && e.Len() == 1 {
		return CollapseOneIdentity(e), nil
	}
	return out, nil
}

// evalArgs evaluates e's arguments except those shielded by hold
// attributes.
func (ev *Evaluator) evalArgs(e *expr.Expr, attrs *expr.AttrSet, ctx *Context, st *evalState) (*expr.Expr, error) {
	holdFirst := expr.HoldsFirst(attrs)
	holdRest := expr.HoldsRest(attrs)
	nHoldFirst := st.numeric && attrs.ContainsAny(expr.NHoldFirst, expr.NHoldAll)
	nHoldRest := st.numeric && attrs.ContainsAny(expr.NHoldRest, expr.NHoldAll)
	tail := e.Tail()
	var out []expr.Element
	for i, a := range tail {
		if (i == 0 && holdFirst) || (i > 0 && holdRest) {
			continue
		}
		// NHold shields an argument from numeric mode, not from
		// evaluation.
		wasNumeric := st.numeric
		if (i == 0 && nHoldFirst) || (i > 0 && nHoldRest) {
			st.numeric = false
		}
		v, err := ev.eval(a, ctx, st)
		st.numeric = wasNumeric
		if err != nil {
			return e, err
		}
		if expr.Equal(v, a) {
			continue
		}
		if out == nil {
			out = make([]expr.Element, len(tail))
			copy(out, tail)
		}
		out[i] = v
	}
	if out == nil {
		return e, nil
	}
	return e.WithTail(out...), nil
}

// dispatch consults the rule stores in fixed order: upvalues of the
// arguments, downvalues (or subvalues for curried heads), numeric
// values in numeric mode, then the builtin registry. The first firing
// rule wins; re-evaluation of its result is the caller's loop.
func (ev *Evaluator) dispatch(e *expr.Expr, attrs *expr.AttrSet, ctx *Context, st *evalState) (expr.Element, error) {
	// Upvalues: keyed by the symbols of the top-level arguments.
	// HoldAllComplete shields the arguments from upvalue dispatch too.
	var upKeys []expr.Element
	if !expr.HoldsCompletely(attrs) {
		upKeys = e.Tail()
	}
	seen := make(map[*expr.Symbol]bool)
	for _, a := range upKeys {
		sym := upKey(a)
		if sym == nil || seen[sym] {
			continue
		}
		seen[sym] = true
		rules := ctx.Rules(UpValues, sym)
		if len(rules) == 0 {
			continue
		}
		out, matched, err := ev.TryRules(rules, e, ctx)
		if err != nil {
			return e, err
		}
		if matched {
			return out, nil
		}
	}

	// Downvalues for symbol heads, subvalues for curried heads.
	kind := DownValues
	if _, ok := e.Head().(*expr.Expr); ok {
		kind = SubValues
	}
	if sym, ok := keyedSymbol(kind, e); ok {
		out, matched, err := ev.TryRules(ctx.Rules(kind, sym), e, ctx)
		if err != nil {
			return e, err
		}
		if matched {
			return out, nil
		}

		if st.numeric {
			out, matched, err := ev.TryRules(ctx.Rules(NValues, sym), e, ctx)
			if err != nil {
				return e, err
			}
			if matched {
				return out, nil
			}
		}

		if b, ok := ev.registry.Lookup(sym); ok {
			out, err := b.Apply(ev, ctx, e)
			if err != nil {
				// Out-of-domain arguments degrade to the
				// unevaluated form.
				tracer().Debugf("builtin %s declined: %v", sym.Name(), err)
				return e, nil
			}
			if out != nil {
				return out, nil
			}
		}
	}

	return e, nil
}

// upKey extracts the symbol an argument contributes to upvalue
// dispatch: the symbol itself, or the head symbol of a compound
// argument.
func upKey(a expr.Element) *expr.Symbol {
	switch t := a.(type) {
	case *expr.Symbol:
		return t
	case *expr.Expr:
		if sym, ok := t.Head().(*expr.Symbol); ok {
			return sym
		}
	}
	return nil
}

// holdsCompletely checks the raw head for HoldAllComplete before the
// head itself is evaluated.
func (ev *Evaluator) holdsCompletely(head expr.Element, ctx *Context) bool {
	sym, ok := head.(*expr.Symbol)
	if !ok {
		return false
	}
	return ctx.AttributesOf(sym).Contains(expr.HoldAllComplete)
}

// matcher builds a pattern matcher wired to this evaluator and
// context: conditions and tests evaluate through Eval, attributes and
// defaults resolve through the context.
func (ev *Evaluator) matcher(ctx *Context) *pattern.Matcher {
	return &pattern.Matcher{
		Eval: func(el expr.Element) expr.Element {
			v, err := ev.Eval(el, ctx)
			if err != nil {
				return el
			}
			return v
		},
		Attrs: func(e *expr.Expr) *expr.AttrSet {
			return ctx.EffectiveAttrs(e)
		},
		DefaultOf: ctx.defaultFunc(),
	}
}

// Matcher exposes the context-wired matcher for callers doing their
// own matching, for example ReplaceAll-style helpers.
func (ev *Evaluator) Matcher(ctx *Context) *pattern.Matcher {
	return ev.matcher(ctx)
}
