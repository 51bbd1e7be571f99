package wolframite

import (
	"fmt"

	"github.com/bnielsen/wolframite/eval"
	"github.com/bnielsen/wolframite/expr"
	"github.com/bnielsen/wolframite/pattern"
)

// Kernel bundles a global context, a builtin registry and an evaluator
// into one entry point. A fresh kernel comes with the standard builtin
// vocabulary (Plus, Times, Power, List, Hold, predicates and friends)
// already registered and their attributes set.
type Kernel struct {
	global   *eval.Context
	registry *eval.Registry
	ev       *eval.Evaluator
}

// NewKernel creates a kernel with standard builtins installed.
// Evaluator options (limits, a shared registry) pass through.
func NewKernel(opts ...eval.Option) *Kernel {
	k := &Kernel{
		global:   eval.NewContext("Global"),
		registry: eval.NewRegistry(nil),
	}
	all := append([]eval.Option{eval.WithRegistry(k.registry)}, opts...)
	k.ev = eval.NewEvaluator(all...)
	k.registry = k.ev.Registry()
	installStandard(k)
	return k
}

// Context returns the kernel's global context.
func (k *Kernel) Context() *eval.Context { return k.global }

// Evaluator returns the kernel's evaluator.
func (k *Kernel) Evaluator() *eval.Evaluator { return k.ev }

// Registry returns the kernel's builtin registry.
func (k *Kernel) Registry() *eval.Registry { return k.registry }

// Eval evaluates el in the global context.
func (k *Kernel) Eval(el expr.Element) (expr.Element, error) {
	return k.ev.Eval(el, k.global)
}

// EvalNumeric evaluates el with NValues definitions in effect.
func (k *Kernel) EvalNumeric(el expr.Element) (expr.Element, error) {
	return k.ev.EvalNumeric(el, k.global)
}

// Define enters a definition, choosing the value store from the shape
// of lhs: a symbol gets an own value, f[...] a downvalue for f, and
// f[...][...] a subvalue for f.
func (k *Kernel) Define(lhs, rhs expr.Element, opts ...eval.RuleOption) error {
	switch t := lhs.(type) {
	case *expr.Symbol:
		return k.global.DefineOwn(t, rhs, opts...)
	case *expr.Expr:
		switch h := t.Head().(type) {
		case *expr.Symbol:
			return k.global.DefineDown(h, lhs, rhs, opts...)
		case *expr.Expr:
			sym, ok := h.Head().(*expr.Symbol)
			if !ok {
				return fmt.Errorf("cannot attach definition to head %s", h)
			}
			return k.global.DefineSub(sym, lhs, rhs, opts...)
		}
	}
	return fmt.Errorf("cannot attach definition to %s", lhs)
}

// DefineUp enters an upvalue definition for sym.
func (k *Kernel) DefineUp(sym *expr.Symbol, lhs, rhs expr.Element, opts ...eval.RuleOption) error {
	return k.global.DefineUp(sym, lhs, rhs, opts...)
}

// SetAttributes sets attributes on sym in the global context.
func (k *Kernel) SetAttributes(sym *expr.Symbol, attrs ...*expr.Symbol) error {
	return k.global.SetAttributes(sym, attrs...)
}

// SetDefault records sym's DefaultValues entry.
func (k *Kernel) SetDefault(sym *expr.Symbol, value expr.Element) error {
	return k.global.SetDefault(sym, value)
}

// formatRounds bounds the FormatValues fixed-point loop per node.
const formatRounds = 64

// Format renders el for display: FormatValues rules are applied
// bottom-up to a fixed point, then the result is printed. Evaluation
// never sees these rules.
func (k *Kernel) Format(el expr.Element) string {
	return k.applyFormats(el).String()
}

func (k *Kernel) applyFormats(el expr.Element) expr.Element {
	e, ok := el.(*expr.Expr)
	if !ok {
		return k.formatNode(el)
	}
	e = e.MapTail(k.applyFormats)
	return k.formatNode(e)
}

func (k *Kernel) formatNode(el expr.Element) expr.Element {
	for i := 0; i < formatRounds; i++ {
		sym := formatKey(el)
		if sym == nil {
			return el
		}
		rules := k.global.Rules(eval.FormatValues, sym)
		if len(rules) == 0 {
			return el
		}
		out, matched, err := k.ev.TryRules(rules, el, k.global)
		if err != nil || !matched || expr.Equal(out, el) {
			return el
		}
		el = out
	}
	tracer().Errorf("format rules for %s do not terminate", el)
	return el
}

func formatKey(el expr.Element) *expr.Symbol {
	switch t := el.(type) {
	case *expr.Symbol:
		return t
	case *expr.Expr:
		if sym, ok := t.Head().(*expr.Symbol); ok {
			return sym
		}
	}
	return nil
}

// ReplaceAll rewrites el by applying the first matching rule at every
// subexpression, outermost first, without evaluating the result.
func (k *Kernel) ReplaceAll(el expr.Element, rules ...*eval.Rule) (expr.Element, error) {
	return k.replaceAll(el, rules)
}

func (k *Kernel) replaceAll(el expr.Element, rules []*eval.Rule) (expr.Element, error) {
	for _, r := range rules {
		out, matched, err := k.ev.ApplyRule(r, el, k.global)
		if err != nil {
			return el, err
		}
		if matched {
			return out, nil
		}
	}
	e, ok := el.(*expr.Expr)
	if !ok {
		return el, nil
	}
	head, err := k.replaceAll(e.Head(), rules)
	if err != nil {
		return el, err
	}
	changed := head != e.Head()
	tail := make([]expr.Element, e.Len())
	for i, a := range e.Tail() {
		v, err := k.replaceAll(a, rules)
		if err != nil {
			return el, err
		}
		if v != a {
			changed = true
		}
		tail[i] = v
	}
	if !changed {
		return el, nil
	}
	return expr.NewWithAttrs(head, e.Attrs(), tail...), nil
}

// FindAll returns every subexpression of el matching pat, with the
// bindings of each match.
func (k *Kernel) FindAll(pat, el expr.Element) []pattern.Found {
	return k.ev.Matcher(k.global).FindAll(pat, el)
}

// Count returns the number of subexpressions of el matching pat.
func (k *Kernel) Count(pat, el expr.Element) int {
	return k.ev.Matcher(k.global).Count(pat, el)
}
