package eval

import (
	"fmt"
	"sort"

	"github.com/bnielsen/wolframite/expr"
	"github.com/bnielsen/wolframite/pattern"
)

// RuleKind selects replacement semantics: Immediate rules evaluate their
// substituted right-hand side before returning it, Delayed rules leave
// re-evaluation to the caller.
type RuleKind int

const (
	// Immediate corresponds to Rule (->).
	Immediate RuleKind = iota
	// Delayed corresponds to RuleDelayed (:>).
	Delayed
)

// NativeRHS is a replacement computed in Go from the match bindings,
// instead of by substitution into a template expression.
type NativeRHS func(b *pattern.Bindings) expr.Element

// Rule is a rewrite rule: a left-hand pattern, a replacement (template
// expression or native callable), an optional condition and a priority.
// Higher priorities are tried first; definition order breaks ties.
type Rule struct {
	LHS       expr.Element
	RHS       expr.Element
	Native    NativeRHS
	Kind      RuleKind
	Condition expr.Element
	Priority  int
	seq       uint64 // insertion order, assigned by the owning context
}

// RuleOption configures a rule at construction.
type RuleOption func(*Rule)

// WithCondition attaches a condition; the rule applies only if the
// condition, with match bindings substituted in, evaluates to true.
func WithCondition(test expr.Element) RuleOption {
	return func(r *Rule) { r.Condition = test }
}

// WithPriority sets the rule priority (default 0).
func WithPriority(p int) RuleOption {
	return func(r *Rule) { r.Priority = p }
}

// AsImmediate marks the rule as Immediate (->).
func AsImmediate() RuleOption {
	return func(r *Rule) { r.Kind = Immediate }
}

// WithNative installs a native replacement callable.
func WithNative(fn NativeRHS) RuleOption {
	return func(r *Rule) { r.Native = fn }
}

// NewRule builds a rule. Definitions entered into a value store are
// Delayed by default, matching SetDelayed semantics; the evaluator
// re-evaluates every rewrite anyway.
func NewRule(lhs, rhs expr.Element, opts ...RuleOption) *Rule {
	r := &Rule{LHS: lhs, RHS: rhs, Kind: Delayed}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Rule) String() string {
	arrow := ":>"
	if r.Kind == Immediate {
		arrow = "->"
	}
	rhs := "<native>"
	if r.RHS != nil {
		rhs = r.RHS.String()
	}
	return fmt.Sprintf("%s %s %s", r.LHS, arrow, rhs)
}

// ApplyRule attempts one rule against el. On a match it checks the
// condition, substitutes the bindings into the replacement and, for
// Immediate rules, evaluates the substituted result. The boolean result
// reports whether the rule fired.
func (ev *Evaluator) ApplyRule(r *Rule, el expr.Element, ctx *Context) (expr.Element, bool, error) {
	m := ev.matcher(ctx)
	res := m.Match(r.LHS, el)
	if !res.OK {
		return el, false, nil
	}
	if r.Condition != nil {
		test := pattern.Substitute(r.Condition, res.Bindings)
		v, err := ev.Eval(test, ctx)
		if err != nil {
			return el, false, &EvaluationError{Op: "rule condition", Err: err}
		}
		if !pattern.IsTrue(v) {
			return el, false, nil
		}
	}
	var out expr.Element
	if r.Native != nil {
		out = r.Native(res.Bindings)
	} else {
		out = pattern.Substitute(r.RHS, res.Bindings)
	}
	if r.Kind == Immediate {
		v, err := ev.Eval(out, ctx)
		if err != nil {
			return el, false, &EvaluationError{Op: "immediate replacement", Err: err}
		}
		out = v
	}
	return out, true, nil
}

// TryRules tries rules in descending priority order (stable, so list
// order breaks ties) and returns the first successful rewrite, or el
// unchanged.
func (ev *Evaluator) TryRules(rules []*Rule, el expr.Element, ctx *Context) (expr.Element, bool, error) {
	ordered := make([]*Rule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority > ordered[j].Priority
	})
	for _, r := range ordered {
		out, matched, err := ev.ApplyRule(r, el, ctx)
		if err != nil {
			return el, false, err
		}
		if matched {
			return out, true, nil
		}
	}
	return el, false, nil
}

// TryRulesRepeatedly applies TryRules until a fixed point, bounded by
// maxIterations.
func (ev *Evaluator) TryRulesRepeatedly(rules []*Rule, el expr.Element, ctx *Context, maxIterations int) (expr.Element, error) {
	for i := 0; i < maxIterations; i++ {
		out, matched, err := ev.TryRules(rules, el, ctx)
		if err != nil {
			return el, err
		}
		if !matched || expr.Equal(out, el) {
			return out, nil
		}
		el = out
	}
	return el, nil
}
