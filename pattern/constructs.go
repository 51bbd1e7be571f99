package pattern

import (
	"github.com/bnielsen/wolframite/expr"
)

// Reserved heads of the structural pattern constructs.
var (
	PatternHead      = expr.Reserve("Pattern")
	ConditionHead    = expr.Reserve("Condition")
	AlternativesHead = expr.Reserve("Alternatives")
	PatternTestHead  = expr.Reserve("PatternTest")
	OptionalHead     = expr.Reserve("Optional")
	RepeatedHead     = expr.Reserve("Repeated")
	RepeatedNullHead = expr.Reserve("RepeatedNull")
	ExceptHead       = expr.Reserve("Except")
	VerbatimHead     = expr.Reserve("Verbatim")
	HoldPatternHead  = expr.Reserve("HoldPattern")
)

// Named returns Pattern[name, inner]: match inner, then bind name to the
// matched element. Without an explicit inner pattern it defaults to
// Blank[].
func Named(name *expr.Symbol, inner ...expr.Element) *expr.Expr {
	if len(inner) == 0 {
		return expr.New(PatternHead, name, Blank())
	}
	return expr.New(PatternHead, name, inner[0])
}

// Condition returns Condition[pat, test]: pat must match and test, with
// the match's bindings substituted in, must evaluate to logical true.
func Condition(pat, test expr.Element) *expr.Expr {
	return expr.New(ConditionHead, pat, test)
}

// Alternatives returns Alternatives[p1, ..., pn]; the first alternative
// that matches wins. Fewer than two alternatives is a construction error.
func Alternatives(pats ...expr.Element) *expr.Expr {
	if len(pats) < 2 {
		panic("pattern: Alternatives requires at least 2 patterns")
	}
	return expr.New(AlternativesHead, pats...)
}

// Test returns PatternTest[pat, f]: pat must match and f applied to the
// matched element must evaluate to logical true.
func Test(pat, f expr.Element) *expr.Expr {
	return expr.New(PatternTestHead, pat, f)
}

// Optional returns Optional[pat] or Optional[pat, default]. Optional is
// consumed by argument-list matching: when the corresponding argument is
// absent, the default (explicit, or the enclosing head's DefaultValues
// entry) is matched instead.
func Optional(pat expr.Element, deflt ...expr.Element) *expr.Expr {
	if len(deflt) == 0 {
		return expr.New(OptionalHead, pat)
	}
	return expr.New(OptionalHead, pat, deflt[0])
}

// Repeated returns Repeated[pat], matching one or more consecutive
// elements which each match pat.
func Repeated(pat expr.Element) *expr.Expr {
	return expr.New(RepeatedHead, pat)
}

// RepeatedNull returns RepeatedNull[pat], matching zero or more
// consecutive elements which each match pat.
func RepeatedNull(pat expr.Element) *expr.Expr {
	return expr.New(RepeatedNullHead, pat)
}

// Except returns Except[excl] or Except[excl, alt]: match anything excl
// does not match (and, in the two-argument form, that alt does match).
func Except(excl expr.Element, alt ...expr.Element) *expr.Expr {
	if len(alt) == 0 {
		return expr.New(ExceptHead, excl)
	}
	return expr.New(ExceptHead, excl, alt[0])
}

// Verbatim returns Verbatim[x]: match only an element structurally equal
// to x, ignoring any pattern semantics x would otherwise carry.
func Verbatim(x expr.Element) *expr.Expr {
	return expr.New(VerbatimHead, x)
}

// HoldPattern returns HoldPattern[p]: transparent to matching, but the
// evaluator leaves p unevaluated before it is used as a pattern.
func HoldPattern(p expr.Element) *expr.Expr {
	return expr.New(HoldPatternHead, p)
}

// --- Predicates and accessors ----------------------------------------------

// IsNamed reports whether el is a Pattern[name, inner] construct.
func IsNamed(el expr.Element) bool {
	return expr.IsExprWithHead(el, PatternHead)
}

// IsCondition reports whether el is a Condition construct.
func IsCondition(el expr.Element) bool {
	return expr.IsExprWithHead(el, ConditionHead)
}

// IsAlternatives reports whether el is an Alternatives construct.
func IsAlternatives(el expr.Element) bool {
	return expr.IsExprWithHead(el, AlternativesHead)
}

// IsTest reports whether el is a PatternTest construct.
func IsTest(el expr.Element) bool {
	return expr.IsExprWithHead(el, PatternTestHead)
}

// IsOptional reports whether el is an Optional construct.
func IsOptional(el expr.Element) bool {
	return expr.IsExprWithHead(el, OptionalHead)
}

// IsRepeated reports whether el is Repeated[pat].
func IsRepeated(el expr.Element) bool {
	return expr.IsExprWithHead(el, RepeatedHead)
}

// IsRepeatedNull reports whether el is RepeatedNull[pat].
func IsRepeatedNull(el expr.Element) bool {
	return expr.IsExprWithHead(el, RepeatedNullHead)
}

// IsExcept reports whether el is an Except construct.
func IsExcept(el expr.Element) bool {
	return expr.IsExprWithHead(el, ExceptHead)
}

// IsVerbatim reports whether el is a Verbatim construct.
func IsVerbatim(el expr.Element) bool {
	return expr.IsExprWithHead(el, VerbatimHead)
}

// IsHoldPattern reports whether el is a HoldPattern construct.
func IsHoldPattern(el expr.Element) bool {
	return expr.IsExprWithHead(el, HoldPatternHead)
}

// namedParts splits Pattern[name, inner] into its components. The inner
// pattern may be nil for a malformed construct.
func namedParts(pat *expr.Expr) (*expr.Symbol, expr.Element) {
	var name *expr.Symbol
	var inner expr.Element
	if pat.Len() >= 1 {
		name, _ = pat.At(0).(*expr.Symbol)
	}
	if pat.Len() >= 2 {
		inner = pat.At(1)
	}
	return name, inner
}

// isNamedOf reports whether el is Pattern[name, inner] with inner
// satisfying pred, and returns the parts.
func isNamedOf(el expr.Element, pred func(expr.Element) bool) (*expr.Symbol, *expr.Expr, bool) {
	if !IsNamed(el) {
		return nil, nil, false
	}
	name, inner := namedParts(el.(*expr.Expr))
	ie, ok := inner.(*expr.Expr)
	if name == nil || !ok || !pred(inner) {
		return nil, nil, false
	}
	return name, ie, true
}
