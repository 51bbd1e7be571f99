package pattern

import (
	"github.com/bnielsen/wolframite/expr"
)

// MatchResult is the outcome of a match attempt. Mismatch is an expected,
// high-frequency outcome during backtracking, so it is a value, never an
// error.
type MatchResult struct {
	OK       bool
	Bindings *Bindings
}

// NoMatch is the failed-match value.
var NoMatch = MatchResult{Bindings: emptyBindings}

func succeed(b *Bindings) MatchResult {
	return MatchResult{OK: true, Bindings: b}
}

// EvalFunc evaluates an element; the matcher uses it for Condition tests
// and PatternTest applications.
type EvalFunc func(expr.Element) expr.Element

// AttrsFunc resolves the effective attribute set of an expression (the
// head's context attributes united with local ones). Without a resolver
// the matcher falls back to local attributes only.
type AttrsFunc func(e *expr.Expr) *expr.AttrSet

// DefaultFunc resolves the DefaultValues entry of a head symbol, for
// Optional patterns without an explicit default.
type DefaultFunc func(head *expr.Symbol) (expr.Element, bool)

// Matcher is a recursive, backtracking pattern/expression unifier. The
// zero Matcher is usable: conditions and tests then pass vacuously and
// only local attributes are consulted.
type Matcher struct {
	Eval      EvalFunc
	Attrs     AttrsFunc
	DefaultOf DefaultFunc
}

// Match unifies pat with el using a zero Matcher.
func Match(pat, el expr.Element) MatchResult {
	return (&Matcher{}).Match(pat, el)
}

// Match unifies pat with el starting from empty bindings.
func (m *Matcher) Match(pat, el expr.Element) MatchResult {
	return m.MatchWith(pat, el, emptyBindings)
}

// MatchWith unifies pat with el, extending the given bindings. Pattern
// shapes are checked in fixed priority order: HoldPattern, Verbatim,
// Blank, Pattern, Condition, Alternatives, PatternTest, Except, literal
// atom/symbol equality, and finally compound head-and-arguments
// matching.
func (m *Matcher) MatchWith(pat, el expr.Element, b *Bindings) MatchResult {
	if b == nil {
		b = emptyBindings
	}
	switch {
	case IsHoldPattern(pat):
		hp := pat.(*expr.Expr)
		if hp.Len() < 1 {
			return NoMatch
		}
		return m.MatchWith(hp.At(0), el, b)

	case IsVerbatim(pat):
		v := pat.(*expr.Expr)
		if v.Len() < 1 {
			return NoMatch
		}
		if expr.Equal(v.At(0), el) {
			return succeed(b)
		}
		return NoMatch

	case IsAnyBlank(pat):
		// Outside an argument list a sequence blank degenerates to a
		// plain blank and matches the single element.
		if blankMatches(pat.(*expr.Expr), el) {
			return succeed(b)
		}
		return NoMatch

	case IsNamed(pat):
		name, inner := namedParts(pat.(*expr.Expr))
		if inner != nil {
			r := m.MatchWith(inner, el, b)
			if !r.OK {
				return NoMatch
			}
			b = r.Bindings
		}
		if name != nil {
			nb, err := b.Bind(name, el)
			if err != nil {
				return NoMatch
			}
			b = nb
		}
		return succeed(b)

	case IsCondition(pat):
		c := pat.(*expr.Expr)
		if c.Len() < 2 {
			return NoMatch
		}
		r := m.MatchWith(c.At(0), el, b)
		if !r.OK {
			return NoMatch
		}
		if !m.testHolds(Substitute(c.At(1), r.Bindings)) {
			return NoMatch
		}
		return r

	case IsAlternatives(pat):
		for _, alt := range pat.(*expr.Expr).Tail() {
			if r := m.MatchWith(alt, el, b); r.OK {
				return r
			}
		}
		return NoMatch

	case IsTest(pat):
		t := pat.(*expr.Expr)
		if t.Len() < 2 {
			return NoMatch
		}
		r := m.MatchWith(t.At(0), el, b)
		if !r.OK {
			return NoMatch
		}
		if !m.testHolds(expr.New(t.At(1), el)) {
			return NoMatch
		}
		return r

	case IsExcept(pat):
		x := pat.(*expr.Expr)
		if x.Len() < 1 {
			return NoMatch
		}
		if r := m.MatchWith(x.At(0), el, b); r.OK {
			return NoMatch
		}
		if x.Len() >= 2 {
			return m.MatchWith(x.At(1), el, b)
		}
		return succeed(b)
	}

	pe, ok := pat.(*expr.Expr)
	if !ok {
		// Symbols and atoms match by literal equality.
		if expr.Equal(pat, el) {
			return succeed(b)
		}
		return NoMatch
	}
	ee, ok := el.(*expr.Expr)
	if !ok {
		return NoMatch
	}
	r := m.MatchWith(pe.Head(), ee.Head(), b)
	if !r.OK {
		return NoMatch
	}
	attrs := m.effectiveAttrs(ee)
	ctx := seqCtx{
		head:      ee.Head(),
		flat:      attrs.Contains(expr.Flat),
		orderless: attrs.Contains(expr.Orderless),
	}
	return m.matchSeq(ctx, pe.Tail(), ee.Tail(), r.Bindings)
}

// MatchSeq matches a list of patterns against a list of elements, the
// way argument lists are matched inside a compound expression. The flat
// and orderless flags stand in for the enclosing head's structural
// attributes.
func (m *Matcher) MatchSeq(pats, els []expr.Element, b *Bindings, flat, orderless bool) MatchResult {
	if b == nil {
		b = emptyBindings
	}
	return m.matchSeq(seqCtx{flat: flat, orderless: orderless}, pats, els, b)
}

type seqCtx struct {
	head      expr.Element // enclosing head, nil when unknown
	flat      bool
	orderless bool
}

func (m *Matcher) matchSeq(ctx seqCtx, pats, els []expr.Element, b *Bindings) MatchResult {
	if len(pats) == 0 {
		if len(els) == 0 {
			return succeed(b)
		}
		return NoMatch
	}
	pat := pats[0]
	rest := pats[1:]

	if name, blank, ok := asSeqBlank(pat); ok {
		// Try ascending run lengths; the first length for which the
		// entire remaining match succeeds wins (leftmost-shortest).
		max := len(els) - len(rest)
		for n := seqBlankMin(blank); n <= max; n++ {
			run := els[:n]
			if !runSatisfies(blank, run) {
				continue
			}
			nb := b
			if name != nil {
				var err error
				if nb, err = b.Bind(name, expr.NewSequence(run...)); err != nil {
					continue
				}
			}
			if r := m.matchSeq(ctx, rest, els[n:], nb); r.OK {
				return r
			}
		}
		return NoMatch
	}

	if name, rep, ok := asRepeated(pat); ok {
		return m.matchRepeated(ctx, name, rep, rest, els, b)
	}

	if IsOptional(pat) {
		return m.matchOptional(ctx, pat.(*expr.Expr), rest, els, b)
	}

	if ctx.flat && ctx.head != nil && !ctx.orderless {
		if _, _, ok := asPlainBlank(pat); ok {
			// Under a Flat head a blank may also match a run of
			// arguments, re-wrapped in the head: x_ against f[a, b]
			// can bind x to f[a, b]. Single elements first.
			max := len(els) - len(rest)
			for n := 1; n <= max; n++ {
				candidate := els[0]
				if n > 1 {
					candidate = expr.New(ctx.head, els[:n]...)
				}
				r := m.MatchWith(pat, candidate, b)
				if !r.OK {
					continue
				}
				if rr := m.matchSeq(ctx, rest, els[n:], r.Bindings); rr.OK {
					return rr
				}
			}
			return NoMatch
		}
	}

	if ctx.orderless {
		// Commutative matching: try the first pattern against every
		// remaining element, backtracking into a different choice when
		// the rest of the pattern list fails.
		for i := range els {
			r := m.MatchWith(pat, els[i], b)
			if !r.OK {
				continue
			}
			if rr := m.matchSeq(ctx, rest, without(els, i), r.Bindings); rr.OK {
				return rr
			}
			tracer().Debugf("orderless: retracting match of %s against %s", pat, els[i])
		}
		return NoMatch
	}

	if len(els) == 0 {
		return NoMatch
	}
	r := m.MatchWith(pat, els[0], b)
	if !r.OK {
		return NoMatch
	}
	return m.matchSeq(ctx, rest, els[1:], r.Bindings)
}

// matchRepeated consumes a run of consecutive elements which each match
// the inner pattern of Repeated/RepeatedNull, shortest run first.
func (m *Matcher) matchRepeated(ctx seqCtx, name *expr.Symbol, rep *expr.Expr, rest, els []expr.Element, b *Bindings) MatchResult {
	if rep.Len() < 1 {
		return NoMatch
	}
	inner := rep.At(0)
	min := 1
	if rep.Head() == RepeatedNullHead {
		min = 0
	}
	max := len(els) - len(rest)
	if max < 0 {
		return NoMatch
	}
	// Bindings accumulated element by element; a failing prefix rules
	// out every longer run.
	runBindings := make([]*Bindings, 1, max+1)
	runBindings[0] = b
	for n := 0; n <= max; n++ {
		if n > 0 {
			r := m.MatchWith(inner, els[n-1], runBindings[n-1])
			if !r.OK {
				break
			}
			runBindings = append(runBindings, r.Bindings)
		}
		if n < min {
			continue
		}
		nb := runBindings[n]
		if name != nil {
			var err error
			if nb, err = nb.Bind(name, expr.NewSequence(els[:n]...)); err != nil {
				continue
			}
		}
		if r := m.matchSeq(ctx, rest, els[n:], nb); r.OK {
			return r
		}
	}
	return NoMatch
}

// matchOptional first tries to consume one element; if the whole
// remaining match fails that way, the argument counts as absent and the
// default is matched in place.
func (m *Matcher) matchOptional(ctx seqCtx, opt *expr.Expr, rest, els []expr.Element, b *Bindings) MatchResult {
	if opt.Len() < 1 {
		return NoMatch
	}
	inner := opt.At(0)
	if len(els) > 0 {
		if r := m.MatchWith(inner, els[0], b); r.OK {
			if rr := m.matchSeq(ctx, rest, els[1:], r.Bindings); rr.OK {
				return rr
			}
		}
	}
	deflt, ok := m.optionalDefault(opt, ctx.head)
	if !ok {
		return NoMatch
	}
	r := m.MatchWith(inner, deflt, b)
	if !r.OK {
		return NoMatch
	}
	return m.matchSeq(ctx, rest, els, r.Bindings)
}

func (m *Matcher) optionalDefault(opt *expr.Expr, head expr.Element) (expr.Element, bool) {
	if opt.Len() >= 2 {
		return opt.At(1), true
	}
	sym, ok := head.(*expr.Symbol)
	if !ok || m.DefaultOf == nil {
		return nil, false
	}
	return m.DefaultOf(sym)
}

// --- Helpers ---------------------------------------------------------------

// testHolds evaluates a test expression and checks for logical truth.
// Without an evaluator wired in, tests pass vacuously.
func (m *Matcher) testHolds(test expr.Element) bool {
	if m.Eval == nil {
		return true
	}
	return IsTrue(m.Eval(test))
}

// IsTrue reports logical truth: the boolean atom True or the symbol True.
func IsTrue(el expr.Element) bool {
	if v, ok := el.(expr.Bool); ok {
		return bool(v)
	}
	return el == expr.TrueSym
}

func (m *Matcher) effectiveAttrs(e *expr.Expr) *expr.AttrSet {
	if m.Attrs != nil {
		return m.Attrs(e)
	}
	return e.Attrs()
}

// asPlainBlank recognizes a single-element blank, bare or named.
func asPlainBlank(pat expr.Element) (*expr.Symbol, *expr.Expr, bool) {
	if IsBlank(pat) {
		return nil, pat.(*expr.Expr), true
	}
	return isNamedOf(pat, IsBlank)
}

// asSeqBlank recognizes a bare sequence blank or Pattern[name, seqblank].
func asSeqBlank(pat expr.Element) (*expr.Symbol, *expr.Expr, bool) {
	if IsSeqBlank(pat) {
		return nil, pat.(*expr.Expr), true
	}
	return isNamedOf(pat, IsSeqBlank)
}

// asRepeated recognizes Repeated/RepeatedNull, bare or named.
func asRepeated(pat expr.Element) (*expr.Symbol, *expr.Expr, bool) {
	if IsRepeated(pat) || IsRepeatedNull(pat) {
		return nil, pat.(*expr.Expr), true
	}
	return isNamedOf(pat, func(el expr.Element) bool {
		return IsRepeated(el) || IsRepeatedNull(el)
	})
}

func runSatisfies(blank *expr.Expr, run []expr.Element) bool {
	for _, e := range run {
		if !blankMatches(blank, e) {
			return false
		}
	}
	return true
}

func without(els []expr.Element, i int) []expr.Element {
	remaining := make([]expr.Element, 0, len(els)-1)
	remaining = append(remaining, els[:i]...)
	remaining = append(remaining, els[i+1:]...)
	return remaining
}
