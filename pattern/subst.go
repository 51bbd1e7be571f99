package pattern

import (
	"github.com/bnielsen/wolframite/expr"
)

// Substitute replaces every bound pattern variable in el by its value,
// recursively, and splices any resulting Sequence[...] argument into the
// enclosing argument list (a sequence-bound variable used as an argument
// expands in place rather than nesting).
//
// Substitution is a pure tree transform: it never evaluates and never
// dispatches rules. When nothing is bound inside el, el itself is
// returned.
func Substitute(el expr.Element, b *Bindings) expr.Element {
	if b == nil || b.Len() == 0 {
		return el
	}
	return substitute(el, b)
}

func substitute(el expr.Element, b *Bindings) expr.Element {
	switch e := el.(type) {
	case *expr.Symbol:
		if v, ok := b.Get(e); ok {
			return v
		}
		return el
	case *expr.Expr:
		head := substitute(e.Head(), b)
		tail := make([]expr.Element, 0, e.Len())
		changed := !expr.Equal(head, e.Head())
		for _, arg := range e.Tail() {
			sub := substitute(arg, b)
			if seq, ok := sub.(*expr.Expr); ok && seq.Head() == expr.SequenceHead {
				tail = append(tail, seq.Tail()...)
				changed = true
				continue
			}
			if sub != arg {
				changed = true
			}
			tail = append(tail, sub)
		}
		if !changed {
			return el
		}
		return expr.NewWithAttrs(head, e.Attrs(), tail...)
	default:
		return el
	}
}

// Found is one subtree match: the matching subexpression and the
// bindings the match produced.
type Found struct {
	Expr     expr.Element
	Bindings *Bindings
}

// FindAll walks el top-down and collects every subexpression matching
// pat, the element itself included.
func (m *Matcher) FindAll(pat, el expr.Element) []Found {
	var found []Found
	m.find(pat, el, &found)
	return found
}

// Count returns the number of subexpressions of el matching pat.
func (m *Matcher) Count(pat, el expr.Element) int {
	return len(m.FindAll(pat, el))
}

func (m *Matcher) find(pat, el expr.Element, acc *[]Found) {
	if r := m.Match(pat, el); r.OK {
		*acc = append(*acc, Found{Expr: el, Bindings: r.Bindings})
	}
	if e, ok := el.(*expr.Expr); ok {
		for _, arg := range e.Tail() {
			m.find(pat, arg, acc)
		}
	}
}
