package eval

import (
	"sort"

	"github.com/bnielsen/wolframite/expr"
)

// Structural transforms applied by the standard evaluation procedure.
// All of them are pure: the input expression is never mutated, and the
// input pointer is returned unchanged when no transform applies.

// SpliceSequences splices the arguments of any top-level Sequence[...]
// argument into the surrounding argument list. One level only; nested
// sequences inside spliced arguments stay put until their own
// evaluation.
func SpliceSequences(e *expr.Expr) *expr.Expr {
	changed := false
	for _, a := range e.Tail() {
		if expr.IsExprWithHead(a, expr.SequenceHead) {
			changed = true
			break
		}
	}
	if !changed {
		return e
	}
	out := make([]expr.Element, 0, e.Len())
	for _, a := range e.Tail() {
		if seq, ok := a.(*expr.Expr); ok && expr.Equal(seq.Head(), expr.SequenceHead) {
			out = append(out, seq.Tail()...)
			continue
		}
		out = append(out, a)
	}
	return e.WithTail(out...)
}

// FlattenSame flattens arguments whose head equals e's head into e's
// argument list, recursively, for Flat heads. f[a, f[b, f[c]], d]
// becomes f[a, b, c, d].
func FlattenSame(e *expr.Expr) *expr.Expr {
	head := e.Head()
	nested := false
	for _, a := range e.Tail() {
		if sub, ok := a.(*expr.Expr); ok && expr.Equal(sub.Head(), head) {
			nested = true
			break
		}
	}
	if !nested {
		return e
	}
	out := make([]expr.Element, 0, e.Len())
	var walk func(args []expr.Element)
	walk = func(args []expr.Element) {
		for _, a := range args {
			if sub, ok := a.(*expr.Expr); ok && expr.Equal(sub.Head(), head) {
				walk(sub.Tail())
				continue
			}
			out = append(out, a)
		}
	}
	walk(e.Tail())
	return e.WithTail(out...)
}

// SortOrderless puts e's arguments into canonical order. Returns e
// itself when the tail is already sorted.
func SortOrderless(e *expr.Expr) *expr.Expr {
	tail := e.Tail()
	if sort.SliceIsSorted(tail, func(i, j int) bool {
		return expr.Order(tail[i], tail[j]) < 0
	}) {
		return e
	}
	out := make([]expr.Element, len(tail))
	copy(out, tail)
	sort.SliceStable(out, func(i, j int) bool {
		return expr.Order(out[i], out[j]) < 0
	})
	return e.WithTail(out...)
}

// ThreadListable threads a Listable head over List arguments:
// f[{a, b}, c] becomes {f[a, c], f[b, c]}. All List arguments must
// have the same length; otherwise the expression is returned
// un-threaded. The boolean result reports whether threading happened.
func ThreadListable(e *expr.Expr) (*expr.Expr, bool) {
	n := -1
	for _, a := range e.Tail() {
		if lst, ok := a.(*expr.Expr); ok && expr.Equal(lst.Head(), expr.ListHead) {
			if n < 0 {
				n = lst.Len()
			} else if lst.Len() != n {
				return e, false
			}
		}
	}
	if n < 0 {
		return e, false
	}
	items := make([]expr.Element, n)
	for i := 0; i < n; i++ {
		args := make([]expr.Element, e.Len())
		for j, a := range e.Tail() {
			if lst, ok := a.(*expr.Expr); ok && expr.Equal(lst.Head(), expr.ListHead) {
				args[j] = lst.At(i)
			} else {
				args[j] = a
			}
		}
		items[i] = expr.New(e.Head(), args...)
	}
	return expr.NewList(items...), true
}

// CollapseOneIdentity unwraps f[x] to x for heads carrying OneIdentity.
func CollapseOneIdentity(e *expr.Expr) expr.Element {
	if e.Len() == 1 {
		return e.At(0)
	}
	return e
}
