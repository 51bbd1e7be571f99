package expr

import (
	"fmt"
	"strings"
)

// Expr is an immutable n-ary expression node: a head applied to an
// ordered tail of elements, plus an optional set of local attributes.
//
// The head is a *Symbol or another *Expr (curried application, f[a][b]).
// The tail may contain any Element. The local attribute set augments the
// head symbol's context attributes during evaluation; it does not
// participate in structural equality or hashing.
type Expr struct {
	head  Element
	tail  []Element
	attrs *AttrSet
}

// New constructs an expression. The head must be a *Symbol or *Expr and
// every tail entry must be non-nil; anything else is a construction
// error and panics immediately, it is never coerced.
func New(head Element, tail ...Element) *Expr {
	return NewWithAttrs(head, nil, tail...)
}

// NewWithAttrs constructs an expression carrying local attributes.
// A nil attrs is the empty set.
func NewWithAttrs(head Element, attrs *AttrSet, tail ...Element) *Expr {
	switch head.(type) {
	case *Symbol, *Expr:
	default:
		panic(fmt.Sprintf("expr: expression head must be symbol or expression, got %T", head))
	}
	t := make([]Element, len(tail))
	for i, el := range tail {
		if el == nil {
			panic(fmt.Sprintf("expr: expression tail entry %d is nil", i))
		}
		t[i] = el
	}
	return &Expr{head: head, tail: t, attrs: attrs}
}

func (e *Expr) element() {}

// Head returns the head of the expression.
func (e *Expr) Head() Element {
	return e.head
}

// Tail returns the argument list. The returned slice is shared with the
// expression and must not be modified by the caller.
func (e *Expr) Tail() []Element {
	return e.tail
}

// Len returns the number of arguments.
func (e *Expr) Len() int {
	return len(e.tail)
}

// At returns the i-th argument.
func (e *Expr) At(i int) Element {
	return e.tail[i]
}

// Attrs returns the local attribute set, never nil.
func (e *Expr) Attrs() *AttrSet {
	if e.attrs == nil {
		return emptyAttrs
	}
	return e.attrs
}

// HasAttr reports whether the local attribute set contains a.
func (e *Expr) HasAttr(a *Symbol) bool {
	return e.attrs != nil && e.attrs.Contains(a)
}

// --- Immutable transformations ---------------------------------------------

// WithHead returns a copy with a different head.
func (e *Expr) WithHead(head Element) *Expr {
	return NewWithAttrs(head, e.attrs, e.tail...)
}

// WithTail returns a copy with a different argument list.
func (e *Expr) WithTail(tail ...Element) *Expr {
	return NewWithAttrs(e.head, e.attrs, tail...)
}

// WithAttrs returns a copy with the given attributes added.
func (e *Expr) WithAttrs(attrs ...*Symbol) *Expr {
	return NewWithAttrs(e.head, e.Attrs().Add(attrs...), e.tail...)
}

// WithoutAttrs returns a copy with the given attributes removed.
func (e *Expr) WithoutAttrs(attrs ...*Symbol) *Expr {
	return NewWithAttrs(e.head, e.Attrs().Remove(attrs...), e.tail...)
}

// MapTail returns a copy with fn applied to every argument. If fn leaves
// every argument identical, the receiver is returned unchanged.
func (e *Expr) MapTail(fn func(Element) Element) *Expr {
	changed := false
	tail := make([]Element, len(e.tail))
	for i, el := range e.tail {
		tail[i] = fn(el)
		if tail[i] != el {
			changed = true
		}
	}
	if !changed {
		return e
	}
	return &Expr{head: e.head, tail: tail, attrs: e.attrs}
}

// Append returns a copy with arguments appended.
func (e *Expr) Append(args ...Element) *Expr {
	tail := make([]Element, 0, len(e.tail)+len(args))
	tail = append(tail, e.tail...)
	tail = append(tail, args...)
	return NewWithAttrs(e.head, e.attrs, tail...)
}

// Prepend returns a copy with arguments prepended.
func (e *Expr) Prepend(args ...Element) *Expr {
	tail := make([]Element, 0, len(e.tail)+len(args))
	tail = append(tail, args...)
	tail = append(tail, e.tail...)
	return NewWithAttrs(e.head, e.attrs, tail...)
}

func (e *Expr) String() string {
	var b strings.Builder
	b.WriteString(e.head.String())
	b.WriteByte('[')
	for i, el := range e.tail {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(el.String())
	}
	b.WriteByte(']')
	return b.String()
}

// --- Convenience constructors ----------------------------------------------

// NewList builds List[elements...].
func NewList(elements ...Element) *Expr {
	return New(ListHead, elements...)
}

// NewSequence builds Sequence[elements...].
func NewSequence(elements ...Element) *Expr {
	return New(SequenceHead, elements...)
}

// IsExprWithHead reports whether el is an expression whose head is the
// given symbol.
func IsExprWithHead(el Element, head *Symbol) bool {
	e, ok := el.(*Expr)
	return ok && e.head == head
}
