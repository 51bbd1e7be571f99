package expr

import (
	"encoding/hex"

	"github.com/cnf/structhash"
)

// Equal reports structural equality of two elements.
//
// Symbols compare by identity (interning makes this exact), atoms by
// native value, expressions by head and tail recursively. Local
// attribute sets are excluded from structural identity; this is a fixed
// contract of the kernel (attributes describe evaluation behavior, which
// belongs to symbols and contexts, not to the value itself).
func Equal(a, b Element) bool {
	if a == b {
		return true
	}
	ea, ok := a.(*Expr)
	if !ok {
		return false // non-identical symbols and atoms are unequal
	}
	eb, ok := b.(*Expr)
	if !ok {
		return false
	}
	if len(ea.tail) != len(eb.tail) {
		return false
	}
	if !Equal(ea.head, eb.head) {
		return false
	}
	for i := range ea.tail {
		if !Equal(ea.tail[i], eb.tail[i]) {
			return false
		}
	}
	return true
}

// hashNode is the exported view of an element fed to structhash. It
// mirrors (head, tail) only, consistent with Equal.
type hashNode struct {
	Kind string
	Text string
	Head *hashNode
	Tail []hashNode
}

func hashView(el Element) hashNode {
	switch e := el.(type) {
	case *Symbol:
		return hashNode{Kind: "sym", Text: e.name}
	case *Expr:
		h := hashView(e.head)
		n := hashNode{Kind: "expr", Head: &h}
		n.Tail = make([]hashNode, len(e.tail))
		for i, t := range e.tail {
			n.Tail[i] = hashView(t)
		}
		return n
	case Int:
		return hashNode{Kind: "int", Text: el.String()}
	case Real:
		return hashNode{Kind: "real", Text: el.String()}
	case Cmplx:
		return hashNode{Kind: "cmplx", Text: el.String()}
	case Str:
		return hashNode{Kind: "str", Text: string(e)}
	case Bool:
		return hashNode{Kind: "bool", Text: el.String()}
	default:
		return hashNode{Kind: "null"}
	}
}

// Hash returns a structural hash string for el. Elements equal under
// Equal hash identically.
func Hash(el Element) string {
	return hex.EncodeToString(structhash.Md5(hashView(el), 1))
}

// Depth returns the depth of the element tree: 1 for symbols and atoms,
// 1 plus the maximum argument depth for expressions (the head does not
// add depth).
func Depth(el Element) int {
	e, ok := el.(*Expr)
	if !ok {
		return 1
	}
	max := 0
	for _, t := range e.tail {
		if d := Depth(t); d > max {
			max = d
		}
	}
	return max + 1
}

// LeafCount counts the symbols and atoms in the element tree, heads
// included.
func LeafCount(el Element) int {
	e, ok := el.(*Expr)
	if !ok {
		return 1
	}
	n := LeafCount(e.head)
	for _, t := range e.tail {
		n += LeafCount(t)
	}
	return n
}
