package expr

import (
	"strings"
)

// Order defines the canonical ordering used by Orderless normalization.
// It returns a negative value if a sorts before b, zero if they rank
// equal, positive otherwise.
//
// Ranking: numeric atoms < strings < booleans/Null < symbols <
// expressions. Numbers compare by value (real part first for complex),
// symbols by name, expressions by depth, then leaf count, then printed
// form. Sorting with Order is idempotent: sorting twice equals sorting
// once.
func Order(a, b Element) int {
	ca, cb := orderClass(a), orderClass(b)
	if ca != cb {
		return ca - cb
	}
	switch ca {
	case 0: // numeric
		na, nb := numericValue(a), numericValue(b)
		if na != nb {
			if na < nb {
				return -1
			}
			return 1
		}
		return strings.Compare(a.String(), b.String())
	case 4: // symbols
		return strings.Compare(a.(*Symbol).name, b.(*Symbol).name)
	case 5: // expressions
		ea, eb := a.(*Expr), b.(*Expr)
		if d := Depth(ea) - Depth(eb); d != 0 {
			return d
		}
		if l := LeafCount(ea) - LeafCount(eb); l != 0 {
			return l
		}
		return strings.Compare(ea.String(), eb.String())
	default:
		return strings.Compare(a.String(), b.String())
	}
}

func orderClass(el Element) int {
	switch el.(type) {
	case Int, Real, Cmplx:
		return 0
	case Str:
		return 1
	case Bool:
		return 2
	case Null:
		return 3
	case *Symbol:
		return 4
	default:
		return 5
	}
}

func numericValue(el Element) float64 {
	switch v := el.(type) {
	case Int:
		return float64(v)
	case Real:
		return float64(v)
	case Cmplx:
		return real(complex128(v))
	}
	return 0
}
