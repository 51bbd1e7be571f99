package expr

import (
	"fmt"
	"strconv"
)

// Element is the closed union of every value the kernel handles: *Symbol,
// *Expr, or one of the atom types below. The unexported marker method
// seals the union; exhaustive type switches over these shapes are safe.
type Element interface {
	String() string
	element()
}

// Atom types. Atoms are self-evaluating leaf values which compare and
// hash by native value equality.
type (
	// Int is an integer atom.
	Int int64
	// Real is a floating-point atom.
	Real float64
	// Cmplx is a complex-number atom.
	Cmplx complex128
	// Str is a string atom.
	Str string
	// Bool is a boolean atom. Its head is Symbol, like True and False.
	Bool bool
	// Null is the null atom.
	Null struct{}
)

func (Int) element()   {}
func (Real) element()  {}
func (Cmplx) element() {}
func (Str) element()   {}
func (Bool) element()  {}
func (Null) element()  {}

func (a Int) String() string {
	return strconv.FormatInt(int64(a), 10)
}

func (a Real) String() string {
	return strconv.FormatFloat(float64(a), 'g', -1, 64)
}

func (a Cmplx) String() string {
	return fmt.Sprintf("%v", complex128(a))
}

func (a Str) String() string {
	return strconv.Quote(string(a))
}

func (a Bool) String() string {
	if a {
		return "True"
	}
	return "False"
}

func (Null) String() string {
	return "Null"
}

// IsAtom reports whether el is a self-evaluating leaf value.
func IsAtom(el Element) bool {
	switch el.(type) {
	case Int, Real, Cmplx, Str, Bool, Null:
		return true
	}
	return false
}

// IsNumeric reports whether el is a numeric atom.
func IsNumeric(el Element) bool {
	switch el.(type) {
	case Int, Real, Cmplx:
		return true
	}
	return false
}

// HeadOf returns the head of any element: the head of an expression, or
// the type head of a symbol or atom (Integer, Real, Complex, String;
// booleans and Null count as symbols).
func HeadOf(el Element) Element {
	switch e := el.(type) {
	case *Expr:
		return e.head
	case *Symbol:
		return SymbolHead
	case Int:
		return IntegerHead
	case Real:
		return RealHead
	case Cmplx:
		return ComplexHead
	case Str:
		return StringHead
	case Bool, Null:
		return SymbolHead
	}
	panic(fmt.Sprintf("expr: unknown element type %T", el))
}

// TailOf returns the arguments of an expression, or nil for symbols and
// atoms.
func TailOf(el Element) []Element {
	if e, ok := el.(*Expr); ok {
		return e.tail
	}
	return nil
}
