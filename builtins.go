package wolframite

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/bnielsen/wolframite/eval"
	"github.com/bnielsen/wolframite/expr"
)

// Standard builtin vocabulary. Builtins fold what they can and leave
// the rest symbolic; an error return means the arguments are outside
// the builtin's domain and the expression stays as it is.

func installStandard(k *Kernel) {
	reg := func(name string, fn eval.BuiltinFunc, attrs ...*expr.Symbol) {
		sym := expr.Reserve(name)
		var set *expr.AttrSet
		if len(attrs) > 0 {
			set = set.Add(attrs...)
		}
		if fn != nil {
			k.registry.Register(eval.NewBuiltin(name, set, fn))
		}
		if len(attrs) > 0 {
			if err := k.global.SetAttributes(sym, attrs...); err != nil {
				tracer().Errorf("installing %s: %v", name, err)
			}
		}
	}

	reg("Plus", builtinPlus,
		expr.Flat, expr.Orderless, expr.OneIdentity, expr.Listable,
		expr.NumericFunction, expr.Protected)
	reg("Times", builtinTimes,
		expr.Flat, expr.Orderless, expr.OneIdentity, expr.Listable,
		expr.NumericFunction, expr.Protected)
	reg("Power", builtinPower,
		expr.OneIdentity, expr.Listable, expr.NumericFunction, expr.Protected)
	reg("Minus", builtinMinus, expr.Listable, expr.NumericFunction, expr.Protected)

	reg("Head", builtinHead, expr.Protected)
	reg("Length", builtinLength, expr.Protected)
	reg("SameQ", builtinSameQ, expr.Protected)
	reg("UnsameQ", builtinUnsameQ, expr.Protected)

	reg("NumberQ", predicate(func(el expr.Element) bool {
		return expr.IsNumeric(el)
	}), expr.Protected)
	reg("IntegerQ", predicate(func(el expr.Element) bool {
		_, ok := el.(expr.Int)
		return ok
	}), expr.Protected)
	reg("EvenQ", predicate(func(el expr.Element) bool {
		n, ok := el.(expr.Int)
		return ok && n%2 == 0
	}), expr.Protected)
	reg("OddQ", predicate(func(el expr.Element) bool {
		n, ok := el.(expr.Int)
		return ok && (n%2 == 1 || n%2 == -1)
	}), expr.Protected)

	reg("N", builtinN, expr.Protected)

	// Attribute-only vocabulary: no rewrite behavior of their own.
	reg("Hold", nil, expr.HoldAll, expr.Protected)
	reg("HoldComplete", nil, expr.HoldAllComplete, expr.Protected)
	reg("List", nil, expr.Locked, expr.Protected)
	reg("Sequence", nil, expr.Protected)
}

// predicate wraps a boolean test of a single argument.
func predicate(test func(expr.Element) bool) eval.BuiltinFunc {
	return func(ev *eval.Evaluator, ctx *eval.Context, e *expr.Expr) (expr.Element, error) {
		if e.Len() != 1 {
			return nil, fmt.Errorf("expected 1 argument, got %d", e.Len())
		}
		return expr.Bool(test(e.At(0))), nil
	}
}

// --- Arithmetic -------------------------------------------------------------

// numKind tracks the widest numeric type seen while folding.
type numKind int

const (
	kindInt numKind = iota
	kindReal
	kindCmplx
)

func numOf(el expr.Element) (complex128, numKind, bool) {
	switch t := el.(type) {
	case expr.Int:
		return complex(float64(t), 0), kindInt, true
	case expr.Real:
		return complex(float64(t), 0), kindReal, true
	case expr.Cmplx:
		return complex128(t), kindCmplx, true
	}
	return 0, kindInt, false
}

func numElement(v complex128, kind numKind) expr.Element {
	switch kind {
	case kindInt:
		return expr.Int(int64(real(v)))
	case kindReal:
		return expr.Real(real(v))
	}
	return expr.Cmplx(v)
}

// fold combines all numeric arguments of e with op and keeps symbolic
// arguments in place. identity is dropped from the result.
func fold(e *expr.Expr, identity complex128, op func(a, b complex128) complex128, intOp func(a, b int64) int64) (expr.Element, error) {
	acc := identity
	kind := kindInt
	var iacc int64
	intFirst := true
	var rest []expr.Element
	n := 0
	for _, a := range e.Tail() {
		v, k, ok := numOf(a)
		if !ok {
			rest = append(rest, a)
			continue
		}
		n++
		if k > kind {
			kind = k
		}
		acc = op(acc, v)
		if i, isInt := a.(expr.Int); isInt {
			if intFirst {
				iacc = int64(i)
				intFirst = false
			} else {
				iacc = intOp(iacc, int64(i))
			}
		}
	}
	if n < 2 {
		// nothing to fold
		return e, nil
	}
	var num expr.Element
	if kind == kindInt {
		// exact integer arithmetic, no float round trip
		num = expr.Int(iacc)
	} else {
		num = numElement(acc, kind)
	}
	if len(rest) == 0 {
		return num, nil
	}
	if v, _, ok := numOf(num); ok && v == identity && kind == kindInt {
		if len(rest) == 1 {
			return rest[0], nil
		}
		return e.WithTail(rest...), nil
	}
	return e.WithTail(append([]expr.Element{num}, rest...)...), nil
}

func builtinPlus(ev *eval.Evaluator, ctx *eval.Context, e *expr.Expr) (expr.Element, error) {
	if e.Len() == 0 {
		return expr.Int(0), nil
	}
	return fold(e, 0,
		func(a, b complex128) complex128 { return a + b },
		func(a, b int64) int64 { return a + b })
}

func builtinTimes(ev *eval.Evaluator, ctx *eval.Context, e *expr.Expr) (expr.Element, error) {
	if e.Len() == 0 {
		return expr.Int(1), nil
	}
	for _, a := range e.Tail() {
		switch t := a.(type) {
		case expr.Int:
			if t == 0 {
				return expr.Int(0), nil
			}
		case expr.Real:
			if t == 0 {
				return expr.Real(0), nil
			}
		}
	}
	return fold(e, 1,
		func(a, b complex128) complex128 { return a * b },
		func(a, b int64) int64 { return a * b })
}

func builtinMinus(ev *eval.Evaluator, ctx *eval.Context, e *expr.Expr) (expr.Element, error) {
	if e.Len() != 1 {
		return nil, fmt.Errorf("expected 1 argument, got %d", e.Len())
	}
	switch t := e.At(0).(type) {
	case expr.Int:
		return expr.Int(-t), nil
	case expr.Real:
		return expr.Real(-t), nil
	case expr.Cmplx:
		return expr.Cmplx(-t), nil
	}
	return expr.New(expr.Sym("Times"), expr.Int(-1), e.At(0)), nil
}

func builtinPower(ev *eval.Evaluator, ctx *eval.Context, e *expr.Expr) (expr.Element, error) {
	if e.Len() != 2 {
		return nil, fmt.Errorf("expected 2 arguments, got %d", e.Len())
	}
	base, bk, bok := numOf(e.At(0))
	exp, ek, eok := numOf(e.At(1))
	if !bok || !eok {
		return e, nil
	}
	if bk == kindInt && ek == kindInt {
		b, n := int64(real(base)), int64(real(exp))
		if n >= 0 {
			acc := int64(1)
			for i := int64(0); i < n; i++ {
				acc *= b
			}
			return expr.Int(acc), nil
		}
		return e, nil // negative integer powers stay symbolic
	}
	if bk <= kindReal && ek <= kindReal {
		return expr.Real(math.Pow(real(base), real(exp))), nil
	}
	return expr.Cmplx(cmplx.Pow(base, exp)), nil
}

// --- Structural -------------------------------------------------------------

func builtinHead(ev *eval.Evaluator, ctx *eval.Context, e *expr.Expr) (expr.Element, error) {
	if e.Len() != 1 {
		return nil, fmt.Errorf("expected 1 argument, got %d", e.Len())
	}
	return expr.HeadOf(e.At(0)), nil
}

func builtinLength(ev *eval.Evaluator, ctx *eval.Context, e *expr.Expr) (expr.Element, error) {
	if e.Len() != 1 {
		return nil, fmt.Errorf("expected 1 argument, got %d", e.Len())
	}
	if sub, ok := e.At(0).(*expr.Expr); ok {
		return expr.Int(int64(sub.Len())), nil
	}
	return expr.Int(0), nil
}

func builtinSameQ(ev *eval.Evaluator, ctx *eval.Context, e *expr.Expr) (expr.Element, error) {
	if e.Len() != 2 {
		return nil, fmt.Errorf("expected 2 arguments, got %d", e.Len())
	}
	return expr.Bool(expr.Equal(e.At(0), e.At(1))), nil
}

func builtinUnsameQ(ev *eval.Evaluator, ctx *eval.Context, e *expr.Expr) (expr.Element, error) {
	if e.Len() != 2 {
		return nil, fmt.Errorf("expected 2 arguments, got %d", e.Len())
	}
	return expr.Bool(!expr.Equal(e.At(0), e.At(1))), nil
}

// builtinN re-enters evaluation in numeric mode, so NValues
// definitions apply to the argument.
func builtinN(ev *eval.Evaluator, ctx *eval.Context, e *expr.Expr) (expr.Element, error) {
	if e.Len() != 1 {
		return nil, fmt.Errorf("expected 1 argument, got %d", e.Len())
	}
	out, err := ev.EvalNumeric(e.At(0), ctx)
	if err != nil {
		return nil, err
	}
	if n, ok := out.(expr.Int); ok {
		return expr.Real(float64(n)), nil
	}
	return out, nil
}
