/*
Package expr implements the expression data model of the wolframite
kernel: interned symbols, self-evaluating atoms and immutable n-ary
expressions.

Every value handled by the kernel is an Element. Element is a closed
union: a value is either a *Symbol, an *Expr, or one of the atom types
(Int, Real, Cmplx, Str, Bool, Null). There is no user extension point;
code operating on elements is expected to type-switch exhaustively over
these shapes.

Symbols are interned in a process-wide registry, so two symbols with the
same name are the same pointer. Attributes and values of a symbol live
in an evaluation context, never on the symbol itself; redefining a
symbol therefore never changes its identity.

Expressions are fully immutable. Every transformation (attribute
add/remove, head/tail replacement, mapping) returns a new *Expr.
Structural equality and hashing consider head and tail only; the local
attribute set of an expression is deliberately excluded from identity
(attributes are properties of symbols and contexts, not of values).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package expr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'wolframite.expr'.
func tracer() tracing.Trace {
	return tracing.Select("wolframite.expr")
}
