/*
Package wolframite implements a small symbolic term-rewriting kernel in
the spirit of Wolfram-style languages. Expressions are immutable trees
over interned symbols and atomic values, carrying optional attribute
sets. Evaluation rewrites expressions to a fixed point under
user-defined rules and built-in functions, following the standard
evaluation procedure: heads first, then arguments subject to hold
attributes, structural normalization for Flat and Orderless heads,
Listable threading, and finally rule dispatch through the per-symbol
value stores (own, down, up, sub and numeric values).

The module is organized in layers:

■ expr: the expression data model, interned symbols, attributes,
canonical ordering and structural hashing.

■ pattern: blanks and pattern constructs, a backtracking matcher with
Flat/Orderless sequence matching, bindings and substitution.

■ eval: contexts with chained scopes, the seven per-symbol value
stores, rewrite rules and the evaluator itself.

This root package ties them together in a Kernel facade with a registry
of standard built-in functions:

	k := wolframite.NewKernel()
	f := expr.Sym("f")
	x := expr.Sym("x")
	_ = k.Define(
		expr.New(f, pattern.Named(x, pattern.Blank())),
		expr.New(expr.Sym("Plus"), x, x))
	out, _ := k.Eval(expr.New(f, expr.Int(5)))   // Int(10)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package wolframite

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'wolframite.kernel'.
func tracer() tracing.Trace {
	return tracing.Select("wolframite.kernel")
}
