/*
Package eval implements the evaluation layer of the wolframite kernel:
contexts, value stores, rewrite rules and the standard evaluation
procedure.

A Context owns, per symbol, an attribute set and the seven value
categories (OwnValues, DownValues, UpValues, SubValues, NValues,
DefaultValues, FormatValues), each a priority-ordered rule list.
Contexts chain to a parent for fallback lookup.

The Evaluator rewrites an expression to its fixed point: hold-aware
argument evaluation, Sequence splicing, Flat/Orderless normalization,
Listable threading, then layered rule dispatch (UpValues, DownValues,
SubValues, NValues, builtins) and re-evaluation of any rewrite, guarded
by recursion and iteration ceilings.

Evaluation is single-threaded recursive descent with per-call counter
state; concurrent Eval calls are independent. A Context guards its
stores with a mutex, so definitions and lookups may interleave, but a
rule set observed by one evaluation is a snapshot and later definitions
do not affect a call already in flight.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package eval

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'wolframite.eval'.
func tracer() tracing.Trace {
	return tracing.Select("wolframite.eval")
}
