/*
Package pattern implements the pattern-matching engine of the wolframite
kernel.

Patterns are ordinary expressions built from reserved heads: the blank
family (Blank, BlankSequence, BlankNullSequence), named patterns
(Pattern), and the structural constructs Condition, Alternatives,
PatternTest, Optional, Repeated, RepeatedNull, Except, Verbatim and
HoldPattern. A Matcher unifies a pattern with an expression by
recursive, backtracking search and produces Bindings, an immutable map
from pattern variables to matched elements.

Mismatch is not an error. Match returns a MatchResult value whose OK
field is false for the no-match outcome; only a genuine same-name,
different-value collision inside one match attempt surfaces as a
BindingConflict, and the matcher consumes those internally when a
backtracking alternative remains.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package pattern

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'wolframite.pattern'.
func tracer() tracing.Trace {
	return tracing.Select("wolframite.pattern")
}
