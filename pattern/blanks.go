package pattern

import (
	"github.com/bnielsen/wolframite/expr"
)

// Reserved heads of the blank family.
var (
	BlankHead             = expr.Reserve("Blank")
	BlankSequenceHead     = expr.Reserve("BlankSequence")
	BlankNullSequenceHead = expr.Reserve("BlankNullSequence")
)

// Blank returns Blank[], matching exactly one element of any head.
func Blank() *expr.Expr {
	return expr.New(BlankHead)
}

// BlankOf returns Blank[head], matching one element with the given head.
func BlankOf(head *expr.Symbol) *expr.Expr {
	return expr.New(BlankHead, head)
}

// BlankSeq returns BlankSequence[], matching one or more elements.
func BlankSeq() *expr.Expr {
	return expr.New(BlankSequenceHead)
}

// BlankSeqOf returns BlankSequence[head]; every matched element must
// individually carry the given head.
func BlankSeqOf(head *expr.Symbol) *expr.Expr {
	return expr.New(BlankSequenceHead, head)
}

// BlankNullSeq returns BlankNullSequence[], matching zero or more elements.
func BlankNullSeq() *expr.Expr {
	return expr.New(BlankNullSequenceHead)
}

// BlankNullSeqOf returns BlankNullSequence[head].
func BlankNullSeqOf(head *expr.Symbol) *expr.Expr {
	return expr.New(BlankNullSequenceHead, head)
}

// IsBlank reports whether el is Blank[] or Blank[h].
func IsBlank(el expr.Element) bool {
	return expr.IsExprWithHead(el, BlankHead)
}

// IsBlankSeq reports whether el is a BlankSequence pattern.
func IsBlankSeq(el expr.Element) bool {
	return expr.IsExprWithHead(el, BlankSequenceHead)
}

// IsBlankNullSeq reports whether el is a BlankNullSequence pattern.
func IsBlankNullSeq(el expr.Element) bool {
	return expr.IsExprWithHead(el, BlankNullSequenceHead)
}

// IsAnyBlank reports whether el is any member of the blank family.
func IsAnyBlank(el expr.Element) bool {
	return IsBlank(el) || IsSeqBlank(el)
}

// IsSeqBlank reports whether el is a sequence-matching blank (one that
// can consume several elements of an argument list).
func IsSeqBlank(el expr.Element) bool {
	return IsBlankSeq(el) || IsBlankNullSeq(el)
}

// blankConstraint returns the head constraint of a blank, or nil when
// unconstrained.
func blankConstraint(blank *expr.Expr) *expr.Symbol {
	if blank.Len() == 0 {
		return nil
	}
	if s, ok := blank.At(0).(*expr.Symbol); ok {
		return s
	}
	return nil
}

// blankMatches reports whether el's head satisfies the blank's head
// constraint.
func blankMatches(blank *expr.Expr, el expr.Element) bool {
	constraint := blankConstraint(blank)
	if constraint == nil {
		return true
	}
	return expr.Equal(expr.HeadOf(el), constraint)
}

// seqBlankMin returns the minimum number of elements a sequence blank
// must consume: 0 for BlankNullSequence, 1 for BlankSequence.
func seqBlankMin(blank *expr.Expr) int {
	if blank.Head() == BlankNullSequenceHead {
		return 0
	}
	return 1
}
