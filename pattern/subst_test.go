package pattern

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/bnielsen/wolframite/expr"
)

func TestSubstituteBoundSymbol(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.pattern")
	defer teardown()
	//
	f, x := expr.Sym("f"), expr.Sym("x")
	b, _ := Empty().Bind(x, expr.Int(3))
	out := Substitute(expr.New(f, x, expr.Sym("y")), b)
	want := expr.New(f, expr.Int(3), expr.Sym("y"))
	if !expr.Equal(out, want) {
		t.Errorf("expected %s, have %s", want, out)
	}
}

func TestSubstituteSplicesSequences(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.pattern")
	defer teardown()
	//
	f, x := expr.Sym("f"), expr.Sym("x")
	b, _ := Empty().Bind(x, expr.NewSequence(expr.Int(1), expr.Int(2)))
	out := Substitute(expr.New(f, x), b)
	want := expr.New(f, expr.Int(1), expr.Int(2))
	if !expr.Equal(out, want) {
		t.Errorf("sequence should splice into the argument list: %s", out)
	}
}

func TestSubstituteEmptySequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.pattern")
	defer teardown()
	//
	f, x := expr.Sym("f"), expr.Sym("x")
	b, _ := Empty().Bind(x, expr.NewSequence())
	out := Substitute(expr.New(f, x, expr.Int(9)), b)
	want := expr.New(f, expr.Int(9))
	if !expr.Equal(out, want) {
		t.Errorf("empty sequence should vanish: %s", out)
	}
}

func TestSubstituteUnchangedReturnsSame(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.pattern")
	defer teardown()
	//
	f := expr.Sym("f")
	e := expr.New(f, expr.Int(1))
	out := Substitute(e, Empty())
	if out != expr.Element(e) {
		t.Errorf("substitution without bound symbols should return the input")
	}
}

func TestFindAll(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.pattern")
	defer teardown()
	//
	f, g := expr.Sym("f"), expr.Sym("g")
	el := expr.New(f, expr.Int(1), expr.New(g, expr.Int(2), expr.Real(2.5)))
	m := &Matcher{}
	found := m.FindAll(BlankOf(expr.IntegerHead), el)
	if len(found) != 2 {
		t.Errorf("expected 2 integer subexpressions, found %d", len(found))
	}
	if n := m.Count(Blank(), el); n != 5 {
		t.Errorf("expected 5 matching subexpressions, found %d", n)
	}
}
