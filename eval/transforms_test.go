package eval

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/bnielsen/wolframite/expr"
)

func TestSpliceSequences(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.eval")
	defer teardown()
	//
	f := expr.Sym("f")
	e := expr.New(f, expr.Int(1),
		expr.NewSequence(expr.Int(2), expr.Int(3)), expr.Int(4))
	out := SpliceSequences(e)
	want := expr.New(f, expr.Int(1), expr.Int(2), expr.Int(3), expr.Int(4))
	if !expr.Equal(out, want) {
		t.Errorf("expected %s, have %s", want, out)
	}
	// one level only
	nested := expr.New(f, expr.NewSequence(expr.NewSequence(expr.Int(1))))
	out = SpliceSequences(nested)
	if !expr.Equal(out, expr.New(f, expr.NewSequence(expr.Int(1)))) {
		t.Errorf("splicing should not recurse: %s", out)
	}
	plain := expr.New(f, expr.Int(1))
	if SpliceSequences(plain) != plain {
		t.Errorf("no sequences, same pointer expected")
	}
}

func TestFlattenSame(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.eval")
	defer teardown()
	//
	f, g := expr.Sym("f"), expr.Sym("g")
	e := expr.New(f, expr.Int(1),
		expr.New(f, expr.Int(2), expr.New(f, expr.Int(3))),
		expr.New(g, expr.Int(4)))
	out := FlattenSame(e)
	want := expr.New(f, expr.Int(1), expr.Int(2), expr.Int(3), expr.New(g, expr.Int(4)))
	if !expr.Equal(out, want) {
		t.Errorf("expected %s, have %s", want, out)
	}
	// idempotent
	if FlattenSame(out) != out {
		t.Errorf("flattening a flat expression should return it unchanged")
	}
}

func TestSortOrderless(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.eval")
	defer teardown()
	//
	f, x := expr.Sym("f"), expr.Sym("x")
	e := expr.New(f, x, expr.Int(2), expr.Str("s"), expr.Int(1))
	out := SortOrderless(e)
	want := expr.New(f, expr.Int(1), expr.Int(2), expr.Str("s"), x)
	if !expr.Equal(out, want) {
		t.Errorf("expected %s, have %s", want, out)
	}
	if SortOrderless(out) != out {
		t.Errorf("sorting a sorted expression should return it unchanged")
	}
}

func TestThreadListable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.eval")
	defer teardown()
	//
	f := expr.Sym("f")
	e := expr.New(f,
		expr.NewList(expr.Int(1), expr.Int(2)), expr.Int(10))
	out, ok := ThreadListable(e)
	if !ok {
		t.Fatalf("threading should apply")
	}
	want := expr.NewList(
		expr.New(f, expr.Int(1), expr.Int(10)),
		expr.New(f, expr.Int(2), expr.Int(10)))
	if !expr.Equal(out, want) {
		t.Errorf("expected %s, have %s", want, out)
	}
	// mismatched list lengths stay un-threaded
	bad := expr.New(f,
		expr.NewList(expr.Int(1)), expr.NewList(expr.Int(1), expr.Int(2)))
	if _, ok := ThreadListable(bad); ok {
		t.Errorf("mismatched list lengths must not thread")
	}
	// no list arguments at all
	if _, ok := ThreadListable(expr.New(f, expr.Int(1))); ok {
		t.Errorf("threading without lists should report false")
	}
}
