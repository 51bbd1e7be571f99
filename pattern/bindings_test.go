package pattern

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/bnielsen/wolframite/expr"
)

func TestBindAndGet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.pattern")
	defer teardown()
	//
	x := expr.Sym("x")
	b, err := Empty().Bind(x, expr.Int(1))
	if err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	v, ok := b.Get(x)
	if !ok || !expr.Equal(v, expr.Int(1)) {
		t.Errorf("expected x -> 1, have %v", v)
	}
	if b.Len() != 1 {
		t.Errorf("expected 1 binding, have %d", b.Len())
	}
}

func TestBindIsImmutable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.pattern")
	defer teardown()
	//
	x, y := expr.Sym("x"), expr.Sym("y")
	b0 := Empty()
	b1, _ := b0.Bind(x, expr.Int(1))
	b2, _ := b1.Bind(y, expr.Int(2))
	if b0.Len() != 0 || b1.Len() != 1 || b2.Len() != 2 {
		t.Errorf("binding mutated an ancestor: %d/%d/%d", b0.Len(), b1.Len(), b2.Len())
	}
	if b1.Has(y) {
		t.Errorf("b1 should not see y")
	}
}

func TestRebindSameValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.pattern")
	defer teardown()
	//
	x := expr.Sym("x")
	f := expr.Sym("f")
	val := expr.New(f, expr.Int(1))
	b, _ := Empty().Bind(x, val)
	b2, err := b.Bind(x, expr.New(f, expr.Int(1)))
	if err != nil {
		t.Errorf("re-binding an equal value should succeed: %v", err)
	}
	if b2 != b {
		t.Errorf("idempotent re-bind should return the receiver")
	}
}

func TestBindingConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.pattern")
	defer teardown()
	//
	x := expr.Sym("x")
	b, _ := Empty().Bind(x, expr.Int(1))
	_, err := b.Bind(x, expr.Int(2))
	if err == nil {
		t.Fatalf("re-binding a different value should conflict")
	}
	var conflict *BindingConflict
	if !errors.As(err, &conflict) {
		t.Errorf("error should be a *BindingConflict, is %T", err)
	}
}

func TestMergeCompatible(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.pattern")
	defer teardown()
	//
	x, y := expr.Sym("x"), expr.Sym("y")
	a, _ := Empty().Bind(x, expr.Int(1))
	b, _ := Empty().Bind(y, expr.Int(2))
	m, err := a.Merge(b)
	if err != nil {
		t.Fatalf("merge of disjoint bindings failed: %v", err)
	}
	if m.Len() != 2 {
		t.Errorf("merged bindings should have 2 entries, have %d", m.Len())
	}
	c, _ := Empty().Bind(x, expr.Int(9))
	if a.Compatible(c) {
		t.Errorf("conflicting bindings reported compatible")
	}
	if _, err := a.Merge(c); err == nil {
		t.Errorf("merge of conflicting bindings should fail")
	}
}
