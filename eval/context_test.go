package eval

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/bnielsen/wolframite/expr"
	"github.com/bnielsen/wolframite/pattern"
)

func TestContextAttributes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.eval")
	defer teardown()
	//
	ctx := NewContext("test")
	f := expr.Sym("ctxAttrF")
	if err := ctx.SetAttributes(f, expr.Flat, expr.Orderless); err != nil {
		t.Fatalf("setting attributes: %v", err)
	}
	attrs := ctx.AttributesOf(f)
	if !attrs.Contains(expr.Flat) || !attrs.Contains(expr.Orderless) {
		t.Errorf("attributes missing: %s", attrs)
	}
	if err := ctx.ClearAttributes(f, expr.Flat); err != nil {
		t.Fatalf("clearing attributes: %v", err)
	}
	if ctx.AttributesOf(f).Contains(expr.Flat) {
		t.Errorf("Flat should be cleared")
	}
}

func TestContextAttributeChaining(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.eval")
	defer teardown()
	//
	parent := NewContext("parent")
	child := parent.NewChild("child")
	f := expr.Sym("chainedF")
	_ = parent.SetAttributes(f, expr.HoldAll)
	_ = child.SetAttributes(f, expr.Listable)
	attrs := child.AttributesOf(f)
	if !attrs.Contains(expr.HoldAll) || !attrs.Contains(expr.Listable) {
		t.Errorf("child should see inherited and local attributes: %s", attrs)
	}
	if parent.AttributesOf(f).Contains(expr.Listable) {
		t.Errorf("parent must not see child attributes")
	}
}

func TestEffectiveAttrs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.eval")
	defer teardown()
	//
	ctx := NewContext("test")
	f := expr.Sym("effAttrF")
	_ = ctx.SetAttributes(f, expr.Flat)
	e := expr.NewWithAttrs(f, expr.NewAttrSet(expr.Orderless), expr.Int(1))
	attrs := ctx.EffectiveAttrs(e)
	if !attrs.Contains(expr.Flat) || !attrs.Contains(expr.Orderless) {
		t.Errorf("effective attrs should union context and local: %s", attrs)
	}
}

func TestRulePriorityOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.eval")
	defer teardown()
	//
	ctx := NewContext("test")
	f := expr.Sym("prioF")
	low := NewRule(expr.New(f, pattern.Blank()), expr.Int(1))
	high := NewRule(expr.New(f, pattern.Blank()), expr.Int(2), WithPriority(10))
	tie := NewRule(expr.New(f, pattern.Blank()), expr.Int(3), WithPriority(10))
	_ = ctx.AddRule(DownValues, f, low)
	_ = ctx.AddRule(DownValues, f, high)
	_ = ctx.AddRule(DownValues, f, tie)
	rules := ctx.Rules(DownValues, f)
	if len(rules) != 3 {
		t.Fatalf("expected 3 rules, have %d", len(rules))
	}
	if rules[0] != high || rules[1] != tie || rules[2] != low {
		t.Errorf("rules should order by priority, then definition order")
	}
}

func TestRuleShadowing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.eval")
	defer teardown()
	//
	parent := NewContext("parent")
	child := parent.NewChild("child")
	f := expr.Sym("shadowF")
	pr := NewRule(expr.New(f, pattern.Blank()), expr.Int(1))
	_ = parent.AddRule(DownValues, f, pr)
	if got := child.Rules(DownValues, f); len(got) != 1 || got[0] != pr {
		t.Fatalf("child should fall through to the parent's rules")
	}
	cr := NewRule(expr.New(f, pattern.Blank()), expr.Int(2))
	_ = child.AddRule(DownValues, f, cr)
	got := child.Rules(DownValues, f)
	if len(got) != 1 || got[0] != cr {
		t.Errorf("local rules should shadow the parent's")
	}
	if got := parent.Rules(DownValues, f); len(got) != 1 || got[0] != pr {
		t.Errorf("parent rules must stay untouched")
	}
}

func TestProtectedSymbolRejectsDefinitions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.eval")
	defer teardown()
	//
	ctx := NewContext("test")
	f := expr.Sym("protF")
	_ = ctx.SetAttributes(f, expr.Protected)
	err := ctx.DefineDown(f, expr.New(f, pattern.Blank()), expr.Int(1))
	if err == nil {
		t.Errorf("defining on a protected symbol should fail")
	}
	if err := ctx.ClearValues(f); err == nil {
		t.Errorf("clearing a protected symbol should fail")
	}
}

func TestLockedSymbolRejectsAttributeChanges(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.eval")
	defer teardown()
	//
	ctx := NewContext("test")
	f := expr.Sym("lockF")
	_ = ctx.SetAttributes(f, expr.Locked)
	if err := ctx.SetAttributes(f, expr.Flat); err == nil {
		t.Errorf("locked symbols reject attribute changes")
	}
}

func TestClearValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.eval")
	defer teardown()
	//
	ctx := NewContext("test")
	f := expr.Sym("clearF")
	_ = ctx.DefineDown(f, expr.New(f, pattern.Blank()), expr.Int(1))
	_ = ctx.SetAttributes(f, expr.HoldAll)
	if err := ctx.ClearValues(f); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if len(ctx.Rules(DownValues, f)) != 0 {
		t.Errorf("rules should be gone after clearing")
	}
	if !ctx.AttributesOf(f).Contains(expr.HoldAll) {
		t.Errorf("attributes should survive clearing values")
	}
}

func TestDefaultValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.eval")
	defer teardown()
	//
	parent := NewContext("parent")
	child := parent.NewChild("child")
	f := expr.Sym("defaultF")
	if _, ok := child.DefaultValue(f); ok {
		t.Errorf("no default set yet")
	}
	_ = parent.SetDefault(f, expr.Int(0))
	v, ok := child.DefaultValue(f)
	if !ok || !expr.Equal(v, expr.Int(0)) {
		t.Errorf("default should chain from the parent, is %v", v)
	}
}

func TestValueStoreSeparation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.eval")
	defer teardown()
	//
	ctx := NewContext("test")
	f := expr.Sym("storeF")
	_ = ctx.DefineDown(f, expr.New(f, pattern.Blank()), expr.Int(1))
	_ = ctx.DefineFormat(f, expr.New(f, pattern.Blank()), expr.Str("pretty"))
	if len(ctx.Rules(DownValues, f)) != 1 || len(ctx.Rules(FormatValues, f)) != 1 {
		t.Fatalf("stores should hold one rule each")
	}
	if len(ctx.Rules(UpValues, f)) != 0 || len(ctx.Rules(NValues, f)) != 0 {
		t.Errorf("unrelated stores must stay empty")
	}
}

func TestSetAttributesRejectsNonAttribute(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wolframite.eval")
	defer teardown()
	//
	ctx := NewContext("test")
	f := expr.Sym("ctxBogusAttrF")
	if err := ctx.SetAttributes(f, expr.Sym("Bogus")); err == nil {
		t.Errorf("symbols outside the attribute vocabulary should be rejected")
	}
	if ctx.AttributesOf(f).Size() != 0 {
		t.Errorf("nothing should have been recorded for %s", f)
	}
}
