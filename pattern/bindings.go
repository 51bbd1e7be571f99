package pattern

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bnielsen/wolframite/expr"
)

// Bindings is an immutable map from pattern variables to matched
// elements. Bind and Merge return new Bindings; the receiver is never
// modified, which keeps partial matches intact during backtracking.
type Bindings struct {
	m map[*expr.Symbol]expr.Element
}

var emptyBindings = &Bindings{}

// Empty returns the shared empty Bindings.
func Empty() *Bindings {
	return emptyBindings
}

// BindingConflict reports a genuine collision: the same name bound to
// two structurally different values within one match attempt.
type BindingConflict struct {
	Name     *expr.Symbol
	Existing expr.Element
	New      expr.Element
}

func (c *BindingConflict) Error() string {
	return fmt.Sprintf("pattern: cannot bind %s to %s: already bound to %s",
		c.Name, c.New, c.Existing)
}

// Len returns the number of bindings.
func (b *Bindings) Len() int {
	return len(b.m)
}

// Get returns the value bound to name.
func (b *Bindings) Get(name *expr.Symbol) (expr.Element, bool) {
	v, ok := b.m[name]
	return v, ok
}

// Has reports whether name is bound.
func (b *Bindings) Has(name *expr.Symbol) bool {
	_, ok := b.m[name]
	return ok
}

// Bind returns new Bindings extended by name → value. Re-binding a name
// to a structurally equal value is idempotent and returns the receiver
// unchanged; binding it to a different value fails with BindingConflict.
func (b *Bindings) Bind(name *expr.Symbol, value expr.Element) (*Bindings, error) {
	if existing, ok := b.m[name]; ok {
		if expr.Equal(existing, value) {
			return b, nil
		}
		return nil, &BindingConflict{Name: name, Existing: existing, New: value}
	}
	m := make(map[*expr.Symbol]expr.Element, len(b.m)+1)
	for k, v := range b.m {
		m[k] = v
	}
	m[name] = value
	return &Bindings{m: m}, nil
}

// Merge combines two Bindings. It fails with BindingConflict as soon as
// a name maps to different values in each.
func (b *Bindings) Merge(other *Bindings) (*Bindings, error) {
	if other.Len() == 0 {
		return b, nil
	}
	if b.Len() == 0 {
		return other, nil
	}
	merged := b
	var err error
	for k, v := range other.m {
		if merged, err = merged.Bind(k, v); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

// Compatible reports whether Merge would succeed without a conflict.
func (b *Bindings) Compatible(other *Bindings) bool {
	for k, v := range other.m {
		if existing, ok := b.m[k]; ok && !expr.Equal(existing, v) {
			return false
		}
	}
	return true
}

// Names returns the bound symbols in name order.
func (b *Bindings) Names() []*expr.Symbol {
	names := make([]*expr.Symbol, 0, len(b.m))
	for k := range b.m {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool { return names[i].Name() < names[j].Name() })
	return names
}

func (b *Bindings) String() string {
	if len(b.m) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, name := range b.Names() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name.Name())
		sb.WriteString(" -> ")
		sb.WriteString(b.m[name].String())
	}
	sb.WriteByte('}')
	return sb.String()
}
