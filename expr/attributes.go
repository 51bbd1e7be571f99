package expr

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
)

// Attribute vocabulary. Attributes are ordinary interned symbols; they
// are pure data consulted by the matcher and the evaluator and never
// trigger behavior on their own.
var (
	// Protection flags (advisory metadata for definition guards).
	Protected     *Symbol
	ReadProtected *Symbol
	Locked        *Symbol
	Constant      *Symbol
	Temporary     *Symbol

	// Hold attributes (argument evaluation control).
	HoldFirst       *Symbol
	HoldRest        *Symbol
	HoldAll         *Symbol
	HoldAllComplete *Symbol
	SequenceHold    *Symbol

	// Numeric hold attributes.
	NHoldFirst *Symbol
	NHoldRest  *Symbol
	NHoldAll   *Symbol

	// Structural attributes.
	Flat        *Symbol
	Orderless   *Symbol
	OneIdentity *Symbol
	Listable    *Symbol

	// Function type attributes.
	NumericFunction *Symbol
	Stub            *Symbol
)

var allAttributes *AttrSet

func initAttributes() {
	Protected = Reserve("Protected")
	ReadProtected = Reserve("ReadProtected")
	Locked = Reserve("Locked")
	Constant = Reserve("Constant")
	Temporary = Reserve("Temporary")
	HoldFirst = Reserve("HoldFirst")
	HoldRest = Reserve("HoldRest")
	HoldAll = Reserve("HoldAll")
	HoldAllComplete = Reserve("HoldAllComplete")
	SequenceHold = Reserve("SequenceHold")
	NHoldFirst = Reserve("NHoldFirst")
	NHoldRest = Reserve("NHoldRest")
	NHoldAll = Reserve("NHoldAll")
	Flat = Reserve("Flat")
	Orderless = Reserve("Orderless")
	OneIdentity = Reserve("OneIdentity")
	Listable = Reserve("Listable")
	NumericFunction = Reserve("NumericFunction")
	Stub = Reserve("Stub")
	allAttributes = NewAttrSet(
		Protected, ReadProtected, Locked, Constant, Temporary,
		HoldFirst, HoldRest, HoldAll, HoldAllComplete, SequenceHold,
		NHoldFirst, NHoldRest, NHoldAll,
		Flat, Orderless, OneIdentity, Listable,
		NumericFunction, Stub,
	)
}

// IsAttribute reports whether sym belongs to the attribute vocabulary.
func IsAttribute(sym *Symbol) bool {
	return allAttributes.Contains(sym)
}

// --- AttrSet ---------------------------------------------------------------

// AttrSet is an immutable set of attribute symbols, kept in name order so
// listings are canonical. All modifying operations return a new set.
type AttrSet struct {
	set *treeset.Set
}

func symbolComparator(a, b interface{}) int {
	return strings.Compare(a.(*Symbol).name, b.(*Symbol).name)
}

var emptyAttrs = &AttrSet{set: treeset.NewWith(symbolComparator)}

// NewAttrSet builds an attribute set from symbols.
func NewAttrSet(attrs ...*Symbol) *AttrSet {
	if len(attrs) == 0 {
		return emptyAttrs
	}
	s := treeset.NewWith(symbolComparator)
	for _, a := range attrs {
		s.Add(a)
	}
	return &AttrSet{set: s}
}

// EmptyAttrSet returns the shared empty set.
func EmptyAttrSet() *AttrSet {
	return emptyAttrs
}

// Contains reports membership. A nil receiver is the empty set.
func (s *AttrSet) Contains(a *Symbol) bool {
	return s != nil && s.set.Contains(a)
}

// ContainsAny reports whether any of the given attributes is present.
func (s *AttrSet) ContainsAny(attrs ...*Symbol) bool {
	if s == nil {
		return false
	}
	for _, a := range attrs {
		if s.set.Contains(a) {
			return true
		}
	}
	return false
}

// Size returns the number of attributes in the set.
func (s *AttrSet) Size() int {
	if s == nil {
		return 0
	}
	return s.set.Size()
}

// Empty reports whether the set has no attributes.
func (s *AttrSet) Empty() bool {
	return s.Size() == 0
}

// Symbols returns the attributes in canonical (name) order.
func (s *AttrSet) Symbols() []*Symbol {
	if s == nil {
		return nil
	}
	vals := s.set.Values()
	syms := make([]*Symbol, len(vals))
	for i, v := range vals {
		syms[i] = v.(*Symbol)
	}
	return syms
}

// Add returns a new set with the given attributes added.
func (s *AttrSet) Add(attrs ...*Symbol) *AttrSet {
	if len(attrs) == 0 {
		return s.orEmpty()
	}
	n := treeset.NewWith(symbolComparator)
	if s != nil {
		n.Add(s.set.Values()...)
	}
	for _, a := range attrs {
		n.Add(a)
	}
	return &AttrSet{set: n}
}

// Remove returns a new set with the given attributes removed.
func (s *AttrSet) Remove(attrs ...*Symbol) *AttrSet {
	if s == nil || s.set.Size() == 0 {
		return emptyAttrs
	}
	n := treeset.NewWith(symbolComparator)
	n.Add(s.set.Values()...)
	for _, a := range attrs {
		n.Remove(a)
	}
	if n.Size() == 0 {
		return emptyAttrs
	}
	return &AttrSet{set: n}
}

// Union returns the union of two sets.
func (s *AttrSet) Union(other *AttrSet) *AttrSet {
	if other == nil || other.Size() == 0 {
		return s.orEmpty()
	}
	if s == nil || s.Size() == 0 {
		return other
	}
	return s.Add(other.Symbols()...)
}

func (s *AttrSet) orEmpty() *AttrSet {
	if s == nil {
		return emptyAttrs
	}
	return s
}

func (s *AttrSet) String() string {
	if s.Size() == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, a := range s.Symbols() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.Name())
	}
	b.WriteByte('}')
	return b.String()
}

// --- Hold predicates -------------------------------------------------------

// HoldsFirst reports whether attrs prevent evaluation of the first argument.
func HoldsFirst(attrs *AttrSet) bool {
	return attrs.ContainsAny(HoldFirst, HoldAll, HoldAllComplete)
}

// HoldsRest reports whether attrs prevent evaluation of all but the first
// argument.
func HoldsRest(attrs *AttrSet) bool {
	return attrs.ContainsAny(HoldRest, HoldAll, HoldAllComplete)
}

// HoldsAll reports whether attrs prevent evaluation of every argument.
func HoldsAll(attrs *AttrSet) bool {
	return attrs.ContainsAny(HoldAll, HoldAllComplete)
}

// HoldsCompletely reports whether the strongest hold is in effect.
func HoldsCompletely(attrs *AttrSet) bool {
	return attrs.Contains(HoldAllComplete)
}
