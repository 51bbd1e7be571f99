package expr

import (
	"fmt"
	"sync"
)

// Symbol is an interned identifier. Symbols are created through Sym and
// are unique per name: two symbols with equal names are the same pointer,
// so identity comparison is a safe equality proxy.
//
// A Symbol carries no attributes and no values. Those live in an
// evaluation context, keyed by the symbol.
type Symbol struct {
	name string
}

// Name returns the symbol's identifier string.
func (s *Symbol) Name() string {
	return s.name
}

func (s *Symbol) String() string {
	return s.name
}

func (s *Symbol) element() {}

// --- Interning registry ----------------------------------------------------

// The registry is explicit process-wide state with a documented lifecycle:
// it is initialized at package load with the system vocabulary and may be
// reset to that state for test isolation. Concurrent readers and writers
// are serialized by the lock.
type symtab struct {
	mu     sync.RWMutex
	syms   map[string]*Symbol
	system map[string]*Symbol // reserved vocabulary, survives Reset
	serial int                // gensym counter
}

var registry = &symtab{
	syms:   make(map[string]*Symbol),
	system: make(map[string]*Symbol),
}

// Sym returns the interned symbol for name, creating it if necessary.
// The empty name is a construction error and panics.
func Sym(name string) *Symbol {
	if name == "" {
		panic("expr: symbol name must not be empty")
	}
	registry.mu.RLock()
	s := registry.syms[name]
	registry.mu.RUnlock()
	if s != nil {
		return s
	}
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if s = registry.syms[name]; s != nil { // re-check under the write lock
		return s
	}
	s = &Symbol{name: name}
	registry.syms[name] = s
	return s
}

// Gensym creates a fresh symbol with an auto-incrementing suffix, for
// temporary names which will not collide with user symbols.
func Gensym(prefix string) *Symbol {
	if prefix == "" {
		prefix = "G"
	}
	registry.mu.Lock()
	defer registry.mu.Unlock()
	for {
		registry.serial++
		name := fmt.Sprintf("%s%d", prefix, registry.serial)
		if _, ok := registry.syms[name]; ok {
			continue
		}
		s := &Symbol{name: name}
		registry.syms[name] = s
		return s
	}
}

// ResetSymbols drops every user-interned symbol and restores the registry
// to the system vocabulary present after package initialization. The
// gensym counter restarts as well. Intended for test isolation.
func ResetSymbols() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.syms = make(map[string]*Symbol, len(registry.system))
	for name, s := range registry.system {
		registry.syms[name] = s
	}
	registry.serial = 0
}

// Reserve interns name as part of the system vocabulary. Reserved symbols
// survive ResetSymbols, so packages may hold them in package variables and
// keep relying on pointer identity. Used by the pattern and eval packages
// for their reserved heads.
func Reserve(name string) *Symbol {
	s := Sym(name)
	registry.mu.Lock()
	registry.system[name] = s
	registry.mu.Unlock()
	return s
}

// --- Reserved heads --------------------------------------------------------

// Heads of atoms and of the structural system expressions. Pre-interned so
// that identity comparison against them is valid even after ResetSymbols.
var (
	SymbolHead   *Symbol
	IntegerHead  *Symbol
	RealHead     *Symbol
	ComplexHead  *Symbol
	StringHead   *Symbol
	SequenceHead *Symbol
	ListHead     *Symbol
	TrueSym      *Symbol
	FalseSym     *Symbol
	NullSym      *Symbol
)

func init() {
	SymbolHead = Reserve("Symbol")
	IntegerHead = Reserve("Integer")
	RealHead = Reserve("Real")
	ComplexHead = Reserve("Complex")
	StringHead = Reserve("String")
	SequenceHead = Reserve("Sequence")
	ListHead = Reserve("List")
	TrueSym = Reserve("True")
	FalseSym = Reserve("False")
	NullSym = Reserve("Null")
	initAttributes()
}
