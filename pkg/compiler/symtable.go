package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// TypeInt is the only declared type.
const TypeInt = "int"

// Symbol is one entry in the declaration table.
type Symbol struct {
	Name  string
	Type  string
	Order int // 0-based declaration order
}

// SymbolTable maps variable names to their declared type. There is a single
// flat scope covering the whole function body.
type SymbolTable struct {
	symbols map[string]Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]Symbol)}
}

// Define inserts name with type typ. It reports false, leaving the table
// untouched, when name is already declared.
func (s *SymbolTable) Define(name, typ string) (Symbol, bool) {
	if sym, ok := s.symbols[name]; ok {
		return sym, false
	}
	sym := Symbol{Name: name, Type: typ, Order: len(s.symbols)}
	s.symbols[name] = sym
	return sym, true
}

// Lookup returns the symbol and whether it was found.
func (s *SymbolTable) Lookup(name string) (Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Len returns the number of declared names.
func (s *SymbolTable) Len() int { return len(s.symbols) }

// Symbols returns every entry in declaration order.
func (s *SymbolTable) Symbols() []Symbol {
	out := make([]Symbol, 0, len(s.symbols))
	for _, sym := range s.symbols {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// String returns a deterministically ordered dump of the table.
func (s *SymbolTable) String() string {
	if len(s.symbols) == 0 {
		return "Declarations: (empty)\n"
	}
	var sb strings.Builder
	sb.WriteString("Declarations:\n")
	for _, sym := range s.Symbols() {
		fmt.Fprintf(&sb, "  %-20s  Type: %s\n", sym.Name, sym.Type)
	}
	return sb.String()
}
