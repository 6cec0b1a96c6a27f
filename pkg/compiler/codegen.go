package compiler

import (
	"fmt"
	"strings"

	"minicc/pkg/tac"
)

// AccumulatorReg receives every assignment's right-hand side.
const AccumulatorReg = "eax"

// ListingHeader opens every listing.
var ListingHeader = []string{"section .text", "global main", "main:"}

// CodeGen maps TAC onto pseudo-assembly lines.
type CodeGen struct {
	lines []string
}

func newCodeGen() *CodeGen {
	return &CodeGen{}
}

func (cg *CodeGen) line(format string, args ...any) {
	cg.lines = append(cg.lines, fmt.Sprintf(format, args...))
}

// Generate emits the listing for prog, newline-joined without a trailing
// newline. Assignments all target AccumulatorReg regardless of destination
// and RETURN becomes a bare ret.
func Generate(prog []tac.Instr) string {
	cg := newCodeGen()
	cg.lines = append(cg.lines, ListingHeader...)
	for _, in := range prog {
		cg.genInstr(in)
	}
	return strings.Join(cg.lines, "\n")
}

func (cg *CodeGen) genInstr(in tac.Instr) {
	switch in.Kind {
	case tac.Assign:
		cg.line("mov %s, %s", AccumulatorReg, in.RHS())
	case tac.Return:
		cg.line("ret")
	}
}
