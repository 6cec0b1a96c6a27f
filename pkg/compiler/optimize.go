package compiler

import (
	"math"

	"minicc/pkg/tac"
)

// Optimize runs one peephole pass over prog and returns a new slice of the
// same length. The only rewrite is `dest = a + b` with both operands literal,
// which becomes `dest = <a+b>`. Other operators are never folded.
func Optimize(prog []tac.Instr) []tac.Instr {
	out := make([]tac.Instr, len(prog))
	for i, in := range prog {
		out[i] = foldAdd(in)
	}
	return out
}

func foldAdd(in tac.Instr) tac.Instr {
	if !in.IsBinary() || in.Op != tac.OpAdd {
		return in
	}
	if !in.Src1.IsLiteral() || !in.Src2.IsLiteral() {
		return in
	}
	a, b := in.Src1.Value, in.Src2.Value
	if a > math.MaxInt64-b {
		// sum does not fit a literal
		return in
	}
	return tac.Copy(in.Dest, tac.Lit(a+b))
}
