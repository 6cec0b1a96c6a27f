package compiler

import (
	"fmt"

	"minicc/pkg/tac"
)

// IRGen lowers a function tree to three-address code. Each value owns its
// temporary counter and instruction list, so one IRGen serves exactly one
// generation pass.
type IRGen struct {
	code     []tac.Instr
	nextTemp int
}

func newIRGen() *IRGen {
	return &IRGen{}
}

// GenerateTAC lowers fn. Temporaries are numbered t1, t2, ... across the
// whole function.
func GenerateTAC(fn *FunctionDecl) ([]tac.Instr, error) {
	g := newIRGen()
	if err := g.genFunction(fn); err != nil {
		return nil, err
	}
	return g.code, nil
}

func (g *IRGen) newTemp() tac.Operand {
	g.nextTemp++
	return tac.Tmp(g.nextTemp)
}

func (g *IRGen) emit(in tac.Instr) {
	g.code = append(g.code, in)
}

func (g *IRGen) genFunction(fn *FunctionDecl) error {
	for _, stmt := range fn.Body {
		if err := g.genStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *IRGen) genStmt(s Stmt) error {
	switch n := s.(type) {
	case *VarDecl:
		v, err := g.genExpr(n.Init)
		if err != nil {
			return err
		}
		g.emit(tac.Copy(tac.Var(n.Name), v))
	case *ReturnStmt:
		v, err := g.genExpr(n.Expr)
		if err != nil {
			return err
		}
		g.emit(tac.Ret(v))
	default:
		return fmt.Errorf("irgen: unsupported statement %T", s)
	}
	return nil
}

// genExpr returns the operand holding e's value. Terminals lower to
// themselves; a BinaryExpr lowers both sides, then claims a new temporary.
func (g *IRGen) genExpr(e Expr) (tac.Operand, error) {
	switch n := e.(type) {
	case *Literal:
		return tac.Lit(n.Value), nil
	case *VarRef:
		return tac.Var(n.Name), nil
	case *BinaryExpr:
		left, err := g.genExpr(n.Left)
		if err != nil {
			return tac.Operand{}, err
		}
		right, err := g.genExpr(n.Right)
		if err != nil {
			return tac.Operand{}, err
		}
		op, ok := tac.ParseOp(n.Op)
		if !ok {
			return tac.Operand{}, fmt.Errorf("irgen: unknown operator %q", n.Op)
		}
		dst := g.newTemp()
		g.emit(tac.Binary(dst, left, op, right))
		return dst, nil
	}
	return tac.Operand{}, fmt.Errorf("irgen: unsupported expression %T", e)
}
