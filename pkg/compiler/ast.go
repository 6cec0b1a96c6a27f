package compiler

import (
	"fmt"
	"strings"
)

//  Expression nodes

// Expr is implemented by every node that produces a value.
// The set is closed: *Literal, *VarRef and *BinaryExpr.
type Expr interface {
	exprNode()
	String() string
}

// Literal is an integer constant.
//
//	int x = 10;
//	        ^^  Literal{Value: 10}
type Literal struct {
	Value int64
}

func (*Literal) exprNode()        {}
func (l *Literal) String() string { return fmt.Sprintf("%d", l.Value) }

// VarRef is a read of a named variable.
//
//	return x;
//	       ^  VarRef{Name: "x"}
type VarRef struct {
	Name string
}

func (*VarRef) exprNode()        {}
func (v *VarRef) String() string { return v.Name }

// BinaryExpr represents Left Op Right. Chains nest on the left:
//
//	a + b * c   →   BinaryExpr{Op: "*", Left: BinaryExpr{a + b}, Right: c}
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

//  Statement nodes

// Stmt is implemented by every statement node: *VarDecl and *ReturnStmt.
type Stmt interface {
	stmtNode()
	String() string
}

// VarDecl is `int Name = Init;`.
type VarDecl struct {
	Name string
	Init Expr
}

func (*VarDecl) stmtNode() {}
func (d *VarDecl) String() string {
	return fmt.Sprintf("VarDecl(%s = %s)", d.Name, d.Init)
}

// ReturnStmt is `return Expr;`.
type ReturnStmt struct {
	Expr Expr
}

func (*ReturnStmt) stmtNode() {}
func (r *ReturnStmt) String() string {
	return fmt.Sprintf("Return(%s)", r.Expr)
}

// FunctionDecl is the root of every tree: `int Name() { Body }`.
type FunctionDecl struct {
	Name string
	Body []Stmt
}

func (f *FunctionDecl) String() string {
	parts := make([]string, len(f.Body))
	for i, s := range f.Body {
		parts[i] = s.String()
	}
	return fmt.Sprintf("Function(%s, [%s])", f.Name, strings.Join(parts, ", "))
}
