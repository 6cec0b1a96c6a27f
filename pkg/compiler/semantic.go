package compiler

// Analyzer checks a function tree against its declaration table.
type Analyzer struct {
	syms *SymbolTable
}

func NewAnalyzer(syms *SymbolTable) *Analyzer {
	return &Analyzer{syms: syms}
}

// Analyze walks fn once, filling syms. It stops at the first violation.
func Analyze(fn *FunctionDecl, syms *SymbolTable) error {
	return NewAnalyzer(syms).Analyze(fn)
}

func (a *Analyzer) Analyze(fn *FunctionDecl) error {
	for _, stmt := range fn.Body {
		if err := a.visitStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) visitStmt(s Stmt) error {
	switch n := s.(type) {
	case *VarDecl:
		// The initializer is not resolved against the table.
		if _, ok := a.syms.Define(n.Name, TypeInt); !ok {
			return &NameError{Kind: ErrDuplicateDecl, Name: n.Name}
		}
	case *ReturnStmt:
		// Only a bare identifier is checked; operands of a returned
		// BinaryExpr are not.
		if ref, ok := n.Expr.(*VarRef); ok {
			if _, found := a.syms.Lookup(ref.Name); !found {
				return &NameError{Kind: ErrUndefinedVar, Name: ref.Name}
			}
		}
	}
	return nil
}
