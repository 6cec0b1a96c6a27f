package compiler

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// parseSource lexes and parses src, failing the test on error.
func parseSource(t *testing.T, src string) *FunctionDecl {
	t.Helper()
	tokens, err := Lex(src)
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	fn, err := Parse(tokens, src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return fn
}

// TestParse verifies that Parse produces the correct AST for valid inputs.
func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *FunctionDecl
	}{
		{
			name:     "Empty Body",
			input:    "int main() { }",
			expected: &FunctionDecl{Name: "main"},
		},
		{
			name:  "Variable Declaration",
			input: "int main() { int x = 10; }",
			expected: &FunctionDecl{Name: "main", Body: []Stmt{
				&VarDecl{Name: "x", Init: &Literal{Value: 10}},
			}},
		},
		{
			name:  "Return Identifier",
			input: "int f() { int a = 1; return a; }",
			expected: &FunctionDecl{Name: "f", Body: []Stmt{
				&VarDecl{Name: "a", Init: &Literal{Value: 1}},
				&ReturnStmt{Expr: &VarRef{Name: "a"}},
			}},
		},
		{
			name:  "Binary Addition",
			input: "int main() { int a = 2 + 3; return a; }",
			expected: &FunctionDecl{Name: "main", Body: []Stmt{
				&VarDecl{Name: "a", Init: &BinaryExpr{Op: "+", Left: &Literal{Value: 2}, Right: &Literal{Value: 3}}},
				&ReturnStmt{Expr: &VarRef{Name: "a"}},
			}},
		},
		{
			name:  "Flat Precedence",
			input: "int main() { return a + b * c; }",
			expected: &FunctionDecl{Name: "main", Body: []Stmt{
				&ReturnStmt{Expr: &BinaryExpr{
					Op:    "*",
					Left:  &BinaryExpr{Op: "+", Left: &VarRef{Name: "a"}, Right: &VarRef{Name: "b"}},
					Right: &VarRef{Name: "c"},
				}},
			}},
		},
		{
			name:  "Left Associative Chain",
			input: "int main() { return 8 / 4 - 1; }",
			expected: &FunctionDecl{Name: "main", Body: []Stmt{
				&ReturnStmt{Expr: &BinaryExpr{
					Op:    "-",
					Left:  &BinaryExpr{Op: "/", Left: &Literal{Value: 8}, Right: &Literal{Value: 4}},
					Right: &Literal{Value: 1},
				}},
			}},
		},
		{
			name:  "Statements After Return",
			input: "int main() { return 1; int x = 2; return x; }",
			expected: &FunctionDecl{Name: "main", Body: []Stmt{
				&ReturnStmt{Expr: &Literal{Value: 1}},
				&VarDecl{Name: "x", Init: &Literal{Value: 2}},
				&ReturnStmt{Expr: &VarRef{Name: "x"}},
			}},
		},
		{
			name:  "Trailing Tokens Ignored",
			input: "int main() { return 0; } junk ;",
			expected: &FunctionDecl{Name: "main", Body: []Stmt{
				&ReturnStmt{Expr: &Literal{Value: 0}},
			}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := parseSource(t, tc.input)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"Missing Return Type", "main() { }", "expected KEYWORD(int), got IDENTIFIER(main)"},
		{"Keyword As Name", "int return() { }", "expected IDENTIFIER, got KEYWORD(return)"},
		{"Missing Paren", "int main { }", "expected SYMBOL((), got SYMBOL({)"},
		{"Missing Semicolon", "int main() { int x = 1 }", "expected SYMBOL(;), got SYMBOL(})"},
		{"Missing Initializer", "int main() { int x; }", "expected OPERATOR(=), got SYMBOL(;)"},
		{"Bad Statement", "int main() { x = 1; }", "unexpected token IDENTIFIER(x) at start of statement"},
		{"Unclosed Body", "int main() { return 1;", "unexpected token EOF at start of statement"},
		{"Parenthesized Term", "int main() { return (1); }", "unexpected term SYMBOL(()"},
		{"Unary Minus", "int main() { return -1; }", "unexpected term OPERATOR(-)"},
		{"Dangling Operator", "int main() { return 1 +; }", "unexpected term SYMBOL(;)"},
		{"Empty Input", "", "expected KEYWORD(int), got EOF"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := Lex(tc.input)
			if err != nil {
				t.Fatalf("Lex failed: %v", err)
			}
			_, err = Parse(tokens, tc.input)
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantMsg)
			}
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("expected ErrSyntax, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("expected error containing %q, got %q", tc.wantMsg, err.Error())
			}
		})
	}
}

func TestSyntaxErrorSnippet(t *testing.T) {
	src := "int main() {\n  int x = 1\n}"
	tokens, _ := Lex(src)
	_, err := Parse(tokens, src)

	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected *SyntaxError, got %T (%v)", err, err)
	}
	if syntaxErr.Line != 3 || syntaxErr.Expected != "SYMBOL(;)" || syntaxErr.Got.Lexeme != "}" {
		t.Errorf("unexpected error fields: %+v", syntaxErr)
	}
	if !strings.HasPrefix(err.Error(), "line 3: expected SYMBOL(;), got SYMBOL(})\n  |> }") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

// TestExpectLeavesPositionOnFailure checks that a failed expect does not
// consume the offending token while a successful one consumes exactly one.
func TestExpectLeavesPositionOnFailure(t *testing.T) {
	tokens, _ := Lex("int x")
	p := NewParser(tokens, "int x")

	if _, err := p.expect(KEYWORD, "return"); err == nil {
		t.Fatal("expected mismatch on KEYWORD(return)")
	}
	if p.pos != 0 {
		t.Errorf("failed expect moved position to %d", p.pos)
	}

	if _, err := p.expect(KEYWORD, "int"); err != nil {
		t.Fatalf("expect int: %v", err)
	}
	if p.pos != 1 {
		t.Errorf("successful expect: expected position 1, got %d", p.pos)
	}

	tok, err := p.expect(IDENTIFIER, "")
	if err != nil || tok.Lexeme != "x" || p.pos != 2 {
		t.Errorf("expect IDENTIFIER: tok=%v err=%v pos=%d", tok, err, p.pos)
	}
}

func TestFunctionDeclString(t *testing.T) {
	fn := parseSource(t, "int main() { int a = 2 + 3; return a; }")
	want := "Function(main, [VarDecl(a = (2 + 3)), Return(a)])"
	if fn.String() != want {
		t.Errorf("expected %q, got %q", want, fn.String())
	}
}
