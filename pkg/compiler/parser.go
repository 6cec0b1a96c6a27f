package compiler

import (
	"fmt"
	"strings"
)

// Parser consumes the flat token slice produced by the Lexer and builds an AST.
//
// Grammar:
//
//	function   = "int" IDENTIFIER "(" ")" "{" statement* "}"
//	statement  = varDecl | returnStmt
//	varDecl    = "int" IDENTIFIER "=" expression ";"
//	returnStmt = "return" expression ";"
//	expression = term (("+" | "-" | "*" | "/") term)*
//	term       = IDENTIFIER | NUMBER
//
// All four operators share one precedence level and associate to the left.
type Parser struct {
	tokens      []Token
	pos         int
	sourceLines []string
}

func NewParser(tokens []Token, rawSource string) *Parser {
	return &Parser{tokens: tokens, sourceLines: strings.Split(rawSource, "\n")}
}

// Parse builds the function tree for tokens. src is only used for error snippets.
func Parse(tokens []Token, src string) (*FunctionDecl, error) {
	return NewParser(tokens, src).Parse()
}

// Parse parses a single function. Tokens after its closing brace are ignored.
func (p *Parser) Parse() (*FunctionDecl, error) {
	return p.parseFunction()
}

// syntaxError builds a SyntaxError located at tok.
func (p *Parser) syntaxError(tok Token, expected string, format string, args ...any) error {
	lineIdx := tok.Line - 1 // Lines are 1-based

	snippet := "<source unavailable>"
	if lineIdx >= 0 && lineIdx < len(p.sourceLines) {
		snippet = strings.TrimSpace(p.sourceLines[lineIdx])
	}

	return &SyntaxError{
		Line:     tok.Line,
		Col:      tok.Col,
		Expected: expected,
		Got:      tok,
		Msg:      fmt.Sprintf(format, args...),
		Snippet:  snippet,
	}
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: EOF}
	}
	return p.tokens[p.pos]
}

// expect consumes the current token if it has type tt and, when lexeme is
// non-empty, that exact text. On failure the position is left unchanged.
func (p *Parser) expect(tt TokenType, lexeme string) (Token, error) {
	tok := p.peek()
	if !tok.Is(tt, lexeme) {
		want := tt.String()
		if lexeme != "" {
			want = fmt.Sprintf("%s(%s)", tt, lexeme)
		}
		return tok, p.syntaxError(tok, want, "")
	}
	p.pos++
	return tok, nil
}

func (p *Parser) parseFunction() (*FunctionDecl, error) {
	if _, err := p.expect(KEYWORD, "int"); err != nil {
		return nil, err
	}
	name, err := p.expect(IDENTIFIER, "")
	if err != nil {
		return nil, err
	}
	for _, sym := range []string{"(", ")", "{"} {
		if _, err := p.expect(SYMBOL, sym); err != nil {
			return nil, err
		}
	}

	fn := &FunctionDecl{Name: name.Lexeme}
	for !p.peek().Is(SYMBOL, "}") {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		fn.Body = append(fn.Body, stmt)
	}
	if _, err := p.expect(SYMBOL, "}"); err != nil {
		return nil, err
	}
	return fn, nil
}

func (p *Parser) parseStatement() (Stmt, error) {
	tok := p.peek()
	switch {
	case tok.Is(KEYWORD, "int"):
		return p.parseVarDecl()
	case tok.Is(KEYWORD, "return"):
		return p.parseReturn()
	}
	return nil, p.syntaxError(tok, "", "unexpected token %s at start of statement", tok)
}

func (p *Parser) parseVarDecl() (Stmt, error) {
	if _, err := p.expect(KEYWORD, "int"); err != nil {
		return nil, err
	}
	name, err := p.expect(IDENTIFIER, "")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(OPERATOR, "="); err != nil {
		return nil, err
	}
	init, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SYMBOL, ";"); err != nil {
		return nil, err
	}
	return &VarDecl{Name: name.Lexeme, Init: init}, nil
}

func (p *Parser) parseReturn() (Stmt, error) {
	if _, err := p.expect(KEYWORD, "return"); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SYMBOL, ";"); err != nil {
		return nil, err
	}
	return &ReturnStmt{Expr: expr}, nil
}

// isBinaryOp reports whether tok is one of the four arithmetic operators.
func isBinaryOp(tok Token) bool {
	if tok.Type != OPERATOR {
		return false
	}
	switch tok.Lexeme {
	case "+", "-", "*", "/":
		return true
	}
	return false
}

// parseExpression folds term/operator pairs onto the left operand.
func (p *Parser) parseExpression() (Expr, error) {
	expr, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for isBinaryOp(p.peek()) {
		op := p.peek()
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op.Lexeme, Left: expr, Right: right}
	}
	return expr, nil
}

func (p *Parser) parseTerm() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case IDENTIFIER:
		p.pos++
		return &VarRef{Name: tok.Lexeme}, nil
	case NUMBER:
		p.pos++
		return &Literal{Value: tok.Value}, nil
	}
	return nil, p.syntaxError(tok, "", "unexpected term %s", tok)
}
