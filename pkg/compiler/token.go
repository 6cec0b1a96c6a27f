package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	KEYWORD    // "int", "return"
	IDENTIFIER // variable / function name
	NUMBER     // unsigned decimal integer literal
	OPERATOR   // + - * / =
	SYMBOL     // { } ( ) ; ,
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	EOF:        "EOF",
	KEYWORD:    "KEYWORD",
	IDENTIFIER: "IDENTIFIER",
	NUMBER:     "NUMBER",
	OPERATOR:   "OPERATOR",
	SYMBOL:     "SYMBOL",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Token is a single lexical unit produced by the Lexer.
//
// Lexeme always holds the matched source text. For NUMBER tokens Value holds
// the parsed integer.
type Token struct {
	Type   TokenType
	Lexeme string
	Value  int64
	Line   int // 1-based source line
	Col    int // 1-based column of the first character
}

// Is reports whether t has type tt and, when lexeme is non-empty, that exact text.
func (t Token) Is(tt TokenType, lexeme string) bool {
	return t.Type == tt && (lexeme == "" || t.Lexeme == lexeme)
}

func (t Token) String() string {
	switch t.Type {
	case EOF:
		return "EOF"
	case NUMBER:
		return fmt.Sprintf("%s(%d)", t.Type, t.Value)
	}
	return fmt.Sprintf("%s(%s)", t.Type, t.Lexeme)
}
