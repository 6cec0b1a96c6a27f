package compiler

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// tokenPatterns lists the lexical classes in priority order. The keyword
// alternative is anchored on word boundaries so that "integer" or "int_x"
// fall through to IDENTIFIER.
var tokenPatterns = []struct {
	name    string
	pattern string
	typ     TokenType
}{
	{"KEYWORD", `\b(?:int|return)\b`, KEYWORD},
	{"IDENTIFIER", `[a-zA-Z_]\w*`, IDENTIFIER},
	{"NUMBER", `\d+`, NUMBER},
	{"OPERATOR", `[+\-*/=]`, OPERATOR},
	{"SYMBOL", `[{}();,]`, SYMBOL},
	{"SKIP", `\s+`, EOF},
}

// tokenRegexp is the single combined pattern, one named group per class.
var tokenRegexp = func() *regexp.Regexp {
	parts := make([]string, len(tokenPatterns))
	for i, p := range tokenPatterns {
		parts[i] = "(?P<" + p.name + ">" + p.pattern + ")"
	}
	return regexp.MustCompile(strings.Join(parts, "|"))
}()

// Lexer holds all state for a single scanning pass over src.
type Lexer struct {
	src         string
	skipUnknown bool

	line      int // current 1-based source line
	lineStart int // byte offset of the current line
	scanned   int // byte offset up to which line info is current
}

func newLexer(src string, skipUnknown bool) *Lexer {
	return &Lexer{src: src, skipUnknown: skipUnknown, line: 1}
}

// Lex tokenizes src, failing on the first unrecognized character.
// The returned slice always ends with exactly one EOF token.
func Lex(src string) ([]Token, error) {
	return newLexer(src, false).tokenize()
}

// LexLenient tokenizes src, silently dropping spans that match no pattern.
func LexLenient(src string) ([]Token, error) {
	return newLexer(src, true).tokenize()
}

// position advances the line counters up to byte offset off and returns
// the 1-based line and column there.
func (l *Lexer) position(off int) (int, int) {
	for i := l.scanned; i < off; i++ {
		if l.src[i] == '\n' {
			l.line++
			l.lineStart = i + 1
		}
	}
	l.scanned = off
	return l.line, utf8.RuneCountInString(l.src[l.lineStart:off]) + 1
}

// unmatched reports the span src[from:to] that no pattern covered.
func (l *Lexer) unmatched(from, to int) error {
	if from >= to || l.skipUnknown {
		return nil
	}
	line, col := l.position(from)
	r, _ := utf8.DecodeRuneInString(l.src[from:to])
	return &LexError{Line: line, Col: col, Text: string(r)}
}

func (l *Lexer) tokenize() ([]Token, error) {
	var tokens []Token
	last := 0

	for _, m := range tokenRegexp.FindAllStringSubmatchIndex(l.src, -1) {
		if err := l.unmatched(last, m[0]); err != nil {
			return nil, err
		}
		last = m[1]

		class := -1
		for i := range tokenPatterns {
			if m[2*(i+1)] >= 0 {
				class = i
				break
			}
		}
		p := tokenPatterns[class]
		if p.name == "SKIP" {
			continue
		}

		line, col := l.position(m[0])
		tok := Token{Type: p.typ, Lexeme: l.src[m[0]:m[1]], Line: line, Col: col}
		if tok.Type == NUMBER {
			v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
			if err != nil {
				return nil, &LexError{Line: line, Col: col, Text: tok.Lexeme, Err: ErrNumberRange}
			}
			tok.Value = v
		}
		tokens = append(tokens, tok)
	}
	if err := l.unmatched(last, len(l.src)); err != nil {
		return nil, err
	}

	line, col := l.position(len(l.src))
	return append(tokens, Token{Type: EOF, Line: line, Col: col}), nil
}
