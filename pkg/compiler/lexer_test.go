package compiler

import (
	"errors"
	"reflect"
	"testing"
)

// kinds strips positions so cases only compare type, lexeme and value.
func kinds(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	for i, tok := range tokens {
		out[i] = Token{Type: tok.Type, Lexeme: tok.Lexeme, Value: tok.Value}
	}
	return out
}

func TestLex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
		wantErr  bool
	}{
		{
			name:  "Empty",
			input: "",
			expected: []Token{
				{Type: EOF},
			},
		},
		{
			name:  "Whitespace Only",
			input: " \t\n\r\n ",
			expected: []Token{
				{Type: EOF},
			},
		},
		{
			name:  "Declaration",
			input: "int x = 10;",
			expected: []Token{
				{Type: KEYWORD, Lexeme: "int"},
				{Type: IDENTIFIER, Lexeme: "x"},
				{Type: OPERATOR, Lexeme: "="},
				{Type: NUMBER, Lexeme: "10", Value: 10},
				{Type: SYMBOL, Lexeme: ";"},
				{Type: EOF},
			},
		},
		{
			name:  "Operators and Symbols",
			input: "+ - * / = { } ( ) ; ,",
			expected: []Token{
				{Type: OPERATOR, Lexeme: "+"},
				{Type: OPERATOR, Lexeme: "-"},
				{Type: OPERATOR, Lexeme: "*"},
				{Type: OPERATOR, Lexeme: "/"},
				{Type: OPERATOR, Lexeme: "="},
				{Type: SYMBOL, Lexeme: "{"},
				{Type: SYMBOL, Lexeme: "}"},
				{Type: SYMBOL, Lexeme: "("},
				{Type: SYMBOL, Lexeme: ")"},
				{Type: SYMBOL, Lexeme: ";"},
				{Type: SYMBOL, Lexeme: ","},
				{Type: EOF},
			},
		},
		{
			name:  "Keyword Prefix Is Identifier",
			input: "integer int_x returned return int",
			expected: []Token{
				{Type: IDENTIFIER, Lexeme: "integer"},
				{Type: IDENTIFIER, Lexeme: "int_x"},
				{Type: IDENTIFIER, Lexeme: "returned"},
				{Type: KEYWORD, Lexeme: "return"},
				{Type: KEYWORD, Lexeme: "int"},
				{Type: EOF},
			},
		},
		{
			name:  "Keyword Adjacent To Symbol",
			input: "int main(){return(x);}",
			expected: []Token{
				{Type: KEYWORD, Lexeme: "int"},
				{Type: IDENTIFIER, Lexeme: "main"},
				{Type: SYMBOL, Lexeme: "("},
				{Type: SYMBOL, Lexeme: ")"},
				{Type: SYMBOL, Lexeme: "{"},
				{Type: KEYWORD, Lexeme: "return"},
				{Type: SYMBOL, Lexeme: "("},
				{Type: IDENTIFIER, Lexeme: "x"},
				{Type: SYMBOL, Lexeme: ")"},
				{Type: SYMBOL, Lexeme: ";"},
				{Type: SYMBOL, Lexeme: "}"},
				{Type: EOF},
			},
		},
		{
			name:  "Numbers",
			input: "0 007 123abc",
			expected: []Token{
				{Type: NUMBER, Lexeme: "0", Value: 0},
				{Type: NUMBER, Lexeme: "007", Value: 7},
				{Type: NUMBER, Lexeme: "123", Value: 123},
				{Type: IDENTIFIER, Lexeme: "abc"},
				{Type: EOF},
			},
		},
		{
			name:  "Underscore Identifiers",
			input: "_ _under_score x1",
			expected: []Token{
				{Type: IDENTIFIER, Lexeme: "_"},
				{Type: IDENTIFIER, Lexeme: "_under_score"},
				{Type: IDENTIFIER, Lexeme: "x1"},
				{Type: EOF},
			},
		},
		{
			name:    "Unexpected Character",
			input:   "int x = 1 @ 2;",
			wantErr: true,
		},
		{
			name:  "Multi-character Operator",
			input: "a == b",
			expected: []Token{
				{Type: IDENTIFIER, Lexeme: "a"},
				{Type: OPERATOR, Lexeme: "="},
				{Type: OPERATOR, Lexeme: "="},
				{Type: IDENTIFIER, Lexeme: "b"},
				{Type: EOF},
			},
		},
		{
			name:    "Number Out Of Range",
			input:   "99999999999999999999",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := Lex(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error, got none (tokens: %v)", tokens)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := kinds(tokens); !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestLexPositions(t *testing.T) {
	tokens, err := Lex("int main() {\n  return 7;\n}")
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	checks := []struct {
		idx       int
		line, col int
	}{
		{0, 1, 1},  // int
		{1, 1, 5},  // main
		{5, 2, 3},  // return
		{6, 2, 10}, // 7
		{8, 3, 1},  // }
		{9, 3, 2},  // EOF
	}
	for _, c := range checks {
		tok := tokens[c.idx]
		if tok.Line != c.line || tok.Col != c.col {
			t.Errorf("token %d (%s): expected %d:%d, got %d:%d", c.idx, tok, c.line, c.col, tok.Line, tok.Col)
		}
	}
}

func TestLexEndsWithSingleEOF(t *testing.T) {
	for _, src := range []string{"", "x", "int main() { return 0; }", "   "} {
		tokens, err := Lex(src)
		if err != nil {
			t.Fatalf("Lex(%q): %v", src, err)
		}
		eofs := 0
		for _, tok := range tokens {
			if tok.Type == EOF {
				eofs++
			}
		}
		if eofs != 1 || tokens[len(tokens)-1].Type != EOF {
			t.Errorf("Lex(%q): expected exactly one trailing EOF, got %v", src, tokens)
		}
	}
}

func TestLexErrors(t *testing.T) {
	_, err := Lex("int x = 1;\nint y = 2 $ 3;")
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *LexError, got %T (%v)", err, err)
	}
	if !errors.Is(err, ErrUnrecognizedInput) {
		t.Errorf("expected ErrUnrecognizedInput, got %v", err)
	}
	if lexErr.Line != 2 || lexErr.Col != 11 || lexErr.Text != "$" {
		t.Errorf("expected $ at 2:11, got %q at %d:%d", lexErr.Text, lexErr.Line, lexErr.Col)
	}

	_, err = Lex("return 18446744073709551616;")
	if !errors.Is(err, ErrNumberRange) {
		t.Errorf("expected ErrNumberRange, got %v", err)
	}
}

func TestLexLenient(t *testing.T) {
	tokens, err := LexLenient("int x = 1 @ # 2;")
	if err != nil {
		t.Fatalf("LexLenient failed: %v", err)
	}
	expected := []Token{
		{Type: KEYWORD, Lexeme: "int"},
		{Type: IDENTIFIER, Lexeme: "x"},
		{Type: OPERATOR, Lexeme: "="},
		{Type: NUMBER, Lexeme: "1", Value: 1},
		{Type: NUMBER, Lexeme: "2", Value: 2},
		{Type: SYMBOL, Lexeme: ";"},
		{Type: EOF},
	}
	if got := kinds(tokens); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Type: NUMBER, Lexeme: "10", Value: 10}
	if tok.String() != "NUMBER(10)" {
		t.Errorf("expected NUMBER(10), got %s", tok)
	}
	padded := Token{Type: NUMBER, Lexeme: "007", Value: 7}
	if padded.String() != "NUMBER(7)" {
		t.Errorf("expected NUMBER(7), got %s", padded)
	}
	if (Token{Type: EOF}).String() != "EOF" {
		t.Errorf("expected EOF")
	}
	if TokenType(99).String() != "TokenType(99)" {
		t.Errorf("unexpected name for unknown type: %s", TokenType(99))
	}
}

func TestLexNonASCIILetters(t *testing.T) {
	// Word classes are ASCII-only: é ends the keyword and is unrecognized.
	if _, err := Lex("inté"); !errors.Is(err, ErrUnrecognizedInput) {
		t.Errorf("strict: expected ErrUnrecognizedInput, got %v", err)
	}
	tokens, err := LexLenient("inté")
	if err != nil {
		t.Fatalf("LexLenient failed: %v", err)
	}
	expected := []Token{{Type: KEYWORD, Lexeme: "int"}, {Type: EOF}}
	if got := kinds(tokens); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}
