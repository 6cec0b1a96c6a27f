package compiler

import (
	"errors"
	"fmt"
)

// Error kinds. Every stage error unwraps to exactly one of these.
var (
	ErrUnrecognizedInput = errors.New("unrecognized input")
	ErrNumberRange       = errors.New("number out of range")
	ErrSyntax            = errors.New("syntax error")
	ErrDuplicateDecl     = errors.New("duplicate declaration")
	ErrUndefinedVar      = errors.New("undefined variable")
)

// LexError reports source text that the lexer could not classify.
type LexError struct {
	Line int
	Col  int
	Text string
	Err  error // nil means ErrUnrecognizedInput
}

func (e *LexError) Error() string {
	return fmt.Sprintf("line %d:%d: %v %q", e.Line, e.Col, e.Unwrap(), e.Text)
}

func (e *LexError) Unwrap() error {
	if e.Err == nil {
		return ErrUnrecognizedInput
	}
	return e.Err
}

// SyntaxError reports a token that does not fit the grammar.
type SyntaxError struct {
	Line     int
	Col      int
	Expected string // empty when no single token was required
	Got      Token
	Msg      string
	Snippet  string // trimmed source line, if available
}

func (e *SyntaxError) Error() string {
	msg := e.Msg
	if e.Expected != "" {
		msg = fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
	}
	return fmt.Sprintf("line %d: %s\n  |> %s", e.Line, msg, e.Snippet)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// NameError reports a declaration-table violation.
type NameError struct {
	Kind error // ErrDuplicateDecl or ErrUndefinedVar
	Name string
}

func (e *NameError) Error() string {
	switch e.Kind {
	case ErrDuplicateDecl:
		return fmt.Sprintf("duplicate declaration of %s", e.Name)
	case ErrUndefinedVar:
		return fmt.Sprintf("undefined variable %s", e.Name)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Name)
}

func (e *NameError) Unwrap() error { return e.Kind }
