package compiler

import (
	"fmt"
	"io"

	"minicc/pkg/tac"
)

// Options configures one compilation. The zero value fails fast on
// unrecognized input and reports nothing.
type Options struct {
	// SkipUnrecognized drops unmatched source spans instead of failing.
	SkipUnrecognized bool
	// Diag, if set, receives a "<stage> error: <err>" line on failure.
	Diag io.Writer
	// Jobs bounds CompileAll's concurrency; <= 0 means GOMAXPROCS.
	Jobs int
}

// Result holds every stage's output for one source.
type Result struct {
	Tokens    []Token
	AST       *FunctionDecl
	Symbols   *SymbolTable
	TAC       []tac.Instr
	Optimized []tac.Instr
	Assembly  string
}

// Compile translates src into an assembly listing.
func Compile(src string) (string, error) {
	res, err := Run(src, Options{})
	if err != nil {
		return "", err
	}
	return res.Assembly, nil
}

// CompileWithOptions is Compile with explicit options.
func CompileWithOptions(src string, opts Options) (string, error) {
	res, err := Run(src, opts)
	if err != nil {
		return "", err
	}
	return res.Assembly, nil
}

// Run executes the whole pipeline and keeps each stage's output.
// The first failing stage aborts the run; no partial Result is returned.
func Run(src string, opts Options) (*Result, error) {
	lex := Lex
	if opts.SkipUnrecognized {
		lex = LexLenient
	}
	tokens, err := lex(src)
	if err != nil {
		return nil, opts.fail("lex", err)
	}

	fn, err := Parse(tokens, src)
	if err != nil {
		return nil, opts.fail("parse", err)
	}

	syms := NewSymbolTable()
	if err := Analyze(fn, syms); err != nil {
		return nil, opts.fail("semantic", err)
	}

	code, err := GenerateTAC(fn)
	if err != nil {
		return nil, opts.fail("irgen", err)
	}

	optimized := Optimize(code)

	return &Result{
		Tokens:    tokens,
		AST:       fn,
		Symbols:   syms,
		TAC:       code,
		Optimized: optimized,
		Assembly:  Generate(optimized),
	}, nil
}

func (o Options) fail(stage string, err error) error {
	if o.Diag != nil {
		fmt.Fprintf(o.Diag, "%s error: %v\n", stage, err)
	}
	return err
}
