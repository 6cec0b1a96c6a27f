// Package asm reads and verifies the pseudo-x86 listings produced by the
// compiler.
package asm

import (
	"fmt"
	"strings"
	"unicode"

	"minicc/pkg/tac"
)

var registers = map[string]bool{
	"eax": true,
	"ebx": true,
	"ecx": true,
	"edx": true,
}

// operandCounts lists the known mnemonics and directives with their arity.
var operandCounts = map[string]int{
	"section": 1,
	"global":  1,
	"mov":     2,
	"ret":     0,
}

// Line is one parsed listing line.
type Line struct {
	LineNo   int
	Labels   []string
	Mnemonic string // lower-cased; empty for label-only or blank lines
	Operands []string
}

// IsDirective reports whether the line is a section or global directive.
func (l Line) IsDirective() bool {
	return l.Mnemonic == "section" || l.Mnemonic == "global"
}

// Listing is a parsed assembly text.
type Listing struct {
	Lines   []Line
	Labels  map[string]int // label -> index into Lines
	Section string
	Globals []string
}

// Parse splits code into lines, collecting labels and directives.
func Parse(code string) (*Listing, error) {
	l := &Listing{Labels: make(map[string]int)}
	for i, raw := range strings.Split(code, "\n") {
		lineNo := i + 1
		p, err := parseLine(raw, lineNo)
		if err != nil {
			return nil, err
		}
		for _, lbl := range p.Labels {
			if _, exists := l.Labels[lbl]; exists {
				return nil, fmt.Errorf("duplicate label '%s' on line %d", lbl, lineNo)
			}
			l.Labels[lbl] = len(l.Lines)
		}
		switch p.Mnemonic {
		case "section":
			l.Section = p.Operands[0]
		case "global":
			l.Globals = append(l.Globals, p.Operands[0])
		}
		l.Lines = append(l.Lines, p)
	}
	return l, nil
}

// Instructions returns the lines that carry a machine mnemonic.
func (l *Listing) Instructions() []Line {
	var out []Line
	for _, ln := range l.Lines {
		if ln.Mnemonic != "" && !ln.IsDirective() {
			out = append(out, ln)
		}
	}
	return out
}

// Verify checks the fixed header, global symbols, and every instruction.
func (l *Listing) Verify() error {
	if err := l.verifyHeader(); err != nil {
		return err
	}
	for _, g := range l.Globals {
		if _, ok := l.Labels[g]; !ok {
			return fmt.Errorf("global symbol '%s' has no label", g)
		}
	}
	for _, ln := range l.Instructions() {
		if ln.Mnemonic != "mov" {
			continue
		}
		if !registers[ln.Operands[0]] {
			return fmt.Errorf("invalid register '%s' on line %d", ln.Operands[0], ln.LineNo)
		}
		if _, err := tac.Parse("_ = " + ln.Operands[1]); err != nil {
			return fmt.Errorf("invalid source operand '%s' on line %d", ln.Operands[1], ln.LineNo)
		}
	}
	return nil
}

func (l *Listing) verifyHeader() error {
	var first []Line
	for _, ln := range l.Lines {
		if ln.Mnemonic == "" && len(ln.Labels) == 0 {
			continue
		}
		first = append(first, ln)
		if len(first) == 3 {
			break
		}
	}
	if len(first) < 3 ||
		first[0].Mnemonic != "section" || first[0].Operands[0] != ".text" ||
		first[1].Mnemonic != "global" ||
		len(first[2].Labels) != 1 || first[2].Labels[0] != first[1].Operands[0] || first[2].Mnemonic != "" {
		return fmt.Errorf("missing listing header (section .text / global <sym> / <sym>:)")
	}
	return nil
}

// Check parses and verifies code.
func Check(code string) (*Listing, error) {
	l, err := Parse(code)
	if err != nil {
		return nil, err
	}
	if err := l.Verify(); err != nil {
		return nil, err
	}
	return l, nil
}

func parseLine(raw string, lineNo int) (Line, error) {
	p := Line{LineNo: lineNo}

	line := strings.TrimSpace(stripComments(raw))
	for {
		colon := strings.IndexByte(line, ':')
		if colon <= 0 {
			break
		}
		label := strings.TrimSpace(line[:colon])
		if strings.ContainsAny(label, " \t") {
			break
		}
		if !isIdentifier(label) {
			return p, fmt.Errorf("invalid label '%s' on line %d", label, lineNo)
		}
		p.Labels = append(p.Labels, label)
		line = strings.TrimSpace(line[colon+1:])
	}
	if line == "" {
		return p, nil
	}

	mnemonic, rest, _ := strings.Cut(line, " ")
	p.Mnemonic = strings.ToLower(mnemonic)
	if rest = strings.TrimSpace(rest); rest != "" {
		// The source operand of mov may contain spaces, so only split on the
		// first comma.
		dst, src, found := strings.Cut(rest, ",")
		p.Operands = []string{strings.TrimSpace(dst)}
		if found {
			p.Operands = append(p.Operands, strings.TrimSpace(src))
		}
	}

	want, ok := operandCounts[p.Mnemonic]
	if !ok {
		return p, fmt.Errorf("unknown instruction on line %d: %s", lineNo, mnemonic)
	}
	if len(p.Operands) != want {
		return p, fmt.Errorf("%s expects %d operand(s) on line %d, got %d", p.Mnemonic, want, lineNo, len(p.Operands))
	}
	return p, nil
}

func stripComments(line string) string {
	if cut := strings.IndexByte(line, ';'); cut >= 0 {
		return line[:cut]
	}
	return line
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
