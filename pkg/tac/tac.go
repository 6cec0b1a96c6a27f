// Package tac defines the three-address code shared by the compiler stages
// and the TAC machine.
//
// Every instruction has one of two textual shapes:
//
//	dest = src            (copy)
//	dest = src1 op src2   (binary)
//	RETURN src
//
// The text form is lossy for source variables spelled like a temporary
// (t1, t22): they render exactly as the temporary does and Parse reads them
// back as Temp. Code that needs to tell them apart works on Instr values,
// where Operand.Kind keeps the distinction.
package tac

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind distinguishes assignments from returns.
type Kind int

const (
	Assign Kind = iota
	Return
)

func (k Kind) String() string {
	switch k {
	case Assign:
		return "ASSIGN"
	case Return:
		return "RETURN"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// OperandKind classifies an operand.
type OperandKind int

const (
	Literal OperandKind = iota // decimal integer
	Name                       // source variable
	Temp                       // generator-introduced temporary
)

// Operand is one side of an instruction.
type Operand struct {
	Kind  OperandKind
	Text  string // rendered form: "10", "x", "t3"
	Value int64  // only meaningful for Literal
}

// Lit returns a literal operand.
func Lit(v int64) Operand {
	return Operand{Kind: Literal, Text: strconv.FormatInt(v, 10), Value: v}
}

// Var returns an operand naming a source variable.
func Var(name string) Operand {
	return Operand{Kind: Name, Text: name}
}

// Tmp returns the n-th temporary (1-based).
func Tmp(n int) Operand {
	return Operand{Kind: Temp, Text: "t" + strconv.Itoa(n)}
}

func (o Operand) String() string { return o.Text }

// IsLiteral reports whether o is a decimal literal.
func (o Operand) IsLiteral() bool { return o.Kind == Literal }

// Op is a binary operator. The zero value means "no operator" (a copy).
type Op string

const (
	OpNone Op = ""
	OpAdd  Op = "+"
	OpSub  Op = "-"
	OpMul  Op = "*"
	OpDiv  Op = "/"
)

// ParseOp maps operator text onto an Op.
func ParseOp(s string) (Op, bool) {
	switch Op(s) {
	case OpAdd, OpSub, OpMul, OpDiv:
		return Op(s), true
	}
	return OpNone, false
}

// Instr is a single TAC instruction.
//
//	t1 = a + 3
//	^    ^ ^ ^
//	|    | | Src2
//	|    | Op
//	|    Src1
//	Dest
//
// Return instructions only use Src1.
type Instr struct {
	Kind Kind
	Dest Operand
	Src1 Operand
	Op   Op
	Src2 Operand
}

// Copy builds `dest = src`.
func Copy(dest, src Operand) Instr {
	return Instr{Kind: Assign, Dest: dest, Src1: src}
}

// Binary builds `dest = a op b`.
func Binary(dest Operand, a Operand, op Op, b Operand) Instr {
	return Instr{Kind: Assign, Dest: dest, Src1: a, Op: op, Src2: b}
}

// Ret builds `RETURN src`.
func Ret(src Operand) Instr {
	return Instr{Kind: Return, Src1: src}
}

// IsBinary reports whether the instruction computes `a op b`.
func (in Instr) IsBinary() bool {
	return in.Kind == Assign && in.Op != OpNone
}

// RHS renders the right-hand side of an assignment.
func (in Instr) RHS() string {
	if in.IsBinary() {
		return in.Src1.Text + " " + string(in.Op) + " " + in.Src2.Text
	}
	return in.Src1.Text
}

func (in Instr) String() string {
	if in.Kind == Return {
		return "RETURN " + in.Src1.Text
	}
	return in.Dest.Text + " = " + in.RHS()
}

// Format renders a program one instruction per element.
func Format(prog []Instr) []string {
	out := make([]string, len(prog))
	for i, in := range prog {
		out[i] = in.String()
	}
	return out
}

// Parse reads the textual form produced by Instr.String. An operand
// spelled t<digits> is always read as a temporary.
func Parse(line string) (Instr, error) {
	line = strings.TrimSpace(line)
	if rest, ok := strings.CutPrefix(line, "RETURN "); ok {
		src, err := parseOperand(rest)
		if err != nil {
			return Instr{}, err
		}
		return Ret(src), nil
	}

	lhs, rhs, ok := strings.Cut(line, " = ")
	if !ok {
		return Instr{}, fmt.Errorf("tac: malformed instruction %q", line)
	}
	dest, err := parseOperand(lhs)
	if err != nil {
		return Instr{}, err
	}
	if dest.Kind == Literal {
		return Instr{}, fmt.Errorf("tac: cannot assign to literal in %q", line)
	}

	fields := strings.Split(rhs, " ")
	switch len(fields) {
	case 1:
		src, err := parseOperand(fields[0])
		if err != nil {
			return Instr{}, err
		}
		return Copy(dest, src), nil
	case 3:
		a, err := parseOperand(fields[0])
		if err != nil {
			return Instr{}, err
		}
		op, ok := ParseOp(fields[1])
		if !ok {
			return Instr{}, fmt.Errorf("tac: unknown operator %q in %q", fields[1], line)
		}
		b, err := parseOperand(fields[2])
		if err != nil {
			return Instr{}, err
		}
		return Binary(dest, a, op, b), nil
	}
	return Instr{}, fmt.Errorf("tac: malformed right-hand side %q", rhs)
}

// ParseProgram reads one instruction per line, skipping blank lines.
func ParseProgram(lines []string) ([]Instr, error) {
	var prog []Instr
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		in, err := Parse(l)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		prog = append(prog, in)
	}
	return prog, nil
}

func parseOperand(s string) (Operand, error) {
	if s == "" {
		return Operand{}, fmt.Errorf("tac: empty operand")
	}
	if isDigits(s) {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Operand{}, fmt.Errorf("tac: literal %q out of range", s)
		}
		return Operand{Kind: Literal, Text: s, Value: v}, nil
	}
	if !isIdentifier(s) {
		return Operand{}, fmt.Errorf("tac: invalid operand %q", s)
	}
	if len(s) > 1 && s[0] == 't' && isDigits(s[1:]) {
		return Operand{Kind: Temp, Text: s}, nil
	}
	return Var(s), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isIdentifier(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return s != ""
}
