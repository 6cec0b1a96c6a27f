// Package cpu executes three-address code directly. Every name and
// temporary gets its own 64-bit cell, so unlike the single-register listing
// the machine computes the value a program actually returns.
package cpu

import (
	"errors"
	"fmt"
	"io"

	"minicc/pkg/tac"
)

var (
	ErrUndefined    = errors.New("read of unassigned name")
	ErrDivideByZero = errors.New("division by zero")
	ErrNoReturn     = errors.New("program ended without RETURN")
)

// CPU holds the state of one TAC program run.
type CPU struct {
	// Cells holds the current value of each name and temporary, keyed by
	// cell(). A source variable spelled t1 and temporary t1 are distinct.
	Cells map[tac.Operand]int64

	Program []tac.Instr
	PC      int

	Halted bool
	Result int64
	Steps  int

	// Trace, if set, receives each instruction as it executes.
	Trace io.Writer
}

func NewCPU() *CPU {
	return &CPU{Cells: make(map[tac.Operand]int64)}
}

// Load resets the machine and installs prog.
func (c *CPU) Load(prog []tac.Instr) {
	c.Cells = make(map[tac.Operand]int64)
	c.Program = prog
	c.PC = 0
	c.Halted = false
	c.Result = 0
	c.Steps = 0
}

// cell returns the storage key for a name or temporary operand.
func cell(o tac.Operand) tac.Operand {
	return tac.Operand{Kind: o.Kind, Text: o.Text}
}

// Cell reports the current value stored for o.
func (c *CPU) Cell(o tac.Operand) (int64, bool) {
	v, ok := c.Cells[cell(o)]
	return v, ok
}

func (c *CPU) read(o tac.Operand) (int64, error) {
	if o.IsLiteral() {
		return o.Value, nil
	}
	v, ok := c.Cells[cell(o)]
	if !ok {
		return 0, fmt.Errorf("pc %d: %w %q", c.PC, ErrUndefined, o.Text)
	}
	return v, nil
}

func alu(op tac.Op, a, b int64) (int64, error) {
	switch op {
	case tac.OpAdd:
		return a + b, nil
	case tac.OpSub:
		return a - b, nil
	case tac.OpMul:
		return a * b, nil
	case tac.OpDiv:
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return a / b, nil
	}
	return 0, fmt.Errorf("unknown operator %q", op)
}

// Step executes the instruction at PC.
func (c *CPU) Step() error {
	if c.Halted {
		return nil
	}
	if c.PC >= len(c.Program) {
		c.Halted = true
		return ErrNoReturn
	}

	in := c.Program[c.PC]
	if c.Trace != nil {
		fmt.Fprintf(c.Trace, "%04d  %s\n", c.PC, in)
	}

	a, err := c.read(in.Src1)
	if err != nil {
		return err
	}

	switch in.Kind {
	case tac.Return:
		c.Result = a
		c.Halted = true
	case tac.Assign:
		if in.IsBinary() {
			b, err := c.read(in.Src2)
			if err != nil {
				return err
			}
			if a, err = alu(in.Op, a, b); err != nil {
				return fmt.Errorf("pc %d: %w", c.PC, err)
			}
		}
		c.Cells[cell(in.Dest)] = a
	}

	c.PC++
	c.Steps++
	return nil
}

// Run steps until RETURN and yields its value.
func (c *CPU) Run() (int64, error) {
	for !c.Halted {
		if err := c.Step(); err != nil {
			return 0, err
		}
	}
	return c.Result, nil
}

// Execute runs prog on a fresh machine.
func Execute(prog []tac.Instr) (int64, error) {
	c := NewCPU()
	c.Load(prog)
	return c.Run()
}
