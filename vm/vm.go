// Package vm implements a tiny stack based bytecode interpreter that
// evaluates a distance expression at a 2D point.
//
// Programs are fixed size so they can be uploaded as-is to a GPU storage
// buffer and evaluated by the compute kernel returned by [WGSL].
package vm

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
)

const (
	// MaxProgramLen is the capacity of a [Program] in instructions.
	MaxProgramLen = 64
	// StackSize is the capacity of the evaluation stack.
	StackSize = 16
)

var (
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrBadOpcode      = errors.New("bad opcode")
	ErrEmptyStack     = errors.New("program leaves empty stack")
	ErrProgramTooLong = errors.New("program too long")
)

// Op is an instruction opcode. Its numeric value is part of the GPU buffer layout.
type Op uint32

const (
	OpPush   Op = iota // Push Instruction.Value.
	OpPushX            // Push x coordinate of the point.
	OpPushY            // Push y coordinate of the point.
	OpSqrt             // Unary square root.
	OpSquare           // Unary x*x.
	OpNeg              // Unary negation.
	OpSin              // Unary sine.
	OpCos              // Unary cosine.
	OpAbs              // Unary absolute value.
	OpAdd              // a+b, b being the top of the stack.
	OpSub              // a-b
	OpMul              // a*b
	OpDiv              // a/b
	OpMin              // min(a,b), union of distances.
	OpMax              // max(a,b), intersection of distances.
	numOps
)

var opNames = [numOps]string{
	OpPush:   "push",
	OpPushX:  "pushx",
	OpPushY:  "pushy",
	OpSqrt:   "sqrt",
	OpSquare: "square",
	OpNeg:    "neg",
	OpSin:    "sin",
	OpCos:    "cos",
	OpAbs:    "abs",
	OpAdd:    "add",
	OpSub:    "sub",
	OpMul:    "mul",
	OpDiv:    "div",
	OpMin:    "min",
	OpMax:    "max",
}

// IsValid reports whether op is a known opcode.
func (op Op) IsValid() bool { return op < numOps }

func (op Op) String() string {
	if !op.IsValid() {
		return "Op(" + strconv.FormatUint(uint64(op), 10) + ")"
	}
	return opNames[op]
}

// Arity returns the number of values op pops from the stack. Every opcode pushes exactly one value.
func (op Op) Arity() int {
	switch {
	case op <= OpPushY:
		return 0
	case op <= OpAbs:
		return 1
	case op < numOps:
		return 2
	}
	return -1
}

// Instruction is a fixed size opcode record. Value is only used by OpPush.
type Instruction struct {
	Op    Op
	Value float32
}

// Push returns an instruction that pushes v.
func Push(v float32) Instruction { return Instruction{Op: OpPush, Value: v} }

// Instr returns an instruction for an opcode that takes no operand.
func Instr(op Op) Instruction { return Instruction{Op: op} }

func (ins Instruction) String() string {
	if ins.Op == OpPush {
		return "push " + strconv.FormatFloat(float64(ins.Value), 'g', -1, 32)
	}
	return ins.Op.String()
}

// Program is a fixed capacity sequence of instructions of which the first Len are executed.
type Program struct {
	Len  uint32
	Code [MaxProgramLen]Instruction
}

// NewProgram returns a program containing ins.
func NewProgram(ins ...Instruction) (Program, error) {
	var p Program
	err := p.Append(ins...)
	return p, err
}

// Append adds instructions to the end of the program.
func (p *Program) Append(ins ...Instruction) error {
	if int(p.Len)+len(ins) > MaxProgramLen {
		return ErrProgramTooLong
	}
	n := copy(p.Code[p.Len:], ins)
	p.Len += uint32(n)
	return nil
}

// Instructions returns the active instructions of the program.
func (p *Program) Instructions() []Instruction {
	return p.Code[:min(p.Len, MaxProgramLen)]
}

// Reset empties the program.
func (p *Program) Reset() { *p = Program{} }

// Disk returns the program computing the distance to a disk of radius r
// centered at the origin: sqrt(x*x + y*y) - r.
func Disk(r float32) Program {
	p, _ := NewProgram(
		Instr(OpPushX), Instr(OpSquare),
		Instr(OpPushY), Instr(OpSquare),
		Instr(OpAdd), Instr(OpSqrt),
		Push(r), Instr(OpSub),
	)
	return p
}

// Interpret evaluates prog at p and returns the value left on top of the stack.
// It performs no validation: programs that overflow or underflow the stack or
// contain bad opcodes produce garbage or panic. Use [Program.Validate] or
// [Program.Run] for untrusted programs.
func Interpret(prog *Program, p ms2.Vec) float32 {
	var stack [StackSize]float32
	sp := 0
	for _, ins := range prog.Code[:prog.Len] {
		switch ins.Op {
		case OpPush:
			stack[sp] = ins.Value
			sp++
		case OpPushX:
			stack[sp] = p.X
			sp++
		case OpPushY:
			stack[sp] = p.Y
			sp++
		case OpSqrt:
			stack[sp-1] = math32.Sqrt(stack[sp-1])
		case OpSquare:
			stack[sp-1] *= stack[sp-1]
		case OpNeg:
			stack[sp-1] = -stack[sp-1]
		case OpSin:
			stack[sp-1] = math32.Sin(stack[sp-1])
		case OpCos:
			stack[sp-1] = math32.Cos(stack[sp-1])
		case OpAbs:
			stack[sp-1] = math32.Abs(stack[sp-1])
		default:
			sp--
			stack[sp-1] = binop(ins.Op, stack[sp-1], stack[sp])
		}
	}
	return stack[sp-1]
}

func binop(op Op, a, b float32) float32 {
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		return a / b
	case OpMin:
		return math32.Min(a, b)
	case OpMax:
		return math32.Max(a, b)
	}
	return math32.NaN()
}

// Validate statically checks the program never overflows or underflows the
// stack, contains only known opcodes and leaves a value on the stack.
func (p *Program) Validate() error {
	if p.Len > MaxProgramLen {
		return ErrProgramTooLong
	}
	depth := 0
	for i, ins := range p.Code[:p.Len] {
		arity := ins.Op.Arity()
		if arity < 0 {
			return fmt.Errorf("instruction %d (%s): %w", i, ins.Op, ErrBadOpcode)
		}
		if depth < arity {
			return fmt.Errorf("instruction %d (%s): %w", i, ins.Op, ErrStackUnderflow)
		}
		depth += 1 - arity
		if depth > StackSize {
			return fmt.Errorf("instruction %d (%s): %w", i, ins.Op, ErrStackOverflow)
		}
	}
	if depth == 0 {
		return ErrEmptyStack
	}
	return nil
}

// Run is the bounds checked version of [Interpret]. It validates the
// program before evaluating it at pos.
func (p *Program) Run(pos ms2.Vec) (float32, error) {
	err := p.Validate()
	if err != nil {
		return 0, err
	}
	return Interpret(p, pos), nil
}

func (p *Program) String() string {
	var b []byte
	for i, ins := range p.Instructions() {
		if i > 0 {
			b = append(b, "; "...)
		}
		b = append(b, ins.String()...)
	}
	return string(b)
}
