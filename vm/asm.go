package vm

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse assembles a program from text. Instructions are separated by
// semicolons or newlines and comments start with '#'. The push mnemonic
// takes a float operand, i.e:
//
//	pushx; square; pushy; square; add; sqrt; push 0.3; sub
func Parse(text string) (Program, error) {
	var prog Program
	lines := strings.Split(text, "\n")
	for lineno, line := range lines {
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		for _, stmt := range strings.Split(line, ";") {
			fields := strings.Fields(stmt)
			if len(fields) == 0 {
				continue
			}
			ins, err := parseInstruction(fields)
			if err != nil {
				return Program{}, fmt.Errorf("line %d: %w", lineno+1, err)
			}
			err = prog.Append(ins)
			if err != nil {
				return Program{}, fmt.Errorf("line %d: %w", lineno+1, err)
			}
		}
	}
	return prog, nil
}

func parseInstruction(fields []string) (Instruction, error) {
	mnemonic := strings.ToLower(fields[0])
	op, ok := lookupOp(mnemonic)
	if !ok {
		return Instruction{}, fmt.Errorf("unknown mnemonic %q: %w", fields[0], ErrBadOpcode)
	}
	if op != OpPush {
		if len(fields) != 1 {
			return Instruction{}, fmt.Errorf("%s takes no operand", op)
		}
		return Instr(op), nil
	}
	if len(fields) != 2 {
		return Instruction{}, fmt.Errorf("push takes one operand, got %d", len(fields)-1)
	}
	v, err := strconv.ParseFloat(fields[1], 32)
	if err != nil {
		return Instruction{}, fmt.Errorf("push operand: %w", err)
	}
	return Push(float32(v)), nil
}

func lookupOp(mnemonic string) (Op, bool) {
	for op, name := range opNames {
		if name == mnemonic {
			return Op(op), true
		}
	}
	return 0, false
}
