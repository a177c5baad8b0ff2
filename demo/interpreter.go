package demo

import (
	"fmt"

	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shaderart/vm"
)

// Interpreter colours the distance field computed per pixel by a bytecode
// program.
type Interpreter struct {
	prog vm.Program
	// Scale is the number of world units per screen height.
	Scale float32
}

// NewInterpreter returns the interpreter demo running the disk program.
func NewInterpreter() *Interpreter {
	return &Interpreter{prog: vm.Disk(0.3), Scale: 1}
}

func (*Interpreter) Name() string { return NameInterpreter }

// SetProgram validates prog and makes it the program evaluated per pixel.
// The previous program is kept if prog is invalid.
func (it *Interpreter) SetProgram(prog vm.Program) error {
	if err := prog.Validate(); err != nil {
		return fmt.Errorf("interpreter program: %w", err)
	}
	it.prog = prog
	return nil
}

// Program returns the program evaluated per pixel.
func (it *Interpreter) Program() vm.Program { return it.prog }

func (it *Interpreter) Shade(frag ms2.Vec, f *Frame) ms3.Vec {
	scale := it.Scale
	if scale <= 0 {
		scale = 1
	}
	uv := ms2.Scale(scale, f.UV(frag))
	col := DistanceColor(vm.Interpret(&it.prog, uv))
	cursor := ms2.Scale(scale, f.Cursor)
	col = drawCursor(col, uv, cursor, vm.Interpret(&it.prog, cursor))
	return clamp3(col)
}
