package vm

import (
	"encoding/binary"
	"errors"
	"math"
)

const (
	instructionSize = 8
	// ProgramBinarySize is the size of a program's buffer encoding: a u32
	// length followed by MaxProgramLen {u32 op, f32 value} records.
	ProgramBinarySize = 4 + MaxProgramLen*instructionSize
)

// AppendBinary appends the little endian buffer encoding of the program to b.
func (p *Program) AppendBinary(b []byte) ([]byte, error) {
	if p.Len > MaxProgramLen {
		return b, ErrProgramTooLong
	}
	b = binary.LittleEndian.AppendUint32(b, p.Len)
	for _, ins := range p.Code {
		b = binary.LittleEndian.AppendUint32(b, uint32(ins.Op))
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(ins.Value))
	}
	return b, nil
}

// MarshalBinary returns the GPU storage buffer encoding of the program.
func (p *Program) MarshalBinary() ([]byte, error) {
	return p.AppendBinary(make([]byte, 0, ProgramBinarySize))
}

// UnmarshalBinary decodes a program encoded by MarshalBinary.
func (p *Program) UnmarshalBinary(data []byte) error {
	if len(data) != ProgramBinarySize {
		return errors.New("bad program buffer size")
	}
	n := binary.LittleEndian.Uint32(data)
	if n > MaxProgramLen {
		return ErrProgramTooLong
	}
	var prog Program
	prog.Len = n
	data = data[4:]
	for i := range prog.Code {
		off := i * instructionSize
		prog.Code[i] = Instruction{
			Op:    Op(binary.LittleEndian.Uint32(data[off:])),
			Value: math.Float32frombits(binary.LittleEndian.Uint32(data[off+4:])),
		}
	}
	*p = prog
	return nil
}
