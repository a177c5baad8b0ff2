package vm

import (
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/naga"
	"github.com/soypat/glgl/math/ms2"
)

//go:embed interpret.wgsl
var interpretWGSL string

// WorkgroupSize is the compute kernel's workgroup size along x and y.
const WorkgroupSize = 8

// WGSL returns the compute kernel source that evaluates a [Program] for
// every point of a grid described by [GridParams]. Bindings in group 0:
//
//	binding 0: storage buffer with the Program encoding.
//	binding 1: uniform buffer with the GridParams encoding.
//	binding 2: read_write storage array<f32> of Width*Height distances.
func WGSL() string { return interpretWGSL }

// CompileSPIRV compiles the [WGSL] kernel to SPIR-V words.
func CompileSPIRV() ([]uint32, error) {
	spirvBytes, err := naga.Compile(interpretWGSL)
	if err != nil {
		return nil, fmt.Errorf("compiling interpreter kernel: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, errors.New("SPIR-V output not word aligned")
	}
	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return words, nil
}

// GridParams describes the grid of points evaluated by the compute kernel.
// Point (i,j) is Origin + (i,j)*Step.
type GridParams struct {
	Origin, Step  ms2.Vec
	Width, Height uint32
}

// GridParamsBinarySize is the size of the uniform buffer encoding of [GridParams].
const GridParamsBinarySize = 24

// MarshalBinary returns the uniform buffer encoding of the grid parameters.
func (g GridParams) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, GridParamsBinarySize)
	for _, v := range [4]float32{g.Origin.X, g.Origin.Y, g.Step.X, g.Step.Y} {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v))
	}
	b = binary.LittleEndian.AppendUint32(b, g.Width)
	b = binary.LittleEndian.AppendUint32(b, g.Height)
	return b, nil
}

// Point returns the grid point at column i and row j.
func (g GridParams) Point(i, j int) ms2.Vec {
	return ms2.Add(g.Origin, ms2.MulElem(ms2.Vec{X: float32(i), Y: float32(j)}, g.Step))
}

// EvalGrid evaluates prog at every point of the grid on the CPU, storing the
// result of point (i,j) at dst[j*Width+i] just as the compute kernel does.
func EvalGrid(prog *Program, g GridParams, dst []float32) error {
	if len(dst) < int(g.Width)*int(g.Height) {
		return errors.New("destination buffer too short for grid")
	}
	err := prog.Validate()
	if err != nil {
		return err
	}
	for j := 0; j < int(g.Height); j++ {
		for i := 0; i < int(g.Width); i++ {
			dst[j*int(g.Width)+i] = Interpret(prog, g.Point(i, j))
		}
	}
	return nil
}
