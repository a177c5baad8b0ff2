package vm

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/shaderart/dist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskProgram(t *testing.T) {
	const r = 0.3
	prog := Disk(r)
	got := Interpret(&prog, ms2.Vec{X: 0.9, Y: 0.2})
	// sqrt(0.9²+0.2²) - 0.3.
	assert.InDelta(t, 0.62195, got, 1e-4)
	assert.InDelta(t, dist.Circle(ms2.Vec{X: 0.9, Y: 0.2}, r), got, 1e-6)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		p := ms2.Vec{X: rng.Float32()*4 - 2, Y: rng.Float32()*4 - 2}
		want := dist.Circle(p, r)
		got, err := prog.Run(p)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-6)
	}
}

func TestOpcodes(t *testing.T) {
	p := ms2.Vec{X: 0.5, Y: -2}
	for _, tc := range []struct {
		src  string
		want float32
	}{
		{src: "push 1.5", want: 1.5},
		{src: "pushx", want: 0.5},
		{src: "pushy", want: -2},
		{src: "push 16; sqrt", want: 4},
		{src: "pushy; square", want: 4},
		{src: "pushx; neg", want: -0.5},
		{src: "push 0; sin", want: 0},
		{src: "push 0; cos", want: 1},
		{src: "pushy; abs", want: 2},
		{src: "pushx; pushy; add", want: -1.5},
		{src: "pushx; pushy; sub", want: 2.5},
		{src: "pushx; pushy; mul", want: -1},
		{src: "pushy; pushx; div", want: -4},
		{src: "pushx; pushy; min", want: -2},
		{src: "pushx; pushy; max", want: 0.5},
	} {
		prog, err := Parse(tc.src)
		require.NoError(t, err, tc.src)
		got, err := prog.Run(p)
		require.NoError(t, err, tc.src)
		assert.Equal(t, tc.want, got, tc.src)
	}
}

func TestRunErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		ins  []Instruction
		want error
	}{
		{name: "empty", ins: nil, want: ErrEmptyStack},
		{name: "underflow unary", ins: []Instruction{Instr(OpSqrt)}, want: ErrStackUnderflow},
		{name: "underflow binary", ins: []Instruction{Push(1), Instr(OpAdd)}, want: ErrStackUnderflow},
		{name: "bad opcode", ins: []Instruction{Push(1), {Op: 99}}, want: ErrBadOpcode},
		{name: "overflow", ins: repeatIns(Push(1), StackSize+1), want: ErrStackOverflow},
	} {
		t.Run(tc.name, func(t *testing.T) {
			prog, err := NewProgram(tc.ins...)
			require.NoError(t, err)
			_, err = prog.Run(ms2.Vec{})
			assert.ErrorIs(t, err, tc.want)
		})
	}
	full := repeatIns(Push(1), StackSize)
	prog, err := NewProgram(full...)
	require.NoError(t, err)
	_, err = prog.Run(ms2.Vec{})
	assert.NoError(t, err, "full stack is valid")

	err = prog.Append(repeatIns(Instr(OpAdd), MaxProgramLen)...)
	assert.ErrorIs(t, err, ErrProgramTooLong)
}

func repeatIns(ins Instruction, n int) []Instruction {
	s := make([]Instruction, n)
	for i := range s {
		s[i] = ins
	}
	return s
}

func TestParseString(t *testing.T) {
	const src = `# distance to a disk
pushx; square
pushy; square # y squared
add; sqrt; push 0.3; sub`
	prog, err := Parse(src)
	require.NoError(t, err)
	want := Disk(0.3)
	assert.Equal(t, want, prog)
	assert.Equal(t, "pushx; square; pushy; square; add; sqrt; push 0.3; sub", prog.String())

	again, err := Parse(prog.String())
	require.NoError(t, err)
	assert.Equal(t, prog, again)

	for _, bad := range []string{"jump", "push", "push x", "add 1", "push 1 2"} {
		_, err := Parse(bad)
		assert.Error(t, err, bad)
	}
	_, err = Parse(strings.Repeat("pushx\n", MaxProgramLen+1))
	assert.ErrorIs(t, err, ErrProgramTooLong)
}

func TestProgramBinary(t *testing.T) {
	prog := Disk(0.25)
	b, err := prog.MarshalBinary()
	require.NoError(t, err)
	require.Len(t, b, ProgramBinarySize)
	assert.Equal(t, []byte{8, 0, 0, 0}, b[:4])
	// Last instruction is sub at index 7.
	off := 4 + 7*instructionSize
	assert.Equal(t, []byte{byte(OpSub), 0, 0, 0}, b[off:off+4])

	var got Program
	require.NoError(t, got.UnmarshalBinary(b))
	assert.Equal(t, prog, got)

	assert.Error(t, got.UnmarshalBinary(b[:10]))
	b[0] = MaxProgramLen + 1
	assert.ErrorIs(t, got.UnmarshalBinary(b), ErrProgramTooLong)
}

func TestWGSLOpcodesMatch(t *testing.T) {
	src := WGSL()
	re := regexp.MustCompile(`const OP_([A-Z]+): u32 = (\d+)u;`)
	matches := re.FindAllStringSubmatch(src, -1)
	require.Len(t, matches, int(numOps))
	for _, m := range matches {
		v, err := strconv.Atoi(m[2])
		require.NoError(t, err)
		assert.Equal(t, strings.ToLower(m[1]), Op(v).String())
	}
	assert.Contains(t, src, "const MAX_PROGRAM_LEN: u32 = "+strconv.Itoa(MaxProgramLen)+"u;")
	assert.Contains(t, src, "const STACK_SIZE: u32 = "+strconv.Itoa(StackSize)+"u;")
	assert.Contains(t, src, "array<Instruction, "+strconv.Itoa(MaxProgramLen)+">")
}

func TestCompileSPIRV(t *testing.T) {
	words, err := CompileSPIRV()
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "not yet implemented") || strings.Contains(errStr, "not supported") {
			t.Skipf("Skipping: naga feature not yet implemented: %v", err)
		}
		t.Fatal(err)
	}
	require.NotEmpty(t, words)
	assert.Equal(t, uint32(0x07230203), words[0], "SPIR-V magic")
}

func TestEvalGrid(t *testing.T) {
	prog := Disk(1)
	g := GridParams{Origin: ms2.Vec{X: -2, Y: -2}, Step: ms2.Vec{X: 0.5, Y: 0.25}, Width: 9, Height: 17}
	dst := make([]float32, g.Width*g.Height)
	require.NoError(t, EvalGrid(&prog, g, dst))
	for j := 0; j < int(g.Height); j++ {
		for i := 0; i < int(g.Width); i++ {
			p := g.Point(i, j)
			want := math32.Hypot(p.X, p.Y) - 1
			assert.InDelta(t, want, dst[j*int(g.Width)+i], 1e-6)
		}
	}
	// Center of grid lies at the origin, inside the disk.
	assert.Equal(t, float32(-1), dst[8*int(g.Width)+4])
	assert.Error(t, EvalGrid(&prog, g, dst[:10]))

	b, err := g.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, b, GridParamsBinarySize)
	assert.Equal(t, []byte{9, 0, 0, 0, 17, 0, 0, 0}, b[16:])
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "pushx", OpPushX.String())
	assert.Equal(t, "Op(99)", Op(99).String())
	assert.Equal(t, "push -1.5", Push(-1.5).String())
	assert.False(t, Op(numOps).IsValid())
}
