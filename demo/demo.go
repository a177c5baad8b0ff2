// Package demo contains the gallery of per-pixel shader demos. Every demo
// maps a pixel coordinate and the frame constants to a colour, with no
// state shared between pixels.
package demo

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shaderart/dist"
)

var (
	ErrUnknownDemo = errors.New("unknown demo")
	ErrUnknownKey  = errors.New("unknown configuration key")
)

// Frame holds the constants shared by every pixel of a frame.
type Frame struct {
	// Size of the framebuffer in pixels.
	Size ms2.Vec
	// Time in seconds since start.
	Time float32
	// Cursor position in centered coordinates, see [dist.FromPixels].
	Cursor ms2.Vec
	// MouseButtons is a bitmask of pressed buttons.
	MouseButtons uint32
}

// FrameBinarySize is the size of the push constant encoding of a [Frame].
const FrameBinarySize = 32

// NewFrame returns the frame constants for a w by h framebuffer at time t
// with the cursor at the center of the screen.
func NewFrame(w, h int, t float32) Frame {
	return Frame{Size: ms2.Vec{X: float32(w), Y: float32(h)}, Time: t}
}

// UV returns the centered coordinates of the pixel frag.
func (f *Frame) UV(frag ms2.Vec) ms2.Vec { return dist.FromPixels(frag, f.Size) }

// MarshalBinary returns the little endian push constant encoding of the
// frame. Fields follow std430 alignment: size at 0, time at 8, cursor at
// 16 and mouse buttons at 24.
func (f Frame) MarshalBinary() ([]byte, error) {
	var b [FrameBinarySize]byte
	putf32 := func(off int, v float32) { binary.LittleEndian.PutUint32(b[off:], math.Float32bits(v)) }
	putf32(0, f.Size.X)
	putf32(4, f.Size.Y)
	putf32(8, f.Time)
	putf32(16, f.Cursor.X)
	putf32(20, f.Cursor.Y)
	binary.LittleEndian.PutUint32(b[24:], f.MouseButtons)
	return b[:], nil
}

// UnmarshalBinary decodes a frame encoded with MarshalBinary.
func (f *Frame) UnmarshalBinary(data []byte) error {
	if len(data) != FrameBinarySize {
		return fmt.Errorf("frame encoding must be %d bytes, got %d", FrameBinarySize, len(data))
	}
	getf32 := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(data[off:])) }
	*f = Frame{
		Size:         ms2.Vec{X: getf32(0), Y: getf32(4)},
		Time:         getf32(8),
		Cursor:       ms2.Vec{X: getf32(16), Y: getf32(20)},
		MouseButtons: binary.LittleEndian.Uint32(data[24:]),
	}
	return nil
}

// Demo is a fragment shader evaluated on the CPU.
type Demo interface {
	// Name returns the registry name of the demo.
	Name() string
	// Shade returns the linear RGB colour in [0,1] of the pixel at frag,
	// given in pixel coordinates with the origin at the top left.
	// Shade must be safe for concurrent use.
	Shade(frag ms2.Vec, f *Frame) ms3.Vec
}

var registry = struct {
	mu    sync.RWMutex
	demos map[string]func() Demo
}{demos: make(map[string]func() Demo)}

// Register makes a demo constructor available by name. It panics if
// called twice with the same name or if newDemo is nil.
func Register(name string, newDemo func() Demo) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if newDemo == nil {
		panic("demo: Register constructor is nil")
	}
	if _, dup := registry.demos[name]; dup {
		panic("demo: Register called twice for " + name)
	}
	registry.demos[name] = newDemo
}

// Lookup returns a new instance of the named demo with default parameters.
func Lookup(name string) (Demo, error) {
	registry.mu.RLock()
	fn, ok := registry.demos[name]
	registry.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownDemo, name)
	}
	return fn(), nil
}

// Names returns the sorted names of all registered demos.
func Names() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, 0, len(registry.demos))
	for name := range registry.demos {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func init() {
	Register(NameMandelbrot, func() Demo { return NewMandelbrot() })
	Register(NameSDF2D, func() Demo { return NewSDF2D() })
	Register(NameSDF3D, func() Demo { return NewSDF3D() })
	Register(NameRayMarching, func() Demo { return NewRayMarching() })
	Register(NameHarmonics, func() Demo { return NewHarmonics() })
	Register(NameHydrogen, func() Demo { return NewHydrogen() })
	Register(NameKoch, func() Demo { return NewKoch() })
	Register(NameInterpreter, func() Demo { return NewInterpreter() })
	Register(NamePGAMotor, func() Demo { return NewPGAMotor() })
}

// Names of the built-in demos.
const (
	NameMandelbrot  = "mandelbrot"
	NameSDF2D       = "sdf2d"
	NameSDF3D       = "sdf3d"
	NameRayMarching = "ray_marching"
	NameHarmonics   = "spherical_harmonics"
	NameHydrogen    = "hydrogen"
	NameKoch        = "koch"
	NameInterpreter = "interpreter"
	NamePGAMotor    = "pga_motor"
)
