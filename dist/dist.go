// Package dist implements per-point signed distance kernels: 2D and 3D
// primitives, boolean and blending combinators and domain operators.
//
// Every function is pure, allocation free and total over its documented
// domain so that it can run as the body of a per-pixel shader invocation.
// Distances are negative inside a shape, zero on its boundary and positive
// outside. Preconditions (normalized directions, non-degenerate segments)
// are the caller's responsibility and are never checked; violating them
// yields garbage values, not errors.
package dist

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms1"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
)

// Unset is the sentinel stored in an [Optional] that holds no value.
// It is the lowest finite float32 which is never a legitimate distance or dimension.
const Unset Optional = -math32.MaxFloat32

// Optional is a float32 that may be unset. The unset state is encoded
// in-band with the [Unset] sentinel so that Optional has the same memory
// layout as a float32 inside GPU uniform buffers.
type Optional float32

// Some returns an Optional holding v. Some panics if v is the sentinel value.
func Some(v float32) Optional {
	if Optional(v) == Unset {
		panic("dist: sentinel value can not be stored in Optional")
	}
	return Optional(v)
}

// HasValue reports whether o holds a value.
func (o Optional) HasValue() bool { return o != Unset }

// Value returns the held value. The result is the sentinel if o is unset.
func (o Optional) Value() float32 { return float32(o) }

// Get returns the value and true if o is set.
func (o Optional) Get() (float32, bool) { return float32(o), o != Unset }

// Or returns the held value or def if unset.
func (o Optional) Or(def float32) float32 {
	if o == Unset {
		return def
	}
	return float32(o)
}

// Ptr returns a pointer to a copy of the held value or nil if unset.
// Used when converting to host side representations such as configuration files.
func (o Optional) Ptr() *float32 {
	if o == Unset {
		return nil
	}
	v := float32(o)
	return &v
}

// OptionalFromPtr converts a nil-able float into an Optional.
func OptionalFromPtr(v *float32) Optional {
	if v == nil {
		return Unset
	}
	return Some(*v)
}

// FromPixels converts a raster coordinate (origin at the top left, y down)
// into a centered and aspect corrected coordinate where y points up and
// the screen height spans one unit.
func FromPixels(frag, size ms2.Vec) ms2.Vec {
	return ms2.Vec{
		X: (frag.X - 0.5*size.X) / size.Y,
		Y: (-frag.Y + 0.5*size.Y) / size.Y,
	}
}

// SmoothStep is the GLSL smoothstep function.
func SmoothStep(edge0, edge1, x float32) float32 {
	return ms1.SmoothStep(edge0, edge1, x)
}

// Mix is the GLSL mix function.
func Mix(x, y, a float32) float32 {
	return x*(1-a) + y*a
}

// Mod is the GLSL mod function which, unlike [math32.Mod], takes the sign of y.
func Mod(x, y float32) float32 {
	return x - y*math32.Floor(x/y)
}

// Fract is the GLSL fract function.
func Fract(x float32) float32 {
	return x - math32.Floor(x)
}

func clampf(v, Min, Max float32) float32 { return ms1.Clamp(v, Min, Max) }

func signf(a float32) float32 {
	if a == 0 {
		return 0
	}
	return math32.Copysign(1, a)
}

func maxElem2(v ms2.Vec) float32 { return math32.Max(v.X, v.Y) }

func maxElem3(v ms3.Vec) float32 { return math32.Max(v.X, math32.Max(v.Y, v.Z)) }
