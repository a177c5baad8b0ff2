package demo

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shaderart/raymarch"
)

var (
	positiveLobe = ms3.Vec{X: 0.95, Y: 0.45, Z: 0.2}
	negativeLobe = ms3.Vec{X: 0.2, Y: 0.5, Z: 0.95}
)

// Harmonics renders the surface r = Size*|Y_l^m(θ,φ)| of a real spherical
// harmonic, coloured by the sign of the lobe.
type Harmonics struct {
	L, M int
	Size float32
	// StepScale shortens every march step since the surface is not
	// described by an exact distance field.
	StepScale float32
	Marcher   raymarch.Marcher
	// CameraDistance is the radius of the orbiting camera.
	CameraDistance float32
}

func NewHarmonics() *Harmonics {
	return &Harmonics{
		L: 3, M: 2,
		Size:           2.5,
		StepScale:      0.5,
		Marcher:        raymarch.DefaultMarcher(),
		CameraDistance: 4,
	}
}

func (*Harmonics) Name() string { return NameHarmonics }

func (h *Harmonics) direction(p ms3.Vec) (dir ms3.Vec, r float32) {
	r = ms3.Norm(p)
	if r == 0 {
		return ms3.Vec{Z: 1}, 0
	}
	return ms3.Scale(1/r, p), r
}

// Scene is an approximate distance to the harmonic surface.
func (h *Harmonics) Scene(p ms3.Vec) float32 {
	dir, r := h.direction(p)
	return r - h.Size*math32.Abs(RealSphericalHarmonic(h.L, h.M, dir))
}

func (h *Harmonics) camera(t float32) raymarch.Camera {
	sin, cos := math32.Sincos(0.3 * t)
	d := h.CameraDistance
	return raymarch.Camera{
		Eye: ms3.Vec{X: d * cos, Y: d * sin, Z: 0.6 * d},
		Up:  ms3.Vec{Z: 1},
		FOV: math32.Pi / 3,
	}
}

func (h *Harmonics) Shade(frag ms2.Vec, f *Frame) ms3.Vec {
	ro, rd := h.camera(f.Time).Ray(f.UV(frag))
	scale := h.StepScale
	if scale <= 0 || scale > 1 {
		scale = 1
	}
	res := h.Marcher.MarchScaled(h.Scene, ro, rd, scale)
	if res.State != raymarch.Hit {
		return ms3.Vec{X: 0.05, Y: 0.05, Z: 0.08}
	}
	dir, _ := h.direction(res.Pos)
	base := positiveLobe
	if RealSphericalHarmonic(h.L, h.M, dir) < 0 {
		base = negativeLobe
	}
	n := raymarch.Normal(h.Scene, res.Pos, raymarch.NormalEpsilon)
	light := raymarch.Lambert(n, ms3.Unit(ms3.Sub(ro, res.Pos)), 1, 0.15)
	return clamp3(ms3.Scale(light, base))
}
