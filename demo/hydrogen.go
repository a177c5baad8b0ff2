package demo

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
)

// MaxQuantumNumber bounds the principal quantum number of the hydrogen demo.
const MaxQuantumNumber = 7

// Hydrogen renders the probability density of a hydrogen orbital on the
// xz plane.
type Hydrogen struct {
	N, L, M int
	// Extent is the half height of the view in Bohr radii.
	Extent float32
	// Exposure scales the density before tone mapping.
	Exposure float32
}

func NewHydrogen() *Hydrogen {
	return &Hydrogen{N: 3, L: 2, M: 0, Extent: 20, Exposure: 4000}
}

func (*Hydrogen) Name() string { return NameHydrogen }

// Valid reports whether the quantum numbers satisfy 1 <= n <= MaxQuantumNumber,
// 0 <= l < n and |m| <= l.
func (h *Hydrogen) Valid() bool {
	return h.N >= 1 && h.N <= MaxQuantumNumber && h.L >= 0 && h.L < h.N && h.M >= -h.L && h.M <= h.L
}

func (h *Hydrogen) Shade(frag ms2.Vec, f *Frame) ms3.Vec {
	if !h.Valid() {
		return nanRed
	}
	uv := ms2.Scale(2*h.Extent, f.UV(frag))
	rho := HydrogenDensity(h.N, h.L, h.M, ms3.Vec{X: uv.X, Z: uv.Y})
	v := 1 - math32.Exp(-h.Exposure*rho)
	return clamp3(Palette(v,
		ms3.Vec{X: 0.5, Y: 0.5, Z: 0.5},
		ms3.Vec{X: 0.5, Y: 0.5, Z: 0.5},
		ms3.Vec{X: 1, Y: 0.7, Z: 0.4},
		ms3.Vec{Y: 0.15, Z: 0.2},
	))
}
