package demo

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shaderart/dist"
	"github.com/soypat/shaderart/pga"
)

// PGAMotor moves a rectangle along a circle while spinning it, with the
// rigid transform expressed as a projective geometric algebra motor.
type PGAMotor struct {
	// Dim is the size of the rectangle.
	Dim ms2.Vec
	// Orbit is the radius of the circle followed by the rectangle center.
	Orbit float32
	// Spin is the angular velocity of the rectangle in radians per second.
	Spin float32
}

func NewPGAMotor() *PGAMotor {
	return &PGAMotor{Dim: ms2.Vec{X: 0.3, Y: 0.15}, Orbit: 0.25, Spin: 1.5}
}

func (*PGAMotor) Name() string { return NamePGAMotor }

// Motor returns the transform of the rectangle at time t.
func (m *PGAMotor) Motor(t float32) pga.Motor {
	sin, cos := math32.Sincos(0.5 * t)
	r := pga.NewRotor(m.Spin * t)
	tr := pga.NewTranslator(m.Orbit*cos, m.Orbit*sin)
	return pga.NewMotor(r, tr)
}

// Distance returns the distance to the rectangle at p and time t.
// The query point is moved by the inverse motor into the rectangle frame.
func (m *PGAMotor) Distance(p ms2.Vec, t float32) float32 {
	x, y := m.Motor(t).Reverse().Apply(pga.NewPoint(p.X, p.Y)).XY()
	return dist.Rectangle(ms2.Vec{X: x, Y: y}, m.Dim)
}

func (m *PGAMotor) Shade(frag ms2.Vec, f *Frame) ms3.Vec {
	uv := f.UV(frag)
	col := DistanceColor(m.Distance(uv, f.Time))
	col = drawCursor(col, uv, f.Cursor, m.Distance(f.Cursor, f.Time))
	return clamp3(col)
}
