package demo

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
)

// MaxIterations is the fixed iteration budget of the Mandelbrot demo.
const MaxIterations = 256

// Mandelbrot renders the Mandelbrot set coloured by smooth iteration count.
type Mandelbrot struct {
	// Zoom is the number of screen heights per unit of the complex plane.
	Zoom float32
	// Center is the point of the complex plane at the center of the screen.
	Center ms2.Vec
	// Iterations is clamped to [1, MaxIterations].
	Iterations int
}

func NewMandelbrot() *Mandelbrot {
	return &Mandelbrot{Zoom: 0.35, Center: ms2.Vec{X: -0.6}, Iterations: MaxIterations}
}

func (*Mandelbrot) Name() string { return NameMandelbrot }

// Escape returns the smooth escape iteration count of c, or a negative
// number if c did not escape within the iteration budget.
func (m *Mandelbrot) Escape(c ms2.Vec) float32 {
	const bailout = 256
	iters := min(max(m.Iterations, 1), MaxIterations)
	var z ms2.Vec
	for i := 0; i < iters; i++ {
		z = ms2.Vec{X: z.X*z.X - z.Y*z.Y + c.X, Y: 2*z.X*z.Y + c.Y}
		if r2 := ms2.Norm2(z); r2 > bailout*bailout {
			// Continuous potential, see Inigo Quilez's "smooth iteration count".
			return float32(i) - math32.Log2(math32.Log2(r2)) + 4
		}
	}
	return -1
}

func (m *Mandelbrot) Shade(frag ms2.Vec, f *Frame) ms3.Vec {
	zoom := m.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	c := ms2.Add(m.Center, ms2.Scale(1/zoom, f.UV(frag)))
	n := m.Escape(c)
	if n < 0 {
		return ms3.Vec{}
	}
	return clamp3(rainbow(0.02*n + 0.05*f.Time))
}
