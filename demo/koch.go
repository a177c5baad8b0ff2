package demo

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms1"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shaderart/dist"
)

// MaxKochIterations bounds the folding iterations of the Koch demo.
const MaxKochIterations = 12

const sqrt3 = 1.7320508075688772935274463415058723669428052538103806280558069794

var (
	// Normal of the line at -30 degrees through the origin, pointing at the bottom edge.
	kochSector = ms2.Vec{X: -0.5, Y: -sqrt3 / 2}
	// Normal of the line at 60 degrees that folds a bump edge onto the segment.
	kochBump = ms2.Vec{X: sqrt3 / 2, Y: -0.5}
)

// Koch renders the distance field of a Koch snowflake built by iterated
// space folding.
type Koch struct {
	// Iterations is clamped to [0, MaxKochIterations]. Zero iterations is
	// the base triangle.
	Iterations int
	// Scale is the number of world units per screen height.
	Scale float32
}

func NewKoch() *Koch { return &Koch{Iterations: 5, Scale: 1.5} }

func (*Koch) Name() string { return NameKoch }

// Distance returns the signed distance to the Koch snowflake grown from
// the unit side equilateral triangle centered at the origin with a vertex
// pointing up. The result is a bound, exact for zero iterations.
func (k *Koch) Distance(p ms2.Vec) float32 {
	const inradius = 1 / (2 * sqrt3)
	iters := min(max(k.Iterations, 0), MaxKochIterations)
	// Fold the plane onto the right half of the bottom edge.
	p.X = math32.Abs(p.X)
	p = dist.Mirror2(p, kochSector)
	p.X = math32.Abs(p.X)
	// Edge frame: segment [-1.5,1.5] on the x axis, outside towards +y.
	q := ms2.Vec{X: 3 * p.X, Y: -3 * (p.Y + inradius)}
	scale := float32(3)
	for i := 0; i < iters; i++ {
		q.X = math32.Abs(q.X) - 1
		q.X += 0.5
		q = dist.Mirror2(q, kochBump)
		q.X -= 0.5
		q = ms2.Scale(3, q)
		scale *= 3
	}
	q.X -= ms1.Clamp(q.X, -1.5, 1.5)
	d := ms2.Norm(q) / scale
	if q.Y < 0 {
		return -d
	}
	return d
}

func (k *Koch) Shade(frag ms2.Vec, f *Frame) ms3.Vec {
	scale := k.Scale
	if scale <= 0 {
		scale = 1
	}
	return clamp3(DistanceColor(k.Distance(ms2.Scale(scale, f.UV(frag)))))
}
