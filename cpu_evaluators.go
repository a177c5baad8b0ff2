package shaderart

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shaderart/dist"
	"github.com/soypat/shaderart/gleval"
)

func (c *circle2D) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	for i, p := range pos {
		dst[i] = dist.Circle(p, c.r)
	}
	return nil
}

func (c *rect2D) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	for i, p := range pos {
		dst[i] = dist.Rectangle(p, c.d)
	}
	return nil
}

func (c *roundRect2D) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	for i, p := range pos {
		dst[i] = dist.RoundedRectangle(p, c.d, c.r)
	}
	return nil
}

func (s *segment2D) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	for i, p := range pos {
		dst[i] = dist.Segment(p, s.a, s.b)
	}
	return nil
}

func (c *capsule2D) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	for i, p := range pos {
		dst[i] = dist.Capsule(p, c.a, c.b, c.r)
	}
	return nil
}

func (t *equilateralTri2D) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	for i, p := range pos {
		dst[i] = dist.EquilateralTriangle(p, t.side)
	}
	return nil
}

func (t *tri2D) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	for i, p := range pos {
		dst[i] = dist.Triangle(p, t.p0, t.p1, t.p2)
	}
	return nil
}

func (h *hex2D) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	for i, p := range pos {
		dst[i] = dist.Hexagon(p, h.r)
	}
	return nil
}

func (rp *regularPolygon2D) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	for i, p := range pos {
		dst[i] = dist.RegularPolygon(p, rp.r, rp.n)
	}
	return nil
}

func (a *arc2D) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	rb := a.thick / 2
	for i, p := range pos {
		dst[i] = dist.Arc(p, a.sc, a.radius, rb)
	}
	return nil
}

func (c *cross2D) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	for i, p := range pos {
		dst[i] = dist.Cross(p, c.b, c.r)
	}
	return nil
}

func (r *rhombus2D) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	for i, p := range pos {
		dst[i] = dist.Rhombus(p, r.b)
	}
	return nil
}

// Evaluate implements [gleval.SDF2].
func (u *OpUnion2D) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	u.mustValidate()
	vp, err := gleval.GetVecPool(userData)
	if err != nil {
		return err
	}
	auxDist := vp.Float.Acquire(len(dst))
	defer vp.Float.Release(auxDist)
	err = evaluateSDF2(u.joined[0], pos, dst, userData)
	if err != nil {
		return err
	}
	for _, shape := range u.joined[1:] {
		err = evaluateSDF2(shape, pos, auxDist, userData)
		if err != nil {
			return err
		}
		minReduce(dst, auxDist)
	}
	return nil
}

func (s *intersect2D) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	return evalBinary2D(s.s1, s.s2, pos, dst, userData, dist.Intersection)
}

func (s *diff2D) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	return evalBinary2D(s.s1, s.s2, pos, dst, userData, dist.Difference)
}

func (s *xor2D) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	return evalBinary2D(s.s1, s.s2, pos, dst, userData, dist.SymmetricDifference)
}

func (s *smoothUnion2D) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	k := s.k
	return evalBinary2D(s.s1, s.s2, pos, dst, userData, func(a, b float32) float32 {
		return dist.SmoothUnion(a, b, k)
	})
}

func (o *onion2D) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	err := evaluateSDF2(o.s, pos, dst, userData)
	if err != nil {
		return err
	}
	for i, d := range dst {
		dst[i] = dist.Onion(d, o.r)
	}
	return nil
}

func (o *offset2D) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	err := evaluateSDF2(o.s, pos, dst, userData)
	if err != nil {
		return err
	}
	for i, d := range dst {
		dst[i] = dist.Pad(d, o.r)
	}
	return nil
}

func (t *translate2D) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	T := t.p
	return evalTransformed2D(t.s, pos, dst, userData, func(p ms2.Vec) ms2.Vec {
		return ms2.Sub(p, T)
	})
}

func (r *rotation2D) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	// Rotating the shape by theta is rotating the query point by -theta.
	sin, cos := math32.Sincos(r.theta)
	return evalTransformed2D(r.s, pos, dst, userData, func(p ms2.Vec) ms2.Vec {
		return ms2.Vec{X: cos*p.X + sin*p.Y, Y: -sin*p.X + cos*p.Y}
	})
}

func (r *repeat2D) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	f := r.f
	return evalTransformed2D(r.s, pos, dst, userData, func(p ms2.Vec) ms2.Vec {
		return dist.Repeat2(p, f)
	})
}

func (ra *repeatAngular2D) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	sdf, err := gleval.AssertSDF2(ra.s)
	if err != nil {
		return err
	}
	vp, err := gleval.GetVecPool(userData)
	if err != nil {
		return err
	}
	q0 := vp.V2.Acquire(len(pos))
	defer vp.V2.Release(q0)
	q1 := vp.V2.Acquire(len(pos))
	defer vp.V2.Release(q1)
	d1 := vp.Float.Acquire(len(pos))
	defer vp.Float.Release(d1)
	sp := 2 * math32.Pi / float32(ra.n)
	o := ms2.Vec{X: ra.r}
	for i, p := range pos {
		// Same candidates as dist.RepeatAngular: own wedge and the next one.
		id := math32.Floor(math32.Atan2(p.Y, p.X) / sp)
		q0[i] = ms2.Sub(dist.Rotate2(p, -sp*id), o)
		q1[i] = ms2.Sub(dist.Rotate2(p, -sp*(id+1)), o)
	}
	err = sdf.Evaluate(q0, dst, userData)
	if err != nil {
		return err
	}
	err = sdf.Evaluate(q1, d1, userData)
	if err != nil {
		return err
	}
	minReduce(dst, d1)
	return nil
}

func (m *mirror2D) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	n := m.n
	return evalTransformed2D(m.s, pos, dst, userData, func(p ms2.Vec) ms2.Vec {
		return dist.Mirror2(p, n)
	})
}

func (e *extrusion) Evaluate(pos []ms3.Vec, dst []float32, userData any) error {
	vp, err := gleval.GetVecPool(userData)
	if err != nil {
		return err
	}
	pos2 := vp.V2.Acquire(len(pos))
	defer vp.V2.Release(pos2)
	for i, p := range pos {
		pos2[i] = ms2.Vec{X: p.X, Y: p.Y}
	}
	err = evaluateSDF2(e.s, pos2, dst, userData)
	if err != nil {
		return err
	}
	h := e.h / 2
	for i, p := range pos {
		d := dst[i]
		wy := math32.Abs(p.Z) - h
		dst[i] = math32.Min(0, math32.Max(d, wy)) + math32.Hypot(math32.Max(d, 0), math32.Max(wy, 0))
	}
	return nil
}

func (s *sphere) Evaluate(pos []ms3.Vec, dst []float32, userData any) error {
	for i, p := range pos {
		dst[i] = dist.Sphere(p, s.r)
	}
	return nil
}

func (s *box) Evaluate(pos []ms3.Vec, dst []float32, userData any) error {
	for i, p := range pos {
		dst[i] = dist.Cuboid(p, s.dims)
	}
	return nil
}

func (c *capsule) Evaluate(pos []ms3.Vec, dst []float32, userData any) error {
	for i, p := range pos {
		dst[i] = dist.Capsule3(p, c.a, c.b, c.r)
	}
	return nil
}

func (t *torus) Evaluate(pos []ms3.Vec, dst []float32, userData any) error {
	fn := dist.Torus
	switch t.axis {
	case AxisX:
		fn = dist.TorusX
	case AxisZ:
		fn = dist.TorusZ
	}
	for i, p := range pos {
		dst[i] = fn(p, t.t)
	}
	return nil
}

func (pl *plane) Evaluate(pos []ms3.Vec, dst []float32, userData any) error {
	for i, p := range pos {
		dst[i] = dist.PlaneOffset(p, pl.n, pl.h)
	}
	return nil
}

// Evaluate implements [gleval.SDF3].
func (u *OpUnion) Evaluate(pos []ms3.Vec, dst []float32, userData any) error {
	u.mustValidate()
	vp, err := gleval.GetVecPool(userData)
	if err != nil {
		return err
	}
	auxDist := vp.Float.Acquire(len(dst))
	defer vp.Float.Release(auxDist)
	err = evaluateSDF3(u.joined[0], pos, dst, userData)
	if err != nil {
		return err
	}
	for _, shape := range u.joined[1:] {
		err = evaluateSDF3(shape, pos, auxDist, userData)
		if err != nil {
			return err
		}
		minReduce(dst, auxDist)
	}
	return nil
}

func (s *intersect) Evaluate(pos []ms3.Vec, dst []float32, userData any) error {
	return evalBinary3D(s.s1, s.s2, pos, dst, userData, dist.Intersection)
}

func (s *diff) Evaluate(pos []ms3.Vec, dst []float32, userData any) error {
	return evalBinary3D(s.s1, s.s2, pos, dst, userData, dist.Difference)
}

func (s *xor) Evaluate(pos []ms3.Vec, dst []float32, userData any) error {
	return evalBinary3D(s.s1, s.s2, pos, dst, userData, dist.SymmetricDifference)
}

func (s *smoothUnion) Evaluate(pos []ms3.Vec, dst []float32, userData any) error {
	k := s.k
	return evalBinary3D(s.s1, s.s2, pos, dst, userData, func(a, b float32) float32 {
		return dist.SmoothUnion(a, b, k)
	})
}

func (o *onion) Evaluate(pos []ms3.Vec, dst []float32, userData any) error {
	err := evaluateSDF3(o.s, pos, dst, userData)
	if err != nil {
		return err
	}
	for i, d := range dst {
		dst[i] = dist.Onion(d, o.r)
	}
	return nil
}

func (o *offset) Evaluate(pos []ms3.Vec, dst []float32, userData any) error {
	err := evaluateSDF3(o.s, pos, dst, userData)
	if err != nil {
		return err
	}
	for i, d := range dst {
		dst[i] = dist.Pad(d, o.r)
	}
	return nil
}

func (t *translate) Evaluate(pos []ms3.Vec, dst []float32, userData any) error {
	T := t.p
	return evalTransformed3D(t.s, pos, dst, userData, func(p ms3.Vec) ms3.Vec {
		return ms3.Sub(p, T)
	})
}

func (r *repeat) Evaluate(pos []ms3.Vec, dst []float32, userData any) error {
	f := r.f
	return evalTransformed3D(r.s, pos, dst, userData, func(p ms3.Vec) ms3.Vec {
		return dist.Repeat3(p, f)
	})
}

func (s *symmetry) Evaluate(pos []ms3.Vec, dst []float32, userData any) error {
	xb, yb, zb := s.xyz.X(), s.xyz.Y(), s.xyz.Z()
	return evalTransformed3D(s.s, pos, dst, userData, func(p ms3.Vec) ms3.Vec {
		if xb {
			p.X = math32.Abs(p.X)
		}
		if yb {
			p.Y = math32.Abs(p.Y)
		}
		if zb {
			p.Z = math32.Abs(p.Z)
		}
		return p
	})
}
