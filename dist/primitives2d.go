package dist

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
)

const sqrt3 = 1.7320508075688772935274463415058723669428052538103806280558069794

// Circle is the distance to a disk of radius r centered at the origin.
func Circle(p ms2.Vec, r float32) float32 {
	return ms2.Norm(p) - r
}

// Rectangle is the distance to an axis aligned rectangle centered at the
// origin with side lengths dim.
func Rectangle(p, dim ms2.Vec) float32 {
	v := ms2.Sub(ms2.AbsElem(p), ms2.Scale(0.5, dim))
	return ms2.Norm(ms2.MaxElem(v, ms2.Vec{})) + math32.Min(maxElem2(v), 0)
}

// RoundedRectangle is a [Rectangle] of outer dimension dim with corners rounded by r.
func RoundedRectangle(p, dim ms2.Vec, r float32) float32 {
	return Rectangle(p, ms2.AddScalar(-2*r, dim)) - r
}

// Segment is the unsigned distance to the line segment between a and b.
// a==b yields NaN.
func Segment(p, a, b ms2.Vec) float32 {
	pa := ms2.Sub(p, a)
	ba := ms2.Sub(b, a)
	h := clampf(ms2.Dot(pa, ba)/ms2.Norm2(ba), 0, 1)
	return ms2.Norm(ms2.Sub(pa, ms2.Scale(h, ba)))
}

// Capsule is the distance to the set of points within r of segment a-b.
func Capsule(p, a, b ms2.Vec, r float32) float32 {
	return Segment(p, a, b) - r
}

// Line is the unsigned distance to the infinite line through a and b.
func Line(p, a, b ms2.Vec) float32 {
	pa := ms2.Sub(p, a)
	ba := ms2.Sub(b, a)
	h := ms2.Dot(pa, ba) / ms2.Norm2(ba)
	return ms2.Norm(ms2.Sub(pa, ms2.Scale(h, ba)))
}

// Ray is the unsigned distance to the half line starting at a heading in dir.
func Ray(p, a, dir ms2.Vec) float32 {
	pa := ms2.Sub(p, a)
	h := math32.Max(ms2.Dot(pa, dir)/ms2.Norm2(dir), 0)
	return ms2.Norm(ms2.Sub(pa, ms2.Scale(h, dir)))
}

// HalfPlane is the distance to the half plane {x : dot(n,x) <= d}.
// n must be of unit length.
func HalfPlane(p, n ms2.Vec, d float32) float32 {
	return ms2.Dot(n, p) - d
}

// EquilateralTriangle is the distance to an equilateral triangle of side
// length side with its centroid at the origin and a vertex pointing up.
func EquilateralTriangle(p ms2.Vec, side float32) float32 {
	const k = sqrt3
	r := side / 2
	p.X = math32.Abs(p.X) - r
	p.Y = p.Y + r/k
	if p.X+k*p.Y > 0 {
		p = ms2.Vec{X: (p.X - k*p.Y) / 2, Y: (-k*p.X - p.Y) / 2}
	}
	p.X -= clampf(p.X, -2*r, 0)
	return -ms2.Norm(p) * signf(p.Y)
}

// Triangle is the exact distance to the triangle with vertices p0, p1, p2 in any winding order.
func Triangle(p, p0, p1, p2 ms2.Vec) float32 {
	e0, e1, e2 := ms2.Sub(p1, p0), ms2.Sub(p2, p1), ms2.Sub(p0, p2)
	v0, v1, v2 := ms2.Sub(p, p0), ms2.Sub(p, p1), ms2.Sub(p, p2)
	pq0 := ms2.Sub(v0, ms2.Scale(clampf(ms2.Dot(v0, e0)/ms2.Norm2(e0), 0, 1), e0))
	pq1 := ms2.Sub(v1, ms2.Scale(clampf(ms2.Dot(v1, e1)/ms2.Norm2(e1), 0, 1), e1))
	pq2 := ms2.Sub(v2, ms2.Scale(clampf(ms2.Dot(v2, e2)/ms2.Norm2(e2), 0, 1), e2))
	s := signf(e0.X*e2.Y - e0.Y*e2.X)
	d := ms2.MinElem(
		ms2.MinElem(
			ms2.Vec{X: ms2.Norm2(pq0), Y: s * (v0.X*e0.Y - v0.Y*e0.X)},
			ms2.Vec{X: ms2.Norm2(pq1), Y: s * (v1.X*e1.Y - v1.Y*e1.X)},
		),
		ms2.Vec{X: ms2.Norm2(pq2), Y: s * (v2.X*e2.Y - v2.Y*e2.X)},
	)
	return -math32.Sqrt(d.X) * signf(d.Y)
}

// Hexagon is the distance to a regular hexagon with flat top and bottom
// sides at distance r (the apothem) from the origin.
func Hexagon(p ms2.Vec, r float32) float32 {
	const kx, ky, kz = -0.8660254038, 0.5, 0.577350269
	p = ms2.AbsElem(p)
	m := 2 * math32.Min(kx*p.X+ky*p.Y, 0)
	p.X -= m * kx
	p.Y -= m * ky
	p = ms2.Sub(p, ms2.Vec{X: clampf(p.X, -kz*r, kz*r), Y: r})
	return ms2.Norm(p) * signf(p.Y)
}

// RegularPolygon is the distance to a regular polygon of n sides whose
// vertices lie on a circle of radius r. n must be 3 or more.
func RegularPolygon(p ms2.Vec, r float32, n int) float32 {
	an := math32.Pi / float32(n)
	acsX, acsY := math32.Cos(an), math32.Sin(an)
	bn := Mod(math32.Atan2(p.X, p.Y), 2*an) - an
	sbn, cbn := math32.Sincos(bn)
	l := ms2.Norm(p)
	p = ms2.Vec{X: l*cbn - r*acsX, Y: l*math32.Abs(sbn) - r*acsY}
	p.Y += clampf(-p.Y, 0, r*acsY)
	return ms2.Norm(p) * signf(p.X)
}

// Arc is the distance to a circular arc of radius ra and thickness 2*rb
// symmetric about the y axis. sc is the sine and cosine of the half aperture angle.
func Arc(p, sc ms2.Vec, ra, rb float32) float32 {
	p.X = math32.Abs(p.X)
	var d float32
	if sc.Y*p.X > sc.X*p.Y {
		d = ms2.Norm(ms2.Sub(p, ms2.Scale(ra, sc)))
	} else {
		d = math32.Abs(ms2.Norm(p) - ra)
	}
	return d - rb
}

// Cross is the distance to a plus sign shape whose arms have half length b.X
// and half thickness b.Y. The boundary is offset inwards by r.
func Cross(p, b ms2.Vec, r float32) float32 {
	p = ms2.AbsElem(p)
	if p.Y > p.X {
		p.X, p.Y = p.Y, p.X
	}
	q := ms2.Sub(p, b)
	k := math32.Max(q.Y, q.X)
	w := q
	if k <= 0 {
		w = ms2.Vec{X: b.Y - p.X, Y: -k}
	}
	return signf(k)*ms2.Norm(ms2.MaxElem(w, ms2.Vec{})) + r
}

// Rhombus is the distance to a rhombus centered at the origin with half diagonals b.
func Rhombus(p, b ms2.Vec) float32 {
	p = ms2.AbsElem(p)
	bp := ms2.Sub(b, ms2.Scale(2, p))
	h := clampf(ndot(bp, b)/ms2.Norm2(b), -1, 1)
	d := ms2.Norm(ms2.Sub(p, ms2.MulElem(ms2.Scale(0.5, b), ms2.Vec{X: 1 - h, Y: 1 + h})))
	return d * signf(p.X*b.Y+p.Y*b.X-b.X*b.Y)
}

func ndot(a, b ms2.Vec) float32 { return a.X*b.X - a.Y*b.Y }
