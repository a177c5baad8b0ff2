package dist

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
)

// Sphere is the distance to a sphere of radius r centered at the origin.
func Sphere(p ms3.Vec, r float32) float32 {
	return ms3.Norm(p) - r
}

// Cuboid is the distance to an axis aligned box centered at the origin
// with side lengths dim.
func Cuboid(p, dim ms3.Vec) float32 {
	v := ms3.Sub(ms3.AbsElem(p), ms3.Scale(0.5, dim))
	return ms3.Norm(ms3.MaxElem(v, ms3.Vec{})) + math32.Min(maxElem3(v), 0)
}

// Capsule3 is the distance to the set of points within r of segment a-b.
// a==b yields NaN.
func Capsule3(p, a, b ms3.Vec, r float32) float32 {
	pa := ms3.Sub(p, a)
	ba := ms3.Sub(b, a)
	h := clampf(ms3.Dot(pa, ba)/ms3.Dot(ba, ba), 0, 1)
	return ms3.Norm(ms3.Sub(pa, ms3.Scale(h, ba))) - r
}

// Torus is the distance to a torus lying on the XZ plane, revolving around the Y axis.
// t.X is the major radius and t.Y the minor (tube) radius.
func Torus(p ms3.Vec, t ms2.Vec) float32 {
	q := ms2.Vec{X: math32.Hypot(p.X, p.Z) - t.X, Y: p.Y}
	return ms2.Norm(q) - t.Y
}

// TorusX is a [Torus] revolving around the X axis.
func TorusX(p ms3.Vec, t ms2.Vec) float32 {
	q := ms2.Vec{X: math32.Hypot(p.Y, p.Z) - t.X, Y: p.X}
	return ms2.Norm(q) - t.Y
}

// TorusZ is a [Torus] revolving around the Z axis.
func TorusZ(p ms3.Vec, t ms2.Vec) float32 {
	q := ms2.Vec{X: math32.Hypot(p.X, p.Y) - t.X, Y: p.Z}
	return ms2.Norm(q) - t.Y
}

// Plane is the distance to the plane through the origin with normal n.
// Points on the side n points to are outside. n must be of unit length.
func Plane(p, n ms3.Vec) float32 {
	return ms3.Dot(n, p)
}

// PlaneOffset is a [Plane] displaced h units along -n, i.e. the plane dot(n,p)+h=0.
func PlaneOffset(p, n ms3.Vec, h float32) float32 {
	return ms3.Dot(n, p) + h
}
