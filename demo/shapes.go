package demo

import (
	"fmt"
	"strconv"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shaderart"
	"github.com/soypat/shaderart/dist"
	"github.com/soypat/shaderart/glbuild"
)

// Shape2D enumerates the 2D shape kinds of the sdf2d demo.
type Shape2D uint32

const (
	Disk Shape2D = iota
	Rectangle
	RoundedRectangle
	Capsule
	Segment
	Line
	Ray
	HalfPlane
	EquilateralTriangle
	Triangle
	Hexagon
	RegularPolygon
	Arc
	Cross
	Rhombus
	numShapes2D
)

// NumShapes2D is the number of 2D shape kinds.
const NumShapes2D = int(numShapes2D)

var shape2DNames = [NumShapes2D]string{
	Disk:                "disk",
	Rectangle:           "rectangle",
	RoundedRectangle:    "rounded_rectangle",
	Capsule:             "capsule",
	Segment:             "segment",
	Line:                "line",
	Ray:                 "ray",
	HalfPlane:           "half_plane",
	EquilateralTriangle: "equilateral_triangle",
	Triangle:            "triangle",
	Hexagon:             "hexagon",
	RegularPolygon:      "regular_polygon",
	Arc:                 "arc",
	Cross:               "cross",
	Rhombus:             "rhombus",
}

func (s Shape2D) String() string {
	if int(s) >= NumShapes2D {
		return "Shape2D(" + strconv.Itoa(int(s)) + ")"
	}
	return shape2DNames[s]
}

// ParseShape2D returns the shape kind named name.
func ParseShape2D(name string) (Shape2D, error) {
	for i, n := range shape2DNames {
		if n == name {
			return Shape2D(i), nil
		}
	}
	return 0, fmt.Errorf("unknown 2D shape %q", name)
}

// Shape3D enumerates the 3D shape kinds of the sdf3d demo.
type Shape3D uint32

const (
	Sphere Shape3D = iota
	Cuboid
	Capsule3D
	Torus
	Plane
	numShapes3D
)

// NumShapes3D is the number of 3D shape kinds.
const NumShapes3D = int(numShapes3D)

var shape3DNames = [NumShapes3D]string{
	Sphere:    "sphere",
	Cuboid:    "cuboid",
	Capsule3D: "capsule",
	Torus:     "torus",
	Plane:     "plane",
}

func (s Shape3D) String() string {
	if int(s) >= NumShapes3D {
		return "Shape3D(" + strconv.Itoa(int(s)) + ")"
	}
	return shape3DNames[s]
}

// ParseShape3D returns the shape kind named name.
func ParseShape3D(name string) (Shape3D, error) {
	for i, n := range shape3DNames {
		if n == name {
			return Shape3D(i), nil
		}
	}
	return 0, fmt.Errorf("unknown 3D shape %q", name)
}

// ShapeParams2D holds the parameters of one 2D shape kind. How Radius, Dim
// and Points are interpreted depends on the kind:
//
//	Disk, Hexagon, RegularPolygon: Radius.
//	Rectangle, Rhombus: Dim is the size.
//	RoundedRectangle: Dim is the size, Radius the rounding.
//	Capsule: Points[0] to Points[1] with Radius.
//	Segment, Line: through Points[0] and Points[1].
//	Ray: from Points[0] towards Points[1].
//	HalfPlane: normal Points[0] and offset Radius.
//	EquilateralTriangle: side Radius.
//	Triangle: vertices Points.
//	Arc: radius Radius, aperture angle Dim.X and thickness Dim.Y.
//	Cross: arm length Dim.X, thickness Dim.Y, rounding Radius.
type ShapeParams2D struct {
	Radius float32
	Dim    ms2.Vec
	// Angle rotates the shape counter clockwise in radians.
	Angle  float32
	Points [3]ms2.Vec
	// Sides of RegularPolygon.
	Sides int32
	// Onion turns the shape into a shell of half thickness Onion.
	Onion dist.Optional
	// Pad grows the shape by Pad.
	Pad dist.Optional
	// Repeat tiles the plane with period Repeat along both axes.
	Repeat dist.Optional
	// AngularCount repeats the shape around the origin AngularCount times
	// at distance AngularRadius when larger than 1.
	AngularCount  int32
	AngularRadius float32
}

// DefaultShapeParams2D returns a parameter slot for every 2D shape kind.
func DefaultShapeParams2D() [NumShapes2D]ShapeParams2D {
	tri := [3]ms2.Vec{{X: -0.3, Y: -0.2}, {X: 0.3, Y: -0.25}, {X: 0.05, Y: 0.3}}
	seg := [3]ms2.Vec{{X: -0.25, Y: -0.1}, {X: 0.25, Y: 0.15}}
	var p [NumShapes2D]ShapeParams2D
	p[Disk] = ShapeParams2D{Radius: 0.3}
	p[Rectangle] = ShapeParams2D{Dim: ms2.Vec{X: 0.6, Y: 0.35}}
	p[RoundedRectangle] = ShapeParams2D{Dim: ms2.Vec{X: 0.6, Y: 0.35}, Radius: 0.08}
	p[Capsule] = ShapeParams2D{Points: seg, Radius: 0.08}
	p[Segment] = ShapeParams2D{Points: seg}
	p[Line] = ShapeParams2D{Points: seg}
	p[Ray] = ShapeParams2D{Points: seg}
	p[HalfPlane] = ShapeParams2D{Points: [3]ms2.Vec{{X: 0.3, Y: 1}}, Radius: 0.1}
	p[EquilateralTriangle] = ShapeParams2D{Radius: 0.5}
	p[Triangle] = ShapeParams2D{Points: tri}
	p[Hexagon] = ShapeParams2D{Radius: 0.25}
	p[RegularPolygon] = ShapeParams2D{Radius: 0.25, Sides: 5}
	p[Arc] = ShapeParams2D{Radius: 0.3, Dim: ms2.Vec{X: 4, Y: 0.08}}
	p[Cross] = ShapeParams2D{Dim: ms2.Vec{X: 0.6, Y: 0.15}, Radius: 0.02}
	p[Rhombus] = ShapeParams2D{Dim: ms2.Vec{X: 0.6, Y: 0.35}}
	for i := range p {
		p[i].Onion, p[i].Pad, p[i].Repeat = dist.Unset, dist.Unset, dist.Unset
	}
	return p
}

// Distance evaluates the signed distance of the shape kind s with
// parameters prm at p. Out of range shape kinds return +Inf.
func (s Shape2D) Distance(p ms2.Vec, prm *ShapeParams2D) float32 {
	if f, ok := prm.Repeat.Get(); ok {
		p = dist.Repeat2(p, ms2.Vec{X: f, Y: f})
	}
	var d float32
	if prm.AngularCount > 1 {
		d = dist.RepeatAngular(p, prm.AngularRadius, int(prm.AngularCount), func(q ms2.Vec) float32 {
			return s.rotated(q, prm)
		})
	} else {
		d = s.rotated(p, prm)
	}
	if pad, ok := prm.Pad.Get(); ok {
		d = dist.Pad(d, pad)
	}
	if r, ok := prm.Onion.Get(); ok {
		d = dist.Onion(d, r)
	}
	return d
}

func (s Shape2D) rotated(p ms2.Vec, prm *ShapeParams2D) float32 {
	if prm.Angle != 0 {
		p = dist.Rotate2(p, -prm.Angle)
	}
	return s.primitive(p, prm)
}

func (s Shape2D) primitive(p ms2.Vec, prm *ShapeParams2D) float32 {
	pts := &prm.Points
	switch s {
	case Disk:
		return dist.Circle(p, prm.Radius)
	case Rectangle:
		return dist.Rectangle(p, prm.Dim)
	case RoundedRectangle:
		return dist.RoundedRectangle(p, prm.Dim, prm.Radius)
	case Capsule:
		return dist.Capsule(p, pts[0], pts[1], prm.Radius)
	case Segment:
		return dist.Segment(p, pts[0], pts[1])
	case Line:
		return dist.Line(p, pts[0], pts[1])
	case Ray:
		return dist.Ray(p, pts[0], ms2.Unit(ms2.Sub(pts[1], pts[0])))
	case HalfPlane:
		return dist.HalfPlane(p, ms2.Unit(pts[0]), prm.Radius)
	case EquilateralTriangle:
		return dist.EquilateralTriangle(p, prm.Radius)
	case Triangle:
		return dist.Triangle(p, pts[0], pts[1], pts[2])
	case Hexagon:
		return dist.Hexagon(p, prm.Radius)
	case RegularPolygon:
		return dist.RegularPolygon(p, prm.Radius, int(prm.Sides))
	case Arc:
		sin, cos := math32.Sincos(prm.Dim.X / 2)
		return dist.Arc(p, ms2.Vec{X: sin, Y: cos}, prm.Radius, prm.Dim.Y/2)
	case Cross:
		return dist.Cross(p, ms2.Scale(0.5, prm.Dim), prm.Radius)
	case Rhombus:
		return dist.Rhombus(p, ms2.Scale(0.5, prm.Dim))
	}
	return math32.Inf(1)
}

// Scene2D builds the shape kind s with parameters prm as a node tree that
// evaluates the same distance as [Shape2D.Distance]. Unbounded kinds (Line,
// Ray and HalfPlane) have no node representation and return an error.
func (s Shape2D) Scene2D(bld *shaderart.Builder, prm *ShapeParams2D) (glbuild.Shader2D, error) {
	pts := &prm.Points
	var node glbuild.Shader2D
	switch s {
	case Disk:
		node = bld.NewCircle(prm.Radius)
	case Rectangle:
		node = bld.NewRectangle(prm.Dim.X, prm.Dim.Y)
	case RoundedRectangle:
		node = bld.NewRoundedRectangle(prm.Dim.X, prm.Dim.Y, prm.Radius)
	case Capsule:
		node = bld.NewCapsule2D(pts[0], pts[1], prm.Radius)
	case Segment:
		node = bld.NewSegment2D(pts[0], pts[1])
	case EquilateralTriangle:
		node = bld.NewEquilateralTriangle(prm.Radius)
	case Triangle:
		node = bld.NewTriangle(pts[0], pts[1], pts[2])
	case Hexagon:
		node = bld.NewHexagon(prm.Radius)
	case RegularPolygon:
		node = bld.NewRegularPolygon(prm.Radius, int(prm.Sides))
	case Arc:
		node = bld.NewArc(prm.Radius, prm.Dim.X, prm.Dim.Y)
	case Cross:
		node = bld.NewCross(prm.Dim.X, prm.Dim.Y, prm.Radius)
	case Rhombus:
		node = bld.NewRhombus(prm.Dim.X, prm.Dim.Y)
	default:
		return nil, fmt.Errorf("shape %s has no bounded node representation", s)
	}
	if prm.Angle != 0 {
		node = bld.Rotate2D(node, prm.Angle)
	}
	if prm.AngularCount > 1 {
		node = bld.RepeatAngular2D(node, prm.AngularRadius, int(prm.AngularCount))
	}
	if f, ok := prm.Repeat.Get(); ok {
		node = bld.Repeat2D(node, f, f)
	}
	if pad, ok := prm.Pad.Get(); ok {
		node = bld.Offset2D(node, pad)
	}
	if r, ok := prm.Onion.Get(); ok {
		node = bld.Onion2D(node, r)
	}
	return node, bld.Err()
}

// ShapeParams3D holds the parameters of one 3D shape kind:
//
//	Sphere: Radius.
//	Cuboid: Dim is the size.
//	Capsule3D: A to B with Radius.
//	Torus: major radius Radius, minor radius Minor, revolving around y.
//	Plane: unit normal Normal offset by Offset, distance dot(Normal,p)+Offset.
type ShapeParams3D struct {
	Radius float32
	Minor  float32
	Dim    ms3.Vec
	A, B   ms3.Vec
	Normal ms3.Vec
	Offset float32
	Onion  dist.Optional
	Pad    dist.Optional
}

// DefaultShapeParams3D returns a parameter slot for every 3D shape kind.
func DefaultShapeParams3D() [NumShapes3D]ShapeParams3D {
	var p [NumShapes3D]ShapeParams3D
	p[Sphere] = ShapeParams3D{Radius: 1}
	p[Cuboid] = ShapeParams3D{Dim: ms3.Vec{X: 1.5, Y: 1, Z: 1.2}}
	p[Capsule3D] = ShapeParams3D{A: ms3.Vec{X: -0.7, Y: -0.3}, B: ms3.Vec{X: 0.7, Y: 0.4}, Radius: 0.4}
	p[Torus] = ShapeParams3D{Radius: 1, Minor: 0.3}
	p[Plane] = ShapeParams3D{Normal: ms3.Vec{X: 0.3, Y: 1, Z: 0.2}, Offset: 0.2}
	for i := range p {
		p[i].Onion, p[i].Pad = dist.Unset, dist.Unset
	}
	return p
}

// Distance evaluates the signed distance of the shape kind s with parameters prm at p.
func (s Shape3D) Distance(p ms3.Vec, prm *ShapeParams3D) float32 {
	var d float32
	switch s {
	case Sphere:
		d = dist.Sphere(p, prm.Radius)
	case Cuboid:
		d = dist.Cuboid(p, prm.Dim)
	case Capsule3D:
		d = dist.Capsule3(p, prm.A, prm.B, prm.Radius)
	case Torus:
		d = dist.Torus(p, ms2.Vec{X: prm.Radius, Y: prm.Minor})
	case Plane:
		d = dist.PlaneOffset(p, ms3.Unit(prm.Normal), prm.Offset)
	default:
		return math32.Inf(1)
	}
	if pad, ok := prm.Pad.Get(); ok {
		d = dist.Pad(d, pad)
	}
	if r, ok := prm.Onion.Get(); ok {
		d = dist.Onion(d, r)
	}
	return d
}

// Scene3D builds the shape kind s as a node tree that evaluates the same
// distance as [Shape3D.Distance].
func (s Shape3D) Scene3D(bld *shaderart.Builder, prm *ShapeParams3D) (glbuild.Shader3D, error) {
	var node glbuild.Shader3D
	switch s {
	case Sphere:
		node = bld.NewSphere(prm.Radius)
	case Cuboid:
		node = bld.NewBox(prm.Dim.X, prm.Dim.Y, prm.Dim.Z)
	case Capsule3D:
		node = bld.NewCapsule(prm.A, prm.B, prm.Radius)
	case Torus:
		node = bld.NewTorus(prm.Radius, prm.Minor, shaderart.AxisY)
	case Plane:
		node = bld.NewPlane(prm.Normal, prm.Offset)
	default:
		return nil, fmt.Errorf("unknown 3D shape %s", s)
	}
	if pad, ok := prm.Pad.Get(); ok {
		node = bld.Offset(node, pad)
	}
	if r, ok := prm.Onion.Get(); ok {
		node = bld.Onion(node, r)
	}
	return node, bld.Err()
}
