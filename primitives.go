package shaderart

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shaderart/glbuild"
)

func appendVec3Name(b []byte, vecs ...ms3.Vec) []byte {
	for i, v := range vecs {
		if i > 0 {
			b = append(b, '_')
		}
		b = glbuild.AppendFloats(b, '_', 'n', 'p', v.X, v.Y, v.Z)
	}
	return b
}

type sphere struct {
	r float32
}

// NewSphere creates a sphere centered at the origin of radius r.
func (bld *Builder) NewSphere(r float32) glbuild.Shader3D {
	if badDim(r) {
		bld.shapeErrorf("bad sphere radius")
	}
	return &sphere{r: r}
}

func (s *sphere) ForEachChild(userData any, fn func(userData any, s *glbuild.Shader3D) error) error {
	return nil
}

func (s *sphere) AppendShaderName(b []byte) []byte {
	b = append(b, "sphere"...)
	return glbuild.AppendFloat(b, 'n', 'p', s.r)
}

func (s *sphere) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendFloatDecl(b, "r", s.r)
	b = append(b, "return length(p)-r;"...)
	return b
}

func (s *sphere) Bounds() ms3.Box {
	return ms3.NewCenteredBox(ms3.Vec{}, ms3.Vec{X: 2 * s.r, Y: 2 * s.r, Z: 2 * s.r})
}

type box struct {
	dims ms3.Vec
}

// NewBox creates a box centered at the origin with x,y,z dimensions.
func (bld *Builder) NewBox(x, y, z float32) glbuild.Shader3D {
	if badDim(x) || badDim(y) || badDim(z) {
		bld.shapeErrorf("bad box dimension")
	}
	return &box{dims: ms3.Vec{X: x, Y: y, Z: z}}
}

func (s *box) ForEachChild(userData any, fn func(userData any, s *glbuild.Shader3D) error) error {
	return nil
}

func (s *box) AppendShaderName(b []byte) []byte {
	b = append(b, "box"...)
	return appendVec3Name(b, s.dims)
}

func (s *box) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendVec3Decl(b, "d", ms3.Scale(0.5, s.dims))
	b = append(b, `vec3 q=abs(p)-d;
return length(max(q,0.0))+min(max(q.x,max(q.y,q.z)),0.0);`...)
	return b
}

func (s *box) Bounds() ms3.Box {
	return ms3.NewCenteredBox(ms3.Vec{}, s.dims)
}

type capsule struct {
	a, b ms3.Vec
	r    float32
}

// NewCapsule creates the set of points within radius of the segment a-b.
func (bld *Builder) NewCapsule(a, b ms3.Vec, radius float32) glbuild.Shader3D {
	if badDim(radius) {
		bld.shapeErrorf("bad capsule radius")
	}
	ba := ms3.Sub(b, a)
	if ms3.Dot(ba, ba) < epstol*epstol {
		bld.shapeErrorf("degenerate capsule segment %v-%v", a, b)
	}
	return &capsule{a: a, b: b, r: radius}
}

func (c *capsule) ForEachChild(userData any, fn func(userData any, s *glbuild.Shader3D) error) error {
	return nil
}

func (c *capsule) AppendShaderName(b []byte) []byte {
	b = append(b, "capsule"...)
	b = appendVec3Name(b, c.a, c.b)
	b = append(b, 'r')
	return glbuild.AppendFloat(b, 'n', 'p', c.r)
}

func (c *capsule) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendVec3Decl(b, "a", c.a)
	b = glbuild.AppendVec3Decl(b, "b", c.b)
	b = glbuild.AppendFloatDecl(b, "r", c.r)
	b = append(b, `vec3 pa=p-a, ba=b-a;
float h=clamp(dot(pa,ba)/dot(ba,ba),0.0,1.0);
return length(pa-ba*h)-r;`...)
	return b
}

func (c *capsule) Bounds() ms3.Box {
	r := c.r
	return ms3.Box{
		Min: ms3.Vec{X: math32.Min(c.a.X, c.b.X) - r, Y: math32.Min(c.a.Y, c.b.Y) - r, Z: math32.Min(c.a.Z, c.b.Z) - r},
		Max: ms3.Vec{X: math32.Max(c.a.X, c.b.X) + r, Y: math32.Max(c.a.Y, c.b.Y) + r, Z: math32.Max(c.a.Z, c.b.Z) + r},
	}
}

type torus struct {
	t    ms2.Vec // Major and minor radius.
	axis Axis
}

// NewTorus creates a torus centered at the origin revolving around axis. The
// tube of radius minorRadius follows a circle of radius majorRadius.
func (bld *Builder) NewTorus(majorRadius, minorRadius float32, axis Axis) glbuild.Shader3D {
	if badDim(majorRadius) || badDim(minorRadius) {
		bld.shapeErrorf("bad torus radius")
	} else if minorRadius > majorRadius {
		bld.shapeErrorf("torus minor radius %g exceeds major radius %g", minorRadius, majorRadius)
	}
	if axis > AxisZ {
		bld.shapeErrorf("bad torus axis %s", axis)
	}
	return &torus{t: ms2.Vec{X: majorRadius, Y: minorRadius}, axis: axis}
}

func (t *torus) ForEachChild(userData any, fn func(userData any, s *glbuild.Shader3D) error) error {
	return nil
}

func (t *torus) AppendShaderName(b []byte) []byte {
	b = append(b, "torus"...)
	b = append(b, t.axis.String()...)
	return appendVec2Name(b, t.t)
}

func (t *torus) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendVec2Decl(b, "t", t.t)
	switch t.axis {
	case AxisX:
		b = append(b, "vec2 q=vec2(length(p.yz)-t.x,p.x);\n"...)
	case AxisZ:
		b = append(b, "vec2 q=vec2(length(p.xy)-t.x,p.z);\n"...)
	default:
		b = append(b, "vec2 q=vec2(length(p.xz)-t.x,p.y);\n"...)
	}
	b = append(b, "return length(q)-t.y;"...)
	return b
}

func (t *torus) Bounds() ms3.Box {
	R := t.t.X + t.t.Y
	r := t.t.Y
	var sz ms3.Vec
	switch t.axis {
	case AxisX:
		sz = ms3.Vec{X: 2 * r, Y: 2 * R, Z: 2 * R}
	case AxisZ:
		sz = ms3.Vec{X: 2 * R, Y: 2 * R, Z: 2 * r}
	default:
		sz = ms3.Vec{X: 2 * R, Y: 2 * r, Z: 2 * R}
	}
	return ms3.NewCenteredBox(ms3.Vec{}, sz)
}

type plane struct {
	n ms3.Vec
	h float32
}

// NewPlane creates the half space below the plane with normal n offset by h
// from the origin, so that the distance is dot(n,p)+h. n is normalized.
func (bld *Builder) NewPlane(n ms3.Vec, h float32) glbuild.Shader3D {
	l := ms3.Norm(n)
	if l < epstol || badFinite(l) {
		bld.shapeErrorf("bad plane normal %v", n)
	} else {
		n = ms3.Scale(1/l, n)
	}
	if badFinite(h) {
		bld.shapeErrorf("bad plane offset")
	}
	return &plane{n: n, h: h}
}

func (pl *plane) ForEachChild(userData any, fn func(userData any, s *glbuild.Shader3D) error) error {
	return nil
}

func (pl *plane) AppendShaderName(b []byte) []byte {
	b = append(b, "plane"...)
	b = appendVec3Name(b, pl.n)
	b = append(b, 'h')
	return glbuild.AppendFloat(b, 'n', 'p', pl.h)
}

func (pl *plane) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendVec3Decl(b, "n", pl.n)
	b = glbuild.AppendFloatDecl(b, "h", pl.h)
	b = append(b, "return dot(n,p)+h;"...)
	return b
}

// Bounds returns a very large box since a plane is unbounded.
func (pl *plane) Bounds() ms3.Box {
	return ms3.NewCenteredBox(ms3.Vec{}, ms3.Vec{X: largenum, Y: largenum, Z: largenum})
}
