package shaderart

import (
	"fmt"
	"strconv"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shaderart/dist"
	"github.com/soypat/shaderart/glbuild"
)

// OpUnion2D is the result of [Builder.Union2D]. It is exported so that users
// may traverse a tree looking for unions to section by bounding box.
type OpUnion2D struct {
	// joined contains 2 or more 2D SDFs.
	joined []glbuild.Shader2D
}

// Union2D joins the shapes of several 2D SDFs into one. Is exact.
// Union2D aggregates nested Union2D results into its own.
func (bld *Builder) Union2D(shaders ...glbuild.Shader2D) glbuild.Shader2D {
	if len(shaders) < 2 {
		panic("need at least 2 arguments to Union2D")
	}
	var U OpUnion2D
	for i, s := range shaders {
		if s == nil {
			bld.nilsdf(fmt.Sprintf("nil arg[%d] to Union2D", i))
		}
		if subU, ok := s.(*OpUnion2D); ok {
			// Flatten nested unions for shorter GLSL.
			U.joined = append(U.joined, subU.joined...)
		} else {
			U.joined = append(U.joined, s)
		}
	}
	return &U
}

// Bounds returns the union of all joined SDFs. Implements [glbuild.Shader2D] and [gleval.SDF2].
func (u *OpUnion2D) Bounds() ms2.Box {
	u.mustValidate()
	bb := u.joined[0].Bounds()
	for _, bb2 := range u.joined[1:] {
		bb = bb.Union(bb2.Bounds())
	}
	return bb
}

// ForEach2DChild implements [glbuild.Shader2D].
func (u *OpUnion2D) ForEach2DChild(userData any, fn func(userData any, s *glbuild.Shader2D) error) error {
	u.mustValidate()
	for i := range u.joined {
		err := fn(userData, &u.joined[i])
		if err != nil {
			return err
		}
	}
	return nil
}

// AppendShaderName implements [glbuild.Shader].
func (u *OpUnion2D) AppendShaderName(b []byte) []byte {
	u.mustValidate()
	b = append(b, "union2D_"...)
	for i := range u.joined {
		b = u.joined[i].AppendShaderName(b)
		if i < len(u.joined)-1 {
			b = append(b, '_')
		}
	}
	return b
}

// AppendShaderBody implements [glbuild.Shader].
func (u *OpUnion2D) AppendShaderBody(b []byte) []byte {
	u.mustValidate()
	b = glbuild.AppendDistanceDecl(b, "d", "p", u.joined[0])
	for i := range u.joined[1:] {
		b = append(b, "d=min(d,"...)
		b = u.joined[i+1].AppendShaderName(b)
		b = append(b, "(p));\n"...)
	}
	b = append(b, "return d;"...)
	return b
}

func (u *OpUnion2D) mustValidate() {
	if len(u.joined) < 2 {
		panic("OpUnion2D must have at least 2 elements. Please prefer using Builder.Union2D over OpUnion2D")
	}
}

// binop2D holds the two operands of a binary 2D operation.
type binop2D struct {
	s1, s2 glbuild.Shader2D
}

func (op *binop2D) ForEach2DChild(userData any, fn func(userData any, s *glbuild.Shader2D) error) error {
	err := fn(userData, &op.s1)
	if err != nil {
		return err
	}
	return fn(userData, &op.s2)
}

func (op *binop2D) appendNames(b []byte) []byte {
	b = op.s1.AppendShaderName(b)
	b = append(b, '_')
	return op.s2.AppendShaderName(b)
}

func (op *binop2D) appendDecls(b []byte) []byte {
	b = glbuild.AppendDistanceDecl(b, "d1", "p", op.s1)
	return glbuild.AppendDistanceDecl(b, "d2", "p", op.s2)
}

// Intersection2D is the SDF intersection of a ^ b. Does not produce an exact SDF.
func (bld *Builder) Intersection2D(a, b glbuild.Shader2D) glbuild.Shader2D {
	if a == nil || b == nil {
		bld.nilsdf("Intersection2D")
	}
	return &intersect2D{binop2D{s1: a, s2: b}}
}

type intersect2D struct{ binop2D }

func (s *intersect2D) Bounds() ms2.Box {
	return s.s1.Bounds().Intersect(s.s2.Bounds())
}

func (s *intersect2D) AppendShaderName(b []byte) []byte {
	b = append(b, "intersect2D_"...)
	return s.appendNames(b)
}

func (s *intersect2D) AppendShaderBody(b []byte) []byte {
	b = s.appendDecls(b)
	b = append(b, "return max(d1,d2);"...)
	return b
}

// Difference2D is the SDF difference of a-b. Does not produce a true SDF.
func (bld *Builder) Difference2D(a, b glbuild.Shader2D) glbuild.Shader2D {
	if a == nil || b == nil {
		bld.nilsdf("Difference2D")
	}
	return &diff2D{binop2D{s1: a, s2: b}}
}

type diff2D struct{ binop2D }

func (s *diff2D) Bounds() ms2.Box {
	return s.s1.Bounds()
}

func (s *diff2D) AppendShaderName(b []byte) []byte {
	b = append(b, "diff2D_"...)
	return s.appendNames(b)
}

func (s *diff2D) AppendShaderBody(b []byte) []byte {
	b = s.appendDecls(b)
	b = append(b, "return max(d1,-d2);"...)
	return b
}

// Xor2D is the region inside exactly one of s1 and s2.
func (bld *Builder) Xor2D(s1, s2 glbuild.Shader2D) glbuild.Shader2D {
	if s1 == nil || s2 == nil {
		bld.nilsdf("Xor2D")
	}
	return &xor2D{binop2D{s1: s1, s2: s2}}
}

type xor2D struct{ binop2D }

func (s *xor2D) Bounds() ms2.Box {
	return s.s1.Bounds().Union(s.s2.Bounds())
}

func (s *xor2D) AppendShaderName(b []byte) []byte {
	b = append(b, "xor2D_"...)
	return s.appendNames(b)
}

func (s *xor2D) AppendShaderBody(b []byte) []byte {
	b = s.appendDecls(b)
	b = append(b, "return max(min(d1,d2),-max(d1,d2));"...)
	return b
}

// SmoothUnion2D joins s1 and s2 blending the seam with a fillet of size k.
// k of zero is a plain union.
func (bld *Builder) SmoothUnion2D(k float32, s1, s2 glbuild.Shader2D) glbuild.Shader2D {
	if s1 == nil || s2 == nil {
		bld.nilsdf("SmoothUnion2D")
	}
	if k < 0 || badFinite(k) {
		bld.shapeErrorf("bad smooth union factor %g", k)
	}
	return &smoothUnion2D{binop2D: binop2D{s1: s1, s2: s2}, k: k}
}

type smoothUnion2D struct {
	binop2D
	k float32
}

// Bounds grows the union of both bounds by k/4, the most the blend can reach outwards.
func (s *smoothUnion2D) Bounds() ms2.Box {
	bb := s.s1.Bounds().Union(s.s2.Bounds())
	return ms2.Box{Min: ms2.AddScalar(-s.k/4, bb.Min), Max: ms2.AddScalar(s.k/4, bb.Max)}
}

func (s *smoothUnion2D) AppendShaderName(b []byte) []byte {
	b = append(b, "smoothUnion2D"...)
	b = glbuild.AppendFloat(b, 'n', 'p', s.k)
	b = append(b, '_')
	return s.appendNames(b)
}

func (s *smoothUnion2D) AppendShaderBody(b []byte) []byte {
	return appendSmoothUnionBody(s.appendDecls(b), s.k)
}

func appendSmoothUnionBody(b []byte, k float32) []byte {
	if k <= 0 {
		return append(b, "return min(d1,d2);"...)
	}
	b = glbuild.AppendFloatDecl(b, "k", k)
	b = append(b, `float h=clamp(k-abs(d1-d2),0.0,k)/k;
return min(d1,d2)-h*h*k*0.25;`...)
	return b
}

// Onion2D turns s into a shell of thickness 2*r centered on its boundary.
func (bld *Builder) Onion2D(s glbuild.Shader2D, r float32) glbuild.Shader2D {
	if s == nil {
		bld.nilsdf("Onion2D")
	}
	if badDim(r) {
		bld.shapeErrorf("bad onion thickness %g", r)
	}
	return &onion2D{s: s, r: r}
}

type onion2D struct {
	s glbuild.Shader2D
	r float32
}

func (o *onion2D) Bounds() ms2.Box {
	bb := o.s.Bounds()
	return ms2.Box{Min: ms2.AddScalar(-o.r, bb.Min), Max: ms2.AddScalar(o.r, bb.Max)}
}

func (o *onion2D) ForEach2DChild(userData any, fn func(userData any, s *glbuild.Shader2D) error) error {
	return fn(userData, &o.s)
}

func (o *onion2D) AppendShaderName(b []byte) []byte {
	b = append(b, "onion2D"...)
	b = glbuild.AppendFloat(b, 'n', 'p', o.r)
	b = append(b, '_')
	return o.s.AppendShaderName(b)
}

func (o *onion2D) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendFloatDecl(b, "r", o.r)
	b = glbuild.AppendDistanceDecl(b, "d", "p", o.s)
	b = append(b, "return abs(d)-r;"...)
	return b
}

// Offset2D grows the boundary of s outwards by r, or shrinks it for negative r.
func (bld *Builder) Offset2D(s glbuild.Shader2D, r float32) glbuild.Shader2D {
	if s == nil {
		bld.nilsdf("Offset2D")
	}
	if badFinite(r) {
		bld.shapeErrorf("bad offset %g", r)
	}
	return &offset2D{s: s, r: r}
}

type offset2D struct {
	s glbuild.Shader2D
	r float32
}

func (o *offset2D) Bounds() ms2.Box {
	bb := o.s.Bounds()
	r := math32.Max(o.r, 0)
	return ms2.Box{Min: ms2.AddScalar(-r, bb.Min), Max: ms2.AddScalar(r, bb.Max)}
}

func (o *offset2D) ForEach2DChild(userData any, fn func(userData any, s *glbuild.Shader2D) error) error {
	return fn(userData, &o.s)
}

func (o *offset2D) AppendShaderName(b []byte) []byte {
	b = append(b, "offset2D"...)
	b = glbuild.AppendFloat(b, 'n', 'p', o.r)
	b = append(b, '_')
	return o.s.AppendShaderName(b)
}

func (o *offset2D) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendFloatDecl(b, "r", o.r)
	b = glbuild.AppendDistanceDecl(b, "d", "p", o.s)
	b = append(b, "return d-r;"...)
	return b
}

// Translate2D moves s by (dirX, dirY).
func (bld *Builder) Translate2D(s glbuild.Shader2D, dirX, dirY float32) glbuild.Shader2D {
	if s == nil {
		bld.nilsdf("Translate2D")
	}
	if badFinite(dirX) || badFinite(dirY) {
		bld.shapeErrorf("bad translation")
	}
	return &translate2D{s: s, p: ms2.Vec{X: dirX, Y: dirY}}
}

type translate2D struct {
	s glbuild.Shader2D
	p ms2.Vec
}

func (t *translate2D) Bounds() ms2.Box {
	return t.s.Bounds().Add(t.p)
}

func (t *translate2D) ForEach2DChild(userData any, fn func(userData any, s *glbuild.Shader2D) error) error {
	return fn(userData, &t.s)
}

func (t *translate2D) AppendShaderName(b []byte) []byte {
	b = append(b, "translate2D"...)
	b = appendVec2Name(b, t.p)
	b = append(b, '_')
	return t.s.AppendShaderName(b)
}

func (t *translate2D) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendVec2Decl(b, "t", t.p)
	b = glbuild.AppendDistanceDecl(b, "d", "p-t", t.s)
	b = append(b, "return d;"...)
	return b
}

// Rotate2D rotates s counter-clockwise by theta radians about the origin.
func (bld *Builder) Rotate2D(s glbuild.Shader2D, theta float32) glbuild.Shader2D {
	if s == nil {
		bld.nilsdf("Rotate2D")
	}
	if badFinite(theta) {
		bld.shapeErrorf("bad rotation angle")
	}
	return &rotation2D{s: s, theta: theta}
}

type rotation2D struct {
	s     glbuild.Shader2D
	theta float32
}

func (r *rotation2D) Bounds() ms2.Box {
	bb := r.s.Bounds()
	corners := [4]ms2.Vec{
		bb.Min, bb.Max,
		{X: bb.Min.X, Y: bb.Max.Y},
		{X: bb.Max.X, Y: bb.Min.Y},
	}
	rotated := dist.Rotate2(corners[0], r.theta)
	out := ms2.Box{Min: rotated, Max: rotated}
	for _, c := range corners[1:] {
		out = out.IncludePoint(dist.Rotate2(c, r.theta))
	}
	return out
}

func (r *rotation2D) ForEach2DChild(userData any, fn func(userData any, s *glbuild.Shader2D) error) error {
	return fn(userData, &r.s)
}

func (r *rotation2D) AppendShaderName(b []byte) []byte {
	b = append(b, "rotate2D"...)
	b = glbuild.AppendFloat(b, 'n', 'p', r.theta)
	b = append(b, '_')
	return r.s.AppendShaderName(b)
}

func (r *rotation2D) AppendShaderBody(b []byte) []byte {
	sin, cos := math32.Sincos(r.theta)
	b = glbuild.AppendFloatDecl(b, "c", cos)
	b = glbuild.AppendFloatDecl(b, "s", sin)
	b = glbuild.AppendDistanceDecl(b, "d", "vec2(c*p.x+s*p.y,-s*p.x+c*p.y)", r.s)
	b = append(b, "return d;"...)
	return b
}

// Repeat2D repeats s infinitely on a grid of period (periodX, periodY).
// The result is exact only when s is symmetric about its tile's boundaries.
func (bld *Builder) Repeat2D(s glbuild.Shader2D, periodX, periodY float32) glbuild.Shader2D {
	if s == nil {
		bld.nilsdf("Repeat2D")
	}
	if badDim(periodX) || badDim(periodY) {
		bld.shapeErrorf("bad repetition period")
	}
	return &repeat2D{s: s, f: ms2.Vec{X: periodX, Y: periodY}}
}

type repeat2D struct {
	s glbuild.Shader2D
	f ms2.Vec
}

func (r *repeat2D) Bounds() ms2.Box {
	return ms2.NewBox(-largenum, -largenum, largenum, largenum)
}

func (r *repeat2D) ForEach2DChild(userData any, fn func(userData any, s *glbuild.Shader2D) error) error {
	return fn(userData, &r.s)
}

func (r *repeat2D) AppendShaderName(b []byte) []byte {
	b = append(b, "repeat2D"...)
	b = appendVec2Name(b, r.f)
	b = append(b, '_')
	return r.s.AppendShaderName(b)
}

func (r *repeat2D) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendVec2Decl(b, "f", r.f)
	b = glbuild.AppendDistanceDecl(b, "d", "p-f*round(p/f)", r.s)
	b = append(b, "return d;"...)
	return b
}

// RepeatAngular2D places n copies of s at radius r around the origin, the
// first one centered on the +x axis. s should be centered at the origin and
// fit within its angular wedge.
func (bld *Builder) RepeatAngular2D(s glbuild.Shader2D, r float32, n int) glbuild.Shader2D {
	if s == nil {
		bld.nilsdf("RepeatAngular2D")
	}
	if r < 0 || badFinite(r) {
		bld.shapeErrorf("bad angular repetition radius %g", r)
	}
	if n < 1 {
		bld.shapeErrorf("bad angular repetition count %d", n)
	}
	return &repeatAngular2D{s: s, r: r, n: n}
}

type repeatAngular2D struct {
	s glbuild.Shader2D
	r float32
	n int
}

func (ra *repeatAngular2D) Bounds() ms2.Box {
	bb := ra.s.Bounds()
	far := ms2.Vec{
		X: math32.Max(math32.Abs(bb.Min.X), math32.Abs(bb.Max.X)),
		Y: math32.Max(math32.Abs(bb.Min.Y), math32.Abs(bb.Max.Y)),
	}
	extent := ra.r + ms2.Norm(far)
	return ms2.NewBox(-extent, -extent, extent, extent)
}

func (ra *repeatAngular2D) ForEach2DChild(userData any, fn func(userData any, s *glbuild.Shader2D) error) error {
	return fn(userData, &ra.s)
}

func (ra *repeatAngular2D) AppendShaderName(b []byte) []byte {
	b = append(b, "repeatAngular2D"...)
	b = strconv.AppendInt(b, int64(ra.n), 10)
	b = append(b, '_')
	b = glbuild.AppendFloat(b, 'n', 'p', ra.r)
	b = append(b, '_')
	return ra.s.AppendShaderName(b)
}

func (ra *repeatAngular2D) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendIntDecl(b, "n", ra.n)
	b = glbuild.AppendFloatDecl(b, "tau", 2*math32.Pi)
	b = append(b, "float sp=tau/float(n);\n"...)
	b = glbuild.AppendVec2Decl(b, "o", ms2.Vec{X: ra.r})
	b = append(b, `float id=floor(atan(p.y,p.x)/sp);
float a0=-sp*id, a1=-sp*(id+1.0);
vec2 q0=vec2(cos(a0)*p.x-sin(a0)*p.y,sin(a0)*p.x+cos(a0)*p.y)-o;
vec2 q1=vec2(cos(a1)*p.x-sin(a1)*p.y,sin(a1)*p.x+cos(a1)*p.y)-o;
`...)
	b = glbuild.AppendDistanceDecl(b, "d0", "q0", ra.s)
	b = glbuild.AppendDistanceDecl(b, "d1", "q1", ra.s)
	b = append(b, "return min(d0,d1);"...)
	return b
}

// Mirror2D mirrors s across the line through the origin with normal (nx, ny).
// The half of s on the side the normal points to is kept and reflected onto the other side.
func (bld *Builder) Mirror2D(s glbuild.Shader2D, nx, ny float32) glbuild.Shader2D {
	if s == nil {
		bld.nilsdf("Mirror2D")
	}
	n := ms2.Vec{X: nx, Y: ny}
	l := ms2.Norm(n)
	if l < epstol || badFinite(l) {
		bld.shapeErrorf("bad mirror normal %v", n)
	} else {
		n = ms2.Scale(1/l, n)
	}
	return &mirror2D{s: s, n: n}
}

type mirror2D struct {
	s glbuild.Shader2D
	n ms2.Vec
}

func (m *mirror2D) Bounds() ms2.Box {
	bb := m.s.Bounds()
	corners := [4]ms2.Vec{
		bb.Min, bb.Max,
		{X: bb.Min.X, Y: bb.Max.Y},
		{X: bb.Max.X, Y: bb.Min.Y},
	}
	for _, c := range corners {
		bb = bb.IncludePoint(dist.Reflect2(c, m.n))
	}
	return bb
}

func (m *mirror2D) ForEach2DChild(userData any, fn func(userData any, s *glbuild.Shader2D) error) error {
	return fn(userData, &m.s)
}

func (m *mirror2D) AppendShaderName(b []byte) []byte {
	b = append(b, "mirror2D"...)
	b = appendVec2Name(b, m.n)
	b = append(b, '_')
	return m.s.AppendShaderName(b)
}

func (m *mirror2D) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendVec2Decl(b, "n", m.n)
	b = glbuild.AppendDistanceDecl(b, "d", "p-2.0*min(dot(p,n),0.0)*n", m.s)
	b = append(b, "return d;"...)
	return b
}

// Extrude extrudes a 2D shape along the z axis to a total height h centered at z=0.
func (bld *Builder) Extrude(s glbuild.Shader2D, h float32) glbuild.Shader3D {
	if s == nil {
		bld.nilsdf("Extrude")
	}
	if badDim(h) {
		bld.shapeErrorf("bad extrusion length")
	}
	return &extrusion{s: s, h: h}
}

type extrusion struct {
	s glbuild.Shader2D
	h float32
}

func (e *extrusion) Bounds() ms3.Box {
	b2 := e.s.Bounds()
	hd2 := e.h / 2
	return ms3.Box{
		Min: ms3.Vec{X: b2.Min.X, Y: b2.Min.Y, Z: -hd2},
		Max: ms3.Vec{X: b2.Max.X, Y: b2.Max.Y, Z: hd2},
	}
}

func (e *extrusion) ForEach2DChild(userData any, fn func(userData any, s *glbuild.Shader2D) error) error {
	return fn(userData, &e.s)
}

func (e *extrusion) ForEachChild(userData any, fn func(userData any, s *glbuild.Shader3D) error) error {
	return nil
}

func (e *extrusion) AppendShaderName(b []byte) []byte {
	b = append(b, "extrusion"...)
	b = glbuild.AppendFloat(b, 'n', 'p', e.h)
	b = append(b, '_')
	return e.s.AppendShaderName(b)
}

func (e *extrusion) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendFloatDecl(b, "h", e.h/2)
	b = glbuild.AppendDistanceDecl(b, "d", "p.xy", e.s)
	b = append(b, `vec2 w=vec2(d,abs(p.z)-h);
return min(max(w.x,w.y),0.0)+length(max(w,0.0));`...)
	return b
}
