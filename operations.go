package shaderart

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shaderart/glbuild"
)

// OpUnion is the result of the [Builder.Union] operation. Prefer using [Builder.Union] to using this type directly.
//
// Normally primitives and results of operations in this package are
// not exported since their concrete type provides relatively little value.
// The result of Union is the exception to the rule since it is the
// most common operation and users may want to traverse a tree looking for
// OpUnion elements to section them by bounding box.
type OpUnion struct {
	// joined contains 2 or more 3D SDFs.
	// OpUnion methods will panic if joined less than 2 elements.
	joined []glbuild.Shader3D
}

// Union joins the shapes of several 3D SDFs into one. Is exact.
// Union aggregates nested Union results into its own.
func (bld *Builder) Union(shaders ...glbuild.Shader3D) glbuild.Shader3D {
	if len(shaders) < 2 {
		panic("need at least 2 arguments to Union")
	}
	var U OpUnion
	for i, s := range shaders {
		if s == nil {
			bld.nilsdf(fmt.Sprintf("nil arg[%d] to Union", i))
		}
		if subU, ok := s.(*OpUnion); ok {
			U.joined = append(U.joined, subU.joined...)
		} else {
			U.joined = append(U.joined, s)
		}
	}
	return &U
}

// Bounds returns the union of all joined SDFs. Implements [glbuild.Shader3D] and [gleval.SDF3].
func (u *OpUnion) Bounds() ms3.Box {
	u.mustValidate()
	bb := u.joined[0].Bounds()
	for _, bb2 := range u.joined[1:] {
		bb = bb.Union(bb2.Bounds())
	}
	return bb
}

// ForEachChild implements [glbuild.Shader3D].
func (u *OpUnion) ForEachChild(userData any, fn func(userData any, s *glbuild.Shader3D) error) error {
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
func (u *OpUnion) AppendShaderName(b []byte) []byte {
	u.mustValidate()
	b = append(b, "union_"...)
	for i := range u.joined {
		b = u.joined[i].AppendShaderName(b)
		if i < len(u.joined)-1 {
			b = append(b, '_')
		}
	}
	return b
}

// AppendShaderBody implements [glbuild.Shader].
func (u *OpUnion) AppendShaderBody(b []byte) []byte {
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

func (u *OpUnion) mustValidate() {
	if len(u.joined) < 2 {
		panic("OpUnion must have at least 2 elements. Please prefer using Builder.Union over OpUnion")
	}
}

type binop3D struct {
	s1, s2 glbuild.Shader3D
}

func (op *binop3D) ForEachChild(userData any, fn func(userData any, s *glbuild.Shader3D) error) error {
	err := fn(userData, &op.s1)
	if err != nil {
		return err
	}
	return fn(userData, &op.s2)
}

func (op *binop3D) appendNames(b []byte) []byte {
	b = op.s1.AppendShaderName(b)
	b = append(b, '_')
	return op.s2.AppendShaderName(b)
}

func (op *binop3D) appendDecls(b []byte) []byte {
	b = glbuild.AppendDistanceDecl(b, "d1", "p", op.s1)
	return glbuild.AppendDistanceDecl(b, "d2", "p", op.s2)
}

// Difference is the SDF difference of a-b. Does not produce a true SDF.
func (bld *Builder) Difference(a, b glbuild.Shader3D) glbuild.Shader3D {
	if a == nil || b == nil {
		bld.nilsdf("Difference")
	}
	return &diff{binop3D{s1: a, s2: b}}
}

type diff struct{ binop3D }

func (s *diff) Bounds() ms3.Box { return s.s1.Bounds() }

func (s *diff) AppendShaderName(b []byte) []byte {
	b = append(b, "diff_"...)
	return s.appendNames(b)
}

func (s *diff) AppendShaderBody(b []byte) []byte {
	b = s.appendDecls(b)
	return append(b, "return max(d1,-d2);"...)
}

// Intersection is the SDF intersection of a ^ b. Does not produce an exact SDF.
func (bld *Builder) Intersection(a, b glbuild.Shader3D) glbuild.Shader3D {
	if a == nil || b == nil {
		bld.nilsdf("Intersection")
	}
	return &intersect{binop3D{s1: a, s2: b}}
}

type intersect struct{ binop3D }

func (s *intersect) Bounds() ms3.Box { return s.s1.Bounds().Intersect(s.s2.Bounds()) }

func (s *intersect) AppendShaderName(b []byte) []byte {
	b = append(b, "intersect_"...)
	return s.appendNames(b)
}

func (s *intersect) AppendShaderBody(b []byte) []byte {
	b = s.appendDecls(b)
	return append(b, "return max(d1,d2);"...)
}

// Xor is the region inside exactly one of s1 and s2.
func (bld *Builder) Xor(s1, s2 glbuild.Shader3D) glbuild.Shader3D {
	if s1 == nil || s2 == nil {
		bld.nilsdf("Xor")
	}
	return &xor{binop3D{s1: s1, s2: s2}}
}

type xor struct{ binop3D }

func (s *xor) Bounds() ms3.Box { return s.s1.Bounds().Union(s.s2.Bounds()) }

func (s *xor) AppendShaderName(b []byte) []byte {
	b = append(b, "xor_"...)
	return s.appendNames(b)
}

func (s *xor) AppendShaderBody(b []byte) []byte {
	b = s.appendDecls(b)
	return append(b, "return max(min(d1,d2),-max(d1,d2));"...)
}

// SmoothUnion joins the shapes of two shaders into one with a smoothing blend of size k.
// k of zero is a plain union.
func (bld *Builder) SmoothUnion(k float32, s1, s2 glbuild.Shader3D) glbuild.Shader3D {
	if s1 == nil || s2 == nil {
		bld.nilsdf("SmoothUnion")
	}
	if k < 0 || badFinite(k) {
		bld.shapeErrorf("bad smooth union factor %g", k)
	}
	return &smoothUnion{binop3D: binop3D{s1: s1, s2: s2}, k: k}
}

type smoothUnion struct {
	binop3D
	k float32
}

func (s *smoothUnion) Bounds() ms3.Box {
	return growBox(s.s1.Bounds().Union(s.s2.Bounds()), s.k/4)
}

func (s *smoothUnion) AppendShaderName(b []byte) []byte {
	b = append(b, "smoothUnion"...)
	b = glbuild.AppendFloat(b, 'n', 'p', s.k)
	b = append(b, '_')
	return s.appendNames(b)
}

func (s *smoothUnion) AppendShaderBody(b []byte) []byte {
	return appendSmoothUnionBody(s.appendDecls(b), s.k)
}

// Onion turns s into a shell of thickness 2*r centered on its boundary.
func (bld *Builder) Onion(s glbuild.Shader3D, r float32) glbuild.Shader3D {
	if s == nil {
		bld.nilsdf("Onion")
	}
	if badDim(r) {
		bld.shapeErrorf("bad onion thickness %g", r)
	}
	return &onion{s: s, r: r}
}

type onion struct {
	s glbuild.Shader3D
	r float32
}

func (o *onion) Bounds() ms3.Box { return growBox(o.s.Bounds(), o.r) }

func (o *onion) ForEachChild(userData any, fn func(userData any, s *glbuild.Shader3D) error) error {
	return fn(userData, &o.s)
}

func (o *onion) AppendShaderName(b []byte) []byte {
	b = append(b, "onion"...)
	b = glbuild.AppendFloat(b, 'n', 'p', o.r)
	b = append(b, '_')
	return o.s.AppendShaderName(b)
}

func (o *onion) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendFloatDecl(b, "r", o.r)
	b = glbuild.AppendDistanceDecl(b, "d", "p", o.s)
	return append(b, "return abs(d)-r;"...)
}

// Offset grows the boundary of s outwards by r, or shrinks it for negative r.
func (bld *Builder) Offset(s glbuild.Shader3D, r float32) glbuild.Shader3D {
	if s == nil {
		bld.nilsdf("Offset")
	}
	if badFinite(r) {
		bld.shapeErrorf("bad offset %g", r)
	}
	return &offset{s: s, r: r}
}

type offset struct {
	s glbuild.Shader3D
	r float32
}

func (o *offset) Bounds() ms3.Box { return growBox(o.s.Bounds(), math32.Max(o.r, 0)) }

func (o *offset) ForEachChild(userData any, fn func(userData any, s *glbuild.Shader3D) error) error {
	return fn(userData, &o.s)
}

func (o *offset) AppendShaderName(b []byte) []byte {
	b = append(b, "offset"...)
	b = glbuild.AppendFloat(b, 'n', 'p', o.r)
	b = append(b, '_')
	return o.s.AppendShaderName(b)
}

func (o *offset) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendFloatDecl(b, "r", o.r)
	b = glbuild.AppendDistanceDecl(b, "d", "p", o.s)
	return append(b, "return d-r;"...)
}

// Translate moves s by (dirX, dirY, dirZ).
func (bld *Builder) Translate(s glbuild.Shader3D, dirX, dirY, dirZ float32) glbuild.Shader3D {
	if s == nil {
		bld.nilsdf("Translate")
	}
	if badFinite(dirX) || badFinite(dirY) || badFinite(dirZ) {
		bld.shapeErrorf("bad translation")
	}
	return &translate{s: s, p: ms3.Vec{X: dirX, Y: dirY, Z: dirZ}}
}

type translate struct {
	s glbuild.Shader3D
	p ms3.Vec
}

func (t *translate) Bounds() ms3.Box { return t.s.Bounds().Add(t.p) }

func (t *translate) ForEachChild(userData any, fn func(userData any, s *glbuild.Shader3D) error) error {
	return fn(userData, &t.s)
}

func (t *translate) AppendShaderName(b []byte) []byte {
	b = append(b, "translate"...)
	b = appendVec3Name(b, t.p)
	b = append(b, '_')
	return t.s.AppendShaderName(b)
}

func (t *translate) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendVec3Decl(b, "t", t.p)
	b = glbuild.AppendDistanceDecl(b, "d", "p-t", t.s)
	return append(b, "return d;"...)
}

// Repeat repeats s infinitely on a grid of period (periodX, periodY, periodZ).
// The result is exact only when s is symmetric about its cell's boundaries.
func (bld *Builder) Repeat(s glbuild.Shader3D, periodX, periodY, periodZ float32) glbuild.Shader3D {
	if s == nil {
		bld.nilsdf("Repeat")
	}
	if badDim(periodX) || badDim(periodY) || badDim(periodZ) {
		bld.shapeErrorf("bad repetition period")
	}
	return &repeat{s: s, f: ms3.Vec{X: periodX, Y: periodY, Z: periodZ}}
}

type repeat struct {
	s glbuild.Shader3D
	f ms3.Vec
}

func (r *repeat) Bounds() ms3.Box {
	return ms3.NewCenteredBox(ms3.Vec{}, ms3.Vec{X: largenum, Y: largenum, Z: largenum})
}

func (r *repeat) ForEachChild(userData any, fn func(userData any, s *glbuild.Shader3D) error) error {
	return fn(userData, &r.s)
}

func (r *repeat) AppendShaderName(b []byte) []byte {
	b = append(b, "repeat"...)
	b = appendVec3Name(b, r.f)
	b = append(b, '_')
	return r.s.AppendShaderName(b)
}

func (r *repeat) AppendShaderBody(b []byte) []byte {
	b = glbuild.AppendVec3Decl(b, "f", r.f)
	b = glbuild.AppendDistanceDecl(b, "d", "p-f*round(p/f)", r.s)
	return append(b, "return d;"...)
}

// Symmetry reflects the positive side of s across the selected coordinate
// planes, i.e: mirrorX makes the result symmetric about the YZ plane.
func (bld *Builder) Symmetry(s glbuild.Shader3D, mirrorX, mirrorY, mirrorZ bool) glbuild.Shader3D {
	if s == nil {
		bld.nilsdf("Symmetry")
	}
	if !mirrorX && !mirrorY && !mirrorZ {
		bld.shapeErrorf("ineffective symmetry")
	}
	return &symmetry{s: s, xyz: glbuild.NewXYZBits(mirrorX, mirrorY, mirrorZ)}
}

type symmetry struct {
	s   glbuild.Shader3D
	xyz glbuild.XYZBits
}

func (s *symmetry) Bounds() ms3.Box {
	box := s.s.Bounds()
	if s.xyz.X() {
		box.Max.X = math32.Max(math32.Abs(box.Min.X), math32.Abs(box.Max.X))
		box.Min.X = -box.Max.X
	}
	if s.xyz.Y() {
		box.Max.Y = math32.Max(math32.Abs(box.Min.Y), math32.Abs(box.Max.Y))
		box.Min.Y = -box.Max.Y
	}
	if s.xyz.Z() {
		box.Max.Z = math32.Max(math32.Abs(box.Min.Z), math32.Abs(box.Max.Z))
		box.Min.Z = -box.Max.Z
	}
	return box
}

func (s *symmetry) ForEachChild(userData any, fn func(userData any, s *glbuild.Shader3D) error) error {
	return fn(userData, &s.s)
}

func (s *symmetry) AppendShaderName(b []byte) []byte {
	b = append(b, "symmetry"...)
	b = s.xyz.AppendMapped_XYZ(b)
	b = append(b, '_')
	return s.s.AppendShaderName(b)
}

func (s *symmetry) AppendShaderBody(b []byte) []byte {
	b = append(b, "p."...)
	b = s.xyz.AppendMapped_xyz(b)
	b = append(b, "=abs(p."...)
	b = s.xyz.AppendMapped_xyz(b)
	b = append(b, ");\n"...)
	b = glbuild.AppendDistanceDecl(b, "d", "p", s.s)
	return append(b, "return d;"...)
}

func growBox(bb ms3.Box, r float32) ms3.Box {
	return ms3.Box{Min: ms3.AddScalar(-r, bb.Min), Max: ms3.AddScalar(r, bb.Max)}
}
