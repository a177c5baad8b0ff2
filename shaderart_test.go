package shaderart_test

import (
	"bytes"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shaderart"
	"github.com/soypat/shaderart/dist"
	"github.com/soypat/shaderart/glbuild"
	"github.com/soypat/shaderart/gleval"
)

type case2D struct {
	shape glbuild.Shader2D
	want  func(ms2.Vec) float32
}

type case3D struct {
	shape glbuild.Shader3D
	want  func(ms3.Vec) float32
}

func cases2D(bld *shaderart.Builder) []case2D {
	a, b, c := ms2.Vec{X: -0.3, Y: -0.1}, ms2.Vec{X: 0.4, Y: 0.2}, ms2.Vec{X: 0.1, Y: 0.6}
	circle := bld.NewCircle(0.3)
	rect := bld.NewRectangle(0.8, 0.5)
	tri := bld.NewTriangle(a, b, c)
	sc := ms2.Vec{X: math32.Sin(1), Y: math32.Cos(1)}
	return []case2D{
		{shape: circle, want: func(p ms2.Vec) float32 { return dist.Circle(p, 0.3) }},
		{shape: rect, want: func(p ms2.Vec) float32 { return dist.Rectangle(p, ms2.Vec{X: 0.8, Y: 0.5}) }},
		{shape: bld.NewRoundedRectangle(0.8, 0.5, 0.1), want: func(p ms2.Vec) float32 { return dist.RoundedRectangle(p, ms2.Vec{X: 0.8, Y: 0.5}, 0.1) }},
		{shape: bld.NewSegment2D(a, b), want: func(p ms2.Vec) float32 { return dist.Segment(p, a, b) }},
		{shape: bld.NewCapsule2D(a, b, 0.1), want: func(p ms2.Vec) float32 { return dist.Capsule(p, a, b, 0.1) }},
		{shape: bld.NewEquilateralTriangle(0.7), want: func(p ms2.Vec) float32 { return dist.EquilateralTriangle(p, 0.7) }},
		{shape: tri, want: func(p ms2.Vec) float32 { return dist.Triangle(p, a, b, c) }},
		{shape: bld.NewHexagon(0.4), want: func(p ms2.Vec) float32 { return dist.Hexagon(p, 0.4) }},
		{shape: bld.NewRegularPolygon(0.5, 7), want: func(p ms2.Vec) float32 { return dist.RegularPolygon(p, 0.5, 7) }},
		{shape: bld.NewArc(0.5, 2, 0.1), want: func(p ms2.Vec) float32 { return dist.Arc(p, sc, 0.5, 0.05) }},
		{shape: bld.NewCross(1, 0.3, 0.05), want: func(p ms2.Vec) float32 { return dist.Cross(p, ms2.Vec{X: 0.5, Y: 0.15}, 0.05) }},
		{shape: bld.NewRhombus(0.8, 0.4), want: func(p ms2.Vec) float32 { return dist.Rhombus(p, ms2.Vec{X: 0.4, Y: 0.2}) }},
		{
			shape: bld.Union2D(circle, rect, tri),
			want: func(p ms2.Vec) float32 {
				return dist.Union(dist.Circle(p, 0.3), dist.Union(dist.Rectangle(p, ms2.Vec{X: 0.8, Y: 0.5}), dist.Triangle(p, a, b, c)))
			},
		},
		{shape: bld.Intersection2D(circle, rect), want: func(p ms2.Vec) float32 {
			return dist.Intersection(dist.Circle(p, 0.3), dist.Rectangle(p, ms2.Vec{X: 0.8, Y: 0.5}))
		}},
		{shape: bld.Difference2D(rect, circle), want: func(p ms2.Vec) float32 {
			return dist.Difference(dist.Rectangle(p, ms2.Vec{X: 0.8, Y: 0.5}), dist.Circle(p, 0.3))
		}},
		{shape: bld.Xor2D(rect, circle), want: func(p ms2.Vec) float32 {
			return dist.SymmetricDifference(dist.Rectangle(p, ms2.Vec{X: 0.8, Y: 0.5}), dist.Circle(p, 0.3))
		}},
		{shape: bld.SmoothUnion2D(0.2, rect, bld.Translate2D(circle, 0.4, 0.3)), want: func(p ms2.Vec) float32 {
			return dist.SmoothUnion(dist.Rectangle(p, ms2.Vec{X: 0.8, Y: 0.5}), dist.Circle(ms2.Sub(p, ms2.Vec{X: 0.4, Y: 0.3}), 0.3), 0.2)
		}},
		{shape: bld.Onion2D(circle, 0.05), want: func(p ms2.Vec) float32 { return dist.Onion(dist.Circle(p, 0.3), 0.05) }},
		{shape: bld.Offset2D(rect, 0.1), want: func(p ms2.Vec) float32 { return dist.Pad(dist.Rectangle(p, ms2.Vec{X: 0.8, Y: 0.5}), 0.1) }},
		{shape: bld.Rotate2D(rect, 0.6), want: func(p ms2.Vec) float32 { return dist.Rectangle(dist.Rotate2(p, -0.6), ms2.Vec{X: 0.8, Y: 0.5}) }},
		{shape: bld.Repeat2D(circle, 1, 0.8), want: func(p ms2.Vec) float32 { return dist.Circle(dist.Repeat2(p, ms2.Vec{X: 1, Y: 0.8}), 0.3) }},
		{shape: bld.RepeatAngular2D(tri, 1, 5), want: func(p ms2.Vec) float32 {
			return dist.RepeatAngular(p, 1, 5, func(q ms2.Vec) float32 { return dist.Triangle(q, a, b, c) })
		}},
		{shape: bld.Mirror2D(tri, 1, 0), want: func(p ms2.Vec) float32 { return dist.Triangle(dist.Mirror2(p, ms2.Vec{X: 1}), a, b, c) }},
	}
}

func cases3D(bld *shaderart.Builder) []case3D {
	a, b := ms3.Vec{X: -0.3, Y: 0.1, Z: 0.2}, ms3.Vec{X: 0.4, Y: -0.2, Z: 0.1}
	sphere := bld.NewSphere(0.5)
	box := bld.NewBox(0.6, 0.4, 0.8)
	boxDims := ms3.Vec{X: 0.6, Y: 0.4, Z: 0.8}
	torusT := ms2.Vec{X: 0.5, Y: 0.1}
	hex := bld.NewHexagon(0.3)
	return []case3D{
		{shape: sphere, want: func(p ms3.Vec) float32 { return dist.Sphere(p, 0.5) }},
		{shape: box, want: func(p ms3.Vec) float32 { return dist.Cuboid(p, boxDims) }},
		{shape: bld.NewCapsule(a, b, 0.1), want: func(p ms3.Vec) float32 { return dist.Capsule3(p, a, b, 0.1) }},
		{shape: bld.NewTorus(0.5, 0.1, shaderart.AxisY), want: func(p ms3.Vec) float32 { return dist.Torus(p, torusT) }},
		{shape: bld.NewTorus(0.5, 0.1, shaderart.AxisX), want: func(p ms3.Vec) float32 { return dist.TorusX(p, torusT) }},
		{shape: bld.NewTorus(0.5, 0.1, shaderart.AxisZ), want: func(p ms3.Vec) float32 { return dist.TorusZ(p, torusT) }},
		{shape: bld.NewPlane(ms3.Vec{Y: 2}, 0.5), want: func(p ms3.Vec) float32 { return dist.PlaneOffset(p, ms3.Vec{Y: 1}, 0.5) }},
		{shape: bld.Union(sphere, box), want: func(p ms3.Vec) float32 { return dist.Union(dist.Sphere(p, 0.5), dist.Cuboid(p, boxDims)) }},
		{shape: bld.Intersection(sphere, box), want: func(p ms3.Vec) float32 {
			return dist.Intersection(dist.Sphere(p, 0.5), dist.Cuboid(p, boxDims))
		}},
		{shape: bld.Difference(box, sphere), want: func(p ms3.Vec) float32 { return dist.Difference(dist.Cuboid(p, boxDims), dist.Sphere(p, 0.5)) }},
		{shape: bld.Xor(box, sphere), want: func(p ms3.Vec) float32 {
			return dist.SymmetricDifference(dist.Cuboid(p, boxDims), dist.Sphere(p, 0.5))
		}},
		{shape: bld.SmoothUnion(0.3, box, bld.Translate(sphere, 0.5, 0, 0)), want: func(p ms3.Vec) float32 {
			return dist.SmoothUnion(dist.Cuboid(p, boxDims), dist.Sphere(ms3.Sub(p, ms3.Vec{X: 0.5}), 0.5), 0.3)
		}},
		{shape: bld.Onion(sphere, 0.05), want: func(p ms3.Vec) float32 { return dist.Onion(dist.Sphere(p, 0.5), 0.05) }},
		{shape: bld.Offset(box, 0.1), want: func(p ms3.Vec) float32 { return dist.Pad(dist.Cuboid(p, boxDims), 0.1) }},
		{shape: bld.Repeat(sphere, 2, 2, 3), want: func(p ms3.Vec) float32 {
			return dist.Sphere(dist.Repeat3(p, ms3.Vec{X: 2, Y: 2, Z: 3}), 0.5)
		}},
		{shape: bld.Symmetry(bld.Translate(sphere, 0.5, 0.2, 0), true, false, false), want: func(p ms3.Vec) float32 {
			p.X = math32.Abs(p.X)
			return dist.Sphere(ms3.Sub(p, ms3.Vec{X: 0.5, Y: 0.2}), 0.5)
		}},
		{shape: bld.Extrude(hex, 0.4), want: func(p ms3.Vec) float32 {
			d := dist.Hexagon(ms2.Vec{X: p.X, Y: p.Y}, 0.3)
			wy := math32.Abs(p.Z) - 0.2
			return math32.Min(0, math32.Max(d, wy)) + math32.Hypot(math32.Max(d, 0), math32.Max(wy, 0))
		}},
	}
}

func TestBuilderErrors(t *testing.T) {
	var bld shaderart.Builder
	bld.SetFlags(shaderart.FlagNoDimensionPanic)
	s := bld.NewCircle(-1)
	if s == nil {
		t.Error("expecting non-nil shape")
	}
	_ = bld.NewRegularPolygon(1, 2)
	_ = bld.NewTriangle(ms2.Vec{}, ms2.Vec{X: 1}, ms2.Vec{X: 2})
	err := bld.Err()
	if err == nil {
		t.Fatal("expecting error in Builder")
	}
	if !strings.Contains(err.Error(), "bad circle radius: -1") {
		t.Errorf("error does not report the radius: %v", err)
	}
	bld.ClearErrors()
	if bld.Err() != nil {
		t.Error("expected builder error to be cleared")
	}
}

func TestBuilderPanics(t *testing.T) {
	var bld shaderart.Builder
	defer func() {
		if recover() == nil {
			t.Error("expected panic on bad dimension without FlagNoDimensionPanic")
		}
	}()
	bld.NewSphere(0)
}

func TestCPUMatchesKernels2D(t *testing.T) {
	var bld shaderart.Builder
	rng := rand.New(rand.NewSource(1))
	const n = 512
	pos := make([]ms2.Vec, n)
	got := make([]float32, n)
	for _, tc := range cases2D(&bld) {
		name := glbuild.FormatShader(tc.shape)
		sdf, err := gleval.NewCPUSDF2(tc.shape)
		if err != nil {
			t.Fatal(name, err)
		}
		for i := range pos {
			pos[i] = ms2.Vec{X: 3 * (rng.Float32() - 0.5), Y: 3 * (rng.Float32() - 0.5)}
		}
		err = sdf.Evaluate(pos, got, nil)
		if err != nil {
			t.Fatal(name, err)
		}
		for i, p := range pos {
			want := tc.want(p)
			if math32.Abs(got[i]-want) > 1e-5 {
				t.Errorf("%s: p=%v got %g, want %g", name, p, got[i], want)
				break
			}
		}
	}
	if err := bld.Err(); err != nil {
		t.Fatal(err)
	}
}

func TestCPUMatchesKernels3D(t *testing.T) {
	var bld shaderart.Builder
	rng := rand.New(rand.NewSource(1))
	const n = 512
	pos := make([]ms3.Vec, n)
	got := make([]float32, n)
	for _, tc := range cases3D(&bld) {
		name := glbuild.FormatShader(tc.shape)
		sdf, err := gleval.NewCPUSDF3(tc.shape)
		if err != nil {
			t.Fatal(name, err)
		}
		for i := range pos {
			pos[i] = ms3.Vec{X: 3 * (rng.Float32() - 0.5), Y: 3 * (rng.Float32() - 0.5), Z: 3 * (rng.Float32() - 0.5)}
		}
		err = sdf.Evaluate(pos, got, nil)
		if err != nil {
			t.Fatal(name, err)
		}
		for i, p := range pos {
			want := tc.want(p)
			if math32.Abs(got[i]-want) > 1e-5 {
				t.Errorf("%s: p=%v got %g, want %g", name, p, got[i], want)
				break
			}
		}
	}
}

// Points outside a shape's bounding box must never be inside the shape.
func TestBounds2D(t *testing.T) {
	var bld shaderart.Builder
	rng := rand.New(rand.NewSource(2))
	const n = 1024
	pos := make([]ms2.Vec, 0, n)
	got := make([]float32, n)
	for _, tc := range cases2D(&bld) {
		bb := tc.shape.Bounds()
		sz := bb.Size()
		if sz.X > 100 {
			continue // Unbounded.
		}
		pos = pos[:0]
		for len(pos) < n {
			p := ms2.Vec{
				X: bb.Min.X - sz.X + 3*sz.X*rng.Float32(),
				Y: bb.Min.Y - sz.Y + 3*sz.Y*rng.Float32(),
			}
			const eps = 1e-4
			if p.X > bb.Min.X-eps && p.X < bb.Max.X+eps && p.Y > bb.Min.Y-eps && p.Y < bb.Max.Y+eps {
				continue
			}
			pos = append(pos, p)
		}
		sdf, err := gleval.NewCPUSDF2(tc.shape)
		if err != nil {
			t.Fatal(err)
		}
		err = sdf.Evaluate(pos, got, nil)
		if err != nil {
			t.Fatal(err)
		}
		for i, d := range got {
			if d < 0 {
				t.Errorf("%s: point %v outside bounds %+v has negative distance %g", glbuild.FormatShader(tc.shape), pos[i], bb, d)
				break
			}
		}
	}
}

func TestWriteFragSDF2(t *testing.T) {
	var bld shaderart.Builder
	prog := glbuild.NewDefaultProgrammer()
	var buf bytes.Buffer
	for _, tc := range cases2D(&bld) {
		buf.Reset()
		n, err := prog.WriteFragSDF2(&buf, tc.shape)
		if err != nil {
			t.Fatal(glbuild.FormatShader(tc.shape), err)
		} else if n != buf.Len() {
			t.Fatalf("written bytes not match length of buffer %d != %d", n, buf.Len())
		}
		src := buf.String()
		name := string(tc.shape.AppendShaderName(nil))
		decl := fmt.Sprintf("float %s(vec2 p)", name)
		if strings.Count(src, decl) != 1 {
			t.Errorf("want exactly one declaration of %s", name)
		}
		if !strings.Contains(src, "float sdf(vec2 p) { return "+name+"(p); }") {
			t.Errorf("%s: missing sdf entrypoint", name)
		}
	}
}

func TestWriteFragRaymarchSDF3(t *testing.T) {
	var bld shaderart.Builder
	prog := glbuild.NewDefaultProgrammer()
	var buf bytes.Buffer
	for _, tc := range cases3D(&bld) {
		buf.Reset()
		n, err := prog.WriteFragRaymarchSDF3(&buf, tc.shape)
		if err != nil {
			t.Fatal(glbuild.FormatShader(tc.shape), err)
		} else if n != buf.Len() {
			t.Fatalf("written bytes not match length of buffer %d != %d", n, buf.Len())
		}
		src := buf.String()
		for _, want := range []string{"#define MAX_STEPS 160\n", "uniform vec3 uEye;", "float march(vec3 ro, vec3 rd)"} {
			if !strings.Contains(src, want) {
				t.Errorf("%s: missing %q", glbuild.FormatShader(tc.shape), want)
			}
		}
	}
}
