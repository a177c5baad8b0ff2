package glbuild_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/shaderart"
	"github.com/soypat/shaderart/glbuild"
)

func TestShaderNameDeduplication(t *testing.T) {
	var bld shaderart.Builder
	// s1 and s2 are identical in name and body but different primitives.
	s1 := bld.NewCircle(1)
	s2 := bld.NewCircle(1)
	s1s1 := bld.Union2D(s1, s1)
	s1s2 := bld.Union2D(s1, bld.Translate2D(s2, 0.5, 0))
	s1Name := string(s1.AppendShaderName(nil))
	s2Name := string(s2.AppendShaderName(nil))
	if s1Name != s2Name {
		t.Error("expected same name, got\n", s1Name, "\n", s2Name)
	}
	decl := "float " + s1Name + "(vec2 p)"
	for _, obj := range []glbuild.Shader2D{s1s1, s1s2} {
		programmer := glbuild.NewDefaultProgrammer()
		source := new(bytes.Buffer)
		n, err := programmer.WriteFragSDF2(source, obj)
		if err != nil {
			t.Fatal(err)
		} else if n != source.Len() {
			t.Fatal("written length mismatch")
		}
		src := source.String()
		declCount := strings.Count(src, decl)
		if declCount != 1 {
			t.Errorf("\n%s\nwant one declaration, got %d", src, declCount)
		}
	}
}

func TestShaderNameDeduplication3D(t *testing.T) {
	var bld shaderart.Builder
	sphere := bld.NewSphere(0.5)
	box := bld.NewBox(1, 1, 1)
	obj := bld.Union(
		bld.Difference(box, sphere),
		bld.Translate(bld.SmoothUnion(0.1, sphere, box), 2, 0, 0),
		bld.Extrude(bld.NewHexagon(0.3), 1),
	)
	programmer := glbuild.NewDefaultProgrammer()
	var source bytes.Buffer
	_, err := programmer.WriteFragRaymarchSDF3(&source, obj)
	if err != nil {
		t.Fatal(err)
	}
	src := source.String()
	for _, s := range []glbuild.Shader{sphere, box} {
		decl := "float " + string(s.AppendShaderName(nil)) + "(vec3 p)"
		if c := strings.Count(src, decl); c != 1 {
			t.Errorf("want one declaration of %q, got %d", decl, c)
		}
	}
}

// conflicting shares its name with every other conflicting but not its body.
type conflicting struct{ body string }

func (c *conflicting) AppendShaderName(b []byte) []byte { return append(b, "conflict"...) }
func (c *conflicting) AppendShaderBody(b []byte) []byte { return append(b, c.body...) }
func (c *conflicting) Bounds() ms2.Box                  { return ms2.NewBox(-1, -1, 1, 1) }
func (c *conflicting) ForEach2DChild(userData any, fn func(userData any, s *glbuild.Shader2D) error) error {
	return nil
}

func TestShaderNameConflict(t *testing.T) {
	var bld shaderart.Builder
	obj := bld.Union2D(&conflicting{body: "return 1.0;"}, &conflicting{body: "return 2.0;"})
	var buf bytes.Buffer
	_, err := glbuild.NewDefaultProgrammer().WriteFragSDF2(&buf, obj)
	if err == nil {
		t.Fatal("expected error for conflicting shader bodies")
	}
}

func TestShortenNames(t *testing.T) {
	var bld shaderart.Builder
	circle := bld.NewCircle(0.25)
	shape := bld.Union2D(
		bld.Translate2D(bld.NewRectangle(1, 2), 0.125, 0.25),
		bld.Rotate2D(bld.SmoothUnion2D(0.1, circle, bld.NewHexagon(0.3)), 0.3),
	)
	const maxLen = 12
	err := glbuild.ShortenNames2D(&shape, maxLen)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	_, err = glbuild.NewDefaultProgrammer().WriteFragSDF2(&buf, shape)
	if err != nil {
		t.Fatal(err)
	}
	nodes, err := glbuild.AppendAllNodes(nil, shape)
	if err != nil {
		t.Fatal(err)
	}
	for _, node := range nodes {
		name := node.AppendShaderName(nil)
		// Shortened names are the prefix plus a base 32 hash.
		if len(name) > maxLen+13 {
			t.Errorf("name %q not shortened", name)
		}
	}
}

func TestAppendFloat(t *testing.T) {
	for _, tc := range []struct {
		v    float32
		neg  byte
		dec  byte
		want string
	}{
		{v: 1, neg: '-', dec: '.', want: "1."},
		{v: -1.5, neg: '-', dec: '.', want: "-1.5"},
		{v: -1.5, neg: 'n', dec: 'p', want: "n1p5"},
		{v: 0.25, neg: 'n', dec: 'p', want: "0p25"},
		{v: 100, neg: '-', dec: '.', want: "100."},
	} {
		got := string(glbuild.AppendFloat(nil, tc.neg, tc.dec, tc.v))
		if got != tc.want {
			t.Errorf("AppendFloat(%g): got %q, want %q", tc.v, got, tc.want)
		}
	}
}

func TestFormatShader(t *testing.T) {
	var bld shaderart.Builder
	shape := bld.SmoothUnion2D(0.1, bld.NewCircle(1), bld.Translate2D(bld.NewRectangle(1, 1), 1, 0))
	got := glbuild.FormatShader(shape)
	const want = "smoothUnion2D(circle2D,translate2D(rect2D))"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRepeatAngularCountDecl(t *testing.T) {
	if got := string(glbuild.AppendIntDecl(nil, "n", -12)); got != "int n=-12;\n" {
		t.Errorf("AppendIntDecl: got %q", got)
	}
	var bld shaderart.Builder
	s := bld.RepeatAngular2D(bld.NewCircle(0.1), 0.5, 6)
	body := string(s.AppendShaderBody(nil))
	if !strings.Contains(body, "int n=6;\n") || !strings.Contains(body, "float sp=tau/float(n);") {
		t.Errorf("angular count not declared as int:\n%s", body)
	}
}
