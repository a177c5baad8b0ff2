package gleval_test

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shaderart/gleval"
)

type leaky struct{}

func (leaky) Bounds() ms3.Box { return ms3.Box{} }

func (leaky) Evaluate(pos []ms3.Vec, dist []float32, userData any) error {
	vp, err := gleval.GetVecPool(userData)
	if err != nil {
		return err
	}
	_ = vp.Float.Acquire(len(dist)) // Never released.
	return nil
}

func TestSDF3CPULeakDetection(t *testing.T) {
	sdf, err := gleval.NewCPUSDF3(leaky{})
	if err != nil {
		t.Fatal(err)
	}
	pos := make([]ms3.Vec, 4)
	dist := make([]float32, 4)
	err = sdf.Evaluate(pos, dist, nil)
	if err == nil {
		t.Fatal("expected leak to be reported")
	}
}

func TestVecPoolReuse(t *testing.T) {
	var vp gleval.VecPool
	a := vp.Float.Acquire(16)
	if len(a) != 16 {
		t.Fatalf("want length 16, got %d", len(a))
	}
	if err := vp.Float.Release(a); err != nil {
		t.Fatal(err)
	}
	b := vp.Float.Acquire(8)
	if len(b) != 8 {
		t.Fatalf("want length 8, got %d", len(b))
	}
	if &a[0] != &b[0] {
		t.Error("expected released buffer to be reused")
	}
	if err := vp.Float.Release(b); err != nil {
		t.Fatal(err)
	}
	if err := vp.Float.Release(b); err == nil {
		t.Error("expected double release error")
	}
	if err := vp.AssertAllReleased(); err != nil {
		t.Error(err)
	}
	if vp.TotalAlloc() != 16*4 {
		t.Errorf("unexpected total alloc %d", vp.TotalAlloc())
	}
}

func TestNormalsCentralDiffSphere(t *testing.T) {
	const r = 1.5
	center := ms3.Vec{X: 0.3, Y: -0.2, Z: 0.1}
	sphere := gleval.Func3{F: func(p ms3.Vec) float32 { return ms3.Norm(ms3.Sub(p, center)) - r }}
	sdf, err := gleval.NewCPUSDF3(sphere)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))
	const n = 256
	pos := make([]ms3.Vec, n)
	want := make([]ms3.Vec, n)
	for i := range pos {
		dir := ms3.Unit(ms3.Vec{X: rng.Float32() - 0.5, Y: rng.Float32() - 0.5, Z: rng.Float32() - 0.5})
		want[i] = dir
		pos[i] = ms3.Add(center, ms3.Scale(r, dir))
	}
	normals := make([]ms3.Vec, n)
	err = gleval.NormalsCentralDiff(sdf, pos, normals, 0.01, true, sdf.VecPool())
	if err != nil {
		t.Fatal(err)
	}
	for i := range normals {
		dot := ms3.Dot(normals[i], want[i])
		if math32.Abs(dot-1) > 1e-3 {
			t.Fatalf("normal %v not parallel to radial %v (dot=%g)", normals[i], want[i], dot)
		}
	}
	if err := sdf.VecPool().AssertAllReleased(); err != nil {
		t.Fatal(err)
	}
}

func TestMinMax(t *testing.T) {
	min, max := gleval.MinMax([]float32{3, -1, math32.NaN(), math32.Inf(1), 2})
	if min != -1 || max != 3 {
		t.Errorf("got %g %g", min, max)
	}
}
