package raymarch

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shaderart"
	"github.com/soypat/shaderart/dist"
	"github.com/soypat/shaderart/gleval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sphereField(center ms3.Vec, r float32) Field {
	return func(p ms3.Vec) float32 {
		return dist.Sphere(ms3.Sub(p, center), r)
	}
}

// analyticSphereHit returns the distance along the unit ray to the first
// intersection with the sphere, or false if the ray misses.
func analyticSphereHit(ro, rd, center ms3.Vec, r float32) (float32, bool) {
	oc := ms3.Sub(center, ro)
	b := ms3.Dot(oc, rd)
	c := ms3.Dot(oc, oc) - r*r
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	return b - math32.Sqrt(disc), true
}

func randomUnit(rng *rand.Rand) ms3.Vec {
	for {
		v := ms3.Vec{X: rng.Float32()*2 - 1, Y: rng.Float32()*2 - 1, Z: rng.Float32()*2 - 1}
		if n := ms3.Norm(v); n > 0.1 && n <= 1 {
			return ms3.Scale(1/n, v)
		}
	}
}

func TestMarchHeadOn(t *testing.T) {
	m := DefaultMarcher()
	center := ms3.Vec{Z: 5}
	res := m.March(sphereField(center, 1), ms3.Vec{}, ms3.Vec{Z: 1})
	require.Equal(t, Hit, res.State)
	assert.InDelta(t, 4, res.Dist, float64(m.SurfaceEpsilon))
	assert.Less(t, res.Steps, m.MaxSteps)
}

func TestMarchConvergesToAnalyticSphere(t *testing.T) {
	const (
		radius = 1
		n      = 500
	)
	rng := rand.New(rand.NewSource(1))
	m := DefaultMarcher()
	maxStepsBound := int(m.MaxDist / m.SurfaceEpsilon)
	for i := 0; i < n; i++ {
		ro := ms3.Scale(rng.Float32()*3, randomUnit(rng))
		center := ms3.Add(ro, ms3.Scale(3+rng.Float32()*10, randomUnit(rng)))
		// Aim at a point well inside the sphere so rays are not grazing.
		aim := ms3.Add(center, ms3.Scale(0.5*radius*rng.Float32(), randomUnit(rng)))
		rd := ms3.Unit(ms3.Sub(aim, ro))
		want, ok := analyticSphereHit(ro, rd, center, radius)
		require.True(t, ok)
		got := m.March(sphereField(center, radius), ro, rd)
		if got.State != Hit {
			t.Fatalf("ray %d: got state %s after %d steps", i, got.State, got.Steps)
		}
		if got.Steps > maxStepsBound {
			t.Errorf("ray %d: %d steps exceeds bound %d", i, got.Steps, maxStepsBound)
		}
		// Impact angle is at most 30 degrees so error is below eps/cos(30).
		assert.InDelta(t, want, got.Dist, float64(1.2*m.SurfaceEpsilon), "ray %d", i)
	}
}

func TestMarchEscapes(t *testing.T) {
	m := Marcher{MaxSteps: 64, MaxDist: 20}
	field := sphereField(ms3.Vec{Z: 5}, 1)
	res := m.March(field, ms3.Vec{}, ms3.Vec{Z: -1})
	assert.Equal(t, Escaped, res.State)
	assert.Greater(t, res.Dist, float32(20))

	// A field that never decreases exhausts the step budget.
	res = m.March(func(ms3.Vec) float32 { return 0.01 }, ms3.Vec{}, ms3.Vec{X: 1})
	assert.Equal(t, Escaped, res.State)
	assert.Equal(t, 64, res.Steps)
}

func TestNormalIsRadial(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	center := ms3.Vec{X: 1, Y: -2, Z: 0.5}
	const radius = 1.5
	field := sphereField(center, radius)
	for i := 0; i < 200; i++ {
		u := randomUnit(rng)
		p := ms3.Add(center, ms3.Scale(radius, u))
		n := Normal(field, p, NormalEpsilon)
		assert.InDelta(t, 1, ms3.Dot(n, u), 1e-4)
	}
}

func TestNormalsBatchMatchesNormal(t *testing.T) {
	var bld shaderart.Builder
	center := ms3.Vec{Z: 4}
	obj := bld.Translate(bld.NewSphere(1), center.X, center.Y, center.Z)
	sdf, err := gleval.NewCPUSDF3(obj)
	require.NoError(t, err)
	field := sphereField(center, 1)

	cam := Camera{Eye: ms3.Vec{}, Target: center, FOV: math32.Pi / 3}
	const side = 16
	var ro, rd []ms3.Vec
	for j := 0; j < side; j++ {
		for i := 0; i < side; i++ {
			uv := ms2.Vec{X: float32(i)/side - 0.5, Y: float32(j)/side - 0.5}
			o, d := cam.Ray(uv)
			ro = append(ro, o)
			rd = append(rd, d)
		}
	}
	m := DefaultMarcher()
	results := make([]Result, len(ro))
	err = m.MarchBatch(sdf, ro, rd, results, sdf)
	require.NoError(t, err)
	normals := make([]ms3.Vec, len(results))
	err = NormalsBatch(sdf, results, normals, NormalEpsilon, sdf)
	require.NoError(t, err)
	require.NoError(t, sdf.VecPool().AssertAllReleased())

	hits := 0
	for i, res := range results {
		want := m.March(field, ro[i], rd[i])
		require.Equal(t, want.State, res.State, "ray %d", i)
		assert.InDelta(t, want.Dist, res.Dist, 1e-4)
		if res.State != Hit {
			assert.Equal(t, ms3.Vec{}, normals[i])
			continue
		}
		hits++
		wantN := Normal(field, res.Pos, NormalEpsilon)
		assert.InDelta(t, 1, ms3.Dot(wantN, normals[i]), 1e-4)
	}
	assert.Greater(t, hits, 0)
	assert.Less(t, hits, len(results))
}

func TestMarchReflect(t *testing.T) {
	floor := func(p ms3.Vec) float32 { return dist.Plane(p, ms3.Vec{Y: 1}) }
	mirror := func(ms3.Vec) Material { return Mirror }
	m := DefaultMarcher()
	ro := ms3.Vec{Y: 1}
	rd := ms3.Unit(ms3.Vec{X: 1, Y: -1})

	path := m.MarchReflect(floor, mirror, ro, rd, MaxBounces)
	require.Len(t, path, 2)
	assert.Equal(t, Hit, path[0].State)
	assert.Equal(t, Mirror, path[0].Material)
	assert.InDelta(t, 1, path[0].Normal.Y, 1e-4)
	assert.Equal(t, Escaped, path[1].State)
	assert.InDelta(t, rd.X, path[1].Dir.X, 1e-4)
	assert.InDelta(t, -rd.Y, path[1].Dir.Y, 1e-4)

	// No bounces allowed: mirror hit is treated as a miss.
	path = m.MarchReflect(floor, mirror, ro, rd, 0)
	require.Len(t, path, 1)
	assert.Equal(t, Escaped, path[0].State)

	// Diffuse surfaces terminate the chain with a hit.
	diffuse := func(ms3.Vec) Material { return Diffuse }
	path = m.MarchReflect(floor, diffuse, ro, rd, MaxBounces)
	require.Len(t, path, 1)
	assert.Equal(t, Hit, path[0].State)
}

func TestMarchReflectBudget(t *testing.T) {
	// Ray bouncing between two parallel mirrors never escapes on its own.
	walls := func(p ms3.Vec) float32 { return 1 - math32.Abs(p.X) }
	mirror := func(ms3.Vec) Material { return Mirror }
	m := DefaultMarcher()
	path := m.MarchReflect(walls, mirror, ms3.Vec{}, ms3.Unit(ms3.Vec{X: 1, Z: 0.1}), 100)
	require.Len(t, path, MaxBounces+1)
	assert.Equal(t, Escaped, path[MaxBounces].State)
	for _, seg := range path[:MaxBounces] {
		assert.Equal(t, Hit, seg.State)
	}
}

func TestSoftShadowAndLambert(t *testing.T) {
	ball := sphereField(ms3.Vec{Y: 2}, 1)
	scene := func(p ms3.Vec) float32 {
		return dist.Union(dist.Plane(p, ms3.Vec{Y: 1}), ball(p))
	}
	p := ms3.Vec{Y: 0.01}
	up := ms3.Vec{Y: 1}
	assert.Equal(t, float32(0), SoftShadow(scene, p, up, 0.02, 20, 8))
	side := ms3.Unit(ms3.Vec{X: 1, Y: 1})
	assert.Equal(t, float32(1), SoftShadow(scene, p, side, 0.02, 20, 8))

	const ambient = 0.1
	assert.Equal(t, float32(1), Lambert(up, up, 1, ambient))
	assert.Equal(t, float32(ambient), Lambert(up, up, 0, ambient))
	assert.Equal(t, float32(ambient), Lambert(up, ms3.Vec{Y: -1}, 1, ambient))
}

func TestCameraRay(t *testing.T) {
	cam := Camera{Eye: ms3.Vec{X: 1, Y: 2, Z: -3}, Target: ms3.Vec{}, FOV: math32.Pi / 2}
	ro, rd := cam.Ray(ms2.Vec{})
	assert.Equal(t, cam.Eye, ro)
	want := ms3.Unit(ms3.Sub(cam.Target, cam.Eye))
	assert.InDelta(t, 1, ms3.Dot(want, rd), 1e-6)
	assert.InDelta(t, 0.5, cam.Focal(), 1e-6)

	_, right := cam.Ray(ms2.Vec{X: 0.5})
	_, left := cam.Ray(ms2.Vec{X: -0.5})
	assert.InDelta(t, ms3.Dot(want, right), ms3.Dot(want, left), 1e-6)
}

func TestSummarize(t *testing.T) {
	steps := make([]float64, 100)
	for i := range steps {
		steps[len(steps)-1-i] = float64(i + 1)
	}
	s := Summarize(steps)
	assert.Equal(t, 100, s.N)
	assert.InDelta(t, 50.5, s.Mean, 1e-9)
	assert.InDelta(t, 29.011491975882016, s.StdDev, 1e-9)
	assert.Equal(t, 50.0, s.Median)
	assert.InDelta(t, 95, s.P95, 1)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 100.0, s.Max)
	assert.Equal(t, 100.0, steps[0], "input must not be modified")

	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "marching", Marching.String())
	assert.Equal(t, "hit", Hit.String())
	assert.Equal(t, "escaped", Escaped.String())
	assert.Equal(t, "State(9)", State(9).String())
}
