// Package raymarch implements sphere tracing of signed distance fields
// along with the normal estimation and lighting helpers used to shade hits.
package raymarch

import (
	"errors"
	"strconv"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shaderart/dist"
)

// Fixed budgets of the sphere tracer. They bound the per-pixel work and
// are used as defaults by a zero valued [Marcher].
const (
	DefaultMaxSteps       = 160
	DefaultMaxDist        = 100
	DefaultSurfaceEpsilon = 1e-3
	// NormalEpsilon is the default central difference step of [Normal].
	NormalEpsilon = 0.01
	// MaxBounces is the reflection budget of [Marcher.MarchReflect].
	MaxBounces = 8
)

// Field is a signed distance field sampled one point at a time.
type Field func(p ms3.Vec) float32

// State is the state of a single marched ray.
type State uint8

const (
	// Marching is the state of a ray that has not terminated yet.
	Marching State = iota
	// Hit means the ray came within the surface epsilon of the surface.
	Hit
	// Escaped means the ray exceeded the distance or step budget.
	Escaped
)

func (s State) String() string {
	switch s {
	case Marching:
		return "marching"
	case Hit:
		return "hit"
	case Escaped:
		return "escaped"
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Result is the outcome of marching a ray. Dist is the distance traveled
// along the ray and Pos the last position sampled.
type Result struct {
	State State
	Dist  float32
	Steps int
	Pos   ms3.Vec
}

// Marcher configures the sphere tracer. Zero valued fields take the
// package defaults.
type Marcher struct {
	MaxSteps       int
	MaxDist        float32
	SurfaceEpsilon float32
}

// DefaultMarcher returns a Marcher with the default budgets.
func DefaultMarcher() Marcher {
	return Marcher{
		MaxSteps:       DefaultMaxSteps,
		MaxDist:        DefaultMaxDist,
		SurfaceEpsilon: DefaultSurfaceEpsilon,
	}
}

func (m Marcher) withDefaults() Marcher {
	if m.MaxSteps <= 0 {
		m.MaxSteps = DefaultMaxSteps
	}
	if m.MaxDist <= 0 {
		m.MaxDist = DefaultMaxDist
	}
	if m.SurfaceEpsilon <= 0 {
		m.SurfaceEpsilon = DefaultSurfaceEpsilon
	}
	return m
}

// Validate checks the Marcher's budgets are usable.
func (m Marcher) Validate() error {
	switch {
	case m.MaxSteps < 0:
		return errors.New("negative max steps")
	case m.MaxDist < 0 || math32.IsNaN(m.MaxDist):
		return errors.New("bad max distance")
	case m.SurfaceEpsilon < 0 || math32.IsNaN(m.SurfaceEpsilon):
		return errors.New("bad surface epsilon")
	}
	return nil
}

// start returns the initial state of a ray starting at ro.
func start(ro ms3.Vec) Result {
	return Result{State: Marching, Pos: ro}
}

// step performs a single transition of the ray state machine given the
// distance d sampled at r.Pos. rd must be normalized.
func (m *Marcher) step(r *Result, d float32, ro, rd ms3.Vec) {
	if r.State != Marching {
		return
	}
	if math32.Abs(d) < m.SurfaceEpsilon {
		r.State = Hit
		return
	}
	r.Dist += d
	r.Pos = ms3.Add(ro, ms3.Scale(r.Dist, rd))
	r.Steps++
	if r.Dist > m.MaxDist || r.Steps >= m.MaxSteps {
		r.State = Escaped
	}
}

// March sphere traces the ray with origin ro and normalized direction rd
// through scene until it hits a surface or escapes.
func (m Marcher) March(scene Field, ro, rd ms3.Vec) Result {
	m = m.withDefaults()
	r := start(ro)
	for r.State == Marching {
		m.step(&r, scene(r.Pos), ro, rd)
	}
	return r
}

// MarchScaled is like March but multiplies every step by scale, which must
// be in (0,1]. Used for fields whose Lipschitz constant exceeds 1.
func (m Marcher) MarchScaled(scene Field, ro, rd ms3.Vec, scale float32) Result {
	m = m.withDefaults()
	r := start(ro)
	for r.State == Marching {
		d := scene(r.Pos)
		if math32.Abs(d) >= m.SurfaceEpsilon {
			d *= scale
		}
		m.step(&r, d, ro, rd)
	}
	return r
}

// Material classifies a surface for [Marcher.MarchReflect].
type Material uint8

const (
	// Diffuse surfaces terminate the reflection chain.
	Diffuse Material = iota
	// Mirror surfaces reflect the ray about the surface normal.
	Mirror
)

// Bounce is one segment of a reflected ray path.
type Bounce struct {
	Result
	Origin, Dir ms3.Vec
	Normal      ms3.Vec
	Material    Material
}

// MarchReflect marches the ray and, while it hits Mirror surfaces as
// classified by material, reflects it about the surface normal and
// marches again. At most maxBounces reflections are followed, capped to
// [MaxBounces]. The returned path has at least one element. If the
// reflection budget is exhausted while still on a mirror the last segment
// is reported as Escaped.
func (m Marcher) MarchReflect(scene Field, material func(p ms3.Vec) Material, ro, rd ms3.Vec, maxBounces int) []Bounce {
	var buf [MaxBounces + 1]Bounce
	return m.AppendMarchReflect(buf[:0], scene, material, ro, rd, maxBounces)
}

// AppendMarchReflect is the allocation free version of MarchReflect.
func (m Marcher) AppendMarchReflect(dst []Bounce, scene Field, material func(p ms3.Vec) Material, ro, rd ms3.Vec, maxBounces int) []Bounce {
	m = m.withDefaults()
	maxBounces = max(0, min(maxBounces, MaxBounces))
	for bounce := 0; ; bounce++ {
		res := m.March(scene, ro, rd)
		seg := Bounce{Result: res, Origin: ro, Dir: rd}
		if res.State != Hit {
			return append(dst, seg)
		}
		seg.Normal = Normal(scene, res.Pos, NormalEpsilon)
		seg.Material = material(res.Pos)
		if seg.Material != Mirror {
			return append(dst, seg)
		}
		if bounce == maxBounces {
			seg.State = Escaped
			return append(dst, seg)
		}
		dst = append(dst, seg)
		rd = ms3.Unit(dist.Reflect3(rd, seg.Normal))
		// Lift the new origin off the surface so the next march does not hit immediately.
		ro = ms3.Add(res.Pos, ms3.Scale(4*m.SurfaceEpsilon, seg.Normal))
	}
}
