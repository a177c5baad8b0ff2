package demo

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shaderart"
	"github.com/soypat/shaderart/dist"
	"github.com/soypat/shaderart/glbuild"
	"github.com/soypat/shaderart/raymarch"
)

// floorHeight is the height of the floor plane of the 3D demos.
const floorHeight = -1.5

var (
	skyColor   = ms3.Vec{X: 0.55, Y: 0.7, Z: 0.9}
	shapeColor = ms3.Vec{X: 0.9, Y: 0.55, Z: 0.3}
	floorColor = ms3.Vec{X: 0.5, Y: 0.5, Z: 0.5}
)

// SDF3D ray marches one 3D shape standing over a floor, lit by a light
// circling the scene.
type SDF3D struct {
	Shape   Shape3D
	Params  [NumShapes3D]ShapeParams3D
	Camera  raymarch.Camera
	Marcher raymarch.Marcher
	// Ambient is the minimum light intensity.
	Ambient float32
	// Softness is the penumbra factor of the soft shadow, larger is harder.
	Softness float32
}

func NewSDF3D() *SDF3D {
	return &SDF3D{
		Shape:    Sphere,
		Params:   DefaultShapeParams3D(),
		Camera:   raymarch.Camera{Eye: ms3.Vec{X: 3, Y: 2, Z: 5}, FOV: math32.Pi / 3},
		Marcher:  raymarch.DefaultMarcher(),
		Ambient:  0.1,
		Softness: 16,
	}
}

func (*SDF3D) Name() string { return NameSDF3D }

// Active returns the parameters of the active shape.
func (s *SDF3D) Active() *ShapeParams3D {
	if int(s.Shape) >= NumShapes3D {
		return &ShapeParams3D{}
	}
	return &s.Params[s.Shape]
}

// Scene is the distance to the active shape or the floor.
func (s *SDF3D) Scene(p ms3.Vec) float32 {
	return dist.Union(s.Shape.Distance(p, s.Active()), p.Y-floorHeight)
}

// LightDir returns the unit direction towards the light at time t.
func LightDir(t float32) ms3.Vec {
	sin, cos := math32.Sincos(0.5 * t)
	return ms3.Unit(ms3.Vec{X: 2 * cos, Y: 3, Z: 2 * sin})
}

func (s *SDF3D) Shade(frag ms2.Vec, f *Frame) ms3.Vec {
	ro, rd := s.Camera.Ray(f.UV(frag))
	res := s.Marcher.March(s.Scene, ro, rd)
	if res.State != raymarch.Hit {
		return skyColor
	}
	n := raymarch.Normal(s.Scene, res.Pos, raymarch.NormalEpsilon)
	l := LightDir(f.Time)
	lifted := ms3.Add(res.Pos, ms3.Scale(raymarch.NormalEpsilon, n))
	shadow := raymarch.SoftShadow(s.Scene, lifted, l, 0.02, 20, s.Softness)
	base := shapeColor
	if res.Pos.Y-floorHeight < 2*s.Marcher.SurfaceEpsilon+1e-3 {
		base = floorColor
	}
	light := raymarch.Lambert(n, l, shadow, s.Ambient)
	// Distance fog.
	fog := 1 - math32.Exp(-0.02*res.Dist*res.Dist)
	return clamp3(mix3(ms3.Scale(light, base), skyColor, fog))
}

// Scene3D returns the active shape as a node tree for GLSL generation.
// The floor is not part of the tree.
func (s *SDF3D) Scene3D(bld *shaderart.Builder) (glbuild.Shader3D, error) {
	return s.Shape.Scene3D(bld, s.Active())
}
