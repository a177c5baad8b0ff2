package demo

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shaderart/dist"
	"github.com/soypat/shaderart/raymarch"
)

// RayMarching renders mirror spheres over a checkered floor, following
// reflections up to Bounces times.
type RayMarching struct {
	Camera  raymarch.Camera
	Marcher raymarch.Marcher
	// Bounces is clamped to [0, raymarch.MaxBounces].
	Bounces int
	// Spheres are the centers of the mirror spheres, all of radius Radius.
	Spheres []ms3.Vec
	Radius  float32
	// Reflectance attenuates the colour on every mirror bounce.
	Reflectance float32
}

func NewRayMarching() *RayMarching {
	return &RayMarching{
		Camera:      raymarch.Camera{Eye: ms3.Vec{Y: 1.5, Z: 6}, Target: ms3.Vec{Y: 0.3}, FOV: math32.Pi / 3},
		Marcher:     raymarch.DefaultMarcher(),
		Bounces:     raymarch.MaxBounces,
		Spheres:     []ms3.Vec{{X: -1.3}, {X: 1.3}, {Y: 0.3, Z: -1.6}},
		Radius:      1,
		Reflectance: 0.8,
	}
}

func (*RayMarching) Name() string { return NameRayMarching }

func (r *RayMarching) spheres(p ms3.Vec) float32 {
	d := math32.Inf(1)
	for _, c := range r.Spheres {
		d = dist.Union(d, dist.Sphere(ms3.Sub(p, c), r.Radius))
	}
	return d
}

// Scene is the distance to the spheres or the floor at y=-1.
func (r *RayMarching) Scene(p ms3.Vec) float32 {
	return dist.Union(r.spheres(p), p.Y+1)
}

// Material classifies the spheres as mirrors and the floor as diffuse.
func (r *RayMarching) Material(p ms3.Vec) raymarch.Material {
	if r.spheres(p) < p.Y+1 {
		return raymarch.Mirror
	}
	return raymarch.Diffuse
}

func checker(p ms3.Vec) ms3.Vec {
	if (int(math32.Floor(p.X))+int(math32.Floor(p.Z)))&1 == 0 {
		return ms3.Vec{X: 0.9, Y: 0.9, Z: 0.9}
	}
	return ms3.Vec{X: 0.15, Y: 0.15, Z: 0.2}
}

func sky(rd ms3.Vec) ms3.Vec {
	t := 0.5 + 0.5*rd.Y
	return mix3(white, skyColor, t)
}

func (r *RayMarching) Shade(frag ms2.Vec, f *Frame) ms3.Vec {
	ro, rd := r.Camera.Ray(f.UV(frag))
	var buf [raymarch.MaxBounces + 1]raymarch.Bounce
	path := r.Marcher.AppendMarchReflect(buf[:0], r.Scene, r.Material, ro, rd, r.Bounces)
	last := path[len(path)-1]
	attenuation := math32.Pow(r.Reflectance, float32(len(path)-1))
	var col ms3.Vec
	switch {
	case last.State != raymarch.Hit:
		col = sky(last.Dir)
	default:
		l := LightDir(f.Time)
		light := raymarch.Lambert(last.Normal, l, 1, 0.2)
		col = ms3.Scale(light, checker(last.Pos))
	}
	return clamp3(ms3.Scale(attenuation, col))
}
