package raymarch

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms1"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
)

// Normal estimates the unit surface normal of scene at p using symmetric
// central differences with offset eps along each axis (6 evaluations).
// If the gradient vanishes the zero vector is returned.
func Normal(scene Field, p ms3.Vec, eps float32) ms3.Vec {
	if eps <= 0 {
		eps = NormalEpsilon
	}
	dx := ms3.Vec{X: eps}
	dy := ms3.Vec{Y: eps}
	dz := ms3.Vec{Z: eps}
	n := ms3.Vec{
		X: scene(ms3.Add(p, dx)) - scene(ms3.Sub(p, dx)),
		Y: scene(ms3.Add(p, dy)) - scene(ms3.Sub(p, dy)),
		Z: scene(ms3.Add(p, dz)) - scene(ms3.Sub(p, dz)),
	}
	l := ms3.Norm(n)
	if l == 0 {
		return ms3.Vec{}
	}
	return ms3.Scale(1/l, n)
}

// SoftShadow marches from p towards the normalized light direction and
// returns the penumbra factor in [0,1], 0 being fully occluded. k controls
// the shadow's sharpness, larger values give harder shadows.
func SoftShadow(scene Field, p, lightDir ms3.Vec, tmin, tmax, k float32) float32 {
	res := float32(1)
	t := tmin
	for i := 0; i < DefaultMaxSteps && t < tmax; i++ {
		h := scene(ms3.Add(p, ms3.Scale(t, lightDir)))
		if h < DefaultSurfaceEpsilon {
			return 0
		}
		res = math32.Min(res, k*h/t)
		t += h
	}
	return ms1.Clamp(res, 0, 1)
}

// Lambert returns the diffuse lighting factor of a surface with unit normal
// n lit from unit direction l, attenuated by shadow and never below ambient.
func Lambert(n, l ms3.Vec, shadow, ambient float32) float32 {
	return math32.Max(ambient, ms3.Dot(n, l)*shadow)
}

// Camera is a pinhole camera looking from Eye towards Target.
// FOV is the vertical field of view in radians.
type Camera struct {
	Eye, Target, Up ms3.Vec
	FOV             float32
}

// Ray returns the origin and normalized direction of the ray through uv,
// given in centered coordinates where y spans [-0.5,0.5].
func (c Camera) Ray(uv ms2.Vec) (ro, rd ms3.Vec) {
	up := c.Up
	if up == (ms3.Vec{}) {
		up = ms3.Vec{Y: 1}
	}
	forward := ms3.Unit(ms3.Sub(c.Target, c.Eye))
	right := ms3.Unit(ms3.Cross(forward, up))
	camUp := ms3.Cross(right, forward)
	focal := c.Focal()
	rd = ms3.Add(ms3.Add(ms3.Scale(uv.X, right), ms3.Scale(uv.Y, camUp)), ms3.Scale(focal, forward))
	return c.Eye, ms3.Unit(rd)
}

// Focal returns the focal length in the centered coordinate system used
// by [Camera.Ray].
func (c Camera) Focal() float32 {
	fov := c.FOV
	if fov <= 0 {
		fov = math32.Pi / 3
	}
	return 0.5 / math32.Tan(fov/2)
}
