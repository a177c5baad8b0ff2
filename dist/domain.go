package dist

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
)

// RepeatScalar folds x into the tile [-f/2, f/2] of period f.
func RepeatScalar(x, f float32) float32 {
	return x - f*math32.Round(x/f)
}

// Repeat2 folds p into the tile of period f centered at the origin.
// The result is exact only for shapes symmetric about the tile boundaries;
// asymmetric shapes show seams. See [RepeatNeighbors2] for the general case.
func Repeat2(p, f ms2.Vec) ms2.Vec {
	return ms2.Sub(p, ms2.MulElem(f, ms2.RoundElem(ms2.DivElem(p, f))))
}

// Repeat3 is the 3D version of [Repeat2].
func Repeat3(p, f ms3.Vec) ms3.Vec {
	return ms3.Sub(p, ms3.MulElem(f, ms3.RoundElem(ms3.DivElem(p, f))))
}

// RepeatFast2 folds p into the tile of period f using fract. It performs
// no neighbour check so shapes must lie strictly within their tile.
func RepeatFast2(p, f ms2.Vec) ms2.Vec {
	return ms2.Vec{
		X: f.X * (Fract(p.X/f.X+0.5) - 0.5),
		Y: f.Y * (Fract(p.Y/f.Y+0.5) - 0.5),
	}
}

// RepeatLimited2 is [Repeat2] where the tile index is clamped to [-lim, lim]
// so only a finite number of copies are produced.
func RepeatLimited2(p, f, lim ms2.Vec) ms2.Vec {
	id := ms2.RoundElem(ms2.DivElem(p, f))
	id = ms2.ClampElem(id, ms2.Scale(-1, lim), lim)
	return ms2.Sub(p, ms2.MulElem(f, id))
}

// RepeatNeighbors2 evaluates sdf on an infinite grid of period f checking
// the tile the point lies in and the three closest neighbouring tiles.
// Unlike [Repeat2] it is correct for asymmetric shapes that do not
// exceed their tile.
func RepeatNeighbors2[F ~func(ms2.Vec) float32](p, f ms2.Vec, sdf F) float32 {
	id := ms2.RoundElem(ms2.DivElem(p, f))
	o := ms2.SignElem(ms2.Sub(p, ms2.MulElem(f, id)))
	d := math32.Inf(1)
	for j := float32(0); j < 2; j++ {
		for i := float32(0); i < 2; i++ {
			rid := ms2.Add(id, ms2.MulElem(ms2.Vec{X: i, Y: j}, o))
			d = math32.Min(d, sdf(ms2.Sub(p, ms2.MulElem(f, rid))))
		}
	}
	return d
}

// RepeatAngular evaluates sdf for n copies of a shape placed at radius r
// around the origin, equally spaced in angle with the first copy on the +X axis.
// The point is rotated into its own wedge and the adjacent one and the
// smaller of both distances is returned, which avoids seams at wedge boundaries.
func RepeatAngular[F ~func(ms2.Vec) float32](p ms2.Vec, r float32, n int, sdf F) float32 {
	sp := 2 * math32.Pi / float32(n)
	id := math32.Floor(math32.Atan2(p.Y, p.X) / sp)
	offset := ms2.Vec{X: r}
	p0 := ms2.Sub(Rotate2(p, -sp*id), offset)
	p1 := ms2.Sub(Rotate2(p, -sp*(id+1)), offset)
	return math32.Min(sdf(p0), sdf(p1))
}

// RepeatAngularFast rotates p into the wedge of the nearest of n copies
// placed at radius r and returns it relative to that copy's center.
// Only one candidate is considered so shapes must not cross wedge boundaries.
func RepeatAngularFast(p ms2.Vec, r float32, n int) ms2.Vec {
	sp := 2 * math32.Pi / float32(n)
	id := math32.Round(math32.Atan2(p.Y, p.X) / sp)
	return ms2.Sub(Rotate2(p, -sp*id), ms2.Vec{X: r})
}

// Rotate2 rotates p counter-clockwise by angle radians about the origin.
func Rotate2(p ms2.Vec, angle float32) ms2.Vec {
	s, c := math32.Sincos(angle)
	return ms2.Vec{X: c*p.X - s*p.Y, Y: s*p.X + c*p.Y}
}

// Reflect2 reflects direction v about the line with unit normal n.
func Reflect2(v, n ms2.Vec) ms2.Vec {
	return ms2.Sub(v, ms2.Scale(2*ms2.Dot(v, n), n))
}

// Reflect3 reflects direction v about the plane with unit normal n,
// as the GLSL reflect function.
func Reflect3(v, n ms3.Vec) ms3.Vec {
	return ms3.Sub(v, ms3.Scale(2*ms3.Dot(v, n), n))
}

// Mirror2 folds p onto the side of the line through the origin with unit
// normal n that n points to. Shapes evaluated on the result are mirrored across the line.
func Mirror2(p, n ms2.Vec) ms2.Vec {
	return ms2.Sub(p, ms2.Scale(2*math32.Min(ms2.Dot(p, n), 0), n))
}

// Mirror3 is the 3D version of [Mirror2].
func Mirror3(p, n ms3.Vec) ms3.Vec {
	return ms3.Sub(p, ms3.Scale(2*math32.Min(ms3.Dot(p, n), 0), n))
}
