package demo

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms1"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
)

var (
	white   = ms3.Vec{X: 1, Y: 1, Z: 1}
	outside = ms3.Vec{X: 0.9, Y: 0.6, Z: 0.3}
	inside  = ms3.Vec{X: 0.65, Y: 0.85, Z: 1.0}
	nanRed  = ms3.Vec{X: 1}
)

// DistanceColor colours a signed distance with Inigo Quilez's style:
// orange outside, blue inside, contour bands and a white boundary.
// NaN distances are coloured red.
func DistanceColor(d float32) ms3.Vec {
	if math32.IsNaN(d) {
		return nanRed
	}
	c := outside
	if d <= 0 {
		c = inside
	}
	ad := math32.Abs(d)
	c = ms3.Scale(1-math32.Exp(-6*ad), c)
	c = ms3.Scale(0.8+0.2*math32.Cos(150*d), c)
	edge := 1 - ms1.SmoothStep(0, 0.01, ad)
	return mix3(c, white, edge)
}

// Palette is Inigo Quilez's cosine palette a + b*cos(2π(c*t+d)).
func Palette(t float32, a, b, c, d ms3.Vec) ms3.Vec {
	arg := ms3.Scale(2*math32.Pi, ms3.Add(ms3.Scale(t, c), d))
	return ms3.Add(a, ms3.MulElem(b, ms3.Vec{
		X: math32.Cos(arg.X),
		Y: math32.Cos(arg.Y),
		Z: math32.Cos(arg.Z),
	}))
}

// rainbow is a Palette preset.
func rainbow(t float32) ms3.Vec {
	half := ms3.Vec{X: 0.5, Y: 0.5, Z: 0.5}
	return Palette(t, half, half, white, ms3.Vec{X: 0, Y: 0.33, Z: 0.67})
}

func mix3(a, b ms3.Vec, t float32) ms3.Vec {
	return ms3.Add(ms3.Scale(1-t, a), ms3.Scale(t, b))
}

func clamp3(c ms3.Vec) ms3.Vec {
	return ms3.Vec{X: ms1.Clamp(c.X, 0, 1), Y: ms1.Clamp(c.Y, 0, 1), Z: ms1.Clamp(c.Z, 0, 1)}
}

// drawCursor overlays the cursor ring showing the distance d at the
// cursor onto col for a pixel at uv.
func drawCursor(col ms3.Vec, uv, cursor ms2.Vec, d float32) ms3.Vec {
	r := math32.Hypot(uv.X-cursor.X, uv.Y-cursor.Y)
	ring := 1 - ms1.SmoothStep(0, 0.005, math32.Abs(r-math32.Abs(d))-0.0025)
	col = mix3(col, ms3.Vec{X: 1, Y: 1}, ring)
	dot := 1 - ms1.SmoothStep(0.005, 0.01, r)
	return mix3(col, ms3.Vec{X: 1, Y: 1}, dot)
}
