package glrender

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"runtime"
	"sync"
	"time"

	"github.com/nfnt/resize"
	"github.com/soypat/glgl/math/ms1"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shaderart/demo"
	"golang.org/x/image/draw"
)

// MaxSupersample bounds the supersampling factor of a [Renderer].
const MaxSupersample = 8

// Renderer shades every pixel of an image with a [demo.Demo] on the CPU.
// Pixels are evaluated independently so rows are split between workers.
type Renderer struct {
	// Workers is the number of goroutines shading rows. Zero or negative
	// uses one per CPU.
	Workers int
	// Supersample renders at Supersample times the resolution and
	// downsamples with a Lanczos filter. Values below 2 disable it.
	Supersample int
}

// Render shades img with d for the frame constants f. The frame size is
// taken from img, f.Size is ignored. Render stops early and returns the
// context's error if ctx is cancelled, leaving img partially rendered.
func (r Renderer) Render(ctx context.Context, d demo.Demo, f demo.Frame, img *image.RGBA) error {
	if d == nil || img == nil {
		return errors.New("nil demo or image")
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return errors.New("empty image")
	}
	ss := r.Supersample
	if ss > MaxSupersample {
		return fmt.Errorf("supersample %d exceeds maximum %d", ss, MaxSupersample)
	}
	start := time.Now()
	target := img
	if ss >= 2 {
		target = image.NewRGBA(image.Rect(0, 0, bounds.Dx()*ss, bounds.Dy()*ss))
	}
	err := r.shade(ctx, d, f, target)
	if err != nil {
		return err
	}
	if ss >= 2 {
		small := resize.Resize(uint(bounds.Dx()), uint(bounds.Dy()), target, resize.Lanczos3)
		draw.Draw(img, bounds, small, small.Bounds().Min, draw.Src)
	}
	logger().Debug("rendered frame", "demo", d.Name(), "size", bounds.Size(), "supersample", ss, "elapsed", time.Since(start))
	return nil
}

func (r Renderer) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (r Renderer) shade(ctx context.Context, d demo.Demo, f demo.Frame, img *image.RGBA) error {
	bounds := img.Bounds()
	f.Size = ms2.Vec{X: float32(bounds.Dx()), Y: float32(bounds.Dy())}
	rows := make(chan int)
	var wg sync.WaitGroup
	nw := min(r.workers(), bounds.Dy())
	for w := 0; w < nw; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				shadeRow(d, &f, img, y)
			}
		}()
	}
	var err error
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
		case rows <- y:
		}
		if err != nil {
			break
		}
	}
	close(rows)
	wg.Wait()
	return err
}

func shadeRow(d demo.Demo, f *demo.Frame, img *image.RGBA, y int) {
	bounds := img.Bounds()
	fragY := float32(y-bounds.Min.Y) + 0.5
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		frag := ms2.Vec{X: float32(x-bounds.Min.X) + 0.5, Y: fragY}
		img.SetRGBA(x, y, ToRGBA(d.Shade(frag, f)))
	}
}

// ToRGBA converts a linear colour in [0,1] to an opaque RGBA colour.
// Components outside [0,1] are clamped and NaN maps to zero.
func ToRGBA(c ms3.Vec) color.RGBA {
	return color.RGBA{R: unorm8(c.X), G: unorm8(c.Y), B: unorm8(c.Z), A: 255}
}

func unorm8(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	return uint8(ms1.Clamp(v, 0, 1)*255 + 0.5)
}
