package glrender

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shaderart"
	"github.com/soypat/shaderart/demo"
)

func TestRenderWorkerIndependence(t *testing.T) {
	const w, h = 40, 30
	for _, name := range []string{demo.NameMandelbrot, demo.NameSDF2D, demo.NameKoch, demo.NamePGAMotor} {
		d, err := demo.Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		frame := demo.NewFrame(w, h, 0.7)
		var ref *image.RGBA
		for _, workers := range []int{1, 3, 8} {
			img := image.NewRGBA(image.Rect(0, 0, w, h))
			err = Renderer{Workers: workers}.Render(context.Background(), d, frame, img)
			if err != nil {
				t.Fatal(err)
			}
			if ref == nil {
				ref = img
				continue
			}
			if !bytes.Equal(ref.Pix, img.Pix) {
				t.Errorf("%s: output with %d workers differs from single worker output", name, workers)
			}
		}
	}
}

// solid shades every pixel with the same colour.
type solid struct {
	c ms3.Vec
}

func (solid) Name() string { return "solid" }

func (s solid) Shade(ms2.Vec, *demo.Frame) ms3.Vec { return s.c }

func TestRenderSupersample(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 12))
	d := solid{c: ms3.Vec{X: 1, Y: 0.5}}
	err := Renderer{Supersample: 3}.Render(context.Background(), d, demo.NewFrame(16, 12, 0), img)
	if err != nil {
		t.Fatal(err)
	}
	want := ToRGBA(d.c)
	for y := 0; y < 12; y++ {
		for x := 0; x < 16; x++ {
			got := img.RGBAAt(x, y)
			if absDiff(got.R, want.R) > 1 || absDiff(got.G, want.G) > 1 || got.A != 255 {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
	err = Renderer{Supersample: MaxSupersample + 1}.Render(context.Background(), d, demo.Frame{}, img)
	if err == nil {
		t.Error("expected error for excessive supersampling")
	}
}

func TestRenderCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	err := Renderer{Workers: 2}.Render(ctx, solid{}, demo.Frame{}, img)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}

func TestToRGBA(t *testing.T) {
	for _, tc := range []struct {
		c    ms3.Vec
		want color.RGBA
	}{
		{c: ms3.Vec{}, want: color.RGBA{A: 255}},
		{c: ms3.Vec{X: 1, Y: 1, Z: 1}, want: color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{c: ms3.Vec{X: 2, Y: -1, Z: 0.5}, want: color.RGBA{R: 255, G: 0, B: 128, A: 255}},
	} {
		got := ToRGBA(tc.c)
		if got != tc.want {
			t.Errorf("ToRGBA(%v)=%v, want %v", tc.c, got, tc.want)
		}
	}
}

func TestRenderShader2DOrientation(t *testing.T) {
	var bld shaderart.Builder
	// A hole in the top half of a tall rectangle.
	s := bld.Difference2D(bld.NewRectangle(1, 2), bld.Translate2D(bld.NewCircle(0.2), 0, 0.6))
	img, err := RenderShader2D(s, 40, ColorConversionLinearGradient(0, color.Black, color.White))
	if err != nil {
		t.Fatal(err)
	}
	if sz := img.Bounds().Size(); sz.X != 20 || sz.Y != 40 {
		t.Fatalf("want 20x40 image, got %v", sz)
	}
	// The hole is white (outside) at y=+0.6 which is row 8 of 40.
	if c := img.RGBAAt(10, 8); c.R != 255 {
		t.Errorf("expected hole near top of image, got %v", c)
	}
	if c := img.RGBAAt(10, 31); c.R != 0 {
		t.Errorf("expected interior near bottom of image, got %v", c)
	}
}

func TestContactSheet(t *testing.T) {
	tile := func(c color.RGBA) image.Image {
		img := image.NewRGBA(image.Rect(0, 0, 32, 24))
		for i := range img.Pix {
			img.Pix[i] = []uint8{c.R, c.G, c.B, c.A}[i%4]
		}
		return img
	}
	red, blue := color.RGBA{R: 255, A: 255}, color.RGBA{B: 255, A: 255}
	sheet, err := ContactSheet([]image.Image{tile(red), tile(blue), tile(red)}, []string{"a", "b", "c"}, 2)
	if err != nil {
		t.Fatal(err)
	}
	sz := sheet.Bounds().Size()
	if sz.X != 64 || sz.Y <= 2*24 {
		t.Fatalf("unexpected sheet size %v", sz)
	}
	cellH := sz.Y / 2
	if got := sheet.RGBAAt(40, 5); got != blue {
		t.Errorf("second tile not at top right, got %v", got)
	}
	if got := sheet.RGBAAt(5, cellH+5); got != red {
		t.Errorf("third tile not at bottom left, got %v", got)
	}
	if got := sheet.RGBAAt(40, cellH+5); got != sheetBackground {
		t.Errorf("empty cell not background, got %v", got)
	}
	// Some label pixels are drawn below the first tile.
	var lit bool
	for y := 24; y < cellH && !lit; y++ {
		for x := 0; x < 32; x++ {
			if sheet.RGBAAt(x, y) != sheetBackground {
				lit = true
				break
			}
		}
	}
	if !lit {
		t.Error("label not drawn")
	}
	if _, err = ContactSheet(nil, nil, 2); err == nil {
		t.Error("expected error for no tiles")
	}
	if _, err = ContactSheet([]image.Image{tile(red)}, nil, 2); err == nil {
		t.Error("expected error for missing labels")
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
