package glrender

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

const (
	labelSize    = 14
	labelPadding = 6
)

var (
	sheetBackground = color.RGBA{R: 24, G: 24, B: 28, A: 255}
	labelColor      = color.RGBA{R: 235, G: 235, B: 235, A: 255}
)

var labelFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(goregular.TTF)
})

// ContactSheet lays tiles out on a grid of cols columns, each tile with its
// label drawn below it in Go Regular. Tiles may differ in size: every cell
// takes the size of the largest tile.
func ContactSheet(tiles []image.Image, labels []string, cols int) (*image.RGBA, error) {
	if len(tiles) == 0 {
		return nil, errors.New("no tiles")
	}
	if len(labels) != len(tiles) {
		return nil, fmt.Errorf("got %d labels for %d tiles", len(labels), len(tiles))
	}
	if cols <= 0 {
		return nil, errors.New("columns must be positive")
	}
	cols = min(cols, len(tiles))
	rows := (len(tiles) + cols - 1) / cols
	var cell image.Point
	for _, t := range tiles {
		sz := t.Bounds().Size()
		cell.X = max(cell.X, sz.X)
		cell.Y = max(cell.Y, sz.Y)
	}
	f, err := labelFont()
	if err != nil {
		return nil, fmt.Errorf("parsing label font: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{Size: labelSize, DPI: 72, Hinting: font.HintingFull})
	defer face.Close()
	metrics := face.Metrics()
	labelHeight := (metrics.Ascent + metrics.Descent).Ceil() + 2*labelPadding
	cellH := cell.Y + labelHeight

	sheet := image.NewRGBA(image.Rect(0, 0, cols*cell.X, rows*cellH))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(sheetBackground), image.Point{}, draw.Src)
	d := &font.Drawer{Dst: sheet, Src: image.NewUniform(labelColor), Face: face}
	for i, t := range tiles {
		origin := image.Pt((i%cols)*cell.X, (i/cols)*cellH)
		tb := t.Bounds()
		draw.Draw(sheet, image.Rectangle{Min: origin, Max: origin.Add(tb.Size())}, t, tb.Min, draw.Src)

		// Center the label below the tile.
		width := d.MeasureString(labels[i]).Ceil()
		x := origin.X + max(0, (cell.X-width)/2)
		y := origin.Y + cell.Y + labelPadding + metrics.Ascent.Ceil()
		d.Dot = fixed.P(x, y)
		d.DrawString(labels[i])
	}
	return sheet, nil
}
