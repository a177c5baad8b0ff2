package glrender

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/shaderart/glbuild"
	"github.com/soypat/shaderart/gleval"
)

type setImage = interface {
	image.Image
	Set(x, y int, c color.Color)
}

// ImageRendererSDF2 converts batched 2D SDFs to images, one image row per
// evaluation call.
type ImageRendererSDF2 struct {
	conv func(f float32) color.Color
	pos  []ms2.Vec
	dist []float32
}

// NewImageRendererSDF2 instances a new [ImageRendererSDF2] to render images from 2D SDFs. A nil float->color conversion
// function results in a simple black-white color scheme where black is the interior of the SDF (negative distance).
func NewImageRendererSDF2(evalBufferSize int, conversion func(float32) color.Color) (*ImageRendererSDF2, error) {
	if evalBufferSize <= 64 {
		return nil, errors.New("too small evaluation buffer size")
	}
	if conversion == nil {
		conversion = func(f float32) color.Color {
			switch {
			case math32.IsNaN(f) || math32.IsInf(f, 0):
				return color.RGBA{R: 255, A: 255}
			case f > 0:
				return color.White
			default:
				return color.Black
			}
		}
	}
	ir := &ImageRendererSDF2{
		conv: conversion,
		pos:  make([]ms2.Vec, evalBufferSize),
		dist: make([]float32, evalBufferSize),
	}
	return ir, nil
}

// Render maps the SDF2's bounding box onto img with +y pointing up and
// renders it. It uses userData as an argument to all [gleval.SDF2.Evaluate] calls.
func (ir *ImageRendererSDF2) Render(sdf gleval.SDF2, img setImage, userData any) error {
	imgBB := img.Bounds()
	dxi := imgBB.Dx()
	dyi := imgBB.Dy()
	if len(ir.dist) < dxi {
		return fmt.Errorf("require evaluation buffer (%d) to be at least of length of image rows (%d)", len(ir.dist), dxi)
	}
	bb := sdf.Bounds()
	sz := bb.Size()
	dx := sz.X / float32(dxi)
	dy := sz.Y / float32(dyi)
	for j := 0; j < dyi; j++ {
		// Image rows go down, world y goes up.
		y := bb.Max.Y - (float32(j)+0.5)*dy
		err := ir.renderRow(sdf, j, y, bb.Min.X+dx/2, dx, imgBB, img, userData)
		if err != nil {
			return err
		}
	}
	return nil
}

func (ir *ImageRendererSDF2) renderRow(sdf gleval.SDF2, row int, y, xmin, dx float32, imgBB image.Rectangle, img setImage, userData any) error {
	dxi := imgBB.Dx()
	for i := 0; i < dxi; i++ {
		ir.pos[i] = ms2.Vec{X: float32(i)*dx + xmin, Y: y}
	}
	err := sdf.Evaluate(ir.pos[:dxi], ir.dist[:dxi], userData)
	if err != nil {
		return err
	}
	conv := ir.conv
	for i := 0; i < dxi; i++ {
		img.Set(i+imgBB.Min.X, row+imgBB.Min.Y, conv(ir.dist[i]))
	}
	return nil
}

// RenderShader2D evaluates a 2D node tree on the CPU over its bounding box
// into a new image of the given height. The width preserves the aspect
// ratio of the bounds. A nil color conversion uses [ColorConversionInigoQuilez].
func RenderShader2D(s glbuild.Shader2D, height int, colorConversion func(float32) color.Color) (*image.RGBA, error) {
	if height <= 0 {
		return nil, errors.New("image height must be positive")
	}
	bb := s.Bounds()
	sz := bb.Size()
	if !(sz.X > 0 && sz.Y > 0) {
		return nil, fmt.Errorf("bad shader bounds %v", bb)
	}
	if colorConversion == nil {
		colorConversion = ColorConversionInigoQuilez(1)
	}
	width := max(1, int(float32(height)*sz.X/sz.Y))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	renderer, err := NewImageRendererSDF2(max(4096, width), colorConversion)
	if err != nil {
		return nil, err
	}
	sdf, err := gleval.NewCPUSDF2(s)
	if err != nil {
		return nil, err
	}
	err = renderer.Render(sdf, img, nil)
	if err != nil {
		return nil, err
	}
	return img, nil
}
