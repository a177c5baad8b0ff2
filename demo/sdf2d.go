package demo

import (
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shaderart"
	"github.com/soypat/shaderart/glbuild"
)

// SDF2D shows the distance field of one 2D shape with a cursor ring
// displaying the distance at the cursor.
type SDF2D struct {
	Shape  Shape2D
	Params [NumShapes2D]ShapeParams2D
	// Scale is the number of world units per screen height.
	Scale float32
}

func NewSDF2D() *SDF2D {
	return &SDF2D{Shape: Disk, Params: DefaultShapeParams2D(), Scale: 1}
}

func (*SDF2D) Name() string { return NameSDF2D }

// Active returns the parameters of the active shape.
func (s *SDF2D) Active() *ShapeParams2D {
	if int(s.Shape) >= NumShapes2D {
		return &ShapeParams2D{}
	}
	return &s.Params[s.Shape]
}

// Distance returns the distance to the active shape at p in world units.
func (s *SDF2D) Distance(p ms2.Vec) float32 {
	return s.Shape.Distance(p, s.Active())
}

func (s *SDF2D) Shade(frag ms2.Vec, f *Frame) ms3.Vec {
	scale := s.Scale
	if scale <= 0 {
		scale = 1
	}
	uv := ms2.Scale(scale, f.UV(frag))
	col := DistanceColor(s.Distance(uv))
	cursor := ms2.Scale(scale, f.Cursor)
	col = drawCursor(col, uv, cursor, s.Distance(cursor))
	return clamp3(col)
}

// Scene2D returns the active shape as a node tree for GLSL generation.
func (s *SDF2D) Scene2D(bld *shaderart.Builder) (glbuild.Shader2D, error) {
	return s.Shape.Scene2D(bld, s.Active())
}
