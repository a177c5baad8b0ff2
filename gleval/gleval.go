package gleval

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
)

// SDF3 implements a 3D signed distance field in vectorized
// form so that whole rows of pixels or ray batches are evaluated per call.
type SDF3 interface {
	// Evaluate evaluates the signed distance field over pos positions.
	// dist and pos must be of same length.  Resulting distances are stored
	// in dist.
	//
	// userData facilitates getting data to the evaluators for use in processing, such as [VecPool].
	Evaluate(pos []ms3.Vec, dist []float32, userData any) error
	// Bounds returns the SDF's bounding box such that all of the shape is contained within.
	Bounds() ms3.Box
}

// SDF2 implements a 2D signed distance field in vectorized form.
type SDF2 interface {
	// Evaluate evaluates the signed distance field over pos positions.
	// dist and pos must be of same length.  Resulting distances are stored
	// in dist.
	//
	// userData facilitates getting data to the evaluators for use in processing, such as [VecPool].
	Evaluate(pos []ms2.Vec, dist []float32, userData any) error
	// Bounds returns the SDF's bounding box such that all of the shape is contained within.
	Bounds() ms2.Box
}

// These interfaces are implemented by all SDF interfaces such as SDF3/2 and Shader3D/2D.
// Using these instead of `any` Aids in catching mistakes at compile time such as passing a Shader3D instead of Shader2D as an argument.
type (
	bounder2 = interface{ Bounds() ms2.Box }
	bounder3 = interface{ Bounds() ms3.Box }
)

var (
	errEmptyBuffers         = errors.New("empty buffers")
	errMismatchBufferLength = errors.New("position and distance buffer length mismatch")
)

// AssertSDF3 asserts the argument as a SDF3 and returns an error if the assertion fails.
func AssertSDF3(s bounder3) (SDF3, error) {
	sdf, ok := s.(SDF3)
	if !ok {
		return nil, fmt.Errorf("%T does not implement gleval.SDF3", s)
	}
	return sdf, nil
}

// AssertSDF2 asserts the argument as a SDF2 and returns an error if the assertion fails.
func AssertSDF2(s bounder2) (SDF2, error) {
	sdf, ok := s.(SDF2)
	if !ok {
		return nil, fmt.Errorf("%T does not implement gleval.SDF2", s)
	}
	return sdf, nil
}

// NormalsCentralDiff uses central differences algorithm for normal calculation, which are stored in normals for each position.
// step is the full distance between the two samples along each axis.
// If normalize is true the normals are converted to unit length.
func NormalsCentralDiff(s SDF3, pos []ms3.Vec, normals []ms3.Vec, step float32, normalize bool, userData any) error {
	step *= 0.5
	if step <= 0 {
		return errors.New("invalid step")
	} else if len(pos) != len(normals) {
		return errors.New("length of position must match length of normals")
	} else if s == nil {
		return errors.New("nil SDF3")
	} else if len(pos) == 0 {
		return errEmptyBuffers
	}
	vp, err := GetVecPool(userData)
	if err != nil {
		return fmt.Errorf("VecPool required for normal calculation: %w", err)
	}
	d1 := vp.Float.Acquire(len(pos))
	d2 := vp.Float.Acquire(len(pos))
	auxPos := vp.V3.Acquire(len(pos))
	defer vp.Float.Release(d1)
	defer vp.Float.Release(d2)
	defer vp.V3.Release(auxPos)
	var vecs = [3]ms3.Vec{{X: step}, {Y: step}, {Z: step}}
	for dim := 0; dim < 3; dim++ {
		h := vecs[dim]
		for i, p := range pos {
			auxPos[i] = ms3.Add(p, h)
		}
		err = s.Evaluate(auxPos, d1, userData)
		if err != nil {
			return err
		}
		for i, p := range pos {
			auxPos[i] = ms3.Sub(p, h)
		}
		err = s.Evaluate(auxPos, d2, userData)
		if err != nil {
			return err
		}

		switch dim {
		case 0:
			for i, d := range d1 {
				normals[i].X = d - d2[i]
			}
		case 1:
			for i, d := range d1 {
				normals[i].Y = d - d2[i]
			}
		case 2:
			for i, d := range d1 {
				normals[i].Z = d - d2[i]
			}
		}
	}
	if normalize {
		for i, n := range normals {
			l := ms3.Norm(n)
			if l > 0 {
				normals[i] = ms3.Scale(1/l, n)
			}
		}
	}
	return nil
}

// Func3 adapts a per-point distance function into a [SDF3]. Useful for
// running hand written scenes through batched consumers such as ray marchers.
type Func3 struct {
	F  func(ms3.Vec) float32
	BB ms3.Box
}

// Evaluate implements [SDF3].
func (f Func3) Evaluate(pos []ms3.Vec, dist []float32, userData any) error {
	if len(pos) != len(dist) {
		return errMismatchBufferLength
	}
	for i, p := range pos {
		dist[i] = f.F(p)
	}
	return nil
}

// Bounds implements [SDF3].
func (f Func3) Bounds() ms3.Box { return f.BB }

// Func2 adapts a per-point distance function into a [SDF2].
type Func2 struct {
	F  func(ms2.Vec) float32
	BB ms2.Box
}

// Evaluate implements [SDF2].
func (f Func2) Evaluate(pos []ms2.Vec, dist []float32, userData any) error {
	if len(pos) != len(dist) {
		return errMismatchBufferLength
	}
	for i, p := range pos {
		dist[i] = f.F(p)
	}
	return nil
}

// Bounds implements [SDF2].
func (f Func2) Bounds() ms2.Box { return f.BB }

// MinMax returns the minimum and maximum of finite distances in dist.
func MinMax(dist []float32) (min, max float32) {
	min, max = math32.Inf(1), math32.Inf(-1)
	for _, d := range dist {
		if math32.IsNaN(d) || math32.IsInf(d, 0) {
			continue
		}
		min = math32.Min(min, d)
		max = math32.Max(max, d)
	}
	return min, max
}
