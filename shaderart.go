// Package shaderart builds signed distance field scenes that can be written
// out as GLSL fragment shaders and evaluated in batches on the CPU.
//
// Every node created by a [Builder] implements [glbuild.Shader2D] or
// [glbuild.Shader3D] together with [gleval.SDF2] or [gleval.SDF3]. Both
// renditions use the same formulas, the CPU one being implemented with the
// kernels in package dist.
package shaderart

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
	"github.com/soypat/shaderart/gleval"
)

const (
	sqrt3    = 1.7320508075688772935274463415058723669428052538103806280558069794
	largenum = 1e20
	// epstol is used to check for badly conditioned denominators
	// such as lengths used for normalization.
	epstol = 6e-7
)

// BuilderFlags modify the behaviour of a [Builder].
type BuilderFlags uint32

const (
	// FlagNoDimensionPanic makes the Builder accumulate bad dimension errors
	// instead of panicking. Errors are then retrieved with [Builder.Err].
	FlagNoDimensionPanic BuilderFlags = 1 << iota
)

// Builder wraps all SDF primitive and operation logic generation.
// Provides error handling strategies with panics or error accumulation during shape generation.
type Builder struct {
	flags     BuilderFlags
	accumErrs []error
}

// SetFlags sets the Builder's flags, replacing previous ones.
func (bld *Builder) SetFlags(flags BuilderFlags) {
	bld.flags = flags
}

// Flags returns the Builder's current flags.
func (bld *Builder) Flags() BuilderFlags { return bld.flags }

// Err returns the errors accumulated since the last call to [Builder.ClearErrors].
// Errors are only accumulated when [FlagNoDimensionPanic] is set.
func (bld *Builder) Err() error {
	if len(bld.accumErrs) == 0 {
		return nil
	}
	return errors.Join(bld.accumErrs...)
}

// ClearErrors discards accumulated errors.
func (bld *Builder) ClearErrors() {
	bld.accumErrs = bld.accumErrs[:0]
}

func (bld *Builder) shapeErrorf(msg string, args ...any) {
	if bld.flags&FlagNoDimensionPanic == 0 {
		panic(fmt.Sprintf(msg, args...))
	}
	bld.accumErrs = append(bld.accumErrs, fmt.Errorf(msg, args...))
}

func (*Builder) nilsdf(msg string) {
	panic("nil SDF argument: " + msg)
}

// Axis selects one of the three cartesian axes.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "Axis(" + fmt.Sprint(uint8(a)) + ")"
}

// These interfaces are implemented by all SDF interfaces such as SDF3/2 and Shader3D/2D.
// Using these instead of `any` Aids in catching mistakes at compile time such as passing a Shader3D instead of Shader2D as an argument.
type (
	bounder2 = interface{ Bounds() ms2.Box }
	bounder3 = interface{ Bounds() ms3.Box }
)

func badDim(v float32) bool {
	return !(v > 0) || math32.IsInf(v, 1)
}

func badFinite(v float32) bool {
	return math32.IsNaN(v) || math32.IsInf(v, 0)
}

// minReduce takes element-wise minimum of arguments and stores to first argument.
func minReduce(d1AndDst, d2 []float32) {
	for i := range d1AndDst {
		d1AndDst[i] = math32.Min(d1AndDst[i], d2[i])
	}
}

func evaluateSDF3(obj bounder3, pos []ms3.Vec, dist []float32, userData any) error {
	sdf, err := gleval.AssertSDF3(obj)
	if err != nil {
		return err
	}
	return sdf.Evaluate(pos, dist, userData)
}

func evaluateSDF2(obj bounder2, pos []ms2.Vec, dist []float32, userData any) error {
	sdf, err := gleval.AssertSDF2(obj)
	if err != nil {
		return err
	}
	return sdf.Evaluate(pos, dist, userData)
}

// evalBinary2D evaluates a and b over pos storing a's distance to dist and
// b's to an auxiliary buffer, then combines them with fn.
func evalBinary2D(a, b bounder2, pos []ms2.Vec, dist []float32, userData any, fn func(a, b float32) float32) error {
	vp, err := gleval.GetVecPool(userData)
	if err != nil {
		return err
	}
	d2 := vp.Float.Acquire(len(dist))
	defer vp.Float.Release(d2)
	err = evaluateSDF2(a, pos, dist, userData)
	if err != nil {
		return err
	}
	err = evaluateSDF2(b, pos, d2, userData)
	if err != nil {
		return err
	}
	for i, d := range dist {
		dist[i] = fn(d, d2[i])
	}
	return nil
}

// evalBinary3D is the 3D version of evalBinary2D.
func evalBinary3D(a, b bounder3, pos []ms3.Vec, dist []float32, userData any, fn func(a, b float32) float32) error {
	vp, err := gleval.GetVecPool(userData)
	if err != nil {
		return err
	}
	d2 := vp.Float.Acquire(len(dist))
	defer vp.Float.Release(d2)
	err = evaluateSDF3(a, pos, dist, userData)
	if err != nil {
		return err
	}
	err = evaluateSDF3(b, pos, d2, userData)
	if err != nil {
		return err
	}
	for i, d := range dist {
		dist[i] = fn(d, d2[i])
	}
	return nil
}

// evalTransformed2D evaluates s at positions mapped by fn.
func evalTransformed2D(s bounder2, pos []ms2.Vec, dist []float32, userData any, fn func(ms2.Vec) ms2.Vec) error {
	sdf, err := gleval.AssertSDF2(s)
	if err != nil {
		return err
	}
	vp, err := gleval.GetVecPool(userData)
	if err != nil {
		return err
	}
	transformed := vp.V2.Acquire(len(pos))
	defer vp.V2.Release(transformed)
	for i, p := range pos {
		transformed[i] = fn(p)
	}
	return sdf.Evaluate(transformed, dist, userData)
}

// evalTransformed3D evaluates s at positions mapped by fn.
func evalTransformed3D(s bounder3, pos []ms3.Vec, dist []float32, userData any, fn func(ms3.Vec) ms3.Vec) error {
	sdf, err := gleval.AssertSDF3(s)
	if err != nil {
		return err
	}
	vp, err := gleval.GetVecPool(userData)
	if err != nil {
		return err
	}
	transformed := vp.V3.Acquire(len(pos))
	defer vp.V3.Release(transformed)
	for i, p := range pos {
		transformed[i] = fn(p)
	}
	return sdf.Evaluate(transformed, dist, userData)
}
