package gleval

import (
	"errors"
	"fmt"

	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/math/ms3"
)

// NewCPUSDF3 checks if the shader implements CPU evaluation and returns a [SDF3CPU]
// ready for evaluation, taking care of the buffers for evaluating the SDF correctly.
func NewCPUSDF3(root bounder3) (*SDF3CPU, error) {
	sdf, err := AssertSDF3(root)
	if err != nil {
		return nil, err
	}
	return &SDF3CPU{SDF: sdf}, nil
}

// NewCPUSDF2 checks if the shader implements CPU evaluation and returns a [SDF2CPU]
// ready for evaluation, taking care of the buffers for evaluating the SDF correctly.
func NewCPUSDF2(root bounder2) (*SDF2CPU, error) {
	sdf, err := AssertSDF2(root)
	if err != nil {
		return nil, err
	}
	return &SDF2CPU{SDF: sdf}, nil
}

// SDF3CPU evaluates a [SDF3] tree on the CPU with its own [VecPool].
// It is not safe for concurrent use; each goroutine should own one.
type SDF3CPU struct {
	SDF SDF3
	vp  VecPool
}

// Evaluate performs CPU evaluation of the underlying SDF3. If userData is nil
// the SDF3CPU's own pool is used and buffers leaked by the tree's evaluators are reported.
func (sdf *SDF3CPU) Evaluate(pos []ms3.Vec, dist []float32, userData any) error {
	if len(pos) != len(dist) {
		return errMismatchBufferLength
	} else if len(pos) == 0 {
		return errEmptyBuffers
	}
	if userData != nil {
		// Caller owns the pool and may hold buffers during evaluation.
		return sdf.SDF.Evaluate(pos, dist, userData)
	}
	err := sdf.SDF.Evaluate(pos, dist, &sdf.vp)
	err2 := sdf.vp.AssertAllReleased()
	if err != nil {
		if err2 != nil {
			return fmt.Errorf("VecPool leak:(%s) SDF error:(%w)", err2, err)
		}
		return err
	}
	return err2
}

// Bounds returns the SDF's bounding box such that all of the shape is contained within.
func (sdf *SDF3CPU) Bounds() ms3.Box {
	return sdf.SDF.Bounds()
}

// VecPool method exposes the SDF3CPU's VecPool in case user wishes to use their own userData in evaluations.
func (sdf *SDF3CPU) VecPool() *VecPool { return &sdf.vp }

// SDF2CPU evaluates a [SDF2] tree on the CPU with its own [VecPool].
// It is not safe for concurrent use; each goroutine should own one.
type SDF2CPU struct {
	SDF SDF2
	vp  VecPool
}

// Evaluate performs CPU evaluation of the underlying SDF2. See [SDF3CPU.Evaluate].
func (sdf *SDF2CPU) Evaluate(pos []ms2.Vec, dist []float32, userData any) error {
	if len(pos) != len(dist) {
		return errMismatchBufferLength
	} else if len(pos) == 0 {
		return errEmptyBuffers
	}
	if userData != nil {
		// Caller owns the pool and may hold buffers during evaluation.
		return sdf.SDF.Evaluate(pos, dist, userData)
	}
	err := sdf.SDF.Evaluate(pos, dist, &sdf.vp)
	err2 := sdf.vp.AssertAllReleased()
	if err != nil {
		if err2 != nil {
			return fmt.Errorf("VecPool leak:(%s) SDF error:(%w)", err2, err)
		}
		return err
	}
	return err2
}

// Bounds returns the SDF's bounding box such that all of the shape is contained within.
func (sdf *SDF2CPU) Bounds() ms2.Box {
	return sdf.SDF.Bounds()
}

// VecPool method exposes the SDF2CPU's VecPool in case user wishes to use their own userData in evaluations.
func (sdf *SDF2CPU) VecPool() *VecPool { return &sdf.vp }

// GetVecPool asserts the userData as a VecPool. If assert fails then
// an error is returned with information on what went wrong.
func GetVecPool(userData any) (*VecPool, error) {
	vp, ok := userData.(*VecPool)
	if !ok {
		vper, ok := userData.(interface{ VecPool() *VecPool })
		if !ok {
			return nil, fmt.Errorf("want userData type *gleval.VecPool for CPU evaluations, got %T", userData)
		}
		vp = vper.VecPool()
		if vp == nil {
			return nil, fmt.Errorf("nil return value from VecPool method of %T", userData)
		}
	}
	return vp, nil
}

// VecPool serves as a pool of Vec3 and float32 slices for
// evaluating SDFs on the CPU while reducing garbage generation.
// It also aids in calculation of memory usage.
type VecPool struct {
	V3    bufPool[ms3.Vec]
	V2    bufPool[ms2.Vec]
	Float bufPool[float32]
}

// AssertAllReleased checks all buffers are not in use. Should be called
// after ending a run to find memory leaks.
func (vp *VecPool) AssertAllReleased() error {
	err := vp.Float.assertAllReleased()
	if err != nil {
		return err
	}
	err = vp.V2.assertAllReleased()
	if err != nil {
		return err
	}
	return vp.V3.assertAllReleased()
}

// TotalAlloc returns the number of bytes allocated by the pool's buffers.
func (vp *VecPool) TotalAlloc() uint64 {
	return vp.Float.totalAlloc(4) + vp.V2.totalAlloc(8) + vp.V3.totalAlloc(12)
}

type bufPool[T any] struct {
	_ins      [][]T
	_acquired []bool
}

// Acquire returns a buffer of length minLength marked as in use until released.
func (bp *bufPool[T]) Acquire(minLength int) []T {
	for i, locked := range bp._acquired {
		if !locked && cap(bp._ins[i]) >= minLength {
			bp._acquired[i] = true
			return bp._ins[i][:minLength]
		}
	}
	newSlice := make([]T, minLength)
	bp._ins = append(bp._ins, newSlice)
	bp._acquired = append(bp._acquired, true)
	return newSlice
}

// Release returns a buffer obtained with Acquire to the pool.
func (bp *bufPool[T]) Release(buf []T) error {
	if cap(buf) == 0 {
		return errors.New("release of zero capacity buffer")
	}
	buf = buf[:1]
	for i, instance := range bp._ins {
		if cap(instance) > 0 && &instance[:1][0] == &buf[0] {
			if !bp._acquired[i] {
				return errors.New("release of unacquired resource")
			}
			bp._acquired[i] = false
			return nil
		}
	}
	return errors.New("release of nonexistent resource")
}

func (bp *bufPool[T]) assertAllReleased() error {
	for _, locked := range bp._acquired {
		if locked {
			return fmt.Errorf("locked %T resource found in gleval.bufPool.assertAllReleased, memory leak?", *new(T))
		}
	}
	return nil
}

func (bp *bufPool[T]) totalAlloc(elemSize uint64) (n uint64) {
	for _, b := range bp._ins {
		n += uint64(cap(b)) * elemSize
	}
	return n
}
