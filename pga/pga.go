// Package pga implements the 2D projective geometric algebra PGA(2,0,1)
// where e0 squares to zero and e1, e2 square to one.
//
// Multivector coefficients are stored over the basis
//
//	1, e0, e1, e2, e01, e20, e12, e012
//
// in which a point (x,y) is e12 + x*e20 + y*e01 and a line ax+by+c=0 is
// a*e1 + b*e2 + c*e0. Products are computed from blade multiplication
// tables generated at init from the bitmask representation of each blade.
package pga

import (
	"math/bits"

	"github.com/chewxy/math32"
)

// Basis blade indices into a [MultiVector].
const (
	Scalar = iota
	E0
	E1
	E2
	E01
	E20
	E12
	E012
	numBlades
)

// MultiVector is a general element of the algebra.
type MultiVector [numBlades]float32

// basisMask maps a basis index to its blade bitmask with bit i set for e_i.
var basisMask = [numBlades]uint8{0, 0b001, 0b010, 0b100, 0b011, 0b101, 0b110, 0b111}

// basisSign relates a basis blade to the canonical ascending blade of the same mask.
// Only e20 = -e02 differs.
var basisSign = [numBlades]float32{1, 1, 1, 1, 1, -1, 1, 1}

// bladeProduct is the product of two basis blades: sign*basis[idx].
// A zero sign means the product vanishes.
type bladeProduct struct {
	idx  uint8
	sign float32
}

type productTable [numBlades][numBlades]bladeProduct

var (
	geometricTable productTable
	outerTable     productTable
	innerTable     productTable
	leftTable      productTable
	rightTable     productTable
)

func init() {
	var maskToIndex [numBlades]uint8
	for i, m := range basisMask {
		maskToIndex[m] = uint8(i)
	}
	for i, a := range basisMask {
		for j, b := range basisMask {
			k := maskToIndex[a^b]
			sign := basisSign[i] * basisSign[j] * basisSign[k] * reorderingSign(a, b)
			if a&b&0b001 != 0 {
				sign = 0 // e0*e0 = 0.
			}
			p := bladeProduct{idx: k, sign: sign}
			ga, gb, gk := grade(a), grade(b), grade(a^b)
			geometricTable[i][j] = p
			if a&b == 0 {
				outerTable[i][j] = p
			}
			if gk == ga-gb || gk == gb-ga {
				innerTable[i][j] = p
			}
			if a&b == a {
				leftTable[i][j] = p
			}
			if a&b == b {
				rightTable[i][j] = p
			}
		}
	}
}

// reorderingSign returns the sign from sorting the product of canonical blades a and b.
func reorderingSign(a, b uint8) float32 {
	a >>= 1
	swaps := 0
	for a != 0 {
		swaps += bits.OnesCount8(a & b)
		a >>= 1
	}
	if swaps&1 != 0 {
		return -1
	}
	return 1
}

func grade(mask uint8) int { return bits.OnesCount8(mask) }

func (table *productTable) product(a, b MultiVector) (c MultiVector) {
	for i, x := range a {
		if x == 0 {
			continue
		}
		for j, y := range b {
			p := table[i][j]
			if p.sign != 0 {
				c[p.idx] += p.sign * x * y
			}
		}
	}
	return c
}

// NewScalar returns the multivector with scalar part s.
func NewScalar(s float32) MultiVector { return MultiVector{Scalar: s} }

func (a MultiVector) Add(b MultiVector) MultiVector {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

func (a MultiVector) Sub(b MultiVector) MultiVector {
	for i := range a {
		a[i] -= b[i]
	}
	return a
}

func (a MultiVector) Scale(s float32) MultiVector {
	for i := range a {
		a[i] *= s
	}
	return a
}

// GeometricProduct returns ab.
func (a MultiVector) GeometricProduct(b MultiVector) MultiVector {
	return geometricTable.product(a, b)
}

// OuterProduct returns the wedge a∧b, the meet of a and b.
func (a MultiVector) OuterProduct(b MultiVector) MultiVector {
	return outerTable.product(a, b)
}

// InnerProduct returns the symmetric inner product a·b whose grade is
// the absolute difference of the operand grades.
func (a MultiVector) InnerProduct(b MultiVector) MultiVector {
	return innerTable.product(a, b)
}

// LeftContraction returns a⌋b.
func (a MultiVector) LeftContraction(b MultiVector) MultiVector {
	return leftTable.product(a, b)
}

// RightContraction returns a⌊b.
func (a MultiVector) RightContraction(b MultiVector) MultiVector {
	return rightTable.product(a, b)
}

// RegressiveProduct returns a∨b, the join of a and b.
func (a MultiVector) RegressiveProduct(b MultiVector) MultiVector {
	return a.Dual().OuterProduct(b.Dual()).Dual()
}

// Dual returns the Poincaré dual. In this basis it reverses the coefficient order.
func (a MultiVector) Dual() (d MultiVector) {
	for i, v := range a {
		d[numBlades-1-i] = v
	}
	return d
}

// gradeSigns applies sign[g] to the grade g part of a.
func (a MultiVector) gradeSigns(signs [4]float32) MultiVector {
	for i := range a {
		a[i] *= signs[grade(basisMask[i])]
	}
	return a
}

// Reverse reverses the order of the vectors of each blade.
func (a MultiVector) Reverse() MultiVector { return a.gradeSigns([4]float32{1, 1, -1, -1}) }

// Automorphism negates the odd grades.
func (a MultiVector) Automorphism() MultiVector { return a.gradeSigns([4]float32{1, -1, 1, -1}) }

// Conjugate is the Clifford conjugate, reversion composed with the automorphism.
func (a MultiVector) Conjugate() MultiVector { return a.gradeSigns([4]float32{1, -1, -1, 1}) }

// Grade returns the grade k part of a.
func (a MultiVector) Grade(k int) (g MultiVector) {
	for i, v := range a {
		if grade(basisMask[i]) == k {
			g[i] = v
		}
	}
	return g
}

// Norm returns sqrt(|a ã|) where only the scalar part of the product is used.
func (a MultiVector) Norm() float32 {
	return math32.Sqrt(math32.Abs(a.GeometricProduct(a.Reverse())[Scalar]))
}

// Normalize returns a scaled to unit norm.
func (a MultiVector) Normalize() MultiVector {
	return a.Scale(1 / a.Norm())
}

// Inverse returns ã/(aã). It is the inverse for versors such as
// rotors, translators, motors and non-null vectors whose aã is scalar.
func (a MultiVector) Inverse() MultiVector {
	rev := a.Reverse()
	return rev.Scale(1 / a.GeometricProduct(rev)[Scalar])
}

// Powi returns a raised to the integer power n by repeated squaring.
// Negative powers use [MultiVector.Inverse].
func (a MultiVector) Powi(n int) MultiVector {
	if n < 0 {
		a = a.Inverse()
		n = -n
	}
	result := NewScalar(1)
	for n > 0 {
		if n&1 != 0 {
			result = result.GeometricProduct(a)
		}
		a = a.GeometricProduct(a)
		n >>= 1
	}
	return result
}

// Sandwich returns a x ã.
func (a MultiVector) Sandwich(x MultiVector) MultiVector {
	return a.GeometricProduct(x).GeometricProduct(a.Reverse())
}
