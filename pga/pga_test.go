package pga

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-5

func assertMVNear(t *testing.T, want, got MultiVector, msgAndArgs ...any) {
	t.Helper()
	for i := range want {
		if math32.Abs(want[i]-got[i]) > tol {
			assert.Fail(t, fmt.Sprintf("blade %d differs: want %v, got %v", i, want, got), msgAndArgs...)
			return
		}
	}
}

func randomMV(rng *rand.Rand) (a MultiVector) {
	for i := range a {
		a[i] = rng.Float32() - 0.5
	}
	return a
}

func randomMotor(rng *rand.Rand) Motor {
	r := NewRotor(rng.Float32() * 2 * math32.Pi)
	t := NewTranslator(rng.Float32()*10-5, rng.Float32()*10-5)
	return NewMotor(r, t)
}

func TestBasisProducts(t *testing.T) {
	basis := func(i int) (a MultiVector) { a[i] = 1; return a }
	for _, tc := range []struct {
		a, b int
		want MultiVector
	}{
		{a: E0, b: E0, want: MultiVector{}},
		{a: E1, b: E1, want: NewScalar(1)},
		{a: E2, b: E2, want: NewScalar(1)},
		{a: E12, b: E12, want: NewScalar(-1)},
		{a: E0, b: E1, want: basis(E01)},
		{a: E2, b: E0, want: basis(E20)},
		{a: E0, b: E2, want: basis(E20).Scale(-1)},
		{a: E12, b: E20, want: basis(E01).Scale(-1)},
		{a: E01, b: E2, want: basis(E012)},
		{a: E20, b: E20, want: MultiVector{}},
	} {
		got := basis(tc.a).GeometricProduct(basis(tc.b))
		assertMVNear(t, tc.want, got, "basis %d * basis %d", tc.a, tc.b)
	}
	assertMVNear(t, basis(E2), basis(E1).LeftContraction(basis(E12)))
	assertMVNear(t, MultiVector{}, basis(E12).LeftContraction(basis(E1)))
	assertMVNear(t, basis(E1), basis(E12).RightContraction(basis(E2)))
	assertMVNear(t, NewScalar(1), basis(E1).InnerProduct(basis(E1)))
	assertMVNear(t, MultiVector{}, basis(E1).OuterProduct(basis(E1)))
}

func TestGeometricProductAssociative(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		a, b, c := randomMV(rng), randomMV(rng), randomMV(rng)
		left := a.GeometricProduct(b).GeometricProduct(c)
		right := a.GeometricProduct(b.GeometricProduct(c))
		assertMVNear(t, left, right)
		// Geometric product of vectors is inner plus outer.
		u, v := a.Grade(1), b.Grade(1)
		assertMVNear(t, u.GeometricProduct(v), u.InnerProduct(v).Add(u.OuterProduct(v)))
	}
}

func TestInvolutions(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 100; i++ {
		a, b := randomMV(rng), randomMV(rng)
		assertMVNear(t, a, a.Reverse().Reverse())
		assertMVNear(t, a, a.Dual().Dual())
		assertMVNear(t, a.Conjugate(), a.Reverse().Automorphism())
		// Reversion is an anti-automorphism of the geometric product.
		assertMVNear(t, a.GeometricProduct(b).Reverse(), b.Reverse().GeometricProduct(a.Reverse()))
		var sum MultiVector
		for k := 0; k <= 3; k++ {
			sum = sum.Add(a.Grade(k))
		}
		assertMVNear(t, a, sum)
	}
}

func TestMotorReverseIsScalar(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		m := randomMotor(rng).MultiVector().Scale(0.5 + rng.Float32())
		mm := m.GeometricProduct(m.Reverse())
		assert.Greater(t, mm[Scalar], float32(0))
		mm[Scalar] = 0
		assertMVNear(t, MultiVector{}, mm)
	}
}

func TestMotorInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	identity := IdentityMotor().MultiVector()
	for i := 0; i < 200; i++ {
		m := randomMotor(rng).MultiVector().Scale(0.5 + rng.Float32()).Motor()
		assertMVNear(t, identity, m.Inverse().Mul(m).MultiVector())
		assertMVNear(t, identity, m.Mul(m.Inverse()).MultiVector())
		assertMVNear(t, identity, m.MultiVector().Powi(0))
		assertMVNear(t, m.Inverse().MultiVector(), m.MultiVector().Powi(-1))
	}
}

func TestMotorApply(t *testing.T) {
	r := NewRotor(math32.Pi / 2)
	x, y := r.MultiVector().Motor().Apply(NewPoint(1, 0)).XY()
	assert.InDelta(t, 0, x, tol)
	assert.InDelta(t, 1, y, tol)

	tr := NewTranslator(2, -3)
	x, y = tr.MultiVector().Motor().Apply(NewPoint(1, 1)).XY()
	assert.InDelta(t, 3, x, tol)
	assert.InDelta(t, -2, y, tol)

	// Rotate then translate.
	m := NewMotor(r, NewTranslator(1, 0))
	x, y = m.Apply(NewPoint(1, 0)).XY()
	assert.InDelta(t, 1, x, tol)
	assert.InDelta(t, 1, y, tol)

	// Inverse undoes the transform.
	x, y = m.Inverse().Apply(m.Apply(NewPoint(0.3, -0.7))).XY()
	assert.InDelta(t, 0.3, x, tol)
	assert.InDelta(t, -0.7, y, tol)

	// Rotors compose by powers.
	small := NewRotor(math32.Pi / 8).MultiVector()
	x, y = small.Powi(4).Motor().Apply(NewPoint(2, 0)).XY()
	assert.InDelta(t, 0, x, tol)
	assert.InDelta(t, 2, y, tol)
}

func TestMotorDual(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 20; i++ {
		m := randomMotor(rng)
		assertMVNear(t, m.MultiVector(), m.Dual().Motor().MultiVector())
	}
}

func TestJoinMeet(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	for i := 0; i < 100; i++ {
		p := NewPoint(rng.Float32()*4-2, rng.Float32()*4-2)
		q := NewPoint(rng.Float32()*4-2, rng.Float32()*4-2)
		l := p.Join(q)
		px, py := p.XY()
		qx, qy := q.XY()
		assert.InDelta(t, 0, l.Eval(px, py), 1e-4)
		assert.InDelta(t, 0, l.Eval(qx, qy), 1e-4)
	}
	vertical := NewPlane(1, 0, -1)   // x=1
	horizontal := NewPlane(0, 1, -2) // y=2
	x, y := vertical.Meet(horizontal).XY()
	assert.InDelta(t, 1, x, tol)
	assert.InDelta(t, 2, y, tol)

	// Parallel lines meet at infinity.
	ideal := vertical.Meet(NewPlane(1, 0, 3))
	assert.Equal(t, float32(0), ideal[2])
}

func TestNormalize(t *testing.T) {
	m := NewMotor(NewRotor(1), NewTranslator(3, 4)).MultiVector().Scale(3)
	assert.InDelta(t, 3, m.Norm(), tol)
	assert.InDelta(t, 1, m.Normalize().Norm(), tol)
}
