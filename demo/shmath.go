package demo

import (
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms1"
	"github.com/soypat/glgl/math/ms3"
)

func factorial(n int) float32 {
	f := float32(1)
	for i := 2; i <= n; i++ {
		f *= float32(i)
	}
	return f
}

// legendre evaluates the associated Legendre polynomial P_l^m(x) for
// 0 <= m <= l with the Condon-Shortley phase.
func legendre(l, m int, x float32) float32 {
	pmm := float32(1)
	if m > 0 {
		somx2 := math32.Sqrt((1 - x) * (1 + x))
		fact := float32(1)
		for i := 1; i <= m; i++ {
			pmm *= -fact * somx2
			fact += 2
		}
	}
	if l == m {
		return pmm
	}
	pmmp1 := x * float32(2*m+1) * pmm
	if l == m+1 {
		return pmmp1
	}
	var pll float32
	for ll := m + 2; ll <= l; ll++ {
		pll = (x*float32(2*ll-1)*pmmp1 - float32(ll+m-1)*pmm) / float32(ll-m)
		pmm, pmmp1 = pmmp1, pll
	}
	return pll
}

// laguerre evaluates the generalized Laguerre polynomial L_n^alpha(x).
func laguerre(n int, alpha, x float32) float32 {
	if n == 0 {
		return 1
	}
	lkm1, lk := float32(1), 1+alpha-x
	for k := 1; k < n; k++ {
		fk := float32(k)
		lkm1, lk = lk, ((2*fk+1+alpha-x)*lk-(fk+alpha)*lkm1)/(fk+1)
	}
	return lk
}

// RealSphericalHarmonic evaluates the real spherical harmonic Y_l^m in the
// direction dir, which must be of unit length. The polar angle is measured
// from the z axis. It returns 0 for |m| > l or l < 0.
func RealSphericalHarmonic(l, m int, dir ms3.Vec) float32 {
	am := m
	if am < 0 {
		am = -am
	}
	if l < 0 || am > l {
		return 0
	}
	k := math32.Sqrt(float32(2*l+1) / (4 * math32.Pi) * factorial(l-am) / factorial(l+am))
	plm := legendre(l, am, ms1.Clamp(dir.Z, -1, 1))
	if m == 0 {
		return k * plm
	}
	phi := math32.Atan2(dir.Y, dir.X)
	if m > 0 {
		return math32.Sqrt2 * k * math32.Cos(float32(m)*phi) * plm
	}
	return math32.Sqrt2 * k * math32.Sin(float32(am)*phi) * plm
}

// HydrogenRadial is the radial wavefunction R_nl(r) of the hydrogen atom
// in units of the Bohr radius.
func HydrogenRadial(n, l int, r float32) float32 {
	if n < 1 || l < 0 || l >= n {
		return 0
	}
	fn := float32(n)
	rho := 2 * r / fn
	norm := math32.Sqrt((8 / (fn * fn * fn)) * factorial(n-l-1) / (2 * fn * factorial(n+l)))
	return norm * math32.Exp(-rho/2) * math32.Pow(rho, float32(l)) * laguerre(n-l-1, float32(2*l+1), rho)
}

// HydrogenDensity is the probability density |psi_nlm|^2 at p, using real
// spherical harmonics for the angular part.
func HydrogenDensity(n, l, m int, p ms3.Vec) float32 {
	r := ms3.Norm(p)
	dir := ms3.Vec{Z: 1}
	if r > 0 {
		dir = ms3.Scale(1/r, p)
	}
	psi := HydrogenRadial(n, l, r) * RealSphericalHarmonic(l, m, dir)
	return psi * psi
}
