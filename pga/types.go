package pga

import "github.com/chewxy/math32"

// Point is a normalized or homogeneous point with components e20, e01, e12.
type Point [3]float32

// NewPoint returns the point at (x,y).
func NewPoint(x, y float32) Point { return Point{x, y, 1} }

func (p Point) MultiVector() MultiVector {
	return MultiVector{E20: p[0], E01: p[1], E12: p[2]}
}

// XY returns the euclidean coordinates of the point.
func (p Point) XY() (x, y float32) {
	return p[0] / p[2], p[1] / p[2]
}

// Join returns the line through p and q.
func (p Point) Join(q Point) Plane {
	return p.MultiVector().RegressiveProduct(q.MultiVector()).Plane()
}

// IdealPoint is a point at infinity, a direction, with components e20, e01.
type IdealPoint [2]float32

func (d IdealPoint) MultiVector() MultiVector {
	return MultiVector{E20: d[0], E01: d[1]}
}

// Plane is a line of the plane with components e0, e1, e2 such that
// e1*x + e2*y + e0 = 0 for every point (x,y) on it.
type Plane [3]float32

// NewPlane returns the line ax+by+c=0.
func NewPlane(a, b, c float32) Plane { return Plane{c, a, b} }

func (l Plane) MultiVector() MultiVector {
	return MultiVector{E0: l[0], E1: l[1], E2: l[2]}
}

// Meet returns the intersection point of two lines. Parallel lines meet
// at an ideal point, which has a zero e12 component.
func (l Plane) Meet(m Plane) Point {
	return l.MultiVector().OuterProduct(m.MultiVector()).Point()
}

// Eval returns a*x + b*y + c for the line ax+by+c=0.
func (l Plane) Eval(x, y float32) float32 { return l[1]*x + l[2]*y + l[0] }

// Rotor is a rotation about the origin with components scalar, e12.
type Rotor [2]float32

// NewRotor returns the rotor that rotates counter clockwise by angle radians about the origin.
func NewRotor(angle float32) Rotor {
	s, c := math32.Sincos(angle / 2)
	return Rotor{c, -s}
}

func (r Rotor) MultiVector() MultiVector {
	return MultiVector{Scalar: r[0], E12: r[1]}
}

// Translator is a translation with components scalar, e01, e20.
type Translator [3]float32

// NewTranslator returns the translator that moves points by (dx,dy).
func NewTranslator(dx, dy float32) Translator {
	return Translator{1, -dx / 2, dy / 2}
}

func (t Translator) MultiVector() MultiVector {
	return MultiVector{Scalar: t[0], E01: t[1], E20: t[2]}
}

// Motor is a rigid transform with components scalar, e01, e20, e12.
type Motor [4]float32

// IdentityMotor returns the motor that leaves points unchanged.
func IdentityMotor() Motor { return Motor{1, 0, 0, 0} }

// NewMotor returns the motor that applies r and then t.
func NewMotor(r Rotor, t Translator) Motor {
	return t.MultiVector().GeometricProduct(r.MultiVector()).Motor()
}

func (m Motor) MultiVector() MultiVector {
	return MultiVector{Scalar: m[0], E01: m[1], E20: m[2], E12: m[3]}
}

// Apply transforms p with the sandwich product m p m̃.
func (m Motor) Apply(p Point) Point {
	return m.MultiVector().Sandwich(p.MultiVector()).Point()
}

// ApplyPlane transforms the line l.
func (m Motor) ApplyPlane(l Plane) Plane {
	return m.MultiVector().Sandwich(l.MultiVector()).Plane()
}

// Mul returns the composition m*n which applies n first.
func (m Motor) Mul(n Motor) Motor {
	return m.MultiVector().GeometricProduct(n.MultiVector()).Motor()
}

func (m Motor) Reverse() Motor { return m.MultiVector().Reverse().Motor() }

func (m Motor) Inverse() Motor { return m.MultiVector().Inverse().Motor() }

// Normalize scales m so that m m̃ = 1.
func (m Motor) Normalize() Motor { return m.MultiVector().Normalize().Motor() }

// Dual returns the dual of the motor.
func (m Motor) Dual() MotorDual { return m.MultiVector().Dual().MotorDual() }

// MotorDual is the dual of a motor with components e0, e1, e2, e012.
type MotorDual [4]float32

func (d MotorDual) MultiVector() MultiVector {
	return MultiVector{E0: d[0], E1: d[1], E2: d[2], E012: d[3]}
}

// Motor returns the motor whose dual is d.
func (d MotorDual) Motor() Motor { return d.MultiVector().Dual().Motor() }

// Point projects a onto the point components.
func (a MultiVector) Point() Point { return Point{a[E20], a[E01], a[E12]} }

// Plane projects a onto the line components.
func (a MultiVector) Plane() Plane { return Plane{a[E0], a[E1], a[E2]} }

// IdealPoint projects a onto the direction components.
func (a MultiVector) IdealPoint() IdealPoint { return IdealPoint{a[E20], a[E01]} }

// Rotor projects a onto the rotor components.
func (a MultiVector) Rotor() Rotor { return Rotor{a[Scalar], a[E12]} }

// Translator projects a onto the translator components.
func (a MultiVector) Translator() Translator { return Translator{a[Scalar], a[E01], a[E20]} }

// Motor projects a onto the even subalgebra.
func (a MultiVector) Motor() Motor { return Motor{a[Scalar], a[E01], a[E20], a[E12]} }

// MotorDual projects a onto the odd grades.
func (a MultiVector) MotorDual() MotorDual { return MotorDual{a[E0], a[E1], a[E2], a[E012]} }
