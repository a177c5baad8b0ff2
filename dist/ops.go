package dist

import "github.com/chewxy/math32"

// Union of two shapes.
func Union(a, b float32) float32 { return math32.Min(a, b) }

// Intersection of two shapes.
func Intersection(a, b float32) float32 { return math32.Max(a, b) }

// Difference is a with b carved out.
func Difference(a, b float32) float32 { return math32.Max(a, -b) }

// SymmetricDifference is the region inside exactly one of a and b (XOR).
func SymmetricDifference(a, b float32) float32 {
	return Difference(Union(a, b), Intersection(a, b))
}

// SmoothUnion blends the seam between a and b with a fillet of radius ~k
// using a quadratic polynomial. k<=0 is a plain [Union].
func SmoothUnion(a, b, k float32) float32 {
	if k <= 0 {
		return Union(a, b)
	}
	h := clampf(k-math32.Abs(a-b), 0, k) / k
	return math32.Min(a, b) - h*h*k*0.25
}

// SmoothIntersection is the smooth counterpart of [Intersection]. k<=0 is a plain Intersection.
func SmoothIntersection(a, b, k float32) float32 {
	return -SmoothUnion(-a, -b, k)
}

// SmoothDifference is the smooth counterpart of [Difference]. k<=0 is a plain Difference.
func SmoothDifference(a, b, k float32) float32 {
	return SmoothIntersection(a, -b, k)
}

// Onion turns a filled shape into a shell of thickness 2r centered on its boundary.
func Onion(d, r float32) float32 { return math32.Abs(d) - r }

// Pad offsets the boundary of a shape outwards by r (inwards for negative r).
func Pad(d, r float32) float32 { return d - r }
