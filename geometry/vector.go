// Package geometry provides the 2D vector, rectangle, and integer-point
// primitives shared by the mesh rebuild pipeline. It mirrors the plain,
// method-light style the rest of the module builds on: small free
// functions over passive structs rather than a heavyweight vector class.
package geometry

import "math"

// Epsilon is the default tolerance used by ApproxEqual.
const Epsilon = 1e-9

// Vector2 is a 2D point or displacement in world units.
type Vector2 struct {
	X float64
	Y float64
}

// Add returns a+b.
func Add(a, b Vector2) Vector2 {
	return Vector2{X: a.X + b.X, Y: a.Y + b.Y}
}

// Sub returns a-b.
func Sub(a, b Vector2) Vector2 {
	return Vector2{X: a.X - b.X, Y: a.Y - b.Y}
}

// Scale returns v scaled by s.
func Scale(v Vector2, s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Cross returns the z-component of the 3D cross product of a and b.
func Cross(a, b Vector2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// Dot returns the dot product of a and b.
func Dot(a, b Vector2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Length returns the Euclidean length of v.
func Length(v Vector2) float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalise returns v scaled to unit length, or the zero vector if v is
// (near) zero length.
func Normalise(v Vector2) Vector2 {
	l := Length(v)
	if l < Epsilon {
		return Vector2{}
	}
	return Scale(v, 1/l)
}

// Perp returns the normalised perpendicular of v, rotated 90 degrees
// counter-clockwise.
func Perp(v Vector2) Vector2 {
	return Normalise(Vector2{X: -v.Y, Y: v.X})
}

// RotateAboutOrigin rotates v by angleRadians about the origin.
func RotateAboutOrigin(v Vector2, angleRadians float64) Vector2 {
	sin, cos := math.Sincos(angleRadians)
	return Vector2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// ApproxEqual reports whether a and b are within eps of each other on
// both axes.
func ApproxEqual(a, b Vector2, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

// SignedArea returns twice the signed area of the polygon described by
// points (shoelace formula), positive for counter-clockwise winding.
func SignedArea(points []Vector2) float64 {
	if len(points) < 3 {
		return 0
	}
	sum := 0.0
	for i := range points {
		j := (i + 1) % len(points)
		sum += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return sum
}

// PointInPolygon reports whether p lies inside the closed ring using the
// even-odd rule. Used only for hole/contour nesting, not fill semantics
// of the clip engine itself.
func PointInPolygon(p Vector2, ring []Vector2) bool {
	inside := false
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}
