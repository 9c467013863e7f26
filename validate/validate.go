// Package validate implements the polygon acceptance checks run once at
// NavElement construction. Failures are fatal: the caller must not
// resubmit the offending points.
package validate

import (
	"navmesh2d/geometry"
	"navmesh2d/mesherr"
)

// Polygon rejects inputs that are too small, clockwise, or non-convex.
// A strictly counter-clockwise winding of convex input implies a
// positive signed area, so orientation and degeneracy are both caught
// by inspecting the first edge pair's cross product.
func Polygon(points []geometry.Vector2) error {
	if len(points) < 3 {
		return mesherr.New(mesherr.InvalidPolygon, "polygon has %d vertices, need at least 3", len(points))
	}

	n := len(points)
	first := geometry.Cross(
		geometry.Sub(points[1], points[0]),
		geometry.Sub(points[2%n], points[1]),
	)
	if approxZero(first) {
		return mesherr.New(mesherr.InvalidPolygon, "polygon seed edges are colinear")
	}
	if first < 0 {
		return mesherr.New(mesherr.InvalidPolygon, "polygon winds clockwise")
	}

	sawPositive := false
	sawNegative := false
	for i := 0; i < n; i++ {
		a := points[i]
		b := points[(i+1)%n]
		c := points[(i+2)%n]
		cross := geometry.Cross(geometry.Sub(b, a), geometry.Sub(c, b))
		switch {
		case cross > geometry.Epsilon:
			sawPositive = true
		case cross < -geometry.Epsilon:
			sawNegative = true
		}
		if sawPositive && sawNegative {
			return mesherr.New(mesherr.InvalidPolygon, "polygon is non-convex at vertex %d", (i+1)%n)
		}
	}

	return nil
}

func approxZero(v float64) bool {
	return v > -geometry.Epsilon && v < geometry.Epsilon
}
