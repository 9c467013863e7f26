package offset

import (
	"math"

	"navmesh2d/geometry"
	"navmesh2d/mesherr"
)

// MiterEngine inflates a convex, counter-clockwise ring by translating
// each edge along its outward normal and re-intersecting consecutive
// offset edges at a miter join. It is exact for the convex, positive
// distance case this pipeline exclusively drives; it does not attempt
// to handle concave input or self-intersection, which the validator
// (package validate) already rejects upstream.
type MiterEngine struct{}

// Offset implements Engine.
func (MiterEngine) Offset(ring []geometry.IntPoint, join JoinType, end EndType, distance int64) ([][]geometry.IntPoint, error) {
	if len(ring) < 3 {
		return nil, mesherr.New(mesherr.EngineFailure, "offset requires at least 3 vertices, got %d", len(ring))
	}

	floatRing := make([]geometry.Vector2, len(ring))
	for i, p := range ring {
		floatRing[i] = geometry.Vector2{X: float64(p.X), Y: float64(p.Y)}
	}

	n := len(floatRing)
	d := float64(distance)

	type edgeLine struct {
		point  geometry.Vector2
		dir    geometry.Vector2
		normal geometry.Vector2
	}

	edges := make([]edgeLine, n)
	for i := 0; i < n; i++ {
		a := floatRing[i]
		b := floatRing[(i+1)%n]
		dir := geometry.Sub(b, a)
		normal := geometry.Normalise(geometry.Vector2{X: dir.Y, Y: -dir.X})
		edges[i] = edgeLine{
			point:  geometry.Add(a, geometry.Scale(normal, d)),
			dir:    dir,
			normal: normal,
		}
	}

	out := make([]geometry.IntPoint, n)
	for i := 0; i < n; i++ {
		prev := edges[(i-1+n)%n]
		curr := edges[i]
		hit, ok := intersectLines(prev.point, prev.dir, curr.point, curr.dir)
		if !ok {
			// Parallel edges (colinear vertex survived validation as a
			// straight run): fall back to the simple offset point.
			hit = geometry.Add(floatRing[i], geometry.Scale(curr.normal, d))
		}
		out[i] = geometry.IntPoint{
			X: int64(math.Round(hit.X)),
			Y: int64(math.Round(hit.Y)),
		}
	}

	return [][]geometry.IntPoint{out}, nil
}

// intersectLines finds the intersection of line (p1, d1) with line
// (p2, d2), each given as a point and direction vector.
func intersectLines(p1, d1, p2, d2 geometry.Vector2) (geometry.Vector2, bool) {
	denom := geometry.Cross(d1, d2)
	if math.Abs(denom) < geometry.Epsilon {
		return geometry.Vector2{}, false
	}
	diff := geometry.Sub(p2, p1)
	t := geometry.Cross(diff, d2) / denom
	return geometry.Add(p1, geometry.Scale(d1, t)), true
}
