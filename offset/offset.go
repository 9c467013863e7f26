// Package offset provides the polygon inflation contract and a
// concrete implementation for convex rings.
package offset

import "navmesh2d/geometry"

// JoinType names the join style used where two offset edges meet.
// Miter is the only join this pipeline ever requests.
type JoinType int

const (
	Miter JoinType = iota
)

// EndType names how the offset engine should treat the input ring.
// ClosedPolygon is the only end type this pipeline ever requests.
type EndType int

const (
	ClosedPolygon EndType = iota
)

// Engine inflates a closed integer ring by a signed distance. For a
// convex subject with positive distance, implementations must return
// exactly one output ring.
type Engine interface {
	Offset(ring []geometry.IntPoint, join JoinType, end EndType, distance int64) ([][]geometry.IntPoint, error)
}

// NewMiterEngine returns the default convex-polygon offset engine.
func NewMiterEngine() Engine {
	return MiterEngine{}
}
