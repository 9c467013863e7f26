// Package clip provides the Boolean polygon operation contract and a
// concrete implementation backed by github.com/tdewolff/canvas's
// sweep-line path algebra.
package clip

import "navmesh2d/geometry"

// FillRule names the fill rule the clip engine applies. NonZero is the
// only rule this pipeline ever requests.
type FillRule int

const (
	NonZero FillRule = iota
)

// Op names a Boolean operation.
type Op int

const (
	Union Op = iota
	Difference
)

// ShapeNode is one node of the polygon contour tree produced by a
// Boolean operation. The tree root is synthetic (empty Points, Hole
// false); its direct children are outer contours, their children are
// holes, and holes' children are outer contours again.
type ShapeNode struct {
	Points   []geometry.IntPoint
	Hole     bool
	Children []*ShapeNode
}

// Engine executes Boolean operations over sets of subject and clip
// rings, producing a contour tree.
type Engine interface {
	Union(subjects [][]geometry.IntPoint, fill FillRule) (*ShapeNode, error)
	Difference(subjects, clips [][]geometry.IntPoint, fill FillRule) (*ShapeNode, error)
}

// NewCanvasEngine returns the default tdewolff/canvas-backed clip engine.
func NewCanvasEngine() Engine {
	return CanvasEngine{}
}
