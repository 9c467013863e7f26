// Package group implements ElementGroup: a connected component of
// mutually-overlapping elements, plus the per-group polygon Booleans
// (NavShape tree) derived from its members.
//
// NavShape nodes live in a flat arena owned by the group rather than a
// pointer graph: children are indices into the same slice, so a
// rebuild is a single truncate rather than a cycle of pointers to
// unlink.
package group

import (
	"navmesh2d/clip"
	"navmesh2d/element"
	"navmesh2d/geometry"
	"navmesh2d/mesherr"
)

// NavShapeIndex is a 1-based index into a Group's shape arena; 0 means
// "no shape" / root.
type NavShapeIndex uint32

// NavShape is a node in a polygon contour tree.
type NavShape struct {
	Points   []geometry.Vector2
	Hole     bool
	Parent   NavShapeIndex
	Children []NavShapeIndex
	Owner    *element.NavElement // originating element for fast-path single-shape groups; nil after a boolean rebuild
}

// Group is a connected component of the AABB-overlap graph over
// current elements.
type Group struct {
	ID uint64

	obstacles map[*element.NavElement]struct{}
	surfaces  map[*element.NavElement]struct{}

	NavObstacles []NavShapeIndex
	NavSurfaces  []NavShapeIndex
	shapes       []NavShape
}

// New constructs an empty group with the given id.
func New(id uint64) *Group {
	return &Group{
		ID:        id,
		obstacles: make(map[*element.NavElement]struct{}),
		surfaces:  make(map[*element.NavElement]struct{}),
	}
}

// Add inserts e into the group's obstacle or surface set and sets its
// GroupID.
func (g *Group) Add(e *element.NavElement) {
	if e.Type == element.Surface {
		g.surfaces[e] = struct{}{}
	} else {
		g.obstacles[e] = struct{}{}
	}
	e.GroupID = g.ID
}

// Remove drops e from the group. Reports whether the group is now
// empty and should be deleted from the owning table.
func (g *Group) Remove(e *element.NavElement) (empty bool) {
	delete(g.obstacles, e)
	delete(g.surfaces, e)
	if e.GroupID == g.ID {
		e.GroupID = 0
	}
	return len(g.obstacles) == 0 && len(g.surfaces) == 0
}

// Empty reports whether the group currently has no members.
func (g *Group) Empty() bool {
	return len(g.obstacles) == 0 && len(g.surfaces) == 0
}

// Members returns every element currently owned by the group.
func (g *Group) Members() []*element.NavElement {
	out := make([]*element.NavElement, 0, len(g.obstacles)+len(g.surfaces))
	for e := range g.obstacles {
		out = append(out, e)
	}
	for e := range g.surfaces {
		out = append(out, e)
	}
	return out
}

// Shape resolves an index into the group's arena. Returns nil for the
// zero index.
func (g *Group) Shape(idx NavShapeIndex) *NavShape {
	if idx == 0 || int(idx) > len(g.shapes) {
		return nil
	}
	return &g.shapes[idx-1]
}

// Rebuild reconstructs derived shapes from current members (spec
// §4.4). Previously built shapes are discarded (arena truncated to
// zero) before the new tree is assembled.
func (g *Group) Rebuild(engine clip.Engine, accuracy geometry.Accuracy) error {
	g.shapes = g.shapes[:0]
	g.NavObstacles = nil
	g.NavSurfaces = nil

	obstacles := make([]*element.NavElement, 0, len(g.obstacles))
	for e := range g.obstacles {
		obstacles = append(obstacles, e)
	}
	surfaces := make([]*element.NavElement, 0, len(g.surfaces))
	for e := range g.surfaces {
		surfaces = append(surfaces, e)
	}

	switch {
	case len(obstacles) == 1 && len(surfaces) == 0:
		idx := g.appendLeaf(obstacles[0].WorldPoints(), false, 0, obstacles[0])
		g.NavObstacles = []NavShapeIndex{idx}
		return nil
	case len(obstacles) == 0 && len(surfaces) > 0:
		for _, s := range surfaces {
			idx := g.appendLeaf(s.WorldPoints(), false, 0, s)
			g.NavSurfaces = append(g.NavSurfaces, idx)
		}
		return nil
	}

	var obstacleRings [][]geometry.IntPoint
	for _, o := range obstacles {
		obstacleRings = append(obstacleRings, o.IntWorldPoints())
	}

	if len(obstacleRings) > 0 {
		tree, err := engine.Union(obstacleRings, clip.NonZero)
		if err != nil {
			return err
		}
		g.NavObstacles = g.appendTree(tree, 0, accuracy)
	}

	for _, s := range surfaces {
		subject := [][]geometry.IntPoint{s.IntWorldPoints()}
		tree, err := engine.Difference(subject, obstacleRings, clip.NonZero)
		if err != nil {
			return err
		}
		g.NavSurfaces = append(g.NavSurfaces, g.appendTree(tree, 0, accuracy)...)
	}

	if len(g.shapes) == 0 {
		return mesherr.New(mesherr.EngineFailure, "group %d rebuild produced no shapes", g.ID)
	}
	return nil
}

func (g *Group) appendLeaf(points []geometry.Vector2, hole bool, parent NavShapeIndex, owner *element.NavElement) NavShapeIndex {
	g.shapes = append(g.shapes, NavShape{Points: points, Hole: hole, Parent: parent, Owner: owner})
	idx := NavShapeIndex(len(g.shapes))
	if parent != 0 {
		p := &g.shapes[parent-1]
		p.Children = append(p.Children, idx)
	}
	return idx
}

// appendTree flattens a clip.ShapeNode tree (rooted at a synthetic
// container) into the arena, returning the indices of the synthetic
// root's direct children.
func (g *Group) appendTree(node *clip.ShapeNode, parent NavShapeIndex, accuracy geometry.Accuracy) []NavShapeIndex {
	var tops []NavShapeIndex
	for _, child := range node.Children {
		idx := g.appendNode(child, parent, accuracy)
		tops = append(tops, idx)
	}
	return tops
}

func (g *Group) appendNode(node *clip.ShapeNode, parent NavShapeIndex, accuracy geometry.Accuracy) NavShapeIndex {
	points := geometry.RingFromInt(node.Points, accuracy)
	idx := g.appendLeaf(points, node.Hole, parent, nil)
	for _, child := range node.Children {
		g.appendNode(child, idx, accuracy)
	}
	return idx
}
