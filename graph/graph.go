// Package graph implements the edge-point graph builder: walking a
// group's NavShape tree to emit NavPoints and undirected
// adjacency/connections. It builds the graph only; searching it is
// left to the caller.
package graph

import (
	"navmesh2d/geometry"
	"navmesh2d/group"
)

// NavPoint is a graph vertex placed on a NavShape contour vertex.
type NavPoint struct {
	ID                   uint64
	Position             geometry.Vector2
	Neighbours           []*NavPoint
	ForbiddenConnections map[*NavPoint]struct{}
}

// ConnectionKey is an unordered pair of NavPoint ids, stored
// canonically with the lower id first.
type ConnectionKey struct {
	Low  uint64
	High uint64
}

// ConnectionData is the payload stored per connection. Distance is the
// Euclidean length of the edge; later pathfinding stages are expected
// to attach cost information on top of this.
type ConnectionData struct {
	Distance float64
}

// Graph is the emitted NavPoint/connection structure for one settled
// rebuild.
type Graph struct {
	Points      []*NavPoint
	Connections map[ConnectionKey]ConnectionData
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{Connections: make(map[ConnectionKey]ConnectionData)}
}

// connect records an undirected edge between a and b exactly once: a
// connection key is never stored twice.
func (g *Graph) connect(a, b *NavPoint) {
	key := canonicalKey(a.ID, b.ID)
	if _, exists := g.Connections[key]; exists {
		return
	}
	g.Connections[key] = ConnectionData{Distance: geometry.Length(geometry.Sub(a.Position, b.Position))}
	a.Neighbours = append(a.Neighbours, b)
	b.Neighbours = append(b.Neighbours, a)
}

func canonicalKey(a, b uint64) ConnectionKey {
	if a < b {
		return ConnectionKey{Low: a, High: b}
	}
	return ConnectionKey{Low: b, High: a}
}

// idAllocator hands out monotonically increasing NavPoint ids across a
// full graph rebuild.
type idAllocator struct {
	next uint64
}

func (a *idAllocator) take() uint64 {
	a.next++
	return a.next
}

// Builder accumulates NavPoints and connections across every group in
// one rebuild.
type Builder struct {
	graph *Graph
	ids   idAllocator
}

// NewBuilder starts a fresh builder.
func NewBuilder() *Builder {
	return &Builder{graph: New()}
}

// AddGroup walks one group's NavShapes and appends the resulting
// NavPoints and connections to the builder's graph. Both the surface
// and obstacle shape trees are walked breadth-first, since either can
// carry hole children after a Difference rebuild (a surface clipped
// by an overlapping obstacle produces exactly this shape): a ring's
// children must always be visited regardless of which tree it came
// from, or a hole ring silently loses its NavPoints and connections.
func (b *Builder) AddGroup(g *group.Group) {
	queue := make([]group.NavShapeIndex, 0, len(g.NavSurfaces)+len(g.NavObstacles))
	queue = append(queue, g.NavSurfaces...)
	queue = append(queue, g.NavObstacles...)

	forbiddenByShape := make(map[group.NavShapeIndex]map[*NavPoint]struct{}, len(queue))
	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		shape := g.Shape(idx)
		if shape == nil {
			continue
		}
		var inherited map[*NavPoint]struct{}
		if shape.Hole {
			inherited = forbiddenByShape[shape.Parent]
		}
		forbidden := b.emitRing(shape.Points, inherited)
		forbiddenByShape[idx] = forbidden
		queue = append(queue, shape.Children...)
	}
}

// emitRing places one NavPoint per ring vertex, wires ring adjacency
// and connections, and returns the forbidden-connection set applied to
// every point on the ring: a fresh set for a new outer contour, or the
// inherited set when reuse is requested for a hole.
func (b *Builder) emitRing(points []geometry.Vector2, inherited map[*NavPoint]struct{}) map[*NavPoint]struct{} {
	if len(points) == 0 {
		return inherited
	}

	ring := make([]*NavPoint, len(points))
	for i, p := range points {
		np := &NavPoint{ID: b.ids.take(), Position: p}
		ring[i] = np
		b.graph.Points = append(b.graph.Points, np)
	}

	forbidden := inherited
	if forbidden == nil {
		forbidden = make(map[*NavPoint]struct{}, len(ring))
	}
	for _, np := range ring {
		forbidden[np] = struct{}{}
	}
	for _, np := range ring {
		np.ForbiddenConnections = forbidden
	}

	n := len(ring)
	for i := 0; i < n; i++ {
		b.graph.connect(ring[i], ring[(i+1)%n])
	}

	return forbidden
}

// Build finalizes and returns the accumulated graph.
func (b *Builder) Build() *Graph {
	return b.graph
}
