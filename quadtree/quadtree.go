// Package quadtree implements a region quadtree AABB spatial index:
// insert/remove/move/rect-query over axis-aligned bounding rectangles,
// with a side-table for O(1) removal.
package quadtree

import (
	"navmesh2d/geometry"
	"navmesh2d/mesherr"
)

// MinQuadrantSide halts subdivision once a node's rectangle would
// shrink below this size on either axis.
const MinQuadrantSide = 1.0

// Item is anything the tree can index by a stable identity and an
// AABB.
type Item interface {
	comparable
}

type entry[T Item] struct {
	item T
	rect geometry.Rect
}

type node[T Item] struct {
	bounds   geometry.Rect
	depth    int
	entries  []entry[T]
	children [4]*node[T]
}

func newNode[T Item](bounds geometry.Rect, depth int) *node[T] {
	return &node[T]{bounds: bounds, depth: depth}
}

// Tree is a region quadtree over rectangles of type T's AABB.
type Tree[T Item] struct {
	root  *node[T]
	sides map[T]*node[T]
}

// New constructs a tree rooted at bounds. bounds should already be
// scaled to comfortably contain every element expected to be inserted.
func New[T Item](bounds geometry.Rect) *Tree[T] {
	return &Tree[T]{
		root:  newNode[T](bounds, 0),
		sides: make(map[T]*node[T]),
	}
}

// Insert adds item with the given rect. Fails if rect has zero extent.
func (t *Tree[T]) Insert(item T, rect geometry.Rect) error {
	if rect.Empty() {
		return mesherr.New(mesherr.DegenerateBounds, "cannot insert item with zero-extent rect")
	}
	t.insertInto(t.root, item, rect)
	return nil
}

func (t *Tree[T]) insertInto(n *node[T], item T, rect geometry.Rect) *node[T] {
	if n.children[0] != nil {
		if child := childContaining(n, rect); child != nil {
			return t.insertInto(child, item, rect)
		}
	}
	n.entries = append(n.entries, entry[T]{item: item, rect: rect})
	t.sides[item] = n
	if n.children[0] == nil && len(n.entries) > 1 && canSubdivide(n.bounds) {
		t.trySubdivide(n)
	}
	return n
}

func canSubdivide(bounds geometry.Rect) bool {
	return bounds.Width()/2 >= MinQuadrantSide && bounds.Height()/2 >= MinQuadrantSide
}

func (t *Tree[T]) trySubdivide(n *node[T]) {
	subdivide(n)
	kept := n.entries[:0]
	for _, e := range n.entries {
		if child := childContaining(n, e.rect); child != nil {
			t.insertInto(child, e.item, e.rect)
		} else {
			kept = append(kept, e)
		}
	}
	n.entries = kept
}

func subdivide[T Item](n *node[T]) {
	if n.children[0] != nil {
		return
	}
	c := n.bounds.Center()
	n.children[0] = newNode[T](geometry.Rect{Min: n.bounds.Min, Max: c}, n.depth+1)
	n.children[1] = newNode[T](geometry.Rect{Min: geometry.Vector2{X: c.X, Y: n.bounds.Min.Y}, Max: geometry.Vector2{X: n.bounds.Max.X, Y: c.Y}}, n.depth+1)
	n.children[2] = newNode[T](geometry.Rect{Min: geometry.Vector2{X: n.bounds.Min.X, Y: c.Y}, Max: geometry.Vector2{X: c.X, Y: n.bounds.Max.Y}}, n.depth+1)
	n.children[3] = newNode[T](geometry.Rect{Min: c, Max: n.bounds.Max}, n.depth+1)
}

func childContaining[T Item](n *node[T], rect geometry.Rect) *node[T] {
	for _, c := range n.children {
		if c != nil && c.bounds.Contains(rect) {
			return c
		}
	}
	return nil
}

// Remove deletes item via the side-table. Reports whether it was
// present.
func (t *Tree[T]) Remove(item T) bool {
	n, ok := t.sides[item]
	if !ok {
		return false
	}
	for i, e := range n.entries {
		if e.item == item {
			n.entries = append(n.entries[:i], n.entries[i+1:]...)
			break
		}
	}
	delete(t.sides, item)
	return true
}

// Move relocates item to newRect. Equivalent to Remove followed by
// Insert.
func (t *Tree[T]) Move(item T, newRect geometry.Rect) error {
	t.Remove(item)
	return t.Insert(item, newRect)
}

// QueryIntersecting appends every indexed item whose AABB intersects
// rect to out, descending into every child whose quadrant intersects
// rect. No ordering guarantee is made beyond the tree's own stable
// depth-first traversal order.
func (t *Tree[T]) QueryIntersecting(rect geometry.Rect, out []T) []T {
	if rect.Empty() {
		return out
	}
	return queryNode(t.root, rect, out)
}

func queryNode[T Item](n *node[T], rect geometry.Rect, out []T) []T {
	if n == nil || !n.bounds.Intersects(rect) {
		return out
	}
	for _, e := range n.entries {
		if e.rect.Intersects(rect) {
			out = append(out, e.item)
		}
	}
	for _, c := range n.children {
		out = queryNode(c, rect, out)
	}
	return out
}

// AnyIntersecting reports whether any indexed item's AABB intersects
// rect, short-circuiting on the first match.
func (t *Tree[T]) AnyIntersecting(rect geometry.Rect) bool {
	if rect.Empty() {
		return false
	}
	return anyNode(t.root, rect)
}

func anyNode[T Item](n *node[T], rect geometry.Rect) bool {
	if n == nil || !n.bounds.Intersects(rect) {
		return false
	}
	for _, e := range n.entries {
		if e.rect.Intersects(rect) {
			return true
		}
	}
	for _, c := range n.children {
		if anyNode(c, rect) {
			return true
		}
	}
	return false
}

// Clear drops all nodes and side-table entries.
func (t *Tree[T]) Clear() {
	t.root = newNode[T](t.root.bounds, 0)
	t.sides = make(map[T]*node[T])
}

// Reindex rebuilds the tree under a new root rectangle, re-inserting
// every currently known item. Used when the world rectangle itself is
// mutated.
func (t *Tree[T]) Reindex(bounds geometry.Rect) {
	old := t.sides
	rects := make(map[T]geometry.Rect, len(old))
	for item, n := range old {
		for _, e := range n.entries {
			if e.item == item {
				rects[item] = e.rect
				break
			}
		}
	}
	t.root = newNode[T](bounds, 0)
	t.sides = make(map[T]*node[T])
	for item, rect := range rects {
		t.Insert(item, rect)
	}
}
