// Package element implements NavElement: one authored polygon plus
// pose, offset, and cost, owning its inflated points, world points,
// and AABB caches. Dirty-flag mutators follow mutations.go's
// convention of setters flipping a bit consumed later by a systems
// pass, rather than firing callbacks.
package element

import (
	"navmesh2d/geometry"
	"navmesh2d/mesherr"
	"navmesh2d/offset"
	"navmesh2d/validate"
)

// Type distinguishes obstacles from surfaces. The two variants share
// geometry, pose, and offset handling; only group rebuild (package
// group) and graph construction (package graph) branch on it.
type Type int

const (
	Obstacle Type = iota
	Surface
)

func (t Type) String() string {
	if t == Surface {
		return "Surface"
	}
	return "Obstacle"
}

// NavElement is the authoring entity: a convex, counter-clockwise
// polygon with a mutable pose and extra offset.
type NavElement struct {
	ID   uint64
	Type Type
	Cost float64 // defined only when Type == Surface

	originalPoints []geometry.Vector2
	position       geometry.Vector2
	rotation       float64
	extraOffset    float64

	extendedPoints []geometry.Vector2
	worldPoints    []geometry.Vector2
	intWorldPoints []geometry.IntPoint
	rect           geometry.Rect

	dirty       bool
	extendDirty bool

	GroupID    uint64
	inQuadtree bool
}

// New validates points once and constructs a NavElement in the dirty
// state so the first Refresh performs the full offset+transform.
func New(id uint64, typ Type, points []geometry.Vector2, position geometry.Vector2, rotation float64, extraOffset float64, cost float64) (*NavElement, error) {
	if err := validate.Polygon(points); err != nil {
		return nil, err
	}
	if extraOffset < 0 {
		return nil, mesherr.New(mesherr.InvalidPolygon, "extraOffset must be >= 0, got %f", extraOffset)
	}
	cloned := append([]geometry.Vector2(nil), points...)
	return &NavElement{
		ID:             id,
		Type:           typ,
		Cost:           cost,
		originalPoints: cloned,
		position:       position,
		rotation:       rotation,
		extraOffset:    extraOffset,
		dirty:          true,
		extendDirty:    true,
	}, nil
}

// Position returns the element's current pose position.
func (e *NavElement) Position() geometry.Vector2 { return e.position }

// Rotation returns the element's current pose rotation, in radians.
func (e *NavElement) Rotation() float64 { return e.rotation }

// ExtraOffset returns the element's current extra inflation.
func (e *NavElement) ExtraOffset() float64 { return e.extraOffset }

// Dirty reports whether the element has a pending refresh.
func (e *NavElement) Dirty() bool { return e.dirty }

// InQuadtree reports whether the element has been inserted into the
// spatial index at least once.
func (e *NavElement) InQuadtree() bool { return e.inQuadtree }

// MarkQuadtreeInserted records that the element now has quadtree
// membership.
func (e *NavElement) MarkQuadtreeInserted() { e.inQuadtree = true }

// SetPose updates position and rotation, flipping the dirty flag.
func (e *NavElement) SetPose(position geometry.Vector2, rotation float64) {
	if geometry.ApproxEqual(position, e.position, geometry.Epsilon) && rotation == e.rotation {
		return
	}
	e.position = position
	e.rotation = rotation
	e.dirty = true
}

// SetExtraOffset updates the extra inflation distance, flipping both
// dirty flags since the inflated points must be recomputed.
func (e *NavElement) SetExtraOffset(extra float64) error {
	if extra < 0 {
		return mesherr.New(mesherr.InvalidPolygon, "extraOffset must be >= 0, got %f", extra)
	}
	if extra == e.extraOffset {
		return nil
	}
	e.extraOffset = extra
	e.dirty = true
	e.extendDirty = true
	return nil
}

// SetCost updates the movement cost of a Surface element.
func (e *NavElement) SetCost(cost float64) {
	e.Cost = cost
}

// WorldPoints returns the element's current world-space inflated
// points. The caller receives an independent copy.
func (e *NavElement) WorldPoints() []geometry.Vector2 {
	return append([]geometry.Vector2(nil), e.worldPoints...)
}

// IntWorldPoints returns the element's current integer world points.
func (e *NavElement) IntWorldPoints() []geometry.IntPoint {
	return append([]geometry.IntPoint(nil), e.intWorldPoints...)
}

// Bounds returns a snapshot of the element's AABB. It is always
// returned by value: no caller can observe a retroactive mutation of
// the cached rectangle.
func (e *NavElement) Bounds() geometry.Rect {
	return e.rect
}

// RefreshResult reports what a Refresh call actually did, so the
// coordinator (package-level in the root facade) knows whether to
// dismantle a group and requeue.
type RefreshResult struct {
	Refreshed    bool
	PreviousRect geometry.Rect
	HadGroup     bool
	OldGroupID   uint64
}

// Refresh recomputes caches when dirty. It is idempotent and a no-op
// when the element is not dirty. It never touches the quadtree or
// group tables directly — callers apply RefreshResult.
func (e *NavElement) Refresh(agentRadius float64, accuracy geometry.Accuracy, offsetEngine offset.Engine) (RefreshResult, error) {
	if !e.dirty {
		return RefreshResult{Refreshed: false}, nil
	}

	previousRect := e.rect
	hadGroup := e.GroupID != 0
	oldGroupID := e.GroupID

	if e.extendDirty {
		if err := e.recomputeExtendedPoints(agentRadius, accuracy, offsetEngine); err != nil {
			return RefreshResult{}, err
		}
		e.extendDirty = false
	}

	e.recomputeWorldPoints()
	e.recomputeIntWorldPoints(accuracy)

	if hadGroup {
		e.GroupID = 0
	}

	e.dirty = false

	return RefreshResult{
		Refreshed:    true,
		PreviousRect: previousRect,
		HadGroup:     hadGroup,
		OldGroupID:   oldGroupID,
	}, nil
}

func (e *NavElement) recomputeExtendedPoints(agentRadius float64, accuracy geometry.Accuracy, offsetEngine offset.Engine) error {
	distance := int64((agentRadius + e.extraOffset) * float64(accuracy))
	intRing := geometry.RingToInt(e.originalPoints, accuracy)
	rings, err := offsetEngine.Offset(intRing, offset.Miter, offset.ClosedPolygon, distance)
	if err != nil {
		return err
	}
	if len(rings) != 1 {
		return mesherr.New(mesherr.EngineFailure, "offset produced %d rings, expected exactly 1 for a convex subject", len(rings))
	}
	e.extendedPoints = geometry.RingFromInt(rings[0], accuracy)
	return nil
}

func (e *NavElement) recomputeWorldPoints() {
	n := len(e.extendedPoints)
	if cap(e.worldPoints) < n {
		e.worldPoints = make([]geometry.Vector2, n)
	} else {
		e.worldPoints = e.worldPoints[:n]
	}
	var minP, maxP geometry.Vector2
	for i, p := range e.extendedPoints {
		rotated := geometry.RotateAboutOrigin(p, e.rotation)
		world := geometry.Add(rotated, e.position)
		e.worldPoints[i] = world
		if i == 0 {
			minP, maxP = world, world
			continue
		}
		if world.X < minP.X {
			minP.X = world.X
		}
		if world.Y < minP.Y {
			minP.Y = world.Y
		}
		if world.X > maxP.X {
			maxP.X = world.X
		}
		if world.Y > maxP.Y {
			maxP.Y = world.Y
		}
	}
	e.rect = geometry.Rect{Min: minP, Max: maxP}
}

func (e *NavElement) recomputeIntWorldPoints(accuracy geometry.Accuracy) {
	n := len(e.worldPoints)
	if cap(e.intWorldPoints) < n {
		e.intWorldPoints = make([]geometry.IntPoint, n)
	} else {
		e.intWorldPoints = e.intWorldPoints[:n]
	}
	for i, p := range e.worldPoints {
		e.intWorldPoints[i] = geometry.ToInt(p, accuracy)
	}
}
