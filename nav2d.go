// Package navmesh2d is the facade that owns every NavElement, every
// ElementGroup, the spatial index, and the navigation graph, and
// exposes the single settlement step that reconciles them: one struct
// owning every live entity table plus the systems that mutate them,
// edits flip state and enqueue work, and a single method drains that
// work to quiescence.
package navmesh2d

import (
	"context"
	"math"

	"navmesh2d/clip"
	"navmesh2d/element"
	"navmesh2d/geometry"
	"navmesh2d/graph"
	"navmesh2d/group"
	"navmesh2d/logging"
	"navmesh2d/mesherr"
	"navmesh2d/offset"
	"navmesh2d/quadtree"
)

// worldAreaFloor is the minimum acceptable authored world area.
const worldAreaFloor = 1.0

// quadtreeScale is how far the quadtree root is scaled, about the
// world rectangle's centre, beyond the authored corners, so an
// element pose update near the world edge never needs a reindex.
const quadtreeScale = 2.0

// hexagonSides is the vertex count used to approximate a disc obstacle
// or surface.
const hexagonSides = 6

// hexagonRotation offsets the first hexagon vertex by 30 degrees so a
// flat edge, not a vertex, faces along the positive X axis.
const hexagonRotation = math.Pi / 6

// Nav2D owns the full incremental mesh rebuild pipeline over a bounded
// planar world.
type Nav2D struct {
	worldRect   geometry.Rect
	agentRadius float64
	accuracy    geometry.Accuracy

	offsetEngine offset.Engine
	clipEngine   clip.Engine
	publisher    logging.Publisher

	elements      map[uint64]*element.NavElement
	nextElementID uint64

	groups      map[uint64]*group.Group
	nextGroupID uint64

	tree *quadtree.Tree[*element.NavElement]

	graph *graph.Graph

	regroupQueue []*element.NavElement
	rebuildSet   map[uint64]struct{}

	seq uint64
}

// Option configures a Nav2D at construction time.
type Option func(*Nav2D)

// WithOffsetEngine overrides the default miter offset engine.
func WithOffsetEngine(e offset.Engine) Option {
	return func(n *Nav2D) { n.offsetEngine = e }
}

// WithClipEngine overrides the default canvas-backed clip engine.
func WithClipEngine(e clip.Engine) Option {
	return func(n *Nav2D) { n.clipEngine = e }
}

// WithPublisher attaches a logging.Publisher that receives lifecycle
// events as the mesh settles.
func WithPublisher(p logging.Publisher) Option {
	return func(n *Nav2D) { n.publisher = p }
}

// NewNav2D constructs a Nav2D over the given world rectangle. Rejects a
// rectangle with area below one unit^2.
func NewNav2D(minCorner, maxCorner geometry.Vector2, agentRadius float64, accuracy geometry.Accuracy, opts ...Option) (*Nav2D, error) {
	worldRect := geometry.Rect{Min: minCorner, Max: maxCorner}
	if worldRect.Width()*worldRect.Height() < worldAreaFloor {
		return nil, mesherr.New(mesherr.InvalidWorld, "world area %.4f is below the %.1f unit^2 floor", worldRect.Width()*worldRect.Height(), worldAreaFloor)
	}
	if !accuracy.Valid() {
		accuracy = DefaultAccuracy
	}
	if agentRadius < 0 {
		agentRadius = 0
	}

	n := &Nav2D{
		worldRect:    worldRect,
		agentRadius:  agentRadius,
		accuracy:     accuracy,
		offsetEngine: offset.NewMiterEngine(),
		clipEngine:   clip.NewCanvasEngine(),
		publisher:    logging.NopPublisher(),
		elements:     make(map[uint64]*element.NavElement),
		groups:       make(map[uint64]*group.Group),
		graph:        graph.New(),
		rebuildSet:   make(map[uint64]struct{}),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.tree = quadtree.New[*element.NavElement](worldRect.ScaleAboutCenter(quadtreeScale))
	return n, nil
}

func (n *Nav2D) publish(evt logging.EventType, actor logging.EntityRef, severity logging.Severity, payload any) {
	n.seq++
	n.publisher.Publish(context.Background(), logging.Event{
		Type:     evt,
		Seq:      n.seq,
		Actor:    actor,
		Severity: severity,
		Payload:  payload,
	})
}

// AddObstacle authors a new Obstacle NavElement from an explicit
// convex, counter-clockwise polygon.
func (n *Nav2D) AddObstacle(points []geometry.Vector2, position geometry.Vector2, rotation, extraOffset float64) (*element.NavElement, error) {
	return n.add(element.Obstacle, points, position, rotation, extraOffset, 0)
}

// AddObstacleDisc synthesises a regular hexagon approximating a disc
// of the given radius, rotated 30 degrees. The hexagon's apothem, not
// its circumradius, is set to radius, so the hexagon fully covers the
// disc it approximates instead of being inscribed inside it: a
// radius-1 disc yields a hexagon of circumradius ≈ 2/√3.
func (n *Nav2D) AddObstacleDisc(radius float64, position geometry.Vector2, extraOffset float64) (*element.NavElement, error) {
	return n.add(element.Obstacle, regularPolygon(hexagonCircumradius(radius), hexagonSides, hexagonRotation), position, 0, extraOffset, 0)
}

// AddSurface authors a new Surface NavElement from an explicit convex,
// counter-clockwise polygon.
func (n *Nav2D) AddSurface(points []geometry.Vector2, position geometry.Vector2, rotation, cost, extraOffset float64) (*element.NavElement, error) {
	return n.add(element.Surface, points, position, rotation, extraOffset, cost)
}

// AddSurfaceDisc synthesises a hexagonal surface approximating a disc
// of the given radius, using the same apothem-equals-radius sizing as
// AddObstacleDisc.
func (n *Nav2D) AddSurfaceDisc(radius float64, position geometry.Vector2, cost, extraOffset float64) (*element.NavElement, error) {
	return n.add(element.Surface, regularPolygon(hexagonCircumradius(radius), hexagonSides, hexagonRotation), position, 0, extraOffset, cost)
}

func (n *Nav2D) add(typ element.Type, points []geometry.Vector2, position geometry.Vector2, rotation, extraOffset, cost float64) (*element.NavElement, error) {
	n.nextElementID++
	e, err := element.New(n.nextElementID, typ, points, position, rotation, extraOffset, cost)
	if err != nil {
		n.nextElementID--
		return nil, err
	}
	n.elements[e.ID] = e
	n.publish(logging.ElementDirty, logging.EntityRef{ID: e.ID, Kind: logging.EntityKindElement}, logging.SeverityDebug, nil)
	return e, nil
}

// RemoveNavElement detaches e from the quadtree and its group, deletes
// it, and settles the mesh before returning. Idempotent: removing an
// unknown or already-removed element is a no-op.
func (n *Nav2D) RemoveNavElement(e *element.NavElement) error {
	if e == nil {
		return nil
	}
	if _, ok := n.elements[e.ID]; !ok {
		return nil
	}

	if e.GroupID != 0 {
		n.dismantleGroup(e.GroupID)
	}
	n.tree.Remove(e)
	delete(n.elements, e.ID)

	n.regroupQueue = removeFromQueue(n.regroupQueue, e)

	return n.Update()
}

// hexagonCircumradius converts a disc radius into the circumradius of
// the regular hexagon whose apothem equals that radius, so the
// synthesised hexagon covers the disc rather than sitting inside it.
func hexagonCircumradius(radius float64) float64 {
	return radius / math.Cos(math.Pi/hexagonSides)
}

func regularPolygon(radius float64, sides int, startAngle float64) []geometry.Vector2 {
	points := make([]geometry.Vector2, sides)
	step := 2 * math.Pi / float64(sides)
	for i := 0; i < sides; i++ {
		angle := startAngle + step*float64(i)
		points[i] = geometry.Vector2{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
	}
	return points
}

func removeFromQueue(queue []*element.NavElement, e *element.NavElement) []*element.NavElement {
	out := queue[:0]
	for _, q := range queue {
		if q != e {
			out = append(out, q)
		}
	}
	return out
}

// Obstacles returns every currently registered Obstacle element.
func (n *Nav2D) Obstacles() []*element.NavElement {
	return n.elementsOfType(element.Obstacle)
}

// Surfaces returns every currently registered Surface element.
func (n *Nav2D) Surfaces() []*element.NavElement {
	return n.elementsOfType(element.Surface)
}

func (n *Nav2D) elementsOfType(typ element.Type) []*element.NavElement {
	out := make([]*element.NavElement, 0, len(n.elements))
	for _, e := range n.elements {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

// NavPoints returns the navigation graph's vertices as of the last
// settled Update().
func (n *Nav2D) NavPoints() []*graph.NavPoint {
	return n.graph.Points
}

// Connections returns the navigation graph's connection table as of
// the last settled Update().
func (n *Nav2D) Connections() map[graph.ConnectionKey]graph.ConnectionData {
	return n.graph.Connections
}

// Group returns the group with the given id, or nil if it no longer
// exists.
func (n *Nav2D) Group(id uint64) *group.Group {
	return n.groups[id]
}
