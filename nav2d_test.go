package navmesh2d

import (
	"math"
	"testing"

	"navmesh2d/geometry"
	"navmesh2d/group"
	"navmesh2d/mesherr"
)

func square(cx, cy, half float64) []geometry.Vector2 {
	return []geometry.Vector2{
		{X: cx - half, Y: cy - half},
		{X: cx + half, Y: cy - half},
		{X: cx + half, Y: cy + half},
		{X: cx - half, Y: cy + half},
	}
}

func newTestMesh(t *testing.T, agentRadius float64) *Nav2D {
	t.Helper()
	mesh, err := NewNav2D(geometry.Vector2{X: -5, Y: -5}, geometry.Vector2{X: 5, Y: 5}, agentRadius, DefaultAccuracy)
	if err != nil {
		t.Fatalf("unexpected error constructing Nav2D: %v", err)
	}
	return mesh
}

func TestNewNav2DRejectsUndersizedWorld(t *testing.T) {
	_, err := NewNav2D(geometry.Vector2{X: 0, Y: 0}, geometry.Vector2{X: 0.5, Y: 0.5}, 0, DefaultAccuracy)
	if err == nil {
		t.Fatalf("expected an error for a world rectangle under 1 unit^2")
	}
	meshErr, ok := err.(*mesherr.MeshError)
	if !ok || meshErr.Kind() != mesherr.InvalidWorld {
		t.Fatalf("expected InvalidWorld, got %v", err)
	}
}

func TestSoloSquareYieldsFourNavPoints(t *testing.T) {
	mesh := newTestMesh(t, 0.5)
	if _, err := mesh.AddObstacle(square(0, 0, 0.5), geometry.Vector2{}, 0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mesh.Update(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mesh.NavPoints()) != 4 {
		t.Fatalf("expected 4 nav points, got %d", len(mesh.NavPoints()))
	}
	if len(mesh.Connections()) != 4 {
		t.Fatalf("expected 4 connections, got %d", len(mesh.Connections()))
	}
}

func TestTwoOverlappingObstaclesMergeIntoOneGroup(t *testing.T) {
	mesh := newTestMesh(t, 0)
	a, _ := mesh.AddObstacle(square(0, 0, 0.5), geometry.Vector2{}, 0, 0)
	b, _ := mesh.AddObstacle(square(0, 0, 0.5), geometry.Vector2{X: 0.5, Y: 0}, 0, 0)
	if err := mesh.Update(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.GroupID == 0 || a.GroupID != b.GroupID {
		t.Fatalf("expected both overlapping obstacles to share a group id, got %d and %d", a.GroupID, b.GroupID)
	}
	if len(mesh.NavPoints()) != 4 {
		t.Fatalf("expected 4 nav points for the merged rectangle, got %d", len(mesh.NavPoints()))
	}
}

func TestSeparatingMergedPairSplitsIntoTwoGroups(t *testing.T) {
	mesh := newTestMesh(t, 0)
	a, _ := mesh.AddObstacle(square(0, 0, 0.5), geometry.Vector2{}, 0, 0)
	b, _ := mesh.AddObstacle(square(0, 0, 0.5), geometry.Vector2{X: 0.5, Y: 0}, 0, 0)
	if err := mesh.Update(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b.SetPose(geometry.Vector2{X: 3, Y: 0}, 0)
	if err := mesh.Update(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.GroupID == b.GroupID {
		t.Fatalf("expected separated obstacles to land in different groups")
	}
	if len(mesh.NavPoints()) != 8 {
		t.Fatalf("expected 8 nav points across two disjoint squares, got %d", len(mesh.NavPoints()))
	}
	if len(mesh.Connections()) != 8 {
		t.Fatalf("expected 8 connections across two disjoint squares, got %d", len(mesh.Connections()))
	}
}

// A surface clipped by an obstacle it fully contains exposes a hole
// ring rather than losing area silently.
func TestSurfaceClippedByObstacleExposesHole(t *testing.T) {
	mesh := newTestMesh(t, 0)
	if _, err := mesh.AddSurface(square(0, 0, 2), geometry.Vector2{}, 0, 2, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := mesh.AddObstacle(square(0, 0, 0.5), geometry.Vector2{}, 0, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mesh.Update(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mesh.groups) != 1 {
		t.Fatalf("expected one group, got %d", len(mesh.groups))
	}
	var g *group.Group
	for _, candidate := range mesh.groups {
		g = candidate
	}
	if len(g.NavObstacles) != 1 || len(g.NavSurfaces) != 1 {
		t.Fatalf("expected one obstacle shape and one surface shape, got %d/%d", len(g.NavObstacles), len(g.NavSurfaces))
	}
	outer := g.Shape(g.NavSurfaces[0])
	if len(outer.Children) != 1 {
		t.Fatalf("expected the surface to carry exactly one hole, got %d", len(outer.Children))
	}
}

// A unit-radius disc at the origin becomes a regular hexagon whose
// apothem, not circumradius, is 1 — so its circumradius is
// 1/cos(30°) ≈ 2/√3, rotated 30° from the X axis.
func TestDiscSynthesisesHexagon(t *testing.T) {
	mesh := newTestMesh(t, 0)
	if _, err := mesh.AddObstacleDisc(1, geometry.Vector2{}, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mesh.Update(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	points := mesh.NavPoints()
	if len(points) != 6 {
		t.Fatalf("expected 6 nav points for a hexagon-approximated disc, got %d", len(points))
	}

	const wantCircumradius = 2 / math.Sqrt(3) // apothem 1, 6 sides
	const tolerance = 0.02

	seenAngles := make([]float64, 0, 6)
	for _, p := range points {
		radius := math.Hypot(p.Position.X, p.Position.Y)
		if math.Abs(radius-wantCircumradius) > tolerance {
			t.Fatalf("nav point %v at radius %.4f, want %.4f", p.Position, radius, wantCircumradius)
		}
		seenAngles = append(seenAngles, math.Atan2(p.Position.Y, p.Position.X))
	}

	for _, angle := range seenAngles {
		// Every vertex must land on 30° + k*60°: normalise into [0, 60°)
		// after subtracting the 30° rotation and check it lands near 0.
		normalised := math.Mod(angle-math.Pi/6+4*math.Pi, math.Pi/3)
		if normalised > tolerance && normalised < math.Pi/3-tolerance {
			t.Fatalf("nav point angle %.4f rad not aligned to a 30°+k*60° vertex", angle)
		}
	}
}

func TestRemoveObstacleRejoinsSurvivorGroup(t *testing.T) {
	mesh := newTestMesh(t, 0)
	a, _ := mesh.AddObstacle(square(0, 0, 0.5), geometry.Vector2{}, 0, 0)
	_, _ = mesh.AddObstacle(square(0, 0, 0.5), geometry.Vector2{X: 0.5, Y: 0}, 0, 0)
	if err := mesh.Update(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mesh.RemoveNavElement(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mesh.groups) != 1 {
		t.Fatalf("expected one surviving group, got %d", len(mesh.groups))
	}
	if len(mesh.NavPoints()) != 4 {
		t.Fatalf("expected 4 nav points for the surviving square, got %d", len(mesh.NavPoints()))
	}
}

func TestInvalidInputRejectedAtConstruction(t *testing.T) {
	mesh := newTestMesh(t, 0)
	if _, err := mesh.AddObstacle([]geometry.Vector2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}, geometry.Vector2{}, 0, 0); err == nil {
		t.Fatalf("expected a clockwise quad to be rejected")
	}
	if _, err := mesh.AddObstacle([]geometry.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}}, geometry.Vector2{}, 0, 0); err == nil {
		t.Fatalf("expected a 2-vertex polygon to be rejected")
	}
	dart := []geometry.Vector2{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 4}}
	if _, err := mesh.AddObstacle(dart, geometry.Vector2{}, 0, 0); err == nil {
		t.Fatalf("expected a non-convex quad to be rejected")
	}
}

// A settled Update() followed immediately by another is a no-op.
func TestUpdateIsIdempotentWhenSettled(t *testing.T) {
	mesh := newTestMesh(t, 0.5)
	mesh.AddObstacle(square(0, 0, 0.5), geometry.Vector2{}, 0, 0)
	if err := mesh.Update(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pointsBefore := len(mesh.NavPoints())
	if err := mesh.Update(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mesh.NavPoints()) != pointsBefore {
		t.Fatalf("expected a settled Update() to leave the graph unchanged")
	}
}

// Moving an element and moving it back restores its world points.
func TestMoveAndMoveBackRestoresWorldPoints(t *testing.T) {
	mesh := newTestMesh(t, 0.5)
	e, _ := mesh.AddObstacle(square(0, 0, 0.5), geometry.Vector2{}, 0, 0)
	mesh.Update()
	before := e.WorldPoints()

	e.SetPose(geometry.Vector2{X: 2, Y: -3}, 0)
	mesh.Update()
	e.SetPose(geometry.Vector2{}, 0)
	mesh.Update()

	after := e.WorldPoints()
	for i := range before {
		if !geometry.ApproxEqual(before[i], after[i], 1e-6) {
			t.Fatalf("expected world point %d to round-trip, got %+v vs %+v", i, before[i], after[i])
		}
	}
}
