package element

import (
	"testing"

	"navmesh2d/geometry"
	"navmesh2d/offset"
)

func ccwSquare() []geometry.Vector2 {
	return []geometry.Vector2{{X: -0.5, Y: -0.5}, {X: 0.5, Y: -0.5}, {X: 0.5, Y: 0.5}, {X: -0.5, Y: 0.5}}
}

func TestNewRejectsInvalidPolygon(t *testing.T) {
	clockwise := []geometry.Vector2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	if _, err := New(1, Obstacle, clockwise, geometry.Vector2{}, 0, 0, 0); err == nil {
		t.Fatalf("expected clockwise polygon to be rejected")
	}
}

func TestNewStartsDirty(t *testing.T) {
	e, err := New(1, Obstacle, ccwSquare(), geometry.Vector2{}, 0, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !e.Dirty() {
		t.Fatalf("expected a freshly constructed element to be dirty")
	}
}

func TestRefreshIsNoOpWhenNotDirty(t *testing.T) {
	e, _ := New(1, Obstacle, ccwSquare(), geometry.Vector2{}, 0, 0, 0)
	engine := offset.MiterEngine{}
	if _, err := e.Refresh(0.5, geometry.Accuracy100, engine); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := e.Refresh(0.5, geometry.Accuracy100, engine)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Refreshed {
		t.Fatalf("expected the second Refresh call to be a no-op")
	}
}

func TestRefreshInflatesByAgentRadius(t *testing.T) {
	e, _ := New(1, Obstacle, ccwSquare(), geometry.Vector2{}, 0, 0, 0)
	if _, err := e.Refresh(0.5, geometry.Accuracy100, offset.MiterEngine{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	world := e.WorldPoints()
	for _, p := range world {
		if absf(p.X) < 0.99 || absf(p.Y) < 0.99 {
			t.Fatalf("expected inflated vertex to sit near +-1.0, got %+v", p)
		}
	}
}

func TestRefreshClearsDirtyAndUpdatesBounds(t *testing.T) {
	e, _ := New(1, Obstacle, ccwSquare(), geometry.Vector2{}, 0, 0, 0)
	e.Refresh(0.5, geometry.Accuracy100, offset.MiterEngine{})
	if e.Dirty() {
		t.Fatalf("expected dirty flag cleared after Refresh")
	}
	bounds := e.Bounds()
	if bounds.Empty() {
		t.Fatalf("expected non-empty bounds after Refresh")
	}
}

func TestSetPoseFlipsDirty(t *testing.T) {
	e, _ := New(1, Obstacle, ccwSquare(), geometry.Vector2{}, 0, 0, 0)
	e.Refresh(0.5, geometry.Accuracy100, offset.MiterEngine{})
	e.SetPose(geometry.Vector2{X: 10, Y: 10}, 0)
	if !e.Dirty() {
		t.Fatalf("expected SetPose to mark the element dirty")
	}
	e.Refresh(0.5, geometry.Accuracy100, offset.MiterEngine{})
	world := e.WorldPoints()
	if absf(world[0].X-10) > 2 {
		t.Fatalf("expected world points to translate with the new position, got %+v", world[0])
	}
}

func TestSetPoseNoopWhenUnchanged(t *testing.T) {
	e, _ := New(1, Obstacle, ccwSquare(), geometry.Vector2{}, 0, 0, 0)
	e.Refresh(0.5, geometry.Accuracy100, offset.MiterEngine{})
	e.SetPose(geometry.Vector2{}, 0)
	if e.Dirty() {
		t.Fatalf("expected SetPose with unchanged pose to leave the element clean")
	}
}

func TestRefreshDismantlesGroupMembership(t *testing.T) {
	e, _ := New(1, Obstacle, ccwSquare(), geometry.Vector2{}, 0, 0, 0)
	e.Refresh(0.5, geometry.Accuracy100, offset.MiterEngine{})
	e.GroupID = 7
	e.SetPose(geometry.Vector2{X: 1, Y: 1}, 0)
	result, err := e.Refresh(0.5, geometry.Accuracy100, offset.MiterEngine{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.HadGroup || result.OldGroupID != 7 {
		t.Fatalf("expected RefreshResult to report the dismantled group, got %+v", result)
	}
	if e.GroupID != 0 {
		t.Fatalf("expected the element's own group id to be cleared after refresh")
	}
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
