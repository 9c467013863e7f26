package geometry

import "testing"

func TestSignedAreaCCWPositive(t *testing.T) {
	square := []Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	if area := SignedArea(square); area <= 0 {
		t.Fatalf("expected positive signed area for CCW square, got %f", area)
	}
}

func TestSignedAreaCWNegative(t *testing.T) {
	square := []Vector2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	if area := SignedArea(square); area >= 0 {
		t.Fatalf("expected negative signed area for CW square, got %f", area)
	}
}

func TestPointInPolygon(t *testing.T) {
	square := []Vector2{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	if !PointInPolygon(Vector2{X: 1, Y: 1}, square) {
		t.Fatalf("expected centre point to be inside square")
	}
	if PointInPolygon(Vector2{X: 3, Y: 3}, square) {
		t.Fatalf("expected far point to be outside square")
	}
}

func TestRotateAboutOriginQuarterTurn(t *testing.T) {
	v := Vector2{X: 1, Y: 0}
	rotated := RotateAboutOrigin(v, 3.14159265358979/2)
	if !ApproxEqual(rotated, Vector2{X: 0, Y: 1}, 1e-6) {
		t.Fatalf("expected (1,0) rotated 90deg to be ~(0,1), got %+v", rotated)
	}
}

func TestNormalisePreservesDirectionAndUnitLength(t *testing.T) {
	v := Vector2{X: 3, Y: 4}
	n := Normalise(v)
	if l := Length(n); l < 0.999 || l > 1.001 {
		t.Fatalf("expected unit length, got %f", l)
	}
	if Dot(n, v) <= 0 {
		t.Fatalf("expected normalised vector to keep the same direction")
	}
}

func TestNormaliseZeroVector(t *testing.T) {
	if n := Normalise(Vector2{}); n != (Vector2{}) {
		t.Fatalf("expected zero vector to normalise to zero, got %+v", n)
	}
}

func TestToIntFromIntRoundTrip(t *testing.T) {
	v := Vector2{X: 1.23, Y: -4.56}
	p := ToInt(v, Accuracy100)
	back := FromInt(p, Accuracy100)
	if !ApproxEqual(v, back, 0.01) {
		t.Fatalf("expected round-trip within one quantum, got %+v -> %+v", v, back)
	}
}

func TestRoundHalfToEven(t *testing.T) {
	cases := map[float64]int64{
		0.5: 0,
		1.5: 2,
		2.5: 2,
		-0.5: 0,
		-1.5: -2,
	}
	for in, want := range cases {
		if got := roundHalfToEven(in); got != want {
			t.Fatalf("roundHalfToEven(%f) = %d, want %d", in, got, want)
		}
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{Min: Vector2{X: 0, Y: 0}, Max: Vector2{X: 2, Y: 2}}
	b := Rect{Min: Vector2{X: 1, Y: 1}, Max: Vector2{X: 3, Y: 3}}
	c := Rect{Min: Vector2{X: 5, Y: 5}, Max: Vector2{X: 6, Y: 6}}
	if !a.Intersects(b) {
		t.Fatalf("expected overlapping rects to intersect")
	}
	if a.Intersects(c) {
		t.Fatalf("expected distant rects not to intersect")
	}
}

func TestRectScaleAboutCenter(t *testing.T) {
	r := Rect{Min: Vector2{X: -1, Y: -1}, Max: Vector2{X: 1, Y: 1}}
	scaled := r.ScaleAboutCenter(2)
	if scaled.Width() != 4 || scaled.Height() != 4 {
		t.Fatalf("expected 2x scale to double extent, got %+v", scaled)
	}
	if scaled.Center() != r.Center() {
		t.Fatalf("expected scale about center to preserve center")
	}
}

func TestBoundsOf(t *testing.T) {
	pts := []Vector2{{X: -2, Y: 3}, {X: 5, Y: -1}, {X: 0, Y: 0}}
	r := BoundsOf(pts)
	if r.Min != (Vector2{X: -2, Y: -1}) || r.Max != (Vector2{X: 5, Y: 3}) {
		t.Fatalf("unexpected bounds %+v", r)
	}
}
