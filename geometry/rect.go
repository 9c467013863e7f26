package geometry

// Rect is an axis-aligned bounding rectangle, always returned by value so
// callers never observe retroactive mutation of a cached AABB.
type Rect struct {
	Min Vector2
	Max Vector2
}

// Width returns the rectangle's horizontal extent.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the rectangle's vertical extent.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Empty reports whether the rectangle has zero or negative extent on
// either axis.
func (r Rect) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Center returns the rectangle's midpoint.
func (r Rect) Center() Vector2 {
	return Vector2{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Intersects reports whether r and o overlap, touching edges excluded.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X < o.Max.X && r.Max.X > o.Min.X &&
		r.Min.Y < o.Max.Y && r.Max.Y > o.Min.Y
}

// Contains reports whether o lies entirely within r.
func (r Rect) Contains(o Rect) bool {
	return o.Min.X >= r.Min.X && o.Max.X <= r.Max.X &&
		o.Min.Y >= r.Min.Y && o.Max.Y <= r.Max.Y
}

// ContainsPoint reports whether p lies within r, inclusive of the boundary.
func (r Rect) ContainsPoint(p Vector2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ScaleAboutCenter returns r scaled by factor about its own center.
func (r Rect) ScaleAboutCenter(factor float64) Rect {
	c := r.Center()
	hw := r.Width() / 2 * factor
	hh := r.Height() / 2 * factor
	return Rect{
		Min: Vector2{X: c.X - hw, Y: c.Y - hh},
		Max: Vector2{X: c.X + hw, Y: c.Y + hh},
	}
}

// BoundsOf computes the AABB of a set of points.
func BoundsOf(points []Vector2) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	min := points[0]
	max := points[0]
	for _, p := range points[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return Rect{Min: min, Max: max}
}
