package geom

// InPolygon reports whether p lies inside or on the polygon described by
// points, using crossing parity.
func InPolygon(p Vec, points []Vec) bool {
	in := false
	for i := range points {
		a := points[i]
		b := points[(i+1)%len(points)]

		if a == p {
			return true
		}
		if (a.Y > p.Y) != (b.Y > p.Y) {
			cross := (p.X-a.X)*(b.Y-a.Y) - (b.X-a.X)*(p.Y-a.Y)
			if cross == 0 {
				return true
			}
			if (cross < 0) != (b.Y < a.Y) {
				in = !in
			}
		}
	}
	return in
}

// InRect reports whether p lies in the y-up rectangle whose top-left corner
// is (x, y) and which extends w to the right and h downwards.
func InRect(p Vec, x, y, w, h float64) bool {
	return p.X >= x && p.X <= x+w && p.Y >= y-h && p.Y <= y
}

// Rect is an axis-aligned box anchored at its minimum corner.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains checks if a point is inside the rect.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}

	minX := min(r.X, other.X)
	minY := min(r.Y, other.Y)
	maxX := max(r.X+r.Width, other.X+other.Width)
	maxY := max(r.Y+r.Height, other.Y+other.Height)

	return Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Center returns the center point of the rect.
func (r Rect) Center() Vec {
	return Vec{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Bounds returns the rect enclosing all points, or the zero rect for none.
func Bounds(points []Vec) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
