package view

import "github.com/wlmath-dwl/neuron/internal/geom"

// Boundary holds the four viewport edges as logical segments.
type Boundary struct {
	Top, Bottom, Left, Right geom.Segment
}

// ViewRect is the visible area in logical coordinates.
type ViewRect struct {
	Top, Bottom, Left, Right float64
}

// Boundary returns the edges of the visible area.
func (t *Transform) Boundary() Boundary {
	w, h := t.viewWidth, t.viewHeight
	p1 := t.ToLogical(geom.V(0, 0))
	p2 := t.ToLogical(geom.V(w, 0))
	p3 := t.ToLogical(geom.V(w, h))
	p4 := t.ToLogical(geom.V(0, h))
	return Boundary{
		Top:    geom.NewSegment(p1, p2),
		Bottom: geom.NewSegment(p3, p4),
		Left:   geom.NewSegment(p1, p4),
		Right:  geom.NewSegment(p2, p3),
	}
}

// ViewRect returns the visible area.
func (t *Transform) ViewRect() ViewRect {
	return ViewRect{
		Top:    t.LogicalY(0),
		Bottom: t.LogicalY(t.viewHeight),
		Left:   t.LogicalX(0),
		Right:  t.LogicalX(t.viewWidth),
	}
}

// ClipLine returns the two points where an infinite line crosses the
// viewport edges. Lines missing the viewport report false.
func (t *Transform) ClipLine(l geom.Line) (geom.Vec, geom.Vec, bool) {
	b := t.Boundary()
	// top, bottom, left, right: a line through a corner yields the same
	// point from two adjacent edges, which still makes a drawable pair
	var hits []geom.Vec
	for _, edge := range []geom.Segment{b.Top, b.Bottom, b.Left, b.Right} {
		if p, ok := edge.CrossLine(l); ok {
			hits = append(hits, p)
		}
	}
	if len(hits) != 2 {
		return geom.Vec{}, geom.Vec{}, false
	}
	return hits[0], hits[1], true
}
