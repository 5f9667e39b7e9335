package paint

import (
	"math"

	"github.com/wlmath-dwl/neuron/internal/geom"
	"github.com/wlmath-dwl/neuron/internal/view"
)

const (
	gridColor  = "#333333"
	labelSize  = 14
	tickLength = 4
	// ticks closer than this to an axis are not drawn
	axisClearance = 10
)

// Grid draws the coordinate axes through the logical origin, a tick mark
// with a label at every tick position and a single "0" at the origin.
func Grid(t *view.Transform, c Canvas) {
	w, h := t.ViewWidth(), t.ViewHeight()
	ox := t.HalfWidth() + t.OX
	oy := t.HalfHeight() + t.OY

	stroke := view.Style{Color: gridColor, Width: 1}
	c.Line(geom.V(0, oy), geom.V(w, oy), stroke)
	c.Line(geom.V(ox, 0), geom.V(ox, h), stroke)

	below := view.TextStyle{Color: gridColor, Size: labelSize, AlignX: "center", AlignY: "top"}
	left := view.TextStyle{Color: gridColor, Size: labelSize, AlignX: "right", AlignY: "middle"}

	xs, ys := t.Ticks()
	origin := false
	for _, x := range xs {
		if math.Abs(x-ox) <= axisClearance {
			origin = true
			continue
		}
		c.Line(geom.V(x, oy), geom.V(x, oy+tickLength), stroke)
		c.Text(geom.V(x, oy+2*tickLength), t.FormatScaleLabel(t.LogicalX(x)), below)
	}
	for _, y := range ys {
		if math.Abs(y-oy) <= axisClearance {
			continue
		}
		c.Line(geom.V(ox, y), geom.V(ox-tickLength, y), stroke)
		c.Text(geom.V(ox-2*tickLength, y), t.FormatScaleLabel(t.LogicalY(y)), left)
	}
	if origin {
		c.Text(geom.V(ox-4*tickLength, oy+2*tickLength), "0", below)
	}
}
