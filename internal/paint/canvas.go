// Package paint renders scenes onto pixel surfaces: a draw command buffer
// for remote clients and PNG rasters for offline output.
package paint

import (
	"github.com/wlmath-dwl/neuron/internal/geom"
	"github.com/wlmath-dwl/neuron/internal/view"
)

// Canvas draws in physical pixels with the origin at the top-left corner.
type Canvas interface {
	Clear()
	Line(a, b geom.Vec, s view.Style)
	Polyline(points []geom.Vec, s view.Style)
	Circle(center geom.Vec, radius float64, s view.Style)
	Polygon(points []geom.Vec, s view.Style)
	Text(pos geom.Vec, text string, s view.TextStyle)
}

// Painter implements view.Painter on top of a Canvas, snapping logical
// coordinates to pixels through a Transform.
type Painter struct {
	t *view.Transform
	c Canvas
}

func NewPainter(t *view.Transform, c Canvas) *Painter {
	return &Painter{t: t, c: c}
}

func (p *Painter) Clear()            { p.c.Clear() }
func (p *Painter) RenderCoordinate() { Grid(p.t, p.c) }

func (p *Painter) Line(a, b geom.Vec, s view.Style) {
	p.c.Line(p.t.ToPhysical(a), p.t.ToPhysical(b), s)
}

func (p *Painter) Polyline(points []geom.Vec, s view.Style) {
	p.c.Polyline(p.physical(points), s)
}

func (p *Painter) Circle(center geom.Vec, radius float64, s view.Style) {
	p.c.Circle(p.t.ToPhysical(center), radius, s)
}

func (p *Painter) Polygon(points []geom.Vec, s view.Style) {
	p.c.Polygon(p.physical(points), s)
}

func (p *Painter) Text(pos geom.Vec, text string, s view.TextStyle) {
	p.c.Text(p.t.ToPhysical(pos), text, s)
}

func (p *Painter) physical(points []geom.Vec) []geom.Vec {
	out := make([]geom.Vec, len(points))
	for i, pt := range points {
		out[i] = p.t.ToPhysical(pt)
	}
	return out
}
