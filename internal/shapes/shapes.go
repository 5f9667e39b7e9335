// Package shapes holds the built-in cell variants: the positionable point
// P, the Segment between two points and the infinite Line through two
// points.
package shapes

import (
	"fmt"

	"github.com/wlmath-dwl/neuron/internal/geom"
	"github.com/wlmath-dwl/neuron/internal/model"
	"github.com/wlmath-dwl/neuron/internal/view"
)

// Variant names.
const (
	NamePoint   = "P"
	NameSegment = "Segment"
	NameLine    = "Line"
)

// Layers the variants are created in, bottom first.
const (
	LayerLine  = "line"
	LayerPoint = "point"
)

// Link slots of segments and lines.
const (
	SlotP1 = "p1"
	SlotP2 = "p2"
)

const (
	pointRadius = 5.0 // px
	pointHit    = 8.0 // px
	lineHit     = 5.0 // px
	labelOffset = 10.0

	colorInk    = "#1f2328"
	colorAccent = "#0969da"
	colorPaper  = "#ffffff"
)

// Variants returns the built-in variant descriptions.
func Variants() []model.Variant {
	return []model.Variant{
		{
			Name:     NamePoint,
			Layer:    LayerPoint,
			Type:     "point",
			Defaults: model.Data{"x": model.Num(0), "y": model.Num(0), "angle": model.Num(45)},
			New:      func() model.Kind { return Point{} },
		},
		{
			Name:  NameSegment,
			Layer: LayerLine,
			Type:  "line",
			New:   func() model.Kind { return Segment{} },
		},
		{
			Name:  NameLine,
			Layer: LayerLine,
			Type:  "line",
			New:   func() model.Kind { return Line{} },
		},
	}
}

// Register adds every built-in variant to reg.
func Register(reg *model.Registry) error {
	for _, v := range Variants() {
		if err := reg.Register(v); err != nil {
			return fmt.Errorf("register shapes: %w", err)
		}
	}
	return nil
}

// NewRegistry returns a registry holding the built-in variants.
func NewRegistry() *model.Registry {
	reg := model.NewRegistry()
	if err := Register(reg); err != nil {
		panic(err)
	}
	return reg
}

func strokeStyle(c *model.Cell) view.Style {
	s := view.Style{Color: colorInk, Width: 2}
	switch {
	case c.State.Select:
		s.Color = colorAccent
		s.Width = 3
	case c.State.Hover:
		s.Color = colorAccent
	}
	return s
}

// Point is a free point positioned by its x and y fields.
type Point struct {
	model.PointBase
}

func (Point) Render(c *model.Cell, p view.Painter) {
	pos := c.Pos()
	s := strokeStyle(c)
	s.Fill = colorPaper
	if c.State.Select {
		s.Fill = colorAccent
	}
	p.Circle(pos, pointRadius, s)

	if label := c.Get("label"); label.IsSet() {
		d := c.Transform().LogicalLength(labelOffset)
		p.Text(pos.Add(geom.V(d, d)), label.Text(), view.TextStyle{
			Color:  colorInk,
			Size:   14,
			AlignX: "left",
			AlignY: "bottom",
		})
	}
}

func (Point) CheckSelect(c *model.Cell, pt geom.Vec) bool {
	return c.Transform().PhysicalLength(c.Pos().Distance(pt)) <= pointHit
}

// endpoints resolves the first cell of the p1 and p2 slots.
func endpoints(c *model.Cell) (geom.Vec, geom.Vec, bool) {
	p1, p2 := c.Linked(SlotP1), c.Linked(SlotP2)
	if len(p1) == 0 || len(p2) == 0 {
		return geom.Vec{}, geom.Vec{}, false
	}
	a, b := p1[0].Pos(), p2[0].Pos()
	if a == b {
		return geom.Vec{}, geom.Vec{}, false
	}
	return a, b, true
}

// Segment joins the points in its p1 and p2 slots.
type Segment struct{}

func (Segment) Render(c *model.Cell, p view.Painter) {
	if a, b, ok := endpoints(c); ok {
		p.Line(a, b, strokeStyle(c))
	}
}

func (Segment) CheckSelect(c *model.Cell, pt geom.Vec) bool {
	a, b, ok := endpoints(c)
	if !ok {
		return false
	}
	seg := geom.NewSegment(a, b)
	return seg.Within(pt) && c.Transform().PhysicalLength(seg.Distance(pt)) <= lineHit
}

// Line is the infinite line through the points in its p1 and p2 slots,
// drawn between its crossings with the viewport.
type Line struct{}

func (Line) Render(c *model.Cell, p view.Painter) {
	a, b, ok := endpoints(c)
	if !ok {
		return
	}
	from, to, ok := c.Transform().ClipLine(geom.NewSegment(a, b).Line)
	if !ok {
		return
	}
	s := strokeStyle(c)
	s.Dash = !c.State.Select
	p.Line(from, to, s)
}

func (Line) CheckSelect(c *model.Cell, pt geom.Vec) bool {
	a, b, ok := endpoints(c)
	if !ok {
		return false
	}
	return c.Transform().PhysicalLength(geom.NewSegment(a, b).Distance(pt)) <= lineHit
}
