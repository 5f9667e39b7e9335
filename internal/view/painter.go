package view

import "github.com/wlmath-dwl/neuron/internal/geom"

// Style describes how a stroke or a filled shape is drawn.
type Style struct {
	Color string
	Fill  string
	Width float64
	Dash  bool
}

// TextStyle describes a text run.
type TextStyle struct {
	Color  string
	Size   float64
	AlignX string // left, center, right
	AlignY string // top, middle, bottom
}

// Painter is the drawing backend. Every coordinate it receives is logical;
// the backend maps it to pixels through the same Transform the engine uses.
// Radii, widths and text sizes are in pixels.
type Painter interface {
	Clear()
	RenderCoordinate()
	Line(a, b geom.Vec, s Style)
	Polyline(points []geom.Vec, s Style)
	Circle(center geom.Vec, radius float64, s Style)
	Polygon(points []geom.Vec, s Style)
	Text(pos geom.Vec, text string, s TextStyle)
}

// NopPainter discards everything. It is the default until a backend is
// attached.
type NopPainter struct{}

func (NopPainter) Clear()                           {}
func (NopPainter) RenderCoordinate()                {}
func (NopPainter) Line(geom.Vec, geom.Vec, Style)   {}
func (NopPainter) Polyline([]geom.Vec, Style)       {}
func (NopPainter) Circle(geom.Vec, float64, Style)  {}
func (NopPainter) Polygon([]geom.Vec, Style)        {}
func (NopPainter) Text(geom.Vec, string, TextStyle) {}
