package paint

import (
	"encoding/json"

	"github.com/wlmath-dwl/neuron/internal/geom"
	"github.com/wlmath-dwl/neuron/internal/view"
)

// Op kinds of a DrawCommand.
const (
	OpClear    = "clear"
	OpLine     = "line"
	OpPolyline = "polyline"
	OpCircle   = "circle"
	OpPolygon  = "polygon"
	OpText     = "text"
)

// DrawCommand is a single drawing operation in physical pixels for a remote
// client to execute on its own surface.
type DrawCommand struct {
	Op          string       `json:"op"`
	Points      [][2]float64 `json:"points,omitempty"`
	Radius      float64      `json:"radius,omitempty"`
	Text        string       `json:"text,omitempty"`
	Stroke      string       `json:"stroke,omitempty"`
	Fill        string       `json:"fill,omitempty"`
	StrokeWidth float64      `json:"strokeWidth,omitempty"`
	Dash        bool         `json:"dash,omitempty"`
	Size        float64      `json:"size,omitempty"`
	AlignX      string       `json:"alignX,omitempty"`
	AlignY      string       `json:"alignY,omitempty"`
}

// Frame is the command buffer of one render pass. Transform is the
// logical to physical matrix [a b c d e f] the frame was drawn with, so a
// client can map its own pointer samples back.
type Frame struct {
	Transform []float64     `json:"transform"`
	Commands  []DrawCommand `json:"commands"`
}

// Recorder is a Canvas that buffers the commands of the current render
// pass. Clear starts a new pass.
type Recorder struct {
	t        *view.Transform
	commands []DrawCommand
	passes   int
}

func NewRecorder(t *view.Transform) *Recorder {
	return &Recorder{t: t}
}

func (r *Recorder) Clear() {
	r.commands = []DrawCommand{{Op: OpClear}}
	r.passes++
}

func (r *Recorder) Line(a, b geom.Vec, s view.Style) {
	r.add(styled(DrawCommand{Op: OpLine, Points: points(a, b)}, s))
}

func (r *Recorder) Polyline(pts []geom.Vec, s view.Style) {
	if len(pts) < 2 {
		return
	}
	r.add(styled(DrawCommand{Op: OpPolyline, Points: points(pts...)}, s))
}

func (r *Recorder) Circle(center geom.Vec, radius float64, s view.Style) {
	r.add(styled(DrawCommand{Op: OpCircle, Points: points(center), Radius: radius}, s))
}

func (r *Recorder) Polygon(pts []geom.Vec, s view.Style) {
	if len(pts) < 3 {
		return
	}
	r.add(styled(DrawCommand{Op: OpPolygon, Points: points(pts...)}, s))
}

func (r *Recorder) Text(pos geom.Vec, text string, s view.TextStyle) {
	r.add(DrawCommand{
		Op:     OpText,
		Points: points(pos),
		Text:   text,
		Fill:   s.Color,
		Size:   s.Size,
		AlignX: s.AlignX,
		AlignY: s.AlignY,
	})
}

func (r *Recorder) add(c DrawCommand) {
	r.commands = append(r.commands, c)
}

// Frame returns a copy of the buffered pass.
func (r *Recorder) Frame() Frame {
	return Frame{
		Transform: r.t.Matrix().Slice(),
		Commands:  append([]DrawCommand(nil), r.commands...),
	}
}

// Len returns the number of buffered commands.
func (r *Recorder) Len() int { return len(r.commands) }

// Passes counts the render passes started so far.
func (r *Recorder) Passes() int { return r.passes }

// JSON serializes the buffered pass.
func (r *Recorder) JSON() ([]byte, error) {
	return json.Marshal(r.Frame())
}

func styled(c DrawCommand, s view.Style) DrawCommand {
	c.Stroke = s.Color
	c.Fill = s.Fill
	c.StrokeWidth = s.Width
	c.Dash = s.Dash
	return c
}

func points(pts ...geom.Vec) [][2]float64 {
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}
