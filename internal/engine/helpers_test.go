package engine

import (
	"io"
	"log/slog"
	"testing"

	"github.com/wlmath-dwl/neuron/internal/geom"
	"github.com/wlmath-dwl/neuron/internal/model"
	"github.com/wlmath-dwl/neuron/internal/view"
)

// testPoint is a positionable variant hit within 0.2 logical units.
type testPoint struct {
	model.PointBase
	updates int
	clicks  int
}

func (p *testPoint) Render(*model.Cell, view.Painter) {}

func (p *testPoint) CheckSelect(c *model.Cell, pt geom.Vec) bool {
	return c.Pos().Distance(pt) < 0.2
}

func (p *testPoint) Update(*model.Cell, *model.Cell) { p.updates++ }

func (p *testPoint) Click(*model.Cell, geom.Vec) { p.clicks++ }

// testEdge links points and never hits.
type testEdge struct {
	updates int
}

func (*testEdge) Render(*model.Cell, view.Painter)       {}
func (*testEdge) CheckSelect(*model.Cell, geom.Vec) bool { return false }
func (e *testEdge) Update(*model.Cell, *model.Cell)      { e.updates++ }

type countingPainter struct {
	view.NopPainter
	clears int
	grids  int
}

func (p *countingPainter) Clear()            { p.clears++ }
func (p *countingPainter) RenderCoordinate() { p.grids++ }

type cursorPlatform struct {
	cursor string
	touch  bool
}

func (p *cursorPlatform) SetCursor(kind string) { p.cursor = kind }
func (p *cursorPlatform) HasTouchInput() bool   { return p.touch }

func testRegistry(t *testing.T) *model.Registry {
	t.Helper()
	r := model.NewRegistry()
	for _, v := range []model.Variant{
		{
			Name:     "P",
			Layer:    "point",
			Defaults: model.Data{"x": model.Num(0), "y": model.Num(0), "angle": model.Num(45)},
			New:      func() model.Kind { return &testPoint{} },
		},
		{
			Name:  "S",
			Layer: "line",
			New:   func() model.Kind { return &testEdge{} },
		},
	} {
		if err := r.Register(v); err != nil {
			t.Fatal(err)
		}
	}
	return r
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestEngine returns a ready 800x600 engine with P and S registered.
func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithRegistry(testRegistry(t)), WithLogger(quietLogger())}, opts...)
	e := New(opts...)
	e.Resize(800, 600)
	return e
}

func mustCreate(t *testing.T, e *Engine, s model.Store) *model.Cell {
	t.Helper()
	c, ok := e.Body().CreateCell(s, true)
	if !ok {
		t.Fatalf("CreateCell(%+v) failed", s)
	}
	return c
}

func point(t *testing.T, e *Engine, id string, x, y float64) *model.Cell {
	t.Helper()
	return mustCreate(t, e, model.Store{
		ID:   id,
		Name: "P",
		Data: model.Data{"x": model.Num(x), "y": model.Num(y)},
	})
}

func edge(t *testing.T, e *Engine, id string, links model.Links) *model.Cell {
	t.Helper()
	return mustCreate(t, e, model.Store{ID: id, Name: "S", LinkChild: links})
}

// screen converts a logical point of e to a physical sample.
func screen(e *Engine, x, y float64) []geom.Vec {
	return []geom.Vec{e.Transform().ToPhysical(geom.V(x, y))}
}
