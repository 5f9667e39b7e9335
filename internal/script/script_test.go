package script

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wlmath-dwl/neuron/internal/engine"
	"github.com/wlmath-dwl/neuron/internal/geom"
	"github.com/wlmath-dwl/neuron/internal/model"
	"github.com/wlmath-dwl/neuron/internal/shapes"
)

func newEngine() *engine.Engine {
	return engine.New(
		engine.WithRegistry(shapes.NewRegistry()),
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func mustParse(t *testing.T, src string) *Script {
	t.Helper()
	s, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func pos(t *testing.T, e *engine.Engine, id string) geom.Vec {
	t.Helper()
	c, ok := e.Body().Cell(id)
	if !ok {
		t.Fatalf("no cell %q", id)
	}
	return c.Pos()
}

const sample = `
width: 1000
height: 800
steps:
  - place: {cell: P, at: [1, 0]}
  - create: {id: b, cell: P, at: [-1, 2], data: {label: B}}
  - create: {cell: Segment, links: {p1: [$0], p2: [$1]}}
  - drag:
      path: [[1, 0], [1.5, 0], [2, 1]]
  - zoom: {at: [0, 0], out: true, times: 2}
  - undo: {}
  - redo: {times: 1}
`

func TestRun(t *testing.T) {
	e := newEngine()
	res, err := Run(e, mustParse(t, sample))
	if err != nil {
		t.Fatal(err)
	}

	if res.Steps != 7 || len(res.Created) != 3 {
		t.Fatalf("result = %+v", res)
	}
	if res.Created[1] != "b" {
		t.Errorf("explicit id lost: %v", res.Created)
	}
	if w := e.Transform().ViewWidth(); w != 1000 {
		t.Errorf("width = %v", w)
	}
	if got := pos(t, e, res.Created[0]); got != geom.V(2, 1) {
		t.Errorf("placed point at %v, want (2,1)", got)
	}
	b, _ := e.Body().Cell("b")
	if b.Get("label") != model.Str("B") {
		t.Errorf("label = %v", b.Get("label"))
	}

	seg, _ := e.Body().Cell(res.Created[2])
	if got := seg.Link("p2"); len(got) != 1 || got[0] != "b" {
		t.Errorf("segment p2 = %v", got)
	}
	if e.Transform().Density() <= 0.01 {
		t.Error("zoom steps should zoom out")
	}
	if d := res.Depth; d.Undo != 4 || d.Redo != 0 {
		t.Errorf("depth = %+v, want 4 undoable entries", d)
	}
}

func TestRunSeedIsNotUndoable(t *testing.T) {
	e := newEngine()
	res, err := Run(e, mustParse(t, "seed: true\nsteps:\n  - undo: {times: 3}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if e.Body().Len() != 4 || res.Depth.Undo != 0 {
		t.Errorf("cells = %d depth = %+v", e.Body().Len(), res.Depth)
	}
}

func TestRunLayers(t *testing.T) {
	e := newEngine()
	_, err := Run(e, mustParse(t, "layers: [bg, point]\nsteps:\n  - create: {cell: Segment}\n"))
	if err == nil || !strings.Contains(err.Error(), "step 0 (create)") {
		t.Fatalf("err = %v; a segment has no layer here", err)
	}
	if !strings.Contains(err.Error(), `cell layer "line" not found`) {
		t.Errorf("err = %v, want the missing layer named", err)
	}
	if got := e.Body().Layers(); len(got) != 2 || got[0] != "bg" {
		t.Errorf("layers = %v", got)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		is   error
		msg  string
	}{
		{"unknown variant", "steps:\n  - place: {cell: Q, at: [0, 0]}\n", model.ErrUnknownVariant, "step 0 (place)"},
		{"unknown create variant", "steps:\n  - create: {cell: Q}\n", model.ErrUnknownVariant, "step 0 (create)"},
		{"dangling reference", "steps:\n  - create: {cell: P}\n  - create: {cell: Segment, links: {p1: [$1]}}\n", ErrInvalidStep, "step 1 (create)"},
		{"empty drag", "steps:\n  - drag: {path: []}\n", ErrInvalidStep, "step 0 (drag)"},
		{"bad data", "steps:\n  - create: {cell: P, data: {x: [1]}}\n", ErrInvalidStep, `data "x"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(newEngine(), mustParse(t, tt.src))
			if !errors.Is(err, tt.is) {
				t.Fatalf("err = %v, want %v", err, tt.is)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("err = %q, want it to mention %q", err, tt.msg)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for name, src := range map[string]string{
		"empty":         "",
		"two actions":   "steps:\n  - undo: {}\n    redo: {}\n",
		"no action":     "steps:\n  - {}\n",
		"unknown field": "steps:\n  - jump: {}\n",
		"bad point":     "steps:\n  - zoom: {at: [1, 2, 3]}\n",
		"negative size": "width: -1\n",
	} {
		if _, err := Parse(strings.NewReader(src)); err == nil {
			t.Errorf("%s: no error", name)
		}
	}

	_, err := Parse(strings.NewReader("steps:\n  - undo: {}\n    redo: {}\n"))
	if !errors.Is(err, ErrInvalidStep) {
		t.Errorf("err = %v, want ErrInvalidStep", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Steps) != 7 || s.Height != 800 {
		t.Errorf("script = %+v", s)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file loaded")
	}
}
