package engine

import (
	"testing"

	"github.com/wlmath-dwl/neuron/internal/geom"
	"github.com/wlmath-dwl/neuron/internal/model"
)

func vec(x, y float64) *geom.Vec {
	v := geom.V(x, y)
	return &v
}

func TestDragOffsetUsesOriginalAnchor(t *testing.T) {
	e := newTestEngine(t)
	a := point(t, e, "a", 3, 4)

	e.Motion().Drag(Target{Cell: a, Pos: vec(1, 0), Offset: true}, false)
	e.Motion().Drag(Target{Cell: a, Pos: vec(2, 0), Offset: true}, false)

	if got := a.Pos(); got != geom.V(5, 4) {
		t.Errorf("Pos = %v, want start+(2,0) = (5,4)", got)
	}

	e.Motion().DragClear()
	e.Motion().Drag(Target{Cell: a, Pos: vec(1, 1), Offset: true}, false)
	if got := a.Pos(); got != geom.V(6, 5) {
		t.Errorf("after DragClear Pos = %v, want (6,5)", got)
	}
}

func TestDragAbsolute(t *testing.T) {
	e := newTestEngine(t)
	a := point(t, e, "a", 3, 4)

	e.Motion().Drag(Target{Cell: a, Pos: vec(-1, 2)}, false)
	if got := a.Pos(); got != geom.V(-1, 2) {
		t.Errorf("Pos = %v, want (-1,2)", got)
	}
}

func TestDragAnchorFromPixelPosition(t *testing.T) {
	e := newTestEngine(t)
	a := mustCreate(t, e, model.Store{
		ID:   "a",
		Name: "P",
		Data: model.Data{"x": model.Str("500"), "y": model.Str("300")},
	})

	e.Motion().Drag(Target{Cell: a, Pos: vec(0.5, 0.5), Offset: true}, false)
	if got := a.Pos(); got != geom.V(1.5, 0.5) {
		t.Errorf("Pos = %v, want (1.5,0.5)", got)
	}
	if !a.Get("x").IsNum() {
		t.Error("motion writes logical numbers")
	}
}

func TestDragCycleVisitsOnce(t *testing.T) {
	e := newTestEngine(t)
	a := point(t, e, "a", 0, 0)
	b := point(t, e, "b", 1, 0)
	a.SetLink("next", "b")
	b.SetLink("next", "a")

	e.Motion().Drag(Target{Cell: a, Pos: vec(1, 1), Offset: true}, false)

	for _, c := range []*model.Cell{a, b} {
		if n := c.Kind().(*testPoint).updates; n != 1 {
			t.Errorf("%s updated %d times, want 1", c.ID, n)
		}
	}
	// b is reached as a parent first, which carries no position
	if got := b.Pos(); got != geom.V(1, 0) {
		t.Errorf("b = %v, want it unmoved at (1,0)", got)
	}
}

func TestDragParentsRecomputeWithoutPosition(t *testing.T) {
	e := newTestEngine(t)
	a := point(t, e, "a", 0, 0)
	b := point(t, e, "b", 1, 0)
	s := edge(t, e, "s", model.Links{"p1": {"a"}, "p2": {"b"}})

	e.Motion().Drag(Target{Cell: a, Pos: vec(0, 2), Offset: true}, false)

	if got := a.Pos(); got != geom.V(0, 2) {
		t.Errorf("a = %v, want (0,2)", got)
	}
	if got := b.Pos(); got != geom.V(1, 0) {
		t.Errorf("sibling b moved to %v", got)
	}
	if n := s.Kind().(*testEdge).updates; n != 1 {
		t.Errorf("parent updated %d times, want 1", n)
	}
	if n := b.Kind().(*testPoint).updates; n != 1 {
		t.Errorf("sibling updated %d times, want 1", n)
	}
}

func TestDragEdgeMovesChildren(t *testing.T) {
	e := newTestEngine(t)
	a := point(t, e, "a", 0, 0)
	b := point(t, e, "b", 1, 0)
	s := edge(t, e, "s", model.Links{"p1": {"a"}, "p2": {"b"}})

	e.Motion().Drag(Target{Cell: s, Pos: vec(1, 1), Offset: true}, false)
	e.Motion().Drag(Target{Cell: s, Pos: vec(2, 1), Offset: true}, false)

	if a.Pos() != geom.V(2, 1) || b.Pos() != geom.V(3, 1) {
		t.Errorf("children at %v and %v, want (2,1) and (3,1)", a.Pos(), b.Pos())
	}
}

func TestSetPos(t *testing.T) {
	e := newTestEngine(t)
	a := point(t, e, "a", 0, 0)
	e.History().CollectEnd()

	e.Motion().SetPos(a, geom.V(2, 3))
	e.Motion().SetPos(a, geom.V(4, 3))

	if got := a.Pos(); got != geom.V(4, 3) {
		t.Errorf("Pos = %v, want (4,3)", got)
	}
	if !e.History().Pending() {
		t.Error("SetPos changes are recorded into the open group")
	}
}
