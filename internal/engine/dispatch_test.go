package engine

import (
	"errors"
	"testing"

	"github.com/wlmath-dwl/neuron/internal/geom"
	"github.com/wlmath-dwl/neuron/internal/model"
)

func TestInitialFsm(t *testing.T) {
	e := newTestEngine(t)
	if name := e.Dispatch().FsmName(); name != FsmDrag {
		t.Errorf("initial fsm = %q, want %q", name, FsmDrag)
	}
}

func TestChangeFsmErrors(t *testing.T) {
	e := newTestEngine(t)

	if err := e.ChangeFsm("Nope", nil); !errors.Is(err, ErrUnknownFsm) {
		t.Errorf("unknown fsm: err = %v", err)
	}
	if err := e.Dispatch().Register(FsmDrag, newDragFsm); !errors.Is(err, ErrDuplicateFsm) {
		t.Errorf("duplicate fsm: err = %v", err)
	}
	if err := e.ChangeFsm(FsmPlace, PlaceParam{CellName: "Q"}); !errors.Is(err, model.ErrUnknownVariant) {
		t.Errorf("place with unknown variant: err = %v", err)
	}
	if err := e.ChangeFsm(FsmPlace, 42); err == nil {
		t.Error("place with an int parameter should fail")
	}
	if name := e.Dispatch().FsmName(); name != FsmDrag {
		t.Errorf("failed changes must keep %q, got %q", FsmDrag, name)
	}
}

func TestRegisterCustomFsm(t *testing.T) {
	e := newTestEngine(t)
	type idle struct{ BaseFsm }
	if err := e.Dispatch().Register("Idle", func(*Engine, any) (Fsm, error) { return idle{}, nil }); err != nil {
		t.Fatal(err)
	}
	if err := e.ChangeFsm("Idle", nil); err != nil {
		t.Fatal(err)
	}
	e.DragStart(screen(e, 0, 0))
	e.DragEnd(nil)
	if e.Body().Len() != 0 {
		t.Error("idle fsm should ignore input")
	}
}

func TestPlaceCreatesAndReturnsToDrag(t *testing.T) {
	e := newTestEngine(t)
	for _, param := range []any{PlaceParam{CellName: "P"}, &PlaceParam{CellName: "P"}, "P"} {
		if err := e.ChangeFsm(FsmPlace, param); err != nil {
			t.Fatalf("ChangeFsm(%v): %v", param, err)
		}
	}

	e.DragStart(screen(e, 1, 0))

	cells := e.Cells()
	if len(cells) != 1 {
		t.Fatalf("%d cells, want 1", len(cells))
	}
	if x, y := cells[0].Data["x"], cells[0].Data["y"]; x != model.Num(1) || y != model.Num(0) {
		t.Errorf("placed at (%v,%v), want (1,0)", x, y)
	}
	if name := e.Dispatch().FsmName(); name != FsmDrag {
		t.Errorf("fsm after placing = %q", name)
	}
	if d := e.Depth(); d.Undo != 1 {
		t.Errorf("placement should be one history entry, depth = %d", d.Undo)
	}

	e.Undo()
	if e.Body().Len() != 0 {
		t.Error("undo should remove the placed cell")
	}
}

func TestDragSelectMoveUndo(t *testing.T) {
	e := newTestEngine(t)
	a := point(t, e, "A", 1, 1)
	e.History().CollectEnd()

	var selected []*model.Cell
	e.On(EventSelect, func(args ...any) {
		selected = append(selected, args[0].(*model.Cell))
	})

	e.DragStart(screen(e, 1, 1))
	if !a.State.Select {
		t.Error("A should be selected")
	}
	if n := a.Kind().(*testPoint).clicks; n != 1 {
		t.Errorf("click hook ran %d times", n)
	}
	e.Drag(screen(e, 2, 0.5))
	e.DragEnd(screen(e, 3, 0.5))

	if got := a.Pos(); got != geom.V(3, 0.5) {
		t.Errorf("A at %v, want (3,0.5)", got)
	}
	if d := e.Depth(); d.Undo != 2 {
		t.Errorf("the drag should be one entry, depth = %d", d.Undo)
	}

	e.Undo()
	if got := a.Pos(); got != geom.V(1, 1) {
		t.Errorf("A after undo at %v, want (1,1)", got)
	}

	e.DragStart(screen(e, -3, -2))
	e.DragEnd(nil)
	if a.State.Select {
		t.Error("pressing the background clears the selection")
	}
	if len(selected) != 2 || selected[0] != a || selected[1] != nil {
		t.Errorf("select events = %v, want [A <nil>]", selected)
	}
}

func TestDragPansBackground(t *testing.T) {
	e := newTestEngine(t)
	start := geom.V(100, 100)

	e.DragStart([]geom.Vec{start})
	e.Drag([]geom.Vec{start.Add(geom.V(10, -20))})
	e.DragEnd(nil)

	if tr := e.Transform(); tr.OX != 10 || tr.OY != -20 {
		t.Errorf("offset = (%v,%v), want (10,-20)", tr.OX, tr.OY)
	}
	if e.History().Pending() || e.Depth().Undo != 0 {
		t.Error("panning is not recorded")
	}

	cfg := DefaultConfig()
	cfg.ViewDrag = false
	e = newTestEngine(t, WithConfig(cfg))
	e.DragStart([]geom.Vec{start})
	e.Drag([]geom.Vec{start.Add(geom.V(10, -20))})
	if tr := e.Transform(); tr.OX != 0 || tr.OY != 0 {
		t.Errorf("ViewDrag off: offset = (%v,%v)", tr.OX, tr.OY)
	}
}

func TestHoverSetsCursor(t *testing.T) {
	p := &cursorPlatform{}
	e := newTestEngine(t, WithPlatform(p))
	a := point(t, e, "a", 1, 1)

	e.Drag(screen(e, 1, 1))
	if p.cursor != CursorPointer || !a.State.Hover {
		t.Errorf("over a: cursor = %q hover = %v", p.cursor, a.State.Hover)
	}
	e.Drag(screen(e, 2, 2))
	if p.cursor != CursorAuto || a.State.Hover {
		t.Errorf("off a: cursor = %q hover = %v", p.cursor, a.State.Hover)
	}
	if got := a.Pos(); got != geom.V(1, 1) {
		t.Error("hovering must not move cells")
	}
}

func TestHoverOffOnTouchPlatforms(t *testing.T) {
	p := &cursorPlatform{touch: true}
	e := newTestEngine(t, WithPlatform(p))
	a := point(t, e, "a", 1, 1)

	e.Drag(screen(e, 1, 1))
	if p.cursor != "" || a.State.Hover {
		t.Errorf("touch platform tracked hover: cursor = %q", p.cursor)
	}

	on := true
	cfg := DefaultConfig()
	cfg.Hover = &on
	p = &cursorPlatform{touch: true}
	e = newTestEngine(t, WithPlatform(p), WithConfig(cfg))
	point(t, e, "a", 1, 1)
	e.Drag(screen(e, 1, 1))
	if p.cursor != CursorPointer {
		t.Errorf("forced hover: cursor = %q", p.cursor)
	}
}

func TestZoom(t *testing.T) {
	e := newTestEngine(t)
	d := e.Transform().Density()

	e.Zoom(nil, true)
	if e.Transform().Density() != d {
		t.Error("zoom without samples should be ignored")
	}
	e.Zoom([]geom.Vec{{X: 400, Y: 300}}, true)
	if e.Transform().Density() <= d {
		t.Errorf("zoom out: density %v, want > %v", e.Transform().Density(), d)
	}

	cfg := DefaultConfig()
	cfg.Zoom = false
	e = newTestEngine(t, WithConfig(cfg))
	e.Zoom([]geom.Vec{{X: 400, Y: 300}}, true)
	if got := e.Transform().Density(); got != d {
		t.Errorf("zoom disabled: density %v, want %v", got, d)
	}
}

func TestDisabledIgnoresGestures(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Disabled = true
	e := newTestEngine(t, WithConfig(cfg))
	a := point(t, e, "a", 1, 1)
	d := e.Transform().Density()

	e.DragStart(screen(e, 1, 1))
	e.Drag(screen(e, 2, 2))
	e.DragEnd(screen(e, 2, 2))
	e.Zoom(screen(e, 0, 0), true)

	if a.State.Select || a.Pos() != geom.V(1, 1) {
		t.Error("disabled engine handled a drag")
	}
	if e.Transform().Density() != d {
		t.Error("disabled engine handled a zoom")
	}
}

func TestResizeEmitsReadyOnce(t *testing.T) {
	p := &countingPainter{}
	e := New(WithRegistry(testRegistry(t)), WithLogger(quietLogger()), WithPainter(p))
	var ready int
	e.On(EventReady, func(...any) { ready++ })

	e.Resize(0, 600)
	if ready != 0 || e.Ready() || p.clears != 0 {
		t.Fatal("a zero size must be ignored")
	}

	e.Resize(800, 600)
	e.Resize(1024, 768)
	if ready != 1 || !e.Ready() {
		t.Errorf("ready fired %d times", ready)
	}
	if p.clears != 2 {
		t.Errorf("each resize renders, clears = %d", p.clears)
	}
	if w := e.Transform().ViewWidth(); w != 1024 {
		t.Errorf("view width = %v", w)
	}
}
