package engine

import (
	"errors"
	"fmt"

	"github.com/wlmath-dwl/neuron/internal/geom"
)

var (
	ErrUnknownFsm   = errors.New("unknown fsm")
	ErrDuplicateFsm = errors.New("duplicate fsm")
)

// Names of the built-in gesture state machines.
const (
	FsmDrag  = "DragFsm"
	FsmPlace = "PlaceFsm"
)

// Cursor kinds passed to Platform.SetCursor.
const (
	CursorAuto    = "auto"
	CursorPointer = "pointer"
)

// Platform is the host environment the input collaborator runs in.
type Platform interface {
	SetCursor(kind string)
	HasTouchInput() bool
}

// NopPlatform is a pointer-only platform without a cursor.
type NopPlatform struct{}

func (NopPlatform) SetCursor(string)    {}
func (NopPlatform) HasTouchInput() bool { return false }

// Fsm interprets one kind of gesture. Every method receives the physical
// sample points and their logical counterparts, index for index; index 0 is
// the primary pointer.
type Fsm interface {
	DragStart(screen, logical []geom.Vec)
	Drag(screen, logical []geom.Vec)
	DragEnd(screen, logical []geom.Vec)
	Zoom(screen, logical []geom.Vec, out bool)
}

// BaseFsm ignores every gesture. Embed it to implement only some of them.
type BaseFsm struct{}

func (BaseFsm) DragStart(_, _ []geom.Vec)      {}
func (BaseFsm) Drag(_, _ []geom.Vec)           {}
func (BaseFsm) DragEnd(_, _ []geom.Vec)        {}
func (BaseFsm) Zoom(_, _ []geom.Vec, out bool) {}

// cellStateHolder is implemented by state machines that keep per-cell
// interaction state which must go when cells are removed.
type cellStateHolder interface {
	ClearCellState()
}

// FsmFactory builds a state machine. param is whatever the caller of
// ChangeFsm passed.
type FsmFactory func(e *Engine, param any) (Fsm, error)

// Dispatch routes input samples to the active state machine. Switching is
// by name at any time; there is no transition table.
type Dispatch struct {
	e         *Engine
	factories map[string]FsmFactory
	fsm       Fsm
	fsmName   string
}

func newDispatch(e *Engine) *Dispatch {
	d := &Dispatch{e: e, factories: make(map[string]FsmFactory)}
	d.factories[FsmDrag] = newDragFsm
	d.factories[FsmPlace] = newPlaceFsm
	return d
}

// Register adds a state machine factory under name.
func (d *Dispatch) Register(name string, f FsmFactory) error {
	if _, ok := d.factories[name]; ok {
		return fmt.Errorf("register fsm %q: %w", name, ErrDuplicateFsm)
	}
	d.factories[name] = f
	return nil
}

// ChangeFsm replaces the active state machine.
func (d *Dispatch) ChangeFsm(name string, param any) error {
	f, ok := d.factories[name]
	if !ok {
		return fmt.Errorf("change fsm to %q: %w", name, ErrUnknownFsm)
	}
	fsm, err := f(d.e, param)
	if err != nil {
		return fmt.Errorf("change fsm to %q: %w", name, err)
	}
	d.fsm = fsm
	d.fsmName = name
	d.e.logger.Debug("fsm changed", "fsm", name)
	return nil
}

// Fsm returns the active state machine.
func (d *Dispatch) Fsm() Fsm { return d.fsm }

// FsmName returns the name the active state machine was selected by.
func (d *Dispatch) FsmName() string { return d.fsmName }

func (d *Dispatch) points(screen []geom.Vec) ([]geom.Vec, []geom.Vec) {
	logical := make([]geom.Vec, len(screen))
	for i, p := range screen {
		logical[i] = d.e.transform.ToLogical(p)
	}
	return screen, logical
}

// DragStart delivers a pointer or touch start sample.
func (d *Dispatch) DragStart(screen []geom.Vec) {
	if d.e.cfg.Disabled {
		return
	}
	d.fsm.DragStart(d.points(screen))
}

// Drag delivers a move sample.
func (d *Dispatch) Drag(screen []geom.Vec) {
	if d.e.cfg.Disabled {
		return
	}
	d.fsm.Drag(d.points(screen))
}

// DragEnd delivers an end sample. Touch ends usually carry no points.
func (d *Dispatch) DragEnd(screen []geom.Vec) {
	if d.e.cfg.Disabled {
		return
	}
	d.fsm.DragEnd(d.points(screen))
}

// Zoom delivers a wheel or pinch sample. out zooms out.
func (d *Dispatch) Zoom(screen []geom.Vec, out bool) {
	if d.e.cfg.Disabled || !d.e.cfg.Zoom || len(screen) == 0 {
		return
	}
	s, l := d.points(screen)
	d.fsm.Zoom(s, l, out)
}

// Resize sets the surface size. The first non-empty size emits ready;
// changes made by ready listeners are not recorded.
func (d *Dispatch) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	d.e.transform.Resize(width, height)
	if !d.e.ready {
		d.e.bus.Emit(EventReady)
		d.e.ready = true
	}
	d.e.body.Render()
}
