package engine

import (
	"github.com/wlmath-dwl/neuron/internal/geom"
	"github.com/wlmath-dwl/neuron/internal/model"
)

// DragFsm selects cells, drags the selected cell through Motion and pans
// the view when the gesture starts on the background.
type DragFsm struct {
	e *Engine

	touchDown bool
	dragVec   geom.Vec // logical start of the gesture
	selected  *model.Cell

	panning  bool
	panStart geom.Vec // physical start of a pan
	panFrom  geom.Vec // pan offset when the pan started
}

func newDragFsm(e *Engine, _ any) (Fsm, error) {
	return &DragFsm{e: e}, nil
}

// Selected returns the cell picked by the current gesture, if any.
func (f *DragFsm) Selected() (*model.Cell, bool) {
	return f.selected, f.selected != nil
}

// ClearCellState drops hover and selection of every cell.
func (f *DragFsm) ClearCellState() {
	for _, c := range f.e.body.GetCells("") {
		c.ClearState()
	}
	f.selected = nil
}

func (f *DragFsm) DragStart(screen, logical []geom.Vec) {
	if len(screen) == 0 {
		return
	}
	f.touchDown = true
	f.dragVec = logical[0]
	f.panning = false

	f.ClearCellState()

	if len(screen) == 1 {
		c, ok := f.e.body.GetSelectCell(logical[0])
		if ok {
			f.e.bus.Emit(EventSelect, c)
			c.State.Select = true
			c.Click(screen[0])
			f.selected = c
		} else {
			f.e.bus.Emit(EventSelect, (*model.Cell)(nil))
			f.panning = true
			f.panStart = screen[0]
			f.panFrom = geom.V(f.e.transform.OX, f.e.transform.OY)
		}
	}

	f.e.body.Render()
}

func (f *DragFsm) Drag(screen, logical []geom.Vec) {
	if len(screen) == 0 {
		return
	}

	if f.e.hover {
		cursor := CursorAuto
		for _, c := range f.e.body.GetCells("") {
			c.State.Hover = c.CheckSelect(logical[0])
			if c.State.Hover {
				cursor = CursorPointer
			}
		}
		f.e.platform.SetCursor(cursor)
		f.e.body.Render()
	}

	if !f.touchDown {
		return
	}

	if len(screen) == 1 {
		switch {
		case f.selected != nil:
			delta := logical[0].Sub(f.dragVec)
			f.e.motion.Drag(Target{Cell: f.selected, Pos: &delta, Offset: true}, false)
		case f.panning && f.e.cfg.ViewDrag:
			f.e.transform.OX = f.panFrom.X + screen[0].X - f.panStart.X
			f.e.transform.OY = f.panFrom.Y + screen[0].Y - f.panStart.Y
		}
	}

	f.e.body.Render()
}

func (f *DragFsm) DragEnd(screen, logical []geom.Vec) {
	if !f.touchDown {
		return
	}

	if len(screen) == 1 {
		f.Drag(screen, logical)
	}
	f.panning = false

	f.e.motion.DragClear()
	f.e.history.CollectEnd()

	f.touchDown = false
	f.e.body.Render()
}

func (f *DragFsm) Zoom(screen, _ []geom.Vec, out bool) {
	f.e.transform.ZoomAt(screen[0], out)
	f.e.body.Render()
}
