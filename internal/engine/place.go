package engine

import (
	"fmt"

	"github.com/wlmath-dwl/neuron/internal/geom"
	"github.com/wlmath-dwl/neuron/internal/model"
)

// PlaceParam configures PlaceFsm.
type PlaceParam struct {
	// CellName is the variant created by the next press.
	CellName string
}

// PlaceFsm creates one cell where the next gesture starts and then hands
// control back to DragFsm.
type PlaceFsm struct {
	BaseFsm
	e        *Engine
	cellName string
}

func newPlaceFsm(e *Engine, param any) (Fsm, error) {
	var p PlaceParam
	switch v := param.(type) {
	case PlaceParam:
		p = v
	case *PlaceParam:
		if v != nil {
			p = *v
		}
	case string:
		p.CellName = v
	default:
		return nil, fmt.Errorf("place fsm: unsupported parameter %T", param)
	}
	if err := e.registry.Validate(p.CellName); err != nil {
		return nil, fmt.Errorf("place fsm: %w", err)
	}
	return &PlaceFsm{e: e, cellName: p.CellName}, nil
}

func (f *PlaceFsm) DragStart(_, logical []geom.Vec) {
	if len(logical) == 0 {
		return
	}
	at := logical[0]
	f.e.body.CreateCell(model.Store{
		Name: f.cellName,
		Data: model.Data{"x": model.Num(at.X), "y": model.Num(at.Y)},
	}, true)
	f.e.body.Render()
	f.e.history.CollectEnd()

	if err := f.e.dispatch.ChangeFsm(FsmDrag, nil); err != nil {
		f.e.logger.Error("restore drag fsm", "error", err)
	}
}
