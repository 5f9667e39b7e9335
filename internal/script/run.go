package script

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wlmath-dwl/neuron/internal/engine"
	"github.com/wlmath-dwl/neuron/internal/geom"
	"github.com/wlmath-dwl/neuron/internal/model"
	"github.com/wlmath-dwl/neuron/internal/shapes"
)

// Result summarizes a replay.
type Result struct {
	Steps   int
	Created []string
	Depth   engine.Depth
}

type runner struct {
	e       *engine.Engine
	created []string
}

// Run replays s on e, which must not have been resized yet. The first
// failing step stops the replay; steps before it stay applied.
func Run(e *engine.Engine, s *Script) (Result, error) {
	r := &runner{e: e}

	if len(s.Layers) > 0 {
		e.Body().InitLayers(s.Layers...)
	}
	if s.Seed {
		// before the surface is ready, so the demo scene is not undoable
		shapes.Seed(e.Body())
	}
	e.Resize(s.Width, s.Height)

	res := Result{}
	for i, step := range s.Steps {
		if err := r.step(step); err != nil {
			kind, _ := step.kind()
			res.Created = r.created
			res.Depth = e.Depth()
			return res, fmt.Errorf("step %d (%s): %w", i, kind, err)
		}
		res.Steps++
	}
	res.Created = r.created
	res.Depth = e.Depth()
	return res, nil
}

func (r *runner) step(s Step) error {
	switch {
	case s.Place != nil:
		return r.place(s.Place)
	case s.Create != nil:
		return r.create(s.Create)
	case s.Drag != nil:
		return r.drag(s.Drag)
	case s.Zoom != nil:
		r.zoom(s.Zoom)
	case s.Undo != nil:
		for range max(1, s.Undo.Times) {
			r.e.Undo()
		}
	case s.Redo != nil:
		for range max(1, s.Redo.Times) {
			r.e.Redo()
		}
	default:
		return ErrInvalidStep
	}
	return nil
}

func (r *runner) screen(p Point) []geom.Vec {
	return []geom.Vec{r.e.Transform().ToPhysical(p.Vec())}
}

func (r *runner) place(p *Place) error {
	if err := r.e.ChangeFsm(engine.FsmPlace, engine.PlaceParam{CellName: p.Cell}); err != nil {
		return err
	}
	before := r.ids()
	r.e.DragStart(r.screen(p.At))
	r.e.DragEnd(nil)
	for _, s := range r.e.Cells() {
		if !before[s.ID] {
			r.created = append(r.created, s.ID)
		}
	}
	return nil
}

func (r *runner) create(c *Create) error {
	if err := r.e.Registry().Validate(c.Cell); err != nil {
		return err
	}
	s := model.Store{ID: c.ID, Name: c.Cell, Data: model.Data{}}
	if c.At != nil {
		s.Data["x"] = model.Num(c.At[0])
		s.Data["y"] = model.Num(c.At[1])
	}
	for k, v := range c.Data {
		val, err := value(v)
		if err != nil {
			return fmt.Errorf("data %q: %w", k, err)
		}
		s.Data[k] = val
	}
	if len(c.Links) > 0 {
		s.LinkChild = model.Links{}
		for slot, targets := range c.Links {
			ids := make([]string, len(targets))
			for i, t := range targets {
				id, err := r.resolve(t)
				if err != nil {
					return fmt.Errorf("link %q: %w", slot, err)
				}
				ids[i] = id
			}
			s.LinkChild[slot] = ids
		}
	}

	cell, ok := r.e.Body().CreateCell(s, true)
	if !ok {
		if cell != nil {
			return fmt.Errorf("cell layer %q not found", cell.Layer)
		}
		return fmt.Errorf("create %q failed", c.Cell)
	}
	r.e.History().CollectEnd()
	r.created = append(r.created, cell.ID)
	return nil
}

func (r *runner) drag(d *Drag) error {
	if len(d.Path) == 0 {
		return fmt.Errorf("%w: empty drag path", ErrInvalidStep)
	}
	r.e.DragStart(r.screen(d.Path[0]))
	for _, p := range d.Path[1:] {
		r.e.Drag(r.screen(p))
	}
	r.e.DragEnd(r.screen(d.Path[len(d.Path)-1]))
	return nil
}

func (r *runner) zoom(z *Zoom) {
	for range max(1, z.Times) {
		r.e.Zoom(r.screen(z.At), z.Out)
	}
}

func (r *runner) ids() map[string]bool {
	out := make(map[string]bool)
	for _, s := range r.e.Cells() {
		out[s.ID] = true
	}
	return out
}

// resolve turns $N into the id of the N-th created cell.
func (r *runner) resolve(target string) (string, error) {
	ref, ok := strings.CutPrefix(target, "$")
	if !ok {
		return target, nil
	}
	i, err := strconv.Atoi(ref)
	if err != nil || i < 0 || i >= len(r.created) {
		return "", fmt.Errorf("%w: no created cell %s", ErrInvalidStep, target)
	}
	return r.created[i], nil
}

func value(v any) (model.Value, error) {
	switch x := v.(type) {
	case nil:
		return model.Value{}, nil
	case int:
		return model.Num(float64(x)), nil
	case float64:
		return model.Num(x), nil
	case string:
		return model.Str(x), nil
	default:
		return model.Value{}, fmt.Errorf("%w: unsupported value %T", ErrInvalidStep, v)
	}
}
