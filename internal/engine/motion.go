package engine

import (
	"github.com/wlmath-dwl/neuron/internal/geom"
	"github.com/wlmath-dwl/neuron/internal/model"
)

// Target describes one step of a motion cascade.
type Target struct {
	Cell *model.Cell
	// Pos is the new position of a positionable cell, or the displacement
	// from its anchor when Offset is set. Nil only updates the cell.
	Pos    *geom.Vec
	Offset bool
	// From is the cell the change came from.
	From *model.Cell
}

// Motion propagates a position change through the link graph.
//
// The visited set lives for one cascade; the anchors live until DragClear,
// so relative drags within one gesture are measured from where each cell
// started.
type Motion struct {
	e       *Engine
	visited map[string]bool
	anchors map[string]geom.Vec
}

func newMotion(e *Engine) *Motion {
	return &Motion{
		e:       e,
		visited: make(map[string]bool),
		anchors: make(map[string]geom.Vec),
	}
}

// Drag moves t.Cell and cascades: parents are updated without a position,
// children receive the same position or offset. Each cell is visited at
// most once per cascade. continuing is set on the recursive calls.
func (m *Motion) Drag(t Target, continuing bool) {
	if !continuing {
		clear(m.visited)
	}

	c := t.Cell
	if c == nil || m.visited[c.ID] {
		return
	}
	m.visited[c.ID] = true

	if c.IsPoint() && t.Pos != nil {
		anchor, ok := m.anchors[c.ID]
		if !ok {
			anchor = c.Pos()
			m.anchors[c.ID] = anchor
		}
		pos := *t.Pos
		if t.Offset {
			pos = anchor.Add(pos)
		}
		c.SetFields(model.Data{"x": model.Num(pos.X), "y": model.Num(pos.Y)})
	}

	c.Update(t.From)

	for _, id := range c.Parents() {
		if p, ok := m.e.body.Cell(id); ok {
			m.Drag(Target{Cell: p, From: c}, true)
		}
	}

	for _, id := range c.ChildIDs() {
		if child, ok := m.e.body.Cell(id); ok {
			m.Drag(Target{Cell: child, Pos: t.Pos, Offset: t.Offset, From: c}, true)
		}
	}
}

// DragClear forgets the visited set and the anchors. Gestures call it when
// they end.
func (m *Motion) DragClear() {
	clear(m.visited)
	clear(m.anchors)
}

// SetPos moves c to the logical position pos as one standalone cascade and
// renders.
func (m *Motion) SetPos(c *model.Cell, pos geom.Vec) {
	m.DragClear()
	m.Drag(Target{Cell: c, Pos: &pos}, false)
	m.DragClear()
	m.e.body.Render()
}
