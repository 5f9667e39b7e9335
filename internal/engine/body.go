package engine

import (
	"math/rand/v2"
	"slices"

	"github.com/wlmath-dwl/neuron/internal/geom"
	"github.com/wlmath-dwl/neuron/internal/model"
)

const (
	idLength  = 6
	idCharset = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Layer is a named z-ordered bucket of cells. Later cells draw on top.
type Layer struct {
	Name  string
	Cells []*model.Cell
}

// Body owns the layers and the id index of all attached cells. Every
// structural change goes through it.
type Body struct {
	e      *Engine
	layers []*Layer
	cells  map[string]*model.Cell
}

func newBody(e *Engine) *Body {
	return &Body{e: e, cells: make(map[string]*model.Cell)}
}

// InitLayers replaces all layers with empty ones, bottom first. Repeated
// names are skipped. Previously attached cells are dropped.
func (b *Body) InitLayers(names ...string) {
	b.layers = nil
	b.cells = make(map[string]*model.Cell)
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			b.e.logger.Warn("duplicate layer name ignored", "layer", name)
			continue
		}
		seen[name] = true
		b.layers = append(b.layers, &Layer{Name: name})
	}
}

// Layers returns the layer names, bottom first.
func (b *Body) Layers() []string {
	names := make([]string, len(b.layers))
	for i, l := range b.layers {
		names[i] = l.Name
	}
	return names
}

func (b *Body) layer(name string) *Layer {
	for _, l := range b.layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Cell looks up an attached cell by id.
func (b *Body) Cell(id string) (*model.Cell, bool) {
	c, ok := b.cells[id]
	return c, ok
}

// Len returns the number of attached cells.
func (b *Body) Len() int {
	return len(b.cells)
}

// CreateCell builds a cell of the variant named by s.Name and, if attach
// is set, adds it to its layer. A missing id is generated. Unknown variant
// names yield (nil, false); a cell whose layer does not exist is returned
// unattached with false.
func (b *Body) CreateCell(s model.Store, attach bool) (*model.Cell, bool) {
	v, ok := b.e.registry.Lookup(s.Name)
	if !ok {
		b.e.logger.Debug("unknown cell variant", "name", s.Name)
		return nil, false
	}
	if s.ID == "" {
		s.ID = b.newID()
	}

	c := model.New(b.e, v, s)
	if attach && !b.AddCell(c) {
		return c, false
	}
	return c, true
}

// AddCell attaches c to its layer, records its creation, activates it and
// renders. A cell whose layer does not exist is not attached. A cell with
// the id of an attached cell replaces it.
func (b *Body) AddCell(c *model.Cell) bool {
	return b.add(c, true)
}

func (b *Body) add(c *model.Cell, render bool) bool {
	l := b.layer(c.Layer)
	if l == nil {
		b.e.logger.Warn("cell layer not found", "id", c.ID, "layer", c.Layer)
		return false
	}

	if old, ok := b.cells[c.ID]; ok {
		b.detach(old)
		b.e.history.CollectDelete(old)
	}

	l.Cells = append(l.Cells, c)
	b.cells[c.ID] = c
	b.e.history.CollectCreate(c)
	c.Activate()

	if render {
		b.Render()
	}
	return true
}

// RemoveOption configures RemoveCell.
type RemoveOption func(*removeOptions)

type removeOptions struct {
	root      bool
	recursion bool
}

// WithoutRecursion removes only the given cell, leaving its dependents.
func WithoutRecursion() RemoveOption {
	return func(o *removeOptions) {
		o.recursion = false
	}
}

// RemoveCell detaches the cell with the given id and, unless
// WithoutRecursion is passed, every cell listed as its parent, recursively.
// The call closes the current history group. Unknown ids are ignored.
func (b *Body) RemoveCell(id string, opts ...RemoveOption) {
	o := removeOptions{root: true, recursion: true}
	for _, opt := range opts {
		opt(&o)
	}
	b.remove(id, o)
}

func (b *Body) remove(id string, o removeOptions) {
	c, ok := b.cells[id]
	if !ok {
		return
	}
	// unindexed before recursing so cycles stop here
	b.detach(c)
	b.e.history.CollectDelete(c)

	if o.recursion {
		for _, pid := range c.Parents() {
			b.remove(pid, removeOptions{recursion: true})
		}
	}

	if o.root {
		b.e.history.CollectEnd()
		if h, ok := b.e.dispatch.fsm.(cellStateHolder); ok {
			h.ClearCellState()
		}
		b.Render()
	}
}

func (b *Body) detach(c *model.Cell) {
	delete(b.cells, c.ID)
	if l := b.layer(c.Layer); l != nil {
		l.Cells = slices.DeleteFunc(l.Cells, func(x *model.Cell) bool { return x == c })
	}
	c.Deactivate()
}

// SelectOption narrows GetSelectCell.
type SelectOption func(*selectOptions)

type selectOptions struct {
	layer  string
	filter map[string]bool
}

// WithLayer limits the hit test to one layer.
func WithLayer(name string) SelectOption {
	return func(o *selectOptions) {
		o.layer = name
	}
}

// WithFilter skips the given ids.
func WithFilter(ids ...string) SelectOption {
	return func(o *selectOptions) {
		if o.filter == nil {
			o.filter = make(map[string]bool, len(ids))
		}
		for _, id := range ids {
			o.filter[id] = true
		}
	}
}

// GetSelectCell returns the topmost cell whose hit test accepts the
// logical point pt.
func (b *Body) GetSelectCell(pt geom.Vec, opts ...SelectOption) (*model.Cell, bool) {
	var o selectOptions
	for _, opt := range opts {
		opt(&o)
	}

	cells := b.GetCells(o.layer)
	// back to front: the last inserted cell is on top
	for i := len(cells) - 1; i >= 0; i-- {
		c := cells[i]
		if o.filter[c.ID] {
			continue
		}
		if c.CheckSelect(pt) {
			return c, true
		}
	}
	return nil, false
}

// GetCells returns the cells of the named layer. An empty name, an
// unknown layer or an empty layer yields all cells in layer order.
// The returned slice is a copy.
func (b *Body) GetCells(layer string) []*model.Cell {
	if l := b.layer(layer); l != nil && len(l.Cells) > 0 {
		return slices.Clone(l.Cells)
	}
	var all []*model.Cell
	for _, l := range b.layers {
		all = append(all, l.Cells...)
	}
	return all
}

// Render clears the surface and draws every cell, bottom layer first.
func (b *Body) Render() {
	p := b.e.painter
	p.Clear()
	if b.e.cfg.Debug {
		p.RenderCoordinate()
	}
	for _, c := range b.GetCells("") {
		c.Render(p)
	}
}

func (b *Body) newID() string {
	buf := make([]byte, idLength)
	for {
		for i := range buf {
			buf[i] = idCharset[rand.IntN(len(idCharset))]
		}
		if id := string(buf); b.cells[id] == nil {
			return id
		}
	}
}
