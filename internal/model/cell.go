package model

import (
	"slices"

	"github.com/wlmath-dwl/neuron/internal/geom"
	"github.com/wlmath-dwl/neuron/internal/view"
)

// Cell is one addressable entity of the scene graph.
//
// A cell is built with New and becomes live with Activate, which the owning
// container calls once the cell is attached. Only active cells render,
// answer hit tests and report their changes to the host.
type Cell struct {
	ID    string
	Name  string
	Type  string
	Layer string
	State State

	data       Data
	linkChild  Links
	linkRely   Links
	linkParent []string

	kind     Kind
	host     Host
	active   bool
	rendered Data
}

// New builds an inactive cell of variant v from the store s. Variant
// defaults fill the fields s does not set.
func New(host Host, v Variant, s Store) *Cell {
	c := &Cell{
		ID:    s.ID,
		Name:  v.Name,
		Type:  s.Type,
		Layer: s.Layer,
		State: State{Show: true},
		data:  v.Defaults.Clone(),
		kind:  v.New(),
		host:  host,
	}
	if c.Type == "" {
		c.Type = v.Type
	}
	if c.Layer == "" {
		c.Layer = v.Layer
	}
	if c.data == nil {
		c.data = Data{}
	}

	applied := Store{Data: c.data}.Apply(Store{
		Data:      s.Data,
		LinkChild: s.LinkChild,
		LinkRely:  s.LinkRely,
	})
	c.data = applied.Data
	c.linkChild = applied.LinkChild
	c.linkRely = applied.LinkRely
	if c.linkChild == nil {
		c.linkChild = Links{}
	}
	if c.linkRely == nil {
		c.linkRely = Links{}
	}
	c.linkParent = append([]string{}, s.LinkParent...)
	return c
}

// Activate makes the cell live and registers it as a parent of every cell
// it links to.
func (c *Cell) Activate() {
	if c.active {
		return
	}
	c.active = true
	for _, id := range c.linkChild.Flat() {
		c.registerParent(id)
	}
	for _, id := range c.linkRely.Flat() {
		c.registerParent(id)
	}
}

// Deactivate stops rendering, hit testing and change reporting. The
// container calls it when the cell is detached.
func (c *Cell) Deactivate() {
	c.active = false
}

func (c *Cell) Active() bool { return c.active }
func (c *Cell) Kind() Kind   { return c.kind }

// Transform returns the coordinate mapping of the host.
func (c *Cell) Transform() *view.Transform {
	return c.host.Transform()
}

// Get returns the value of a data field, unset if absent.
func (c *Cell) Get(key string) Value {
	return c.data[key]
}

// Float returns a numeric data field, 0 if absent.
func (c *Cell) Float(key string) float64 {
	return c.data[key].Float()
}

// Data returns a copy of the data fields.
func (c *Cell) Data() Data {
	return c.data.Clone()
}

// RenderedData returns the data snapshot taken by the last render, or nil.
func (c *Cell) RenderedData() Data {
	return c.rendered.Clone()
}

// SetField writes one data field. An unset value deletes it.
func (c *Cell) SetField(key string, v Value) {
	c.SetFields(Data{key: v})
}

// SetFields writes several data fields as one change.
func (c *Cell) SetFields(d Data) {
	redo := Data{}
	undo := Data{}
	for k, v := range d {
		old, had := c.data[k]
		if had == v.IsSet() && old == v {
			continue
		}
		if v.IsSet() {
			c.data[k] = v
		} else {
			delete(c.data, k)
		}
		redo[k] = v
		undo[k] = old
	}
	if len(redo) == 0 {
		return
	}
	c.record(Store{Data: redo}, Store{Data: undo})
}

// Link returns the ids in a child slot.
func (c *Cell) Link(slot string) []string {
	return slices.Clone(c.linkChild[slot])
}

// Rely returns the ids in a rely slot.
func (c *Cell) Rely(slot string) []string {
	return slices.Clone(c.linkRely[slot])
}

func (c *Cell) LinkChild() Links { return c.linkChild.Clone() }
func (c *Cell) LinkRely() Links  { return c.linkRely.Clone() }

// Parents returns the ids of the cells that depend on this one.
func (c *Cell) Parents() []string {
	return slices.Clone(c.linkParent)
}

// ChildIDs returns every id referenced by a child slot, once each.
func (c *Cell) ChildIDs() []string {
	return c.linkChild.Flat()
}

// Linked resolves the cells in a child slot, skipping unknown ids.
func (c *Cell) Linked(slot string) []*Cell {
	var out []*Cell
	for _, id := range c.linkChild[slot] {
		if t, ok := c.host.Cell(id); ok {
			out = append(out, t)
		}
	}
	return out
}

// SetLink replaces a child slot. No ids removes the slot. Each target
// gets this cell registered as a parent.
func (c *Cell) SetLink(slot string, ids ...string) {
	c.setSlot(true, slot, ids)
}

// SetRely replaces a rely slot, with the same parent registration as
// SetLink.
func (c *Cell) SetRely(slot string, ids ...string) {
	c.setSlot(false, slot, ids)
}

func (c *Cell) setSlot(child bool, slot string, ids []string) {
	links := c.linkRely
	if child {
		links = c.linkChild
	}

	old, had := links[slot]
	var next []string
	if len(ids) > 0 {
		next = slices.Clone(ids)
		links[slot] = next
	} else {
		if !had {
			return
		}
		delete(links, slot)
	}

	var redo, undo Store
	if child {
		redo.LinkChild = Links{slot: slices.Clone(next)}
		undo.LinkChild = Links{slot: old}
	} else {
		redo.LinkRely = Links{slot: slices.Clone(next)}
		undo.LinkRely = Links{slot: old}
	}
	c.record(redo, undo)

	for _, id := range next {
		c.registerParent(id)
	}
}

// AddParent registers id as a dependent of this cell.
func (c *Cell) AddParent(id string) {
	if slices.Contains(c.linkParent, id) {
		return
	}
	old := append([]string{}, c.linkParent...)
	c.linkParent = append(c.linkParent, id)
	c.record(
		Store{LinkParent: append([]string{}, c.linkParent...)},
		Store{LinkParent: old},
	)
}

func (c *Cell) registerParent(target string) {
	if !c.active || target == c.ID {
		return
	}
	if t, ok := c.host.Cell(target); ok {
		t.AddParent(c.ID)
	}
}

// Store returns an independent snapshot of the persisted fields.
func (c *Cell) Store() Store {
	return Store{
		ID:         c.ID,
		Name:       c.Name,
		Type:       c.Type,
		Layer:      c.Layer,
		Data:       c.data.Clone(),
		LinkChild:  c.linkChild.Clone(),
		LinkRely:   c.linkRely.Clone(),
		LinkParent: append([]string{}, c.linkParent...),
	}
}

// Merge applies a partial store to the live cell. Identity fields of s are
// ignored.
func (c *Cell) Merge(s Store) {
	before := c.Store()
	after := before.Apply(s)

	c.data = after.Data
	if c.data == nil {
		c.data = Data{}
	}
	c.linkChild = after.LinkChild
	if c.linkChild == nil {
		c.linkChild = Links{}
	}
	c.linkRely = after.LinkRely
	if c.linkRely == nil {
		c.linkRely = Links{}
	}
	c.linkParent = after.LinkParent

	undo := Store{}
	for k := range s.Data {
		if undo.Data == nil {
			undo.Data = Data{}
		}
		undo.Data[k] = before.Data[k]
	}
	undo.LinkChild = previousSlots(before.LinkChild, s.LinkChild)
	undo.LinkRely = previousSlots(before.LinkRely, s.LinkRely)
	if s.LinkParent != nil {
		undo.LinkParent = before.LinkParent
	}
	redo := s.Clone()
	redo.ID, redo.Name, redo.Type, redo.Layer = "", "", "", ""
	c.record(redo, undo)

	for _, id := range s.LinkChild.Flat() {
		c.registerParent(id)
	}
	for _, id := range s.LinkRely.Flat() {
		c.registerParent(id)
	}
}

func previousSlots(before, changed Links) Links {
	if len(changed) == 0 {
		return nil
	}
	out := Links{}
	for k := range changed {
		out[k] = slices.Clone(before[k])
	}
	return out
}

func (c *Cell) record(redo, undo Store) {
	if !c.active {
		return
	}
	redo.ID, redo.Name = c.ID, c.Name
	undo.ID, undo.Name = c.ID, c.Name
	c.host.RecordEdit(c, redo, undo)
}

// Render draws the cell if it is active and shown, keeping a snapshot of
// the data it was drawn from.
func (c *Cell) Render(p view.Painter) {
	if !c.active || !c.State.Show {
		return
	}
	c.rendered = c.data.Clone()
	c.kind.Render(c, p)
}

// CheckSelect hit tests the logical point pt. Hidden cells never hit.
func (c *Cell) CheckSelect(pt geom.Vec) bool {
	if !c.active || !c.State.Show {
		return false
	}
	return c.kind.CheckSelect(c, pt)
}

// Update runs the variant's update hook, if any.
func (c *Cell) Update(from *Cell) {
	if u, ok := c.kind.(Updater); ok {
		u.Update(c, from)
	}
}

// Click runs the variant's click hook, if any.
func (c *Cell) Click(screen geom.Vec) {
	if k, ok := c.kind.(Clicker); ok {
		k.Click(c, screen)
	}
}

// ClearState drops hover and selection.
func (c *Cell) ClearState() {
	c.State.Hover = false
	c.State.Select = false
}

// IsPoint reports whether the variant is positionable.
func (c *Cell) IsPoint() bool {
	_, ok := c.kind.(positionable)
	return ok
}

// Pos returns the logical position stored in x and y. String values are
// physical pixel coordinates and are converted.
func (c *Cell) Pos() geom.Vec {
	x, y := c.data["x"], c.data["y"]
	p := geom.V(x.Float(), y.Float())
	if x.IsStr() {
		p.X = c.Transform().LogicalX(p.X)
	}
	if y.IsStr() {
		p.Y = c.Transform().LogicalY(p.Y)
	}
	return p
}

// SetPosImmediate writes a logical position without running the motion
// cascade.
func (c *Cell) SetPosImmediate(pos geom.Vec) {
	c.SetFields(Data{"x": Num(pos.X), "y": Num(pos.Y)})
}
