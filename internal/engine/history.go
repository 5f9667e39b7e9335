package engine

import (
	"github.com/wlmath-dwl/neuron/internal/model"
	"github.com/wlmath-dwl/neuron/internal/typeid"
)

// DefaultUndoLimit bounds the undo stack.
const DefaultUndoLimit = 50

// CommandType tags a history command.
type CommandType string

const (
	CmdEdit   CommandType = "edit"
	CmdCreate CommandType = "create"
	CmdDelete CommandType = "delete"
)

// Command is one replayable change to one cell. Create and delete carry
// the full store; edit carries only the changed fields.
type Command struct {
	Type  CommandType `json:"type"`
	ID    string      `json:"id"`
	Store model.Store `json:"store"`
}

func (c Command) apply(b *Body) {
	switch c.Type {
	case CmdEdit:
		if cell, ok := b.Cell(c.ID); ok {
			cell.Merge(c.Store.Clone())
		}
	case CmdCreate:
		if cell, ok := b.CreateCell(c.Store.Clone(), false); ok {
			b.add(cell, false)
		}
	case CmdDelete:
		b.remove(c.ID, removeOptions{})
	}
}

// Entry is one undoable gesture: the compressed commands that revert it
// and the ones that perform it again.
type Entry struct {
	ID   string    `json:"id"`
	Undo []Command `json:"undo"`
	Redo []Command `json:"redo"`
}

// Depth reports how many entries can be undone and redone.
type Depth struct {
	Undo int `json:"undo"`
	Redo int `json:"redo"`
}

// History records cell changes while a gesture runs and turns each gesture
// into one undo stack entry.
type History struct {
	e     *Engine
	limit int
	lock  bool

	// undoCmds is kept newest first, redoCmds oldest first
	undoCmds []Command
	redoCmds []Command

	undoStack []Entry
	redoStack []Entry
}

func newHistory(e *Engine, limit int) *History {
	if limit <= 0 {
		limit = DefaultUndoLimit
	}
	return &History{e: e, limit: limit}
}

// Active reports whether changes are being recorded: not while a replay
// runs and not before the surface is ready.
func (h *History) Active() bool {
	return !h.lock && h.e.ready
}

// CollectEdit records a field-level change.
func (h *History) CollectEdit(id string, redo, undo model.Store) {
	h.collect(
		Command{Type: CmdEdit, ID: id, Store: redo},
		Command{Type: CmdEdit, ID: id, Store: undo},
	)
}

// CollectCreate records the creation of c.
func (h *History) CollectCreate(c *model.Cell) {
	h.collect(
		Command{Type: CmdCreate, ID: c.ID, Store: c.Store()},
		Command{Type: CmdDelete, ID: c.ID, Store: model.Store{ID: c.ID, Name: c.Name}},
	)
}

// CollectDelete records the removal of c.
func (h *History) CollectDelete(c *model.Cell) {
	h.collect(
		Command{Type: CmdDelete, ID: c.ID, Store: model.Store{ID: c.ID, Name: c.Name}},
		Command{Type: CmdCreate, ID: c.ID, Store: c.Store()},
	)
}

func (h *History) collect(redo, undo Command) {
	if !h.Active() {
		return
	}
	h.redoCmds = append(h.redoCmds, redo)
	h.undoCmds = append([]Command{undo}, h.undoCmds...)
}

// Pending reports whether commands wait for CollectEnd.
func (h *History) Pending() bool {
	return len(h.undoCmds) > 0 || len(h.redoCmds) > 0
}

// CollectEnd closes the current gesture: the pending commands are
// compressed into one entry on the undo stack and the redo stack is
// cleared. Nothing happens when nothing was recorded.
func (h *History) CollectEnd() {
	if !h.Pending() {
		return
	}

	entry := Entry{
		ID:   typeid.NewGroupID(),
		Undo: compress(h.undoCmds),
		Redo: compress(h.redoCmds),
	}
	h.undoCmds = nil
	h.redoCmds = nil

	h.undoStack = append(h.undoStack, entry)
	if len(h.undoStack) > h.limit {
		h.undoStack = append([]Entry(nil), h.undoStack[h.limit:]...)
		h.e.logger.Debug("undo stack trimmed", "limit", h.limit, "kept", len(h.undoStack))
	}
	h.redoStack = nil

	h.e.logger.Debug("history entry recorded",
		"group", entry.ID,
		"undo", len(entry.Undo),
		"redo", len(entry.Redo),
	)
	h.notify()
}

// Undo reverts the most recent entry.
func (h *History) Undo() {
	if len(h.undoStack) == 0 {
		return
	}
	entry := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]

	h.replay(entry.Undo)
	h.redoStack = append(h.redoStack, entry)

	h.e.logger.Debug("undo", "group", entry.ID)
	h.e.body.Render()
	h.notify()
}

// Redo performs the most recently undone entry again.
func (h *History) Redo() {
	if len(h.redoStack) == 0 {
		return
	}
	entry := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]

	h.replay(entry.Redo)
	h.undoStack = append(h.undoStack, entry)

	h.e.logger.Debug("redo", "group", entry.ID)
	h.e.body.Render()
	h.notify()
}

func (h *History) replay(cmds []Command) {
	h.lock = true
	defer func() { h.lock = false }()
	for _, c := range cmds {
		c.apply(h.e.body)
	}
}

// Depth returns the current stack sizes.
func (h *History) Depth() Depth {
	return Depth{Undo: len(h.undoStack), Redo: len(h.redoStack)}
}

func (h *History) notify() {
	h.e.bus.Emit(EventCmd, h.Depth())
}

// compress folds the commands of one gesture to at most one command per
// cell, kept at the position the cell first appeared at.
func compress(cmds []Command) []Command {
	out := make([]Command, 0, len(cmds))
	index := make(map[string]int, len(cmds))
	for _, in := range cmds {
		i, ok := index[in.ID]
		if !ok {
			index[in.ID] = len(out)
			in.Store = in.Store.Clone()
			out = append(out, in)
			continue
		}
		out[i] = combine(out[i], in)
	}
	return out
}

func combine(cur, in Command) Command {
	switch {
	case in.Type == CmdDelete:
		in.Store = in.Store.Clone()
		return in
	case in.Type == CmdCreate:
		// re-creation cancels an earlier delete or edit
		in.Store = in.Store.Clone()
		return in
	case cur.Type == CmdDelete:
		return cur
	case cur.Type == CmdCreate:
		cur.Store = cur.Store.Apply(in.Store)
		return cur
	default:
		cur.Store = cur.Store.Merge(in.Store)
		return cur
	}
}
