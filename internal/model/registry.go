package model

import (
	"errors"
	"fmt"
	"sync"

	"github.com/wlmath-dwl/neuron/internal/geom"
	"github.com/wlmath-dwl/neuron/internal/view"
)

var (
	ErrUnknownVariant   = errors.New("unknown cell variant")
	ErrDuplicateVariant = errors.New("duplicate cell variant")
)

// Kind is the behavior of a cell variant. Implementations read the cell's
// data and links; they keep no per-cell state of their own.
type Kind interface {
	Render(c *Cell, p view.Painter)
	CheckSelect(c *Cell, pt geom.Vec) bool
}

// Updater is implemented by variants that recompute derived geometry when a
// linked cell moves. from is the cell the change came from, or nil.
type Updater interface {
	Update(c *Cell, from *Cell)
}

// Clicker is implemented by variants that react to being picked.
type Clicker interface {
	Click(c *Cell, screen geom.Vec)
}

// PointBase marks a variant as positionable: its position lives in the
// data fields x and y, and motion moves it directly.
type PointBase struct{}

func (PointBase) positionable() {}

type positionable interface {
	positionable()
}

// Host is what a cell needs from the container it lives in.
type Host interface {
	Cell(id string) (*Cell, bool)
	Transform() *view.Transform
	// RecordEdit receives the forward (redo) and inverse (undo) partial
	// stores of a change made to an active cell.
	RecordEdit(c *Cell, redo, undo Store)
}

// Variant describes a registered cell type.
type Variant struct {
	Name string
	// Layer is used when the store being built does not name one.
	Layer    string
	Type     string
	Defaults Data
	New      func() Kind
}

// Registry maps variant names to constructors. It is filled at startup and
// read afterwards; lookups are safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	variants map[string]Variant
}

func NewRegistry() *Registry {
	return &Registry{variants: make(map[string]Variant)}
}

// Register adds a variant. Empty and already registered names are rejected.
func (r *Registry) Register(v Variant) error {
	if v.Name == "" || v.New == nil {
		return fmt.Errorf("register variant %q: name and constructor are required", v.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.variants[v.Name]; ok {
		return fmt.Errorf("register variant %q: %w", v.Name, ErrDuplicateVariant)
	}
	v.Defaults = v.Defaults.Clone()
	r.variants[v.Name] = v
	return nil
}

// MustRegister is Register for package initialization code.
func (r *Registry) MustRegister(v Variant) {
	if err := r.Register(v); err != nil {
		panic(err)
	}
}

// Lookup returns the variant registered under name.
func (r *Registry) Lookup(name string) (Variant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.variants[name]
	return v, ok
}

// Validate returns ErrUnknownVariant, wrapped, if name is not registered.
func (r *Registry) Validate(name string) error {
	if _, ok := r.Lookup(name); !ok {
		return fmt.Errorf("variant %q: %w", name, ErrUnknownVariant)
	}
	return nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.variants)
}
