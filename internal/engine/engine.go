// Package engine is the interactive scene core: the cell container (Body),
// the motion cascade, the undo history and the gesture dispatcher.
package engine

import (
	"log/slog"

	"github.com/wlmath-dwl/neuron/internal/geom"
	"github.com/wlmath-dwl/neuron/internal/model"
	"github.com/wlmath-dwl/neuron/internal/view"
)

// Config switches engine features.
type Config struct {
	Zoom     bool
	ViewDrag bool
	Disabled bool
	// Hover enables hover tracking. Nil enables it on platforms without
	// touch input.
	Hover *bool
	// Debug renders the coordinate grid under the cells.
	Debug bool

	UndoLimit int
	ZoomStep  float64
	Density   float64
	// Layers are created bottom first.
	Layers []string
}

// DefaultConfig returns the configuration New starts from.
func DefaultConfig() Config {
	return Config{
		Zoom:      true,
		ViewDrag:  true,
		Debug:     true,
		UndoLimit: DefaultUndoLimit,
		ZoomStep:  view.DefaultZoomStep,
		Density:   view.DefaultDensity,
		Layers:    []string{"line", "point"},
	}
}

// Engine owns one scene and everything that acts on it. It is driven from
// a single goroutine.
type Engine struct {
	cfg       Config
	logger    *slog.Logger
	registry  *model.Registry
	transform *view.Transform
	painter   view.Painter
	platform  Platform
	hover     bool
	ready     bool

	bus      *EventBus
	body     *Body
	motion   *Motion
	history  *History
	dispatch *Dispatch
}

// Option configures New.
type Option func(*Engine)

func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func WithRegistry(r *model.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithTransform shares a transform with the painter built around it.
func WithTransform(t *view.Transform) Option {
	return func(e *Engine) { e.transform = t }
}

func WithPainter(p view.Painter) Option {
	return func(e *Engine) { e.painter = p }
}

func WithPlatform(p Platform) Option {
	return func(e *Engine) { e.platform = p }
}

// New creates an engine with its layers initialized and DragFsm active.
// The engine records history only after the first Resize.
func New(opts ...Option) *Engine {
	e := &Engine{
		cfg:      DefaultConfig(),
		logger:   slog.Default(),
		painter:  view.NopPainter{},
		platform: NopPlatform{},
		bus:      NewEventBus(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = model.NewRegistry()
	}
	if e.transform == nil {
		e.transform = view.NewTransform()
	}
	if e.cfg.Density > 0 {
		e.transform.SetDensity(e.cfg.Density)
	}
	if e.cfg.ZoomStep > 0 {
		e.transform.SetZoomStep(e.cfg.ZoomStep)
	}

	e.hover = !e.platform.HasTouchInput()
	if e.cfg.Hover != nil {
		e.hover = *e.cfg.Hover
	}

	e.body = newBody(e)
	e.motion = newMotion(e)
	e.history = newHistory(e, e.cfg.UndoLimit)
	e.dispatch = newDispatch(e)

	e.body.InitLayers(e.cfg.Layers...)
	if err := e.dispatch.ChangeFsm(FsmDrag, nil); err != nil {
		panic(err)
	}
	return e
}

// --- model.Host ---

// Cell looks up an attached cell.
func (e *Engine) Cell(id string) (*model.Cell, bool) {
	return e.body.Cell(id)
}

func (e *Engine) Transform() *view.Transform { return e.transform }

// RecordEdit forwards a cell change to the history.
func (e *Engine) RecordEdit(c *model.Cell, redo, undo model.Store) {
	e.history.CollectEdit(c.ID, redo, undo)
}

// --- Components ---

func (e *Engine) Body() *Body               { return e.body }
func (e *Engine) Motion() *Motion           { return e.motion }
func (e *Engine) History() *History         { return e.history }
func (e *Engine) Dispatch() *Dispatch       { return e.dispatch }
func (e *Engine) Events() *EventBus         { return e.bus }
func (e *Engine) Registry() *model.Registry { return e.registry }
func (e *Engine) Logger() *slog.Logger      { return e.logger }
func (e *Engine) Config() Config            { return e.cfg }

// Ready reports whether the surface has had a non-empty size.
func (e *Engine) Ready() bool { return e.ready }

// SetPainter replaces the render backend.
func (e *Engine) SetPainter(p view.Painter) {
	if p == nil {
		p = view.NopPainter{}
	}
	e.painter = p
}

// --- Input (collaborator → engine) ---

func (e *Engine) Resize(width, height float64)     { e.dispatch.Resize(width, height) }
func (e *Engine) DragStart(screen []geom.Vec)      { e.dispatch.DragStart(screen) }
func (e *Engine) Drag(screen []geom.Vec)           { e.dispatch.Drag(screen) }
func (e *Engine) DragEnd(screen []geom.Vec)        { e.dispatch.DragEnd(screen) }
func (e *Engine) Zoom(screen []geom.Vec, out bool) { e.dispatch.Zoom(screen, out) }

// ChangeFsm switches the gesture state machine.
func (e *Engine) ChangeFsm(name string, param any) error {
	return e.dispatch.ChangeFsm(name, param)
}

func (e *Engine) Undo() { e.history.Undo() }
func (e *Engine) Redo() { e.history.Redo() }

// Render runs a render pass.
func (e *Engine) Render() { e.body.Render() }

// On subscribes to an engine event.
func (e *Engine) On(name string, fn Listener) Handle {
	return e.bus.On(name, fn)
}

// --- Queries (engine → collaborator) ---

// Depth returns the undo and redo stack sizes.
func (e *Engine) Depth() Depth { return e.history.Depth() }

// Cells returns a snapshot of every attached cell in draw order.
func (e *Engine) Cells() []model.Store {
	cells := e.body.GetCells("")
	out := make([]model.Store, len(cells))
	for i, c := range cells {
		out[i] = c.Store()
	}
	return out
}
