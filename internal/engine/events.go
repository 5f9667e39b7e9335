package engine

// Event names emitted by the engine.
const (
	EventReady  = "ready"
	EventSelect = "select"
	EventCmd    = "cmd"
)

// Listener receives the arguments passed to Emit.
type Listener func(args ...any)

type listener struct {
	id uint32
	fn Listener
}

// EventBus is a named publish/subscribe surface. Listeners of one event
// fire in subscription order. It is not safe for concurrent use; the engine
// emits from the goroutine that drives it.
type EventBus struct {
	listeners map[string][]listener
	nextID    uint32
}

// Handle identifies a subscription.
type Handle struct {
	id   uint32
	name string
	bus  *EventBus
}

// Remove unsubscribes the listener. Removing twice is a no-op.
func (h Handle) Remove() {
	if h.bus != nil {
		h.bus.Off(h.name, h)
	}
}

func NewEventBus() *EventBus {
	return &EventBus{listeners: make(map[string][]listener)}
}

// On subscribes fn to name.
func (b *EventBus) On(name string, fn Listener) Handle {
	b.nextID++
	id := b.nextID
	b.listeners[name] = append(b.listeners[name], listener{id: id, fn: fn})
	return Handle{id: id, name: name, bus: b}
}

// Off unsubscribes the listener behind h from name.
func (b *EventBus) Off(name string, h Handle) {
	s := b.listeners[name]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = listener{}
			b.listeners[name] = s[:len(s)-1]
			return
		}
	}
}

// Emit calls every listener of name with args.
func (b *EventBus) Emit(name string, args ...any) {
	// listeners may unsubscribe while we iterate
	for _, l := range append([]listener(nil), b.listeners[name]...) {
		l.fn(args...)
	}
}
