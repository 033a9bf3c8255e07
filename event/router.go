package event

// Listener receives routed notifications
type Listener interface {
	// HandleEvent processes a single event, synchronously with the emitter
	HandleEvent(ev GameEvent)

	// EventTypes returns the event types this listener processes
	EventTypes() []EventType
}

// ListenerFunc adapts a function to a Listener subscribed to the given types
type ListenerFunc struct {
	Types []EventType
	Fn    func(GameEvent)
}

func (l ListenerFunc) HandleEvent(ev GameEvent)  { l.Fn(ev) }
func (l ListenerFunc) EventTypes() []EventType { return l.Types }

// Router dispatches notifications to registered listeners
//
// Architecture:
//   - Single-threaded, synchronous dispatch
//   - Multiple listeners can register for the same event type
//   - Listeners are invoked in registration order
type Router struct {
	listeners map[EventType][]Listener
}

// NewRouter creates an empty router
func NewRouter() *Router {
	return &Router{
		listeners: make(map[EventType][]Listener),
	}
}

// Register adds a listener for its declared event types
func (r *Router) Register(l Listener) {
	for _, t := range l.EventTypes() {
		r.listeners[t] = append(r.listeners[t], l)
	}
}

// Emit delivers ev to every listener of its type
func (r *Router) Emit(ev GameEvent) {
	for _, l := range r.listeners[ev.Type] {
		l.HandleEvent(ev)
	}
}

// HasListeners returns true if any listener is registered for t
func (r *Router) HasListeners(t EventType) bool {
	return len(r.listeners[t]) > 0
}
