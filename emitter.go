package libemit

// Emitter is the public call surface of EventEmitter.
type Emitter interface {
	// On registers a listener for the given event. AddListener is an alias.
	On(event string, listener *Listener) error
	AddListener(event string, listener *Listener) error

	// Once registers a listener that is invoked at most once.
	Once(event string, listener *Listener) error

	// Off removes the given listeners from the event, or every listener of the event if
	// none is given.
	Off(event string, listeners ...*Listener) error

	// ClearListener empties the given events, or drops every event if none is given.
	ClearListener(events ...string) *EventEmitter

	// HasEvent reports whether the event has ever been touched.
	HasEvent(event string) bool

	// Listeners returns a copy of the registry.
	Listeners() map[string][]*Listener

	// Emit triggers every listener registered for the event and reports whether any fired.
	Emit(event string, args ...any) bool

	// Dispatch is Emit with an explicit mode and a detailed outcome.
	Dispatch(mode DispatchMode, event string, args ...any) Outcome
}

var _ Emitter = (*EventEmitter)(nil)
