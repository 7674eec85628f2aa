package libemit

import (
	"sort"
	"sync"
)

// EventEmitter maps event names to ordered lists of listeners. Listeners run in
// registration order. An event name is created the first time any operation other than
// HasEvent touches it and stays around, possibly empty, until ClearListener is called
// without names.
//
// The registry is guarded by a lock which is never held while listeners run, so listeners
// may register, remove or emit from within their body.
type EventEmitter struct {
	listeners map[string][]*Listener
	lock      sync.RWMutex

	mode    DispatchMode
	logger  Logger
	onError ErrorHandler
	metrics *Metrics
}

// New creates an empty EventEmitter.
func New(opts ...Option) *EventEmitter {
	e := &EventEmitter{
		listeners: make(map[string][]*Listener),
		mode:      FireAndForget,
		logger:    NoopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// init makes sure the event has an entry. Must be called with the write lock held.
func (e *EventEmitter) init(event string) {
	if _, ok := e.listeners[event]; !ok {
		e.listeners[event] = []*Listener{}
	}
}

// On appends listener to the event. It fails with ErrInvalidArgument if the listener or
// its function is nil. The same listener may be registered several times and is then
// invoked as many times per dispatch.
func (e *EventEmitter) On(event string, listener *Listener) error {
	if err := validateListener(event, listener); err != nil {
		return err
	}

	e.lock.Lock()
	defer e.lock.Unlock()

	e.init(event)
	e.listeners[event] = append(e.listeners[event], listener)
	return nil
}

// AddListener is an alias for On.
func (e *EventEmitter) AddListener(event string, listener *Listener) error {
	return e.On(event, listener)
}

// OnFunc registers fn and returns the handle needed to remove it later.
func (e *EventEmitter) OnFunc(event string, fn ListenerFunc) (*Listener, error) {
	l := NewListener(fn)
	if err := e.On(event, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Off removes every occurrence of the given listeners from the event. Without listeners it
// removes all listeners of the event, keeping the event itself. Removing from an unknown
// event is not an error.
func (e *EventEmitter) Off(event string, listeners ...*Listener) error {
	for _, l := range listeners {
		if err := validateListener(event, l); err != nil {
			return err
		}
	}

	e.lock.Lock()
	defer e.lock.Unlock()

	e.init(event)

	if len(listeners) == 0 {
		e.listeners[event] = []*Listener{}
		return nil
	}

	e.listeners[event] = without(e.listeners[event], listeners...)
	return nil
}

// remove drops a single listener; used by once adapters.
func (e *EventEmitter) remove(event string, listener *Listener) {
	e.lock.Lock()
	defer e.lock.Unlock()

	if current, ok := e.listeners[event]; ok {
		e.listeners[event] = without(current, listener)
	}
}

// without returns a new slice holding the listeners of current not present in drop.
// A fresh slice keeps snapshots taken by in-flight dispatches untouched.
func without(current []*Listener, drop ...*Listener) []*Listener {
	kept := make([]*Listener, 0, len(current))
outer:
	for _, l := range current {
		for _, d := range drop {
			if l == d {
				continue outer
			}
		}
		kept = append(kept, l)
	}
	return kept
}

// ClearListener empties the given events, creating them if needed. Without events it
// drops every event from the registry.
func (e *EventEmitter) ClearListener(events ...string) *EventEmitter {
	e.lock.Lock()
	defer e.lock.Unlock()

	if len(events) == 0 {
		e.listeners = make(map[string][]*Listener)
		return e
	}

	for _, event := range events {
		e.listeners[event] = []*Listener{}
	}
	return e
}

// HasEvent reports whether the event is present in the registry, whatever its number of
// listeners.
func (e *EventEmitter) HasEvent(event string) bool {
	e.lock.RLock()
	defer e.lock.RUnlock()

	_, ok := e.listeners[event]
	return ok
}

// Listeners returns a copy of the registry. Changing it has no effect on the emitter.
func (e *EventEmitter) Listeners() map[string][]*Listener {
	e.lock.RLock()
	defer e.lock.RUnlock()

	out := make(map[string][]*Listener, len(e.listeners))
	for event, listeners := range e.listeners {
		out[event] = append([]*Listener{}, listeners...)
	}
	return out
}

func (e *EventEmitter) ListenerCount(event string) int {
	e.lock.RLock()
	defer e.lock.RUnlock()

	return len(e.listeners[event])
}

// EventNames returns the known event names in lexical order.
func (e *EventEmitter) EventNames() []string {
	e.lock.RLock()
	defer e.lock.RUnlock()

	names := make([]string, 0, len(e.listeners))
	for event := range e.listeners {
		names = append(names, event)
	}
	sort.Strings(names)
	return names
}

// snapshot ensures the event exists and returns its current listeners. The returned slice
// is never mutated afterwards since every removal builds a new one, and appends past
// its length are invisible to it.
func (e *EventEmitter) snapshot(event string) []*Listener {
	e.lock.Lock()
	defer e.lock.Unlock()

	e.init(event)
	listeners := e.listeners[event]
	return listeners[:len(listeners):len(listeners)]
}
