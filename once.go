package libemit

import "sync/atomic"

// onceListener wraps a listener so that it runs at most once. It keeps a back-reference to
// the emitter and to its own registered handle, which is what it removes after the wrapped
// listener completed.
type onceListener struct {
	emitter  *EventEmitter
	event    string
	listener *Listener
	self     *Listener
	fired    atomic.Bool
}

func (o *onceListener) invoke(args ...any) Result {
	if !o.fired.CompareAndSwap(false, true) {
		return Completed(nil)
	}

	res := o.listener.call(args)
	if res.Kind() == Immediate {
		o.emitter.remove(o.event, o.self)
		return res
	}

	done := make(chan error, 1)
	go func() {
		err := res.Wait()
		o.emitter.remove(o.event, o.self)
		done <- err
		close(done)
	}()
	return Pending(done)
}

// Once registers listener so that it is invoked on the next dispatch of event only. The
// listener is wrapped, hence Off(event, listener) does not remove it; use OnceFunc to get
// a removable handle.
func (e *EventEmitter) Once(event string, listener *Listener) error {
	_, err := e.once(event, listener)
	return err
}

// OnceFunc is Once for a bare function. The returned handle is the registered wrapper and
// can be passed to Off.
func (e *EventEmitter) OnceFunc(event string, fn ListenerFunc) (*Listener, error) {
	return e.once(event, NewListener(fn))
}

func (e *EventEmitter) once(event string, listener *Listener) (*Listener, error) {
	if err := validateListener(event, listener); err != nil {
		return nil, err
	}

	o := &onceListener{
		emitter:  e,
		event:    event,
		listener: listener,
	}
	// The wrapper reports under the original listener id.
	o.self = &Listener{id: listener.ID(), fn: o.invoke}

	if err := e.On(event, o.self); err != nil {
		return nil, err
	}
	return o.self, nil
}
