package libemit

import (
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// DispatchMode selects how a dispatch treats deferred listener results.
type DispatchMode uint8

const (
	// FireAndForget invokes every listener and returns as soon as their synchronous bodies
	// ran. Deferred results are watched in the background only to report failures.
	FireAndForget DispatchMode = iota + 1
	// AwaitAll invokes every listener, then waits until every deferred result settled.
	AwaitAll
)

func (m DispatchMode) valid() bool {
	return m == FireAndForget || m == AwaitAll
}

func (m DispatchMode) String() string {
	switch m {
	case FireAndForget:
		return "fire_and_forget"
	case AwaitAll:
		return "await_all"
	}
	return "unknown"
}

// Outcome describes a finished dispatch.
type Outcome struct {
	// Fired is true when at least one listener was invoked.
	Fired bool
	// Listeners is the number of listeners invoked.
	Listeners int
	// Err combines the listener failures observed before Dispatch returned. In
	// FireAndForget mode failures of deferred listeners arrive later and are only reported
	// to the logger and the ErrorHandler. Err is diagnostic; the dispatch itself never fails.
	Err error
}

// Emit dispatches the event with the emitter's default mode and reports whether any
// listener fired.
func (e *EventEmitter) Emit(event string, args ...any) bool {
	return e.Dispatch(e.mode, event, args...).Fired
}

// EmitSync dispatches the event in FireAndForget mode.
func (e *EventEmitter) EmitSync(event string, args ...any) bool {
	return e.Dispatch(FireAndForget, event, args...).Fired
}

// EmitAwait dispatches the event in AwaitAll mode.
func (e *EventEmitter) EmitAwait(event string, args ...any) bool {
	return e.Dispatch(AwaitAll, event, args...).Fired
}

// Dispatch invokes the listeners registered for event at the time of the call, in
// registration order, passing args to each of them. Listeners registered or removed while
// it runs do not change the set being invoked. An unknown mode falls back to FireAndForget.
func (e *EventEmitter) Dispatch(mode DispatchMode, event string, args ...any) Outcome {
	listeners := e.snapshot(event)
	if len(listeners) == 0 {
		e.logger.WithField("event", event).Debug("no listeners to dispatch to")
		e.metrics.observeDispatch(event, false)
		return Outcome{}
	}

	var out Outcome
	if mode == AwaitAll {
		out = e.dispatchAwait(event, listeners, args)
	} else {
		out = e.dispatchForget(event, listeners, args)
	}
	e.metrics.observeDispatch(event, true)
	return out
}

func (e *EventEmitter) dispatchForget(event string, listeners []*Listener, args []any) Outcome {
	var errs error

	for _, l := range listeners {
		res := l.call(args)
		if res.Kind() == Deferred {
			go func(l *Listener, res Result) {
				e.report(event, l, res.Wait())
			}(l, res)
			continue
		}
		if lerr := e.report(event, l, res.Err()); lerr != nil {
			errs = multierr.Append(errs, lerr)
		}
	}

	return Outcome{Fired: true, Listeners: len(listeners), Err: errs}
}

func (e *EventEmitter) dispatchAwait(event string, listeners []*Listener, args []any) Outcome {
	var (
		mu   sync.Mutex
		errs error
		g    errgroup.Group
	)

	collect := func(lerr *ListenerError) {
		if lerr == nil {
			return
		}
		mu.Lock()
		errs = multierr.Append(errs, lerr)
		mu.Unlock()
	}

	// Start everything first so that a slow listener does not delay the next ones.
	results := make([]Result, len(listeners))
	for i, l := range listeners {
		results[i] = l.call(args)
	}

	for i, l := range listeners {
		res := results[i]
		if res.Kind() == Immediate {
			collect(e.report(event, l, res.Err()))
			continue
		}
		l := l // per-iteration copy; go.mod targets go1.21 loop semantics
		g.Go(func() error {
			collect(e.report(event, l, res.Wait()))
			return nil
		})
	}
	_ = g.Wait()

	return Outcome{Fired: true, Listeners: len(listeners), Err: errs}
}

// report logs a listener failure and forwards it to the error handler.
func (e *EventEmitter) report(event string, l *Listener, err error) *ListenerError {
	lerr := newListenerError(event, l, err)
	if lerr == nil {
		return nil
	}

	e.logger.
		WithField("event", event).
		WithField("listener", lerr.ListenerID).
		Errorf("listener failed: %s", err)
	e.metrics.observeFailure(event)
	if e.onError != nil {
		e.onError(lerr)
	}
	return lerr
}
