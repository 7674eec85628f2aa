package libemit

type (
	// ErrorHandler receives every listener failure captured during a dispatch.
	ErrorHandler func(err *ListenerError)

	Option func(e *EventEmitter)
)

// WithLogger sets the logger used to report listener failures.
func WithLogger(l Logger) Option {
	return func(e *EventEmitter) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithErrorHandler installs a side channel for listener failures, called after logging.
// It may run on a background goroutine when a deferred listener fails.
func WithErrorHandler(h ErrorHandler) Option {
	return func(e *EventEmitter) {
		e.onError = h
	}
}

// WithDispatchMode sets the mode used by Emit.
func WithDispatchMode(mode DispatchMode) Option {
	return func(e *EventEmitter) {
		if mode.valid() {
			e.mode = mode
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(e *EventEmitter) {
		e.metrics = m
	}
}
