package libemit

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ResultKind tells how a listener completed.
type ResultKind uint8

const (
	// Immediate results are final when the listener returns.
	Immediate ResultKind = iota + 1
	// Deferred results complete later, when their channel yields a value or is closed.
	Deferred
)

func (k ResultKind) String() string {
	switch k {
	case Immediate:
		return "immediate"
	case Deferred:
		return "deferred"
	}
	return "unknown"
}

// Result is what a ListenerFunc hands back to the dispatcher. The zero value behaves as a
// successful Immediate result.
type Result struct {
	kind ResultKind
	err  error
	done <-chan error
}

// Completed returns an Immediate result. A non-nil err marks the listener as failed.
func Completed(err error) Result {
	return Result{kind: Immediate, err: err}
}

// Pending returns a Deferred result. The listener must either send at most one error
// (nil on success) on done or close it.
func Pending(done <-chan error) Result {
	if done == nil {
		return Completed(nil)
	}
	return Result{kind: Deferred, done: done}
}

func (r Result) Kind() ResultKind {
	if r.kind == 0 {
		return Immediate
	}
	return r.kind
}

// Err returns the failure of an Immediate result. It is always nil for Deferred ones.
func (r Result) Err() error {
	return r.err
}

// Wait blocks until the result settles and returns its failure, if any.
func (r Result) Wait() error {
	if r.Kind() == Immediate {
		return r.err
	}
	err, ok := <-r.done
	if !ok {
		return nil
	}
	return err
}

type (
	// ListenerFunc is the uniform invocation signature of every listener.
	ListenerFunc func(args ...any) Result

	// Listener is a registered callable. Two listeners are the same only if they are the
	// same handle, so keep the handle around to remove it later with Off.
	Listener struct {
		id string
		fn ListenerFunc
	}
)

// NewListener wraps fn into a Listener handle. A nil fn yields a handle that every
// registration operation rejects with ErrInvalidArgument.
func NewListener(fn ListenerFunc) *Listener {
	return &Listener{id: uuid.NewString(), fn: fn}
}

// ID is a random identifier used in diagnostics.
func (l *Listener) ID() string {
	if l == nil {
		return ""
	}
	return l.id
}

// call runs the listener, turning a panic into an Immediate failure.
func (l *Listener) call(args []any) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Completed(recoveredError(r))
		}
	}()
	return l.fn(args...)
}

// Func adapts a plain function that neither fails nor defers.
func Func(fn func(args ...any)) ListenerFunc {
	if fn == nil {
		return nil
	}
	return func(args ...any) Result {
		fn(args...)
		return Completed(nil)
	}
}

// ErrFunc adapts a synchronous function whose error marks the listener as failed.
func ErrFunc(fn func(args ...any) error) ListenerFunc {
	if fn == nil {
		return nil
	}
	return func(args ...any) Result {
		return Completed(fn(args...))
	}
}

// AsyncFunc adapts a function that runs in its own goroutine. The listener is started
// when invoked and reports a Deferred result settled by fn's return value.
func AsyncFunc(fn func(args ...any) error) ListenerFunc {
	if fn == nil {
		return nil
	}
	return func(args ...any) Result {
		done := make(chan error, 1)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					done <- recoveredError(r)
				}
				close(done)
			}()
			done <- fn(args...)
		}()
		return Pending(done)
	}
}

func recoveredError(r any) error {
	if err, ok := r.(error); ok {
		return errors.Wrap(err, "listener panicked")
	}
	return errors.Errorf("listener panicked: %v", r)
}
