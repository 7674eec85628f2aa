package libemit

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNilListener     = errors.Wrap(ErrInvalidArgument, "listener must be a non-nil function")
)

// ListenerError is raised when a listener fails during a dispatch, either by returning an
// error, by panicking or by completing its deferred result with an error. It never reaches
// the caller of Emit; it is logged and handed over to the configured ErrorHandler instead.
type ListenerError struct {
	Event      string
	ListenerID string
	Err        error
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("listener %s failed on event %q: %s", e.ListenerID, e.Event, e.Err)
}

func (e *ListenerError) Unwrap() error { return e.Err }

func newListenerError(event string, l *Listener, err error) *ListenerError {
	if err == nil {
		return nil
	}
	return &ListenerError{
		Event:      event,
		ListenerID: l.ID(),
		Err:        err,
	}
}

func validateListener(event string, l *Listener) error {
	if l == nil || l.fn == nil {
		return errors.Wrapf(ErrNilListener, "event %q", event)
	}
	return nil
}
