package libemit

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnce(t *testing.T) {
	for _, mode := range []DispatchMode{FireAndForget, AwaitAll} {
		t.Run(mode.String(), func(t *testing.T) {
			emitter := New()
			var calls atomic.Int32
			var got any

			err := emitter.Once("event", NewListener(Func(func(args ...any) {
				calls.Add(1)
				got = args[0]
			})))
			require.NoError(t, err)

			assert.True(t, emitter.Dispatch(mode, "event", "test").Fired)
			assert.False(t, emitter.Dispatch(mode, "event", "test").Fired)

			assert.Equal(t, int32(1), calls.Load())
			assert.Equal(t, "test", got)
			assert.True(t, emitter.HasEvent("event"))
			assert.Zero(t, emitter.ListenerCount("event"))
		})
	}
}

func TestOnce_DeferredRemovedBeforeAwaitReturns(t *testing.T) {
	emitter := New()
	var calls atomic.Int32

	_, err := emitter.OnceFunc("event", AsyncFunc(func(args ...any) error {
		time.Sleep(10 * time.Millisecond)
		calls.Add(1)
		return nil
	}))
	require.NoError(t, err)

	require.True(t, emitter.EmitAwait("event"))
	assert.Equal(t, int32(1), calls.Load())
	assert.Zero(t, emitter.ListenerCount("event"))
	assert.False(t, emitter.EmitAwait("event"))
}

func TestOnce_DeferredFiresOnceEvenBeforeRemoval(t *testing.T) {
	emitter := New()
	var calls atomic.Int32
	release := make(chan struct{})

	_, err := emitter.OnceFunc("event", AsyncFunc(func(args ...any) error {
		calls.Add(1)
		<-release
		return nil
	}))
	require.NoError(t, err)

	// The adapter is still registered while the first run is pending.
	assert.True(t, emitter.EmitSync("event"))
	assert.True(t, emitter.EmitSync("event"))
	close(release)

	assert.Eventually(t, func() bool {
		return emitter.ListenerCount("event") == 0
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestOnce_FailureStillRemoves(t *testing.T) {
	var caught *ListenerError
	emitter := New(WithErrorHandler(func(err *ListenerError) { caught = err }))

	l := NewListener(ErrFunc(func(args ...any) error { return errors.New("nope") }))
	require.NoError(t, emitter.Once("event", l))

	out := emitter.Dispatch(FireAndForget, "event")
	assert.True(t, out.Fired)
	require.NotNil(t, caught)
	assert.Equal(t, l.ID(), caught.ListenerID)
	assert.Zero(t, emitter.ListenerCount("event"))
}

func TestOnce_OffWithOriginalDoesNotRemoveWrapper(t *testing.T) {
	emitter := New()
	var calls atomic.Int32
	l := NewListener(Func(func(args ...any) { calls.Add(1) }))

	require.NoError(t, emitter.Once("event", l))
	require.NoError(t, emitter.Off("event", l))

	assert.True(t, emitter.Emit("event"))
	assert.Equal(t, int32(1), calls.Load())
}

func TestOnceFunc_HandleCanBeRemoved(t *testing.T) {
	emitter := New()
	var calls atomic.Int32

	wrapper, err := emitter.OnceFunc("event", Func(func(args ...any) { calls.Add(1) }))
	require.NoError(t, err)
	require.NoError(t, emitter.Off("event", wrapper))

	assert.False(t, emitter.Emit("event"))
	assert.Zero(t, calls.Load())
}

func TestOnce_ReentrantEmit(t *testing.T) {
	emitter := New()
	var calls atomic.Int32

	_, err := emitter.OnceFunc("event", Func(func(args ...any) {
		calls.Add(1)
		emitter.Emit("event")
	}))
	require.NoError(t, err)

	emitter.Emit("event")
	assert.Equal(t, int32(1), calls.Load())
}
