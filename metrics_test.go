package libemit

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics("test")
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	emitter := New(WithMetrics(m))
	_, _ = emitter.OnFunc("event", ErrFunc(func(args ...any) error { return assert.AnError }))
	_, _ = emitter.OnFunc("event", Func(func(args ...any) {}))

	emitter.Emit("event")
	emitter.EmitAwait("event")
	emitter.Emit("absent")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.dispatches.WithLabelValues("event", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dispatches.WithLabelValues("absent", "false")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.failures.WithLabelValues("event")))

	assert.Error(t, m.Register(reg), "registering twice must fail")
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.observeDispatch("event", true)
		m.observeFailure("event")
	})
}
