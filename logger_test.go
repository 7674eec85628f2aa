package libemit

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWriterLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf).(*writerLogger)
	l.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }

	l.WithField("b", 2).WithField("a", 1).Infof("hello %s", "world")
	l.Warn("plain")

	assert.Equal(t,
		"[2024-05-01 10:00:00] INFO [a=1, b=2]: hello world\n"+
			"[2024-05-01 10:00:00] WARN: plain\n",
		buf.String())
}

func TestWriterLogger_WithFieldDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	root := NewWriterLogger(&buf)
	_ = root.WithField("k", "v")

	root.Error("root")
	assert.Contains(t, buf.String(), "ERROR: root")
}

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	emitter := New(WithLogger(NewZapLogger(zap.New(core))))

	l, _ := emitter.OnFunc("event", ErrFunc(func(args ...any) error {
		return assert.AnError
	}))
	emitter.Emit("event")
	emitter.Emit("empty")

	failures := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	if assert.Len(t, failures, 1) {
		entry := failures[0]
		assert.Equal(t, "listener failed: "+assert.AnError.Error(), entry.Message)
		assert.Equal(t, "event", entry.ContextMap()["event"])
		assert.Equal(t, l.ID(), entry.ContextMap()["listener"])
	}

	debug := logs.FilterMessage("no listeners to dispatch to").All()
	if assert.Len(t, debug, 1) {
		assert.Equal(t, "empty", debug[0].ContextMap()["event"])
	}
}

func TestZapLogger_Nil(t *testing.T) {
	assert.Equal(t, NoopLogger(), NewZapLogger(nil))
}
