package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("loud", false)
	assert.Error(t, err)
}

func TestNewAcceptsEmptyLevel(t *testing.T) {
	l, err := New("", false)
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestLogRoutesLevels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewWithCore(core)

	l.Log(DebugLevel, "d")
	l.Log(WarnLevel, "w", "numRetries", 3)
	l.Log(ErrorLevel, "e")
	l.Log(Level("bogus"), "fallback")

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, int64(3), entries[1].ContextMap()["numRetries"])
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[3].Level)
}

func TestDefaultLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetDefault(NewWithCore(core).With("component", "test"))
	t.Cleanup(func() { SetDefault(nil) })

	Default().Info("hello")
	Default().Debug("dropped")

	entries := logs.AllUntimed()
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", entries[0].Message)
	assert.Equal(t, "test", entries[0].ContextMap()["component"])
}
