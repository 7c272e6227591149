package log

import (
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// Logger is a thin structured logger over zap's sugared API.
// Key/value pairs follow zap's SugaredLogger conventions.
type Logger struct {
	s *zap.SugaredLogger
}

var std atomic.Pointer[Logger]

func init() {
	std.Store(Nop())
}

// New builds a JSON (or console, in development) logger at the given level.
// An empty level means info.
func New(level string, development bool) (*Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, errors.Wrap(err, "Failed to build logger")
	}
	return &Logger{s: z.Sugar()}, nil
}

// NewWithCore wraps an existing zap core, mostly useful with zaptest/observer.
func NewWithCore(core zapcore.Core) *Logger {
	return &Logger{s: zap.New(core).Sugar()}
}

func Nop() *Logger {
	return &Logger{s: zap.NewNop().Sugar()}
}

// SetDefault replaces the package-level logger. A nil logger silences output.
func SetDefault(l *Logger) {
	if l == nil {
		l = Nop()
	}
	std.Store(l)
}

func Default() *Logger {
	return std.Load()
}

func parseLevel(level string) (zapcore.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zapcore.InfoLevel, errors.Wrapf(err, "Invalid log level: %s", level)
	}
	return lvl, nil
}

func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{s: l.s.With(keysAndValues...)}
}

// Log writes msg at the named level. Unknown levels are logged at info.
func (l *Logger) Log(level Level, msg string, keysAndValues ...interface{}) {
	switch level {
	case DebugLevel:
		l.s.Debugw(msg, keysAndValues...)
	case WarnLevel:
		l.s.Warnw(msg, keysAndValues...)
	case ErrorLevel:
		l.s.Errorw(msg, keysAndValues...)
	default:
		l.s.Infow(msg, keysAndValues...)
	}
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Infow(msg, keysAndValues...)
}

func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.s.Warnw(msg, keysAndValues...)
}

func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, keysAndValues...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.s.Sync()
}
