package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hikaru-sato/gridfit/pkg/errors"
)

var (
	mu         sync.RWMutex
	baseLogger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.InfoLevel).
			With().Timestamp().Logger()
)

// Setup configures the process-wide logger backend. Analysis scripts call
// this once before any fitting starts. It also routes library warnings
// (for example ConvergenceWarning) into the logger.
func Setup(level Level, w io.Writer) {
	mu.Lock()
	baseLogger = zerolog.New(w).
		Level(toZerologLevel(level)).
		With().Timestamp().Logger()
	mu.Unlock()

	errors.SetWarningHandler(func(warning error) {
		logger := root()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			logger.Warn().Object("warning", obj).Msg(warning.Error())
			return
		}
		logger.Warn().Msg(warning.Error())
	})
}

// SetupConsole configures a human-readable console backend on stderr.
func SetupConsole(level Level) {
	Setup(level, zerolog.ConsoleWriter{Out: os.Stderr})
}

func root() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return baseLogger
}

func toZerologLevel(level Level) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// GetLogger returns the default logger.
func GetLogger() Logger {
	return &zerologLogger{logger: root()}
}

// GetLoggerWithName returns a logger tagged with a component name,
// for example "boost.trainer" or "tune.search".
func GetLoggerWithName(name string) Logger {
	return &zerologLogger{logger: root().With().Str(ComponentKey, name).Logger()}
}

type zerologLogger struct {
	logger zerolog.Logger
}

func (l *zerologLogger) Debug(msg string, fields ...any) {
	l.emit(l.logger.Debug(), msg, fields)
}

func (l *zerologLogger) Info(msg string, fields ...any) {
	l.emit(l.logger.Info(), msg, fields)
}

func (l *zerologLogger) Warn(msg string, fields ...any) {
	l.emit(l.logger.Warn(), msg, fields)
}

func (l *zerologLogger) Error(msg string, fields ...any) {
	l.emit(l.logger.Error(), msg, fields)
}

func (l *zerologLogger) With(fields ...any) Logger {
	ctx := l.logger.With()
	for k, v := range pairs(fields) {
		ctx = ctx.Interface(k, v)
	}
	return &zerologLogger{logger: ctx.Logger()}
}

func (l *zerologLogger) emit(e *zerolog.Event, msg string, fields []any) {
	for k, v := range pairs(fields) {
		if err, ok := v.(error); ok {
			e = e.AnErr(k, err)
			continue
		}
		e = e.Interface(k, v)
	}
	e.Msg(msg)
}

// pairs converts alternating key-value fields into a map. A trailing key
// without a value is kept with a marker value rather than dropped.
func pairs(fields []any) map[string]any {
	out := make(map[string]any, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			key = fmt.Sprintf("field_%d", i)
		}
		if i+1 < len(fields) {
			out[key] = fields[i+1]
		} else {
			out[key] = "(missing)"
		}
	}
	return out
}
