// Package log provides structured logging for gridfit model fitting and
// tuning runs.
//
// The package defines a minimal logging interface with key-value fields and
// a zerolog-backed default implementation. Analysis scripts configure the
// backend once at startup; library code asks for named loggers and never
// touches the backend directly.
//
// Example:
//
//	logger := log.GetLoggerWithName("tune.search").With(
//	    log.MetricKey, "rmse",
//	)
//	logger.Info("search finished",
//	    log.CandidatesKey, 12,
//	    log.DurationMsKey, elapsed.Milliseconds(),
//	)
package log

// Logger is a structured logger with key-value fields.
//
// Fields are passed as alternating key-value pairs, slog style. With
// returns a child logger carrying the given fields on every record.
type Logger interface {
	// Debug logs detailed diagnostic information.
	Debug(msg string, fields ...any)

	// Info logs general progress of a fit or tuning run.
	Info(msg string, fields ...any)

	// Warn logs conditions worth attention that do not stop the run.
	Warn(msg string, fields ...any)

	// Error logs failures. If a field value is an error its stack trace,
	// when present, is attached to the record.
	Error(msg string, fields ...any)

	// With returns a Logger that includes the given fields in every record.
	With(fields ...any) Logger
}

// Level is a logging level.
type Level int

// Levels, ordered from most to least verbose.
const (
	LevelDebug Level = iota - 1
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel converts a level name into a Level. Unknown names map to
// LevelInfo.
func ParseLevel(name string) Level {
	switch name {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}
