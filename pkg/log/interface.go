// Package log provides a structured logging interface for mlforecast operations.
//
// This package defines a minimal, slog-compatible logging interface backed by
// zerolog. The interface is implementation-agnostic so backends can be swapped
// without touching call sites, and it carries forecasting-specific structured
// attributes (operation types, data shapes, horizons).
//
// Example usage:
//
//	logger := log.GetLoggerWithName("forecast.mlforecast")
//	logger.Info("Training started",
//	    log.OperationKey, "fit",
//	    log.SamplesKey, 1000,
//	    log.SeriesKey, 48,
//	)
package log

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are alternating key-value pairs, as in slog. The With method returns
// a child logger with the given fields pre-populated.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	Error(msg string, fields ...any)

	// With returns a child logger with the given fields attached to every
	// subsequent log record.
	With(fields ...any) Logger
}
