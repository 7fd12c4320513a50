package log

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	mlferrors "github.com/Naren8520/mlforecast/pkg/errors"
)

var (
	mu   sync.RWMutex
	root = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.WarnLevel)
)

func init() {
	// Route library warnings through zerolog as structured records.
	mlferrors.SetZerologWarnFunc(func(warning error) {
		l := rootLogger()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			l.Warn().Object("warning", obj).Msg(warning.Error())
			return
		}
		l.Warn().Err(warning).Msg("warning")
	})
}

func rootLogger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// SetOutput redirects all library logging to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	root = root.Output(w)
}

// SetLevel sets the global log level. Accepted values follow zerolog:
// "debug", "info", "warn", "error", "disabled".
func SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	root = root.Level(lvl)
	return nil
}

// GetLogger returns the package-level logger.
func GetLogger() Logger {
	return &zerologLogger{l: rootLogger()}
}

// GetLoggerWithName returns a logger tagged with a component name,
// e.g. "lightgbm.trainer" or "forecast.mlforecast".
func GetLoggerWithName(name string) Logger {
	l := rootLogger().With().Str(ComponentKey, name).Logger()
	return &zerologLogger{l: l}
}

// zerologLogger adapts zerolog to the Logger interface.
type zerologLogger struct {
	l zerolog.Logger
}

func (z *zerologLogger) Debug(msg string, fields ...any) { z.emit(z.l.Debug(), msg, fields) }
func (z *zerologLogger) Info(msg string, fields ...any)  { z.emit(z.l.Info(), msg, fields) }
func (z *zerologLogger) Warn(msg string, fields ...any)  { z.emit(z.l.Warn(), msg, fields) }
func (z *zerologLogger) Error(msg string, fields ...any) { z.emit(z.l.Error(), msg, fields) }

func (z *zerologLogger) With(fields ...any) Logger {
	ctx := z.l.With()
	for i := 0; i+1 < len(fields); i += 2 {
		ctx = ctx.Interface(keyOf(fields[i]), fields[i+1])
	}
	return &zerologLogger{l: ctx.Logger()}
}

func (z *zerologLogger) emit(event *zerolog.Event, msg string, fields []any) {
	for i := 0; i+1 < len(fields); i += 2 {
		event = event.Interface(keyOf(fields[i]), fields[i+1])
	}
	event.Msg(msg)
}

func keyOf(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
