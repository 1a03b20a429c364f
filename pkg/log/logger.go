// Package log configures structured logging for the application.
// It wires log/slog with a handler that extracts stack traces from
// cockroachdb/errors, and bridges library warnings onto zerolog.
package log

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rs/zerolog"

	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
)

// SetupLogger installs the default slog logger with the given level.
func SetupLogger(loglevel string) {
	ops := slog.HandlerOptions{
		AddSource: true,
		Level:     ToLogLevel(loglevel),
	}
	handler := slog.NewJSONHandler(os.Stderr, &ops)
	errFmtHandler := WrapByErrFmtHandler(handler)
	slog.SetDefault(slog.New(errFmtHandler))
}

// ToLogLevel converts a level name into a slog.Level.
func ToLogLevel(level string) slog.Level {
	switch level {
	case "", "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level :%s", level))
	}
}

// InstallWarningSink routes warnings raised via pkg/errors through a
// zerolog console logger. Warnings that implement
// zerolog.LogObjectMarshaler are logged with their structured fields.
func InstallWarningSink() {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	errors.SetZerologWarnFunc(func(w error) {
		if obj, ok := w.(zerolog.LogObjectMarshaler); ok {
			zl.Warn().EmbedObject(obj).Msg(w.Error())
			return
		}
		zl.Warn().Err(w).Msg("warning")
	})
}

const (
	// ErrAttrKey is the slog attribute key for errors.
	ErrAttrKey = "error"
	// StacktraceAttrKey is the slog attribute key for extracted stack traces.
	StacktraceAttrKey = "stacktrace"
)
