// Package logging provides the verbose zerolog logger and the console
// reporter that prints warning: and error: diagnostics.
package logging

import (
	"io"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API.
type Logger struct {
	zerolog.Logger
}

// New constructs a human-readable *Logger writing to w.
//
// verbosity maps to levels as follows:
//   - 0: warnings and errors only;
//   - 1: info;
//   - 2 or more: debug.
//
// Secret values must never be passed to the logger; log names and counts.
func New(w io.Writer, verbosity int) *Logger {
	console := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: "15:04:05",
	}

	logger := zerolog.New(console).
		Level(LevelFor(verbosity)).
		With().
		Timestamp().
		Str("role", "run-with-secrets").
		Logger()

	return &Logger{logger}
}

// LevelFor returns the zerolog level for a -v count
func LevelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}

// Nop returns a *Logger that discards all log output.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}
