// Package logger provides a thin wrapper around zerolog.Logger with the
// constructors used throughout the phonebook application.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger embeds zerolog.Logger so the full zerolog API is available directly
type Logger struct {
	zerolog.Logger
}

// NewLogger constructs a JSON logger writing to stdout with a "role" field
// (e.g. "server") and a timestamp on every entry.
func NewLogger(role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	l := zerolog.New(os.Stdout).With().
		Str("role", role).
		Timestamp().
		Logger()

	return &Logger{l}
}

// Nop returns a *Logger that discards all output. Intended for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}
