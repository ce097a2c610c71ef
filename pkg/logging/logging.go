// Package logging holds the process-wide zerolog logger used by fitskit
// commands.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger *zerolog.Logger

func init() {
	l := zerolog.New(os.Stderr).With().Timestamp().Logger()
	logger = &l
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// Init configures the global logger. debug lowers the level to Debug and
// human switches to a console writer.
func Init(debug bool, human bool) {
	InitTo(os.Stderr, debug, human)
}

// InitTo is Init with an explicit destination.
func InitTo(w io.Writer, debug bool, human bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	out := w
	if human {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	l := zerolog.New(out).With().Timestamp().Logger()
	logger = &l
}

// L returns the base logger.
func L() *zerolog.Logger {
	return logger
}

// WithFile returns a logger with the file field set.
func WithFile(name string) zerolog.Logger {
	return logger.With().Str("file", name).Logger()
}

// SetLogger overrides the global logger.
func SetLogger(l zerolog.Logger) {
	logger = &l
}
