// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup initializes the global logger writing human-readable output to
// stderr. Verbose enables debug level, quiet drops everything below error.
// Verbose wins if both are set.
func Setup(verbose, quiet bool) {
	var w io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}

	level := zerolog.InfoLevel
	switch {
	case verbose:
		level = zerolog.DebugLevel
	case quiet:
		level = zerolog.ErrorLevel
	}

	log.Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
}
