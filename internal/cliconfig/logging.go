package cliconfig

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	logger = logger.
		Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(zerolog.InfoLevel)
}

// Logger returns the package logger. Debug output is off until the
// caller lowers the level, which the CLI does for --verbose.
func Logger() zerolog.Logger {
	return logger
}
