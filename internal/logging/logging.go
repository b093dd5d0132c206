// Package logging builds the logrus logger shared by the CLI commands and
// the detection engine. Logs go to stderr: stdout is reserved for the
// structured output sinks.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type Options struct {
	// Level is one of debug, info, warn, error. Unparsable values fall back
	// to info.
	Level string

	// Format selects the formatter: "json" or text (default).
	Format string

	// Verbose forces debug level regardless of Level.
	Verbose bool

	// Output overrides the destination (stderr when nil). Used by tests.
	Output io.Writer
}

func New(opts Options) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	if opts.Verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	if opts.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006/01/02 15:04:05",
		})
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	logger.SetOutput(out)

	return logger
}
