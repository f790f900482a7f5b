// Package logging builds the zerolog logger used by the command line tool.
// Library packages never log globally; they receive a logger in their
// options.
package logging

import (
	"fmt"
	"io"
	"time"

	"braces.dev/errtrace"
	"github.com/rs/zerolog"

	"doxy-next-gen/pkg/config"
)

// New creates a logger writing to w. Console output is human readable;
// json writes one object per event.
func New(cfg config.LogConfig, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), errtrace.Wrap(fmt.Errorf("log level: %w", err))
	}

	out := w
	switch cfg.Format {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	case "json":
	default:
		return zerolog.Nop(), errtrace.Wrap(fmt.Errorf("unknown log format %q", cfg.Format))
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
