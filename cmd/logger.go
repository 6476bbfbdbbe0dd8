package cmd

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"inkpost/config"
)

// newLogger builds the process logger. LOG_FORMAT=json writes JSON lines,
// anything else the console writer. Unknown levels fall back to info.
func newLogger(cfg *config.Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	if !strings.EqualFold(cfg.LogFormat, "json") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
