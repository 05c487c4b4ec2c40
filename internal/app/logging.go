package app

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/typepad/internal/config"
)

// ParseLogLevel parses a level name. Unknown names map to info.
func ParseLogLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "warning":
		return zerolog.WarnLevel
	case "":
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// LoggerConfig configures the logger.
type LoggerConfig struct {
	// Level is the minimum log level to output.
	Level zerolog.Level
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
	// Console selects human-readable output instead of JSON lines.
	Console bool
	// Component is added to every event.
	Component string
}

// DefaultLoggerConfig returns the default logger configuration.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:     zerolog.InfoLevel,
		Output:    os.Stderr,
		Component: "typepad",
	}
}

// NewLogger creates a logger with the given configuration.
func NewLogger(cfg LoggerConfig) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly, NoColor: true}
	}
	ctx := zerolog.New(out).Level(cfg.Level).With().Timestamp()
	if cfg.Component != "" {
		ctx = ctx.Str("component", cfg.Component)
	}
	return ctx.Logger()
}

// OpenLogger builds the logger described by c. When c.File is set the
// returned closer closes it; otherwise it is a no-op.
func OpenLogger(c config.LogConfig) (zerolog.Logger, io.Closer, error) {
	cfg := DefaultLoggerConfig()
	cfg.Level = ParseLogLevel(c.Level)
	cfg.Console = c.Console

	if c.File == "" {
		return NewLogger(cfg), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(c.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	cfg.Output = f
	return NewLogger(cfg), f, nil
}
