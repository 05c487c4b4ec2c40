package app

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dshills/typepad/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"unknown", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultLoggerConfig()
	cfg.Output = &buf
	logger := NewLogger(cfg)

	logger.Debug().Msg("hidden")
	logger.Info().Int("lines", 3).Msg("loaded")

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, "hidden") {
		t.Error("debug message should be filtered at info level")
	}

	var event map[string]any
	if err := json.Unmarshal([]byte(out), &event); err != nil {
		t.Fatalf("expected one JSON event, got %q: %v", out, err)
	}
	if event["message"] != "loaded" {
		t.Errorf("expected message loaded, got %v", event["message"])
	}
	if event["component"] != "typepad" {
		t.Errorf("expected component typepad, got %v", event["component"])
	}
	if event["lines"] != float64(3) {
		t.Errorf("expected lines 3, got %v", event["lines"])
	}
}

func TestNewLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: zerolog.DebugLevel, Output: &buf, Console: true})

	logger.Debug().Msg("reshape")
	if !strings.Contains(buf.String(), "reshape") {
		t.Errorf("expected console output to contain the message, got %q", buf.String())
	}
	if strings.HasPrefix(buf.String(), "{") {
		t.Error("console output should not be JSON")
	}
}

func TestOpenLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typepad.log")
	logger, closer, err := OpenLogger(config.LogConfig{Level: "warn", File: path})
	if err != nil {
		t.Fatalf("OpenLogger failed: %v", err)
	}
	if logger.GetLevel() != zerolog.WarnLevel {
		t.Errorf("expected warn level, got %v", logger.GetLevel())
	}
	if err := closer.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	if _, _, err := OpenLogger(config.LogConfig{File: filepath.Join(t.TempDir(), "no", "dir", "x.log")}); err == nil {
		t.Error("expected an error for an unwritable log file")
	}
}
