package config

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/dshills/typepad/internal/renderer/core"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.WrapWidth() != 620 {
		t.Errorf("expected wrap width 620, got %d", cfg.WrapWidth())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*Config)
		path     string
		category error
	}{
		{"bad backend", func(c *Config) { c.Font.Backend = "cairo" }, "font.backend", nil},
		{"zero size", func(c *Config) { c.Font.Size = 0 }, "font.size", nil},
		{"negative width", func(c *Config) { c.Layout.Width = -1 }, "layout.width", nil},
		{"margin too wide", func(c *Config) { c.Layout.Margin = 400 }, "layout.margin", nil},
		{"bad locale", func(c *Config) { c.Layout.Locale = "not a locale" }, "layout.locale", ErrInvalidLocale},
		{"bad color", func(c *Config) { c.Colors.Caret = "#zz0000" }, "colors.caret", ErrInvalidColor},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !errors.Is(err, ErrValidationFailed) {
				t.Errorf("expected ErrValidationFailed, got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Path != tt.path {
				t.Errorf("expected path %s, got %s", tt.path, verr.Path)
			}
			if tt.category != nil && !errors.Is(err, tt.category) {
				t.Errorf("expected %v, got %v", tt.category, err)
			}
		})
	}
}

func TestBasicBackendIgnoresSize(t *testing.T) {
	cfg := Default()
	cfg.Font.Backend = BackendBasic
	cfg.Font.Size = 0
	cfg.Font.Path = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("basic backend should not need a size: %v", err)
	}
}

func TestPalette(t *testing.T) {
	p, err := Default().Palette()
	if err != nil {
		t.Fatalf("Palette failed: %v", err)
	}
	if p.Caret != core.ColorRed {
		t.Errorf("expected red caret, got %v", p.Caret)
	}
	if p.Selection != core.ColorFromRGB(0xBA, 0xD3, 0xFC) {
		t.Errorf("unexpected selection color %v", p.Selection)
	}
	if p.Background != core.ColorFromRGB(0xCC, 0xCC, 0xCC) {
		t.Errorf("unexpected background %v", p.Background)
	}

	cfg := Default()
	cfg.Colors.Foreground = "nope"
	if _, err := cfg.Palette(); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor, got %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	fsys := fstest.MapFS{
		"typepad.toml": {Data: []byte(`
[font]
backend = "basic"

[layout]
width = 300
locale = "pt-BR"

[colors]
caret = "#00ff00"
`)},
	}

	cfg, err := NewLoaderWithFS(fsys).Load("typepad.toml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Font.Backend != BackendBasic {
		t.Errorf("expected basic backend, got %s", cfg.Font.Backend)
	}
	if cfg.Layout.Width != 300 {
		t.Errorf("expected width 300, got %d", cfg.Layout.Width)
	}
	if cfg.Layout.Margin != 10 {
		t.Errorf("unset keys should keep defaults, got margin %d", cfg.Layout.Margin)
	}
	if cfg.Locale() != "pt-BR" {
		t.Errorf("expected locale pt-BR, got %s", cfg.Locale())
	}
	if cfg.Colors.Caret != "#00ff00" {
		t.Errorf("expected caret #00ff00, got %s", cfg.Colors.Caret)
	}
}

func TestLoadYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"typepad.yaml": {Data: []byte("font:\n  size: 20\n  fallbacks: [gomono]\nlog:\n  level: debug\n")},
	}

	cfg, err := NewLoaderWithFS(fsys).Load("typepad.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Font.Size != 20 {
		t.Errorf("expected size 20, got %v", cfg.Font.Size)
	}
	if len(cfg.Font.Fallbacks) != 1 || cfg.Font.Fallbacks[0] != FontGoMono {
		t.Errorf("expected [gomono] fallbacks, got %v", cfg.Font.Fallbacks)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Log.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := NewLoaderWithFS(fstest.MapFS{}).Load("absent.toml")
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg.Font.Backend != Default().Font.Backend {
		t.Error("expected defaults for a missing file")
	}

	cfg, err = NewLoaderWithFS(fstest.MapFS{}).Load("")
	if err != nil || cfg == nil {
		t.Errorf("empty path should yield defaults, got %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"syntax.toml":  {Data: []byte("[layout]\nwidth = = 3\n")},
		"unknown.toml": {Data: []byte("[layout]\nwidht = 3\n")},
		"unknown.yaml": {Data: []byte("layout:\n  widht: 3\n")},
		"invalid.toml": {Data: []byte("[layout]\nwidth = -5\n")},
		"typepad.json": {Data: []byte("{}")},
	}
	l := NewLoaderWithFS(fsys)

	var perr *ParseError
	_, err := l.Load("syntax.toml")
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Line != 2 {
		t.Errorf("expected line 2, got %d", perr.Line)
	}

	_, err = l.Load("unknown.toml")
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError for an unknown key, got %v", err)
	}
	if !strings.Contains(perr.Message, "widht") {
		t.Errorf("expected the unknown key in the message, got %q", perr.Message)
	}

	if _, err := l.Load("unknown.yaml"); !errors.As(err, &perr) {
		t.Errorf("expected *ParseError for an unknown yaml key, got %v", err)
	}

	if _, err := l.Load("invalid.toml"); !errors.Is(err, ErrValidationFailed) {
		t.Errorf("expected ErrValidationFailed, got %v", err)
	}

	if _, err := l.Load("typepad.json"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestDecodeReader(t *testing.T) {
	cfg, err := Decode(strings.NewReader("[layout]\nmargin = 4\n"), FormatTOML)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if cfg.Layout.Margin != 4 {
		t.Errorf("expected margin 4, got %d", cfg.Layout.Margin)
	}

	cfg, err = Decode(strings.NewReader(""), FormatYAML)
	if err != nil {
		t.Fatalf("empty yaml should decode: %v", err)
	}
	if cfg.Layout.Margin != 10 {
		t.Errorf("expected default margin, got %d", cfg.Layout.Margin)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvLogLevel: "warn",
		EnvFontSize: "12.5",
		EnvWidth:    "200",
		EnvLocale:   "de",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}
	if cfg.Log.Level != "warn" || cfg.Font.Size != 12.5 || cfg.Layout.Width != 200 || cfg.Layout.Locale != "de" {
		t.Errorf("environment not applied: %+v", cfg)
	}

	env[EnvWidth] = "wide"
	if err := Default().ApplyEnv(lookup); err == nil {
		t.Error("expected an error for a non-numeric width")
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"a.toml", FormatTOML, false},
		{"a.YAML", FormatYAML, false},
		{"dir/a.yml", FormatYAML, false},
		{"a.ini", 0, true},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		if (err != nil) != tt.err {
			t.Errorf("%s: unexpected error %v", tt.path, err)
			continue
		}
		if !tt.err && got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.path, tt.want, got)
		}
	}
}
