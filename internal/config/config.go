package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dshills/typepad/internal/renderer/core"
	"github.com/dshills/typepad/internal/shape"
)

// Font backends.
const (
	// BackendGoText shapes with the go-text HarfBuzz port.
	BackendGoText = "gotext"
	// BackendFace shapes one glyph per rune with an x/image OpenType face.
	BackendFace = "face"
	// BackendBasic uses the 7x13 bitmap font; Size and Path are ignored.
	BackendBasic = "basic"
)

// Built-in font names accepted by FontConfig.Path and Fallbacks.
const (
	FontGoRegular = "goregular"
	FontGoMono    = "gomono"
)

// Config holds every typepad setting.
type Config struct {
	Font   FontConfig   `toml:"font" yaml:"font"`
	Layout LayoutConfig `toml:"layout" yaml:"layout"`
	Colors ColorsConfig `toml:"colors" yaml:"colors"`
	Log    LogConfig    `toml:"log" yaml:"log"`
}

// FontConfig selects the primary font and its fallback chain.
type FontConfig struct {
	Backend string `toml:"backend" yaml:"backend"`
	// Path is a font file or a built-in font name.
	Path string  `toml:"path" yaml:"path"`
	Size float32 `toml:"size" yaml:"size"`
	// Fallbacks are tried in order for code points the primary font lacks.
	Fallbacks []string `toml:"fallbacks" yaml:"fallbacks"`
}

// LayoutConfig holds document layout settings.
type LayoutConfig struct {
	// Width is the view width in pixels; the wrap width is Width - 2*Margin.
	// Zero disables wrapping.
	Width     int    `toml:"width" yaml:"width"`
	Height    int    `toml:"height" yaml:"height"`
	Margin    int    `toml:"margin" yaml:"margin"`
	Locale    string `toml:"locale" yaml:"locale"`
	CacheSize int    `toml:"cache_size" yaml:"cache_size"`
}

// ColorsConfig holds paint colors as hex strings.
type ColorsConfig struct {
	Background string `toml:"background" yaml:"background"`
	Foreground string `toml:"foreground" yaml:"foreground"`
	Selection  string `toml:"selection" yaml:"selection"`
	Caret      string `toml:"caret" yaml:"caret"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error, disabled.
	Level string `toml:"level" yaml:"level"`
	// File is the log file; empty logs to stderr.
	File string `toml:"file" yaml:"file"`
	// Console selects human-readable output instead of JSON.
	Console bool `toml:"console" yaml:"console"`
}

// Palette is ColorsConfig parsed.
type Palette struct {
	Background core.Color
	Foreground core.Color
	Selection  core.Color
	Caret      core.Color
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Font: FontConfig{
			Backend: BackendGoText,
			Path:    FontGoRegular,
			Size:    16,
		},
		Layout: LayoutConfig{
			Width:     640,
			Height:    480,
			Margin:    10,
			Locale:    shape.DefaultLocale,
			CacheSize: 1024,
		},
		Colors: ColorsConfig{
			Background: "#cccccc",
			Foreground: "#000000",
			Selection:  "#bad3fc",
			Caret:      "#ff0000",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks every setting and returns all problems joined.
// Each problem is a *ValidationError matching ErrValidationFailed.
func (c *Config) Validate() error {
	var errs []error
	add := func(path, msg string, value any, category error) {
		errs = append(errs, &ValidationError{Path: path, Message: msg, Value: value, Err: category})
	}

	switch c.Font.Backend {
	case BackendGoText, BackendFace:
		if c.Font.Size <= 0 {
			add("font.size", "must be positive", c.Font.Size, nil)
		}
		if c.Font.Path == "" {
			add("font.path", "is required for this backend", c.Font.Path, nil)
		}
	case BackendBasic:
	default:
		add("font.backend", "must be one of gotext, face, basic", c.Font.Backend, nil)
	}

	if c.Layout.Width < 0 {
		add("layout.width", "must not be negative", c.Layout.Width, nil)
	}
	if c.Layout.Height < 0 {
		add("layout.height", "must not be negative", c.Layout.Height, nil)
	}
	if c.Layout.Margin < 0 {
		add("layout.margin", "must not be negative", c.Layout.Margin, nil)
	}
	if c.Layout.Width > 0 && 2*c.Layout.Margin >= c.Layout.Width {
		add("layout.margin", "leaves no room for text", c.Layout.Margin, nil)
	}
	if c.Layout.CacheSize < 0 {
		add("layout.cache_size", "must not be negative", c.Layout.CacheSize, nil)
	}
	if c.Layout.Locale != "" {
		if _, ok := shape.CanonicalLocale(c.Layout.Locale); !ok {
			add("layout.locale", "is not a BCP 47 language tag", c.Layout.Locale, ErrInvalidLocale)
		}
	}

	for _, f := range c.colorFields() {
		if _, err := core.ColorFromHex(*f.value); err != nil {
			add("colors."+f.name, "is not a hex color", *f.value, ErrInvalidColor)
		}
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		add("log.level", "is not a log level", c.Log.Level, nil)
	}

	return errors.Join(errs...)
}

type colorField struct {
	name  string
	value *string
}

func (c *Config) colorFields() []colorField {
	return []colorField{
		{"background", &c.Colors.Background},
		{"foreground", &c.Colors.Foreground},
		{"selection", &c.Colors.Selection},
		{"caret", &c.Colors.Caret},
	}
}

// Palette parses the configured colors.
func (c *Config) Palette() (Palette, error) {
	var p Palette
	targets := []*core.Color{&p.Background, &p.Foreground, &p.Selection, &p.Caret}
	for i, f := range c.colorFields() {
		col, err := core.ColorFromHex(*f.value)
		if err != nil {
			return Palette{}, fmt.Errorf("%w: colors.%s: %w", ErrInvalidColor, f.name, err)
		}
		*targets[i] = col
	}
	return p, nil
}

// Locale returns the canonical layout locale.
func (c *Config) Locale() string {
	loc, _ := shape.CanonicalLocale(c.Layout.Locale)
	return loc
}

// WrapWidth returns the buffer wrap width for the configured view.
func (c *Config) WrapWidth() int {
	if c.Layout.Width <= 0 {
		return 0
	}
	return max(c.Layout.Width-2*c.Layout.Margin, 1)
}
