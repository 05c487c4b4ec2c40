package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileSystem reads configuration files.
// fstest.MapFS satisfies it for tests.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Format is a configuration file syntax.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatFor returns the format for a file name by extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Loader reads configuration files.
type Loader struct {
	fs FileSystem
}

// NewLoader creates a loader reading from the OS file system.
func NewLoader() *Loader {
	return &Loader{fs: OSFS{}}
}

// NewLoaderWithFS creates a loader with a custom file system.
func NewLoaderWithFS(fsys FileSystem) *Loader {
	return &Loader{fs: fsys}
}

// Load reads path over the defaults and validates the result.
// An empty path or a missing file yields the defaults.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := decode(path, format, data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Load reads path from the OS file system.
func Load(path string) (*Config, error) {
	return NewLoader().Load(path)
}

// Decode reads a configuration in format from r over the defaults.
// The result is not validated.
func Decode(r io.Reader, format Format) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := decode("<reader>", format, data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode unmarshals data into cfg, rejecting unknown keys.
func decode(source string, format Format, data []byte, cfg *Config) error {
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return tomlError(source, err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return &ParseError{Path: source, Message: err.Error(), Err: err}
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	return nil
}

func tomlError(source string, err error) error {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		pe.Line, pe.Column = derr.Position()
		return pe
	}
	var serr *toml.StrictMissingError
	if errors.As(err, &serr) && len(serr.Errors) > 0 {
		pe.Line, pe.Column = serr.Errors[0].Position()
		pe.Message = "unknown key " + strings.Join(serr.Errors[0].Key(), ".")
	}
	return pe
}

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel    = "TYPEPAD_LOG_LEVEL"
	EnvFontBackend = "TYPEPAD_FONT_BACKEND"
	EnvFontPath    = "TYPEPAD_FONT_PATH"
	EnvFontSize    = "TYPEPAD_FONT_SIZE"
	EnvWidth       = "TYPEPAD_LAYOUT_WIDTH"
	EnvLocale      = "TYPEPAD_LAYOUT_LOCALE"
)

// ApplyEnv overrides settings from environment variables.
// lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvFontBackend); ok {
		c.Font.Backend = v
	}
	if v, ok := lookup(EnvFontPath); ok {
		c.Font.Path = v
	}
	if v, ok := lookup(EnvLocale); ok {
		c.Layout.Locale = v
	}
	if v, ok := lookup(EnvFontSize); ok {
		size, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFontSize, err)
		}
		c.Font.Size = float32(size)
	}
	if v, ok := lookup(EnvWidth); ok {
		w, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWidth, err)
		}
		c.Layout.Width = w
	}
	return nil
}
