package app

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/dshills/typepad/internal/config"
	"github.com/dshills/typepad/internal/shape"
	"github.com/dshills/typepad/internal/shape/face"
	"github.com/dshills/typepad/internal/shape/gotext"
)

// ErrUnknownBackend is returned for a font backend LoadFonts cannot build.
var ErrUnknownBackend = errors.New("unknown font backend")

// fontData returns the bytes of a built-in font name or a font file.
func fontData(name string) ([]byte, error) {
	switch name {
	case config.FontGoRegular:
		return goregular.TTF, nil
	case config.FontGoMono:
		return gomono.TTF, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return data, nil
}

// LoadFonts builds the primary font and the fallback provider described by
// c. The provider is nil when no fallbacks are configured.
func LoadFonts(c config.FontConfig) (shape.Font, shape.FontProvider, error) {
	var primary shape.Font
	switch c.Backend {
	case config.BackendBasic:
		primary = face.Basic()
	case config.BackendFace:
		data, err := fontData(c.Path)
		if err != nil {
			return nil, nil, err
		}
		f, err := face.NewOpenType(data, c.Size)
		if err != nil {
			return nil, nil, fmt.Errorf("font %s: %w", c.Path, err)
		}
		primary = f
	case config.BackendGoText:
		data, err := fontData(c.Path)
		if err != nil {
			return nil, nil, err
		}
		f, err := gotext.Parse(data, c.Size)
		if err != nil {
			return nil, nil, fmt.Errorf("font %s: %w", c.Path, err)
		}
		primary = f
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}

	if len(c.Fallbacks) == 0 {
		return primary, nil, nil
	}
	provider := gotext.NewProvider()
	for _, name := range c.Fallbacks {
		data, err := fontData(name)
		if err != nil {
			return nil, nil, err
		}
		f, err := gotext.Parse(data, primary.Size())
		if err != nil {
			return nil, nil, fmt.Errorf("fallback font %s: %w", name, err)
		}
		provider.Add(f)
	}
	return primary, provider, nil
}
