package buffer

import (
	"github.com/rs/zerolog"

	"github.com/dshills/typepad/internal/renderer/layout"
	"github.com/dshills/typepad/internal/shape"
)

// DefaultCacheSize is the number of shaping results kept by default.
const DefaultCacheSize = 1024

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithWidth sets the wrap width in pixels. A width <= 0 disables wrapping.
func WithWidth(width int) Option {
	return func(b *Buffer) {
		b.width = width
	}
}

// WithLocale sets the locale used for shaping.
func WithLocale(locale string) Option {
	return func(b *Buffer) {
		b.locale, _ = shape.CanonicalLocale(locale)
	}
}

// WithFontProvider sets the provider of fallback fonts.
func WithFontProvider(p shape.FontProvider) Option {
	return func(b *Buffer) {
		b.provider = p
	}
}

// WithShaper replaces the default shape-then-wrap shaper.
func WithShaper(s shape.Shaper) Option {
	return func(b *Buffer) {
		if s != nil {
			b.shaper = s
		}
	}
}

// WithLogger sets the logger for reshape and load events.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Buffer) {
		b.logger = l
	}
}

// WithCacheSize sets how many shaping results are shared between equal
// paragraphs. A size <= 0 disables the cache.
func WithCacheSize(n int) Option {
	return func(b *Buffer) {
		if n <= 0 {
			b.cache = nil
			return
		}
		b.cache = layout.NewResultCache(n)
	}
}
