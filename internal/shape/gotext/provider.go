package gotext

import "github.com/dshills/typepad/internal/shape"

// Provider resolves fallback fonts from an ordered chain.
// The first font that covers a rune wins; it is resized to the size of the
// font it stands in for. Resized fonts are cached so runs stay comparable.
type Provider struct {
	fonts []*Font
	sized map[sizedKey]*Font
}

type sizedKey struct {
	index int
	size  float32
}

// NewProvider returns a Provider over fonts, in priority order.
func NewProvider(fonts ...*Font) *Provider {
	return &Provider{
		fonts: fonts,
		sized: make(map[sizedKey]*Font),
	}
}

// Add appends a font to the end of the chain.
func (p *Provider) Add(f *Font) {
	p.fonts = append(p.fonts, f)
}

// Len returns the number of fonts in the chain.
func (p *Provider) Len() int {
	return len(p.fonts)
}

// Fallback implements shape.FontProvider.
func (p *Provider) Fallback(r rune, base shape.Font, locale string) shape.Font {
	for i, f := range p.fonts {
		if shape.Font(f) == base || !f.HasGlyph(r) {
			continue
		}
		size := base.Size()
		if f.size == size {
			return f
		}
		key := sizedKey{index: i, size: size}
		if sf, ok := p.sized[key]; ok {
			return sf
		}
		sf, err := f.WithSize(size)
		if err != nil {
			continue
		}
		p.sized[key] = sf
		return sf
	}
	return nil
}
