package buffer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dshills/typepad/internal/renderer/layout"
	"github.com/dshills/typepad/internal/shape"
)

// Errors returned by buffer operations.
var (
	ErrLineSource = errors.New("line source failed")
	ErrNoFont     = errors.New("no font")
)

// maxLineLength bounds a single line read by LoadReader.
const maxLineLength = 16 << 20

// LineSource produces the lines of a document, without terminators.
// bufio.Scanner satisfies it.
type LineSource interface {
	Scan() bool
	Text() string
	Err() error
}

// Buffer is a document of paragraphs with a lazily shaped layout.
type Buffer struct {
	lines []*layout.Line

	font     shape.Font
	provider shape.FontProvider
	shaper   shape.Shaper
	locale   string
	width    int
	cache    *layout.ResultCache

	height       int
	needsReshape bool
	revision     RevisionID

	logger zerolog.Logger
}

// New creates an empty buffer laid out with font.
// The document gains its single empty paragraph on the first reshape.
func New(font shape.Font, opts ...Option) *Buffer {
	if font == nil {
		panic(ErrNoFont)
	}
	b := &Buffer{
		font:         font,
		shaper:       shape.NewWrapShaper(),
		locale:       shape.DefaultLocale,
		cache:        layout.NewResultCache(DefaultCacheSize),
		needsReshape: true,
		revision:     NewRevisionID(),
		logger:       zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewFromString creates a buffer holding text, split into paragraphs at '\n'.
func NewFromString(font shape.Font, text string, opts ...Option) *Buffer {
	b := New(font, opts...)
	b.Insert(TextPosition{}, text)
	return b
}

// Layout inputs

// Width returns the wrap width in pixels.
func (b *Buffer) Width() int {
	return b.width
}

// SetWidth changes the wrap width and invalidates every paragraph.
func (b *Buffer) SetWidth(w int) {
	if b.width == w {
		return
	}
	b.width = w
	b.invalidateAll()
}

// Font returns the primary font.
func (b *Buffer) Font() shape.Font {
	return b.font
}

// SetFont changes the primary font and invalidates every paragraph.
func (b *Buffer) SetFont(f shape.Font) {
	if f == nil || f == b.font {
		return
	}
	b.font = f
	b.invalidateAll()
}

// FontProvider returns the fallback font provider, which may be nil.
func (b *Buffer) FontProvider() shape.FontProvider {
	return b.provider
}

// SetFontProvider changes the fallback provider and invalidates every paragraph.
func (b *Buffer) SetFontProvider(p shape.FontProvider) {
	b.provider = p
	b.invalidateAll()
}

// Locale returns the shaping locale.
func (b *Buffer) Locale() string {
	return b.locale
}

// SetLocale changes the shaping locale and invalidates every paragraph.
func (b *Buffer) SetLocale(locale string) {
	locale, _ = shape.CanonicalLocale(locale)
	if locale == b.locale {
		return
	}
	b.locale = locale
	b.invalidateAll()
}

func (b *Buffer) invalidateAll() {
	for _, l := range b.lines {
		l.MarkDirty()
	}
	b.needsReshape = true
}

func (b *Buffer) params() layout.Params {
	return layout.Params{
		Shaper:   b.shaper,
		Font:     b.font,
		Provider: b.provider,
		Locale:   b.locale,
		Width:    b.width,
	}
}

// Read accessors

// LineCount returns the number of paragraphs.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LineText returns the text of paragraph i.
func (b *Buffer) LineText(i int) (string, bool) {
	if i < 0 || i >= len(b.lines) {
		return "", false
	}
	return b.lines[i].Text, true
}

// LineHeight returns the height of paragraph i in pixels as of the last reshape.
func (b *Buffer) LineHeight(i int) int {
	if i < 0 || i >= len(b.lines) {
		return 0
	}
	return b.lines[i].Height
}

// Line returns the layout of paragraph i, or nil. The line must not be modified.
func (b *Buffer) Line(i int) *layout.Line {
	if i < 0 || i >= len(b.lines) {
		return nil
	}
	return b.lines[i]
}

// Height returns the document height in pixels as of the last reshape.
func (b *Buffer) Height() int {
	return b.height
}

// NeedsReshape returns true if some paragraph may be dirty.
func (b *Buffer) NeedsReshape() bool {
	return b.needsReshape
}

// Revision returns the current revision. It changes with every edit.
func (b *Buffer) Revision() RevisionID {
	return b.revision
}

// Text returns the whole document with paragraphs joined by '\n'.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for i, l := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(l.Text)
	}
	return sb.String()
}

// Loading

// Load replaces the document with the lines of src.
// If src fails the buffer is left unchanged.
func (b *Buffer) Load(src LineSource) error {
	var lines []*layout.Line
	for src.Scan() {
		lines = append(lines, layout.NewLine(strings.ToValidUTF8(src.Text(), "\uFFFD")))
	}
	if err := src.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrLineSource, err)
	}

	b.lines = lines
	b.needsReshape = true
	b.revision = NewRevisionID()
	b.logger.Debug().Int("lines", len(lines)).Msg("buffer loaded")
	return nil
}

// LoadReader replaces the document with the lines read from r.
func (b *Buffer) LoadReader(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return b.Load(sc)
}

// Reshape shapes every dirty paragraph and recomputes paragraph origins and
// the document height. It does nothing if no paragraph changed.
func (b *Buffer) Reshape() {
	if !b.needsReshape {
		return
	}
	if len(b.lines) == 0 {
		b.lines = append(b.lines, layout.NewLine(""))
	}

	p := b.params()
	shaped := 0
	for _, l := range b.lines {
		if l.Reshape(b.cache, p) {
			shaped++
		}
	}

	y := 0
	for _, l := range b.lines {
		l.Origin.X = 0
		l.Origin.Y = y
		y += l.Height
	}
	b.height = y
	b.needsReshape = false

	b.logger.Debug().
		Int("shaped", shaped).
		Int("lines", len(b.lines)).
		Int("height", b.height).
		Msg("reshape")
}
