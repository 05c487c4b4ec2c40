package app

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dshills/typepad/internal/config"
	"github.com/dshills/typepad/internal/engine/buffer"
	"github.com/dshills/typepad/internal/renderer/core"
	"github.com/dshills/typepad/internal/renderer/paint"
)

// DefaultMargin is the space in pixels between the view edge and the text.
const DefaultMargin = 10

// DefaultBackground is the view background outside selections.
var DefaultBackground = core.ColorFromRGB(0xCC, 0xCC, 0xCC)

// Session is an editing session on one buffer: a caret, an optional
// selection mark and a vertical scroll offset inside a view.
type Session struct {
	id     uuid.UUID
	buf    *buffer.Buffer
	path   string
	caret  buffer.TextPosition
	mark   *buffer.TextPosition
	scroll int

	margin        int
	width, height int
	colors        paint.Options

	logger zerolog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithMargin sets the view margin in pixels.
func WithMargin(m int) SessionOption {
	return func(s *Session) {
		if m >= 0 {
			s.margin = m
		}
	}
}

// WithPalette sets the paint colors.
func WithPalette(p config.Palette) SessionOption {
	return func(s *Session) {
		s.colors.Background = p.Background
		s.colors.Foreground = p.Foreground
		s.colors.Selection = p.Selection
		s.colors.Caret = p.Caret
	}
}

// WithLogger sets the session logger. Events carry the session id.
func WithLogger(l zerolog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = l
	}
}

// NewSession creates a session on buf with the caret at the start.
func NewSession(buf *buffer.Buffer, opts ...SessionOption) *Session {
	colors := paint.DefaultOptions()
	colors.Background = DefaultBackground

	s := &Session{
		id:     uuid.New(),
		buf:    buf,
		margin: DefaultMargin,
		colors: colors,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("session", s.id.String()).Logger()
	return s
}

// ID returns the session id.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Buffer returns the edited buffer.
func (s *Session) Buffer() *buffer.Buffer {
	return s.buf
}

// Path returns the file last opened, if any.
func (s *Session) Path() string {
	return s.path
}

// Caret returns the caret position.
func (s *Session) Caret() buffer.TextPosition {
	return s.caret
}

// Mark returns the selection anchor. ok is false when nothing is selected.
func (s *Session) Mark() (pos buffer.TextPosition, ok bool) {
	if s.mark == nil {
		return buffer.TextPosition{}, false
	}
	return *s.mark, true
}

// Scroll returns the vertical scroll offset in pixels.
func (s *Session) Scroll() int {
	return s.scroll
}

// Margin returns the view margin in pixels.
func (s *Session) Margin() int {
	return s.margin
}

// Size returns the view size in pixels.
func (s *Session) Size() (int, int) {
	return s.width, s.height
}

// Open replaces the document with the contents of path.
func (s *Session) Open(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return NewOperationError("open", path, err)
	}
	defer f.Close()

	if err := s.buf.LoadReader(f); err != nil {
		return NewOperationError("load", path, err)
	}
	s.path = path
	s.caret = buffer.TextPosition{}
	s.mark = nil
	s.scroll = 0
	s.logger.Info().Str("path", path).Int("paragraphs", s.buf.LineCount()).Msg("opened")
	return nil
}

// Resize sets the view size. A width change rewraps the document to the
// width inside the margins; a width of zero disables wrapping.
func (s *Session) Resize(width, height int) {
	if width != s.width {
		wrap := 0
		if width > 0 {
			wrap = max(width-2*s.margin, 1)
		}
		s.buf.SetWidth(wrap)
	}
	s.width, s.height = width, height
	s.scrollToCaret()
}

// MoveCaret moves the caret. With extend the selection grows from the
// current mark (or the old caret); without it the selection is dropped.
func (s *Session) MoveCaret(m buffer.Movement, extend bool) {
	s.setMark(extend)
	s.caret = s.buf.Move(m, s.caret)
	s.scrollToCaret()
}

// SetCaret places the caret at pos, normalized.
func (s *Session) SetCaret(pos buffer.TextPosition, extend bool) {
	s.setMark(extend)
	s.caret = s.buf.Move(buffer.MoveNowhere, pos)
	s.scrollToCaret()
}

func (s *Session) setMark(extend bool) {
	switch {
	case !extend:
		s.mark = nil
	case s.mark == nil:
		mark := s.caret
		s.mark = &mark
	}
}

// SelectAll selects the whole document.
func (s *Session) SelectAll() {
	start := buffer.TextPosition{}
	s.mark = &start
	last := max(s.buf.LineCount()-1, 0)
	text, _ := s.buf.LineText(last)
	s.caret = s.buf.Move(buffer.MoveNowhere, buffer.NewPosition(last, len(text)))
	s.scrollToCaret()
}

// SelectedText returns the selected text, or "" without a selection.
func (s *Session) SelectedText() string {
	if s.mark == nil {
		return ""
	}
	return s.buf.Copy(*s.mark, s.caret)
}

// deleteSelection removes the selected text. It returns false when nothing
// is selected.
func (s *Session) deleteSelection() bool {
	if s.mark == nil {
		return false
	}
	s.caret = s.buf.Remove(*s.mark, s.caret)
	s.mark = nil
	return true
}

// TypeRune inserts r at the caret, replacing the selection.
// A carriage return starts a new paragraph.
func (s *Session) TypeRune(r rune) {
	if r == '\r' {
		r = '\n'
	}
	s.Paste(string(r))
}

// Paste inserts text at the caret, replacing the selection.
func (s *Session) Paste(text string) {
	s.deleteSelection()
	s.caret = s.buf.Insert(s.caret, text)
	s.scrollToCaret()
}

// Delete removes the selection, or the text between the caret and where
// m would move it.
func (s *Session) Delete(m buffer.Movement) {
	if !s.deleteSelection() {
		s.caret = s.buf.Remove(s.caret, s.buf.Move(m, s.caret))
	}
	s.scrollToCaret()
}

// Click places the caret at the view point (x, y). It returns false when the
// point is outside the document.
func (s *Session) Click(x, y int, extend bool) bool {
	pos, ok := s.buf.Position(core.IPoint{X: x - s.margin, Y: y + s.scroll - s.margin})
	if !ok {
		return false
	}
	s.SetCaret(pos, extend)
	return true
}

// ScrollBy scrolls the view by dy pixels, clamped to the document.
func (s *Session) ScrollBy(dy int) {
	s.scroll = s.clampScroll(s.scroll + dy)
}

func (s *Session) clampScroll(v int) int {
	limit := max(s.buf.Height()-(s.height-2*s.margin), 0)
	return min(max(v, 0), limit)
}

// scrollToCaret scrolls the least amount that brings the caret into view.
func (s *Session) scrollToCaret() {
	if s.height <= 0 {
		return
	}
	r, ok := s.buf.Location(s.caret)
	if !ok {
		return
	}
	view := s.height - 2*s.margin
	top, bottom := int(r.Top), int(r.Bottom)
	switch {
	case bottom-s.scroll > view:
		s.scroll = bottom - view
	case top < s.scroll:
		s.scroll = top
	}
	s.scroll = max(s.scroll, 0)
}

// PaintOptions returns the paint options for the current state.
// blink is true during the off phase of the caret.
func (s *Session) PaintOptions(blink bool) paint.Options {
	opts := s.colors.WithCursor(s.caret)
	if s.mark != nil {
		opts = opts.WithSelection(*s.mark, s.caret)
	}
	opts.Blink = blink
	opts.Offset = core.Point{X: float32(s.margin), Y: float32(s.margin - s.scroll)}
	return opts
}

// Paint draws the view onto surf.
func (s *Session) Paint(surf paint.Surface, blink bool) {
	paint.Paint(surf, s.buf, s.PaintOptions(blink))
}

// String returns a short description for logs.
func (s *Session) String() string {
	return fmt.Sprintf("session %s caret %s", s.id, s.caret)
}
