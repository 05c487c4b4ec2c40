package backend

import (
	"fmt"
	"math"
	"sync"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/typepad/internal/renderer/core"
	"github.com/dshills/typepad/internal/renderer/paint"
	"github.com/dshills/typepad/internal/shape"
)

// Default cell size in pixels, matching the 7x13 bitmap font.
const (
	DefaultCellWidth  = 7
	DefaultCellHeight = 13
)

// Terminal is a paint.Surface on a tcell screen.
type Terminal struct {
	screen     tcell.Screen
	cellWidth  float32
	cellHeight float32
	mu         sync.Mutex
}

var _ paint.Surface = (*Terminal)(nil)

// Option configures a Terminal.
type Option func(*Terminal)

// WithCellSize sets the number of pixels one cell stands for.
func WithCellSize(width, height float32) Option {
	return func(t *Terminal) {
		if width > 0 && height > 0 {
			t.cellWidth = width
			t.cellHeight = height
		}
	}
}

// NewTerminal creates a terminal surface on the controlling terminal.
// Init must be called before drawing.
func NewTerminal(opts ...Option) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	return newTerminal(screen, opts), nil
}

// NewSimulation creates an initialized terminal surface backed by an
// in-memory screen of width x height cells.
func NewSimulation(width, height int, opts ...Option) (*Terminal, error) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init simulation screen: %w", err)
	}
	screen.SetSize(width, height)
	return newTerminal(screen, opts), nil
}

func newTerminal(screen tcell.Screen, opts []Option) *Terminal {
	t := &Terminal{
		screen:     screen,
		cellWidth:  DefaultCellWidth,
		cellHeight: DefaultCellHeight,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Init initializes the screen and enables mouse reporting.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	return nil
}

// Shutdown restores the terminal.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

// Size returns the screen size in cells.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// PixelSize returns the screen size in document pixels.
func (t *Terminal) PixelSize() (int, int) {
	w, h := t.Size()
	return int(float32(w) * t.cellWidth), int(float32(h) * t.cellHeight)
}

// CellSize returns the pixel size of one cell.
func (t *Terminal) CellSize() (float32, float32) {
	return t.cellWidth, t.cellHeight
}

// Show flushes pending drawing to the terminal.
func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

// Clear implements paint.Surface.
func (t *Terminal) Clear(c core.Color) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fill(' ', tcell.StyleDefault.Background(toTcell(c)))
}

// FillRect implements paint.Surface. A cell is filled when its center lies
// inside r; a rectangle narrower than a cell fills the cell under its center.
func (t *Terminal) FillRect(r core.Rect, c core.Color) {
	if c.IsTransparent() || r.IsEmpty() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	x0, x1 := t.span(r.Left, r.Right, t.cellWidth)
	y0, y1 := t.span(r.Top, r.Bottom, t.cellHeight)
	bg := toTcell(c)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			mainc, comb, style, _ := t.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
			t.screen.SetContent(x, y, mainc, comb, style.Background(bg))
		}
	}
}

// span maps the pixel interval [lo, hi) to the cells whose centers it covers.
func (t *Terminal) span(lo, hi, size float32) (int, int) {
	first := int(math.Ceil(float64(lo/size - 0.5)))
	last := int(math.Ceil(float64(hi/size - 0.5)))
	if first >= last {
		first = int(math.Floor(float64((lo + hi) / 2 / size)))
		last = first + 1
	}
	return first, last
}

// DrawGlyphRun implements paint.Surface. Each cluster is drawn once, as its
// first code point, in the cell containing the glyph's pen position.
func (t *Terminal) DrawGlyphRun(run *shape.GlyphRun, origin core.Point, c core.Color) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fg := toTcell(c)
	prev := -1
	for i, pos := range run.Positions {
		cluster := int(run.Clusters[i])
		if cluster == prev || cluster >= len(run.Text) {
			continue
		}
		prev = cluster

		r, _ := utf8.DecodeRuneInString(run.Text[cluster:])
		if r == ' ' || r == '\t' {
			continue
		}
		p := origin.Add(pos)
		x := int(math.Floor(float64(p.X/t.cellWidth + 0.5)))
		y := int(math.Floor(float64((p.Y - 1) / t.cellHeight)))
		_, _, style, _ := t.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
		t.screen.SetContent(x, y, r, nil, style.Foreground(fg))
	}
}

// Cell returns the rune and colors of the cell at x, y.
func (t *Terminal) Cell(x, y int) (r rune, fg, bg core.Color) {
	t.mu.Lock()
	defer t.mu.Unlock()

	mainc, _, style, _ := t.screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	f, b, _ := style.Decompose()
	return mainc, fromTcell(f), fromTcell(b)
}

// PollEvent waits for the next terminal event.
func (t *Terminal) PollEvent() Event {
	return convertEvent(t.screen.PollEvent())
}

// Interrupt wakes a goroutine blocked in PollEvent.
func (t *Terminal) Interrupt() {
	t.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func toTcell(c core.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func fromTcell(tc tcell.Color) core.Color {
	if tc == tcell.ColorDefault {
		return core.ColorTransparent
	}
	r, g, b := tc.RGB()
	return core.ColorFromRGB(uint8(r), uint8(g), uint8(b))
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  convertKey(e.Key()),
			Rune: e.Rune(),
			Mod:  convertMod(e.Modifiers()),
		}

	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{
			Type:        EventMouse,
			MouseX:      x,
			MouseY:      y,
			MouseButton: convertMouseButton(e.Buttons()),
			Mod:         convertMod(e.Modifiers()),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{
			Type:   EventResize,
			Width:  w,
			Height: h,
		}

	default:
		return Event{Type: EventNone}
	}
}

func convertKey(k tcell.Key) Key {
	switch k {
	case tcell.KeyRune:
		return KeyRune
	case tcell.KeyEscape:
		return KeyEscape
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyTab:
		return KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace
	case tcell.KeyDelete:
		return KeyDelete
	case tcell.KeyHome:
		return KeyHome
	case tcell.KeyEnd:
		return KeyEnd
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	case tcell.KeyCtrlC:
		return KeyCtrlC
	case tcell.KeyCtrlQ:
		return KeyCtrlQ
	default:
		return KeyNone
	}
}

func convertMod(m tcell.ModMask) ModMask {
	var result ModMask
	if m&tcell.ModShift != 0 {
		result |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= ModMeta
	}
	return result
}

func convertMouseButton(b tcell.ButtonMask) MouseButton {
	switch {
	case b&tcell.Button1 != 0:
		return MouseLeft
	case b&tcell.Button2 != 0:
		return MouseMiddle
	case b&tcell.Button3 != 0:
		return MouseRight
	case b&tcell.WheelUp != 0:
		return MouseWheelUp
	case b&tcell.WheelDown != 0:
		return MouseWheelDown
	default:
		return MouseNone
	}
}
