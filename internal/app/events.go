package app

import (
	"github.com/dshills/typepad/internal/engine/buffer"
	"github.com/dshills/typepad/internal/renderer/backend"
)

// keyMovements maps navigation keys to caret movements.
var keyMovements = map[backend.Key]buffer.Movement{
	backend.KeyLeft:  buffer.MoveLeft,
	backend.KeyRight: buffer.MoveRight,
	backend.KeyUp:    buffer.MoveUp,
	backend.KeyDown:  buffer.MoveDown,
	backend.KeyHome:  buffer.MoveHome,
	backend.KeyEnd:   buffer.MoveEnd,
}

// wheelStep is the scroll distance of one mouse wheel notch, in rows.
const wheelStep = 3

// HandleEvent applies a terminal event to the session. Mouse coordinates
// are cells of cellWidth x cellHeight pixels. It returns true when the
// event asks to quit.
func (s *Session) HandleEvent(ev backend.Event, cellWidth, cellHeight float32) (quit bool) {
	switch ev.Type {
	case backend.EventResize:
		s.Resize(int(float32(ev.Width)*cellWidth), int(float32(ev.Height)*cellHeight))

	case backend.EventMouse:
		switch ev.MouseButton {
		case backend.MouseLeft:
			x := int((float32(ev.MouseX) + 0.5) * cellWidth)
			y := int((float32(ev.MouseY) + 0.5) * cellHeight)
			s.Click(x, y, ev.Mod.Has(backend.ModShift))
		case backend.MouseWheelUp:
			s.ScrollBy(-wheelStep * int(cellHeight))
		case backend.MouseWheelDown:
			s.ScrollBy(wheelStep * int(cellHeight))
		}

	case backend.EventKey:
		return s.handleKey(ev)
	}
	return false
}

func (s *Session) handleKey(ev backend.Event) bool {
	extend := ev.Mod.Has(backend.ModShift)
	word := ev.Mod.Has(backend.ModCtrl) || ev.Mod.Has(backend.ModAlt)

	if m, ok := keyMovements[ev.Key]; ok {
		if word {
			switch m {
			case buffer.MoveLeft:
				m = buffer.MoveWordLeft
			case buffer.MoveRight:
				m = buffer.MoveWordRight
			}
		}
		s.MoveCaret(m, extend)
		return false
	}

	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC, backend.KeyCtrlQ:
		return true
	case backend.KeyEnter:
		s.TypeRune('\r')
	case backend.KeyTab:
		s.TypeRune('\t')
	case backend.KeyBackspace:
		s.Delete(buffer.MoveLeft)
	case backend.KeyDelete:
		s.Delete(buffer.MoveRight)
	case backend.KeyRune:
		s.TypeRune(ev.Rune)
	}
	return false
}
