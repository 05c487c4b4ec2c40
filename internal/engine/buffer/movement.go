package buffer

import "fmt"

// Movement is a caret motion.
type Movement uint8

const (
	// MoveNowhere normalizes the position.
	MoveNowhere Movement = iota
	// MoveLeft steps to the previous code point, crossing paragraphs.
	MoveLeft
	// MoveRight steps to the next code point, crossing paragraphs.
	MoveRight
	// MoveUp goes to the visual row above, keeping the caret x.
	MoveUp
	// MoveDown goes to the visual row below, keeping the caret x.
	MoveDown
	// MoveHome goes to the start of the visual row.
	MoveHome
	// MoveEnd goes to the end of the visual row.
	MoveEnd
	// MoveWordLeft goes to the start of the previous word.
	MoveWordLeft
	// MoveWordRight goes to the end of the next word.
	MoveWordRight
)

var movementNames = [...]string{
	MoveNowhere:   "Nowhere",
	MoveLeft:      "Left",
	MoveRight:     "Right",
	MoveUp:        "Up",
	MoveDown:      "Down",
	MoveHome:      "Home",
	MoveEnd:       "End",
	MoveWordLeft:  "WordLeft",
	MoveWordRight: "WordRight",
}

// String returns the movement name.
func (m Movement) String() string {
	if int(m) < len(movementNames) {
		return movementNames[m]
	}
	return fmt.Sprintf("Movement(%d)", m)
}

// ParseMovement returns the movement with the given name.
func ParseMovement(name string) (Movement, bool) {
	for i, n := range movementNames {
		if n == name {
			return Movement(i), true
		}
	}
	return MoveNowhere, false
}

// needsGeometry reports whether the movement reads shaped rows.
func (m Movement) needsGeometry() bool {
	switch m {
	case MoveUp, MoveDown, MoveHome, MoveEnd:
		return true
	}
	return false
}
