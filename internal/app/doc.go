// Package app ties a text buffer to an editing session.
//
// A Session owns the caret, the optional selection mark and the vertical
// scroll offset of one document, and turns editing commands (typing,
// deleting, caret movement, clicks) into buffer operations. It paints
// through any paint.Surface, so the same session drives PNG rendering and
// the terminal preview.
//
// The package also builds the process logger and loads fonts from
// configuration.
package app
