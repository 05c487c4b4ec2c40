// Package buffer provides the paragraph-structured text buffer of the editor
// together with its lazily shaped layout.
//
// A Buffer stores the document as an ordered list of paragraphs. Each
// paragraph carries a layout.Line cache that is marked dirty by edits and by
// changes to the wrap width, font or locale, and reshaped on demand by the
// next geometry query:
//
//	buf := buffer.New(face.Basic(), buffer.WithWidth(400))
//	pos := buf.Insert(buffer.TextPosition{}, "hello\nworld")
//	pos = buf.Move(buffer.MoveLeft, pos)
//	rect, ok := buf.Location(pos)            // caret rectangle in pixels
//	hit, ok := buf.Position(core.IPoint{X: 10, Y: 20})
//
// Positions:
//
// A TextPosition addresses a caret location as a paragraph index and a UTF-8
// byte offset inside that paragraph. Move(MoveNowhere, p) normalizes any
// position: the paragraph is clamped to the document and the byte offset is
// snapped down to a code point boundary. Every other operation normalizes its
// input the same way.
//
// Reshaping:
//
// Reshape shapes every dirty paragraph and stacks paragraph origins from the
// top of the document. Position, Location, the row based movements and
// painting call it first; edits never shape eagerly.
//
// Thread Safety:
//
// A Buffer is owned by one editing session and is not safe for concurrent
// use.
package buffer
