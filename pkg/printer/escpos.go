package printer

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// ESC/POS control bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character size
const (
	FontNormal = 0x00
	FontDouble = 0x11
)

// Paper widths in characters
const (
	Width58mm = 32
	Width80mm = 48
)

// Document builds an ESC/POS byte stream. Column math counts runes so
// accented product names line up.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument starts a document for charWidth columns. Non-positive means 58mm paper.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = Width58mm
	}
	d := &Document{width: charWidth}
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// Width is the column count of the document
func (d *Document) Width() int {
	return d.width
}

// Feed sends n line feeds.
func (d *Document) Feed(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// Align sets text alignment.
func (d *Document) Align(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// Bold toggles emphasized text.
func (d *Document) Bold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// Size sets the character size.
func (d *Document) Size(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Line writes s and a line feed.
func (d *Document) Line(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
	return d
}

// Rule prints a full-width line of char.
func (d *Document) Rule(char rune) *Document {
	return d.Line(strings.Repeat(string(char), d.width))
}

// Columns prints left and right on one line, padding between them.
// When both do not fit the left side is truncated.
func (d *Document) Columns(left, right string) *Document {
	room := d.width - utf8.RuneCountInString(right) - 1
	if room < 1 {
		return d.Line(left).Line(right)
	}
	if n := utf8.RuneCountInString(left); n > room {
		left = string([]rune(left)[:room])
	}
	pad := d.width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	return d.Line(left + strings.Repeat(" ", pad) + right)
}

// Cut sends the partial paper cut command.
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}
