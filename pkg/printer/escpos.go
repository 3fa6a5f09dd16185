package printer

import (
	"bytes"
	"fmt"
	"strings"
)

// ESC/POS control bytes
const (
	escByte = 0x1B
	gsByte  = 0x1D
	lfByte  = 0x0A
)

// Text alignment for SetAlign
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character size for SetFontSize
const (
	FontNormal = 0x00
	FontDouble = 0x11 // double width and height
)

// Document accumulates an ESC/POS byte stream for a ticket.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument creates an ESC/POS document with the given character width.
// 58mm paper fits 32 characters, 80mm fits 48.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{width: charWidth}
	d.buf.Write([]byte{escByte, '@'}) // initialize printer
	return d
}

// LineFeed advances the paper one line.
func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(lfByte)
	return d
}

// FeedLines advances the paper n lines.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(lfByte)
	}
	return d
}

// SetAlign sets text alignment for subsequent lines.
func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{escByte, 'a', byte(align)})
	return d
}

// SetBold enables or disables emphasized text.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{escByte, 'E', b})
	return d
}

// SetFontSize sets the character size.
func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{gsByte, '!', size})
	return d
}

// Text writes a line followed by a line feed, truncated to the paper width.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(d.clip(s, d.width))
	d.buf.WriteByte(lfByte)
	return d
}

// TextF writes a formatted line followed by a line feed.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Separator prints a full-width rule of the given character.
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(lfByte)
	return d
}

// KeyValue prints a left-aligned key and a right-aligned value on one line.
// The key is truncated if the pair does not fit the paper width.
func (d *Document) KeyValue(key, value string) *Document {
	maxKey := d.width - len(value) - 1
	if maxKey < 1 {
		maxKey = 1
	}
	key = d.clip(key, maxKey)

	spaces := d.width - len(key) - len(value)
	if spaces < 1 {
		spaces = 1
	}
	d.buf.WriteString(key)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.buf.WriteString(value)
	d.buf.WriteByte(lfByte)
	return d
}

// ItemLine prints a sale line: quantity and name on the left, amount on the
// right. Long names are truncated so the amount always stays on the line.
func (d *Document) ItemLine(qty int, name, total string) *Document {
	prefix := fmt.Sprintf("%dx ", qty)
	maxName := d.width - len(prefix) - len(total) - 1
	if maxName < 1 {
		maxName = 1
	}
	name = d.clip(name, maxName)

	left := prefix + name
	spaces := d.width - len(left) - len(total)
	if spaces < 1 {
		spaces = 1
	}
	d.buf.WriteString(left)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.buf.WriteString(total)
	d.buf.WriteByte(lfByte)
	return d
}

// PartialCut sends the partial paper cut command, leaving a small tab.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{gsByte, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func (d *Document) clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "."
}
