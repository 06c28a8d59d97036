package zig

import (
	"bytes"
	"fmt"
	"strings"
)

// writer accumulates indented source lines.
type writer struct {
	buf    bytes.Buffer
	indent string
	depth  int
}

func newWriter(indentSize int) *writer {
	return &writer{indent: strings.Repeat(" ", indentSize)}
}

// line writes one indented line. An empty format writes a blank line.
func (w *writer) line(format string, args ...any) {
	if format == "" {
		w.buf.WriteByte('\n')
		return
	}
	for range w.depth {
		w.buf.WriteString(w.indent)
	}
	fmt.Fprintf(&w.buf, format, args...)
	w.buf.WriteByte('\n')
}

// open writes a line ending a block opener and indents what follows.
func (w *writer) open(format string, args ...any) {
	w.line(format, args...)
	w.depth++
}

// close dedents and writes the block terminator.
func (w *writer) close(terminator string) {
	w.depth--
	w.line("%s", terminator)
}

// block writes head followed by body, or "head}tail" when body writes
// nothing, so empty containers render as "{}".
func (w *writer) block(head, tail string, body func()) {
	mark := w.buf.Len()
	w.open("%s", head)
	bodyStart := w.buf.Len()
	body()
	if w.buf.Len() == bodyStart {
		w.buf.Truncate(mark)
		w.depth--
		w.line("%s}%s", head, tail)
		return
	}
	w.close("}" + tail)
}

func (w *writer) bytes() []byte {
	return w.buf.Bytes()
}
