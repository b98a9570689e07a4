// Package textbuf accumulates bytes into a single immutable buffer, the
// backing store for the text a MarkStore marks. Unlike jcorbin/soc's scanio.ByteArena,
// which this is trimmed from, it exposes no mid-stream token handles:
// Obelizmo's text is written once, frozen, and never spliced.
package textbuf

// Arena is an io.Writer that accumulates bytes into an internal buffer
// until Take freezes them into an immutable string.
type Arena struct {
	buf []byte
}

// Write appends p to the arena's buffer.
func (a *Arena) Write(p []byte) (int, error) {
	a.buf = append(a.buf, p...)
	return len(p), nil
}

// WriteString appends s to the arena's buffer.
func (a *Arena) WriteString(s string) (int, error) {
	a.buf = append(a.buf, s...)
	return len(s), nil
}

// Len reports how many bytes have been written so far.
func (a *Arena) Len() int { return len(a.buf) }

// Take freezes the accumulated bytes into an immutable string and
// returns it. The underlying buffer is unaffected; call Reset to
// reuse the arena for a new piece of text.
func (a *Arena) Take() string { return string(a.buf) }

// Reset discards all accumulated bytes, readying the arena for reuse.
func (a *Arena) Reset() { a.buf = a.buf[:0] }
