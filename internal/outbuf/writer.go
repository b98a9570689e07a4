// Package outbuf provides line-buffered, error-sticky io.Writer
// plumbing for cmd/obelize's terminal and diagnostic output, adapted
// from jcorbin/soc's internal/socutil writer helpers. Every error
// surfaced past a WriteBuffer or Prefixer is wrapped as an
// *obelizmo.WriterError, the same error type a render sweep reports
// for a failing sink, so cmd/obelize's error handling doesn't need to
// distinguish between the two.
package outbuf

import (
	"bytes"
	"io"
	"strings"

	"github.com/mnemnion/obelizmo"
)

// WriteBuffer combines a byte buffer with a destination writer and a
// flush policy. cmd/obelize uses one to batch a visual line of
// ansi.Printer output before flushing it to stdout:
//
//	var buf WriteBuffer
//	buf.To = os.Stdout
//	for {
//		more, err := p.Next(&buf)
//		if err != nil { return err }
//		if err := buf.Flush(); err != nil { return err }
//		if !more { return nil }
//	}
type WriteBuffer struct {
	FlushPolicy
	To io.Writer
	bytes.Buffer
}

// FlushPolicy determines when a WriteBuffer should flush during its
// main write phase.
type FlushPolicy interface {
	ShouldFlush(b []byte) int
}

// FlushPolicyFunc adapts a plain function to FlushPolicy.
type FlushPolicyFunc func(b []byte) int

// ShouldFlush calls the receiver function.
func (f FlushPolicyFunc) ShouldFlush(b []byte) int { return f(b) }

// Flush writes the entire buffered contents to To, regardless of
// FlushPolicy. Call after the main write phase, typically deferred.
func (buf *WriteBuffer) Flush() error {
	_, err := buf.WriteTo(buf.To)
	return wrapErr(err)
}

// MaybeFlush writes N bytes to To if FlushPolicy reports N > 0,
// discarding the written prefix from the buffer. A nil FlushPolicy
// defaults to FlushLineChunks.
func (buf *WriteBuffer) MaybeFlush() error {
	if buf.FlushPolicy == nil {
		buf.FlushPolicy = FlushPolicyFunc(FlushLineChunks)
	}
	b := buf.Bytes()
	if n := buf.ShouldFlush(b); n > 0 {
		m, err := buf.To.Write(b[:n])
		buf.Next(m)
		return wrapErr(err)
	}
	return nil
}

func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	return &obelizmo.WriterError{Err: err}
}

// FlushLineChunks flushes as large a chunk as possible, through the
// last written newline byte. It is MaybeFlush's default policy, which
// is how a Prefixer passes complete lines downstream.
func FlushLineChunks(b []byte) int {
	if i := bytes.LastIndexByte(b, '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

// ErrWriter wraps a writer, latching its first error — as an
// *obelizmo.WriterError — and refusing further writes afterward.
type ErrWriter struct {
	io.Writer
	Err error
}

// Write passes through to Writer while Err is nil, retaining any
// error it returns.
func (ew *ErrWriter) Write(p []byte) (n int, err error) {
	if ew.Err == nil {
		var werr error
		n, werr = ew.Writer.Write(p)
		ew.Err = wrapErr(werr)
	}
	return n, ew.Err
}

// PrefixWriter returns a writer that prepends prefix before every
// line written through it. Close it to flush any partial final line.
func PrefixWriter(prefix string, w io.Writer) *Prefixer {
	var p Prefixer
	p.Buffer.To = w
	p.Prefix = prefix
	return &p
}

// Prefixer prepends a fixed prefix before every line written to an
// underlying writer. cmd/obelize uses it to give log.SetOutput a
// sink that tags -v diagnostics distinctly from rendered output.
// Create with PrefixWriter. Set Skip true for a one-shot "don't add
// the next prefix".
type Prefixer struct {
	Prefix string
	Skip   bool
	Buffer WriteBuffer
}

// Close flushes all internally buffered bytes to the underlying writer.
func (p *Prefixer) Close() error { return p.Buffer.Flush() }

// Flush flushes all internally buffered bytes to the underlying writer.
func (p *Prefixer) Flush() error { return p.Buffer.Flush() }

// Write writes bytes to the internal buffer, inserting Prefix before
// every line, then flushes all complete lines downstream.
func (p *Prefixer) Write(b []byte) (n int, err error) {
	first := true
	for len(b) > 0 {
		if !first {
			p.addPrefix()
		} else if i := p.Buffer.Len() - 1; i < 0 || p.Buffer.Bytes()[i] == '\n' {
			p.addPrefix()
			first = false
		} else {
			first = false
		}

		line := b
		if i := bytes.IndexByte(b, '\n'); i >= 0 {
			i++
			line = b[:i]
			b = b[i:]
		} else {
			b = nil
		}
		m, _ := p.Buffer.Write(line)
		n += m
	}
	return n, p.Buffer.MaybeFlush()
}

// WriteString writes a string to the internal buffer, inserting
// Prefix before every line, then flushes all complete lines
// downstream.
func (p *Prefixer) WriteString(s string) (n int, err error) {
	first := true
	for len(s) > 0 {
		if !first {
			p.addPrefix()
		} else if i := p.Buffer.Len() - 1; i < 0 || p.Buffer.Bytes()[i] == '\n' {
			p.addPrefix()
			first = false
		} else {
			first = false
		}

		line := s
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			i++
			line = s[:i]
			s = s[i:]
		} else {
			s = ""
		}
		m, _ := p.Buffer.WriteString(line)
		n += m
	}
	return n, p.Buffer.MaybeFlush()
}

func (p *Prefixer) addPrefix() {
	if p.Skip {
		p.Skip = false
	} else {
		p.Buffer.WriteString(p.Prefix)
	}
}
