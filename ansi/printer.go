package ansi

import (
	"container/heap"
	"errors"
	"io"

	"github.com/mnemnion/obelizmo"
)

// ColorTable is a total function from a Kind's discriminant to its
// Color, the terminal-mode analogue of obelizmo.BookendTable.
type ColorTable[K obelizmo.Kind] struct {
	entries []Color
}

// NewColorTable builds a table covering discriminants [0, numKinds),
// failing if entries is missing any discriminant in that range or
// names one outside it.
func NewColorTable[K obelizmo.Kind](numKinds int, entries map[K]Color) (*ColorTable[K], error) {
	tbl := make([]Color, numKinds)
	seen := make([]bool, numKinds)
	for k, c := range entries {
		i := int(k)
		if i < 0 || i >= numKinds {
			return nil, errors.New("obelizmo/ansi: color table: kind out of range")
		}
		tbl[i] = c
		seen[i] = true
	}
	for _, ok := range seen {
		if !ok {
			return nil, errors.New("obelizmo/ansi: color table: missing entry for a kind discriminant")
		}
	}
	return &ColorTable[K]{entries: tbl}, nil
}

// Color returns the color assigned to kind.
func (t *ColorTable[K]) Color(kind K) Color { return t.entries[int(kind)] }

// mark ordering, local to this package so the printer's event loop
// doesn't need unexported access to obelizmo's own heaps.

type inHeap[K obelizmo.Kind] []obelizmo.Mark[K]

func ordIn[K obelizmo.Kind](a, b obelizmo.Mark[K]) bool {
	if a.Offset != b.Offset {
		return a.Offset < b.Offset
	}
	if a.Len != b.Len {
		return a.Len > b.Len
	}
	return a.Kind < b.Kind
}

func (h inHeap[K]) Len() int           { return len(h) }
func (h inHeap[K]) Less(i, j int) bool { return ordIn(h[i], h[j]) }
func (h inHeap[K]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *inHeap[K]) Push(x interface{}) {
	*h = append(*h, x.(obelizmo.Mark[K]))
}
func (h *inHeap[K]) Pop() interface{} {
	old := *h
	n := len(old)
	m := old[n-1]
	*h = old[:n-1]
	return m
}

type outHeap[K obelizmo.Kind] []obelizmo.Mark[K]

func ordOut[K obelizmo.Kind](a, b obelizmo.Mark[K]) bool {
	if ea, eb := a.End(), b.End(); ea != eb {
		return ea < eb
	}
	if a.Len != b.Len {
		return a.Len < b.Len
	}
	return a.Kind > b.Kind
}

func (h outHeap[K]) Len() int           { return len(h) }
func (h outHeap[K]) Less(i, j int) bool { return ordOut(h[i], h[j]) }
func (h outHeap[K]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *outHeap[K]) Push(x interface{}) {
	*h = append(*h, x.(obelizmo.Mark[K]))
}
func (h *outHeap[K]) Pop() interface{} {
	old := *h
	n := len(old)
	m := old[n-1]
	*h = old[:n-1]
	return m
}

// ErrPrinterDone is returned by Next once the printer has already
// emitted the final line on a prior call.
var ErrPrinterDone = errors.New("obelizmo/ansi: printer already finished")

// Printer drives the stream sweep for Color-valued marks one logical
// line at a time, tracking three class-partitioned style stacks
// (foreground, background, underline) so that a style spanning
// multiple lines is correctly re-emitted at the start of each line a
// terminal raw-mode caller redraws independently.
//
// Unlike the tag-based stream sweep in the root package, opening a
// mark never closes an enclosing mark first: SGR
// state is absolute, not nested, so the new escape simply overwrites
// the active one for that class. Closing a mark restores whatever
// same-class mark remains on its stack, if any.
type Printer[K obelizmo.Kind] struct {
	table *ColorTable[K]
	text  string
	in    inHeap[K]
	out   outHeap[K]
	cur   int

	stacks [3][]obelizmo.Mark[K] // indexed by Class: Foreground, Background, Underline
	done   bool
}

// NewPrinter builds a Printer over store's current marks, rendered
// through table.
func NewPrinter[K obelizmo.Kind](store *obelizmo.MarkStore[K], table *ColorTable[K]) *Printer[K] {
	p := &Printer[K]{table: table}
	p.NewText(store)
	return p
}

// NewText rebinds the printer to store's current marks and text,
// resetting the cursor, heaps, and class stacks while retaining the
// printer's allocated capacity.
func (p *Printer[K]) NewText(store *obelizmo.MarkStore[K]) {
	marks := store.Marks()
	in := make(inHeap[K], len(marks))
	copy(in, marks)
	p.in = in
	p.out = p.out[:0]
	p.text = store.Text()
	p.cur = 0
	p.done = false
	for i := range p.stacks {
		p.stacks[i] = p.stacks[i][:0]
	}
}

func classIndex(c Class) int {
	switch c {
	case ClassForeground:
		return 0
	case ClassBackground:
		return 1
	case ClassUnderline:
		return 2
	default:
		return -1
	}
}

// findLineTerm reports the index within s (the same offset space as
// from and end) of the first line terminator at or after
// from, and its byte length (1 for "\n" or lone "\r", 2 for "\r\n").
// It returns (-1, 0) if none is found before end.
func findLineTerm(s string, from, end int) (idx, width int) {
	for i := from; i < end; i++ {
		switch s[i] {
		case '\n':
			return i, 1
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				return i, 2
			}
			return i, 1
		}
	}
	return -1, 0
}

// Next runs the printer's state machine until a logical line is
// complete or the stream is exhausted, writing through w. It reports
// true if more lines may follow a completed line, false on the call
// that completes the final line, and ErrPrinterDone if called again
// after that.
func (p *Printer[K]) Next(w io.Writer) (more bool, err error) {
	if p.done {
		return false, ErrPrinterDone
	}

	// A mark still active on a class stack from a prior line spans
	// this line too; its escape is re-emitted before any of this
	// line's literal text, since a terminal redraw of one line at a
	// time cannot otherwise assume SGR state carried over visually.
	for ci := range p.stacks {
		if n := len(p.stacks[ci]); n > 0 {
			top := p.stacks[ci][n-1]
			if err := p.writeEscape(w, p.table.Color(top.Kind).On()); err != nil {
				return false, err
			}
		}
	}

	for {
		haveM, haveO := p.in.Len() > 0, p.out.Len() > 0
		var closing bool
		var pos int
		switch {
		case haveO && (!haveM || int(p.out[0].End()) < int(p.in[0].Offset)):
			closing, pos = true, int(p.out[0].End())
		case haveM:
			closing, pos = false, int(p.in[0].Offset)
		default:
			pos = len(p.text)
		}

		if idx, width := findLineTerm(p.text, p.cur, pos); idx >= 0 {
			if err := p.write(w, p.text[p.cur:idx]); err != nil {
				return false, err
			}
			p.cur = idx + width
			return true, nil
		}

		if err := p.write(w, p.text[p.cur:pos]); err != nil {
			return false, err
		}
		p.cur = pos

		if !haveM && !haveO {
			p.done = true
			return false, nil
		}

		if closing {
			if err := p.closeTop(w); err != nil {
				return false, err
			}
			continue
		}
		if err := p.openTop(w); err != nil {
			return false, err
		}
	}
}

func (p *Printer[K]) write(w io.Writer, s string) error {
	if s == "" {
		return nil
	}
	_, err := io.WriteString(w, s)
	if err != nil {
		return &obelizmo.WriterError{Err: err}
	}
	return nil
}

func (p *Printer[K]) writeEscape(w io.Writer, b []byte) error {
	if len(b) == 0 {
		return nil
	}
	_, err := w.Write(b)
	if err != nil {
		return &obelizmo.WriterError{Err: err}
	}
	return nil
}

func (p *Printer[K]) openTop(w io.Writer) error {
	m := heap.Pop(&p.in).(obelizmo.Mark[K])
	color := p.table.Color(m.Kind)
	if err := p.writeEscape(w, color.On()); err != nil {
		return err
	}
	if ci := classIndex(color.Class()); ci >= 0 {
		p.stacks[ci] = append(p.stacks[ci], m)
	}
	heap.Push(&p.out, m)
	return nil
}

func (p *Printer[K]) closeTop(w io.Writer) error {
	o := heap.Pop(&p.out).(obelizmo.Mark[K])
	color := p.table.Color(o.Kind)
	if err := p.writeEscape(w, color.Off()); err != nil {
		return err
	}
	ci := classIndex(color.Class())
	if ci < 0 {
		return nil
	}
	stack := p.stacks[ci]
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == o {
			stack = append(stack[:i], stack[i+1:]...)
			break
		}
	}
	p.stacks[ci] = stack
	if n := len(stack); n > 0 {
		return p.writeEscape(w, p.table.Color(stack[n-1].Kind).On())
	}
	return nil
}

// WriteAll drains the printer to w, calling Next in a loop until the
// stream is exhausted. It is a convenience for callers that don't need
// per-line control over cursor repositioning.
func (p *Printer[K]) WriteAll(w io.Writer) error {
	for {
		more, err := p.Next(w)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}
