package obelizmo

import (
	"container/heap"
	"io"
)

// StreamOptions configures RenderStream.
type StreamOptions struct {
	// SkipZeroWidth suppresses an open immediately followed by its
	// close with no intervening literal text (a "zero-width
	// transition"), which otherwise arises whenever a same-offset
	// inner mark immediately supersedes an outer one. Defaults to true
	// via DefaultStreamOptions.
	SkipZeroWidth bool
}

// DefaultStreamOptions returns the spec's default stream rendering
// options (SkipZeroWidth true).
func DefaultStreamOptions() StreamOptions { return StreamOptions{SkipZeroWidth: true} }

// RenderStream sweeps store's marks against its text for an in-band
// protocol that cannot represent overlap, such as ANSI/SGR: whenever
// an inner span closes, the enclosing outer span is re-announced so
// every byte carries correct markup. Unlike RenderTree, a single mark
// may have more escape writes than one open and one close, because
// overlapping marks are re-opened each time an inner mark releases
// them; what stays balanced is the logical lifecycle (each mark is
// pushed into the open set once and popped from it once), not the
// literal byte count.
//
// The store is not mutated or consumed: rendering operates on a clone
// of its apply heap.
func RenderStream[K Kind](w io.Writer, store *MarkStore[K], table *BookendTable[K], opts StreamOptions) error {
	in := store.clone()
	var out outHeap[K]
	text := store.Text()
	var c int

	for in.Len() > 0 || out.Len() > 0 {
		closing, pos := nextTreeEvent(in, out)

		if err := writeLiteral(w, []byte(text[c:pos])); err != nil {
			return err
		}
		c = pos

		if closing {
			if err := streamClose(w, &out, table, opts, c); err != nil {
				return err
			}
			continue
		}

		if err := streamOpen(w, &in, &out, table, opts, c); err != nil {
			return err
		}
	}

	return writeLiteral(w, []byte(text[c:]))
}

// streamOpen implements spec.md §4.3 step 3: the opening branch.
func streamOpen[K Kind](w io.Writer, in *inHeap[K], out *outHeap[K], table *BookendTable[K], opts StreamOptions, c int) error {
	m := (*in)[0]

	// 3a. If the current top of OUT covers this point, and either
	// skip-zero-width is off or that mark has already produced visible
	// output, close it now so the inner mark doesn't visually nest
	// inside stray escape state; it is re-opened later in streamClose
	// once the inner mark (or chain of same-offset inner marks) ends.
	if out.Len() > 0 {
		o := (*out)[0]
		if int(o.End()) > int(m.Offset) && (!opts.SkipZeroWidth || int(o.Offset) < c) {
			if err := writeRaw(w, table.Close(o.Kind)); err != nil {
				return err
			}
		}
	}

	heap.Pop(in)

	// 3b. If a same-offset successor is next in IN, it will supersede
	// m immediately with no visible text in between; defer emitting
	// m's own open, but still transfer it onto OUT so its eventual
	// close is accounted for.
	deferred := opts.SkipZeroWidth && in.Len() > 0 && (*in)[0].Offset == m.Offset
	if !deferred {
		if err := writeRaw(w, table.Open(m.Kind)); err != nil {
			return err
		}
	}
	heap.Push(out, m)
	return nil
}

// streamClose implements spec.md §4.3 step 4: the closing branch,
// including the cascading zero-width suppression of step 4b.
func streamClose[K Kind](w io.Writer, out *outHeap[K], table *BookendTable[K], opts StreamOptions, c int) error {
	o := heap.Pop(out).(Mark[K])
	if err := writeRaw(w, table.Close(o.Kind)); err != nil {
		return err
	}

	for out.Len() > 0 {
		next := (*out)[0]
		if opts.SkipZeroWidth && int(next.End()) == c {
			heap.Pop(out)
			continue
		}
		return writeRaw(w, table.Open(next.Kind))
	}
	return nil
}
