package obelizmo

import (
	"container/heap"
	"io"
)

// RenderTree sweeps store's marks against its text, writing every
// mark's open bookend and close bookend exactly once through w. If
// marks properly nest, the result is a valid nested-tag sequence; if
// they merely overlap, the output still has balanced opens and closes
// but may not be well-nested — producing nesting-safe marks for tree
// output is the caller's responsibility.
//
// The store is not mutated or consumed: rendering operates on a clone
// of its apply heap, so further marks may be added afterward and the
// store rendered again.
func RenderTree[K Kind](w io.Writer, store *MarkStore[K], table *BookendTable[K]) error {
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
			o := heap.Pop(&out).(Mark[K])
			if err := writeRaw(w, table.Close(o.Kind)); err != nil {
				return err
			}
		} else {
			m := heap.Pop(&in).(Mark[K])
			if err := writeRaw(w, table.Open(m.Kind)); err != nil {
				return err
			}
			heap.Push(&out, m)
		}
	}

	return writeLiteral(w, []byte(text[c:]))
}

// nextTreeEvent decides whether the next event is a close (true) or an
// open (false), and the text position at which it occurs, given the
// current IN and OUT heaps' tops.
func nextTreeEvent[K Kind](in inHeap[K], out outHeap[K]) (closing bool, pos int) {
	haveM, haveO := in.Len() > 0, out.Len() > 0
	if haveO && (!haveM || int(out[0].End()) < int(in[0].Offset)) {
		return true, int(out[0].End())
	}
	return false, int(in[0].Offset)
}
