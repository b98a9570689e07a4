package obelizmo

import (
	"container/heap"
	"math"
)

// inHeap is the apply queue: a container/heap ordered by ordIn. The
// mark store keeps its marks in one of these at all times, so a
// render's starting IN heap is a plain slice copy — no re-heapify
// needed, since copying an already heap-ordered slice preserves the
// invariant.
type inHeap[K Kind] []Mark[K]

func (h inHeap[K]) Len() int            { return len(h) }
func (h inHeap[K]) Less(i, j int) bool  { return ordIn(h[i], h[j]) }
func (h inHeap[K]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *inHeap[K]) Push(x interface{}) { *h = append(*h, x.(Mark[K])) }
func (h *inHeap[K]) Pop() interface{} {
	old := *h
	n := len(old)
	m := old[n-1]
	*h = old[:n-1]
	return m
}

func (h inHeap[K]) clone() inHeap[K] {
	out := make(inHeap[K], len(h))
	copy(out, h)
	return out
}

// outHeap is the open-set queue used during a sweep: a container/heap
// ordered by ordOut.
type outHeap[K Kind] []Mark[K]

func (h outHeap[K]) Len() int            { return len(h) }
func (h outHeap[K]) Less(i, j int) bool  { return ordOut(h[i], h[j]) }
func (h outHeap[K]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *outHeap[K]) Push(x interface{}) { *h = append(*h, x.(Mark[K])) }
func (h *outHeap[K]) Pop() interface{} {
	old := *h
	n := len(old)
	m := old[n-1]
	*h = old[:n-1]
	return m
}

// MarkStore owns an immutable, borrowed text buffer and a
// priority-ordered collection of Marks over it. Marks may be inserted
// in any order and may overlap; the store does not deduplicate. A
// render operates on a clone of the store's internal heap, so the
// store survives rendering unchanged and may be mutated further
// afterwards.
type MarkStore[K Kind] struct {
	text  string
	marks inHeap[K]
}

// NewMarkStore creates a store over the given borrowed text with no
// marks.
func NewMarkStore[K Kind](text string) *MarkStore[K] {
	return &MarkStore[K]{text: text}
}

// NewMarkStoreWithCapacity creates a store over the given borrowed
// text, preallocating room for n marks.
func NewMarkStoreWithCapacity[K Kind](text string, n int) *MarkStore[K] {
	return &MarkStore[K]{text: text, marks: make(inHeap[K], 0, n)}
}

// Text returns the store's borrowed text.
func (s *MarkStore[K]) Text() string { return s.text }

// Len returns the number of marks currently in the store.
func (s *MarkStore[K]) Len() int { return len(s.marks) }

// MarkSlice marks the half-open byte range [start, end) with kind. It
// fails with *InvalidRegionError if start > end or end exceeds the
// length of the store's text.
func (s *MarkStore[K]) MarkSlice(kind K, start, end int) (err error) {
	if start < 0 || start > end || end > len(s.text) {
		return &InvalidRegionError{Start: uint64(start), End: uint64(end), TextLen: len(s.text)}
	}
	return s.push(kind, uint32(start), uint32(end-start))
}

// MarkFrom marks length bytes starting at offset with kind. It fails
// with *InvalidRegionError if offset+length exceeds the length of the
// store's text or overflows a uint32.
func (s *MarkStore[K]) MarkFrom(kind K, offset, length uint32) (err error) {
	end := uint64(offset) + uint64(length)
	if end > math.MaxUint32 || end > uint64(len(s.text)) {
		return &InvalidRegionError{Start: uint64(offset), End: end, TextLen: len(s.text)}
	}
	return s.push(kind, offset, length)
}

func (s *MarkStore[K]) push(kind K, offset, length uint32) (err error) {
	defer recoverOOM(&err)
	heap.Push(&s.marks, Mark[K]{Kind: kind, Offset: offset, Len: length})
	return nil
}

// FindAndMark marks the first byte-wise occurrence of needle, if any,
// reporting its starting index.
func (s *MarkStore[K]) FindAndMark(kind K, needle string) (index int, found bool, err error) {
	return s.FindAndMarkPos(kind, needle, 0)
}

// FindAndMarkPos marks the first byte-wise occurrence of needle at or
// after byte offset from, if any, reporting its starting index.
func (s *MarkStore[K]) FindAndMarkPos(kind K, needle string, from int) (index int, found bool, err error) {
	if from < 0 {
		from = 0
	}
	if from > len(s.text) {
		return 0, false, nil
	}
	i := indexByteWise(s.text[from:], needle)
	if i < 0 {
		return 0, false, nil
	}
	index = from + i
	if err = s.push(kind, uint32(index), uint32(len(needle))); err != nil {
		return 0, false, err
	}
	return index, true, nil
}

// FindAndMarkLast marks the last byte-wise occurrence of needle, if
// any, reporting its starting index.
func (s *MarkStore[K]) FindAndMarkLast(kind K, needle string) (index int, found bool, err error) {
	i := lastIndexByteWise(s.text, needle)
	if i < 0 {
		return 0, false, nil
	}
	if err = s.push(kind, uint32(i), uint32(len(needle))); err != nil {
		return 0, false, err
	}
	return i, true, nil
}

// MatchAndMark marks the first match of re against the store's text,
// if any, reporting its starting index.
func (s *MarkStore[K]) MatchAndMark(kind K, re Regexp) (index int, found bool, err error) {
	span, ok := re.Match(s.text)
	if !ok {
		return 0, false, nil
	}
	if err = s.push(kind, uint32(span.Start), uint32(span.End-span.Start)); err != nil {
		return 0, false, err
	}
	return span.Start, true, nil
}

// MatchAndMarkPos marks the first match of re at or after byte offset
// from, if any, reporting its starting index.
func (s *MarkStore[K]) MatchAndMarkPos(kind K, re Regexp, from int) (index int, found bool, err error) {
	span, ok := re.MatchPos(from, s.text)
	if !ok {
		return 0, false, nil
	}
	if err = s.push(kind, uint32(span.Start), uint32(span.End-span.Start)); err != nil {
		return 0, false, err
	}
	return span.Start, true, nil
}

// MatchAndMarkAll marks every non-overlapping match of re against the
// store's text, reporting whether any were found.
func (s *MarkStore[K]) MatchAndMarkAll(kind K, re Regexp) (found bool, err error) {
	re.Iterate(s.text)(func(span Span) bool {
		if pushErr := s.push(kind, uint32(span.Start), uint32(span.End-span.Start)); pushErr != nil {
			err = pushErr
			return false
		}
		found = true
		return true
	})
	return found, err
}

// clone returns a copy of the store's apply heap, suitable as the
// starting IN heap for a render. The store itself is left unchanged.
func (s *MarkStore[K]) clone() inHeap[K] { return s.marks.clone() }

// Marks returns every mark currently in the store, in Ord_in order
// (the order a tree or stream render would pop them from IN). The
// returned slice is a copy; mutating it does not affect the store.
// This is the entry point external sweepers — such as the terminal
// line printer in obelizmo/ansi, which needs its own event loop to
// track line boundaries — use to build their own heaps without
// reaching into the store's internals.
func (s *MarkStore[K]) Marks() []Mark[K] {
	h := s.marks.clone()
	out := make([]Mark[K], len(h))
	for i := range out {
		out[i] = heap.Pop(&h).(Mark[K])
	}
	return out
}

func indexByteWise(haystack, needle string) int {
	n := len(needle)
	if n == 0 {
		return 0
	}
	for i := 0; i+n <= len(haystack); i++ {
		if haystack[i:i+n] == needle {
			return i
		}
	}
	return -1
}

func lastIndexByteWise(haystack, needle string) int {
	n := len(needle)
	if n == 0 {
		return len(haystack)
	}
	for i := len(haystack) - n; i >= 0; i-- {
		if haystack[i:i+n] == needle {
			return i
		}
	}
	return -1
}
