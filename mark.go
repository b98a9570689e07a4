package obelizmo

import "fmt"

// Kind is the constraint on a caller-chosen finite tag type used to
// classify Marks. It must be copyable (any ~int satisfies that) and
// orderable by a small integer discriminant, which int conversion
// gives us directly; enumerability for bookend/color tables is the
// caller's job (see BookendTable).
type Kind interface {
	comparable
	~int
}

// Mark is an immutable record attaching a Kind to a half-open byte
// range [Offset, Offset+Len) of some text. Marks are value types: the
// store and the sweeps copy them freely.
type Mark[K Kind] struct {
	Kind   K
	Offset uint32
	Len    uint32
}

// End returns the mark's exclusive end offset.
func (m Mark[K]) End() uint32 { return m.Offset + m.Len }

// Empty reports whether the mark covers zero bytes.
func (m Mark[K]) Empty() bool { return m.Len == 0 }

// Format writes a user-friendly representation of the mark, a terse
// "Kind@offset+len" form normally, or a verbose "Kind[offset:end]"
// form under %+v.
func (m Mark[K]) Format(f fmt.State, c rune) {
	switch c {
	case 'v':
		if f.Flag('+') {
			fmt.Fprintf(f, "%v[%v:%v]", m.Kind, m.Offset, m.End())
		} else {
			fmt.Fprintf(f, "%v@%v+%v", m.Kind, m.Offset, m.Len)
		}
	default:
		fmt.Fprintf(f, "!(ERROR invalid format verb %%%s)", string(c))
	}
}

// ordIn orders marks for the apply queue: (offset asc, len desc, kind
// asc). Same-offset marks pop longer-first, so outer marks are applied
// before the inner marks they contain; equal offset+length ties break
// by ascending kind.
func ordIn[K Kind](a, b Mark[K]) bool {
	if a.Offset != b.Offset {
		return a.Offset < b.Offset
	}
	if a.Len != b.Len {
		return a.Len > b.Len
	}
	return a.Kind < b.Kind
}

// ordOut orders marks for the open/close queue: (end asc, len asc,
// kind desc). Same-end marks close shorter-first; equal end+length
// ties break by descending kind, forcing the opposite nesting order to
// ordIn so that outer marks close after the inner marks they contain.
func ordOut[K Kind](a, b Mark[K]) bool {
	if ea, eb := a.End(), b.End(); ea != eb {
		return ea < eb
	}
	if a.Len != b.Len {
		return a.Len < b.Len
	}
	return a.Kind > b.Kind
}
