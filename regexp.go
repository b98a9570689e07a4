package obelizmo

import "regexp"

// Span is a half-open byte range, as returned by regex matching.
type Span struct{ Start, End int }

// Regexp is the minimal regex capability the mark-producing helpers
// need: a single match, a match starting at-or-after a position, and
// an iterator over all non-overlapping matches. Any conforming
// implementation suffices; *regexp.Regexp satisfies it via
// StdRegexp.
type Regexp interface {
	Match(text string) (Span, bool)
	MatchPos(pos int, text string) (Span, bool)
	Iterate(text string) func(yield func(Span) bool)
}

// StdRegexp adapts a standard library *regexp.Regexp to the Regexp
// capability. No third-party regex engine appears as a dependency of
// any complete example repo in this project's reference pack (see
// DESIGN.md), so the standard library is used directly here, behind
// the same minimal interface any other engine could implement.
type StdRegexp struct{ *regexp.Regexp }

// Match returns the first match anywhere in text.
func (re StdRegexp) Match(text string) (Span, bool) {
	loc := re.FindStringIndex(text)
	if loc == nil {
		return Span{}, false
	}
	return Span{loc[0], loc[1]}, true
}

// MatchPos returns the first match at or after byte offset pos.
func (re StdRegexp) MatchPos(pos int, text string) (Span, bool) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(text) {
		return Span{}, false
	}
	loc := re.FindStringIndex(text[pos:])
	if loc == nil {
		return Span{}, false
	}
	return Span{pos + loc[0], pos + loc[1]}, true
}

// Iterate returns a function that calls yield once per non-overlapping
// match in text, in order, stopping early if yield returns false.
func (re StdRegexp) Iterate(text string) func(yield func(Span) bool) {
	return func(yield func(Span) bool) {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if !yield(Span{loc[0], loc[1]}) {
				return
			}
		}
	}
}
