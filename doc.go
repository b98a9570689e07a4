// Package obelizmo obelizes strings: it attaches typed markup spans
// ("marks") to immutable text and renders the text with those spans
// turned into either an in-band stream format (ANSI/SGR terminal
// escapes, see the ansi subpackage) or a tree-structured format
// (XML/HTML-like open/close tags).
//
// The library owns three things: the marks themselves (a
// priority-ordered store, see MarkStore), a tree-shaped rendering
// sweep (RenderTree) and a stream-shaped rendering sweep
// (RenderStream). It does not own the text being marked, does not
// interpret character widths or grapheme clusters, and does not
// detect or repair overlapping marks for tree output — marks that
// don't properly nest are the caller's responsibility when emitting
// tree-shaped markup.
package obelizmo
