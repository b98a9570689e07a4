package obelizmo_test

import (
	"fmt"
	"os"

	"github.com/mnemnion/obelizmo"
)

// Example end-to-end: mark up a sentence and render it both ways.
func Example() {
	store := obelizmo.NewMarkStore[kind]("red blue green yellow")
	_ = store.MarkFrom(kRed, 0, 3)
	_ = store.MarkFrom(kTeal, 4, 10)
	_ = store.MarkFrom(kGreen, 9, 5)
	_ = store.MarkFrom(kYellow, 15, 6)
	_ = store.MarkFrom(kBlue, 4, 4)

	tbl, _ := obelizmo.NewBookendTable(5, map[kind]obelizmo.Bookend{
		kRed:    {Open: []byte("<r>"), Close: []byte("</r>")},
		kBlue:   {Open: []byte("<b>"), Close: []byte("</b>")},
		kGreen:  {Open: []byte("<g>"), Close: []byte("</g>")},
		kYellow: {Open: []byte("<y>"), Close: []byte("</y>")},
		kTeal:   {Open: []byte("<t>"), Close: []byte("</t>")},
	})

	if err := obelizmo.RenderTree(os.Stdout, store, tbl); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println()
	if err := obelizmo.RenderStream(os.Stdout, store, tbl, obelizmo.DefaultStreamOptions()); err != nil {
		fmt.Println("error:", err)
	}

	// Output:
	// <r>red</r> <t><b>blue</b> <g>green</g></t> <y>yellow</y>
	// <r>red</r> <b>blue</b><t> </t><g>green</g> <y>yellow</y>
}
