// Command obelize is a demo CLI for Obelizmo: it marks up a Markdown
// document and renders it either as ANSI terminal output or as HTML,
// the direct descendant of cmd/scanex and cmd/poc's flag-driven,
// log-configured wiring.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/renameio"

	"github.com/mnemnion/obelizmo"
	"github.com/mnemnion/obelizmo/ansi"
	"github.com/mnemnion/obelizmo/htmlbody"
	"github.com/mnemnion/obelizmo/internal/blockscan"
	"github.com/mnemnion/obelizmo/internal/outbuf"
	"github.com/mnemnion/obelizmo/internal/textbuf"
	"github.com/mnemnion/obelizmo/markdownmarks"
)

// Kind enumerates the markup classes this demo recognizes.
type Kind int

// Kind values.
const (
	KindHeading Kind = iota
	KindStrong
	KindEmphasis
	KindCode
	KindLink
	KindBlockquote
	KindStrike
	numKinds
)

func main() {
	var (
		html    bool
		out     string
		verbose bool
	)
	flag.BoolVar(&html, "html", false, "render HTML instead of ANSI terminal output")
	flag.StringVar(&out, "o", "", "output file for -html (default: stdout is refused, a path is required)")
	flag.BoolVar(&verbose, "v", false, "enable verbose logging")
	flag.Parse()

	logOut := outbuf.PrefixWriter("> log: ", os.Stderr)
	defer logOut.Close()
	log.SetOutput(logOut)
	log.SetFlags(0)

	var in io.Reader = os.Stdin
	if args := flag.Args(); len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			log.Fatalf("open input: %v", err)
		}
		defer f.Close()
		in = f
	}

	var arena textbuf.Arena
	if _, err := io.Copy(&arena, in); err != nil {
		log.Fatalf("read input: %v", err)
	}
	text := arena.Take()

	store := obelizmo.NewMarkStore[Kind](text)
	if _, err := markdownmarks.Headings(store, KindHeading, nil, text); err != nil {
		log.Fatalf("mark headings: %v", err)
	}
	if _, err := markdownmarks.Strong(store, KindStrong, nil, text); err != nil {
		log.Fatalf("mark strong: %v", err)
	}
	if _, err := markdownmarks.Emphasis(store, KindEmphasis, nil, text); err != nil {
		log.Fatalf("mark emphasis: %v", err)
	}
	if _, err := markdownmarks.CodeSpans(store, KindCode, nil, text); err != nil {
		log.Fatalf("mark code spans: %v", err)
	}
	if _, err := markdownmarks.Links(store, KindLink, nil, text); err != nil {
		log.Fatalf("mark links: %v", err)
	}
	if _, err := markdownmarks.Strikethrough(store, KindStrike, nil, text); err != nil {
		log.Fatalf("mark strikethrough: %v", err)
	}
	if _, err := markdownmarks.Blocks(store, text, blockKind); err != nil {
		log.Fatalf("mark blocks: %v", err)
	}
	if verbose {
		log.Printf("marked %v spans over %v bytes", store.Len(), len(text))
		tokens, err := blockscan.Tokenize(text)
		if err != nil {
			log.Fatalf("tokenize blocks: %v", err)
		}
		for _, tok := range tokens {
			log.Printf("block %v", tok)
		}
	}

	if html {
		if out == "" {
			log.Fatalf("-html requires -o")
		}
		if err := renderHTML(store, out); err != nil {
			log.Fatalf("render html: %v", err)
		}
		return
	}

	if err := renderTerminal(store, os.Stdout); err != nil {
		log.Fatalf("render terminal: %v", err)
	}
}

func renderHTML(store *obelizmo.MarkStore[Kind], path string) error {
	table, err := obelizmo.NewBookendTable(int(numKinds), map[Kind]obelizmo.Bookend{
		KindHeading:    {Open: []byte("<strong class=\"heading\">"), Close: []byte("</strong>")},
		KindStrong:     {Open: []byte("<strong>"), Close: []byte("</strong>")},
		KindEmphasis:   {Open: []byte("<em>"), Close: []byte("</em>")},
		KindCode:       {Open: []byte("<code>"), Close: []byte("</code>")},
		KindLink:       {Open: []byte("<a>"), Close: []byte("</a>")},
		KindBlockquote: {Open: []byte("<blockquote>"), Close: []byte("</blockquote>")},
		KindStrike:     {Open: []byte("<del>"), Close: []byte("</del>")},
	})
	if err != nil {
		return err
	}

	pf, err := renameio.TempFile("", path)
	if err != nil {
		return err
	}
	defer pf.Cleanup()

	bw := obelizmo.NewBodyWriter(pf, htmlbody.Escape)
	if err := obelizmo.RenderTree(bw, store, table); err != nil {
		return err
	}
	return pf.CloseAtomicallyReplace()
}

func renderTerminal(store *obelizmo.MarkStore[Kind], w io.Writer) error {
	table, err := ansi.NewColorTable(int(numKinds), map[Kind]ansi.Color{
		KindHeading:    ansi.Foreground(ansi.Basic(ansi.Yellow)).Bold(),
		KindStrong:     ansi.ForegroundStyles().Bold(),
		KindEmphasis:   ansi.ForegroundStyles().Italic(),
		KindCode:       ansi.Background(ansi.Basic(ansi.Black)),
		KindLink:       ansi.Underline(ansi.Basic(ansi.Blue)),
		KindBlockquote: ansi.Foreground(ansi.Basic(ansi.Cyan)).Italic(),
		KindStrike:     ansi.ForegroundStyles().Strikethrough(),
	})
	if err != nil {
		return err
	}

	var buf outbuf.WriteBuffer
	buf.To = w

	p := ansi.NewPrinter(store, table)
	for {
		more, err := p.Next(&buf)
		if err != nil {
			return err
		}
		if err := buf.Flush(); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// blockKind maps a blockscan.BlockType to a demo Kind, selecting only
// the block types this demo renders distinctly: headings (shared with
// the inline Heading mark) and blockquotes. Every other BlockType is
// left to whatever inline marks fall within it.
func blockKind(bt blockscan.BlockType) (Kind, bool) {
	switch bt {
	case blockscan.Heading:
		return KindHeading, true
	case blockscan.Blockquote:
		return KindBlockquote, true
	default:
		return 0, false
	}
}
