package main

import (
	"bufio"
	"bytes"

	"github.com/russross/blackfriday/v2"
)

const htmlFlags = blackfriday.UseXHTML |
	blackfriday.Smartypants |
	blackfriday.SmartypantsFractions |
	blackfriday.SmartypantsLatexDashes

const extensions = blackfriday.NoIntraEmphasis |
	blackfriday.Tables |
	blackfriday.FencedCode |
	blackfriday.Autolink |
	blackfriday.Strikethrough

type renderer interface {
	render(in []byte) string
}

func newMarkdownRenderer() renderer {
	return &blackfridayHtmlRenderer{extensions: extensions}
}

type blackfridayHtmlRenderer struct {
	extensions blackfriday.Extensions
}

func (b *blackfridayHtmlRenderer) render(in []byte) string {
	// blackfriday renderers keep state between runs, so each call gets its own.
	r := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{Flags: htmlFlags})
	out := blackfriday.Run(highlightCode(in), blackfriday.WithRenderer(r), blackfriday.WithExtensions(b.extensions))
	return string(out)
}

// For now, just strip the highlighting directives.
func highlightCode(text []byte) []byte {
	newText := bytes.NewBuffer(make([]byte, 0, len(text)))
	s := bufio.NewScanner(bytes.NewReader(text))
	s.Buffer(make([]byte, 0, 64*1024), len(text)+1)
	for s.Scan() {
		line := s.Bytes()
		if !bytes.HasPrefix(bytes.TrimSpace(line), []byte("!highlight")) {
			newText.Write(line)
			newText.WriteByte('\n')
		}
	}
	return newText.Bytes()
}
