package main

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

const canonicalIndent = "    "

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true,
	"img": true, "input": true, "link": true, "meta": true, "param": true,
	"source": true, "track": true, "wbr": true,
}

// Elements whose content must not be re-flowed. Besides pre and textarea
// these are the elements the parser keeps as raw text.
var verbatimElements = map[string]bool{
	"pre": true, "textarea": true, "script": true, "style": true,
	"noscript": true, "iframe": true, "noembed": true, "noframes": true,
	"xmp": true, "plaintext": true,
}

// canonicalHTML parses a page with the tolerant HTML5 parser and prints it
// back with one node per line, fixed indentation and escaped text. The
// result is stable: canonicalizing it again yields the same bytes.
func canonicalHTML(in []byte) ([]byte, error) {
	doc, err := html.Parse(bytes.NewReader(in))
	if err != nil {
		return nil, err
	}
	p := &htmlPrinter{}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := p.node(c, 0); err != nil {
			return nil, err
		}
	}
	return p.buf.Bytes(), nil
}

type htmlPrinter struct {
	buf bytes.Buffer
}

func (p *htmlPrinter) indent(depth int) {
	for range depth {
		p.buf.WriteString(canonicalIndent)
	}
}

func (p *htmlPrinter) node(n *html.Node, depth int) error {
	switch n.Type {
	case html.DoctypeNode:
		p.buf.WriteString("<!DOCTYPE " + n.Data + ">\n")
	case html.CommentNode:
		p.indent(depth)
		p.buf.WriteString("<!--" + n.Data + "-->\n")
	case html.TextNode:
		text := collapseSpace(n.Data)
		if text == "" {
			return nil
		}
		p.indent(depth)
		p.buf.WriteString(html.EscapeString(text))
		p.buf.WriteByte('\n')
	case html.ElementNode:
		return p.element(n, depth)
	}
	return nil
}

func (p *htmlPrinter) element(n *html.Node, depth int) error {
	p.indent(depth)
	if verbatimElements[n.Data] {
		if err := html.Render(&p.buf, n); err != nil {
			return err
		}
		p.buf.WriteByte('\n')
		return nil
	}

	p.openTag(n)
	if voidElements[n.Data] {
		p.buf.WriteString(" />\n")
		return nil
	}
	p.buf.WriteByte('>')

	if t := n.FirstChild; t == nil || (t.Type == html.TextNode && t.NextSibling == nil) {
		if t != nil {
			p.buf.WriteString(html.EscapeString(collapseSpace(t.Data)))
		}
		p.buf.WriteString("</" + n.Data + ">\n")
		return nil
	}

	p.buf.WriteByte('\n')
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := p.node(c, depth+1); err != nil {
			return err
		}
	}
	p.indent(depth)
	p.buf.WriteString("</" + n.Data + ">\n")
	return nil
}

func (p *htmlPrinter) openTag(n *html.Node) {
	p.buf.WriteByte('<')
	p.buf.WriteString(n.Data)
	for _, a := range n.Attr {
		p.buf.WriteByte(' ')
		if a.Namespace != "" {
			p.buf.WriteString(a.Namespace + ":")
		}
		p.buf.WriteString(a.Key)
		p.buf.WriteString(`="`)
		p.buf.WriteString(html.EscapeString(a.Val))
		p.buf.WriteByte('"')
	}
}

// collapseSpace folds runs of HTML whitespace. Non-breaking spaces stay.
func collapseSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
	}), " ")
}
