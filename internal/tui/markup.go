package tui

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"

	"github.com/fakeyudi/fieldedit/internal/surface"
)

// span is a byte range [start, end) of the field markup.
type span struct {
	start, end int
}

func (s span) contains(off int) bool { return off >= s.start && off < s.end }

// imageSpans returns the byte ranges of every <img> tag in doc, in order.
func imageSpans(doc string) []span {
	var spans []span
	z := html.NewTokenizer(strings.NewReader(doc))
	off := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return spans
		}
		n := len(z.Raw())
		if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
			if name, _ := z.TagName(); string(name) == "img" {
				spans = append(spans, span{off, off + n})
			}
		}
		off += n
	}
}

// inlineFormatting lists the tags removed by clear formatting.
var inlineFormatting = map[string]bool{
	"b": true, "strong": true,
	"i": true, "em": true,
	"u": true,
	"span": true, "font": true,
}

// stripFormatting removes inline formatting tags from doc, keeping their
// content. Every other byte is copied through unchanged.
func stripFormatting(doc string) string {
	var buf bytes.Buffer
	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return buf.String()
		}
		// TagName lower-cases in place, so copy first.
		raw := bytes.Clone(z.Raw())
		switch tt {
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); inlineFormatting[string(name)] {
				continue
			}
		}
		buf.Write(raw)
	}
}

// snippet is the markup a formatting function inserts at the cursor. The
// cursor is left before close.
type snippet struct {
	open, close string
}

var snippets = map[surface.Function]snippet{
	surface.Bold:           {"<b>", "</b>"},
	surface.Italic:         {"<i>", "</i>"},
	surface.Underline:      {"<u>", "</u>"},
	surface.UnorderedList:  {"<ul><li>", "</li></ul>"},
	surface.OrderedList:    {"<ol><li>", "</li></ol>"},
	surface.HorizontalRule: {"<hr>", ""},
	surface.AlignLeft:      {`<div style="text-align: left;">`, "</div>"},
	surface.AlignCenter:    {`<div style="text-align: center;">`, "</div>"},
	surface.AlignRight:     {`<div style="text-align: right;">`, "</div>"},
	surface.AlignJustify:   {`<div style="text-align: justify;">`, "</div>"},
}
