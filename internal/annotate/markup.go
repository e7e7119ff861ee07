package annotate

import (
	"bytes"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"git.home.luguber.info/inful/codeblocks/internal/config"
)

// decorationClass marks the wrapper element around a decorated block.
const decorationClass = "codeblocks"

const closeMarkup = "</div>"

// openMarkup renders the wrapper opening and the language badge for d.
func openMarkup(d config.Decoration) string {
	var color string
	if d.Color != "" {
		color = "--fa-primary-color:" + d.Color + ";color:" + d.Color + ";"
	}

	var b strings.Builder
	b.WriteString("<div class='" + decorationClass + "'>\n")
	b.WriteString(`<a style="font-size:12px;text-decoration:none;`)
	b.WriteString(color)
	b.WriteString(`" href="`)
	b.WriteString(html.EscapeString(d.Link))
	b.WriteString(`"><i style="font-size:18px;`)
	b.WriteString(color)
	b.WriteString(`" class="fa fa-solid `)
	b.WriteString(html.EscapeString(d.Icon))
	b.WriteString(`"></i>&nbsp;&nbsp;`)
	b.WriteString(html.EscapeString(d.Label))
	b.WriteString("</a>")
	return b.String()
}

// opensDecoration reports whether an HTML block leaves a wrapper element
// written by openMarkup unclosed. The block may close an earlier wrapper
// first when two decorated fences are adjacent.
func opensDecoration(block []byte) bool {
	var open []bool
	z := html.NewTokenizer(bytes.NewReader(block))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return slices.Contains(open, true)
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "div" {
				continue
			}
			wrapper := false
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if string(key) == "class" {
					wrapper = hasClass(string(val), decorationClass)
				}
			}
			open = append(open, wrapper)
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "div" && len(open) > 0 {
				open = open[:len(open)-1]
			}
		}
	}
}

func hasClass(attr, class string) bool {
	for _, c := range strings.Fields(attr) {
		if c == class {
			return true
		}
	}
	return false
}

// isBlank reports whether raw text holds nothing but whitespace and
// blockquote markers.
func isBlank(src []byte) bool {
	return len(bytes.Trim(src, " \t\r\n>")) == 0
}
