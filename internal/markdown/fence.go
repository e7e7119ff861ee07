package markdown

import (
	"bytes"
	"slices"
	"strings"

	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"
)

// fenceLine describes an opening code fence.
type fenceLine struct {
	col    int // byte offset of the fence run within its line
	char   byte
	length int
}

// openingFence finds the fence run on an opening fence line.
func openingFence(line []byte) (fenceLine, bool) {
	i := bytes.IndexAny(line, "`~")
	if i < 0 {
		return fenceLine{}, false
	}
	n := 0
	for i+n < len(line) && line[i+n] == line[i] {
		n++
	}
	if n < 3 {
		return fenceLine{}, false
	}
	return fenceLine{col: i, char: line[i], length: n}, true
}

// run returns the fence characters, which also close the fence.
func (f fenceLine) run() string {
	return strings.Repeat(string(f.char), f.length)
}

// continuationPrefix turns the text in front of a fence on its opening line
// into the prefix of a later line in the same containers. Blockquote markers
// and indentation are kept; list markers become spaces.
func continuationPrefix(lead []byte) string {
	b := make([]byte, len(lead))
	for i, c := range lead {
		switch c {
		case ' ', '\t', '>':
			b[i] = c
		default:
			b[i] = ' '
		}
	}
	return string(b)
}

// container is an enclosing block whose markers a closing fence line must
// repeat.
type container struct {
	quote  bool
	indent int // content column of a list item
}

// containersOf lists the containers around n, outermost first.
func containersOf(n gmast.Node) []container {
	var cs []container
	for p := n.Parent(); p != nil; p = p.Parent() {
		switch c := p.(type) {
		case *gmast.Blockquote:
			cs = append(cs, container{quote: true})
		case *gmast.ListItem:
			cs = append(cs, container{indent: c.Offset})
		}
	}
	slices.Reverse(cs)
	return cs
}

// closedBy reports whether line closes f from inside the containers cs.
// A fence line outside them belongs to the surrounding document.
func (f fenceLine) closedBy(line []byte, cs []container) bool {
	line = bytes.TrimRight(line, "\r\n")
	col := 0
	for _, c := range cs {
		var ok bool
		if c.quote {
			line, col, ok = skipQuoteMarker(line, col)
		} else {
			line, col, ok = skipIndent(line, col, c.indent)
		}
		if !ok {
			return false
		}
	}

	w, pos := util.IndentWidth(line, col)
	if w >= 4 {
		return false
	}
	line = line[pos:]
	n := 0
	for n < len(line) && line[n] == f.char {
		n++
	}
	return n >= f.length && util.IsBlank(line[n:])
}

func skipQuoteMarker(line []byte, col int) ([]byte, int, bool) {
	w, pos := util.IndentWidth(line, col)
	if w > 3 || pos >= len(line) || line[pos] != '>' {
		return nil, 0, false
	}
	line, col = line[pos+1:], col+w+1
	if len(line) > 0 && (line[0] == ' ' || line[0] == '\t') {
		line, col = line[1:], col+1
	}
	return line, col, true
}

func skipIndent(line []byte, col, n int) ([]byte, int, bool) {
	w, i := 0, 0
	for ; i < len(line) && w < n; i++ {
		switch line[i] {
		case ' ':
			w++
		case '\t':
			w += util.TabWidth(col + w)
		default:
			return nil, 0, false
		}
	}
	return line[i:], col + w, w >= n
}
