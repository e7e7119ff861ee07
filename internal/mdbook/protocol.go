// Package mdbook speaks the mdBook preprocessor protocol and runs the
// annotator over every chapter of a book.
//
// mdBook writes a JSON array [context, book] to the preprocessor's stdin and
// reads the modified book back from stdout. The book is kept as a generic
// JSON tree so fields this package does not know about survive the round
// trip.
package mdbook

import (
	"bytes"
	"encoding/json"
	"io"

	"git.home.luguber.info/inful/codeblocks/internal/config"
	"git.home.luguber.info/inful/codeblocks/internal/foundation/errors"
)

// Context is the first element of the preprocessor input.
type Context struct {
	Root          string         `json:"root"`
	Config        map[string]any `json:"config"`
	Renderer      string         `json:"renderer"`
	MdbookVersion string         `json:"mdbook_version"`
}

// PreprocessorConfig returns the [preprocessor.<name>] table without the keys
// mdBook itself interprets. A missing table yields an empty map.
func (c *Context) PreprocessorConfig(name string) map[string]any {
	if c == nil {
		return map[string]any{}
	}
	pre, _ := c.Config["preprocessor"].(map[string]any)
	table, _ := pre[name].(map[string]any)
	return config.StripHostKeys(table)
}

// Book is the second element of the preprocessor input.
type Book struct {
	root map[string]any
}

// Chapter is a handle on one chapter inside a Book. Updating it writes
// through to the book.
type Chapter struct {
	Name    string
	Path    string
	Content string

	node map[string]any
}

// ID identifies the chapter in logs: its source path, or its name for draft
// chapters.
func (c *Chapter) ID() string {
	if c.Path != "" {
		return c.Path
	}
	return c.Name
}

// SetContent replaces the chapter's Markdown.
func (c *Chapter) SetContent(content string) {
	c.Content = content
	c.node["content"] = content
}

// Chapters returns every chapter of the book, depth first in book order.
func (b *Book) Chapters() []*Chapter {
	if b == nil {
		return nil
	}
	var out []*Chapter
	// mdBook 0.4 calls the top-level list "sections"; later versions "items".
	for _, key := range []string{"sections", "items"} {
		if items, ok := b.root[key].([]any); ok {
			out = collectChapters(out, items)
		}
	}
	return out
}

func collectChapters(out []*Chapter, items []any) []*Chapter {
	for _, item := range items {
		wrapper, ok := item.(map[string]any)
		if !ok {
			// "Separator" is a bare string.
			continue
		}
		node, ok := wrapper["Chapter"].(map[string]any)
		if !ok {
			continue
		}
		ch := &Chapter{node: node}
		ch.Name, _ = node["name"].(string)
		ch.Path, _ = node["path"].(string)
		ch.Content, _ = node["content"].(string)
		out = append(out, ch)

		if sub, ok := node["sub_items"].([]any); ok {
			out = collectChapters(out, sub)
		}
	}
	return out
}

// ParseInput decodes the [context, book] array written by mdBook.
func ParseInput(r io.Reader) (*Context, *Book, error) {
	var parts []json.RawMessage
	if err := json.NewDecoder(r).Decode(&parts); err != nil {
		return nil, nil, errors.WrapError(err, errors.CategoryHost, "failed to decode preprocessor input").Fatal().Build()
	}
	if len(parts) != 2 {
		return nil, nil, errors.HostError("preprocessor input must be a [context, book] array").
			WithContext("elements", len(parts)).
			Build()
	}

	var ctx Context
	if err := decodeTree(parts[0], &ctx); err != nil {
		return nil, nil, errors.WrapError(err, errors.CategoryHost, "invalid preprocessor context").Fatal().Build()
	}

	book := &Book{root: map[string]any{}}
	if err := decodeTree(parts[1], &book.root); err != nil {
		return nil, nil, errors.WrapError(err, errors.CategoryHost, "invalid book").Fatal().Build()
	}
	if book.root == nil {
		return nil, nil, errors.HostError("book is null").Build()
	}
	return &ctx, book, nil
}

// decodeTree keeps numbers as json.Number so that they are written back
// exactly as read.
func decodeTree(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// WriteBook writes the book as JSON for mdBook to read back.
func WriteBook(w io.Writer, b *Book) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(b.root); err != nil {
		return errors.WrapError(err, errors.CategoryHost, "failed to write book").Fatal().Build()
	}
	return nil
}
