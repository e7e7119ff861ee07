package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/codeblocks/internal/foundation/errors"
)

// Options controls how Markdown is parsed into events.
type Options struct {
	// Extensions are enabled on the goldmark parser. The zero value parses
	// plain CommonMark.
	Extensions []goldmark.Extender
}

// MDBookOptions matches the dialect mdBook renders chapters with:
// CommonMark plus tables, strikethrough and task lists.
func MDBookOptions() Options {
	return Options{Extensions: []goldmark.Extender{
		extension.Table,
		extension.Strikethrough,
		extension.TaskList,
	}}
}

func parseBody(body []byte, opts Options) gmast.Node {
	md := goldmark.New(goldmark.WithExtensions(opts.Extensions...))
	return md.Parser().Parse(text.NewReader(body))
}

// Parse splits src into an event stream.
//
// Fenced code blocks become a FenceStart event running from the fence to the
// end of its line, one Text event per body line and a FenceEnd event for the
// closing fence line. Container markers in front of the fence stay in Raw.
// Raw HTML blocks become HTMLBlock events. Everything else is carried in Raw
// events, so the Source of all events concatenated is exactly src.
func Parse(src []byte, opts Options) ([]Event, error) {
	root := parseBody(src, opts)

	var groups [][]Event
	err := gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.FencedCodeBlock:
			if evs, ok := locateFence(src, node); ok {
				groups = append(groups, evs)
			}
			return gmast.WalkSkipChildren, nil
		case *gmast.HTMLBlock:
			if ev, ok := locateHTMLBlock(src, node); ok {
				groups = append(groups, []Event{ev})
			}
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFormat, "failed to walk markdown").Build()
	}

	events := make([]Event, 0, 2*len(groups)+1)
	cursor := 0
	for _, g := range groups {
		start, end := g[0].Span.Start, g[len(g)-1].Span.End
		if start < cursor {
			// Overlaps what we already emitted; leave it inside Raw.
			continue
		}
		if start > cursor {
			events = append(events, sourceEvent(src, KindRaw, cursor, start))
		}
		events = append(events, g...)
		cursor = end
	}
	if cursor < len(src) {
		events = append(events, sourceEvent(src, KindRaw, cursor, len(src)))
	}
	return events, nil
}

func sourceEvent(src []byte, kind EventKind, start, end int) Event {
	return Event{
		Kind:   kind,
		Span:   Span{Start: start, End: end},
		Source: src[start:end:end],
	}
}

// locateFence maps a fenced code block back onto whole source lines.
// Untagged blocks with no body leave nothing to anchor on and are skipped.
func locateFence(src []byte, node *gmast.FencedCodeBlock) ([]Event, bool) {
	lines := node.Lines()

	var openStart int
	var tag string
	switch {
	case node.Info != nil:
		seg := node.Info.Segment
		openStart = lineStart(src, seg.Start)
		tag = string(bytes.TrimSpace(seg.Value(src)))
	case lines.Len() > 0:
		first := lineStart(src, lines.At(0).Start)
		if first == 0 {
			return nil, false
		}
		openStart = lineStart(src, first-1)
	default:
		return nil, false
	}
	openEnd := lineEnd(src, openStart)

	fence, ok := openingFence(src[openStart:openEnd])
	if !ok {
		return nil, false
	}

	start := sourceEvent(src, KindFenceStart, openStart+fence.col, openEnd)
	start.Tag = tag
	start.Prefix = continuationPrefix(src[openStart : openStart+fence.col])
	start.Fence = fence.run()
	evs := []Event{start}

	cursor := openEnd
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		ls, le := lineStart(src, seg.Start), lineEnd(src, seg.Start)
		if ls != cursor {
			return nil, false
		}
		evs = append(evs, sourceEvent(src, KindText, ls, le))
		cursor = le
	}

	closeEnd := cursor
	if cursor < len(src) {
		if le := lineEnd(src, cursor); fence.closedBy(src[cursor:le], containersOf(node)) {
			closeEnd = le
		}
	}
	end := sourceEvent(src, KindFenceEnd, cursor, closeEnd)
	end.Fence = start.Fence
	evs = append(evs, end)
	return evs, true
}

func locateHTMLBlock(src []byte, node *gmast.HTMLBlock) (Event, bool) {
	lines := node.Lines()
	if lines.Len() == 0 {
		return Event{}, false
	}
	start := lineStart(src, lines.At(0).Start)
	end := lineEnd(src, lines.At(lines.Len()-1).Start)
	if node.HasClosure() {
		end = lineEnd(src, node.ClosureLine.Start)
	}
	return sourceEvent(src, KindHTMLBlock, start, end), true
}

// lineStart returns the offset of the first byte of the line holding pos.
func lineStart(src []byte, pos int) int {
	return bytes.LastIndexByte(src[:pos], '\n') + 1
}

// lineEnd returns the offset just past the newline ending the line holding pos.
func lineEnd(src []byte, pos int) int {
	i := bytes.IndexByte(src[pos:], '\n')
	if i < 0 {
		return len(src)
	}
	return pos + i + 1
}
