package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/codeblocks/internal/foundation/errors"
)

// Render reassembles src from an event stream produced by Parse and possibly
// extended with synthetic events.
//
// Source-backed events must cover src contiguously and in order, and fence
// starts and ends must pair up. Each run of synthetic events becomes one
// insertion edit at the offset where it appears. A stream that breaks these
// rules yields a format error and no output.
func Render(src []byte, events []Event) ([]byte, error) {
	var edits []Edit
	var pending []Event
	cursor := 0
	open := false

	flush := func(next *Event) {
		if len(pending) == 0 {
			return
		}
		edits = append(edits, Edit{
			Start:       cursor,
			End:         cursor,
			Replacement: renderSynthetic(src, cursor, pending, next),
		})
		pending = pending[:0]
	}

	for i, ev := range events {
		if ev.Kind.IsSynthetic() {
			if (ev.Kind == KindInlineHTML || ev.Kind == KindFenceClose) && ev.Literal == "" {
				return nil, formatError("synthetic event without markup", i, ev).Build()
			}
			pending = append(pending, ev)
			continue
		}

		if ev.Span.Start != cursor || ev.Span.End < ev.Span.Start || ev.Span.End > len(src) {
			return nil, formatError("event does not continue the document", i, ev).
				WithContext("expected_offset", cursor).
				Build()
		}

		switch ev.Kind {
		case KindFenceStart:
			if open {
				return nil, formatError("fence opened inside a fence", i, ev).Build()
			}
			open = true
		case KindText:
			if !open {
				return nil, formatError("code text outside a fence", i, ev).Build()
			}
		case KindFenceEnd:
			if !open {
				return nil, formatError("fence closed without being opened", i, ev).Build()
			}
			open = false
		case KindRaw, KindHTMLBlock:
			if open {
				return nil, formatError("document text inside a fence", i, ev).Build()
			}
		default:
			return nil, formatError("unknown event kind", i, ev).Build()
		}

		// Empty events keep the pending run together so that only one
		// insertion lands on any offset.
		if ev.Span.Len() > 0 {
			flush(&ev)
		}
		cursor = ev.Span.End
	}
	flush(nil)

	if open {
		return nil, errors.FormatError("fence left open at end of document").Build()
	}
	if cursor != len(src) {
		return nil, errors.FormatError("events do not cover the whole document").
			WithContext("covered", cursor).
			WithContext("length", len(src)).
			Build()
	}

	return ApplyEdits(src, edits)
}

// linePos is where synthetic output stands on the current line.
type linePos int

const (
	midLine linePos = iota
	// atLineStart is at the start of a line; the container prefix is due.
	atLineStart
	// contentStart follows container markers the source already wrote.
	contentStart
)

// renderSynthetic writes a run of synthetic events inserted at offset, in
// front of next (nil at the end of the document).
func renderSynthetic(src []byte, offset int, evs []Event, next *Event) []byte {
	var b bytes.Buffer
	beforeFence := next != nil && next.Kind == KindFenceStart

	pos := midLine
	switch {
	case offset == 0 || src[offset-1] == '\n':
		pos = atLineStart
	case beforeFence:
		pos = contentStart
	}

	endLine := func() {
		if pos == midLine {
			b.WriteByte('\n')
			pos = atLineStart
		}
	}
	writeLine := func(prefix, content string) {
		endLine()
		if pos == atLineStart {
			b.WriteString(prefix)
		}
		b.WriteString(content)
		pos = midLine
	}
	writeBlank := func(prefix string) {
		endLine()
		if pos == atLineStart {
			b.WriteString(strings.TrimRight(prefix, " \t"))
		}
		b.WriteByte('\n')
		pos = atLineStart
	}

	for i, ev := range evs {
		switch ev.Kind {
		case KindInlineHTML:
			for _, line := range strings.Split(ev.Literal, "\n") {
				writeLine(ev.Prefix, line)
			}
		case KindHardBreak:
			writeBlank(ev.Prefix)
		case KindFenceClose:
			writeLine(ev.Prefix, ev.Literal)
			endLine()
		case KindBlockEnd:
			endLine()
			breakFollows := i+1 < len(evs) && evs[i+1].Kind == KindHardBreak
			if !breakFollows && !continuesBlank(src, offset, ev.Prefix) {
				writeBlank(ev.Prefix)
			}
		}
	}

	switch {
	case beforeFence:
		if pos != contentStart {
			endLine()
			b.WriteString(next.Prefix)
		}
	case pos == midLine && offset < len(src):
		b.WriteByte('\n')
	}
	return b.Bytes()
}

// continuesBlank reports whether src goes on at offset with a line that is
// blank inside the blockquotes of prefix.
func continuesBlank(src []byte, offset int, prefix string) bool {
	if offset >= len(src) {
		return true
	}
	line := src[offset:lineEnd(src, offset)]
	if util.IsBlank(line) {
		return true
	}
	for range strings.Count(prefix, ">") {
		line = bytes.TrimLeft(line, " \t")
		if len(line) == 0 || line[0] != '>' {
			return false
		}
		line = line[1:]
	}
	return util.IsBlank(line)
}

func formatError(msg string, index int, ev Event) *errors.ErrorBuilder {
	return errors.FormatError(msg).
		WithContext("event", index).
		WithContext("kind", ev.Kind.String()).
		WithContext("offset", ev.Span.Start)
}
