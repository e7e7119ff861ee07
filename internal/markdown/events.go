package markdown

// EventKind is the type of an Event.
type EventKind int

const (
	// KindRaw is source text with no structure the annotator cares about.
	KindRaw EventKind = iota
	// KindHTMLBlock is a raw HTML block.
	KindHTMLBlock
	// KindFenceStart is an opening code fence, from the fence run to the end
	// of its line.
	KindFenceStart
	// KindText is one line of a fenced code block body.
	KindText
	// KindFenceEnd is the closing line of a fenced code block. It is empty
	// when the fence runs to the end of its container.
	KindFenceEnd

	// KindInlineHTML inserts Literal as raw markup.
	KindInlineHTML
	// KindHardBreak ends the current line and leaves a blank line.
	KindHardBreak
	// KindBlockEnd ends inserted markup. Unless the document already goes on
	// with a blank line, it leaves one so the markup does not run into the
	// next block.
	KindBlockEnd
	// KindFenceClose writes Literal as a closing fence line.
	KindFenceClose
)

var kindNames = [...]string{
	KindRaw:        "raw",
	KindHTMLBlock:  "html-block",
	KindFenceStart: "fence-start",
	KindText:       "text",
	KindFenceEnd:   "fence-end",
	KindInlineHTML: "inline-html",
	KindHardBreak:  "hard-break",
	KindBlockEnd:   "block-end",
	KindFenceClose: "fence-close",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsSynthetic reports whether events of this kind are inserted rather than
// read from the source.
func (k EventKind) IsSynthetic() bool {
	return k >= KindInlineHTML
}

// Span is a half-open byte range of the source.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered.
func (s Span) Len() int { return s.End - s.Start }

// Event is one element of a document's event stream.
type Event struct {
	Kind EventKind

	// Span and Source locate source-backed events. Source aliases the
	// parsed document and must not be modified.
	Span   Span
	Source []byte

	// Tag is the trimmed info string of a FenceStart.
	Tag string

	// Prefix is the container prefix (indentation, blockquote markers) of a
	// FenceStart, repeated on each line written by synthetic events. List
	// markers on the opening line appear as spaces.
	Prefix string

	// Fence is the fence run of a FenceStart or FenceEnd, such as "```".
	Fence string

	// Literal is the markup written by an InlineHTML event.
	Literal string
}

// InlineHTML returns a synthetic event inserting markup.
func InlineHTML(markup, prefix string) Event {
	return Event{Kind: KindInlineHTML, Literal: markup, Prefix: prefix}
}

// HardBreak returns a synthetic line break event.
func HardBreak(prefix string) Event {
	return Event{Kind: KindHardBreak, Prefix: prefix}
}

// BlockEnd returns a synthetic block terminator event.
func BlockEnd(prefix string) Event {
	return Event{Kind: KindBlockEnd, Prefix: prefix}
}

// FenceClose returns a synthetic closing fence line.
func FenceClose(fence, prefix string) Event {
	return Event{Kind: KindFenceClose, Literal: fence, Prefix: prefix}
}

// Unterminated reports whether e is a FenceEnd with no closing line, because
// the fence ran to the end of its container.
func (e Event) Unterminated() bool {
	return e.Kind == KindFenceEnd && len(e.Source) == 0
}
