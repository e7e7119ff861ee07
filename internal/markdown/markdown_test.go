package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(evs []Event) []EventKind {
	out := make([]EventKind, len(evs))
	for i, ev := range evs {
		out[i] = ev.Kind
	}
	return out
}

func sources(evs []Event) []string {
	out := make([]string, len(evs))
	for i, ev := range evs {
		out[i] = string(ev.Source)
	}
	return out
}

func TestParse_FencedBlock(t *testing.T) {
	src := "Intro.\n\n```rust\nfn main() {}\n```\n\nOutro.\n"

	evs, err := Parse([]byte(src), Options{})
	require.NoError(t, err)

	require.Equal(t, []EventKind{KindRaw, KindFenceStart, KindText, KindFenceEnd, KindRaw}, kinds(evs))
	assert.Equal(t, []string{"Intro.\n\n", "```rust\n", "fn main() {}\n", "```\n", "\nOutro.\n"}, sources(evs))
	assert.Equal(t, "rust", evs[1].Tag)
	assert.Empty(t, evs[1].Prefix)
	assert.Equal(t, Span{Start: 8, End: 16}, evs[1].Span)
}

func TestParse_TagIsTrimmedInfoString(t *testing.T) {
	evs, err := Parse([]byte("```  swift reds  \nlet x = 1;\n```\n"), Options{})
	require.NoError(t, err)
	require.Equal(t, KindFenceStart, evs[0].Kind)
	assert.Equal(t, "swift reds", evs[0].Tag)
}

func TestParse_TildeFenceWithLongerRun(t *testing.T) {
	src := "~~~~yaml\na: 1\n~~~\nb: 2\n~~~~~\n"
	evs, err := Parse([]byte(src), Options{})
	require.NoError(t, err)

	require.Equal(t, []EventKind{KindFenceStart, KindText, KindText, KindText, KindFenceEnd}, kinds(evs))
	assert.Equal(t, "yaml", evs[0].Tag)
	assert.Equal(t, "~~~~~\n", string(evs[4].Source))
}

func TestParse_UntaggedFence(t *testing.T) {
	evs, err := Parse([]byte("```\ncode\n```\n"), Options{})
	require.NoError(t, err)

	require.Equal(t, []EventKind{KindFenceStart, KindText, KindFenceEnd}, kinds(evs))
	assert.Empty(t, evs[0].Tag)
	assert.Equal(t, "```\n", string(evs[0].Source))
}

func TestParse_UntaggedEmptyFenceStaysRaw(t *testing.T) {
	evs, err := Parse([]byte("```\n```\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, []EventKind{KindRaw}, kinds(evs))
}

func TestParse_TaggedEmptyFence(t *testing.T) {
	evs, err := Parse([]byte("```rust\n```\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, []EventKind{KindFenceStart, KindFenceEnd}, kinds(evs))
}

func TestParse_UnterminatedFence(t *testing.T) {
	src := "```js\nlet a;\n"
	evs, err := Parse([]byte(src), Options{})
	require.NoError(t, err)

	require.Equal(t, []EventKind{KindFenceStart, KindText, KindFenceEnd}, kinds(evs))
	end := evs[2]
	assert.Equal(t, 0, end.Span.Len())
	assert.Equal(t, len(src), end.Span.Start)
}

func TestParse_BlockquotePrefix(t *testing.T) {
	src := "> ```lua\n> print(1)\n> ```\n"
	evs, err := Parse([]byte(src), Options{})
	require.NoError(t, err)

	require.Equal(t, []EventKind{KindRaw, KindFenceStart, KindText, KindFenceEnd}, kinds(evs))
	assert.Equal(t, "> ", evs[1].Prefix)
	assert.Equal(t, "lua", evs[1].Tag)
	assert.Equal(t, "```", evs[1].Fence)
	assert.Equal(t, []string{"> ", "```lua\n", "> print(1)\n", "> ```\n"}, sources(evs))
}

func TestParse_ListItemMarkerBecomesIndent(t *testing.T) {
	src := "- a\n1. ````rust\n   x\n   ````\n"
	evs, err := Parse([]byte(src), Options{})
	require.NoError(t, err)

	require.Equal(t, []EventKind{KindRaw, KindFenceStart, KindText, KindFenceEnd}, kinds(evs))
	assert.Equal(t, "- a\n1. ", string(evs[0].Source))
	assert.Equal(t, "   ", evs[1].Prefix)
	assert.Equal(t, "````", evs[1].Fence)
	assert.Equal(t, "   ````\n", string(evs[3].Source))
}

func TestParse_FenceCutOffByContainer(t *testing.T) {
	tests := []struct {
		name string
		src  string
		cut  string // the line left outside the fence
	}{
		{"blockquote", "> ```rust\n> fn x() {}\n```\nplain body\n```\n", "```\nplain body\n```\n"},
		{"nested blockquote", "> > ```rust\n> > x\n> ```\n", "> ```\n"},
		{"list item", "- ```rust\n  x\n```\ny\n```\n", "```\ny\n```\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evs, err := Parse([]byte(tt.src), Options{})
			require.NoError(t, err)
			require.GreaterOrEqual(t, len(evs), 4)

			end := evs[3]
			require.Equal(t, KindFenceEnd, end.Kind)
			assert.True(t, end.Unterminated())
			assert.Equal(t, "```", end.Fence)
			assert.Equal(t, tt.cut, tt.src[end.Span.Start:])
		})
	}
}

func TestParse_ClosingFenceInsideContainers(t *testing.T) {
	docs := []string{
		"> ```rust\n> x\n>```\n",
		"> > ```rust\n> > x\n>> ```\n",
		"- ```rust\n  x\n  ```\n",
		"> - ```rust\n>   x\n>   ```\n",
		"1.  ```rust\n    x\n     ```\n",
	}
	for _, doc := range docs {
		t.Run(doc, func(t *testing.T) {
			evs, err := Parse([]byte(doc), Options{})
			require.NoError(t, err)

			end := evs[len(evs)-1]
			require.Equal(t, KindFenceEnd, end.Kind)
			assert.False(t, end.Unterminated())
		})
	}
}

func TestParse_HTMLBlock(t *testing.T) {
	src := "<div>\nhi\n</div>\n\ntext\n"
	evs, err := Parse([]byte(src), Options{})
	require.NoError(t, err)

	require.Equal(t, []EventKind{KindHTMLBlock, KindRaw}, kinds(evs))
	assert.Equal(t, "<div>\nhi\n</div>\n", string(evs[0].Source))
}

func TestParse_CoversSourceExactly(t *testing.T) {
	docs := []string{
		"",
		"no newline at end",
		"# Title\n\nSome *text*.\n",
		"```rust\nfn main() {}\n```",
		"Intro.\n\n```rust\nfn main() {}\n```\n\nOutro.\n",
		"- item\n- ```rust\n  let x = 1;\n  ```\n",
		"> quote\n>\n> ```cpp\n> int x;\n> ```\n",
		"```js\r\nlet a;\r\n```\r\n",
		"<!-- comment -->\n\n```json\n{}\n```\n",
		"    indented code\n\n```\nplain\n```\n",
		"```rust\n\n\nfn f() {}\n\n```\n",
		"text\n```ts\nlet a: number;\n```\ntext\n",
		"| a | b |\n|---|---|\n| 1 | 2 |\n\n```rust\nx\n```\n- [x] done ~~old~~\n",
		"> ```rust\n> fn x() {}\n```\nplain body\n```\n",
	}

	for _, doc := range docs {
		for name, opts := range map[string]Options{"commonmark": {}, "mdbook": MDBookOptions()} {
			t.Run(name+"/"+doc, func(t *testing.T) {
				evs, err := Parse([]byte(doc), opts)
				require.NoError(t, err)

				var b strings.Builder
				cursor := 0
				for _, ev := range evs {
					require.Equal(t, cursor, ev.Span.Start)
					require.False(t, ev.Kind.IsSynthetic())
					b.Write(ev.Source)
					cursor = ev.Span.End
				}
				require.Equal(t, doc, b.String())

				out, err := Render([]byte(doc), evs)
				require.NoError(t, err)
				require.Equal(t, doc, string(out))
			})
		}
	}
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "fence-start", KindFenceStart.String())
	assert.Equal(t, "inline-html", KindInlineHTML.String())
	assert.Equal(t, "unknown", EventKind(99).String())
	assert.False(t, KindText.IsSynthetic())
	assert.True(t, KindBlockEnd.IsSynthetic())
	assert.True(t, KindFenceClose.IsSynthetic())
	assert.Equal(t, "fence-close", KindFenceClose.String())
}
