package annotate

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"git.home.luguber.info/inful/codeblocks/internal/config"
	"git.home.luguber.info/inful/codeblocks/internal/language"
	"git.home.luguber.info/inful/codeblocks/internal/markdown"
)

const rustOpen = "<div class='codeblocks'>\n" +
	`<a style="font-size:12px;text-decoration:none;" href="https://www.rust-lang.org">` +
	`<i style="font-size:18px;" class="fa fa-solid fa-spaghetti-monster-flying"></i>&nbsp;&nbsp;Rust</a>`

func mustResolve(t *testing.T, raw map[string]any) *config.Config {
	t.Helper()
	cfg, err := config.Resolve(raw)
	require.NoError(t, err)
	return cfg
}

func TestAnnotate_WrapsRecognizedBlock(t *testing.T) {
	in := "Intro.\n\n```rust\nfn main() {}\n```\n\nOutro.\n"

	out, stats, err := Annotate(in, config.Default())
	require.NoError(t, err)

	want := "Intro.\n\n" + rustOpen + "\n\n```rust\nfn main() {}\n```\n\n</div>\n\nOutro.\n"
	assert.Equal(t, want, out)
	assert.Equal(t, 1, stats.Decorated[language.Rust])
	assert.Zero(t, stats.Passed)
}

func TestAnnotate_GlobalIconAndColor(t *testing.T) {
	cfg := mustResolve(t, map[string]any{
		"icon": "fa-code",
		"rust": map[string]any{"color": "blue"},
	})

	out, _, err := Annotate("```rust\nlet x = 1;\n```\n", cfg)
	require.NoError(t, err)

	assert.Contains(t, out, `<a style="font-size:12px;text-decoration:none;--fa-primary-color:blue;color:blue;" href="https://www.rust-lang.org">`)
	assert.Contains(t, out, `<i style="font-size:18px;--fa-primary-color:blue;color:blue;" class="fa fa-solid fa-code"></i>&nbsp;&nbsp;Rust</a>`)
}

func TestAnnotate_OverridesAreEscaped(t *testing.T) {
	cfg := mustResolve(t, map[string]any{
		"lua": map[string]any{"label": "Lua <5.4>", "link": `https://x.test/?a=1&b="2"`},
	})

	out, _, err := Annotate("```lua\nprint(1)\n```\n", cfg)
	require.NoError(t, err)

	assert.Contains(t, out, `href="https://x.test/?a=1&amp;b=&#34;2&#34;"`)
	assert.Contains(t, out, "&nbsp;&nbsp;Lua &lt;5.4&gt;</a>")
}

func TestAnnotate_InvalidColorDropped(t *testing.T) {
	cfg := mustResolve(t, map[string]any{"json": map[string]any{"color": "notacolor"}})

	out, _, err := Annotate("```json\n{}\n```\n", cfg)
	require.NoError(t, err)
	assert.NotContains(t, out, "notacolor")
	assert.Contains(t, out, `<a style="font-size:12px;text-decoration:none;" href="https://www.json.org">`)
}

func TestAnnotate_PassesThroughUnrecognized(t *testing.T) {
	docs := []string{
		"```python\nprint(1)\n```\n",
		"```\nplain\n```\n",
		"```rust,ignore\nfn f() {}\n```\n",
		"# Title\n\nNo code at all.\n",
		"",
	}
	for _, in := range docs {
		t.Run(in, func(t *testing.T) {
			out, stats, err := Annotate(in, config.Default())
			require.NoError(t, err)
			assert.Equal(t, in, out)
			assert.Zero(t, stats.DecoratedTotal())
		})
	}
}

func TestAnnotate_EmptyRecognizedBlockIsNotDecorated(t *testing.T) {
	in := "```rust\n```\n"
	out, stats, err := Annotate(in, config.Default())
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Equal(t, 1, stats.Passed)
}

func TestAnnotate_MultipleBlocks(t *testing.T) {
	in := "```rust\na\n```\n\n```python\nb\n```\n\n```ts\nc\nd\n```\n"
	out, stats, err := Annotate(in, config.Default())
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "<div class='codeblocks'>"))
	assert.Equal(t, 2, strings.Count(out, "</div>"))
	assert.Contains(t, out, "```python\nb\n```\n")
	assert.Contains(t, out, "```ts\nc\nd\n```\n\n</div>\n")
	assert.Equal(t, 1, stats.Decorated[language.Rust])
	assert.Equal(t, 1, stats.Decorated[language.TypeScript])
	assert.Equal(t, 1, stats.Passed)
}

func TestAnnotate_Idempotent(t *testing.T) {
	docs := []string{
		"Intro.\n\n```rust\nfn main() {}\n```\n\nOutro.\n",
		"> ```lua\n> print(1)\n> ```\n",
		"```swift reds\nfunc f() {}\n```\n```yaml\na: 1\n```\n",
		"```rust\nfn x() {}\n```\nSome text\n",
		"- ```rust\n  x\n  ```\n",
		"> ```rust\n> fn x() {}\n```\nplain body\n```\n",
	}
	for _, in := range docs {
		t.Run(in, func(t *testing.T) {
			once, stats, err := Annotate(in, config.Default())
			require.NoError(t, err)
			require.NotZero(t, stats.DecoratedTotal())

			twice, stats, err := Annotate(once, config.Default())
			require.NoError(t, err)
			assert.Equal(t, once, twice)
			assert.Zero(t, stats.DecoratedTotal())
		})
	}
}

func TestAnnotate_BlockquoteKeepsPrefix(t *testing.T) {
	in := "> ```lua\n> print(1)\n> ```\n"
	out, _, err := Annotate(in, config.Default())
	require.NoError(t, err)

	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		assert.True(t, strings.HasPrefix(line, ">"), "line %q left the blockquote", line)
	}
	assert.True(t, strings.HasSuffix(out, "> ```\n>\n> </div>\n"))
}

var (
	decorationOpen  = regexp.MustCompile(`<div class='codeblocks'>\n<a [^\n]*</a>\n`)
	decorationClose = regexp.MustCompile(`</div>\n`)
)

func renderHTML(t *testing.T, src string) string {
	t.Helper()
	md := goldmark.New(
		goldmark.WithExtensions(markdown.MDBookOptions().Extensions...),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	var buf bytes.Buffer
	require.NoError(t, md.Convert([]byte(src), &buf))
	return buf.String()
}

func TestAnnotate_RenderedOutputOnlyGainsDecoration(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"paragraph after fence", "```rust\nfn x() {}\n```\nSome **bold** text\n"},
		{"heading after fence", "```rust\nfn x() {}\n```\n# Next\n"},
		{"list after fence", "```rust\nfn x() {}\n```\n- a\n- b\n"},
		{"table after fence", "```rust\nfn x() {}\n```\n| a | b |\n|---|---|\n| 1 | 2 |\n"},
		{"paragraph before fence", "Intro\n```rust\nx\n```\n"},
		{"adjacent fences", "```rust\na\n```\n```lua\nb\n```\ntext\n"},
		{"no trailing newline", "Text\n\n```rust\nx\n```"},
		{"blockquote then paragraph", "> ```lua\n> x\n> ```\n> more\n"},
		{"blockquote cut off", "> ```rust\n> fn x() {}\n```\nplain body\n```\n"},
		{"nested blockquote cut off", "> > ```rust\n> > x\n> ```\n"},
		{"fence on list marker line", "- ```rust\n  x\n  ```\n"},
		{"fence in loose list item", "1. Build:\n\n   ```rust\n   x\n   ```\n2. Run\n"},
		{"list item cut off", "- ```rust\n  x\n```\ny\n```\n"},
		{"unterminated at end", "```yaml\na: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, stats, err := Annotate(tt.in, config.Default())
			require.NoError(t, err)
			require.NotZero(t, stats.DecoratedTotal())

			got := renderHTML(t, out)
			require.Len(t, decorationOpen.FindAllString(got, -1), stats.DecoratedTotal(), got)

			stripped := decorationClose.ReplaceAllString(decorationOpen.ReplaceAllString(got, ""), "")
			assert.Equal(t, renderHTML(t, tt.in), stripped)
		})
	}
}
