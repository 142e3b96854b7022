package markdown

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkt.systems/vmd"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func plainConfig() vmd.Config {
	cfg := vmd.DefaultConfig()
	cfg.Styles = vmd.PlainStyles()
	return cfg
}

func render(t *testing.T, src string, columns int, cfg vmd.Config, opts ...RenderOption) string {
	t.Helper()
	var out bytes.Buffer
	err := Render(RenderRequest{
		Reader:  strings.NewReader(src),
		Writer:  &out,
		Columns: columns,
		Config:  &cfg,
		Options: opts,
	})
	require.NoError(t, err)
	return out.String()
}

func TestRenderBlocks(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		columns int
		want    string
	}{
		{
			name:    "heading and wrapped paragraph",
			src:     "# Title\n\nlorem ipsum dolor sit amet\n",
			columns: 12,
			want:    "Title\n\nlorem ipsum\ndolor sit\namet\n",
		},
		{
			name: "soft break joins lines",
			src:  "a\nb\n",
			want: "a b\n",
		},
		{
			name: "hard break",
			src:  "a  \nb\n",
			want: "a\nb\n",
		},
		{
			name: "tight list",
			src:  "- one\n- two\n  - nested\n",
			want: "• one\n• two\n  • nested\n",
		},
		{
			name: "ordered list keeps start number",
			src:  "3. a\n4. b\n",
			want: "3. a\n4. b\n",
		},
		{
			name: "loose list",
			src:  "- a\n\n- b\n",
			want: "• a\n\n• b\n",
		},
		{
			name:    "list item continuation is indented",
			src:     "- alpha beta gamma\n",
			columns: 12,
			want:    "• alpha beta\n  gamma\n",
		},
		{
			name:    "blockquote",
			src:     "> quoted text here\n",
			columns: 12,
			want:    "│ quoted\n│ text here\n",
		},
		{
			name: "fenced code",
			src:  "```\nfoo\n\tbar\n```\n",
			want: "    foo\n        bar\n",
		},
		{
			name: "code keeps trailing spaces",
			src:  "```\ncode  \n```\n",
			want: "    code  \n",
		},
		{
			name: "indented code",
			src:  "    x := 1\n",
			want: "    x := 1\n",
		},
		{
			name:    "thematic break",
			src:     "a\n\n***\n",
			columns: 10,
			want:    "a\n\n──────────\n",
		},
		{
			name: "strikethrough keeps text",
			src:  "~~gone~~ text\n",
			want: "gone text\n",
		},
		{
			name: "html block",
			src:  "<div>\nhi\n</div>\n",
			want: "<div>\nhi\n</div>\n",
		},
		{
			name: "links are numbered once",
			src:  "see [docs](https://example.com/docs) and [again](https://example.com/docs) or <https://x.io>\n",
			want: "see docs[1] and again[1] or https://x.io[2]\n\n[1] https://example.com/docs\n[2] https://x.io\n",
		},
		{
			name: "image",
			src:  "![alt](img.png)\n",
			want: "alt[1]\n\n[1] img.png\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			columns := tc.columns
			if columns == 0 {
				columns = 80
			}
			assert.Equal(t, tc.want, render(t, tc.src, columns, plainConfig()))
		})
	}
}

func TestRenderInlineLinksWithoutList(t *testing.T) {
	cfg := plainConfig()
	cfg.Formatting.LinkList = false
	got := render(t, "see [docs](https://example.com/docs) at <https://x.io>\n", 80, cfg)
	assert.Equal(t, "see docs (https://example.com/docs) at https://x.io\n", got)
}

func TestRenderTaskList(t *testing.T) {
	got := render(t, "- [x] done\n- [ ] todo\n", 80, plainConfig())
	assert.Contains(t, got, "[x] done")
	assert.Contains(t, got, "[ ] todo")
}

func TestRenderFrontMatterTitle(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "yaml", src: "---\ntitle: Hello\ntags: [a]\n---\nBody\n", want: "Hello\n\nBody\n"},
		{name: "toml", src: "+++\ntitle = \"Hi\"\n+++\nBody\n", want: "Hi\n\nBody\n"},
		{name: "json", src: ";;;\n{\"title\": \"J\"}\n;;;\nBody\n", want: "J\n\nBody\n"},
		{name: "no title", src: "---\ndraft: true\n---\nBody\n", want: "Body\n"},
		{name: "malformed", src: "---\ntitle: [x\n---\nBody\n", want: "Body\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, render(t, tc.src, 80, plainConfig()))
		})
	}
}

func TestRenderFrontMatterTitleDisabled(t *testing.T) {
	got := render(t, "---\ntitle: Hello\n---\nBody\n", 80, plainConfig(), WithFrontMatterTitle(false))
	assert.Equal(t, "Body\n", got)
}

func TestRenderStyles(t *testing.T) {
	cfg := vmd.DefaultConfig()
	got := render(t, "# T\n", 80, cfg)
	assert.Equal(t, cfg.Styles.Heading(1).Sequence()+"T\x1b[0m\n", got)

	cfg = plainConfig()
	cfg.Styles.Strong = vmd.Bold()
	cfg.Styles.Emphasis = vmd.Italic()
	got = render(t, "**b** and *i*\n", 80, cfg)
	assert.Equal(t, "\x1b[1mb\x1b[0m and \x1b[3mi\x1b[0m\n", got)
}

func TestRenderPlainStylesEmitNoEscapes(t *testing.T) {
	src := "# H\n\n**b** `c` [l](https://x.io)\n\n> q\n\n- i\n\n```\ncode\n```\n"
	got := render(t, src, 40, plainConfig())
	assert.NotContains(t, got, "\x1b")
}

func TestRenderDropsEmbeddedEscapes(t *testing.T) {
	got := render(t, "a \x1b[31mred\x1b[0m b\n", 80, plainConfig())
	assert.NotContains(t, got, "\x1b")
	assert.Equal(t, "a [31mred[0m b\n", got)
}

func TestRenderColumnsFallBackToConfig(t *testing.T) {
	cfg := plainConfig()
	cfg.Formatting.Columns = 10
	assert.Equal(t, "aaaa bbbb\ncccc\n", render(t, "aaaa bbbb cccc\n", 0, cfg))
}

func TestRenderRejectsBadInput(t *testing.T) {
	var out bytes.Buffer
	err := Render(RenderRequest{Reader: bytes.NewReader([]byte{0xff, 0xfe}), Writer: &out})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidUTF8))

	err = Render(RenderRequest{Reader: bytes.NewReader([]byte("a\x00b")), Writer: &out})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBinaryInput))
	assert.Empty(t, out.String())

	err = Render(RenderRequest{Writer: &out})
	assert.EqualError(t, err, "render: reader is nil")
	err = Render(RenderRequest{Reader: strings.NewReader("")})
	assert.EqualError(t, err, "render: writer is nil")
}

func TestRenderRespectsWidth(t *testing.T) {
	src := strings.Join([]string{
		"# A heading that is long enough to need wrapping somewhere",
		"",
		"Some **strong words** and *emphasis* with `inline code` and a [link](https://example.com/a/rather/long/path/to/somewhere) inside.",
		"",
		"> A quote that goes on for a while, wrapping under its marker.",
		"",
		"- first item with enough words to wrap",
		"- second item",
		"  1. nested ordered entry spanning lines",
		"",
		"```",
		"func main() { fmt.Println(\"a line of code that is long\") }",
		"```",
		"",
		"Averyveryverylongwordwithoutanyspacesthatmustbehardbroken.",
		"",
		"---",
		"",
		"日本語のテキストも折り返されるべきです。",
	}, "\n") + "\n"
	for columns := 20; columns <= 80; columns += 7 {
		for _, cfg := range []vmd.Config{plainConfig(), vmd.DefaultConfig()} {
			out := stripANSI(render(t, src, columns, cfg))
			for i, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
				if w := runewidth.StringWidth(line); w > columns {
					t.Fatalf("columns=%d line %d is %d wide: %q", columns, i, w, line)
				}
			}
		}
	}
}
