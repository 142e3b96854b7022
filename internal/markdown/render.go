// Package markdown renders Markdown documents through a vmd.DisplayWriter
// using the roles of a vmd.Config.
package markdown

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"pkt.systems/vmd"
)

var md = goldmark.New(goldmark.WithExtensions(
	extension.Strikethrough,
	extension.Linkify,
	extension.TaskList,
))

// RenderRequest configures Render.
type RenderRequest struct {
	Reader io.Reader
	Writer io.Writer
	// Columns is the wrap width. Zero falls back to Config.Formatting.Columns
	// and then to vmd.DefaultColumns.
	Columns int
	// Config selects styles and layout; nil uses vmd.DefaultConfig.
	Config  *vmd.Config
	Options []RenderOption
}

// Render reads a whole Markdown document and writes it wrapped and styled.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: writer is nil")
	}
	cfg := renderConfig{logger: zerolog.Nop(), title: true}
	for _, opt := range req.Options {
		if opt != nil {
			opt(&cfg)
		}
	}
	conf := vmd.DefaultConfig()
	if req.Config != nil {
		conf = *req.Config
	}
	columns := req.Columns
	if columns <= 0 {
		columns = conf.Formatting.Columns
	}
	if columns <= 0 {
		columns = vmd.DefaultColumns
	}

	src, err := io.ReadAll(req.Reader)
	if err != nil {
		return fmt.Errorf("render: read: %w", err)
	}
	if err := ValidateInput(src); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	bw := bufio.NewWriter(req.Writer)
	r := &renderer{
		out:    vmd.NewDisplayWriter(bw, columns),
		styles: conf.Styles,
		format: conf.Formatting,
		logger: cfg.logger,
	}

	fm, body, found := splitFrontMatter(src)
	if found {
		r.logger.Debug().Str("delimiter", fm.delim).Int("bytes", len(fm.data)).Msg("front matter skipped")
		if cfg.title {
			title, err := fm.title()
			if err != nil {
				r.logger.Warn().Err(err).Msg("front matter title ignored")
			} else if title != "" {
				if err := r.heading(1, []vmd.Text{vmd.Raw(sanitize(title))}); err != nil {
					return fmt.Errorf("render: %w", err)
				}
			}
		}
	}

	r.src = body
	doc := md.Parser().Parse(text.NewReader(body))
	if err := r.document(doc); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	r.logger.Debug().Int("columns", columns).Int("links", len(r.links.urls)).Msg("document rendered")
	return nil
}

type renderer struct {
	src    []byte
	out    *vmd.DisplayWriter
	styles vmd.Styles
	format vmd.Formatting
	logger zerolog.Logger

	prefixes []vmd.Text
	links    linkIndex
	// tight holds, per open list, whether its items are packed without
	// blank lines.
	tight []bool
	// needBlank is set once a block ended and the next one must be set off
	// by a blank line.
	needBlank bool
	// itemOpen is set after a list marker was written and before the first
	// block of the item, which then continues on the marker's line.
	itemOpen bool
}

func (r *renderer) document(doc ast.Node) error {
	if err := r.blocks(doc); err != nil {
		return err
	}
	if err := r.linkList(); err != nil {
		return err
	}
	return r.out.FinishLine()
}

func (r *renderer) blocks(parent ast.Node) error {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if err := r.block(n); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) block(n ast.Node) error {
	switch n := n.(type) {
	case *ast.Heading:
		return r.heading(n.Level, r.inlines(n))
	case *ast.Paragraph, *ast.TextBlock:
		return r.paragraph(r.inlines(n))
	case *ast.Blockquote:
		return r.blockquote(n)
	case *ast.List:
		return r.list(n)
	case *ast.ThematicBreak:
		return r.rule()
	case *ast.FencedCodeBlock:
		return r.code(segments(n.Lines()))
	case *ast.CodeBlock:
		return r.code(segments(n.Lines()))
	case *ast.HTMLBlock:
		lines := segments(n.Lines())
		if n.HasClosure() {
			lines = append(lines, n.ClosureLine)
		}
		return r.verbatim(lines)
	default:
		r.logger.Debug().Str("kind", n.Kind().String()).Msg("rendering children of unhandled block")
		return r.blocks(n)
	}
}

// beginBlock ends any open line and sets the block off from the previous one.
func (r *renderer) beginBlock() error {
	if r.itemOpen {
		r.itemOpen = false
		return nil
	}
	if err := r.out.FinishLine(); err != nil {
		return err
	}
	if r.needBlank && !r.inTightList() {
		if err := r.out.WriteString("\n"); err != nil {
			return err
		}
	}
	r.needBlank = false
	return nil
}

func (r *renderer) endBlock() error {
	r.needBlank = true
	return r.out.FinishLine()
}

func (r *renderer) inTightList() bool {
	return len(r.tight) > 0 && r.tight[len(r.tight)-1]
}

func (r *renderer) heading(level int, content []vmd.Text) error {
	if err := r.beginBlock(); err != nil {
		return err
	}
	if err := r.out.WriteText(styled(r.styles.Heading(level), content...)); err != nil {
		return err
	}
	return r.endBlock()
}

func (r *renderer) paragraph(content []vmd.Text) error {
	if err := r.beginBlock(); err != nil {
		return err
	}
	if err := r.out.WriteText(styled(r.styles.Paragraph, content...)); err != nil {
		return err
	}
	return r.endBlock()
}

func (r *renderer) blockquote(n *ast.Blockquote) error {
	if err := r.beginBlock(); err != nil {
		return err
	}
	marker := r.format.QuoteMarker
	if marker != "" {
		marker += " "
	}
	if err := r.pushPrefix(vmd.Raw(marker)); err != nil {
		return err
	}
	if err := r.blocks(n); err != nil {
		return err
	}
	if err := r.popPrefix(); err != nil {
		return err
	}
	return r.endBlock()
}

func (r *renderer) list(n *ast.List) error {
	if err := r.beginBlock(); err != nil {
		return err
	}
	r.tight = append(r.tight, n.IsTight)
	number := n.Start
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		var marker vmd.Text
		var width int
		if n.IsOrdered() {
			label := strconv.Itoa(number) + "."
			marker = vmd.Group(styled(r.styles.ListNumber, vmd.Raw(label)), vmd.Raw(" "))
			width = len(label) + 1
			number++
		} else {
			marker = vmd.Raw("")
			if r.format.Bullet != "" {
				marker = vmd.Group(styled(r.styles.ListBullet, vmd.Raw(r.format.Bullet)), vmd.Raw(" "))
				width = runewidth.StringWidth(r.format.Bullet) + 1
			}
		}
		if err := r.item(item, marker, width); err != nil {
			return err
		}
	}
	r.tight = r.tight[:len(r.tight)-1]
	return r.endBlock()
}

// item writes the marker on the first line of the item and indents the
// following lines by the marker's width.
func (r *renderer) item(n ast.Node, marker vmd.Text, width int) error {
	if err := r.beginBlock(); err != nil {
		return err
	}
	if err := r.pushPrefix(marker); err != nil {
		return err
	}
	if err := r.out.BeginLine(); err != nil {
		return err
	}
	r.prefixes[len(r.prefixes)-1] = vmd.Raw(strings.Repeat(" ", width))
	if err := r.out.ReplacePrefix(r.prefix()); err != nil {
		return err
	}
	r.itemOpen = true
	if err := r.blocks(n); err != nil {
		return err
	}
	r.itemOpen = false
	if err := r.out.FinishLine(); err != nil {
		return err
	}
	if err := r.popPrefix(); err != nil {
		return err
	}
	r.needBlank = true
	return nil
}

func (r *renderer) rule() error {
	if err := r.beginBlock(); err != nil {
		return err
	}
	if width := runewidth.StringWidth(r.format.Rule); width > 0 {
		count := r.out.LineSpace() / width
		if err := r.out.WriteString(strings.Repeat(r.format.Rule, count)); err != nil {
			return err
		}
	}
	return r.endBlock()
}

func (r *renderer) code(lines []text.Segment) error {
	if err := r.beginBlock(); err != nil {
		return err
	}
	if err := r.pushPrefix(vmd.Raw(strings.Repeat(" ", r.format.CodeIndent))); err != nil {
		return err
	}
	for _, seg := range lines {
		line := strings.TrimRight(string(seg.Value(r.src)), "\r\n")
		line = sanitize(strings.ReplaceAll(line, "\t", "    "))
		if line != "" {
			if err := r.out.WriteText(styled(r.styles.InlineCode, vmd.Raw(line))); err != nil {
				return err
			}
		}
		if err := r.out.WriteString("\n"); err != nil {
			return err
		}
	}
	if err := r.popPrefix(); err != nil {
		return err
	}
	return r.endBlock()
}

// verbatim writes raw HTML lines unstyled.
func (r *renderer) verbatim(lines []text.Segment) error {
	if err := r.beginBlock(); err != nil {
		return err
	}
	for _, seg := range lines {
		line := strings.TrimRight(string(seg.Value(r.src)), "\r\n")
		if err := r.out.WriteString(sanitize(line) + "\n"); err != nil {
			return err
		}
	}
	return r.endBlock()
}

func (r *renderer) linkList() error {
	if len(r.links.urls) == 0 {
		return nil
	}
	if err := r.beginBlock(); err != nil {
		return err
	}
	for i, url := range r.links.urls {
		index := "[" + strconv.Itoa(i+1) + "]"
		limit := r.out.LineSpace() - len(index) - 1
		line := vmd.Group(
			styled(r.styles.LinkIndex, vmd.Raw(index)),
			vmd.Raw(" "),
			styled(r.styles.LinkHint, vmd.Raw(fitURL(sanitize(url), limit))),
		)
		if err := r.out.WriteText(line); err != nil {
			return err
		}
		if err := r.out.FinishLine(); err != nil {
			return err
		}
	}
	return r.endBlock()
}

func (r *renderer) pushPrefix(t vmd.Text) error {
	r.prefixes = append(r.prefixes, t)
	return r.out.SetPrefix(r.prefix())
}

func (r *renderer) popPrefix() error {
	r.prefixes = r.prefixes[:len(r.prefixes)-1]
	return r.out.SetPrefix(r.prefix())
}

// prefix returns a copy of the prefix stack as one group; the writer keeps
// it while the stack changes.
func (r *renderer) prefix() vmd.Text {
	if len(r.prefixes) == 0 {
		return vmd.Text{}
	}
	return vmd.Group(append([]vmd.Text(nil), r.prefixes...)...)
}

func (r *renderer) inlines(parent ast.Node) []vmd.Text {
	var out []vmd.Text
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = r.inline(out, n)
	}
	return out
}

func (r *renderer) inline(out []vmd.Text, n ast.Node) []vmd.Text {
	switch n := n.(type) {
	case *ast.Text:
		out = append(out, vmd.Raw(sanitize(string(n.Segment.Value(r.src)))))
		switch {
		case n.HardLineBreak():
			out = append(out, vmd.Raw("\n"))
		case n.SoftLineBreak():
			out = append(out, vmd.Raw(" "))
		}
	case *ast.String:
		out = append(out, vmd.Raw(sanitize(string(n.Value))))
	case *ast.CodeSpan:
		out = append(out, styled(r.styles.InlineCode, vmd.Raw(sanitize(r.plainText(n)))))
	case *ast.Emphasis:
		style := r.styles.Emphasis
		if n.Level >= 2 {
			style = r.styles.Strong
		}
		out = append(out, styled(style, r.inlines(n)...))
	case *ast.Link:
		out = append(out, r.link(string(n.Destination), r.inlines(n))...)
	case *ast.Image:
		out = append(out, r.link(string(n.Destination), r.inlines(n))...)
	case *ast.AutoLink:
		label := vmd.Raw(sanitize(string(n.Label(r.src))))
		out = append(out, r.link(string(n.URL(r.src)), []vmd.Text{label})...)
	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			out = append(out, vmd.Raw(sanitize(string(seg.Value(r.src)))))
		}
	case *extast.TaskCheckBox:
		if n.IsChecked {
			out = append(out, vmd.Raw("[x] "))
		} else {
			out = append(out, vmd.Raw("[ ] "))
		}
	default:
		out = append(out, r.inlines(n)...)
	}
	return out
}

// link styles the label and appends the target either as an index into the
// link list or, with the list disabled, inline in parentheses.
func (r *renderer) link(url string, label []vmd.Text) []vmd.Text {
	out := []vmd.Text{styled(r.styles.Link, label...)}
	if url == "" {
		return out
	}
	if r.format.LinkList {
		index := "[" + strconv.Itoa(r.links.add(url)) + "]"
		return append(out, styled(r.styles.LinkIndex, vmd.Raw(index)))
	}
	if vmd.Group(label...).Plain() == url {
		return out
	}
	return append(out, vmd.Raw(" "), styled(r.styles.LinkHint, vmd.Raw("("+sanitize(url)+")")))
}

func (r *renderer) plainText(n ast.Node) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(r.src))
		case *ast.String:
			b.Write(c.Value)
		default:
			b.WriteString(r.plainText(c))
		}
	}
	return strings.ReplaceAll(b.String(), "\n", " ")
}

func segments(lines *text.Segments) []text.Segment {
	return lines.Sliced(0, lines.Len())
}

// styled wraps children in style, or in a plain group when style emits
// nothing, so unstyled roles add no reset sequences.
func styled(style vmd.Style, children ...vmd.Text) vmd.Text {
	if style.IsNoop() {
		return vmd.Group(children...)
	}
	return vmd.Styled(style, children...)
}
