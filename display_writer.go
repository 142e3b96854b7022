package vmd

import (
	"io"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"
)

// DefaultColumns is the line width used when none is given.
const DefaultColumns = 80

// DisplayWriter is a StyleWriter that word-wraps raw text to a fixed number
// of columns and starts every line with a prefix.
//
// Line state persists across WriteText calls, so one logical line may be fed
// through several styled spans. Characters of a single leaf are buffered
// until they are known to fit, and whatever remains is flushed verbatim when
// the leaf ends. Only a space chosen as a break point is dropped.
type DisplayWriter struct {
	StyleWriter

	columns     int
	charsOnLine int
	lineStart   bool

	prefix       Text
	hasPrefix    bool
	prefixWidth  int
	prefixWriter StyleWriter

	pending    []rune
	pendingArr [256]rune
}

// NewDisplayWriter returns a DisplayWriter wrapping at columns. A
// non-positive columns selects DefaultColumns.
func NewDisplayWriter(w io.Writer, columns int) *DisplayWriter {
	d := &DisplayWriter{}
	d.Reset(w, columns)
	return d
}

// Reset clears all line, prefix and style state for reuse.
func (d *DisplayWriter) Reset(w io.Writer, columns int) {
	if columns <= 0 {
		columns = DefaultColumns
	}
	d.StyleWriter.Reset(w)
	d.columns = columns
	d.charsOnLine = 0
	d.lineStart = true
	d.prefix = Text{}
	d.hasPrefix = false
	d.prefixWidth = 0
	d.pending = d.pendingArr[:0]
}

// Columns returns the wrap width.
func (d *DisplayWriter) Columns() int {
	return d.columns
}

// LineSpace returns the number of cells available to text on a line after
// the prefix. A prefix wider than the line wraps onto following lines, so
// only its width modulo the column count is taken.
func (d *DisplayWriter) LineSpace() int {
	return d.columns - d.prefixWidth%d.columns
}

// Available returns the cells left on the current line.
func (d *DisplayWriter) Available() int {
	return d.LineSpace() - d.charsOnLine
}

// Prefix returns the current line prefix.
func (d *DisplayWriter) Prefix() Text {
	return d.prefix
}

// SetPrefix sets the prefix written at the start of each line. If the
// current line already holds output it is ended first, so the new prefix
// takes effect on a fresh line.
//
// The prefix is deferred: it is written together with the first output of
// a line, so a line that never receives output carries no prefix.
func (d *DisplayWriter) SetPrefix(prefix Text) error {
	if err := d.ReplacePrefix(prefix); err != nil {
		return err
	}
	return d.FinishLine()
}

// ReplacePrefix swaps the prefix used for following lines without ending
// the current one.
func (d *DisplayWriter) ReplacePrefix(prefix Text) error {
	width, err := printableWidth(prefix)
	if err != nil {
		return err
	}
	d.prefix = prefix
	d.hasPrefix = !prefix.IsEmpty()
	d.prefixWidth = width
	return nil
}

// WriteText writes t, wrapping its raw leaves.
func (d *DisplayWriter) WriteText(t Text) error {
	return d.walk(t, d.writeWrapped)
}

// WriteString writes s as an unstyled leaf.
func (d *DisplayWriter) WriteString(s string) error {
	return d.writeWrapped(s)
}

// FinishLine ends the current line unless nothing was written to it.
func (d *DisplayWriter) FinishLine() error {
	if d.lineStart {
		d.charsOnLine = 0
		return nil
	}
	return d.newLine()
}

// BeginLine writes the prefix of the current line if nothing was written to
// it yet. A prefix swapped in with ReplacePrefix afterwards applies from the
// next line on, which gives hanging indents.
func (d *DisplayWriter) BeginLine() error {
	return d.startLine()
}

// AtLineStart reports whether the current line has received no output.
func (d *DisplayWriter) AtLineStart() bool {
	return d.lineStart
}

func (d *DisplayWriter) writeWrapped(text string) error {
	for _, r := range text {
		if r == '\n' {
			if err := d.flush(len(d.pending)); err != nil {
				return err
			}
			if err := d.newLine(); err != nil {
				return err
			}
			continue
		}
		d.pending = append(d.pending, r)
		d.charsOnLine += runeCells(r)
		for d.Available() < 0 && d.canBreak() {
			if err := d.breakLine(); err != nil {
				return err
			}
		}
	}
	return d.flush(len(d.pending))
}

// canBreak reports whether a line break inside or before the pending buffer
// would shorten the current line.
func (d *DisplayWriter) canBreak() bool {
	return len(d.pending) > 1 || d.charsOnLine > cells(d.pending)
}

// breakLine ends the current line inside the pending buffer: at its last
// space if there is one (the space is dropped), otherwise before its last
// rune. A buffer that would fit on a line of its own but started after
// earlier output moves to the next line whole.
func (d *DisplayWriter) breakLine() error {
	if i := lastSpace(d.pending); i >= 0 {
		if err := d.flush(i); err != nil {
			return err
		}
		if err := d.newLine(); err != nil {
			return err
		}
		d.carry(1)
		return nil
	}
	width := cells(d.pending)
	if width <= d.LineSpace() && d.charsOnLine > width {
		if err := d.newLine(); err != nil {
			return err
		}
		d.carry(0)
		return nil
	}
	if err := d.flush(len(d.pending) - 1); err != nil {
		return err
	}
	if err := d.newLine(); err != nil {
		return err
	}
	d.carry(0)
	return nil
}

// flush writes the first n pending runes and drops them from the buffer.
func (d *DisplayWriter) flush(n int) error {
	if n == 0 {
		return nil
	}
	if err := d.startLine(); err != nil {
		return err
	}
	_, err := io.WriteString(d.w, string(d.pending[:n]))
	d.pending = d.pending[:copy(d.pending, d.pending[n:])]
	return err
}

// carry drops skip leading runes of the buffer and restarts the line count
// from the runes kept.
func (d *DisplayWriter) carry(skip int) {
	if skip > len(d.pending) {
		skip = len(d.pending)
	}
	d.pending = d.pending[:copy(d.pending, d.pending[skip:])]
	d.charsOnLine = cells(d.pending)
}

func (d *DisplayWriter) newLine() error {
	if err := d.startLine(); err != nil {
		return err
	}
	if d.active {
		if err := d.clear(); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(d.w, "\n"); err != nil {
		return err
	}
	d.charsOnLine = 0
	d.lineStart = true
	return nil
}

// startLine emits the prefix on the first output of a line. The prefix is
// written on a cleared sink under its own styles, then the enclosing style
// stack is restored.
func (d *DisplayWriter) startLine() error {
	if !d.lineStart {
		return nil
	}
	d.lineStart = false
	if d.hasPrefix {
		if d.active {
			if err := d.clear(); err != nil {
				return err
			}
		}
		d.prefixWriter.Reset(d.w)
		if err := d.prefixWriter.WriteText(d.prefix); err != nil {
			return err
		}
		d.stale = len(d.stack) > 0
	}
	if d.stale {
		return d.reapply()
	}
	return nil
}

func printableWidth(t Text) (int, error) {
	var b strings.Builder
	if err := NewStyleWriter(&b).WriteText(t); err != nil {
		return 0, err
	}
	return ansi.PrintableRuneWidth(b.String()), nil
}

func runeCells(r rune) int {
	if !unicode.IsPrint(r) {
		return 0
	}
	return runewidth.RuneWidth(r)
}

func cells(rs []rune) int {
	n := 0
	for _, r := range rs {
		n += runeCells(r)
	}
	return n
}

func lastSpace(rs []rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i] == ' ' {
			return i
		}
	}
	return -1
}
