package vmd

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// WriteConfig writes cfg in the format read by ConfigReader, listing every
// setting with its resolved value.
func WriteConfig(w io.Writer, cfg Config) error {
	bw := bufio.NewWriter(w)
	s := cfg.Styles
	bw.WriteString("[" + groupStyles + "]\n")
	writeEntry(bw, "heading_base", s.HeadingBase.String())
	for i, key := range headingKeys {
		writeEntry(bw, key, s.Headings[i].String())
	}
	writeEntry(bw, "strong", s.Strong.String())
	writeEntry(bw, "emphasis", s.Emphasis.String())
	writeEntry(bw, "inline_code", s.InlineCode.String())
	writeEntry(bw, "link", s.Link.String())
	writeEntry(bw, "link_index", s.LinkIndex.String())
	writeEntry(bw, "link_hint", s.LinkHint.String())
	writeEntry(bw, "list_bullet", s.ListBullet.String())
	writeEntry(bw, "list_number", s.ListNumber.String())
	writeEntry(bw, "paragraph", s.Paragraph.String())

	f := cfg.Formatting
	bw.WriteString("\n[" + groupFormatting + "]\n")
	writeEntry(bw, "columns", strconv.Itoa(f.Columns))
	writeEntry(bw, "bullet", f.Bullet)
	writeEntry(bw, "quote_marker", f.QuoteMarker)
	writeEntry(bw, "rule", f.Rule)
	writeEntry(bw, "code_indent", strconv.Itoa(f.CodeIndent))
	if f.LinkList {
		writeEntry(bw, "link_list", "on")
	} else {
		writeEntry(bw, "link_list", "off")
	}
	return bw.Flush()
}

func writeEntry(bw *bufio.Writer, key, value string) {
	bw.WriteString(key)
	bw.WriteString(" =")
	if value != "" {
		bw.WriteByte(' ')
		bw.WriteString(strings.ReplaceAll(value, "#", `\#`))
	}
	bw.WriteByte('\n')
}
