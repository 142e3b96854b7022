package vmd

// Formatting holds the layout settings of the formatting section.
type Formatting struct {
	// Columns overrides the output width; 0 leaves it to the terminal.
	Columns int
	// Bullet marks unordered list items.
	Bullet string
	// QuoteMarker starts every line of a block quote.
	QuoteMarker string
	// Rule is repeated across the line for thematic breaks.
	Rule string
	// CodeIndent is the indentation of code blocks.
	CodeIndent int
	// LinkList appends the numbered list of link targets to a document.
	LinkList bool
}

// DefaultFormatting returns the built-in formatting settings.
func DefaultFormatting() Formatting {
	f, err := ParseFormatting(nil)
	if err != nil {
		panic("vmd: built-in formatting: " + err.Error())
	}
	return f
}

// ParseFormatting resolves the formatting section. Unknown keys and
// malformed values fail.
func ParseFormatting(values map[string]string) (Formatting, error) {
	sec := newSection("formatting", values)
	var (
		f   Formatting
		err error
	)
	if f.Columns, err = sec.count("columns", 0); err != nil {
		return Formatting{}, err
	}
	f.Bullet = sec.text("bullet", "•")
	f.QuoteMarker = sec.text("quote_marker", "│")
	f.Rule = sec.text("rule", "─")
	if f.CodeIndent, err = sec.count("code_indent", 4); err != nil {
		return Formatting{}, err
	}
	if f.LinkList, err = sec.flag("link_list", true); err != nil {
		return Formatting{}, err
	}
	if err := sec.validate(); err != nil {
		return Formatting{}, err
	}
	return f, nil
}
