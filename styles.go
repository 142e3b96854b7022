package vmd

// Styles is the resolved style of every semantic role a formatter may use.
type Styles struct {
	HeadingBase Style
	// Headings holds the per-level styles, without HeadingBase.
	Headings   [6]Style
	Strong     Style
	Emphasis   Style
	InlineCode Style
	Link       Style
	LinkIndex  Style
	LinkHint   Style
	ListBullet Style
	ListNumber Style
	Paragraph  Style
}

// Heading returns the style of a heading of the given level (1-6), which is
// HeadingBase followed by the level's own style. Out of range levels are
// clamped.
func (s Styles) Heading(level int) Style {
	if level < 1 {
		level = 1
	}
	if level > len(s.Headings) {
		level = len(s.Headings)
	}
	return Composite(s.HeadingBase, s.Headings[level-1])
}

var headingKeys = [6]string{"heading1", "heading2", "heading3", "heading4", "heading5", "heading6"}

// DefaultStyles returns the built-in styles, identical to parsing an empty
// styles section.
func DefaultStyles() Styles {
	styles, err := ParseStyles(nil)
	if err != nil {
		panic("vmd: built-in styles: " + err.Error())
	}
	return styles
}

// PlainStyles returns styles that emit no escape sequences at all.
func PlainStyles() Styles {
	return Styles{}
}

// ParseStyles resolves every role from the raw values of a styles section,
// falling back to the built-in default of each role that is not set. A key
// that names no role fails the whole section. values is not modified.
func ParseStyles(values map[string]string) (Styles, error) {
	sec := newSection("styles", values)
	styles, err := resolveStyles(sec)
	if err != nil {
		return Styles{}, err
	}
	if err := sec.validate(); err != nil {
		return Styles{}, err
	}
	return styles, nil
}

func resolveStyles(sec *section) (Styles, error) {
	var (
		s   Styles
		err error
	)
	if s.HeadingBase, err = sec.style("heading_base", Composite(Clear(), Bold(), Foreground(208))); err != nil {
		return Styles{}, err
	}
	for i, key := range headingKeys {
		fallback := Composite()
		if i >= 2 {
			fallback = Faint()
		}
		if s.Headings[i], err = sec.style(key, fallback); err != nil {
			return Styles{}, err
		}
	}
	if s.Strong, err = sec.style("strong", Bold()); err != nil {
		return Styles{}, err
	}
	if s.Emphasis, err = sec.style("emphasis", Italic()); err != nil {
		return Styles{}, err
	}
	if s.InlineCode, err = sec.style("inline_code", Composite(Clear(), Foreground(196), Background(52))); err != nil {
		return Styles{}, err
	}
	if s.Link, err = sec.style("link", Composite(Underline(), Foreground(82))); err != nil {
		return Styles{}, err
	}
	if s.LinkIndex, err = sec.style("link_index", Foreground(82)); err != nil {
		return Styles{}, err
	}
	if s.LinkHint, err = sec.style("link_hint", Foreground(240)); err != nil {
		return Styles{}, err
	}
	if s.ListBullet, err = sec.style("list_bullet", Foreground(208)); err != nil {
		return Styles{}, err
	}
	// list_number follows list_bullet unless set on its own.
	if s.ListNumber, err = sec.style("list_number", s.ListBullet); err != nil {
		return Styles{}, err
	}
	if s.Paragraph, err = sec.style("paragraph", Composite()); err != nil {
		return Styles{}, err
	}
	return s, nil
}
