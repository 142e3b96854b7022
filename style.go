package vmd

import (
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// StyleKind identifies a Style variant.
type StyleKind uint8

const (
	// StyleComposite applies its children in order. The zero Style is an
	// empty composite and emits nothing.
	StyleComposite StyleKind = iota
	// StyleClear resets every active attribute.
	StyleClear
	StyleBold
	StyleItalic
	StyleUnderline
	StyleInverse
	StyleFaint
	// StyleForeground selects a 256-colour foreground.
	StyleForeground
	// StyleBackground selects a 256-colour background.
	StyleBackground
)

var styleKindNames = [...]string{
	StyleComposite:  "composite",
	StyleClear:      "clear",
	StyleBold:       "bold",
	StyleItalic:     "italic",
	StyleUnderline:  "underline",
	StyleInverse:    "inverse",
	StyleFaint:      "faint",
	StyleForeground: "fgcolour",
	StyleBackground: "bgcolour",
}

func (k StyleKind) String() string {
	if int(k) < len(styleKindNames) {
		return styleKindNames[k]
	}
	return "unknown(" + strconv.Itoa(int(k)) + ")"
}

// Style is a terminal text attribute, or an ordered list of them.
type Style struct {
	Kind     StyleKind
	Code     int
	Children []Style
}

// Clear returns the style that resets all attributes.
func Clear() Style { return Style{Kind: StyleClear} }

// Bold returns the bold style.
func Bold() Style { return Style{Kind: StyleBold} }

// Italic returns the italic style.
func Italic() Style { return Style{Kind: StyleItalic} }

// Underline returns the underline style.
func Underline() Style { return Style{Kind: StyleUnderline} }

// Inverse returns the reverse-video style.
func Inverse() Style { return Style{Kind: StyleInverse} }

// Faint returns the faint (dim) style.
func Faint() Style { return Style{Kind: StyleFaint} }

// Foreground returns a 256-colour foreground style. The code is not range checked.
func Foreground(code int) Style { return Style{Kind: StyleForeground, Code: code} }

// Background returns a 256-colour background style. The code is not range checked.
func Background(code int) Style { return Style{Kind: StyleBackground, Code: code} }

// Composite returns a style applying each of styles in order.
func Composite(styles ...Style) Style {
	return Style{Kind: StyleComposite, Children: styles}
}

// IsNoop reports whether applying s emits nothing.
func (s Style) IsNoop() bool {
	if s.Kind != StyleComposite {
		return false
	}
	for _, c := range s.Children {
		if !c.IsNoop() {
			return false
		}
	}
	return true
}

// Sequence returns the escape sequence(s) s emits.
func (s Style) Sequence() string {
	if s.Kind == StyleComposite {
		var b strings.Builder
		s.appendSequence(&b)
		return b.String()
	}
	return sgr(s)
}

func (s Style) appendSequence(b *strings.Builder) {
	if s.Kind != StyleComposite {
		b.WriteString(sgr(s))
		return
	}
	for _, c := range s.Children {
		c.appendSequence(b)
	}
}

func sgr(s Style) string {
	var seq string
	switch s.Kind {
	case StyleClear:
		seq = termenv.ResetSeq
	case StyleBold:
		seq = termenv.BoldSeq
	case StyleItalic:
		seq = termenv.ItalicSeq
	case StyleUnderline:
		seq = termenv.UnderlineSeq
	case StyleInverse:
		seq = termenv.ReverseSeq
	case StyleFaint:
		seq = termenv.FaintSeq
	case StyleForeground:
		seq = termenv.ANSI256Color(s.Code).Sequence(false)
	case StyleBackground:
		seq = termenv.ANSI256Color(s.Code).Sequence(true)
	default:
		return ""
	}
	return termenv.CSI + seq + "m"
}

// Apply writes the escape sequence(s) of s to w.
func (s Style) Apply(w io.Writer) error {
	seq := s.Sequence()
	if seq == "" {
		return nil
	}
	_, err := io.WriteString(w, seq)
	return err
}

// String returns s in the descriptor form accepted by ParseStyle.
// Nested composites are flattened.
func (s Style) String() string {
	var parts []string
	s.appendDescriptor(&parts)
	return strings.Join(parts, ", ")
}

func (s Style) appendDescriptor(parts *[]string) {
	switch s.Kind {
	case StyleComposite:
		for _, c := range s.Children {
			c.appendDescriptor(parts)
		}
	case StyleForeground, StyleBackground:
		*parts = append(*parts, s.Kind.String()+"("+strconv.Itoa(s.Code)+")")
	default:
		*parts = append(*parts, s.Kind.String())
	}
}
