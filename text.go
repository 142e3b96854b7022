package vmd

import "strings"

// TextKind tags a Text node as a raw leaf or a group.
type TextKind uint8

const (
	// TextRaw is a leaf holding raw characters.
	TextRaw TextKind = iota
	// TextGroup holds ordered children and an optional style.
	TextGroup
)

// Text is a node of a styled text tree. Leaves never carry a style;
// styling is attached to groups only.
type Text struct {
	Kind     TextKind
	Raw      string
	Style    *Style
	Children []Text
}

// Raw returns a leaf node.
func Raw(s string) Text {
	return Text{Kind: TextRaw, Raw: s}
}

// Group returns an unstyled group of children.
func Group(children ...Text) Text {
	return Text{Kind: TextGroup, Children: children}
}

// Styled returns a group whose children are written under style.
func Styled(style Style, children ...Text) Text {
	return Text{Kind: TextGroup, Style: &style, Children: children}
}

// Plain returns the raw characters of t without any styling.
func (t Text) Plain() string {
	var b strings.Builder
	t.appendPlain(&b)
	return b.String()
}

func (t Text) appendPlain(b *strings.Builder) {
	if t.Kind == TextRaw {
		b.WriteString(t.Raw)
		return
	}
	for _, c := range t.Children {
		c.appendPlain(b)
	}
}

// IsEmpty reports whether t holds no characters.
func (t Text) IsEmpty() bool {
	if t.Kind == TextRaw {
		return t.Raw == ""
	}
	for _, c := range t.Children {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}
