package vmd

import (
	"fmt"
	"io"
)

// StyleWriter writes a Text tree to a sink, keeping a stack of the styles of
// the enclosing styled groups. Clear is a blanket reset, so leaving a group
// sends Clear and then reapplies every style still on the stack.
type StyleWriter struct {
	w     io.Writer
	stack []Style
	// active is set while the sink may have attributes switched on.
	active bool
	// stale is set when the sink was cleared while the stack was not empty.
	stale bool
}

// NewStyleWriter returns a StyleWriter writing to w.
func NewStyleWriter(w io.Writer) *StyleWriter {
	return &StyleWriter{w: w}
}

// Reset discards the style stack and retargets the writer at w.
func (s *StyleWriter) Reset(w io.Writer) {
	s.w = w
	s.stack = s.stack[:0]
	s.active = false
	s.stale = false
}

// Depth returns the number of styled groups currently open.
func (s *StyleWriter) Depth() int {
	return len(s.stack)
}

// WriteText writes t, forwarding raw leaves verbatim.
func (s *StyleWriter) WriteText(t Text) error {
	return s.walk(t, s.writeRaw)
}

func (s *StyleWriter) writeRaw(text string) error {
	if text == "" {
		return nil
	}
	_, err := io.WriteString(s.w, text)
	return err
}

func (s *StyleWriter) walk(t Text, leaf func(string) error) error {
	switch t.Kind {
	case TextRaw:
		return leaf(t.Raw)
	case TextGroup:
		if t.Style != nil {
			if err := s.push(*t.Style); err != nil {
				return err
			}
		}
		for _, child := range t.Children {
			if err := s.walk(child, leaf); err != nil {
				return err
			}
		}
		if t.Style != nil {
			return s.pop()
		}
		return nil
	default:
		return fmt.Errorf("%w: kind %d", ErrUnsupportedText, t.Kind)
	}
}

func (s *StyleWriter) push(style Style) error {
	s.stack = append(s.stack, style)
	if style.IsNoop() {
		return nil
	}
	s.active = true
	return style.Apply(s.w)
}

func (s *StyleWriter) pop() error {
	s.stack = s.stack[:len(s.stack)-1]
	if err := s.clear(); err != nil {
		return err
	}
	return s.reapply()
}

func (s *StyleWriter) clear() error {
	s.active = false
	s.stale = len(s.stack) > 0
	return Clear().Apply(s.w)
}

func (s *StyleWriter) reapply() error {
	s.stale = false
	for _, style := range s.stack {
		if style.IsNoop() {
			continue
		}
		s.active = true
		if err := style.Apply(s.w); err != nil {
			return err
		}
	}
	return nil
}
