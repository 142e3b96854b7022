package vmd

import (
	"io"
	"strconv"
	"strings"
	"testing"
)

var benchParagraph = Group(
	Raw(strings.Repeat("lorem ipsum dolor sit amet ", 8)),
	Styled(Bold(), Raw("consectetur adipiscing")),
	Raw(" elit "),
	Styled(Composite(Underline(), Foreground(82)), Raw("sed do eiusmod tempor")),
	Raw(strings.Repeat(" incididunt ut labore", 6)),
)

func BenchmarkDisplayWriter(b *testing.B) {
	for _, width := range []int{20, 50, 80} {
		b.Run("w"+strconv.Itoa(width), func(b *testing.B) {
			d := NewDisplayWriter(io.Discard, width)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				d.Reset(io.Discard, width)
				_ = d.SetPrefix(Styled(Faint(), Raw("│ ")))
				_ = d.WriteText(benchParagraph)
				_ = d.FinishLine()
			}
		})
	}
}

func BenchmarkStyleWriter(b *testing.B) {
	s := NewStyleWriter(io.Discard)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s.Reset(io.Discard)
		_ = s.WriteText(benchParagraph)
	}
}

func TestDisplayWriterAllocations(t *testing.T) {
	d := NewDisplayWriter(io.Discard, 40)
	allocs := testing.AllocsPerRun(100, func() {
		d.Reset(io.Discard, 40)
		_ = d.WriteText(benchParagraph)
		_ = d.FinishLine()
	})
	if allocs > 200 {
		t.Fatalf("too many allocations per paragraph: got %.2f", allocs)
	}
}
