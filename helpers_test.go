package vmd

import (
	"regexp"
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRegexp.ReplaceAllString(s, "")
}

// assertLineWidths fails if any line of out is wider than columns cells.
func assertLineWidths(t *testing.T, out string, columns int) {
	t.Helper()
	for i, line := range strings.Split(out, "\n") {
		if w := ansi.PrintableRuneWidth(line); w > columns {
			t.Fatalf("line %d exceeds width %d (%d): %q", i+1, columns, w, stripANSI(line))
		}
	}
}
