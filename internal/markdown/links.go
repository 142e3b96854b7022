package markdown

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"
)

// linkIndex numbers link targets in order of first use.
type linkIndex struct {
	urls []string
	seen map[string]int
}

// add returns the 1-based number of url, registering it if new.
func (l *linkIndex) add(url string) int {
	if n, ok := l.seen[url]; ok {
		return n
	}
	if l.seen == nil {
		l.seen = make(map[string]int)
	}
	l.urls = append(l.urls, url)
	l.seen[url] = len(l.urls)
	return len(l.urls)
}

func truncateWithEllipsis(text string, limit int) string {
	if ansi.PrintableRuneWidth(text) <= limit {
		return text
	}
	if limit <= 0 {
		return ""
	}
	return runewidth.Truncate(text, limit, "…")
}

// fitURL shortens url to at most limit cells, dropping the scheme first and
// truncating with an ellipsis if that is not enough.
func fitURL(url string, limit int) string {
	if ansi.PrintableRuneWidth(url) <= limit {
		return url
	}
	if idx := strings.Index(url, "://"); idx != -1 {
		trimmed := url[idx+3:]
		if ansi.PrintableRuneWidth(trimmed) <= limit {
			return trimmed
		}
	}
	return truncateWithEllipsis(url, limit)
}
