package markdown

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// frontMatter is a metadata block found at the top of a document.
type frontMatter struct {
	delim string
	data  []byte
}

// splitFrontMatter separates a leading YAML (---), TOML (+++) or JSON (;;;)
// block from the document body. A block without a closing delimiter, or one
// whose first line does not look like metadata, is left in the body.
func splitFrontMatter(src []byte) (frontMatter, []byte, bool) {
	openLine, openNext, ok := nextLine(src, 0)
	if !ok {
		return frontMatter{}, src, false
	}
	delim, isFrontMatter := parseOpeningFrontMatterDelimiter(openLine)
	if !isFrontMatter {
		return frontMatter{}, src, false
	}
	secondLine, _, ok := nextLine(src, openNext)
	if !ok || !frontMatterMetadataLikely(secondLine) {
		return frontMatter{}, src, false
	}
	closeStart, closeNext, found := findClosingFrontMatterDelimiter(src, openNext, delim)
	if !found {
		return frontMatter{}, src, false
	}
	return frontMatter{delim: string(delim), data: src[openNext:closeStart]}, src[closeNext:], true
}

// title returns the title field of the block, if any.
func (fm frontMatter) title() (string, error) {
	var meta struct {
		Title string `yaml:"title" toml:"title" json:"title"`
	}
	var err error
	switch fm.delim {
	case "---":
		err = yaml.Unmarshal(fm.data, &meta)
	case "+++":
		err = toml.Unmarshal(fm.data, &meta)
	case ";;;":
		err = json.Unmarshal(fm.data, &meta)
	default:
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("front matter: %w", err)
	}
	return strings.TrimSpace(meta.Title), nil
}

// nextLine returns the line starting at start without its line ending, and
// the offset of the following line.
func nextLine(src []byte, start int) ([]byte, int, bool) {
	if start >= len(src) {
		return nil, 0, false
	}
	i := bytes.IndexByte(src[start:], '\n')
	if i < 0 {
		return trimCR(src[start:]), len(src), true
	}
	lineEnd := start + i
	return trimCR(src[start:lineEnd]), lineEnd + 1, true
}

func parseOpeningFrontMatterDelimiter(line []byte) ([]byte, bool) {
	trimmed := bytes.TrimSpace(trimBOM(line))
	switch {
	case bytes.Equal(trimmed, []byte("---")):
		return []byte("---"), true
	case bytes.Equal(trimmed, []byte("+++")):
		return []byte("+++"), true
	case bytes.Equal(trimmed, []byte(";;;")):
		return []byte(";;;"), true
	default:
		return nil, false
	}
}

func frontMatterMetadataLikely(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	if bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("[")) {
		return true
	}
	return bytes.Contains(trimmed, []byte(":")) || bytes.Contains(trimmed, []byte("="))
}

// findClosingFrontMatterDelimiter returns the offsets of the closing
// delimiter line and of the line after it.
func findClosingFrontMatterDelimiter(src []byte, start int, delim []byte) (int, int, bool) {
	for idx := start; idx < len(src); {
		line, next, ok := nextLine(src, idx)
		if !ok {
			return 0, 0, false
		}
		if bytes.Equal(bytes.TrimSpace(line), delim) {
			return idx, next, true
		}
		idx = next
	}
	return 0, 0, false
}

func trimCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}
	return b
}

func trimBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}
