package vmd

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// RawConfig maps group name to key to raw value as read from a config source.
type RawConfig map[string]map[string]string

var (
	groupHeaderRegexp = regexp.MustCompile(`^\[([a-z_]+)\]$`)
	entryRegexp       = regexp.MustCompile(`^([a-z0-9_]+)\s*=(.*)$`)
)

// ConfigReader reads the INI-like config format:
//
//	# comment
//	[styles]
//	heading_base = bold, fgcolour(208)
//
// A '#' starts a comment anywhere on a line unless escaped as "\#".
type ConfigReader struct {
	r    io.Reader
	name string
}

// NewConfigReader returns a reader for r. name labels errors.
func NewConfigReader(r io.Reader, name string) *ConfigReader {
	if name == "" {
		name = "config"
	}
	return &ConfigReader{r: r, name: name}
}

// ReadConfig reads a config from r.
func ReadConfig(r io.Reader) (RawConfig, error) {
	return NewConfigReader(r, "").Read()
}

// Read parses the whole input. Any malformed line aborts the read.
func (c *ConfigReader) Read() (RawConfig, error) {
	config := RawConfig{}
	var current map[string]string
	scanner := bufio.NewScanner(c.r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := stripComment(scanner.Text())
		if line == "" {
			continue
		}
		if m := entryRegexp.FindStringSubmatch(line); m != nil {
			if current == nil {
				return nil, c.lineError(lineNo, ErrUnexpectedLine, line)
			}
			current[m[1]] = strings.TrimSpace(m[2])
			continue
		}
		if m := groupHeaderRegexp.FindStringSubmatch(line); m != nil {
			if _, seen := config[m[1]]; seen {
				return nil, c.lineError(lineNo, ErrDuplicateGroup, m[1])
			}
			current = map[string]string{}
			config[m[1]] = current
			continue
		}
		return nil, c.lineError(lineNo, ErrUnparsableLine, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: read: %w", c.name, err)
	}
	return config, nil
}

func (c *ConfigReader) lineError(lineNo int, err error, detail string) error {
	return fmt.Errorf("%s:%d: %w: %s", c.name, lineNo, err, detail)
}

// stripComment removes everything from the first unescaped '#' and trims the
// remainder. "\#" is kept as a literal '#'.
func stripComment(line string) string {
	if !strings.ContainsRune(line, '#') {
		return strings.TrimSpace(line)
	}
	var b strings.Builder
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if ch == '\\' && i+1 < len(line) && line[i+1] == '#' {
			b.WriteByte('#')
			i++
			continue
		}
		if ch == '#' {
			break
		}
		b.WriteByte(ch)
	}
	return strings.TrimSpace(b.String())
}
