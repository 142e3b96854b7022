package vmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// section reads the settings of one config group and remembers which keys
// were asked for, so keys nobody reads can be reported afterwards.
type section struct {
	name   string
	values map[string]string
	read   map[string]struct{}
}

func newSection(name string, values map[string]string) *section {
	return &section{name: name, values: values, read: make(map[string]struct{})}
}

func (s *section) lookup(key string) (string, bool) {
	s.read[key] = struct{}{}
	v, ok := s.values[key]
	return v, ok
}

func (s *section) style(key string, fallback Style) (Style, error) {
	v, ok := s.lookup(key)
	if !ok {
		return fallback, nil
	}
	style, err := ParseStyle(v)
	if err != nil {
		return Style{}, fmt.Errorf("%s.%s: %w", s.name, key, err)
	}
	return style, nil
}

func (s *section) text(key, fallback string) string {
	if v, ok := s.lookup(key); ok {
		return v
	}
	return fallback
}

func (s *section) count(key string, fallback int) (int, error) {
	v, ok := s.lookup(key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s.%s: %q is not a non-negative integer", ErrInvalidSetting, s.name, key, v)
	}
	return n, nil
}

func (s *section) flag(key string, fallback bool) (bool, error) {
	v, ok := s.lookup(key)
	if !ok {
		return fallback, nil
	}
	switch strings.ToLower(v) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: %s.%s: %q is not a boolean", ErrInvalidSetting, s.name, key, v)
}

// validate fails on the first provided key, in sorted order, that was never
// looked up.
func (s *section) validate() error {
	var unknown []string
	for key := range s.values {
		if _, ok := s.read[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("%w in %s section: %s", ErrUnknownSetting, s.name, unknown[0])
}
