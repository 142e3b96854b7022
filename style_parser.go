package vmd

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var colourTokenRegexp = regexp.MustCompile(`^([fb])gcolour\((\d{1,3})\)$`)

// ParseStyle parses a comma separated style descriptor such as
// "bold, fgcolour(208)". Tokens are trimmed and matched case-insensitively;
// empty tokens are ignored. No tokens yields a no-op composite, one token
// yields that style and several yield a composite in descriptor order.
func ParseStyle(descriptor string) (Style, error) {
	var styles []Style
	for _, raw := range strings.Split(descriptor, ",") {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}
		s, err := parseStyleToken(tok)
		if err != nil {
			return Style{}, err
		}
		styles = append(styles, s)
	}
	switch len(styles) {
	case 0:
		return Composite(), nil
	case 1:
		return styles[0], nil
	default:
		return Composite(styles...), nil
	}
}

func parseStyleToken(tok string) (Style, error) {
	name := strings.ToLower(tok)
	switch name {
	case "clear":
		return Clear(), nil
	case "bold":
		return Bold(), nil
	case "italic":
		return Italic(), nil
	case "underline":
		return Underline(), nil
	case "inverse":
		return Inverse(), nil
	case "faint":
		return Faint(), nil
	}
	m := colourTokenRegexp.FindStringSubmatch(name)
	if m == nil {
		return Style{}, fmt.Errorf("%w: %q", ErrUnknownStyle, tok)
	}
	code, err := strconv.Atoi(m[2])
	if err != nil {
		return Style{}, fmt.Errorf("%w: %q", ErrUnknownStyle, tok)
	}
	if m[1] == "f" {
		return Foreground(code), nil
	}
	return Background(code), nil
}
