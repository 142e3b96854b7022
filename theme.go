package vmd

import (
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"
)

//go:embed themes/*.theme
var themeFS embed.FS

const themeExt = ".theme"

// DefaultTheme is the theme used when none is selected.
const DefaultTheme = "default"

var themeNameRegexp = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// IsThemeName reports whether s is shaped like a built-in theme name rather
// than a path.
func IsThemeName(s string) bool {
	return themeNameRegexp.MatchString(s)
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	entries, err := fs.ReadDir(themeFS, "themes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), themeExt); ok && !e.IsDir() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ThemeSource returns the config text of a built-in theme. Names are matched
// case-insensitively.
func ThemeSource(name string) ([]byte, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if !IsThemeName(normalized) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	data, err := themeFS.ReadFile("themes/" + normalized + themeExt)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return data, nil
}
