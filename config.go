package vmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

const (
	groupStyles     = "styles"
	groupFormatting = "formatting"
)

var configGroups = [...]string{groupStyles, groupFormatting}

// Config is a fully resolved configuration.
type Config struct {
	Styles     Styles
	Formatting Formatting
}

// DefaultConfig returns the configuration used when no config source exists.
func DefaultConfig() Config {
	return Config{Styles: DefaultStyles(), Formatting: DefaultFormatting()}
}

// ParseConfig resolves raw groups into a Config. Missing groups take their
// defaults; groups other than styles and formatting fail.
func ParseConfig(raw RawConfig) (Config, error) {
	if err := checkGroups(raw, "config"); err != nil {
		return Config{}, err
	}
	styles, err := ParseStyles(raw[groupStyles])
	if err != nil {
		return Config{}, err
	}
	formatting, err := ParseFormatting(raw[groupFormatting])
	if err != nil {
		return Config{}, err
	}
	return Config{Styles: styles, Formatting: formatting}, nil
}

func checkGroups(raw RawConfig, source string) error {
	for group := range raw {
		if group != groupStyles && group != groupFormatting {
			return fmt.Errorf("%s: %w: %s", source, ErrUnknownGroup, group)
		}
	}
	return nil
}

// LoadRequest configures LoadConfig.
type LoadRequest struct {
	// Theme is a built-in theme name or a path to a theme file. Empty loads
	// no theme.
	Theme string
	// Paths are config files applied after the theme, later ones overriding
	// earlier ones key by key. Missing files are skipped.
	Paths []string
	// EnvPrefix enables overrides from variables such as
	// <prefix>STYLES_LINK. Empty disables them.
	EnvPrefix string
	Logger    *zerolog.Logger
}

// LoadConfig reads the theme, the config files and the environment in that
// order and resolves the merged result. Each file is validated on its own;
// the merged settings are validated once more as a whole.
func LoadConfig(req LoadRequest) (Config, error) {
	logger := zerolog.Nop()
	if req.Logger != nil {
		logger = *req.Logger
	}
	k := koanf.New(".")

	if req.Theme != "" {
		raw, name, ok, err := readTheme(req.Theme)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		if ok {
			if err := loadLayer(k, raw, name); err != nil {
				return Config{}, err
			}
			logger.Debug().Str("theme", name).Msg("theme loaded")
		} else {
			logger.Debug().Str("path", req.Theme).Msg("theme file not found, using defaults")
		}
	}

	for _, path := range req.Paths {
		raw, ok, err := ReadConfigFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		if !ok {
			logger.Debug().Str("path", path).Msg("config file not found, skipping")
			continue
		}
		if err := loadLayer(k, raw, path); err != nil {
			return Config{}, err
		}
		logger.Debug().Str("path", path).Msg("config file loaded")
	}

	if req.EnvPrefix != "" {
		if err := k.Load(env.Provider(req.EnvPrefix, ".", envKey(req.EnvPrefix)), nil); err != nil {
			return Config{}, fmt.Errorf("config: environment: %w", err)
		}
	}

	raw := RawConfig{}
	for _, group := range configGroups {
		if k.Exists(group) {
			raw[group] = k.StringMap(group)
		}
	}
	cfg, err := ParseConfig(raw)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	logger.Debug().
		Int("styles", len(raw[groupStyles])).
		Int("formatting", len(raw[groupFormatting])).
		Msg("config resolved")
	return cfg, nil
}

// loadLayer validates one source on its own and merges it into k.
func loadLayer(k *koanf.Koanf, raw RawConfig, source string) error {
	if err := checkGroups(raw, source); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := ParseConfig(raw); err != nil {
		return fmt.Errorf("config: %s: %w", source, err)
	}
	flat := make(map[string]interface{})
	for group, values := range raw {
		for key, value := range values {
			flat[group+"."+key] = value
		}
	}
	if err := k.Load(confmap.Provider(flat, "."), nil); err != nil {
		return fmt.Errorf("config: %s: %w", source, err)
	}
	return nil
}

func envKey(prefix string) func(string) string {
	return func(name string) string {
		key := strings.ToLower(strings.TrimPrefix(name, prefix))
		for _, group := range configGroups {
			if rest, ok := strings.CutPrefix(key, group+"_"); ok && rest != "" {
				return group + "." + rest
			}
		}
		return ""
	}
}

// ReadConfigFile reads a config file. A missing file is reported with
// ok == false and no error. A leading "~/" expands to the home directory.
func ReadConfigFile(path string) (raw RawConfig, ok bool, err error) {
	path = ExpandHome(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	raw, err = NewConfigReader(bytes.NewReader(data), path).Read()
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func readTheme(theme string) (RawConfig, string, bool, error) {
	if !IsThemeName(theme) {
		raw, ok, err := ReadConfigFile(theme)
		return raw, theme, ok, err
	}
	src, err := ThemeSource(theme)
	if err != nil {
		return nil, "", false, err
	}
	name := "theme:" + strings.ToLower(theme)
	raw, err := NewConfigReader(bytes.NewReader(src), name).Read()
	if err != nil {
		return nil, "", false, err
	}
	return raw, name, true, nil
}

// ExpandHome replaces a leading "~" in path with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}
