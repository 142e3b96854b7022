package markdown

import "github.com/rs/zerolog"

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	logger zerolog.Logger
	title  bool
}

// WithLogger sets the logger used for diagnostics while rendering.
func WithLogger(logger zerolog.Logger) RenderOption {
	return func(cfg *renderConfig) {
		cfg.logger = logger
	}
}

// WithFrontMatterTitle enables or disables rendering the front matter title
// as a level 1 heading. Enabled by default.
func WithFrontMatterTitle(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.title = enabled
	}
}
