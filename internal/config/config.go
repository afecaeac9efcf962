// Package config provides configuration types, defaults, and persistence for
// overtype. Matcher misconfiguration (an invalid or empty pattern) surfaces
// here, at load time, never as a mid-render failure.
package config

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/overtype/internal/compose"
	"github.com/zjrosen/overtype/internal/log"
	"github.com/zjrosen/overtype/internal/ui/styles"
)

// MatcherConfig defines one pattern+decoration pair. Position in the
// matchers list is priority: earlier entries wrap outermost.
type MatcherConfig struct {
	Name       string `mapstructure:"name" yaml:"name"`
	Pattern    string `mapstructure:"pattern" yaml:"pattern"`
	Color      string `mapstructure:"color" yaml:"color,omitempty"`           // hex foreground e.g. "#CBA6F7"
	Background string `mapstructure:"background" yaml:"background,omitempty"` // hex background
	Bold       bool   `mapstructure:"bold" yaml:"bold,omitempty"`
	Italic     bool   `mapstructure:"italic" yaml:"italic,omitempty"`
	Underline  bool   `mapstructure:"underline" yaml:"underline,omitempty"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool   `mapstructure:"show_status_bar" yaml:"show_status_bar"`
	Placeholder   string `mapstructure:"placeholder" yaml:"placeholder"`
}

// Config holds all configuration options for overtype.
type Config struct {
	Matchers           []MatcherConfig `mapstructure:"matchers" yaml:"matchers"`
	UI                 UIConfig        `mapstructure:"ui" yaml:"ui"`
	AutoReload         bool            `mapstructure:"auto_reload" yaml:"auto_reload"`
	AutoReloadDebounce int             `mapstructure:"auto_reload_debounce" yaml:"auto_reload_debounce"` // milliseconds
}

// Defaults returns the built-in configuration: a matcher set that styles
// mentions, hashtags, URLs, and numbers out of the box.
func Defaults() Config {
	return Config{
		Matchers: []MatcherConfig{
			{Name: "url", Pattern: `https?://[^\s]+`},
			{Name: "mention", Pattern: `@\w+`},
			{Name: "hashtag", Pattern: `#\w+`},
			{Name: "number", Pattern: `\d+(\.\d+)?`},
		},
		UI: UIConfig{
			ShowStatusBar: true,
			Placeholder:   "Type here. Try @mentions, #hashtags, URLs and numbers.",
		},
		AutoReload:         true,
		AutoReloadDebounce: 500,
	}
}

// Validate checks the matcher list without building decorations.
func Validate(cfg Config) error {
	_, err := CompileMatchers(cfg.Matchers)
	return err
}

// CompileMatchers compiles the configured patterns and builds their
// decorations. Any invalid entry is a configuration error naming the
// offending matcher.
func CompileMatchers(configs []MatcherConfig) ([]compose.Matcher, error) {
	matchers := make([]compose.Matcher, 0, len(configs))
	for i, mc := range configs {
		if mc.Pattern == "" {
			return nil, fmt.Errorf("matcher %q (index %d): pattern is required", mc.Name, i)
		}
		re, err := regexp.Compile(mc.Pattern)
		if err != nil {
			return nil, fmt.Errorf("matcher %q (index %d): %w", mc.Name, i, err)
		}
		matchers = append(matchers, compose.Matcher{
			Pattern:    re,
			Decoration: compose.Styled(decorationStyle(mc)),
		})
	}
	if err := compose.Validate(matchers); err != nil {
		return nil, fmt.Errorf("compiling matchers: %w", err)
	}
	log.Debug(log.CatConfig, "compiled matcher set", "count", len(matchers))
	return matchers, nil
}

// decorationStyle builds a matcher's lipgloss style: the named built-in
// preset (if any) overridden by explicit config attributes.
func decorationStyle(mc MatcherConfig) lipgloss.Style {
	style, ok := styles.MatcherStyles[mc.Name]
	if !ok {
		style = lipgloss.NewStyle()
	}
	if mc.Color != "" {
		style = style.Foreground(lipgloss.Color(mc.Color))
	}
	if mc.Background != "" {
		style = style.Background(lipgloss.Color(mc.Background))
	}
	if mc.Bold {
		style = style.Bold(true)
	}
	if mc.Italic {
		style = style.Italic(true)
	}
	if mc.Underline {
		style = style.Underline(true)
	}
	return style
}
