// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#CCCCCC"} // Main/primary text
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Hints, help text, footers
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"} // Input placeholders

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"} // Focused input border

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"} // Success states
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"} // Warnings
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"} // Errors

	// Default matcher decoration colors (Catppuccin Mocha)
	MatcherMentionColor = lipgloss.AdaptiveColor{Light: "#8839EF", Dark: "#CBA6F7"} // mauve
	MatcherHashtagColor = lipgloss.AdaptiveColor{Light: "#179299", Dark: "#94E2D5"} // teal
	MatcherURLColor     = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"} // blue
	MatcherNumberColor  = lipgloss.AdaptiveColor{Light: "#FE640B", Dark: "#FAB387"} // peach
	MatcherKeywordColor = lipgloss.AdaptiveColor{Light: "#D20F39", Dark: "#F38BA8"} // red

	// Status line styles for the playground
	StatusLabelStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	StatusValueStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor).Bold(true)
	ComposingStyle   = lipgloss.NewStyle().Foreground(StatusWarningColor).Bold(true)

	// Pane chrome
	InputPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderFocusColor).
			Padding(0, 1)

	BackdropPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(BorderDefaultColor).
				Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
)
