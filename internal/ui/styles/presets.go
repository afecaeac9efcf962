package styles

import "github.com/charmbracelet/lipgloss"

// MatcherStyles maps built-in matcher names to their default decorations.
// Config entries may override any of these with explicit colors and
// attributes; unknown names start from an empty style.
var MatcherStyles = map[string]lipgloss.Style{
	"mention": lipgloss.NewStyle().Foreground(MatcherMentionColor).Bold(true),
	"hashtag": lipgloss.NewStyle().Foreground(MatcherHashtagColor),
	"url":     lipgloss.NewStyle().Foreground(MatcherURLColor).Underline(true),
	"number":  lipgloss.NewStyle().Foreground(MatcherNumberColor),
	"keyword": lipgloss.NewStyle().Foreground(MatcherKeywordColor).Bold(true),
}
