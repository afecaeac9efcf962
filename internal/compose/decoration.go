package compose

import "github.com/charmbracelet/lipgloss"

// Decoration transforms a segment's accumulated content. Wrap receives the
// content decorated so far (innermost decorations already applied) and the
// segment's raw text, and returns the wrapped content. The returned payload
// is opaque to the engine.
type Decoration interface {
	Wrap(content, value string) string
}

// RenderFunc adapts a plain function to the Decoration interface.
type RenderFunc func(content, value string) string

// Wrap calls f.
func (f RenderFunc) Wrap(content, value string) string {
	return f(content, value)
}

// Styled returns a static Decoration rendering content with a lipgloss style.
func Styled(style lipgloss.Style) Decoration {
	return styled{style: style}
}

type styled struct {
	style lipgloss.Style
}

func (s styled) Wrap(content, _ string) string {
	return s.style.Render(content)
}
