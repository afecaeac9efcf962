package overlay

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/overtype/internal/compose"
)

func marker(open, close string) compose.Decoration {
	return compose.RenderFunc(func(content, _ string) string {
		return open + content + close
	})
}

func TestRenderer_ComposesAllNodes(t *testing.T) {
	matchers := []compose.Matcher{
		{Pattern: regexp.MustCompile(`world`), Decoration: marker("[", "]")},
	}

	r := NewRenderer(0)
	out := r.Render("hello world", matchers)
	require.Equal(t, "hello [world]", out)
}

func TestRenderer_WrapsAndPadsToWidth(t *testing.T) {
	r := NewRenderer(5)
	out := r.Render("aa bb cc", nil)

	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 1, "expected wrapping at width 5")
	for i, line := range lines {
		require.Len(t, line, 5, "line %d must be padded to full width", i)
	}
}

func TestRenderer_PaddingIsANSIAware(t *testing.T) {
	// The escape sequences occupy bytes but no cells; padding must count
	// cells.
	matchers := []compose.Matcher{
		{Pattern: regexp.MustCompile(`ab`), Decoration: marker("\x1b[1m", "\x1b[0m")},
	}

	r := NewRenderer(4)
	out := r.Render("ab", matchers)
	require.Equal(t, "\x1b[1mab\x1b[0m  ", out)
}

func TestRenderer_MemoizesByTextAndGeneration(t *testing.T) {
	calls := 0
	counting := compose.RenderFunc(func(content, _ string) string {
		calls++
		return content
	})
	matchers := []compose.Matcher{
		{Pattern: regexp.MustCompile(`a+`), Decoration: counting},
	}

	r := NewRenderer(0)
	first := r.Render("aaa", matchers)
	second := r.Render("aaa", matchers)
	require.Equal(t, first, second)
	require.Equal(t, 1, calls, "second render must come from the cache")

	// A different text misses the cache.
	r.Render("aa", matchers)
	require.Equal(t, 2, calls)
}

func TestRenderer_InvalidateForcesRecompose(t *testing.T) {
	bracket := []compose.Matcher{
		{Pattern: regexp.MustCompile(`x`), Decoration: marker("[", "]")},
	}
	brace := []compose.Matcher{
		{Pattern: regexp.MustCompile(`x`), Decoration: marker("{", "}")},
	}

	r := NewRenderer(0)
	require.Equal(t, "[x]", r.Render("x", bracket))

	// Without Invalidate the stale render would be served; the generation
	// bump is what keys out the old matcher set.
	r.Invalidate()
	require.Equal(t, "{x}", r.Render("x", brace))
}

func TestRenderer_SetWidthInvalidates(t *testing.T) {
	r := NewRenderer(10)
	require.Equal(t, "ab        ", r.Render("ab", nil))

	r.SetWidth(4)
	require.Equal(t, 4, r.Width())
	require.Equal(t, "ab  ", r.Render("ab", nil))
}

func TestRenderer_EmptyText(t *testing.T) {
	r := NewRenderer(0)
	require.Equal(t, "", r.Render("", nil))
}
