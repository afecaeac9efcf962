// Package overlay renders composed nodes into the styled backdrop displayed
// behind a plain text input, and maps text offsets to terminal cells for
// caret-dependent consumers such as menu positioning.
package overlay

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/overtype/internal/compose"
	"github.com/zjrosen/overtype/internal/log"
)

const (
	cacheExpiration      = 5 * time.Minute
	cacheCleanupInterval = 10 * time.Minute
)

// Renderer turns composed nodes into backdrop lines. Compose output is pure,
// so renders are memoized per (matcher generation, text); Invalidate bumps
// the generation whenever the matcher set changes.
type Renderer struct {
	width      int
	generation uint64
	cache      *gocache.Cache
}

// NewRenderer creates a renderer wrapping output at width cells. A width of
// zero disables wrapping.
func NewRenderer(width int) *Renderer {
	return &Renderer{
		width: width,
		cache: gocache.New(cacheExpiration, cacheCleanupInterval),
	}
}

// SetWidth changes the wrap width. Cached renders for the old width are
// invalidated.
func (r *Renderer) SetWidth(width int) {
	if width == r.width {
		return
	}
	r.width = width
	r.Invalidate()
}

// Width returns the current wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Invalidate discards memoized renders. Call it after the matcher set is
// reloaded; the text alone no longer identifies the output.
func (r *Renderer) Invalidate() {
	r.generation++
	log.Debug(log.CatOverlay, "render cache invalidated", "generation", r.generation)
}

// Render composes text against the matcher set and returns the backdrop
// string: every node's decorated content in order, word-wrapped to the
// renderer width with each line padded to full width.
func (r *Renderer) Render(text string, matchers []compose.Matcher) string {
	key := strconv.FormatUint(r.generation, 10) + ":" + text
	if cached, found := r.cache.Get(key); found {
		if s, ok := cached.(string); ok {
			return s
		}
	}

	var b strings.Builder
	for _, node := range compose.Compose(text, matchers) {
		b.WriteString(node.Content)
	}

	out := b.String()
	if r.width > 0 {
		out = wordwrap.String(out, r.width)
		out = padLines(out, r.width)
	}

	r.cache.Set(key, out, gocache.DefaultExpiration)
	return out
}

// padLines pads every line to width cells so the backdrop forms a uniform
// block. Padding is ANSI-aware: escape sequences occupy no cells.
func padLines(s string, width int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if w := ansi.StringWidth(line); w < width {
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return strings.Join(lines, "\n")
}
