// Package compose implements the interval composition engine: it turns a
// priority-ordered set of pattern matchers into a flat sequence of styled
// segments that covers the input text exactly.
//
// All functions in this package are pure. They share no state and may be
// called concurrently for different inputs.
package compose

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

// Matcher pairs a pattern with the decoration applied to its matches.
// Priority is positional: a matcher's index in the slice passed to Segments
// or Compose is its priority, and index 0 is the highest.
type Matcher struct {
	Pattern    *regexp.Regexp
	Decoration Decoration
}

// Range is a half-open [Start, End) interval where one matcher's pattern
// matched. Ranges produced by the same matcher never overlap each other;
// ranges from different matchers may overlap arbitrarily.
type Range struct {
	Start   int
	End     int
	Matcher int // index into the matcher slice
}

// Segment is a maximal [Start, End) slice of the input over which the set of
// active matchers is constant. Active holds matcher indices in ascending
// order, which is also descending nesting depth: the first entry is the
// highest-priority (outermost) matcher.
type Segment struct {
	Start  int
	End    int
	Text   string
	Active []int
}

// Node is one rendered unit of output: a segment's raw text together with
// its fully decorated content. Key is derived from the segment's start
// offset, so repeated renders of an unchanged segment produce the same key
// and can be matched to prior output instead of treated as new.
type Node struct {
	Key     string
	Start   int
	End     int
	Text    string
	Content string
}

// Validation errors reported by Validate.
var (
	ErrNilPattern    = errors.New("matcher has nil pattern")
	ErrNilDecoration = errors.New("matcher has nil decoration")
)

// Validate checks a matcher slice for configuration errors. A nil pattern or
// nil decoration is a caller bug and is reported here, at setup time, so the
// render path never fails mid-segment.
func Validate(matchers []Matcher) error {
	for i, m := range matchers {
		if m.Pattern == nil {
			return fmt.Errorf("matcher %d: %w", i, ErrNilPattern)
		}
		if m.Decoration == nil {
			return fmt.Errorf("matcher %d: %w", i, ErrNilDecoration)
		}
	}
	return nil
}

// Ranges scans text with every matcher and returns all match ranges.
// Each matcher is scanned with global-match semantics: leftmost match first,
// the next scan resuming after the previous match end. Zero-length matches
// are discarded.
func Ranges(text string, matchers []Matcher) []Range {
	var out []Range
	for i, m := range matchers {
		if m.Pattern == nil {
			continue
		}
		for _, loc := range m.Pattern.FindAllStringIndex(text, -1) {
			if loc[0] == loc[1] {
				continue
			}
			out = append(out, Range{Start: loc[0], End: loc[1], Matcher: i})
		}
	}
	return out
}

// Segments partitions text into maximal slices with a constant active-matcher
// set. The returned segments are strictly increasing, cover [0, len(text))
// with no gaps or overlaps, and concatenating their Text fields reproduces
// text exactly. An empty text yields no segments.
func Segments(text string, matchers []Matcher) []Segment {
	if len(text) == 0 {
		return nil
	}

	ranges := Ranges(text, matchers)

	// Merge every range boundary, plus the text bounds, into one sorted,
	// deduplicated breakpoint sequence.
	opens := make(map[int][]int)
	closes := make(map[int][]int)
	seen := map[int]struct{}{0: {}, len(text): {}}
	breaks := []int{0, len(text)}
	for _, r := range ranges {
		opens[r.Start] = append(opens[r.Start], r.Matcher)
		closes[r.End] = append(closes[r.End], r.Matcher)
		for _, b := range []int{r.Start, r.End} {
			if _, ok := seen[b]; !ok {
				seen[b] = struct{}{}
				breaks = append(breaks, b)
			}
		}
	}
	sort.Ints(breaks)

	// Sweep left to right. A matcher is active through [start, end):
	// inclusive of its range start, exclusive of its range end, so closes are
	// applied before opens at each boundary.
	active := make([]bool, len(matchers))
	segments := make([]Segment, 0, len(breaks)-1)
	for i := 0; i+1 < len(breaks); i++ {
		at, next := breaks[i], breaks[i+1]
		for _, m := range closes[at] {
			active[m] = false
		}
		for _, m := range opens[at] {
			active[m] = true
		}

		seg := Segment{Start: at, End: next, Text: text[at:next]}
		for m := range matchers {
			if active[m] {
				seg.Active = append(seg.Active, m)
			}
		}
		segments = append(segments, seg)
	}
	return segments
}

// Compose renders text against the matcher slice and returns one node per
// segment. Each segment's decorations are folded innermost-first by ascending
// priority: the lowest-priority active matcher wraps the raw slice, and the
// highest-priority matcher ends up outermost. Nesting order is determined
// entirely by declaration priority, never by match order or match length.
func Compose(text string, matchers []Matcher) []Node {
	segments := Segments(text, matchers)
	nodes := make([]Node, 0, len(segments))
	for _, seg := range segments {
		content := seg.Text
		for i := len(seg.Active) - 1; i >= 0; i-- {
			content = matchers[seg.Active[i]].Decoration.Wrap(content, seg.Text)
		}
		nodes = append(nodes, Node{
			Key:     segmentKey(seg.Start),
			Start:   seg.Start,
			End:     seg.End,
			Text:    seg.Text,
			Content: content,
		})
	}
	return nodes
}

// segmentKey derives a node's stable identity from its start offset.
func segmentKey(start int) string {
	return "seg-" + strconv.Itoa(start)
}
