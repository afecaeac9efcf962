package compose

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

// tag returns a render-function decoration that wraps content in named
// markers, so nesting order is visible in the output.
func tag(name string) Decoration {
	return RenderFunc(func(content, _ string) string {
		return "<" + name + ">" + content + "</" + name + ">"
	})
}

func TestSegments_NonOverlappingMatchers(t *testing.T) {
	matchers := []Matcher{
		{Pattern: regexp.MustCompile(`hello`), Decoration: tag("b")},
		{Pattern: regexp.MustCompile(`world`), Decoration: tag("i")},
	}

	segments := Segments("hello world", matchers)
	require.Len(t, segments, 3)

	require.Equal(t, Segment{Start: 0, End: 5, Text: "hello", Active: []int{0}}, segments[0])
	require.Equal(t, Segment{Start: 5, End: 6, Text: " ", Active: nil}, segments[1])
	require.Equal(t, Segment{Start: 6, End: 11, Text: "world", Active: []int{1}}, segments[2])
}

func TestSegments_OverlappingMatchers(t *testing.T) {
	// A matches [0,4), B matches [2,6). The overlap [2,4) carries both,
	// ordered by priority.
	matchers := []Matcher{
		{Pattern: regexp.MustCompile(`abcd`), Decoration: tag("a")},
		{Pattern: regexp.MustCompile(`cdef`), Decoration: tag("b")},
	}

	segments := Segments("abcdef", matchers)
	require.Len(t, segments, 3)

	require.Equal(t, Segment{Start: 0, End: 2, Text: "ab", Active: []int{0}}, segments[0])
	require.Equal(t, Segment{Start: 2, End: 4, Text: "cd", Active: []int{0, 1}}, segments[1])
	require.Equal(t, Segment{Start: 4, End: 6, Text: "ef", Active: []int{1}}, segments[2])
}

func TestSegments_NoMatches(t *testing.T) {
	matchers := []Matcher{
		{Pattern: regexp.MustCompile(`zzz`), Decoration: tag("z")},
	}

	segments := Segments("plain text", matchers)
	require.Len(t, segments, 1)
	require.Equal(t, Segment{Start: 0, End: 10, Text: "plain text", Active: nil}, segments[0])
}

func TestSegments_EmptyText(t *testing.T) {
	matchers := []Matcher{
		{Pattern: regexp.MustCompile(`a`), Decoration: tag("a")},
	}
	require.Empty(t, Segments("", matchers))
}

func TestSegments_NoMatchers(t *testing.T) {
	segments := Segments("abc", nil)
	require.Len(t, segments, 1)
	require.Equal(t, "abc", segments[0].Text)
	require.Empty(t, segments[0].Active)
}

func TestSegments_AdjacentRangesSameMatcher(t *testing.T) {
	// Two matches of the same matcher separated by one character. The gap
	// must be its own undecorated segment.
	matchers := []Matcher{
		{Pattern: regexp.MustCompile(`\w+`), Decoration: tag("w")},
	}

	segments := Segments("ab cd", matchers)
	require.Len(t, segments, 3)
	require.Equal(t, []int{0}, segments[0].Active)
	require.Empty(t, segments[1].Active)
	require.Equal(t, []int{0}, segments[2].Active)
}

func TestRanges_ZeroLengthMatchesDiscarded(t *testing.T) {
	// `b*` matches empty at every position; only the real match survives.
	matchers := []Matcher{
		{Pattern: regexp.MustCompile(`b*`), Decoration: tag("b")},
	}

	ranges := Ranges("abc", matchers)
	require.Equal(t, []Range{{Start: 1, End: 2, Matcher: 0}}, ranges)
}

func TestRanges_GlobalScanSemantics(t *testing.T) {
	matchers := []Matcher{
		{Pattern: regexp.MustCompile(`aa`), Decoration: tag("a")},
	}

	// Leftmost-first with the scan resuming after the previous match end:
	// "aaaa" yields [0,2) and [2,4), never the overlapping [1,3).
	ranges := Ranges("aaaa", matchers)
	require.Equal(t, []Range{
		{Start: 0, End: 2, Matcher: 0},
		{Start: 2, End: 4, Matcher: 0},
	}, ranges)
}

func TestCompose_EndToEnd(t *testing.T) {
	matchers := []Matcher{
		{Pattern: regexp.MustCompile(`hello`), Decoration: tag("b")},
		{Pattern: regexp.MustCompile(`world`), Decoration: tag("i")},
	}

	nodes := Compose("hello world", matchers)
	require.Len(t, nodes, 3)

	require.Equal(t, "<b>hello</b>", nodes[0].Content)
	require.Equal(t, " ", nodes[1].Content)
	require.Equal(t, "<i>world</i>", nodes[2].Content)
}

func TestCompose_NestingOrderByPriority(t *testing.T) {
	// In the overlap the earlier-declared (higher-priority) matcher must be
	// outermost, regardless of which range started first or is longer.
	matchers := []Matcher{
		{Pattern: regexp.MustCompile(`abcd`), Decoration: tag("a")},
		{Pattern: regexp.MustCompile(`cdef`), Decoration: tag("b")},
	}

	nodes := Compose("abcdef", matchers)
	require.Len(t, nodes, 3)
	require.Equal(t, "<a>ab</a>", nodes[0].Content)
	require.Equal(t, "<a><b>cd</b></a>", nodes[1].Content)
	require.Equal(t, "<b>ef</b>", nodes[2].Content)
}

func TestCompose_NestingIgnoresMatchLength(t *testing.T) {
	// The lower-priority matcher has the longer, earlier-starting range but
	// still nests inside.
	matchers := []Matcher{
		{Pattern: regexp.MustCompile(`cd`), Decoration: tag("hi")},
		{Pattern: regexp.MustCompile(`abcdef`), Decoration: tag("lo")},
	}

	nodes := Compose("abcdef", matchers)
	require.Len(t, nodes, 3)
	require.Equal(t, "<lo>ab</lo>", nodes[0].Content)
	require.Equal(t, "<hi><lo>cd</lo></hi>", nodes[1].Content)
	require.Equal(t, "<lo>ef</lo>", nodes[2].Content)
}

func TestCompose_RenderFuncReceivesRawSlice(t *testing.T) {
	var values []string
	rec := RenderFunc(func(content, value string) string {
		values = append(values, value)
		return content
	})

	matchers := []Matcher{
		{Pattern: regexp.MustCompile(`ab`), Decoration: tag("x")},
		{Pattern: regexp.MustCompile(`abcd`), Decoration: rec},
	}

	Compose("abcd", matchers)
	// The recording decoration is active in [0,2) and [2,4); it must see the
	// raw slice text, not the already-wrapped content.
	require.Equal(t, []string{"ab", "cd"}, values)
}

func TestCompose_KeysStableAcrossRenders(t *testing.T) {
	matchers := []Matcher{
		{Pattern: regexp.MustCompile(`world`), Decoration: tag("i")},
	}

	first := Compose("hello world", matchers)
	second := Compose("hello world", matchers)
	require.Equal(t, len(first), len(second))
	for i := range first {
		require.Equal(t, first[i].Key, second[i].Key)
	}

	// A segment keeps its key as long as its start offset is unchanged.
	require.Equal(t, "seg-6", first[1].Key)
}

func TestCompose_ZeroMatchMatcherContributesNothing(t *testing.T) {
	matchers := []Matcher{
		{Pattern: regexp.MustCompile(`zzz`), Decoration: tag("z")},
		{Pattern: regexp.MustCompile(`hello`), Decoration: tag("b")},
	}

	nodes := Compose("hello", matchers)
	require.Len(t, nodes, 1)
	require.Equal(t, "<b>hello</b>", nodes[0].Content)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		matchers []Matcher
		wantErr  error
	}{
		{
			name: "valid",
			matchers: []Matcher{
				{Pattern: regexp.MustCompile(`a`), Decoration: tag("a")},
			},
		},
		{
			name:     "nil pattern",
			matchers: []Matcher{{Decoration: tag("a")}},
			wantErr:  ErrNilPattern,
		},
		{
			name:     "nil decoration",
			matchers: []Matcher{{Pattern: regexp.MustCompile(`a`)}},
			wantErr:  ErrNilDecoration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.matchers)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
