package overlay

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCaretAt_ASCII(t *testing.T) {
	caret := CaretAt("hello", 3, 0, true)
	require.Equal(t, 0, caret.Row)
	require.Equal(t, 3, caret.Col)
	require.True(t, caret.Focused)
}

func TestCaretAt_Unfocused(t *testing.T) {
	caret := CaretAt("hello", 3, 0, false)
	require.False(t, caret.Focused)
	require.Equal(t, 3, caret.Start)
	require.Equal(t, 3, caret.End)
	require.Zero(t, caret.Row)
	require.Zero(t, caret.Col)
}

func TestCaretAt_Newlines(t *testing.T) {
	text := "ab\ncd"
	// Offset 4 sits after "c" on the second line.
	caret := CaretAt(text, 4, 0, true)
	require.Equal(t, 1, caret.Row)
	require.Equal(t, 1, caret.Col)
}

func TestCaretAt_WideRunes(t *testing.T) {
	// Each CJK rune is 3 bytes and 2 cells wide.
	text := "日本語"
	caret := CaretAt(text, 6, 0, true)
	require.Equal(t, 0, caret.Row)
	require.Equal(t, 4, caret.Col)
}

func TestCaretAt_GraphemeClusters(t *testing.T) {
	// "e" plus combining acute is two runes, one cluster, one cell.
	text := "éx"
	caret := CaretAt(text, len("é"), 0, true)
	require.Equal(t, 0, caret.Row)
	require.Equal(t, 1, caret.Col)
}

func TestCaretAt_WrapsAtWidth(t *testing.T) {
	text := "abcdefgh"
	caret := CaretAt(text, 6, 4, true)
	require.Equal(t, 1, caret.Row)
	require.Equal(t, 2, caret.Col)
}

func TestCaretAt_CaretAtWidthBoundaryWraps(t *testing.T) {
	// A caret that would sit past the last column lands at the start of the
	// next row.
	caret := CaretAt("abcd", 4, 4, true)
	require.Equal(t, 1, caret.Row)
	require.Equal(t, 0, caret.Col)
}

func TestCaretAt_OffsetBeyondTextClamps(t *testing.T) {
	caret := CaretAt("ab", 99, 0, true)
	require.Equal(t, 0, caret.Row)
	require.Equal(t, 2, caret.Col)
}

func TestOffsetAtColumn_ASCII(t *testing.T) {
	require.Equal(t, 3, OffsetAtColumn("hello", 3))
}

func TestOffsetAtColumn_NegativeColumn(t *testing.T) {
	require.Equal(t, 0, OffsetAtColumn("hello", -2))
}

func TestOffsetAtColumn_WideRunes(t *testing.T) {
	// Each CJK rune occupies two cells and three bytes; a click on either
	// cell of a rune resolves to that rune's start.
	require.Equal(t, 3, OffsetAtColumn("日本語", 2))
	require.Equal(t, 3, OffsetAtColumn("日本語", 3))
	require.Equal(t, 6, OffsetAtColumn("日本語", 4))
}

func TestOffsetAtColumn_GraphemeClusters(t *testing.T) {
	require.Equal(t, len("é"), OffsetAtColumn("éx", 1))
}

func TestOffsetAtColumn_PastEndClamps(t *testing.T) {
	require.Equal(t, 5, OffsetAtColumn("hello", 42))
}

func TestOffsetAtColumn_StopsAtNewline(t *testing.T) {
	require.Equal(t, 2, OffsetAtColumn("ab\ncd", 9))
}
