package overlay

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Caret is a caret position tagged with focus state. Row and Col are cell
// coordinates relative to the text origin and are only meaningful when
// Focused is true; unfocused consumers get the plain offsets.
type Caret struct {
	Start   int
	End     int
	Focused bool
	Row     int
	Col     int
}

// CaretAt maps a byte offset in text to its cell position, walking grapheme
// clusters so combining sequences and wide runes land on the correct column.
// Lines advance on newlines and, when width > 0, whenever a cluster would
// cross the width boundary. Offsets beyond the text clamp to the end.
func CaretAt(text string, offset, width int, focused bool) Caret {
	caret := Caret{Start: offset, End: offset, Focused: focused}
	if !focused {
		return caret
	}

	row, col := 0, 0
	pos := 0
	state := -1
	remaining := text
	for len(remaining) > 0 && pos < offset {
		var cluster string
		cluster, remaining, _, state = uniseg.StepString(remaining, state)

		if cluster == "\n" {
			row++
			col = 0
			pos += len(cluster)
			continue
		}

		w := runewidth.StringWidth(cluster)
		if width > 0 && col+w > width {
			row++
			col = 0
		}
		col += w
		pos += len(cluster)
	}

	// The caret itself wraps when it would sit past the last column.
	if width > 0 && col >= width {
		row++
		col = 0
	}

	caret.Row = row
	caret.Col = col
	return caret
}

// OffsetAtColumn is the inverse of CaretAt for a single line: it returns the
// byte offset of the grapheme cluster occupying cell column col, clamped to
// the end of the text. Clicking past the last cluster yields len(text).
func OffsetAtColumn(text string, col int) int {
	if col <= 0 {
		return 0
	}

	pos := 0
	cur := 0
	state := -1
	remaining := text
	for len(remaining) > 0 {
		var cluster string
		cluster, remaining, _, state = uniseg.StepString(remaining, state)
		if cluster == "\n" {
			return pos
		}
		w := runewidth.StringWidth(cluster)
		if cur+w > col {
			return pos
		}
		cur += w
		pos += len(cluster)
	}
	return pos
}
