package playground

import (
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
)

// inputHost adapts a bubbles textinput to the selection host contract. The
// textinput tracks its cursor in rune indices while the selection core works
// in byte offsets, so the adapter converts at the boundary.
//
// A textinput has no native range selection; outside composition start and
// end coincide at the caret. While an IME session is simulated, the host
// reports the composed span as the selection (anchor at the composition
// start, end at the caret), the way real inputs highlight uncommitted text.
type inputHost struct {
	input *textinput.Model

	anchor    int // byte offset of the composition start
	hasAnchor bool
}

func (h *inputHost) Value() string {
	return h.input.Value()
}

func (h *inputHost) Selection() (int, int, bool) {
	if !h.input.Focused() {
		return 0, 0, false
	}
	end := runesToBytes(h.input.Value(), h.input.Position())
	if h.hasAnchor && h.anchor <= end {
		return h.anchor, end, true
	}
	return end, end, true
}

func (h *inputHost) SetSelection(start, _ int) {
	h.hasAnchor = false
	h.input.SetCursor(bytesToRunes(h.input.Value(), start))
}

// setAnchor pins the selection start at a byte offset for the duration of a
// composition session.
func (h *inputHost) setAnchor(byteOff int) {
	h.anchor = byteOff
	h.hasAnchor = true
}

func (h *inputHost) clearAnchor() {
	h.hasAnchor = false
}

// runesToBytes converts a rune index into s to a byte offset, clamping to
// the end of the string.
func runesToBytes(s string, runeIdx int) int {
	offset := 0
	for i := 0; i < runeIdx; i++ {
		_, size := utf8.DecodeRuneInString(s[offset:])
		if size == 0 {
			break
		}
		offset += size
	}
	return offset
}

// bytesToRunes converts a byte offset into s to a rune index, clamping to
// the end of the string.
func bytesToRunes(s string, byteOff int) int {
	if byteOff > len(s) {
		byteOff = len(s)
	}
	return utf8.RuneCountInString(s[:byteOff])
}
