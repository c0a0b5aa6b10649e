package style

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

const ellipsis = "..."

// TruncateStart keeps the last maxLen runes of s, replacing the dropped
// start with "..." when there is room for it. Asset keys end in the file
// name, which is the part worth showing.
func TruncateStart(s string, maxLen int) (string, bool) {
	r := []rune(s)
	if len(r) <= maxLen {
		return s, false
	}
	if maxLen <= len(ellipsis) {
		return string(r[len(r)-maxLen:]), true
	}
	return ellipsis + string(r[len(r)-maxLen+len(ellipsis):]), true
}

// TruncateToWidth shortens s with a trailing "..." until it fits maxWidth
// pixels in face. Returns the result and whether truncation occurred.
func TruncateToWidth(s string, face text.Face, maxWidth float64) (string, bool) {
	if s == "" {
		return s, false
	}
	if w, _ := text.Measure(s, face, 0); w <= maxWidth {
		return s, false
	}

	r := []rune(s)
	fits := func(n int) bool {
		w, _ := text.Measure(string(r[:n])+ellipsis, face, 0)
		return w <= maxWidth
	}

	// Widths grow with the prefix length, so the first n that no longer
	// fits bounds the answer.
	n := sort.Search(len(r)+1, func(n int) bool { return !fits(n) })
	if n <= 1 {
		return ellipsis, true
	}
	return string(r[:n-1]) + ellipsis, true
}
