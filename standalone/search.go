package standalone

import (
	"image"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/user-none/lanegrid/standalone/style"
)

// LaneSearch is the find-a-lane overlay at the bottom-left of the screen.
// While active it captures typed text and reports every change.
type LaneSearch struct {
	text      string
	active    bool
	onChanged func(text string)

	// Pre-allocated background image (avoid per-frame allocations)
	bg *ebiten.Image
}

// NewLaneSearch creates a search overlay with the given change callback
func NewLaneSearch(onChanged func(text string)) *LaneSearch {
	return &LaneSearch{onChanged: onChanged}
}

// IsActive returns true if the overlay is capturing keyboard input
func (s *LaneSearch) IsActive() bool {
	return s.active
}

// Text returns the current query
func (s *LaneSearch) Text() string {
	return s.text
}

// Activate starts capturing keyboard input with an empty query
func (s *LaneSearch) Activate() {
	s.text = ""
	s.active = true
}

// Close stops capturing input and drops the query. The focus stays where
// the search left it.
func (s *LaneSearch) Close() {
	s.text = ""
	s.active = false
}

// HandleInput processes keyboard input when active.
// Returns true if input was handled (should not propagate to navigation).
func (s *LaneSearch) HandleInput() bool {
	if !s.active {
		return false
	}

	// Arrow keys close the search and let navigation proceed
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) ||
		ebiten.IsKeyPressed(ebiten.KeyArrowDown) ||
		ebiten.IsKeyPressed(ebiten.KeyArrowLeft) ||
		ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		s.Close()
		return false
	}

	done := inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	return s.apply(ebiten.AppendInputChars(nil), inpututil.IsKeyJustPressed(ebiten.KeyBackspace), done)
}

// apply edits the query. done closes the overlay after the edit.
func (s *LaneSearch) apply(chars []rune, backspace, done bool) bool {
	changed := false
	if backspace && s.text != "" {
		r := []rune(s.text)
		s.text = string(r[:len(r)-1])
		changed = true
	}
	for _, c := range chars {
		// Don't add the '/' that opened the search
		if c == '/' && s.text == "" {
			continue
		}
		s.text += string(c)
		changed = true
	}
	if changed && s.onChanged != nil {
		s.onChanged(s.text)
	}
	if done {
		s.Close()
	}
	return true
}

// bestLane returns the index of the title that best matches query, or -1.
// Exact matches win over prefixes, prefixes over substrings, and substrings
// over fuzzy matches. Ties go to the lower index.
func bestLane(titles []string, query string) int {
	q := strings.TrimSpace(query)
	if q == "" {
		return -1
	}
	lower := strings.ToLower(q)

	for i, t := range titles {
		if strings.EqualFold(t, q) {
			return i
		}
	}
	for i, t := range titles {
		if strings.HasPrefix(strings.ToLower(t), lower) {
			return i
		}
	}
	for i, t := range titles {
		if strings.Contains(strings.ToLower(t), lower) {
			return i
		}
	}

	ranks := fuzzy.RankFindNormalizedFold(q, titles)
	if len(ranks) == 0 {
		return -1
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance || (r.Distance == best.Distance && r.OriginalIndex < best.OriginalIndex) {
			best = r
		}
	}
	return best.OriginalIndex
}

// Draw renders the search overlay at bottom-left
func (s *LaneSearch) Draw(screen *ebiten.Image) {
	if !s.active {
		return
	}

	displayText := "Find lane: " + s.text + "_"
	textWidth, textHeight := text.Measure(displayText, *style.FontFace(), 0)

	padding := style.OverlayPadding
	bgWidth := int(textWidth) + padding*2
	bgHeight := int(textHeight) + padding*2

	// Position: bottom-left, margin (mirrors Notification at bottom-right)
	margin := style.OverlayMargin
	bgX := margin
	bgY := screen.Bounds().Dy() - bgHeight - margin

	if s.bg == nil || s.bg.Bounds().Dx() < bgWidth || s.bg.Bounds().Dy() < bgHeight {
		if s.bg != nil {
			s.bg.Deallocate()
		}
		s.bg = ebiten.NewImage(bgWidth, bgHeight)
	}
	s.bg.Clear()
	overlayBg := style.OverlayBackground
	overlayBg.A = 153 // 60% opacity
	s.bg.Fill(overlayBg)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(float64(bgX), float64(bgY))
	screen.DrawImage(s.bg.SubImage(image.Rect(0, 0, bgWidth, bgHeight)).(*ebiten.Image), opts)

	textOpts := &text.DrawOptions{}
	textOpts.GeoM.Translate(float64(bgX+padding), float64(bgY+padding))
	textOpts.ColorScale.ScaleWithColor(style.Text)
	text.Draw(screen, displayText, *style.FontFace(), textOpts)
}
