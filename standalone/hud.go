package standalone

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/user-none/lanegrid/focus"
	"github.com/user-none/lanegrid/standalone/style"
	"github.com/user-none/lanegrid/texcache"
)

// HUD is the ebitenui overlay drawn above the grid: a status bar plus the
// help or error panel depending on state.
type HUD struct {
	ui *ebitenui.UI

	left  *widget.Text
	right *widget.Text

	state      AppState
	helpRows   [][2]string
	errorTitle string
	errorRows  [][2]string

	builtWidth int
	dirty      bool
}

// NewHUD creates the overlay in the browsing state
func NewHUD(bindings KeyBindings) *HUD {
	h := &HUD{state: StateBrowsing, dirty: true}
	h.SetBindings(bindings)
	return h
}

// SetBindings refreshes the help panel rows
func (h *HUD) SetBindings(b KeyBindings) {
	h.helpRows = helpRows(b)
	h.dirty = true
}

// SetState switches which panel is shown
func (h *HUD) SetState(s AppState) {
	if s != h.state {
		h.state = s
		h.dirty = true
	}
}

// SetError sets the panel shown in StateError
func (h *HUD) SetError(title string, lines []string) {
	h.errorTitle = title
	h.errorRows = h.errorRows[:0]
	for _, l := range lines {
		h.errorRows = append(h.errorRows, [2]string{"", l})
	}
	h.errorRows = append(h.errorRows, [2]string{"Enter", "Reset the file and continue"}, [2]string{"Esc", "Quit"})
	h.dirty = true
}

// Invalidate forces a rebuild on the next Update, e.g. after a font or DPI
// change.
func (h *HUD) Invalidate() {
	h.dirty = true
}

func modifierName() string {
	if runtime.GOOS == "darwin" {
		return "Cmd"
	}
	return "Ctrl"
}

func helpRows(b KeyBindings) [][2]string {
	keys := make([]string, 0, 4)
	for _, dir := range []focus.Direction{focus.DirUp, focus.DirLeft, focus.DirDown, focus.DirRight} {
		if name := b.KeyName(dir); name != "" {
			keys = append(keys, name)
		}
	}
	move := "Arrows"
	if len(keys) > 0 {
		move += " / " + strings.Join(keys, " ")
	}
	mod := modifierName()
	return [][2]string{
		{move, "Move focus"},
		{"H / F1", "Toggle this help"},
		{"/", "Find a lane by title"},
		{"O", "Import a folder or archive as a lane"},
		{mod + "+C", "Copy the focused asset"},
		{mod + "+V", "Set the focused asset from the clipboard"},
		{"M", "Mute sounds"},
		{"F11", "Toggle fullscreen"},
		{"F12", "Save a screenshot"},
		{"Esc", "Close help"},
	}
}

func (h *HUD) build(width int) {
	root := style.HUDRoot()

	h.left = style.Label("", style.Text)
	h.right = style.Label("", style.TextSecondary)
	root.AddChild(style.StatusBar(h.left, h.right))

	switch h.state {
	case StateHelp:
		root.AddChild(style.HelpPanel("Controls", h.helpRows))
	case StateError:
		root.AddChild(style.HelpPanel(h.errorTitle, h.errorRows))
	}

	h.ui = &ebitenui.UI{Container: root}
	h.builtWidth = width
	h.dirty = false
}

// Update refreshes the status text and runs ebitenui's update. width is the
// screen width in physical pixels.
func (h *HUD) Update(g *focus.Grid, stats texcache.Stats, width int) {
	if h.ui == nil || h.dirty || width != h.builtWidth {
		h.build(width)
	}

	left, right := statusText(g, stats)
	if maxWidth := float64(width) * 0.6; maxWidth > 0 {
		left, _ = style.TruncateToWidth(left, *style.FontFace(), maxWidth)
	}
	h.left.Label = left
	h.right.Label = right

	h.ui.Update()
}

// Draw renders the overlay
func (h *HUD) Draw(screen *ebiten.Image) {
	if h.ui != nil {
		h.ui.Draw(screen)
	}
}

// statusText describes the focus position and loader occupancy
func statusText(g *focus.Grid, stats texcache.Stats) (left, right string) {
	if g == nil {
		return "", ""
	}

	lane := g.ActiveLane()
	idx := g.ActiveLaneIndex()
	left = fmt.Sprintf("%s (%d/%d)", laneLabel(lane.Title(), idx), idx+1, len(g.Lanes()))
	if t := g.Focused(); t != nil && t.Title() != "" {
		left += ": " + t.Title()
	}

	parts := make([]string, 0, 3)
	if i, ok := lane.SelectedIndex(); ok {
		parts = append(parts, fmt.Sprintf("tile %d/%d", i+1, lane.Len()))
	} else {
		parts = append(parts, "no tiles")
	}
	if stats.Pending > 0 {
		parts = append(parts, fmt.Sprintf("loading %d", stats.Pending))
	}
	if stats.Failed > 0 {
		parts = append(parts, fmt.Sprintf("failed %d", stats.Failed))
	}
	right = strings.Join(parts, " | ")
	return left, right
}

// laneLabel is the name shown for a lane. Untitled lanes are numbered.
func laneLabel(title string, index int) string {
	if title == "" {
		return fmt.Sprintf("Lane %d", index+1)
	}
	return title
}
