package style

import (
	"image/color"
	"runtime"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.design/x/clipboard"
)

// HUDRoot creates a transparent full-screen root container.
// The container uses AnchorLayout so children can be pinned to edges.
func HUDRoot() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
}

// StatusBar creates a bar stretched across the top of an AnchorLayout parent.
// It holds a left-aligned and a right-aligned child.
func StatusBar(left, right widget.PreferredSizeLocateableWidget) *widget.Container {
	bar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(BarImage()),
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(2),
			widget.GridLayoutOpts.Padding(widget.NewInsetsSimple(TinySpacing)),
			widget.GridLayoutOpts.Stretch([]bool{true, false}, []bool{true}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				StretchHorizontal: true,
				VerticalPosition:  widget.AnchorLayoutPositionStart,
			}),
			widget.WidgetOpts.MinSize(0, HUDBarHeight),
		),
	)
	bar.AddChild(left)
	bar.AddChild(right)
	return bar
}

// Label creates a single line of text in the given color.
func Label(str string, textColor color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(str, FontFace(), textColor),
		widget.TextOpts.Position(widget.TextPositionStart, widget.TextPositionCenter),
	)
}

// CenteredContainer creates a container with vertical layout, centered in its parent.
// The spacing parameter controls vertical spacing between children.
func CenteredContainer(spacing int) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(spacing),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
}

// HelpPanel creates a centered panel listing key bindings. Each row is a
// key name and what it does.
func HelpPanel(title string, rows [][2]string) *widget.Container {
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(PanelImage()),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.NewInsetsSimple(OverlayPadding)),
			widget.RowLayoutOpts.Spacing(SmallSpacing),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
			widget.WidgetOpts.MinSize(HelpPanelMinWidth, 0),
		),
	)

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text(title, LargeFontFaceRef(), Accent),
	))

	table := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(2),
			widget.GridLayoutOpts.Spacing(DefaultSpacing, TinySpacing),
			widget.GridLayoutOpts.Stretch([]bool{false, true}, nil),
		)),
	)
	for _, row := range rows {
		table.AddChild(Label(row[0], Text))
		table.AddChild(Label(row[1], TextSecondary))
	}
	panel.AddChild(table)
	return panel
}

// LargeFontFaceRef returns LargeFontFace as the interface pointer ebitenui
// widgets take, falling back to the regular face.
func LargeFontFaceRef() *text.Face {
	large := LargeFontFace()
	if large == nil {
		return FontFace()
	}
	var face text.Face = large
	return &face
}

// ModifierPressed reports whether the platform shortcut modifier is held:
// Cmd on macOS, Ctrl elsewhere.
func ModifierPressed() bool {
	if runtime.GOOS == "darwin" {
		return ebiten.IsKeyPressed(ebiten.KeyMeta) ||
			ebiten.IsKeyPressed(ebiten.KeyMetaLeft) ||
			ebiten.IsKeyPressed(ebiten.KeyMetaRight)
	}
	return ebiten.IsKeyPressed(ebiten.KeyControl) ||
		ebiten.IsKeyPressed(ebiten.KeyControlLeft) ||
		ebiten.IsKeyPressed(ebiten.KeyControlRight)
}

// Clipboard wraps the system clipboard, initializing it on first use.
// Operations are no-ops when no clipboard is available.
type Clipboard struct {
	inited    bool
	available bool
}

func (c *Clipboard) ensure() bool {
	if !c.inited {
		c.inited = true
		c.available = clipboard.Init() == nil
	}
	return c.available
}

// WriteText puts s on the clipboard. Returns false when unavailable.
func (c *Clipboard) WriteText(s string) bool {
	if !c.ensure() {
		return false
	}
	clipboard.Write(clipboard.FmtText, []byte(s))
	return true
}

// ReadText returns the clipboard text, or "" when empty or unavailable.
func (c *Clipboard) ReadText() string {
	if !c.ensure() {
		return ""
	}
	return string(clipboard.Read(clipboard.FmtText))
}
