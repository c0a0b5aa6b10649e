package standalone

import (
	"image"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/user-none/lanegrid/standalone/style"
)

// Notification displays a temporary message in the bottom-right corner
type Notification struct {
	mu        sync.Mutex
	message   string
	startTime time.Time
	duration  time.Duration
	now       func() time.Time

	// Reused between frames, grown as needed
	background *ebiten.Image
}

// NewNotification creates a new notification system
func NewNotification() *Notification {
	return &Notification{now: time.Now}
}

// Show displays a notification message. It is safe to call from any goroutine.
func (n *Notification) Show(message string, duration time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.message = message
	n.startTime = n.now()
	n.duration = duration
}

// ShowDefault displays a notification for style.NotificationDefault
func (n *Notification) ShowDefault(message string) {
	n.Show(message, style.NotificationDefault)
}

// ShowShort displays a notification for style.NotificationShort
func (n *Notification) ShowShort(message string) {
	n.Show(message, style.NotificationShort)
}

// current returns the visible message, or "" when nothing is showing
func (n *Notification) current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.message == "" || n.now().Sub(n.startTime) >= n.duration {
		return ""
	}
	return n.message
}

// IsVisible returns whether the notification is currently visible
func (n *Notification) IsVisible() bool {
	return n.current() != ""
}

// Clear removes the current notification
func (n *Notification) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.message = ""
}

// Draw renders the notification
func (n *Notification) Draw(screen *ebiten.Image) {
	message := n.current()
	if message == "" {
		return
	}

	bounds := screen.Bounds()
	face := *style.FontFace()

	padding := style.OverlayPadding
	margin := style.OverlayMargin
	maxText := float64(bounds.Dx() - margin*2 - padding*2)
	if w, _ := text.Measure(message, face, 0); w > maxText {
		message, _ = style.TruncateToWidth(message, face, maxText)
	}

	textWidth, textHeight := text.Measure(message, face, 0)
	bgWidth := int(textWidth) + padding*2
	bgHeight := int(textHeight) + padding*2
	bgX := bounds.Dx() - bgWidth - margin
	bgY := bounds.Dy() - bgHeight - margin

	if n.background == nil || n.background.Bounds().Dx() < bgWidth || n.background.Bounds().Dy() < bgHeight {
		if n.background != nil {
			n.background.Deallocate()
		}
		n.background = ebiten.NewImage(bgWidth, bgHeight)
	}
	bg := style.OverlayBackground
	bg.A = 153 // 60% opacity
	n.background.Fill(bg)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(float64(bgX), float64(bgY))
	screen.DrawImage(n.background.SubImage(image.Rect(0, 0, bgWidth, bgHeight)).(*ebiten.Image), opts)

	textOpts := &text.DrawOptions{}
	textOpts.GeoM.Translate(float64(bgX+padding), float64(bgY+padding))
	textOpts.ColorScale.ScaleWithColor(style.Text)
	text.Draw(screen, message, face, textOpts)
}
