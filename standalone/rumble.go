package standalone

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Minimum thresholds for rumble events. Low intensities fall below the
// physical actuation threshold of most gamepad motors.
const (
	minRumbleMagnitude  = 0.40
	minRumbleDurationMs = 250

	maxRumbleLevel = 5
)

// RumbleEvent is a vibration request before level scaling
type RumbleEvent struct {
	StrongMagnitude  float64
	WeakMagnitude    float64
	StrongDurationMs int
	WeakDurationMs   int
}

// bumpRumble is the short knock played when a move runs into an edge
var bumpRumble = RumbleEvent{
	StrongMagnitude:  0.25,
	WeakMagnitude:    0.15,
	StrongDurationMs: 80,
	WeakDurationMs:   120,
}

// scaleRumble applies a rumble level to ev. Level 0 is off, 1-4 multiply
// the magnitudes and 5 turns any non-zero magnitude to full strength.
func scaleRumble(ev RumbleEvent, level int) (strong, weak float64, duration time.Duration) {
	if level <= 0 {
		return 0, 0, 0
	}
	if level > maxRumbleLevel {
		level = maxRumbleLevel
	}

	maxMode := level == maxRumbleLevel
	mult := float64(level)
	durationMult := level
	if level >= 4 {
		durationMult = 2
	}

	if maxMode {
		if ev.StrongMagnitude > 0 {
			strong = 1.0
		}
		if ev.WeakMagnitude > 0 {
			weak = 1.0
		}
	} else {
		strong = scaleMagnitude(ev.StrongMagnitude, mult)
		weak = scaleMagnitude(ev.WeakMagnitude, mult)
	}

	durationMs := ev.StrongDurationMs
	if ev.WeakDurationMs > durationMs {
		durationMs = ev.WeakDurationMs
	}
	durationMs *= durationMult
	if durationMs < minRumbleDurationMs {
		durationMs = minRumbleDurationMs
	}
	return strong, weak, time.Duration(durationMs) * time.Millisecond
}

// scaleMagnitude multiplies m, clamps to 1.0 and applies the minimum floor
func scaleMagnitude(m, mult float64) float64 {
	v := m * mult
	if v > 1.0 {
		return 1.0
	}
	if v > 0 && v < minRumbleMagnitude {
		return minRumbleMagnitude
	}
	return v
}

// Rumbler vibrates connected gamepads when navigation hits an edge
type Rumbler struct {
	level    int
	vibrate  func(id ebiten.GamepadID, opts *ebiten.VibrateGamepadOptions)
	gamepads func() []ebiten.GamepadID
}

// NewRumbler creates a rumbler at the given level (0 = off)
func NewRumbler(level int) *Rumbler {
	return &Rumbler{
		level:    level,
		vibrate:  ebiten.VibrateGamepad,
		gamepads: func() []ebiten.GamepadID { return ebiten.AppendGamepadIDs(nil) },
	}
}

// SetLevel changes the rumble level
func (r *Rumbler) SetLevel(level int) {
	r.level = level
}

// Navigation rumbles every gamepad when a move did not happen
func (r *Rumbler) Navigation(moved bool) {
	if moved {
		return
	}
	r.fire(bumpRumble)
}

func (r *Rumbler) fire(ev RumbleEvent) {
	strong, weak, d := scaleRumble(ev, r.level)
	if strong == 0 && weak == 0 {
		return
	}
	for _, id := range r.gamepads() {
		r.vibrate(id, &ebiten.VibrateGamepadOptions{
			Duration:        d,
			StrongMagnitude: strong,
			WeakMagnitude:   weak,
		})
	}
}
