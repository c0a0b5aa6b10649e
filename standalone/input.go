package standalone

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/user-none/lanegrid/focus"
	"github.com/user-none/lanegrid/standalone/style"
)

// GlobalKeys holds the one-shot shortcuts pressed this frame
type GlobalKeys struct {
	Screenshot bool // F12
	Fullscreen bool // F11
	Help       bool // H, F1 or gamepad Start
	Back       bool // Escape or gamepad B
	Confirm    bool // Enter or gamepad A
	Import     bool // O
	Mute       bool // M
	Copy       bool // Cmd/Ctrl+C
	Paste      bool // Cmd/Ctrl+V
	Search     bool // Slash
}

// InputManager turns keyboard, gamepad and wheel input into navigation
// directions. Held directions repeat with acceleration.
type InputManager struct {
	bindings KeyBindings
	now      func() time.Time

	// Navigation state for repeat handling
	direction   focus.Direction
	startTime   time.Time     // When direction was first pressed
	lastMove    time.Time     // When last move occurred
	repeatDelay time.Duration // Current repeat interval

	// Fractional wheel travel not yet turned into a step
	wheelX, wheelY float64
}

// NewInputManager creates a new input manager
func NewInputManager(bindings KeyBindings) *InputManager {
	return &InputManager{
		bindings:    bindings,
		now:         time.Now,
		repeatDelay: style.NavStartInterval,
	}
}

// SetBindings replaces the direction bindings
func (im *InputManager) SetBindings(b KeyBindings) {
	im.bindings = b
}

// Update polls global keys. Should be called once per frame.
func (im *InputManager) Update() GlobalKeys {
	var g GlobalKeys
	g.Screenshot = inpututil.IsKeyJustPressed(ebiten.KeyF12)
	g.Fullscreen = inpututil.IsKeyJustPressed(ebiten.KeyF11)
	g.Help = inpututil.IsKeyJustPressed(ebiten.KeyH) || inpututil.IsKeyJustPressed(ebiten.KeyF1)
	g.Back = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	g.Confirm = inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	g.Import = inpututil.IsKeyJustPressed(ebiten.KeyO)
	g.Mute = inpututil.IsKeyJustPressed(ebiten.KeyM)
	g.Search = inpututil.IsKeyJustPressed(ebiten.KeySlash)

	if style.ModifierPressed() {
		g.Copy = inpututil.IsKeyJustPressed(ebiten.KeyC)
		g.Paste = inpututil.IsKeyJustPressed(ebiten.KeyV)
	}

	if id, ok := firstGamepad(); ok {
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight) {
			g.Help = true
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight) {
			g.Back = true
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom) {
			g.Confirm = true
		}
	}
	return g
}

func firstGamepad() (ebiten.GamepadID, bool) {
	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) == 0 {
		return 0, false
	}
	return ids[0], true
}

// heldDirection reads which direction is currently held. Vertical takes
// priority over horizontal.
func (im *InputManager) heldDirection() focus.Direction {
	held := make(map[focus.Direction]bool, 4)

	for key, code := range arrowKeyCodes {
		if ebiten.IsKeyPressed(key) {
			held[DirectionForKeyCode(code)] = true
		}
	}
	for dir, key := range im.bindings.Keys {
		if ebiten.IsKeyPressed(key) {
			held[dir] = true
		}
	}

	if id, ok := firstGamepad(); ok {
		for dir, btn := range im.bindings.Gamepad {
			if ebiten.IsStandardGamepadButtonPressed(id, btn) {
				held[dir] = true
			}
		}

		// Analog stick (0.5 threshold for UI)
		axisY := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		axisX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if axisY < -0.5 {
			held[focus.DirUp] = true
		}
		if axisY > 0.5 {
			held[focus.DirDown] = true
		}
		if axisX < -0.5 {
			held[focus.DirLeft] = true
		}
		if axisX > 0.5 {
			held[focus.DirRight] = true
		}
	}

	for _, dir := range []focus.Direction{focus.DirUp, focus.DirDown, focus.DirLeft, focus.DirRight} {
		if held[dir] {
			return dir
		}
	}
	return focus.DirNone
}

// Navigation returns the direction to apply this frame, or DirNone.
func (im *InputManager) Navigation() focus.Direction {
	if dir := im.repeat(im.heldDirection()); dir != focus.DirNone {
		return dir
	}
	return im.wheel(ebiten.Wheel())
}

// Reset drops any held-direction and wheel state
func (im *InputManager) Reset() {
	im.direction = focus.DirNone
	im.repeatDelay = style.NavStartInterval
	im.wheelX, im.wheelY = 0, 0
}

// repeat applies the hold-to-repeat timing to the currently held direction.
// A new direction moves at once; holding it repeats after NavInitialDelay
// with an interval that shrinks by NavAcceleration down to NavMinInterval.
func (im *InputManager) repeat(desired focus.Direction) focus.Direction {
	now := im.now()

	if desired == focus.DirNone {
		im.direction = focus.DirNone
		im.repeatDelay = style.NavStartInterval
		return focus.DirNone
	}

	if desired != im.direction {
		im.direction = desired
		im.startTime = now
		im.lastMove = now
		im.repeatDelay = style.NavStartInterval
		return desired
	}

	holdDuration := now.Sub(im.startTime)
	timeSinceLastMove := now.Sub(im.lastMove)
	if holdDuration < style.NavInitialDelay || timeSinceLastMove < im.repeatDelay {
		return focus.DirNone
	}

	im.lastMove = now
	im.repeatDelay -= style.NavAcceleration
	if im.repeatDelay < style.NavMinInterval {
		im.repeatDelay = style.NavMinInterval
	}
	return desired
}

// wheel accumulates wheel travel and emits at most one step per frame.
// Scrolling up moves the focus up; a horizontal wheel moves left and right.
func (im *InputManager) wheel(dx, dy float64) focus.Direction {
	im.wheelX += dx * style.ScrollWheelSensitivity
	im.wheelY += dy * style.ScrollWheelSensitivity

	if math.Abs(im.wheelY) >= 1 {
		dir := focus.DirDown
		if im.wheelY > 0 {
			dir = focus.DirUp
		}
		im.wheelY -= math.Copysign(1, im.wheelY)
		im.wheelX = 0
		return dir
	}
	if math.Abs(im.wheelX) >= 1 {
		dir := focus.DirLeft
		if im.wheelX > 0 {
			dir = focus.DirRight
		}
		im.wheelX -= math.Copysign(1, im.wheelX)
		return dir
	}
	return focus.DirNone
}
