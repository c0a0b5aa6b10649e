package standalone

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/user-none/lanegrid/focus"
	"github.com/user-none/lanegrid/standalone/storage"
)

// keyNameMap maps short key name strings to ebiten.Key values.
var keyNameMap = map[string]ebiten.Key{
	"A":          ebiten.KeyA,
	"B":          ebiten.KeyB,
	"C":          ebiten.KeyC,
	"D":          ebiten.KeyD,
	"E":          ebiten.KeyE,
	"F":          ebiten.KeyF,
	"G":          ebiten.KeyG,
	"H":          ebiten.KeyH,
	"I":          ebiten.KeyI,
	"J":          ebiten.KeyJ,
	"K":          ebiten.KeyK,
	"L":          ebiten.KeyL,
	"M":          ebiten.KeyM,
	"N":          ebiten.KeyN,
	"O":          ebiten.KeyO,
	"P":          ebiten.KeyP,
	"Q":          ebiten.KeyQ,
	"R":          ebiten.KeyR,
	"S":          ebiten.KeyS,
	"T":          ebiten.KeyT,
	"U":          ebiten.KeyU,
	"V":          ebiten.KeyV,
	"W":          ebiten.KeyW,
	"X":          ebiten.KeyX,
	"Y":          ebiten.KeyY,
	"Z":          ebiten.KeyZ,
	"0":          ebiten.Key0,
	"1":          ebiten.Key1,
	"2":          ebiten.Key2,
	"3":          ebiten.Key3,
	"4":          ebiten.Key4,
	"5":          ebiten.Key5,
	"6":          ebiten.Key6,
	"7":          ebiten.Key7,
	"8":          ebiten.Key8,
	"9":          ebiten.Key9,
	"Enter":      ebiten.KeyEnter,
	"Backspace":  ebiten.KeyBackspace,
	"Space":      ebiten.KeySpace,
	"Semicolon":  ebiten.KeySemicolon,
	"Comma":      ebiten.KeyComma,
	"Period":     ebiten.KeyPeriod,
	"Slash":      ebiten.KeySlash,
	"Tab":        ebiten.KeyTab,
	"Escape":     ebiten.KeyEscape,
	"Shift":      ebiten.KeyShift,
	"ArrowUp":    ebiten.KeyArrowUp,
	"ArrowDown":  ebiten.KeyArrowDown,
	"ArrowLeft":  ebiten.KeyArrowLeft,
	"ArrowRight": ebiten.KeyArrowRight,
	"[":          ebiten.KeyLeftBracket,
	"]":          ebiten.KeyRightBracket,
	"-":          ebiten.KeyMinus,
	"=":          ebiten.KeyEqual,
	"'":          ebiten.KeyApostrophe,
	"F1":         ebiten.KeyF1,
	"F2":         ebiten.KeyF2,
	"F3":         ebiten.KeyF3,
	"F4":         ebiten.KeyF4,
	"F5":         ebiten.KeyF5,
	"F6":         ebiten.KeyF6,
	"F7":         ebiten.KeyF7,
	"F8":         ebiten.KeyF8,
	"F9":         ebiten.KeyF9,
	"F10":        ebiten.KeyF10,
	"F11":        ebiten.KeyF11,
	"F12":        ebiten.KeyF12,
}

// padNameMap maps gamepad button name strings to ebiten StandardGamepadButton values.
var padNameMap = map[string]ebiten.StandardGamepadButton{
	"A":         ebiten.StandardGamepadButtonRightBottom,
	"B":         ebiten.StandardGamepadButtonRightRight,
	"X":         ebiten.StandardGamepadButtonRightLeft,
	"Y":         ebiten.StandardGamepadButtonRightTop,
	"L1":        ebiten.StandardGamepadButtonFrontTopLeft,
	"R1":        ebiten.StandardGamepadButtonFrontTopRight,
	"L2":        ebiten.StandardGamepadButtonFrontBottomLeft,
	"R2":        ebiten.StandardGamepadButtonFrontBottomRight,
	"Start":     ebiten.StandardGamepadButtonCenterRight,
	"Select":    ebiten.StandardGamepadButtonCenterLeft,
	"DpadUp":    ebiten.StandardGamepadButtonLeftTop,
	"DpadDown":  ebiten.StandardGamepadButtonLeftBottom,
	"DpadLeft":  ebiten.StandardGamepadButtonLeftLeft,
	"DpadRight": ebiten.StandardGamepadButtonLeftRight,
	"L3":        ebiten.StandardGamepadButtonLeftStick,
	"R3":        ebiten.StandardGamepadButtonRightStick,
}

// reservedKeys are keyboard keys used by global shortcuts. They cannot be
// assigned as direction bindings.
var reservedKeys = map[ebiten.Key]bool{
	ebiten.KeyEscape:     true, // Close help / back
	ebiten.KeyEnter:      true, // Confirm on the error screen
	ebiten.KeyF1:         true, // Help
	ebiten.KeyH:          true, // Help
	ebiten.KeyO:          true, // Import folder
	ebiten.KeyM:          true, // Mute
	ebiten.KeySlash:      true, // Find lane
	ebiten.KeyF11:        true, // Fullscreen
	ebiten.KeyF12:        true, // Screenshot
	ebiten.KeyArrowUp:    true, // Fixed direction keys
	ebiten.KeyArrowDown:  true,
	ebiten.KeyArrowLeft:  true,
	ebiten.KeyArrowRight: true,
	ebiten.KeyShift:      true,
	ebiten.KeyControl:    true,
	ebiten.KeyAlt:        true,
	ebiten.KeyMeta:       true,
}

// Reverse lookup maps (built from keyNameMap/padNameMap at init).
var keyToName map[ebiten.Key]string
var padToName map[ebiten.StandardGamepadButton]string

func init() {
	keyToName = make(map[ebiten.Key]string, len(keyNameMap))
	for name, key := range keyNameMap {
		keyToName[key] = name
	}
	padToName = make(map[ebiten.StandardGamepadButton]string, len(padNameMap))
	for name, btn := range padNameMap {
		padToName[btn] = name
	}
}

// KeyToName converts an ebiten.Key to its name string.
// Returns the name and true if the key has a name, or "" and false otherwise.
func KeyToName(k ebiten.Key) (string, bool) {
	name, ok := keyToName[k]
	return name, ok
}

// PadToName converts an ebiten.StandardGamepadButton to its name string.
func PadToName(b ebiten.StandardGamepadButton) (string, bool) {
	name, ok := padToName[b]
	return name, ok
}

// IsReservedKey returns true if the key is reserved for global shortcuts.
func IsReservedKey(k ebiten.Key) bool {
	return reservedKeys[k]
}

// ParseKey converts a key name string to an ebiten.Key.
// Returns the key and true if the name is valid, or 0 and false otherwise.
func ParseKey(name string) (ebiten.Key, bool) {
	k, ok := keyNameMap[name]
	return k, ok
}

// ParsePad converts a gamepad button name string to an ebiten.StandardGamepadButton.
func ParsePad(name string) (ebiten.StandardGamepadButton, bool) {
	b, ok := padNameMap[name]
	return b, ok
}

// Key codes of the reference deployment's remote: left, up, right, down.
const (
	KeyCodeLeft  = 37
	KeyCodeUp    = 38
	KeyCodeRight = 39
	KeyCodeDown  = 40
)

// DirectionForKeyCode maps a remote key code to a navigation direction.
// Unmapped codes yield DirNone.
func DirectionForKeyCode(code int) focus.Direction {
	switch code {
	case KeyCodeLeft:
		return focus.DirLeft
	case KeyCodeUp:
		return focus.DirUp
	case KeyCodeRight:
		return focus.DirRight
	case KeyCodeDown:
		return focus.DirDown
	default:
		return focus.DirNone
	}
}

// arrowKeyCodes gives the arrow keys their remote key codes
var arrowKeyCodes = map[ebiten.Key]int{
	ebiten.KeyArrowLeft:  KeyCodeLeft,
	ebiten.KeyArrowUp:    KeyCodeUp,
	ebiten.KeyArrowRight: KeyCodeRight,
	ebiten.KeyArrowDown:  KeyCodeDown,
}

// Direction binding names used in config overrides and the help panel.
var directionBindings = []struct {
	Name       string
	Dir        focus.Direction
	DefaultKey string
	DefaultPad string
}{
	{"Up", focus.DirUp, "W", "DpadUp"},
	{"Down", focus.DirDown, "S", "DpadDown"},
	{"Left", focus.DirLeft, "A", "DpadLeft"},
	{"Right", focus.DirRight, "D", "DpadRight"},
}

// KeyBindings maps each direction to its secondary keyboard key and its
// gamepad button. Arrow keys always work in addition.
type KeyBindings struct {
	Keys    map[focus.Direction]ebiten.Key
	Gamepad map[focus.Direction]ebiten.StandardGamepadButton
}

func overrideFor(cfg storage.InputConfig, name string) string {
	switch name {
	case "Up":
		return cfg.Up
	case "Down":
		return cfg.Down
	case "Left":
		return cfg.Left
	case "Right":
		return cfg.Right
	}
	return ""
}

// BuildBindings creates KeyBindings from config overrides with the WASD and
// D-pad defaults as fallback. Unknown or reserved override names are logged
// and ignored.
func BuildBindings(cfg storage.InputConfig) KeyBindings {
	b := KeyBindings{
		Keys:    make(map[focus.Direction]ebiten.Key),
		Gamepad: make(map[focus.Direction]ebiten.StandardGamepadButton),
	}

	for _, db := range directionBindings {
		name := db.DefaultKey
		if override := overrideFor(cfg, db.Name); override != "" {
			if k, ok := ParseKey(override); ok && !reservedKeys[k] {
				name = override
			} else {
				log.Printf("Warning: ignoring %s key binding %q", db.Name, override)
			}
		}
		if k, ok := ParseKey(name); ok {
			b.Keys[db.Dir] = k
		}
		if p, ok := ParsePad(db.DefaultPad); ok {
			b.Gamepad[db.Dir] = p
		}
	}

	return b
}

// KeyName returns the display name of the key bound to dir
func (b KeyBindings) KeyName(dir focus.Direction) string {
	if k, ok := b.Keys[dir]; ok {
		if name, ok := KeyToName(k); ok {
			return name
		}
	}
	return ""
}
