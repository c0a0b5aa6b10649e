package style

import "time"

// Base constants (unexported) are logical-pixel reference values.
// The corresponding exported vars are recalculated by SetDPIScale.
const (
	baseDefaultPadding = 16
	baseDefaultSpacing = 16
	baseSmallSpacing   = 8
	baseTinySpacing    = 4

	// Overlay (notification/help shared)
	baseOverlayPadding = 12
	baseOverlayMargin  = 8

	baseHelpPanelMinWidth = 320

	// Font-dependent base values (at 14pt, scale = 1.0)
	baseHUDBarHeight     = 36
	baseMaxLargeFontSize = 48
)

// Layout vars, DPI-scaled at runtime via SetDPIScale
var (
	DefaultPadding = baseDefaultPadding
	DefaultSpacing = baseDefaultSpacing
	SmallSpacing   = baseSmallSpacing
	TinySpacing    = baseTinySpacing

	OverlayPadding = baseOverlayPadding
	OverlayMargin  = baseOverlayMargin

	HelpPanelMinWidth = baseHelpPanelMinWidth
)

// Font-dependent layout value (updated by ApplyFontSize)
var HUDBarHeight = baseHUDBarHeight

// Navigation repeat timing for held directions
const (
	NavInitialDelay  = 400 * time.Millisecond // Delay before repeat starts
	NavStartInterval = 200 * time.Millisecond // Initial repeat interval
	NavMinInterval   = 25 * time.Millisecond  // Fastest repeat (cap)
	NavAcceleration  = 20 * time.Millisecond  // Speed increase per repeat
)

// Timing constants
const (
	HTTPTimeout         = 10 * time.Second
	NotificationDefault = 3 * time.Second
	NotificationShort   = 1 * time.Second
)

// Mouse wheel notches needed before a wheel move counts as one step
const (
	ScrollWheelSensitivity = 0.5
)
