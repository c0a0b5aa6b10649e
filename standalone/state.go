package standalone

// AppState represents the current state of the application
type AppState int

const (
	// StateBrowsing is the tile grid with focus navigation
	StateBrowsing AppState = iota
	// StateHelp shows the key binding panel over the grid
	StateHelp
	// StateError shows a startup error (corrupted config or catalog)
	StateError
)

// String returns the string representation of the state
func (s AppState) String() string {
	switch s {
	case StateBrowsing:
		return "Browsing"
	case StateHelp:
		return "Help"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}
