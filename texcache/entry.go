package texcache

// State is the load state of an entry
type State int

const (
	StatePlaceholder State = iota // Load registered, not finished
	StateLoaded                   // Real image applied
	StateFailed                   // Load failed; placeholder kept for good
)

func (s State) String() string {
	switch s {
	case StatePlaceholder:
		return "placeholder"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Entry is the shared record for one key. Holders only read it; the owning
// Cache is the only writer.
type Entry struct {
	key     string
	texture Texture
	width   int
	height  int
	state   State
}

// Key returns the asset key this entry was created for
func (e *Entry) Key() string {
	return e.key
}

// Texture returns the entry's texture. It is never nil and stays the same
// value across the placeholder-to-image transition.
func (e *Entry) Texture() Texture {
	return e.texture
}

// State returns the current load state
func (e *Entry) State() State {
	return e.state
}

// Loaded reports whether the real image has been applied
func (e *Entry) Loaded() bool {
	return e.state == StateLoaded
}

// NaturalSize returns the source image dimensions. ok is false until the
// image has loaded with a non-zero size.
func (e *Entry) NaturalSize() (width, height int, ok bool) {
	if e.state != StateLoaded || e.width <= 0 || e.height <= 0 {
		return 0, 0, false
	}
	return e.width, e.height, true
}
