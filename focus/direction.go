package focus

// Direction is a navigation command
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// Horizontal reports whether d moves within a lane
func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}
