package ui

// View represents the current active view
type View int

const (
	ViewBoard View = iota
	ViewActivity
)

// String returns the display name for a view
func (v View) String() string {
	switch v {
	case ViewBoard:
		return "Board"
	case ViewActivity:
		return "Activity"
	default:
		return "Unknown"
	}
}

// SavedMsg indicates the board state was written to disk
type SavedMsg struct {
	Err error
}
