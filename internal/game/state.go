// Package game provides the floor cache, configuration and the interactive
// game loop.
package game

// State represents the current game state.
type State int

const (
	// StateExplore is normal play on a floor.
	StateExplore State = iota
	// StateSurfaced is entered when the player climbs out above floor 1.
	StateSurfaced
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateSurfaced:
		return "surfaced"
	default:
		return "unknown"
	}
}
