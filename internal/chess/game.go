package chess

// GameState is a board plus the ply counter and the ply of the last
// irreversible event. It is an immutable value: moves produce new values.
type GameState struct {
	Board BoardState

	// Ply counts half-moves from the start; even means White to move.
	Ply int

	// LastEventPly is the ply of the most recent capture or pawn move.
	LastEventPly int
}

// NewGame returns the standard starting state.
func NewGame() GameState {
	return GameState{
		Board:        NewInitialBoard(),
		Ply:          0,
		LastEventPly: 0,
	}
}

// Turn returns the colour to move.
func (g GameState) Turn() Colour {
	if g.Ply%2 == 0 {
		return White
	}
	return Black
}

// PliesSinceEvent returns the number of plies since the last capture or pawn move.
func (g GameState) PliesSinceEvent() int {
	return g.Ply - g.LastEventPly
}

// FiftyMoveRuleDraw reports whether the game is drawn because FiftyMovePlies
// plies passed without a capture or pawn move.
func (g GameState) FiftyMoveRuleDraw() bool {
	return g.PliesSinceEvent() >= FiftyMovePlies
}

// MoveNumber returns the full move number (starting at 1).
func (g GameState) MoveNumber() int {
	return g.Ply/2 + 1
}
