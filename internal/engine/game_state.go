package engine

import "github.com/lgbarn/chaichess-go/internal/chess"

// Status summarises whether a game can continue.
type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	FiftyMoveDraw
)

var statusNames = [...]string{"ongoing", "checkmate", "stalemate", "fiftyMoveDraw"}

// String returns the lower camel case name used in JSON payloads.
func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// IsTerminal reports whether no further moves can be played.
func (s Status) IsTerminal() bool {
	return s != Ongoing
}

// GameStatus classifies state. The fifty-move rule is checked before move
// generation, so a drawn position reports FiftyMoveDraw even when mate is on
// the board.
func GameStatus(state chess.GameState) Status {
	if state.FiftyMoveRuleDraw() {
		return FiftyMoveDraw
	}
	if HasLegalMoves(state) {
		return Ongoing
	}
	if InCheck(state) {
		return Checkmate
	}
	return Stalemate
}

// IsCheckmate returns true if the side to move is in check with no legal move.
func IsCheckmate(state chess.GameState) bool {
	return InCheck(state) && !HasLegalMoves(state)
}

// IsStalemate returns true if the side to move is not in check and has no legal move.
func IsStalemate(state chess.GameState) bool {
	return !InCheck(state) && !HasLegalMoves(state)
}
