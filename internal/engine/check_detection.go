package engine

import (
	"github.com/lgbarn/chaichess-go/internal/chess"
	"github.com/lgbarn/chaichess-go/internal/errors"
)

// SquareAttacked reports whether any piece of defender's opponent attacks sq.
// It looks outward from sq: along straight rays for rooks and queens, along
// diagonals for bishops and queens, one step in any direction for the king,
// knight leaps for knights, and the defender's own pawn-capture directions
// for enemy pawns.
func SquareAttacked(board *chess.BoardState, sq chess.Square, defender chess.Colour) bool {
	for _, st := range FarMoves(board, sq, chess.Straight, maxRay, false, true, defender) {
		kind := board.Get(st.Square).Kind
		if kind == chess.Queen || kind.IsRook() || (kind.IsKing() && st.Distance == 1) {
			return true
		}
	}

	for _, st := range FarMoves(board, sq, chess.Diagonal, maxRay, false, true, defender) {
		kind := board.Get(st.Square).Kind
		if kind == chess.Queen || kind == chess.Bishop || (kind.IsKing() && st.Distance == 1) {
			return true
		}
	}

	for _, st := range FarMoves(board, sq, chess.KnightLeaps, 1, false, true, defender) {
		if board.Get(st.Square).Kind == chess.Knight {
			return true
		}
	}

	// An enemy pawn attacks sq from the squares a defending pawn on sq would capture on.
	for _, st := range FarMoves(board, sq, chess.PawnCaptures(defender), 1, false, true, defender) {
		if board.Get(st.Square).Kind.IsPawn() {
			return true
		}
	}

	return false
}

// KingInCheck reports whether colour's king is attacked.
// A board without that king violates the state invariants and panics with
// an error wrapping ErrMissingKing.
func KingInCheck(board *chess.BoardState, colour chess.Colour) bool {
	sq, ok := board.KingSquare(colour)
	if !ok {
		panic(errors.Wrapf(errors.ErrMissingKing, "%v king", colour))
	}
	return SquareAttacked(board, sq, colour)
}

// InCheck reports whether the side to move is in check.
func InCheck(state chess.GameState) bool {
	return KingInCheck(&state.Board, state.Turn())
}
