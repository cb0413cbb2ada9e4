package engine

import (
	"github.com/lgbarn/chaichess-go/internal/chess"
	"github.com/lgbarn/chaichess-go/internal/errors"
)

// PseudoLegalMoves returns every successor for the side to move without
// checking whether the mover's king is left attacked.
func PseudoLegalMoves(state chess.GameState) []Move {
	moves := make([]Move, 0, 48)
	for _, placed := range state.Board.PiecesOf(state.Turn()) {
		moves = pieceMoves(state, placed, moves)
	}
	return moves
}

// LegalMoveList returns the legal successors for the side to move with the
// squares each move came from and went to.
// The fifty-move rule is not consulted; callers check it first.
func LegalMoveList(state chess.GameState) []Move {
	return filterLegal(PseudoLegalMoves(state), state.Turn())
}

// LegalMoves returns every legal successor state for the side to move.
func LegalMoves(state chess.GameState) []chess.GameState {
	moves := LegalMoveList(state)
	states := make([]chess.GameState, len(moves))
	for i := range moves {
		states[i] = moves[i].State
	}
	return states
}

// LegalMovesForPiece returns the legal moves of the piece on sq.
// It fails with a StateError wrapping ErrInvalidSquare, ErrEmptySquare or
// ErrNotYourPiece when there is nothing the side to move may move there.
func LegalMovesForPiece(state chess.GameState, sq chess.Square) ([]Move, error) {
	if !sq.Valid() {
		return nil, &errors.StateError{Err: errors.ErrInvalidSquare, Ply: state.Ply, Square: sq.String()}
	}
	piece := state.Board.Get(sq)
	if piece.IsEmpty() {
		return nil, &errors.StateError{Err: errors.ErrEmptySquare, Ply: state.Ply, Square: sq.String()}
	}
	if piece.Colour != state.Turn() {
		return nil, &errors.StateError{
			Err:    errors.ErrNotYourPiece,
			Ply:    state.Ply,
			Square: sq.String(),
			Detail: piece.String(),
		}
	}

	moves := pieceMoves(state, chess.PlacedPiece{Piece: piece, Square: sq}, nil)
	return filterLegal(moves, piece.Colour), nil
}

// HasLegalMoves reports whether the side to move has at least one legal move.
func HasLegalMoves(state chess.GameState) bool {
	mover := state.Turn()
	for _, placed := range state.Board.PiecesOf(mover) {
		for _, m := range pieceMoves(state, placed, nil) {
			if !KingInCheck(&m.State.Board, mover) {
				return true
			}
		}
	}
	return false
}

// filterLegal keeps the moves after which mover's king is not attacked.
// The slice is filtered in place.
func filterLegal(moves []Move, mover chess.Colour) []Move {
	legal := moves[:0]
	for _, m := range moves {
		if !KingInCheck(&m.State.Board, mover) {
			legal = append(legal, m)
		}
	}
	return legal
}

// ApplyMove plays the piece on from to the destination and returns the
// resulting state. A pawn reaching its last rank becomes promotion, or a
// queen when promotion is chess.Empty. Moves not in the legal move list,
// including a promotion named for a move that does not promote, fail with a
// StateError wrapping ErrIllegalMove.
func ApplyMove(state chess.GameState, from, to chess.Square, promotion chess.Kind) (chess.GameState, error) {
	moves, err := LegalMovesForPiece(state, from)
	if err != nil {
		return chess.GameState{}, err
	}
	promoteTo := promotion
	if promoteTo == chess.Empty {
		promoteTo = chess.Queen
	}
	for _, m := range moves {
		if m.Destination != to {
			continue
		}
		if m.Promotion == chess.Empty && promotion == chess.Empty {
			return m.State, nil
		}
		if m.Promotion != chess.Empty && m.Promotion == promoteTo {
			return m.State, nil
		}
	}
	return chess.GameState{}, &errors.StateError{
		Err:    errors.ErrIllegalMove,
		Ply:    state.Ply,
		Square: from.String(),
		Detail: "to " + to.String(),
	}
}
