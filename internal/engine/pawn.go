package engine

import "github.com/lgbarn/chaichess-go/internal/chess"

// pawnMoves generates pushes, the double step of an unmoved pawn, diagonal
// captures, en passant and promotions. Every pawn move resets the event ply.
func pawnMoves(state chess.GameState, placed chess.PlacedPiece, moves []Move) []Move {
	board := &state.Board
	from, mover := placed.Square, placed.Piece.Colour

	maxPush := 1
	if placed.Piece.Kind == chess.UnmovedPawn {
		maxPush = 2
	}

	for _, st := range FarMoves(board, from, chess.PawnPush(mover), maxPush, true, false, mover) {
		next := pawnStep(state, from, st.Square)
		if st.Distance == 2 {
			next.Board.EnPassant = chess.EnPassant{
				Ply:     state.Ply,
				Skipped: midpoint(from, st.Square),
				Target:  st.Square,
			}
		}
		moves = appendPromotions(moves, from, st.Square, next, mover)
	}

	for _, st := range FarMoves(board, from, chess.PawnCaptures(mover), 1, false, true, mover) {
		moves = appendPromotions(moves, from, st.Square, pawnStep(state, from, st.Square), mover)
	}

	if ep := board.EnPassant; ep.ValidAt(state.Ply) {
		for _, st := range FarMoves(board, from, chess.PawnCaptures(mover), 1, true, false, mover) {
			if st.Square != ep.Skipped {
				continue
			}
			next := pawnStep(state, from, st.Square)
			next.Board.Clear(ep.Target)
			moves = append(moves, Move{From: from, Destination: st.Square, State: next})
		}
	}
	return moves
}

// pawnStep moves a pawn and records the irreversible event.
func pawnStep(state chess.GameState, from, to chess.Square) chess.GameState {
	next := moveTo(state, from, to)
	next.LastEventPly = next.Ply
	return next
}

// appendPromotions appends next as is, or once per promotion kind when the
// pawn reached its last rank.
func appendPromotions(moves []Move, from, to chess.Square, next chess.GameState, mover chess.Colour) []Move {
	if to.Row() != chess.PromotionRow(mover) {
		return append(moves, Move{From: from, Destination: to, State: next})
	}
	for _, kind := range chess.PromotionKinds {
		promoted := next
		promoted.Board.Set(to, chess.Piece{Kind: kind, Colour: mover})
		moves = append(moves, Move{From: from, Destination: to, Promotion: kind, State: promoted})
	}
	return moves
}
