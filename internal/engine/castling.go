package engine

import "github.com/lgbarn/chaichess-go/internal/chess"

// rookCols are the files of the two castling rooks: h-file (kingside)
// then a-file (queenside).
var rookCols = [2]int{chess.BoardSize - 1, 0}

// castlingMoves generates castling for the unmoved king on from. Castling
// requires an unmoved rook of the same colour on the king's row, only empty
// squares strictly between them, and no attack on the king's current,
// transit or landing square. The king moves two squares toward the rook and
// the rook lands on the square the king passed over.
func castlingMoves(state chess.GameState, from chess.Square, moves []Move) []Move {
	board := &state.Board
	king := board.Get(from)
	if king.Kind != chess.UnmovedKing {
		return moves
	}
	mover := king.Colour
	row, col := from.Row(), from.Col()

	for _, rookCol := range rookCols {
		// The landing square must lie strictly between king and rook.
		if abs(rookCol-col) < 3 {
			continue
		}
		rookSq := chess.MustSquare(row, rookCol)
		rook := board.Get(rookSq)
		if rook.Kind != chess.UnmovedRook || rook.Colour != mover {
			continue
		}

		dir := sign(rookCol - col)
		if !pathClear(board, row, col, rookCol, dir) {
			continue
		}

		transit := chess.MustSquare(row, col+dir)
		landing := chess.MustSquare(row, col+2*dir)
		if SquareAttacked(board, from, mover) ||
			SquareAttacked(board, transit, mover) ||
			SquareAttacked(board, landing, mover) {
			continue
		}

		next := state
		next.Board.Clear(from)
		next.Board.Clear(rookSq)
		next.Board.Set(landing, king.Moved())
		next.Board.Set(transit, rook.Moved())
		next.Ply = state.Ply + 1
		moves = append(moves, Move{From: from, Destination: landing, State: next})
	}
	return moves
}

// pathClear reports whether every square strictly between the two files on row is empty.
func pathClear(board *chess.BoardState, row, fromCol, toCol, dir int) bool {
	for c := fromCol + dir; c != toCol; c += dir {
		if !board.IsEmpty(chess.MustSquare(row, c)) {
			return false
		}
	}
	return true
}
