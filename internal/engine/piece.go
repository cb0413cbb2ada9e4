// Package engine implements the chess rules: move generation, attack
// detection, legality filtering, terminal-state detection and FEN I/O.
// Every operation takes a chess.GameState by value and returns fresh values.
package engine

import "github.com/lgbarn/chaichess-go/internal/chess"

// maxRay is the longest ray a sliding piece can travel.
const maxRay = chess.BoardSize - 1

// Move is a successor state together with the squares the moving piece
// left and landed on. For castling the squares are the king's.
type Move struct {
	From        chess.Square
	Destination chess.Square
	// Promotion is the kind a pawn promoted to, or chess.Empty.
	Promotion chess.Kind
	State     chess.GameState
}

// FarMoves walks each direction from origin for up to maxSteps squares.
// Empty squares are collected when allowEmpty is set. The walk in a
// direction ends at the first occupied square, which is collected only when
// allowCapture is set and the occupant belongs to the opponent of mover.
func FarMoves(board *chess.BoardState, origin chess.Square, dirs []chess.Direction,
	maxSteps int, allowEmpty, allowCapture bool, mover chess.Colour) []chess.Step {
	steps := make([]chess.Step, 0, len(dirs)*2)
	for _, dir := range dirs {
		for _, st := range chess.Steps(origin, dir, maxSteps) {
			occupant := board.Get(st.Square)
			if occupant.IsEmpty() {
				if allowEmpty {
					steps = append(steps, st)
				}
				continue
			}
			if allowCapture && occupant.Colour != mover {
				steps = append(steps, st)
			}
			break
		}
	}
	return steps
}

// moveTo moves the piece on from to the destination and advances the ply.
// The piece loses its unmoved tag. A capture resets the event ply.
func moveTo(state chess.GameState, from, to chess.Square) chess.GameState {
	next := state
	piece := next.Board.Get(from)
	captured := !next.Board.IsEmpty(to)

	next.Board.Clear(from)
	next.Board.Set(to, piece.Moved())
	next.Ply = state.Ply + 1
	if captured {
		next.LastEventPly = next.Ply
	}
	return next
}

// stepMoves turns reachable squares into successors.
func stepMoves(state chess.GameState, from chess.Square, steps []chess.Step, moves []Move) []Move {
	for _, st := range steps {
		moves = append(moves, Move{
			From:        from,
			Destination: st.Square,
			State:       moveTo(state, from, st.Square),
		})
	}
	return moves
}

// pieceMoves returns the pseudo-legal successors for the piece on placed.Square.
// The resulting positions may leave the mover's own king in check.
func pieceMoves(state chess.GameState, placed chess.PlacedPiece, moves []Move) []Move {
	board := &state.Board
	from, mover := placed.Square, placed.Piece.Colour

	switch placed.Piece.Kind {
	case chess.UnmovedKing:
		moves = stepMoves(state, from, FarMoves(board, from, chess.StraightAndDiagonal, 1, true, true, mover), moves)
		moves = castlingMoves(state, from, moves)
	case chess.King:
		moves = stepMoves(state, from, FarMoves(board, from, chess.StraightAndDiagonal, 1, true, true, mover), moves)
	case chess.Queen:
		moves = stepMoves(state, from, FarMoves(board, from, chess.StraightAndDiagonal, maxRay, true, true, mover), moves)
	case chess.UnmovedRook, chess.Rook:
		moves = stepMoves(state, from, FarMoves(board, from, chess.Straight, maxRay, true, true, mover), moves)
	case chess.Bishop:
		moves = stepMoves(state, from, FarMoves(board, from, chess.Diagonal, maxRay, true, true, mover), moves)
	case chess.Knight:
		moves = stepMoves(state, from, FarMoves(board, from, chess.KnightLeaps, 1, true, true, mover), moves)
	case chess.UnmovedPawn, chess.Pawn:
		moves = pawnMoves(state, placed, moves)
	}
	return moves
}
