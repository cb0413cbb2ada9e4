package search

import "github.com/lgbarn/chaichess-go/internal/chess"

// Heuristic scores a position from White's point of view: positive values
// favour White, negative values favour Black.
type Heuristic func(state chess.GameState) int

// pieceValues is the material value of each kind. Unmoved variants are
// worth the same as their moved counterparts.
var pieceValues = [chess.NumKinds]int{
	chess.UnmovedKing: 0,
	chess.King:        0,
	chess.Queen:       90,
	chess.UnmovedRook: 50,
	chess.Rook:        50,
	chess.Bishop:      30,
	chess.Knight:      30,
	chess.UnmovedPawn: 10,
	chess.Pawn:        10,
}

// PieceValue returns the material value of kind.
func PieceValue(kind chess.Kind) int {
	if kind < 0 || kind >= chess.NumKinds {
		return 0
	}
	return pieceValues[kind]
}

// WeightedPieceCount is the signed material sum of the board.
func WeightedPieceCount(state chess.GameState) int {
	sum := 0
	for _, piece := range state.Board.Squares {
		if piece.IsEmpty() {
			continue
		}
		sum += piece.Colour.Sign() * pieceValues[piece.Kind]
	}
	return sum
}
