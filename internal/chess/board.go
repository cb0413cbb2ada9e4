package chess

// EnPassant remembers the most recent pawn double step. It is only
// meaningful on the ply directly after the one recorded in Ply.
type EnPassant struct {
	// Ply is the ply on which the double step was played.
	Ply int
	// Skipped is the square the pawn passed over; a capturing pawn lands here.
	Skipped Square
	// Target is the square the double-stepping pawn landed on.
	Target Square
}

// NoEnPassant is the record of a board on which no double step happened.
var NoEnPassant = EnPassant{Ply: 0, Skipped: NoSquare, Target: NoSquare}

// ValidAt reports whether the record can be used by the side moving at ply.
func (e EnPassant) ValidAt(ply int) bool {
	return e.Skipped != NoSquare && ply == e.Ply+1
}

// BoardState is a snapshot of piece placement plus the en-passant record.
// It is a plain value; assignment copies it.
type BoardState struct {
	Squares   [NumSquares]Piece
	EnPassant EnPassant
}

// PlacedPiece is a piece together with the square it stands on.
type PlacedPiece struct {
	Piece  Piece
	Square Square
}

// NewBoard creates an empty board.
func NewBoard() BoardState {
	return BoardState{EnPassant: NoEnPassant}
}

// backRank is the initial piece order from the a-file to the h-file.
var backRank = [BoardSize]Kind{
	UnmovedRook, Knight, Bishop, Queen, UnmovedKing, Bishop, Knight, UnmovedRook,
}

// NewInitialBoard creates a board with the standard starting position.
// Kings, rooks and pawns carry their unmoved tags.
func NewInitialBoard() BoardState {
	b := NewBoard()
	for col := 0; col < BoardSize; col++ {
		b.Squares[MustSquare(0, col)] = W(backRank[col])
		b.Squares[MustSquare(1, col)] = W(UnmovedPawn)
		b.Squares[MustSquare(6, col)] = B(UnmovedPawn)
		b.Squares[MustSquare(7, col)] = B(backRank[col])
	}
	return b
}

// Get returns the piece on sq. Off-board squares read as empty.
func (b *BoardState) Get(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return b.Squares[sq]
}

// Set places a piece on sq. Off-board squares are ignored.
func (b *BoardState) Set(sq Square, piece Piece) {
	if sq.Valid() {
		b.Squares[sq] = piece
	}
}

// Clear empties sq.
func (b *BoardState) Clear(sq Square) {
	b.Set(sq, NoPiece)
}

// IsEmpty reports whether sq holds no piece.
func (b *BoardState) IsEmpty(sq Square) bool {
	return b.Get(sq).IsEmpty()
}

// PiecesOf returns colour's pieces in square order.
func (b *BoardState) PiecesOf(colour Colour) []PlacedPiece {
	pieces := make([]PlacedPiece, 0, 16)
	for sq, piece := range b.Squares {
		if !piece.IsEmpty() && piece.Colour == colour {
			pieces = append(pieces, PlacedPiece{Piece: piece, Square: Square(sq)})
		}
	}
	return pieces
}

// Pieces returns every piece on the board in square order.
func (b *BoardState) Pieces() []PlacedPiece {
	pieces := make([]PlacedPiece, 0, 32)
	for sq, piece := range b.Squares {
		if !piece.IsEmpty() {
			pieces = append(pieces, PlacedPiece{Piece: piece, Square: Square(sq)})
		}
	}
	return pieces
}

// KingSquare finds colour's king. The second result is false if there is none.
func (b *BoardState) KingSquare(colour Colour) (Square, bool) {
	for sq, piece := range b.Squares {
		if piece.Colour == colour && piece.Kind.IsKing() {
			return Square(sq), true
		}
	}
	return NoSquare, false
}

// CountKings returns the number of kings colour has on the board.
func (b *BoardState) CountKings(colour Colour) int {
	n := 0
	for _, piece := range b.Squares {
		if piece.Colour == colour && piece.Kind.IsKing() {
			n++
		}
	}
	return n
}
