// Package chess provides core chess types and board primitives.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Sign returns +1 for White, -1 for Black.
func (c Colour) Sign() int {
	if c == White {
		return 1
	}
	return -1
}

// Kind represents a piece type. Kings, rooks and pawns carry an extra
// "unmoved" variant that is dropped the first time the piece moves.
type Kind int

const (
	Empty Kind = iota // No piece
	UnmovedKing
	King
	Queen
	UnmovedRook
	Rook
	Bishop
	Knight
	UnmovedPawn
	Pawn
	NumKinds
)

var kindNames = [...]string{
	"Empty", "UnmovedKing", "King", "Queen", "UnmovedRook", "Rook",
	"Bishop", "Knight", "UnmovedPawn", "Pawn",
}

// String returns the string representation of a kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Moved returns the kind a piece has after it moves. The demotion is one way:
// a moved kind never maps back to its unmoved variant.
func (k Kind) Moved() Kind {
	switch k {
	case UnmovedKing:
		return King
	case UnmovedRook:
		return Rook
	case UnmovedPawn:
		return Pawn
	}
	return k
}

// IsUnmoved reports whether k is one of the unmoved variants.
func (k Kind) IsUnmoved() bool {
	return k == UnmovedKing || k == UnmovedRook || k == UnmovedPawn
}

// IsKing reports whether k is a king of either variant.
func (k Kind) IsKing() bool { return k == King || k == UnmovedKing }

// IsRook reports whether k is a rook of either variant.
func (k Kind) IsRook() bool { return k == Rook || k == UnmovedRook }

// IsPawn reports whether k is a pawn of either variant.
func (k Kind) IsPawn() bool { return k == Pawn || k == UnmovedPawn }

// Letter returns the single letter representation of a kind (uppercase).
func (k Kind) Letter() byte {
	switch k.Moved() {
	case King:
		return 'K'
	case Queen:
		return 'Q'
	case Rook:
		return 'R'
	case Bishop:
		return 'B'
	case Knight:
		return 'N'
	case Pawn:
		return 'P'
	}
	return '?'
}

// PromotionKinds lists the kinds a pawn can promote to, in generation order.
var PromotionKinds = [4]Kind{Queen, Rook, Bishop, Knight}

// Piece is a kind together with the colour that owns it.
// The zero value is an empty square.
type Piece struct {
	Kind   Kind
	Colour Colour
}

// NoPiece is the empty square value.
var NoPiece = Piece{}

// W creates a white piece.
func W(kind Kind) Piece {
	return Piece{Kind: kind, Colour: White}
}

// B creates a black piece.
func B(kind Kind) Piece {
	return Piece{Kind: kind, Colour: Black}
}

// IsEmpty reports whether the piece value represents an empty square.
func (p Piece) IsEmpty() bool {
	return p.Kind == Empty
}

// Moved returns the piece with its unmoved tag cleared.
func (p Piece) Moved() Piece {
	return Piece{Kind: p.Kind.Moved(), Colour: p.Colour}
}

// String returns e.g. "White Knight" or "Empty".
func (p Piece) String() string {
	if p.IsEmpty() {
		return "Empty"
	}
	return p.Colour.String() + " " + p.Kind.String()
}

// Constants for board dimensions.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize
)

// FiftyMovePlies is the number of plies without a capture or pawn move
// after which the game is drawn.
const FiftyMovePlies = 150
