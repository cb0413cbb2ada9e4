package chess

import (
	"fmt"

	"github.com/lgbarn/chaichess-go/internal/errors"
)

// Square is a board index 0-63 computed as row*8+col.
// Row 0 is White's home rank and col 0 is the a-file.
type Square int

// NoSquare marks an absent square, e.g. an en-passant record that was never set.
const NoSquare Square = -1

// SquareAt returns the square at (row, col). The second result is false
// when either coordinate is off the board; the value never wraps.
func SquareAt(row, col int) (Square, bool) {
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return NoSquare, false
	}
	return Square(row*BoardSize + col), true
}

// MustSquare is like SquareAt but panics when the coordinates are off the board.
// Use only with constant coordinates.
func MustSquare(row, col int) Square {
	sq, ok := SquareAt(row, col)
	if !ok {
		panic(fmt.Sprintf("chess: square (%d,%d) is off the board", row, col))
	}
	return sq
}

// Valid reports whether s is a board square.
func (s Square) Valid() bool {
	return s >= 0 && s < NumSquares
}

// Row returns the rank index (0 = White's home rank).
func (s Square) Row() int { return int(s) / BoardSize }

// Col returns the file index (0 = a-file).
func (s Square) Col() int { return int(s) % BoardSize }

// String returns the algebraic name of the square, e.g. "e4".
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+s.Col(), s.Row()+1)
}

// ParseSquare parses an algebraic square name such as "e4".
func ParseSquare(name string) (Square, error) {
	if len(name) != 2 {
		return NoSquare, errors.Wrapf(errors.ErrInvalidSquare, "square %q", name)
	}
	sq, ok := SquareAt(int(name[1]-'1'), int(name[0]-'a'))
	if !ok {
		return NoSquare, errors.Wrapf(errors.ErrInvalidSquare, "square %q", name)
	}
	return sq, nil
}

// Direction is a (row, col) offset applied once per step along a ray.
type Direction struct {
	DRow int
	DCol int
}

// Step is a square reached along a ray and its distance from the origin.
type Step struct {
	Square   Square
	Distance int
}

// Direction table. The slices below are views into it so that each
// movement family shares the same offsets.
var directions = [16]Direction{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1}, // straight
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1}, // diagonal
	{2, 1}, {1, 2}, {-1, 2}, {-2, 1}, {-2, -1}, {-1, -2}, {1, -2}, {2, -1}, // knight
}

var (
	Straight            = directions[0:4]
	Diagonal            = directions[4:8]
	StraightAndDiagonal = directions[0:8]
	KnightLeaps         = directions[8:16]

	whitePawnPush     = directions[0:1]
	blackPawnPush     = directions[1:2]
	whitePawnCaptures = directions[4:6]
	blackPawnCaptures = directions[6:8]
)

// PawnPush returns the forward direction of colour's pawns.
func PawnPush(colour Colour) []Direction {
	if colour == White {
		return whitePawnPush
	}
	return blackPawnPush
}

// PawnCaptures returns the two capture directions of colour's pawns.
func PawnCaptures(colour Colour) []Direction {
	if colour == White {
		return whitePawnCaptures
	}
	return blackPawnCaptures
}

// PromotionRow returns the row on which colour's pawns promote.
func PromotionRow(colour Colour) int {
	if colour == White {
		return BoardSize - 1
	}
	return 0
}

// HomeRow returns colour's back rank.
func HomeRow(colour Colour) int {
	if colour == White {
		return 0
	}
	return BoardSize - 1
}

// Steps returns the squares along dir from origin, nearest first, up to
// maxSteps of them. The walk stops at the board edge.
func Steps(origin Square, dir Direction, maxSteps int) []Step {
	row, col := origin.Row(), origin.Col()
	steps := make([]Step, 0, maxSteps)
	for n := 1; n <= maxSteps; n++ {
		sq, ok := SquareAt(row+dir.DRow*n, col+dir.DCol*n)
		if !ok {
			break
		}
		steps = append(steps, Step{Square: sq, Distance: n})
	}
	return steps
}
