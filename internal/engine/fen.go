package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/chaichess-go/internal/chess"
	"github.com/lgbarn/chaichess-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// fenKinds maps upper case FEN letters to the moved kind. Unmoved tags are
// restored afterwards from the castling field and pawn ranks.
var fenKinds = map[byte]chess.Kind{
	'K': chess.King,
	'Q': chess.Queen,
	'R': chess.Rook,
	'B': chess.Bishop,
	'N': chess.Knight,
	'P': chess.Pawn,
}

// castlingRights lists the FEN castling letters with the king and rook
// squares they refer to.
var castlingRights = []struct {
	letter byte
	colour chess.Colour
	rook   chess.Square
}{
	{'K', chess.White, chess.MustSquare(0, 7)},
	{'Q', chess.White, chess.MustSquare(0, 0)},
	{'k', chess.Black, chess.MustSquare(7, 7)},
	{'q', chess.Black, chess.MustSquare(7, 0)},
}

// kingHome returns the square colour's king starts on.
func kingHome(colour chess.Colour) chess.Square {
	return chess.MustSquare(chess.HomeRow(colour), 4)
}

// pawnStartRow returns the row colour's pawns start on.
func pawnStartRow(colour chess.Colour) int {
	if colour == chess.White {
		return 1
	}
	return chess.BoardSize - 2
}

// ParseFEN builds a game state from a FEN string.
//
// Pawns on their starting rank are unmoved. Kings and rooks are unmoved
// only when a castling right covers them. The ply is derived from the
// fullmove number and side to move, and the event ply from the halfmove
// clock. An en-passant square becomes a record made on the previous ply.
// The halfmove and fullmove fields may be omitted.
func ParseFEN(fen string) (chess.GameState, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return chess.GameState{}, errors.Wrapf(errors.ErrInvalidFEN, "%q needs at least 4 fields", fen)
	}

	board := chess.NewBoard()
	if err := parsePiecePositions(&board, parts[0]); err != nil {
		return chess.GameState{}, err
	}

	var black bool
	switch parts[1] {
	case "w":
	case "b":
		black = true
	default:
		return chess.GameState{}, errors.Wrapf(errors.ErrInvalidFEN, "side to move %q", parts[1])
	}

	if err := parseCastling(&board, parts[2]); err != nil {
		return chess.GameState{}, err
	}

	halfmove, fullmove := 0, 1
	if len(parts) > 4 {
		n, err := strconv.Atoi(parts[4])
		if err != nil || n < 0 {
			return chess.GameState{}, errors.Wrapf(errors.ErrInvalidFEN, "halfmove clock %q", parts[4])
		}
		halfmove = n
	}
	if len(parts) > 5 {
		n, err := strconv.Atoi(parts[5])
		if err != nil || n < 1 {
			return chess.GameState{}, errors.Wrapf(errors.ErrInvalidFEN, "fullmove number %q", parts[5])
		}
		fullmove = n
	}

	ply := 2 * (fullmove - 1)
	if black {
		ply++
	}

	if parts[3] != "-" {
		skipped, err := chess.ParseSquare(parts[3])
		if err != nil {
			return chess.GameState{}, errors.Wrapf(errors.ErrInvalidFEN, "en passant %q", parts[3])
		}
		// The double-stepping pawn stands one row past the skipped square,
		// seen from the side that just moved.
		target := skipped + chess.BoardSize
		if black {
			if skipped.Row() != 2 {
				return chess.GameState{}, errors.Wrapf(errors.ErrInvalidFEN, "en passant %q on wrong rank", parts[3])
			}
		} else {
			if skipped.Row() != 5 {
				return chess.GameState{}, errors.Wrapf(errors.ErrInvalidFEN, "en passant %q on wrong rank", parts[3])
			}
			target = skipped - chess.BoardSize
		}
		board.EnPassant = chess.EnPassant{Ply: ply - 1, Skipped: skipped, Target: target}
	}

	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if n := board.CountKings(colour); n != 1 {
			return chess.GameState{}, errors.Wrapf(errors.ErrInvalidFEN, "%d %v kings", n, colour)
		}
	}

	// A halfmove clock older than the game is clamped to the first ply.
	lastEvent := ply - halfmove
	if lastEvent < 0 {
		lastEvent = 0
	}
	return chess.GameState{Board: board, Ply: ply, LastEventPly: lastEvent}, nil
}

// MustParseFEN is like ParseFEN but panics on error.
func MustParseFEN(fen string) chess.GameState {
	state, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return state
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.BoardState, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != chess.BoardSize {
		return errors.Wrapf(errors.ErrInvalidFEN, "%d ranks in %q", len(ranks), placement)
	}

	for i, rank := range ranks {
		row := chess.BoardSize - 1 - i
		col := 0
		for j := 0; j < len(rank); j++ {
			c := rank[j]
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			kind, ok := fenKinds[byte(unicode.ToUpper(rune(c)))]
			if !ok {
				return errors.Wrapf(errors.ErrInvalidFEN, "piece %q", c)
			}
			sq, ok := chess.SquareAt(row, col)
			if !ok {
				return errors.Wrapf(errors.ErrInvalidFEN, "rank %q overflows", rank)
			}
			colour := chess.White
			if unicode.IsLower(rune(c)) {
				colour = chess.Black
			}
			if kind == chess.Pawn && row == pawnStartRow(colour) {
				kind = chess.UnmovedPawn
			}
			board.Set(sq, chess.Piece{Kind: kind, Colour: colour})
			col++
		}
		if col != chess.BoardSize {
			return errors.Wrapf(errors.ErrInvalidFEN, "rank %q has %d files", rank, col)
		}
	}
	return nil
}

// parseCastling restores the unmoved tags of kings and rooks named by the
// castling field. Rights whose pieces are not on their home squares are ignored.
func parseCastling(board *chess.BoardState, field string) error {
	if field == "-" {
		return nil
	}
	for i := 0; i < len(field); i++ {
		found := false
		for _, right := range castlingRights {
			if right.letter != field[i] {
				continue
			}
			found = true
			king, rook := board.Get(kingHome(right.colour)), board.Get(right.rook)
			if king != (chess.Piece{Kind: chess.King, Colour: right.colour}) &&
				king != (chess.Piece{Kind: chess.UnmovedKing, Colour: right.colour}) {
				break
			}
			if rook != (chess.Piece{Kind: chess.Rook, Colour: right.colour}) &&
				rook != (chess.Piece{Kind: chess.UnmovedRook, Colour: right.colour}) {
				break
			}
			board.Set(kingHome(right.colour), chess.Piece{Kind: chess.UnmovedKing, Colour: right.colour})
			board.Set(right.rook, chess.Piece{Kind: chess.UnmovedRook, Colour: right.colour})
		}
		if !found {
			return errors.Wrapf(errors.ErrInvalidFEN, "castling right %q", field[i])
		}
	}
	return nil
}

// FEN returns the FEN string for state. The castling field lists the rights
// whose king and rook are both unmoved on their home squares, and the en
// passant field is set only when a capture is possible in principle on this ply.
func FEN(state chess.GameState) string {
	var sb strings.Builder
	board := &state.Board

	for row := chess.BoardSize - 1; row >= 0; row-- {
		empty := 0
		for col := 0; col < chess.BoardSize; col++ {
			piece := board.Get(chess.MustSquare(row, col))
			if piece.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pieceLetter(piece))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if row > 0 {
			sb.WriteByte('/')
		}
	}

	if state.Turn() == chess.White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	castling := 0
	for _, right := range castlingRights {
		if board.Get(kingHome(right.colour)) == (chess.Piece{Kind: chess.UnmovedKing, Colour: right.colour}) &&
			board.Get(right.rook) == (chess.Piece{Kind: chess.UnmovedRook, Colour: right.colour}) {
			sb.WriteByte(right.letter)
			castling++
		}
	}
	if castling == 0 {
		sb.WriteByte('-')
	}

	sb.WriteByte(' ')
	if board.EnPassant.ValidAt(state.Ply) {
		sb.WriteString(board.EnPassant.Skipped.String())
	} else {
		sb.WriteByte('-')
	}

	fmt.Fprintf(&sb, " %d %d", state.PliesSinceEvent(), state.MoveNumber())
	return sb.String()
}

// pieceLetter returns the FEN letter: upper case for White, lower case for Black.
func pieceLetter(piece chess.Piece) byte {
	letter := piece.Kind.Letter()
	if piece.Colour == chess.Black {
		letter = byte(unicode.ToLower(rune(letter)))
	}
	return letter
}
