// Package codec converts game states to and from their JSON wire form.
//
// The encoding keeps every field of a chess.GameState, including the unmoved
// variants of kings, rooks and pawns and the en-passant record, so a decoded
// state is identical to the encoded one. Encoded states also carry read-only
// annotations (turn, status, check, FEN) that decoding ignores.
package codec

import (
	"encoding/json"

	"github.com/lgbarn/chaichess-go/internal/chess"
	"github.com/lgbarn/chaichess-go/internal/engine"
	"github.com/lgbarn/chaichess-go/internal/errors"
)

// Piece is the wire form of a piece.
type Piece struct {
	Kind   string `json:"kind"`
	Colour string `json:"colour"`
}

// EnPassant is the wire form of the en-passant record. Squares are board
// indices, -1 for none.
type EnPassant struct {
	Ply     int `json:"ply"`
	Skipped int `json:"skipped"`
	Target  int `json:"target"`
}

// Board is the wire form of a board: 64 entries indexed by square, null for empty.
type Board struct {
	Squares   []*Piece  `json:"squares"`
	EnPassant EnPassant `json:"enPassant"`
}

// State is the wire form of a game state.
type State struct {
	Board        Board `json:"board"`
	Ply          int   `json:"ply"`
	LastEventPly int   `json:"lastEventPly"`

	// Annotations, written on encode and ignored on decode.
	Turn    string `json:"turn,omitempty"`
	Status  string `json:"status,omitempty"`
	InCheck bool   `json:"inCheck"`
	FEN     string `json:"fen,omitempty"`
}

// Move is the wire form of a legal move of one piece.
type Move struct {
	From        int    `json:"from"`
	Destination int    `json:"destination"`
	Square      string `json:"square"`
	Promotion   string `json:"promotion,omitempty"`
	State       State  `json:"state"`
}

// kindsByName maps chess.Kind names back to kinds.
var kindsByName = func() map[string]chess.Kind {
	m := make(map[string]chess.Kind, chess.NumKinds)
	for k := chess.UnmovedKing; k < chess.NumKinds; k++ {
		m[k.String()] = k
	}
	return m
}()

// ParseKind parses a kind name such as "Queen" or "UnmovedPawn".
func ParseKind(name string) (chess.Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// ParseColour parses "White" or "Black".
func ParseColour(name string) (chess.Colour, bool) {
	switch name {
	case chess.White.String():
		return chess.White, true
	case chess.Black.String():
		return chess.Black, true
	}
	return chess.Black, false
}

// FromState converts state to its annotated wire form.
func FromState(state chess.GameState) State {
	s := Plain(state)
	s.Turn = state.Turn().String()
	s.Status = engine.GameStatus(state).String()
	s.InCheck = engine.InCheck(state)
	s.FEN = engine.FEN(state)
	return s
}

// Plain converts state to its wire form without annotations.
func Plain(state chess.GameState) State {
	squares := make([]*Piece, chess.NumSquares)
	for sq, piece := range state.Board.Squares {
		if piece.IsEmpty() {
			continue
		}
		squares[sq] = &Piece{Kind: piece.Kind.String(), Colour: piece.Colour.String()}
	}

	ep := state.Board.EnPassant
	return State{
		Board: Board{
			Squares: squares,
			EnPassant: EnPassant{
				Ply:     ep.Ply,
				Skipped: int(ep.Skipped),
				Target:  int(ep.Target),
			},
		},
		Ply:          state.Ply,
		LastEventPly: state.LastEventPly,
	}
}

// ToState validates the wire form and converts it to a game state.
// Validation failures wrap ErrInvalidState.
func (s State) ToState() (chess.GameState, error) {
	if len(s.Board.Squares) != chess.NumSquares {
		return chess.GameState{}, invalid("board has %d squares, want %d", len(s.Board.Squares), chess.NumSquares)
	}

	board := chess.NewBoard()
	for i, p := range s.Board.Squares {
		if p == nil {
			continue
		}
		kind, ok := ParseKind(p.Kind)
		if !ok {
			return chess.GameState{}, invalid("square %v: unknown kind %q", chess.Square(i), p.Kind)
		}
		colour, ok := ParseColour(p.Colour)
		if !ok {
			return chess.GameState{}, invalid("square %v: unknown colour %q", chess.Square(i), p.Colour)
		}
		board.Squares[i] = chess.Piece{Kind: kind, Colour: colour}
	}

	skipped, target := chess.Square(s.Board.EnPassant.Skipped), chess.Square(s.Board.EnPassant.Target)
	if (skipped != chess.NoSquare && !skipped.Valid()) || (target != chess.NoSquare && !target.Valid()) {
		return chess.GameState{}, invalid("en passant squares %d/%d off the board", skipped, target)
	}
	board.EnPassant = chess.EnPassant{Ply: s.Board.EnPassant.Ply, Skipped: skipped, Target: target}

	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if n := board.CountKings(colour); n != 1 {
			return chess.GameState{}, invalid("%d %v kings", n, colour)
		}
	}
	if s.Ply < 0 || s.LastEventPly < 0 || s.LastEventPly > s.Ply {
		return chess.GameState{}, invalid("ply %d and last event ply %d", s.Ply, s.LastEventPly)
	}

	return chess.GameState{Board: board, Ply: s.Ply, LastEventPly: s.LastEventPly}, nil
}

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(errors.ErrInvalidState, format, args...)
}

// FromMoves converts legal moves of one piece to their wire form.
func FromMoves(moves []engine.Move) []Move {
	out := make([]Move, len(moves))
	for i, m := range moves {
		out[i] = Move{
			From:        int(m.From),
			Destination: int(m.Destination),
			Square:      m.Destination.String(),
			State:       FromState(m.State),
		}
		if m.Promotion != chess.Empty {
			out[i].Promotion = m.Promotion.String()
		}
	}
	return out
}

// Encode returns the annotated JSON for state.
func Encode(state chess.GameState) ([]byte, error) {
	return json.Marshal(FromState(state))
}

// Decode parses and validates JSON produced by Encode.
func Decode(data []byte) (chess.GameState, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return chess.GameState{}, errors.Wrapf(errors.ErrInvalidState, "decoding state: %v", err)
	}
	return s.ToState()
}
