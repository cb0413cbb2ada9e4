package chess

import (
	"errors"
	"testing"

	chesserrors "github.com/lgbarn/chaichess-go/internal/errors"
)

func TestColour(t *testing.T) {
	if White.Opposite() != Black || Black.Opposite() != White {
		t.Error("Opposite() does not swap colours")
	}
	if White.Sign() != 1 || Black.Sign() != -1 {
		t.Errorf("Sign() = %d, %d; want 1, -1", White.Sign(), Black.Sign())
	}
	if White.String() != "White" || Black.String() != "Black" {
		t.Errorf("String() = %q, %q", White.String(), Black.String())
	}
}

func TestKindMoved(t *testing.T) {
	tests := []struct {
		kind Kind
		want Kind
	}{
		{UnmovedKing, King},
		{King, King},
		{UnmovedRook, Rook},
		{Rook, Rook},
		{UnmovedPawn, Pawn},
		{Pawn, Pawn},
		{Queen, Queen},
		{Bishop, Bishop},
		{Knight, Knight},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got := tt.kind.Moved()
			if got != tt.want {
				t.Errorf("%v.Moved() = %v; want %v", tt.kind, got, tt.want)
			}
			if got.IsUnmoved() {
				t.Errorf("%v.Moved().IsUnmoved() = true", tt.kind)
			}
			if got.Moved() != got {
				t.Errorf("Moved() is not stable for %v", got)
			}
		})
	}
}

func TestKindLetter(t *testing.T) {
	tests := []struct {
		kind Kind
		want byte
	}{
		{UnmovedKing, 'K'}, {King, 'K'}, {Queen, 'Q'}, {UnmovedRook, 'R'},
		{Bishop, 'B'}, {Knight, 'N'}, {UnmovedPawn, 'P'}, {Empty, '?'},
	}
	for _, tt := range tests {
		if got := tt.kind.Letter(); got != tt.want {
			t.Errorf("%v.Letter() = %c; want %c", tt.kind, got, tt.want)
		}
	}
}

func TestSquareAt(t *testing.T) {
	tests := []struct {
		row, col int
		want     Square
		ok       bool
	}{
		{0, 0, 0, true},
		{0, 7, 7, true},
		{7, 0, 56, true},
		{7, 7, 63, true},
		{3, 4, 28, true},
		{-1, 0, NoSquare, false},
		{0, -1, NoSquare, false},
		{8, 0, NoSquare, false},
		{0, 8, NoSquare, false},
	}
	for _, tt := range tests {
		got, ok := SquareAt(tt.row, tt.col)
		if got != tt.want || ok != tt.ok {
			t.Errorf("SquareAt(%d, %d) = %d, %v; want %d, %v", tt.row, tt.col, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseSquare(t *testing.T) {
	for sq := Square(0); sq < NumSquares; sq++ {
		got, err := ParseSquare(sq.String())
		if err != nil || got != sq {
			t.Errorf("ParseSquare(%q) = %d, %v; want %d", sq.String(), got, err, sq)
		}
	}

	for _, bad := range []string{"", "e", "i1", "a9", "a0", "e44"} {
		if _, err := ParseSquare(bad); !errors.Is(err, chesserrors.ErrInvalidSquare) {
			t.Errorf("ParseSquare(%q) error = %v; want ErrInvalidSquare", bad, err)
		}
	}
}

func TestSteps(t *testing.T) {
	e4 := MustSquare(3, 4)

	t.Run("ray stops at edge", func(t *testing.T) {
		steps := Steps(e4, Direction{1, 0}, 7)
		if len(steps) != 4 {
			t.Fatalf("len(Steps(e4, up, 7)) = %d; want 4", len(steps))
		}
		for i, st := range steps {
			if st.Distance != i+1 {
				t.Errorf("steps[%d].Distance = %d; want %d", i, st.Distance, i+1)
			}
			if st.Square.Col() != 4 || st.Square.Row() != 4+i {
				t.Errorf("steps[%d].Square = %v; want e%d", i, st.Square, 5+i)
			}
		}
	})

	t.Run("max steps bounds the ray", func(t *testing.T) {
		if got := len(Steps(e4, Direction{-1, -1}, 2)); got != 2 {
			t.Errorf("len(Steps(e4, down-left, 2)) = %d; want 2", got)
		}
	})

	t.Run("no wrap across files", func(t *testing.T) {
		h4 := MustSquare(3, 7)
		if steps := Steps(h4, Direction{0, 1}, 7); len(steps) != 0 {
			t.Errorf("Steps(h4, right, 7) = %v; want none", steps)
		}
		if steps := Steps(h4, KnightLeaps[1], 1); len(steps) != 0 {
			t.Errorf("Steps(h4, knight (1,2), 1) = %v; want none", steps)
		}
	})
}

func TestDirectionFamilies(t *testing.T) {
	if len(Straight) != 4 || len(Diagonal) != 4 || len(StraightAndDiagonal) != 8 || len(KnightLeaps) != 8 {
		t.Fatalf("family sizes = %d/%d/%d/%d", len(Straight), len(Diagonal), len(StraightAndDiagonal), len(KnightLeaps))
	}
	if PawnPush(White)[0] != (Direction{1, 0}) || PawnPush(Black)[0] != (Direction{-1, 0}) {
		t.Error("pawn push directions point the wrong way")
	}
	for _, d := range PawnCaptures(White) {
		if d.DRow != 1 {
			t.Errorf("white capture %v does not move up", d)
		}
	}
	for _, d := range PawnCaptures(Black) {
		if d.DRow != -1 {
			t.Errorf("black capture %v does not move down", d)
		}
	}
}

func TestGameState(t *testing.T) {
	g := NewGame()
	if g.Turn() != White {
		t.Errorf("NewGame().Turn() = %v; want White", g.Turn())
	}
	if g.Ply != 0 || g.LastEventPly != 0 {
		t.Errorf("NewGame() ply/last = %d/%d; want 0/0", g.Ply, g.LastEventPly)
	}

	g.Ply = 1
	if g.Turn() != Black {
		t.Errorf("Turn() at ply 1 = %v; want Black", g.Turn())
	}
	if g.MoveNumber() != 1 {
		t.Errorf("MoveNumber() at ply 1 = %d; want 1", g.MoveNumber())
	}

	g.Ply = FiftyMovePlies - 1
	if g.FiftyMoveRuleDraw() {
		t.Errorf("FiftyMoveRuleDraw() at %d plies = true", g.PliesSinceEvent())
	}
	g.Ply = FiftyMovePlies
	if !g.FiftyMoveRuleDraw() {
		t.Errorf("FiftyMoveRuleDraw() at %d plies = false", g.PliesSinceEvent())
	}
	g.LastEventPly = 1
	if g.FiftyMoveRuleDraw() {
		t.Error("FiftyMoveRuleDraw() true after a later event")
	}
}
