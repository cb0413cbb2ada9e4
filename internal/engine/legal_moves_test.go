package engine

import (
	"errors"
	"testing"

	"github.com/lgbarn/chaichess-go/internal/chess"
	chesserrors "github.com/lgbarn/chaichess-go/internal/errors"
	"github.com/lgbarn/chaichess-go/internal/testutil"
)

// sq parses an algebraic square name or fails the test.
func sq(t *testing.T, name string) chess.Square {
	t.Helper()
	s, err := chess.ParseSquare(name)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", name, err)
	}
	return s
}

// play applies the first legal move from one square to another.
// For promotions this is the queen.
func play(t *testing.T, state chess.GameState, from, to string) chess.GameState {
	t.Helper()
	moves, err := LegalMovesForPiece(state, sq(t, from))
	if err != nil {
		t.Fatalf("LegalMovesForPiece(%s): %v", from, err)
	}
	dest := sq(t, to)
	for _, m := range moves {
		if m.Destination == dest {
			return m.State
		}
	}
	t.Fatalf("%s-%s is not legal in %s", from, to, FEN(state))
	return chess.GameState{}
}

// destinations returns the destination names of moves.
func destinations(moves []Move) map[string]int {
	dests := make(map[string]int, len(moves))
	for _, m := range moves {
		dests[m.Destination.String()]++
	}
	return dests
}

func TestFarMoves(t *testing.T) {
	t.Parallel()

	board := chess.NewBoard()
	a1 := chess.MustSquare(0, 0)
	board.Set(a1, chess.W(chess.Rook))

	t.Run("open board", func(t *testing.T) {
		steps := FarMoves(&board, a1, chess.Straight, maxRay, true, true, chess.White)
		if len(steps) != 14 {
			t.Errorf("len(FarMoves(rook a1)) = %d; want 14", len(steps))
		}
	})

	blocked := board
	blocked.Set(chess.MustSquare(0, 3), chess.W(chess.Knight)) // d1, own piece
	blocked.Set(chess.MustSquare(4, 0), chess.B(chess.Knight)) // a5, enemy piece

	tests := []struct {
		name                     string
		allowEmpty, allowCapture bool
		want                     int
	}{
		{"empty and capture", true, true, 2 + 4},
		{"empty only", true, false, 2 + 3},
		{"capture only", false, true, 1},
		{"neither", false, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := FarMoves(&blocked, a1, chess.Straight, maxRay, tt.allowEmpty, tt.allowCapture, chess.White)
			if len(steps) != tt.want {
				t.Errorf("len(FarMoves) = %d; want %d (%v)", len(steps), tt.want, steps)
			}
		})
	}

	t.Run("max steps", func(t *testing.T) {
		steps := FarMoves(&board, a1, chess.StraightAndDiagonal, 1, true, true, chess.White)
		if len(steps) != 3 {
			t.Errorf("len(FarMoves(king a1)) = %d; want 3", len(steps))
		}
	})
}

func TestLegalMoves_Initial(t *testing.T) {
	t.Parallel()

	state := chess.NewGame()
	moves := LegalMoves(state)
	if len(moves) != 20 {
		t.Fatalf("len(LegalMoves(initial)) = %d; want 20", len(moves))
	}
	for _, next := range moves {
		if next.Ply != 1 {
			t.Errorf("successor ply = %d; want 1", next.Ply)
		}
	}

	afterE4 := play(t, state, "e2", "e4")
	if got := len(LegalMoves(afterE4)); got != 20 {
		t.Errorf("len(LegalMoves(after e4)) = %d; want 20", got)
	}
}

func TestLegalMoves_NeverLeaveKingInCheck(t *testing.T) {
	t.Parallel()

	for _, fen := range []string{testutil.KiwipeteFEN, testutil.Position3, testutil.Position4, testutil.EnPassantPinFEN} {
		state := MustParseFEN(fen)
		mover := state.Turn()
		for _, next := range LegalMoves(state) {
			if KingInCheck(&next.Board, mover) {
				t.Errorf("%s: successor %s leaves %v in check", fen, FEN(next), mover)
			}
			if next.Turn() == mover {
				t.Errorf("%s: successor does not pass the turn", fen)
			}
		}
	}
}

func TestDoubleStep(t *testing.T) {
	t.Parallel()

	next := play(t, chess.NewGame(), "e2", "e4")

	want := chess.EnPassant{Ply: 0, Skipped: sq(t, "e3"), Target: sq(t, "e4")}
	testutil.AssertEqual(t, next.Board.EnPassant, want, "en passant record")
	testutil.AssertEqual(t, next.Board.Get(sq(t, "e4")), chess.W(chess.Pawn), "moved pawn")
	testutil.AssertEqual(t, next.LastEventPly, 1, "pawn move is an event")

	// A moved pawn may not double step again.
	next = play(t, next, "a7", "a6")
	moves, err := LegalMovesForPiece(next, sq(t, "e4"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, destinations(moves), map[string]int{"e5": 1})
}

func TestEnPassant(t *testing.T) {
	t.Parallel()

	state := MustParseFEN(testutil.EnPassantFEN)

	t.Run("capture available on the next ply", func(t *testing.T) {
		moves, err := LegalMovesForPiece(state, sq(t, "e5"))
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, destinations(moves), map[string]int{"e6": 1, "f6": 1})

		next := play(t, state, "e5", "f6")
		testutil.AssertEqual(t, next.Board.Get(sq(t, "f6")), chess.W(chess.Pawn))
		testutil.AssertTrue(t, next.Board.IsEmpty(sq(t, "f5")), "captured pawn removed")
		testutil.AssertTrue(t, next.Board.IsEmpty(sq(t, "e5")), "source emptied")
		testutil.AssertEqual(t, next.LastEventPly, next.Ply)
	})

	t.Run("capture expires", func(t *testing.T) {
		next := play(t, state, "g1", "f3")
		next = play(t, next, "a7", "a6")
		moves, err := LegalMovesForPiece(next, sq(t, "e5"))
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, destinations(moves), map[string]int{"e6": 1})
	})

	t.Run("pinned capture is illegal", func(t *testing.T) {
		pinned := MustParseFEN(testutil.EnPassantPinFEN)
		moves, err := LegalMovesForPiece(pinned, sq(t, "e4"))
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, destinations(moves), map[string]int{"e3": 1})
		testutil.AssertEqual(t, len(LegalMoves(pinned)), 6)
	})
}

func TestCastling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fen  string
		want map[string]int
	}{
		{"both sides", testutil.CastlingFEN, map[string]int{"d1": 1, "f1": 1, "c1": 1, "g1": 1}},
		{"piece between king and rook", "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/RN2K2R w KQkq - 0 1", map[string]int{"d1": 1, "f1": 1, "g1": 1}},
		{"transit square attacked", "4kr2/8/8/8/8/8/8/R3K2R w KQ - 0 1", map[string]int{"d1": 1, "d2": 1, "e2": 1, "c1": 1}},
		{"king in check", "4r1k1/8/8/8/8/8/8/R3K2R w KQ - 0 1", map[string]int{"d1": 1, "d2": 1, "f1": 1, "f2": 1}},
		{"landing square attacked only", "1k4r1/8/8/8/8/8/8/R3K2R w KQ - 0 1", map[string]int{"d1": 1, "d2": 1, "e2": 1, "f1": 1, "f2": 1, "c1": 1}},
		{"rook square attacked only", "1r2k3/8/8/8/8/8/8/R3K2R w KQ - 0 1", map[string]int{"d1": 1, "d2": 1, "e2": 1, "f1": 1, "f2": 1, "c1": 1, "g1": 1}},
		{"rook has moved", "4k3/8/8/8/8/8/8/R3K2R w K - 0 1", map[string]int{"d1": 1, "d2": 1, "e2": 1, "f1": 1, "f2": 1, "g1": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := MustParseFEN(tt.fen)
			moves, err := LegalMovesForPiece(state, sq(t, "e1"))
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, destinations(moves), tt.want)
		})
	}

	t.Run("rook relocates beside the king", func(t *testing.T) {
		state := MustParseFEN(testutil.CastlingFEN)
		short := play(t, state, "e1", "g1")
		testutil.AssertEqual(t, short.Board.Get(sq(t, "g1")), chess.W(chess.King))
		testutil.AssertEqual(t, short.Board.Get(sq(t, "f1")), chess.W(chess.Rook))
		testutil.AssertTrue(t, short.Board.IsEmpty(sq(t, "h1")) && short.Board.IsEmpty(sq(t, "e1")))
		testutil.AssertEqual(t, short.LastEventPly, state.LastEventPly, "castling is not an event")

		long := play(t, state, "e1", "c1")
		testutil.AssertEqual(t, long.Board.Get(sq(t, "c1")), chess.W(chess.King))
		testutil.AssertEqual(t, long.Board.Get(sq(t, "d1")), chess.W(chess.Rook))
		testutil.AssertTrue(t, long.Board.IsEmpty(sq(t, "a1")))
	})

	t.Run("king move forfeits castling", func(t *testing.T) {
		state := MustParseFEN(testutil.CastlingFEN)
		state = play(t, state, "e1", "f1")
		state = play(t, state, "a7", "a6")
		state = play(t, state, "f1", "e1")
		state = play(t, state, "a6", "a5")
		moves, err := LegalMovesForPiece(state, sq(t, "e1"))
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, destinations(moves), map[string]int{"d1": 1, "f1": 1})
	})
}

func TestPromotion(t *testing.T) {
	t.Parallel()

	state := MustParseFEN(testutil.PromotionFEN)
	moves, err := LegalMovesForPiece(state, sq(t, "e7"))
	testutil.AssertNoError(t, err)
	if len(moves) != 4 {
		t.Fatalf("len(promotions) = %d; want 4", len(moves))
	}

	e8 := sq(t, "e8")
	for i, m := range moves {
		want := chess.W(chess.PromotionKinds[i])
		testutil.AssertEqual(t, m.State.Board.Get(e8), want, "promotion %d", i)
		testutil.AssertEqual(t, m.State.LastEventPly, m.State.Ply)
	}
	testutil.AssertEqual(t, len(LegalMoves(state)), 9)
}

func TestEventPly(t *testing.T) {
	t.Parallel()

	state := MustParseFEN(testutil.HangingQueenFEN)
	state.LastEventPly = state.Ply - 10

	capture := play(t, state, "d1", "d5")
	testutil.AssertEqual(t, capture.LastEventPly, capture.Ply, "capture resets")

	quiet := play(t, state, "e1", "f2")
	testutil.AssertEqual(t, quiet.LastEventPly, state.LastEventPly, "quiet move keeps")
}

func TestLegalMovesForPiece_Errors(t *testing.T) {
	t.Parallel()

	state := chess.NewGame()
	tests := []struct {
		name   string
		square chess.Square
		want   error
	}{
		{"empty square", sq(t, "e4"), chesserrors.ErrEmptySquare},
		{"opponent piece", sq(t, "e7"), chesserrors.ErrNotYourPiece},
		{"off board", chess.NoSquare, chesserrors.ErrInvalidSquare},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LegalMovesForPiece(state, tt.square)
			testutil.AssertErrorIs(t, err, tt.want)

			var stateErr *chesserrors.StateError
			if !errors.As(err, &stateErr) {
				t.Fatalf("error %v is not a StateError", err)
			}
			testutil.AssertEqual(t, stateErr.Square, tt.square.String())
		})
	}
}

func TestHasLegalMoves(t *testing.T) {
	t.Parallel()

	testutil.AssertTrue(t, HasLegalMoves(chess.NewGame()))
	testutil.AssertFalse(t, HasLegalMoves(MustParseFEN(testutil.FoolsMateFEN)))
	testutil.AssertFalse(t, HasLegalMoves(MustParseFEN(testutil.StalemateFEN)))
}

func TestApplyMove(t *testing.T) {
	t.Parallel()

	state, err := ApplyMove(chess.NewGame(), sq(t, "e2"), sq(t, "e4"), chess.Empty)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, state, play(t, chess.NewGame(), "e2", "e4"))

	promo := MustParseFEN(testutil.PromotionFEN)
	queen, err := ApplyMove(promo, sq(t, "e7"), sq(t, "e8"), chess.Empty)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, queen.Board.Get(sq(t, "e8")), chess.W(chess.Queen))

	knight, err := ApplyMove(promo, sq(t, "e7"), sq(t, "e8"), chess.Knight)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, knight.Board.Get(sq(t, "e8")), chess.W(chess.Knight))

	_, err = ApplyMove(chess.NewGame(), sq(t, "e2"), sq(t, "e5"), chess.Empty)
	testutil.AssertErrorIs(t, err, chesserrors.ErrIllegalMove)

	_, err = ApplyMove(promo, sq(t, "e7"), sq(t, "e8"), chess.King)
	testutil.AssertErrorIs(t, err, chesserrors.ErrIllegalMove)

	_, err = ApplyMove(chess.NewGame(), sq(t, "e7"), sq(t, "e5"), chess.Empty)
	testutil.AssertErrorIs(t, err, chesserrors.ErrNotYourPiece)

	_, err = ApplyMove(chess.NewGame(), sq(t, "e2"), sq(t, "e4"), chess.Knight)
	testutil.AssertErrorIs(t, err, chesserrors.ErrIllegalMove)

	_, err = ApplyMove(chess.NewGame(), sq(t, "e2"), sq(t, "e4"), chess.Queen)
	testutil.AssertErrorIs(t, err, chesserrors.ErrIllegalMove)
}
