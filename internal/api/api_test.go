package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/chaichess-go/internal/chess"
	"github.com/lgbarn/chaichess-go/internal/codec"
	"github.com/lgbarn/chaichess-go/internal/config"
	"github.com/lgbarn/chaichess-go/internal/engine"
	chesserrors "github.com/lgbarn/chaichess-go/internal/errors"
	"github.com/lgbarn/chaichess-go/internal/hashing"
	"github.com/lgbarn/chaichess-go/internal/processing"
	"github.com/lgbarn/chaichess-go/internal/search"
	"github.com/lgbarn/chaichess-go/internal/store"
	"github.com/lgbarn/chaichess-go/internal/testutil"
)

// newTestServer returns a server on an in-memory store with a deterministic
// depth-2 bot.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	st, err := store.Open("", true)
	testutil.AssertNoError(t, err, "open store")
	t.Cleanup(func() { _ = st.Close() })

	cfg := config.NewConfigBuilder().
		WithInMemory(true).
		WithVerbosity(0).
		WithAllowOrigins("*").
		Build()
	bot := search.NewBot()
	bot.Depth = 2
	bot.Chooser = search.First

	s := NewServer(st, bot, cfg, nil)
	return s, s.App()
}

// do sends a request and decodes the JSON response into out when out is not nil.
func do(t *testing.T, app *fiber.App, method, target string, body interface{}, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		testutil.AssertNoError(t, err, "marshal body")
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	testutil.AssertNoError(t, err, "%s %s", method, target)
	defer resp.Body.Close()

	if out != nil {
		data, err := io.ReadAll(resp.Body)
		testutil.AssertNoError(t, err, "read body")
		if err := json.Unmarshal(data, out); err != nil {
			t.Fatalf("%s %s: decoding %q: %v", method, target, data, err)
		}
	}
	return resp.StatusCode
}

func createGame(t *testing.T, app *fiber.App, fen string) GameResponse {
	t.Helper()
	var game GameResponse
	code := do(t, app, http.MethodPost, "/api/games", CreateGameRequest{FEN: fen}, &game)
	testutil.AssertEqual(t, code, fiber.StatusCreated, "create game")
	return game
}

func TestCreateAndGetGame(t *testing.T) {
	_, app := newTestServer(t)

	game := createGame(t, app, "")
	testutil.AssertEqual(t, game.State.FEN, engine.InitialFEN)
	testutil.AssertEqual(t, game.State.Turn, "White")
	testutil.AssertEqual(t, game.State.Status, "ongoing")

	var got GameResponse
	code := do(t, app, http.MethodGet, "/api/games/"+game.ID, nil, &got)
	testutil.AssertEqual(t, code, fiber.StatusOK)
	testutil.AssertEqual(t, got.ID, game.ID)
	testutil.AssertEqual(t, got.State.FEN, engine.InitialFEN)

	var ids struct {
		Games []string `json:"games"`
	}
	code = do(t, app, http.MethodGet, "/api/games", nil, &ids)
	testutil.AssertEqual(t, code, fiber.StatusOK)
	testutil.AssertEqual(t, ids.Games, []string{game.ID})
}

func TestCreateGame_FEN(t *testing.T) {
	_, app := newTestServer(t)

	game := createGame(t, app, testutil.FoolsMateFEN)
	testutil.AssertEqual(t, game.State.Status, "checkmate")
	testutil.AssertTrue(t, game.State.InCheck, "mated side is in check")

	var errResp map[string]string
	code := do(t, app, http.MethodPost, "/api/games", CreateGameRequest{FEN: "not a fen"}, &errResp)
	testutil.AssertEqual(t, code, fiber.StatusBadRequest)
	testutil.AssertContains(t, errResp["error"], chesserrors.ErrInvalidFEN.Error())
}

func TestGetGame_NotFound(t *testing.T) {
	_, app := newTestServer(t)

	code := do(t, app, http.MethodGet, "/api/games/nope", nil, nil)
	testutil.AssertEqual(t, code, fiber.StatusNotFound)
}

func TestLegalMoves(t *testing.T) {
	_, app := newTestServer(t)
	game := createGame(t, app, "")

	tests := []struct {
		name   string
		square string
		code   int
		count  int
	}{
		{"algebraic", "e2", fiber.StatusOK, 2},
		{"index", "12", fiber.StatusOK, 2},
		{"knight", "g1", fiber.StatusOK, 2},
		{"blocked", "a1", fiber.StatusOK, 0},
		{"empty square", "e4", fiber.StatusBadRequest, 0},
		{"opponent piece", "e7", fiber.StatusBadRequest, 0},
		{"off the board", "z9", fiber.StatusBadRequest, 0},
		{"index off the board", "64", fiber.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/api/games/" + game.ID + "/moves?square=" + tt.square
			if tt.code != fiber.StatusOK {
				testutil.AssertEqual(t, do(t, app, http.MethodGet, target, nil, nil), tt.code)
				return
			}
			var moves []codec.Move
			testutil.AssertEqual(t, do(t, app, http.MethodGet, target, nil, &moves), tt.code)
			testutil.AssertEqual(t, len(moves), tt.count)
		})
	}

	code := do(t, app, http.MethodGet, "/api/games/nope/moves?square=e2", nil, nil)
	testutil.AssertEqual(t, code, fiber.StatusNotFound)
}

func TestPlayMove(t *testing.T) {
	_, app := newTestServer(t)
	game := createGame(t, app, "")
	target := "/api/games/" + game.ID + "/moves"

	var after GameResponse
	code := do(t, app, http.MethodPost, target, MoveRequest{From: "e2", To: "e4"}, &after)
	testutil.AssertEqual(t, code, fiber.StatusOK)
	testutil.AssertEqual(t, after.State.FEN, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")

	code = do(t, app, http.MethodPost, target, MoveRequest{From: "52", To: "36"}, &after)
	testutil.AssertEqual(t, code, fiber.StatusOK)
	testutil.AssertEqual(t, after.State.Turn, "White")

	tests := []struct {
		name string
		req  MoveRequest
		code int
	}{
		{"illegal", MoveRequest{From: "d1", To: "d5"}, fiber.StatusUnprocessableEntity},
		{"empty square", MoveRequest{From: "d4", To: "d5"}, fiber.StatusBadRequest},
		{"opponent piece", MoveRequest{From: "d7", To: "d5"}, fiber.StatusBadRequest},
		{"bad square", MoveRequest{From: "d1", To: "x"}, fiber.StatusBadRequest},
		{"bad promotion", MoveRequest{From: "d2", To: "d4", Promotion: "Dragon"}, fiber.StatusBadRequest},
		{"promotion on a push", MoveRequest{From: "d2", To: "d4", Promotion: "Knight"}, fiber.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, do(t, app, http.MethodPost, target, tt.req, nil), tt.code)
		})
	}

	var got GameResponse
	do(t, app, http.MethodGet, "/api/games/"+game.ID, nil, &got)
	testutil.AssertEqual(t, len(got.History), 2, "rejected moves leave no history")
	testutil.AssertEqual(t, got.History[0].FEN, engine.InitialFEN)
}

func TestPlayMove_Promotion(t *testing.T) {
	_, app := newTestServer(t)
	game := createGame(t, app, testutil.PromotionFEN)

	var after GameResponse
	code := do(t, app, http.MethodPost, "/api/games/"+game.ID+"/moves",
		MoveRequest{From: "e7", To: "e8", Promotion: "Knight"}, &after)
	testutil.AssertEqual(t, code, fiber.StatusOK)
	testutil.AssertEqual(t, after.State.FEN, "4N3/8/8/8/8/8/k7/4K3 b - - 0 1")
}

func TestPlayMove_GameOver(t *testing.T) {
	_, app := newTestServer(t)
	game := createGame(t, app, testutil.FoolsMateFEN)

	code := do(t, app, http.MethodPost, "/api/games/"+game.ID+"/moves", MoveRequest{From: "e1", To: "f2"}, nil)
	testutil.AssertEqual(t, code, fiber.StatusConflict)
}

func TestEngineMove(t *testing.T) {
	_, app := newTestServer(t)
	game := createGame(t, app, testutil.MateInOneFEN)
	target := "/api/games/" + game.ID + "/engine"

	var resp EngineResponse
	code := do(t, app, http.MethodPost, target, nil, &resp)
	testutil.AssertEqual(t, code, fiber.StatusOK)
	testutil.AssertEqual(t, resp.State.FEN, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 1 1")
	testutil.AssertEqual(t, resp.State.Status, "checkmate")
	testutil.AssertEqual(t, resp.Value, search.BlackMated)
	testutil.AssertTrue(t, resp.Nodes > 0, "nodes counted")

	code = do(t, app, http.MethodPost, target, nil, nil)
	testutil.AssertEqual(t, code, fiber.StatusConflict)
}

func TestEngineMove_LogsCacheStats(t *testing.T) {
	s, app := newTestServer(t)
	var buf bytes.Buffer
	s.log = log.New(&buf, "", 0)
	s.cfg.Verbosity = 2
	s.bot.Cache = hashing.NewTable[search.Result](16)

	first := createGame(t, app, "")
	_, _, err := s.engineMove(first.ID)
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, buf.String(), "search cache: 1 entries (full false), 0 hits, 1 misses")

	// A second game from the same position is answered from the cache.
	second := createGame(t, app, "")
	_, _, err = s.engineMove(second.ID)
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, buf.String(), "search cache: 1 entries (full false), 1 hits, 1 misses")
}

func TestCommitMove_GameChanged(t *testing.T) {
	s, app := newTestServer(t)
	game := createGame(t, app, "")

	code := do(t, app, http.MethodPost, "/api/games/"+game.ID+"/moves", MoveRequest{From: "e2", To: "e4"}, nil)
	testutil.AssertEqual(t, code, fiber.StatusOK)

	// The engine searched the start position, but a human move landed first.
	start := chess.NewGame()
	_, err := s.commitMove(game.ID, start, engine.LegalMoves(start)[0])
	testutil.AssertErrorIs(t, err, chesserrors.ErrGameChanged)
	testutil.AssertEqual(t, statusFor(err), fiber.StatusConflict)

	var got GameResponse
	do(t, app, http.MethodGet, "/api/games/"+game.ID, nil, &got)
	testutil.AssertEqual(t, len(got.History), 1, "stale engine move is not stored")
}

func TestAnalyze(t *testing.T) {
	_, app := newTestServer(t)
	state := codec.FromState(engine.MustParseFEN(testutil.HangingQueenFEN))
	one := 1

	var resp AnalyzeResponse
	code := do(t, app, http.MethodPost, "/api/analyze", AnalyzeRequest{State: state, Depth: &one}, &resp)
	testutil.AssertEqual(t, code, fiber.StatusOK)
	testutil.AssertEqual(t, resp.Value, search.PieceValue(chess.Rook))
	testutil.AssertEqual(t, len(resp.Best), 1)
	testutil.AssertEqual(t, resp.Best[0].FEN, "4k3/8/8/3R4/8/8/8/4K3 b - - 0 1")

	var minimax AnalyzeResponse
	code = do(t, app, http.MethodPost, "/api/analyze",
		AnalyzeRequest{State: state, Depth: &one, Algorithm: "minimax"}, &minimax)
	testutil.AssertEqual(t, code, fiber.StatusOK)
	testutil.AssertEqual(t, minimax.Value, resp.Value)
	testutil.AssertEqual(t, minimax.Best, resp.Best)

	tooDeep := config.MaxDepth + 1
	tests := []struct {
		name string
		req  AnalyzeRequest
	}{
		{"too deep", AnalyzeRequest{State: state, Depth: &tooDeep}},
		{"unknown algorithm", AnalyzeRequest{State: state, Algorithm: "mcts"}},
		{"invalid state", AnalyzeRequest{State: codec.State{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, do(t, app, http.MethodPost, "/api/analyze", tt.req, nil), fiber.StatusBadRequest)
		})
	}
}

func TestAnalyze_MalformedBody(t *testing.T) {
	_, app := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusBadRequest)
}

func TestDeleteGame(t *testing.T) {
	_, app := newTestServer(t)
	game := createGame(t, app, "")

	testutil.AssertEqual(t, do(t, app, http.MethodDelete, "/api/games/"+game.ID, nil, nil), fiber.StatusNoContent)
	testutil.AssertEqual(t, do(t, app, http.MethodGet, "/api/games/"+game.ID, nil, nil), fiber.StatusNotFound)
	testutil.AssertEqual(t, do(t, app, http.MethodDelete, "/api/games/"+game.ID, nil, nil), fiber.StatusNotFound)
}

func TestWebSocket_RequiresUpgrade(t *testing.T) {
	_, app := newTestServer(t)

	code := do(t, app, http.MethodGet, "/ws/games/anything", nil, nil)
	testutil.AssertEqual(t, code, fiber.StatusUpgradeRequired)
}

func TestGameReport(t *testing.T) {
	_, app := newTestServer(t)
	game := createGame(t, app, testutil.MateInOneFEN)
	do(t, app, http.MethodPost, "/api/games/"+game.ID+"/moves", MoveRequest{From: "a1", To: "a8"}, nil)

	var report processing.Report
	code := do(t, app, http.MethodGet, "/api/games/"+game.ID+"/report", nil, &report)
	testutil.AssertEqual(t, code, fiber.StatusOK)
	testutil.AssertTrue(t, report.Validation.Valid)
	testutil.AssertEqual(t, report.Analysis.Plies, 1)
	testutil.AssertEqual(t, report.Analysis.Checks, 1)
	testutil.AssertEqual(t, report.Analysis.Status, "checkmate")
	testutil.AssertEqual(t, report.Analysis.Material, search.PieceValue(chess.Rook)-3*search.PieceValue(chess.Pawn))

	testutil.AssertEqual(t, do(t, app, http.MethodGet, "/api/games/nope/report", nil, nil), fiber.StatusNotFound)
}
