package api

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/lgbarn/chaichess-go/internal/chess"
	"github.com/lgbarn/chaichess-go/internal/codec"
	"github.com/lgbarn/chaichess-go/internal/config"
	"github.com/lgbarn/chaichess-go/internal/engine"
	"github.com/lgbarn/chaichess-go/internal/errors"
	"github.com/lgbarn/chaichess-go/internal/processing"
	"github.com/lgbarn/chaichess-go/internal/search"
	"github.com/lgbarn/chaichess-go/internal/store"
)

// GameResponse is the wire form of a stored game.
type GameResponse struct {
	ID      string        `json:"id"`
	State   codec.State   `json:"state"`
	History []codec.State `json:"history,omitempty"`
}

// CreateGameRequest optionally starts a game from a FEN position.
type CreateGameRequest struct {
	FEN string `json:"fen"`
}

// MoveRequest names a move by its squares, given as board indices or
// algebraic names. Promotion is a kind name and defaults to Queen.
type MoveRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

// EngineResponse is the game after an engine move with the search that chose it.
type EngineResponse struct {
	GameResponse
	Value int    `json:"value"`
	Nodes uint64 `json:"nodes"`
}

// AnalyzeRequest asks for a search of a state without storing anything.
type AnalyzeRequest struct {
	State     codec.State `json:"state"`
	Depth     *int        `json:"depth,omitempty"`
	Algorithm string      `json:"algorithm,omitempty"`
}

// AnalyzeResponse is the outcome of a search.
type AnalyzeResponse struct {
	Value int           `json:"value"`
	Best  []codec.State `json:"best"`
	Nodes uint64        `json:"nodes"`
}

func gameResponse(game *store.Game, withHistory bool) GameResponse {
	resp := GameResponse{ID: game.ID, State: codec.FromState(game.State)}
	if withHistory {
		resp.History = make([]codec.State, len(game.History))
		for i, h := range game.History {
			resp.History[i] = codec.FromState(h)
		}
	}
	return resp
}

// parseBody decodes a JSON body into v. An empty body leaves v untouched.
func parseBody(c *fiber.Ctx, v interface{}) error {
	body := c.Body()
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body: "+err.Error())
	}
	return nil
}

// parseSquare accepts a board index such as "12" or a name such as "e2".
func parseSquare(s string) (chess.Square, error) {
	if n, err := strconv.Atoi(s); err == nil {
		sq := chess.Square(n)
		if !sq.Valid() {
			return chess.NoSquare, errors.Wrapf(errors.ErrInvalidSquare, "square %d", n)
		}
		return sq, nil
	}
	return chess.ParseSquare(s)
}

// parseMove resolves the squares and promotion kind of req.
func parseMove(req MoveRequest) (from, to chess.Square, promotion chess.Kind, err error) {
	if from, err = parseSquare(req.From); err != nil {
		return
	}
	if to, err = parseSquare(req.To); err != nil {
		return
	}
	if req.Promotion != "" {
		var ok bool
		if promotion, ok = codec.ParseKind(req.Promotion); !ok {
			err = fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("unknown promotion kind %q", req.Promotion))
		}
	}
	return
}

// playMove applies req to state, refusing moves in finished games.
func playMove(state chess.GameState, req MoveRequest) (chess.GameState, error) {
	if status := engine.GameStatus(state); status.IsTerminal() {
		return chess.GameState{}, errors.Wrapf(errors.ErrNoLegalMoves, "game is over by %v", status)
	}
	from, to, promotion, err := parseMove(req)
	if err != nil {
		return chess.GameState{}, err
	}
	return engine.ApplyMove(state, from, to, promotion)
}

// ListGames returns the ids of all stored games.
func (s *Server) ListGames(c *fiber.Ctx) error {
	ids, err := s.store.List()
	if err != nil {
		return err
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(fiber.Map{"games": ids})
}

// CreateGame stores a new game from the initial position or a FEN.
func (s *Server) CreateGame(c *fiber.Ctx) error {
	var req CreateGameRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	state := chess.NewGame()
	if req.FEN != "" {
		var err error
		if state, err = engine.ParseFEN(req.FEN); err != nil {
			return err
		}
	}

	game, err := s.store.Create(state)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(gameResponse(game, false))
}

// GetGame returns a game with its history.
func (s *Server) GetGame(c *fiber.Ctx) error {
	game, err := s.store.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(gameResponse(game, true))
}

// DeleteGame removes a game.
func (s *Server) DeleteGame(c *fiber.Ctx) error {
	if err := s.store.Delete(c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// LegalMoves returns the legal moves of the piece on the square named by
// the square query parameter.
func (s *Server) LegalMoves(c *fiber.Ctx) error {
	game, err := s.store.Get(c.Params("id"))
	if err != nil {
		return err
	}
	sq, err := parseSquare(c.Query("square"))
	if err != nil {
		return err
	}
	moves, err := engine.LegalMovesForPiece(game.State, sq)
	if err != nil {
		return err
	}
	return c.JSON(codec.FromMoves(moves))
}

// PlayMove applies a human move.
func (s *Server) PlayMove(c *fiber.Ctx) error {
	var req MoveRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	game, err := s.store.Advance(c.Params("id"), func(state chess.GameState) (chess.GameState, error) {
		return playMove(state, req)
	})
	if err != nil {
		return err
	}
	return c.JSON(gameResponse(game, false))
}

// EngineMove lets the bot move for the side to move.
func (s *Server) EngineMove(c *fiber.Ctx) error {
	game, res, err := s.engineMove(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(EngineResponse{
		GameResponse: gameResponse(game, false),
		Value:        res.Value,
		Nodes:        res.Nodes,
	})
}

// engineMove searches outside any store transaction, then commits the move
// only if the game still holds the searched state.
func (s *Server) engineMove(id string) (*store.Game, search.Result, error) {
	game, err := s.store.Get(id)
	if err != nil {
		return nil, search.Result{}, err
	}
	state := game.State
	if status := engine.GameStatus(state); status.IsTerminal() {
		return nil, search.Result{}, errors.Wrapf(errors.ErrNoLegalMoves, "game is over by %v", status)
	}
	next, res, err := s.bot.BestMove(state)
	if err != nil {
		return nil, res, err
	}
	s.logCacheStats()

	game, err = s.commitMove(id, state, next)
	return game, res, err
}

// commitMove advances game id from searched to next. It fails with
// ErrGameChanged when the game no longer holds searched.
func (s *Server) commitMove(id string, searched, next chess.GameState) (*store.Game, error) {
	return s.store.Advance(id, func(current chess.GameState) (chess.GameState, error) {
		if current != searched {
			return chess.GameState{}, errors.Wrapf(errors.ErrGameChanged, "game %q moved during the engine search", id)
		}
		return next, nil
	})
}

// GameReport replays a game's history and summarises it.
func (s *Server) GameReport(c *fiber.Ctx) error {
	game, err := s.store.Get(c.Params("id"))
	if err != nil {
		return err
	}
	material := processing.Material(s.bot.Heuristic)
	if material == nil {
		material = search.WeightedPieceCount
	}
	states := append(game.History, game.State)
	return c.JSON(processing.AnalyzeGame(states, material))
}

// Analyze searches a posted state and returns every best successor.
func (s *Server) Analyze(c *fiber.Ctx) error {
	var req AnalyzeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	state, err := req.State.ToState()
	if err != nil {
		return err
	}

	depth := s.bot.Depth
	if req.Depth != nil {
		depth = *req.Depth
	}
	if depth < 0 || depth > config.MaxDepth {
		return errors.Wrapf(errors.ErrInvalidConfig, "depth %d out of range 0..%d", depth, config.MaxDepth)
	}
	algo := s.bot.Algorithm
	if req.Algorithm != "" {
		if algo, err = search.ParseAlgorithm(req.Algorithm); err != nil {
			return err
		}
	}

	bot := *s.bot
	bot.Depth = depth
	bot.Algorithm = algo
	res := bot.Search(state)
	s.logCacheStats()

	best := make([]codec.State, len(res.Best))
	for i, b := range res.Best {
		best[i] = codec.FromState(b)
	}
	return c.JSON(AnalyzeResponse{Value: res.Value, Best: best, Nodes: res.Nodes})
}

// inProgress reports whether the game in state is still on.
func inProgress(state chess.GameState) bool {
	return !engine.GameStatus(state).IsTerminal()
}
