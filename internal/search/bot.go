package search

import (
	"fmt"

	"github.com/lgbarn/chaichess-go/internal/chess"
	"github.com/lgbarn/chaichess-go/internal/errors"
)

// DefaultDepth is the search depth of the automated opponent.
const DefaultDepth = 3

// Cache memoises search results by state and a tag naming the search.
// Implementations must be safe for concurrent use. Cached results are shared
// and must not be modified.
type Cache interface {
	Lookup(state chess.GameState, tag string) (Result, bool)
	Store(state chess.GameState, tag string, res Result)
}

// Bot picks moves for the automated opponent: it searches, then breaks ties
// among the best successors with its Chooser.
type Bot struct {
	Depth     int
	Algorithm Algorithm
	Workers   int
	Heuristic Heuristic
	Chooser   Chooser
	// Cache is optional. Entries are keyed by algorithm, depth and whether
	// the root is searched in parallel, so bots sharing a cache must share
	// a heuristic.
	Cache Cache
}

// NewBot returns a bot using alpha-beta at DefaultDepth on material with
// random tie-breaking.
func NewBot() *Bot {
	return &Bot{
		Depth:     DefaultDepth,
		Algorithm: AlgorithmAlphaBeta,
		Workers:   1,
		Heuristic: WeightedPieceCount,
		Chooser:   NewTimeSeededChooser(),
	}
}

// Search runs the bot's search without choosing a move.
func (b *Bot) Search(state chess.GameState) Result {
	h := b.Heuristic
	if h == nil {
		h = WeightedPieceCount
	}
	if b.Cache == nil {
		return Parallel(state, b.Depth, h, b.Algorithm, b.Workers)
	}

	tag := b.cacheTag()
	if res, ok := b.Cache.Lookup(state, tag); ok {
		return res
	}
	res := Parallel(state, b.Depth, h, b.Algorithm, b.Workers)
	b.Cache.Store(state, tag, res)
	return res
}

// cacheTag names the searches that return identical results. A parallel
// root search returns the full tie set and its own node count, so it is
// kept apart from the sequential one.
func (b *Bot) cacheTag() string {
	mode := "sequential"
	if b.Workers > 1 && b.Depth > 1 {
		mode = "parallel"
	}
	return fmt.Sprintf("%v/%d/%s", b.Algorithm, b.Depth, mode)
}

// BestMove searches state and returns one of the best successors.
// It fails with ErrNoLegalMoves when the game is over. Depth 0 is treated
// as 1 so that a move can always be picked.
func (b *Bot) BestMove(state chess.GameState) (chess.GameState, Result, error) {
	search := *b
	if search.Depth < 1 {
		search.Depth = 1
	}
	res := search.Search(state)
	if len(res.Best) == 0 {
		return chess.GameState{}, res, errors.Wrapf(errors.ErrNoLegalMoves, "ply %d", state.Ply)
	}

	chooser := b.Chooser
	if chooser == nil {
		chooser = First
	}
	return res.Best[chooser.Choose(len(res.Best))], res, nil
}
