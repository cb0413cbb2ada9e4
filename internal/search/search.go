// Package search implements minimax and alpha-beta game-tree search over
// engine.LegalMoves. Searches are pure: they never choose between equally
// good moves but return every successor that reaches the best value.
package search

import (
	"math"
	"strings"

	"github.com/lgbarn/chaichess-go/internal/chess"
	"github.com/lgbarn/chaichess-go/internal/engine"
	"github.com/lgbarn/chaichess-go/internal/errors"
)

// Mate scores. A side that is checkmated scores the extreme in its
// opponent's favour, which dominates every material value.
const (
	WhiteMated = math.MinInt
	BlackMated = math.MaxInt
)

// Result is the outcome of a search.
type Result struct {
	// Value is the score of the searched state.
	Value int
	// Best holds every successor reaching Value, in generation order.
	// It is empty at depth 0 and at terminal states.
	Best []chess.GameState
	// Nodes counts the states visited, including the root.
	Nodes uint64
}

// Algorithm selects the search variant.
type Algorithm int

const (
	AlgorithmAlphaBeta Algorithm = iota
	AlgorithmMinimax
)

// String returns the name used in configuration and JSON.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmAlphaBeta:
		return "alphabeta"
	case AlgorithmMinimax:
		return "minimax"
	}
	return "unknown"
}

// ParseAlgorithm parses "alphabeta" or "minimax" (case-insensitive).
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "alphabeta", "alpha-beta", "":
		return AlgorithmAlphaBeta, nil
	case "minimax":
		return AlgorithmMinimax, nil
	}
	return AlgorithmAlphaBeta, errors.Wrapf(errors.ErrInvalidConfig, "unknown search algorithm %q", name)
}

// Search runs the selected algorithm from state.
func (a Algorithm) Search(state chess.GameState, depth int, h Heuristic) Result {
	if a == AlgorithmMinimax {
		return Minimax(state, depth, h)
	}
	return AlphaBeta(state, depth, h)
}

// better reports whether a is strictly better than b for mover.
// White maximises and Black minimises.
func better(mover chess.Colour, a, b int) bool {
	if mover == chess.White {
		return a > b
	}
	return a < b
}

// worst returns the initial best value for mover.
func worst(mover chess.Colour) int {
	if mover == chess.White {
		return math.MinInt
	}
	return math.MaxInt
}

// leaf handles the cases that end the recursion. The second result is
// false when the node must be expanded over moves.
func leaf(state chess.GameState, depth int, h Heuristic) (Result, []chess.GameState, bool) {
	if depth <= 0 {
		return Result{Value: h(state), Nodes: 1}, nil, true
	}
	if state.FiftyMoveRuleDraw() {
		return Result{Value: 0, Nodes: 1}, nil, true
	}
	moves := engine.LegalMoves(state)
	if len(moves) == 0 {
		if !engine.InCheck(state) {
			return Result{Value: 0, Nodes: 1}, nil, true
		}
		if state.Turn() == chess.White {
			return Result{Value: WhiteMated, Nodes: 1}, nil, true
		}
		return Result{Value: BlackMated, Nodes: 1}, nil, true
	}
	return Result{}, moves, false
}

// consider merges a child value into res using the tie rule shared by every
// search variant. It reports whether the child strictly improved res.
func (res *Result) consider(mover chess.Colour, value int, next chess.GameState) bool {
	switch {
	case better(mover, value, res.Value):
		res.Value = value
		res.Best = []chess.GameState{next}
		return true
	case value == res.Value:
		res.Best = append(res.Best, next)
	}
	return false
}

// Minimax searches every successor to the given depth.
func Minimax(state chess.GameState, depth int, h Heuristic) Result {
	res, moves, done := leaf(state, depth, h)
	if done {
		return res
	}

	mover := state.Turn()
	res = Result{Value: worst(mover), Nodes: 1}
	for _, next := range moves {
		child := Minimax(next, depth-1, h)
		res.Nodes += child.Nodes
		res.consider(mover, child.Value, next)
	}
	return res
}

// AlphaBeta searches with alpha-beta pruning, seeding the window for
// the side to move. Its value always equals Minimax's and its Best set
// is a subset of Minimax's.
func AlphaBeta(state chess.GameState, depth int, h Heuristic) Result {
	if state.Turn() == chess.White {
		return alphaBeta(state, depth, math.MinInt, math.MaxInt, h)
	}
	return alphaBeta(state, depth, math.MaxInt, math.MinInt, h)
}

// alphaBeta is alpha-beta written from the mover's side: gamma is the best
// value the mover has secured and delta the best the opponent will allow.
// The child is searched with the roles swapped. Siblings are cut only when
// gamma is strictly better than delta, so equally good moves are kept.
func alphaBeta(state chess.GameState, depth, gamma, delta int, h Heuristic) Result {
	res, moves, done := leaf(state, depth, h)
	if done {
		return res
	}

	mover := state.Turn()
	res = Result{Value: worst(mover), Nodes: 1}
	for _, next := range moves {
		child := alphaBeta(next, depth-1, delta, gamma, h)
		res.Nodes += child.Nodes
		if !res.consider(mover, child.Value, next) {
			continue
		}
		if better(mover, res.Value, gamma) {
			gamma = res.Value
			if better(mover, gamma, delta) {
				break
			}
		}
	}
	return res
}
