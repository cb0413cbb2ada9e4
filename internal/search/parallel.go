package search

import (
	"github.com/lgbarn/chaichess-go/internal/chess"
	"github.com/lgbarn/chaichess-go/internal/worker"
)

// Parallel searches each root successor on its own worker and merges the
// children with the same tie rule as the sequential searches. Each child
// is searched with a full window, so the value matches Minimax and Best is
// the complete set of tying successors. Node counts add up the same way.
// With workers <= 1 or depth <= 1 it falls back to algo.Search.
func Parallel(state chess.GameState, depth int, h Heuristic, algo Algorithm, workers int) Result {
	if workers <= 1 || depth <= 1 {
		return algo.Search(state, depth, h)
	}
	res, moves, done := leaf(state, depth, h)
	if done {
		return res
	}

	children := worker.Map(moves, func(next chess.GameState) Result {
		return algo.Search(next, depth-1, h)
	}, worker.WithWorkers(workers), worker.WithBufferSize(len(moves)))

	mover := state.Turn()
	res = Result{Value: worst(mover), Nodes: 1}
	for i, child := range children {
		res.Nodes += child.Nodes
		res.consider(mover, child.Value, moves[i])
	}
	return res
}
