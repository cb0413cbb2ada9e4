// Package hashing provides Zobrist hashing of game states and a bounded,
// concurrency-safe table keyed by those hashes.
package hashing

import "github.com/lgbarn/chaichess-go/internal/chess"

// zobristSeed fixes the key tables so hashes are stable across runs.
const zobristSeed = 0x9E3779B97F4A7C15

var (
	pieceKeys     [chess.NumSquares][chess.NumKinds][2]uint64
	enPassantKeys [chess.NumSquares]uint64
	whiteKey      uint64
	// eventKeys mixes in the plies since the last capture or pawn move,
	// capped at the fifty-move limit.
	eventKeys [chess.FiftyMovePlies + 1]uint64
)

func init() {
	state := uint64(zobristSeed)
	next := func() uint64 {
		// splitmix64
		state += 0x9E3779B97F4A7C15
		z := state
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		return z ^ (z >> 31)
	}
	for sq := range pieceKeys {
		for kind := range pieceKeys[sq] {
			for colour := range pieceKeys[sq][kind] {
				pieceKeys[sq][kind][colour] = next()
			}
		}
	}
	for sq := range enPassantKeys {
		enPassantKeys[sq] = next()
	}
	whiteKey = next()
	for i := range eventKeys {
		eventKeys[i] = next()
	}
}

// Hash returns the Zobrist hash of state. It covers everything the rules
// depend on: every piece including its unmoved tag, the side to move, an en
// passant capture available on this ply and the distance to the fifty-move
// draw. States that differ only in their absolute ply hash alike.
func Hash(state chess.GameState) uint64 {
	var h uint64
	for sq, piece := range state.Board.Squares {
		if piece.IsEmpty() {
			continue
		}
		h ^= pieceKeys[sq][piece.Kind][piece.Colour]
	}
	if state.Turn() == chess.White {
		h ^= whiteKey
	}
	if ep := state.Board.EnPassant; ep.ValidAt(state.Ply) && ep.Skipped.Valid() {
		h ^= enPassantKeys[ep.Skipped]
	}
	since := state.PliesSinceEvent()
	if since > chess.FiftyMovePlies {
		since = chess.FiftyMovePlies
	}
	if since >= 0 {
		h ^= eventKeys[since]
	}
	return h
}
