package config

import (
	"github.com/lgbarn/chaichess-go/internal/errors"
	"github.com/lgbarn/chaichess-go/internal/search"
)

// MaxDepth bounds the configured search depth. Deeper searches take
// minutes per move without move ordering.
const MaxDepth = 6

// SearchConfig holds settings for the automated opponent's search.
type SearchConfig struct {
	// Depth is the number of plies searched
	Depth int

	// Algorithm is "alphabeta" or "minimax"
	Algorithm string

	// Workers is the number of goroutines searching root moves
	Workers int

	// CacheSize bounds the number of memoised search results (0 = no cache)
	CacheSize int
}

// NewSearchConfig creates a SearchConfig with default values.
func NewSearchConfig() *SearchConfig {
	return &SearchConfig{
		Depth:     search.DefaultDepth,
		Algorithm: search.AlgorithmAlphaBeta.String(),
		Workers:   1,
		CacheSize: 4096,
	}
}

// Validate checks that the search configuration is valid.
func (s *SearchConfig) Validate() error {
	if s.Depth < 0 || s.Depth > MaxDepth {
		return errors.Wrapf(errors.ErrInvalidConfig, "search depth %d out of range 0..%d", s.Depth, MaxDepth)
	}
	if s.Workers < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "search workers %d < 1", s.Workers)
	}
	if s.CacheSize < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "search cache size %d < 0", s.CacheSize)
	}
	_, err := search.ParseAlgorithm(s.Algorithm)
	return err
}
