package config

import "github.com/lgbarn/chaichess-go/internal/search"

// SessionConfig holds settings for play sessions.
type SessionConfig struct {
	// AutoReply makes the engine answer every human move on the websocket
	AutoReply bool

	// Seed seeds the tie-breaker among equally good engine moves.
	// Zero seeds from the clock.
	Seed int64
}

// NewSessionConfig creates a SessionConfig with default values.
func NewSessionConfig() *SessionConfig {
	return &SessionConfig{
		AutoReply: true,
	}
}

// Chooser returns the tie-breaker for engine moves.
func (s *SessionConfig) Chooser() search.Chooser {
	if s.Seed == 0 {
		return search.NewTimeSeededChooser()
	}
	return search.NewRandomChooser(s.Seed)
}
