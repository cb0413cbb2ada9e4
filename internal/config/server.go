package config

import "github.com/lgbarn/chaichess-go/internal/errors"

// ServerConfig holds settings for the HTTP and websocket listener.
type ServerConfig struct {
	// Addr is the listen address
	Addr string

	// AllowOrigins is the comma separated CORS origin list
	AllowOrigins string

	// ReadBufferSize and WriteBufferSize size the websocket buffers
	ReadBufferSize  int
	WriteBufferSize int
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:            ":3000",
		AllowOrigins:    "http://localhost:5173",
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
}

// Validate checks that the server configuration is valid.
func (s *ServerConfig) Validate() error {
	if s.Addr == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "empty listen address")
	}
	if s.ReadBufferSize < 0 || s.WriteBufferSize < 0 {
		return errors.Wrap(errors.ErrInvalidConfig, "negative websocket buffer size")
	}
	return nil
}
