// Package config provides configuration for the chaichess server.
package config

import (
	"io"
	"os"

	"github.com/lgbarn/chaichess-go/internal/errors"
	"github.com/lgbarn/chaichess-go/internal/hashing"
	"github.com/lgbarn/chaichess-go/internal/search"
)

// Config holds all program configuration.
type Config struct {
	Search  *SearchConfig
	Server  *ServerConfig
	Storage *StorageConfig
	Session *SessionConfig

	Verbosity int // 0=nothing, 1=startup and errors, 2=request log

	// Diagnostics stream
	LogFile io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Search:    NewSearchConfig(),
		Server:    NewServerConfig(),
		Storage:   NewStorageConfig(),
		Session:   NewSessionConfig(),
		Verbosity: 1,
		LogFile:   os.Stderr,
	}
}

// SetLogFile sets the diagnostics stream.
func (c *Config) SetLogFile(w io.Writer) {
	c.LogFile = w
}

// Validate checks every sub-config.
func (c *Config) Validate() error {
	if c.Verbosity < 0 || c.Verbosity > 2 {
		return errors.Wrapf(errors.ErrInvalidConfig, "verbosity %d out of range 0..2", c.Verbosity)
	}
	if err := c.Search.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return c.Storage.Validate()
}

// Bot builds the automated opponent described by the search and session
// settings.
func (c *Config) Bot() (*search.Bot, error) {
	algo, err := search.ParseAlgorithm(c.Search.Algorithm)
	if err != nil {
		return nil, err
	}
	bot := search.NewBot()
	bot.Depth = c.Search.Depth
	bot.Algorithm = algo
	bot.Workers = c.Search.Workers
	bot.Chooser = c.Session.Chooser()
	if c.Search.CacheSize > 0 {
		bot.Cache = hashing.NewTable[search.Result](c.Search.CacheSize)
	}
	return bot, nil
}
