package config

import "github.com/lgbarn/chaichess-go/internal/errors"

// StorageConfig holds settings for the game store.
type StorageConfig struct {
	// Dir is the database directory
	Dir string

	// InMemory keeps games in memory only; Dir is ignored
	InMemory bool
}

// NewStorageConfig creates a StorageConfig with default values.
func NewStorageConfig() *StorageConfig {
	return &StorageConfig{
		Dir: "chaichess-data",
	}
}

// Validate checks that the storage configuration is valid.
func (s *StorageConfig) Validate() error {
	if !s.InMemory && s.Dir == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "storage directory required unless in memory")
	}
	return nil
}
