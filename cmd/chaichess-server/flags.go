package main

import (
	"flag"

	"github.com/lgbarn/chaichess-go/internal/config"
)

// Command-line flags organized by category

// Server flags
var (
	addr         = flag.String("addr", ":3000", "Listen address")
	allowOrigins = flag.String("origins", "http://localhost:5173", "Comma separated CORS origins")
	noAutoReply  = flag.Bool("no-reply", false, "Don't answer websocket moves with an engine move")
)

// Search flags
var (
	depth     = flag.Int("depth", 3, "Engine search depth in plies")
	algorithm = flag.String("algorithm", "alphabeta", "Search algorithm: alphabeta, minimax")
	workers   = flag.Int("workers", 1, "Goroutines searching root moves in parallel")
	seed      = flag.Int64("seed", 0, "Seed for breaking ties between equal moves (0 = clock)")
	cacheSize = flag.Int("cache", 4096, "Memoised search results (0 = no cache)")
)

// Storage flags
var (
	dataDir  = flag.String("data", "chaichess-data", "Game database directory")
	inMemory = flag.Bool("memory", false, "Keep games in memory only")
)

// Logging and mode flags
var (
	logFile   = flag.String("l", "", "Write diagnostics to this file (default: stderr)")
	appendLog = flag.String("L", "", "Append diagnostics to this file")
	quiet     = flag.Bool("s", false, "Silent mode (no startup banner)")
	verbose   = flag.Bool("v", false, "Log every request")
	analyze   = flag.String("analyze", "", "Print the engine's best moves for this FEN and exit")
	help      = flag.Bool("h", false, "Show help")
	version   = flag.Bool("version", false, "Show version")
)

// applyFlags copies the command-line settings into cfg.
func applyFlags(cfg *config.Config) {
	applyServerFlags(cfg)
	applySearchFlags(cfg)
	applyStorageFlags(cfg)

	switch {
	case *quiet:
		cfg.Verbosity = 0
	case *verbose:
		cfg.Verbosity = 2
	}
}

// applyServerFlags configures the listener and play sessions.
func applyServerFlags(cfg *config.Config) {
	cfg.Server.Addr = *addr
	cfg.Server.AllowOrigins = *allowOrigins
	cfg.Session.AutoReply = !*noAutoReply
	cfg.Session.Seed = *seed
}

// applySearchFlags configures the engine's search.
func applySearchFlags(cfg *config.Config) {
	cfg.Search.Depth = *depth
	cfg.Search.Algorithm = *algorithm
	cfg.Search.Workers = *workers
	cfg.Search.CacheSize = *cacheSize
}

// applyStorageFlags configures the game store.
func applyStorageFlags(cfg *config.Config) {
	cfg.Storage.Dir = *dataDir
	cfg.Storage.InMemory = *inMemory
}
