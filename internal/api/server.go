// Package api serves games over HTTP and websockets.
//
// REST routes live under /api and a play session per game under /ws. Game
// states are exchanged in the codec wire form.
package api

import (
	"io"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chaichess-go/internal/config"
	"github.com/lgbarn/chaichess-go/internal/search"
	"github.com/lgbarn/chaichess-go/internal/store"
)

// Server holds the dependencies of the handlers.
type Server struct {
	store *store.Store
	bot   *search.Bot
	cfg   *config.Config
	log   *log.Logger
}

// NewServer creates a Server. A nil logger discards diagnostics.
func NewServer(st *store.Store, bot *search.Bot, cfg *config.Config, lg *log.Logger) *Server {
	if lg == nil {
		lg = log.New(io.Discard, "", 0)
	}
	return &Server{
		store: st,
		bot:   bot,
		cfg:   cfg,
		log:   lg,
	}
}

// App builds the fiber application with every route registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "chaichess",
		DisableStartupMessage: s.cfg.Verbosity < 1,
		ErrorHandler:          s.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: s.cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))
	if s.cfg.Verbosity >= 2 {
		app.Use(logger.New(logger.Config{Output: s.cfg.LogFile}))
	}

	api := app.Group("/api")
	api.Post("/analyze", s.Analyze)

	games := api.Group("/games")
	games.Get("/", s.ListGames)
	games.Post("/", s.CreateGame)
	games.Get("/:id", s.GetGame)
	games.Delete("/:id", s.DeleteGame)
	games.Get("/:id/moves", s.LegalMoves)
	games.Post("/:id/moves", s.PlayMove)
	games.Post("/:id/engine", s.EngineMove)
	games.Get("/:id/report", s.GameReport)

	app.Use("/ws", requireUpgrade)
	app.Get("/ws/games/:id", websocket.New(s.HandleSession, websocket.Config{
		ReadBufferSize:  s.cfg.Server.ReadBufferSize,
		WriteBufferSize: s.cfg.Server.WriteBufferSize,
		Origins:         splitOrigins(s.cfg.Server.AllowOrigins),
	}))

	return app
}

// cacheStats is implemented by search caches that count their lookups.
type cacheStats interface {
	Len() int
	IsFull() bool
	Stats() (hits, misses int)
}

// logCacheStats reports the bot cache's occupancy at verbosity 2.
func (s *Server) logCacheStats() {
	if s.cfg.Verbosity < 2 {
		return
	}
	cache, ok := s.bot.Cache.(cacheStats)
	if !ok {
		return
	}
	hits, misses := cache.Stats()
	s.log.Printf("search cache: %d entries (full %v), %d hits, %d misses",
		cache.Len(), cache.IsFull(), hits, misses)
}

// requireUpgrade rejects plain HTTP requests to websocket routes.
func requireUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return c.Next()
}

func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
