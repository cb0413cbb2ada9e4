// chaichess-server serves chess games against a minimax engine over HTTP
// and websockets.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lgbarn/chaichess-go/internal/api"
	"github.com/lgbarn/chaichess-go/internal/config"
	"github.com/lgbarn/chaichess-go/internal/engine"
	"github.com/lgbarn/chaichess-go/internal/search"
	"github.com/lgbarn/chaichess-go/internal/store"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chaichess-server version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	setupLogFile(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := log.New(cfg.LogFile, "chaichess: ", log.LstdFlags)

	bot, err := cfg.Bot()
	if err != nil {
		logger.Fatal(err)
	}

	if *analyze != "" {
		if err := runAnalysis(os.Stdout, bot, *analyze); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	st, err := store.Open(cfg.Storage.Dir, cfg.Storage.InMemory)
	if err != nil {
		logger.Fatal(err)
	}
	defer st.Close()

	app := api.NewServer(st, bot, cfg, logger).App()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		if cfg.Verbosity > 0 {
			logger.Println("shutting down")
		}
		_ = app.Shutdown()
	}()

	if err := app.Listen(cfg.Server.Addr); err != nil {
		logger.Printf("listen: %v", err)
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.SetLogFile(file)
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			os.Exit(1)
		}
		cfg.SetLogFile(file)
	}
}

// runAnalysis searches the position in fen and writes the value, the node
// count and every best successor as FEN.
func runAnalysis(w io.Writer, bot *search.Bot, fen string) error {
	state, err := engine.ParseFEN(fen)
	if err != nil {
		return err
	}
	if status := engine.GameStatus(state); status.IsTerminal() {
		fmt.Fprintf(w, "status: %v\n", status)
		return nil
	}

	res := bot.Search(state)
	fmt.Fprintf(w, "value: %d\nnodes: %d\n", res.Value, res.Nodes)
	for _, next := range res.Best {
		fmt.Fprintln(w, engine.FEN(next))
	}
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chaichess-server [options]\n\n")
	fmt.Fprintf(os.Stderr, "Serves chess games against a minimax engine.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nRoutes:\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/games              new game (optional {\"fen\"})\n")
	fmt.Fprintf(os.Stderr, "  GET    /api/games/:id          game with history\n")
	fmt.Fprintf(os.Stderr, "  GET    /api/games/:id/moves    legal moves of ?square=\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/games/:id/moves    play {\"from\", \"to\", \"promotion\"}\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/games/:id/engine   engine move\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/analyze            search a posted state\n")
	fmt.Fprintf(os.Stderr, "  GET    /ws/games/:id           websocket play session\n")
}
