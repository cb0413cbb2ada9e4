// Package processing replays recorded games, validates them and summarises
// what happened in them.
package processing

import (
	"fmt"

	"github.com/lgbarn/chaichess-go/internal/chess"
	"github.com/lgbarn/chaichess-go/internal/engine"
)

// GameAnalysis holds analysis results from replaying a game.
type GameAnalysis struct {
	Plies             int  `json:"plies"`
	Captures          int  `json:"captures"`
	EnPassantCaptures int  `json:"enPassantCaptures"`
	Castles           int  `json:"castles"`
	Promotions        int  `json:"promotions"`
	Underpromotions   int  `json:"underpromotions"`
	Checks            int  `json:"checks"`
	FiftyMoveRule     bool `json:"fiftyMoveRule"`

	// Status of the final state
	Status string `json:"status"`

	// Material balance of the final state, positive for White
	Material int `json:"material"`
}

// ValidationResult holds the result of game validation.
type ValidationResult struct {
	Valid    bool   `json:"valid"`
	ErrorPly int    `json:"errorPly,omitempty"`
	ErrorMsg string `json:"errorMsg,omitempty"`
}

// Report is the analysis of a game together with its validation.
type Report struct {
	Analysis   GameAnalysis     `json:"analysis"`
	Validation ValidationResult `json:"validation"`
}

// Material scores the pieces on the board. It is a function so that callers
// can plug in the same heuristic their search uses.
type Material func(state chess.GameState) int

// ReplayStep identifies the legal move leading from one state to the next.
// It fails when next is not a legal successor of state.
func ReplayStep(state, next chess.GameState) (engine.Move, error) {
	for _, m := range engine.LegalMoveList(state) {
		if m.State == next {
			return m, nil
		}
	}
	return engine.Move{}, fmt.Errorf("no legal move from ply %d leads to %s", state.Ply, engine.FEN(next))
}

// ValidateGame checks that each state of the game is a legal successor of
// the one before it. states runs from the first recorded state to the
// current one.
func ValidateGame(states []chess.GameState) ValidationResult {
	for i := 1; i < len(states); i++ {
		if _, err := ReplayStep(states[i-1], states[i]); err != nil {
			return ValidationResult{ErrorPly: states[i].Ply, ErrorMsg: err.Error()}
		}
	}
	return ValidationResult{Valid: true}
}

// AnalyzeGame replays the game and counts its notable moves. Replay stops
// at the first step that is not a legal move.
func AnalyzeGame(states []chess.GameState, material Material) Report {
	report := Report{Validation: ValidationResult{Valid: true}}
	if len(states) == 0 {
		return report
	}
	analysis := &report.Analysis

	for i := 1; i < len(states); i++ {
		prev, next := states[i-1], states[i]
		move, err := ReplayStep(prev, next)
		if err != nil {
			report.Validation = ValidationResult{ErrorPly: next.Ply, ErrorMsg: err.Error()}
			break
		}
		analysis.Plies++
		countMove(analysis, prev, move)

		if engine.InCheck(next) {
			analysis.Checks++
		}
		if next.FiftyMoveRuleDraw() {
			analysis.FiftyMoveRule = true
		}
	}

	final := states[len(states)-1]
	analysis.Status = engine.GameStatus(final).String()
	if material != nil {
		analysis.Material = material(final)
	}
	return report
}

// countMove classifies move as played from prev.
func countMove(analysis *GameAnalysis, prev chess.GameState, move engine.Move) {
	piece := prev.Board.Get(move.From)
	fromCol, toCol := move.From.Col(), move.Destination.Col()

	switch {
	case !prev.Board.IsEmpty(move.Destination):
		analysis.Captures++
	case piece.Kind.Moved() == chess.Pawn && fromCol != toCol:
		analysis.Captures++
		analysis.EnPassantCaptures++
	case piece.Kind == chess.UnmovedKing && (toCol-fromCol == 2 || fromCol-toCol == 2):
		analysis.Castles++
	}

	if move.Promotion != chess.Empty {
		analysis.Promotions++
		if move.Promotion != chess.Queen {
			analysis.Underpromotions++
		}
	}
}
