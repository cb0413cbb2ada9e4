// Package errors provides sentinel errors and error types for the chess engine.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidSquare indicates a square outside the board.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrEmptySquare indicates moves were requested for an unoccupied square.
	ErrEmptySquare = errors.New("no piece on square")

	// ErrNotYourPiece indicates moves were requested for a piece of the side not to move.
	ErrNotYourPiece = errors.New("piece does not belong to the side to move")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrNoLegalMoves indicates the side to move is checkmated, stalemated or drawn.
	ErrNoLegalMoves = errors.New("no legal moves")

	// ErrMissingKing indicates a board without a king for the queried player.
	// It is an invariant violation and is raised by panicking.
	ErrMissingKing = errors.New("king missing from board")

	// ErrInvalidState indicates an encoded game state that fails validation.
	ErrInvalidState = errors.New("invalid game state")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrGameNotFound indicates an unknown game id.
	ErrGameNotFound = errors.New("game not found")

	// ErrGameChanged indicates a game was moved by another request while
	// an update was being prepared.
	ErrGameChanged = errors.New("game changed concurrently")
)

// StateError wraps errors with position context: the ply at which the
// problem occurred and the square involved. It implements the error
// interface and supports unwrapping via errors.Is() and errors.As().
type StateError struct {
	Err    error  // The underlying error
	Ply    int    // Ply of the state the error refers to
	Square string // Algebraic square name (if applicable)
	Detail string // Extra detail (if applicable)
}

// Error returns a formatted error message including all available context.
func (e *StateError) Error() string {
	parts := []string{fmt.Sprintf("ply %d", e.Ply)}

	if e.Square != "" {
		parts = append(parts, fmt.Sprintf("square %s", e.Square))
	}

	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}

	context := strings.Join(parts, ", ")

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the StateError wrapper.
func (e *StateError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
