package engine

import "github.com/lgbarn/chaichess-go/internal/chess"

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns the sign of x: -1, 0, or 1.
func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

// midpoint returns the square halfway between two squares on the same file
// that are two rows apart.
func midpoint(a, b chess.Square) chess.Square {
	return (a + b) / 2
}
