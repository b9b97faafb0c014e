package engine

import (
	"errors"

	"gridgames/experiments/metrics"
)

// MaxMoves stops games that would otherwise never end, such as two kings chasing
// each other forever.
const MaxMoves = 10000

var (
	ErrNoMove        = errors.New("player offered no legal move")
	ErrGameOver      = errors.New("game is over")
	ErrNothingToUndo = errors.New("no move to undo")
)

type Engine interface {
	// Run plays the game till there's a winner or maxMoves moves have been made
	Run(maxMoves int) (metrics.GameMetric, []metrics.MoveMetric, error)
}
