package searcher

import (
	"fmt"

	"gridgames/experiments/metrics"
	"gridgames/game"
)

// Result is the outcome of one search.
type Result struct {
	// Value is the score of the chosen move for the player who was to move.
	Value int
	// Move is the chosen entry of g.Moves(), nil when nothing could be searched.
	Move *game.Move
	// Line is the principal variation starting with Move.
	Line      []game.Move
	Cancelled bool
	Metrics   metrics.SearchMetric
}

// Search picks a move for the side to move in g. The board is left as it was found.
// A cancelled search still returns the best move among the replies it finished.
// When the rules panic on some move the search carries on without it and returns
// the first such failure as an *ExecutionError next to the result.
func Search(g *game.Game, ctx *SearchContext, cfg Config) (Result, error) {
	if g.IsGameOver() || len(g.Moves()) == 0 {
		return Result{}, ErrNoMoves
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}

	var run func(g *game.Game, node, depth, actualDepth int, alphaBeta bool, alpha, beta int) int
	alphaBeta := false
	switch cfg.Algorithm {
	case Minimax:
		run = ctx.minimax
	case MinimaxAlphaBeta:
		run, alphaBeta = ctx.minimax, true
	case Negamax:
		run = ctx.negamax
	case NegamaxAlphaBeta:
		run, alphaBeta = ctx.negamax, true
	default:
		return Result{}, fmt.Errorf("algorithm %d: %w", cfg.Algorithm, ErrUnknownAlgorithm)
	}

	ctx.begin(g, cfg)
	root := ctx.tree.Root()
	value := run(g, root, cfg.MaxDepth, 0, alphaBeta, -inf, inf)

	res := Result{Value: value, Cancelled: ctx.Cancelled()}
	if res.Cancelled {
		ctx.metrics.SetCancelled()
	}
	if best := ctx.tree.Node(root).Path; best != noNode {
		res.Move = ctx.tree.Node(best).source
		res.Line = ctx.tree.Line(root)
	}
	res.Metrics = ctx.metrics.Complete()

	event := ctx.logger.Debug().
		Str("algorithm", cfg.Algorithm.String()).
		Int("depth", cfg.MaxDepth).
		Int("value", res.Value).
		Bool("cancelled", res.Cancelled).
		Int("nodes", res.Metrics.Nodes)
	if res.Move != nil {
		event = event.Stringer("move", res.Move)
	}
	event.Msg("search finished")
	return res, ctx.err
}
