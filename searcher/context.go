package searcher

import (
	"sync/atomic"
	"time"

	"gridgames/experiments/metrics"
	"gridgames/game"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// SearchContext carries everything one search shares across its recursion. The
// caller owns it; Cancel may be called from any goroutine.
type SearchContext struct {
	cancelled atomic.Bool
	aborted   atomic.Bool // a move could not be taken back, the board is no longer trusted
	tree      *Tree
	metrics   metrics.Collector
	rng       *rand.Rand
	logger    zerolog.Logger

	randomize bool
	root      game.PlayerNum
	err       error // first execution failure of the current search
}

func NewSearchContext(rng *rand.Rand, collector metrics.Collector, logger zerolog.Logger) *SearchContext {
	if rng == nil {
		rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if collector == nil {
		collector = metrics.NewDummyCollector()
	}
	return &SearchContext{
		tree:    newTree(),
		metrics: collector,
		rng:     rng,
		logger:  logger,
	}
}

// Cancel makes every pending call of the running search return at once.
func (c *SearchContext) Cancel()         { c.cancelled.Store(true) }
func (c *SearchContext) Cancelled() bool { return c.cancelled.Load() }
func (c *SearchContext) Tree() *Tree     { return c.tree }

// stopped reports whether the running search must unwind without playing further moves.
func (c *SearchContext) stopped() bool { return c.cancelled.Load() || c.aborted.Load() }

func (c *SearchContext) begin(g *game.Game, cfg Config) {
	c.cancelled.Store(false)
	c.aborted.Store(false)
	c.tree.reset()
	c.randomize = cfg.RandomizeDuplicates
	c.root = g.Turn()
	c.err = nil
	c.metrics.Start(cfg.Algorithm.String(), cfg.MaxDepth)
}

// play executes m under node, runs fn and takes m back. A panic raised by the rules
// on either side is turned into an ExecutionError. When taking m back fails the search
// is aborted, since the board can no longer be trusted.
func (c *SearchContext) play(g *game.Game, node int, m *game.Move, fn func() int) (value int, err error) {
	depth := g.UndoDepth()
	defer func() {
		if r := recover(); r != nil {
			value, err = 0, c.fail(m, c.tree.PathTo(c.tree.Node(node).Parent), false, r)
		}
		if g.UndoDepth() > depth {
			if undoErr := c.undo(g, node, m); undoErr != nil {
				value, err = 0, undoErr
			}
		}
	}()
	g.ExecuteMove(m)
	return fn(), nil
}

func (c *SearchContext) undo(g *game.Game, node int, m *game.Move) (err error) {
	defer func() {
		if r := recover(); r != nil {
			c.aborted.Store(true)
			err = c.fail(m, c.tree.PathTo(c.tree.Node(node).Parent), true, r)
		}
	}()
	g.Undo()
	return nil
}

// fail logs a rules panic and keeps the first one for the caller of Search.
func (c *SearchContext) fail(m *game.Move, path string, undo bool, r any) error {
	execErr := &ExecutionError{Move: *m, Path: path, Undo: undo, Cause: panicError(r)}
	c.logger.Error().
		Err(execErr.Cause).
		Stringer("move", m).
		Str("path", execErr.Path).
		Bool("undo", undo).
		Msg("search failed to play move")
	if c.err == nil {
		c.err = execErr
	}
	return execErr
}

// terminal scores a finished game for the given perspective.
func (c *SearchContext) terminal(g *game.Game, perspective game.PlayerNum, actualDepth int) int {
	switch g.Winner() {
	case perspective:
		return MaxValue - actualDepth
	case game.Nobody:
		return 0
	}
	return -(MaxValue - actualDepth)
}

// leaf evaluates a position for the given perspective. Among equal evaluations the
// shallower one wins a gain sooner and suffers a loss later.
func (c *SearchContext) leaf(g *game.Game, perspective game.PlayerNum, actualDepth int) int {
	start := time.Now()
	e := g.Rules().Evaluate(g)
	c.metrics.AddEvaluation(time.Since(start))
	if g.Turn() != perspective {
		e = -e
	}
	switch {
	case e > 0:
		e -= actualDepth
	case e < 0:
		e += actualDepth
	}
	if c.randomize {
		e = e*100 + c.rng.Intn(100)
	}
	return e
}
