package searcher

import (
	"time"

	"gridgames/experiments/metrics"
	"gridgames/game"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

type Option func(ai *AIPlayer)

// AIPlayer is a game.Player that searches once per turn and then plays out the
// moves of the turn it found, re-searching if the game took another course.
type AIPlayer struct {
	cfg     Config
	seed    uint64
	seeded  bool
	metrics metrics.Collector
	logger  zerolog.Logger

	ctx  *SearchContext
	plan []game.Move
	last Result
}

func WithAlgorithm(a Algorithm) Option {
	return func(ai *AIPlayer) {
		ai.cfg.Algorithm = a
	}
}

func WithMaxDepth(depth int) Option {
	return func(ai *AIPlayer) {
		if depth > 0 {
			ai.cfg.MaxDepth = depth
		}
	}
}

func WithRandomizeDuplicates(on bool) Option {
	return func(ai *AIPlayer) {
		ai.cfg.RandomizeDuplicates = on
	}
}

func WithSeed(seed uint64) Option {
	return func(ai *AIPlayer) {
		ai.seed, ai.seeded = seed, true
	}
}

func WithMetrics() Option {
	return func(ai *AIPlayer) {
		ai.metrics = metrics.NewCollector()
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(ai *AIPlayer) {
		ai.logger = logger
	}
}

func NewAIPlayer(options ...Option) *AIPlayer {
	ai := &AIPlayer{ // Default values
		cfg:     Config{Algorithm: NegamaxAlphaBeta, MaxDepth: DefaultMaxDepth},
		metrics: metrics.NewDummyCollector(),
		logger:  zerolog.Nop(),
	}
	for _, option := range options {
		option(ai)
	}
	if !ai.seeded {
		ai.seed = uint64(time.Now().UnixNano())
	}
	ai.ctx = NewSearchContext(rand.New(rand.NewSource(ai.seed)), ai.metrics, ai.logger)
	return ai
}

func (ai *AIPlayer) Config() Config { return ai.cfg }

// LastResult is the result of the most recent search, metrics included.
func (ai *AIPlayer) LastResult() Result { return ai.last }

// Cancel stops a search in progress. The player then moves with what it has.
func (ai *AIPlayer) Cancel() { ai.ctx.Cancel() }

func (ai *AIPlayer) Reset() {
	ai.plan = nil
	ai.last = Result{}
}

func (ai *AIPlayer) ChoosePieceToMove(g *game.Game, pieces []*game.Piece) *game.Piece {
	next := ai.next(g)
	if next == nil {
		return nil
	}
	for _, p := range pieces {
		if p.Position == next.Start {
			return p
		}
	}
	ai.plan = nil
	if len(pieces) == 0 {
		return nil
	}
	return pieces[0]
}

func (ai *AIPlayer) ChooseMoveForPiece(g *game.Game, moves []*game.Move) *game.Move {
	if len(ai.plan) == 0 {
		ai.next(g)
	}
	if len(ai.plan) > 0 {
		head := ai.plan[0]
		ai.plan = ai.plan[1:]
		if m := find(moves, &head); m != nil {
			return m
		}
	}
	ai.plan = nil
	if len(moves) == 0 {
		return nil
	}
	return moves[0]
}

// next returns the legal move the plan starts with, searching for a new plan when
// the current one no longer fits the game.
func (ai *AIPlayer) next(g *game.Game) *game.Move {
	legal := g.Moves()
	if len(ai.plan) > 0 && ai.plan[0].Player == g.Turn() {
		if m := find(legal, &ai.plan[0]); m != nil {
			return m
		}
	}
	ai.plan = nil
	if len(legal) == 0 {
		return nil
	}

	res, err := Search(g, ai.ctx, ai.cfg)
	ai.last = res
	if err != nil {
		ai.logger.Warn().Err(err).Str("variant", g.Rules().Name()).Msg("search reported an error")
	}
	if res.Move == nil {
		ai.logger.Warn().Bool("cancelled", res.Cancelled).Msg("search found no move, playing the first legal one")
		ai.plan = []game.Move{*legal[0]}
		return legal[0]
	}

	for _, m := range res.Line {
		if m.Player != g.Turn() {
			break
		}
		ai.plan = append(ai.plan, m)
	}
	return res.Move
}

// find matches m against the listed moves. Swaps share their squares, so the
// resulting piece type must agree as well.
func find(moves []*game.Move, m *game.Move) *game.Move {
	for _, c := range moves {
		if c.Equals(m) && c.EndType == m.EndType {
			return c
		}
	}
	return nil
}
