package engine

import (
	"fmt"
	"sync"
	"time"

	"gridgames/experiments/metrics"
	"gridgames/game"
	"gridgames/searcher"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
)

type Option func(e *LocalEngine)

// Canceller is implemented by players whose thinking can be cut short.
type Canceller interface {
	Cancel()
}

// Reporter is implemented by players that search, so that the engine can record
// what the search saw.
type Reporter interface {
	LastResult() searcher.Result
}

// LocalEngine drives a game between two in-process players. Every turn transition
// happens under one lock, so a UI goroutine may call Undo or NewGame while another
// goroutine runs the game loop.
type LocalEngine struct {
	mu      sync.Mutex
	game    *game.Game
	players [2]game.Player
	budget  time.Duration
	logger  zerolog.Logger

	id    uuid.UUID
	first game.PlayerNum
	start time.Time
	moves []metrics.MoveMetric
}

// WithBudget cancels a player's search once it has thought for budget.
func WithBudget(budget time.Duration) Option {
	return func(e *LocalEngine) {
		if budget > 0 {
			e.budget = budget
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *LocalEngine) {
		e.logger = logger
	}
}

func NewLocalEngine(g *game.Game, near, far game.Player, options ...Option) *LocalEngine {
	if g == nil {
		panic("engine needs a game")
	}
	if near == nil || far == nil {
		panic("engine needs two players")
	}
	e := &LocalEngine{
		game:    g,
		players: [2]game.Player{near, far},
		logger:  zerolog.Nop(),
	}
	for _, option := range options {
		option(e)
	}
	e.begin()
	return e
}

func (e *LocalEngine) begin() {
	e.id = uuid.New()
	e.first = e.game.Turn()
	e.start = time.Now()
	e.moves = nil
	for _, p := range e.players {
		if r, ok := p.(game.Resetter); ok {
			r.Reset()
		}
	}
}

// ID identifies the current game in logs and records.
func (e *LocalEngine) ID() uuid.UUID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.id
}

// NewGame sets up a fresh position and resets both players.
func (e *LocalEngine) NewGame() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.game.NewGame()
	e.begin()
	e.logger.Info().Str("game", e.id.String()).Str("variant", e.game.Rules().Name()).
		Msgf("%s is starting", e.first)
}

// Step asks the side to move for a piece and then for one of its moves, and plays it.
func (e *LocalEngine) Step() (*game.Move, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.step()
}

// advance plays one move unless the game is decided or has reached maxMoves.
func (e *LocalEngine) advance(maxMoves int) (done bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.game.IsGameOver() || e.game.UndoDepth() >= maxMoves {
		return true, nil
	}
	_, err = e.step()
	return false, err
}

func (e *LocalEngine) step() (*game.Move, error) {
	g := e.game
	if g.IsGameOver() {
		return nil, ErrGameOver
	}
	mover := g.Turn()
	p := e.players[mover]

	legal := g.Moves()
	var pieces []*game.Piece
	for piece := range g.Pieces(mover) {
		if piece.NumMoves > 0 {
			pieces = append(pieces, piece)
		}
	}

	if c, ok := p.(Canceller); ok && e.budget > 0 {
		timer := time.AfterFunc(e.budget, c.Cancel)
		defer timer.Stop()
	}

	piece := p.ChoosePieceToMove(g, pieces)
	if piece == nil {
		return nil, fmt.Errorf("%s chose no piece: %w", mover, ErrNoMove)
	}
	var moves []*game.Move
	for _, m := range legal {
		if m.Start == piece.Position {
			moves = append(moves, m)
		}
	}
	if len(moves) == 0 {
		return nil, fmt.Errorf("%s chose %s which cannot move: %w", mover, piece.Position, ErrNoMove)
	}
	m := p.ChooseMoveForPiece(g, moves)
	if m == nil || !contains(moves, m) {
		return nil, fmt.Errorf("%s chose no move for %s: %w", mover, piece.Position, ErrNoMove)
	}

	g.ExecuteMove(m)

	record := metrics.MoveMetric{
		Step:   len(e.moves) + 1,
		Player: mover,
		Move:   m.String(),
	}
	if r, ok := p.(Reporter); ok {
		res := r.LastResult()
		record.Value = res.Value
		record.SearchMetric = res.Metrics
	}
	e.moves = append(e.moves, record)

	e.logger.Debug().
		Str("game", e.id.String()).
		Int("step", record.Step).
		Stringer("move", m).
		Stringer("state", g.State()).
		Msg("move played")
	return m, nil
}

func contains(moves []*game.Move, m *game.Move) bool {
	for _, c := range moves {
		if c == m {
			return true
		}
	}
	return false
}

// Undo takes back the last move, mid-turn continuations included.
func (e *LocalEngine) Undo() (*game.Move, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.game.UndoDepth() == 0 {
		return nil, ErrNothingToUndo
	}
	m := e.game.Undo()
	if n := len(e.moves); n > 0 {
		e.moves = e.moves[:n-1]
	}
	e.logger.Debug().Str("game", e.id.String()).Stringer("move", m).Msg("move taken back")
	return m, nil
}

// Run plays until the game is decided or maxMoves moves have been made in total.
// The returned records belong to the caller.
func (e *LocalEngine) Run(maxMoves int) (metrics.GameMetric, []metrics.MoveMetric, error) {
	if maxMoves <= 0 || maxMoves > MaxMoves {
		maxMoves = MaxMoves
	}
	e.mu.Lock()
	e.logger.Info().Str("game", e.id.String()).Msgf("%s is starting", e.first)
	e.mu.Unlock()

	for {
		done, err := e.advance(maxMoves)
		if err != nil {
			result, moves := e.results()
			return result, moves, err
		}
		if done {
			break
		}
	}

	result, moves := e.results()
	if result.State == game.Playing {
		e.logger.Info().Msgf("stopped after %d moves without a result", result.TotalMoves)
	} else {
		e.logger.Info().Msgf("game over after %d moves: %s", result.TotalMoves, result.State)
	}
	return result, moves, nil
}

// Moves returns a copy of the records of the moves played so far.
func (e *LocalEngine) Moves() []metrics.MoveMetric {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.moves)
}

func (e *LocalEngine) results() (metrics.GameMetric, []metrics.MoveMetric) {
	e.mu.Lock()
	defer e.mu.Unlock()
	end := time.Now()
	return metrics.GameMetric{
		StartingPlayer: e.first,
		Winner:         e.game.Winner(),
		State:          e.game.State(),
		StartTime:      e.start,
		EndTime:        end,
		Duration:       end.Sub(e.start),
		TotalMoves:     e.game.UndoDepth(),
	}, slices.Clone(e.moves)
}
