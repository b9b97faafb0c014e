package searcher

import (
	"errors"
	"fmt"
	"testing"

	"gridgames/experiments/metrics"
	"gridgames/game"
	"gridgames/rules"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

var algorithms = []Algorithm{Minimax, MinimaxAlphaBeta, Negamax, NegamaxAlphaBeta}

func newContext(collector metrics.Collector) *SearchContext {
	return NewSearchContext(rand.New(rand.NewSource(1)), collector, zerolog.Nop())
}

// backRankMate has the near rook one move away from mating the far king, which is
// walled in by its own pawns.
func backRankMate() *game.Game {
	return game.New(rules.NewChessPosition(func(b game.Board) {
		b.Place(0, 4, game.Near, game.ChessKing)
		b.Place(0, 0, game.Near, game.Rook)
		b.Place(7, 6, game.Far, game.ChessKing)
		b.Place(6, 5, game.Far, game.Pawn)
		b.Place(6, 6, game.Far, game.Pawn)
		b.Place(6, 7, game.Far, game.Pawn)
	}, game.Near))
}

func playMove(t *testing.T, g *game.Game, start, end game.Position) {
	t.Helper()
	for _, m := range g.Moves() {
		if m.Start == start && m.End == end {
			g.ExecuteMove(m)
			return
		}
	}
	require.FailNow(t, "move not listed", "%s-%s", start, end)
}

func TestTerminalPrefersFasterWins(t *testing.T) {
	g := backRankMate()
	ctx := newContext(nil)
	ctx.begin(g, Config{MaxDepth: 1})
	playMove(t, g, game.Pos(0, 0), game.Pos(7, 0))
	require.True(t, g.IsGameOver())

	require.Greater(t, ctx.terminal(g, game.Near, 1), ctx.terminal(g, game.Near, 3), "a mate in one beats a mate in three")
	require.Equal(t, -ctx.terminal(g, game.Near, 1), ctx.terminal(g, game.Far, 1))
	require.Less(t, ctx.terminal(g, game.Far, 1), ctx.terminal(g, game.Far, 3), "a loss is better postponed")
}

// queenMate offers mates in one (Qa8, Qg7) next to slower forced mates such as
// Qb1 Kg8 Qb8.
func queenMate() *game.Game {
	return game.New(rules.NewChessPosition(func(b game.Board) {
		b.Place(5, 6, game.Near, game.ChessKing)
		b.Place(0, 0, game.Near, game.Queen)
		b.Place(7, 7, game.Far, game.ChessKing)
	}, game.Near))
}

func TestSearchPrefersQuickerMate(t *testing.T) {
	g := queenMate()
	ctx := newContext(nil)
	res, err := Search(g, ctx, Config{Algorithm: Minimax, MaxDepth: 3})
	require.NoError(t, err)
	require.Equal(t, MaxValue-1, res.Value)

	slower := noNode
	tree := ctx.Tree()
	for _, child := range tree.Node(tree.Root()).Children {
		if m := tree.Node(child).Move; m.Start == game.Pos(0, 0) && m.End == game.Pos(0, 1) {
			slower = child
		}
	}
	require.NotEqual(t, noNode, slower)
	require.Equal(t, MaxValue-3, tree.Node(slower).Best, "the quiet queen move still mates, two plies later")

	g.ExecuteMove(res.Move)
	require.Equal(t, game.NearWins, g.State(), "the chosen move mates at once")
}

func TestSearchFindsMate(t *testing.T) {
	for _, a := range algorithms {
		for _, depth := range []int{1, 2} {
			t.Run(fmt.Sprintf("%s to depth %d", a, depth), func(t *testing.T) {
				g := backRankMate()
				before := g.Snapshot()

				res, err := Search(g, newContext(nil), Config{Algorithm: a, MaxDepth: depth})
				require.NoError(t, err)
				require.NotNil(t, res.Move)
				require.Equal(t, game.Pos(0, 0), res.Move.Start)
				require.Equal(t, game.Pos(7, 0), res.Move.End)
				require.Equal(t, MaxValue-1, res.Value, "mate is delivered by the first move")
				require.Len(t, res.Line, 1)
				require.Contains(t, g.Moves(), res.Move, "the result points into the legal move list")
				require.Equal(t, before, g.Snapshot(), "the search leaves the board as it found it")
			})
		}
	}
}

func TestAlphaBetaAgreesWithMinimax(t *testing.T) {
	g := game.New(rules.NewEnglish(), game.WithSeed(1))
	before := g.Snapshot()

	values := map[Algorithm]int{}
	nodes := map[Algorithm]int{}
	for _, a := range algorithms {
		collector := metrics.NewCollector()
		res, err := Search(g, newContext(collector), Config{Algorithm: a, MaxDepth: 3})
		require.NoError(t, err)
		require.NotNil(t, res.Move)
		require.Equal(t, before, g.Snapshot())
		values[a] = res.Value
		nodes[a] = res.Metrics.Nodes
		require.Equal(t, a.String(), res.Metrics.Algorithm)
	}

	require.Equal(t, values[Minimax], values[MinimaxAlphaBeta])
	require.Equal(t, values[Minimax], values[Negamax], "both conventions agree at the root")
	require.Equal(t, values[Minimax], values[NegamaxAlphaBeta])
	require.Less(t, nodes[MinimaxAlphaBeta], nodes[Minimax], "pruning visits fewer nodes")
	require.Less(t, nodes[NegamaxAlphaBeta], nodes[Negamax])
}

func TestSearchErrors(t *testing.T) {
	t.Run("a finished game has nothing to search", func(t *testing.T) {
		g := backRankMate()
		playMove(t, g, game.Pos(0, 0), game.Pos(7, 0))
		require.True(t, g.IsGameOver())
		_, err := Search(g, newContext(nil), Config{Algorithm: Negamax, MaxDepth: 2})
		require.ErrorIs(t, err, ErrNoMoves)
	})

	t.Run("an unknown algorithm is rejected", func(t *testing.T) {
		_, err := Search(backRankMate(), newContext(nil), Config{Algorithm: Algorithm(42)})
		require.ErrorIs(t, err, ErrUnknownAlgorithm)
	})

	t.Run("a panicking move is skipped and reported", func(t *testing.T) {
		bad := game.Pos(2, 0)
		g := game.New(&faultyRules{Rules: rules.NewEnglish(), start: bad})
		before := g.Snapshot()

		res, err := Search(g, newContext(nil), Config{Algorithm: MinimaxAlphaBeta, MaxDepth: 2})
		var execErr *ExecutionError
		require.ErrorAs(t, err, &execErr)
		require.Equal(t, bad, execErr.Move.Start)
		require.Empty(t, execErr.Path, "the failing move was a root move")
		require.ErrorIs(t, err, errBroken)

		require.NotNil(t, res.Move, "the other moves are still searched")
		require.NotEqual(t, bad, res.Move.Start)
		require.Equal(t, before, g.Snapshot())
	})
}

func TestUndoFailureAbortsSearch(t *testing.T) {
	t.Run("a root move that cannot be taken back", func(t *testing.T) {
		bad := game.Pos(2, 0)
		g := game.New(&unreversibleRules{Rules: rules.NewEnglish(), start: bad})

		var res Result
		var err error
		require.NotPanics(t, func() {
			res, err = Search(g, newContext(nil), Config{Algorithm: MinimaxAlphaBeta, MaxDepth: 2})
		})
		var execErr *ExecutionError
		require.ErrorAs(t, err, &execErr)
		require.Equal(t, bad, execErr.Move.Start)
		require.True(t, execErr.Undo)
		require.Empty(t, execErr.Path)
		require.ErrorIs(t, err, errBroken)
		require.False(t, res.Cancelled)
	})

	t.Run("a reply that cannot be taken back names the reply", func(t *testing.T) {
		bad := game.Pos(5, 1)
		g := game.New(&unreversibleRules{Rules: rules.NewEnglish(), start: bad})
		collector := metrics.NewCollector()

		_, err := Search(g, newContext(collector), Config{Algorithm: Minimax, MaxDepth: 2})
		var execErr *ExecutionError
		require.ErrorAs(t, err, &execErr)
		require.Equal(t, bad, execErr.Move.Start)
		require.Equal(t, game.Far, execErr.Move.Player)
		require.True(t, execErr.Undo)
		require.Contains(t, execErr.Path, "near slide", "the path leads through the near move before it")
		require.Contains(t, err.Error(), "taking back far slide b6")

		require.Less(t, collector.Complete().Nodes, 20, "the search stopped at the failure")
	})
}

func TestCancel(t *testing.T) {
	ctx := newContext(metrics.NewCollector())
	g := game.New(&cancellingRules{Rules: rules.NewEnglish(), ctx: ctx, after: 10})
	before := g.Snapshot()

	res, err := Search(g, ctx, Config{Algorithm: Minimax, MaxDepth: 2})
	require.NoError(t, err)
	require.True(t, res.Cancelled)
	require.True(t, res.Metrics.Cancelled)
	require.NotNil(t, res.Move, "the first reply finished before the cancel and is kept")
	require.Contains(t, g.Moves(), res.Move)
	require.Len(t, ctx.Tree().Node(ctx.Tree().Root()).Children, 1, "unfinished replies are dropped")
	require.Equal(t, before, g.Snapshot())

	t.Run("the next search starts uncancelled", func(t *testing.T) {
		res, err := Search(game.New(rules.NewEnglish()), ctx, Config{Algorithm: Minimax, MaxDepth: 1})
		require.NoError(t, err)
		require.False(t, res.Cancelled)
	})
}

func TestRandomizeDuplicates(t *testing.T) {
	g := game.New(rules.NewEnglish())
	plain, err := Search(g, newContext(nil), Config{Algorithm: Minimax, MaxDepth: 1})
	require.NoError(t, err)
	jittered, err := Search(g, newContext(nil), Config{Algorithm: Minimax, MaxDepth: 1, RandomizeDuplicates: true})
	require.NoError(t, err)

	require.GreaterOrEqual(t, jittered.Value, plain.Value*100)
	require.Less(t, jittered.Value, plain.Value*100+100)
}

func TestParseAlgorithm(t *testing.T) {
	for _, a := range algorithms {
		got, err := ParseAlgorithm(a.String())
		require.NoError(t, err)
		require.Equal(t, a, got)
	}
	got, err := ParseAlgorithm("Negamax-AB")
	require.NoError(t, err)
	require.Equal(t, NegamaxAlphaBeta, got)

	_, err = ParseAlgorithm("mcts")
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
}

var errBroken = errors.New("broken move")

// faultyRules panics after applying any move from start, leaving the board consistent.
type faultyRules struct {
	game.Rules
	start game.Position
}

func (r *faultyRules) ExecuteMove(g *game.Game, m *game.Move) {
	r.Rules.ExecuteMove(g, m)
	if m.Start == r.start {
		panic(errBroken)
	}
}

// unreversibleRules panics when asked to take back any move from start, before
// touching the board.
type unreversibleRules struct {
	game.Rules
	start game.Position
}

func (r *unreversibleRules) ReverseMove(g *game.Game, m *game.Move) {
	if m.Start == r.start {
		panic(errBroken)
	}
	r.Rules.ReverseMove(g, m)
}

// cancellingRules cancels the search on its n-th evaluation.
type cancellingRules struct {
	game.Rules
	ctx   *SearchContext
	after int
	calls int
}

func (r *cancellingRules) Evaluate(g *game.Game) int {
	r.calls++
	if r.calls == r.after {
		r.ctx.Cancel()
	}
	return r.Rules.Evaluate(g)
}
