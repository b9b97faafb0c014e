package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubRules is a race on a board with notched corners: pieces step straight ahead
// and the first to reach the far rank wins.
type stubRules struct{}

func (stubRules) Name() string { return "stub" }

func (stubRules) Init(g *Game) (Board, PlayerNum) {
	b := NewBoard(4, 3)
	b.Block(0, 0)
	b.Block(0, 2)
	b.Place(0, 1, Near, Checker)
	b.Place(1, 0, Near, Checker)
	b.Place(3, 1, Far, Checker)
	b.Place(3, 2, Far, Checker)
	return b, Near
}

func (stubRules) ComputeMoves(g *Game) []*Move {
	var moves []*Move
	for p := range g.Pieces(g.Turn()) {
		to := p.Position.Offset(p.Owner().Forward(), 0)
		if g.Contains(to) && g.Piece(to).IsEmpty() {
			moves = append(moves, NewMove(Slide, p.Owner()).SetStart(p.Position, p.Type).SetEnd(to, p.Type))
		}
	}
	return moves
}

func (stubRules) ExecuteMove(g *Game, m *Move) {
	g.MovePiece(m.Start, m.End)
	g.NextTurn()
}

func (stubRules) ReverseMove(g *Game, m *Move) {
	g.SetTurn(m.Player)
	g.MovePiece(m.End, m.Start)
}

func (stubRules) Winner(g *Game) PlayerNum {
	for p := range g.Pieces(Nobody) {
		if (p.Owner() == Near && p.Position.Rank() == g.Ranks()-1) || (p.Owner() == Far && p.Position.Rank() == 0) {
			return p.Owner()
		}
	}
	return Nobody
}

func (stubRules) IsDraw(g *Game) bool  { return len(g.Moves()) == 0 }
func (stubRules) Evaluate(g *Game) int { return 0 }

func requireLogicError(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value should be an error, got %v", r)
		var logic *LogicError
		require.True(t, errors.As(err, &logic), "panic should be a *LogicError, got %T", r)
	}()
	fn()
}

func TestPieceStack(t *testing.T) {
	t.Run("owner follows the top of the stack", func(t *testing.T) {
		p := newPiece(Pos(0, 0))
		require.Equal(t, Nobody, p.Owner())
		p.SetType(Checker)
		p.SetOwner(Near)
		p.AddStackTop(Far)
		p.AddStackBottom(Near)
		require.Equal(t, []PlayerNum{Near, Near, Far}, p.Stack)
		require.Equal(t, Far, p.Owner())
		require.Equal(t, Far, p.StackAt(0))
		require.Equal(t, Near, p.StackAt(2))

		require.Equal(t, Near, p.RemoveStackBottom())
		require.Equal(t, Far, p.RemoveStackTop())
		require.Equal(t, Near, p.Owner())
		require.Equal(t, 1, p.StackSize())

		p.Clear()
		require.True(t, p.IsEmpty())
		require.Zero(t, p.StackSize())
	})

	t.Run("misuse panics", func(t *testing.T) {
		p := newPiece(Pos(0, 0))
		requireLogicError(t, func() { p.RemoveStackTop() })
		requireLogicError(t, func() { p.RemoveStackBottom() })
		requireLogicError(t, func() { p.StackAt(0) })
		requireLogicError(t, func() { p.SetType(Empty) })
		requireLogicError(t, func() { p.SetOwner(Nobody) })
	})

	t.Run("copy keeps the position", func(t *testing.T) {
		a, b := newPiece(Pos(1, 1)), newPiece(Pos(2, 2))
		a.SetType(King)
		a.SetOwner(Far)
		a.AddStackBottom(Near)
		b.CopyFrom(a)
		require.Equal(t, Pos(2, 2), b.Position)
		require.Equal(t, King, b.Type)
		require.Equal(t, a.Stack, b.Stack)
		a.RemoveStackTop()
		require.Equal(t, 2, b.StackSize(), "stacks are not shared")
	})
}

func TestMoveBuilder(t *testing.T) {
	m := NewMove(Jump, Near).SetStart(Pos(2, 2), Checker).SetEnd(Pos(4, 4), Checker).SetCaptured(Pos(3, 3), King)
	require.True(t, m.IsJump())
	require.True(t, m.HasCaptured())
	require.False(t, m.HasOpponentKing())
	require.Equal(t, Checker.Value()+10*King.Value(), m.CompareValue)
	require.Equal(t, "near jump c3-e5 x d4", m.String())

	same := NewMove(Jump, Near).SetStart(Pos(2, 2), Checker).SetEnd(Pos(4, 4), King).SetCaptured(Pos(3, 3), Checker)
	require.True(t, m.Equals(same), "types do not take part in equality")
	other := NewMove(Jump, Far).SetStart(Pos(2, 2), Checker).SetEnd(Pos(4, 4), Checker)
	require.False(t, m.Equals(other))
	require.False(t, m.Equals(nil))

	requireLogicError(t, func() { NewMove(Slide, Near).SetEnd(Pos(0, 0), Empty) })
	requireLogicError(t, func() { NewMove(Slide, Near).SetCaptured(Pos(0, 0), Blocked) })
}

func TestPosition(t *testing.T) {
	p := Pos(3, 5)
	require.Equal(t, 3, p.Rank())
	require.Equal(t, 5, p.Col())
	require.Equal(t, "f4", p.String())
	require.Equal(t, Pos(4, 4), p.Offset(1, -1))
	require.Equal(t, "-", NoPosition.String())
}

func TestGame(t *testing.T) {
	t.Run("blocked cells are off the board", func(t *testing.T) {
		g := New(stubRules{})
		require.False(t, g.IsOnBoard(0, 0))
		require.True(t, g.IsOnBoard(1, 0))
		require.False(t, g.IsOnBoard(4, 1))
		require.False(t, g.Contains(Pos(-1, 1)))
		require.False(t, g.Contains(NoPosition))
		requireLogicError(t, func() { g.Piece(Pos(5, 0)) })
	})

	t.Run("pieces are scanned from each side's home rank", func(t *testing.T) {
		g := New(stubRules{})
		var near, far, all []Position
		for p := range g.Pieces(Near) {
			near = append(near, p.Position)
		}
		for p := range g.Pieces(Far) {
			far = append(far, p.Position)
		}
		for p := range g.Pieces(Nobody) {
			all = append(all, p.Position)
		}
		require.Equal(t, []Position{Pos(0, 1), Pos(1, 0)}, near)
		require.Equal(t, []Position{Pos(3, 1), Pos(3, 2)}, far)
		require.Equal(t, []Position{Pos(0, 1), Pos(1, 0), Pos(3, 1), Pos(3, 2)}, all)
		require.Equal(t, 2, g.NumPieces(Near))
	})

	t.Run("execute and undo are inverses", func(t *testing.T) {
		g := New(stubRules{}, WithSeed(1))
		initial := g.Snapshot()
		moves := g.Moves()
		require.Len(t, moves, 2)
		require.Equal(t, 1, g.Piece(Pos(1, 0)).NumMoves)

		g.ExecuteMove(moves[1])
		require.Equal(t, Far, g.Turn())
		require.Same(t, moves[1], g.LastMove())
		require.Equal(t, 1, g.UndoDepth())
		require.Len(t, g.History(), 1)

		require.Same(t, moves[1], g.Undo())
		require.Equal(t, initial, g.Snapshot())
		require.Equal(t, moves, g.Moves(), "undo restores the previous move list")
	})

	t.Run("contract violations panic", func(t *testing.T) {
		g := New(stubRules{})
		requireLogicError(t, func() { g.Undo() })
		wrong := NewMove(Slide, Far).SetStart(Pos(3, 1), Checker).SetEnd(Pos(2, 1), Checker)
		requireLogicError(t, func() { g.ExecuteMove(wrong) })
		requireLogicError(t, func() { g.ExecuteMove(nil) })
		requireLogicError(t, func() { g.MovePiece(Pos(1, 1), Pos(2, 1)) })
	})

	t.Run("a trial move leaves no trace", func(t *testing.T) {
		g := New(stubRules{})
		before := g.Snapshot()
		m := g.Moves()[0]
		var during PlayerNum
		g.Probe(m, func() {
			require.True(t, g.Probing())
			during = g.Turn()
		})
		require.Equal(t, Far, during)
		require.False(t, g.Probing())
		require.Equal(t, before, g.Snapshot())
		require.Same(t, m, g.Moves()[0])
	})

	t.Run("reaching the far rank ends the game", func(t *testing.T) {
		g := New(stubRules{})
		for !g.IsGameOver() {
			g.ExecuteMove(g.Moves()[0])
		}
		require.Equal(t, NearWins, g.State())
		require.Equal(t, Near, g.Winner())
		requireLogicError(t, func() { g.ExecuteMove(NewMove(Slide, g.Turn())) })

		g.Undo()
		require.Equal(t, Playing, g.State())
	})

	t.Run("edits keep piece counts", func(t *testing.T) {
		g := New(stubRules{})
		g.EditPiece(Pos(1, 0), func(p *Piece) { p.AddStackTop(Far) })
		require.Equal(t, 1, g.NumPieces(Near))
		require.Equal(t, 3, g.NumPieces(Far))
		g.EditPiece(Pos(1, 0), func(p *Piece) {
			p.RemoveStackTop()
			p.RemoveStackTop()
		})
		require.True(t, g.Piece(Pos(1, 0)).IsEmpty())
		require.Equal(t, 1, g.NumPieces(Near))
		require.Equal(t, 2, g.NumPieces(Far))

		g.SetPiece(Pos(1, 1), Near, King)
		g.ClearPiece(Pos(3, 1))
		require.Equal(t, g.CountPieces(Near), g.NumPieces(Near))
		require.Equal(t, g.CountPieces(Far), g.NumPieces(Far))
	})
}
