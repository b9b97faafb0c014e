package game

// Rules is the per-variant policy the Game delegates to. Implementations hold no
// game state of their own, so one value may be shared by many games.
type Rules interface {
	Name() string
	// Init builds the starting board and picks the side that moves first.
	Init(g *Game) (Board, PlayerNum)
	// ComputeMoves lists every legal move for g.Turn().
	ComputeMoves(g *Game) []*Move
	// ExecuteMove applies m. It either ends the turn or leaves continuation moves
	// behind with g.SetMoves.
	ExecuteMove(g *Game, m *Move)
	// ReverseMove undoes ExecuteMove exactly and restores the turn to m.Player.
	ReverseMove(g *Game, m *Move)
	Winner(g *Game) PlayerNum
	IsDraw(g *Game) bool
	// Evaluate scores the position for the side to move.
	Evaluate(g *Game) int
}
