package rules

import (
	"gridgames/game"
	"gridgames/utils"
)

// CapturePolicy decides what happens to a jumped piece.
type CapturePolicy int

const (
	CaptureRemove   CapturePolicy = iota // taken off at once
	CaptureDeferred                      // flagged, removed when the turn ends
	CaptureStack                         // tucked under the capturing column
	CaptureNone                          // jumping never captures
)

// Variant configures the checkers family. Each named variant is a Variant value.
type Variant struct {
	Name  string
	Ranks int
	Cols  int
	Man   game.PieceType
	King  game.PieceType // game.Empty when men never promote
	Setup func(b game.Board)

	RandomStart       bool
	JumpsMandatory    bool
	MaxJumpsMandatory bool
	CanJumpSelf       bool
	MenJumpBackwards  bool
	PromoteMidJump    bool // a man crowned during a jump keeps jumping as a king
	Misere            bool // the side left without moves wins
	Capture           CapturePolicy

	// Filter is applied after the shared generator and the jump filters.
	Filter func(g *game.Game, moves []*game.Move) []*game.Move
	// Goal decides the winner for race variants; Nobody means no winner yet.
	Goal func(g *game.Game) game.PlayerNum
	// PieceScore overrides the default per-piece evaluation.
	PieceScore func(g *game.Game, p *game.Piece) int
}

// Checkers implements game.Rules for every Variant.
type Checkers struct {
	v Variant
}

func NewCheckers(v Variant) *Checkers {
	if v.Ranks <= 0 || v.Cols <= 0 || v.Setup == nil || v.Man == game.Empty {
		game.Fail("incomplete checkers variant %q", v.Name)
	}
	return &Checkers{v: v}
}

func (c *Checkers) Name() string     { return c.v.Name }
func (c *Checkers) Variant() Variant { return c.v }

type direction struct{ dr, dc int }

var (
	diagonals   = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	orthogonals = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	allLines    = append(append([]direction{}, diagonals...), orthogonals...)
)

func directionsFor(t game.PieceType) []direction {
	switch {
	case t.Has(game.FlagDiagonal) && t.Has(game.FlagOrthogonal):
		return allLines
	case t.Has(game.FlagDiagonal):
		return diagonals
	case t.Has(game.FlagOrthogonal):
		return orthogonals
	}
	return nil
}

func (c *Checkers) Init(g *game.Game) (game.Board, game.PlayerNum) {
	b := game.NewBoard(c.v.Ranks, c.v.Cols)
	c.v.Setup(b)
	first := game.Near
	if c.v.RandomStart && g.Rand().Intn(2) == 1 {
		first = game.Far
	}
	return b, first
}

func (c *Checkers) ComputeMoves(g *game.Game) []*game.Move {
	var moves []*game.Move
	for p := range g.Pieces(g.Turn()) {
		if p.Captured {
			continue
		}
		moves = append(moves, c.pieceMoves(g, p, false, nil)...)
	}
	return c.restrict(g, moves)
}

// restrict is the post-pass over the unconditional per-square moves.
func (c *Checkers) restrict(g *game.Game, moves []*game.Move) []*game.Move {
	hasJump := false
	for _, m := range moves {
		if m.IsJump() {
			hasJump = true
			break
		}
	}
	if hasJump && c.v.JumpsMandatory {
		moves = utils.Filter(moves, (*game.Move).IsJump)
	}
	if hasJump && c.v.MaxJumpsMandatory {
		moves = c.longestJumps(g, moves)
	}
	if c.v.Filter != nil {
		moves = c.v.Filter(g, moves)
	}
	return moves
}

// canGo reports whether a piece of type t owned by owner may travel with rank delta dr.
func (c *Checkers) canGo(t game.PieceType, owner game.PlayerNum, dr int, jumping bool) bool {
	switch dr {
	case owner.Forward():
		return t.Has(game.FlagForward)
	case -owner.Forward():
		return t.Has(game.FlagBackward) || (jumping && c.v.MenJumpBackwards)
	}
	return t.Has(game.FlagSideways)
}

func (c *Checkers) canJumpOver(mover game.PlayerNum, over *game.Piece) bool {
	if over.IsEmpty() || over.Type == game.Blocked || over.Captured {
		return false
	}
	if over.Owner() == mover {
		return c.v.CanJumpSelf
	}
	return true
}

func (c *Checkers) newMove(t game.MoveType, p *game.Piece, to game.Position) *game.Move {
	return game.NewMove(t, p.Owner()).SetStart(p.Position, p.Type).SetEnd(to, p.Type)
}

func (c *Checkers) jumpMove(t game.MoveType, p *game.Piece, over *game.Piece, to game.Position) *game.Move {
	m := c.newMove(t, p, to)
	if over.Owner() != p.Owner() && c.v.Capture != CaptureNone {
		m.SetCaptured(over.Position, over.Type)
	}
	return m
}

// pieceMoves generates the moves of one piece. Landing squares in visited are skipped.
func (c *Checkers) pieceMoves(g *game.Game, p *game.Piece, jumpsOnly bool, visited map[game.Position]bool) []*game.Move {
	var moves []*game.Move
	owner := p.Owner()
	flying := p.Type.Has(game.FlagFlying)
	empty := func(pos game.Position) bool {
		return g.Contains(pos) && g.Piece(pos).IsEmpty()
	}
	for _, d := range directionsFor(p.Type) {
		if !jumpsOnly && c.canGo(p.Type, owner, d.dr, false) {
			for to := p.Position.Offset(d.dr, d.dc); empty(to); to = to.Offset(d.dr, d.dc) {
				moves = append(moves, c.newMove(game.Slide, p, to))
				if !flying {
					break
				}
			}
		}
		if !c.canGo(p.Type, owner, d.dr, true) {
			continue
		}
		if !flying {
			over := p.Position.Offset(d.dr, d.dc)
			to := over.Offset(d.dr, d.dc)
			if g.Contains(over) && empty(to) && !visited[to] && c.canJumpOver(owner, g.Piece(over)) {
				moves = append(moves, c.jumpMove(game.Jump, p, g.Piece(over), to))
			}
			continue
		}
		over := p.Position.Offset(d.dr, d.dc)
		for empty(over) {
			over = over.Offset(d.dr, d.dc)
		}
		if !g.Contains(over) || !c.canJumpOver(owner, g.Piece(over)) {
			continue
		}
		for to := over.Offset(d.dr, d.dc); empty(to); to = to.Offset(d.dr, d.dc) {
			if !visited[to] {
				moves = append(moves, c.jumpMove(game.FlyingJump, p, g.Piece(over), to))
			}
		}
	}
	return moves
}

// longestJumps keeps only the jumps that start the longest available chain. Chain
// lengths are found by playing each jump speculatively.
func (c *Checkers) longestJumps(g *game.Game, moves []*game.Move) []*game.Move {
	best := 0
	for _, m := range moves {
		if m.IsJump() || m.Type == game.Stack {
			m.JumpDepth = c.jumpDepth(g, m)
			best = max(best, m.JumpDepth)
		}
	}
	return utils.Filter(moves, func(m *game.Move) bool {
		return !m.IsJump() || m.JumpDepth == best
	})
}

// jumpDepth counts the jumps in the longest chain starting with m. Continuation
// moves already carry their depth because ExecuteMove ranks them.
func (c *Checkers) jumpDepth(g *game.Game, m *game.Move) int {
	depth := 0
	if m.IsJump() {
		depth = 1
	}
	further := 0
	g.Probe(m, func() {
		if g.Turn() != m.Player {
			return
		}
		for _, next := range g.Moves() {
			further = max(further, next.JumpDepth)
		}
	})
	return depth + further
}

func (c *Checkers) promotionRank(owner game.PlayerNum) int {
	if owner == game.Far {
		return 0
	}
	return c.v.Ranks - 1
}

func (c *Checkers) promotion(g *game.Game, m *game.Move) *game.Move {
	if c.v.King == game.Empty {
		return nil
	}
	p := g.Piece(m.End)
	if p.Type != c.v.Man || m.End.Rank() != c.promotionRank(p.Owner()) {
		return nil
	}
	return game.NewMove(game.Stack, p.Owner()).SetStart(m.End, c.v.Man).SetEnd(m.End, c.v.King)
}

func (c *Checkers) ExecuteMove(g *game.Game, m *game.Move) {
	switch m.Type {
	case game.Slide:
		g.MovePiece(m.Start, m.End)
	case game.Jump, game.FlyingJump:
		g.MovePiece(m.Start, m.End)
		if m.HasCaptured() {
			c.capture(g, m)
		}
	case game.Stack:
		g.SetPieceType(m.Start, m.EndType)
	case game.EndTurn:
		c.endTurn(g)
		return
	default:
		game.Fail("%s: unhandled move type %s", c.v.Name, m.Type)
	}

	if m.Type != game.Stack {
		if promo := c.promotion(g, m); promo != nil {
			c.continueTurn(g, []*game.Move{promo})
			return
		}
	}
	if m.IsJump() || (m.Type == game.Stack && c.v.PromoteMidJump && c.jumpedThisTurn(g, m.Player)) {
		if next := c.continuation(g, m); len(next) > 0 {
			c.continueTurn(g, next)
			return
		}
	}
	c.endTurn(g)
}

func (c *Checkers) continueTurn(g *game.Game, next []*game.Move) {
	if c.v.MaxJumpsMandatory {
		next = c.longestJumps(g, next)
	}
	g.SetMoves(next)
}

// jumpedThisTurn looks at the move before the one being executed.
func (c *Checkers) jumpedThisTurn(g *game.Game, player game.PlayerNum) bool {
	prev := g.MoveBack(1)
	return prev != nil && prev.Player == player && prev.IsJump()
}

// chainSquares lists the squares the current turn's jumping piece has stood on.
func (c *Checkers) chainSquares(g *game.Game, player game.PlayerNum) map[game.Position]bool {
	visited := map[game.Position]bool{}
	for i := 0; ; i++ {
		mv := g.MoveBack(i)
		if mv == nil || mv.Player != player || !(mv.IsJump() || mv.Type == game.Stack) {
			break
		}
		visited[mv.Start] = true
		visited[mv.End] = true
	}
	return visited
}

// continuation lists further jumps for the piece that just moved.
func (c *Checkers) continuation(g *game.Game, m *game.Move) []*game.Move {
	p := g.Piece(m.End)
	var visited map[game.Position]bool
	if c.v.Capture == CaptureNone {
		visited = c.chainSquares(g, m.Player)
	}
	next := c.pieceMoves(g, p, true, visited)
	if len(next) == 0 {
		return nil
	}
	if !c.v.JumpsMandatory {
		next = append(next, game.NewMove(game.EndTurn, m.Player).SetStart(p.Position, p.Type))
	}
	return next
}

func (c *Checkers) capture(g *game.Game, m *game.Move) {
	switch c.v.Capture {
	case CaptureRemove:
		g.ClearPiece(m.Captured)
	case CaptureDeferred:
		g.EditPiece(m.Captured, func(p *game.Piece) { p.Captured = true })
	case CaptureStack:
		var taken game.PlayerNum
		g.EditPiece(m.Captured, func(p *game.Piece) {
			taken = p.RemoveStackTop()
			if p.StackSize() > 0 {
				p.SetType(c.v.Man)
			}
		})
		g.EditPiece(m.End, func(p *game.Piece) { p.AddStackBottom(taken) })
	default:
		game.Fail("%s: capture with policy %d", c.v.Name, c.v.Capture)
	}
}

func (c *Checkers) uncapture(g *game.Game, m *game.Move) {
	switch c.v.Capture {
	case CaptureRemove:
		g.SetPiece(m.Captured, m.Player.Opponent(), m.CapturedType)
	case CaptureDeferred:
		g.EditPiece(m.Captured, func(p *game.Piece) { p.Captured = false })
	case CaptureStack:
		var taken game.PlayerNum
		g.EditPiece(m.End, func(p *game.Piece) { taken = p.RemoveStackBottom() })
		if g.Piece(m.Captured).IsEmpty() {
			g.SetPiece(m.Captured, taken, m.CapturedType)
			return
		}
		g.EditPiece(m.Captured, func(p *game.Piece) {
			p.AddStackTop(taken)
			p.SetType(m.CapturedType)
		})
	default:
		game.Fail("%s: uncapture with policy %d", c.v.Name, c.v.Capture)
	}
}

func (c *Checkers) endTurn(g *game.Game) {
	if c.v.Capture == CaptureDeferred {
		var taken []game.Position
		for p := range g.Pieces(g.Turn().Opponent()) {
			if p.Captured {
				taken = append(taken, p.Position)
			}
		}
		for _, pos := range taken {
			g.ClearPiece(pos)
		}
	}
	g.NextTurn()
}

// restoreDeferred puts back the pieces removed at the end of the turn that m closed,
// walking back through the turn's chain of moves.
func (c *Checkers) restoreDeferred(g *game.Game, m *game.Move) {
	opponent := m.Player.Opponent()
	restore := func(mv *game.Move) {
		if !mv.HasCaptured() || !g.Piece(mv.Captured).IsEmpty() {
			return
		}
		g.SetPiece(mv.Captured, opponent, mv.CapturedType)
		g.EditPiece(mv.Captured, func(p *game.Piece) { p.Captured = true })
	}
	restore(m)
	for i := 0; ; i++ {
		mv := g.MoveBack(i)
		if mv == nil || mv.Player != m.Player || mv.Type == game.Slide {
			break
		}
		restore(mv)
	}
}

func (c *Checkers) ReverseMove(g *game.Game, m *game.Move) {
	if g.Turn() != m.Player {
		if c.v.Capture == CaptureDeferred {
			c.restoreDeferred(g, m)
		}
		g.SetTurn(m.Player)
	}
	switch m.Type {
	case game.Slide:
		g.MovePiece(m.End, m.Start)
	case game.Jump, game.FlyingJump:
		if m.HasCaptured() {
			c.uncapture(g, m)
		}
		g.MovePiece(m.End, m.Start)
	case game.Stack:
		g.SetPieceType(m.Start, m.StartType)
	case game.EndTurn:
	default:
		game.Fail("%s: cannot reverse move type %s", c.v.Name, m.Type)
	}
}

func (c *Checkers) Winner(g *game.Game) game.PlayerNum {
	if c.v.Goal != nil {
		if w := c.v.Goal(g); w != game.Nobody {
			return w
		}
	}
	if len(g.Moves()) > 0 {
		return game.Nobody
	}
	if c.v.Misere {
		return g.Turn()
	}
	return g.Turn().Opponent()
}

// IsDraw is true once each side is down to a single king.
func (c *Checkers) IsDraw(g *game.Game) bool {
	if c.v.King == game.Empty || g.NumPieces(game.Near) != 1 || g.NumPieces(game.Far) != 1 {
		return false
	}
	for p := range g.Pieces(game.Nobody) {
		if p.Type != c.v.King || p.StackSize() > 1 {
			return false
		}
	}
	return true
}

func (c *Checkers) Evaluate(g *game.Game) int {
	score := c.v.PieceScore
	if score == nil {
		score = c.pieceScore
	}
	total := 0
	for p := range g.Pieces(game.Nobody) {
		if p.Owner() == g.Turn() {
			total += score(g, p)
		} else {
			total -= score(g, p)
		}
	}
	return total
}

func (c *Checkers) pieceScore(g *game.Game, p *game.Piece) int {
	v := p.Type.Weight()
	if p.Type == c.v.Man && c.v.King != game.Empty {
		advance := p.Position.Rank()
		if p.Owner() == game.Far {
			advance = c.v.Ranks - 1 - advance
		}
		v += 4 * advance
	}
	for i := 1; i < p.StackSize(); i++ {
		if p.StackAt(i) == p.Owner() {
			v += 60
		} else {
			v += 20
		}
	}
	return v
}
