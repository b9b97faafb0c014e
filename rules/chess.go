package rules

import (
	"gridgames/game"
)

var (
	backRank  = [chessSize]game.PieceType{game.RookIdle, game.Knight, game.Bishop, game.Queen, game.KingIdle, game.Bishop, game.Knight, game.RookIdle}
	swapTypes = []game.PieceType{game.Queen, game.Rook, game.Bishop, game.Knight}
)

// Chess implements game.Rules for orthodox chess. Piece types carry the state chess
// needs to remember: an idle pawn may double step, idle kings and rooks may castle,
// a checked king type marks the side in check.
type Chess struct {
	setup func(b game.Board)
	first game.PlayerNum
}

func NewChess() *Chess {
	return &Chess{setup: standardChess, first: game.Near}
}

// NewChessPosition starts from a custom position, for puzzles and tests.
func NewChessPosition(setup func(b game.Board), first game.PlayerNum) *Chess {
	if setup == nil {
		game.Fail("chess position needs a setup")
	}
	return &Chess{setup: setup, first: first}
}

func standardChess(b game.Board) {
	for c, t := range backRank {
		b.Place(0, c, game.Near, t)
		b.Place(1, c, game.Near, game.PawnIdle)
		b.Place(chessSize-2, c, game.Far, game.PawnIdle)
		b.Place(chessSize-1, c, game.Far, t)
	}
}

func (c *Chess) Name() string { return "chess" }

func (c *Chess) Init(g *game.Game) (game.Board, game.PlayerNum) {
	b := game.NewBoard(chessSize, chessSize)
	c.setup(b)
	return b, c.first
}

func checkedType(t game.PieceType) game.PieceType {
	switch t {
	case game.KingIdle:
		return game.CheckedKingIdle
	case game.ChessKing:
		return game.CheckedKing
	}
	return t
}

func uncheckedType(t game.PieceType) game.PieceType {
	switch t {
	case game.CheckedKingIdle:
		return game.KingIdle
	case game.CheckedKing:
		return game.ChessKing
	}
	return t
}

func isChecked(t game.PieceType) bool {
	return t == game.CheckedKing || t == game.CheckedKingIdle
}

// movedType is the type a piece takes after it has moved.
func movedType(t game.PieceType) game.PieceType {
	switch {
	case t == game.RookIdle:
		return game.Rook
	case t.IsRoyal():
		return game.ChessKing
	}
	return t
}

func (c *Chess) lastRank(player game.PlayerNum) int {
	if player == game.Far {
		return 0
	}
	return chessSize - 1
}

func (c *Chess) ComputeMoves(g *game.Game) []*game.Move {
	me := g.Turn()
	var moves []*game.Move
	for p := range g.Pieces(me) {
		moves = append(moves, c.pieceMoves(g, p)...)
	}

	myKing, theirKing := findKing(g, me), findKing(g, me.Opponent())
	legal := moves[:0]
	for _, m := range moves {
		ok, check := true, false
		g.Probe(m, func() {
			if inCheck(g, me) {
				ok = false
				return
			}
			// a promotion gives check with the piece chosen by the following swap
			check = m.EndType != game.PawnToSwap && theirKing != game.NoPosition &&
				attacked(g, theirKing, me)
		})
		if !ok {
			continue
		}
		if check {
			kt := g.Piece(theirKing).Type
			m.SetOpponentKingType(theirKing, kt, checkedType(kt))
		}
		if myKing != game.NoPosition && !m.StartType.IsRoyal() {
			if kt := g.Piece(myKing).Type; isChecked(kt) {
				m.SetOwnKingType(myKing, kt, uncheckedType(kt))
			}
		}
		legal = append(legal, m)
	}
	return legal
}

// pieceMoves lists the pseudo-legal moves of p, which may leave its own king in check.
func (c *Chess) pieceMoves(g *game.Game, p *game.Piece) []*game.Move {
	switch {
	case isPawn(p.Type):
		return c.pawnMoves(g, p)
	case p.Type.Has(game.FlagKnight):
		var moves []*game.Move
		for _, to := range chessDeltas().knight[square(p.Position)] {
			if m := c.step(g, p, to, p.Type); m != nil {
				moves = append(moves, m)
			}
		}
		return moves
	}

	var moves []*game.Move
	for d, ray := range chessDeltas().rays[square(p.Position)] {
		ok, flying := slidesAlong(p.Type, d)
		if !ok {
			continue
		}
		for _, to := range ray {
			m := c.step(g, p, to, movedType(p.Type))
			if m != nil {
				moves = append(moves, m)
			}
			if m == nil || m.HasCaptured() || !flying {
				break
			}
		}
	}
	if p.Type == game.KingIdle {
		moves = append(moves, c.castles(g, p)...)
	}
	return moves
}

// step builds a slide of p to to, capturing an enemy piece there. It returns nil
// when to is held by a friendly piece or a king.
func (c *Chess) step(g *game.Game, p *game.Piece, to game.Position, end game.PieceType) *game.Move {
	target := g.Piece(to)
	if !target.IsEmpty() && (target.Owner() == p.Owner() || target.Type.IsRoyal()) {
		return nil
	}
	m := game.NewMove(game.Slide, p.Owner()).SetStart(p.Position, p.Type).SetEnd(to, end)
	if !target.IsEmpty() {
		m.SetCaptured(to, target.Type)
	}
	return m
}

func (c *Chess) pawnMoves(g *game.Game, p *game.Piece) []*game.Move {
	if p.Type == game.PawnToSwap {
		return nil
	}
	me := p.Owner()
	fwd := me.Forward()
	endType := func(to game.Position) game.PieceType {
		if to.Rank() == c.lastRank(me) {
			return game.PawnToSwap
		}
		return game.Pawn
	}

	var moves []*game.Move
	one := p.Position.Offset(fwd, 0)
	if onBoard(one.Rank(), one.Col()) && g.Piece(one).IsEmpty() {
		moves = append(moves, game.NewMove(game.Slide, me).SetStart(p.Position, p.Type).SetEnd(one, endType(one)))
		two := one.Offset(fwd, 0)
		if p.Type == game.PawnIdle && onBoard(two.Rank(), two.Col()) && g.Piece(two).IsEmpty() {
			moves = append(moves, game.NewMove(game.Slide, me).
				SetStart(p.Position, p.Type).
				SetEnd(two, endType(two)).
				SetEnPassant(one))
		}
	}

	last := g.LastMove()
	for _, dc := range []int{-1, 1} {
		r, col := p.Position.Rank()+fwd, p.Position.Col()+dc
		if !onBoard(r, col) {
			continue
		}
		to := game.Pos(r, col)
		target := g.Piece(to)
		switch {
		case !target.IsEmpty():
			if target.Owner() != me && !target.Type.IsRoyal() {
				moves = append(moves, game.NewMove(game.Slide, me).
					SetStart(p.Position, p.Type).
					SetEnd(to, endType(to)).
					SetCaptured(to, target.Type))
			}
		case last != nil && last.Player != me && last.EnPassant == to:
			moves = append(moves, game.NewMove(game.Slide, me).
				SetStart(p.Position, p.Type).
				SetEnd(to, game.Pawn).
				SetCaptured(last.End, last.EndType))
		}
	}
	return moves
}

// castles lists the castling moves of an unmoved, unchecked king.
func (c *Chess) castles(g *game.Game, king *game.Piece) []*game.Move {
	me := king.Owner()
	row, col := king.Position.Rank(), king.Position.Col()
	var moves []*game.Move
	for _, side := range []struct{ rookCol, dir int }{{chessSize - 1, 1}, {0, -1}} {
		rookPos := game.Pos(row, side.rookCol)
		rook := g.Piece(rookPos)
		if rook.Type != game.RookIdle || rook.Owner() != me || abs(side.rookCol-col) < 3 {
			continue
		}
		open := true
		for cc := col + side.dir; cc != side.rookCol; cc += side.dir {
			if !g.Piece(game.Pos(row, cc)).IsEmpty() {
				open = false
				break
			}
		}
		if !open {
			continue
		}
		safe := true
		for i := 0; i <= 2; i++ {
			if attacked(g, game.Pos(row, col+i*side.dir), me.Opponent()) {
				safe = false
				break
			}
		}
		if !safe {
			continue
		}
		moves = append(moves, game.NewMove(game.Castle, me).
			SetStart(king.Position, king.Type).
			SetEnd(game.Pos(row, col+2*side.dir), game.ChessKing).
			SetCastle(rookPos, game.Pos(row, col+side.dir)))
	}
	return moves
}

// swaps offers the promotion choices for the pawn that reached the last rank.
func (c *Chess) swaps(g *game.Game, m *game.Move) []*game.Move {
	theirKing := findKing(g, m.Player.Opponent())
	pawn := g.Piece(m.End)
	moves := make([]*game.Move, 0, len(swapTypes))
	for _, t := range swapTypes {
		s := game.NewMove(game.Swap, m.Player).SetStart(m.End, game.PawnToSwap).SetEnd(m.End, t)
		if theirKing != game.NoPosition {
			pawn.SetType(t)
			if attacked(g, theirKing, m.Player) {
				kt := g.Piece(theirKing).Type
				s.SetOpponentKingType(theirKing, kt, checkedType(kt))
			}
			pawn.SetType(game.PawnToSwap)
		}
		moves = append(moves, s)
	}
	return moves
}

func (c *Chess) ExecuteMove(g *game.Game, m *game.Move) {
	switch m.Type {
	case game.Slide:
		if m.HasCaptured() {
			g.ClearPiece(m.Captured)
		}
		g.MovePiece(m.Start, m.End)
		g.SetPieceType(m.End, m.EndType)
	case game.Castle:
		g.MovePiece(m.Start, m.End)
		g.SetPieceType(m.End, m.EndType)
		g.MovePiece(m.CastleRookStart, m.CastleRookEnd)
		g.SetPieceType(m.CastleRookEnd, game.Rook)
	case game.Swap:
		g.SetPieceType(m.End, m.EndType)
	default:
		game.Fail("chess: unhandled move type %s", m.Type)
	}
	if m.HasOwnKing() {
		g.SetPieceType(m.OwnKing, m.OwnKingEndType)
	}
	if m.HasOpponentKing() {
		g.SetPieceType(m.OpponentKing, m.OpponentKingEndType)
	}
	if m.EndType == game.PawnToSwap {
		g.SetMoves(c.swaps(g, m))
		return
	}
	g.NextTurn()
}

func (c *Chess) ReverseMove(g *game.Game, m *game.Move) {
	if g.Turn() != m.Player {
		g.SetTurn(m.Player)
	}
	if m.HasOpponentKing() {
		g.SetPieceType(m.OpponentKing, m.OpponentKingStartType)
	}
	if m.HasOwnKing() {
		g.SetPieceType(m.OwnKing, m.OwnKingStartType)
	}
	switch m.Type {
	case game.Slide:
		g.MovePiece(m.End, m.Start)
		g.SetPieceType(m.Start, m.StartType)
		if m.HasCaptured() {
			g.SetPiece(m.Captured, m.Player.Opponent(), m.CapturedType)
		}
	case game.Castle:
		g.MovePiece(m.CastleRookEnd, m.CastleRookStart)
		g.SetPieceType(m.CastleRookStart, game.RookIdle)
		g.MovePiece(m.End, m.Start)
		g.SetPieceType(m.Start, m.StartType)
	case game.Swap:
		g.SetPieceType(m.End, m.StartType)
	default:
		game.Fail("chess: cannot reverse move type %s", m.Type)
	}
}

// Winner is the side that has checkmated the side to move.
func (c *Chess) Winner(g *game.Game) game.PlayerNum {
	if len(g.Moves()) == 0 && inCheck(g, g.Turn()) {
		return g.Turn().Opponent()
	}
	return game.Nobody
}

// IsDraw covers stalemate and positions where mate is impossible.
func (c *Chess) IsDraw(g *game.Game) bool {
	if len(g.Moves()) == 0 {
		return !inCheck(g, g.Turn())
	}
	var minors, others int
	for p := range g.Pieces(game.Nobody) {
		switch {
		case p.Type.IsRoyal():
		case p.Type == game.Knight || p.Type == game.Bishop:
			minors++
		default:
			others++
		}
	}
	return others == 0 && minors <= 1
}

func centreBonus(pos game.Position) int {
	dist := func(x int) int { return min(abs(x-3), abs(x-4)) }
	return 3 - max(dist(pos.Rank()), dist(pos.Col()))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (c *Chess) Evaluate(g *game.Game) int {
	me := g.Turn()
	total := 0
	for p := range g.Pieces(game.Nobody) {
		v := p.Type.Weight()
		switch {
		case isPawn(p.Type):
			advance := p.Position.Rank()
			if p.Owner() == game.Far {
				advance = chessSize - 1 - advance
			}
			v += 8*(advance-1) + 5*centreBonus(p.Position)
		case p.Type == game.Knight || p.Type == game.Bishop:
			v += 10 * centreBonus(p.Position)
		case isChecked(p.Type):
			v -= 50
		}
		if p.Owner() == me {
			total += v
		} else {
			total -= v
		}
	}
	return total
}
