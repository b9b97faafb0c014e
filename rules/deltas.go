package rules

import (
	"sync"

	"gridgames/game"
)

const chessSize = 8

// Ray directions: the first four are diagonal, the rest orthogonal.
var rayDirections = [8]direction{
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

var knightJumps = [8]direction{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

// deltaTable holds, for every square, the squares along each ray in order of distance
// and the squares a knight reaches.
type deltaTable struct {
	rays   [chessSize * chessSize][8][]game.Position
	knight [chessSize * chessSize][]game.Position
}

var (
	deltasOnce sync.Once
	deltas     *deltaTable
)

func onBoard(r, c int) bool {
	return r >= 0 && r < chessSize && c >= 0 && c < chessSize
}

func square(pos game.Position) int {
	return pos.Rank()*chessSize + pos.Col()
}

func chessDeltas() *deltaTable {
	deltasOnce.Do(func() {
		t := &deltaTable{}
		for r := 0; r < chessSize; r++ {
			for c := 0; c < chessSize; c++ {
				i := r*chessSize + c
				for d, dir := range rayDirections {
					for rr, cc := r+dir.dr, c+dir.dc; onBoard(rr, cc); rr, cc = rr+dir.dr, cc+dir.dc {
						t.rays[i][d] = append(t.rays[i][d], game.Pos(rr, cc))
					}
				}
				for _, dir := range knightJumps {
					if onBoard(r+dir.dr, c+dir.dc) {
						t.knight[i] = append(t.knight[i], game.Pos(r+dir.dr, c+dir.dc))
					}
				}
			}
		}
		deltas = t
	})
	return deltas
}

func isDiagonalRay(d int) bool { return d < 4 }

// slidesAlong reports whether a piece of type t moves along ray d, and how far.
func slidesAlong(t game.PieceType, d int) (ok bool, flying bool) {
	if isDiagonalRay(d) {
		ok = t.Has(game.FlagDiagonal)
	} else {
		ok = t.Has(game.FlagOrthogonal)
	}
	return ok, t.Has(game.FlagFlying)
}

func isPawn(t game.PieceType) bool {
	return t == game.PawnIdle || t == game.Pawn || t == game.PawnToSwap
}

// attacked reports whether any piece of by attacks pos.
func attacked(g *game.Game, pos game.Position, by game.PlayerNum) bool {
	t := chessDeltas()
	i := square(pos)
	for d := range rayDirections {
		for dist, to := range t.rays[i][d] {
			p := g.Piece(to)
			if p.IsEmpty() {
				continue
			}
			if p.Owner() == by && !isPawn(p.Type) {
				ok, flying := slidesAlong(p.Type, d)
				if ok && (flying || dist == 0) {
					return true
				}
			}
			break
		}
	}
	for _, to := range t.knight[i] {
		p := g.Piece(to)
		if p.Owner() == by && p.Type.Has(game.FlagKnight) {
			return true
		}
	}
	// a pawn of by attacks diagonally forward, so it sits one rank behind pos
	for _, dc := range []int{-1, 1} {
		r, c := pos.Rank()-by.Forward(), pos.Col()+dc
		if !onBoard(r, c) {
			continue
		}
		p := g.Piece(game.Pos(r, c))
		if p.Owner() == by && isPawn(p.Type) {
			return true
		}
	}
	return false
}

// findKing returns the square of player's royal piece, or NoPosition.
func findKing(g *game.Game, player game.PlayerNum) game.Position {
	for p := range g.Pieces(player) {
		if p.Type.IsRoyal() {
			return p.Position
		}
	}
	return game.NoPosition
}

func inCheck(g *game.Game, player game.PlayerNum) bool {
	king := findKing(g, player)
	return king != game.NoPosition && attacked(g, king, player.Opponent())
}
