package rules

import (
	"gridgames/game"
)

const boardSize = 8

func isDark(r, c int) bool { return (r+c)%2 == 0 }

// setupRows places men on the dark squares of the first rows of each side.
func setupRows(rows int, man game.PieceType) func(b game.Board) {
	return func(b game.Board) {
		ranks, cols := len(b), len(b[0])
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if isDark(r, c) {
					b.Place(r, c, game.Near, man)
				}
				if isDark(ranks-1-r, c) {
					b.Place(ranks-1-r, c, game.Far, man)
				}
			}
		}
	}
}

// NewEnglish is English draughts: short kings, captures compulsory but any chain may be chosen.
func NewEnglish() *Checkers {
	return NewCheckers(Variant{
		Name:           "checkers",
		Ranks:          boardSize,
		Cols:           boardSize,
		Man:            game.Checker,
		King:           game.King,
		Setup:          setupRows(3, game.Checker),
		JumpsMandatory: true,
		Capture:        CaptureRemove,
	})
}

// NewSuicide is English draughts played to lose all pieces.
func NewSuicide() *Checkers {
	v := NewEnglish().Variant()
	v.Name = "suicide"
	v.Misere = true
	return NewCheckers(v)
}

// NewDama is Turkish draughts: every square is used, men move forward or sideways,
// kings fly and the longest capture must be taken.
func NewDama() *Checkers {
	return NewCheckers(Variant{
		Name:  "dama",
		Ranks: boardSize,
		Cols:  boardSize,
		Man:   game.DamaMan,
		King:  game.DamaKing,
		Setup: func(b game.Board) {
			for c := 0; c < boardSize; c++ {
				for _, r := range []int{1, 2} {
					b.Place(r, c, game.Near, game.DamaMan)
					b.Place(boardSize-1-r, c, game.Far, game.DamaMan)
				}
			}
		},
		JumpsMandatory:    true,
		MaxJumpsMandatory: true,
		Capture:           CaptureRemove,
	})
}

// NewShashki is Russian draughts. Jumped pieces stay on the board until the chain
// is over and may not be jumped twice.
func NewShashki() *Checkers {
	return NewCheckers(Variant{
		Name:             "shashki",
		Ranks:            boardSize,
		Cols:             boardSize,
		Man:              game.Checker,
		King:             game.FlyingKing,
		Setup:            setupRows(3, game.Checker),
		JumpsMandatory:   true,
		MenJumpBackwards: true,
		PromoteMidJump:   true,
		Capture:          CaptureDeferred,
	})
}

// NewColumns is a towers variant: a captured piece is taken from the top of its column
// and put under the capturing column.
func NewColumns() *Checkers {
	return NewCheckers(Variant{
		Name:             "columns",
		Ranks:            boardSize,
		Cols:             boardSize,
		Man:              game.Checker,
		King:             game.King,
		Setup:            setupRows(3, game.Checker),
		JumpsMandatory:   true,
		MenJumpBackwards: true,
		Capture:          CaptureStack,
	})
}

// inCourt reports whether pos lies in the central square of the kings court variant.
func inCourt(pos game.Position) bool {
	r, c := pos.Rank(), pos.Col()
	return r >= 2 && r <= 5 && c >= 2 && c <= 5
}

// NewKingsCourt is English draughts where a piece that has reached the court may
// only leave it by capturing.
func NewKingsCourt() *Checkers {
	v := NewEnglish().Variant()
	v.Name = "kingscourt"
	v.Filter = func(g *game.Game, moves []*game.Move) []*game.Move {
		var out []*game.Move
		for _, m := range moves {
			if m.Type == game.Slide && inCourt(m.Start) && !inCourt(m.End) {
				continue
			}
			out = append(out, m)
		}
		return out
	}
	return NewCheckers(v)
}

const (
	cornerRanks = 3
	cornerCols  = 4
)

// home reports whether pos belongs to the starting corner of player.
func home(player game.PlayerNum, pos game.Position) bool {
	r, c := pos.Rank(), pos.Col()
	if player == game.Near {
		return r < cornerRanks && c < cornerCols
	}
	return r >= boardSize-cornerRanks && c >= boardSize-cornerCols
}

// NewUgolki is the corners game: chips step or hop orthogonally over any piece, chains
// of hops are optional, nothing is captured and the first side to fill the opposite
// corner wins.
func NewUgolki() *Checkers {
	return NewCheckers(Variant{
		Name:  "ugolki",
		Ranks: boardSize,
		Cols:  boardSize,
		Man:   game.Chip,
		King:  game.Empty,
		Setup: func(b game.Board) {
			for r := 0; r < boardSize; r++ {
				for c := 0; c < boardSize; c++ {
					pos := game.Pos(r, c)
					switch {
					case home(game.Near, pos):
						b.Place(r, c, game.Near, game.Chip)
					case home(game.Far, pos):
						b.Place(r, c, game.Far, game.Chip)
					}
				}
			}
		},
		RandomStart: true,
		CanJumpSelf: true,
		Capture:     CaptureNone,
		Goal:        ugolkiGoal,
		PieceScore:  ugolkiScore,
	})
}

func ugolkiGoal(g *game.Game) game.PlayerNum {
	for _, player := range []game.PlayerNum{game.Near, game.Far} {
		filled := 0
		for p := range g.Pieces(player) {
			if home(player.Opponent(), p.Position) {
				filled++
			}
		}
		if filled == cornerRanks*cornerCols {
			return player
		}
	}
	return game.Nobody
}

// ugolkiScore rewards chips for closing in on the opposite corner.
func ugolkiScore(g *game.Game, p *game.Piece) int {
	r, c := p.Position.Rank(), p.Position.Col()
	if p.Owner() == game.Far {
		r, c = boardSize-1-r, boardSize-1-c
	}
	distance := max(0, boardSize-cornerRanks-r) + max(0, boardSize-cornerCols-c)
	return p.Type.Weight() * (boardSize*2 - distance)
}
