package player

import (
	"time"

	"gridgames/game"

	"golang.org/x/exp/rand"
)

// RandomPlayer picks uniformly among all legal moves. The piece is sampled in
// proportion to how many moves it has, then one of its moves is drawn, so every
// move of the turn is equally likely.
type RandomPlayer struct {
	rng *rand.Rand
}

func NewRandomPlayer(seed uint64) *RandomPlayer {
	return &RandomPlayer{rng: rand.New(rand.NewSource(seed))}
}

// NewUnseededRandomPlayer seeds from the clock.
func NewUnseededRandomPlayer() *RandomPlayer {
	return NewRandomPlayer(uint64(time.Now().UnixNano()))
}

func (p *RandomPlayer) ChoosePieceToMove(g *game.Game, pieces []*game.Piece) *game.Piece {
	total := 0
	for _, piece := range pieces {
		total += piece.NumMoves
	}
	if total == 0 {
		if len(pieces) == 0 {
			return nil
		}
		return pieces[p.rng.Intn(len(pieces))]
	}
	sampled := p.rng.Intn(total)
	cumulative := 0
	for _, piece := range pieces {
		cumulative += piece.NumMoves
		if sampled < cumulative {
			return piece
		}
	}
	return pieces[len(pieces)-1]
}

func (p *RandomPlayer) ChooseMoveForPiece(g *game.Game, moves []*game.Move) *game.Move {
	if len(moves) == 0 {
		return nil
	}
	return moves[p.rng.Intn(len(moves))]
}
