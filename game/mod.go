package game

// PlayerNum identifies one of the two sides, or Nobody.
type PlayerNum int

const (
	Nobody PlayerNum = -1
	Near   PlayerNum = 0 // starts on the low ranks and moves up
	Far    PlayerNum = 1
)

func (p PlayerNum) Opponent() PlayerNum {
	switch p {
	case Near:
		return Far
	case Far:
		return Near
	}
	return Nobody
}

// Forward is the rank delta of a forward step for this side.
func (p PlayerNum) Forward() int {
	if p == Far {
		return -1
	}
	return 1
}

func (p PlayerNum) String() string {
	switch p {
	case Near:
		return "near"
	case Far:
		return "far"
	}
	return "nobody"
}

// Player is the capability the turn driver needs from whoever is moving, human or AI.
// Either callback may return nil when it has nothing to offer.
type Player interface {
	ChoosePieceToMove(g *Game, pieces []*Piece) *Piece
	ChooseMoveForPiece(g *Game, moves []*Move) *Move
}

// Resetter is implemented by players holding per-game state.
type Resetter interface {
	Reset()
}
