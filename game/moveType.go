package game

// MoveType is the kind of atomic board transition a Move performs.
type MoveType int

const (
	Slide      MoveType = iota // step or ranged move to an empty square (chess: may capture)
	Jump                       // leap over an adjacent piece
	FlyingJump                 // long-range jump along a clear ray
	Stack                      // promotion in place
	Swap                       // chess promotion choice
	Castle                     // king and rook together
	EndTurn                    // pseudo-move ending an optional jump chain
)

var moveTypeNames = [...]string{"slide", "jump", "flying-jump", "stack", "swap", "castle", "end"}

func (t MoveType) String() string {
	if t < 0 || int(t) >= len(moveTypeNames) {
		return "unknown"
	}
	return moveTypeNames[t]
}

func (t MoveType) IsJump() bool {
	return t == Jump || t == FlyingJump
}
