package game

// State is the outcome state machine of a game. Every value but Playing is terminal.
type State int

const (
	Playing State = iota
	NearWins
	FarWins
	Draw
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case NearWins:
		return "near wins"
	case FarWins:
		return "far wins"
	case Draw:
		return "draw"
	}
	return "unknown"
}

// WinState maps a winner to its terminal state.
func WinState(winner PlayerNum) State {
	switch winner {
	case Near:
		return NearWins
	case Far:
		return FarWins
	}
	return Playing
}

// Snapshot is a deep, plain-data copy of a game, suitable for serializers and for
// comparing positions.
type Snapshot struct {
	Rules     string
	Ranks     int
	Cols      int
	Turn      PlayerNum
	State     State
	NumPieces [2]int
	Board     [][]Piece
	History   []Move
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Ranks:     g.ranks,
		Cols:      g.cols,
		Turn:      g.turn,
		State:     g.state,
		NumPieces: g.numPieces,
		Board:     make([][]Piece, g.ranks),
		History:   make([]Move, 0, len(g.undoStack)),
	}
	if g.rules != nil {
		s.Rules = g.rules.Name()
	}
	for r := range g.board {
		s.Board[r] = make([]Piece, g.cols)
		for c, p := range g.board[r] {
			cp := *p
			cp.Stack = append([]PlayerNum(nil), p.Stack...)
			cp.NumMoves = 0
			s.Board[r][c] = cp
		}
	}
	for _, u := range g.undoStack {
		s.History = append(s.History, *u.move)
	}
	return s
}
