package game

// Flag is a movement capability carried by a piece type.
type Flag uint16

const (
	FlagForward Flag = 1 << iota
	FlagBackward
	FlagSideways
	FlagDiagonal
	FlagOrthogonal
	FlagFlying // slides and captures along a whole ray
	FlagKnight
	FlagRoyal
)

// PieceType enumerates every kind of piece across all variants.
type PieceType int

const (
	Empty   PieceType = iota // 0
	Blocked                  // cell that is not part of the board

	Checker
	King
	FlyingKing
	DamaMan
	DamaKing
	Chip

	PawnIdle
	Pawn
	PawnToSwap
	Knight
	Bishop
	RookIdle
	Rook
	Queen
	KingIdle
	ChessKing
	CheckedKingIdle
	CheckedKing

	numPieceTypes
)

// Kind describes a piece type. Value is the human point value; Weight is the
// centipawn-like value used by evaluation.
type Kind struct {
	Name   string
	Abbrev string
	Value  int
	Weight int
	Flags  Flag
}

const (
	allDirections = FlagForward | FlagBackward | FlagSideways
	queenLines    = FlagDiagonal | FlagOrthogonal
)

var kinds = [numPieceTypes]Kind{
	Empty:   {Name: "empty", Abbrev: "."},
	Blocked: {Name: "blocked", Abbrev: "#"},

	Checker:    {Name: "checker", Abbrev: "c", Value: 1, Weight: 100, Flags: FlagDiagonal | FlagForward},
	King:       {Name: "king", Abbrev: "k", Value: 2, Weight: 250, Flags: FlagDiagonal | FlagForward | FlagBackward},
	FlyingKing: {Name: "flying king", Abbrev: "f", Value: 3, Weight: 450, Flags: FlagDiagonal | FlagForward | FlagBackward | FlagFlying},
	DamaMan:    {Name: "dama man", Abbrev: "m", Value: 1, Weight: 100, Flags: FlagOrthogonal | FlagForward | FlagSideways},
	DamaKing:   {Name: "dama king", Abbrev: "d", Value: 3, Weight: 500, Flags: FlagOrthogonal | allDirections | FlagFlying},
	Chip:       {Name: "chip", Abbrev: "o", Value: 1, Weight: 10, Flags: FlagOrthogonal | allDirections},

	PawnIdle:        {Name: "pawn", Abbrev: "p", Value: 1, Weight: 100, Flags: FlagForward},
	Pawn:            {Name: "pawn", Abbrev: "p", Value: 1, Weight: 100, Flags: FlagForward},
	PawnToSwap:      {Name: "pawn", Abbrev: "p", Value: 1, Weight: 100, Flags: FlagForward},
	Knight:          {Name: "knight", Abbrev: "n", Value: 3, Weight: 320, Flags: FlagKnight},
	Bishop:          {Name: "bishop", Abbrev: "b", Value: 3, Weight: 330, Flags: FlagDiagonal | allDirections | FlagFlying},
	RookIdle:        {Name: "rook", Abbrev: "r", Value: 5, Weight: 500, Flags: FlagOrthogonal | allDirections | FlagFlying},
	Rook:            {Name: "rook", Abbrev: "r", Value: 5, Weight: 500, Flags: FlagOrthogonal | allDirections | FlagFlying},
	Queen:           {Name: "queen", Abbrev: "q", Value: 9, Weight: 900, Flags: queenLines | allDirections | FlagFlying},
	KingIdle:        {Name: "king", Abbrev: "k", Flags: queenLines | allDirections | FlagRoyal},
	ChessKing:       {Name: "king", Abbrev: "k", Flags: queenLines | allDirections | FlagRoyal},
	CheckedKingIdle: {Name: "king", Abbrev: "k", Flags: queenLines | allDirections | FlagRoyal},
	CheckedKing:     {Name: "king", Abbrev: "k", Flags: queenLines | allDirections | FlagRoyal},
}

func (t PieceType) Kind() Kind {
	if t < 0 || t >= numPieceTypes {
		Fail("unknown piece type %d", int(t))
	}
	return kinds[t]
}

func (t PieceType) Value() int     { return t.Kind().Value }
func (t PieceType) Weight() int    { return t.Kind().Weight }
func (t PieceType) Abbrev() string { return t.Kind().Abbrev }

func (t PieceType) Has(f Flag) bool {
	return t.Kind().Flags&f == f
}

func (t PieceType) String() string { return t.Kind().Name }

// IsRoyal reports whether t is one of the chess king types.
func (t PieceType) IsRoyal() bool { return t.Has(FlagRoyal) }

// NumPieceTypes is the size of per-type tables.
const NumPieceTypes = int(numPieceTypes)
