package game

import "fmt"

// Position packs a (rank, col) pair into a single comparable value.
type Position int

const NoPosition Position = -1

func Pos(rank, col int) Position {
	return Position(rank<<8 | col)
}

func (p Position) Rank() int { return int(p) >> 8 }
func (p Position) Col() int  { return int(p) & 0xff }

// Offset returns the position shifted by (dr, dc). The result may be off the board.
func (p Position) Offset(dr, dc int) Position {
	return Pos(p.Rank()+dr, p.Col()+dc)
}

func (p Position) String() string {
	if p == NoPosition {
		return "-"
	}
	if p.Col() < 26 {
		return fmt.Sprintf("%c%d", 'a'+p.Col(), p.Rank()+1)
	}
	return fmt.Sprintf("(%d,%d)", p.Rank(), p.Col())
}
