package game

import (
	"fmt"
	"strings"
)

// Move records one atomic board transition together with everything needed to
// reverse it. Rules build a Move with the setters and never change it once it has
// been handed to Game.ExecuteMove.
type Move struct {
	Type   MoveType
	Player PlayerNum

	Start     Position
	StartType PieceType
	End       Position
	EndType   PieceType

	Captured     Position
	CapturedType PieceType

	CastleRookStart Position
	CastleRookEnd   Position

	OpponentKing          Position
	OpponentKingStartType PieceType
	OpponentKingEndType   PieceType

	OwnKing          Position
	OwnKingStartType PieceType
	OwnKingEndType   PieceType

	// EnPassant is the square skipped by a pawn double step.
	EnPassant Position

	// CompareValue only orders moves during search.
	CompareValue int
	// JumpDepth is the longest chain reachable from this jump when computed.
	JumpDepth int
}

func NewMove(t MoveType, player PlayerNum) *Move {
	return &Move{
		Type:            t,
		Player:          player,
		Start:           NoPosition,
		End:             NoPosition,
		Captured:        NoPosition,
		CastleRookStart: NoPosition,
		CastleRookEnd:   NoPosition,
		OpponentKing:    NoPosition,
		OwnKing:         NoPosition,
		EnPassant:       NoPosition,
	}
}

func requireType(what string, t PieceType) {
	if t == Empty || t == Blocked {
		Fail("move %s type must be a real piece, got %s", what, t)
	}
}

func (m *Move) SetStart(pos Position, t PieceType) *Move {
	requireType("start", t)
	m.Start = pos
	m.StartType = t
	return m
}

func (m *Move) SetEnd(pos Position, t PieceType) *Move {
	requireType("end", t)
	m.End = pos
	m.EndType = t
	m.CompareValue += t.Value()
	return m
}

func (m *Move) SetCaptured(pos Position, t PieceType) *Move {
	requireType("captured", t)
	m.Captured = pos
	m.CapturedType = t
	m.CompareValue += 10 * max(t.Value(), 1)
	return m
}

func (m *Move) SetCastle(rookStart, rookEnd Position) *Move {
	m.CastleRookStart = rookStart
	m.CastleRookEnd = rookEnd
	m.CompareValue++
	return m
}

func (m *Move) SetOpponentKingType(pos Position, from, to PieceType) *Move {
	requireType("opponent king", from)
	requireType("opponent king", to)
	m.OpponentKing = pos
	m.OpponentKingStartType = from
	m.OpponentKingEndType = to
	if to == CheckedKing || to == CheckedKingIdle {
		m.CompareValue += 5
	}
	return m
}

func (m *Move) SetOwnKingType(pos Position, from, to PieceType) *Move {
	requireType("own king", from)
	requireType("own king", to)
	m.OwnKing = pos
	m.OwnKingStartType = from
	m.OwnKingEndType = to
	return m
}

func (m *Move) SetEnPassant(pos Position) *Move {
	m.EnPassant = pos
	return m
}

func (m *Move) HasEnd() bool          { return m.End != NoPosition }
func (m *Move) HasCaptured() bool     { return m.Captured != NoPosition }
func (m *Move) HasOpponentKing() bool { return m.OpponentKing != NoPosition }
func (m *Move) HasOwnKing() bool      { return m.OwnKing != NoPosition }
func (m *Move) IsJump() bool          { return m.Type.IsJump() }

// Equals compares the externally visible effect of two moves.
func (m *Move) Equals(o *Move) bool {
	if m == o {
		return true
	}
	if m == nil || o == nil {
		return false
	}
	return m.Player == o.Player &&
		m.Type == o.Type &&
		m.Start == o.Start &&
		m.End == o.End &&
		m.HasCaptured() == o.HasCaptured() &&
		m.HasOpponentKing() == o.HasOpponentKing()
}

func (m *Move) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s", m.Player, m.Type, m.Start)
	if m.HasEnd() && m.End != m.Start {
		fmt.Fprintf(&b, "-%s", m.End)
	}
	if m.Type == Stack || m.Type == Swap {
		fmt.Fprintf(&b, "=%s", m.EndType)
	}
	if m.HasCaptured() {
		fmt.Fprintf(&b, " x %s", m.Captured)
	}
	if m.Type == Castle {
		fmt.Fprintf(&b, " rook %s-%s", m.CastleRookStart, m.CastleRookEnd)
	}
	if m.HasOpponentKing() && (m.OpponentKingEndType == CheckedKing || m.OpponentKingEndType == CheckedKingIdle) {
		b.WriteString("+")
	}
	return b.String()
}
