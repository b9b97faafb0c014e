package game

// Piece is a mutable board cell. Ownership lives in the stack (bottom to top) so
// stacking-capture variants and plain variants share one representation: the top of
// the stack is the effective owner and an empty stack means an empty cell.
type Piece struct {
	Position Position
	Type     PieceType
	Captured bool
	NumMoves int
	Stack    []PlayerNum
}

func newPiece(pos Position) *Piece {
	return &Piece{Position: pos, Type: Empty}
}

// Clear resets the cell to empty.
func (p *Piece) Clear() {
	p.Type = Empty
	p.Captured = false
	p.NumMoves = 0
	p.Stack = p.Stack[:0]
}

func (p *Piece) IsEmpty() bool {
	return p.Type == Empty
}

// SetType changes the kind of an occupied cell. Use Clear to empty a cell.
func (p *Piece) SetType(t PieceType) {
	if t == Empty {
		Fail("piece %s: SetType(Empty), use Clear", p.Position)
	}
	p.Type = t
}

// Owner is the top of the stack, or Nobody.
func (p *Piece) Owner() PlayerNum {
	if len(p.Stack) == 0 {
		return Nobody
	}
	return p.Stack[len(p.Stack)-1]
}

// SetOwner replaces the top of the stack, pushing when the stack is empty.
func (p *Piece) SetOwner(owner PlayerNum) {
	if owner == Nobody {
		Fail("piece %s: SetOwner(Nobody), use Clear", p.Position)
	}
	if len(p.Stack) == 0 {
		p.Stack = append(p.Stack, owner)
		return
	}
	p.Stack[len(p.Stack)-1] = owner
}

// CopyFrom copies everything but the position.
func (p *Piece) CopyFrom(o *Piece) {
	p.Type = o.Type
	p.Captured = o.Captured
	p.NumMoves = o.NumMoves
	p.Stack = append(p.Stack[:0], o.Stack...)
}

func (p *Piece) StackSize() int {
	return len(p.Stack)
}

func (p *Piece) AddStackTop(owner PlayerNum) {
	p.Stack = append(p.Stack, owner)
}

func (p *Piece) AddStackBottom(owner PlayerNum) {
	p.Stack = append(p.Stack, Nobody)
	copy(p.Stack[1:], p.Stack)
	p.Stack[0] = owner
}

func (p *Piece) RemoveStackTop() PlayerNum {
	if len(p.Stack) == 0 {
		Fail("piece %s: RemoveStackTop on empty stack", p.Position)
	}
	top := p.Stack[len(p.Stack)-1]
	p.Stack = p.Stack[:len(p.Stack)-1]
	return top
}

func (p *Piece) RemoveStackBottom() PlayerNum {
	if len(p.Stack) == 0 {
		Fail("piece %s: RemoveStackBottom on empty stack", p.Position)
	}
	bottom := p.Stack[0]
	p.Stack = append(p.Stack[:0], p.Stack[1:]...)
	return bottom
}

// StackAt returns the owner at depth index, 0 being the top.
func (p *Piece) StackAt(index int) PlayerNum {
	if index < 0 || index >= len(p.Stack) {
		Fail("piece %s: stack index %d out of range [0,%d)", p.Position, index, len(p.Stack))
	}
	return p.Stack[len(p.Stack)-1-index]
}

func (p *Piece) String() string {
	if p.Type == Empty || p.Type == Blocked {
		return p.Type.Abbrev()
	}
	s := p.Type.Abbrev()
	if p.Owner() == Near && len(s) == 1 && s[0] >= 'a' && s[0] <= 'z' {
		s = string(s[0] - 'a' + 'A')
	}
	return s
}
