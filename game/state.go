package game

import (
	"iter"
	"strings"
	"time"

	"gridgames/utils"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// Board is a rank-major grid of cells. Rules build one in Init.
type Board [][]*Piece

func NewBoard(ranks, cols int) Board {
	if ranks <= 0 || cols <= 0 || cols > 0xff {
		Fail("invalid board size %dx%d", ranks, cols)
	}
	b := make(Board, ranks)
	for r := range b {
		b[r] = make([]*Piece, cols)
		for c := range b[r] {
			b[r][c] = newPiece(Pos(r, c))
		}
	}
	return b
}

// Place puts a single piece on an empty board cell.
func (b Board) Place(rank, col int, owner PlayerNum, t PieceType) {
	p := b[rank][col]
	p.Clear()
	p.SetType(t)
	p.SetOwner(owner)
}

// Block removes a cell from the playing area.
func (b Board) Block(rank, col int) {
	p := b[rank][col]
	p.Clear()
	p.Type = Blocked
}

type undoEntry struct {
	move  *Move
	index int     // position of move in moves, -1 if it was not taken from the list
	moves []*Move // legal moves before the move was played
}

// Game owns the board, the side to move, the legal move cache and the undo stack.
// It is not safe for concurrent use: one goroutine drives a game at a time.
type Game struct {
	rules     Rules
	board     Board
	ranks     int
	cols      int
	turn      PlayerNum
	moves     []*Move
	undoStack []undoEntry
	numPieces [2]int
	state     State
	probing   int
	rng       *rand.Rand
	logger    zerolog.Logger
}

type Option func(g *Game)

// WithSeed makes every random choice of the rules reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Game) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(g *Game) {
		g.logger = logger
	}
}

// New creates a game for rules and sets up the starting position.
func New(rules Rules, options ...Option) *Game {
	if rules == nil {
		Fail("game needs rules")
	}
	g := &Game{
		rules:  rules,
		rng:    rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		logger: zerolog.Nop(),
	}
	for _, option := range options {
		option(g)
	}
	g.NewGame()
	return g
}

// NewGame resets everything and asks the rules for a fresh starting position.
func (g *Game) NewGame() {
	g.Clear()
	board, first := g.rules.Init(g)
	if len(board) == 0 || len(board[0]) == 0 {
		Fail("rules %s returned an empty board", g.rules.Name())
	}
	g.board = board
	g.ranks = len(board)
	g.cols = len(board[0])
	g.turn = first
	g.recountPieces()
	g.refreshState()
	g.logger.Debug().Str("rules", g.rules.Name()).Stringer("first", first).Msg("new game")
}

// Clear empties the board and forgets the move history.
func (g *Game) Clear() {
	for _, row := range g.board {
		for _, p := range row {
			p.Clear()
		}
	}
	g.turn = Near
	g.moves = nil
	g.undoStack = nil
	g.numPieces = [2]int{}
	g.state = Playing
	g.probing = 0
}

func (g *Game) Rules() Rules              { return g.rules }
func (g *Game) Ranks() int                { return g.ranks }
func (g *Game) Cols() int                 { return g.cols }
func (g *Game) Turn() PlayerNum           { return g.turn }
func (g *Game) State() State              { return g.state }
func (g *Game) IsGameOver() bool          { return g.state != Playing }
func (g *Game) Rand() *rand.Rand          { return g.rng }
func (g *Game) Logger() *zerolog.Logger   { return &g.logger }
func (g *Game) NumPieces(p PlayerNum) int { return g.numPieces[p] }

// Probing reports whether the game is inside a speculative Probe.
func (g *Game) Probing() bool { return g.probing > 0 }

// Winner is the winning side once the game is over, Nobody otherwise.
func (g *Game) Winner() PlayerNum {
	switch g.state {
	case NearWins:
		return Near
	case FarWins:
		return Far
	}
	return Nobody
}

// Moves returns the legal moves for the side to move, computing them on first use.
func (g *Game) Moves() []*Move {
	if len(g.moves) == 0 {
		g.moves = g.rules.ComputeMoves(g)
		if g.probing == 0 {
			g.countMoves()
		}
	}
	return g.moves
}

// SetMoves replaces the cached move list. Rules use it to continue a turn.
func (g *Game) SetMoves(moves []*Move) {
	g.moves = moves
	if g.probing == 0 {
		g.countMoves()
	}
}

// ExecuteMove plays m, which must belong to the side to move.
func (g *Game) ExecuteMove(m *Move) {
	if m == nil {
		Fail("execute nil move")
	}
	if m.Player != g.turn {
		Fail("move %s played out of turn, %s to move", m, g.turn)
	}
	if g.state != Playing {
		Fail("move %s played after the game ended (%s)", m, g.state)
	}
	if m.Start != NoPosition && m.Type != EndTurn && g.Piece(m.Start).IsEmpty() {
		Fail("move %s starts on an empty square", m)
	}
	g.undoStack = append(g.undoStack, undoEntry{
		move:  m,
		index: utils.FindIndex(g.moves, m),
		moves: g.moves,
	})
	g.moves = nil
	g.rules.ExecuteMove(g, m)
	if g.probing == 0 {
		g.refreshState()
	}
}

// Undo reverses the most recent move and returns it.
func (g *Game) Undo() *Move {
	if len(g.undoStack) == 0 {
		Fail("undo with empty history")
	}
	u := g.undoStack[len(g.undoStack)-1]
	g.undoStack = g.undoStack[:len(g.undoStack)-1]
	g.rules.ReverseMove(g, u.move)
	g.moves = u.moves
	g.state = Playing
	if g.probing == 0 {
		g.countMoves()
	}
	return u.move
}

// Probe plays m speculatively, runs fn and takes m back. Terminal checks are skipped
// while probing so that rules can look ahead from inside ComputeMoves.
func (g *Game) Probe(m *Move, fn func()) {
	depth := len(g.undoStack)
	g.probing++
	defer func() {
		if len(g.undoStack) > depth {
			g.Undo()
		}
		g.probing--
	}()
	g.ExecuteMove(m)
	fn()
}

func (g *Game) refreshState() {
	if winner := g.rules.Winner(g); winner != Nobody {
		g.state = WinState(winner)
		return
	}
	if g.rules.IsDraw(g) {
		g.state = Draw
		return
	}
	g.state = Playing
}

func (g *Game) countMoves() {
	for _, row := range g.board {
		for _, p := range row {
			p.NumMoves = 0
		}
	}
	for _, m := range g.moves {
		if m.Start != NoPosition && g.Contains(m.Start) {
			g.Piece(m.Start).NumMoves++
		}
	}
}

// UndoDepth is the number of moves that can be undone.
func (g *Game) UndoDepth() int { return len(g.undoStack) }

// MoveBack returns the n-th most recent move (0 = last), or nil.
func (g *Game) MoveBack(n int) *Move {
	i := len(g.undoStack) - 1 - n
	if n < 0 || i < 0 {
		return nil
	}
	return g.undoStack[i].move
}

func (g *Game) LastMove() *Move { return g.MoveBack(0) }

// History lists the played moves, oldest first.
func (g *Game) History() []*Move {
	out := make([]*Move, len(g.undoStack))
	for i, u := range g.undoStack {
		out[i] = u.move
	}
	return out
}

// SetTurn and NextTurn are for rules only.
func (g *Game) SetTurn(p PlayerNum) { g.turn = p }
func (g *Game) NextTurn()           { g.turn = g.turn.Opponent() }

// IsOnBoard reports whether (rank, col) is a playable cell.
func (g *Game) IsOnBoard(rank, col int) bool {
	if rank < 0 || rank >= g.ranks || col < 0 || col >= g.cols {
		return false
	}
	return g.board[rank][col].Type != Blocked
}

func (g *Game) Contains(pos Position) bool {
	if pos < 0 {
		return false
	}
	return g.IsOnBoard(pos.Rank(), pos.Col())
}

// Piece returns the cell at pos. Off-board positions are a logic error.
func (g *Game) Piece(pos Position) *Piece {
	r, c := pos.Rank(), pos.Col()
	if pos < 0 || r >= g.ranks || c >= g.cols {
		Fail("position %s is off the %dx%d board", pos, g.ranks, g.cols)
	}
	return g.board[r][c]
}

// Pieces yields occupied cells. Nobody yields all of them in row-major order; a
// side yields its own pieces starting from its home rank.
func (g *Game) Pieces(player PlayerNum) iter.Seq[*Piece] {
	return func(yield func(*Piece) bool) {
		for i := 0; i < g.ranks; i++ {
			r := i
			if player == Far {
				r = g.ranks - 1 - i
			}
			for _, p := range g.board[r] {
				owner := p.Owner()
				if owner == Nobody || (player != Nobody && owner != player) {
					continue
				}
				if !yield(p) {
					return
				}
			}
		}
	}
}

// MovePiece relocates the piece at from to the empty cell to.
func (g *Game) MovePiece(from, to Position) {
	src, dst := g.Piece(from), g.Piece(to)
	if src.IsEmpty() {
		Fail("move piece from empty square %s", from)
	}
	if !dst.IsEmpty() {
		Fail("move piece onto occupied square %s", to)
	}
	dst.CopyFrom(src)
	src.Clear()
}

// SetPiece overwrites the cell at pos with a single-owner piece.
func (g *Game) SetPiece(pos Position, owner PlayerNum, t PieceType) {
	p := g.Piece(pos)
	if prev := p.Owner(); prev != Nobody {
		g.numPieces[prev]--
	}
	p.Clear()
	p.SetType(t)
	p.SetOwner(owner)
	g.numPieces[owner]++
}

// ClearPiece empties the cell at pos.
func (g *Game) ClearPiece(pos Position) {
	p := g.Piece(pos)
	if prev := p.Owner(); prev != Nobody {
		g.numPieces[prev]--
	}
	p.Clear()
}

// EditPiece lets rules mutate a piece in place (type, captured flag, stack) while the
// piece counts follow any change of owner. A piece whose stack empties is cleared.
func (g *Game) EditPiece(pos Position, edit func(p *Piece)) {
	p := g.Piece(pos)
	before := p.Owner()
	edit(p)
	if len(p.Stack) == 0 && p.Type != Empty && p.Type != Blocked {
		p.Clear()
	}
	after := p.Owner()
	if before != after {
		if before != Nobody {
			g.numPieces[before]--
		}
		if after != Nobody {
			g.numPieces[after]++
		}
	}
}

// SetPieceType changes the kind of the piece at pos.
func (g *Game) SetPieceType(pos Position, t PieceType) {
	g.Piece(pos).SetType(t)
}

func (g *Game) recountPieces() {
	g.numPieces[Near] = g.CountPieces(Near)
	g.numPieces[Far] = g.CountPieces(Far)
}

// CountPieces scans the board. NumPieces must always agree with it.
func (g *Game) CountPieces(player PlayerNum) int {
	n := 0
	for range g.Pieces(player) {
		n++
	}
	return n
}

func (g *Game) String() string {
	var b strings.Builder
	for r := g.ranks - 1; r >= 0; r-- {
		for c, p := range g.board[r] {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(p.String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
