package rules

import (
	"errors"
	"fmt"
	"strings"

	"gridgames/game"
)

var ErrNotChess = errors.New("position is not a chess position")

var fenLetters = map[game.PieceType]byte{
	game.PawnIdle:        'p',
	game.Pawn:            'p',
	game.PawnToSwap:      'p',
	game.Knight:          'n',
	game.Bishop:          'b',
	game.RookIdle:        'r',
	game.Rook:            'r',
	game.Queen:           'q',
	game.KingIdle:        'k',
	game.ChessKing:       'k',
	game.CheckedKingIdle: 'k',
	game.CheckedKing:     'k',
}

// FEN renders a chess game in Forsyth-Edwards notation with the near side as white.
// Castling rights follow from the idle kings and rooks, the en passant square from
// the last move.
func FEN(g *game.Game) (string, error) {
	if g.Ranks() != chessSize || g.Cols() != chessSize {
		return "", fmt.Errorf("%dx%d board: %w", g.Ranks(), g.Cols(), ErrNotChess)
	}
	var b strings.Builder
	for r := chessSize - 1; r >= 0; r-- {
		empty := 0
		for c := 0; c < chessSize; c++ {
			p := g.Piece(game.Pos(r, c))
			if p.IsEmpty() {
				empty++
				continue
			}
			letter, ok := fenLetters[p.Type]
			if !ok {
				return "", fmt.Errorf("%s on %s: %w", p.Type, p.Position, ErrNotChess)
			}
			if empty > 0 {
				fmt.Fprintf(&b, "%d", empty)
				empty = 0
			}
			if p.Owner() == game.Near {
				letter -= 'a' - 'A'
			}
			b.WriteByte(letter)
		}
		if empty > 0 {
			fmt.Fprintf(&b, "%d", empty)
		}
		if r > 0 {
			b.WriteByte('/')
		}
	}

	side := "w"
	if g.Turn() == game.Far {
		side = "b"
	}
	fmt.Fprintf(&b, " %s %s ", side, castlingRights(g))

	if last := g.LastMove(); last != nil && last.EnPassant != game.NoPosition {
		b.WriteString(last.EnPassant.String())
	} else {
		b.WriteByte('-')
	}
	fmt.Fprintf(&b, " 0 %d", 1+g.UndoDepth()/2)
	return b.String(), nil
}

func castlingRights(g *game.Game) string {
	var rights strings.Builder
	for _, side := range []struct {
		player game.PlayerNum
		rank   int
		king   byte
		queen  byte
	}{{game.Near, 0, 'K', 'Q'}, {game.Far, chessSize - 1, 'k', 'q'}} {
		king := g.Piece(game.Pos(side.rank, 4))
		if king.Owner() != side.player || (king.Type != game.KingIdle && king.Type != game.CheckedKingIdle) {
			continue
		}
		if rook := g.Piece(game.Pos(side.rank, 7)); rook.Owner() == side.player && rook.Type == game.RookIdle {
			rights.WriteByte(side.king)
		}
		if rook := g.Piece(game.Pos(side.rank, 0)); rook.Owner() == side.player && rook.Type == game.RookIdle {
			rights.WriteByte(side.queen)
		}
	}
	if rights.Len() == 0 {
		return "-"
	}
	return rights.String()
}
