package rules

import (
	"testing"

	"gridgames/game"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

func TestFEN(t *testing.T) {
	g := game.New(NewChess())
	fen, err := FEN(g)
	require.NoError(t, err)
	require.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", fen)

	g.ExecuteMove(findMove(g.Moves(), game.Pos(1, 4), game.Pos(3, 4)))
	fen, err = FEN(g)
	require.NoError(t, err)
	require.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", fen)

	_, err = FEN(game.New(NewEnglish()))
	require.ErrorIs(t, err, ErrNotChess)
}

// squares lists moves as from-to pairs. Promotions collapse into one entry because
// the piece is picked by a separate swap move here.
func squares(moves []*game.Move) []string {
	var out []string
	for _, m := range moves {
		out = append(out, m.Start.String()+m.End.String())
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func referenceSquares(t *testing.T, fen string) []string {
	t.Helper()
	position, err := chess.FEN(fen)
	require.NoError(t, err, fen)
	var out []string
	for _, m := range chess.NewGame(position).ValidMoves() {
		out = append(out, m.S1().String()+m.S2().String())
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// TestChessMovesMatchReference walks random games and compares every move list with
// an independent move generator.
func TestChessMovesMatchReference(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	g := game.New(NewChess())
	for walk := 0; walk < 4; walk++ {
		g.NewGame()
		for ply := 0; ply < 80 && !g.IsGameOver(); ply++ {
			moves := g.Moves()
			if moves[0].Type != game.Swap {
				fen, err := FEN(g)
				require.NoError(t, err)
				require.Equal(t, referenceSquares(t, fen), squares(moves), fen)
			}
			g.ExecuteMove(moves[rng.Intn(len(moves))])
		}
	}
}
