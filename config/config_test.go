package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gridgames/meta"
	"gridgames/player"
	"gridgames/searcher"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "match.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("without a file the defaults are used", func(t *testing.T) {
		m, err := Load("")
		require.NoError(t, err)
		require.Equal(t, Default(), m)
		require.Equal(t, meta.VARIANT, m.Variant)
	})

	t.Run("the file overrides the defaults it names", func(t *testing.T) {
		m, err := Load(writeConfig(t, `
variant: shashki
games: 3
budget: 250ms
near:
  algorithm: minimax-ab
  depth: 2
far:
  kind: ai
  seed: 9
`))
		require.NoError(t, err)
		require.Equal(t, "shashki", m.Variant)
		require.Equal(t, 3, m.Games)
		require.Equal(t, meta.MAX_MOVES, m.MaxMoves)
		require.Equal(t, 250*time.Millisecond, m.Budget)
		require.Equal(t, PlayerSpec{Kind: KindAI, Algorithm: "minimax-ab", Depth: 2, Randomize: true}, m.Near)
		require.Equal(t, PlayerSpec{Kind: KindAI, Seed: 9}, m.Far)
	})

	t.Run("the environment wins over the file", func(t *testing.T) {
		t.Setenv("GRIDGAMES_VARIANT", "chess")
		t.Setenv("GRIDGAMES_GAMES", "2")
		t.Setenv("GRIDGAMES_DEPTH", "6")
		m, err := Load(writeConfig(t, "variant: dama\ngames: 8\n"))
		require.NoError(t, err)
		require.Equal(t, "chess", m.Variant)
		require.Equal(t, 2, m.Games)
		require.Equal(t, 6, m.Near.Depth)
		require.Equal(t, 6, m.Far.Depth)
	})

	t.Run("malformed environment values are ignored", func(t *testing.T) {
		t.Setenv("GRIDGAMES_GAMES", "many")
		m, err := Load("")
		require.NoError(t, err)
		require.Equal(t, meta.GAMES, m.Games)
	})

	t.Run("a missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("broken yaml is an error", func(t *testing.T) {
		_, err := Load(writeConfig(t, "games: [1, 2"))
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cases := map[string]func(m *Match){
		"unknown variant":   func(m *Match) { m.Variant = "go" },
		"no games":          func(m *Match) { m.Games = 0 },
		"no move limit":     func(m *Match) { m.MaxMoves = -1 },
		"negative budget":   func(m *Match) { m.Budget = -time.Second },
		"unknown kind":      func(m *Match) { m.Near.Kind = "human" },
		"unknown algorithm": func(m *Match) { m.Far = PlayerSpec{Kind: KindAI, Algorithm: "mcts"} },
		"negative depth":    func(m *Match) { m.Near.Depth = -2 },
	}
	for name, breakIt := range cases {
		t.Run(name, func(t *testing.T) {
			m := Default()
			breakIt(&m)
			require.ErrorIs(t, m.Validate(), ErrInvalidConfig)
		})
	}
	require.NoError(t, Default().Validate())
}

func TestNewPlayer(t *testing.T) {
	p, err := PlayerSpec{Kind: KindRandom, Seed: 4}.NewPlayer(zerolog.Nop())
	require.NoError(t, err)
	require.IsType(t, &player.RandomPlayer{}, p)

	p, err = PlayerSpec{Kind: KindAI, Algorithm: "minimax", Depth: 3}.NewPlayer(zerolog.Nop())
	require.NoError(t, err)
	ai, ok := p.(*searcher.AIPlayer)
	require.True(t, ok)
	require.Equal(t, searcher.Config{Algorithm: searcher.Minimax, MaxDepth: 3}, ai.Config())

	_, err = PlayerSpec{Kind: "human"}.NewPlayer(zerolog.Nop())
	require.ErrorIs(t, err, ErrInvalidConfig)

	require.Equal(t, "ai(negamax-ab/4)", PlayerSpec{Kind: KindAI}.String())
	require.Equal(t, "random", PlayerSpec{Kind: KindRandom}.String())
}
