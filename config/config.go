package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gridgames/game"
	"gridgames/meta"
	"gridgames/player"
	"gridgames/rules"
	"gridgames/searcher"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid match config")

const (
	KindAI     = "ai"
	KindRandom = "random"
)

// PlayerSpec describes one side of a match.
type PlayerSpec struct {
	Kind      string `yaml:"kind"`
	Algorithm string `yaml:"algorithm"`
	Depth     int    `yaml:"depth"`
	Randomize bool   `yaml:"randomize"`
	Seed      uint64 `yaml:"seed"`
}

// Match is a series of games between two players on one variant.
type Match struct {
	Variant  string        `yaml:"variant"`
	Games    int           `yaml:"games"`
	MaxMoves int           `yaml:"max_moves"`
	Budget   time.Duration `yaml:"budget"` // per move, zero for none
	Out      string        `yaml:"out"`
	Near     PlayerSpec    `yaml:"near"`
	Far      PlayerSpec    `yaml:"far"`
}

func Default() Match {
	return Match{
		Variant:  meta.VARIANT,
		Games:    meta.GAMES,
		MaxMoves: meta.MAX_MOVES,
		Out:      meta.OUT,
		Near:     PlayerSpec{Kind: KindAI, Algorithm: meta.ALGORITHM, Depth: meta.DEPTH, Randomize: true},
		Far:      PlayerSpec{Kind: KindRandom},
	}
}

// Load reads the match at path over the defaults, applies the environment and
// validates the result. An empty path skips the file.
func Load(path string) (Match, error) {
	m := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Match{}, fmt.Errorf("reading match config: %w", err)
		}
		if err := yaml.Unmarshal(data, &m); err != nil {
			return Match{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	m.applyEnv()
	if err := m.Validate(); err != nil {
		return Match{}, err
	}
	return m, nil
}

func (m *Match) applyEnv() {
	m.Variant = getenv("GRIDGAMES_VARIANT", m.Variant)
	m.Games = getenvInt("GRIDGAMES_GAMES", m.Games)
	if depth := getenvInt("GRIDGAMES_DEPTH", 0); depth > 0 {
		m.Near.Depth = depth
		m.Far.Depth = depth
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return fallback
}

func (m Match) Validate() error {
	if _, err := rules.ByName(m.Variant); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if m.Games <= 0 {
		return fmt.Errorf("%w: games must be positive, got %d", ErrInvalidConfig, m.Games)
	}
	if m.MaxMoves <= 0 {
		return fmt.Errorf("%w: max_moves must be positive, got %d", ErrInvalidConfig, m.MaxMoves)
	}
	if m.Budget < 0 {
		return fmt.Errorf("%w: negative budget %s", ErrInvalidConfig, m.Budget)
	}
	if err := m.Near.validate(); err != nil {
		return fmt.Errorf("%w: %s player: %w", ErrInvalidConfig, game.Near, err)
	}
	if err := m.Far.validate(); err != nil {
		return fmt.Errorf("%w: %s player: %w", ErrInvalidConfig, game.Far, err)
	}
	return nil
}

func (p PlayerSpec) validate() error {
	switch p.Kind {
	case KindRandom:
		return nil
	case KindAI:
		if p.Algorithm != "" {
			if _, err := searcher.ParseAlgorithm(p.Algorithm); err != nil {
				return err
			}
		}
		if p.Depth < 0 {
			return fmt.Errorf("negative depth %d", p.Depth)
		}
		return nil
	}
	return fmt.Errorf("unknown kind %q", p.Kind)
}

// Rules returns the variant being played.
func (m Match) Rules() (game.Rules, error) {
	return rules.ByName(m.Variant)
}

// NewPlayer builds the player p describes. A zero seed means seeding from the clock.
func (p PlayerSpec) NewPlayer(logger zerolog.Logger) (game.Player, error) {
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if p.Kind == KindRandom {
		if p.Seed == 0 {
			return player.NewUnseededRandomPlayer(), nil
		}
		return player.NewRandomPlayer(p.Seed), nil
	}

	options := []searcher.Option{
		searcher.WithMaxDepth(p.Depth),
		searcher.WithRandomizeDuplicates(p.Randomize),
		searcher.WithMetrics(),
		searcher.WithLogger(logger),
	}
	if p.Algorithm != "" {
		a, _ := searcher.ParseAlgorithm(p.Algorithm)
		options = append(options, searcher.WithAlgorithm(a))
	}
	if p.Seed != 0 {
		options = append(options, searcher.WithSeed(p.Seed))
	}
	return searcher.NewAIPlayer(options...), nil
}

// String names the player in records, e.g. "ai(negamax-ab/4)".
func (p PlayerSpec) String() string {
	if p.Kind != KindAI {
		return p.Kind
	}
	algorithm := p.Algorithm
	if algorithm == "" {
		algorithm = searcher.NegamaxAlphaBeta.String()
	}
	depth := p.Depth
	if depth == 0 {
		depth = searcher.DefaultMaxDepth
	}
	return fmt.Sprintf("ai(%s/%d)", algorithm, depth)
}
