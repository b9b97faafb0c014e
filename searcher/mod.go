package searcher

import (
	"errors"
	"fmt"
	"strings"
)

// MaxValue bounds every score. A won position scores MaxValue less the number of
// moves needed to reach it, so faster wins score higher.
const MaxValue = 1_000_000_000

// DefaultMaxDepth is counted in turns, not moves: a multi-jump turn is one level.
const DefaultMaxDepth = 4

var (
	ErrUnknownAlgorithm = errors.New("unknown search algorithm")
	ErrNoMoves          = errors.New("no legal moves to search")
)

type Algorithm int

const (
	Minimax Algorithm = iota
	MinimaxAlphaBeta
	Negamax
	NegamaxAlphaBeta
)

var algorithmNames = [...]string{"minimax", "minimax-ab", "negamax", "negamax-ab"}

func (a Algorithm) String() string {
	if a < 0 || int(a) >= len(algorithmNames) {
		return "unknown"
	}
	return algorithmNames[a]
}

// ParseAlgorithm accepts the names printed by Algorithm.String, case-insensitively.
func ParseAlgorithm(name string) (Algorithm, error) {
	for i, n := range algorithmNames {
		if strings.EqualFold(n, name) {
			return Algorithm(i), nil
		}
	}
	return 0, fmt.Errorf("algorithm %q: %w", name, ErrUnknownAlgorithm)
}

// Config selects the algorithm and how deep it looks.
type Config struct {
	Algorithm           Algorithm
	MaxDepth            int
	RandomizeDuplicates bool // break ties between equal scores at random
}
