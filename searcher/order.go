package searcher

import (
	"gridgames/game"

	"golang.org/x/exp/slices"
)

// inf sits above every reachable score, randomized leaves included, and is safe to negate.
const inf = 1_000 * MaxValue

// ordered returns a copy of moves sorted by CompareValue so that captures and
// promotions are tried first by the side that wants them. The game's own list is
// left untouched.
func ordered(moves []*game.Move, descending bool) []*game.Move {
	out := slices.Clone(moves)
	slices.SortStableFunc(out, func(a, b *game.Move) int {
		if descending {
			return b.CompareValue - a.CompareValue
		}
		return a.CompareValue - b.CompareValue
	})
	return out
}
