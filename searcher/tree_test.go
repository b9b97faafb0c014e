package searcher

import (
	"testing"

	"gridgames/game"

	"github.com/stretchr/testify/require"
)

func TestTree(t *testing.T) {
	move := func(r, c int) *game.Move {
		return game.NewMove(game.Slide, game.Near).SetStart(game.Pos(r, c), game.Checker).SetEnd(game.Pos(r+1, c+1), game.Checker)
	}

	tree := newTree()
	root := tree.Root()
	a := tree.add(root, move(0, 0))
	b := tree.add(root, move(0, 2))
	a1 := tree.add(a, move(1, 1))
	a2 := tree.add(a, move(1, 3))
	require.Equal(t, 5, tree.Len())

	tree.Node(a).Path = a2
	tree.keepPath(a)
	require.Equal(t, []int{a2}, tree.Node(a).Children)
	require.Equal(t, 4, tree.Len(), "the unchosen reply is released")

	reused := tree.add(b, move(1, 5))
	require.Equal(t, a1, reused, "released slots are reused")

	tree.Node(root).Path = a
	require.Len(t, tree.Line(root), 2)
	require.Equal(t, "near slide a1-b2, near slide d2-e3", tree.PathTo(a2))

	tree.remove(root, b)
	require.Equal(t, []int{a}, tree.Node(root).Children)
	require.Equal(t, 3, tree.Len())

	tree.reset()
	require.Equal(t, 1, tree.Len())
	require.Empty(t, tree.Line(tree.Root()))
}
