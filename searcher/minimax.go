package searcher

import "gridgames/game"

// minimax scores node from the root player's point of view. depth counts the turns
// still to look at and actualDepth the moves already played below the root. With
// alphaBeta set, alpha and beta bound the window the caller still cares about.
func (c *SearchContext) minimax(g *game.Game, node, depth, actualDepth int, alphaBeta bool, alpha, beta int) int {
	if c.stopped() {
		return 0
	}
	c.metrics.AddNode()
	if g.IsGameOver() {
		return c.terminal(g, c.root, actualDepth)
	}
	moves := g.Moves()
	if depth <= 0 || len(moves) == 0 {
		return c.leaf(g, c.root, actualDepth)
	}

	root := node == c.tree.Root()
	maximize := g.Turn() == c.root
	best := inf
	c.tree.Node(node).Maximize = -1
	if maximize {
		best = -inf
		c.tree.Node(node).Maximize = 1
	}

	for _, m := range ordered(moves, maximize) {
		child := c.tree.add(node, m)
		v, err := c.play(g, child, m, func() int {
			next := depth
			if g.Turn() != m.Player {
				next--
			}
			return c.minimax(g, child, next, actualDepth+1, alphaBeta, alpha, beta)
		})
		if c.stopped() {
			c.tree.remove(node, child)
			if root {
				break
			}
			return 0
		}
		if err != nil {
			c.tree.remove(node, child)
			continue
		}
		c.tree.Node(child).Best = v
		if root {
			c.metrics.AddPieceValue(m.StartType, v)
		}
		if (maximize && v > best) || (!maximize && v < best) {
			best = v
			c.tree.Node(node).Path = child
		}
		if alphaBeta {
			if maximize {
				alpha = max(alpha, best)
			} else {
				beta = min(beta, best)
			}
			if alpha >= beta {
				c.metrics.AddPrune()
				break
			}
		}
	}

	if c.tree.Node(node).Path == noNode {
		// nothing could be played or the search was stopped before the first reply
		best = 0
		if !c.aborted.Load() {
			best = c.leaf(g, c.root, actualDepth)
		}
	}
	c.tree.Node(node).Best = best
	if !root {
		c.tree.keepPath(node)
	}
	return best
}
