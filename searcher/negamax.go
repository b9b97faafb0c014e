package searcher

import "gridgames/game"

// negamax scores node from the point of view of the side to move there. The sign
// flips only across a change of turn, so the moves of a multi-jump share one
// perspective and one level of depth.
func (c *SearchContext) negamax(g *game.Game, node, depth, actualDepth int, alphaBeta bool, alpha, beta int) int {
	if c.stopped() {
		return 0
	}
	c.metrics.AddNode()
	mover := g.Turn()
	if g.IsGameOver() {
		return c.terminal(g, mover, actualDepth)
	}
	moves := g.Moves()
	if depth <= 0 || len(moves) == 0 {
		return c.leaf(g, mover, actualDepth)
	}

	root := node == c.tree.Root()
	c.tree.Node(node).Maximize = -1
	if mover == c.root {
		c.tree.Node(node).Maximize = 1
	}
	best := -inf

	for _, m := range ordered(moves, true) {
		child := c.tree.add(node, m)
		v, err := c.play(g, child, m, func() int {
			if g.Turn() == m.Player {
				return c.negamax(g, child, depth, actualDepth+1, alphaBeta, alpha, beta)
			}
			return -c.negamax(g, child, depth-1, actualDepth+1, alphaBeta, -beta, -alpha)
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
		if v > best {
			best = v
			c.tree.Node(node).Path = child
		}
		if alphaBeta {
			alpha = max(alpha, best)
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
			best = c.leaf(g, mover, actualDepth)
		}
	}
	c.tree.Node(node).Best = best
	if !root {
		c.tree.keepPath(node)
	}
	return best
}
