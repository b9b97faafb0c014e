package searcher

import (
	"strings"

	"gridgames/game"

	"golang.org/x/exp/slices"
)

const noNode = -1

// Node is one explored move in the search tree. Nodes refer to each other by index
// into the Tree arena.
type Node struct {
	Move     game.Move
	Parent   int
	Children []int
	Best     int // value of the position after Move
	Path     int // chosen child, noNode at leaves
	Maximize int // +1 when the side to move is the root player, -1 otherwise, 0 at leaves

	source *game.Move // the move as listed by the game, for handing it back at the root
}

// Tree is an arena of nodes with a free list. Once a node below the root has been
// searched only its chosen line is kept, so the arena stays proportional to the
// branching factor times the depth.
type Tree struct {
	nodes []Node
	free  []int
}

func newTree() *Tree {
	t := &Tree{}
	t.reset()
	return t
}

func (t *Tree) reset() {
	t.nodes = t.nodes[:0]
	t.free = t.free[:0]
	t.nodes = append(t.nodes, Node{Parent: noNode, Path: noNode})
}

// Root is always node 0.
func (t *Tree) Root() int { return 0 }

func (t *Tree) Node(id int) *Node { return &t.nodes[id] }

// Len is the number of live nodes.
func (t *Tree) Len() int { return len(t.nodes) - len(t.free) }

func (t *Tree) add(parent int, m *game.Move) int {
	n := Node{Move: *m, Parent: parent, Path: noNode, source: m}
	var id int
	if k := len(t.free); k > 0 {
		id = t.free[k-1]
		t.free = t.free[:k-1]
		t.nodes[id] = n
	} else {
		id = len(t.nodes)
		t.nodes = append(t.nodes, n)
	}
	t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	return id
}

func (t *Tree) release(id int) {
	for _, c := range t.nodes[id].Children {
		t.release(c)
	}
	t.nodes[id] = Node{}
	t.free = append(t.free, id)
}

// keepPath drops every child of id except the chosen one.
func (t *Tree) keepPath(id int) {
	n := &t.nodes[id]
	path := n.Path
	children := n.Children
	n.Children = nil
	for _, c := range children {
		if c != path {
			t.release(c)
		}
	}
	if path != noNode {
		t.nodes[id].Children = append(t.nodes[id].Children, path)
	}
}

// remove detaches child from parent and frees its subtree.
func (t *Tree) remove(parent, child int) {
	children := t.nodes[parent].Children
	if i := slices.Index(children, child); i >= 0 {
		t.nodes[parent].Children = slices.Delete(children, i, i+1)
	}
	if t.nodes[parent].Path == child {
		t.nodes[parent].Path = noNode
	}
	t.release(child)
}

// Line follows the chosen children from id.
func (t *Tree) Line(id int) []game.Move {
	var line []game.Move
	for n := t.nodes[id].Path; n != noNode; n = t.nodes[n].Path {
		line = append(line, t.nodes[n].Move)
	}
	return line
}

// PathTo renders the moves leading from the root to id.
func (t *Tree) PathTo(id int) string {
	var moves []string
	for n := id; n != noNode && n != t.Root(); n = t.nodes[n].Parent {
		moves = append(moves, t.nodes[n].Move.String())
	}
	slices.Reverse(moves)
	return strings.Join(moves, ", ")
}
