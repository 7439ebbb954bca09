// Package mcts implements the UCB1 tree search described in spec §4.8:
// selection, expansion, rollout and backpropagation over state.State
// clones, node-pooled the way the teacher pools its own game state
// (sync.Pool, Reset, Get/Put).
package mcts

import (
	"math"
	"sync"

	"github.com/signalnine/illimat-engine/state"
)

// Node is one MCTS tree node: the game state it represents, its parent
// and children, the move that produced it from its parent, the moves
// still unexplored from it, and its accumulated UCB1 statistics.
type Node struct {
	State        *state.State
	Parent       *Node
	Children     []*Node
	Move         state.Action
	HasMove      bool
	UntriedMoves []state.Action
	Visits       uint32
	Wins         float64
	PlayerID     uint8
}

var nodePool = sync.Pool{
	New: func() interface{} {
		return &Node{Children: make([]*Node, 0, 8)}
	},
}

// GetNode acquires a zeroed Node from the pool.
func GetNode() *Node {
	n := nodePool.Get().(*Node)
	n.Reset()
	return n
}

// PutNode returns n and, recursively, its whole subtree to the pool
// (including releasing each node's state.State back to its own pool).
// Callers must not use n or any of its descendants afterward.
func PutNode(n *Node) {
	for _, c := range n.Children {
		PutNode(c)
	}
	if n.State != nil {
		state.PutState(n.State)
	}
	n.Reset()
	nodePool.Put(n)
}

// Reset clears n back to its zero value, reusing its Children/UntriedMoves
// backing arrays to avoid per-node allocation.
func (n *Node) Reset() {
	n.State = nil
	n.Parent = nil
	n.Children = n.Children[:0]
	n.Move = state.Action{}
	n.HasMove = false
	n.UntriedMoves = n.UntriedMoves[:0]
	n.Visits = 0
	n.Wins = 0
	n.PlayerID = 0
}

// UCB1 computes the UCB1 selection score for n given its parent's visit
// count and exploration constant c. An unvisited node has infinite score
// so selection always tries it first.
func (n *Node) UCB1(c float64) float64 {
	if n.Visits == 0 {
		return math.Inf(1)
	}
	exploitation := n.Wins / float64(n.Visits)
	exploration := c * math.Sqrt(math.Log(float64(n.Parent.Visits))/float64(n.Visits))
	return exploitation + exploration
}

// BestChild returns the child with the highest UCB1 score, or nil if n
// has no children.
func (n *Node) BestChild(c float64) *Node {
	var best *Node
	bestScore := math.Inf(-1)
	for _, child := range n.Children {
		score := child.UCB1(c)
		if score > bestScore {
			bestScore = score
			best = child
		}
	}
	return best
}

// MostVisitedChild returns the child visited most often (the "robust
// child" spec §4.8 says Search should return), breaking ties by highest
// mean reward.
func (n *Node) MostVisitedChild() *Node {
	var best *Node
	var bestVisits uint32
	var bestMean float64
	for _, child := range n.Children {
		mean := 0.0
		if child.Visits > 0 {
			mean = child.Wins / float64(child.Visits)
		}
		if best == nil || child.Visits > bestVisits || (child.Visits == bestVisits && mean > bestMean) {
			best, bestVisits, bestMean = child, child.Visits, mean
		}
	}
	return best
}

// IsFullyExpanded reports whether every legal move from n has a child.
func (n *Node) IsFullyExpanded() bool {
	return len(n.UntriedMoves) == 0
}

// IsTerminal reports whether n's state has reached GameEnd.
func (n *Node) IsTerminal() bool {
	return n.State.Phase == state.GameEnd
}
