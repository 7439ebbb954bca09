package mcts

import (
	"reflect"
	"testing"

	"github.com/signalnine/illimat-engine/config"
	"github.com/signalnine/illimat-engine/state"
)

func TestNodePoolReusesMemory(t *testing.T) {
	n1 := GetNode()
	if cap(n1.Children) == 0 {
		t.Error("expected pre-allocated children slice")
	}
	PutNode(n1)

	n2 := GetNode()
	if &n1.Children != &n2.Children {
		t.Error("pool did not reuse the same Node instance")
	}
	PutNode(n2)
}

func TestNodeReset(t *testing.T) {
	node := GetNode()
	node.Visits = 100
	node.Wins = 50.0
	node.PlayerID = 1

	node.Reset()

	if node.Visits != 0 || node.Wins != 0 || node.PlayerID != 0 {
		t.Error("Reset did not clear node state")
	}
	PutNode(node)
}

func TestUCB1Calculation(t *testing.T) {
	parent := GetNode()
	parent.Visits = 100

	child := GetNode()
	child.Parent = parent
	child.Visits = 10
	child.Wins = 7.0

	ucb := child.UCB1(1.414)
	// exploitation = 0.7, exploration = 1.414*sqrt(ln(100)/10) ~= 0.96
	if ucb < 1.5 || ucb > 1.8 {
		t.Errorf("UCB1 = %f, want roughly 1.66", ucb)
	}

	PutNode(parent) // child is not in parent.Children, so only parent is returned
}

func TestBestChild(t *testing.T) {
	parent := GetNode()
	parent.Visits = 100

	child1 := GetNode()
	child1.Parent = parent
	child1.Visits = 40
	child1.Wins = 20.0 // win rate 0.50

	child2 := GetNode()
	child2.Parent = parent
	child2.Visits = 50
	child2.Wins = 40.0 // win rate 0.80

	parent.Children = append(parent.Children, child1, child2)

	if best := parent.BestChild(1.414); best != child2 {
		t.Error("BestChild did not select the higher-UCB1 child")
	}
	PutNode(parent)
}

func TestMostVisitedChildBreaksTiesByMeanReward(t *testing.T) {
	parent := GetNode()

	child1 := GetNode()
	child1.Visits = 25
	child1.Wins = 5

	child2 := GetNode()
	child2.Visits = 25
	child2.Wins = 20 // same visits, much better mean reward

	child3 := GetNode()
	child3.Visits = 10

	parent.Children = append(parent.Children, child1, child2, child3)

	if most := parent.MostVisitedChild(); most != child2 {
		t.Error("MostVisitedChild did not break the visit tie by mean reward")
	}
	PutNode(parent)
}

func TestIsFullyExpanded(t *testing.T) {
	node := GetNode()
	node.UntriedMoves = []state.Action{{Kind: state.Sow}}

	if node.IsFullyExpanded() {
		t.Error("node should not be fully expanded with untried moves")
	}

	node.UntriedMoves = node.UntriedMoves[:0]
	if !node.IsFullyExpanded() {
		t.Error("node should be fully expanded with no untried moves")
	}
	PutNode(node)
}

func TestIsTerminal(t *testing.T) {
	node := GetNode()
	node.State = state.GetState()
	node.State.Phase = state.Playing

	if node.IsTerminal() {
		t.Error("node should not be terminal mid-game")
	}

	node.State.Phase = state.GameEnd
	if !node.IsTerminal() {
		t.Error("node should be terminal at GameEnd")
	}
	PutNode(node)
}

func TestSearchReturnsALegalMove(t *testing.T) {
	cfg := config.NewGameConfig(2)
	root := state.BuildState(cfg, 7)
	defer state.PutState(root)

	mctsCfg := config.NewMctsConfig(60)
	move, stats := Search(root, root.CurrentPlayer, mctsCfg, 123)

	if stats.TotalSimulations == 0 {
		t.Fatal("expected at least one simulation to run")
	}

	legal := state.LegalMoves(root, root.CurrentPlayer)
	found := false
	for _, m := range legal {
		if reflect.DeepEqual(m, move) {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Search returned a move not in legal_moves: %+v", move)
	}
}

func BenchmarkSearch(b *testing.B) {
	cfg := config.NewGameConfig(2)
	mctsCfg := config.NewMctsConfig(200)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		root := state.BuildState(cfg, int64(i)+1)
		Search(root, root.CurrentPlayer, mctsCfg, int64(i)+1)
		state.PutState(root)
	}
}
