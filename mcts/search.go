package mcts

import (
	"math/rand"
	"sort"
	"time"

	"github.com/signalnine/illimat-engine/config"
	"github.com/signalnine/illimat-engine/engine"
	"github.com/signalnine/illimat-engine/simulation"
	"github.com/signalnine/illimat-engine/snapshot"
	"github.com/signalnine/illimat-engine/state"
)

// rolloutDepthLimit bounds simulation step 3 so a rollout that never
// naturally reaches GameEnd (a pathological, near-infinite-refill deck
// configuration) still terminates.
const rolloutDepthLimit = 400

// ChildSummary is one root child's move/visits/mean-reward line, part of
// Stats' "top-K child summaries" requirement (spec §4.8).
type ChildSummary struct {
	Move       state.Action
	Visits     uint32
	MeanReward float64
}

// Stats reports the shape of one Search invocation (spec §4.8
// "Statistics").
type Stats struct {
	TotalNodes           int
	TotalSimulations     int
	Elapsed              time.Duration
	SimulationsPerSecond float64
	TopChildren          []ChildSummary
}

// Search runs UCB1 MCTS from root on behalf of player (the seat whose
// move is being chosen) for cfg.MaxSimulations simulations or until
// cfg.TimeLimit elapses, whichever fires first. root is cloned
// immediately, so the caller's state is never mutated. seed drives
// rollout move selection and any mid-search round transitions.
func Search(root *state.State, player uint8, cfg config.MctsConfig, seed int64) (state.Action, Stats) {
	rng := rand.New(rand.NewSource(seed))
	start := time.Now()

	rootNode := GetNode()
	rootNode.State = root.Clone()
	rootNode.PlayerID = rootNode.State.CurrentPlayer
	if !rootNode.IsTerminal() {
		rootNode.UntriedMoves = state.LegalMoves(rootNode.State, rootNode.State.CurrentPlayer)
	}
	defer PutNode(rootNode)

	totalNodes := 1
	sims := 0
	budget := int(cfg.MaxSimulations)
	for sims < budget {
		if cfg.TimeLimit > 0 && time.Since(start) >= cfg.TimeLimit {
			break
		}

		leaf, created := selectAndExpand(rootNode, float64(cfg.ExplorationConstant), seed+int64(sims))
		totalNodes += created

		reward := rollout(leaf, player, rng, seed+int64(sims)+1)
		backpropagate(leaf, reward, player)
		sims++
	}

	elapsed := time.Since(start)
	stats := Stats{
		TotalNodes:       totalNodes,
		TotalSimulations: sims,
		Elapsed:          elapsed,
		TopChildren:      topChildren(rootNode, 5),
	}
	if elapsed > 0 {
		stats.SimulationsPerSecond = float64(sims) / elapsed.Seconds()
	}

	best := rootNode.MostVisitedChild()
	if best == nil {
		return state.Action{}, stats
	}
	return best.Move, stats
}

// selectAndExpand descends from root via BestChild while nodes are fully
// expanded (spec §4.8 step 1), then expands one untried move at the
// first non-terminal, not-fully-expanded node it reaches (step 2).
func selectAndExpand(root *Node, c float64, seed int64) (leaf *Node, created int) {
	node := root
	for {
		if node.IsTerminal() {
			return node, 0
		}
		if !node.IsFullyExpanded() {
			return expand(node, seed), 1
		}
		next := node.BestChild(c)
		if next == nil {
			return node, 0
		}
		node = next
	}
}

func expand(node *Node, seed int64) *Node {
	idx := len(node.UntriedMoves) - 1
	move := node.UntriedMoves[idx]
	node.UntriedMoves = node.UntriedMoves[:idx]

	child := GetNode()
	child.Parent = node
	child.Move = move
	child.HasMove = true
	child.State = node.State.Clone()

	actingPlayer := child.State.CurrentPlayer
	if _, err := state.ApplyAction(child.State, move); err != nil {
		// legal_moves is a documented superset (spec §6.1); a generator
		// overshoot that apply_action rejects becomes a dead leaf with no
		// further children rather than corrupting the tree.
		child.PlayerID = actingPlayer
		node.Children = append(node.Children, child)
		return child
	}
	advanceRounds(child.State, seed)

	child.PlayerID = child.State.CurrentPlayer
	if !child.IsTerminal() {
		child.UntriedMoves = state.LegalMoves(child.State, child.State.CurrentPlayer)
	}
	node.Children = append(node.Children, child)
	return child
}

// advanceRounds runs EndRound until s leaves RoundEnd, so the tree search
// can carry on across round boundaries instead of stalling at one.
func advanceRounds(s *state.State, seed int64) {
	for s.Phase == state.RoundEnd {
		state.EndRound(s, seed)
		seed++
	}
}

// rollout plays uniformly-random legal moves from leaf (spec §4.8 step 3
// "cheap policy: uniform over generated legal moves") until GameEnd or
// rolloutDepthLimit, then scores the result from player's perspective.
func rollout(leaf *Node, player uint8, rng *rand.Rand, seed int64) float64 {
	s := leaf.State.Clone()
	defer state.PutState(s)

	for depth := 0; depth < rolloutDepthLimit; depth++ {
		if s.Phase == state.RoundEnd {
			state.EndRound(s, seed+int64(depth))
		}
		if s.Phase == state.GameEnd {
			break
		}
		move, ok := simulation.SelectMove(s, s.CurrentPlayer, simulation.RandomAI, rng)
		if !ok {
			break
		}
		if _, err := state.ApplyAction(s, move); err != nil {
			break
		}
	}

	return evaluateTerminal(s, player)
}

// evaluateTerminal scores s from player's perspective: a clean win/loss
// signal if the game actually ended, otherwise the depth-limit heuristic
// (spec §4.8 step 3).
func evaluateTerminal(s *state.State, player uint8) float64 {
	if s.Phase == state.GameEnd && int(player) < len(s.Scores) {
		if s.Scores[player] >= engine.VictoryThreshold {
			return 1
		}
		for p, sc := range s.Scores {
			if p != int(player) && sc >= engine.VictoryThreshold {
				return -1
			}
		}
	}
	return snapshot.Evaluate(snapshot.ToSnapshot(s), player)
}

// backpropagate walks leaf's parent chain, incrementing visits and
// accumulating reward from the perspective of the player to move at each
// node: a node where player was to move gets reward added, any other
// node (an opponent's turn) gets it subtracted (spec §4.8 step 4,
// "rewards may be negated alternately for adversarial play").
func backpropagate(leaf *Node, reward float64, player uint8) {
	for n := leaf; n != nil; n = n.Parent {
		n.Visits++
		if n.PlayerID == player {
			n.Wins += reward
		} else {
			n.Wins -= reward
		}
	}
}

func topChildren(root *Node, k int) []ChildSummary {
	children := append([]*Node(nil), root.Children...)
	sort.Slice(children, func(i, j int) bool {
		return children[i].Visits > children[j].Visits
	})
	if len(children) > k {
		children = children[:k]
	}
	out := make([]ChildSummary, len(children))
	for i, c := range children {
		mean := 0.0
		if c.Visits > 0 {
			mean = c.Wins / float64(c.Visits)
		}
		out[i] = ChildSummary{Move: c.Move, Visits: c.Visits, MeanReward: mean}
	}
	return out
}
