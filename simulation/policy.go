// Package simulation implements batch self-play (the teacher's
// RunBatch/AggregatedStats shape) and the hand-coded move-choice
// policies both the batch runner and MCTS's rollout step (spec §4.8 step
// 3) use to pick a move without a full tree search.
package simulation

import (
	"math/rand"

	"github.com/signalnine/illimat-engine/state"
)

// AIPlayerType selects a move-choice policy, the genome-free analog of
// the teacher's RandomAI/greedy AI types (cmd/worker/main.go
// selectGreedyMoveIndex).
type AIPlayerType int

const (
	// RandomAI picks uniformly among the generated legal moves.
	RandomAI AIPlayerType = iota
	// GreedyAI scores each legal move with a cheap heuristic and picks
	// the best one, breaking ties by generation order.
	GreedyAI
)

// SelectMove picks one of player's legal moves under policy ai. It
// reports false if player has no legal move (an empty hand at a cleared
// board, or an already-ended game).
func SelectMove(s *state.State, player uint8, ai AIPlayerType, rng *rand.Rand) (state.Action, bool) {
	// LegalMoves is a superset; keep only the moves ApplyAction accepts.
	generated := state.LegalMoves(s, player)
	moves := make([]state.Action, 0, len(generated))
	for _, m := range generated {
		trial := s.Clone()
		trial.CurrentPlayer = player
		if _, err := state.ApplyAction(trial, m); err == nil {
			moves = append(moves, m)
		}
		state.PutState(trial)
	}
	if len(moves) == 0 {
		return state.Action{}, false
	}
	switch ai {
	case GreedyAI:
		return greedyMove(s, moves), true
	default:
		return moves[rng.Intn(len(moves))], true
	}
}

// greedyMove mirrors the teacher's scoreMove heuristic (cmd/worker's
// selectGreedyMoveIndex): prefer moves that clear hand/field cards,
// scaled by how many cards they pull in at once.
func greedyMove(s *state.State, moves []state.Action) state.Action {
	best := moves[0]
	bestScore := scoreMove(best)
	for _, m := range moves[1:] {
		if sc := scoreMove(m); sc > bestScore {
			bestScore, best = sc, m
		}
	}
	return best
}

func scoreMove(a state.Action) float64 {
	switch a.Kind {
	case state.Harvest:
		return 10 + float64(a.Targets.Count())*2 + float64(len(a.StockpileTargets))*5
	case state.Stockpile:
		return 3 + float64(a.Value)*0.1
	default: // Sow
		return 1
	}
}
