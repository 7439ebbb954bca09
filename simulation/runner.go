package simulation

import (
	"fmt"
	"math/rand"

	"github.com/signalnine/illimat-engine/config"
	"github.com/signalnine/illimat-engine/engine"
	"github.com/signalnine/illimat-engine/state"
)

// maxTurnsPerGame bounds a single simulated game so a misconfigured
// policy pair that never reaches victory can't hang a batch.
const maxTurnsPerGame = 4000

// AggregatedStats summarises a batch of self-played games, grounded on
// the pack's darwindeck-shaped RunBatch return value (cmd/worker's
// handleValidateGenome: "stats.Errors", games-played count).
type AggregatedStats struct {
	Games      int
	Errors     int
	Wins       [config.MaxPlayerCount]int
	TotalTurns int
}

// RunBatch plays n independent games, each built with
// state.BuildState(cfg, seed+i*stride) and driven by players[seat] for
// every seat, and returns aggregate win/turn/error counts. A recovered
// panic counts as an error rather than aborting the whole batch,
// mirroring the teacher's crash-isolation goal for RunBatch even though
// legal play here can't panic — only a corrupted config could.
func RunBatch(cfg config.GameConfig, n int, players [config.MaxPlayerCount]AIPlayerType, seed int64) AggregatedStats {
	stats := AggregatedStats{Games: n}
	for i := 0; i < n; i++ {
		winner, turns, err := runSingleGame(cfg, players, seed+int64(i)*7919)
		stats.TotalTurns += turns
		if err != nil {
			stats.Errors++
			continue
		}
		if winner >= 0 {
			stats.Wins[winner]++
		}
	}
	return stats
}

func runSingleGame(cfg config.GameConfig, players [config.MaxPlayerCount]AIPlayerType, seed int64) (winner, turns int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("simulation: recovered panic: %v", r)
		}
	}()

	s := state.BuildState(cfg, seed)
	defer state.PutState(s)
	rng := rand.New(rand.NewSource(seed))

	for turns = 0; turns < maxTurnsPerGame; turns++ {
		if s.Phase == state.RoundEnd {
			state.EndRound(s, seed+int64(turns))
		}
		if s.Phase == state.GameEnd {
			break
		}

		move, ok := SelectMove(s, s.CurrentPlayer, players[s.CurrentPlayer], rng)
		if !ok {
			break
		}
		if _, applyErr := state.ApplyAction(s, move); applyErr != nil {
			return -1, turns, applyErr
		}
	}

	for p := 0; p < int(cfg.PlayerCount); p++ {
		if s.Scores[p] >= engine.VictoryThreshold {
			return p, turns, nil
		}
	}
	return -1, turns, nil
}
