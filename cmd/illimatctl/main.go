// Command illimatctl is a command-line harness around the engine: play
// batches of self-played games and benchmark one MCTS search, the two
// offline workflows spec §5 calls out alongside the interactive worker
// (cmd/worker). Grounded on the pack's urfave/cli/v3 dependency (listed,
// unused, in klauern-clash-royale-api's go.mod — no in-pack usage code
// exists to imitate, so the subcommand/flag wiring below follows the
// library's documented v3 API directly).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/signalnine/illimat-engine/config"
	"github.com/signalnine/illimat-engine/mcts"
	"github.com/signalnine/illimat-engine/simulation"
	"github.com/signalnine/illimat-engine/state"
)

func main() {
	cmd := &cli.Command{
		Name:  "illimatctl",
		Usage: "drive the Illimat engine from the command line",
		Commands: []*cli.Command{
			playCommand(),
			benchCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "illimatctl:", err)
		os.Exit(1)
	}
}

func playCommand() *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "self-play a batch of games and report aggregate results",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "players", Value: 4, Usage: "seat count (2-4)"},
			&cli.UintFlag{Name: "games", Value: 100, Usage: "number of games to simulate"},
			&cli.StringFlag{Name: "policy", Value: "random", Usage: "random or greedy"},
			&cli.IntFlag{Name: "seed", Value: 1, Usage: "base RNG seed"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			playerCount := uint8(cmd.Uint("players"))
			if playerCount < config.MinPlayerCount || playerCount > config.MaxPlayerCount {
				return fmt.Errorf("players must be between %d and %d", config.MinPlayerCount, config.MaxPlayerCount)
			}
			games := int(cmd.Uint("games"))
			ai := simulation.RandomAI
			if cmd.String("policy") == "greedy" {
				ai = simulation.GreedyAI
			}

			var players [config.MaxPlayerCount]simulation.AIPlayerType
			for i := uint8(0); i < playerCount; i++ {
				players[i] = ai
			}

			gameCfg := config.NewGameConfig(playerCount)
			start := time.Now()
			stats := simulation.RunBatch(gameCfg, games, players, cmd.Int("seed"))
			elapsed := time.Since(start)

			fmt.Printf("games=%d errors=%d total_turns=%d elapsed=%s\n", stats.Games, stats.Errors, stats.TotalTurns, elapsed)
			for p := uint8(0); p < playerCount; p++ {
				fmt.Printf("  player %d: %d wins\n", p, stats.Wins[p])
			}
			return nil
		},
	}
}

func benchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "run one MCTS search from a fresh deal and report throughput",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "players", Value: 4, Usage: "seat count (2-4)"},
			&cli.UintFlag{Name: "simulations", Value: 5000, Usage: "MCTS simulation budget"},
			&cli.DurationFlag{Name: "time-limit", Usage: "optional wall-clock budget, e.g. 2s"},
			&cli.IntFlag{Name: "seed", Value: 1, Usage: "deal and search seed"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			playerCount := uint8(cmd.Uint("players"))
			if playerCount < config.MinPlayerCount || playerCount > config.MaxPlayerCount {
				return fmt.Errorf("players must be between %d and %d", config.MinPlayerCount, config.MaxPlayerCount)
			}

			seed := cmd.Int("seed")
			gameCfg := config.NewGameConfig(playerCount)
			root := state.BuildState(gameCfg, seed)
			defer state.PutState(root)

			mctsCfg := config.NewMctsConfig(uint32(cmd.Uint("simulations")))
			if d := cmd.Duration("time-limit"); d > 0 {
				mctsCfg = mctsCfg.WithTimeLimit(d)
			}

			move, stats := mcts.Search(root, root.CurrentPlayer, mctsCfg, seed)

			fmt.Printf("nodes=%d simulations=%d elapsed=%s sims/sec=%.0f\n",
				stats.TotalNodes, stats.TotalSimulations, stats.Elapsed, stats.SimulationsPerSecond)
			fmt.Printf("chosen move: kind=%v field=%d card=%v\n", move.Kind, move.Field, move.Card)
			for i, c := range stats.TopChildren {
				fmt.Printf("  #%d visits=%d mean_reward=%.3f move=%+v\n", i+1, c.Visits, c.MeanReward, c.Move)
			}
			return nil
		},
	}
}
