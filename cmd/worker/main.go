// Command worker is a stdin/stdout JSON command loop exposing the
// library API surface of spec §6.1 (build_state/apply_action/
// legal_moves/end_round/check_victory/to_snapshot/mcts_search) to an
// external automation harness, the same crash-isolation shape as the
// teacher's cmd/worker/main.go: one process per caller, line-delimited
// JSON in, line-delimited JSON out, a buggy request can only corrupt
// its own session.
package main

import (
	"bufio"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/ratelimit"

	"github.com/signalnine/illimat-engine/card"
	"github.com/signalnine/illimat-engine/config"
	"github.com/signalnine/illimat-engine/engine"
	"github.com/signalnine/illimat-engine/mcts"
	"github.com/signalnine/illimat-engine/snapshot"
	"github.com/signalnine/illimat-engine/state"
)

// Command is one incoming JSON request.
type Command struct {
	Action      string      `json:"action"`
	SessionID   string      `json:"session_id,omitempty"`
	PlayerCount uint8       `json:"player_count,omitempty"`
	Seed        int64       `json:"seed,omitempty"`
	Player      uint8       `json:"player,omitempty"`
	Move        *wireAction `json:"move,omitempty"`
	Simulations uint32      `json:"simulations,omitempty"`
	TimeLimitMs int64       `json:"time_limit_ms,omitempty"`
}

// Response is the JSON reply, mirroring the teacher's single flat
// Response. Which payload fields are populated depends on the action;
// Winner is always present (-1 when nobody has won).
type Response struct {
	Success   bool            `json:"success"`
	Error     string          `json:"error,omitempty"`
	SessionID string          `json:"session_id,omitempty"`
	State     json.RawMessage `json:"state,omitempty"`
	Moves     []wireAction    `json:"moves,omitempty"`
	Cleared   bool            `json:"field_cleared,omitempty"`
	Winner    int             `json:"winner"`
	Snapshot  string          `json:"snapshot,omitempty"` // base64 flatbuffers bytes
	BestMove  *wireAction     `json:"best_move,omitempty"`
	Stats     *wireStats      `json:"stats,omitempty"`
}

// wireAction is state.Action translated to JSON-friendly card IDs.
type wireAction struct {
	Kind             string  `json:"kind"`
	Field            uint8   `json:"field"`
	Card             uint8   `json:"card"`
	Targets          []uint8 `json:"targets,omitempty"`
	StockpileTargets []int   `json:"stockpile_targets,omitempty"`
	Value            uint8   `json:"value,omitempty"`
}

// wireStats is mcts.Stats rendered for JSON.
type wireStats struct {
	TotalNodes           int     `json:"total_nodes"`
	TotalSimulations     int     `json:"total_simulations"`
	ElapsedMs            int64   `json:"elapsed_ms"`
	SimulationsPerSecond float64 `json:"simulations_per_second"`
}

// sessions holds every live game the worker is tracking, keyed by the
// uuid minted for it at build_state time. The command loop is strictly
// single-goroutine, so no locking is required (spec §5's single-threaded-
// per-instance model).
var sessions = make(map[string]*state.State)

// aiMoveLimiter throttles mcts_search requests (the only CPU-heavy
// action) so one runaway harness can't starve every session sharing
// this worker process.
var aiMoveLimiter = ratelimit.New(20) // 20 searches/sec ceiling

func main() {
	scanner := bufio.NewScanner(os.Stdin)
	buf := make([]byte, 1024*1024)
	scanner.Buffer(buf, len(buf))

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		var cmd Command
		if err := json.Unmarshal([]byte(line), &cmd); err != nil {
			writeResponse(Response{Success: false, Error: fmt.Sprintf("invalid JSON: %v", err), Winner: -1})
			continue
		}
		writeResponse(handleCommand(&cmd))
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("worker: error reading stdin: %v", err)
	}
}

func handleCommand(cmd *Command) Response {
	switch cmd.Action {
	case "ping":
		return Response{Success: true, Winner: -1}
	case "build_state":
		return handleBuildState(cmd)
	case "apply_action":
		return handleApplyAction(cmd)
	case "legal_moves":
		return handleLegalMoves(cmd)
	case "end_round":
		return handleEndRound(cmd)
	case "check_victory":
		return handleCheckVictory(cmd)
	case "to_snapshot":
		return handleToSnapshot(cmd)
	case "mcts_search":
		return handleMctsSearch(cmd)
	default:
		return Response{Success: false, Error: fmt.Sprintf("unknown action: %s", cmd.Action), Winner: -1}
	}
}

func handleBuildState(cmd *Command) Response {
	playerCount := cmd.PlayerCount
	if playerCount == 0 {
		playerCount = config.MaxPlayerCount
	}
	if playerCount < config.MinPlayerCount || playerCount > config.MaxPlayerCount {
		return Response{Success: false, Error: "player_count out of range", Winner: -1}
	}

	seed := cmd.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := config.NewGameConfig(playerCount)
	s := state.BuildState(cfg, seed)

	id := uuid.New().String()
	sessions[id] = s

	return sessionResponse(id, s)
}

func handleApplyAction(cmd *Command) Response {
	s, ok := sessions[cmd.SessionID]
	if !ok {
		return Response{Success: false, Error: "unknown session_id", Winner: -1}
	}
	if cmd.Move == nil {
		return Response{Success: false, Error: "move is required", Winner: -1}
	}

	action, err := cmd.Move.toAction()
	if err != nil {
		return Response{Success: false, Error: err.Error(), Winner: -1}
	}

	cleared, err := state.ApplyAction(s, action)
	if err != nil {
		return Response{Success: false, Error: err.Error(), Winner: -1}
	}

	resp := sessionResponse(cmd.SessionID, s)
	resp.Cleared = bool(cleared)
	return resp
}

func handleLegalMoves(cmd *Command) Response {
	s, ok := sessions[cmd.SessionID]
	if !ok {
		return Response{Success: false, Error: "unknown session_id", Winner: -1}
	}
	moves := state.LegalMoves(s, cmd.Player)
	return Response{Success: true, SessionID: cmd.SessionID, Moves: toWireActions(moves), Winner: -1}
}

func handleEndRound(cmd *Command) Response {
	s, ok := sessions[cmd.SessionID]
	if !ok {
		return Response{Success: false, Error: "unknown session_id", Winner: -1}
	}
	if s.Phase != state.RoundEnd {
		return Response{Success: false, Error: "state is not at round end", Winner: -1}
	}
	seed := cmd.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	state.EndRound(s, seed)
	return sessionResponse(cmd.SessionID, s)
}

func handleCheckVictory(cmd *Command) Response {
	s, ok := sessions[cmd.SessionID]
	if !ok {
		return Response{Success: false, Error: "unknown session_id", Winner: -1}
	}
	winner := engine.CheckVictory(s.Scores, int(s.Config.PlayerCount))
	return Response{Success: true, SessionID: cmd.SessionID, Winner: winner}
}

func handleToSnapshot(cmd *Command) Response {
	s, ok := sessions[cmd.SessionID]
	if !ok {
		return Response{Success: false, Error: "unknown session_id", Winner: -1}
	}
	snap := snapshot.ToSnapshot(s)
	encoded := snapshot.Encode(snap)
	return Response{
		Success:   true,
		SessionID: cmd.SessionID,
		Snapshot:  base64.StdEncoding.EncodeToString(encoded),
		Winner:    -1,
	}
}

func handleMctsSearch(cmd *Command) Response {
	s, ok := sessions[cmd.SessionID]
	if !ok {
		return Response{Success: false, Error: "unknown session_id", Winner: -1}
	}

	aiMoveLimiter.Take() // blocks until the next slot is free

	sims := cmd.Simulations
	if sims == 0 {
		sims = 2000
	}
	mctsCfg := config.NewMctsConfig(sims)
	if cmd.TimeLimitMs > 0 {
		mctsCfg = mctsCfg.WithTimeLimit(time.Duration(cmd.TimeLimitMs) * time.Millisecond)
	}

	seed := cmd.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	move, stats := mcts.Search(s, cmd.Player, mctsCfg, seed)
	wm := toWireAction(move)
	return Response{
		Success:   true,
		SessionID: cmd.SessionID,
		BestMove:  &wm,
		Winner:    -1,
		Stats: &wireStats{
			TotalNodes:           stats.TotalNodes,
			TotalSimulations:     stats.TotalSimulations,
			ElapsedMs:            stats.Elapsed.Milliseconds(),
			SimulationsPerSecond: stats.SimulationsPerSecond,
		},
	}
}

func sessionResponse(id string, s *state.State) Response {
	stateJSON, err := json.Marshal(s)
	if err != nil {
		return Response{Success: false, Error: fmt.Sprintf("failed to serialize state: %v", err), Winner: -1}
	}
	winner := engine.CheckVictory(s.Scores, int(s.Config.PlayerCount))
	return Response{
		Success:   true,
		SessionID: id,
		State:     stateJSON,
		Moves:     toWireActions(state.LegalMoves(s, s.CurrentPlayer)),
		Winner:    winner,
	}
}

func toWireActions(actions []state.Action) []wireAction {
	out := make([]wireAction, len(actions))
	for i, a := range actions {
		out[i] = toWireAction(a)
	}
	return out
}

func toWireAction(a state.Action) wireAction {
	w := wireAction{
		Kind:             kindName(a.Kind),
		Field:            a.Field,
		Card:             a.Card.ID(),
		StockpileTargets: a.StockpileTargets,
		Value:            a.Value,
	}
	a.Targets.Iterate(func(c card.Card) bool {
		w.Targets = append(w.Targets, c.ID())
		return true
	})
	return w
}

func (w wireAction) toAction() (state.Action, error) {
	kind, err := kindFromName(w.Kind)
	if err != nil {
		return state.Action{}, err
	}
	a := state.Action{
		Kind:             kind,
		Field:            w.Field,
		Card:             card.FromID(w.Card),
		StockpileTargets: w.StockpileTargets,
		Value:            w.Value,
	}
	for _, id := range w.Targets {
		a.Targets.Add(card.FromID(id))
	}
	return a, nil
}

func kindName(k state.ActionKind) string {
	switch k {
	case state.Sow:
		return "sow"
	case state.Harvest:
		return "harvest"
	case state.Stockpile:
		return "stockpile"
	default:
		return "unknown"
	}
}

func kindFromName(name string) (state.ActionKind, error) {
	switch name {
	case "sow":
		return state.Sow, nil
	case "harvest":
		return state.Harvest, nil
	case "stockpile":
		return state.Stockpile, nil
	default:
		return 0, fmt.Errorf("unknown action kind: %q", name)
	}
}

func writeResponse(resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Printf("worker: failed to marshal response: %v", err)
		fmt.Println(`{"success":false,"error":"internal: failed to marshal response","winner":-1}`)
		return
	}
	fmt.Println(string(data))
}
