package snapshot

import (
	"testing"

	"github.com/signalnine/illimat-engine/card"
	"github.com/signalnine/illimat-engine/config"
	"github.com/signalnine/illimat-engine/engine"
	"github.com/signalnine/illimat-engine/state"
)

func setEquals(t *testing.T, got []card.Card, want card.Set) {
	t.Helper()
	var gotSet card.Set
	for _, c := range got {
		gotSet.Add(c)
	}
	if !gotSet.Equals(want) {
		t.Errorf("dense round-trip mismatch: got %v, want set %v", got, want)
	}
}

func TestToSnapshotLosslessForCarriedFields(t *testing.T) {
	cfg := config.NewGameConfig(3).WithDeckSize(false)
	s := state.BuildState(cfg, 11)
	defer state.PutState(s)

	snap := ToSnapshot(s)

	for i := range s.Fields {
		setEquals(t, Cards(snap.Fields[i]), s.Fields[i].Loose)
	}
	for p := 0; p < int(cfg.PlayerCount); p++ {
		var handSet card.Set
		for _, c := range s.Hands[p] {
			handSet.Add(c)
		}
		setEquals(t, Cards(snap.Hands[p]), handSet)
		setEquals(t, Cards(snap.Harvests[p]), s.Harvests[p])
	}
	var deckSet card.Set
	for _, c := range s.Deck {
		deckSet.Add(c)
	}
	setEquals(t, Cards(snap.Deck), deckSet)

	if snap.CurrentPlayer() != s.CurrentPlayer {
		t.Errorf("CurrentPlayer = %d, want %d", snap.CurrentPlayer(), s.CurrentPlayer)
	}
	if snap.Orientation() != s.Orientation {
		t.Errorf("Orientation = %d, want %d", snap.Orientation(), s.Orientation)
	}
	if snap.PlayerCount() != s.Config.PlayerCount {
		t.Errorf("PlayerCount = %d, want %d", snap.PlayerCount(), s.Config.PlayerCount)
	}
	if snap.TurnCounter() != s.Turn {
		t.Errorf("TurnCounter = %d, want %d", snap.TurnCounter(), s.Turn)
	}
}

func TestMetaPacksLuminaryAndOkus(t *testing.T) {
	s := state.GetState()
	defer state.PutState(s)
	s.Config = config.NewGameConfig(2)
	s.Fields[2].Luminary = engine.LuminaryState{Status: engine.Claimed, Card: engine.Island, Owner: 1}
	s.Okus[0] = engine.OkusPosition{Held: true, Player: 1}
	s.Okus[1] = engine.OkusPosition{Held: true, Player: 1}

	snap := ToSnapshot(s)

	if got := snap.LuminaryStatus(2); got != engine.Claimed {
		t.Errorf("LuminaryStatus(2) = %v, want Claimed", got)
	}
	if got := snap.LuminaryCard(2); got != engine.Island {
		t.Errorf("LuminaryCard(2) = %v, want Island", got)
	}
	if got := snap.LuminaryOwner(2); got != 1 {
		t.Errorf("LuminaryOwner(2) = %d, want 1", got)
	}
	if got := snap.LuminaryStatus(0); got != engine.Absent {
		t.Errorf("LuminaryStatus(0) = %v, want Absent (untouched field)", got)
	}
	if got := snap.OkusHeldBy(1); got != 2 {
		t.Errorf("OkusHeldBy(1) = %d, want 2", got)
	}
	if got := snap.OkusHeldBy(0); got != 0 {
		t.Errorf("OkusHeldBy(0) = %d, want 0", got)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cfg := config.NewGameConfig(4)
	s := state.BuildState(cfg, 99)
	defer state.PutState(s)

	snap := ToSnapshot(s)
	buf := Encode(snap)
	if len(buf) == 0 {
		t.Fatal("Encode returned empty buffer")
	}

	got := Decode(buf)
	if got != snap {
		t.Errorf("Decode(Encode(snap)) = %+v, want %+v", got, snap)
	}
}

func TestEvaluateWeightsSpringSummerOverWinter(t *testing.T) {
	spring := card.New(card.Five, card.Spring)
	winter := card.New(card.Five, card.Winter)

	var springHarvest Snapshot
	springHarvest.Harvests[0] = uint64(1) << spring.DenseIndex()
	var winterHarvest Snapshot
	winterHarvest.Harvests[0] = uint64(1) << winter.DenseIndex()

	if Evaluate(springHarvest, 0) <= Evaluate(winterHarvest, 0) {
		t.Errorf("Spring harvest should score higher than Winter harvest")
	}
}
