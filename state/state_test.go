package state

import (
	"testing"

	"github.com/signalnine/illimat-engine/config"
)

func TestBuildStateDealingSizes(t *testing.T) {
	cfg := config.NewGameConfig(2).WithDeckSize(false)
	s := BuildState(cfg, 42)

	if len(s.Hands[s.Dealer]) != 4 {
		t.Errorf("dealer hand size = %d, want 4", len(s.Hands[s.Dealer]))
	}
	opponent := (s.Dealer + 1) % 2
	if len(s.Hands[opponent]) != 3 {
		t.Errorf("opponent hand size = %d, want 3", len(s.Hands[opponent]))
	}
	if s.CurrentPlayer != opponent {
		t.Errorf("current player = %d, want %d", s.CurrentPlayer, opponent)
	}

	wantDeck := 52 - 3 - 4 - 3*4
	if len(s.Deck) != wantDeck {
		t.Errorf("deck size = %d, want %d", len(s.Deck), wantDeck)
	}
	if err := s.DebugInvariantCheck(); err != nil {
		t.Errorf("invariant check failed after deal: %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	cfg := config.NewGameConfig(2)
	s := BuildState(cfg, 1)
	clone := s.Clone()

	clone.Hands[0] = append(clone.Hands[0], s.Deck[0])
	if len(clone.Hands[0]) == len(s.Hands[0]) {
		t.Errorf("mutating clone's hand should not affect original")
	}

	clone.Fields[0].Loose.Add(s.Deck[0])
	if clone.Fields[0].Loose.Equals(s.Fields[0].Loose) && !clone.Fields[0].Loose.IsEmpty() {
		t.Errorf("mutating clone's field should not affect original")
	}
}

func TestDebugInvariantCheckCatchesDuplicateCard(t *testing.T) {
	cfg := config.NewGameConfig(2).WithDeckSize(false)
	s := BuildState(cfg, 7)
	s.Hands[0] = append(s.Hands[0], s.Deck[0]) // duplicate: deck[0] also still "in" the deck

	if err := s.DebugInvariantCheck(); err == nil {
		t.Errorf("expected invariant violation for duplicated card")
	}
}
