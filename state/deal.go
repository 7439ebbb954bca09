package state

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/signalnine/illimat-engine/card"
	"github.com/signalnine/illimat-engine/config"
	"github.com/signalnine/illimat-engine/engine"
)

// fieldAnteCount is how many cards are dealt face-up to each field at
// setup (spec §3 "Lifecycles").
const fieldAnteCount = 3

// BuildState constructs a fresh game from cfg, seeded by seed so dealing
// is fully deterministic and replayable. It uses a local *rand.Rand
// rather than any package-level source, per the "no process-wide PRNG
// state" resource policy.
func BuildState(cfg config.GameConfig, seed int64) *State {
	s := GetState()
	s.GameID = uuid.New()
	s.Config = cfg
	s.Round = 1
	s.Dealer = 0
	s.Phase = Setup

	rng := rand.New(rand.NewSource(seed))
	deck := card.AllCards(cfg.UseStarsSuit)
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	s.Deck = append(s.Deck[:0], deck...)

	placeLuminaries(s, rng)
	dealOpening(s)

	s.CurrentPlayer = (s.Dealer + 1) % s.Config.PlayerCount
	s.Phase = Playing
	return s
}

// dealOpening deals the dealer 4 cards, every other player 3 (the
// game-opening asymmetry, spec §4.5), then 3 cards face-up to each field.
func dealOpening(s *State) {
	for p := uint8(0); p < s.Config.PlayerCount; p++ {
		n := 3
		if p == s.Dealer {
			n = 4
		}
		for i := 0; i < n; i++ {
			s.Hands[p] = append(s.Hands[p], s.draw())
		}
	}
	for f := range s.Fields {
		for i := 0; i < fieldAnteCount; i++ {
			s.Fields[f].Loose.Add(s.draw())
		}
	}
}

// draw removes and returns the top card of the deck. Callers must only
// invoke this when the deck is known non-empty (setup dealing draws a
// fixed, pre-validated count).
func (s *State) draw() card.Card {
	c := s.Deck[0]
	s.Deck = s.Deck[1:]
	return c
}

// placeLuminaries seeds each field's Luminary slot per cfg.LuminaryConfig.
// With NoExpansion every slot stays Absent. The core/expansion catalogue
// itself is out of scope (spec §1); this only wires the lifecycle slot so
// FieldCapabilities has something to dispatch through.
func placeLuminaries(s *State, rng *rand.Rand) {
	if s.Config.LuminaryConfig == engine.NoExpansion {
		return
	}
	// CoreOnly/AllExpansions: no catalogue is implemented beyond the three
	// named stubs, so slots are left Absent rather than seating an
	// unimplemented card face-down.
	_ = rng
}
