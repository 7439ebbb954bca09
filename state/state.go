// Package state implements the authoritative Illimat game state machine:
// setup and dealing, the {Sow, Harvest, Stockpile} action engine, the
// post-action turn tail, round/game transitions, and JSON serialization.
// State is the single writer of game state; engine provides the pure
// rule helpers (season, capabilities, harvest combinations, scoring) it
// calls into.
package state

import (
	"sync"

	"github.com/google/uuid"
	"github.com/signalnine/illimat-engine/card"
	"github.com/signalnine/illimat-engine/config"
	"github.com/signalnine/illimat-engine/engine"
)

// Phase is the coarse game-state-machine position (spec §4.5).
type Phase uint8

const (
	Setup Phase = iota
	Playing
	RoundEnd
	GameEnd
)

// Field is one of the four board positions: its loose cards, its ordered
// stockpiles, and its optional Luminary slot.
type Field struct {
	Loose      card.Set
	Stockpiles []engine.Stockpile
	Luminary   engine.LuminaryState
}

// State is the authoritative, mutable game state. It is pooled the way
// the pack's engine.GameState is (GetState/PutState/Reset/Clone) so MCTS
// and batch simulation can cheaply recycle instances.
type State struct {
	GameID uuid.UUID
	Config config.GameConfig

	Deck     []card.Card // remaining draw order, index 0 drawn next
	Hands    [config.MaxPlayerCount][]card.Card
	Harvests [config.MaxPlayerCount]card.Set
	Fields   [engine.NumFields]Field
	Okus     engine.OkusTokens

	Orientation   uint8
	CurrentPlayer uint8
	Dealer        uint8
	Round         uint16
	Turn          uint16
	Scores        [config.MaxPlayerCount]int
	Phase         Phase
}

var statePool = sync.Pool{
	New: func() interface{} {
		return &State{}
	},
}

// GetState acquires a zeroed State from the pool.
func GetState() *State {
	s := statePool.Get().(*State)
	s.Reset()
	return s
}

// PutState returns a State to the pool. Callers must not use s afterward.
func PutState(s *State) {
	statePool.Put(s)
}

// Reset clears s back to its zero value, reusing backing arrays where
// possible to avoid per-game allocation.
func (s *State) Reset() {
	s.GameID = uuid.UUID{}
	s.Config = config.GameConfig{}
	s.Deck = s.Deck[:0]
	for i := range s.Hands {
		s.Hands[i] = s.Hands[i][:0]
		s.Harvests[i] = card.Empty()
		s.Scores[i] = 0
	}
	for i := range s.Fields {
		s.Fields[i] = Field{}
	}
	s.Okus = engine.FreshOkus()
	s.Orientation = 0
	s.CurrentPlayer = 0
	s.Dealer = 0
	s.Round = 0
	s.Turn = 0
	s.Phase = Setup
}

// Clone deep-copies s, including every hand, harvest set, field and
// stockpile slice, so the result shares no mutable backing storage with
// the original — the precondition MCTS relies on for cloning snapshots
// (and, here, for cloning whole authoritative states in tests and batch
// simulation).
func (s *State) Clone() *State {
	c := GetState()
	c.GameID = s.GameID
	c.Config = s.Config
	c.Deck = append(c.Deck, s.Deck...)
	for i := range s.Hands {
		c.Hands[i] = append(c.Hands[i], s.Hands[i]...)
		c.Harvests[i] = s.Harvests[i]
		c.Scores[i] = s.Scores[i]
	}
	for i := range s.Fields {
		c.Fields[i].Loose = s.Fields[i].Loose
		c.Fields[i].Luminary = s.Fields[i].Luminary
		c.Fields[i].Stockpiles = append(c.Fields[i].Stockpiles, s.Fields[i].Stockpiles...)
	}
	c.Okus = s.Okus
	c.Orientation = s.Orientation
	c.CurrentPlayer = s.CurrentPlayer
	c.Dealer = s.Dealer
	c.Round = s.Round
	c.Turn = s.Turn
	c.Phase = s.Phase
	return c
}

// luminaryStates gathers the per-field Luminary layout in the shape
// engine.FieldCapabilities expects.
func (s *State) luminaryStates() [engine.NumFields]engine.LuminaryState {
	var out [engine.NumFields]engine.LuminaryState
	for i := range s.Fields {
		out[i] = s.Fields[i].Luminary
	}
	return out
}

// FieldCapabilities returns the effective action permissions for a field
// under the current orientation and Luminary layout.
func (s *State) FieldCapabilities(field uint8) engine.Capabilities {
	return engine.FieldCapabilities(field, s.Orientation, s.luminaryStates())
}

// DebugInvariantCheck audits I1-I5 (spec §3/§8). It is meant for test
// builds and fuzzing harnesses; a violation indicates a corrupted state
// that should never arise from valid apply_action sequences, so callers
// in production code are expected to treat a non-nil return as fatal.
func (s *State) DebugInvariantCheck() error {
	if err := s.checkCardConservation(); err != nil {
		return err
	}
	for p := uint8(0); p < s.Config.PlayerCount; p++ {
		if len(s.Hands[p]) > 4 {
			return newError(errInvalidPlayer, "hand size exceeds 4")
		}
	}
	for _, f := range s.Fields {
		for _, sp := range f.Stockpiles {
			if sp.Value < 1 || sp.Value > 14 {
				return newError(errSumMismatch, "stockpile value out of 1..14 range")
			}
		}
	}
	if int(s.CurrentPlayer) >= int(s.Config.PlayerCount) {
		return newError(errInvalidPlayer, "current player out of range")
	}
	if s.Orientation > 3 {
		return newError(errInvalidField, "orientation out of 0..3 range")
	}
	if s.Round < 1 {
		return newError(errInvalidField, "round number must be >= 1")
	}
	if s.Okus.CountOnPool()+okusHeldTotal(s.Okus) != engine.NumOkus {
		return newError(errInvalidField, "okus token count is not exactly four")
	}
	return nil
}

func okusHeldTotal(o engine.OkusTokens) int {
	n := 0
	for _, pos := range o {
		if pos.Held {
			n++
		}
	}
	return n
}

// checkCardConservation verifies I1: every configured card appears exactly
// once across deck, hands, harvests, field loose cards and stockpiles.
func (s *State) checkCardConservation() error {
	var seen card.Set
	dup := func(c card.Card) error {
		if seen.Has(c) {
			return newError(errSumMismatch, "card appears in more than one location")
		}
		seen.Add(c)
		return nil
	}

	for _, c := range s.Deck {
		if err := dup(c); err != nil {
			return err
		}
	}
	for p := uint8(0); p < s.Config.PlayerCount; p++ {
		for _, c := range s.Hands[p] {
			if err := dup(c); err != nil {
				return err
			}
		}
		var dupErr error
		s.Harvests[p].Iterate(func(c card.Card) bool {
			if err := dup(c); err != nil {
				dupErr = err
				return false
			}
			return true
		})
		if dupErr != nil {
			return dupErr
		}
	}
	for _, f := range s.Fields {
		var dupErr error
		f.Loose.Iterate(func(c card.Card) bool {
			if err := dup(c); err != nil {
				dupErr = err
				return false
			}
			return true
		})
		if dupErr != nil {
			return dupErr
		}
		for _, sp := range f.Stockpiles {
			sp.Cards.Iterate(func(c card.Card) bool {
				if err := dup(c); err != nil {
					dupErr = err
					return false
				}
				return true
			})
			if dupErr != nil {
				return dupErr
			}
		}
	}

	universe := card.AllCards(s.Config.UseStarsSuit)
	if seen.Count() != len(universe) {
		return newError(errSumMismatch, "card set does not match configured universe")
	}
	return nil
}
