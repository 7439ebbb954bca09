package state

import (
	"github.com/signalnine/illimat-engine/card"
	"github.com/signalnine/illimat-engine/engine"
)

// ActionKind names one of the three move variants (spec §4.1).
type ActionKind uint8

const (
	Sow ActionKind = iota
	Harvest
	Stockpile
)

// Action is a candidate move. Targets names the loose cards to consume;
// StockpileTargets names the indices (into the field's Stockpiles slice,
// valid at generation time) of whole stockpiles to consume. Value is the
// declared total of a Stockpile: it is not otherwise recoverable from
// Targets alone (a Fool among the targets has two readings), so Value is
// mandatory there — the resolution adopted for the spec's silence on how
// a Stockpile's total is actually pinned down. Harvest ignores Value and
// accepts any legal value of the played card.
type Action struct {
	Kind             ActionKind
	Field            uint8
	Card             card.Card
	Targets          card.Set
	StockpileTargets []int
	Value            uint8
}

// FieldCleared reports whether ApplyAction's harvest emptied its field.
type FieldCleared bool

// ApplyAction validates and applies a to s in place. On any validation
// failure s is left pointwise unchanged (spec law L2) and a non-nil
// *Error is returned.
func ApplyAction(s *State, a Action) (FieldCleared, error) {
	if a.Field >= engine.NumFields {
		return false, ErrInvalidField
	}
	if !inHand(s.Hands[s.CurrentPlayer], a.Card) {
		return false, ErrCardNotInHand
	}

	caps := s.FieldCapabilities(a.Field)

	var cleared bool
	var err error
	switch a.Kind {
	case Sow:
		err = applySow(s, a, caps)
	case Harvest:
		cleared, err = applyHarvest(s, a, caps)
	case Stockpile:
		err = applyStockpile(s, a, caps)
	default:
		err = ErrInvalidField
	}
	if err != nil {
		return false, err
	}

	turnTail(s, a.Field, cleared)
	return FieldCleared(cleared), nil
}

func inHand(hand []card.Card, c card.Card) bool {
	for _, h := range hand {
		if h == c {
			return true
		}
	}
	return false
}

func removeFromHand(hand []card.Card, c card.Card) []card.Card {
	for i, h := range hand {
		if h == c {
			return append(hand[:i], hand[i+1:]...)
		}
	}
	return hand
}

func applySow(s *State, a Action, caps engine.Capabilities) error {
	if !caps.Sow {
		return ErrIllegalSeason
	}
	field := &s.Fields[a.Field]
	s.Hands[s.CurrentPlayer] = removeFromHand(s.Hands[s.CurrentPlayer], a.Card)
	field.Loose.Add(a.Card)
	return nil
}

// applyHarvest resolves targets (auto-selecting exact matches when empty),
// verifies the sum under some Fool assignment, and moves card+targets into
// the harvest pile. It reports whether the field ended up empty.
func applyHarvest(s *State, a Action, caps engine.Capabilities) (bool, error) {
	if !caps.Harvest {
		return false, ErrIllegalSeason
	}
	field := &s.Fields[a.Field]

	targets := a.Targets
	stockIdx := a.StockpileTargets
	if targets.IsEmpty() && len(stockIdx) == 0 {
		targets = engine.AutoHarvestTargets(field.Loose, a.Card)
		if targets.IsEmpty() {
			return false, ErrSumMismatch
		}
	} else {
		if !field.Loose.Intersect(targets).Equals(targets) {
			return false, ErrTargetsMissing
		}
		for _, ix := range stockIdx {
			if ix < 0 || ix >= len(field.Stockpiles) {
				return false, ErrTargetsMissing
			}
			if field.Stockpiles[ix].Protected(s.Turn) {
				return false, ErrSameTurnStockpile
			}
		}
		if !verifySum(field, targets, stockIdx, a.Card, s.Turn) {
			return false, ErrSumMismatch
		}
	}

	s.Hands[s.CurrentPlayer] = removeFromHand(s.Hands[s.CurrentPlayer], a.Card)
	s.Harvests[s.CurrentPlayer] = s.Harvests[s.CurrentPlayer].Union(targets)
	s.Harvests[s.CurrentPlayer].Add(a.Card)
	field.Loose = field.Loose.Difference(targets)

	removeStockpiles(field, stockIdx, func(sp engine.Stockpile) {
		s.Harvests[s.CurrentPlayer] = s.Harvests[s.CurrentPlayer].Union(sp.Cards)
	})

	return field.Loose.IsEmpty() && len(field.Stockpiles) == 0, nil
}

// verifySum reports whether targets+stockpiles actually sum, under some
// Fool assignment, to one of card's legal values. FindCombinations already
// enumerates exactly this; an explicit request is valid iff it appears
// among the combinator's results.
func verifySum(field *Field, targets card.Set, stockIdx []int, played card.Card, currentTurn uint16) bool {
	combos := engine.FindCombinations(field.Loose, field.Stockpiles, played, currentTurn)
	for _, c := range combos {
		if !c.Loose.Equals(targets) {
			continue
		}
		if sameIndexSet(c.Stockpiles, stockIdx) {
			return true
		}
	}
	return false
}

func sameIndexSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[int]bool, len(a))
	for _, x := range a {
		seen[x] = true
	}
	for _, x := range b {
		if !seen[x] {
			return false
		}
	}
	return true
}

// removeStockpiles deletes the stockpiles at idx (descending order to keep
// indices valid across deletions) from field, invoking onRemove for each
// with its pre-removal contents.
func removeStockpiles(field *Field, idx []int, onRemove func(engine.Stockpile)) {
	sorted := append([]int(nil), idx...)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j] > sorted[i] {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	for _, ix := range sorted {
		onRemove(field.Stockpiles[ix])
		field.Stockpiles = append(field.Stockpiles[:ix], field.Stockpiles[ix+1:]...)
	}
}

// applyStockpile combines card with targets into a new atomic stockpile
// whose declared value is a.Value, requiring the player to retain a
// matching card in hand afterward (spec §4.1 precondition).
func applyStockpile(s *State, a Action, caps engine.Capabilities) error {
	if !caps.Stockpile {
		return ErrIllegalSeason
	}
	if a.Value < 1 || a.Value > 14 {
		return ErrStockpileUnharvestable
	}
	field := &s.Fields[a.Field]

	if !field.Loose.Intersect(a.Targets).Equals(a.Targets) {
		return ErrTargetsMissing
	}
	for _, ix := range a.StockpileTargets {
		if ix < 0 || ix >= len(field.Stockpiles) {
			return ErrTargetsMissing
		}
	}

	if !stockpileSumMatches(a, field) {
		return ErrSumMismatch
	}

	remaining := removeFromHand(append([]card.Card(nil), s.Hands[s.CurrentPlayer]...), a.Card)
	if !handHasValue(remaining, a.Value) {
		return ErrStockpileUnharvestable
	}

	combined := a.Targets
	combined.Add(a.Card)
	removeStockpiles(field, a.StockpileTargets, func(sp engine.Stockpile) {
		combined = combined.Union(sp.Cards)
	})

	s.Hands[s.CurrentPlayer] = remaining
	field.Loose = field.Loose.Difference(a.Targets)
	field.Stockpiles = append(field.Stockpiles, engine.Stockpile{
		Cards:       combined,
		Value:       a.Value,
		CreatedTurn: s.Turn,
	})
	return nil
}

// stockpileSumMatches checks whether card plus every named target (loose
// cards and whole stockpiles, all mandatorily included, unlike a harvest's
// subset search) can sum to a.Value under some Fool assignment.
func stockpileSumMatches(a Action, field *Field) bool {
	for _, sum := range engine.MandatorySums(a.Targets, stockpilesAt(field, a.StockpileTargets), a.Card) {
		if sum == a.Value {
			return true
		}
	}
	return false
}

func stockpilesAt(field *Field, idx []int) []engine.Stockpile {
	out := make([]engine.Stockpile, len(idx))
	for i, ix := range idx {
		out[i] = field.Stockpiles[ix]
	}
	return out
}

func handHasValue(hand []card.Card, value uint8) bool {
	for _, c := range hand {
		if c.CanBeValue(value) {
			return true
		}
	}
	return false
}
