package state

import (
	"github.com/signalnine/illimat-engine/card"
	"github.com/signalnine/illimat-engine/engine"
)

// LegalMoves generates candidate actions for player. Per spec §6.1 a
// superset is acceptable — ApplyAction is the source of truth and will
// reject anything that doesn't actually validate; this keeps the
// generator a cheap enumerate-and-let-apply-filter step, matching the
// pack's own movegen/apply split (generate broadly, validate on commit).
func LegalMoves(s *State, player uint8) []Action {
	var moves []Action
	hand := s.Hands[player]

	for field := uint8(0); field < engine.NumFields; field++ {
		caps := s.FieldCapabilities(field)
		f := &s.Fields[field]

		for _, c := range hand {
			if caps.Sow {
				moves = append(moves, Action{Kind: Sow, Field: field, Card: c})
			}
			if caps.Harvest {
				moves = append(moves, harvestMoves(field, c, f, s.Turn)...)
			}
			if caps.Stockpile {
				moves = append(moves, stockpileMoves(field, c, f)...)
			}
		}
	}
	return moves
}

// harvestMoves lists the auto-select move (if it would find anything)
// plus every explicit combination the harvest combinator finds for
// playing c in field.
func harvestMoves(field uint8, c card.Card, f *Field, turn uint16) []Action {
	var moves []Action
	if auto := engine.AutoHarvestTargets(f.Loose, c); !auto.IsEmpty() {
		moves = append(moves, Action{Kind: Harvest, Field: field, Card: c})
	}
	for _, combo := range engine.FindCombinations(f.Loose, f.Stockpiles, c, turn) {
		moves = append(moves, Action{
			Kind:             Harvest,
			Field:            field,
			Card:             c,
			Targets:          combo.Loose,
			StockpileTargets: combo.Stockpiles,
		})
	}
	return moves
}

// stockpileMoves proposes combining c alone, and c with each single loose
// card or stockpile already in the field, at every sum those pairings can
// achieve. This is a deliberately modest superset (pairs, not the full
// power set) to keep rollout-time generation cheap; ApplyAction still
// re-validates the hand-retention precondition on commit.
func stockpileMoves(field uint8, c card.Card, f *Field) []Action {
	var moves []Action
	for _, v := range engine.MandatorySums(card.Empty(), nil, c) {
		moves = append(moves, Action{Kind: Stockpile, Field: field, Card: c, Value: v})
	}

	f.Loose.Iterate(func(other card.Card) bool {
		targets := card.FromCards(other)
		for _, v := range engine.MandatorySums(targets, nil, c) {
			moves = append(moves, Action{Kind: Stockpile, Field: field, Card: c, Targets: targets, Value: v})
		}
		return true
	})

	for i, sp := range f.Stockpiles {
		for _, v := range engine.MandatorySums(card.Empty(), []engine.Stockpile{sp}, c) {
			moves = append(moves, Action{Kind: Stockpile, Field: field, Card: c, StockpileTargets: []int{i}, Value: v})
		}
	}

	return moves
}
