package engine

import "github.com/signalnine/illimat-engine/card"

// Stockpile is a named aggregation of cards with a declared harvest value
// and the turn on which it was formed. It is harvested only as a whole
// (spec §3) and is immune to harvest on the same turn it was created.
type Stockpile struct {
	Cards       card.Set
	Value       uint8
	CreatedTurn uint16
}

// Protected reports whether s is same-turn protected against harvest,
// i.e. it was created during currentTurn and has not yet aged past it.
func (s Stockpile) Protected(currentTurn uint16) bool {
	return s.CreatedTurn == currentTurn
}
