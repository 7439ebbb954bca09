package engine

import (
	"testing"

	"github.com/signalnine/illimat-engine/card"
)

func TestStockpileProtectedSameTurn(t *testing.T) {
	sp := Stockpile{Cards: card.FromCards(card.New(card.Five, card.Spring)), Value: 5, CreatedTurn: 10}
	if !sp.Protected(10) {
		t.Errorf("stockpile created on turn 10 should be protected on turn 10")
	}
	if sp.Protected(11) {
		t.Errorf("stockpile created on turn 10 should not be protected on turn 11")
	}
}
