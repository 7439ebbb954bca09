package engine

import (
	"testing"

	"github.com/signalnine/illimat-engine/card"
)

func hasCombo(combos []Combination, loose card.Set, stockpiles ...int) bool {
	for _, c := range combos {
		if !c.Loose.Equals(loose) {
			continue
		}
		if len(c.Stockpiles) != len(stockpiles) {
			continue
		}
		match := true
		for _, want := range stockpiles {
			found := false
			for _, got := range c.Stockpiles {
				if got == want {
					found = true
					break
				}
			}
			if !found {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func TestFindCombinationsExactSingleCard(t *testing.T) {
	five := card.New(card.Five, card.Spring)
	loose := card.FromCards(five, card.New(card.King, card.Autumn))
	played := card.New(card.Five, card.Summer)

	combos := FindCombinations(loose, nil, played, 0)
	if !hasCombo(combos, card.FromCards(five)) {
		t.Fatalf("expected a combination matching the lone 5, got %+v", combos)
	}
}

func TestFindCombinationsSum(t *testing.T) {
	three := card.New(card.Three, card.Spring)
	four := card.New(card.Four, card.Autumn)
	loose := card.FromCards(three, four)
	played := card.New(card.Seven, card.Summer)

	combos := FindCombinations(loose, nil, played, 0)
	if !hasCombo(combos, card.FromCards(three, four)) {
		t.Fatalf("expected 3+4 combination for played value 7, got %+v", combos)
	}
}

func TestFindCombinationsFoolDuality(t *testing.T) {
	fool := card.New(card.Fool, card.Spring)
	king := card.New(card.King, card.Autumn) // value 13
	loose := card.FromCards(fool, king)
	played := card.New(card.Fool, card.Summer) // legal values {1, 14}

	combos := FindCombinations(loose, nil, played, 0)
	if !hasCombo(combos, card.FromCards(fool, king)) {
		t.Fatalf("expected Fool(1)+King(13)=14 combination, got %+v", combos)
	}
}

func TestFindCombinationsExcludesProtectedStockpile(t *testing.T) {
	sp := Stockpile{Cards: card.FromCards(card.New(card.Six, card.Spring)), Value: 6, CreatedTurn: 5}
	played := card.New(card.Six, card.Summer)

	protected := FindCombinations(card.Empty(), []Stockpile{sp}, played, 5)
	if len(protected) != 0 {
		t.Errorf("same-turn stockpile should be excluded, got %+v", protected)
	}

	unprotected := FindCombinations(card.Empty(), []Stockpile{sp}, played, 6)
	if !hasCombo(unprotected, card.Empty(), 0) {
		t.Errorf("aged stockpile should be harvestable, got %+v", unprotected)
	}
}

func TestFindCombinationsLooseAndStockpileCombined(t *testing.T) {
	two := card.New(card.Two, card.Spring)
	sp := Stockpile{Cards: card.FromCards(card.New(card.Five, card.Autumn)), Value: 5, CreatedTurn: 1}
	played := card.New(card.Seven, card.Summer)

	combos := FindCombinations(card.FromCards(two), []Stockpile{sp}, played, 3)
	if !hasCombo(combos, card.FromCards(two), 0) {
		t.Fatalf("expected loose 2 + stockpile(5) = 7, got %+v", combos)
	}
}

func TestAutoHarvestTargetsExactMatchOnly(t *testing.T) {
	five := card.New(card.Five, card.Spring)
	three := card.New(card.Three, card.Autumn)
	loose := card.FromCards(five, three)
	played := card.New(card.Five, card.Summer)

	got := AutoHarvestTargets(loose, played)
	if !got.Equals(card.FromCards(five)) {
		t.Errorf("AutoHarvestTargets = %+v, want just the matching 5", got)
	}
}

func TestAutoHarvestTargetsFoolMatchesBothValues(t *testing.T) {
	ace := card.New(card.Fool, card.Autumn) // itself dual-valued, but as a loose card its Value() defaults to 1
	king := card.New(card.King, card.Winter) // value 13, not 14 - shouldn't match
	loose := card.FromCards(ace, king)
	played := card.New(card.Fool, card.Summer)

	got := AutoHarvestTargets(loose, played)
	if !got.Has(ace) {
		t.Errorf("Fool loose card should match played Fool via value 1")
	}
	if got.Has(king) {
		t.Errorf("King(13) should not match Fool's legal values {1,14}")
	}
}
