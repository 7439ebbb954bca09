package engine

import "github.com/signalnine/illimat-engine/card"

// Combination is one way to harvest: a subset of a field's loose cards
// plus a subset of its (whole, unprotected) stockpiles whose value sum
// equals some legal value of the played card.
type Combination struct {
	Loose      card.Set
	Stockpiles []int // indices into the stockpiles slice passed to FindCombinations
}

type harvestAtom struct {
	isStockpile bool
	c           card.Card // valid when !isStockpile
	stockpileIx int       // valid when isStockpile
	fixedValue  uint8     // valid when isStockpile
}

// FindCombinations enumerates every subset of loose ∪ stockpiles (treated
// as atoms; a stockpile is all-or-nothing) whose value sums to one of
// played's legal values, honoring Fool duality on both the played card and
// any Fool among the loose cards selected, and excluding any stockpile
// created on currentTurn (same-turn protection, spec §3/§4.4).
//
// This is a pure function: it never mutates loose or stockpiles. Field
// sizes are small in practice (loose ≤ ~10, stockpiles ≤ a few) so
// exhaustive enumeration with sum-exceeds-target pruning is the specified
// approach rather than a DP reduction.
func FindCombinations(loose card.Set, stockpiles []Stockpile, played card.Card, currentTurn uint16) []Combination {
	atoms := make([]harvestAtom, 0, loose.Count()+len(stockpiles))
	loose.Iterate(func(c card.Card) bool {
		atoms = append(atoms, harvestAtom{c: c})
		return true
	})
	for i, sp := range stockpiles {
		if sp.Protected(currentTurn) {
			continue
		}
		atoms = append(atoms, harvestAtom{isStockpile: true, stockpileIx: i, fixedValue: sp.Value})
	}

	var results []Combination
	seen := make(map[card.Set]map[string]bool)

	for _, target := range played.Values() {
		var looseSel card.Set
		var stockSel []int

		var dfs func(idx int, sum uint8)
		dfs = func(idx int, sum uint8) {
			if sum > target {
				return
			}
			if idx == len(atoms) {
				if sum == target && (!looseSel.IsEmpty() || len(stockSel) > 0) {
					key := combinationKey(stockSel)
					if seen[looseSel] == nil {
						seen[looseSel] = make(map[string]bool)
					}
					if !seen[looseSel][key] {
						seen[looseSel][key] = true
						results = append(results, Combination{
							Loose:      looseSel,
							Stockpiles: append([]int(nil), stockSel...),
						})
					}
				}
				return
			}

			// Branch: skip this atom.
			dfs(idx+1, sum)

			atom := atoms[idx]
			if atom.isStockpile {
				stockSel = append(stockSel, atom.stockpileIx)
				dfs(idx+1, sum+atom.fixedValue)
				stockSel = stockSel[:len(stockSel)-1]
				return
			}

			// Branch: include this loose card, trying each of its legal
			// values (both 1 and 14 for a Fool).
			for _, v := range atom.c.Values() {
				looseSel.Add(atom.c)
				dfs(idx+1, sum+v)
				looseSel.Remove(atom.c)
			}
		}

		dfs(0, 0)
	}

	return results
}

// combinationKey distinguishes stockpile-index subsets so the same loose
// selection paired with different stockpiles isn't deduplicated away.
func combinationKey(stockSel []int) string {
	buf := make([]byte, len(stockSel))
	for i, ix := range stockSel {
		buf[i] = byte(ix)
	}
	return string(buf)
}

// MandatorySums returns every total achievable by summing extra plus every
// card in cards plus every stockpile in stockpiles — all mandatorily
// included — trying each Fool's dual value independently. Unlike
// FindCombinations this never drops an atom; it is the combinatorics a
// Stockpile action needs (the declared total must match the sum of
// everything being combined, not some subset of it).
func MandatorySums(cards card.Set, stockpiles []Stockpile, extra card.Card) []uint8 {
	sums := map[uint8]bool{0: true}
	addValues := func(values []uint8) {
		next := make(map[uint8]bool, len(sums)*len(values))
		for s := range sums {
			for _, v := range values {
				next[s+v] = true
			}
		}
		sums = next
	}

	addValues(extra.Values())
	cards.Iterate(func(c card.Card) bool {
		addValues(c.Values())
		return true
	})
	for _, sp := range stockpiles {
		addValues([]uint8{sp.Value})
	}

	out := make([]uint8, 0, len(sums))
	for s := range sums {
		out = append(out, s)
	}
	return out
}

// AutoHarvestTargets returns every loose card whose value exactly matches
// one of played's legal values — the auto-select used when Harvest is
// invoked with an empty targets list (spec §4.1).
func AutoHarvestTargets(loose card.Set, played card.Card) card.Set {
	var out card.Set
	for _, v := range played.Values() {
		loose.Iterate(func(c card.Card) bool {
			if c.CanBeValue(v) {
				out.Add(c)
			}
			return true
		})
	}
	return out
}
