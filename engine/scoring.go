package engine

import "github.com/signalnine/illimat-engine/card"

// MaxPlayers is the largest supported player count.
const MaxPlayers = 4

// VictoryThreshold is the running total a player must reach to win the
// game outright (spec §4.6).
const VictoryThreshold = 17

// RoundScoring holds the computed competitive and individual bonuses for
// one round's end. Winner fields are -1 when the bonus is unclaimed
// (nobody harvested the suit, or the lead was tied).
type RoundScoring struct {
	BumperCropWinner int
	SunkissedWinner  int
	FrostbitPlayers  []int
	IndividualScores [MaxPlayers]uint8
}

// noWinner marks a competitive bonus as unclaimed.
const noWinner = -1

// CalculateRoundScoring computes Bumper Crop, Sunkissed, Frostbit and
// individual (Fools + okus) scoring for the round just ended. harvests[p]
// is every card player p harvested this round; okus is the token layout
// at round end.
func CalculateRoundScoring(harvests [MaxPlayers]card.Set, okus OkusTokens, numPlayers int) RoundScoring {
	scoring := RoundScoring{BumperCropWinner: noWinner, SunkissedWinner: noWinner}

	for p := 0; p < numPlayers; p++ {
		fools := countRank(harvests[p], card.Fool)
		held := okus.CountHeldBy(uint8(p))
		scoring.IndividualScores[p] = uint8(fools + held)
	}

	scoring.BumperCropWinner = soleSuitLeader(harvests, numPlayers, card.Spring)
	scoring.SunkissedWinner = soleSuitLeader(harvests, numPlayers, card.Summer)
	scoring.FrostbitPlayers = suitLeaders(harvests, numPlayers, card.Winter)

	return scoring
}

// ApplyRoundScoring folds a computed RoundScoring into the running totals.
// Frostbit never drives a total below zero.
func ApplyRoundScoring(totals *[MaxPlayers]int, scoring RoundScoring) {
	if scoring.BumperCropWinner != noWinner {
		totals[scoring.BumperCropWinner] += 4
	}
	if scoring.SunkissedWinner != noWinner {
		totals[scoring.SunkissedWinner] += 2
	}
	for _, p := range scoring.FrostbitPlayers {
		if totals[p] >= 2 {
			totals[p] -= 2
		} else {
			totals[p] = 0
		}
	}
	for p, score := range scoring.IndividualScores {
		totals[p] += int(score)
	}
}

// CheckVictory returns the player with the highest total at or above
// VictoryThreshold (the lower player id on an exact tie), or noWinner if
// nobody has reached it yet.
func CheckVictory(totals [MaxPlayers]int, numPlayers int) int {
	winner := noWinner
	for p := 0; p < numPlayers; p++ {
		if totals[p] >= VictoryThreshold && (winner == noWinner || totals[p] > totals[winner]) {
			winner = p
		}
	}
	return winner
}

// soleSuitLeader returns the one player with strictly the most cards of
// suit among their harvest, or noWinner if the max is zero or tied.
func soleSuitLeader(harvests [MaxPlayers]card.Set, numPlayers int, suit card.Suit) int {
	counts := suitCounts(harvests, numPlayers, suit)
	max := 0
	for _, c := range counts[:numPlayers] {
		if c > max {
			max = c
		}
	}
	if max == 0 {
		return noWinner
	}
	leader, ties := noWinner, 0
	for p, c := range counts[:numPlayers] {
		if c == max {
			leader = p
			ties++
		}
	}
	if ties != 1 {
		return noWinner
	}
	return leader
}

// suitLeaders returns every player tied for the most cards of suit, or nil
// if the max is zero. Unlike soleSuitLeader, ties share the bonus/penalty
// (Frostbit is a shared-tie penalty, spec §4.6).
func suitLeaders(harvests [MaxPlayers]card.Set, numPlayers int, suit card.Suit) []int {
	counts := suitCounts(harvests, numPlayers, suit)
	max := 0
	for _, c := range counts[:numPlayers] {
		if c > max {
			max = c
		}
	}
	if max == 0 {
		return nil
	}
	var leaders []int
	for p, c := range counts[:numPlayers] {
		if c == max {
			leaders = append(leaders, p)
		}
	}
	return leaders
}

func suitCounts(harvests [MaxPlayers]card.Set, numPlayers int, suit card.Suit) [MaxPlayers]int {
	var counts [MaxPlayers]int
	for p := 0; p < numPlayers; p++ {
		counts[p] = countSuit(harvests[p], suit)
	}
	return counts
}

func countSuit(harvest card.Set, suit card.Suit) int {
	n := 0
	harvest.Iterate(func(c card.Card) bool {
		if c.Suit() == suit {
			n++
		}
		return true
	})
	return n
}

func countRank(harvest card.Set, rank card.Rank) int {
	n := 0
	harvest.Iterate(func(c card.Card) bool {
		if c.Rank() == rank {
			n++
		}
		return true
	})
	return n
}
