package engine

import (
	"testing"

	"github.com/signalnine/illimat-engine/card"
)

func TestCalculateRoundScoringBumperCropSoleLeader(t *testing.T) {
	var harvests [MaxPlayers]card.Set
	harvests[0] = card.FromCards(card.New(card.Two, card.Spring), card.New(card.Three, card.Spring))
	harvests[1] = card.FromCards(card.New(card.Four, card.Spring))

	scoring := CalculateRoundScoring(harvests, FreshOkus(), 2)
	if scoring.BumperCropWinner != 0 {
		t.Errorf("BumperCropWinner = %d, want 0", scoring.BumperCropWinner)
	}
}

func TestCalculateRoundScoringBumperCropTieIsUnclaimed(t *testing.T) {
	var harvests [MaxPlayers]card.Set
	harvests[0] = card.FromCards(card.New(card.Two, card.Spring))
	harvests[1] = card.FromCards(card.New(card.Four, card.Spring))

	scoring := CalculateRoundScoring(harvests, FreshOkus(), 2)
	if scoring.BumperCropWinner != noWinner {
		t.Errorf("tied Bumper Crop should be unclaimed, got %d", scoring.BumperCropWinner)
	}
}

func TestCalculateRoundScoringFrostbitSharedTie(t *testing.T) {
	var harvests [MaxPlayers]card.Set
	harvests[0] = card.FromCards(card.New(card.Two, card.Winter))
	harvests[1] = card.FromCards(card.New(card.Four, card.Winter))
	harvests[2] = card.Empty()

	scoring := CalculateRoundScoring(harvests, FreshOkus(), 3)
	if len(scoring.FrostbitPlayers) != 2 {
		t.Fatalf("expected both tied players Frostbit, got %+v", scoring.FrostbitPlayers)
	}
}

func TestCalculateRoundScoringIndividualFoolsAndOkus(t *testing.T) {
	var harvests [MaxPlayers]card.Set
	harvests[0] = card.FromCards(card.New(card.Fool, card.Spring), card.New(card.Fool, card.Autumn))

	okus := FreshOkus()
	okus.AwardPoolToPlayer(0)

	scoring := CalculateRoundScoring(harvests, okus, 2)
	if scoring.IndividualScores[0] != 2+NumOkus {
		t.Errorf("player 0 individual score = %d, want %d", scoring.IndividualScores[0], 2+NumOkus)
	}
}

func TestApplyRoundScoringFrostbitNeverUnderflows(t *testing.T) {
	totals := [MaxPlayers]int{1, 0, 0, 0}
	scoring := RoundScoring{BumperCropWinner: noWinner, SunkissedWinner: noWinner, FrostbitPlayers: []int{0}}

	ApplyRoundScoring(&totals, scoring)
	if totals[0] != 0 {
		t.Errorf("Frostbit should clamp at 0, got %d", totals[0])
	}
}

func TestApplyRoundScoringAllBonuses(t *testing.T) {
	totals := [MaxPlayers]int{10, 5, 5, 5}
	scoring := RoundScoring{
		BumperCropWinner: 0,
		SunkissedWinner:  1,
		FrostbitPlayers:  []int{2},
		IndividualScores: [MaxPlayers]uint8{1, 0, 0, 0},
	}

	ApplyRoundScoring(&totals, scoring)
	if totals[0] != 15 { // +4 bumper crop, +1 individual
		t.Errorf("totals[0] = %d, want 15", totals[0])
	}
	if totals[1] != 7 { // +2 sunkissed
		t.Errorf("totals[1] = %d, want 7", totals[1])
	}
	if totals[2] != 3 { // -2 frostbit
		t.Errorf("totals[2] = %d, want 3", totals[2])
	}
}

func TestCheckVictory(t *testing.T) {
	totals := [MaxPlayers]int{16, 17, 0, 0}
	if got := CheckVictory(totals, 4); got != 1 {
		t.Errorf("CheckVictory = %d, want 1", got)
	}

	totals = [MaxPlayers]int{16, 16, 0, 0}
	if got := CheckVictory(totals, 4); got != noWinner {
		t.Errorf("CheckVictory with nobody at threshold = %d, want noWinner", got)
	}
}
