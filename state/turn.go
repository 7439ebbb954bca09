package state

import (
	"github.com/signalnine/illimat-engine/card"
	"github.com/signalnine/illimat-engine/engine"
)

// turnTail runs the post-action routine shared by every action kind (spec
// §4.1 "turn tail"): award okus on a field clear, refill the acting hand,
// advance current_player, bump the turn counter, and detect round end.
// The draw happens before the player pointer advances, refilling the
// player who just acted (spec §9 open question 2).
func turnTail(s *State, field uint8, cleared bool) {
	if cleared {
		s.Okus.AwardPoolToPlayer(s.CurrentPlayer)
		lum := &s.Fields[field].Luminary
		if lum.Status == engine.FaceDown {
			lum.Status = engine.Claimed
			lum.Owner = s.CurrentPlayer
		}
	}

	refill(s, s.CurrentPlayer)

	s.CurrentPlayer = (s.CurrentPlayer + 1) % s.Config.PlayerCount
	s.Turn++

	if allHandsEmpty(s) {
		s.Phase = RoundEnd
	}
}

func refill(s *State, player uint8) {
	for len(s.Hands[player]) < 4 && len(s.Deck) > 0 {
		s.Hands[player] = append(s.Hands[player], s.draw())
	}
}

func allHandsEmpty(s *State) bool {
	for p := uint8(0); p < s.Config.PlayerCount; p++ {
		if len(s.Hands[p]) > 0 {
			return false
		}
	}
	return true
}

// EndRound applies round scoring, checks for victory, and either starts
// the next round or transitions to GameEnd (spec §4.5/§4.6). Callers
// should only invoke this when s.Phase == RoundEnd.
func EndRound(s *State, seed int64) engine.RoundScoring {
	scoring := engine.CalculateRoundScoring(s.Harvests, s.Okus, int(s.Config.PlayerCount))

	var totals [engine.MaxPlayers]int
	for p := range s.Scores {
		totals[p] = s.Scores[p]
	}
	engine.ApplyRoundScoring(&totals, scoring)
	for p := range s.Scores {
		s.Scores[p] = totals[p]
	}

	if winner := engine.CheckVictory(totals, int(s.Config.PlayerCount)); winner >= 0 {
		s.Phase = GameEnd
		return scoring
	}

	startNextRound(s, seed)
	return scoring
}

// startNextRound rotates the dealer, resets okus/fields/harvests/deck, and
// increments the round counter, preserving scores (spec §4.5 RoundEnd →
// Playing transition).
func startNextRound(s *State, seed int64) {
	s.Dealer = (s.Dealer + 1) % s.Config.PlayerCount
	s.Round++
	s.Turn = 0
	s.Okus = engine.FreshOkus()
	for i := range s.Fields {
		s.Fields[i] = Field{}
	}
	for p := range s.Harvests {
		s.Harvests[p] = card.Empty()
	}

	// Caller should vary seed per round (e.g. derive from the game seed and
	// s.Round) so successive rounds don't reshuffle identically.
	fresh := BuildState(s.Config, seed)
	s.Deck = append(s.Deck[:0], fresh.Deck...)
	for p := range s.Hands {
		s.Hands[p] = append(s.Hands[p][:0], fresh.Hands[p]...)
	}
	s.Fields = fresh.Fields
	PutState(fresh)

	s.CurrentPlayer = (s.Dealer + 1) % s.Config.PlayerCount
	s.Phase = Playing
}
