package state

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/signalnine/illimat-engine/card"
	"github.com/signalnine/illimat-engine/config"
	"github.com/signalnine/illimat-engine/engine"
)

// wireStockpile is a stockpile's self-describing JSON record (spec §6.3).
type wireStockpile struct {
	Value       uint8   `json:"value"`
	Cards       []uint8 `json:"cards"`
	CreatedTurn uint16  `json:"created_turn"`
}

// wireField is one field's JSON record.
type wireField struct {
	Loose          []uint8         `json:"loose"`
	Stockpiles     []wireStockpile `json:"stockpiles"`
	LuminaryStatus uint8           `json:"luminary_status"`
	LuminaryCard   uint8           `json:"luminary_card"`
	LuminaryOwner  uint8           `json:"luminary_owner"`
}

// wireOkus is one okus token's JSON record.
type wireOkus struct {
	Held   bool  `json:"held"`
	Player uint8 `json:"player"`
}

// wireState is the tagged-record JSON schema named in spec §6.3.
type wireState struct {
	GameID         string      `json:"game_id"`
	PlayerCount    uint8       `json:"player_count"`
	PlayerTypes    []uint8     `json:"player_types"`
	UseStarsSuit   bool        `json:"use_stars_suit"`
	LuminaryConfig uint8       `json:"luminary_config"`
	Dealer         uint8       `json:"dealer"`
	CurrentPlayer  uint8       `json:"current_player"`
	Round          uint16      `json:"round"`
	Turn           uint16      `json:"turn"`
	Orientation    uint8       `json:"orientation"`
	Phase          uint8       `json:"phase"`
	Scores         []int       `json:"scores"`
	Hands          [][]uint8   `json:"hands"`
	Harvests       [][]uint8   `json:"harvests"`
	Deck           []uint8     `json:"deck"`
	Fields         []wireField `json:"fields"`
	OkusPositions  []wireOkus  `json:"okus_positions"`
}

// MarshalJSON serialises s to the tagged-record schema in spec §6.3.
func (s *State) MarshalJSON() ([]byte, error) {
	w := wireState{
		GameID:         s.GameID.String(),
		PlayerCount:    s.Config.PlayerCount,
		UseStarsSuit:   s.Config.UseStarsSuit,
		LuminaryConfig: uint8(s.Config.LuminaryConfig),
		Dealer:         s.Dealer,
		CurrentPlayer:  s.CurrentPlayer,
		Round:          s.Round,
		Turn:           s.Turn,
		Orientation:    s.Orientation,
		Phase:          uint8(s.Phase),
	}
	for i := 0; i < config.MaxPlayerCount; i++ {
		w.PlayerTypes = append(w.PlayerTypes, uint8(s.Config.PlayerTypes[i]))
	}
	for p := uint8(0); p < s.Config.PlayerCount; p++ {
		w.Scores = append(w.Scores, s.Scores[p])
		w.Hands = append(w.Hands, cardIDs(s.Hands[p]))
		w.Harvests = append(w.Harvests, setIDs(s.Harvests[p]))
	}
	w.Deck = cardIDs(s.Deck)
	for _, f := range s.Fields {
		wf := wireField{
			Loose:          setIDs(f.Loose),
			LuminaryStatus: uint8(f.Luminary.Status),
			LuminaryCard:   uint8(f.Luminary.Card),
			LuminaryOwner:  f.Luminary.Owner,
		}
		for _, sp := range f.Stockpiles {
			wf.Stockpiles = append(wf.Stockpiles, wireStockpile{
				Value:       sp.Value,
				Cards:       setIDs(sp.Cards),
				CreatedTurn: sp.CreatedTurn,
			})
		}
		w.Fields = append(w.Fields, wf)
	}
	for _, pos := range s.Okus {
		w.OkusPositions = append(w.OkusPositions, wireOkus{Held: pos.Held, Player: pos.Player})
	}

	return json.Marshal(w)
}

// UnmarshalJSON deserialises s from the tagged-record schema, overwriting
// every field of s (the receiver should come from GetState/BuildState).
func (s *State) UnmarshalJSON(data []byte) error {
	var w wireState
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	id, err := uuid.Parse(w.GameID)
	if err != nil {
		return err
	}
	s.GameID = id
	s.Config.PlayerCount = w.PlayerCount
	s.Config.UseStarsSuit = w.UseStarsSuit
	s.Config.LuminaryConfig = engine.LuminaryConfig(w.LuminaryConfig)
	for i, t := range w.PlayerTypes {
		if i < config.MaxPlayerCount {
			s.Config.PlayerTypes[i] = config.PlayerType(t)
		}
	}
	s.Dealer = w.Dealer
	s.CurrentPlayer = w.CurrentPlayer
	s.Round = w.Round
	s.Turn = w.Turn
	s.Orientation = w.Orientation
	s.Phase = Phase(w.Phase)

	for p := range w.Scores {
		s.Scores[p] = w.Scores[p]
	}
	for p, ids := range w.Hands {
		s.Hands[p] = cardsFromIDs(ids)
	}
	for p, ids := range w.Harvests {
		s.Harvests[p] = setFromIDs(ids)
	}
	s.Deck = cardsFromIDs(w.Deck)

	for i, wf := range w.Fields {
		f := Field{
			Loose: setFromIDs(wf.Loose),
			Luminary: engine.LuminaryState{
				Status: engine.LuminaryStatus(wf.LuminaryStatus),
				Card:   engine.LuminaryCard(wf.LuminaryCard),
				Owner:  wf.LuminaryOwner,
			},
		}
		for _, wsp := range wf.Stockpiles {
			f.Stockpiles = append(f.Stockpiles, engine.Stockpile{
				Cards:       setFromIDs(wsp.Cards),
				Value:       wsp.Value,
				CreatedTurn: wsp.CreatedTurn,
			})
		}
		s.Fields[i] = f
	}

	for i, wo := range w.OkusPositions {
		if i < engine.NumOkus {
			s.Okus[i] = engine.OkusPosition{Held: wo.Held, Player: wo.Player}
		}
	}

	return nil
}

func cardIDs(cards []card.Card) []uint8 {
	out := make([]uint8, len(cards))
	for i, c := range cards {
		out[i] = c.ID()
	}
	return out
}

func cardsFromIDs(ids []uint8) []card.Card {
	out := make([]card.Card, len(ids))
	for i, id := range ids {
		out[i] = card.FromID(id)
	}
	return out
}

func setIDs(s card.Set) []uint8 {
	var out []uint8
	s.Iterate(func(c card.Card) bool {
		out = append(out, c.ID())
		return true
	})
	return out
}

func setFromIDs(ids []uint8) card.Set {
	var s card.Set
	for _, id := range ids {
		s.Add(card.FromID(id))
	}
	return s
}
