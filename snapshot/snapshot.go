// Package snapshot implements the compact, fixed-size projection of
// authoritative game state used by MCTS rollout evaluation and the
// worker's wire protocol (spec §4.7, §6.1 to_snapshot). Every card
// set it carries is a single uint64 keyed by card.DenseIndex (0-63), not
// the wider sparse card.Set the state package uses — see DESIGN.md's
// CardSet-width-vs-snapshot-width resolution.
//
// Per spec §4.7 the snapshot deliberately omits stockpile detail (cards,
// value, created_turn): MCTS here clones the authoritative state.State
// for legality-correct simulation (a Stockpile/Harvest-of-stockpile move
// cannot be replayed without that detail) and uses Snapshot only for
// heuristic evaluation, statistics, and the flatbuffers wire form — see
// DESIGN.md's snapshot/MCTS cloning resolution for the full rationale.
package snapshot

import (
	"math/bits"

	"github.com/signalnine/illimat-engine/card"
	"github.com/signalnine/illimat-engine/config"
	"github.com/signalnine/illimat-engine/engine"
	"github.com/signalnine/illimat-engine/state"
)

// Snapshot is the fixed-size, trivially-copyable state projection spec
// §4.7 describes: four field bitsets, per-player hand and harvest
// bitsets, one deck bitset, and a packed metadata word. It has no
// pointers or slices, so an ordinary Go assignment already gives an
// O(state size), heap-allocation-free copy.
type Snapshot struct {
	Fields   [engine.NumFields]uint64
	Hands    [config.MaxPlayerCount]uint64
	Harvests [config.MaxPlayerCount]uint64
	Deck     uint64
	Meta     uint64
}

// Clone returns an independent copy of snap. Named explicitly (rather
// than relying on callers to assign) because it is the operation spec
// §4.7 calls out as the thing a Snapshot exists to make cheap.
func (snap Snapshot) Clone() Snapshot {
	return snap
}

// Metadata word layout. 59 of 64 bits are used; the remainder is
// reserved.
const (
	metaShiftCurrentPlayer = 0
	metaShiftOrientation   = 2
	metaShiftPlayerCount   = 4
	metaShiftTurn          = 7
	metaShiftLuminaryBase  = 23 // 4 fields * 6 bits
	metaShiftOkusBase      = 47 // 4 tokens * 3 bits

	metaMaskCurrentPlayer = 0x3
	metaMaskOrientation   = 0x3
	metaMaskPlayerCount   = 0x7
	metaMaskTurn          = 0xFFFF
	metaMaskLuminaryField = 0x3F
	metaMaskOkusToken     = 0x7

	luminaryBitsPerField = 6
	okusBitsPerToken     = 3
)

// ToSnapshot projects s into its compact form. The conversion is a pure
// function and is lossless for every field it carries (spec §4.7);
// stockpiles are the one documented exception.
func ToSnapshot(s *state.State) Snapshot {
	var snap Snapshot
	for i := range s.Fields {
		snap.Fields[i] = denseBitsFromSet(s.Fields[i].Loose)
	}
	for p := 0; p < config.MaxPlayerCount; p++ {
		snap.Hands[p] = denseBitsFromSlice(s.Hands[p])
		snap.Harvests[p] = denseBitsFromSet(s.Harvests[p])
	}
	snap.Deck = denseBitsFromSlice(s.Deck)
	snap.Meta = packMeta(s)
	return snap
}

func packMeta(s *state.State) uint64 {
	var m uint64
	m |= (uint64(s.CurrentPlayer) & metaMaskCurrentPlayer) << metaShiftCurrentPlayer
	m |= (uint64(s.Orientation) & metaMaskOrientation) << metaShiftOrientation
	m |= (uint64(s.Config.PlayerCount) & metaMaskPlayerCount) << metaShiftPlayerCount

	turn := uint64(s.Turn)
	if turn > metaMaskTurn {
		turn = metaMaskTurn // clipped per spec §4.7
	}
	m |= turn << metaShiftTurn

	for i, f := range s.Fields {
		lum := f.Luminary
		packed := uint64(lum.Status)&0x3 | (uint64(lum.Card)&0x3)<<2 | (uint64(lum.Owner)&0x3)<<4
		m |= packed << (metaShiftLuminaryBase + i*luminaryBitsPerField)
	}

	for i, pos := range s.Okus {
		var packed uint64
		if pos.Held {
			packed = 1 | (uint64(pos.Player)&0x3)<<1
		}
		m |= packed << (metaShiftOkusBase + i*okusBitsPerToken)
	}
	return m
}

// CurrentPlayer returns the packed current-player seat.
func (snap Snapshot) CurrentPlayer() uint8 {
	return uint8((snap.Meta >> metaShiftCurrentPlayer) & metaMaskCurrentPlayer)
}

// Orientation returns the packed board orientation.
func (snap Snapshot) Orientation() uint8 {
	return uint8((snap.Meta >> metaShiftOrientation) & metaMaskOrientation)
}

// PlayerCount returns the packed seat count.
func (snap Snapshot) PlayerCount() uint8 {
	return uint8((snap.Meta >> metaShiftPlayerCount) & metaMaskPlayerCount)
}

// TurnCounter returns the packed (clipped) turn counter.
func (snap Snapshot) TurnCounter() uint16 {
	return uint16((snap.Meta >> metaShiftTurn) & metaMaskTurn)
}

func (snap Snapshot) luminaryBits(field uint8) uint64 {
	return (snap.Meta >> (metaShiftLuminaryBase + int(field)*luminaryBitsPerField)) & metaMaskLuminaryField
}

// LuminaryStatus returns field's packed Luminary lifecycle stage.
func (snap Snapshot) LuminaryStatus(field uint8) engine.LuminaryStatus {
	return engine.LuminaryStatus(snap.luminaryBits(field) & 0x3)
}

// LuminaryCard returns field's packed Luminary card identity.
func (snap Snapshot) LuminaryCard(field uint8) engine.LuminaryCard {
	return engine.LuminaryCard((snap.luminaryBits(field) >> 2) & 0x3)
}

// LuminaryOwner returns field's packed Luminary owner (valid only when
// LuminaryStatus is Claimed).
func (snap Snapshot) LuminaryOwner(field uint8) uint8 {
	return uint8((snap.luminaryBits(field) >> 4) & 0x3)
}

func (snap Snapshot) okusBits(i int) uint64 {
	return (snap.Meta >> (metaShiftOkusBase + i*okusBitsPerToken)) & metaMaskOkusToken
}

// OkusHeld reports whether okus token i is currently held by a player.
func (snap Snapshot) OkusHeld(i int) bool {
	return snap.okusBits(i)&0x1 != 0
}

// OkusOwner returns the holder of okus token i (valid only when
// OkusHeld(i) is true).
func (snap Snapshot) OkusOwner(i int) uint8 {
	return uint8((snap.okusBits(i) >> 1) & 0x3)
}

// OkusHeldBy counts how many okus tokens player currently holds.
func (snap Snapshot) OkusHeldBy(player uint8) int {
	n := 0
	for i := 0; i < engine.NumOkus; i++ {
		if snap.OkusHeld(i) && snap.OkusOwner(i) == player {
			n++
		}
	}
	return n
}

// Cards decodes a dense bitset (a Snapshot.Fields/Hands/Harvests/Deck
// word) back into the cards it contains, in ascending dense-index order.
func Cards(denseBits uint64) []card.Card {
	var out []card.Card
	for denseBits != 0 {
		i := bits.TrailingZeros64(denseBits)
		out = append(out, card.FromDenseIndex(uint8(i)))
		denseBits &= denseBits - 1
	}
	return out
}

func denseBitsFromSet(s card.Set) uint64 {
	var out uint64
	s.Iterate(func(c card.Card) bool {
		out |= 1 << c.DenseIndex()
		return true
	})
	return out
}

func denseBitsFromSlice(cards []card.Card) uint64 {
	var out uint64
	for _, c := range cards {
		out |= 1 << c.DenseIndex()
	}
	return out
}

// suitWeight mirrors the round-scoring bonuses in engine/scoring.go:
// Spring (Bumper Crop) and Summer (Sunkissed) outweigh a generic card,
// Winter (Frostbit) is a net negative.
var suitWeight = [card.NumSuits]float64{
	card.Spring: 1.5,
	card.Summer: 1.5,
	card.Autumn: 1.0,
	card.Winter: -1.0,
	card.Stars:  1.0,
}

// Evaluate scores snap from player's perspective for MCTS rollout
// backpropagation (spec §4.8 step 3): harvested-pile counts weighted
// toward Spring/Summer, a penalty for Winter, plus held okus count. The
// exact weights are not load-bearing for correctness, per spec — they
// only need to produce a consistent partial order between candidates.
func Evaluate(snap Snapshot, player uint8) float64 {
	score := 0.0
	for _, c := range Cards(snap.Harvests[player]) {
		score += suitWeight[c.Suit()]
	}
	score += float64(snap.OkusHeldBy(player))
	return score
}
