package snapshot

// This file is the hand-maintained equivalent of what flatc's Go backend
// emits for the fixed-size `struct` (not `table`) root:
//
//   struct IllimatSnapshot {
//     field_0:uint64; field_1:uint64; field_2:uint64; field_3:uint64;
//     hand_0:uint64;  hand_1:uint64;  hand_2:uint64;  hand_3:uint64;
//     harvest_0:uint64; harvest_1:uint64; harvest_2:uint64; harvest_3:uint64;
//     deck:uint64;
//     meta:uint64;
//   }
//   root_type IllimatSnapshot;
//
// No flatc binary is available in this environment to regenerate this
// from illimat.fbs, so it is maintained by hand to the same field order,
// offsets and access pattern flatc's struct codegen produces. A
// flatbuffers struct has no vtable indirection — every accessor reads a
// fixed byte offset directly off the buffer, which is what gives the
// wire form its O(1), zero-copy clone (spec §4.7).

import (
	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/signalnine/illimat-engine/config"
)

const (
	illimatSnapshotWords = 14 // 4 fields + 4 hands + 4 harvests + deck + meta
	illimatSnapshotSize  = illimatSnapshotWords * 8

	offField0   = 0
	offHand0    = 32
	offHarvest0 = 64
	offDeck     = 96
	offMeta     = 104
)

// IllimatSnapshotT is the generated-style struct accessor over a byte
// buffer holding one encoded Snapshot.
type IllimatSnapshotT struct {
	_tab flatbuffers.Struct
}

// GetRootAsIllimatSnapshot initializes a IllimatSnapshotT from a root
// flatbuffers byte buffer, exactly as flatc's GetRootAsX does: the first
// four bytes hold a uoffset to the actual struct data.
func GetRootAsIllimatSnapshot(buf []byte, offset flatbuffers.UOffsetT) *IllimatSnapshotT {
	n := flatbuffers.GetUOffsetT(buf[offset:])
	x := &IllimatSnapshotT{}
	x._tab.Bytes = buf
	x._tab.Pos = n + offset
	return x
}

// Field returns field bitset i (0..3).
func (s *IllimatSnapshotT) Field(i int) uint64 {
	return s._tab.GetUint64(s._tab.Pos + flatbuffers.UOffsetT(offField0+i*8))
}

// Hand returns player i's hand bitset (0..3).
func (s *IllimatSnapshotT) Hand(i int) uint64 {
	return s._tab.GetUint64(s._tab.Pos + flatbuffers.UOffsetT(offHand0+i*8))
}

// Harvest returns player i's harvest bitset (0..3).
func (s *IllimatSnapshotT) Harvest(i int) uint64 {
	return s._tab.GetUint64(s._tab.Pos + flatbuffers.UOffsetT(offHarvest0+i*8))
}

// Deck returns the remaining-deck bitset.
func (s *IllimatSnapshotT) Deck() uint64 {
	return s._tab.GetUint64(s._tab.Pos + offDeck)
}

// Meta returns the packed metadata word.
func (s *IllimatSnapshotT) Meta() uint64 {
	return s._tab.GetUint64(s._tab.Pos + offMeta)
}

// CreateIllimatSnapshot places one IllimatSnapshot struct into b and
// returns its offset, mirroring flatc's generated `CreateIllimatSnapshot`
// struct-builder helper. Flatbuffers structs are packed by prepending
// fields in reverse declaration order.
func CreateIllimatSnapshot(b *flatbuffers.Builder, snap Snapshot) flatbuffers.UOffsetT {
	b.Prep(8, illimatSnapshotSize)
	b.PrependUint64(snap.Meta)
	b.PrependUint64(snap.Deck)
	for i := config.MaxPlayerCount - 1; i >= 0; i-- {
		b.PrependUint64(snap.Harvests[i])
	}
	for i := config.MaxPlayerCount - 1; i >= 0; i-- {
		b.PrependUint64(snap.Hands[i])
	}
	for i := len(snap.Fields) - 1; i >= 0; i-- {
		b.PrependUint64(snap.Fields[i])
	}
	return b.Offset()
}

// Encode serialises snap to its flatbuffers wire form.
func Encode(snap Snapshot) []byte {
	b := flatbuffers.NewBuilder(illimatSnapshotSize + 8)
	off := CreateIllimatSnapshot(b, snap)
	b.Finish(off)
	return b.FinishedBytes()
}

// Decode reconstructs a Snapshot from bytes produced by Encode.
func Decode(buf []byte) Snapshot {
	fb := GetRootAsIllimatSnapshot(buf, flatbuffers.GetUOffsetT(buf))
	var snap Snapshot
	for i := range snap.Fields {
		snap.Fields[i] = fb.Field(i)
	}
	for i := 0; i < config.MaxPlayerCount; i++ {
		snap.Hands[i] = fb.Hand(i)
		snap.Harvests[i] = fb.Harvest(i)
	}
	snap.Deck = fb.Deck()
	snap.Meta = fb.Meta()
	return snap
}
