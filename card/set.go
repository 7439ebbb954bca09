package card

import "math/bits"

// Set is a fixed-width bitset over the sparse card-code space (IDs 0-76,
// since suit occupies the high nibble and only 5 of 16 high-nibble values
// are used). Two uint64 words give 128 bits of headroom, comfortably
// covering every card code with room to spare; equality is set equality
// and membership/union/intersection/difference are all O(1) word ops.
type Set struct {
	lo, hi uint64
}

// wordFor returns which word (0=lo, 1=hi) and the in-word bit for an ID.
func wordFor(id uint8) (hi bool, bit uint64) {
	if id >= 64 {
		return true, 1 << (id - 64)
	}
	return false, 1 << id
}

// Empty returns the empty set (the zero value already is one; this is a
// readability alias for construction sites).
func Empty() Set {
	return Set{}
}

// FromCards builds a set containing exactly the given cards.
func FromCards(cards ...Card) Set {
	var s Set
	for _, c := range cards {
		s.Add(c)
	}
	return s
}

// Add inserts a card into the set. Idempotent.
func (s *Set) Add(c Card) {
	hi, bit := wordFor(c.ID())
	if hi {
		s.hi |= bit
	} else {
		s.lo |= bit
	}
}

// Remove deletes a card from the set. No-op if absent.
func (s *Set) Remove(c Card) {
	hi, bit := wordFor(c.ID())
	if hi {
		s.hi &^= bit
	} else {
		s.lo &^= bit
	}
}

// Has reports whether c is a member.
func (s Set) Has(c Card) bool {
	hi, bit := wordFor(c.ID())
	if hi {
		return s.hi&bit != 0
	}
	return s.lo&bit != 0
}

// Count returns the number of member cards.
func (s Set) Count() int {
	return bits.OnesCount64(s.lo) + bits.OnesCount64(s.hi)
}

// IsEmpty reports whether the set has no members.
func (s Set) IsEmpty() bool {
	return s.lo == 0 && s.hi == 0
}

// Union returns the set union of s and other.
func (s Set) Union(other Set) Set {
	return Set{lo: s.lo | other.lo, hi: s.hi | other.hi}
}

// Intersect returns the set intersection of s and other.
func (s Set) Intersect(other Set) Set {
	return Set{lo: s.lo & other.lo, hi: s.hi & other.hi}
}

// Difference returns the members of s that are not in other.
func (s Set) Difference(other Set) Set {
	return Set{lo: s.lo &^ other.lo, hi: s.hi &^ other.hi}
}

// Equals reports whether s and other have identical membership.
func (s Set) Equals(other Set) bool {
	return s.lo == other.lo && s.hi == other.hi
}

// Cards returns the members in ascending ID order. The slice is freshly
// allocated; callers in hot paths (MCTS rollouts) should prefer Iterate.
func (s Set) Cards() []Card {
	out := make([]Card, 0, s.Count())
	s.Iterate(func(c Card) bool {
		out = append(out, c)
		return true
	})
	return out
}

// Iterate calls fn for each member card in ascending ID order, stopping
// early if fn returns false.
func (s Set) Iterate(fn func(Card) bool) {
	lo := s.lo
	for lo != 0 {
		i := bits.TrailingZeros64(lo)
		if !fn(FromID(uint8(i))) {
			return
		}
		lo &= lo - 1
	}
	hi := s.hi
	for hi != 0 {
		i := bits.TrailingZeros64(hi)
		if !fn(FromID(uint8(i + 64))) {
			return
		}
		hi &= hi - 1
	}
}
