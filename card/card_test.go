package card

import "testing"

func TestCard_String(t *testing.T) {
	tests := []struct {
		card Card
		want string
	}{
		{New(Fool, Spring), "[Fool Spring]"},
		{New(King, Winter), "[King Winter]"},
		{New(Two, Stars), "[2 Stars]"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.card.String(); got != tt.want {
				t.Errorf("Card.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCardValues(t *testing.T) {
	if v := New(Fool, Spring).Value(); v != 1 {
		t.Errorf("Fool.Value() = %d, want 1", v)
	}
	if v := New(Five, Summer).Value(); v != 5 {
		t.Errorf("Five.Value() = %d, want 5", v)
	}
	if v := New(King, Autumn).Value(); v != 13 {
		t.Errorf("King.Value() = %d, want 13", v)
	}
}

func TestFoolCanBeValue(t *testing.T) {
	fool := New(Fool, Winter)
	if !fool.CanBeValue(1) || !fool.CanBeValue(14) {
		t.Error("Fool must be playable as 1 or 14")
	}
	if fool.CanBeValue(7) {
		t.Error("Fool must not be playable as 7")
	}

	seven := New(Seven, Spring)
	if !seven.CanBeValue(7) || seven.CanBeValue(1) || seven.CanBeValue(14) {
		t.Error("non-Fool cards must only match their fixed value")
	}
}

func TestIDRoundtrip(t *testing.T) {
	original := New(Queen, Stars)
	if got := FromID(original.ID()); got != original {
		t.Errorf("FromID(ID()) = %v, want %v", got, original)
	}
}

func TestDenseIndexRoundtrip(t *testing.T) {
	for _, useStars := range []bool{true, false} {
		for _, c := range AllCards(useStars) {
			idx := c.DenseIndex()
			if idx >= DenseCardCount {
				t.Fatalf("DenseIndex(%v) = %d out of range [0,%d)", c, idx, DenseCardCount)
			}
			if got := FromDenseIndex(idx); got != c {
				t.Errorf("FromDenseIndex(DenseIndex(%v)) = %v, want %v", c, got, c)
			}
		}
	}
}

func TestStarsKingNeverMaterialized(t *testing.T) {
	hole := New(King, Stars)
	for _, c := range AllCards(true) {
		if c == hole {
			t.Fatal("Stars King must not appear in the deck universe")
		}
	}
}

func TestAllCardsDeckSizes(t *testing.T) {
	if n := len(AllCards(false)); n != 52 {
		t.Errorf("AllCards(false) returned %d cards, want 52", n)
	}
	if n := len(AllCards(true)); n != 64 {
		t.Errorf("AllCards(true) returned %d cards, want 64", n)
	}

	seen := make(map[Card]bool)
	for _, c := range AllCards(true) {
		if seen[c] {
			t.Errorf("duplicate card in universe: %v", c)
		}
		seen[c] = true
	}
}
