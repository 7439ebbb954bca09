package engine

import "testing"

func TestFreshOkusAllPooled(t *testing.T) {
	o := FreshOkus()
	if o.CountOnPool() != NumOkus {
		t.Errorf("CountOnPool() = %d, want %d", o.CountOnPool(), NumOkus)
	}
}

func TestAwardPoolToPlayer(t *testing.T) {
	o := FreshOkus()
	o.AwardPoolToPlayer(2)
	if o.CountOnPool() != 0 {
		t.Errorf("expected pool empty after award, got %d on pool", o.CountOnPool())
	}
	if o.CountHeldBy(2) != NumOkus {
		t.Errorf("CountHeldBy(2) = %d, want %d", o.CountHeldBy(2), NumOkus)
	}
}

func TestAwardPoolTwiceAwardsNothingSecondTime(t *testing.T) {
	o := FreshOkus()
	o.AwardPoolToPlayer(0)
	o.AwardPoolToPlayer(1)
	if o.CountHeldBy(1) != 0 {
		t.Errorf("second award on empty pool should award nothing, CountHeldBy(1) = %d", o.CountHeldBy(1))
	}
	if o.CountHeldBy(0) != NumOkus {
		t.Errorf("first award should be untouched, CountHeldBy(0) = %d", o.CountHeldBy(0))
	}
}

func TestAwardPartialPool(t *testing.T) {
	o := FreshOkus()
	o[0] = OkusPosition{Held: true, Player: 3}
	o.AwardPoolToPlayer(1)
	if o.CountHeldBy(1) != NumOkus-1 {
		t.Errorf("CountHeldBy(1) = %d, want %d", o.CountHeldBy(1), NumOkus-1)
	}
	if o.CountHeldBy(3) != 1 {
		t.Errorf("pre-held token for player 3 should be untouched")
	}
}
