package engine

// NumOkus is the fixed token count (spec §3, invariant I4).
const NumOkus = 4

// OkusPosition is an okus token's location: pooled on the centre piece,
// or held by a player.
type OkusPosition struct {
	// Held reports whether a player currently holds this token. When
	// false the token is OnPool.
	Held   bool
	Player uint8 // valid only when Held
}

// OkusTokens tracks the four named tokens A-D.
type OkusTokens [NumOkus]OkusPosition

// FreshOkus returns all four tokens OnPool, as at round start.
func FreshOkus() OkusTokens {
	return OkusTokens{}
}

// CountOnPool returns how many tokens are currently unheld.
func (o OkusTokens) CountOnPool() int {
	n := 0
	for _, pos := range o {
		if !pos.Held {
			n++
		}
	}
	return n
}

// CountHeldBy returns how many tokens a given player holds.
func (o OkusTokens) CountHeldBy(player uint8) int {
	n := 0
	for _, pos := range o {
		if pos.Held && pos.Player == player {
			n++
		}
	}
	return n
}

// AwardPoolToPlayer transfers every pooled token to player at once, the
// field-clearing award rule (spec §4.2). A second clear before the pool
// is refilled awards nothing, since it is already empty.
func (o *OkusTokens) AwardPoolToPlayer(player uint8) {
	for i, pos := range o {
		if !pos.Held {
			o[i] = OkusPosition{Held: true, Player: player}
		}
	}
}
