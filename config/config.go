// Package config holds the construction-time configuration for a game and
// for an MCTS search: player count/types, deck size, the Luminary
// expansion level, and search budget/exploration parameters (spec §6.2).
package config

import (
	"fmt"
	"time"

	"github.com/signalnine/illimat-engine/engine"
)

// PlayerType distinguishes a human-driven seat from an engine-driven one.
type PlayerType uint8

const (
	Human PlayerType = iota
	Cpu
)

// MaxPlayerCount is the largest supported player count.
const MaxPlayerCount = 4

// MinPlayerCount is the smallest supported player count.
const MinPlayerCount = 2

// GameConfig is the construction-time shape of one game (spec §6.2).
type GameConfig struct {
	PlayerCount    uint8
	PlayerTypes    [MaxPlayerCount]PlayerType
	UseStarsSuit   bool
	LuminaryConfig engine.LuminaryConfig
}

// NewGameConfig builds a default all-CPU configuration with the full
// (Stars-included) deck and no Luminaries. Panics on an out-of-range
// player count, mirroring the construction-time validation the rest of
// the pack performs with constructors rather than deferred errors.
func NewGameConfig(playerCount uint8) GameConfig {
	if playerCount < MinPlayerCount || playerCount > MaxPlayerCount {
		panic(fmt.Sprintf("illimat: player count must be between %d and %d, got %d", MinPlayerCount, MaxPlayerCount, playerCount))
	}
	cfg := GameConfig{
		PlayerCount:  playerCount,
		UseStarsSuit: true,
	}
	for i := uint8(0); i < playerCount; i++ {
		cfg.PlayerTypes[i] = Cpu
	}
	return cfg
}

// WithDeckSize sets whether the Stars suit is in play.
func (c GameConfig) WithDeckSize(useStarsSuit bool) GameConfig {
	c.UseStarsSuit = useStarsSuit
	return c
}

// WithPlayerType overrides a single seat's player type.
func (c GameConfig) WithPlayerType(playerID uint8, t PlayerType) GameConfig {
	if playerID < c.PlayerCount {
		c.PlayerTypes[playerID] = t
	}
	return c
}

// WithLuminaryConfig sets the Luminary expansion level.
func (c GameConfig) WithLuminaryConfig(lc engine.LuminaryConfig) GameConfig {
	c.LuminaryConfig = lc
	return c
}

// HumanPlayerCount returns how many configured seats are human-controlled.
func (c GameConfig) HumanPlayerCount() uint8 {
	var n uint8
	for i := uint8(0); i < c.PlayerCount; i++ {
		if c.PlayerTypes[i] == Human {
			n++
		}
	}
	return n
}

// ExpectedDeckSize returns the configured universe size (64 or 52).
func (c GameConfig) ExpectedDeckSize() int {
	if c.UseStarsSuit {
		return 64
	}
	return 52
}

// DefaultExplorationConstant is UCB1's c, √2, the textbook default (spec §4.8).
const DefaultExplorationConstant = 1.4142135623730951

// MctsConfig configures one search invocation (spec §6.2/§4.8).
type MctsConfig struct {
	MaxSimulations        uint32
	TimeLimit             time.Duration // zero means "no time limit"
	ExplorationConstant   float32
	EnableVectorisedEval  bool
}

// NewMctsConfig returns the documented defaults: c=√2, vectorised eval on,
// no time limit, and the given simulation budget.
func NewMctsConfig(maxSimulations uint32) MctsConfig {
	return MctsConfig{
		MaxSimulations:       maxSimulations,
		ExplorationConstant:  DefaultExplorationConstant,
		EnableVectorisedEval: true,
	}
}

// WithTimeLimit sets a wall-clock budget in addition to MaxSimulations;
// whichever fires first halts the search.
func (c MctsConfig) WithTimeLimit(d time.Duration) MctsConfig {
	c.TimeLimit = d
	return c
}
