package engine

// LuminaryStatus is a Luminary card's lifecycle stage (spec §4.3).
type LuminaryStatus uint8

const (
	// Absent means no Luminary occupies the field's slot.
	Absent LuminaryStatus = iota
	// FaceDown means a Luminary is seated but hidden; it has no rule
	// effect until revealed.
	FaceDown
	// FaceUp means a Luminary is active and may modify field rules.
	FaceUp
	// Claimed means a Luminary has been scored to a player; some cards
	// keep acting after being claimed (tracked per-card in Modifier).
	Claimed
)

// LuminaryCard names one of the expansion's modifier cards. The set here
// is intentionally small: per spec §9 Open Question 3, most Luminaries
// are declared capabilities with no-op bodies unless the full expansion
// is in scope. Forest Queen, Drought and Island are the three the source
// tests name explicitly.
type LuminaryCard uint8

const (
	// NoLuminary is the zero value, paired with Absent/FaceDown slots.
	NoLuminary LuminaryCard = iota
	ForestQueen
	Drought
	Island
)

// LuminaryState is the per-field Luminary slot: which card (if any)
// occupies it, its lifecycle status, and its owner once Claimed.
type LuminaryState struct {
	Status LuminaryStatus
	Card   LuminaryCard
	Owner  uint8 // valid only when Status == Claimed
}

// LuminaryConfig selects which Luminaries, if any, are placed at setup.
type LuminaryConfig uint8

const (
	// NoExpansion disables Luminaries entirely; base season rules are
	// exact and applyModifier is a pure pass-through.
	NoExpansion LuminaryConfig = iota
	CoreOnly
	AllExpansions
)

// Modifier is the capability-modifying hook a Luminary card implements.
// Implementations must never broaden legality beyond the base table
// except where a Luminary explicitly overrides the season for its own
// field (spec §4.3) — that exception is the card's responsibility to
// honor, not the dispatcher's.
type Modifier interface {
	// Apply adjusts caps (the capabilities already computed for field
	// under base/orientation) in light of this card's effect, given the
	// full per-field Luminary layout so cross-field effects (Island) can
	// see their neighbors.
	Apply(field uint8, base Season, states [NumFields]LuminaryState, orientation uint8, caps Capabilities) Capabilities
}

// defaultModifier is the no-op implementation: it returns caps unchanged.
// Every named Luminary below embeds it so an unimplemented effect degrades
// safely to "no rule change" rather than a panic.
type defaultModifier struct{}

func (defaultModifier) Apply(_ uint8, _ Season, _ [NumFields]LuminaryState, _ uint8, caps Capabilities) Capabilities {
	return caps
}

// forestQueenModifier is declared per spec §9 Open Question 3 ("always
// Summer") but left as a no-op stub: the full expansion's exact
// interaction with the other three Luminaries is out of scope here.
type forestQueenModifier struct{ defaultModifier }

// droughtModifier is declared ("blocks Summer harvest") but left as a
// no-op stub for the same reason.
type droughtModifier struct{ defaultModifier }

// islandModifier is declared ("isolates field") but left as a no-op
// stub for the same reason.
type islandModifier struct{ defaultModifier }

// modifierFor resolves the Modifier implementation for a named card. Any
// unrecognised or NoLuminary card resolves to defaultModifier.
func modifierFor(c LuminaryCard) Modifier {
	switch c {
	case ForestQueen:
		return forestQueenModifier{}
	case Drought:
		return droughtModifier{}
	case Island:
		return islandModifier{}
	default:
		return defaultModifier{}
	}
}

// applyModifier is the single dispatch point the engine calls through
// (spec §9: "the engine dispatches through a single capability function").
// It folds every FaceUp (and still-active Claimed) Luminary's effect into
// caps. With no Luminaries placed (config NoExpansion), every state is
// Absent and this is an identity transform.
func applyModifier(field uint8, base Season, states [NumFields]LuminaryState, orientation uint8, caps Capabilities) Capabilities {
	for _, st := range states {
		if st.Status != FaceUp && st.Status != Claimed {
			continue
		}
		caps = modifierFor(st.Card).Apply(field, base, states, orientation, caps)
	}
	return caps
}
