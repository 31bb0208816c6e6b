package splendor

// Card tiers. Tier 1 cards are cheap and low-scoring, tier 3 cards are
// expensive and worth the most points.
const (
	MinTier = 1
	MaxTier = 3

	NumTiers = MaxTier - MinTier + 1
)

// Card is a development card. Cards are immutable after catalogue load and
// move between containers (deck, visible row, reserved, owned) by value.
// Identity is the ID field alone; two cards with the same ID are the same
// card regardless of any other field.
type Card struct {
	ID     string // unique within the catalogue
	Tier   int    // 1..3
	Bonus  Gem    // permanent bonus color, never Gold
	Points int    // 0..5
	Cost   Gems   // purchase cost, gold count always 0
}

// Noble is a noble tile. Nobles are worth a fixed 3 points and visit the
// first player whose card bonuses meet their requirement, after which they
// leave the shared pool. Identity is by ID.
type Noble struct {
	ID          string
	Points      int  // always 3 in the standard set
	Requirement Gems // bonus thresholds over base colors, gold always 0
}

// Qualifies reports whether the given card bonuses satisfy the noble's
// requirement. Only base colors are considered; nobles never require gold.
func (n Noble) Qualifies(bonuses Gems) bool {
	for _, g := range BaseGems() {
		if bonuses.Get(g) < n.Requirement.Get(g) {
			return false
		}
	}
	return true
}

// Catalog supplies the fixed card and noble sets the engine deals from.
// Implementations must be deterministic: the same cards in the same order on
// every call, with stable unique IDs. The engine never assumes quantities
// beyond "at least four visible cards' worth per tier".
type Catalog interface {
	// CardsForTier returns every card of one tier, in catalogue order.
	CardsForTier(tier int) []Card

	// Nobles returns every noble tile, in catalogue order.
	Nobles() []Noble
}
