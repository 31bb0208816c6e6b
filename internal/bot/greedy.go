package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/gembots/splendor/splendor"
)

// Greedy chases points: it buys the highest-scoring affordable card, and
// otherwise takes the biggest token haul it can. Ties are broken randomly
// so two greedy bots don't mirror each other move for move.
type Greedy struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewGreedy creates a Greedy bot using the given RNG for tie-breaks.
func NewGreedy(rng *rand.Rand, logger *log.Logger) *Greedy {
	return &Greedy{rng: rng, logger: logger}
}

func (g *Greedy) ChooseAction(state splendor.GameState, legal []splendor.Action) splendor.Action {
	if buy, ok := g.bestPurchase(state, legal); ok {
		g.logger.Debug("greedy bot buys", "seat", state.CurrentIdx, "action", buy.String())
		return buy
	}
	if take, ok := g.bestTake(legal); ok {
		return take
	}
	return legal[g.rng.IntN(len(legal))]
}

// bestPurchase picks the purchase granting the most points, preferring
// cheaper cards at equal points so tokens stay available.
func (g *Greedy) bestPurchase(state splendor.GameState, legal []splendor.Action) (splendor.Action, bool) {
	player := state.CurrentPlayer()
	var best splendor.Action
	bestPoints, bestCost := -1, int(^uint(0)>>1)

	for _, action := range legal {
		var card splendor.Card
		switch action.Type {
		case splendor.PurchaseVisible:
			card, _, _ = state.VisibleCard(action.CardID)
		case splendor.PurchaseReserved:
			card, _ = player.ReservedCard(action.CardID)
		default:
			continue
		}
		cost := card.Cost.Total()
		if card.Points > bestPoints || (card.Points == bestPoints && cost < bestCost) {
			best, bestPoints, bestCost = action, card.Points, cost
		}
	}
	return best, bestPoints >= 0
}

// bestTake prefers three-different takes, then two-same, randomizing among
// equals.
func (g *Greedy) bestTake(legal []splendor.Action) (splendor.Action, bool) {
	var threes, twos []splendor.Action
	for _, action := range legal {
		switch action.Type {
		case splendor.TakeThreeDifferent:
			threes = append(threes, action)
		case splendor.TakeTwoSame:
			twos = append(twos, action)
		}
	}
	if len(threes) > 0 {
		return threes[g.rng.IntN(len(threes))], true
	}
	if len(twos) > 0 {
		return twos[g.rng.IntN(len(twos))], true
	}
	return splendor.Action{}, false
}
