package splendor

// ValidActions enumerates every legal action for the current player under
// the current state, without mutating anything. Decision-makers pick from
// this list; the engine still re-checks legality when the pick comes back
// through Step.
//
// Takes are only listed when they fit under the token cap without a return
// set: when fewer than three fit, the reduced combinations (pairs, then
// singles) are listed instead.
func (e *Engine) ValidActions() ([]Action, error) {
	if e.state == nil {
		return nil, ErrNotInitialized
	}
	state := *e.state
	player := state.CurrentPlayer()
	tokens := player.TokenCount()
	maxTokens := e.config.MaxTokens

	var actions []Action

	// Token takes, capped by bank supply and the player's headroom.
	available := make([]Gem, 0, 5)
	for _, g := range BaseGems() {
		if state.Bank.Get(g) > 0 {
			available = append(available, g)
		}
	}
	canTake := min(len(available), maxTokens-tokens, 3)
	switch {
	case canTake >= 3 && len(available) >= 3:
		for _, combo := range combinations(available, 3) {
			actions = append(actions, Action{Type: TakeThreeDifferent, Take: combo})
		}
	case canTake >= 2 && len(available) >= 2:
		for _, combo := range combinations(available, 2) {
			actions = append(actions, Action{Type: TakeThreeDifferent, Take: combo})
		}
	case canTake >= 1:
		for _, g := range available {
			actions = append(actions, Action{Type: TakeThreeDifferent, Take: []Gem{g}})
		}
	}

	if tokens <= maxTokens-2 {
		for _, g := range BaseGems() {
			if state.Bank.Get(g) >= 4 {
				actions = append(actions, Action{Type: TakeTwoSame, Gem: g})
			}
		}
	}

	// Reserves. Skipped when the gold grant would push the player over cap.
	if player.CanReserve() {
		goldGranted := state.Bank.Get(Gold) > 0
		if !goldGranted || tokens < maxTokens {
			for tier := MinTier; tier <= MaxTier; tier++ {
				for _, card := range state.VisibleRow(tier) {
					actions = append(actions, Action{Type: ReserveVisible, CardID: card.ID})
				}
				if len(state.Deck(tier)) > 0 {
					actions = append(actions, Action{Type: ReserveFromDeck, Tier: tier})
				}
			}
		}
	}

	// Purchases.
	for tier := MinTier; tier <= MaxTier; tier++ {
		for _, card := range state.VisibleRow(tier) {
			if player.CanAfford(card.Cost) {
				actions = append(actions, Action{Type: PurchaseVisible, CardID: card.ID})
			}
		}
	}
	for _, card := range player.Reserved {
		if player.CanAfford(card.Cost) {
			actions = append(actions, Action{Type: PurchaseReserved, CardID: card.ID})
		}
	}

	return actions, nil
}

// combinations returns every k-element subset of gems, preserving order.
func combinations(gems []Gem, k int) [][]Gem {
	if k > len(gems) {
		return nil
	}
	var out [][]Gem
	combo := make([]Gem, k)
	var recurse func(start, depth int)
	recurse = func(start, depth int) {
		if depth == k {
			out = append(out, append([]Gem(nil), combo...))
			return
		}
		for i := start; i <= len(gems)-(k-depth); i++ {
			combo[depth] = gems[i]
			recurse(i+1, depth+1)
		}
	}
	recurse(0, 0)
	return out
}
