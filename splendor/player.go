package splendor

import "fmt"

// Player is one seat's holdings. Like GameState it is immutable by
// convention: the withX/addX helpers return a new value and clone any slice
// they change, so older snapshots stay valid.
//
// Bonuses, points and token counts are derived on read rather than cached;
// the owned-card list is short and recomputing keeps copies trivially
// consistent.
type Player struct {
	ID       int    // seat index, 0-based
	Tokens   Gems   // held tokens, may include gold
	Cards    []Card // owned cards in purchase order
	Reserved []Card // reserved cards, at most MaxReserved
	Nobles   []Noble
}

// NewPlayer returns an empty player for the given seat.
func NewPlayer(id int) Player {
	return Player{ID: id}
}

// Bonuses sums the bonus colors of all owned cards.
func (p Player) Bonuses() Gems {
	var b Gems
	for _, c := range p.Cards {
		b = b.AddGem(c.Bonus, 1)
	}
	return b
}

// Points sums owned-card points and attracted-noble points.
func (p Player) Points() int {
	pts := 0
	for _, c := range p.Cards {
		pts += c.Points
	}
	for _, n := range p.Nobles {
		pts += n.Points
	}
	return pts
}

// TokenCount returns the number of held tokens including gold.
func (p Player) TokenCount() int {
	return p.Tokens.Total()
}

// CanReserve reports whether the player is under the reservation limit.
func (p Player) CanReserve() bool {
	return len(p.Reserved) < MaxReserved
}

// CanAfford reports whether the player can pay the given cost using bonuses,
// matching tokens, and gold as a wildcard for any remainder.
func (p Player) CanAfford(cost Gems) bool {
	goldNeeded := 0
	bonuses := p.Bonuses()
	for _, g := range BaseGems() {
		available := p.Tokens.Get(g) + bonuses.Get(g)
		if shortfall := cost.Get(g) - available; shortfall > 0 {
			goldNeeded += shortfall
		}
	}
	return goldNeeded <= p.Tokens.Get(Gold)
}

// PaymentFor computes the tokens to hand back to the bank for a purchase.
// Bonuses are applied first, then matching tokens, then gold for whatever is
// left, so gold use is always minimal. The caller must have checked
// CanAfford; the returned payment is only valid when it did.
func (p Player) PaymentFor(cost Gems) Gems {
	var payment Gems
	goldNeeded := 0
	bonuses := p.Bonuses()
	for _, g := range BaseGems() {
		remaining := max(0, cost.Get(g)-bonuses.Get(g))
		fromTokens := min(remaining, p.Tokens.Get(g))
		payment = payment.AddGem(g, fromTokens)
		goldNeeded += remaining - fromTokens
	}
	return payment.WithGem(Gold, goldNeeded)
}

// ReservedCard finds a reserved card by ID.
func (p Player) ReservedCard(cardID string) (Card, bool) {
	for _, c := range p.Reserved {
		if c.ID == cardID {
			return c, true
		}
	}
	return Card{}, false
}

func (p Player) withTokens(tokens Gems) Player {
	p.Tokens = tokens
	return p
}

func (p Player) addTokens(gems Gems) Player {
	return p.withTokens(p.Tokens.Add(gems))
}

func (p Player) removeTokens(gems Gems) Player {
	return p.withTokens(p.Tokens.Sub(gems))
}

func (p Player) addCard(card Card) Player {
	p.Cards = append(p.Cards[:len(p.Cards):len(p.Cards)], card)
	return p
}

func (p Player) addReserved(card Card) Player {
	if !p.CanReserve() {
		panic(fmt.Sprintf("player %d already has %d reserved cards", p.ID, len(p.Reserved)))
	}
	p.Reserved = append(p.Reserved[:len(p.Reserved):len(p.Reserved)], card)
	return p
}

func (p Player) removeReserved(cardID string) Player {
	kept := make([]Card, 0, len(p.Reserved))
	for _, c := range p.Reserved {
		if c.ID != cardID {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(p.Reserved) {
		panic(fmt.Sprintf("card %s not in player %d's reserved cards", cardID, p.ID))
	}
	p.Reserved = kept
	return p
}

func (p Player) addNoble(noble Noble) Player {
	p.Nobles = append(p.Nobles[:len(p.Nobles):len(p.Nobles)], noble)
	return p
}
