package splendor

import (
	"fmt"
	"strings"
)

// ActionType discriminates the six player actions.
type ActionType uint8

const (
	TakeThreeDifferent ActionType = iota
	TakeTwoSame
	ReserveVisible
	ReserveFromDeck
	PurchaseVisible
	PurchaseReserved
)

// String returns the snake_case name used in logs and scenario files.
func (t ActionType) String() string {
	switch t {
	case TakeThreeDifferent:
		return "take_three_different"
	case TakeTwoSame:
		return "take_two_same"
	case ReserveVisible:
		return "reserve_visible"
	case ReserveFromDeck:
		return "reserve_from_deck"
	case PurchaseVisible:
		return "purchase_visible"
	case PurchaseReserved:
		return "purchase_reserved"
	}
	return fmt.Sprintf("action(%d)", uint8(t))
}

// Action is one player intent, a tagged union over the six action types.
// Which payload fields are meaningful depends on Type:
//
//	TakeThreeDifferent: Take (1-3 distinct base colors), Return
//	TakeTwoSame:        Gem, Return
//	ReserveVisible:     CardID, Return
//	ReserveFromDeck:    Tier, Return
//	PurchaseVisible:    CardID
//	PurchaseReserved:   CardID
//
// The constructors enforce structural constraints (arity, distinctness,
// non-gold colors). Game legality, such as bank supply, affordability and
// the reservation and token caps, is the engine's job at Step time.
type Action struct {
	Type   ActionType
	Take   []Gem  // take-three: distinct base colors to take
	Gem    Gem    // take-two: the color taken twice
	CardID string // reserve-visible, purchase-visible, purchase-reserved
	Tier   int    // reserve-from-deck
	Return []Gem  // tokens to give back if the take puts the player over cap
}

// TakeThree builds a take-three-different action. Between one and three
// distinct base colors may be named; gold is never takeable.
func TakeThree(take []Gem, returnGems ...Gem) (Action, error) {
	if len(take) < 1 || len(take) > 3 {
		return Action{}, fmt.Errorf("%w: take-three wants 1-3 colors, got %d", ErrInvalidAction, len(take))
	}
	var seen [NumGems]bool
	for _, g := range take {
		if g == Gold {
			return Action{}, fmt.Errorf("%w: in take-three", ErrGoldNotTakeable)
		}
		if g >= NumGems {
			return Action{}, fmt.Errorf("%w: unknown gem %d", ErrInvalidAction, g)
		}
		if seen[g] {
			return Action{}, fmt.Errorf("%w: duplicate color %s in take-three", ErrInvalidAction, g)
		}
		seen[g] = true
	}
	return Action{Type: TakeThreeDifferent, Take: take, Return: returnGems}, nil
}

// TakeTwo builds a take-two-same action for one base color.
func TakeTwo(gem Gem, returnGems ...Gem) (Action, error) {
	if gem == Gold {
		return Action{}, fmt.Errorf("%w: in take-two", ErrGoldNotTakeable)
	}
	if gem >= NumGems {
		return Action{}, fmt.Errorf("%w: unknown gem %d", ErrInvalidAction, gem)
	}
	return Action{Type: TakeTwoSame, Gem: gem, Return: returnGems}, nil
}

// Reserve builds a reserve-visible action for a face-up card.
func Reserve(cardID string, returnGems ...Gem) (Action, error) {
	if cardID == "" {
		return Action{}, fmt.Errorf("%w: reserve wants a card id", ErrInvalidAction)
	}
	return Action{Type: ReserveVisible, CardID: cardID, Return: returnGems}, nil
}

// ReserveBlind builds a reserve-from-deck action for a tier's top card.
func ReserveBlind(tier int, returnGems ...Gem) (Action, error) {
	if tier < MinTier || tier > MaxTier {
		return Action{}, fmt.Errorf("%w: unknown tier %d", ErrInvalidAction, tier)
	}
	return Action{Type: ReserveFromDeck, Tier: tier, Return: returnGems}, nil
}

// Purchase builds a purchase-visible action for a face-up card.
func Purchase(cardID string) (Action, error) {
	if cardID == "" {
		return Action{}, fmt.Errorf("%w: purchase wants a card id", ErrInvalidAction)
	}
	return Action{Type: PurchaseVisible, CardID: cardID}, nil
}

// PurchaseFromReserve builds a purchase-reserved action for one of the
// acting player's reserved cards.
func PurchaseFromReserve(cardID string) (Action, error) {
	if cardID == "" {
		return Action{}, fmt.Errorf("%w: purchase wants a card id", ErrInvalidAction)
	}
	return Action{Type: PurchaseReserved, CardID: cardID}, nil
}

// String renders the action compactly for logs, e.g.
// "take_three_different[ruby emerald onyx]" or "purchase_visible[t1-07]".
func (a Action) String() string {
	var b strings.Builder
	b.WriteString(a.Type.String())
	switch a.Type {
	case TakeThreeDifferent:
		names := make([]string, len(a.Take))
		for i, g := range a.Take {
			names[i] = g.String()
		}
		fmt.Fprintf(&b, "[%s]", strings.Join(names, " "))
	case TakeTwoSame:
		fmt.Fprintf(&b, "[%s]", a.Gem)
	case ReserveVisible, PurchaseVisible, PurchaseReserved:
		fmt.Fprintf(&b, "[%s]", a.CardID)
	case ReserveFromDeck:
		fmt.Fprintf(&b, "[tier %d]", a.Tier)
	}
	if len(a.Return) > 0 {
		names := make([]string, len(a.Return))
		for i, g := range a.Return {
			names[i] = g.String()
		}
		fmt.Fprintf(&b, " return[%s]", strings.Join(names, " "))
	}
	return b.String()
}

// WithReturn returns a copy of the action with the give-back set replaced.
// Decision-makers use this to retry an over-cap take with returns attached.
func (a Action) WithReturn(returnGems ...Gem) Action {
	a.Return = returnGems
	return a
}
