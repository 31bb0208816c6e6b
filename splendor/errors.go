package splendor

import "errors"

// Sentinel errors for every distinct way a Reset or Step can be rejected.
// Step failures leave the engine state untouched; callers can match with
// errors.Is to tell the categories apart (a learner may treat an
// unaffordable purchase differently from an empty deck, say).
var (
	// ErrPlayerCount is returned when a configuration asks for a player
	// count outside 2-4.
	ErrPlayerCount = errors.New("invalid player count")

	// ErrNotInitialized is returned when the engine is used before a
	// successful Reset.
	ErrNotInitialized = errors.New("engine not initialized, call Reset first")

	// ErrGameOver is returned when Step is called after the game ended.
	ErrGameOver = errors.New("game is already over")

	// ErrInvalidAction is returned for actions that are structurally
	// malformed (wrong arity, duplicate colors, unknown type).
	ErrInvalidAction = errors.New("invalid action")

	// ErrGoldNotTakeable is returned when a take action names gold.
	ErrGoldNotTakeable = errors.New("gold cannot be taken directly")

	// ErrInsufficientBank is returned when the bank cannot supply a
	// requested take (empty for take-three, below four for take-two).
	ErrInsufficientBank = errors.New("insufficient tokens in bank")

	// ErrReserveLimit is returned when reserving with three cards already
	// reserved.
	ErrReserveLimit = errors.New("cannot reserve more than 3 cards")

	// ErrCardNotFound is returned when a card ID is not in the container
	// the action names (visible row or reserved list).
	ErrCardNotFound = errors.New("card not found")

	// ErrEmptyDeck is returned for a blind reserve from an exhausted deck.
	ErrEmptyDeck = errors.New("deck is empty")

	// ErrCannotAfford is returned when the player cannot pay for a card
	// with bonuses, tokens and gold combined.
	ErrCannotAfford = errors.New("cannot afford card")

	// ErrTokenLimit is returned when an action leaves the player over the
	// token cap and the action's return set does not restore it.
	ErrTokenLimit = errors.New("token limit exceeded")
)
