// Package splendor implements the rules engine for the Splendor board game:
// the immutable game state, the six player actions, validation and
// execution, automatic noble visits, and the two-phase end-of-game rule.
//
// The main type is Engine, which owns a seeded RNG and the single current
// GameState. A game runs Reset once and then Step per move:
//
//	eng, err := splendor.NewEngine(splendor.DefaultConfig(2), catalog.Standard())
//	state, err := eng.Reset(42)
//	legal, err := eng.ValidActions()
//	state, err = eng.Step(legal[0])
//
// Every Step either applies completely (execute, noble check, win check,
// turn advance) or fails with a typed validation error and no state change.
// States are values: helpers never mutate in place, so callers can hold old
// snapshots for replay or delta computation.
//
// # Deterministic Replay
//
// Reset derives all shuffling from its seed. Two engines reset with the
// same configuration and seed produce identical decks, visible rows and
// noble pools, so a (seed, action list) pair replays a full game.
//
// Decision-makers plug in through the Agent interface; the built-in bots
// under internal/bot and the simulator under internal/simulator drive whole
// games this way.
package splendor
