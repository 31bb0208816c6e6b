package splendor

// Agent is any decision-maker that can pick a move for the current player.
// Agents receive a read-only snapshot and the enumerated legal actions, and
// return exactly one of them; the engine re-checks legality when the choice
// is submitted via Step.
type Agent interface {
	ChooseAction(state GameState, legal []Action) Action
}
