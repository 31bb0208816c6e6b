package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/gembots/splendor/splendor"
)

// Random picks uniformly among the legal actions. It is the baseline
// opponent and the move source for termination testing.
type Random struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandom creates a Random bot using the given RNG.
func NewRandom(rng *rand.Rand, logger *log.Logger) *Random {
	return &Random{rng: rng, logger: logger}
}

func (r *Random) ChooseAction(state splendor.GameState, legal []splendor.Action) splendor.Action {
	action := legal[r.rng.IntN(len(legal))]
	r.logger.Debug("random bot move", "seat", state.CurrentIdx, "action", action.String())
	return action
}
