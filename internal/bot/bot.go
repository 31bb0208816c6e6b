// Package bot provides the built-in decision-makers used by the simulator
// and the CLI. Each bot implements splendor.Agent: read-only state and the
// legal action list in, exactly one of those actions out.
package bot

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/gembots/splendor/splendor"
)

// New creates a bot by strategy name.
func New(strategy string, rng *rand.Rand, logger *log.Logger) (splendor.Agent, error) {
	switch strategy {
	case "random":
		return NewRandom(rng, logger), nil
	case "greedy":
		return NewGreedy(rng, logger), nil
	}
	return nil, fmt.Errorf("unknown bot strategy: %q", strategy)
}

// Strategies lists the valid strategy names for New.
func Strategies() []string {
	return []string{"random", "greedy"}
}
