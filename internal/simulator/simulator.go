// Package simulator plays complete bot-vs-bot games through the rules
// engine. It is the proving ground for the engine's invariants: every game
// must terminate, conserve the token supply, and respect the per-player
// caps, and the simulator checks all three as it goes.
package simulator

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/gembots/splendor/internal/bot"
	"github.com/gembots/splendor/internal/randutil"
	"github.com/gembots/splendor/internal/statistics"
	"github.com/gembots/splendor/splendor"
)

// DefaultMaxMoves bounds a single game. Random-legal 2-player games finish
// in well under 500 moves; hitting the bound means the engine stopped
// making progress.
const DefaultMaxMoves = 2000

// Config holds simulation parameters.
type Config struct {
	Games         int
	NumPlayers    int
	Strategies    []string // one bot strategy per seat
	Seed          int64    // base seed; game i plays with Seed+i
	WinningPoints int      // 0 means splendor.DefaultWinningPoints
	MaxMoves      int      // 0 means DefaultMaxMoves
	Workers       int // concurrent games, 0 means 1
	Catalog       splendor.Catalog
	Logger        *log.Logger
	Clock         quartz.Clock // injectable for tests, defaults to real time
}

// Simulator runs batches of games.
type Simulator struct {
	config Config
}

// New validates the configuration and builds a simulator.
func New(config Config) (*Simulator, error) {
	if config.Games < 1 {
		return nil, fmt.Errorf("must simulate at least one game")
	}
	if len(config.Strategies) != config.NumPlayers {
		return nil, fmt.Errorf("need %d strategies, got %d", config.NumPlayers, len(config.Strategies))
	}
	if config.MaxMoves == 0 {
		config.MaxMoves = DefaultMaxMoves
	}
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	return &Simulator{config: config}, nil
}

// Run plays the configured number of games, spreading them across workers.
// Each game gets its own engine, RNG and agents; nothing is shared, so the
// batch is reproducible regardless of worker count.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	results := make([]statistics.GameResult, s.config.Games)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(s.config.Workers)
	for i := range s.config.Games {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := s.playGame(s.config.Seed + int64(i))
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i, s.config.Seed+int64(i), err)
			}
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	stats := statistics.New()
	for _, result := range results {
		stats.Add(result)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// playGame runs one full game to completion, checking engine invariants on
// every step.
func (s *Simulator) playGame(seed int64) (statistics.GameResult, error) {
	gameCfg := splendor.DefaultConfig(s.config.NumPlayers)
	if s.config.WinningPoints > 0 {
		gameCfg.WinningPoints = s.config.WinningPoints
	}
	engine, err := splendor.NewEngine(
		gameCfg,
		s.config.Catalog,
		splendor.WithLogger(s.config.Logger),
	)
	if err != nil {
		return statistics.GameResult{}, err
	}

	state, err := engine.Reset(seed)
	if err != nil {
		return statistics.GameResult{}, err
	}
	supply := state.Config.BankSupply()

	// One agent per seat, each with an independent derived RNG.
	agents := make([]splendor.Agent, s.config.NumPlayers)
	for seat, strategy := range s.config.Strategies {
		agent, err := bot.New(strategy, randutil.New(seed+int64(seat)+1), s.config.Logger)
		if err != nil {
			return statistics.GameResult{}, err
		}
		agents[seat] = agent
	}

	start := s.config.Clock.Now()
	moves := 0
	for !state.GameOver {
		if moves >= s.config.MaxMoves {
			return statistics.GameResult{}, fmt.Errorf("game did not terminate within %d moves", s.config.MaxMoves)
		}

		legal, err := engine.ValidActions()
		if err != nil {
			return statistics.GameResult{}, err
		}
		if len(legal) == 0 {
			// A fully exhausted position: bank empty, nothing affordable,
			// reserve limit reached. Record rather than error so a batch
			// survives degenerate seeds.
			s.config.Logger.Warn("game stalled with no legal actions", "seed", seed, "moves", moves)
			return statistics.GameResult{Seed: seed, Moves: moves, Stalled: true}, nil
		}

		action := agents[state.CurrentIdx].ChooseAction(state, legal)
		state, err = engine.Step(action)
		if err != nil {
			return statistics.GameResult{}, fmt.Errorf("bot chose an illegal action %s: %w", action, err)
		}
		moves++

		if err := checkInvariants(state, supply); err != nil {
			return statistics.GameResult{}, err
		}
	}

	winner := state.Players[state.Winner]
	return statistics.GameResult{
		Seed:         seed,
		Winner:       state.Winner,
		WinnerPoints: winner.Points(),
		WinnerCards:  len(winner.Cards),
		Turns:        state.Turn,
		Moves:        moves,
		Duration:     s.config.Clock.Since(start),
	}, nil
}

// checkInvariants asserts token conservation and the per-player caps after
// a successful step.
func checkInvariants(state splendor.GameState, supply splendor.Gems) error {
	total := state.Bank
	for _, p := range state.Players {
		total = total.Add(p.Tokens)
		if count := p.TokenCount(); count > state.Config.MaxTokens {
			return fmt.Errorf("player %d holds %d tokens, cap is %d", p.ID, count, state.Config.MaxTokens)
		}
		if len(p.Reserved) > splendor.MaxReserved {
			return fmt.Errorf("player %d has %d reserved cards", p.ID, len(p.Reserved))
		}
	}
	if total != supply {
		return fmt.Errorf("token supply not conserved: have %s, want %s", total, supply)
	}
	return nil
}
