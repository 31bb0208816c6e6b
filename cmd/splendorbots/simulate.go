package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gembots/splendor/internal/bot"
	"github.com/gembots/splendor/internal/fileutil"
	"github.com/gembots/splendor/internal/simulator"
	"github.com/gembots/splendor/internal/statistics"
	"github.com/gembots/splendor/splendor/catalog"
)

// SimulateCmd runs batches of bot-vs-bot games and prints aggregate results.
type SimulateCmd struct {
	Games      int      `default:"100" help:"Number of games to simulate"`
	Players    int      `default:"2" help:"Number of players (2-4)"`
	Strategies []string `help:"Bot strategy per seat (random, greedy); repeats the last entry for unlisted seats"`
	Seed       int64    `default:"1" help:"Base RNG seed; game i uses seed+i"`
	Workers    int      `default:"4" help:"Games played concurrently"`
	Config     string   `type:"path" help:"HCL scenario file; flags above are ignored when set"`
	Output     string   `type:"path" help:"Write a JSON report of the batch to this file"`
	Verbose    bool     `help:"Debug logging"`
}

func (c *SimulateCmd) Run() error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
	})
	if c.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg := simulator.Config{
		Games:      c.Games,
		NumPlayers: c.Players,
		Strategies: c.seatStrategies(),
		Seed:       c.Seed,
		Workers:    c.Workers,
		Catalog:    catalog.Standard(),
		Logger:     logger,
	}

	if c.Config != "" {
		if !fileExists(c.Config) {
			return fmt.Errorf("scenario file not found: %s", c.Config)
		}
		scenario, err := LoadScenario(c.Config)
		if err != nil {
			return err
		}
		strategies, err := scenario.Strategies()
		if err != nil {
			return err
		}
		cfg.Games = scenario.Game.Games
		cfg.NumPlayers = scenario.Game.Players
		cfg.Strategies = strategies
		cfg.Seed = scenario.Game.Seed
		cfg.WinningPoints = scenario.Game.WinningPoints
		cfg.MaxMoves = scenario.Game.MaxMoves
		cfg.Workers = scenario.Game.Workers
	}

	sim, err := simulator.New(cfg)
	if err != nil {
		return err
	}

	logger.Info("starting simulation",
		"games", cfg.Games, "players", cfg.NumPlayers,
		"strategies", strings.Join(cfg.Strategies, ","), "seed", cfg.Seed)

	start := time.Now()
	stats, err := sim.Run(context.Background())
	if err != nil {
		return err
	}
	logger.Info("simulation complete", "elapsed", time.Since(start).Round(time.Millisecond))

	printSummary(stats, cfg)

	if c.Output != "" {
		if err := writeReport(c.Output, stats, cfg); err != nil {
			return err
		}
		logger.Info("report written", "path", c.Output)
	}
	return nil
}

// report is the JSON shape written by --output.
type report struct {
	Games      int         `json:"games"`
	Players    int         `json:"players"`
	Strategies []string    `json:"strategies"`
	Seed       int64       `json:"seed"`
	Stalled    int         `json:"stalled,omitempty"`
	WinsBySeat map[int]int `json:"wins_by_seat"`
	MeanMoves  float64     `json:"mean_moves"`
	MaxMoves   int         `json:"max_moves"`
	MeanPoints float64     `json:"mean_winner_points"`
}

func writeReport(path string, stats *statistics.Statistics, cfg simulator.Config) error {
	data, err := json.MarshalIndent(report{
		Games:      stats.Games,
		Players:    cfg.NumPlayers,
		Strategies: cfg.Strategies,
		Seed:       cfg.Seed,
		Stalled:    stats.Stalled,
		WinsBySeat: stats.WinsBySeat,
		MeanMoves:  stats.MeanMoves(),
		MaxMoves:   stats.MaxMoves,
		MeanPoints: stats.MeanWinnerPoints(),
	}, "", "  ")
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, append(data, '\n'), 0o644)
}

// seatStrategies expands the --strategies flag to one entry per seat,
// repeating the last given strategy.
func (c *SimulateCmd) seatStrategies() []string {
	strategies := make([]string, c.Players)
	for i := range strategies {
		switch {
		case i < len(c.Strategies):
			strategies[i] = c.Strategies[i]
		case len(c.Strategies) > 0:
			strategies[i] = c.Strategies[len(c.Strategies)-1]
		default:
			strategies[i] = "random"
		}
	}
	return strategies
}

func printSummary(stats *statistics.Statistics, cfg simulator.Config) {
	fmt.Printf("\n=== RESULTS (%d games) ===\n", stats.Games)
	if stats.Stalled > 0 {
		fmt.Printf("Stalled: %d games reached a position with no legal action\n", stats.Stalled)
	}
	for seat := 0; seat < cfg.NumPlayers; seat++ {
		wins := stats.WinsBySeat[seat]
		fmt.Printf("Seat %d (%s): %d wins (%.1f%%)\n",
			seat, cfg.Strategies[seat], wins, float64(wins)/float64(stats.Games)*100)
	}

	fmt.Printf("\n=== GAME LENGTH ===\n")
	fmt.Printf("Mean: %.1f moves (std dev %.1f)\n", stats.MeanMoves(), stats.StdDevMoves())
	fmt.Printf("Median: %.0f, P95: %.0f, max: %d\n",
		stats.MedianMoves(), stats.PercentileMoves(0.95), stats.MaxMoves)
	fmt.Printf("Mean winning score: %.1f points\n", stats.MeanWinnerPoints())
}

// CatalogCmd prints a summary of the embedded card and noble set.
type CatalogCmd struct{}

func (c *CatalogCmd) Run() error {
	set := catalog.Standard()
	fmt.Printf("Cards: %d total\n", set.NumCards())
	for tier := 1; tier <= 3; tier++ {
		cards := set.CardsForTier(tier)
		points := 0
		for _, card := range cards {
			points += card.Points
		}
		fmt.Printf("  tier %d: %d cards, %d total points\n", tier, len(cards), points)
	}
	fmt.Printf("Nobles: %d\n", len(set.Nobles()))
	fmt.Printf("Bot strategies: %s\n", strings.Join(bot.Strategies(), ", "))
	return nil
}
