package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ScenarioConfig is a simulation scenario loaded from an HCL file, e.g.
//
//	game {
//	  players        = 3
//	  games          = 500
//	  seed           = 42
//	  winning_points = 15
//	}
//
//	seat "0" { strategy = "greedy" }
//	seat "1" { strategy = "random" }
//	seat "2" { strategy = "random" }
type ScenarioConfig struct {
	Game  GameSettings `hcl:"game,block"`
	Seats []SeatConfig `hcl:"seat,block"`
}

// GameSettings contains scenario-level configuration.
type GameSettings struct {
	Players       int   `hcl:"players"`
	Games         int   `hcl:"games,optional"`
	Seed          int64 `hcl:"seed,optional"`
	WinningPoints int   `hcl:"winning_points,optional"`
	MaxMoves      int   `hcl:"max_moves,optional"`
	Workers       int   `hcl:"workers,optional"`
}

// SeatConfig assigns a bot strategy to one seat.
type SeatConfig struct {
	Seat     string `hcl:"seat,label"`
	Strategy string `hcl:"strategy"`
}

// LoadScenario parses a scenario file and applies defaults.
func LoadScenario(filename string) (*ScenarioConfig, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ScenarioConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Game.Games == 0 {
		config.Game.Games = 100
	}
	if config.Game.Workers == 0 {
		config.Game.Workers = 1
	}
	return &config, nil
}

// Strategies returns the per-seat strategy list in seat order, defaulting
// unlisted seats to random.
func (c *ScenarioConfig) Strategies() ([]string, error) {
	strategies := make([]string, c.Game.Players)
	for i := range strategies {
		strategies[i] = "random"
	}
	for _, seat := range c.Seats {
		var idx int
		if _, err := fmt.Sscanf(seat.Seat, "%d", &idx); err != nil {
			return nil, fmt.Errorf("seat label %q is not a seat index", seat.Seat)
		}
		if idx < 0 || idx >= c.Game.Players {
			return nil, fmt.Errorf("seat %d out of range for %d players", idx, c.Game.Players)
		}
		strategies[idx] = seat.Strategy
	}
	return strategies, nil
}

// fileExists reports whether a path exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
