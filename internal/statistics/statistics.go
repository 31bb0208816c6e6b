// Package statistics aggregates the outcomes of simulated games.
package statistics

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// GameResult is the outcome of one simulated game.
type GameResult struct {
	Seed         int64 // RNG seed for this game (for replay)
	Winner       int   // winning seat
	WinnerPoints int
	WinnerCards  int
	Turns        int // full rounds played
	Moves        int // individual steps taken
	Duration     time.Duration
	Stalled      bool // no legal action before the game ended
}

// Statistics tracks aggregate results across a batch of games. It is not
// safe for concurrent use; callers merge per-goroutine results through Add.
type Statistics struct {
	Games   int
	Stalled int

	WinsBySeat map[int]int
	SumPoints  int
	SumMoves   int
	SumMoves2  float64 // sum of squares for variance
	MaxMoves   int
	MoveCounts []float64 // per-game move counts, for median/percentiles
	Elapsed    time.Duration
}

// New returns empty statistics.
func New() *Statistics {
	return &Statistics{WinsBySeat: make(map[int]int)}
}

// Add incorporates one game result.
func (s *Statistics) Add(result GameResult) {
	s.Games++
	if result.Stalled {
		s.Stalled++
		return
	}
	s.WinsBySeat[result.Winner]++
	s.SumPoints += result.WinnerPoints
	s.SumMoves += result.Moves
	s.SumMoves2 += float64(result.Moves) * float64(result.Moves)
	s.MoveCounts = append(s.MoveCounts, float64(result.Moves))
	s.MaxMoves = max(s.MaxMoves, result.Moves)
	s.Elapsed += result.Duration
}

// Merge folds another batch into s.
func (s *Statistics) Merge(other *Statistics) {
	s.Games += other.Games
	s.Stalled += other.Stalled
	for seat, wins := range other.WinsBySeat {
		s.WinsBySeat[seat] += wins
	}
	s.SumPoints += other.SumPoints
	s.SumMoves += other.SumMoves
	s.SumMoves2 += other.SumMoves2
	s.MoveCounts = append(s.MoveCounts, other.MoveCounts...)
	s.MaxMoves = max(s.MaxMoves, other.MaxMoves)
	s.Elapsed += other.Elapsed
}

func (s *Statistics) completed() int {
	return s.Games - s.Stalled
}

// MeanMoves returns the mean moves per completed game.
func (s *Statistics) MeanMoves() float64 {
	if s.completed() == 0 {
		return 0
	}
	return float64(s.SumMoves) / float64(s.completed())
}

// StdDevMoves returns the sample standard deviation of moves per game.
func (s *Statistics) StdDevMoves() float64 {
	n := s.completed()
	if n < 2 {
		return 0
	}
	mean := s.MeanMoves()
	return math.Sqrt((s.SumMoves2 - float64(n)*mean*mean) / float64(n-1))
}

// MedianMoves returns the median moves per completed game.
func (s *Statistics) MedianMoves() float64 {
	return s.PercentileMoves(0.5)
}

// PercentileMoves returns the p-th percentile (0..1) of moves per game.
func (s *Statistics) PercentileMoves(p float64) float64 {
	if len(s.MoveCounts) == 0 {
		return 0
	}
	values := make([]float64, len(s.MoveCounts))
	copy(values, s.MoveCounts)
	sort.Float64s(values)
	idx := int(p * float64(len(values)-1))
	return values[idx]
}

// MeanWinnerPoints returns the mean winning score.
func (s *Statistics) MeanWinnerPoints() float64 {
	if s.completed() == 0 {
		return 0
	}
	return float64(s.SumPoints) / float64(s.completed())
}

// Validate sanity-checks the aggregates.
func (s *Statistics) Validate() error {
	wins := 0
	for _, w := range s.WinsBySeat {
		wins += w
	}
	if wins != s.completed() {
		return fmt.Errorf("win counts (%d) do not match completed games (%d)", wins, s.completed())
	}
	if len(s.MoveCounts) != s.completed() {
		return fmt.Errorf("move samples (%d) do not match completed games (%d)", len(s.MoveCounts), s.completed())
	}
	return nil
}
