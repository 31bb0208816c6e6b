package statistics

import (
	"testing"
	"time"
)

func result(winner, points, moves int) GameResult {
	return GameResult{
		Winner:       winner,
		WinnerPoints: points,
		Moves:        moves,
		Duration:     time.Millisecond,
	}
}

func TestAddAndAggregates(t *testing.T) {
	t.Parallel()

	s := New()
	s.Add(result(0, 15, 100))
	s.Add(result(1, 17, 200))
	s.Add(result(0, 16, 300))

	if s.Games != 3 {
		t.Errorf("games = %d, want 3", s.Games)
	}
	if s.WinsBySeat[0] != 2 || s.WinsBySeat[1] != 1 {
		t.Errorf("wins = %v, want seat0:2 seat1:1", s.WinsBySeat)
	}
	if got := s.MeanMoves(); got != 200 {
		t.Errorf("mean moves = %v, want 200", got)
	}
	if got := s.MedianMoves(); got != 200 {
		t.Errorf("median moves = %v, want 200", got)
	}
	if got := s.MeanWinnerPoints(); got != 16 {
		t.Errorf("mean winner points = %v, want 16", got)
	}
	if s.MaxMoves != 300 {
		t.Errorf("max moves = %d, want 300", s.MaxMoves)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestStdDevMoves(t *testing.T) {
	t.Parallel()

	s := New()
	if s.StdDevMoves() != 0 {
		t.Error("no samples should give zero stddev")
	}
	s.Add(result(0, 15, 100))
	if s.StdDevMoves() != 0 {
		t.Error("one sample should give zero stddev")
	}
	s.Add(result(0, 15, 300))

	// Sample stddev of {100, 300} is sqrt(2*100^2) ~ 141.42.
	got := s.StdDevMoves()
	if got < 141 || got > 142 {
		t.Errorf("stddev = %v, want ~141.42", got)
	}
}

func TestStalledGamesExcludedFromAggregates(t *testing.T) {
	t.Parallel()

	s := New()
	s.Add(result(0, 15, 100))
	s.Add(GameResult{Stalled: true, Moves: 50})

	if s.Games != 2 || s.Stalled != 1 {
		t.Errorf("games=%d stalled=%d, want 2/1", s.Games, s.Stalled)
	}
	if got := s.MeanMoves(); got != 100 {
		t.Errorf("mean moves = %v, stalled games must not count", got)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	a := New()
	a.Add(result(0, 15, 100))
	b := New()
	b.Add(result(1, 18, 200))
	b.Add(GameResult{Stalled: true})

	a.Merge(b)
	if a.Games != 3 || a.Stalled != 1 {
		t.Errorf("games=%d stalled=%d, want 3/1", a.Games, a.Stalled)
	}
	if a.WinsBySeat[0] != 1 || a.WinsBySeat[1] != 1 {
		t.Errorf("wins = %v", a.WinsBySeat)
	}
	if got := a.MeanMoves(); got != 150 {
		t.Errorf("mean moves = %v, want 150", got)
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateCatchesDrift(t *testing.T) {
	t.Parallel()

	s := New()
	s.Add(result(0, 15, 100))
	s.WinsBySeat[1]++ // corrupt the tally

	if err := s.Validate(); err == nil {
		t.Error("Validate should reject mismatched win counts")
	}
}

func TestPercentileMoves(t *testing.T) {
	t.Parallel()

	s := New()
	for i := 1; i <= 10; i++ {
		s.Add(result(0, 15, i*10))
	}
	if got := s.PercentileMoves(0); got != 10 {
		t.Errorf("p0 = %v, want 10", got)
	}
	if got := s.PercentileMoves(1); got != 100 {
		t.Errorf("p100 = %v, want 100", got)
	}
	if got := s.PercentileMoves(0.5); got != 50 {
		t.Errorf("p50 = %v, want 50", got)
	}
}
