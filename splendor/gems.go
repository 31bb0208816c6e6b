package splendor

import (
	"fmt"
	"strings"
)

// Gem identifies one of the five base gem colors or gold, the wildcard.
// Gold is only ever held as tokens: card bonuses and noble requirements
// never include it.
type Gem uint8

const (
	Diamond Gem = iota // white
	Sapphire           // blue
	Emerald            // green
	Ruby               // red
	Onyx               // black
	Gold               // wildcard token

	NumGems = 6
)

// BaseGems returns the five gem colors, excluding gold.
func BaseGems() [5]Gem {
	return [5]Gem{Diamond, Sapphire, Emerald, Ruby, Onyx}
}

// String returns the lowercase name used in the catalogue data files.
func (g Gem) String() string {
	switch g {
	case Diamond:
		return "diamond"
	case Sapphire:
		return "sapphire"
	case Emerald:
		return "emerald"
	case Ruby:
		return "ruby"
	case Onyx:
		return "onyx"
	case Gold:
		return "gold"
	}
	return fmt.Sprintf("gem(%d)", uint8(g))
}

// ParseGem parses a gem name as it appears in catalogue data.
func ParseGem(s string) (Gem, error) {
	switch s {
	case "diamond":
		return Diamond, nil
	case "sapphire":
		return Sapphire, nil
	case "emerald":
		return Emerald, nil
	case "ruby":
		return Ruby, nil
	case "onyx":
		return Onyx, nil
	case "gold":
		return Gold, nil
	}
	return 0, fmt.Errorf("invalid gem name: %q", s)
}

// Gems is a multiset of tokens, one counter per gem kind. It is a plain
// value type: every operation returns a new value and the receiver is never
// modified, so Gems values can be shared freely between states.
//
// Counters are never negative. Sub panics rather than producing a negative
// counter; callers must check availability (AtLeast) before subtracting.
type Gems [NumGems]int

// NewGems builds a collection from (gem, count) pairs.
func NewGems(pairs ...GemCount) Gems {
	var g Gems
	for _, p := range pairs {
		g[p.Gem] += p.Count
	}
	return g
}

// GemCount is a single (gem, count) pair, used for construction and iteration.
type GemCount struct {
	Gem   Gem
	Count int
}

// Single returns a collection holding count tokens of a single kind.
func Single(gem Gem, count int) Gems {
	var g Gems
	g[gem] = count
	return g
}

// Get returns the count for one gem kind.
func (g Gems) Get(gem Gem) int {
	return g[gem]
}

// Total returns the number of tokens including gold.
func (g Gems) Total() int {
	n := 0
	for _, c := range g {
		n += c
	}
	return n
}

// TotalBase returns the number of tokens excluding gold.
func (g Gems) TotalBase() int {
	return g.Total() - g[Gold]
}

// Add returns the component-wise sum of g and other.
func (g Gems) Add(other Gems) Gems {
	for i := range g {
		g[i] += other[i]
	}
	return g
}

// Sub returns the component-wise difference of g and other. It panics if any
// counter would go negative: that is a bug in the caller, not a game outcome.
func (g Gems) Sub(other Gems) Gems {
	for i := range g {
		g[i] -= other[i]
		if g[i] < 0 {
			panic(fmt.Sprintf("gem count for %s went negative", Gem(i)))
		}
	}
	return g
}

// AtLeast reports whether g has at least as many tokens of every kind as other.
func (g Gems) AtLeast(other Gems) bool {
	for i := range g {
		if g[i] < other[i] {
			return false
		}
	}
	return true
}

// WithGem returns a copy of g with the count for one kind replaced.
func (g Gems) WithGem(gem Gem, count int) Gems {
	if count < 0 {
		panic(fmt.Sprintf("gem count for %s cannot be negative", gem))
	}
	g[gem] = count
	return g
}

// AddGem returns a copy of g with count tokens of one kind added.
func (g Gems) AddGem(gem Gem, count int) Gems {
	return g.WithGem(gem, g[gem]+count)
}

// RemoveGem returns a copy of g with count tokens of one kind removed.
// Panics if the counter would go negative.
func (g Gems) RemoveGem(gem Gem, count int) Gems {
	return g.WithGem(gem, g[gem]-count)
}

// Counts returns the non-zero (gem, count) pairs in gem order.
func (g Gems) Counts() []GemCount {
	out := make([]GemCount, 0, NumGems)
	for i, c := range g {
		if c != 0 {
			out = append(out, GemCount{Gem: Gem(i), Count: c})
		}
	}
	return out
}

// IsZero reports whether the collection is empty.
func (g Gems) IsZero() bool {
	return g == Gems{}
}

// String renders the non-zero counters, e.g. "2 ruby, 1 gold".
func (g Gems) String() string {
	if g.IsZero() {
		return "none"
	}
	parts := make([]string, 0, NumGems)
	for _, p := range g.Counts() {
		parts = append(parts, fmt.Sprintf("%d %s", p.Count, p.Gem))
	}
	return strings.Join(parts, ", ")
}
