// Package catalog provides the standard Splendor card and noble set: 90
// development cards (40/30/20 across tiers one to three) and 10 nobles,
// embedded as JSON in the same shape the original data file uses. The
// engine consumes it through the splendor.Catalog interface and never
// assumes these quantities.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gembots/splendor/splendor"
)

//go:embed cards.json
var standardJSON []byte

// Set is an immutable catalogue of cards and nobles. It satisfies
// splendor.Catalog.
type Set struct {
	byTier [splendor.NumTiers][]splendor.Card
	nobles []splendor.Noble
}

// CardsForTier returns every card of one tier, in catalogue order.
func (s *Set) CardsForTier(tier int) []splendor.Card {
	return s.byTier[tier-splendor.MinTier]
}

// Nobles returns every noble tile, in catalogue order.
func (s *Set) Nobles() []splendor.Noble {
	return s.nobles
}

// NumCards returns the total card count across all tiers.
func (s *Set) NumCards() int {
	n := 0
	for _, tier := range s.byTier {
		n += len(tier)
	}
	return n
}

var (
	standardOnce sync.Once
	standardSet  *Set
)

// Standard returns the embedded base-game set. The data ships with the
// binary; a decode failure is a build defect and panics.
func Standard() *Set {
	standardOnce.Do(func() {
		set, err := Load(standardJSON)
		if err != nil {
			panic(fmt.Sprintf("embedded catalogue is invalid: %v", err))
		}
		standardSet = set
	})
	return standardSet
}

// Wire records mirroring the original cards.json layout. Cost and
// requirement maps are keyed by gem name with zero entries omitted.
type cardRecord struct {
	ID     string         `json:"id"`
	Tier   int            `json:"tier"`
	Bonus  string         `json:"bonus"`
	Points int            `json:"points"`
	Cost   map[string]int `json:"cost"`
}

type nobleRecord struct {
	ID           string         `json:"id"`
	Points       int            `json:"points"`
	Requirements map[string]int `json:"requirements"`
}

type catalogFile struct {
	Cards  []cardRecord  `json:"cards"`
	Nobles []nobleRecord `json:"nobles"`
}

// Load decodes and validates a catalogue from JSON. Every card needs a
// unique id, a tier in range, a non-gold bonus, points 0-5 and a gold-free
// cost; every noble needs a gold-free requirement.
func Load(data []byte) (*Set, error) {
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode catalogue: %w", err)
	}

	set := &Set{}
	seen := make(map[string]bool, len(file.Cards)+len(file.Nobles))

	for _, rec := range file.Cards {
		if rec.ID == "" || seen[rec.ID] {
			return nil, fmt.Errorf("card id %q missing or duplicated", rec.ID)
		}
		seen[rec.ID] = true
		if rec.Tier < splendor.MinTier || rec.Tier > splendor.MaxTier {
			return nil, fmt.Errorf("card %s: invalid tier %d", rec.ID, rec.Tier)
		}
		bonus, err := splendor.ParseGem(rec.Bonus)
		if err != nil {
			return nil, fmt.Errorf("card %s: %w", rec.ID, err)
		}
		if bonus == splendor.Gold {
			return nil, fmt.Errorf("card %s: bonus cannot be gold", rec.ID)
		}
		if rec.Points < 0 || rec.Points > 5 {
			return nil, fmt.Errorf("card %s: invalid points %d", rec.ID, rec.Points)
		}
		cost, err := parseGems(rec.Cost)
		if err != nil {
			return nil, fmt.Errorf("card %s: %w", rec.ID, err)
		}
		if cost.Get(splendor.Gold) != 0 {
			return nil, fmt.Errorf("card %s: cost cannot include gold", rec.ID)
		}
		set.byTier[rec.Tier-splendor.MinTier] = append(set.byTier[rec.Tier-splendor.MinTier], splendor.Card{
			ID:     rec.ID,
			Tier:   rec.Tier,
			Bonus:  bonus,
			Points: rec.Points,
			Cost:   cost,
		})
	}

	for _, rec := range file.Nobles {
		if rec.ID == "" || seen[rec.ID] {
			return nil, fmt.Errorf("noble id %q missing or duplicated", rec.ID)
		}
		seen[rec.ID] = true
		req, err := parseGems(rec.Requirements)
		if err != nil {
			return nil, fmt.Errorf("noble %s: %w", rec.ID, err)
		}
		if req.Get(splendor.Gold) != 0 {
			return nil, fmt.Errorf("noble %s: requirement cannot include gold", rec.ID)
		}
		set.nobles = append(set.nobles, splendor.Noble{
			ID:          rec.ID,
			Points:      rec.Points,
			Requirement: req,
		})
	}

	return set, nil
}

func parseGems(m map[string]int) (splendor.Gems, error) {
	var gems splendor.Gems
	for name, count := range m {
		g, err := splendor.ParseGem(name)
		if err != nil {
			return splendor.Gems{}, err
		}
		if count < 0 {
			return splendor.Gems{}, fmt.Errorf("negative count for %s", name)
		}
		gems = gems.WithGem(g, count)
	}
	return gems, nil
}
