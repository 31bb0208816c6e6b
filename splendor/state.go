package splendor

import "fmt"

// Game constants from the published rules. Token supply scales with player
// count; gold supply and row sizes do not.
const (
	MinPlayers = 2
	MaxPlayers = 4

	DefaultWinningPoints = 15
	DefaultMaxTokens     = 10
	MaxReserved          = 3

	GoldTokens     = 5
	VisiblePerTier = 4
	NoSeat         = -1 // sentinel for "no player"
)

// tokensByPlayerCount is the per-color base token supply.
var tokensByPlayerCount = map[int]int{2: 4, 3: 5, 4: 7}

// Config holds the fixed parameters of a game.
type Config struct {
	NumPlayers    int
	WinningPoints int
	MaxTokens     int
}

// DefaultConfig returns the standard configuration for the given player count.
func DefaultConfig(numPlayers int) Config {
	return Config{
		NumPlayers:    numPlayers,
		WinningPoints: DefaultWinningPoints,
		MaxTokens:     DefaultMaxTokens,
	}
}

// BankSupply returns the initial bank for this configuration.
func (c Config) BankSupply() Gems {
	perColor := tokensByPlayerCount[c.NumPlayers]
	var bank Gems
	for _, g := range BaseGems() {
		bank = bank.WithGem(g, perColor)
	}
	return bank.WithGem(Gold, GoldTokens)
}

func (c Config) validate() error {
	if c.NumPlayers < MinPlayers || c.NumPlayers > MaxPlayers {
		return fmt.Errorf("%w: got %d, want %d-%d", ErrPlayerCount, c.NumPlayers, MinPlayers, MaxPlayers)
	}
	return nil
}

// GameState is a complete snapshot of one game. All mutation goes through
// the withX helpers, which return a new state and clone only the containers
// they touch; untouched slices are shared between snapshots. Callers may
// hold on to old states for replay or delta computation; they never change.
//
// Decks and visible rows are indexed tier-1.
type GameState struct {
	Config     Config
	Players    []Player
	CurrentIdx int // seat to move
	Bank       Gems

	Decks   [NumTiers][]Card // face-down, index 0 is the top of the deck
	Visible [NumTiers][]Card // face-up rows, at most VisiblePerTier each
	Nobles  []Noble          // shared pool, scanned in order

	Turn int // increments when play wraps back to seat 0

	FinalRound       bool
	FirstPlayerToWin int // seat that triggered the final round, or NoSeat
	GameOver         bool
	Winner           int // NoSeat until GameOver
}

// newGameState asserts the player-count invariant at construction; breaking
// it is a defect, not a game condition.
func newGameState(cfg Config, players []Player, bank Gems) GameState {
	if len(players) != cfg.NumPlayers {
		panic(fmt.Sprintf("expected %d players, got %d", cfg.NumPlayers, len(players)))
	}
	return GameState{
		Config:           cfg,
		Players:          players,
		Bank:             bank,
		FirstPlayerToWin: NoSeat,
		Winner:           NoSeat,
	}
}

// CurrentPlayer returns the player whose turn it is.
func (s GameState) CurrentPlayer() Player {
	return s.Players[s.CurrentIdx]
}

// NumPlayers returns the number of seats.
func (s GameState) NumPlayers() int {
	return len(s.Players)
}

// Deck returns the face-down deck for a tier.
func (s GameState) Deck(tier int) []Card {
	return s.Decks[tier-MinTier]
}

// VisibleRow returns the face-up row for a tier.
func (s GameState) VisibleRow(tier int) []Card {
	return s.Visible[tier-MinTier]
}

// VisibleCard finds a face-up card by ID, returning the card and its tier.
func (s GameState) VisibleCard(cardID string) (Card, int, bool) {
	for tier := MinTier; tier <= MaxTier; tier++ {
		for _, c := range s.VisibleRow(tier) {
			if c.ID == cardID {
				return c, tier, true
			}
		}
	}
	return Card{}, 0, false
}

func (s GameState) withPlayer(idx int, p Player) GameState {
	players := make([]Player, len(s.Players))
	copy(players, s.Players)
	players[idx] = p
	s.Players = players
	return s
}

func (s GameState) withCurrentPlayer(p Player) GameState {
	return s.withPlayer(s.CurrentIdx, p)
}

func (s GameState) withBank(bank Gems) GameState {
	s.Bank = bank
	return s
}

func (s GameState) withVisible(tier int, cards []Card) GameState {
	s.Visible[tier-MinTier] = cards
	return s
}

func (s GameState) withDeck(tier int, deck []Card) GameState {
	s.Decks[tier-MinTier] = deck
	return s
}

func (s GameState) withNobles(nobles []Noble) GameState {
	s.Nobles = nobles
	return s
}

// removeVisible drops one card from a tier's row without refilling.
func (s GameState) removeVisible(tier int, cardID string) GameState {
	row := s.VisibleRow(tier)
	kept := make([]Card, 0, len(row))
	for _, c := range row {
		if c.ID != cardID {
			kept = append(kept, c)
		}
	}
	return s.withVisible(tier, kept)
}

// refillVisible tops a tier's row back up to VisiblePerTier from its deck.
// A short row is left short when the deck runs out.
func (s GameState) refillVisible(tier int) GameState {
	row := s.VisibleRow(tier)
	deck := s.Deck(tier)
	if len(row) >= VisiblePerTier || len(deck) == 0 {
		return s
	}
	visible := make([]Card, len(row), VisiblePerTier)
	copy(visible, row)
	for len(visible) < VisiblePerTier && len(deck) > 0 {
		visible = append(visible, deck[0])
		deck = deck[1:]
	}
	return s.withVisible(tier, visible).withDeck(tier, deck)
}

// advanceTurn passes play to the next seat, bumping the turn counter when
// play wraps back to seat 0.
func (s GameState) advanceTurn() GameState {
	next := (s.CurrentIdx + 1) % s.NumPlayers()
	if next == 0 {
		s.Turn++
	}
	s.CurrentIdx = next
	return s
}

// checkWinner applies the two-phase end rule. Reaching the threshold only
// arms the final round and records the trigger seat; the game ends when the
// next turn advance would hand play back to that seat, so every player gets
// the same number of turns. Winner is highest points, then fewest owned
// cards, then lowest seat.
func (s GameState) checkWinner() GameState {
	current := s.CurrentPlayer()
	if !s.FinalRound && current.Points() >= s.Config.WinningPoints {
		s.FinalRound = true
		s.FirstPlayerToWin = s.CurrentIdx
	}

	if s.FinalRound {
		next := (s.CurrentIdx + 1) % s.NumPlayers()
		if next == s.FirstPlayerToWin {
			winner := 0
			bestPoints := -1
			bestCards := int(^uint(0) >> 1)
			for idx, p := range s.Players {
				pts, cards := p.Points(), len(p.Cards)
				if pts > bestPoints || (pts == bestPoints && cards < bestCards) {
					winner, bestPoints, bestCards = idx, pts, cards
				}
			}
			s.GameOver = true
			s.Winner = winner
		}
	}
	return s
}
