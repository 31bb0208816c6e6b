package splendor

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/gembots/splendor/internal/randutil"
)

// Engine drives one game. It owns the only RNG used for shuffling and the
// single "current state" reference, which is replaced atomically at the end
// of a successful Step; a failed Step leaves it untouched.
//
// Engines are not safe for concurrent use. Callers running many games in
// parallel create one engine per game; engines share nothing.
type Engine struct {
	config  Config
	catalog Catalog
	logger  *log.Logger
	rng     *rand.Rand
	state   *GameState // nil until Reset succeeds
}

// Option configures an engine at construction.
type Option func(*Engine)

// WithCatalog overrides the card and noble catalogue. The engine deals
// whatever the catalogue returns; quantities are never assumed.
func WithCatalog(c Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

// WithLogger attaches a logger for per-step debug output.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine validates the configuration and builds an engine. The game does
// not exist until Reset is called.
func NewEngine(cfg Config, catalog Catalog, opts ...Option) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		config:  cfg,
		catalog: catalog,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.catalog == nil {
		return nil, fmt.Errorf("engine needs a catalog")
	}
	return e, nil
}

// State returns the current snapshot. It is an error to call it before Reset.
func (e *Engine) State() (GameState, error) {
	if e.state == nil {
		return GameState{}, ErrNotInitialized
	}
	return *e.state, nil
}

// Reset starts a new game: empty players, a bank sized for the player
// count, seeded shuffles of each tier's cards into deck plus visible row,
// and numPlayers+1 nobles drawn from the shuffled noble pool. Two engines
// reset with the same seed produce identical layouts.
func (e *Engine) Reset(seed int64) (GameState, error) {
	e.rng = randutil.New(seed)

	players := make([]Player, e.config.NumPlayers)
	for i := range players {
		players[i] = NewPlayer(i)
	}

	state := newGameState(e.config, players, e.config.BankSupply())

	for tier := MinTier; tier <= MaxTier; tier++ {
		cards := e.catalog.CardsForTier(tier)
		deck := make([]Card, len(cards))
		copy(deck, cards)
		e.rng.Shuffle(len(deck), func(i, j int) {
			deck[i], deck[j] = deck[j], deck[i]
		})
		split := min(VisiblePerTier, len(deck))
		state = state.withVisible(tier, deck[:split]).withDeck(tier, deck[split:])
	}

	nobles := make([]Noble, len(e.catalog.Nobles()))
	copy(nobles, e.catalog.Nobles())
	e.rng.Shuffle(len(nobles), func(i, j int) {
		nobles[i], nobles[j] = nobles[j], nobles[i]
	})
	take := min(e.config.NumPlayers+1, len(nobles))
	state = state.withNobles(nobles[:take])

	e.state = &state
	e.logger.Debug("game reset",
		"players", e.config.NumPlayers, "seed", seed, "nobles", take)
	return state, nil
}

// Step validates and executes one action for the current player, then runs
// the noble check, the win check, and the turn advance, in that order. Any
// legality violation aborts the whole step: the returned error names the
// violation and the engine's state is unchanged.
func (e *Engine) Step(action Action) (GameState, error) {
	if e.state == nil {
		return GameState{}, ErrNotInitialized
	}
	if e.state.GameOver {
		return GameState{}, ErrGameOver
	}

	state, err := e.execute(*e.state, action)
	if err != nil {
		return GameState{}, err
	}

	state = checkNobleVisit(state)
	state = state.checkWinner()
	state = state.advanceTurn()

	e.state = &state
	e.logger.Debug("step", "turn", state.Turn, "action", action.String())
	return state, nil
}

func (e *Engine) execute(state GameState, action Action) (GameState, error) {
	switch action.Type {
	case TakeThreeDifferent:
		return e.executeTakeThree(state, action)
	case TakeTwoSame:
		return e.executeTakeTwo(state, action)
	case ReserveVisible:
		return e.executeReserveVisible(state, action)
	case ReserveFromDeck:
		return e.executeReserveFromDeck(state, action)
	case PurchaseVisible:
		return e.executePurchaseVisible(state, action)
	case PurchaseReserved:
		return e.executePurchaseReserved(state, action)
	}
	return GameState{}, fmt.Errorf("%w: unknown action type %d", ErrInvalidAction, action.Type)
}

func (e *Engine) executeTakeThree(state GameState, action Action) (GameState, error) {
	if len(action.Take) < 1 || len(action.Take) > 3 {
		return GameState{}, fmt.Errorf("%w: take-three wants 1-3 colors, got %d", ErrInvalidAction, len(action.Take))
	}

	var taken Gems
	for _, g := range action.Take {
		if g == Gold {
			return GameState{}, fmt.Errorf("%w: in take-three", ErrGoldNotTakeable)
		}
		if taken.Get(g) > 0 {
			return GameState{}, fmt.Errorf("%w: duplicate color %s in take-three", ErrInvalidAction, g)
		}
		if state.Bank.Get(g) < 1 {
			return GameState{}, fmt.Errorf("%w: no %s tokens left", ErrInsufficientBank, g)
		}
		taken = taken.AddGem(g, 1)
	}

	player := state.CurrentPlayer().addTokens(taken)
	bank := state.Bank.Sub(taken)

	player, bank, err := e.handleTokenReturn(player, bank, action.Return)
	if err != nil {
		return GameState{}, err
	}
	return state.withCurrentPlayer(player).withBank(bank), nil
}

func (e *Engine) executeTakeTwo(state GameState, action Action) (GameState, error) {
	if action.Gem == Gold {
		return GameState{}, fmt.Errorf("%w: in take-two", ErrGoldNotTakeable)
	}
	// The four-token floor keeps a single player from running a color so
	// low that take-two quietly disappears for everyone else.
	if state.Bank.Get(action.Gem) < 4 {
		return GameState{}, fmt.Errorf("%w: need at least 4 %s tokens to take 2", ErrInsufficientBank, action.Gem)
	}

	taken := Single(action.Gem, 2)
	player := state.CurrentPlayer().addTokens(taken)
	bank := state.Bank.Sub(taken)

	player, bank, err := e.handleTokenReturn(player, bank, action.Return)
	if err != nil {
		return GameState{}, err
	}
	return state.withCurrentPlayer(player).withBank(bank), nil
}

func (e *Engine) executeReserveVisible(state GameState, action Action) (GameState, error) {
	player := state.CurrentPlayer()
	if !player.CanReserve() {
		return GameState{}, ErrReserveLimit
	}

	card, tier, ok := state.VisibleCard(action.CardID)
	if !ok {
		return GameState{}, fmt.Errorf("%w: %s not in visible rows", ErrCardNotFound, action.CardID)
	}

	state = state.removeVisible(tier, card.ID).refillVisible(tier)
	return e.finishReserve(state, player, card, action.Return)
}

func (e *Engine) executeReserveFromDeck(state GameState, action Action) (GameState, error) {
	player := state.CurrentPlayer()
	if !player.CanReserve() {
		return GameState{}, ErrReserveLimit
	}
	if action.Tier < MinTier || action.Tier > MaxTier {
		return GameState{}, fmt.Errorf("%w: unknown tier %d", ErrInvalidAction, action.Tier)
	}

	deck := state.Deck(action.Tier)
	if len(deck) == 0 {
		return GameState{}, fmt.Errorf("%w: tier %d", ErrEmptyDeck, action.Tier)
	}

	card := deck[0]
	state = state.withDeck(action.Tier, deck[1:])
	return e.finishReserve(state, player, card, action.Return)
}

// finishReserve adds the card to the player's reserve, grants a gold token
// when the bank has one, and settles any over-cap return.
func (e *Engine) finishReserve(state GameState, player Player, card Card, returnGems []Gem) (GameState, error) {
	player = player.addReserved(card)

	bank := state.Bank
	if bank.Get(Gold) > 0 {
		player = player.addTokens(Single(Gold, 1))
		bank = bank.RemoveGem(Gold, 1)
	}

	player, bank, err := e.handleTokenReturn(player, bank, returnGems)
	if err != nil {
		return GameState{}, err
	}
	return state.withCurrentPlayer(player).withBank(bank), nil
}

func (e *Engine) executePurchaseVisible(state GameState, action Action) (GameState, error) {
	card, tier, ok := state.VisibleCard(action.CardID)
	if !ok {
		return GameState{}, fmt.Errorf("%w: %s not in visible rows", ErrCardNotFound, action.CardID)
	}

	player, bank, err := e.pay(state, card)
	if err != nil {
		return GameState{}, err
	}
	player = player.addCard(card)

	state = state.removeVisible(tier, card.ID).refillVisible(tier)
	return state.withCurrentPlayer(player).withBank(bank), nil
}

func (e *Engine) executePurchaseReserved(state GameState, action Action) (GameState, error) {
	player := state.CurrentPlayer()
	card, ok := player.ReservedCard(action.CardID)
	if !ok {
		return GameState{}, fmt.Errorf("%w: %s not in reserved cards", ErrCardNotFound, action.CardID)
	}

	player, bank, err := e.pay(state, card)
	if err != nil {
		return GameState{}, err
	}
	player = player.removeReserved(card.ID).addCard(card)

	return state.withCurrentPlayer(player).withBank(bank), nil
}

// pay checks affordability and moves the computed payment from the current
// player to the bank.
func (e *Engine) pay(state GameState, card Card) (Player, Gems, error) {
	player := state.CurrentPlayer()
	if !player.CanAfford(card.Cost) {
		return Player{}, Gems{}, fmt.Errorf("%w: %s costs %s", ErrCannotAfford, card.ID, card.Cost)
	}
	payment := player.PaymentFor(card.Cost)
	return player.removeTokens(payment), state.Bank.Add(payment), nil
}

// handleTokenReturn settles the token cap after a take or reserve. Returned
// colors move back to the bank one at a time until the player is at or
// under the cap; a return entry the player doesn't hold, or a return set
// that still leaves the player over the cap, fails the step.
func (e *Engine) handleTokenReturn(player Player, bank Gems, returnGems []Gem) (Player, Gems, error) {
	if player.TokenCount() <= e.config.MaxTokens {
		return player, bank, nil
	}

	for _, g := range returnGems {
		if player.TokenCount() <= e.config.MaxTokens {
			break
		}
		if player.Tokens.Get(g) < 1 {
			return Player{}, Gems{}, fmt.Errorf("%w: cannot return %s the player does not hold", ErrTokenLimit, g)
		}
		player = player.removeTokens(Single(g, 1))
		bank = bank.AddGem(g, 1)
	}

	if count := player.TokenCount(); count > e.config.MaxTokens {
		return Player{}, Gems{}, fmt.Errorf("%w: holding %d tokens, limit is %d", ErrTokenLimit, count, e.config.MaxTokens)
	}
	return player, bank, nil
}

// checkNobleVisit awards at most one noble per step: the first noble in
// pool order whose requirement the acting player's bonuses now meet. When
// several nobles qualify at once, pool order is the tie-break.
func checkNobleVisit(state GameState) GameState {
	bonuses := state.CurrentPlayer().Bonuses()
	for i, noble := range state.Nobles {
		if !noble.Qualifies(bonuses) {
			continue
		}
		remaining := make([]Noble, 0, len(state.Nobles)-1)
		remaining = append(remaining, state.Nobles[:i]...)
		remaining = append(remaining, state.Nobles[i+1:]...)
		player := state.CurrentPlayer().addNoble(noble)
		return state.withCurrentPlayer(player).withNobles(remaining)
	}
	return state
}
