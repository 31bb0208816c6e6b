package splendor

import (
	"errors"
	"reflect"
	"testing"
)

// stubCatalog is a small hand-built card set. Every tier-1 card costs a
// single diamond so purchases are easy to line up in tests.
type stubCatalog struct{}

func (stubCatalog) CardsForTier(tier int) []Card {
	switch tier {
	case 1:
		return []Card{
			card("a1", 1, Ruby, 0, Single(Diamond, 1)),
			card("a2", 1, Onyx, 0, Single(Diamond, 1)),
			card("a3", 1, Emerald, 0, Single(Diamond, 1)),
			card("a4", 1, Sapphire, 1, Single(Diamond, 1)),
			card("a5", 1, Diamond, 0, Single(Diamond, 1)),
			card("a6", 1, Ruby, 1, Single(Diamond, 1)),
		}
	case 2:
		return []Card{
			card("b1", 2, Ruby, 2, Single(Onyx, 3)),
			card("b2", 2, Onyx, 2, Single(Ruby, 3)),
			card("b3", 2, Emerald, 1, Single(Sapphire, 3)),
			card("b4", 2, Sapphire, 3, Single(Emerald, 3)),
			card("b5", 2, Diamond, 2, Single(Ruby, 3)),
		}
	case 3:
		return []Card{
			card("c1", 3, Ruby, 4, Single(Onyx, 5)),
			card("c2", 3, Onyx, 4, Single(Ruby, 5)),
			card("c3", 3, Emerald, 5, Single(Diamond, 5)),
			card("c4", 3, Sapphire, 3, Single(Emerald, 5)),
			card("c5", 3, Diamond, 4, Single(Sapphire, 5)),
		}
	}
	return nil
}

func (stubCatalog) Nobles() []Noble {
	return []Noble{
		{ID: "n1", Points: 3, Requirement: Single(Ruby, 3)},
		{ID: "n2", Points: 3, Requirement: Single(Onyx, 3)},
		{ID: "n3", Points: 3, Requirement: NewGems(GemCount{Ruby, 2}, GemCount{Emerald, 2})},
		{ID: "n4", Points: 3, Requirement: Single(Diamond, 3)},
	}
}

// must unwraps an action constructor whose inputs are fixed in the test.
func must(a Action, err error) Action {
	if err != nil {
		panic(err)
	}
	return a
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(2), stubCatalog{})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if _, err := e.Reset(1); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return e
}

// patchState applies a state edit directly, bypassing Step. Tests use it to
// stage the exact position an assertion needs.
func patchState(e *Engine, f func(GameState) GameState) {
	next := f(*e.state)
	e.state = &next
}

func TestNewEngineValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewEngine(DefaultConfig(5), stubCatalog{}); !errors.Is(err, ErrPlayerCount) {
		t.Errorf("5 players: err = %v, want ErrPlayerCount", err)
	}
	if _, err := NewEngine(DefaultConfig(2), nil); err == nil {
		t.Error("nil catalog should be rejected")
	}
}

func TestStateBeforeReset(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(DefaultConfig(2), stubCatalog{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.State(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("State before Reset: err = %v, want ErrNotInitialized", err)
	}
	if _, err := e.Step(must(TakeTwo(Ruby))); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Step before Reset: err = %v, want ErrNotInitialized", err)
	}
}

func TestResetLayout(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	state, err := e.State()
	if err != nil {
		t.Fatal(err)
	}

	if got := state.Bank; !reflect.DeepEqual(got, DefaultConfig(2).BankSupply()) {
		t.Errorf("bank = %s, want the two-player supply", got)
	}
	for tier := MinTier; tier <= MaxTier; tier++ {
		row, deck := state.VisibleRow(tier), state.Deck(tier)
		if len(row) != VisiblePerTier {
			t.Errorf("tier %d row has %d cards, want %d", tier, len(row), VisiblePerTier)
		}
		if len(row)+len(deck) != len(stubCatalog{}.CardsForTier(tier)) {
			t.Errorf("tier %d lost cards in the deal", tier)
		}
	}
	if len(state.Nobles) != 3 {
		t.Errorf("nobles = %d, want numPlayers+1 = 3", len(state.Nobles))
	}
	for _, p := range state.Players {
		if p.TokenCount() != 0 || len(p.Cards) != 0 || len(p.Reserved) != 0 {
			t.Errorf("player %d not empty after reset", p.ID)
		}
	}
}

func TestResetDeterminism(t *testing.T) {
	t.Parallel()

	e1, e2 := newTestEngine(t), newTestEngine(t)
	s1, _ := e1.State()
	s2, _ := e2.State()

	if !reflect.DeepEqual(s1.Visible, s2.Visible) {
		t.Error("same seed produced different visible rows")
	}
	if !reflect.DeepEqual(s1.Decks, s2.Decks) {
		t.Error("same seed produced different deck order")
	}
	if !reflect.DeepEqual(s1.Nobles, s2.Nobles) {
		t.Error("same seed produced different nobles")
	}

	e3, _ := NewEngine(DefaultConfig(2), stubCatalog{})
	if _, err := e3.Reset(999); err != nil {
		t.Fatal(err)
	}
	s3, _ := e3.State()
	if reflect.DeepEqual(s1.Visible, s3.Visible) && reflect.DeepEqual(s1.Decks, s3.Decks) {
		t.Error("different seeds produced identical layouts")
	}
}

func TestStepTakeThree(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	before, _ := e.State()

	action, err := TakeThree([]Gem{Ruby, Emerald, Onyx})
	if err != nil {
		t.Fatal(err)
	}
	state, err := e.Step(action)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}

	p := state.Players[0]
	want := NewGems(GemCount{Ruby, 1}, GemCount{Emerald, 1}, GemCount{Onyx, 1})
	if p.Tokens != want {
		t.Errorf("tokens = %s, want %s", p.Tokens, want)
	}
	if got := state.Bank; got != before.Bank.Sub(want) {
		t.Errorf("bank = %s, expected the taken tokens removed", got)
	}
	if state.CurrentIdx != 1 {
		t.Errorf("play should pass to seat 1, at %d", state.CurrentIdx)
	}
}

func TestStepTakeThreeRejections(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		action Action
		want   error
	}{
		{"gold", Action{Type: TakeThreeDifferent, Take: []Gem{Gold, Ruby}}, ErrGoldNotTakeable},
		{"duplicate", Action{Type: TakeThreeDifferent, Take: []Gem{Ruby, Ruby}}, ErrInvalidAction},
		{"empty", Action{Type: TakeThreeDifferent}, ErrInvalidAction},
		{"four colors", Action{Type: TakeThreeDifferent, Take: []Gem{Ruby, Onyx, Emerald, Diamond}}, ErrInvalidAction},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			e := newTestEngine(t)
			before, _ := e.State()
			if _, err := e.Step(tc.action); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			after, _ := e.State()
			if !reflect.DeepEqual(before, after) {
				t.Error("failed step changed the state")
			}
		})
	}
}

func TestStepTakeThreeEmptyColor(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	patchState(e, func(s GameState) GameState {
		return s.withBank(s.Bank.WithGem(Ruby, 0))
	})

	action, _ := TakeThree([]Gem{Ruby, Emerald})
	if _, err := e.Step(action); !errors.Is(err, ErrInsufficientBank) {
		t.Errorf("err = %v, want ErrInsufficientBank", err)
	}
}

func TestStepTakeTwo(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	state, err := e.Step(must(TakeTwo(Sapphire)))
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := state.Players[0].Tokens.Get(Sapphire); got != 2 {
		t.Errorf("sapphires = %d, want 2", got)
	}
	if got := state.Bank.Get(Sapphire); got != 2 {
		t.Errorf("bank sapphires = %d, want 2", got)
	}
}

func TestStepTakeTwoNeedsFourInBank(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	patchState(e, func(s GameState) GameState {
		return s.withBank(s.Bank.WithGem(Sapphire, 3))
	})
	if _, err := e.Step(must(TakeTwo(Sapphire))); !errors.Is(err, ErrInsufficientBank) {
		t.Errorf("err = %v, want ErrInsufficientBank", err)
	}
	if _, err := e.Step(Action{Type: TakeTwoSame, Gem: Gold}); !errors.Is(err, ErrGoldNotTakeable) {
		t.Errorf("gold take-two: err = %v, want ErrGoldNotTakeable", err)
	}
}

func TestStepReserveVisible(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	before, _ := e.State()
	target := before.VisibleRow(1)[0]
	replacement := before.Deck(1)[0]

	state, err := e.Step(must(Reserve(target.ID)))
	if err != nil {
		t.Fatalf("Step: %v", err)
	}

	p := state.Players[0]
	if len(p.Reserved) != 1 || p.Reserved[0].ID != target.ID {
		t.Fatalf("reserved = %v, want [%s]", p.Reserved, target.ID)
	}
	if got := p.Tokens.Get(Gold); got != 1 {
		t.Errorf("gold = %d, want 1", got)
	}
	if got := state.Bank.Get(Gold); got != GoldTokens-1 {
		t.Errorf("bank gold = %d, want %d", got, GoldTokens-1)
	}

	row := state.VisibleRow(1)
	if len(row) != VisiblePerTier {
		t.Fatalf("row not refilled, has %d", len(row))
	}
	if _, _, ok := state.VisibleCard(target.ID); ok {
		t.Error("reserved card still visible")
	}
	if row[VisiblePerTier-1].ID != replacement.ID {
		t.Errorf("refill drew %s, want top of deck %s", row[VisiblePerTier-1].ID, replacement.ID)
	}
}

func TestStepReserveNoGoldLeft(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	patchState(e, func(s GameState) GameState {
		return s.withBank(s.Bank.WithGem(Gold, 0))
	})
	target, _ := e.State()

	state, err := e.Step(must(Reserve(target.VisibleRow(1)[0].ID)))
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := state.Players[0].Tokens.Get(Gold); got != 0 {
		t.Errorf("gold = %d, want 0 when the bank is out", got)
	}
}

func TestStepReserveLimit(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	patchState(e, func(s GameState) GameState {
		p := s.CurrentPlayer().
			addReserved(card("r1", 1, Ruby, 0, Gems{})).
			addReserved(card("r2", 1, Ruby, 0, Gems{})).
			addReserved(card("r3", 1, Ruby, 0, Gems{}))
		return s.withCurrentPlayer(p)
	})

	state, _ := e.State()
	if _, err := e.Step(must(Reserve(state.VisibleRow(1)[0].ID))); !errors.Is(err, ErrReserveLimit) {
		t.Errorf("err = %v, want ErrReserveLimit", err)
	}
	if _, err := e.Step(must(ReserveBlind(1))); !errors.Is(err, ErrReserveLimit) {
		t.Errorf("blind: err = %v, want ErrReserveLimit", err)
	}
}

func TestStepReserveFromDeck(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	before, _ := e.State()
	top := before.Deck(2)[0]

	state, err := e.Step(must(ReserveBlind(2)))
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	p := state.Players[0]
	if len(p.Reserved) != 1 || p.Reserved[0].ID != top.ID {
		t.Fatalf("reserved = %v, want top of tier-2 deck %s", p.Reserved, top.ID)
	}
	if len(state.Deck(2)) != len(before.Deck(2))-1 {
		t.Error("deck not consumed")
	}
}

func TestStepReserveFromEmptyDeck(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	patchState(e, func(s GameState) GameState {
		return s.withDeck(3, nil)
	})
	if _, err := e.Step(must(ReserveBlind(3))); !errors.Is(err, ErrEmptyDeck) {
		t.Errorf("err = %v, want ErrEmptyDeck", err)
	}
}

func TestStepPurchaseVisible(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	patchState(e, func(s GameState) GameState {
		p := s.CurrentPlayer().addTokens(Single(Diamond, 1))
		return s.withCurrentPlayer(p).withBank(s.Bank.RemoveGem(Diamond, 1))
	})
	before, _ := e.State()
	target := before.VisibleRow(1)[0] // every tier-1 stub card costs 1 diamond

	state, err := e.Step(must(Purchase(target.ID)))
	if err != nil {
		t.Fatalf("Step: %v", err)
	}

	p := state.Players[0]
	if len(p.Cards) != 1 || p.Cards[0].ID != target.ID {
		t.Fatalf("cards = %v, want [%s]", p.Cards, target.ID)
	}
	if p.TokenCount() != 0 {
		t.Errorf("payment not taken, holding %s", p.Tokens)
	}
	if got := state.Bank.Get(Diamond); got != 4 {
		t.Errorf("bank diamonds = %d, payment should return to the bank", got)
	}
	if got := p.Bonuses().Get(target.Bonus); got != 1 {
		t.Errorf("bonus %s = %d, want 1", target.Bonus, got)
	}
	if len(state.VisibleRow(1)) != VisiblePerTier {
		t.Error("row not refilled after purchase")
	}
}

func TestStepPurchaseWithGold(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	patchState(e, func(s GameState) GameState {
		p := s.CurrentPlayer().addTokens(NewGems(GemCount{Onyx, 2}, GemCount{Gold, 1}))
		row := []Card{card("b9", 2, Ruby, 2, Single(Onyx, 3))}
		return s.withCurrentPlayer(p).withVisible(2, row).withDeck(2, nil)
	})

	state, err := e.Step(must(Purchase("b9")))
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	p := state.Players[0]
	if p.TokenCount() != 0 {
		t.Errorf("gold should cover the shortfall, still holding %s", p.Tokens)
	}
	if got := state.Bank.Get(Gold); got != GoldTokens+1 {
		t.Errorf("bank gold = %d, the spent gold should come back", got)
	}
}

func TestStepPurchaseUnaffordable(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	before, _ := e.State()
	target := before.VisibleRow(3)[0]

	if _, err := e.Step(must(Purchase(target.ID))); !errors.Is(err, ErrCannotAfford) {
		t.Fatalf("err = %v, want ErrCannotAfford", err)
	}
	after, _ := e.State()
	if !reflect.DeepEqual(before, after) {
		t.Error("failed purchase changed the state")
	}
}

func TestStepPurchaseUnknownCard(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	if _, err := e.Step(must(Purchase("zz"))); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("visible: err = %v, want ErrCardNotFound", err)
	}
	if _, err := e.Step(must(PurchaseFromReserve("zz"))); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("reserved: err = %v, want ErrCardNotFound", err)
	}
}

func TestStepPurchaseReserved(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	patchState(e, func(s GameState) GameState {
		p := s.CurrentPlayer().
			addReserved(card("r1", 1, Ruby, 1, Single(Diamond, 1))).
			addTokens(Single(Diamond, 1))
		return s.withCurrentPlayer(p)
	})

	state, err := e.Step(must(PurchaseFromReserve("r1")))
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	p := state.Players[0]
	if len(p.Reserved) != 0 {
		t.Error("card should leave the reserve when bought")
	}
	if len(p.Cards) != 1 || p.Cards[0].ID != "r1" {
		t.Errorf("cards = %v, want [r1]", p.Cards)
	}
	if p.Points() != 1 {
		t.Errorf("points = %d, want 1", p.Points())
	}
}

func TestStepTokenReturn(t *testing.T) {
	t.Parallel()

	load := func(e *Engine) {
		patchState(e, func(s GameState) GameState {
			p := s.CurrentPlayer().addTokens(NewGems(GemCount{Diamond, 4}, GemCount{Sapphire, 4}))
			return s.withCurrentPlayer(p)
		})
	}

	t.Run("declared return settles the cap", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t)
		load(e)
		action, _ := TakeThree([]Gem{Ruby, Emerald, Onyx}, Diamond)
		state, err := e.Step(action)
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		p := state.Players[0]
		if p.TokenCount() != DefaultMaxTokens {
			t.Errorf("tokens = %d, want %d", p.TokenCount(), DefaultMaxTokens)
		}
		if got := p.Tokens.Get(Diamond); got != 3 {
			t.Errorf("diamonds = %d, one should be returned", got)
		}
		if got := state.Bank.Get(Diamond); got != 5 {
			t.Errorf("bank diamonds = %d, want 5 after the return", got)
		}
	})

	t.Run("missing return fails the step", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t)
		load(e)
		before, _ := e.State()
		action, _ := TakeThree([]Gem{Ruby, Emerald, Onyx})
		if _, err := e.Step(action); !errors.Is(err, ErrTokenLimit) {
			t.Fatalf("err = %v, want ErrTokenLimit", err)
		}
		after, _ := e.State()
		if !reflect.DeepEqual(before, after) {
			t.Error("failed step changed the state")
		}
	})

	t.Run("returning a color not held fails", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t)
		load(e)
		action, _ := TakeThree([]Gem{Ruby, Emerald, Onyx}, Gold)
		if _, err := e.Step(action); !errors.Is(err, ErrTokenLimit) {
			t.Errorf("err = %v, want ErrTokenLimit", err)
		}
	})

	t.Run("surplus returns stop at the cap", func(t *testing.T) {
		t.Parallel()

		e := newTestEngine(t)
		load(e)
		action, _ := TakeThree([]Gem{Ruby, Emerald, Onyx}, Diamond, Diamond, Diamond)
		state, err := e.Step(action)
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		if got := state.Players[0].TokenCount(); got != DefaultMaxTokens {
			t.Errorf("tokens = %d, want exactly the cap", got)
		}
	})
}

func TestStepNobleVisit(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	patchState(e, func(s GameState) GameState {
		p := s.CurrentPlayer().
			addCard(card("x1", 1, Ruby, 0, Gems{})).
			addCard(card("x2", 1, Ruby, 0, Gems{})).
			addCard(card("x3", 1, Ruby, 0, Gems{}))
		// Two qualifying nobles in the pool; only the first may visit.
		nobles := []Noble{
			{ID: "q1", Points: 3, Requirement: Single(Ruby, 3)},
			{ID: "q2", Points: 3, Requirement: Single(Ruby, 2)},
		}
		return s.withCurrentPlayer(p).withNobles(nobles)
	})

	state, err := e.Step(must(TakeTwo(Sapphire)))
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	p := state.Players[0]
	if len(p.Nobles) != 1 || p.Nobles[0].ID != "q1" {
		t.Fatalf("nobles = %v, want exactly [q1]", p.Nobles)
	}
	if p.Points() != 3 {
		t.Errorf("points = %d, want 3 from the noble", p.Points())
	}
	if len(state.Nobles) != 1 || state.Nobles[0].ID != "q2" {
		t.Errorf("pool = %v, want [q2] left", state.Nobles)
	}
}

func TestStepAfterGameOver(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	patchState(e, func(s GameState) GameState {
		s.GameOver = true
		s.Winner = 0
		return s
	})
	if _, err := e.Step(must(TakeTwo(Ruby))); !errors.Is(err, ErrGameOver) {
		t.Errorf("err = %v, want ErrGameOver", err)
	}
}

func TestStepEndsFinalRound(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t)
	patchState(e, func(s GameState) GameState {
		// Seat 0 is one big purchase away from the threshold.
		p := s.CurrentPlayer().
			addCard(card("p1", 3, Ruby, 5, Gems{})).
			addCard(card("p2", 3, Ruby, 5, Gems{})).
			addCard(card("p3", 3, Ruby, 4, Gems{})).
			addTokens(Single(Diamond, 5))
		row := []Card{card("big", 3, Onyx, 1, Single(Diamond, 5))}
		return s.withCurrentPlayer(p).withVisible(3, row).withDeck(3, nil).withNobles(nil)
	})

	state, err := e.Step(must(Purchase("big")))
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if state.GameOver {
		t.Fatal("seat 1 must still get its final turn")
	}
	if !state.FinalRound || state.FirstPlayerToWin != 0 {
		t.Fatalf("final round not armed for seat 0: %+v", state)
	}

	state, err = e.Step(must(TakeTwo(Ruby)))
	if err != nil {
		t.Fatalf("final turn: %v", err)
	}
	if !state.GameOver {
		t.Fatal("game should end after the last final-round turn")
	}
	if state.Winner != 0 {
		t.Errorf("winner = %d, want 0", state.Winner)
	}
	if got := state.Players[0].Points(); got < DefaultWinningPoints {
		t.Errorf("winner has %d points, want >= %d", got, DefaultWinningPoints)
	}
}
