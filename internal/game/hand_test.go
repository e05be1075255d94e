package game

import (
	"context"
	"errors"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerhand/internal/deck"
	"github.com/lox/pokerhand/internal/randutil"
)

func TestNewHandRequiresTwoLivePlayers(t *testing.T) {
	table := newTestTableWithChips(t, 100, 100)
	table.Player(2).Chips = 0
	table.eliminateBusted()

	_, err := NewHand(table)
	assert.ErrorIs(t, err, ErrNotEnoughPlayers)
}

func TestNewHandPublishesStart(t *testing.T) {
	clock := quartz.NewMock(t)
	rec := &eventRecorder{}
	bus := NewEventBus()
	bus.Subscribe(rec)

	table := newTestTable(t, 3, 100)
	h, err := NewHand(table, WithClock(clock), WithEventBus(bus), WithRNG(randutil.New(1)))
	require.NoError(t, err)

	assert.NotEmpty(t, h.ID)
	assert.Equal(t, PreFlop, h.Street())
	assert.Equal(t, []int{2, 3, 1}, h.ActiveSeats(), "deal order starts left of the button")

	starts := rec.ofType(EventTypeHandStart)
	require.Len(t, starts, 1)
	start := starts[0].(HandStartEvent)
	assert.Equal(t, h.ID, start.HandID)
	assert.Equal(t, 1, start.Button)
	assert.Len(t, start.Seats, 3)
	assert.Equal(t, clock.Now(), start.Timestamp())
}

func TestDealHoleCards(t *testing.T) {
	table := newTestTable(t, 4, 100)
	h, err := NewHand(table, WithRNG(randutil.New(7)))
	require.NoError(t, err)

	require.NoError(t, h.DealHoleCards())
	assert.Equal(t, deck.Size-8, h.CardsRemaining())

	seen := make(map[deck.Card]bool)
	for _, p := range table.Players() {
		require.Len(t, p.Cards, 2)
		for _, c := range p.Cards {
			assert.False(t, seen[c], "card %s dealt twice", c)
			seen[c] = true
		}
	}

	assert.Error(t, h.DealHoleCards(), "dealing twice is refused")
}

func TestDealHoleCardsOneAtATime(t *testing.T) {
	table := newTestTable(t, 3, 100)
	stacked := deck.NewStackedDeck(deck.MustParseCards("2c 3c 4c 5c 6c 7c")...)
	h, err := NewHand(table, WithDeck(stacked))
	require.NoError(t, err)
	require.NoError(t, h.DealHoleCards())

	assert.Equal(t, deck.MustParseCards("4c 7c"), table.Player(1).Cards)
	assert.Equal(t, deck.MustParseCards("2c 5c"), table.Player(2).Cards)
	assert.Equal(t, deck.MustParseCards("3c 6c"), table.Player(3).Cards)
}

func TestCollectBlinds(t *testing.T) {
	table := newTestTable(t, 5, 500)
	h := startedHand(t, table)

	assert.Equal(t, 499, table.Player(2).Chips)
	assert.Equal(t, 1, table.Player(2).RoundBet)
	assert.Equal(t, 498, table.Player(3).Chips)
	assert.Equal(t, 2, table.Player(3).RoundBet)
	assert.Equal(t, 3, h.Pot())
	assert.Equal(t, 2, h.CurrentBet())
	assert.Equal(t, []int{4, 5, 1, 2, 3}, h.PendingSeats())

	seat, ok := h.ToAct()
	require.True(t, ok)
	assert.Equal(t, 4, seat)

	assert.Error(t, h.CollectBlinds(), "blinds are collected once")
}

func TestCollectBlindsShortStack(t *testing.T) {
	table := newTestTableWithChips(t, 100, 100, 1)
	h := startedHand(t, table)

	p := table.Player(3)
	assert.Equal(t, 0, p.Chips)
	assert.Equal(t, 1, p.RoundBet)
	assert.Equal(t, 1, h.CurrentBet(), "a short big blind sets the bet to what was posted")
	assert.Equal(t, 2, h.Pot())
}

func TestViewReportsBetLimits(t *testing.T) {
	table := newTestTableWithChips(t, 1, 100, 100)
	h := startedHand(t, table)

	// seat 2 posted the small blind; seat 1 is first to act with a single chip
	v := h.View(1)
	assert.Equal(t, 2, v.ToCall)
	assert.Equal(t, 1, v.MinBet)
	assert.Equal(t, 1, v.MaxBet)
	assert.False(t, v.CanCheck)
	assert.Len(t, v.Cards, 2)
	assert.Empty(t, v.Board)

	v = h.View(3)
	assert.True(t, v.CanCheck)
	assert.Equal(t, 0, v.ToCall)
}

func TestFoldToOnePlayer(t *testing.T) {
	table := newTestTable(t, 3, 100)
	rec := &eventRecorder{}
	bus := NewEventBus()
	bus.Subscribe(rec)

	h, err := NewHand(table, WithRNG(randutil.New(3)), WithEventBus(bus))
	require.NoError(t, err)

	provider := newScriptedProvider(map[int][]Action{
		1: {FoldAction()},
		2: {FoldAction()},
	})
	result, err := h.Play(context.Background(), provider)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Winner)
	assert.Equal(t, 3, result.Pot)
	assert.False(t, result.Showdown)
	assert.Equal(t, PreFlop, result.Street)
	assert.Empty(t, result.Board)
	assert.Equal(t, deck.Size-6, h.CardsRemaining(), "no community cards are dealt")
	assert.Empty(t, rec.ofType(EventTypeStreetChange))

	assert.Equal(t, 100, table.Player(1).Chips)
	assert.Equal(t, 99, table.Player(2).Chips)
	assert.Equal(t, 101, table.Player(3).Chips)
	assert.True(t, h.IsSettled())
	assert.Equal(t, Settled, h.Street())
}

func TestPlayToShowdownEvaluatesOnce(t *testing.T) {
	table := newTestTable(t, 3, 100)
	calls := 0
	var given []SeatHand
	var givenBoard []deck.Card
	eval := EvaluatorFunc(func(hands []SeatHand, board []deck.Card) (int, error) {
		calls++
		given = hands
		givenBoard = board
		return hands[len(hands)-1].Seat, nil
	})

	h, err := NewHand(table, WithRNG(randutil.New(11)), WithEvaluator(eval))
	require.NoError(t, err)

	result, err := h.Play(context.Background(), callingProvider{})
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	require.Len(t, given, 3)
	assert.Equal(t, 2, given[0].Seat)
	assert.Len(t, givenBoard, 5)

	assert.Equal(t, 1, result.Winner)
	assert.Equal(t, 6, result.Pot)
	assert.True(t, result.Showdown)
	assert.Equal(t, River, result.Street)
	assert.Len(t, result.Board, 5)
	assert.Equal(t, deck.Size-6-3-5, h.CardsRemaining(), "three burns and five board cards")
	assert.Equal(t, 300, table.TotalChips())
	assert.Equal(t, 104, table.Player(1).Chips)
}

func TestEndHandEliminatesAndRotates(t *testing.T) {
	table := newTestTableWithChips(t, 100, 100, 2)
	provider := newScriptedProvider(map[int][]Action{
		1: {BetAction(2), CheckAction(), CheckAction(), CheckAction()},
		2: {FoldAction()},
	})
	eval := EvaluatorFunc(func([]SeatHand, []deck.Card) (int, error) { return 1, nil })

	h, err := NewHand(table, WithRNG(randutil.New(5)), WithEvaluator(eval))
	require.NoError(t, err)

	result, err := h.Play(context.Background(), provider)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Winner)
	assert.Equal(t, 5, result.Pot)
	assert.Equal(t, []int{3}, result.Eliminated)
	assert.Equal(t, 103, table.Player(1).Chips)
	assert.Equal(t, 99, table.Player(2).Chips)
	assert.True(t, table.Player(3).KnockedOut)

	for _, v := range provider.views {
		assert.NotEqual(t, 3, v.Seat, "an all-in player is never asked to act")
	}

	assert.Equal(t, 2, table.Button())
	assert.Equal(t, 1, table.SmallBlindSeat())
	assert.Equal(t, 2, table.BigBlindSeat())

	for _, p := range table.Players() {
		assert.Empty(t, p.Cards)
		assert.Zero(t, p.RoundBet)
	}
}

func TestEndHandRejectsFoldedWinner(t *testing.T) {
	table := newTestTable(t, 3, 100)
	h := startedHand(t, table)
	require.NoError(t, h.Apply(FoldAction()))

	assert.Error(t, h.EndHand(1))
	assert.False(t, h.IsSettled())
}

func TestShowdownRules(t *testing.T) {
	table := newTestTable(t, 3, 100)
	h := startedHand(t, table, WithRNG(randutil.New(9)))
	ctx := context.Background()

	require.NoError(t, h.BettingRound(ctx, callingProvider{}))
	_, err := h.Showdown()
	assert.Error(t, err, "showdown before the river")

	for range 3 {
		require.NoError(t, h.NextStreet())
		require.NoError(t, h.BettingRound(ctx, callingProvider{}))
	}
	assert.Error(t, h.NextStreet(), "nothing follows the river")

	winner, err := h.Showdown()
	require.NoError(t, err)
	assert.Equal(t, 2, winner)

	_, err = h.Showdown()
	assert.Error(t, err, "the evaluator is consulted once")

	require.NoError(t, h.EndHand(winner))
	_, err = h.Showdown()
	assert.ErrorIs(t, err, ErrHandSettled)
	assert.ErrorIs(t, h.Apply(CheckAction()), ErrHandSettled)
	assert.ErrorIs(t, h.NextStreet(), ErrHandSettled)
}

func TestNextStreetResetsBets(t *testing.T) {
	table := newTestTable(t, 3, 100)
	h := startedHand(t, table, WithRNG(randutil.New(2)))
	require.NoError(t, h.BettingRound(context.Background(), callingProvider{}))

	require.NoError(t, h.NextStreet())
	assert.Equal(t, Flop, h.Street())
	assert.Len(t, h.Board(), 3)
	assert.Zero(t, h.CurrentBet())
	assert.Equal(t, 6, h.Pot())
	assert.Equal(t, []int{2, 3, 1}, h.PendingSeats(), "the button acts last after the flop")
	for _, p := range table.Players() {
		assert.Zero(t, p.RoundBet)
	}

	require.NoError(t, h.BettingRound(context.Background(), callingProvider{}))
	require.NoError(t, h.NextStreet())
	assert.Equal(t, Turn, h.Street())
	assert.Len(t, h.Board(), 4)
}

func TestPlayAbortsOnEmptyDeck(t *testing.T) {
	table := newTestTable(t, 3, 100)
	rec := &eventRecorder{}
	bus := NewEventBus()
	bus.Subscribe(rec)

	stacked := deck.NewStackedDeck(deck.MustParseCards("2c 3c 4c 5c 6c 7c")...)
	h, err := NewHand(table, WithDeck(stacked), WithEventBus(bus))
	require.NoError(t, err)

	result, err := h.Play(context.Background(), callingProvider{})
	require.Error(t, err)
	assert.Nil(t, result)

	var empty *deck.EmptyDeckError
	require.ErrorAs(t, err, &empty)

	for _, p := range table.Players() {
		assert.Equal(t, 100, p.Chips, "bets are returned")
		assert.Empty(t, p.Cards)
	}
	assert.Zero(t, h.Pot())
	assert.True(t, h.IsSettled())
	assert.Nil(t, h.Result())

	aborted := rec.ofType(EventTypeHandAborted)
	require.Len(t, aborted, 1)
	assert.Equal(t, 6, aborted[0].(HandAbortedEvent).Refunded)
	assert.Empty(t, rec.ofType(EventTypeHandEnd))
}

func TestPlayAbortsOnProviderError(t *testing.T) {
	table := newTestTable(t, 3, 100)
	boom := errors.New("connection lost")
	provider := ActionProviderFunc(func(context.Context, PlayerView) (Action, error) {
		return Action{}, boom
	})

	h, err := NewHand(table, WithRNG(randutil.New(1)))
	require.NoError(t, err)

	_, err = h.Play(context.Background(), provider)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "seat 1")
	assert.Equal(t, 300, table.TotalChips())
	assert.Equal(t, 100, table.Player(3).Chips)
}

func TestPlayAbortsOnCancel(t *testing.T) {
	table := newTestTable(t, 3, 100)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h, err := NewHand(table, WithRNG(randutil.New(1)))
	require.NoError(t, err)

	_, err = h.Play(ctx, callingProvider{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 300, table.TotalChips())
}

func TestPlayAbortsOnBadEvaluator(t *testing.T) {
	table := newTestTable(t, 2, 100)
	eval := EvaluatorFunc(func([]SeatHand, []deck.Card) (int, error) { return 9, nil })

	h, err := NewHand(table, WithRNG(randutil.New(1)), WithEvaluator(eval))
	require.NoError(t, err)

	_, err = h.Play(context.Background(), callingProvider{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seat 9")
	assert.Equal(t, 100, table.Player(1).Chips)
	assert.Equal(t, 100, table.Player(2).Chips)
}
