package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokerhand/internal/deck"
	"github.com/lox/pokerhand/internal/handid"
	"github.com/lox/pokerhand/internal/randutil"
)

// Hand runs one hand on a table. It owns the deck, the pot and the acting queue and
// moves PreFlop → Flop → Turn → River → Settled, settling early once only one player
// holds cards. Build a new Hand for every hand.
type Hand struct {
	ID string

	table         *Table
	deck          *deck.Deck
	evaluator     Evaluator
	logger        *log.Logger
	bus           EventBus
	clock         quartz.Clock
	maxRejections int

	street      Street
	pot         int
	currentBet  int
	board       []deck.Card
	active      []int // seats holding cards, in deal order
	queue       actionQueue
	contributed []int // chips put in this hand, indexed by seat-1
	startChips  int
	shown       []SeatHand

	dealt        bool
	blindsPosted bool
	evaluated    bool
	settled      bool
	result       *Result
}

// Result summarises a settled hand
type Result struct {
	HandID     string
	Winner     int
	WinnerName string
	Pot        int
	Board      []deck.Card
	Street     Street // street on which the hand was decided
	Showdown   bool
	Eliminated []int
}

// NewHand starts a hand on table with the current button and blind seats
func NewHand(table *Table, opts ...HandOption) (*Hand, error) {
	cfg := &handConfig{maxRejections: DefaultMaxRejections}
	for _, opt := range opts {
		opt(cfg)
	}

	if table.LiveCount() < 2 {
		return nil, ErrNotEnoughPlayers
	}
	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.bus == nil {
		cfg.bus = NewEventBus()
	}
	if cfg.evaluator == nil {
		cfg.evaluator = FirstSeatEvaluator{}
	}
	if cfg.deck == nil {
		if cfg.rng == nil {
			cfg.rng, _ = randutil.NewFromClock(cfg.clock)
		}
		cfg.deck = deck.NewDeck(cfg.rng)
	}
	if cfg.handID == "" {
		var src handid.RandSource
		if cfg.rng != nil {
			src = cfg.rng
		}
		cfg.handID = handid.NewGenerator(cfg.clock, src).Next()
	}

	h := &Hand{
		ID:            cfg.handID,
		table:         table,
		deck:          cfg.deck,
		evaluator:     cfg.evaluator,
		logger:        cfg.logger.With("hand", cfg.handID),
		bus:           cfg.bus,
		clock:         cfg.clock,
		maxRejections: cfg.maxRejections,
		street:        PreFlop,
		contributed:   make([]int, table.Seats()),
		startChips:    table.TotalChips(),
	}

	h.active = table.ActiveSeatsFrom(table.next(table.Button()))
	seats := make([]SeatInfo, 0, len(h.active))
	for _, seat := range table.LiveSeats() {
		p := table.Player(seat)
		p.resetForHand()
		seats = append(seats, SeatInfo{Seat: seat, Name: p.Name, Chips: p.Chips})
	}

	h.logger.Debug("Starting hand", "button", table.Button(), "players", len(h.active))
	h.bus.Publish(HandStartEvent{
		HandID:     h.ID,
		Button:     table.Button(),
		Seats:      seats,
		SmallBlind: table.SmallBlind(),
		BigBlind:   table.BigBlind(),
		timestamp:  h.clock.Now(),
	})
	return h, nil
}

// Table returns the table the hand is played on
func (h *Hand) Table() *Table { return h.table }

// Street returns the current street
func (h *Hand) Street() Street { return h.street }

// Pot returns the chips in the pot
func (h *Hand) Pot() int { return h.pot }

// CurrentBet returns the amount each player must have put in this street to stay in
func (h *Hand) CurrentBet() int { return h.currentBet }

// Board returns a copy of the community cards
func (h *Hand) Board() []deck.Card { return slices.Clone(h.board) }

// ActiveSeats returns the seats still holding cards
func (h *Hand) ActiveSeats() []int { return slices.Clone(h.active) }

// PendingSeats returns the seats still owed an action this street, next to act first
func (h *Hand) PendingSeats() []int { return h.queue.Seats() }

// CardsRemaining returns the number of undealt cards
func (h *Hand) CardsRemaining() int { return h.deck.Remaining() }

// TotalChips returns every stack plus the pot. It never changes during a hand.
func (h *Hand) TotalChips() int { return h.table.TotalChips() + h.pot }

// IsSettled reports whether the hand has ended
func (h *Hand) IsSettled() bool { return h.settled }

// Result returns the outcome once the pot has been awarded, or nil
func (h *Hand) Result() *Result { return h.result }

// DealHoleCards shuffles the deck and deals two cards to every player, one at a time,
// starting left of the button.
func (h *Hand) DealHoleCards() error {
	if h.settled {
		return ErrHandSettled
	}
	if h.dealt {
		return errors.New("hole cards already dealt")
	}
	if !h.deck.Shuffled() {
		h.deck.Shuffle()
	}
	for range 2 {
		for _, seat := range h.active {
			c, err := h.deck.Deal()
			if err != nil {
				return fmt.Errorf("dealing hole cards: %w", err)
			}
			p := h.table.Player(seat)
			p.Cards = append(p.Cards, c)
		}
	}
	h.dealt = true
	return nil
}

// CollectBlinds posts the small and big blinds and queues action from the seat after
// the big blind.
func (h *Hand) CollectBlinds() error {
	if h.settled {
		return ErrHandSettled
	}
	if h.blindsPosted || h.street != PreFlop {
		return errors.New("blinds already collected")
	}

	sbSeat, bbSeat := h.table.SmallBlindSeat(), h.table.BigBlindSeat()
	sb := h.wager(h.table.Player(sbSeat), h.table.SmallBlind())
	bb := h.wager(h.table.Player(bbSeat), h.table.BigBlind())
	h.currentBet = max(sb, bb)
	h.queue.Reset(h.orderFrom(h.table.next(bbSeat)))
	h.blindsPosted = true

	h.logger.Debug("Blinds posted", "small_blind_seat", sbSeat, "small_blind", sb,
		"big_blind_seat", bbSeat, "big_blind", bb)
	h.bus.Publish(BlindsEvent{
		HandID:         h.ID,
		SmallBlindSeat: sbSeat,
		SmallBlind:     sb,
		BigBlindSeat:   bbSeat,
		BigBlind:       bb,
		Pot:            h.pot,
		timestamp:      h.clock.Now(),
	})
	return nil
}

// ToAct returns the seat that must act next, if any
func (h *Hand) ToAct() (int, bool) {
	if h.settled || len(h.active) < 2 {
		return 0, false
	}
	return h.queue.Head()
}

// View returns what the player in seat may see when deciding
func (h *Hand) View(seat int) PlayerView {
	p := h.table.Player(seat)
	toCall := max(h.currentBet-p.RoundBet, 0)
	return PlayerView{
		HandID:     h.ID,
		Seat:       seat,
		Name:       p.Name,
		Street:     h.street,
		Cards:      slices.Clone(p.Cards),
		Board:      h.Board(),
		Chips:      p.Chips,
		RoundBet:   p.RoundBet,
		CurrentBet: h.currentBet,
		ToCall:     toCall,
		MinBet:     min(toCall, p.Chips),
		MaxBet:     p.Chips,
		Pot:        h.pot,
		CanCheck:   toCall == 0 || p.Chips == 0,
	}
}

// Apply applies a decision for the seat at the head of the queue. Illegal decisions
// return *IllegalActionError and change nothing.
func (h *Hand) Apply(a Action) error {
	if h.settled {
		return ErrHandSettled
	}
	seat, ok := h.ToAct()
	if !ok {
		return ErrNoActionPending
	}
	p := h.table.Player(seat)

	switch a.Kind {
	case Check:
		if p.RoundBet != h.currentBet && p.Chips > 0 {
			return &IllegalActionError{Seat: seat, Action: a,
				Reason: fmt.Sprintf("%d to call", h.currentBet-p.RoundBet)}
		}
		p.CheckBet()
		h.queue.Pop()
		h.publishAction(p, a, 0, false, false)

	case Bet:
		floor := min(h.currentBet-p.RoundBet, p.Chips)
		switch {
		case p.Chips == 0:
			return &IllegalActionError{Seat: seat, Action: a, Reason: "no chips left, check instead"}
		case a.Amount <= 0:
			return &IllegalActionError{Seat: seat, Action: a, Reason: "bet must be positive"}
		case a.Amount < floor:
			return &IllegalActionError{Seat: seat, Action: a,
				Reason: fmt.Sprintf("minimum bet is %d", floor)}
		}

		previous := h.currentBet
		wagered := h.wager(p, a.Amount)
		raised := p.RoundBet > previous
		if raised {
			// everyone else answers the new size
			h.currentBet = p.RoundBet
			h.queue.Reset(h.orderAfter(seat))
		} else {
			h.queue.Pop()
		}
		h.publishAction(p, a, wagered, raised, false)

	case Fold:
		h.fold(p)
		h.publishAction(p, a, 0, false, false)

	default:
		return &IllegalActionError{Seat: seat, Action: a, Reason: "unknown action"}
	}
	return nil
}

// ForceFold folds seat out of turn, e.g. after too many refused decisions
func (h *Hand) ForceFold(seat int) {
	if h.settled || !h.isActive(seat) {
		return
	}
	p := h.table.Player(seat)
	h.fold(p)
	h.logger.Warn("Forcing fold", "seat", seat, "player", p.Name)
	h.publishAction(p, FoldAction(), 0, false, true)
}

// BettingRound asks the provider for decisions until every remaining player has
// matched the current bet or only one player holds cards. Players with no chips are
// checked through. Refused decisions are reported and the same player is asked again.
// After DefaultMaxRejections refusals in a row (see WithMaxRejections) the engine folds
// the player instead of asking again, so a provider that never produces a legal action
// loses the hand rather than stalling it. WithMaxRejections(0) keeps asking forever.
func (h *Hand) BettingRound(ctx context.Context, provider ActionProvider) error {
	if h.settled {
		return ErrHandSettled
	}

	rejections := 0
	for {
		seat, ok := h.ToAct()
		if !ok {
			return nil
		}
		p := h.table.Player(seat)

		if p.IsAllIn() {
			if err := h.Apply(CheckAction()); err != nil {
				return err
			}
			continue
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		view := h.View(seat)
		action, err := provider.Decide(ctx, view)
		if err == nil {
			err = h.Apply(action)
		}
		if err == nil {
			rejections = 0
			continue
		}
		if !recoverable(err) {
			return fmt.Errorf("seat %d: %w", seat, err)
		}

		rejections++
		h.logger.Warn("Action rejected", "seat", seat, "player", p.Name, "error", err)
		h.bus.Publish(ActionRejectedEvent{
			HandID:    h.ID,
			Seat:      seat,
			Name:      p.Name,
			Street:    h.street,
			Reason:    err.Error(),
			timestamp: h.clock.Now(),
		})
		if r, ok := provider.(Rejecter); ok {
			r.Reject(view, err)
		}
		if h.maxRejections > 0 && rejections >= h.maxRejections {
			h.ForceFold(seat)
			rejections = 0
		}
	}
}

// NextStreet burns a card, deals the flop, turn or river and queues action from the
// seat after the button.
func (h *Hand) NextStreet() error {
	if h.settled {
		return ErrHandSettled
	}
	if len(h.active) < 2 {
		return errors.New("hand is already decided")
	}
	if h.street >= River {
		return fmt.Errorf("no street follows the %s", h.street)
	}

	next := h.street + 1
	if err := h.deck.Burn(); err != nil {
		return fmt.Errorf("burning before the %s: %w", next, err)
	}
	n := 1
	if next == Flop {
		n = 3
	}
	cards, err := h.deck.DealN(n)
	if err != nil {
		return fmt.Errorf("dealing the %s: %w", next, err)
	}

	for _, p := range h.table.players {
		p.RoundBet = 0
	}
	h.currentBet = 0
	h.board = append(h.board, cards...)
	h.street = next
	h.queue.Reset(h.orderFrom(h.table.next(h.table.Button())))

	h.logger.Debug("Dealt street", "street", next, "board", h.board)
	h.bus.Publish(StreetChangeEvent{
		HandID:    h.ID,
		Street:    next,
		Board:     h.Board(),
		Pot:       h.pot,
		timestamp: h.clock.Now(),
	})
	return nil
}

// Showdown returns the winning seat. A lone remaining player wins without a
// comparison; otherwise the evaluator is consulted, at most once per hand.
func (h *Hand) Showdown() (int, error) {
	if h.settled {
		return 0, ErrHandSettled
	}
	switch len(h.active) {
	case 0:
		return 0, errors.New("no player holds cards")
	case 1:
		return h.active[0], nil
	}
	if h.street != River {
		return 0, fmt.Errorf("showdown before the river (on the %s)", h.street)
	}
	if h.evaluated {
		return 0, errors.New("showdown already evaluated")
	}
	h.evaluated = true

	h.shown = make([]SeatHand, 0, len(h.active))
	for _, seat := range h.active {
		h.shown = append(h.shown, SeatHand{Seat: seat, Cards: slices.Clone(h.table.Player(seat).Cards)})
	}
	winner, err := h.evaluator.Evaluate(h.shown, h.Board())
	if err != nil {
		return 0, fmt.Errorf("evaluating showdown: %w", err)
	}
	if !h.isActive(winner) {
		return 0, fmt.Errorf("evaluator chose seat %d, which is not in the hand", winner)
	}
	return winner, nil
}

// EndHand awards the pot to winner, clears every player's cards and street bet,
// eliminates players left without chips and moves the button on.
func (h *Hand) EndHand(winner int) error {
	if h.settled {
		return ErrHandSettled
	}
	if !h.isActive(winner) {
		return fmt.Errorf("seat %d cannot win: not holding cards", winner)
	}

	w := h.table.Player(winner)
	pot := h.pot
	w.Chips += pot
	h.pot = 0
	for _, p := range h.table.players {
		p.resetForHand()
	}
	eliminated := h.table.eliminateBusted()
	h.table.SetButton(h.table.Button() + 1)

	h.result = &Result{
		HandID:     h.ID,
		Winner:     winner,
		WinnerName: w.Name,
		Pot:        pot,
		Board:      h.Board(),
		Street:     h.street,
		Showdown:   len(h.active) > 1,
		Eliminated: eliminated,
	}
	h.street = Settled
	h.settled = true

	if err := h.checkConservation(); err != nil {
		h.logger.Error("Chip conservation violation", "error", err)
		return err
	}

	h.logger.Debug("Hand complete", "winner", w.Name, "pot", pot, "showdown", h.result.Showdown)
	h.bus.Publish(HandEndEvent{
		HandID:     h.ID,
		Winner:     winner,
		WinnerName: w.Name,
		Pot:        pot,
		Showdown:   h.result.Showdown,
		Board:      h.Board(),
		Shown:      h.shown,
		Eliminated: eliminated,
		timestamp:  h.clock.Now(),
	})
	return nil
}

// Play runs the whole hand: deal, blinds, each street's betting, showdown and
// settlement. On a fatal error every bet is returned and the error is passed back.
func (h *Hand) Play(ctx context.Context, provider ActionProvider) (*Result, error) {
	if err := h.play(ctx, provider); err != nil {
		h.abort(err)
		return nil, err
	}
	return h.result, nil
}

func (h *Hand) play(ctx context.Context, provider ActionProvider) error {
	if err := h.DealHoleCards(); err != nil {
		return err
	}
	if err := h.CollectBlinds(); err != nil {
		return err
	}
	for {
		if err := h.BettingRound(ctx, provider); err != nil {
			return err
		}
		if len(h.active) < 2 || h.street == River {
			break
		}
		if err := h.NextStreet(); err != nil {
			return err
		}
	}
	winner, err := h.Showdown()
	if err != nil {
		return err
	}
	return h.EndHand(winner)
}

// abort returns every contribution to its owner and settles the hand without a winner
func (h *Hand) abort(cause error) {
	if h.settled {
		return
	}
	refunded := 0
	for i, amount := range h.contributed {
		h.table.players[i].Chips += amount
		refunded += amount
		h.contributed[i] = 0
	}
	h.pot -= refunded
	for _, p := range h.table.players {
		p.resetForHand()
	}
	h.street = Settled
	h.settled = true

	h.logger.Error("Hand aborted", "error", cause, "refunded", refunded)
	h.bus.Publish(HandAbortedEvent{
		HandID:    h.ID,
		Reason:    cause.Error(),
		Refunded:  refunded,
		timestamp: h.clock.Now(),
	})
}

func (h *Hand) wager(p *Player, amount int) int {
	w := p.MakeBet(amount)
	h.pot += w
	h.contributed[p.Seat-1] += w
	return w
}

func (h *Hand) fold(p *Player) {
	p.Fold()
	h.active = slices.DeleteFunc(h.active, func(s int) bool { return s == p.Seat })
	h.queue.Remove(p.Seat)
}

func (h *Hand) isActive(seat int) bool {
	return slices.Contains(h.active, seat)
}

// orderFrom returns the seats holding cards in circular order starting at seat
func (h *Hand) orderFrom(seat int) []int {
	var out []int
	for _, s := range h.table.ActiveSeatsFrom(seat) {
		if h.isActive(s) {
			out = append(out, s)
		}
	}
	return out
}

// orderAfter returns every other seat holding cards, starting left of seat
func (h *Hand) orderAfter(seat int) []int {
	return slices.DeleteFunc(h.orderFrom(h.table.next(seat)), func(s int) bool { return s == seat })
}

func (h *Hand) checkConservation() error {
	if actual := h.TotalChips(); actual != h.startChips {
		return &ChipConservationError{Expected: h.startChips, Actual: actual}
	}
	return nil
}

func (h *Hand) publishAction(p *Player, a Action, wagered int, raised, forced bool) {
	h.logger.Debug("Player action", "seat", p.Seat, "player", p.Name, "action", a,
		"wagered", wagered, "pot", h.pot)
	h.bus.Publish(PlayerActionEvent{
		HandID:     h.ID,
		Seat:       p.Seat,
		Name:       p.Name,
		Street:     h.street,
		Action:     a,
		Wagered:    wagered,
		Raise:      raised,
		AllIn:      a.Kind == Bet && p.Chips == 0,
		Forced:     forced,
		CurrentBet: h.currentBet,
		PotAfter:   h.pot,
		timestamp:  h.clock.Now(),
	})
}
