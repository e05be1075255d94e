package game

import (
	"errors"
	"fmt"
)

const (
	MinSeats = 2
	MaxSeats = 10
)

// TableConfig describes the seating and stakes of a table
type TableConfig struct {
	Seats         int
	Names         []string // optional, defaults to Player<seat>
	StartingChips int
	Chips         []int // optional per-seat stacks, overrides StartingChips
	SmallBlind    int
	BigBlind      int
	Button        int // initial button seat, defaults to 1
}

// Table owns the fixed seating and the rotating button and blind seats. Seats are
// numbered from 1 and never removed; eliminated players stay in their seat.
type Table struct {
	players    []*Player
	smallBlind int
	bigBlind   int

	button         int
	smallBlindSeat int
	bigBlindSeat   int
}

// NewTable validates cfg and seats the players
func NewTable(cfg TableConfig) (*Table, error) {
	if cfg.Seats < MinSeats || cfg.Seats > MaxSeats {
		return nil, fmt.Errorf("seats must be between %d and %d, got %d", MinSeats, MaxSeats, cfg.Seats)
	}
	if cfg.SmallBlind <= 0 {
		return nil, errors.New("small blind must be positive")
	}
	if cfg.BigBlind < cfg.SmallBlind {
		return nil, fmt.Errorf("big blind %d is smaller than small blind %d", cfg.BigBlind, cfg.SmallBlind)
	}
	if len(cfg.Names) > cfg.Seats {
		return nil, fmt.Errorf("%d names given for %d seats", len(cfg.Names), cfg.Seats)
	}
	if cfg.Chips != nil && len(cfg.Chips) != cfg.Seats {
		return nil, fmt.Errorf("%d chip counts given for %d seats", len(cfg.Chips), cfg.Seats)
	}

	t := &Table{
		players:    make([]*Player, cfg.Seats),
		smallBlind: cfg.SmallBlind,
		bigBlind:   cfg.BigBlind,
	}
	for i := range t.players {
		seat := i + 1
		name := fmt.Sprintf("Player%d", seat)
		if i < len(cfg.Names) && cfg.Names[i] != "" {
			name = cfg.Names[i]
		}
		chips := cfg.StartingChips
		if cfg.Chips != nil {
			chips = cfg.Chips[i]
		}
		if chips <= 0 {
			return nil, fmt.Errorf("seat %d must start with chips, got %d", seat, chips)
		}
		t.players[i] = NewPlayer(seat, name, chips)
	}

	button := cfg.Button
	if button == 0 {
		button = 1
	}
	t.SetButton(button)
	return t, nil
}

// SmallBlind returns the small blind size
func (t *Table) SmallBlind() int { return t.smallBlind }

// BigBlind returns the big blind size
func (t *Table) BigBlind() int { return t.bigBlind }

// Button returns the dealer button seat
func (t *Table) Button() int { return t.button }

// SmallBlindSeat returns the seat posting the small blind next hand
func (t *Table) SmallBlindSeat() int { return t.smallBlindSeat }

// BigBlindSeat returns the seat posting the big blind next hand
func (t *Table) BigBlindSeat() int { return t.bigBlindSeat }

// Seats returns the number of seats
func (t *Table) Seats() int { return len(t.players) }

// Player returns the player in seat, or nil if the seat does not exist
func (t *Table) Player(seat int) *Player {
	if seat < 1 || seat > len(t.players) {
		return nil
	}
	return t.players[seat-1]
}

// Players returns every seated player in seat order, eliminated or not
func (t *Table) Players() []*Player {
	out := make([]*Player, len(t.players))
	copy(out, t.players)
	return out
}

// ActiveSeatsFrom returns the non-eliminated seats in circular order, starting at seat
// itself and wrapping past the last seat.
func (t *Table) ActiveSeatsFrom(seat int) []int {
	n := len(t.players)
	start := t.wrap(seat) - 1
	seats := make([]int, 0, n)
	for i := 0; i < n; i++ {
		p := t.players[(start+i)%n]
		if !p.KnockedOut {
			seats = append(seats, p.Seat)
		}
	}
	return seats
}

// LiveSeats returns the non-eliminated seats in seat order
func (t *Table) LiveSeats() []int {
	return t.ActiveSeatsFrom(1)
}

// LiveCount returns the number of players not yet eliminated
func (t *Table) LiveCount() int {
	return len(t.LiveSeats())
}

// SetButton moves the button to seat, wrapping to seat 1 past the end of the table and
// skipping forward over eliminated seats. The blinds are the next two live seats after
// the button.
func (t *Table) SetButton(seat int) {
	live := t.ActiveSeatsFrom(seat)
	if len(live) == 0 {
		t.button = t.wrap(seat)
		return
	}
	t.button = live[0]

	order := t.ActiveSeatsFrom(t.next(t.button))
	t.smallBlindSeat = order[0]
	t.bigBlindSeat = order[0]
	if len(order) > 1 {
		t.bigBlindSeat = order[1]
	}
}

// TotalChips returns the sum of every stack at the table
func (t *Table) TotalChips() int {
	total := 0
	for _, p := range t.players {
		total += p.Chips
	}
	return total
}

// eliminateBusted marks every live player without chips as knocked out and returns
// their seats.
func (t *Table) eliminateBusted() []int {
	var out []int
	for _, p := range t.players {
		if !p.KnockedOut && p.Chips == 0 {
			p.KnockedOut = true
			out = append(out, p.Seat)
		}
	}
	return out
}

func (t *Table) wrap(seat int) int {
	n := len(t.players)
	return ((seat-1)%n+n)%n + 1
}

func (t *Table) next(seat int) int {
	return t.wrap(seat + 1)
}

func (t *Table) String() string {
	return fmt.Sprintf("%d seats, %d live, button %d, small blind %d, big blind %d",
		len(t.players), t.LiveCount(), t.button, t.smallBlindSeat, t.bigBlindSeat)
}
