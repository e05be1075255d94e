package game

import (
	"fmt"

	"github.com/lox/pokerhand/internal/deck"
)

// Player is a seat's state. The table owns players for the whole session; the hand
// mutates them only through MakeBet, Fold and CheckBet.
type Player struct {
	Seat       int // 1-based
	Name       string
	Chips      int
	RoundBet   int // chips put in on the current street
	Cards      []deck.Card
	KnockedOut bool
}

// NewPlayer creates a player
func NewPlayer(seat int, name string, chips int) *Player {
	return &Player{Seat: seat, Name: name, Chips: chips}
}

// MakeBet wagers amount, capped at the player's stack, and returns the chips actually
// wagered. Repeated calls on one street accumulate in RoundBet.
func (p *Player) MakeBet(amount int) int {
	wager := min(max(amount, 0), p.Chips)
	p.Chips -= wager
	p.RoundBet += wager
	return wager
}

// Fold discards the hole cards
func (p *Player) Fold() {
	p.Cards = nil
}

// CheckBet is a bet of nothing
func (p *Player) CheckBet() {
	p.MakeBet(0)
}

// HasCards reports whether the player still holds cards this hand
func (p *Player) HasCards() bool {
	return len(p.Cards) > 0
}

// IsAllIn reports whether the player has no chips behind
func (p *Player) IsAllIn() bool {
	return p.Chips == 0
}

func (p *Player) String() string {
	return fmt.Sprintf("%s with %d chips at seat %d", p.Name, p.Chips, p.Seat)
}

func (p *Player) resetForHand() {
	p.RoundBet = 0
	p.Cards = nil
}
