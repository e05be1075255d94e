package game

import (
	"context"

	"github.com/lox/pokerhand/internal/deck"
)

// PlayerView is the read-only state an ActionProvider sees for the acting player
type PlayerView struct {
	HandID     string
	Seat       int
	Name       string
	Street     Street
	Cards      []deck.Card
	Board      []deck.Card
	Chips      int
	RoundBet   int
	CurrentBet int // amount every player must have in this street to stay in
	ToCall     int // CurrentBet - RoundBet
	MinBet     int // smallest legal bet: ToCall, or the whole stack if that is less
	MaxBet     int // the whole stack
	Pot        int
	CanCheck   bool
}

// ActionProvider supplies decisions for a player: a bot policy or a human prompt.
// Decide blocks until a decision is available.
type ActionProvider interface {
	Decide(ctx context.Context, view PlayerView) (Action, error)
}

// ActionProviderFunc adapts a function to ActionProvider
type ActionProviderFunc func(ctx context.Context, view PlayerView) (Action, error)

func (f ActionProviderFunc) Decide(ctx context.Context, view PlayerView) (Action, error) {
	return f(ctx, view)
}

// Rejecter is implemented by providers that want to be told why a decision was refused
// before they are asked again.
type Rejecter interface {
	Reject(view PlayerView, err error)
}

// SeatProviders routes each seat to its own provider, falling back to Default
type SeatProviders struct {
	Seats   map[int]ActionProvider
	Default ActionProvider
}

func (s SeatProviders) Decide(ctx context.Context, view PlayerView) (Action, error) {
	return s.provider(view.Seat).Decide(ctx, view)
}

func (s SeatProviders) Reject(view PlayerView, err error) {
	if r, ok := s.provider(view.Seat).(Rejecter); ok {
		r.Reject(view, err)
	}
}

func (s SeatProviders) provider(seat int) ActionProvider {
	if p, ok := s.Seats[seat]; ok && p != nil {
		return p
	}
	if s.Default != nil {
		return s.Default
	}
	return ActionProviderFunc(func(context.Context, PlayerView) (Action, error) {
		return FoldAction(), nil
	})
}
