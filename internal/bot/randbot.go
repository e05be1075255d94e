package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerhand/internal/game"
)

// RandBot is a simple bot that makes uniform random legal actions
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) Decide(_ context.Context, view game.PlayerView) (game.Action, error) {
	legal := []game.ActionKind{game.Fold}
	if view.CanCheck {
		legal = append(legal, game.Check)
	}
	if view.MaxBet > 0 {
		legal = append(legal, game.Bet)
	}

	var action game.Action
	switch legal[r.rng.IntN(len(legal))] {
	case game.Fold:
		action = game.FoldAction()
	case game.Check:
		action = game.CheckAction()
	case game.Bet:
		// pick random amount between min and max
		lo := max(view.MinBet, 1)
		action = game.BetAction(lo + r.rng.IntN(view.MaxBet-lo+1))
	}

	r.logger.Debug("Decided", "seat", view.Seat, "street", view.Street, "action", action)
	return action, nil
}
