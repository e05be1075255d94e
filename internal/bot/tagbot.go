package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerhand/internal/deck"
	"github.com/lox/pokerhand/internal/game"
)

// TightBot plays premium starting hands aggressively and little else
type TightBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewTightBot creates a new TightBot instance
func NewTightBot(rng *rand.Rand, logger *log.Logger) *TightBot {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &TightBot{rng: rng, logger: logger}
}

func (t *TightBot) Decide(_ context.Context, view game.PlayerView) (game.Action, error) {
	var action game.Action
	var reason string

	switch {
	case view.Street == game.PreFlop && isPremium(view.Cards) && view.MaxBet > view.ToCall:
		// raise a quarter of the way from the call to all-in, at least one chip over the call
		lo := max(view.ToCall+1, view.MinBet)
		action = game.BetAction(lo + (view.MaxBet-lo)/4)
		reason = "premium hand"
	case view.Street != game.PreFlop && pairsBoard(view.Cards, view.Board):
		action = checkOrCall(view)
		reason = "made hand"
	case view.CanCheck:
		action = game.CheckAction()
		reason = "free card"
	case t.rng.Float64() < 0.3: // 30% call rate
		action = game.BetAction(view.MinBet)
		reason = "loose call"
	default:
		action = game.FoldAction()
		reason = "weak hand"
	}

	t.logger.Debug("Decided", "seat", view.Seat, "street", view.Street, "action", action, "reason", reason)
	return action, nil
}

// isPremium reports TT+, AK and AQ
func isPremium(cards []deck.Card) bool {
	if len(cards) != 2 {
		return false
	}
	hi, lo := cards[0].Rank, cards[1].Rank
	if lo > hi {
		hi, lo = lo, hi
	}
	if hi == lo {
		return hi >= deck.Ten
	}
	return hi == deck.Ace && lo >= deck.Queen
}

// pairsBoard reports a pocket pair or a hole card matching the board
func pairsBoard(cards, board []deck.Card) bool {
	if len(cards) == 2 && cards[0].Rank == cards[1].Rank {
		return true
	}
	for _, c := range cards {
		for _, b := range board {
			if c.Rank == b.Rank {
				return true
			}
		}
	}
	return false
}
