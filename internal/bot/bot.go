package bot

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerhand/internal/game"
)

// Strategy names accepted by New
const (
	Call   = "call"
	Fold   = "fold"
	Random = "random"
	Tight  = "tight"
)

// Strategies lists every bot strategy
var Strategies = []string{Call, Fold, Random, Tight}

// New creates the bot for a named strategy. Random and tight bots draw from rng.
func New(strategy string, rng *rand.Rand, logger *log.Logger) (game.ActionProvider, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.WithPrefix(strategy + "-bot")

	switch strategy {
	case Call:
		return NewCallBot(logger), nil
	case Fold:
		return NewFoldBot(logger), nil
	case Random:
		return NewRandBot(rng, logger), nil
	case Tight:
		return NewTightBot(rng, logger), nil
	default:
		return nil, fmt.Errorf("unknown bot strategy %q", strategy)
	}
}

// checkOrCall returns a check when nothing is owed and a call otherwise
func checkOrCall(view game.PlayerView) game.Action {
	if view.CanCheck {
		return game.CheckAction()
	}
	return game.BetAction(view.MinBet)
}

// checkOrFold returns a check when nothing is owed and a fold otherwise
func checkOrFold(view game.PlayerView) game.Action {
	if view.CanCheck {
		return game.CheckAction()
	}
	return game.FoldAction()
}
