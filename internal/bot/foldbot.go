package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerhand/internal/game"
)

// FoldBot is a simple bot that always folds (or checks when possible)
type FoldBot struct {
	logger *log.Logger
}

// NewFoldBot creates a new FoldBot instance
func NewFoldBot(logger *log.Logger) *FoldBot {
	return &FoldBot{logger: logger}
}

func (f *FoldBot) Decide(_ context.Context, view game.PlayerView) (game.Action, error) {
	action := checkOrFold(view)
	f.logger.Debug("Decided", "seat", view.Seat, "street", view.Street, "action", action)
	return action, nil
}
