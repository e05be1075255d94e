package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerhand/internal/game"
)

// CallBot checks or calls every street and never raises
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a new CallBot instance
func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: logger}
}

func (c *CallBot) Decide(_ context.Context, view game.PlayerView) (game.Action, error) {
	action := checkOrCall(view)
	c.logger.Debug("Decided", "seat", view.Seat, "street", view.Street, "action", action)
	return action, nil
}
