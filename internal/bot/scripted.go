package bot

import (
	"context"
	"sync"

	"github.com/lox/pokerhand/internal/game"
)

// Scripted replays a fixed list of actions, then checks or folds. Useful for
// reproducing a hand from a history and for tests.
type Scripted struct {
	mu      sync.Mutex
	actions []game.Action
}

// NewScripted creates a bot that plays actions in order
func NewScripted(actions ...game.Action) *Scripted {
	return &Scripted{actions: actions}
}

func (s *Scripted) Decide(_ context.Context, view game.PlayerView) (game.Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.actions) == 0 {
		return checkOrFold(view), nil
	}
	next := s.actions[0]
	s.actions = s.actions[1:]
	return next, nil
}

// Remaining returns how many scripted actions have not been played
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.actions)
}
