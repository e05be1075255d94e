// Package session plays hand after hand on one table until a single player holds
// every chip or a hand limit is reached.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokerhand/internal/fileutil"
	"github.com/lox/pokerhand/internal/game"
	"github.com/lox/pokerhand/internal/statistics"
)

// Config holds everything a session needs
type Config struct {
	Table       *game.Table
	Provider    game.ActionProvider
	Evaluator   game.Evaluator
	RNG         *rand.Rand
	Logger      *log.Logger
	Bus         game.EventBus // optional, for displays
	Clock       quartz.Clock
	Hands       int    // stop after this many hands, 0 for no limit
	HistoryFile string // optional, every hand's transcript is appended here
}

// Summary describes a finished session
type Summary struct {
	Hands  int
	Winner int // seat holding every chip, 0 if the session stopped early
	Chips  []int
	Stats  *statistics.Statistics
}

// Session runs hands on one table
type Session struct {
	config  Config
	logger  *log.Logger
	bus     game.EventBus
	history *game.HandHistory
}

// New creates a session
func New(config Config) (*Session, error) {
	if config.Table == nil {
		return nil, errors.New("session needs a table")
	}
	if config.Provider == nil {
		return nil, errors.New("session needs an action provider")
	}
	if config.Hands < 0 {
		return nil, fmt.Errorf("hand limit must not be negative, got %d", config.Hands)
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}

	s := &Session{
		config: config,
		logger: config.Logger.WithPrefix("session"),
		bus:    config.Bus,
	}
	if s.bus == nil {
		s.bus = game.NewEventBus()
	}
	if config.HistoryFile != "" {
		s.history = game.NewHandHistory()
		s.bus.Subscribe(s.history)
	}
	return s, nil
}

// Run plays hands until one player is left, the hand limit is reached or ctx ends. A
// hand that fails is refunded and its error returned with the summary so far.
func (s *Session) Run(ctx context.Context) (*Summary, error) {
	if s.history != nil {
		defer s.bus.Unsubscribe(s.history)
	}

	table := s.config.Table
	summary := &Summary{Stats: &statistics.Statistics{}}
	defer func() {
		summary.Chips = chips(table)
		if live := table.LiveSeats(); len(live) == 1 {
			summary.Winner = live[0]
		}
		summary.Stats.AddSession(summary.Winner)
	}()

	for table.LiveCount() > 1 {
		if s.config.Hands > 0 && summary.Hands >= s.config.Hands {
			s.logger.Debug("Hand limit reached", "hands", summary.Hands)
			break
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		before := chips(table)
		result, err := s.playHand(ctx)
		if err != nil {
			summary.Stats.AddAborted()
			return summary, err
		}
		summary.Hands++

		after := chips(table)
		net := make([]int, len(after))
		for i := range after {
			net[i] = after[i] - before[i]
		}
		summary.Stats.Add(statistics.HandResult{
			Winner:   result.Winner,
			Showdown: result.Showdown,
			Pot:      result.Pot,
			Net:      net,
		})
		for _, seat := range result.Eliminated {
			s.logger.Info("Player knocked out", "seat", seat, "player", table.Player(seat).Name, "hand", summary.Hands)
		}
	}

	s.logger.Debug("Session complete", "hands", summary.Hands, "live", table.LiveCount())
	return summary, nil
}

func (s *Session) playHand(ctx context.Context) (*game.Result, error) {
	opts := []game.HandOption{
		game.WithLogger(s.config.Logger),
		game.WithEventBus(s.bus),
		game.WithClock(s.config.Clock),
	}
	if s.config.RNG != nil {
		opts = append(opts, game.WithRNG(s.config.RNG))
	}
	if s.config.Evaluator != nil {
		opts = append(opts, game.WithEvaluator(s.config.Evaluator))
	}

	h, err := game.NewHand(s.config.Table, opts...)
	if err != nil {
		return nil, err
	}
	result, playErr := h.Play(ctx, s.config.Provider)

	// the transcript of an aborted hand is kept too
	if err := s.flushHistory(); err != nil {
		return nil, errors.Join(playErr, err)
	}
	if playErr != nil {
		return nil, fmt.Errorf("hand %s: %w", h.ID, playErr)
	}
	return result, nil
}

func (s *Session) flushHistory() error {
	if s.history == nil {
		return nil
	}
	defer s.history.Reset()
	data := []byte(s.history.String() + "\n")
	if err := fileutil.AppendFileAtomic(s.config.HistoryFile, data, 0o644); err != nil {
		return fmt.Errorf("writing hand history: %w", err)
	}
	return nil
}

func chips(table *game.Table) []int {
	players := table.Players()
	out := make([]int, len(players))
	for i, p := range players {
		out[i] = p.Chips
	}
	return out
}
