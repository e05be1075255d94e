package main

import (
	"context"
	"fmt"
	"io"
	rand "math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokerhand/internal/bot"
	"github.com/lox/pokerhand/internal/config"
	"github.com/lox/pokerhand/internal/console"
	"github.com/lox/pokerhand/internal/display"
	"github.com/lox/pokerhand/internal/evaluator"
	"github.com/lox/pokerhand/internal/game"
	"github.com/lox/pokerhand/internal/randutil"
	"github.com/lox/pokerhand/internal/session"
)

// PlayCmd plays a session at the console
type PlayCmd struct {
	Hands int    `help:"Stop after this many hands, overrides the config file"`
	Seed  *int64 `help:"Deterministic RNG seed, overrides the config file"`
	Plain bool   `help:"Disable colours"`
}

func (c *PlayCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if c.Hands > 0 {
		cfg.Hands = c.Hands
	}
	if c.Seed != nil {
		cfg.Seed = *c.Seed
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", cli.Config, err)
	}

	logger := newLogger(cfg.LogLevel, cli.Debug)
	clock := quartz.NewReal()

	var rng *rand.Rand
	seed := cfg.Seed
	if seed == 0 {
		rng, seed = randutil.NewFromClock(clock)
	} else {
		rng = randutil.New(seed)
	}
	logger.Info("Starting session", "seed", seed, "hands", cfg.Hands, "evaluator", cfg.Evaluator)

	table, err := game.NewTable(cfg.TableConfig())
	if err != nil {
		return err
	}

	styles := display.NewStyles(display.NewRenderer(os.Stdout, c.Plain))
	provider, err := seatProviders(cfg, table, styles, seed, logger)
	if err != nil {
		return err
	}
	for _, p := range provider.Seats {
		if closer, ok := p.(io.Closer); ok {
			defer closer.Close()
		}
	}

	bus := game.NewEventBus()
	bus.Subscribe(display.NewPrinter(os.Stdout, styles))

	s, err := session.New(session.Config{
		Table:       table,
		Provider:    provider,
		Evaluator:   newEvaluator(cfg.Evaluator),
		RNG:         rng,
		Logger:      logger,
		Bus:         bus,
		Clock:       clock,
		Hands:       cfg.Hands,
		HistoryFile: cfg.HistoryFile,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := s.Run(ctx)
	if summary != nil {
		printSummary(table, summary)
	}
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// seatProviders routes the human seat to the console and every other seat to its bot.
// Each bot draws from its own stream so a seed replays the whole session.
func seatProviders(cfg *config.Config, table *game.Table, styles display.Styles, seed int64, logger *log.Logger) (game.SeatProviders, error) {
	providers := game.SeatProviders{Seats: make(map[int]game.ActionProvider)}
	for _, p := range table.Players() {
		strategy := cfg.Strategy(p.Seat)
		if strategy == config.Human {
			providers.Seats[p.Seat] = console.New(os.Stdin, os.Stdout, styles, logger)
			continue
		}
		b, err := bot.New(strategy, randutil.New(randutil.Derive(seed, p.Seat)), logger)
		if err != nil {
			return providers, fmt.Errorf("seat %d: %w", p.Seat, err)
		}
		providers.Seats[p.Seat] = b
	}
	return providers, nil
}

func newEvaluator(name string) game.Evaluator {
	if name == config.EvaluatorFirstSeat {
		return game.FirstSeatEvaluator{}
	}
	return evaluator.NewRanker()
}

func printSummary(table *game.Table, summary *session.Summary) {
	fmt.Printf("\n%d hands played\n", summary.Hands)
	for i, chips := range summary.Chips {
		seat := i + 1
		fmt.Printf("  %-12s %6d\n", table.Player(seat).Name, chips)
	}
	if summary.Winner != 0 {
		fmt.Printf("%s wins the session\n", table.Player(summary.Winner).Name)
	}
}
