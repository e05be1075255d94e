package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/pokerhand/internal/config"
	"github.com/lox/pokerhand/internal/randutil"
	"github.com/lox/pokerhand/internal/simulator"
)

// SimulateCmd runs bot-only sessions using the configured table
type SimulateCmd struct {
	Sessions    int           `default:"100" help:"Number of sessions to play"`
	Hands       int           `help:"Per-session hand limit, overrides the config file"`
	Parallelism int           `short:"p" help:"Concurrent sessions (default GOMAXPROCS)"`
	Timeout     time.Duration `default:"1m" help:"Per-session time limit"`
	Seed        *int64        `help:"Deterministic RNG seed, overrides the config file"`
}

func (c *SimulateCmd) Run(cli *CLI) error {
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
	if seat, ok := cfg.HumanSeat(); ok {
		return fmt.Errorf("seat %d is played by a human, simulations need bots in every seat", seat)
	}

	logger := newLogger(cfg.LogLevel, cli.Debug)

	seed := cfg.Seed
	if seed == 0 {
		_, seed = randutil.NewFromClock(quartz.NewReal())
	}

	tableCfg := cfg.TableConfig()
	strategies := make([]string, tableCfg.Seats)
	for i := range strategies {
		strategies[i] = cfg.Strategy(i + 1)
	}

	logger.Info("Starting simulation",
		"sessions", c.Sessions,
		"seats", tableCfg.Seats,
		"seed", seed,
		"evaluator", cfg.Evaluator)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := simulator.New(simulator.Config{
		Sessions:    c.Sessions,
		Hands:       cfg.Hands,
		Table:       tableCfg,
		Strategies:  strategies,
		Evaluator:   newEvaluator(cfg.Evaluator),
		Seed:        seed,
		Parallelism: c.Parallelism,
		Timeout:     c.Timeout,
		Logger:      logger,
	})

	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("Simulation finished", "elapsed", time.Since(start).Round(time.Millisecond))

	simulator.PrintSummary(os.Stdout, stats, strategies)
	return nil
}
