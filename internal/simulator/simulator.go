package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerhand/internal/bot"
	"github.com/lox/pokerhand/internal/game"
	"github.com/lox/pokerhand/internal/randutil"
	"github.com/lox/pokerhand/internal/session"
	"github.com/lox/pokerhand/internal/statistics"
)

// DefaultHands caps each session when no hand limit is configured
const DefaultHands = 1000

// Config holds configuration for running simulations
type Config struct {
	Sessions    int
	Hands       int // per-session hand limit, DefaultHands when 0
	Table       game.TableConfig
	Strategies  []string // per seat, call bots for seats not listed
	Evaluator   game.Evaluator
	Seed        int64
	Parallelism int           // concurrent sessions, GOMAXPROCS when 0
	Timeout     time.Duration // per session, no limit when 0
	Logger      *log.Logger
}

// Simulator runs independent bot-only sessions in parallel. Sessions share nothing but
// the evaluator, which must be safe for concurrent use.
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Hands == 0 {
		config.Hands = DefaultHands
	}
	if config.Parallelism <= 0 {
		config.Parallelism = runtime.GOMAXPROCS(0)
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

// Run plays every session and returns the merged statistics. The first failing
// session cancels the rest.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Sessions <= 0 {
		return nil, fmt.Errorf("sessions must be positive, got %d", s.config.Sessions)
	}
	for _, strategy := range s.config.Strategies {
		if _, err := bot.New(strategy, nil, nil); err != nil {
			return nil, err
		}
	}

	var mu sync.Mutex
	total := &statistics.Statistics{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Parallelism)
	for i := range s.config.Sessions {
		g.Go(func() error {
			stats, err := s.runSession(gctx, i)
			if err != nil {
				return fmt.Errorf("session %d (seed %d): %w", i+1, randutil.Derive(s.config.Seed, i), err)
			}
			mu.Lock()
			total.Merge(stats)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return total, nil
}

// runSession plays one session on a fresh table
func (s *Simulator) runSession(ctx context.Context, n int) (*statistics.Statistics, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	table, err := game.NewTable(s.config.Table)
	if err != nil {
		return nil, err
	}

	seed := randutil.Derive(s.config.Seed, n)
	logger := s.config.Logger.With("session", n+1)
	seats := make(map[int]game.ActionProvider, table.Seats())
	for seat := 1; seat <= table.Seats(); seat++ {
		strategy := bot.Call
		if seat <= len(s.config.Strategies) {
			strategy = s.config.Strategies[seat-1]
		}
		seats[seat], err = bot.New(strategy, randutil.New(randutil.Derive(seed, seat)), logger)
		if err != nil {
			return nil, err
		}
	}

	sess, err := session.New(session.Config{
		Table:     table,
		Provider:  game.SeatProviders{Seats: seats},
		Evaluator: s.config.Evaluator,
		RNG:       randutil.New(seed),
		Logger:    logger,
		Hands:     s.config.Hands,
	})
	if err != nil {
		return nil, err
	}

	start := time.Now()
	summary, err := sess.Run(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("Session finished", "hands", summary.Hands, "winner", summary.Winner, "elapsed", time.Since(start))
	return summary.Stats, nil
}

// PrintSummary prints a per-seat summary of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics, strategies []string) {
	fmt.Fprintf(w, "\n=== FINAL RESULTS ===\n")
	fmt.Fprintf(w, "Sessions played: %d\n", stats.Sessions)
	fmt.Fprintf(w, "Hands played: %d (%d aborted)\n", stats.Hands, stats.Aborted)
	if stats.Hands > 0 {
		fmt.Fprintf(w, "Showdowns: %d (%.1f%%)\n", stats.Showdowns, float64(stats.Showdowns)/float64(stats.Hands)*100)
	}
	fmt.Fprintf(w, "Pot sizes: median %.1f, P95 %.1f\n", stats.MedianPot(), stats.PotPercentile(0.95))

	fmt.Fprintf(w, "\n=== SEAT ANALYSIS ===\n")
	for i, seat := range stats.Seats {
		strategy := bot.Call
		if i < len(strategies) {
			strategy = strategies[i]
		}
		low, high := seat.ConfidenceInterval95()
		fmt.Fprintf(w, "Seat %d (%s): %d sessions won, %d showdown / %d uncontested wins, %.3f chips/hand [%.3f, %.3f]\n",
			i+1, strategy, seat.SessionsWon, seat.ShowdownWins, seat.NonShowdownWins, seat.Mean(), low, high)
	}
}
