package game

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokerhand/internal/deck"
)

// DefaultMaxRejections is how many refused decisions in a row a seat gets before the
// engine folds it.
const DefaultMaxRejections = 25

// HandOption configures a Hand during creation
type HandOption func(*handConfig)

type handConfig struct {
	rng           *rand.Rand
	deck          *deck.Deck
	evaluator     Evaluator
	logger        *log.Logger
	bus           EventBus
	clock         quartz.Clock
	handID        string
	maxRejections int
}

// WithRNG sets the random source used to shuffle. Without it the hand seeds from the clock.
func WithRNG(rng *rand.Rand) HandOption {
	return func(c *handConfig) { c.rng = rng }
}

// WithDeck uses the given deck instead of building one. A pre-arranged deck from
// deck.NewStackedDeck is not reshuffled.
func WithDeck(d *deck.Deck) HandOption {
	return func(c *handConfig) { c.deck = d }
}

// WithEvaluator sets the showdown evaluator. Defaults to FirstSeatEvaluator.
func WithEvaluator(e Evaluator) HandOption {
	return func(c *handConfig) { c.evaluator = e }
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) HandOption {
	return func(c *handConfig) { c.logger = logger }
}

// WithEventBus publishes hand events on bus
func WithEventBus(bus EventBus) HandOption {
	return func(c *handConfig) { c.bus = bus }
}

// WithClock sets the clock used for event timestamps and hand IDs
func WithClock(clock quartz.Clock) HandOption {
	return func(c *handConfig) { c.clock = clock }
}

// WithHandID sets the hand ID instead of generating one
func WithHandID(id string) HandOption {
	return func(c *handConfig) { c.handID = id }
}

// WithMaxRejections sets how many consecutive refused decisions force a fold.
// Zero or less disables the limit.
func WithMaxRejections(n int) HandOption {
	return func(c *handConfig) { c.maxRejections = n }
}
