// Package config loads session settings from an HCL file.
package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokerhand/internal/bot"
	"github.com/lox/pokerhand/internal/game"
)

// Human is the strategy for the seat played at the console
const Human = "human"

// Evaluator names
const (
	EvaluatorRanker    = "ranker"
	EvaluatorFirstSeat = "first-seat"
)

// Defaults for missing values
const (
	DefaultSeats         = 6
	DefaultStartingChips = 1000
	DefaultSmallBlind    = 5
	DefaultBigBlind      = 10
	DefaultStrategy      = bot.Call
	DefaultLogLevel      = "info"
)

// Config represents the complete session configuration
type Config struct {
	Seed        int64          `hcl:"seed,optional"`
	Hands       int            `hcl:"hands,optional"`
	LogLevel    string         `hcl:"log_level,optional"`
	Evaluator   string         `hcl:"evaluator,optional"`
	HistoryFile string         `hcl:"history_file,optional"`
	Table       *TableSettings `hcl:"table,block"`
	Seats       []SeatConfig   `hcl:"seat,block"`
}

// TableSettings contains the seating and stakes
type TableSettings struct {
	Seats         int `hcl:"seats,optional"`
	StartingChips int `hcl:"starting_chips,optional"`
	SmallBlind    int `hcl:"small_blind,optional"`
	BigBlind      int `hcl:"big_blind,optional"`
	Button        int `hcl:"button,optional"`
}

// SeatConfig names a seat and who plays it. Seat blocks fill seats in order from 1.
type SeatConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy,optional"`
}

// Default returns the default configuration: six call bots
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads configuration from an HCL file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Evaluator == "" {
		c.Evaluator = EvaluatorRanker
	}
	if c.Table == nil {
		c.Table = &TableSettings{}
	}
	if c.Table.Seats == 0 {
		c.Table.Seats = DefaultSeats
		if len(c.Seats) > 0 {
			c.Table.Seats = len(c.Seats)
		}
	}
	if c.Table.StartingChips == 0 {
		c.Table.StartingChips = DefaultStartingChips
	}
	if c.Table.SmallBlind == 0 {
		c.Table.SmallBlind = DefaultSmallBlind
	}
	if c.Table.BigBlind == 0 {
		c.Table.BigBlind = max(DefaultBigBlind, c.Table.SmallBlind)
	}
	if c.Table.Button == 0 {
		c.Table.Button = 1
	}
	for i := range c.Seats {
		if c.Seats[i].Strategy == "" {
			c.Seats[i].Strategy = DefaultStrategy
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	t := c.Table
	if t == nil {
		return fmt.Errorf("missing table settings")
	}
	if t.Seats < game.MinSeats || t.Seats > game.MaxSeats {
		return fmt.Errorf("table: seats must be between %d and %d", game.MinSeats, game.MaxSeats)
	}
	if len(c.Seats) > t.Seats {
		return fmt.Errorf("table: %d seat blocks for %d seats", len(c.Seats), t.Seats)
	}
	if t.StartingChips <= 0 {
		return fmt.Errorf("table: starting chips must be positive")
	}
	if t.SmallBlind <= 0 {
		return fmt.Errorf("table: small blind must be positive")
	}
	if t.BigBlind < t.SmallBlind {
		return fmt.Errorf("table: big blind must be at least the small blind")
	}
	if t.Button < 1 || t.Button > t.Seats {
		return fmt.Errorf("table: button must be a seat between 1 and %d", t.Seats)
	}
	if c.Hands < 0 {
		return fmt.Errorf("hands must not be negative")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.Evaluator != EvaluatorRanker && c.Evaluator != EvaluatorFirstSeat {
		return fmt.Errorf("invalid evaluator %q", c.Evaluator)
	}

	humans := 0
	names := make(map[string]bool)
	for _, seat := range c.Seats {
		if names[seat.Name] {
			return fmt.Errorf("seat %s: name used twice", seat.Name)
		}
		names[seat.Name] = true

		if seat.Strategy == Human {
			humans++
			continue
		}
		if !slices.Contains(bot.Strategies, seat.Strategy) {
			return fmt.Errorf("seat %s: invalid strategy %s", seat.Name, seat.Strategy)
		}
	}
	if humans > 1 {
		return fmt.Errorf("only one seat may be played by a human")
	}
	return nil
}

// TableConfig returns the table settings for game.NewTable
func (c *Config) TableConfig() game.TableConfig {
	names := make([]string, len(c.Seats))
	for i, seat := range c.Seats {
		names[i] = seat.Name
	}
	return game.TableConfig{
		Seats:         c.Table.Seats,
		Names:         names,
		StartingChips: c.Table.StartingChips,
		SmallBlind:    c.Table.SmallBlind,
		BigBlind:      c.Table.BigBlind,
		Button:        c.Table.Button,
	}
}

// Strategy returns who plays seat. Seats without a block are call bots.
func (c *Config) Strategy(seat int) string {
	if seat >= 1 && seat <= len(c.Seats) {
		return c.Seats[seat-1].Strategy
	}
	return DefaultStrategy
}

// HumanSeat returns the seat played at the console, if any
func (c *Config) HumanSeat() (int, bool) {
	for i, seat := range c.Seats {
		if seat.Strategy == Human {
			return i + 1, true
		}
	}
	return 0, false
}
