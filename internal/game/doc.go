// Package game implements the betting-round engine for Texas Hold'em style hands.
//
// A Table seats a fixed set of players and rotates the button and blinds between
// hands. A Hand plays one hand on the table: it deals, collects blinds, runs a
// betting round per street and awards the single pot.
//
// # Basic Usage
//
//	table, _ := game.NewTable(game.TableConfig{Seats: 5, StartingChips: 500, SmallBlind: 1, BigBlind: 2})
//	hand, _ := game.NewHand(table, game.WithRNG(randutil.New(42)))
//	result, err := hand.Play(ctx, provider)
//
// Decisions come from an ActionProvider (a bot or a console prompt). Showdowns
// are decided by an Evaluator, called at most once per hand.
//
// # Stepping a hand
//
// Play is built from exported steps that tests and other drivers can call directly:
// DealHoleCards, CollectBlinds, Apply (or BettingRound), NextStreet, Showdown and
// EndHand. Players are held by the Table and referred to everywhere else by seat
// number.
//
// # Deterministic Testing
//
// Pass WithRNG(randutil.New(seed)) for a reproducible shuffle, or WithDeck with a
// deck.NewStackedDeck to fix every card. WithClock accepts a quartz mock clock.
package game
