package game

import (
	"errors"

	"github.com/lox/pokerhand/internal/deck"
)

// SeatHand pairs a seat with its hole cards for showdown
type SeatHand struct {
	Seat  int
	Cards []deck.Card
}

// Evaluator decides the winner when more than one player reaches showdown. The hand
// calls it at most once and only checks that the returned seat was one of the hands.
type Evaluator interface {
	Evaluate(hands []SeatHand, board []deck.Card) (int, error)
}

// EvaluatorFunc adapts a function to Evaluator
type EvaluatorFunc func(hands []SeatHand, board []deck.Card) (int, error)

func (f EvaluatorFunc) Evaluate(hands []SeatHand, board []deck.Card) (int, error) {
	return f(hands, board)
}

// FirstSeatEvaluator is a placeholder that awards the pot to the first hand it is
// given (the first live seat after the button). It does not rank hands and exists for
// deterministic tests; use evaluator.Ranker for real play.
type FirstSeatEvaluator struct{}

func (FirstSeatEvaluator) Evaluate(hands []SeatHand, _ []deck.Card) (int, error) {
	if len(hands) == 0 {
		return 0, errors.New("no hands to evaluate")
	}
	return hands[0].Seat, nil
}
