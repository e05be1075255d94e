package evaluator

// Showdown ranking on top of a seven-card lookup evaluator. Higher scores are better.

import (
	"fmt"

	"github.com/paulhankin/poker"

	"github.com/lox/pokerhand/internal/deck"
	"github.com/lox/pokerhand/internal/game"
)

// BoardSize is the number of community cards needed to rank a hand
const BoardSize = 5

// HandRank represents the strength of a seven-card hand (higher is better)
type HandRank int16

// Compare compares two HandRank values (returns 1 if h is better, -1 if other is better, 0 if equal)
func (h HandRank) Compare(other HandRank) int {
	switch {
	case h > other:
		return 1
	case h < other:
		return -1
	}
	return 0
}

// Ranker picks the strongest hand at showdown. Ties go to the hand listed first,
// which is the first live seat after the button.
type Ranker struct{}

// NewRanker creates a new ranker
func NewRanker() *Ranker {
	return &Ranker{}
}

// Evaluate implements game.Evaluator
func (r *Ranker) Evaluate(hands []game.SeatHand, board []deck.Card) (int, error) {
	if len(hands) == 0 {
		return 0, fmt.Errorf("no hands to evaluate")
	}

	winner, best := 0, HandRank(0)
	for i, h := range hands {
		rank, err := Rank(h.Cards, board)
		if err != nil {
			return 0, fmt.Errorf("seat %d: %w", h.Seat, err)
		}
		if i == 0 || rank.Compare(best) > 0 {
			winner, best = h.Seat, rank
		}
	}
	return winner, nil
}

// Rank scores two hole cards with a full board
func Rank(hole, board []deck.Card) (HandRank, error) {
	cards, err := sevenCards(hole, board)
	if err != nil {
		return 0, err
	}
	return HandRank(poker.Eval7(&cards)), nil
}

// Describe names the best five-card hand made from the hole cards and board
func Describe(hole, board []deck.Card) (string, error) {
	cards, err := sevenCards(hole, board)
	if err != nil {
		return "", err
	}
	return poker.Describe(cards[:])
}

func sevenCards(hole, board []deck.Card) ([7]poker.Card, error) {
	var cards [7]poker.Card
	if len(hole) != 2 {
		return cards, fmt.Errorf("need 2 hole cards, got %d", len(hole))
	}
	if len(board) != BoardSize {
		return cards, fmt.Errorf("need %d board cards, got %d", BoardSize, len(board))
	}

	seen := make(map[deck.Card]bool, len(cards))
	for i, c := range append(append(make([]deck.Card, 0, 7), board...), hole...) {
		if seen[c] {
			return cards, fmt.Errorf("card %s appears twice", c)
		}
		seen[c] = true

		pc, err := toPokerCard(c)
		if err != nil {
			return cards, err
		}
		cards[i] = pc
	}
	return cards, nil
}

// pokerAce is the ace in paulhankin/poker, which ranks aces 1 and kings 13
const pokerAce poker.Rank = 1

func toPokerCard(c deck.Card) (poker.Card, error) {
	var card poker.Card
	if !c.Valid() {
		return card, fmt.Errorf("invalid card %v", c)
	}

	var suit poker.Suit
	switch c.Suit {
	case deck.Clubs:
		suit = poker.Club
	case deck.Diamonds:
		suit = poker.Diamond
	case deck.Hearts:
		suit = poker.Heart
	case deck.Spades:
		suit = poker.Spade
	}

	rank := poker.Rank(c.Rank)
	if c.Rank == deck.Ace {
		rank = pokerAce
	}
	card, err := poker.MakeCard(suit, rank)
	if err != nil {
		return card, fmt.Errorf("converting %s: %w", c, err)
	}
	return card, nil
}
