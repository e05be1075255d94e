package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Spades
	Clubs
)

// Suits lists every suit in deck-building order.
var Suits = [...]Suit{Hearts, Diamonds, Spades, Clubs}

// String returns the symbol for the suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true for hearts and diamonds
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Values run from 2 to 14 with the ace high.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the single-character rank (T for ten)
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Nine:
		return string(rune('0' + int(r)))
	case r == Ten:
		return "T"
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Card is an immutable rank/suit pair
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the card as rank followed by suit symbol, e.g. "A♠"
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// IsRed returns true if the card is a heart or diamond
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Valid reports whether the card is one of the 52 standard cards
func (c Card) Valid() bool {
	return c.Rank >= Two && c.Rank <= Ace && c.Suit >= Hearts && c.Suit <= Clubs
}

// ParseCard parses a card such as "Ah", "td" or "10s". Suit letters are h, d, s, c.
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	rankPart, suitPart := strings.ToUpper(s[:len(s)-1]), strings.ToLower(s[len(s)-1:])

	var rank Rank
	switch rankPart {
	case "T", "10":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "A":
		rank = Ace
	default:
		if len(rankPart) != 1 || rankPart[0] < '2' || rankPart[0] > '9' {
			return Card{}, fmt.Errorf("invalid rank in card %q", s)
		}
		rank = Rank(rankPart[0] - '0')
	}

	var suit Suit
	switch suitPart {
	case "h":
		suit = Hearts
	case "d":
		suit = Diamonds
	case "s":
		suit = Spades
	case "c":
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid suit in card %q", s)
	}

	return NewCard(rank, suit), nil
}

// ParseCards parses whitespace-separated cards, e.g. "Ah Kd 10s".
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixed test and example input; it panics on error.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
