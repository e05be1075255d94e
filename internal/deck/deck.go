package deck

import (
	"fmt"
	rand "math/rand/v2"
)

// Size is the number of cards in a full deck
const Size = 52

// EmptyDeckError is returned when more cards are drawn than the deck holds.
// It signals a malformed deck or a table too large for one deck and is fatal to the hand.
type EmptyDeckError struct {
	Requested int
	Remaining int
}

func (e *EmptyDeckError) Error() string {
	return fmt.Sprintf("deck exhausted: requested %d card(s), %d remaining", e.Requested, e.Remaining)
}

// Deck is an ordered sequence of cards. The top of the deck is the end of the slice;
// dealt and burned cards are removed and never come back.
type Deck struct {
	cards    []Card
	rng      *rand.Rand
	shuffled bool
}

// NewDeck builds an ordered 52-card deck that shuffles with rng
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, Size),
		rng:   rng,
	}
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	return d
}

// NewStackedDeck builds a pre-arranged deck that deals cards in the given order.
// It counts as already shuffled.
func NewStackedDeck(cards ...Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards)), shuffled: true}
	for i, c := range cards {
		d.cards[len(cards)-1-i] = c
	}
	return d
}

// Shuffle randomizes the order of the remaining cards with Fisher-Yates
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	d.shuffled = true
}

// Shuffled reports whether the deck has been shuffled or was pre-arranged
func (d *Deck) Shuffled() bool {
	return d.shuffled
}

// Deal removes and returns the top card
func (d *Deck) Deal() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, &EmptyDeckError{Requested: 1}
	}
	top := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return top, nil
}

// DealN deals n cards from the top. Nothing is removed if fewer than n remain.
func (d *Deck) DealN(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, &EmptyDeckError{Requested: n, Remaining: len(d.cards)}
	}
	cards := make([]Card, n)
	for i := range cards {
		cards[i], _ = d.Deal()
	}
	return cards, nil
}

// Burn discards the top card
func (d *Deck) Burn() error {
	_, err := d.Deal()
	return err
}

// Remaining returns the number of cards left
func (d *Deck) Remaining() int {
	return len(d.cards)
}
