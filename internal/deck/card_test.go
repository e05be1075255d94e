package deck

import (
	"reflect"
	"testing"
)

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "broadway",
			input: "As Ks Qs Js Ts",
			expected: []Card{
				{Rank: Ace, Suit: Spades},
				{Rank: King, Suit: Spades},
				{Rank: Queen, Suit: Spades},
				{Rank: Jack, Suit: Spades},
				{Rank: Ten, Suit: Spades},
			},
		},
		{
			name:  "ten written as 10",
			input: "10h 2c",
			expected: []Card{
				{Rank: Ten, Suit: Hearts},
				{Rank: Two, Suit: Clubs},
			},
		},
		{
			name:  "case insensitive",
			input: "aS kH qD jC",
			expected: []Card{
				{Rank: Ace, Suit: Spades},
				{Rank: King, Suit: Hearts},
				{Rank: Queen, Suit: Diamonds},
				{Rank: Jack, Suit: Clubs},
			},
		},
		{name: "invalid rank", input: "Xs", wantErr: true},
		{name: "invalid suit", input: "Ax", wantErr: true},
		{name: "rank one", input: "1s", wantErr: true},
		{name: "too short", input: "A", wantErr: true},
		{name: "empty string", input: "", expected: []Card{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCards() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ParseCards() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCardString(t *testing.T) {
	cases := map[Card]string{
		NewCard(Ace, Spades):    "A♠",
		NewCard(Ten, Hearts):    "T♥",
		NewCard(Two, Clubs):     "2♣",
		NewCard(Nine, Diamonds): "9♦",
	}
	for card, want := range cases {
		if got := card.String(); got != want {
			t.Errorf("%#v.String() = %q, want %q", card, got, want)
		}
	}
}

func TestCardIsRed(t *testing.T) {
	if !NewCard(Ace, Hearts).IsRed() || !NewCard(Ace, Diamonds).IsRed() {
		t.Error("hearts and diamonds should be red")
	}
	if NewCard(Ace, Spades).IsRed() || NewCard(Ace, Clubs).IsRed() {
		t.Error("spades and clubs should not be red")
	}
}
