package game

import "fmt"

// Street represents the betting round a hand is in
type Street int

const (
	PreFlop Street = iota
	Flop
	Turn
	River
	Settled
)

func (s Street) String() string {
	switch s {
	case PreFlop:
		return "pre-flop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Settled:
		return "settled"
	default:
		return "unknown"
	}
}

// ActionKind is the kind of decision a player makes
type ActionKind int

const (
	Check ActionKind = iota
	Bet
	Fold
)

func (k ActionKind) String() string {
	switch k {
	case Check:
		return "check"
	case Bet:
		return "bet"
	case Fold:
		return "fold"
	default:
		return "unknown"
	}
}

// Action is a decision returned by an ActionProvider. For bets, Amount is the number
// of chips added to the pot now, not the total for the street.
type Action struct {
	Kind   ActionKind
	Amount int
}

// CheckAction returns a check
func CheckAction() Action { return Action{Kind: Check} }

// BetAction returns a bet of amount chips
func BetAction(amount int) Action { return Action{Kind: Bet, Amount: amount} }

// FoldAction returns a fold
func FoldAction() Action { return Action{Kind: Fold} }

func (a Action) String() string {
	if a.Kind == Bet {
		return fmt.Sprintf("bet %d", a.Amount)
	}
	return a.Kind.String()
}
