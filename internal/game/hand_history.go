package game

import (
	"fmt"
	"strings"

	"github.com/lox/pokerhand/internal/deck"
)

// HandHistory subscribes to hand events and keeps a readable transcript, one line per
// event, in the usual "*** FLOP ***" style.
type HandHistory struct {
	lines []string
	names map[int]string
	bet   int // current bet on this street
}

// NewHandHistory creates an empty history
func NewHandHistory() *HandHistory {
	return &HandHistory{names: make(map[int]string)}
}

// OnEvent implements EventSubscriber
func (hh *HandHistory) OnEvent(event GameEvent) {
	switch e := event.(type) {
	case HandStartEvent:
		hh.addf("Hand #%s: blinds %d/%d, button seat %d", e.HandID, e.SmallBlind, e.BigBlind, e.Button)
		for _, s := range e.Seats {
			hh.names[s.Seat] = s.Name
			hh.addf("Seat %d: %s (%d chips)", s.Seat, s.Name, s.Chips)
		}
	case BlindsEvent:
		hh.addf("%s: posts small blind %d", hh.name(e.SmallBlindSeat), e.SmallBlind)
		hh.addf("%s: posts big blind %d", hh.name(e.BigBlindSeat), e.BigBlind)
		hh.bet = max(e.SmallBlind, e.BigBlind)
		hh.addf("*** %s ***", strings.ToUpper(PreFlop.String()))
	case PlayerActionEvent:
		hh.add(formatAction(e, hh.bet))
		hh.bet = e.CurrentBet
	case StreetChangeEvent:
		hh.bet = 0
		hh.addf("*** %s *** %s", strings.ToUpper(e.Street.String()), formatCards(e.Board))
	case HandEndEvent:
		if e.Showdown {
			hh.add("*** SHOWDOWN ***")
			for _, s := range e.Shown {
				hh.addf("%s: shows %s", hh.name(s.Seat), formatCards(s.Cards))
			}
		}
		hh.addf("%s wins %d", e.WinnerName, e.Pot)
		for _, seat := range e.Eliminated {
			hh.addf("%s is knocked out", hh.name(seat))
		}
	case HandAbortedEvent:
		hh.addf("Hand aborted: %s (%d returned)", e.Reason, e.Refunded)
	}
}

// Lines returns the transcript
func (hh *HandHistory) Lines() []string {
	out := make([]string, len(hh.lines))
	copy(out, hh.lines)
	return out
}

func (hh *HandHistory) String() string {
	if len(hh.lines) == 0 {
		return ""
	}
	return strings.Join(hh.lines, "\n") + "\n"
}

// Reset clears the transcript so the history can be reused for the next hand
func (hh *HandHistory) Reset() {
	hh.lines = hh.lines[:0]
	hh.bet = 0
}

func (hh *HandHistory) add(line string) {
	hh.lines = append(hh.lines, line)
}

func (hh *HandHistory) addf(format string, args ...any) {
	hh.add(fmt.Sprintf(format, args...))
}

func (hh *HandHistory) name(seat int) string {
	if n, ok := hh.names[seat]; ok {
		return n
	}
	return fmt.Sprintf("Seat %d", seat)
}

func formatAction(e PlayerActionEvent, previousBet int) string {
	var s string
	switch {
	case e.Action.Kind == Fold && e.Forced:
		s = "folds (forced)"
	case e.Action.Kind == Fold:
		s = "folds"
	case e.Action.Kind == Check:
		s = "checks"
	case e.Raise && previousBet == 0:
		s = fmt.Sprintf("bets %d", e.CurrentBet)
	case e.Raise:
		s = fmt.Sprintf("raises %d to %d", e.CurrentBet-previousBet, e.CurrentBet)
	default:
		s = fmt.Sprintf("calls %d", e.Wagered)
	}
	if e.AllIn {
		s += " and is all-in"
	}
	return e.Name + ": " + s
}

func formatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
