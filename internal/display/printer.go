package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/pokerhand/internal/game"
)

// Printer writes a styled line per hand event. It only reads events and never
// touches game state.
type Printer struct {
	w      io.Writer
	styles Styles
	names  map[int]string
	bet    int // street's current bet before the next action
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer, styles Styles) *Printer {
	return &Printer{w: w, styles: styles, names: make(map[int]string)}
}

// OnEvent implements game.EventSubscriber
func (p *Printer) OnEvent(event game.GameEvent) {
	s := p.styles
	switch e := event.(type) {
	case game.HandStartEvent:
		p.bet = 0
		p.println("")
		p.println(s.Header.Render(fmt.Sprintf(" Hand %s ", e.HandID)))
		p.println(s.Info.Render(fmt.Sprintf("Blinds %d/%d, button seat %d", e.SmallBlind, e.BigBlind, e.Button)))
		for _, seat := range e.Seats {
			p.names[seat.Seat] = seat.Name
			p.println(fmt.Sprintf("  %2d  %-12s %6d", seat.Seat, seat.Name, seat.Chips))
		}

	case game.BlindsEvent:
		p.bet = max(e.SmallBlind, e.BigBlind)
		p.println(s.Info.Render(fmt.Sprintf("%s posts %d, %s posts %d, pot %d",
			p.name(e.SmallBlindSeat), e.SmallBlind, p.name(e.BigBlindSeat), e.BigBlind, e.Pot)))

	case game.PlayerActionEvent:
		line := fmt.Sprintf("%s %s", e.Name, verb(e, p.bet))
		p.bet = e.CurrentBet
		if e.AllIn {
			line += " (all-in)"
		}
		line += s.Info.Render(fmt.Sprintf("  pot %d", e.PotAfter))
		if e.Forced {
			p.println(s.Warning.Render(line))
			return
		}
		p.println(s.Actions.Render(line))

	case game.ActionRejectedEvent:
		p.println(s.Error.Render(fmt.Sprintf("%s: %s", e.Name, e.Reason)))

	case game.StreetChangeEvent:
		p.bet = 0
		title := strings.ToUpper(e.Street.String())
		p.println(s.HandInfo.Render(title) + "  " + s.Cards(e.Board) + s.Info.Render(fmt.Sprintf("  pot %d", e.Pot)))

	case game.HandEndEvent:
		for _, shown := range e.Shown {
			p.println(fmt.Sprintf("%s shows %s", p.name(shown.Seat), s.Cards(shown.Cards)))
		}
		p.println(s.Success.Render(fmt.Sprintf("%s wins %d", e.WinnerName, e.Pot)))
		for _, seat := range e.Eliminated {
			p.println(s.Warning.Render(fmt.Sprintf("%s is out", p.name(seat))))
		}

	case game.HandAbortedEvent:
		p.println(s.Error.Render(fmt.Sprintf("Hand %s aborted: %s", e.HandID, e.Reason)))
	}
}

func (p *Printer) name(seat int) string {
	if n, ok := p.names[seat]; ok {
		return n
	}
	return fmt.Sprintf("Seat %d", seat)
}

func (p *Printer) println(line string) {
	fmt.Fprintln(p.w, line)
}

// verb describes an action. A raise over nothing is a bet, any other raise is shown by
// how much it adds to previousBet.
func verb(e game.PlayerActionEvent, previousBet int) string {
	switch e.Action.Kind {
	case game.Fold:
		if e.Forced {
			return "is folded"
		}
		return "folds"
	case game.Check:
		return "checks"
	}
	switch {
	case e.Raise && previousBet == 0:
		return fmt.Sprintf("bets %d", e.CurrentBet)
	case e.Raise:
		return fmt.Sprintf("raises %d to %d", e.CurrentBet-previousBet, e.CurrentBet)
	}
	return fmt.Sprintf("calls %d", e.Wagered)
}
