// Package console asks a person at the terminal for betting decisions.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerhand/internal/display"
	"github.com/lox/pokerhand/internal/game"
)

var errUnknownChoice = errors.New("enter 1 to check, 2 to bet or 3 to fold")

// ErrClosed is returned by Decide after Close
var ErrClosed = errors.New("console closed")

// Console is a game.ActionProvider that prompts on out and reads answers from in,
// one line at a time.
type Console struct {
	out    io.Writer
	styles display.Styles
	logger *log.Logger

	in        io.Reader
	start     sync.Once
	lines     chan string
	readErr   error
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a console provider
func New(in io.Reader, out io.Writer, styles display.Styles, logger *log.Logger) *Console {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Console{
		in:     in,
		out:    out,
		styles: styles,
		logger: logger.WithPrefix("console"),
		lines:  make(chan string),
		done:   make(chan struct{}),
	}
}

// Decide shows the player's situation and waits for a choice. Malformed answers are
// returned as *game.InvalidWagerInputError so the engine asks again.
func (c *Console) Decide(ctx context.Context, view game.PlayerView) (game.Action, error) {
	c.showView(view)

	line, err := c.ask(ctx, "What would you like to do? 1 check, 2 bet, 3 fold: ")
	if err != nil {
		return game.Action{}, err
	}

	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return game.Action{}, &game.InvalidWagerInputError{Input: line, Err: errUnknownChoice}
	}

	switch fields[0] {
	case "1", "check", "c":
		return game.CheckAction(), nil
	case "3", "fold", "f":
		return game.FoldAction(), nil
	case "2", "bet", "b":
		amount := ""
		if len(fields) > 1 {
			amount = fields[1]
		} else {
			prompt := fmt.Sprintf("How much would you like to bet? Between %d and %d: ", max(view.MinBet, 1), view.MaxBet)
			if amount, err = c.ask(ctx, prompt); err != nil {
				return game.Action{}, err
			}
		}
		n, err := strconv.Atoi(strings.TrimSpace(amount))
		if err != nil {
			return game.Action{}, &game.InvalidWagerInputError{Input: amount, Err: err}
		}
		return game.BetAction(n), nil
	}
	return game.Action{}, &game.InvalidWagerInputError{Input: line, Err: errUnknownChoice}
}

// Reject implements game.Rejecter
func (c *Console) Reject(_ game.PlayerView, err error) {
	var illegal *game.IllegalActionError
	var invalid *game.InvalidWagerInputError
	switch {
	case errors.As(err, &illegal) && illegal.Action.Kind == game.Check:
		fmt.Fprintln(c.out, c.styles.Error.Render("You can't check. You need to bet to stay in the hand."))
	case errors.As(err, &illegal) && illegal.Action.Kind == game.Bet:
		fmt.Fprintln(c.out, c.styles.Error.Render("Please try again. "+illegal.Reason+"."))
	case errors.As(err, &invalid):
		fmt.Fprintln(c.out, c.styles.Error.Render(fmt.Sprintf("%q is not a valid answer.", invalid.Input)))
	default:
		fmt.Fprintln(c.out, c.styles.Error.Render(err.Error()))
	}
}

func (c *Console) showView(view game.PlayerView) {
	s := c.styles
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, s.HandInfo.Render(fmt.Sprintf("%s, seat %d, %s", view.Name, view.Seat, view.Street)))
	fmt.Fprintf(c.out, "Cards: %s  Board: %s\n", s.Cards(view.Cards), s.Cards(view.Board))
	fmt.Fprintln(c.out, s.Info.Render(fmt.Sprintf("Chips %d, pot %d, bet this street %d, to call %d",
		view.Chips, view.Pot, view.RoundBet, view.ToCall)))
}

// ask prints prompt and waits for the next line, or for ctx to end
func (c *Console) ask(ctx context.Context, prompt string) (string, error) {
	select {
	case <-c.done:
		return "", ErrClosed
	default:
	}

	fmt.Fprint(c.out, c.styles.Prompt.Render(prompt))
	c.start.Do(func() { go c.read() })

	select {
	case <-c.done:
		return "", ErrClosed
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-c.lines:
		if !ok {
			c.logger.Debug("Input closed", "error", c.readErr)
			if c.readErr != nil {
				return "", fmt.Errorf("reading input: %w", c.readErr)
			}
			return "", fmt.Errorf("reading input: %w", io.EOF)
		}
		return strings.TrimSpace(line), nil
	}
}

// Close stops the reader goroutine. A read already blocked on the input returns
// with the next line or when the input ends; its line is dropped.
func (c *Console) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}

// read feeds lines to ask until the input ends or the console is closed. It outlives a
// cancelled ask so that a line typed late is delivered to the next prompt.
func (c *Console) read() {
	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		select {
		case c.lines <- scanner.Text():
		case <-c.done:
			return
		}
	}
	c.readErr = scanner.Err()
	close(c.lines)
}
