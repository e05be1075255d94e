package game

import (
	"errors"
	"fmt"
)

var (
	// ErrNotEnoughPlayers is returned when a hand is started with fewer than two live players
	ErrNotEnoughPlayers = errors.New("at least two live players are required")
	// ErrHandSettled is returned for any operation on a hand that has already ended
	ErrHandSettled = errors.New("hand already settled")
	// ErrNoActionPending is returned when Apply is called but nobody is owed an action
	ErrNoActionPending = errors.New("no player is waiting to act")
)

// IllegalActionError reports an action the rules do not allow, such as checking when
// facing a bet or betting below the amount owed. The hand state is left unchanged and
// the same player is asked again.
type IllegalActionError struct {
	Seat   int
	Action Action
	Reason string
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("seat %d cannot %s: %s", e.Seat, e.Action, e.Reason)
}

// InvalidWagerInputError reports malformed input from an action provider, e.g. a bet
// amount that is not a number. Handled the same way as an illegal action.
type InvalidWagerInputError struct {
	Input string
	Err   error
}

func (e *InvalidWagerInputError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid wager input %q", e.Input)
	}
	return fmt.Sprintf("invalid wager input %q: %v", e.Input, e.Err)
}

func (e *InvalidWagerInputError) Unwrap() error {
	return e.Err
}

// ChipConservationError reports that chips were created or destroyed during a hand
type ChipConservationError struct {
	Expected int
	Actual   int
}

func (e *ChipConservationError) Error() string {
	return fmt.Sprintf("chip conservation violated: expected %d chips, found %d", e.Expected, e.Actual)
}

// recoverable reports whether err should lead to the player being asked again
func recoverable(err error) bool {
	var illegal *IllegalActionError
	var invalid *InvalidWagerInputError
	return errors.As(err, &illegal) || errors.As(err, &invalid)
}
