package game

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedProvider plays a fixed list of actions per seat
type scriptedProvider struct {
	actions  map[int][]Action
	views    []PlayerView
	rejected []error
}

func newScriptedProvider(actions map[int][]Action) *scriptedProvider {
	return &scriptedProvider{actions: actions}
}

func (s *scriptedProvider) Decide(_ context.Context, view PlayerView) (Action, error) {
	s.views = append(s.views, view)
	queue := s.actions[view.Seat]
	if len(queue) == 0 {
		return Action{}, fmt.Errorf("script exhausted for seat %d", view.Seat)
	}
	s.actions[view.Seat] = queue[1:]
	return queue[0], nil
}

func (s *scriptedProvider) Reject(_ PlayerView, err error) {
	s.rejected = append(s.rejected, err)
}

// callingProvider checks when it can and otherwise calls
type callingProvider struct{}

func (callingProvider) Decide(_ context.Context, view PlayerView) (Action, error) {
	if view.CanCheck {
		return CheckAction(), nil
	}
	return BetAction(view.MinBet), nil
}

// eventRecorder keeps every event it sees
type eventRecorder struct {
	events []GameEvent
}

func (r *eventRecorder) OnEvent(event GameEvent) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) ofType(et EventType) []GameEvent {
	var out []GameEvent
	for _, e := range r.events {
		if e.EventType() == et {
			out = append(out, e)
		}
	}
	return out
}

func newTestTable(t *testing.T, seats, chips int) *Table {
	t.Helper()
	table, err := NewTable(TableConfig{Seats: seats, StartingChips: chips, SmallBlind: 1, BigBlind: 2})
	require.NoError(t, err)
	return table
}

func newTestTableWithChips(t *testing.T, chips ...int) *Table {
	t.Helper()
	table, err := NewTable(TableConfig{Seats: len(chips), Chips: chips, SmallBlind: 1, BigBlind: 2})
	require.NoError(t, err)
	return table
}

// startedHand returns a hand with cards dealt and blinds collected
func startedHand(t *testing.T, table *Table, opts ...HandOption) *Hand {
	t.Helper()
	h, err := NewHand(table, opts...)
	require.NoError(t, err)
	require.NoError(t, h.DealHoleCards())
	require.NoError(t, h.CollectBlinds())
	return h
}
