package game

import (
	"time"

	"github.com/lox/pokerhand/internal/deck"
)

// EventType identifies a game event
type EventType string

const (
	EventTypeHandStart      EventType = "hand_start"
	EventTypeBlinds         EventType = "blinds"
	EventTypePlayerAction   EventType = "player_action"
	EventTypeActionRejected EventType = "action_rejected"
	EventTypeStreetChange   EventType = "street_change"
	EventTypeHandEnd        EventType = "hand_end"
	EventTypeHandAborted    EventType = "hand_aborted"
)

func (et EventType) String() string {
	return string(et)
}

// GameEvent is anything published by a hand
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// SeatInfo is a snapshot of one seat at the start of a hand
type SeatInfo struct {
	Seat  int
	Name  string
	Chips int
}

// HandStartEvent is published when a hand is created
type HandStartEvent struct {
	HandID     string
	Button     int
	Seats      []SeatInfo
	SmallBlind int
	BigBlind   int
	timestamp  time.Time
}

func (e HandStartEvent) EventType() EventType { return EventTypeHandStart }
func (e HandStartEvent) Timestamp() time.Time { return e.timestamp }

// BlindsEvent is published after the forced bets are posted
type BlindsEvent struct {
	HandID         string
	SmallBlindSeat int
	SmallBlind     int // posted, may be less than the table blind when short-stacked
	BigBlindSeat   int
	BigBlind       int
	Pot            int
	timestamp      time.Time
}

func (e BlindsEvent) EventType() EventType { return EventTypeBlinds }
func (e BlindsEvent) Timestamp() time.Time { return e.timestamp }

// PlayerActionEvent is published for every accepted action
type PlayerActionEvent struct {
	HandID     string
	Seat       int
	Name       string
	Street     Street
	Action     Action
	Wagered    int // chips actually put in
	Raise      bool
	AllIn      bool
	Forced     bool // folded by the engine after repeated rejections
	CurrentBet int
	PotAfter   int
	timestamp  time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// ActionRejectedEvent is published when a decision is refused
type ActionRejectedEvent struct {
	HandID    string
	Seat      int
	Name      string
	Street    Street
	Reason    string
	timestamp time.Time
}

func (e ActionRejectedEvent) EventType() EventType { return EventTypeActionRejected }
func (e ActionRejectedEvent) Timestamp() time.Time { return e.timestamp }

// StreetChangeEvent is published when community cards are dealt
type StreetChangeEvent struct {
	HandID    string
	Street    Street
	Board     []deck.Card
	Pot       int
	timestamp time.Time
}

func (e StreetChangeEvent) EventType() EventType { return EventTypeStreetChange }
func (e StreetChangeEvent) Timestamp() time.Time { return e.timestamp }

// HandEndEvent is published when the pot has been awarded
type HandEndEvent struct {
	HandID     string
	Winner     int
	WinnerName string
	Pot        int
	Showdown   bool
	Board      []deck.Card
	Shown      []SeatHand // hands compared at showdown
	Eliminated []int
	timestamp  time.Time
}

func (e HandEndEvent) EventType() EventType { return EventTypeHandEnd }
func (e HandEndEvent) Timestamp() time.Time { return e.timestamp }

// HandAbortedEvent is published when a fatal error stops a hand and bets are returned
type HandAbortedEvent struct {
	HandID    string
	Reason    string
	Refunded  int
	timestamp time.Time
}

func (e HandAbortedEvent) EventType() EventType { return EventTypeHandAborted }
func (e HandAbortedEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber receives game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously, in order, on the publishing goroutine
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			return
		}
	}
}

func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
