package game

import (
	"time"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypePlayApplied      EventType = "play_applied"
	EventTypeScore            EventType = "score"
	EventTypePossessionChange EventType = "possession_change"
	EventTypeQuarterEnd       EventType = "quarter_end"
	EventTypeGameEnd          EventType = "game_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event published during a simulated game.
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// PlayAppliedEvent is published after every committed transition, carrying
// the ordered change log for downstream consumers.
type PlayAppliedEvent struct {
	TransitionID string
	Outcome      PlayOutcome
	Changes      []ChangeRecord
	Quarter      int
	Clock        int
	timestamp    time.Time
}

func (e PlayAppliedEvent) EventType() EventType { return EventTypePlayApplied }
func (e PlayAppliedEvent) Timestamp() time.Time { return e.timestamp }

// NewPlayAppliedEvent creates a new play applied event
func NewPlayAppliedEvent(transitionID string, outcome PlayOutcome, changes []ChangeRecord, quarter, clock int, ts time.Time) PlayAppliedEvent {
	recs := make([]ChangeRecord, len(changes))
	copy(recs, changes)
	return PlayAppliedEvent{
		TransitionID: transitionID,
		Outcome:      outcome,
		Changes:      recs,
		Quarter:      quarter,
		Clock:        clock,
		timestamp:    ts,
	}
}

// ScoreEvent is published when points land on the scoreboard.
type ScoreEvent struct {
	TransitionID string
	Slot         Slot
	Points       int
	Outcome      OutcomeTag
	HomeScore    int
	AwayScore    int
	timestamp    time.Time
}

func (e ScoreEvent) EventType() EventType { return EventTypeScore }
func (e ScoreEvent) Timestamp() time.Time { return e.timestamp }

// NewScoreEvent creates a new score event
func NewScoreEvent(transitionID string, slot Slot, points int, outcome OutcomeTag, homeScore, awayScore int, ts time.Time) ScoreEvent {
	return ScoreEvent{
		TransitionID: transitionID,
		Slot:         slot,
		Points:       points,
		Outcome:      outcome,
		HomeScore:    homeScore,
		AwayScore:    awayScore,
		timestamp:    ts,
	}
}

// PossessionChangeEvent is published when the ball changes hands.
type PossessionChangeEvent struct {
	TransitionID string
	From         Slot
	To           Slot
	Reason       OutcomeTag
	timestamp    time.Time
}

func (e PossessionChangeEvent) EventType() EventType { return EventTypePossessionChange }
func (e PossessionChangeEvent) Timestamp() time.Time { return e.timestamp }

// NewPossessionChangeEvent creates a new possession change event
func NewPossessionChangeEvent(transitionID string, from, to Slot, reason OutcomeTag, ts time.Time) PossessionChangeEvent {
	return PossessionChangeEvent{
		TransitionID: transitionID,
		From:         from,
		To:           to,
		Reason:       reason,
		timestamp:    ts,
	}
}

// QuarterEndEvent is published when the clock crosses into a new period.
type QuarterEndEvent struct {
	EndedQuarter int
	NewQuarter   int
	timestamp    time.Time
}

func (e QuarterEndEvent) EventType() EventType { return EventTypeQuarterEnd }
func (e QuarterEndEvent) Timestamp() time.Time { return e.timestamp }

// NewQuarterEndEvent creates a new quarter end event
func NewQuarterEndEvent(ended, next int, ts time.Time) QuarterEndEvent {
	return QuarterEndEvent{EndedQuarter: ended, NewQuarter: next, timestamp: ts}
}

// GameEndEvent is published by the simulation loop when regulation ends.
type GameEndEvent struct {
	Home      TeamInfo
	Away      TeamInfo
	HomeScore int
	AwayScore int
	timestamp time.Time
}

func (e GameEndEvent) EventType() EventType { return EventTypeGameEnd }
func (e GameEndEvent) Timestamp() time.Time { return e.timestamp }

// NewGameEndEvent creates a new game end event
func NewGameEndEvent(sb Scoreboard, ts time.Time) GameEndEvent {
	return GameEndEvent{
		Home:      sb.Home,
		Away:      sb.Away,
		HomeScore: sb.HomeScore,
		AwayScore: sb.AwayScore,
		timestamp: ts,
	}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
