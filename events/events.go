package events

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeMatchRecorded EventType = "match_recorded"
	EventTypeMatchDeleted  EventType = "match_deleted"
	EventTypePlayerCreated EventType = "player_created"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// MatchRecordedEvent is emitted after a match and its earnings have been
// committed
type MatchRecordedEvent struct {
	MatchID          uuid.UUID
	WinningTeam      string
	StakeAmount      decimal.Decimal
	ParticipantCount int
	WinnerCount      int
}

func (e MatchRecordedEvent) Type() EventType {
	return EventTypeMatchRecorded
}

// MatchDeletedEvent is emitted after a match has been removed by an admin
type MatchDeletedEvent struct {
	MatchID uuid.UUID
}

func (e MatchDeletedEvent) Type() EventType {
	return EventTypeMatchDeleted
}

// PlayerCreatedEvent is emitted after a new player registration commits
type PlayerCreatedEvent struct {
	PlayerID uuid.UUID
	Name     string
	Team     string
}

func (e PlayerCreatedEvent) Type() EventType {
	return EventTypePlayerCreated
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking
	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus holds pending events coupled to a unit of work and
// flushes them to the underlying bus only after the transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event // stashed until Flush
}

// NewTransactionalBus creates a transactional wrapper around the given bus
func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish queues an event until the enclosing transaction commits
func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events; called after a successful DB commit
func (b *TransactionalBus) Flush(ctx context.Context) {
	// Events are processed independently of the transaction lifecycle, so a
	// background context is used instead of the (possibly expired) tx context.
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
}

// Discard drops pending events; called after a DB rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
