package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBus_EmitReachesAllSubscribers(t *testing.T) {
	bus := NewBus()
	first := make(chan Event, 1)
	second := make(chan Event, 1)

	bus.Subscribe(EventTypeMatchRecorded, func(ctx context.Context, e Event) {
		first <- e
	})
	bus.Subscribe(EventTypeMatchRecorded, func(ctx context.Context, e Event) {
		second <- e
	})

	event := MatchRecordedEvent{
		MatchID:     uuid.New(),
		WinningTeam: "Team A",
		StakeAmount: decimal.RequireFromString("100.00"),
	}
	bus.Emit(context.Background(), event)

	for _, ch := range []chan Event{first, second} {
		select {
		case got := <-ch:
			assert.Equal(t, event, got)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive the event")
		}
	}
}

func TestBus_EmitIgnoresOtherEventTypes(t *testing.T) {
	bus := NewBus()
	received := make(chan Event, 1)

	bus.Subscribe(EventTypeMatchDeleted, func(ctx context.Context, e Event) {
		received <- e
	})

	bus.Emit(context.Background(), PlayerCreatedEvent{PlayerID: uuid.New()})

	select {
	case <-received:
		t.Fatal("handler received an event of another type")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBus_RecoversFromPanickingHandler(t *testing.T) {
	bus := NewBus()
	survived := make(chan struct{}, 1)

	bus.Subscribe(EventTypeMatchDeleted, func(ctx context.Context, e Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypeMatchDeleted, func(ctx context.Context, e Event) {
		survived <- struct{}{}
	})

	bus.Emit(context.Background(), MatchDeletedEvent{MatchID: uuid.New()})

	select {
	case <-survived:
	case <-time.After(time.Second):
		t.Fatal("panicking handler prevented delivery to the other subscriber")
	}
}

func TestTransactionalBus_HoldsEventsUntilFlush(t *testing.T) {
	bus := NewBus()
	received := make(chan Event, 2)
	bus.Subscribe(EventTypeMatchRecorded, func(ctx context.Context, e Event) {
		received <- e
	})

	tb := NewTransactionalBus(bus)
	tb.Publish(MatchRecordedEvent{MatchID: uuid.New()})
	tb.Publish(MatchRecordedEvent{MatchID: uuid.New()})

	select {
	case <-received:
		t.Fatal("event escaped before the transaction committed")
	case <-time.After(50 * time.Millisecond):
	}

	tb.Flush(context.Background())

	for i := 0; i < 2; i++ {
		select {
		case <-received:
		case <-time.After(time.Second):
			t.Fatal("pending event was not flushed")
		}
	}
}

func TestTransactionalBus_DiscardDropsPending(t *testing.T) {
	bus := NewBus()
	received := make(chan Event, 1)
	bus.Subscribe(EventTypeMatchRecorded, func(ctx context.Context, e Event) {
		received <- e
	})

	tb := NewTransactionalBus(bus)
	tb.Publish(MatchRecordedEvent{MatchID: uuid.New()})
	tb.Discard()
	tb.Flush(context.Background())

	select {
	case <-received:
		t.Fatal("discarded event was still delivered")
	case <-time.After(50 * time.Millisecond):
	}
}
