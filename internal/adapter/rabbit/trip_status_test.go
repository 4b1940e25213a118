package rabbit

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/internal/domain/types"
	"github.com/Temutjin2k/batoda/pkg/logger"
	"github.com/google/uuid"
)

type published struct {
	exchange, key string
	msg           amqp.Publishing
}

type fakeBroker struct {
	mu       sync.Mutex
	failures int
	out      []published
	done     chan struct{}
}

func (f *fakeBroker) Publish(_ context.Context, exchange, key string, msg amqp.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return errors.New("channel closed")
	}
	f.out = append(f.out, published{exchange, key, msg})
	if f.done != nil {
		f.done <- struct{}{}
	}
	return nil
}

func bookedEvent() models.BookingEvent {
	return models.BookingEvent{
		Type:     types.EventTripBooked,
		Previous: types.StatusHome,
		Snapshot: models.BookingSnapshot{
			PassengerID: uuid.New(),
			Trip: models.TripRequest{
				Pickup:      "Basco Terminal",
				Destination: "Marlboro Hills",
				Driver:      &models.Driver{ID: "BT-012", Name: "Kuya Ben"},
				Status:      types.StatusBooked,
			},
		},
	}
}

func TestTripStatusPublisher_SkipsNonStatusEvents(t *testing.T) {
	p := NewTripStatusPublisher(&fakeBroker{}, 4, logger.Discard())

	ev := bookedEvent()
	ev.Type = types.EventETAUpdated
	p.OnBookingEvent(context.Background(), ev)

	if len(p.queue) != 0 {
		t.Fatalf("queued %d messages for an ETA tick", len(p.queue))
	}
}

func TestTripStatusPublisher_DropsWhenFull(t *testing.T) {
	p := NewTripStatusPublisher(&fakeBroker{}, 1, logger.Discard())

	p.OnBookingEvent(context.Background(), bookedEvent())
	p.OnBookingEvent(context.Background(), bookedEvent())

	if len(p.queue) != 1 {
		t.Fatalf("queue length = %d, want 1", len(p.queue))
	}
}

func TestTripStatusPublisher_PublishesWithRetry(t *testing.T) {
	broker := &fakeBroker{failures: 2, done: make(chan struct{}, 1)}
	p := NewTripStatusPublisher(broker, 4, logger.Discard())
	p.backoff = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	ev := bookedEvent()
	p.OnBookingEvent(ctx, ev)

	select {
	case <-broker.done:
	case <-time.After(2 * time.Second):
		t.Fatal("message was not published")
	}

	broker.mu.Lock()
	defer broker.mu.Unlock()

	got := broker.out[0]
	if got.exchange != TripExchange || got.key != "trip.status.booked" {
		t.Fatalf("published to %s/%s", got.exchange, got.key)
	}

	var msg models.TripStatusMessage
	if err := json.Unmarshal(got.msg.Body, &msg); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if msg.PassengerID != ev.Snapshot.PassengerID.String() || msg.DriverID != "BT-012" || msg.OldStatus != "home" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if got.msg.CorrelationId == "" || got.msg.CorrelationId != msg.CorrelationID {
		t.Fatalf("correlation id mismatch: %q vs %q", got.msg.CorrelationId, msg.CorrelationID)
	}
}
