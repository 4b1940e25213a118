package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/pkg/hasher"
	"github.com/Temutjin2k/batoda/pkg/logger"
	wrap "github.com/Temutjin2k/batoda/pkg/logger/wrapper"
	"github.com/Temutjin2k/batoda/pkg/metrics"
)

const (
	TripExchange = "trip_topic"

	serviceName = "booking-service"
)

type Publisher interface {
	Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) error
}

// TripStatusPublisher forwards status-changing booking events to the trip
// exchange with the routing key trip.status.{status}. Events are queued so
// that a slow broker never holds up a booking flow.
type TripStatusPublisher struct {
	client   Publisher
	exchange string
	queue    chan models.TripStatusMessage

	attempts int
	backoff  time.Duration
	now      func() time.Time

	l logger.Logger
}

func NewTripStatusPublisher(client Publisher, buffer int, log logger.Logger) *TripStatusPublisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &TripStatusPublisher{
		client:   client,
		exchange: TripExchange,
		queue:    make(chan models.TripStatusMessage, buffer),
		attempts: 3,
		backoff:  500 * time.Millisecond,
		now:      time.Now,
		l:        log,
	}
}

// OnBookingEvent enqueues the event. A full queue drops it.
func (p *TripStatusPublisher) OnBookingEvent(ctx context.Context, event models.BookingEvent) {
	if !event.Type.StatusChanging() {
		return
	}

	msg := p.message(event)
	select {
	case p.queue <- msg:
	default:
		ctx = wrap.WithAction(ctx, "rabbitmq_enqueue_trip_status")
		p.l.Warn(ctx, "trip status queue is full, dropping event", "event", msg.Event, "status", msg.Status)
		metrics.RecordRabbitMQPublish(serviceName, p.exchange, fmt.Errorf("queue full"))
	}
}

func (p *TripStatusPublisher) message(event models.BookingEvent) models.TripStatusMessage {
	snap := event.Snapshot
	ts := p.now().UTC().Format(time.RFC3339Nano)

	msg := models.TripStatusMessage{
		PassengerID: snap.PassengerID.String(),
		Event:       event.Type.String(),
		OldStatus:   event.Previous.String(),
		Status:      snap.Trip.Status.String(),
		Pickup:      snap.Trip.Pickup,
		Destination: snap.Trip.Destination,
		Fare:        snap.Fare,
		Rating:      snap.Rating,
		Timestamp:   ts,
	}
	if snap.Trip.Driver != nil {
		msg.DriverID = snap.Trip.Driver.ID
	}
	msg.CorrelationID = hasher.Key(msg.PassengerID, msg.Event, msg.Status, ts)
	return msg
}

// Run publishes queued messages until ctx is done.
func (p *TripStatusPublisher) Run(ctx context.Context) {
	ctx = wrap.WithAction(ctx, "rabbitmq_publish_trip_status")
	for {
		select {
		case <-ctx.Done():
			p.l.Debug(ctx, "trip status publisher stopped", "pending", len(p.queue))
			return
		case msg := <-p.queue:
			err := p.publish(ctx, msg)
			metrics.RecordRabbitMQPublish(serviceName, p.exchange, err)
			if err != nil {
				p.l.Error(wrap.ErrorCtx(ctx, err), "failed to publish trip status", err, "status", msg.Status)
			}
		}
	}
}

func (p *TripStatusPublisher) publish(ctx context.Context, msg models.TripStatusMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("failed to marshal message: %w", err))
	}

	key := "trip.status." + msg.Status

	return retry(ctx, p.attempts, p.backoff, func() error {
		return p.client.Publish(ctx, p.exchange, key, amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			MessageId:     msg.CorrelationID,
			CorrelationId: msg.CorrelationID,
			Body:          body,
			Timestamp:     p.now(),
		})
	})
}
