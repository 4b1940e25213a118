package rabbit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Temutjin2k/batoda/internal/domain/types"
	"github.com/Temutjin2k/batoda/pkg/logger"
	wrap "github.com/Temutjin2k/batoda/pkg/logger/wrapper"
	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrClosed = errors.New("rabbitmq client is closed")

// RabbitMQ is a connection with one channel that is re-dialled on demand.
type RabbitMQ struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	closed  bool // set by Close, never reset
	dsn     string

	log logger.Logger
}

func New(ctx context.Context, dsn string, log logger.Logger) (*RabbitMQ, error) {
	r := &RabbitMQ{dsn: dsn, log: log}

	conn, ch, err := dial(dsn)
	if err != nil {
		return nil, err
	}
	r.attach(conn, ch)

	log.Info(wrap.WithAction(ctx, types.ActionRabbitMQConnected), "connected to rabbitMQ")
	return r, nil
}

func dial(dsn string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.DialConfig(dsn, amqp.Config{Heartbeat: 10 * time.Second})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	return conn, ch, nil
}

// attach installs conn and ch and logs when either goes away.
func (r *RabbitMQ) attach(conn *amqp.Connection, ch *amqp.Channel) {
	r.conn, r.channel = conn, ch

	connClose := conn.NotifyClose(make(chan *amqp.Error, 1))
	chClose := ch.NotifyClose(make(chan *amqp.Error, 1))

	go func() {
		ctx := wrap.WithAction(context.Background(), types.ActionRabbitConnectionClosed)

		var err *amqp.Error
		select {
		case err = <-connClose:
		case err = <-chClose:
		}
		if err != nil {
			r.log.Error(ctx, "RabbitMQ connection lost", err)
			return
		}
		r.log.Debug(ctx, "RabbitMQ connection closed gracefully")
	}()
}

// IsConnectionClosed reports whether a reconnect is needed.
func (r *RabbitMQ) IsConnectionClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.brokenLocked()
}

func (r *RabbitMQ) brokenLocked() bool {
	return r.conn == nil || r.conn.IsClosed() || r.channel == nil || r.channel.IsClosed()
}

// Ping reports an error when the connection is down. Used by health checks.
func (r *RabbitMQ) Ping(context.Context) error {
	if r.IsConnectionClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

// DeclareTopicExchange declares a durable topic exchange.
func (r *RabbitMQ) DeclareTopicExchange(ctx context.Context, name string) error {
	ch, err := r.Channel(ctx)
	if err != nil {
		return err
	}
	if err := ch.ExchangeDeclare(name, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", name, err)
	}
	return nil
}

// Channel returns a live channel, reconnecting first if needed.
func (r *RabbitMQ) Channel(ctx context.Context) (*amqp.Channel, error) {
	if err := r.EnsureConnection(ctx); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrClosed
	}
	return r.channel, nil
}

func (r *RabbitMQ) EnsureConnection(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if !r.brokenLocked() {
		return nil
	}

	r.log.Warn(ctx, "rabbit connection closed, reconnecting...")
	return r.reconnectLocked(ctx)
}

func (r *RabbitMQ) reconnectLocked(ctx context.Context) error {
	if r.dsn == "" {
		return fmt.Errorf("dsn is empty: can't reconnect")
	}

	var (
		conn *amqp.Connection
		ch   *amqp.Channel
		err  error
	)
	for i := range 5 {
		if conn, ch, err = dial(r.dsn); err == nil {
			break
		}

		wait := time.Duration(i+1) * 2 * time.Second
		r.log.Debug(ctx, "reconnect attempt failed", "attempt", i+1, "retry_in", wait.String())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	if err != nil {
		return fmt.Errorf("failed to reconnect to RabbitMQ: %w", err)
	}

	r.attach(conn, ch)
	r.log.Info(wrap.WithAction(ctx, types.ActionRabbitReconnected), "RabbitMQ reconnected successfully")
	return nil
}

// Close closes the channel and the connection. Later calls are no-ops.
func (r *RabbitMQ) Close(ctx context.Context) error {
	ctx = wrap.WithAction(ctx, types.ActionRabbitConnectionClosing)

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	ch, conn := r.channel, r.conn
	r.channel, r.conn = nil, nil
	r.mu.Unlock()

	if ch != nil {
		if err := closeWithCtx(ctx, ch.Close); err != nil && ctx.Err() == nil {
			r.log.Error(ctx, "error closing channel", err)
		}
	}

	if conn != nil {
		if err := closeWithCtx(ctx, conn.Close); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("failed to close connection: %w", err)
		}
	}

	r.log.Info(wrap.WithAction(ctx, types.ActionRabbitConnectionClosed), "rabbitMQ closed")
	return nil
}

func closeWithCtx(ctx context.Context, fn func() error) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- fn()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Publish sends msg to exchange with routing key key on the current channel.
func (r *RabbitMQ) Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) error {
	ch, err := r.Channel(ctx)
	if err != nil {
		return err
	}
	if err := ch.PublishWithContext(ctx, exchange, key, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish with context: %w", err)
	}
	return nil
}
