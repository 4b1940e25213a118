package microservices

import (
	"context"
	"time"

	"github.com/Temutjin2k/batoda/config"
	"github.com/Temutjin2k/batoda/internal/adapter/http/server"
	wshandler "github.com/Temutjin2k/batoda/internal/adapter/http/ws"
	"github.com/Temutjin2k/batoda/internal/adapter/rabbit"
	"github.com/Temutjin2k/batoda/internal/service/alerts"
	"github.com/Temutjin2k/batoda/internal/service/booking"
	"github.com/Temutjin2k/batoda/internal/service/fleet"
	"github.com/Temutjin2k/batoda/internal/service/history"
	"github.com/Temutjin2k/batoda/pkg/logger"
	"github.com/Temutjin2k/batoda/pkg/metrics"
	rabbitclient "github.com/Temutjin2k/batoda/pkg/rabbit"
	ws "github.com/Temutjin2k/batoda/pkg/wsHub"
)

// BookingService serves the passenger booking flow. In standalone mode it
// also serves the auth routes on the same listener.
type BookingService struct {
	storage    *storage
	booking    *booking.Service
	hub        *ws.ConnectionHub
	rabbit     *rabbitclient.RabbitMQ
	publisher  *rabbit.TripStatusPublisher
	httpServer *server.API

	cfg config.Config
	log logger.Logger
}

func NewBooking(ctx context.Context, cfg config.Config, log logger.Logger) (*BookingService, error) {
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to setup storage", err)
		return nil, err
	}

	s := &BookingService{storage: store, cfg: cfg, log: log}

	// realtime
	s.hub = ws.NewConnHub(log)
	s.hub.OnCountChange(func(n int) {
		metrics.WebSocketConnectionsGauge.WithLabelValues(string(cfg.Mode)).Set(float64(n))
	})

	listeners := []booking.Listener{wshandler.NewBookingNotifier(s.hub, log)}

	if cfg.RabbitMQ.Enabled {
		client, err := rabbitclient.New(ctx, cfg.RabbitMQ.GetDSN(), log)
		if err != nil {
			s.close(ctx)
			log.Error(ctx, "failed to connect to rabbitmq", err)
			return nil, err
		}
		s.rabbit = client
		if err := client.DeclareTopicExchange(ctx, rabbit.TripExchange); err != nil {
			s.close(ctx)
			return nil, err
		}
		s.publisher = rabbit.NewTripStatusPublisher(client, cfg.RabbitMQ.PublishBuffer, log)
		listeners = append(listeners, s.publisher)
		store.checks["rabbitmq"] = client.Ping
	}

	// services
	authSvc := newAuthService(cfg, store.users, log)
	s.booking = booking.NewService(store.catalog, booking.Config{
		Timing: booking.Timing{
			ConfirmDelay: cfg.Booking.ConfirmDelay,
			TickInterval: cfg.Booking.TickInterval,
			DefaultETA:   cfg.Booking.DefaultETA,
		},
		Fare:               cfg.Booking.Fare,
		Currency:           cfg.Booking.Currency,
		DefaultPickup:      cfg.Booking.DefaultPickup,
		DefaultDestination: cfg.Booking.DefaultDestination,
		IdleTimeout:        cfg.Booking.IdleTimeout,
	}, booking.NewScheduler(), log, listeners...)

	s.httpServer, err = server.New(cfg, server.Services{
		Auth:         authSvc,
		Booking:      s.booking,
		Alerts:       alerts.NewService(store.catalog, store.readState, log),
		History:      history.NewView(store.catalog),
		Catalog:      store.catalog,
		Fleet:        fleet.NewService(store.catalog, cfg.Booking.NearbyLimit),
		Passenger:    wshandler.NewPassengerWS(s.hub, authSvc, s.booking, cfg.WebSocket.AuthTimeout, log),
		HealthChecks: store.checks,
	}, log)
	if err != nil {
		s.close(ctx)
		log.Error(ctx, "failed to setup http server", err)
		return nil, err
	}

	return s, nil
}

func (s *BookingService) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.publisher != nil {
		go s.publisher.Run(runCtx)
	}
	go s.booking.RunEvictor(runCtx, s.cfg.Booking.EvictInterval)

	return serve(runCtx, string(s.cfg.Mode), s.httpServer, s.log, s.close)
}

// close stops accepting requests first, then ends every flow so no timer
// fires into a closed hub or broker.
func (s *BookingService) close(ctx context.Context) {
	if s.httpServer != nil {
		if err := s.httpServer.Stop(ctx); err != nil {
			s.log.Warn(ctx, "failed to gracefully close http server", "error", err.Error())
		}
	}
	if s.booking != nil {
		s.booking.Close()
	}
	if s.hub != nil {
		s.hub.Close()
	}
	if s.rabbit != nil {
		closeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := s.rabbit.Close(closeCtx); err != nil {
			s.log.Warn(ctx, "failed to close rabbitmq", "error", err.Error())
		}
	}
	s.storage.close()
}
