package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/internal/domain/types"
	"github.com/Temutjin2k/batoda/pkg/logger"
	wrap "github.com/Temutjin2k/batoda/pkg/logger/wrapper"
	"github.com/Temutjin2k/batoda/pkg/metrics"
	"github.com/google/uuid"
)

type Config struct {
	Timing             Timing
	Fare               float64
	Currency           string
	DefaultPickup      string
	DefaultDestination string

	// IdleTimeout is how long an untouched flow at home or completed is kept.
	// Zero keeps flows until End or Close.
	IdleTimeout time.Duration
}

// Service keeps one booking flow per passenger.
type Service struct {
	catalog   Catalog
	cfg       Config
	scheduler Scheduler
	listeners []Listener
	logger    logger.Logger

	mu     sync.Mutex
	flows  map[uuid.UUID]*flowEntry
	closed bool
	now    func() time.Time
}

type flowEntry struct {
	ctrl     *Controller
	lastUsed time.Time
}

func NewService(catalog Catalog, cfg Config, scheduler Scheduler, logger logger.Logger, listeners ...Listener) *Service {
	if scheduler == nil {
		scheduler = NewScheduler()
	}
	return &Service{
		catalog:   catalog,
		cfg:       cfg,
		scheduler: scheduler,
		listeners: listeners,
		logger:    logger,
		flows:     make(map[uuid.UUID]*flowEntry),
		now:       time.Now,
	}
}

func (s *Service) Snapshot(ctx context.Context, passengerID uuid.UUID) (models.BookingSnapshot, error) {
	ctx = wrap.WithAction(ctx, "get_booking")

	flow, err := s.flow(ctx, passengerID)
	if err != nil {
		return models.BookingSnapshot{}, wrap.Error(ctx, err)
	}
	return flow.Snapshot(), nil
}

// SetRoute updates the route. An empty value keeps the current end.
func (s *Service) SetRoute(ctx context.Context, passengerID uuid.UUID, pickup, destination string) (models.BookingSnapshot, error) {
	ctx = wrap.WithAction(ctx, "set_route")

	flow, err := s.flow(ctx, passengerID)
	if err != nil {
		return models.BookingSnapshot{}, wrap.Error(ctx, err)
	}

	snap, err := flow.SetRoute(pickup, destination)
	if err != nil {
		return snap, wrap.Error(ctx, err)
	}
	return snap, nil
}

func (s *Service) SelectDriver(ctx context.Context, passengerID uuid.UUID, driverID string) (models.BookingSnapshot, error) {
	ctx = wrap.WithAction(ctx, "select_driver")

	flow, err := s.flow(ctx, passengerID)
	if err != nil {
		return models.BookingSnapshot{}, wrap.Error(ctx, err)
	}

	driver, err := s.catalog.Driver(ctx, driverID)
	if err != nil {
		return flow.Snapshot(), wrap.Error(ctx, fmt.Errorf("failed to find driver %q: %w", driverID, err))
	}

	snap, err := flow.SelectDriver(driver)
	if err != nil {
		return snap, wrap.Error(ctx, err)
	}
	return snap, nil
}

func (s *Service) Book(ctx context.Context, passengerID uuid.UUID) (models.BookingSnapshot, error) {
	return s.do(ctx, "book_trip", passengerID, (*Controller).Book)
}

func (s *Service) ConfirmArrival(ctx context.Context, passengerID uuid.UUID) (models.BookingSnapshot, error) {
	return s.do(ctx, "confirm_arrival", passengerID, (*Controller).ConfirmArrival)
}

func (s *Service) RequestCancel(ctx context.Context, passengerID uuid.UUID) (models.BookingSnapshot, error) {
	return s.do(ctx, "request_cancel", passengerID, (*Controller).RequestCancel)
}

func (s *Service) ConfirmCancel(ctx context.Context, passengerID uuid.UUID) (models.BookingSnapshot, error) {
	return s.do(ctx, "confirm_cancel", passengerID, (*Controller).ConfirmCancel)
}

func (s *Service) DismissCancel(ctx context.Context, passengerID uuid.UUID) (models.BookingSnapshot, error) {
	return s.do(ctx, "dismiss_cancel", passengerID, (*Controller).DismissCancel)
}

func (s *Service) Reset(ctx context.Context, passengerID uuid.UUID) (models.BookingSnapshot, error) {
	return s.do(ctx, "reset_booking", passengerID, (*Controller).Reset)
}

func (s *Service) Rate(ctx context.Context, passengerID uuid.UUID, stars int) (models.BookingSnapshot, error) {
	return s.do(ctx, "rate_trip", passengerID, func(c *Controller) (models.BookingSnapshot, error) {
		return c.Rate(stars)
	})
}

// End disposes the passenger's flow. The next call opens a fresh one.
func (s *Service) End(ctx context.Context, passengerID uuid.UUID) {
	s.mu.Lock()
	entry, ok := s.flows[passengerID]
	delete(s.flows, passengerID)
	s.mu.Unlock()

	if ok {
		s.dispose(entry.ctrl, false)
		s.logger.Debug(wrap.WithAction(ctx, "end_booking"), "booking flow disposed", "passenger_id", passengerID)
	}
}

// Close disposes every flow. Later calls fail with ErrFlowDisposed.
func (s *Service) Close() {
	s.mu.Lock()
	flows := s.flows
	s.flows = make(map[uuid.UUID]*flowEntry)
	s.closed = true
	s.mu.Unlock()

	for _, entry := range flows {
		s.dispose(entry.ctrl, false)
	}
}

// EvictIdle ends flows untouched since before now minus IdleTimeout that sit
// at home or completed. Flows with a booking or ride running are kept.
func (s *Service) EvictIdle(ctx context.Context, now time.Time) int {
	if s.cfg.IdleTimeout <= 0 {
		return 0
	}
	cutoff := now.Add(-s.cfg.IdleTimeout)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, entry := range s.flows {
		if !entry.lastUsed.Before(cutoff) {
			continue
		}
		if s.dispose(entry.ctrl, true) {
			delete(s.flows, id)
			evicted++
		}
	}

	if evicted > 0 {
		s.logger.Debug(wrap.WithAction(ctx, "evict_idle_flows"), "idle booking flows disposed", "count", evicted)
	}
	return evicted
}

// RunEvictor calls EvictIdle every interval until ctx is done.
func (s *Service) RunEvictor(ctx context.Context, interval time.Duration) {
	if s.cfg.IdleTimeout <= 0 || interval <= 0 {
		return
	}
	task := s.scheduler.Every(interval, func() {
		s.EvictIdle(ctx, s.now())
	})
	<-ctx.Done()
	task.Stop()
}

func (s *Service) do(ctx context.Context, action string, passengerID uuid.UUID, op func(*Controller) (models.BookingSnapshot, error)) (models.BookingSnapshot, error) {
	ctx = wrap.WithAction(ctx, action)

	flow, err := s.flow(ctx, passengerID)
	if err != nil {
		return models.BookingSnapshot{}, wrap.Error(ctx, err)
	}

	snap, err := op(flow)
	if err != nil {
		return snap, wrap.Error(ctx, err)
	}
	return snap, nil
}

func (s *Service) flow(ctx context.Context, passengerID uuid.UUID) (*Controller, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, types.ErrFlowDisposed
	}
	if entry, ok := s.flows[passengerID]; ok {
		entry.lastUsed = s.now()
		s.mu.Unlock()
		return entry.ctrl, nil
	}
	s.mu.Unlock()

	locations, err := s.catalog.Locations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load locations: %w", err)
	}
	names := make([]string, 0, len(locations))
	for _, l := range locations {
		names = append(names, l.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, types.ErrFlowDisposed
	}
	// another request may have opened it meanwhile
	if entry, ok := s.flows[passengerID]; ok {
		entry.lastUsed = s.now()
		return entry.ctrl, nil
	}

	flow := NewController(passengerID, Options{
		Timing:    s.cfg.Timing,
		Fare:      s.cfg.Fare,
		Currency:  s.cfg.Currency,
		Scheduler: s.scheduler,
		Locations: names,
		Pickup:    s.cfg.DefaultPickup,
		Dest:      s.cfg.DefaultDestination,
		Notify:    s.dispatch,
	})
	s.flows[passengerID] = &flowEntry{ctrl: flow, lastUsed: s.now()}
	metrics.BookingFlowsGauge.Inc()

	s.logger.Debug(ctx, "booking flow opened", "passenger_id", passengerID)
	return flow, nil
}

func (s *Service) dispose(flow *Controller, onlyIdle bool) bool {
	status, ok := flow.dispose(onlyIdle)
	if !ok {
		return false
	}
	// a ride cut short never emits the event that would lower the gauge
	if status == types.StatusInProgress {
		metrics.ActiveCountdownsGauge.Dec()
	}
	metrics.BookingFlowsGauge.Dec()
	return true
}

func (s *Service) dispatch(event models.BookingEvent) {
	ctx := wrap.WithAction(context.Background(), "booking_event")
	ctx = wrap.WithUserID(ctx, event.Snapshot.PassengerID.String())

	metrics.BookingEventsTotal.WithLabelValues(string(event.Type)).Inc()
	status := event.Snapshot.Trip.Status
	switch {
	case status == types.StatusInProgress && event.Previous != types.StatusInProgress:
		metrics.ActiveCountdownsGauge.Inc()
	case status != types.StatusInProgress && event.Previous == types.StatusInProgress:
		metrics.ActiveCountdownsGauge.Dec()
	}

	if event.Type.StatusChanging() {
		s.logger.Info(ctx, "booking status changed",
			"event", event.Type,
			"old_status", event.Previous.String(),
			"new_status", status.String(),
		)
	}

	for _, l := range s.listeners {
		l.OnBookingEvent(ctx, event)
	}
}
