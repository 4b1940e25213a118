package alerts

import (
	"context"
	"fmt"

	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/pkg/logger"
	wrap "github.com/Temutjin2k/batoda/pkg/logger/wrapper"
	"github.com/Temutjin2k/batoda/pkg/metrics"
	"github.com/google/uuid"
)

type Service struct {
	feed   Feed
	store  ReadStateStore
	logger logger.Logger
}

func NewService(feed Feed, store ReadStateStore, logger logger.Logger) *Service {
	return &Service{
		feed:   feed,
		store:  store,
		logger: logger,
	}
}

// List returns the passenger's alerts and how many of them are unread.
func (s *Service) List(ctx context.Context, passengerID uuid.UUID) ([]models.Alert, int, error) {
	ctx = wrap.WithAction(ctx, "list_alerts")

	reg, err := s.registry(ctx, passengerID)
	if err != nil {
		return nil, 0, wrap.Error(ctx, err)
	}
	return reg.List(), reg.UnreadCount(), nil
}

// MarkRead marks one alert as read and returns the new unread count.
func (s *Service) MarkRead(ctx context.Context, passengerID uuid.UUID, alertID string) (int, error) {
	ctx = wrap.WithAction(ctx, "mark_alert_read")

	reg, err := s.registry(ctx, passengerID)
	if err != nil {
		return 0, wrap.Error(ctx, err)
	}

	if !reg.MarkRead(alertID) {
		return reg.UnreadCount(), nil
	}
	if err := s.store.MarkRead(ctx, passengerID, alertID); err != nil {
		return 0, wrap.Error(ctx, fmt.Errorf("failed to save read state: %w", err))
	}
	metrics.AlertsMarkedReadTotal.Inc()

	return reg.UnreadCount(), nil
}

// MarkAllRead marks the whole feed as read.
func (s *Service) MarkAllRead(ctx context.Context, passengerID uuid.UUID) (int, error) {
	ctx = wrap.WithAction(ctx, "mark_all_alerts_read")

	reg, err := s.registry(ctx, passengerID)
	if err != nil {
		return 0, wrap.Error(ctx, err)
	}

	changed := reg.MarkAllRead()
	if len(changed) == 0 {
		return 0, nil
	}
	if err := s.store.MarkRead(ctx, passengerID, changed...); err != nil {
		return 0, wrap.Error(ctx, fmt.Errorf("failed to save read state: %w", err))
	}
	metrics.AlertsMarkedReadTotal.Add(float64(len(changed)))

	s.logger.Debug(ctx, "alerts marked as read", "count", len(changed))
	return reg.UnreadCount(), nil
}

// registry builds the passenger's registry from the feed and the stored read flags.
func (s *Service) registry(ctx context.Context, passengerID uuid.UUID) (*Registry, error) {
	feed, err := s.feed.Alerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load alerts: %w", err)
	}

	reg := NewRegistry(feed)

	read, err := s.store.ReadIDs(ctx, passengerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load read state: %w", err)
	}
	for _, id := range read {
		reg.MarkRead(id)
	}
	return reg, nil
}
