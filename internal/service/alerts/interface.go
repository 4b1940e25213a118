package alerts

import (
	"context"

	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/google/uuid"
)

type Feed interface {
	Alerts(ctx context.Context) ([]models.Alert, error)
}

// ReadStateStore remembers which alerts a passenger has read.
type ReadStateStore interface {
	ReadIDs(ctx context.Context, passengerID uuid.UUID) ([]string, error)
	MarkRead(ctx context.Context, passengerID uuid.UUID, alertIDs ...string) error
}
