package booking

import (
	"context"

	"github.com/Temutjin2k/batoda/internal/domain/models"
)

type Catalog interface {
	Drivers(ctx context.Context) ([]models.Driver, error)
	Driver(ctx context.Context, id string) (models.Driver, error)
	Locations(ctx context.Context) ([]models.Location, error)
}

// Listener observes booking flow transitions. Implementations must not block.
type Listener interface {
	OnBookingEvent(ctx context.Context, event models.BookingEvent)
}

type ListenerFunc func(ctx context.Context, event models.BookingEvent)

func (f ListenerFunc) OnBookingEvent(ctx context.Context, event models.BookingEvent) {
	f(ctx, event)
}
