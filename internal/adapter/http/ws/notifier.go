package wshandler

import (
	"context"
	"errors"

	"github.com/Temutjin2k/batoda/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/pkg/logger"
	wrap "github.com/Temutjin2k/batoda/pkg/logger/wrapper"
	ws "github.com/Temutjin2k/batoda/pkg/wsHub"
)

// BookingNotifier pushes every booking transition to the passenger's socket.
type BookingNotifier struct {
	connections *ws.ConnectionHub
	log         logger.Logger
}

func NewBookingNotifier(connections *ws.ConnectionHub, log logger.Logger) *BookingNotifier {
	return &BookingNotifier{
		connections: connections,
		log:         log,
	}
}

func (n *BookingNotifier) OnBookingEvent(ctx context.Context, event models.BookingEvent) {
	ctx = wrap.WithAction(ctx, "ws_push_booking_event")

	msg := models.StatusUpdateWebSocketMessage{
		EventType: event.Type,
		Data:      dto.NewBookingResponse(event.Snapshot),
	}

	err := n.connections.SendTo(event.Snapshot.PassengerID, msg)
	switch {
	case err == nil:
	case errors.Is(err, ws.ErrConnIsNotFound):
		// passenger is not listening
	default:
		n.log.Warn(ctx, "failed to push booking event", "event", event.Type, "error", err.Error())
	}
}
