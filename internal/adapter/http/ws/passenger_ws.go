package wshandler

import (
	"context"
	"net/http"
	"time"

	"github.com/Temutjin2k/batoda/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/internal/domain/types"
	"github.com/Temutjin2k/batoda/pkg/logger"
	wrap "github.com/Temutjin2k/batoda/pkg/logger/wrapper"
	"github.com/Temutjin2k/batoda/pkg/validator"
	ws "github.com/Temutjin2k/batoda/pkg/wsHub"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type AuthService interface {
	RoleCheck(ctx context.Context, token string) (*models.User, error)
}

type BookingService interface {
	Snapshot(ctx context.Context, passengerID uuid.UUID) (models.BookingSnapshot, error)
}

// PassengerWS serves GET /ws/passengers. The first frame must authenticate.
type PassengerWS struct {
	connections *ws.ConnectionHub
	auth        AuthService
	booking     BookingService
	authTimeout time.Duration
	upgrader    websocket.Upgrader
	log         logger.Logger
}

func NewPassengerWS(connections *ws.ConnectionHub, auth AuthService, booking BookingService, authTimeout time.Duration, log logger.Logger) *PassengerWS {
	return &PassengerWS{
		connections: connections,
		auth:        auth,
		booking:     booking,
		authTimeout: authTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: log,
	}
}

func (h *PassengerWS) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "passenger_ws")

	raw, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn(ctx, "failed to upgrade connection", "error", err.Error())
		return
	}

	conn := ws.NewConn(context.Background(), uuid.Nil, raw)

	user, err := h.authenticate(ctx, conn)
	if err != nil {
		h.log.Debug(wrap.ErrorCtx(ctx, err), "websocket authentication failed", "error", err.Error())
		_ = errorResponse(conn, "authentication failed")
		_ = conn.Close()
		return
	}
	ctx = wrap.WithUserID(ctx, user.ID.String())

	conn.Identify(user.ID)
	if err := h.connections.Add(conn); err != nil {
		h.log.Error(ctx, "failed to register websocket connection", err)
		_ = conn.Close()
		return
	}
	defer h.connections.Remove(conn)

	if err := conn.Send(dto.AuthWebSocketResp{Type: "auth_ok", PassengerID: user.ID.String()}); err != nil {
		h.log.Warn(ctx, "failed to send auth confirmation", "error", err.Error())
		return
	}

	if snap, err := h.booking.Snapshot(ctx, user.ID); err == nil {
		_ = conn.Send(models.StatusUpdateWebSocketMessage{
			EventType: "SNAPSHOT",
			Data:      dto.NewBookingResponse(snap),
		})
	}

	h.log.Info(ctx, "passenger connected")

	// the stream is server-to-client; incoming frames are ignored
	err = conn.Listen(func(map[string]any) error { return nil })
	h.log.Info(ctx, "passenger disconnected", "reason", err.Error())
}

func (h *PassengerWS) authenticate(ctx context.Context, conn *ws.Conn) (*models.User, error) {
	req := dto.AuthWebSocketReq{}
	if err := conn.ReadJSON(&req, h.authTimeout); err != nil {
		return nil, err
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		_ = failedValidationResponse(conn, v.Errors)
		return nil, types.ErrValidation
	}

	user, err := h.auth.RoleCheck(ctx, req.Token)
	if err != nil {
		return nil, err
	}
	if user.Role != types.RolePassenger.String() {
		return nil, types.ErrAuthentication
	}
	return user, nil
}
