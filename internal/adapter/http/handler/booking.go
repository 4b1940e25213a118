package handler

import (
	"context"
	"net/http"

	"github.com/Temutjin2k/batoda/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/pkg/logger"
	wrap "github.com/Temutjin2k/batoda/pkg/logger/wrapper"
	"github.com/Temutjin2k/batoda/pkg/validator"
	"github.com/google/uuid"
)

type BookingService interface {
	Snapshot(ctx context.Context, passengerID uuid.UUID) (models.BookingSnapshot, error)
	SetRoute(ctx context.Context, passengerID uuid.UUID, pickup, destination string) (models.BookingSnapshot, error)
	SelectDriver(ctx context.Context, passengerID uuid.UUID, driverID string) (models.BookingSnapshot, error)
	Book(ctx context.Context, passengerID uuid.UUID) (models.BookingSnapshot, error)
	ConfirmArrival(ctx context.Context, passengerID uuid.UUID) (models.BookingSnapshot, error)
	RequestCancel(ctx context.Context, passengerID uuid.UUID) (models.BookingSnapshot, error)
	ConfirmCancel(ctx context.Context, passengerID uuid.UUID) (models.BookingSnapshot, error)
	DismissCancel(ctx context.Context, passengerID uuid.UUID) (models.BookingSnapshot, error)
	Rate(ctx context.Context, passengerID uuid.UUID, stars int) (models.BookingSnapshot, error)
	Reset(ctx context.Context, passengerID uuid.UUID) (models.BookingSnapshot, error)
}

type Booking struct {
	s BookingService
	l logger.Logger
}

func NewBooking(s BookingService, l logger.Logger) *Booking {
	return &Booking{
		s: s,
		l: l,
	}
}

type bookingOp func(ctx context.Context, passengerID uuid.UUID) (models.BookingSnapshot, error)

// Get godoc
// @Summary      Current booking state
// @Tags         Booking
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.BookingResponse
// @Failure      401  {object}  map[string]string
// @Router       /booking [get]
func (h *Booking) Get(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "get_booking", http.StatusOK, h.s.Snapshot)
}

// SetRoute godoc
// @Summary      Change pickup and/or destination
// @Tags         Booking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      dto.RouteRequest  true  "route"
// @Success      200      {object}  dto.BookingResponse
// @Failure      409      {object}  map[string]string
// @Failure      422      {object}  map[string]any
// @Router       /booking/route [put]
func (h *Booking) SetRoute(w http.ResponseWriter, r *http.Request) {
	req := &dto.RouteRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	h.run(w, r, "set_route", http.StatusOK, func(ctx context.Context, id uuid.UUID) (models.BookingSnapshot, error) {
		return h.s.SetRoute(ctx, id, req.Pickup, req.Destination)
	})
}

// SelectDriver godoc
// @Summary      Select a tricycle driver
// @Tags         Booking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      dto.SelectDriverRequest  true  "driver"
// @Success      200      {object}  dto.BookingResponse
// @Failure      404      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Router       /booking/driver [post]
func (h *Booking) SelectDriver(w http.ResponseWriter, r *http.Request) {
	req := &dto.SelectDriverRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	h.run(w, r, "select_driver", http.StatusOK, func(ctx context.Context, id uuid.UUID) (models.BookingSnapshot, error) {
		return h.s.SelectDriver(ctx, id, req.DriverID)
	})
}

// Book godoc
// @Summary      Book the selected tricycle
// @Description  Accepted immediately; the trip becomes booked after the confirmation delay.
// @Tags         Booking
// @Produce      json
// @Security     BearerAuth
// @Success      202  {object}  dto.BookingResponse
// @Failure      409  {object}  map[string]string
// @Failure      422  {object}  map[string]any
// @Router       /booking/book [post]
func (h *Booking) Book(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "book_trip", http.StatusAccepted, h.s.Book)
}

// ConfirmArrival godoc
// @Summary      Confirm the tricycle arrived and start the ride
// @Tags         Booking
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.BookingResponse
// @Failure      409  {object}  map[string]string
// @Router       /booking/arrival [post]
func (h *Booking) ConfirmArrival(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "confirm_arrival", http.StatusOK, h.s.ConfirmArrival)
}

// RequestCancel godoc
// @Summary      Ask to cancel the booked trip
// @Tags         Booking
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.BookingResponse
// @Failure      409  {object}  map[string]string
// @Router       /booking/cancel [post]
func (h *Booking) RequestCancel(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "request_cancel", http.StatusOK, h.s.RequestCancel)
}

// ConfirmCancel godoc
// @Summary      Confirm the cancellation
// @Tags         Booking
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.BookingResponse
// @Failure      409  {object}  map[string]string
// @Router       /booking/cancel/confirm [post]
func (h *Booking) ConfirmCancel(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "confirm_cancel", http.StatusOK, h.s.ConfirmCancel)
}

// DismissCancel godoc
// @Summary      Keep the booking
// @Tags         Booking
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.BookingResponse
// @Failure      409  {object}  map[string]string
// @Router       /booking/cancel/dismiss [post]
func (h *Booking) DismissCancel(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "dismiss_cancel", http.StatusOK, h.s.DismissCancel)
}

// Rate godoc
// @Summary      Rate the completed trip
// @Tags         Booking
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      dto.RatingRequest  true  "stars 1..5"
// @Success      200      {object}  dto.BookingResponse
// @Failure      409      {object}  map[string]string
// @Failure      422      {object}  map[string]any
// @Router       /booking/rating [post]
func (h *Booking) Rate(w http.ResponseWriter, r *http.Request) {
	req := &dto.RatingRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	h.run(w, r, "rate_trip", http.StatusOK, func(ctx context.Context, id uuid.UUID) (models.BookingSnapshot, error) {
		return h.s.Rate(ctx, id, req.Stars)
	})
}

// Reset godoc
// @Summary      Start a new booking after a completed trip
// @Tags         Booking
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.BookingResponse
// @Failure      409  {object}  map[string]string
// @Router       /booking/reset [post]
func (h *Booking) Reset(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "reset_booking", http.StatusOK, h.s.Reset)
}

func (h *Booking) run(w http.ResponseWriter, r *http.Request, action string, status int, op bookingOp) {
	ctx := wrap.WithAction(r.Context(), action)

	id, ok := passengerID(ctx)
	if !ok {
		unauthorizedResponse(w)
		return
	}

	snap, err := op(ctx, id)
	if err != nil {
		if GetCode(err) == http.StatusInternalServerError {
			h.l.Error(wrap.ErrorCtx(ctx, err), "booking operation failed", err)
		} else {
			h.l.Debug(wrap.ErrorCtx(ctx, err), "booking operation rejected", "error", err.Error())
		}
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, status, envelope{"booking": dto.NewBookingResponse(snap)}, nil); err != nil {
		h.l.Error(ctx, "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
