package handler

import (
	"context"
	"net/http"

	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/pkg/logger"
	wrap "github.com/Temutjin2k/batoda/pkg/logger/wrapper"
	"github.com/google/uuid"
)

type AlertsService interface {
	List(ctx context.Context, passengerID uuid.UUID) ([]models.Alert, int, error)
	MarkRead(ctx context.Context, passengerID uuid.UUID, alertID string) (int, error)
	MarkAllRead(ctx context.Context, passengerID uuid.UUID) (int, error)
}

type Alerts struct {
	s AlertsService
	l logger.Logger
}

func NewAlerts(s AlertsService, l logger.Logger) *Alerts {
	return &Alerts{
		s: s,
		l: l,
	}
}

// List godoc
// @Summary      Alerts feed, most recent first
// @Tags         Alerts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]string
// @Router       /alerts [get]
func (h *Alerts) List(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "list_alerts")

	id, ok := passengerID(ctx)
	if !ok {
		unauthorizedResponse(w)
		return
	}

	alerts, unread, err := h.s.List(ctx, id)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to list alerts", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"alerts": alerts, "unread_count": unread}, nil); err != nil {
		h.l.Error(ctx, "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// MarkRead godoc
// @Summary      Mark one alert as read
// @Description  Unknown or already read alerts are ignored.
// @Tags         Alerts
// @Produce      json
// @Security     BearerAuth
// @Param        alert_id  path      string  true  "alert id"
// @Success      200       {object}  map[string]int
// @Router       /alerts/{alert_id}/read [post]
func (h *Alerts) MarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "mark_alert_read")

	id, ok := passengerID(ctx)
	if !ok {
		unauthorizedResponse(w)
		return
	}

	unread, err := h.s.MarkRead(ctx, id, r.PathValue("alert_id"))
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to mark alert as read", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"unread_count": unread}, nil); err != nil {
		h.l.Error(ctx, "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// MarkAllRead godoc
// @Summary      Mark every alert as read
// @Tags         Alerts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]int
// @Router       /alerts/read-all [post]
func (h *Alerts) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "mark_all_alerts_read")

	id, ok := passengerID(ctx)
	if !ok {
		unauthorizedResponse(w)
		return
	}

	unread, err := h.s.MarkAllRead(ctx, id)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to mark alerts as read", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"unread_count": unread}, nil); err != nil {
		h.l.Error(ctx, "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
