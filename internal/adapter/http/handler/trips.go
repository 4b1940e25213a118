package handler

import (
	"context"
	"net/http"

	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/pkg/logger"
	wrap "github.com/Temutjin2k/batoda/pkg/logger/wrapper"
)

type HistoryService interface {
	List(ctx context.Context) ([]models.Trip, error)
	Summary(ctx context.Context) (models.TripSummary, error)
}

type Trips struct {
	s HistoryService
	l logger.Logger
}

func NewTrips(s HistoryService, l logger.Logger) *Trips {
	return &Trips{
		s: s,
		l: l,
	}
}

// List godoc
// @Summary      Trip history with totals
// @Tags         Trips
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Router       /trips [get]
func (h *Trips) List(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "list_trips")

	if _, ok := passengerID(ctx); !ok {
		unauthorizedResponse(w)
		return
	}

	trips, err := h.s.List(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to list trips", err)
		serviceErrorResponse(w, err)
		return
	}

	summary, err := h.s.Summary(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to summarize trips", err)
		serviceErrorResponse(w, err)
		return
	}

	response := envelope{
		"trips":   trips,
		"summary": summary,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(ctx, "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
