package handler

import (
	"context"
	"net/http"

	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/pkg/logger"
	wrap "github.com/Temutjin2k/batoda/pkg/logger/wrapper"
	"github.com/Temutjin2k/batoda/pkg/validator"
)

type Catalog interface {
	Locations(ctx context.Context) ([]models.Location, error)
	Drivers(ctx context.Context) ([]models.Driver, error)
}

type FleetService interface {
	Nearby(ctx context.Context, pickup string, limit int) ([]models.NearbyDriver, error)
}

type Places struct {
	catalog Catalog
	fleet   FleetService
	l       logger.Logger
}

func NewPlaces(catalog Catalog, fleet FleetService, l logger.Logger) *Places {
	return &Places{
		catalog: catalog,
		fleet:   fleet,
		l:       l,
	}
}

// Locations godoc
// @Summary      Pickup and destination choices
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /locations [get]
func (h *Places) Locations(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "list_locations")

	locations, err := h.catalog.Locations(ctx)
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to list locations", err)
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, envelope{"locations": locations}, nil); err != nil {
		h.l.Error(ctx, "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Drivers godoc
// @Summary      Tricycle drivers
// @Description  With pickup set, only available drivers are returned, nearest first.
// @Tags         Catalog
// @Produce      json
// @Param        pickup  query     string  false  "pickup location name"
// @Param        limit   query     int     false  "max drivers"
// @Success      200     {object}  map[string]any
// @Failure      404     {object}  map[string]string
// @Router       /drivers [get]
func (h *Places) Drivers(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "list_drivers")

	v := validator.New()
	qs := r.URL.Query()
	pickup := readString(qs, "pickup", "")
	limit := readInt(qs, "limit", 0, v)
	v.Check(limit >= 0 && limit <= 50, "limit", "must be between 0 and 50")
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	var (
		response envelope
		err      error
	)
	if pickup == "" {
		var drivers []models.Driver
		drivers, err = h.catalog.Drivers(ctx)
		response = envelope{"drivers": drivers}
	} else {
		var nearby []models.NearbyDriver
		nearby, err = h.fleet.Nearby(ctx, pickup, limit)
		response = envelope{"pickup": pickup, "drivers": nearby}
	}
	if err != nil {
		h.l.Warn(wrap.ErrorCtx(ctx, err), "failed to list drivers", "error", err.Error())
		serviceErrorResponse(w, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(ctx, "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
