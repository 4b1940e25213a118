package history

import (
	"context"
	"fmt"
	"slices"

	"github.com/Temutjin2k/batoda/internal/domain/models"
	wrap "github.com/Temutjin2k/batoda/pkg/logger/wrapper"
)

type TripSource interface {
	Trips(ctx context.Context) ([]models.Trip, error)
}

// View is a read-only view over the trip history.
type View struct {
	source TripSource
}

func NewView(source TripSource) *View {
	return &View{source: source}
}

func (v *View) List(ctx context.Context) ([]models.Trip, error) {
	ctx = wrap.WithAction(ctx, "list_trips")

	trips, err := v.source.Trips(ctx)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("failed to load trips: %w", err))
	}
	return slices.Clone(trips), nil
}

// Summary aggregates the completed trips. Cancelled trips are not counted.
func (v *View) Summary(ctx context.Context) (models.TripSummary, error) {
	trips, err := v.List(ctx)
	if err != nil {
		return models.TripSummary{}, err
	}
	return Summarize(trips), nil
}

func Summarize(trips []models.Trip) models.TripSummary {
	var (
		sum   models.TripSummary
		stars int
	)
	for _, t := range trips {
		if !t.Completed() {
			continue
		}
		sum.TotalTrips++
		sum.TotalSpent += t.Fare
		stars += t.Rating
	}
	if sum.TotalTrips > 0 {
		sum.AverageRating = float64(stars) / float64(sum.TotalTrips)
	}
	return sum
}
