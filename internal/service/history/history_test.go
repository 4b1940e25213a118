package history

import (
	"context"
	"errors"
	"testing"

	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/internal/domain/types"
)

type trips []models.Trip

func (t trips) Trips(context.Context) ([]models.Trip, error) {
	return t, nil
}

type failing struct{ err error }

func (f failing) Trips(context.Context) ([]models.Trip, error) {
	return nil, f.err
}

var sample = trips{
	{ID: "T-201", Fare: 50, Rating: 5, Status: types.HistoryCompleted},
	{ID: "T-198", Fare: 45, Rating: 4, Status: types.HistoryCompleted},
	{ID: "T-195", Fare: 60, Rating: 5, Status: types.HistoryCompleted},
	{ID: "T-190", Fare: 55, Rating: 4, Status: types.HistoryCompleted},
	{ID: "T-185", Fare: 70, Rating: 5, Status: types.HistoryCancelled},
}

func TestView_Summary(t *testing.T) {
	got, err := NewView(sample).Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	want := models.TripSummary{TotalTrips: 4, TotalSpent: 210, AverageRating: 4.5}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestView_ListKeepsOrder(t *testing.T) {
	list, err := NewView(sample).List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 5 || list[0].ID != "T-201" || list[4].ID != "T-185" {
		t.Fatalf("unexpected list %v", list)
	}

	list[0].Fare = 0
	if sample[0].Fare != 50 {
		t.Fatalf("list must be a copy")
	}
}

func TestSummarize_Empty(t *testing.T) {
	if got := Summarize(nil); got != (models.TripSummary{}) {
		t.Fatalf("expected zero summary, got %+v", got)
	}
}

func TestView_SourceError(t *testing.T) {
	boom := errors.New("db down")
	if _, err := NewView(failing{boom}).Summary(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected source error, got %v", err)
	}
}
