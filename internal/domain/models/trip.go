package models

import "github.com/Temutjin2k/batoda/internal/domain/types"

// Trip is a past journey shown in the trip history.
type Trip struct {
	ID          string              `json:"id"`
	DriverName  string              `json:"driver"`
	Plate       string              `json:"plate"`
	Pickup      string              `json:"pickup"`
	Destination string              `json:"destination"`
	Fare        float64             `json:"fare"`
	Date        string              `json:"date"`
	Time        string              `json:"time"`
	Rating      int                 `json:"rating"`
	Status      types.HistoryStatus `json:"status"`
}

func (t Trip) Completed() bool {
	return t.Status == types.HistoryCompleted
}

// TripSummary is derived from a trip collection on every request.
type TripSummary struct {
	TotalTrips    int     `json:"total_trips"`
	TotalSpent    float64 `json:"total_spent"`
	AverageRating float64 `json:"average_rating"`
}
