package dto

import (
	"math"

	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/pkg/validator"
)

type RouteRequest struct {
	Pickup      string `json:"pickup" validate:"max=100"`
	Destination string `json:"destination" validate:"max=100"`
}

func (r *RouteRequest) Validate(v *validator.Validator) {
	v.Struct(r)
	v.Check(r.Pickup != "" || r.Destination != "", "route", "pickup or destination must be provided")
}

type SelectDriverRequest struct {
	DriverID string `json:"driver_id" validate:"required,max=16"`
}

func (r *SelectDriverRequest) Validate(v *validator.Validator) {
	v.Struct(r)
}

// RatingRequest leaves the 1..5 range check to the booking flow.
type RatingRequest struct {
	Stars int `json:"stars"`
}

type Fare struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type BookingResponse struct {
	Status        string         `json:"status"`
	Step          int            `json:"step"`
	StepLabel     string         `json:"step_label"`
	Pickup        string         `json:"pickup"`
	Destination   string         `json:"destination"`
	Driver        *models.Driver `json:"driver"`
	Submitting    bool           `json:"submitting"`
	CancelPending bool           `json:"cancel_pending"`
	ETARemaining  int            `json:"eta_remaining"`
	Progress      float64        `json:"progress"`
	Rating        int            `json:"rating,omitempty"`
	Fare          *Fare          `json:"fare,omitempty"`
}

func NewBookingResponse(s models.BookingSnapshot) BookingResponse {
	resp := BookingResponse{
		Status:        s.Trip.Status.String(),
		Step:          s.Trip.Status.Step(),
		StepLabel:     s.Trip.Status.StepLabel(),
		Pickup:        s.Trip.Pickup,
		Destination:   s.Trip.Destination,
		Driver:        s.Trip.Driver,
		Submitting:    s.Submitting,
		CancelPending: s.CancelPending,
		ETARemaining:  s.ETARemaining,
		Progress:      math.Round(s.Progress()),
		Rating:        s.Rating,
	}
	if s.Fare > 0 {
		resp.Fare = &Fare{Amount: s.Fare, Currency: s.Currency}
	}
	return resp
}
