package models

import (
	"github.com/Temutjin2k/batoda/internal/domain/types"
	"github.com/google/uuid"
)

// TripRequest is the passenger's current booking.
type TripRequest struct {
	Pickup      string
	Destination string
	Driver      *Driver
	Status      types.TripStatus
}

// BookingSnapshot is an immutable copy of a booking flow's state.
type BookingSnapshot struct {
	PassengerID   uuid.UUID
	Trip          TripRequest
	Submitting    bool
	CancelPending bool
	ETARemaining  int
	Rating        int
	Fare          float64 // zero until the trip is completed
	Currency      string
}

// Progress returns the countdown progress in percent, 0 outside of a ride.
func (s BookingSnapshot) Progress() float64 {
	switch s.Trip.Status {
	case types.StatusCompleted:
		return 100
	case types.StatusInProgress:
	default:
		return 0
	}
	if s.Trip.Driver == nil || s.Trip.Driver.ETA <= 0 {
		return 0
	}
	total := float64(s.Trip.Driver.ETA)
	return (total - float64(s.ETARemaining)) / total * 100
}

// BookingEvent is emitted after every booking flow transition.
type BookingEvent struct {
	Type     types.BookingEvent
	Previous types.TripStatus
	Snapshot BookingSnapshot
}
