package models

import "github.com/Temutjin2k/batoda/internal/domain/types"

type StatusUpdateWebSocketMessage struct {
	EventType types.BookingEvent `json:"event_type"`
	Data      any                `json:"data"`
}

// TripStatusMessage is published to the message broker on status-changing events.
type TripStatusMessage struct {
	PassengerID   string  `json:"passenger_id"`
	Event         string  `json:"event"`
	OldStatus     string  `json:"old_status"`
	Status        string  `json:"status"`
	DriverID      string  `json:"driver_id,omitempty"`
	Pickup        string  `json:"pickup"`
	Destination   string  `json:"destination"`
	Fare          float64 `json:"fare,omitempty"`
	Rating        int     `json:"rating,omitempty"`
	Timestamp     string  `json:"timestamp"`
	CorrelationID string  `json:"correlation_id"`
}
