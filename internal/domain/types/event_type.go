package types

// BookingEvent names a change in a passenger's booking flow.
type BookingEvent string

func (e BookingEvent) String() string {
	return string(e)
}

const (
	EventRouteChanged     BookingEvent = "ROUTE_CHANGED"
	EventDriverSelected   BookingEvent = "DRIVER_SELECTED"
	EventBookingSubmitted BookingEvent = "BOOKING_SUBMITTED"
	EventTripBooked       BookingEvent = "TRIP_BOOKED"
	EventCancelRequested  BookingEvent = "CANCEL_REQUESTED"
	EventCancelDismissed  BookingEvent = "CANCEL_DISMISSED"
	EventTripCancelled    BookingEvent = "TRIP_CANCELLED"
	EventRideStarted      BookingEvent = "RIDE_STARTED"
	EventETAUpdated       BookingEvent = "ETA_UPDATED"
	EventTripCompleted    BookingEvent = "TRIP_COMPLETED"
	EventTripRated        BookingEvent = "TRIP_RATED"
	EventBookingFlowReset BookingEvent = "BOOKING_RESET"
)

// StatusChanging reports whether the event moves the flow to another TripStatus.
func (e BookingEvent) StatusChanging() bool {
	switch e {
	case EventTripBooked, EventTripCancelled, EventRideStarted, EventTripCompleted, EventBookingFlowReset:
		return true
	default:
		return false
	}
}
