package types

type ServiceMode string

// Booking Service - passenger booking flow, alerts, trip history, nearby tricycles
// Auth Service - account creation and sign in against the identity provider
// Standalone - both services on one listener
const (
	BookingService ServiceMode = "booking-service"
	AuthService    ServiceMode = "auth-service"
	Standalone     ServiceMode = "standalone"
)

// DriverStatus is the availability of a tricycle driver.
type DriverStatus string

const (
	DriverAvailable DriverStatus = "available"
	DriverBusy      DriverStatus = "busy"
	DriverOffline   DriverStatus = "offline"
)

// UserRole
type UserRole string

func (r UserRole) String() string {
	return string(r)
}

const (
	RolePassenger UserRole = "PASSENGER"
	RoleDriver    UserRole = "DRIVER"
	RoleAnonymous UserRole = "ANONYMOUS"
)

// HistoryStatus is the final state of a past trip.
type HistoryStatus string

const (
	HistoryCompleted HistoryStatus = "completed"
	HistoryCancelled HistoryStatus = "cancelled"
)
