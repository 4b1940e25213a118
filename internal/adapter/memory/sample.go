package memory

import (
	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/internal/domain/types"
)

// Approximate coordinates around Basco, Batanes.
var (
	bascoTerminal   = models.Location{Name: "Basco Terminal", Latitude: 20.4487, Longitude: 121.9702}
	marlboroHills   = models.Location{Name: "Marlboro Hills", Latitude: 20.3998, Longitude: 121.9620}
	valuganBeach    = models.Location{Name: "Valugan Boulder Beach", Latitude: 20.4516, Longitude: 121.9808}
	mahataoPort     = models.Location{Name: "Mahatao Port", Latitude: 20.4170, Longitude: 121.9480}
	ivanaArch       = models.Location{Name: "Ivana Arch", Latitude: 20.3720, Longitude: 121.9160}
	tayidLighthouse = models.Location{Name: "Tayid Lighthouse", Latitude: 20.4114, Longitude: 121.9689}
	naidiHills      = models.Location{Name: "Naidi Hills", Latitude: 20.4553, Longitude: 121.9660}
	publicMarket    = models.Location{Name: "Basco Public Market", Latitude: 20.4503, Longitude: 121.9690}
	generalHospital = models.Location{Name: "Batanes General Hospital", Latitude: 20.4470, Longitude: 121.9730}
)

func SampleLocations() []models.Location {
	return []models.Location{
		bascoTerminal,
		marlboroHills,
		valuganBeach,
		mahataoPort,
		ivanaArch,
		tayidLighthouse,
		naidiHills,
		publicMarket,
		generalHospital,
	}
}

func SampleDrivers() []models.Driver {
	return []models.Driver{
		{ID: "BT-012", Name: "Kuya Ben", Status: types.DriverAvailable, ETA: 5, Rating: 4.8, Position: bascoTerminal},
		{ID: "BT-018", Name: "Kuya Pedro", Status: types.DriverAvailable, ETA: 8, Rating: 4.6, Position: publicMarket},
		{ID: "BT-020", Name: "Kuya Mario", Status: types.DriverAvailable, ETA: 12, Rating: 4.9, Position: naidiHills},
	}
}

// SampleAlerts is ordered most recent first.
func SampleAlerts() []models.Alert {
	return []models.Alert{
		{
			ID:       "1",
			Category: types.AlertTrip,
			Title:    "Tricycle Arrived!",
			Body:     "Your tricycle BT-012 (Kuya Ben) has arrived at Basco Terminal.",
			Time:     "2 mins ago",
		},
		{
			ID:       "2",
			Category: types.AlertAnnouncement,
			Title:    "BATODA Announcement",
			Body:     "New route to Tayid Lighthouse now available. Fare: ₱70.",
			Time:     "1 hour ago",
		},
		{
			ID:       "3",
			Category: types.AlertSuccess,
			Title:    "Trip Completed",
			Body:     "Your trip to Marlboro Hills is complete. Rate your driver Kuya Ben!",
			Time:     "Yesterday",
			Read:     true,
		},
		{
			ID:       "4",
			Category: types.AlertPromo,
			Title:    "Special Offer",
			Body:     "Free ride on your 10th trip! You have 7 trips so far.",
			Time:     "2 days ago",
			Read:     true,
		},
		{
			ID:       "5",
			Category: types.AlertAnnouncement,
			Title:    "BATODA Announcement",
			Body:     "Fare increase notice: ₱5 added to all routes starting March 1, 2026.",
			Time:     "3 days ago",
			Read:     true,
		},
	}
}

func SampleTrips() []models.Trip {
	return []models.Trip{
		{ID: "T-201", DriverName: "Kuya Ben", Plate: "BT-012", Pickup: "Basco Terminal", Destination: "Marlboro Hills", Fare: 50, Date: "Feb 21, 2026", Time: "9:30 AM", Rating: 5, Status: types.HistoryCompleted},
		{ID: "T-198", DriverName: "Kuya Juan", Plate: "BT-010", Pickup: "Naidi Hills", Destination: "Basco Terminal", Fare: 45, Date: "Feb 20, 2026", Time: "3:15 PM", Rating: 4, Status: types.HistoryCompleted},
		{ID: "T-195", DriverName: "Kuya Pedro", Plate: "BT-018", Pickup: "Mahatao Port", Destination: "Ivana Arch", Fare: 60, Date: "Feb 19, 2026", Time: "10:00 AM", Rating: 5, Status: types.HistoryCompleted},
		{ID: "T-190", DriverName: "Kuya Mario", Plate: "BT-020", Pickup: "Valugan Boulder Beach", Destination: "Basco Terminal", Fare: 55, Date: "Feb 18, 2026", Time: "1:45 PM", Rating: 4, Status: types.HistoryCompleted},
		{ID: "T-185", DriverName: "Kuya Ben", Plate: "BT-012", Pickup: "Basco Terminal", Destination: "Tayid Lighthouse", Fare: 70, Date: "Feb 17, 2026", Time: "8:00 AM", Rating: 5, Status: types.HistoryCancelled},
	}
}
