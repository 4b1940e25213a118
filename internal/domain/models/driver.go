package models

import "github.com/Temutjin2k/batoda/internal/domain/types"

// Driver is a tricycle driver. Immutable within a session.
type Driver struct {
	ID       string             `json:"id"` // plate code, e.g. BT-012
	Name     string             `json:"name"`
	Status   types.DriverStatus `json:"status"`
	ETA      int                `json:"eta_minutes"`
	Rating   float64            `json:"rating"` // 0..5
	Position Location           `json:"position"`
}

func (d Driver) Available() bool {
	return d.Status == types.DriverAvailable
}

// NearbyDriver is a driver annotated with its distance from a pickup location.
type NearbyDriver struct {
	Driver
	DistanceKm float64 `json:"distance_km"`
	Geohash    string  `json:"geohash"`
}
