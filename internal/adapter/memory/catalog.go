package memory

import (
	"context"
	"slices"

	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/internal/domain/types"
)

// Catalog serves the fixed BATODA sample data from memory.
type Catalog struct {
	drivers   []models.Driver
	locations []models.Location
	alerts    []models.Alert
	trips     []models.Trip
}

func NewCatalog() *Catalog {
	return &Catalog{
		drivers:   SampleDrivers(),
		locations: SampleLocations(),
		alerts:    SampleAlerts(),
		trips:     SampleTrips(),
	}
}

func (c *Catalog) Drivers(context.Context) ([]models.Driver, error) {
	return slices.Clone(c.drivers), nil
}

func (c *Catalog) Driver(_ context.Context, id string) (models.Driver, error) {
	for _, d := range c.drivers {
		if d.ID == id {
			return d, nil
		}
	}
	return models.Driver{}, types.ErrDriverNotFound
}

func (c *Catalog) Locations(context.Context) ([]models.Location, error) {
	return slices.Clone(c.locations), nil
}

func (c *Catalog) Location(_ context.Context, name string) (models.Location, error) {
	for _, l := range c.locations {
		if l.Name == name {
			return l, nil
		}
	}
	return models.Location{}, types.ErrLocationNotFound
}

func (c *Catalog) Alerts(context.Context) ([]models.Alert, error) {
	return slices.Clone(c.alerts), nil
}

func (c *Catalog) Trips(context.Context) ([]models.Trip, error) {
	return slices.Clone(c.trips), nil
}
