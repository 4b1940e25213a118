package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Temutjin2k/batoda/internal/domain/models"
	"github.com/Temutjin2k/batoda/internal/domain/types"
	"github.com/Temutjin2k/batoda/pkg/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const serviceName = "postgres"

// Catalog reads drivers, locations, alerts and trip history seeded by the migrations.
type Catalog struct {
	db *pgxpool.Pool
}

func NewCatalog(db *pgxpool.Pool) *Catalog {
	return &Catalog{db: db}
}

const driverColumns = `
	d.id, d.name, d.status, d.eta_minutes, d.rating,
	l.name, l.latitude, l.longitude`

func (c *Catalog) Drivers(ctx context.Context) (drivers []models.Driver, err error) {
	defer observe("list_drivers", time.Now(), &err)

	q := `SELECT ` + driverColumns + `
		FROM drivers d
		JOIN locations l ON l.name = d.location
		ORDER BY d.id`

	rows, err := TxorDB(ctx, c.db).Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query drivers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

func (c *Catalog) Driver(ctx context.Context, id string) (d models.Driver, err error) {
	defer observe("get_driver", time.Now(), &err)

	q := `SELECT ` + driverColumns + `
		FROM drivers d
		JOIN locations l ON l.name = d.location
		WHERE d.id = $1`

	d, err = scanDriver(TxorDB(ctx, c.db).QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Driver{}, types.ErrDriverNotFound
	}
	return d, err
}

func scanDriver(row pgx.Row) (models.Driver, error) {
	var (
		d      models.Driver
		status string
	)
	err := row.Scan(
		&d.ID, &d.Name, &status, &d.ETA, &d.Rating,
		&d.Position.Name, &d.Position.Latitude, &d.Position.Longitude,
	)
	if err != nil {
		return models.Driver{}, err
	}
	d.Status = types.DriverStatus(status)
	return d, nil
}

func (c *Catalog) Locations(ctx context.Context) (locations []models.Location, err error) {
	defer observe("list_locations", time.Now(), &err)

	rows, err := TxorDB(ctx, c.db).Query(ctx, `SELECT name, latitude, longitude FROM locations ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query locations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l models.Location
		if err := rows.Scan(&l.Name, &l.Latitude, &l.Longitude); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func (c *Catalog) Location(ctx context.Context, name string) (l models.Location, err error) {
	defer observe("get_location", time.Now(), &err)

	err = TxorDB(ctx, c.db).
		QueryRow(ctx, `SELECT name, latitude, longitude FROM locations WHERE name = $1`, name).
		Scan(&l.Name, &l.Latitude, &l.Longitude)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Location{}, types.ErrLocationNotFound
	}
	return l, err
}

// Alerts are returned most recent first, with the read flags they were seeded with.
func (c *Catalog) Alerts(ctx context.Context) (alerts []models.Alert, err error) {
	defer observe("list_alerts", time.Now(), &err)

	rows, err := TxorDB(ctx, c.db).Query(ctx, `
		SELECT id, category, title, body, time_label, read
		FROM alerts
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			a        models.Alert
			category string
		)
		if err := rows.Scan(&a.ID, &category, &a.Title, &a.Body, &a.Time, &a.Read); err != nil {
			return nil, err
		}
		a.Category = types.AlertCategory(category)
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (c *Catalog) Trips(ctx context.Context) (trips []models.Trip, err error) {
	defer observe("list_trips", time.Now(), &err)

	rows, err := TxorDB(ctx, c.db).Query(ctx, `
		SELECT id, driver_name, plate, pickup, destination, fare, trip_date, trip_time, rating, status
		FROM trips
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query trips: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			t      models.Trip
			status string
		)
		err := rows.Scan(&t.ID, &t.DriverName, &t.Plate, &t.Pickup, &t.Destination,
			&t.Fare, &t.Date, &t.Time, &t.Rating, &status)
		if err != nil {
			return nil, err
		}
		t.Status = types.HistoryStatus(status)
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func observe(operation string, start time.Time, err *error) {
	metrics.RecordDatabaseQuery(serviceName, operation, *err, time.Since(start))
}
