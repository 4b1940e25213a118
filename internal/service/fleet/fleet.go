package fleet

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/Temutjin2k/batoda/internal/domain/models"
	wrap "github.com/Temutjin2k/batoda/pkg/logger/wrapper"
	"github.com/dhconnelly/rtreego"
	"github.com/mmcloughlin/geohash"
)

const (
	geohashPrecision = 7
	pointTolerance   = 0.00001
)

type Catalog interface {
	Drivers(ctx context.Context) ([]models.Driver, error)
	Location(ctx context.Context, name string) (models.Location, error)
}

// Service answers which tricycles are close to a pickup point.
type Service struct {
	catalog      Catalog
	defaultLimit int
}

func NewService(catalog Catalog, defaultLimit int) *Service {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	return &Service{
		catalog:      catalog,
		defaultLimit: defaultLimit,
	}
}

// driverPoint stores a driver in the R-tree.
type driverPoint struct {
	driver models.Driver
	rect   rtreego.Rect
}

func (p driverPoint) Bounds() rtreego.Rect {
	return p.rect
}

// Nearby returns up to limit available drivers ordered by distance from pickup.
func (s *Service) Nearby(ctx context.Context, pickup string, limit int) ([]models.NearbyDriver, error) {
	ctx = wrap.WithAction(ctx, "nearby_drivers")

	if limit <= 0 {
		limit = s.defaultLimit
	}

	origin, err := s.catalog.Location(ctx, pickup)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("failed to find pickup %q: %w", pickup, err))
	}

	drivers, err := s.catalog.Drivers(ctx)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("failed to load drivers: %w", err))
	}

	tree := rtreego.NewTree(2, 25, 50)
	for _, d := range drivers {
		if !d.Available() {
			continue
		}
		p := rtreego.Point{d.Position.Latitude, d.Position.Longitude}
		tree.Insert(driverPoint{driver: d, rect: p.ToRect(pointTolerance)})
	}
	if tree.Size() == 0 {
		return []models.NearbyDriver{}, nil
	}

	k := min(limit, tree.Size())
	found := tree.NearestNeighbors(k, rtreego.Point{origin.Latitude, origin.Longitude})

	result := make([]models.NearbyDriver, 0, len(found))
	for _, item := range found {
		p, ok := item.(driverPoint)
		if !ok {
			continue
		}
		pos := p.driver.Position
		result = append(result, models.NearbyDriver{
			Driver:     p.driver,
			DistanceKm: math.Round(distanceKm(origin, pos)*100) / 100,
			Geohash:    geohash.EncodeWithPrecision(pos.Latitude, pos.Longitude, geohashPrecision),
		})
	}

	// the tree ranks by planar distance, the result is ranked by great-circle distance
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DistanceKm < result[j].DistanceKm
	})

	return result, nil
}
