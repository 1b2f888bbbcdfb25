// Package nearby implements the radius search behind the map: a server-side
// geo query when the store supports it, a manual scan when it does not, and
// a watcher that guarantees at most one in-flight request per caller.
package nearby

import (
	"context"
	"errors"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/bersihin/bersihin-api/databases"
	"github.com/bersihin/bersihin-api/geo"
	"github.com/bersihin/bersihin-api/models"
)

// Input validation sentinels
var (
	ErrInvalidOrigin = errors.New("origin is not a valid geographic coordinate")
	ErrInvalidRadius = errors.New("radius must be positive")
	ErrInvalidLimit  = errors.New("limit must be positive")
)

// Service answers radius searches against the report store
type Service struct {
	RDB databases.ReportDatabase
}

// NewService returns a nearby-report service over the given report database
func NewService(rdb databases.ReportDatabase) *Service {
	return &Service{RDB: rdb}
}

// FetchNearby returns the reports within radiusKm of origin, each annotated
// with its great-circle distance, ordered nearest first with ties broken by
// report id. The server-side geo procedure is preferred; if it is
// unavailable the reports are scanned and filtered here. Cancellation is
// returned as-is and is not a fallback trigger.
func (s *Service) FetchNearby(ctx context.Context, origin geo.Coordinate, radiusKm float64, limit int) ([]models.NearbyReport, error) {
	if !origin.Valid() {
		return nil, ErrInvalidOrigin
	}
	if radiusKm <= 0 {
		return nil, ErrInvalidRadius
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	reports, err := s.RDB.Nearby(ctx, origin, radiusKm, limit)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		zap.S().Warnw("geo procedure unavailable, scanning reports manually",
			"error", err,
		)
		reports, err = s.scanNearby(ctx, origin, radiusKm, limit)
		if err != nil {
			return nil, err
		}
	}

	sortByDistance(reports)
	return reports, nil
}

// scanNearby is the degraded path for stores without the geo index: pull the
// reports and compute distances caller-side.
func (s *Service) scanNearby(ctx context.Context, origin geo.Coordinate, radiusKm float64, limit int) ([]models.NearbyReport, error) {
	all, err := s.RDB.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	within := make([]models.NearbyReport, 0, len(all))
	for _, r := range all {
		d := geo.DistanceKm(origin, geo.Coordinate{Latitude: r.Latitude, Longitude: r.Longitude})
		if d <= radiusKm {
			within = append(within, models.NearbyReport{Report: r, DistanceKm: d})
		}
	}

	sortByDistance(within)
	if len(within) > limit {
		within = within[:limit]
	}
	return within, nil
}

// sortByDistance orders nearest first; equal distances fall back to report
// id ascending so the ordering is stable across fetches.
func sortByDistance(reports []models.NearbyReport) {
	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].DistanceKm != reports[j].DistanceKm {
			return reports[i].DistanceKm < reports[j].DistanceKm
		}
		return reports[i].ID.Hex() < reports[j].ID.Hex()
	})
}
