package databases

// go generate: mockery --name ReportDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bersihin/bersihin-api/geo"
	"github.com/bersihin/bersihin-api/models"
)

const reportName = "reports"

// ReportDatabase contains the methods to use with the report database
type ReportDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Report, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Report, error)
	FindPaginated(ctx context.Context, filter interface{}, limit, page int) ([]models.Report, error)
	InsertOne(ctx context.Context, report models.Report) error
	Nearby(ctx context.Context, origin geo.Coordinate, radiusKm float64, limit int) ([]models.NearbyReport, error)
}

type reportDatabase struct {
	db DatabaseHelper
}

// NewReportDatabase initializes a new instance of report database with the provided db connection
func NewReportDatabase(db DatabaseHelper) ReportDatabase {
	return &reportDatabase{
		db: db,
	}
}

func (c *reportDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Report, error) {
	report := &models.Report{}
	err := c.db.Collection(reportName).FindOne(ctx, filter).Decode(&report)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (c *reportDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Report, error) {
	var reports []models.Report
	cursor, err := c.db.Collection(reportName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (c *reportDatabase) FindPaginated(ctx context.Context, filter interface{}, limit, page int) ([]models.Report, error) {
	opts := newMongoPaginate(limit, page).getPaginatedOpts()
	opts.SetSort(bson.M{"_id": -1})
	return c.Find(ctx, filter, opts)
}

func (c *reportDatabase) InsertOne(ctx context.Context, report models.Report) error {
	_, err := c.db.Collection(reportName).InsertOne(ctx, report)
	return err
}

// nearbyRow is the shape $geoNear hands back: the report document plus the
// computed distance in meters.
type nearbyRow struct {
	models.Report  `bson:",inline"`
	DistanceMeters float64 `bson:"distanceMeters"`
}

// Nearby runs the radius search server-side via $geoNear against the 2dsphere
// index. Results come back ordered by ascending distance. Callers treat an
// error here as "procedure unavailable" and fall back to a manual scan.
func (c *reportDatabase) Nearby(ctx context.Context, origin geo.Coordinate, radiusKm float64, limit int) ([]models.NearbyReport, error) {
	pipeline := []bson.M{
		{
			"$geoNear": bson.M{
				"near":          models.NewGeoPoint(origin.Latitude, origin.Longitude),
				"distanceField": "distanceMeters",
				"maxDistance":   radiusKm * 1000,
				"spherical":     true,
			},
		},
		{"$limit": int64(limit)},
	}

	cursor, err := c.db.Collection(reportName).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var rows []nearbyRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	nearby := make([]models.NearbyReport, 0, len(rows))
	for _, row := range rows {
		nearby = append(nearby, models.NearbyReport{
			Report:     row.Report,
			DistanceKm: row.DistanceMeters / 1000,
		})
	}
	return nearby, nil
}
