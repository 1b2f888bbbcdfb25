package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/bersihin/bersihin-api/api"
	"github.com/bersihin/bersihin-api/config"
	"github.com/bersihin/bersihin-api/databases"
	"github.com/bersihin/bersihin-api/geo"
	"github.com/bersihin/bersihin-api/location"
	"github.com/bersihin/bersihin-api/models"
	"github.com/bersihin/bersihin-api/nearby"
	"github.com/bersihin/bersihin-api/rewards"
)

var (
	// Page denotes the starting Page for pagination results
	Page = 0
)

// Defaults for the nearby query when the client omits them
const (
	DefaultRadiusKm    = 5.0
	DefaultNearbyLimit = 50
)

// Report handles report-related requests
type Report struct {
	RDB     databases.ReportDatabase
	Nearby  *nearby.Service
	Rewards *rewards.Service
	Hub     *Hub
}

// CreateReportHandler creates a new report
func (re Report) CreateReportHandler(w http.ResponseWriter, r *http.Request) {
	var report models.Report

	// Parse the request body to get the report details
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if err := report.Validate(); err != nil {
		config.ErrorStatus("invalid report", http.StatusBadRequest, w, err)
		return
	}

	if userID, ok := api.UserIDFromContext(r.Context()); ok {
		report.UserID = userID
	}

	// Generate a new _id for the report
	report.ID = primitive.NewObjectID()
	// Set the createdAt field to the current time
	report.CreatedAt = primitive.NewDateTimeFromTime(time.Now())
	// Mirror the flat coordinates into the indexed GeoJSON point
	report.Location = models.NewGeoPoint(report.Latitude, report.Longitude)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := re.RDB.InsertOne(ctx, report); err != nil {
		config.ErrorStatus("failed to insert report", http.StatusInternalServerError, w, err)
		return
	}

	re.Rewards.AwardAsync(r.Context(), report.UserID, rewards.ActionCreateReport)
	re.Hub.BroadcastReport(report)

	b, err := json.Marshal(report)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// ReportByIDHandler returns a report by ID
func (re Report) ReportByIDHandler(w http.ResponseWriter, r *http.Request) {
	reportID := mux.Vars(r)["report_id"]

	zap.S().Debugf("report_id: %v", reportID)

	rID, err := primitive.ObjectIDFromHex(reportID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := re.RDB.FindOne(ctx, bson.M{"_id": rID})
	if err != nil {
		config.ErrorStatus("failed to get report by ID", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ReportsNearbyHandler returns the reports within a radius of the given
// origin, nearest first. Omitted coordinates fall back to the default map
// origin so the route never 400s on a fresh client.
func (re Report) ReportsNearbyHandler(w http.ResponseWriter, r *http.Request) {
	origin := location.DefaultCoordinate

	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")
	if latStr != "" && lonStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr != nil || lonErr != nil {
			config.ErrorStatus("failed to parse coordinates", http.StatusBadRequest, w, fmt.Errorf("lat: %v, lon: %v", latErr, lonErr))
			return
		}
		origin = geo.Coordinate{Latitude: lat, Longitude: lon}
	}

	radiusKm := DefaultRadiusKm
	if radiusStr := r.URL.Query().Get("radius"); radiusStr != "" {
		parsed, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil {
			config.ErrorStatus("failed to parse radius", http.StatusBadRequest, w, err)
			return
		}
		radiusKm = parsed
	}

	limit := DefaultNearbyLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			config.ErrorStatus("failed to parse limit", http.StatusBadRequest, w, err)
			return
		}
		limit = parsed
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := re.Nearby.FetchNearby(ctx, origin, radiusKm, limit)
	if err != nil {
		config.ErrorStatus("failed to get nearby reports", http.StatusBadRequest, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.NearbyReport{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ReportsByUserIDHandler returns all reports created by the given user
func (re Report) ReportsByUserIDHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	Limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		zap.S().Warnf(fmt.Sprintf("limit not set, using default of %v, err: %v", Limit|10, err))
	}
	Page = getPage(Page, r)

	zap.S().Debugf("user_id: '%v'", userID)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := re.RDB.FindPaginated(ctx, bson.M{"userId": userID}, Limit, Page)
	if err != nil {
		config.ErrorStatus("failed to get reports by user ID", http.StatusNotFound, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Report{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func getPage(Page int, r *http.Request) int {
	if r.URL.Query().Get("page") == "" {
		zap.S().Warnf("page not set, using default of %v", Page)
	} else {
		var err error
		Page, err = strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil {
			zap.S().Errorf(fmt.Sprintf("error parsing page number: %v", err))
		}
		if Page < 0 {
			zap.S().Warnf(fmt.Sprintf("cannot process page number less than 1. Got: %v", Page))
			return 0
		}
	}
	return Page
}
