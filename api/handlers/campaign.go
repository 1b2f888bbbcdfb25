package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/bersihin/bersihin-api/api"
	"github.com/bersihin/bersihin-api/campaigns"
	"github.com/bersihin/bersihin-api/config"
	"github.com/bersihin/bersihin-api/databases"
	"github.com/bersihin/bersihin-api/models"
)

// Campaign handles campaign-related requests
type Campaign struct {
	Service *campaigns.Service
	RDB     databases.ReportDatabase
}

// CampaignsHandler returns all campaigns, optionally filtered by status
func (c Campaign) CampaignsHandler(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !models.CampaignStatus(status).Valid() {
		config.ErrorStatus("invalid status filter", http.StatusBadRequest, w, errors.New("status must be upcoming, ongoing or completed"))
		return
	}
	userID, _ := api.UserIDFromContext(r.Context())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := c.Service.List(ctx, userID, status)
	if err != nil {
		config.ErrorStatus("failed to get campaigns", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.CampaignView{}
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CampaignByIDHandler returns a campaign by ID
func (c Campaign) CampaignByIDHandler(w http.ResponseWriter, r *http.Request) {
	campaignID := mux.Vars(r)["campaign_id"]

	zap.S().Debugf("campaign_id: %v", campaignID)

	cID, err := primitive.ObjectIDFromHex(campaignID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	userID, _ := api.UserIDFromContext(r.Context())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := c.Service.Get(ctx, cID, userID)
	if err != nil {
		config.ErrorStatus("failed to get campaign by ID", http.StatusNotFound, w, err)
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

// CreateCampaignHandler organizes a new campaign from an existing report
func (c Campaign) CreateCampaignHandler(w http.ResponseWriter, r *http.Request) {
	var campaign models.Campaign
	if err := json.NewDecoder(r.Body).Decode(&campaign); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	userID, _ := api.UserIDFromContext(r.Context())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	report, err := c.RDB.FindOne(ctx, bson.M{"_id": campaign.ReportID})
	if err != nil {
		config.ErrorStatus("failed to get report for campaign", http.StatusNotFound, w, err)
		return
	}

	created, err := c.Service.Create(ctx, campaign, report, userID)
	if err != nil {
		campaignError(w, "failed to create campaign", err)
		return
	}

	b, err := json.Marshal(created)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// JoinCampaignHandler adds the authenticated user to a campaign
func (c Campaign) JoinCampaignHandler(w http.ResponseWriter, r *http.Request) {
	campaignID := mux.Vars(r)["campaign_id"]

	cID, err := primitive.ObjectIDFromHex(campaignID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	userID, _ := api.UserIDFromContext(r.Context())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := c.Service.Join(ctx, cID, userID); err != nil {
		campaignError(w, "failed to join campaign", err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "joined campaign"}`))
}

// LeaveCampaignHandler removes the authenticated user from a campaign
func (c Campaign) LeaveCampaignHandler(w http.ResponseWriter, r *http.Request) {
	campaignID := mux.Vars(r)["campaign_id"]

	cID, err := primitive.ObjectIDFromHex(campaignID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}
	userID, _ := api.UserIDFromContext(r.Context())

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := c.Service.Leave(ctx, cID, userID); err != nil {
		campaignError(w, "failed to leave campaign", err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"message": "left campaign"}`))
}

// campaignError maps the service sentinels onto HTTP statuses
func campaignError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, campaigns.ErrNotAuthenticated):
		config.ErrorStatus(message, http.StatusUnauthorized, w, err)
	case errors.Is(err, campaigns.ErrAlreadyJoined), errors.Is(err, campaigns.ErrCampaignFull):
		config.ErrorStatus(message, http.StatusConflict, w, err)
	case errors.Is(err, campaigns.ErrInvalidCampaign):
		config.ErrorStatus(message, http.StatusBadRequest, w, err)
	case errors.Is(err, campaigns.ErrCampaignNotFound):
		config.ErrorStatus(message, http.StatusNotFound, w, err)
	default:
		config.ErrorStatus(message, http.StatusInternalServerError, w, err)
	}
}
