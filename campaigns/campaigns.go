// Package campaigns owns campaign participation: the capacity invariant on
// join, idempotent leave, and the TTL-cached list reads that front the store.
package campaigns

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/bersihin/bersihin-api/cache"
	"github.com/bersihin/bersihin-api/databases"
	"github.com/bersihin/bersihin-api/models"
	"github.com/bersihin/bersihin-api/rewards"
)

// CacheTTL bounds how long a campaign list is served without a fresh read
const CacheTTL = 30 * time.Second

// Validation sentinels, each a distinct user-recoverable failure
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrAlreadyJoined    = errors.New("already joined this campaign")
	ErrCampaignFull     = errors.New("campaign is full")
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrInvalidCampaign  = errors.New("invalid campaign")
)

// Service implements campaign CRUD and the join/leave state transition
type Service struct {
	CDB     databases.CampaignDatabase
	PDB     databases.ParticipantDatabase
	Rewards *rewards.Service
	Cache   *cache.Cache
}

// NewService wires a campaign service over the given databases. The cache is
// required; passing a fresh one is fine for callers that do not share it.
func NewService(cdb databases.CampaignDatabase, pdb databases.ParticipantDatabase, rs *rewards.Service, c *cache.Cache) *Service {
	return &Service{CDB: cdb, PDB: pdb, Rewards: rs, Cache: c}
}

// cacheKey scopes a cached list to the viewer and status filter
func cacheKey(userID, status string) string {
	if userID == "" {
		userID = "guest"
	}
	if status == "" {
		status = "all"
	}
	return userID + "|" + status
}

// cloneViews copies the list so cache entries stay immutable. Callers own what
// List hands them; mutating it must never reach the cache or other callers.
func cloneViews(views []models.CampaignView) []models.CampaignView {
	out := make([]models.CampaignView, len(views))
	copy(out, views)
	return out
}

// List returns campaign views for the given viewer, optionally filtered by
// status. A fresh cache entry is served without touching the store; entries
// older than CacheTTL trigger exactly one new read.
func (s *Service) List(ctx context.Context, userID, status string) ([]models.CampaignView, error) {
	key := cacheKey(userID, status)
	if cached, ok := s.Cache.Get(key); ok {
		if views, ok := cached.([]models.CampaignView); ok {
			return cloneViews(views), nil
		}
	}

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	campaignList, err := s.CDB.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]models.CampaignView, 0, len(campaignList))
	for _, c := range campaignList {
		view, err := s.decorate(ctx, c, userID)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	s.Cache.Set(key, cloneViews(views), CacheTTL)
	return views, nil
}

// Get returns a single campaign view for the given viewer
func (s *Service) Get(ctx context.Context, campaignID primitive.ObjectID, userID string) (*models.CampaignView, error) {
	campaign, err := s.CDB.FindOne(ctx, bson.M{"_id": campaignID})
	if err != nil {
		return nil, err
	}
	view, err := s.decorate(ctx, *campaign, userID)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *Service) decorate(ctx context.Context, c models.Campaign, userID string) (models.CampaignView, error) {
	count, err := s.PDB.CountByCampaign(ctx, c.ID)
	if err != nil {
		return models.CampaignView{}, err
	}
	view := models.CampaignView{Campaign: c, Participants: int(count)}
	if userID != "" {
		joined, err := s.PDB.Exists(ctx, c.ID, userID)
		if err != nil {
			return models.CampaignView{}, err
		}
		view.IsJoined = joined
	}
	return view, nil
}

// Create organizes a cleanup campaign from an existing report, denormalizing
// the report's location and waste fields onto the campaign row.
func (s *Service) Create(ctx context.Context, campaign models.Campaign, report *models.Report, organizerID string) (*models.Campaign, error) {
	if organizerID == "" {
		return nil, ErrNotAuthenticated
	}
	if campaign.MaxParticipants < 2 {
		return nil, fmt.Errorf("%w: max participants must be at least 2", ErrInvalidCampaign)
	}
	if campaign.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidCampaign)
	}
	if !campaign.OrganizerType.Valid() {
		return nil, fmt.Errorf("%w: organizer type must be personal or organization", ErrInvalidCampaign)
	}

	campaign.ID = primitive.NewObjectID()
	campaign.ReportID = report.ID
	campaign.Status = models.CampaignUpcoming
	campaign.LocationLabel = report.LocationCategory.Label()
	campaign.Latitude = report.Latitude
	campaign.Longitude = report.Longitude
	if len(report.Images) > 0 {
		campaign.Image = report.Images[0]
	}
	campaign.WasteTypes = []models.WasteType{report.WasteType}
	campaign.VolumeLabel = report.Volume.Label()
	campaign.CreatedAt = primitive.NewDateTimeFromTime(time.Now())

	if err := s.CDB.InsertOne(ctx, campaign); err != nil {
		return nil, err
	}

	s.Rewards.AwardAsync(ctx, organizerID, rewards.ActionCreateCampaign)
	s.Cache.InvalidateAll()
	return &campaign, nil
}

// Join moves (campaign, user) from not-participant to participant.
//
// The already-joined check, the capacity check and the insert are three
// separate store calls, so two joins racing past the capacity check can both
// land. The unique participant index stops double joins by the same user;
// the capacity invariant itself is only enforced check-then-act here and a
// store-side conditional insert should replace it where available.
func (s *Service) Join(ctx context.Context, campaignID primitive.ObjectID, userID string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}

	joined, err := s.PDB.Exists(ctx, campaignID, userID)
	if err != nil {
		return err
	}
	if joined {
		return ErrAlreadyJoined
	}

	campaign, err := s.CDB.FindOne(ctx, bson.M{"_id": campaignID})
	if err != nil {
		return ErrCampaignNotFound
	}

	count, err := s.PDB.CountByCampaign(ctx, campaignID)
	if err != nil {
		return err
	}
	if count >= int64(campaign.MaxParticipants) {
		return ErrCampaignFull
	}

	err = s.PDB.InsertOne(ctx, models.CampaignParticipant{
		ID:         primitive.NewObjectID(),
		CampaignID: campaignID,
		ProfileID:  userID,
		JoinedAt:   primitive.NewDateTimeFromTime(time.Now()),
	})
	if err != nil {
		if databases.IsDuplicateKey(err) {
			return ErrAlreadyJoined
		}
		return err
	}

	// The join is the primary effect; the reward is secondary and its
	// failure never rolls the join back.
	s.Rewards.AwardAsync(ctx, userID, rewards.ActionJoinCampaign)
	s.Cache.InvalidateAll()
	return nil
}

// Leave removes the participant row. Leaving a campaign the user is not in
// is a no-op, not an error.
func (s *Service) Leave(ctx context.Context, campaignID primitive.ObjectID, userID string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}

	deleted, err := s.PDB.DeleteOne(ctx, campaignID, userID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		zap.S().Debugw("leave on campaign user was not in",
			"campaignId", campaignID.Hex(),
			"userId", userID,
		)
	}

	s.Cache.InvalidateAll()
	return nil
}
