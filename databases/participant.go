package databases

// go generate: mockery --name ParticipantDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bersihin/bersihin-api/models"
)

const participantName = "campaign_participants"

// ParticipantDatabase contains the methods to use with the campaign
// participants database. One row per (campaign, profile) pair; the unique
// compound index makes a duplicate insert surface as a conflict.
type ParticipantDatabase interface {
	Exists(ctx context.Context, campaignID primitive.ObjectID, profileID string) (bool, error)
	CountByCampaign(ctx context.Context, campaignID primitive.ObjectID) (int64, error)
	FindByCampaign(ctx context.Context, campaignID primitive.ObjectID) ([]models.CampaignParticipant, error)
	InsertOne(ctx context.Context, participant models.CampaignParticipant) error
	DeleteOne(ctx context.Context, campaignID primitive.ObjectID, profileID string) (int64, error)
}

type participantDatabase struct {
	db DatabaseHelper
}

// NewParticipantDatabase initializes a new instance of participant database with the provided db connection
func NewParticipantDatabase(db DatabaseHelper) ParticipantDatabase {
	return &participantDatabase{
		db: db,
	}
}

func (c *participantDatabase) Exists(ctx context.Context, campaignID primitive.ObjectID, profileID string) (bool, error) {
	count, err := c.db.Collection(participantName).CountDocuments(ctx, bson.M{
		"campaignId": campaignID,
		"profileId":  profileID,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (c *participantDatabase) CountByCampaign(ctx context.Context, campaignID primitive.ObjectID) (int64, error) {
	return c.db.Collection(participantName).CountDocuments(ctx, bson.M{"campaignId": campaignID})
}

func (c *participantDatabase) FindByCampaign(ctx context.Context, campaignID primitive.ObjectID) ([]models.CampaignParticipant, error) {
	var participants []models.CampaignParticipant
	cursor, err := c.db.Collection(participantName).Find(ctx, bson.M{"campaignId": campaignID})
	if err != nil {
		return nil, err
	}
	if err := cursor.All(ctx, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

func (c *participantDatabase) InsertOne(ctx context.Context, participant models.CampaignParticipant) error {
	_, err := c.db.Collection(participantName).InsertOne(ctx, participant)
	return err
}

// DeleteOne removes the (campaign, profile) row and returns how many rows
// matched. Zero is not an error; leave is idempotent.
func (c *participantDatabase) DeleteOne(ctx context.Context, campaignID primitive.ObjectID, profileID string) (int64, error) {
	res, err := c.db.Collection(participantName).DeleteOne(ctx, bson.M{
		"campaignId": campaignID,
		"profileId":  profileID,
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
