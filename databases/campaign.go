package databases

// go generate: mockery --name CampaignDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bersihin/bersihin-api/models"
)

const campaignName = "campaigns"

// CampaignDatabase contains the methods to use with the campaign database
type CampaignDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Campaign, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Campaign, error)
	InsertOne(ctx context.Context, campaign models.Campaign) error
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

type campaignDatabase struct {
	db DatabaseHelper
}

// NewCampaignDatabase initializes a new instance of campaign database with the provided db connection
func NewCampaignDatabase(db DatabaseHelper) CampaignDatabase {
	return &campaignDatabase{
		db: db,
	}
}

func (c *campaignDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Campaign, error) {
	campaign := &models.Campaign{}
	err := c.db.Collection(campaignName).FindOne(ctx, filter).Decode(&campaign)
	if err != nil {
		return nil, err
	}
	return campaign, nil
}

func (c *campaignDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	cursor, err := c.db.Collection(campaignName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	if err := cursor.All(ctx, &campaigns); err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (c *campaignDatabase) InsertOne(ctx context.Context, campaign models.Campaign) error {
	_, err := c.db.Collection(campaignName).InsertOne(ctx, campaign)
	return err
}

func (c *campaignDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return c.db.Collection(campaignName).UpdateOne(ctx, filter, update, opts...)
}
