package databases

// go generate: mockery --name ProfileDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bersihin/bersihin-api/models"
)

const profileName = "profiles"

// ProfileDatabase contains the methods to use with the profile database
type ProfileDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Profile, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Profile, error)
	InsertOne(ctx context.Context, profile models.Profile) error
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	IncrementExp(ctx context.Context, id primitive.ObjectID, amount int64) (*models.Profile, error)
}

type profileDatabase struct {
	db DatabaseHelper
}

// NewProfileDatabase initializes a new instance of profile database with the provided db connection
func NewProfileDatabase(db DatabaseHelper) ProfileDatabase {
	return &profileDatabase{
		db: db,
	}
}

func (c *profileDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Profile, error) {
	profile := &models.Profile{}
	err := c.db.Collection(profileName).FindOne(ctx, filter).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (c *profileDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Profile, error) {
	var profiles []models.Profile
	cursor, err := c.db.Collection(profileName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (c *profileDatabase) InsertOne(ctx context.Context, profile models.Profile) error {
	_, err := c.db.Collection(profileName).InsertOne(ctx, profile)
	return err
}

func (c *profileDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return c.db.Collection(profileName).UpdateOne(ctx, filter, update, opts...)
}

// IncrementExp bumps the profile's exp in a single server-side operation and
// returns the updated row. The upsert doubles as the profile bootstrap, so
// the fast path never needs a separate existence check.
func (c *profileDatabase) IncrementExp(ctx context.Context, id primitive.ObjectID, amount int64) (*models.Profile, error) {
	now := primitive.NewDateTimeFromTime(time.Now())
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	update := bson.M{
		"$inc":         bson.M{"exp": amount},
		"$set":         bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}

	profile := &models.Profile{}
	err := c.db.Collection(profileName).FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return profile, nil
}
