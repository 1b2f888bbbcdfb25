package databases

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the query and participation paths rely
// on: the 2dsphere index behind the radius search, the unique compound index
// that turns a double join into a conflict, and the unique profile email.
func EnsureIndexes(ctx context.Context, db DatabaseHelper) error {
	if err := db.Collection(reportName).Indexes(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
	}); err != nil {
		return err
	}

	if err := db.Collection(participantName).Indexes(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "campaignId", Value: 1}, {Key: "profileId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}); err != nil {
		return err
	}

	if err := db.Collection(campaignName).Indexes(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "startTime", Value: 1}}},
	}); err != nil {
		return err
	}

	// Partial filter keeps reward-bootstrapped profiles, which have no email
	// yet, from colliding on the unique index.
	return db.Collection(profileName).Indexes(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"email": bson.M{"$gt": ""}}),
		},
	})
}
