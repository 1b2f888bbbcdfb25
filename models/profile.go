package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Profile holds the structure for the profiles collection in mongo. Exactly
// one row per authenticated user; exp only ever increases through the reward
// write paths.
type Profile struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"-"`
	Exp       int64              `bson:"exp" json:"exp"`
	CreatedAt primitive.DateTime `bson:"createdAt" json:"createdAt"`
	UpdatedAt primitive.DateTime `bson:"updatedAt" json:"updatedAt"`
}
