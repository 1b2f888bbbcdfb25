package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CampaignParticipant holds the structure for the campaign_participants
// collection in mongo. One row per (campaign, profile) pair, enforced by a
// unique compound index. Created by join, deleted by leave, never updated.
type CampaignParticipant struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CampaignID primitive.ObjectID `bson:"campaignId" json:"campaignId"`
	ProfileID  string             `bson:"profileId" json:"profileId"`
	JoinedAt   primitive.DateTime `bson:"joinedAt" json:"joinedAt"`
}
