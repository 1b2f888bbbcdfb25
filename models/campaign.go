package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CampaignStatus tracks a campaign through its lifecycle
type CampaignStatus string

// Status transitions run upcoming -> ongoing -> completed, driven by the
// scheduler off the campaign start/end times.
const (
	CampaignUpcoming  CampaignStatus = "upcoming"
	CampaignOngoing   CampaignStatus = "ongoing"
	CampaignCompleted CampaignStatus = "completed"
)

// Valid reports whether the status is one of the known values
func (cs CampaignStatus) Valid() bool {
	switch cs {
	case CampaignUpcoming, CampaignOngoing, CampaignCompleted:
		return true
	}
	return false
}

// OrganizerType distinguishes personal and organization-run campaigns
type OrganizerType string

// The closed set of organizer types
const (
	OrganizerPersonal     OrganizerType = "personal"
	OrganizerOrganization OrganizerType = "organization"
)

// Valid reports whether the organizer type is one of the known values
func (ot OrganizerType) Valid() bool {
	return ot == OrganizerPersonal || ot == OrganizerOrganization
}

// Campaign holds the structure for the campaigns collection in mongo. Each
// campaign is tied to exactly one originating report; the location, image and
// waste fields are denormalized from that report at creation time.
type Campaign struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ReportID        primitive.ObjectID `bson:"reportId" json:"reportId"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	StartTime       primitive.DateTime `bson:"startTime" json:"startTime"`
	EndTime         primitive.DateTime `bson:"endTime" json:"endTime"`
	MaxParticipants int                `bson:"maxParticipants" json:"maxParticipants"`
	Status          CampaignStatus     `bson:"status" json:"status"`
	OrganizerName   string             `bson:"organizerName" json:"organizerName"`
	OrganizerType   OrganizerType      `bson:"organizerType" json:"organizerType"`
	LocationLabel   string             `bson:"locationLabel" json:"locationLabel"`
	Latitude        float64            `bson:"latitude" json:"latitude"`
	Longitude       float64            `bson:"longitude" json:"longitude"`
	Image           string             `bson:"image,omitempty" json:"image,omitempty"`
	WasteTypes      []WasteType        `bson:"wasteTypes" json:"wasteTypes"`
	VolumeLabel     string             `bson:"volumeLabel" json:"volumeLabel"`
	ReminderSent    bool               `bson:"reminderSent" json:"-"`
	CreatedAt       primitive.DateTime `bson:"createdAt" json:"createdAt"`
}

// CampaignView is a campaign decorated with the per-viewer fields derived
// from the campaign_participants collection. Never persisted.
type CampaignView struct {
	Campaign     `bson:",inline"`
	Participants int  `json:"participants"`
	IsJoined     bool `json:"isJoined"`
}
