package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WasteType classifies the kind of waste in a report
type WasteType string

// The closed set of waste types accepted past ingestion
const (
	WasteOrganic   WasteType = "organic"
	WasteInorganic WasteType = "inorganic"
	WasteHazardous WasteType = "hazardous"
	WasteMixed     WasteType = "mixed"
)

// Valid reports whether the waste type is one of the known values
func (wt WasteType) Valid() bool {
	switch wt {
	case WasteOrganic, WasteInorganic, WasteHazardous, WasteMixed:
		return true
	}
	return false
}

// Label returns the display label for the waste type
func (wt WasteType) Label() string {
	switch wt {
	case WasteOrganic:
		return "Organic Waste"
	case WasteInorganic:
		return "Inorganic Waste"
	case WasteHazardous:
		return "Hazardous Waste"
	case WasteMixed:
		return "Mixed Waste"
	}
	return "Unknown"
}

// WasteVolume buckets the estimated amount of waste in a report
type WasteVolume string

// The closed set of volume buckets
const (
	VolumeUnderOneKg WasteVolume = "<1kg"
	VolumeOneToFive  WasteVolume = "1-5kg"
	VolumeSixToTen   WasteVolume = "6-10kg"
	VolumeOverTenKg  WasteVolume = ">10kg"
)

// Valid reports whether the volume bucket is one of the known values
func (wv WasteVolume) Valid() bool {
	switch wv {
	case VolumeUnderOneKg, VolumeOneToFive, VolumeSixToTen, VolumeOverTenKg:
		return true
	}
	return false
}

// Label returns the display label for the volume bucket
func (wv WasteVolume) Label() string {
	switch wv {
	case VolumeUnderOneKg:
		return "Less than 1 kg"
	case VolumeOneToFive:
		return "1 to 5 kg"
	case VolumeSixToTen:
		return "6 to 10 kg"
	case VolumeOverTenKg:
		return "More than 10 kg"
	}
	return "Unknown"
}

// LocationCategory describes the kind of place where waste was found
type LocationCategory string

// The closed set of location categories
const (
	LocationRiver      LocationCategory = "river"
	LocationRoadside   LocationCategory = "roadside"
	LocationPublicArea LocationCategory = "public_area"
	LocationVacantLand LocationCategory = "vacant_land"
	LocationOther      LocationCategory = "other"
)

// Valid reports whether the location category is one of the known values
func (lc LocationCategory) Valid() bool {
	switch lc {
	case LocationRiver, LocationRoadside, LocationPublicArea, LocationVacantLand, LocationOther:
		return true
	}
	return false
}

// Label returns the display label for the location category
func (lc LocationCategory) Label() string {
	switch lc {
	case LocationRiver:
		return "River"
	case LocationRoadside:
		return "Roadside"
	case LocationPublicArea:
		return "Public Area"
	case LocationVacantLand:
		return "Vacant Land"
	case LocationOther:
		return "Other"
	}
	return "Unknown"
}

// GeoPoint is a GeoJSON point as stored in mongo for the 2dsphere index.
// Coordinates are [longitude, latitude] per the GeoJSON spec.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// NewGeoPoint builds a GeoJSON point from a latitude/longitude pair
func NewGeoPoint(lat, lon float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lon, lat}}
}

// Report holds the structure for the reports collection in mongo
type Report struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID           string             `bson:"userId" json:"userId"`
	Images           []string           `bson:"images" json:"images"`
	WasteType        WasteType          `bson:"wasteType" json:"wasteType"`
	Volume           WasteVolume        `bson:"volume" json:"volume"`
	LocationCategory LocationCategory   `bson:"locationCategory" json:"locationCategory"`
	Notes            string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Latitude         float64            `bson:"latitude" json:"latitude"`
	Longitude        float64            `bson:"longitude" json:"longitude"`
	Location         GeoPoint           `bson:"location" json:"-"`
	CreatedAt        primitive.DateTime `bson:"createdAt" json:"createdAt"`
}

// Validate checks the closed enum sets and the coordinate ranges. Reports
// never carry arbitrary enum strings past ingestion.
func (r *Report) Validate() error {
	if !r.WasteType.Valid() {
		return fmt.Errorf("invalid waste type %q", r.WasteType)
	}
	if !r.Volume.Valid() {
		return fmt.Errorf("invalid waste volume %q", r.Volume)
	}
	if !r.LocationCategory.Valid() {
		return fmt.Errorf("invalid location category %q", r.LocationCategory)
	}
	if r.Latitude < -90 || r.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range", r.Latitude)
	}
	if r.Longitude < -180 || r.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range", r.Longitude)
	}
	return nil
}

// NearbyReport is a report decorated with the computed great-circle distance
// from a query origin. Computed per query, never persisted.
type NearbyReport struct {
	Report     `bson:",inline"`
	DistanceKm float64 `bson:"distanceKm" json:"distanceKm"`
}
