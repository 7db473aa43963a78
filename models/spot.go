package models

import "time"

// Spot status values. A spot is Reserved while an active booking holds it;
// Occupied is set only through admin edits, never by the booking flow.
const (
	SpotStatusAvailable = "available"
	SpotStatusReserved  = "reserved"
	SpotStatusOccupied  = "occupied"
)

// ValidSpotStatus reports whether s is a recognized spot status.
func ValidSpotStatus(s string) bool {
	switch s {
	case SpotStatusAvailable, SpotStatusReserved, SpotStatusOccupied:
		return true
	}
	return false
}

// SensorReading carries informational environment data reported for a spot.
type SensorReading struct {
	Temperature float64   `bson:"temperature" json:"temperature"`
	Humidity    float64   `bson:"humidity" json:"humidity"`
	LastUpdate  time.Time `bson:"lastUpdate" json:"lastUpdate"`
}

// ParkingSpot represents a physical parking location.
// OccupantUserID is set iff Status is reserved or occupied.
type ParkingSpot struct {
	ID             string        `bson:"id" json:"id"`
	SlotNumber     string        `bson:"slotNumber" json:"slotNumber"` // unique within floor+section
	Floor          int           `bson:"floor" json:"floor"`
	Section        string        `bson:"section" json:"section"`
	Rate           float64       `bson:"rate" json:"rate"` // currency per hour
	Status         string        `bson:"status" json:"status"`
	OccupantUserID string        `bson:"occupantUserId,omitempty" json:"occupantUserId,omitempty"`
	Sensor         SensorReading `bson:"sensor" json:"sensor"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt" json:"updatedAt"`
}
