package models

import "time"

// Booking status values. Completed and cancelled are terminal.
const (
	BookingStatusActive    = "active"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// ValidBookingStatus reports whether s is a recognized booking status.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusActive, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking represents a user's reservation of a spot for a time window.
// It is stored embedded in the owning user's document. TotalCost snapshots
// the spot rate at booking time and is never recomputed.
type Booking struct {
	ID            string    `bson:"id" json:"id"`
	SpotID        string    `bson:"spotId" json:"spotId"`
	SlotNumber    string    `bson:"slotNumber" json:"slotNumber"` // denormalized from the spot
	UserID        string    `bson:"userId" json:"userId"`
	VehicleNumber string    `bson:"vehicleNumber" json:"vehicleNumber"`
	StartTime     time.Time `bson:"startTime" json:"startTime"`
	EndTime       time.Time `bson:"endTime" json:"endTime"`
	Duration      float64   `bson:"duration" json:"duration"` // hours, rounded to 2 decimals
	TotalCost     float64   `bson:"totalCost" json:"totalCost"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}
