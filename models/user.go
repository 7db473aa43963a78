package models

import "time"

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered customer (or administrator). Bookings are
// embedded in insertion order under Bookings.
type User struct {
	ID            string    `bson:"id" json:"id"`
	Name          string    `bson:"name" json:"name"`
	Email         string    `bson:"email" json:"email"`
	Mobile        string    `bson:"mobile" json:"mobile"`
	VehicleNumber string    `bson:"vehicleNumber" json:"vehicleNumber"` // default vehicle
	Role          string    `bson:"role" json:"role"`
	PasswordHash  string    `bson:"passwordHash,omitempty" json:"-"`
	TokenHash     string    `bson:"tokenHash,omitempty" json:"-"`
	Bookings      []Booking `bson:"bookings" json:"bookings,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}
