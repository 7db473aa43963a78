package userRepo

import (
	"parkwise/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines data access for users and their embedded bookings.
// Bookings live inside the owning user document, so every booking mutation
// is a per-document atomic update.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetAll() ([]models.User, error)
	UpdateTokenHash(id, tokenHash string) error

	// AppendBooking pushes a booking onto the user's embedded collection.
	AppendBooking(userID string, booking *models.Booking) error

	// GetBooking fetches a single embedded booking.
	GetBooking(userID, bookingID string) (*models.Booking, error)

	// UpdateBookingStatus transitions a booking from fromStatus to toStatus,
	// succeeding only if the booking is currently in fromStatus.
	UpdateBookingStatus(userID, bookingID, fromStatus, toStatus string) (bool, error)

	// ListBookings returns the user's bookings in insertion order.
	ListBookings(userID string) ([]models.Booking, error)
}
