package reservation

import (
	"time"

	spotRepo "parkwise/database/repository/spot"
	userRepo "parkwise/database/repository/user"
	"parkwise/models"
)

// Identity is the capability-tagged caller identity supplied by the auth
// layer. The engine trusts it as given.
type Identity struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the caller holds the admin role.
func (id Identity) IsAdmin() bool {
	return id.Role == models.RoleAdmin
}

// BookingRequest carries the input for CreateBooking.
type BookingRequest struct {
	SpotID        string
	VehicleNumber string
	StartTime     time.Time
	EndTime       time.Time
}

// SpotRequest carries the input for CreateSpot (admin only).
type SpotRequest struct {
	SlotNumber     string
	Floor          int
	Section        string
	Status         string
	Rate           float64
	OccupantUserID string
	Temperature    *float64
	Humidity       *float64
}

// SpotQuery narrows ListSpots results.
type SpotQuery struct {
	Floor  *int
	Status string
	Search string
}

// ReservationService owns the state transitions of parking spots and user
// booking records, enforces availability and time-window invariants, and
// computes cost.
type ReservationService interface {
	CreateBooking(caller Identity, req BookingRequest) (*models.Booking, error)
	CancelBooking(caller Identity, bookingID string) (*models.Booking, error)
	ListBookings(caller Identity, statusFilter string) ([]models.Booking, error)
	ListSpots(query SpotQuery) ([]models.ParkingSpot, error)
	CreateSpot(caller Identity, req SpotRequest) (*models.ParkingSpot, error)
}

// DefaultReservationService is the production implementation.
type DefaultReservationService struct {
	Spots spotRepo.SpotRepository
	Users userRepo.UserRepository

	// Now overrides the clock for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultReservationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
