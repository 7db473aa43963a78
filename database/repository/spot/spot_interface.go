package spotRepo

import (
	"errors"

	"parkwise/models"
)

// ErrDuplicateSpot is returned by Create when a spot with the same
// (slotNumber, floor, section) triple already exists.
var ErrDuplicateSpot = errors.New("duplicate spot")

// SpotFilter narrows List results. All supplied fields are ANDed together;
// Search is a case-insensitive substring match on the slot number.
type SpotFilter struct {
	Floor  *int
	Status string
	Search string
}

// SpotRepository defines data access for parking spots. Reserve and Release
// are conditional updates: they mutate the document only when the expected
// state matches, and report whether a document was affected. This is the
// enforcement point for at-most-one-active-booking-per-spot.
type SpotRepository interface {
	Create(spot *models.ParkingSpot) error
	GetByID(id string) (*models.ParkingSpot, error)
	GetBySlot(slotNumber string, floor int, section string) (*models.ParkingSpot, error)
	List(filter SpotFilter) ([]models.ParkingSpot, error)

	// Reserve transitions the spot from available to reserved and records the
	// occupant, succeeding only if the spot was available.
	Reserve(id, userID string) (bool, error)

	// Release transitions the spot back to available and clears the occupant,
	// succeeding only if userID currently holds the spot.
	Release(id, userID string) (bool, error)
}
