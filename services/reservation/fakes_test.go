package reservation_test

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	spotRepo "parkwise/database/repository/spot"
	"parkwise/models"

	"go.mongodb.org/mongo-driver/bson"
)

// fakeSpotRepo is an in-memory SpotRepository. Reserve and Release mirror the
// conditional-update semantics of the Mongo implementation: mutate only when
// the expected state matches, under a single lock.
type fakeSpotRepo struct {
	mu    sync.Mutex
	spots map[string]*models.ParkingSpot
}

func newFakeSpotRepo() *fakeSpotRepo {
	return &fakeSpotRepo{spots: make(map[string]*models.ParkingSpot)}
}

func (r *fakeSpotRepo) put(spot models.ParkingSpot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := spot
	r.spots[s.ID] = &s
}

func (r *fakeSpotRepo) get(id string) models.ParkingSpot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.spots[id]
}

func (r *fakeSpotRepo) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.spots, id)
}

func (r *fakeSpotRepo) Create(spot *models.ParkingSpot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.spots {
		if s.SlotNumber == spot.SlotNumber && s.Floor == spot.Floor && s.Section == spot.Section {
			return spotRepo.ErrDuplicateSpot
		}
	}
	cp := *spot
	r.spots[cp.ID] = &cp
	return nil
}

func (r *fakeSpotRepo) GetByID(id string) (*models.ParkingSpot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.spots[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSpotRepo) GetBySlot(slotNumber string, floor int, section string) (*models.ParkingSpot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.spots {
		if s.SlotNumber == slotNumber && s.Floor == floor && s.Section == section {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSpotRepo) List(filter spotRepo.SpotFilter) ([]models.ParkingSpot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ParkingSpot
	for _, s := range r.spots {
		if filter.Floor != nil && s.Floor != *filter.Floor {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(s.SlotNumber), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Floor != out[j].Floor {
			return out[i].Floor < out[j].Floor
		}
		if out[i].Section != out[j].Section {
			return out[i].Section < out[j].Section
		}
		return out[i].SlotNumber < out[j].SlotNumber
	})
	return out, nil
}

func (r *fakeSpotRepo) Reserve(id, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.spots[id]
	if !ok || s.Status != models.SpotStatusAvailable {
		return false, nil
	}
	s.Status = models.SpotStatusReserved
	s.OccupantUserID = userID
	return true, nil
}

func (r *fakeSpotRepo) Release(id, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.spots[id]
	if !ok || s.OccupantUserID != userID {
		return false, nil
	}
	s.Status = models.SpotStatusAvailable
	s.OccupantUserID = ""
	return true, nil
}

// fakeUserRepo is an in-memory UserRepository with embedded bookings.
// appendErr, when set, makes AppendBooking fail to exercise the engine's
// spot-release recovery path.
type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[string]*models.User
	appendErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) put(user models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := user
	if u.Bookings == nil {
		u.Bookings = []models.Booking{}
	}
	r.users[u.ID] = &u
}

func (r *fakeUserRepo) bookingStatus(userID, bookingID string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.users[userID].Bookings {
		if b.ID == bookingID {
			return b.Status
		}
	}
	return ""
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.put(*user)
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	return r.GetByIDWithProjection(id, nil)
}

func (r *fakeUserRepo) GetByIDWithProjection(id string, _ bson.M) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	cp.Bookings = append([]models.Booking(nil), u.Bookings...)
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetAll() ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateTokenHash(id, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user with id %s not found", id)
	}
	u.TokenHash = tokenHash
	return nil
}

func (r *fakeUserRepo) AppendBooking(userID string, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	u, ok := r.users[userID]
	if !ok {
		return fmt.Errorf("user with id %s not found", userID)
	}
	u.Bookings = append(u.Bookings, *booking)
	return nil
}

func (r *fakeUserRepo) GetBooking(userID, bookingID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, nil
	}
	for i := range u.Bookings {
		if u.Bookings[i].ID == bookingID {
			cp := u.Bookings[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateBookingStatus(userID, bookingID, fromStatus, toStatus string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return false, nil
	}
	for i := range u.Bookings {
		if u.Bookings[i].ID == bookingID && u.Bookings[i].Status == fromStatus {
			u.Bookings[i].Status = toStatus
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ListBookings(userID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, fmt.Errorf("user with id %s not found", userID)
	}
	return append([]models.Booking(nil), u.Bookings...), nil
}
