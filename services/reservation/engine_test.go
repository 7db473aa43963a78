package reservation_test

import (
	"sync"
	"testing"
	"time"

	"parkwise/models"
	"parkwise/services/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newEngine(t *testing.T) (*reservation.DefaultReservationService, *fakeSpotRepo, *fakeUserRepo) {
	t.Helper()
	spots := newFakeSpotRepo()
	users := newFakeUserRepo()
	svc := &reservation.DefaultReservationService{
		Spots: spots,
		Users: users,
		Now:   func() time.Time { return fixedNow },
	}
	return svc, spots, users
}

func seedSpot(spots *fakeSpotRepo, id, slot, status string, rate float64) {
	spots.put(models.ParkingSpot{
		ID:         id,
		SlotNumber: slot,
		Floor:      1,
		Section:    "A",
		Rate:       rate,
		Status:     status,
	})
}

func seedUser(users *fakeUserRepo, id string) {
	users.put(models.User{ID: id, Name: "Test User", Email: id + "@example.com", Role: models.RoleUser})
}

func caller(userID string) reservation.Identity {
	return reservation.Identity{UserID: userID, Role: models.RoleUser}
}

func TestCreateBooking(t *testing.T) {
	t.Run("two hour booking at rate 5 costs 10", func(t *testing.T) {
		svc, spots, users := newEngine(t)
		seedSpot(spots, "spot-1", "A01", models.SpotStatusAvailable, 5)
		seedUser(users, "u1")

		booking, err := svc.CreateBooking(caller("u1"), reservation.BookingRequest{
			SpotID:        "spot-1",
			VehicleNumber: "KA-01-1234",
			StartTime:     fixedNow,
			EndTime:       fixedNow.Add(2 * time.Hour),
		})
		require.NoError(t, err)
		require.NotNil(t, booking)

		assert.Equal(t, 2.0, booking.Duration)
		assert.Equal(t, 10.0, booking.TotalCost)
		assert.Equal(t, models.BookingStatusActive, booking.Status)
		assert.Equal(t, "A01", booking.SlotNumber)
		assert.Equal(t, "u1", booking.UserID)
		assert.NotEmpty(t, booking.ID)

		spot := spots.get("spot-1")
		assert.Equal(t, models.SpotStatusReserved, spot.Status)
		assert.Equal(t, "u1", spot.OccupantUserID)

		stored, err := users.GetBooking("u1", booking.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, models.BookingStatusActive, stored.Status)
	})

	t.Run("validation failures leave state untouched", func(t *testing.T) {
		cases := []struct {
			name string
			req  reservation.BookingRequest
		}{
			{
				name: "start equals end",
				req: reservation.BookingRequest{
					SpotID: "spot-1", VehicleNumber: "KA-01-1234",
					StartTime: fixedNow, EndTime: fixedNow,
				},
			},
			{
				name: "start after end",
				req: reservation.BookingRequest{
					SpotID: "spot-1", VehicleNumber: "KA-01-1234",
					StartTime: fixedNow.Add(time.Hour), EndTime: fixedNow,
				},
			},
			{
				name: "start in the past beyond grace",
				req: reservation.BookingRequest{
					SpotID: "spot-1", VehicleNumber: "KA-01-1234",
					StartTime: fixedNow.Add(-2 * time.Minute), EndTime: fixedNow.Add(time.Hour),
				},
			},
			{
				name: "missing vehicle number",
				req: reservation.BookingRequest{
					SpotID:    "spot-1",
					StartTime: fixedNow, EndTime: fixedNow.Add(time.Hour),
				},
			},
			{
				name: "missing spot id",
				req: reservation.BookingRequest{
					VehicleNumber: "KA-01-1234",
					StartTime:     fixedNow, EndTime: fixedNow.Add(time.Hour),
				},
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				svc, spots, users := newEngine(t)
				seedSpot(spots, "spot-1", "A01", models.SpotStatusAvailable, 5)
				seedUser(users, "u1")

				_, err := svc.CreateBooking(caller("u1"), tc.req)
				require.Error(t, err)
				assert.Equal(t, reservation.CodeValidation, reservation.CodeOf(err))

				spot := spots.get("spot-1")
				assert.Equal(t, models.SpotStatusAvailable, spot.Status)
				assert.Empty(t, spot.OccupantUserID)
				u, _ := users.GetByID("u1")
				assert.Empty(t, u.Bookings)
			})
		}
	})

	t.Run("start within grace tolerance is accepted", func(t *testing.T) {
		svc, spots, users := newEngine(t)
		seedSpot(spots, "spot-1", "A01", models.SpotStatusAvailable, 5)
		seedUser(users, "u1")

		_, err := svc.CreateBooking(caller("u1"), reservation.BookingRequest{
			SpotID:        "spot-1",
			VehicleNumber: "KA-01-1234",
			StartTime:     fixedNow.Add(-30 * time.Second),
			EndTime:       fixedNow.Add(time.Hour),
		})
		require.NoError(t, err)
	})

	t.Run("unknown spot", func(t *testing.T) {
		svc, _, users := newEngine(t)
		seedUser(users, "u1")

		_, err := svc.CreateBooking(caller("u1"), reservation.BookingRequest{
			SpotID:        "missing",
			VehicleNumber: "KA-01-1234",
			StartTime:     fixedNow, EndTime: fixedNow.Add(time.Hour),
		})
		require.Error(t, err)
		assert.Equal(t, reservation.CodeNotFound, reservation.CodeOf(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, spots, _ := newEngine(t)
		seedSpot(spots, "spot-1", "A01", models.SpotStatusAvailable, 5)

		_, err := svc.CreateBooking(caller("ghost"), reservation.BookingRequest{
			SpotID:        "spot-1",
			VehicleNumber: "KA-01-1234",
			StartTime:     fixedNow, EndTime: fixedNow.Add(time.Hour),
		})
		require.Error(t, err)
		assert.Equal(t, reservation.CodeNotFound, reservation.CodeOf(err))
	})

	t.Run("reserved spot conflicts without mutating state", func(t *testing.T) {
		svc, spots, users := newEngine(t)
		seedUser(users, "u1")
		spots.put(models.ParkingSpot{
			ID: "spot-1", SlotNumber: "A01", Floor: 1, Section: "A",
			Rate: 5, Status: models.SpotStatusReserved, OccupantUserID: "u2",
		})

		_, err := svc.CreateBooking(caller("u1"), reservation.BookingRequest{
			SpotID:        "spot-1",
			VehicleNumber: "KA-01-1234",
			StartTime:     fixedNow, EndTime: fixedNow.Add(time.Hour),
		})
		require.Error(t, err)
		assert.Equal(t, reservation.CodeConflict, reservation.CodeOf(err))

		spot := spots.get("spot-1")
		assert.Equal(t, models.SpotStatusReserved, spot.Status)
		assert.Equal(t, "u2", spot.OccupantUserID)
		u, _ := users.GetByID("u1")
		assert.Empty(t, u.Bookings)
	})

	t.Run("occupied spot conflicts", func(t *testing.T) {
		svc, spots, users := newEngine(t)
		seedUser(users, "u1")
		spots.put(models.ParkingSpot{
			ID: "spot-1", SlotNumber: "A01", Floor: 1, Section: "A",
			Rate: 5, Status: models.SpotStatusOccupied, OccupantUserID: "u2",
		})

		_, err := svc.CreateBooking(caller("u1"), reservation.BookingRequest{
			SpotID:        "spot-1",
			VehicleNumber: "KA-01-1234",
			StartTime:     fixedNow, EndTime: fixedNow.Add(time.Hour),
		})
		require.Error(t, err)
		assert.Equal(t, reservation.CodeConflict, reservation.CodeOf(err))
	})

	t.Run("concurrent bookings for one spot admit exactly one", func(t *testing.T) {
		svc, spots, users := newEngine(t)
		seedSpot(spots, "spot-1", "A01", models.SpotStatusAvailable, 5)
		seedUser(users, "u1")
		seedUser(users, "u2")

		errs := make([]error, 2)
		var wg sync.WaitGroup
		for i, uid := range []string{"u1", "u2"} {
			wg.Add(1)
			go func(i int, uid string) {
				defer wg.Done()
				_, errs[i] = svc.CreateBooking(caller(uid), reservation.BookingRequest{
					SpotID:        "spot-1",
					VehicleNumber: "KA-01-1234",
					StartTime:     fixedNow, EndTime: fixedNow.Add(time.Hour),
				})
			}(i, uid)
		}
		wg.Wait()

		var okCount, conflictCount int
		for _, err := range errs {
			if err == nil {
				okCount++
			} else if reservation.CodeOf(err) == reservation.CodeConflict {
				conflictCount++
			}
		}
		assert.Equal(t, 1, okCount)
		assert.Equal(t, 1, conflictCount)
		assert.Equal(t, models.SpotStatusReserved, spots.get("spot-1").Status)
	})

	t.Run("booking write failure releases the spot", func(t *testing.T) {
		svc, spots, users := newEngine(t)
		seedSpot(spots, "spot-1", "A01", models.SpotStatusAvailable, 5)
		seedUser(users, "u1")
		users.appendErr = assert.AnError

		_, err := svc.CreateBooking(caller("u1"), reservation.BookingRequest{
			SpotID:        "spot-1",
			VehicleNumber: "KA-01-1234",
			StartTime:     fixedNow, EndTime: fixedNow.Add(time.Hour),
		})
		require.Error(t, err)
		assert.Equal(t, reservation.CodeStorage, reservation.CodeOf(err))

		spot := spots.get("spot-1")
		assert.Equal(t, models.SpotStatusAvailable, spot.Status)
		assert.Empty(t, spot.OccupantUserID)
	})
}

func TestCancelBooking(t *testing.T) {
	book := func(t *testing.T, svc *reservation.DefaultReservationService) *models.Booking {
		t.Helper()
		booking, err := svc.CreateBooking(caller("u1"), reservation.BookingRequest{
			SpotID:        "spot-1",
			VehicleNumber: "KA-01-1234",
			StartTime:     fixedNow, EndTime: fixedNow.Add(2 * time.Hour),
		})
		require.NoError(t, err)
		return booking
	}

	t.Run("cancelling an active booking frees the spot", func(t *testing.T) {
		svc, spots, users := newEngine(t)
		seedSpot(spots, "spot-1", "A01", models.SpotStatusAvailable, 5)
		seedUser(users, "u1")
		booking := book(t, svc)

		cancelled, err := svc.CancelBooking(caller("u1"), booking.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
		assert.Equal(t, models.BookingStatusCancelled, users.bookingStatus("u1", booking.ID))

		spot := spots.get("spot-1")
		assert.Equal(t, models.SpotStatusAvailable, spot.Status)
		assert.Empty(t, spot.OccupantUserID)
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, spots, users := newEngine(t)
		seedSpot(spots, "spot-1", "A01", models.SpotStatusAvailable, 5)
		seedUser(users, "u1")

		_, err := svc.CancelBooking(caller("u1"), "missing")
		require.Error(t, err)
		assert.Equal(t, reservation.CodeNotFound, reservation.CodeOf(err))
	})

	t.Run("non-active booking leaves spot state untouched", func(t *testing.T) {
		svc, spots, users := newEngine(t)
		seedSpot(spots, "spot-1", "A01", models.SpotStatusAvailable, 5)
		seedUser(users, "u1")
		booking := book(t, svc)

		_, err := svc.CancelBooking(caller("u1"), booking.ID)
		require.NoError(t, err)

		// Second cancel must fail; the spot may have been rebooked by now, so
		// its state must not be clobbered.
		reserved, err := spots.Reserve("spot-1", "u2")
		require.NoError(t, err)
		require.True(t, reserved)

		_, err = svc.CancelBooking(caller("u1"), booking.ID)
		require.Error(t, err)
		assert.Equal(t, reservation.CodeInvalidState, reservation.CodeOf(err))

		spot := spots.get("spot-1")
		assert.Equal(t, models.SpotStatusReserved, spot.Status)
		assert.Equal(t, "u2", spot.OccupantUserID)
	})

	t.Run("cancellation succeeds even if the spot is gone", func(t *testing.T) {
		svc, spots, users := newEngine(t)
		seedSpot(spots, "spot-1", "A01", models.SpotStatusAvailable, 5)
		seedUser(users, "u1")
		booking := book(t, svc)

		spots.remove("spot-1")

		cancelled, err := svc.CancelBooking(caller("u1"), booking.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
	})
}

func TestListBookings(t *testing.T) {
	t.Run("expired active bookings are completed and persisted", func(t *testing.T) {
		svc, spots, users := newEngine(t)
		seedSpot(spots, "spot-1", "A01", models.SpotStatusAvailable, 5)
		seedUser(users, "u1")

		booking, err := svc.CreateBooking(caller("u1"), reservation.BookingRequest{
			SpotID:        "spot-1",
			VehicleNumber: "KA-01-1234",
			StartTime:     fixedNow, EndTime: fixedNow.Add(time.Hour),
		})
		require.NoError(t, err)

		// Advance the clock past the booking's end.
		svc.Now = func() time.Time { return fixedNow.Add(2 * time.Hour) }

		listed, err := svc.ListBookings(caller("u1"), "")
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, models.BookingStatusCompleted, listed[0].Status)

		// Durable: an independent read sees the same status.
		assert.Equal(t, models.BookingStatusCompleted, users.bookingStatus("u1", booking.ID))

		// The completed booking's spot is released.
		spot := spots.get("spot-1")
		assert.Equal(t, models.SpotStatusAvailable, spot.Status)
		assert.Empty(t, spot.OccupantUserID)
	})

	t.Run("cancelled bookings are not swept", func(t *testing.T) {
		svc, spots, users := newEngine(t)
		seedSpot(spots, "spot-1", "A01", models.SpotStatusAvailable, 5)
		seedUser(users, "u1")

		booking, err := svc.CreateBooking(caller("u1"), reservation.BookingRequest{
			SpotID:        "spot-1",
			VehicleNumber: "KA-01-1234",
			StartTime:     fixedNow, EndTime: fixedNow.Add(time.Hour),
		})
		require.NoError(t, err)
		_, err = svc.CancelBooking(caller("u1"), booking.ID)
		require.NoError(t, err)

		svc.Now = func() time.Time { return fixedNow.Add(2 * time.Hour) }

		listed, err := svc.ListBookings(caller("u1"), "")
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, models.BookingStatusCancelled, listed[0].Status)
	})

	t.Run("status filter returns exact matches in insertion order", func(t *testing.T) {
		svc, spots, users := newEngine(t)
		seedSpot(spots, "spot-1", "A01", models.SpotStatusAvailable, 5)
		seedSpot(spots, "spot-2", "A02", models.SpotStatusAvailable, 5)
		seedUser(users, "u1")

		first, err := svc.CreateBooking(caller("u1"), reservation.BookingRequest{
			SpotID:        "spot-1",
			VehicleNumber: "KA-01-1234",
			StartTime:     fixedNow, EndTime: fixedNow.Add(time.Hour),
		})
		require.NoError(t, err)
		_, err = svc.CancelBooking(caller("u1"), first.ID)
		require.NoError(t, err)

		second, err := svc.CreateBooking(caller("u1"), reservation.BookingRequest{
			SpotID:        "spot-2",
			VehicleNumber: "KA-01-1234",
			StartTime:     fixedNow, EndTime: fixedNow.Add(time.Hour),
		})
		require.NoError(t, err)

		active, err := svc.ListBookings(caller("u1"), models.BookingStatusActive)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, second.ID, active[0].ID)

		all, err := svc.ListBookings(caller("u1"), "")
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, first.ID, all[0].ID)
		assert.Equal(t, second.ID, all[1].ID)
	})

	t.Run("unknown status filter is rejected", func(t *testing.T) {
		svc, _, users := newEngine(t)
		seedUser(users, "u1")

		_, err := svc.ListBookings(caller("u1"), "pending")
		require.Error(t, err)
		assert.Equal(t, reservation.CodeValidation, reservation.CodeOf(err))
	})
}
