package reservation

import (
	"time"

	"parkwise/models"
	"parkwise/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// startGrace absorbs clock skew between caller and server when validating
// the booking start time.
const startGrace = time.Minute

// CreateBooking validates the requested window, reserves the spot through a
// conditional update, and appends the booking to the caller's collection.
// The spot write happens first; if the booking write then fails, the spot is
// released so its status stays the source of truth for availability.
func (s *DefaultReservationService) CreateBooking(caller Identity, req BookingRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	if caller.UserID == "" {
		return nil, NewUnauthorizedError("caller identity is required")
	}
	if req.SpotID == "" {
		return nil, NewValidationError("spotId is required")
	}
	if req.VehicleNumber == "" {
		return nil, NewValidationError("vehicleNumber is required")
	}
	if !req.StartTime.Before(req.EndTime) {
		return nil, NewValidationError("startTime must be before endTime")
	}

	now := s.now()
	if req.StartTime.Before(now.Add(-startGrace)) {
		return nil, NewValidationError("startTime must not be in the past")
	}

	duration := ComputeDuration(req.StartTime, req.EndTime)
	if duration <= 0 {
		return nil, NewValidationError("booking window is too short")
	}

	user, err := s.Users.GetByID(caller.UserID)
	if err != nil {
		logger.Error("Failed to fetch user", zap.String("userID", caller.UserID), zap.Error(err))
		return nil, NewStorageError("failed to look up user")
	}
	if user == nil {
		return nil, NewNotFoundError("user not found")
	}

	spot, err := s.Spots.GetByID(req.SpotID)
	if err != nil {
		logger.Error("Failed to fetch spot", zap.String("spotID", req.SpotID), zap.Error(err))
		return nil, NewStorageError("failed to look up parking spot")
	}
	if spot == nil {
		return nil, NewNotFoundError("parking spot not found")
	}
	if spot.Status != models.SpotStatusAvailable {
		return nil, NewConflictError("parking spot is not available")
	}

	// The conditional update is the authoritative availability check: of two
	// concurrent bookings for the same spot, at most one matches.
	reserved, err := s.Spots.Reserve(req.SpotID, caller.UserID)
	if err != nil {
		logger.Error("Failed to reserve spot", zap.String("spotID", req.SpotID), zap.Error(err))
		return nil, NewStorageError("failed to reserve parking spot")
	}
	if !reserved {
		return nil, NewConflictError("parking spot is not available")
	}

	booking := &models.Booking{
		ID:            uuid.New().String(),
		SpotID:        spot.ID,
		SlotNumber:    spot.SlotNumber,
		UserID:        caller.UserID,
		VehicleNumber: req.VehicleNumber,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Duration:      duration,
		TotalCost:     ComputeCost(spot.Rate, duration),
		Status:        models.BookingStatusActive,
		CreatedAt:     now,
	}

	if err := s.Users.AppendBooking(caller.UserID, booking); err != nil {
		logger.Error("Failed to append booking, releasing spot",
			zap.String("spotID", req.SpotID), zap.String("userID", caller.UserID), zap.Error(err))
		if _, relErr := s.Spots.Release(req.SpotID, caller.UserID); relErr != nil {
			logger.Error("Failed to release spot after booking write failure",
				zap.String("spotID", req.SpotID), zap.Error(relErr))
		}
		return nil, NewStorageError("failed to record booking")
	}

	logger.Info("Booking created",
		zap.String("bookingID", booking.ID),
		zap.String("spotID", booking.SpotID),
		zap.String("userID", booking.UserID))
	return booking, nil
}

// CancelBooking cancels an active booking and frees the referenced spot.
// Spot-side cleanup is best effort: the cancellation stands even if the spot
// no longer exists.
func (s *DefaultReservationService) CancelBooking(caller Identity, bookingID string) (*models.Booking, error) {
	logger := utils.GetLogger()

	if caller.UserID == "" {
		return nil, NewUnauthorizedError("caller identity is required")
	}
	if bookingID == "" {
		return nil, NewValidationError("bookingId is required")
	}

	booking, err := s.Users.GetBooking(caller.UserID, bookingID)
	if err != nil {
		logger.Error("Failed to fetch booking", zap.String("bookingID", bookingID), zap.Error(err))
		return nil, NewStorageError("failed to look up booking")
	}
	if booking == nil {
		return nil, NewNotFoundError("booking not found")
	}
	if booking.Status != models.BookingStatusActive {
		return nil, NewInvalidStateError("only active bookings can be cancelled")
	}

	changed, err := s.Users.UpdateBookingStatus(caller.UserID, bookingID,
		models.BookingStatusActive, models.BookingStatusCancelled)
	if err != nil {
		logger.Error("Failed to cancel booking", zap.String("bookingID", bookingID), zap.Error(err))
		return nil, NewStorageError("failed to cancel booking")
	}
	if !changed {
		// Lost a race with the completion sweep or another cancel.
		return nil, NewInvalidStateError("only active bookings can be cancelled")
	}
	booking.Status = models.BookingStatusCancelled

	if _, err := s.Spots.Release(booking.SpotID, caller.UserID); err != nil {
		logger.Warn("Failed to release spot after cancellation",
			zap.String("spotID", booking.SpotID), zap.Error(err))
	}

	logger.Info("Booking cancelled",
		zap.String("bookingID", bookingID), zap.String("userID", caller.UserID))
	return booking, nil
}

// ListBookings returns the caller's bookings in insertion order, optionally
// filtered by status. Before returning it runs the passive completion sweep:
// every active booking whose end time has passed is persisted as completed
// and its spot is released. The sweep is the only active-to-completed
// transition path; there is no background scheduler.
func (s *DefaultReservationService) ListBookings(caller Identity, statusFilter string) ([]models.Booking, error) {
	logger := utils.GetLogger()

	if caller.UserID == "" {
		return nil, NewUnauthorizedError("caller identity is required")
	}
	if statusFilter != "" && !models.ValidBookingStatus(statusFilter) {
		return nil, NewValidationError("unknown booking status: " + statusFilter)
	}

	user, err := s.Users.GetByID(caller.UserID)
	if err != nil {
		logger.Error("Failed to fetch user", zap.String("userID", caller.UserID), zap.Error(err))
		return nil, NewStorageError("failed to look up user")
	}
	if user == nil {
		return nil, NewNotFoundError("user not found")
	}

	bookings := user.Bookings
	if bookings == nil {
		bookings = []models.Booking{}
	}
	now := s.now()
	for i := range bookings {
		b := &bookings[i]
		if b.Status != models.BookingStatusActive || !b.EndTime.Before(now) {
			continue
		}
		changed, err := s.Users.UpdateBookingStatus(caller.UserID, b.ID,
			models.BookingStatusActive, models.BookingStatusCompleted)
		if err != nil {
			logger.Error("Failed to complete expired booking",
				zap.String("bookingID", b.ID), zap.Error(err))
			return nil, NewStorageError("failed to complete expired booking")
		}
		if !changed {
			continue
		}
		b.Status = models.BookingStatusCompleted
		if _, err := s.Spots.Release(b.SpotID, caller.UserID); err != nil {
			logger.Warn("Failed to release spot for completed booking",
				zap.String("spotID", b.SpotID), zap.Error(err))
		}
	}

	if statusFilter == "" {
		return bookings, nil
	}
	filtered := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == statusFilter {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}
