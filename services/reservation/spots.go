package reservation

import (
	"errors"

	spotRepo "parkwise/database/repository/spot"
	"parkwise/models"
	"parkwise/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Default sensor readings applied when an admin creates a spot without
// explicit values.
const (
	defaultTemperature = 22
	defaultHumidity    = 45
)

// ListSpots returns spots matching all supplied filters. This is a pure read.
func (s *DefaultReservationService) ListSpots(query SpotQuery) ([]models.ParkingSpot, error) {
	logger := utils.GetLogger()

	if query.Status != "" && !models.ValidSpotStatus(query.Status) {
		return nil, NewValidationError("unknown spot status: " + query.Status)
	}

	spots, err := s.Spots.List(spotRepo.SpotFilter{
		Floor:  query.Floor,
		Status: query.Status,
		Search: query.Search,
	})
	if err != nil {
		logger.Error("Failed to list spots", zap.Error(err))
		return nil, NewStorageError("failed to list parking spots")
	}
	return spots, nil
}

// CreateSpot registers a new parking spot. Admin only; rejects duplicate
// (slotNumber, floor, section) triples.
func (s *DefaultReservationService) CreateSpot(caller Identity, req SpotRequest) (*models.ParkingSpot, error) {
	logger := utils.GetLogger()

	if !caller.IsAdmin() {
		return nil, NewUnauthorizedError("admin role required")
	}
	if req.SlotNumber == "" {
		return nil, NewValidationError("slotNumber is required")
	}
	if req.Section == "" {
		return nil, NewValidationError("section is required")
	}
	if req.Floor <= 0 {
		return nil, NewValidationError("floor must be a positive integer")
	}
	if req.Rate <= 0 {
		return nil, NewValidationError("rate must be positive")
	}
	status := req.Status
	if status == "" {
		status = models.SpotStatusAvailable
	}
	if !models.ValidSpotStatus(status) {
		return nil, NewValidationError("status must be one of: available, occupied, reserved")
	}
	// occupantUserId is set iff the spot is not available.
	if status == models.SpotStatusAvailable && req.OccupantUserID != "" {
		return nil, NewValidationError("occupantUserId is not allowed for an available spot")
	}
	if status != models.SpotStatusAvailable && req.OccupantUserID == "" {
		return nil, NewValidationError("occupantUserId is required for a " + status + " spot")
	}

	existing, err := s.Spots.GetBySlot(req.SlotNumber, req.Floor, req.Section)
	if err != nil {
		logger.Error("Failed to check for duplicate spot", zap.Error(err))
		return nil, NewStorageError("failed to check for duplicate spot")
	}
	if existing != nil {
		return nil, NewConflictError("a spot with this slot number, floor and section already exists")
	}

	temperature := float64(defaultTemperature)
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	humidity := float64(defaultHumidity)
	if req.Humidity != nil {
		humidity = *req.Humidity
	}

	spot := &models.ParkingSpot{
		ID:             uuid.New().String(),
		SlotNumber:     req.SlotNumber,
		Floor:          req.Floor,
		Section:        req.Section,
		Rate:           req.Rate,
		Status:         status,
		OccupantUserID: req.OccupantUserID,
		Sensor: models.SensorReading{
			Temperature: temperature,
			Humidity:    humidity,
			LastUpdate:  s.now(),
		},
	}

	if err := s.Spots.Create(spot); err != nil {
		if errors.Is(err, spotRepo.ErrDuplicateSpot) {
			// The unique index caught a concurrent create.
			return nil, NewConflictError("a spot with this slot number, floor and section already exists")
		}
		logger.Error("Failed to create spot", zap.Error(err))
		return nil, NewStorageError("failed to create parking spot")
	}

	logger.Info("Spot created",
		zap.String("spotID", spot.ID),
		zap.String("slotNumber", spot.SlotNumber),
		zap.Int("floor", spot.Floor),
		zap.String("section", spot.Section))
	return spot, nil
}
