package handlers

import (
	"net/http"
	"strconv"

	"parkwise/services/reservation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SpotHandler exposes spot listing and admin spot management.
type SpotHandler struct {
	Service reservation.ReservationService
	Logger  *zap.Logger
}

func NewSpotHandler(svc reservation.ReservationService, logger *zap.Logger) *SpotHandler {
	return &SpotHandler{Service: svc, Logger: logger}
}

// ListSpotsHandler handles GET /api/spots. Filters: floor, status, search.
func (h *SpotHandler) ListSpotsHandler(c *gin.Context) {
	query := reservation.SpotQuery{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	if raw := c.Query("floor"); raw != "" {
		floor, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "floor must be an integer"})
			return
		}
		query.Floor = &floor
	}

	spots, err := h.Service.ListSpots(query)
	if err != nil {
		h.Logger.Warn("List spots failed", zap.Error(err))
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": spots})
}

// CreateSpotHandler handles POST /api/spots (admin only).
func (h *SpotHandler) CreateSpotHandler(c *gin.Context) {
	var input struct {
		SlotNumber     string   `json:"slotNumber" binding:"required"`
		Floor          int      `json:"floor" binding:"required"`
		Section        string   `json:"section" binding:"required"`
		Status         string   `json:"status"`
		Rate           float64  `json:"rate" binding:"required"`
		OccupantUserID string   `json:"occupantUserId"`
		Temperature    *float64 `json:"temperature"`
		Humidity       *float64 `json:"humidity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	spot, err := h.Service.CreateSpot(callerIdentity(c), reservation.SpotRequest{
		SlotNumber:     input.SlotNumber,
		Floor:          input.Floor,
		Section:        input.Section,
		Status:         input.Status,
		Rate:           input.Rate,
		OccupantUserID: input.OccupantUserID,
		Temperature:    input.Temperature,
		Humidity:       input.Humidity,
	})
	if err != nil {
		h.Logger.Warn("Create spot failed", zap.Error(err))
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Parking spot created successfully",
		"data":    spot,
	})
}
