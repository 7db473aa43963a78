package handlers

import (
	"net/http"
	"time"

	"parkwise/services/reservation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the reservation engine's booking operations.
type BookingHandler struct {
	Service reservation.ReservationService
	Logger  *zap.Logger
}

func NewBookingHandler(svc reservation.ReservationService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var input struct {
		SpotID        string `json:"spotId" binding:"required"`
		VehicleNumber string `json:"vehicleNumber" binding:"required"`
		StartTime     string `json:"startTime" binding:"required"`
		EndTime       string `json:"endTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	start, err := time.Parse(time.RFC3339, input.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startTime must be an ISO-8601 timestamp"})
		return
	}
	end, err := time.Parse(time.RFC3339, input.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endTime must be an ISO-8601 timestamp"})
		return
	}

	booking, err := h.Service.CreateBooking(callerIdentity(c), reservation.BookingRequest{
		SpotID:        input.SpotID,
		VehicleNumber: input.VehicleNumber,
		StartTime:     start,
		EndTime:       end,
	})
	if err != nil {
		h.Logger.Warn("Create booking failed", zap.Error(err))
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Booking created successfully",
		"data":    booking,
	})
}

// CancelBookingHandler handles PATCH /api/bookings.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	var input struct {
		BookingID string `json:"bookingId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bookingId is required"})
		return
	}

	booking, err := h.Service.CancelBooking(callerIdentity(c), input.BookingID)
	if err != nil {
		h.Logger.Warn("Cancel booking failed", zap.String("bookingID", input.BookingID), zap.Error(err))
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking cancelled successfully",
		"data":    booking,
	})
}

// ListBookingsHandler handles GET /api/bookings.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	statusFilter := c.Query("status")

	bookings, err := h.Service.ListBookings(callerIdentity(c), statusFilter)
	if err != nil {
		h.Logger.Warn("List bookings failed", zap.Error(err))
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": bookings})
}
