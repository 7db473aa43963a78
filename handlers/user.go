package handlers

import (
	"errors"
	"net/http"

	userSvc "parkwise/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler exposes profile endpoints for the authenticated caller.
type UserHandler struct {
	Service userSvc.UserService
	Logger  *zap.Logger
}

func NewUserHandler(svc userSvc.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{Service: svc, Logger: logger}
}

// GetCurrentUserHandler handles GET /api/users/me.
func (h *UserHandler) GetCurrentUserHandler(c *gin.Context) {
	caller := callerIdentity(c)

	usr, err := h.Service.GetUserByID(caller.UserID)
	if err != nil {
		if errors.Is(err, userSvc.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.Logger.Error("Failed to fetch current user", zap.String("userID", caller.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"id":            usr.ID,
			"name":          usr.Name,
			"email":         usr.Email,
			"mobile":        usr.Mobile,
			"vehicleNumber": usr.VehicleNumber,
			"role":          usr.Role,
		},
	})
}
