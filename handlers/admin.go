package handlers

import (
	"net/http"
	"time"

	"parkwise/models"
	userSvc "parkwise/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes administrator views over user activity.
type AdminHandler struct {
	UserService userSvc.UserService
	Logger      *zap.Logger
}

func NewAdminHandler(svc userSvc.UserService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{UserService: svc, Logger: logger}
}

// userSummary is the admin-facing view of a user.
type userSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Mobile         string `json:"mobile"`
	VehicleNumber  string `json:"vehicleNumber"`
	Role           string `json:"role"`
	RegisteredDate string `json:"registeredDate"`
	TotalBookings  int    `json:"totalBookings"`
}

// GetAllUsersHandler handles GET /api/admin/users.
func (h *AdminHandler) GetAllUsersHandler(c *gin.Context) {
	users, err := h.UserService.GetAllUsers()
	if err != nil {
		h.Logger.Error("Failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	summaries := make([]userSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, summarizeUser(u))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": summaries})
}

func summarizeUser(u models.User) userSummary {
	return userSummary{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Mobile:         u.Mobile,
		VehicleNumber:  u.VehicleNumber,
		Role:           u.Role,
		RegisteredDate: u.CreatedAt.UTC().Format(time.RFC3339),
		TotalBookings:  len(u.Bookings),
	}
}
