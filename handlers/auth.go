package handlers

import (
	"errors"
	"net/http"

	"parkwise/models"
	userSvc "parkwise/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler exposes registration, login and token revocation.
type AuthHandler struct {
	Service userSvc.UserService
	Logger  *zap.Logger
}

func NewAuthHandler(svc userSvc.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Service: svc, Logger: logger}
}

// RegisterHandler handles POST /api/auth/register.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req models.UserRegistration
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	usr, err := h.Service.Register(req)
	if err != nil {
		if errors.Is(err, userSvc.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.Logger.Warn("Registration failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully",
		"data":    usr,
	})
}

// LoginHandler handles POST /api/auth/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	resp, err := h.Service.Authenticate(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, userSvc.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		h.Logger.Error("Authentication failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RevokeTokenHandler handles DELETE /api/auth/revoke.
func (h *AuthHandler) RevokeTokenHandler(c *gin.Context) {
	caller := callerIdentity(c)
	if err := h.Service.RevokeAuthToken(caller.UserID); err != nil {
		h.Logger.Error("Token revocation failed", zap.String("userID", caller.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Token revoked"})
}
