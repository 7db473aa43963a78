package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parkwise/models"
	"parkwise/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a new user account with a bcrypt-hashed password.
func (s *DefaultUserService) Register(req models.UserRegistration) (*models.User, error) {
	logger := utils.GetLogger()

	if req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("passwords do not match")
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters long")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		logger.Error("Failed to check for existing user", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usr := &models.User{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Email:         email,
		Mobile:        req.Mobile,
		VehicleNumber: req.VehicleNumber,
		Role:          models.RoleUser,
		PasswordHash:  string(hash),
		Bookings:      []models.Booking{},
	}
	if err := s.Repo.Create(usr); err != nil {
		logger.Error("Failed to create user", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("User registered", zap.String("userID", usr.ID), zap.String("email", email))
	usr.PasswordHash = ""
	return usr, nil
}

// Authenticate verifies the credentials, issues a JWT carrying the user's
// role, and stores the token hash for middleware verification.
func (s *DefaultUserService) Authenticate(email, password string) (*AuthResponse, error) {
	logger := utils.GetLogger()

	usr, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		logger.Error("Failed to fetch user for authentication", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if usr == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(usr.ID, usr.Email, usr.Role, utils.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	tokenHash := utils.HashToken(token)

	if err := s.Repo.UpdateTokenHash(usr.ID, tokenHash); err != nil {
		logger.Error("Failed to store token hash", zap.String("userID", usr.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to store token hash: %w", err)
	}

	// Prime the auth cache so the first authenticated request skips the DB.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	cacheKey := utils.AuthCachePrefix + usr.ID
	if err := utils.GetAuthCacheClient().Set(ctx, cacheKey, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
		logger.Warn("Failed to prime auth cache", zap.String("userID", usr.ID), zap.Error(err))
	}

	return &AuthResponse{
		ID:    usr.ID,
		Token: token,
		Name:  usr.Name,
		Email: usr.Email,
		Role:  usr.Role,
	}, nil
}

// RevokeAuthToken invalidates the user's current token.
func (s *DefaultUserService) RevokeAuthToken(userID string) error {
	logger := utils.GetLogger()

	if err := s.Repo.UpdateTokenHash(userID, ""); err != nil {
		logger.Error("Failed to revoke token", zap.String("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := utils.GetAuthCacheClient().Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
		logger.Warn("Failed to clear auth cache", zap.String("userID", userID), zap.Error(err))
	}
	return nil
}
