package user

import (
	"fmt"

	"parkwise/models"
	"parkwise/utils"

	"go.uber.org/zap"
)

// GetUserByID returns the user's profile without credential fields.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	usr, err := s.Repo.GetByID(userID)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch user", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if usr == nil {
		return nil, ErrUserNotFound
	}
	usr.PasswordHash = ""
	usr.TokenHash = ""
	return usr, nil
}

// GetAllUsers returns all registered users, newest first.
func (s *DefaultUserService) GetAllUsers() ([]models.User, error) {
	users, err := s.Repo.GetAll()
	if err != nil {
		utils.GetLogger().Error("Failed to fetch users", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}
