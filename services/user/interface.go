package user

import (
	"errors"

	userRepo "parkwise/database/repository/user"
	"parkwise/models"
)

// Sentinel errors surfaced to handlers.
var (
	ErrEmailTaken         = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthResponse contains the user's ID, token, and profile details.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

type UserService interface {
	// Registration and authentication
	Register(req models.UserRegistration) (*models.User, error)
	Authenticate(email, password string) (*AuthResponse, error)
	RevokeAuthToken(userID string) error

	// User management
	GetUserByID(userID string) (*models.User, error)

	// Admin / utility
	GetAllUsers() ([]models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
