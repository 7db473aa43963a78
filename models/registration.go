package models

// UserRegistration is the input payload for creating a new user account.
type UserRegistration struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Mobile          string `json:"mobile" binding:"required"`
	VehicleNumber   string `json:"vehicleNumber" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}
