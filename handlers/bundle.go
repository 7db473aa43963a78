package handlers

import (
	userRepo "parkwise/database/repository/user"
)

// HandlerBundle collects the handlers and dependencies the router needs.
type HandlerBundle struct {
	// UserRepo backs the auth middleware's token verification.
	UserRepo userRepo.UserRepository

	Auth    *AuthHandler
	Booking *BookingHandler
	Spot    *SpotHandler
	User    *UserHandler
	Admin   *AdminHandler
}
