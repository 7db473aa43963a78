package handlers

import (
	"net/http"

	"parkwise/services/reservation"

	"github.com/gin-gonic/gin"
)

// callerIdentity builds the engine identity from context values set by the
// auth middleware.
func callerIdentity(c *gin.Context) reservation.Identity {
	id := reservation.Identity{}
	if v, ok := c.Get("userID"); ok {
		id.UserID, _ = v.(string)
	}
	if v, ok := c.Get("role"); ok {
		id.Role, _ = v.(string)
	}
	return id
}

// statusForEngineError maps engine error codes to HTTP statuses.
func statusForEngineError(err error) int {
	switch reservation.CodeOf(err) {
	case reservation.CodeValidation:
		return http.StatusBadRequest
	case reservation.CodeNotFound:
		return http.StatusNotFound
	case reservation.CodeConflict, reservation.CodeInvalidState:
		return http.StatusConflict
	case reservation.CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondEngineError writes an engine error as a JSON response.
func respondEngineError(c *gin.Context, err error) {
	c.JSON(statusForEngineError(err), gin.H{"error": err.Error()})
}
