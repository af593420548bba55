package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel/internal/domain"
	"hotel/internal/http/middleware"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Anything outside
// the domain taxonomy is a 500 with a generic message; the cause stays in the
// logs only.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsBookingWindow(err):
		respondError(c, http.StatusBadRequest, "booking_window", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsNoCandidates(err):
		respondError(c, http.StatusNotFound, "no_candidates", err.Error())
	case domain.IsBookingConflict(err):
		respondError(c, http.StatusConflict, "booking_conflict", err.Error())
	case domain.IsActiveBookings(err):
		respondError(c, http.StatusConflict, "active_bookings", err.Error())
	case domain.IsNotModifiable(err):
		respondError(c, http.StatusConflict, "not_modifiable", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	case domain.IsAtomicCreate(err):
		respondError(c, http.StatusBadRequest, "atomic_create_failed", err.Error())
	case domain.IsForbidden(err):
		respondError(c, http.StatusForbidden, "forbidden", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
