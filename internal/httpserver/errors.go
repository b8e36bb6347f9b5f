package httpserver

import (
	"errors"
	"net/http"

	"teapos/internal/checkout"
	"teapos/internal/domain"

	"github.com/gin-gonic/gin"
)

// statusFor maps a classified error onto an HTTP status. Checkout guards are
// checked before validation because insufficient cash wraps ErrValidation.
func statusFor(err error) int {
	switch {
	case errors.Is(err, checkout.ErrCheckoutInProgress),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrInsufficientCash),
		errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrInvalidStatusTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPayment):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrNetwork), errors.Is(err, domain.ErrData):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": domain.Message(err)})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}
