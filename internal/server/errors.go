package server

import (
	"errors"
	"net/http"

	authdomain "github.com/gesticasa/inmosuite/internal/auth/domain"
	checkoutdomain "github.com/gesticasa/inmosuite/internal/checkout/domain"
	invitedomain "github.com/gesticasa/inmosuite/internal/invite/domain"
	paymentdomain "github.com/gesticasa/inmosuite/internal/payment/domain"
	tenantdomain "github.com/gesticasa/inmosuite/internal/tenant/domain"
	"github.com/gin-gonic/gin"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

// mapError turns domain sentinels into a status code and a short message.
// Internal detail never leaves; it only reaches the operator logs.
func mapError(err error) (int, errorPayload) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "invalid request",
		}
	case errors.Is(err, authdomain.ErrInvalidCredentials):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_credentials",
			Message: "invalid email or password",
		}
	case errors.Is(err, paymentdomain.ErrInvalidSignature):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_signature",
			Message: "webhook signature verification failed",
		}
	case errors.Is(err, invitedomain.ErrInvalidToken),
		errors.Is(err, invitedomain.ErrTokenExpired):
		return http.StatusBadRequest, errorPayload{
			Type:    "invalid_token",
			Message: "invite token is invalid or expired",
		}
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidSession),
		errors.Is(err, authdomain.ErrSessionExpired):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, tenantdomain.ErrAlreadyProvisioned):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "account already exists",
		}
	case errors.Is(err, authdomain.ErrRateLimited):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: "too many attempts, try again later",
		}
	case errors.Is(err, invitedomain.ErrQuotaExceeded):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "quota_exceeded",
			Message: "invite limit reached",
		}
	case errors.Is(err, checkoutdomain.ErrUpstream),
		errors.Is(err, invitedomain.ErrDeliveryFailed):
		return http.StatusBadGateway, errorPayload{
			Type:    "upstream_error",
			Message: "an external service is unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, checkoutdomain.ErrInvalidRequest),
		errors.Is(err, tenantdomain.ErrInvalidRequest),
		errors.Is(err, invitedomain.ErrInvalidRequest),
		errors.Is(err, paymentdomain.ErrInvalidPayload),
		errors.Is(err, paymentdomain.ErrInvalidEvent):
		return true
	default:
		return false
	}
}
