package common

import (
	"errors"
	"os"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrRecordNotOwned      = errors.New("record does not belong to customer")
	ErrStatusRestricted    = errors.New("registration status does not permit updates")
	ErrAlreadyInProgress   = errors.New("a conflicting registration is still in progress")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountBlocked      = errors.New("account blocked after too many failed logins")
	ErrEmailNotVerified    = errors.New("email address has not been verified")
	ErrSyncFailed          = errors.New("failed to sync data to legacy store")
	ErrLockNotAcquired     = errors.New("another submission for this customer is in flight")
	ErrNPWPExists          = errors.New("tax id number already registered to another customer")
	ErrAlreadyPending      = errors.New("verification has already been requested")
	ErrInvalidTransition   = errors.New("registration status transition not allowed")
	ErrCoverageNotFound    = errors.New("city is outside the selected province coverage")
	ErrDocumentTypeUnknown = errors.New("unknown legal document type")
)

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// Meta is the response envelope every endpoint wraps its payload in.
type Meta struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Envelope struct {
	Meta Meta `json:"meta"`
	Data any  `json:"data,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, statusCode int, data any) error {
	return c.Status(statusCode).JSON(Envelope{
		Meta: Meta{Code: statusCode, Message: "success"},
		Data: data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Envelope{
		Meta: Meta{Code: statusCode, Message: message},
	})
}
