package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/danakita/borrower-onboarding/internal/dto"
	"github.com/danakita/borrower-onboarding/internal/service"
)

type AuthHandler struct {
	base
	authServices service.AuthServices
}

func NewAuthHandler(
	authServices service.AuthServices,
	meter metric.Meter,
	tracer trace.Tracer,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		base:         newBase(meter, tracer, log),
		authServices: authServices,
	}
}

// Login exchanges credentials for an access token plus the legacy session
// payload. The frontoffice and backoffice routes share this handler.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	ctx, span, start := h.begin(c, "handler.Login")
	defer span.End()

	var req dto.Login
	if err := c.BodyParser(&req); err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "parse_error", "Cannot parse request body", zap.Error(err))
	}

	if err := h.validate.Struct(req); err != nil {
		return h.serviceError(ctx, span, c, start, err)
	}

	serviceCtx, cancel := context.WithTimeout(ctx, serviceTimeout)
	defer cancel()

	res, err := h.authServices.Login(serviceCtx, req)
	if err != nil {
		// No email in the failure log; the counter key already carries it.
		return h.serviceError(ctx, span, c, start, err)
	}

	return h.recordSuccess(ctx, span, c, start, fiber.StatusOK, res)
}
