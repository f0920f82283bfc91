package handler

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/danakita/borrower-onboarding/internal/service"
)

type VerificationHandler struct {
	base
	verificationServices service.VerificationServices
	completingServices   service.CompletingServices
}

func NewVerificationHandler(
	verificationServices service.VerificationServices,
	completingServices service.CompletingServices,
	meter metric.Meter,
	tracer trace.Tracer,
	log *zap.Logger,
) *VerificationHandler {
	return &VerificationHandler{
		base:                 newBase(meter, tracer, log),
		verificationServices: verificationServices,
		completingServices:   completingServices,
	}
}

// RequestVerification submits the borrower's registration for review once
// every required section is complete.
func (h *VerificationHandler) RequestVerification(c *fiber.Ctx) error {
	ctx, span, start := h.begin(c, "handler.RequestVerification")
	defer span.End()

	customerID, err := customerFromLocals(c)
	if err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusUnauthorized, "auth_error", "Missing authentication")
	}
	span.SetAttributes(attribute.Int64("customer.id", int64(customerID)))

	serviceCtx, cancel := context.WithTimeout(ctx, serviceTimeout)
	defer cancel()

	if err := h.verificationServices.RequestVerification(serviceCtx, customerID); err != nil {
		return h.serviceError(ctx, span, c, start, err,
			zap.Uint64("customer_id", customerID))
	}

	return h.recordSuccess(ctx, span, c, start, fiber.StatusOK, nil,
		zap.Uint64("customer_id", customerID),
	)
}

// GetCompletingData returns the consolidated onboarding view for the caller.
func (h *VerificationHandler) GetCompletingData(c *fiber.Ctx) error {
	ctx, span, start := h.begin(c, "handler.GetCompletingData")
	defer span.End()

	customerID, err := customerFromLocals(c)
	if err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusUnauthorized, "auth_error", "Missing authentication")
	}
	span.SetAttributes(attribute.Int64("customer.id", int64(customerID)))

	serviceCtx, cancel := context.WithTimeout(ctx, serviceTimeout)
	defer cancel()

	data, err := h.completingServices.GetCompletingData(serviceCtx, customerID)
	if err != nil {
		return h.serviceError(ctx, span, c, start, err,
			zap.Uint64("customer_id", customerID))
	}

	return h.recordSuccess(ctx, span, c, start, fiber.StatusOK, data,
		zap.Uint64("customer_id", customerID),
	)
}

func (h *VerificationHandler) statusAction(c *fiber.Ctx, name string, action func(context.Context, uint64) error) error {
	ctx, span, start := h.begin(c, name)
	defer span.End()

	customerID, err := strconv.ParseUint(c.Params("customerId"), 10, 64)
	if err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "parse_error", "Invalid customer id", zap.Error(err))
	}
	span.SetAttributes(attribute.Int64("customer.id", int64(customerID)))

	serviceCtx, cancel := context.WithTimeout(ctx, serviceTimeout)
	defer cancel()

	if err := action(serviceCtx, customerID); err != nil {
		return h.serviceError(ctx, span, c, start, err,
			zap.Uint64("customer_id", customerID))
	}

	return h.recordSuccess(ctx, span, c, start, fiber.StatusOK, nil,
		zap.Uint64("customer_id", customerID),
	)
}

// Activate approves a pending registration.
func (h *VerificationHandler) Activate(c *fiber.Ctx) error {
	return h.statusAction(c, "handler.Activate", h.verificationServices.Activate)
}

// Deactivate suspends an active borrower.
func (h *VerificationHandler) Deactivate(c *fiber.Ctx) error {
	return h.statusAction(c, "handler.Deactivate", h.verificationServices.Deactivate)
}

// Reject declines a pending registration. Rejecting twice is a no-op.
func (h *VerificationHandler) Reject(c *fiber.Ctx) error {
	return h.statusAction(c, "handler.Reject", h.verificationServices.Reject)
}

// Reopen returns a rejected registration to the editable state.
func (h *VerificationHandler) Reopen(c *fiber.Ctx) error {
	return h.statusAction(c, "handler.Reopen", h.verificationServices.Reopen)
}
