package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/danakita/borrower-onboarding/internal/dto"
	"github.com/danakita/borrower-onboarding/internal/service"
)

type PartnerHandler struct {
	base
	partnerServices service.PartnerServices
}

func NewPartnerHandler(
	partnerServices service.PartnerServices,
	meter metric.Meter,
	tracer trace.Tracer,
	log *zap.Logger,
) *PartnerHandler {
	return &PartnerHandler{
		base:            newBase(meter, tracer, log),
		partnerServices: partnerServices,
	}
}

// Register creates a borrower on behalf of the partner named in the path.
func (h *PartnerHandler) Register(c *fiber.Ctx) error {
	ctx, span, start := h.begin(c, "handler.PartnerRegister")
	defer span.End()

	partnerName := c.Params("partnerName")
	span.SetAttributes(attribute.String("partner.name", partnerName))

	var req dto.PartnerRegistration
	if err := c.BodyParser(&req); err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "parse_error", "Cannot parse request body", zap.Error(err))
	}

	if err := h.validate.Struct(req); err != nil {
		return h.serviceError(ctx, span, c, start, err)
	}

	serviceCtx, cancel := context.WithTimeout(ctx, serviceTimeout)
	defer cancel()

	res, err := h.partnerServices.Register(serviceCtx, partnerName, req)
	if err != nil {
		return h.serviceError(ctx, span, c, start, err,
			zap.String("partner", partnerName))
	}

	return h.recordSuccess(ctx, span, c, start, fiber.StatusOK, res,
		zap.String("partner", partnerName),
		zap.Uint64("customer_id", res.CustomerID),
	)
}

// CompleteRegistration applies the partner's completing-data payload.
func (h *PartnerHandler) CompleteRegistration(c *fiber.Ctx) error {
	ctx, span, start := h.begin(c, "handler.PartnerCompleteRegistration")
	defer span.End()

	partnerName := c.Params("partnerName")
	span.SetAttributes(attribute.String("partner.name", partnerName))

	var req dto.PartnerCompletingRegistration
	if err := c.BodyParser(&req); err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "parse_error", "Cannot parse request body", zap.Error(err))
	}

	if err := h.validate.Struct(req); err != nil {
		return h.serviceError(ctx, span, c, start, err)
	}

	serviceCtx, cancel := context.WithTimeout(ctx, serviceTimeout)
	defer cancel()

	res, err := h.partnerServices.CompleteRegistration(serviceCtx, partnerName, req)
	if err != nil {
		return h.serviceError(ctx, span, c, start, err,
			zap.String("partner", partnerName))
	}

	return h.recordSuccess(ctx, span, c, start, fiber.StatusOK, res,
		zap.String("partner", partnerName),
		zap.Uint64("customer_id", res.CustomerID),
	)
}
