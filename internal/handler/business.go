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
	"github.com/danakita/borrower-onboarding/internal/validation"
)

type BusinessHandler struct {
	base
	businessServices service.BusinessServices
	legalServices    service.LegalServices
}

func NewBusinessHandler(
	businessServices service.BusinessServices,
	legalServices service.LegalServices,
	meter metric.Meter,
	tracer trace.Tracer,
	log *zap.Logger,
) *BusinessHandler {
	return &BusinessHandler{
		base:             newBase(meter, tracer, log),
		businessServices: businessServices,
		legalServices:    legalServices,
	}
}

// SaveAll saves the institutional borrower's company profile.
func (h *BusinessHandler) SaveAll(c *fiber.Ctx) error {
	ctx, span, start := h.begin(c, "handler.BusinessSaveAll")
	defer span.End()

	customerID, err := customerFromLocals(c)
	if err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusUnauthorized, "auth_error", "Missing authentication")
	}
	span.SetAttributes(attribute.Int64("customer.id", int64(customerID)))

	var req dto.SaveBusinessProfile
	if err := c.BodyParser(&req); err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "parse_error", "Cannot parse request body", zap.Error(err))
	}

	if err := h.validate.Struct(req); err != nil {
		return h.serviceError(ctx, span, c, start, err)
	}

	serviceCtx, cancel := context.WithTimeout(ctx, serviceTimeout)
	defer cancel()

	if err := h.businessServices.Save(serviceCtx, customerID, req); err != nil {
		return h.serviceError(ctx, span, c, start, err,
			zap.Uint64("customer_id", customerID))
	}

	return h.recordSuccess(ctx, span, c, start, fiber.StatusOK, nil,
		zap.Uint64("customer_id", customerID),
	)
}

// SaveLegal replaces the borrower's legal document set.
func (h *BusinessHandler) SaveLegal(c *fiber.Ctx) error {
	ctx, span, start := h.begin(c, "handler.LegalSaveAll")
	defer span.End()

	customerID, err := customerFromLocals(c)
	if err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusUnauthorized, "auth_error", "Missing authentication")
	}
	span.SetAttributes(attribute.Int64("customer.id", int64(customerID)))

	var req dto.SaveAllLegalInformation
	if err := c.BodyParser(&req); err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "parse_error", "Cannot parse request body", zap.Error(err))
	}

	if err := h.validate.Struct(req); err != nil {
		return h.serviceError(ctx, span, c, start, err)
	}

	serviceCtx, cancel := context.WithTimeout(ctx, serviceTimeout)
	defer cancel()

	saved, err := h.legalServices.SaveAll(serviceCtx, customerID, req)
	if err != nil {
		return h.serviceError(ctx, span, c, start, err,
			zap.Uint64("customer_id", customerID))
	}

	responses := make([]dto.LegalInformationResponse, len(saved))
	for i, doc := range saved {
		name, _ := validation.DocumentTypeName(doc.DocumentTypeID)
		responses[i] = dto.LegalInformationFromEntity(doc, name)
	}

	return h.recordSuccess(ctx, span, c, start, fiber.StatusOK, responses,
		zap.Uint64("customer_id", customerID),
		zap.Int("documents", len(saved)),
	)
}
