package handler

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/danakita/borrower-onboarding/internal/dto"
	"github.com/danakita/borrower-onboarding/internal/i18n"
	"github.com/danakita/borrower-onboarding/internal/service"
	"github.com/danakita/borrower-onboarding/middleware"
	"github.com/danakita/borrower-onboarding/pkg/common"
)

type PersonalHandler struct {
	base
	personalServices service.PersonalServices
}

func NewPersonalHandler(
	personalServices service.PersonalServices,
	meter metric.Meter,
	tracer trace.Tracer,
	log *zap.Logger,
) *PersonalHandler {
	return &PersonalHandler{
		base:             newBase(meter, tracer, log),
		personalServices: personalServices,
	}
}

// Save stores the borrower's personal data.
func (h *PersonalHandler) Save(c *fiber.Ctx) error {
	ctx, span, start := h.begin(c, "handler.PersonalSave")
	defer span.End()

	customerID, err := customerFromLocals(c)
	if err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusUnauthorized, "auth_error", "Missing authentication")
	}
	span.SetAttributes(attribute.Int64("customer.id", int64(customerID)))

	var req dto.SavePersonalProfile
	if err := c.BodyParser(&req); err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "parse_error", "Cannot parse request body", zap.Error(err))
	}

	if err := h.validate.Struct(req); err != nil {
		return h.serviceError(ctx, span, c, start, err)
	}

	serviceCtx, cancel := context.WithTimeout(ctx, serviceTimeout)
	defer cancel()

	if err := h.personalServices.Save(serviceCtx, customerID, req); err != nil {
		return h.serviceError(ctx, span, c, start, err,
			zap.Uint64("customer_id", customerID))
	}

	return h.recordSuccess(ctx, span, c, start, fiber.StatusOK, nil,
		zap.Uint64("customer_id", customerID),
	)
}

// UpdateProductPreference sets the product the borrower is onboarding for.
// The path names the borrower; a token for a different customer sees a 404,
// never someone else's record.
func (h *PersonalHandler) UpdateProductPreference(c *fiber.Ctx) error {
	ctx, span, start := h.begin(c, "handler.UpdateProductPreference")
	defer span.End()

	callerID, err := customerFromLocals(c)
	if err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusUnauthorized, "auth_error", "Missing authentication")
	}

	customerID, err := strconv.ParseUint(c.Params("customerId"), 10, 64)
	if err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "parse_error", "Invalid customer id", zap.Error(err))
	}
	span.SetAttributes(attribute.Int64("customer.id", int64(customerID)))

	if callerID != customerID {
		return h.recordError(ctx, span, c, start, common.ErrRecordNotOwned,
			fiber.StatusNotFound, "not_found",
			i18n.T(middleware.LocaleFrom(c), i18n.CodeRecordNotFound),
			zap.Uint64("caller_id", callerID),
			zap.Uint64("customer_id", customerID))
	}

	var req dto.UpdateProductPreference
	if err := c.BodyParser(&req); err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "parse_error", "Cannot parse request body", zap.Error(err))
	}

	if err := h.validate.Struct(req); err != nil {
		return h.serviceError(ctx, span, c, start, err)
	}

	serviceCtx, cancel := context.WithTimeout(ctx, serviceTimeout)
	defer cancel()

	if err := h.personalServices.UpdateProductPreference(serviceCtx, customerID, req); err != nil {
		return h.serviceError(ctx, span, c, start, err,
			zap.Uint64("customer_id", customerID))
	}

	return h.recordSuccess(ctx, span, c, start, fiber.StatusOK, nil,
		zap.Uint64("customer_id", customerID),
	)
}
