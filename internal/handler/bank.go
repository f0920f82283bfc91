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

type BankHandler struct {
	base
	bankServices service.BankServices
}

func NewBankHandler(
	bankServices service.BankServices,
	meter metric.Meter,
	tracer trace.Tracer,
	log *zap.Logger,
) *BankHandler {
	return &BankHandler{
		base:         newBase(meter, tracer, log),
		bankServices: bankServices,
	}
}

// SaveAll replaces the borrower's bank account set in one submission. Exactly
// one account must be flagged for disbursement.
func (h *BankHandler) SaveAll(c *fiber.Ctx) error {
	ctx, span, start := h.begin(c, "handler.BankSaveAll")
	defer span.End()

	customerID, err := customerFromLocals(c)
	if err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusUnauthorized, "auth_error", "Missing authentication")
	}
	span.SetAttributes(attribute.Int64("customer.id", int64(customerID)))

	var req dto.SaveAllBankInformation
	if err := c.BodyParser(&req); err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "parse_error", "Cannot parse request body", zap.Error(err))
	}

	if err := h.validate.Struct(req); err != nil {
		return h.serviceError(ctx, span, c, start, err)
	}

	serviceCtx, cancel := context.WithTimeout(ctx, serviceTimeout)
	defer cancel()

	saved, err := h.bankServices.SaveAll(serviceCtx, customerID, req)
	if err != nil {
		return h.serviceError(ctx, span, c, start, err,
			zap.Uint64("customer_id", customerID))
	}

	return h.recordSuccess(ctx, span, c, start, fiber.StatusOK,
		dto.BankInformationsFromEntity(saved),
		zap.Uint64("customer_id", customerID),
		zap.Int("accounts", len(saved)),
	)
}
