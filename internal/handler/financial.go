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
	"github.com/danakita/borrower-onboarding/internal/service"
)

type FinancialHandler struct {
	base
	financialServices service.FinancialServices
}

func NewFinancialHandler(
	financialServices service.FinancialServices,
	meter metric.Meter,
	tracer trace.Tracer,
	log *zap.Logger,
) *FinancialHandler {
	return &FinancialHandler{
		base:              newBase(meter, tracer, log),
		financialServices: financialServices,
	}
}

// Add records a new statement file for the borrower.
func (h *FinancialHandler) Add(c *fiber.Ctx) error {
	ctx, span, start := h.begin(c, "handler.FinancialAdd")
	defer span.End()

	customerID, err := customerFromLocals(c)
	if err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusUnauthorized, "auth_error", "Missing authentication")
	}
	span.SetAttributes(attribute.Int64("customer.id", int64(customerID)))

	var req dto.FinancialInformation
	if err := c.BodyParser(&req); err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "parse_error", "Cannot parse request body", zap.Error(err))
	}

	if err := h.validate.Struct(req); err != nil {
		return h.serviceError(ctx, span, c, start, err)
	}

	serviceCtx, cancel := context.WithTimeout(ctx, serviceTimeout)
	defer cancel()

	saved, err := h.financialServices.Add(serviceCtx, customerID, req)
	if err != nil {
		return h.serviceError(ctx, span, c, start, err,
			zap.Uint64("customer_id", customerID))
	}

	return h.recordSuccess(ctx, span, c, start, fiber.StatusOK,
		dto.StatementFileFromEntity(*saved),
		zap.Uint64("customer_id", customerID),
	)
}

// Update replaces an existing statement file. A record belonging to another
// borrower is indistinguishable from a missing one.
func (h *FinancialHandler) Update(c *fiber.Ctx) error {
	ctx, span, start := h.begin(c, "handler.FinancialUpdate")
	defer span.End()

	customerID, err := customerFromLocals(c)
	if err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusUnauthorized, "auth_error", "Missing authentication")
	}
	span.SetAttributes(attribute.Int64("customer.id", int64(customerID)))

	statementFileID, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "parse_error", "Invalid financial information id", zap.Error(err))
	}

	var req dto.FinancialInformation
	if err := c.BodyParser(&req); err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "parse_error", "Cannot parse request body", zap.Error(err))
	}

	if err := h.validate.Struct(req); err != nil {
		return h.serviceError(ctx, span, c, start, err)
	}

	serviceCtx, cancel := context.WithTimeout(ctx, serviceTimeout)
	defer cancel()

	saved, err := h.financialServices.Update(serviceCtx, customerID, statementFileID, req)
	if err != nil {
		return h.serviceError(ctx, span, c, start, err,
			zap.Uint64("customer_id", customerID),
			zap.Uint64("statement_file_id", statementFileID))
	}

	return h.recordSuccess(ctx, span, c, start, fiber.StatusOK,
		dto.StatementFileFromEntity(*saved),
		zap.Uint64("customer_id", customerID),
	)
}

// SaveInstitutional stores the audited per-year figures and the derived
// ratios and trends for an institutional borrower. The route is restricted
// to backoffice tokens.
func (h *FinancialHandler) SaveInstitutional(c *fiber.Ctx) error {
	ctx, span, start := h.begin(c, "handler.FinancialSaveInstitutional")
	defer span.End()

	customerID, err := strconv.ParseUint(c.Query("customerId"), 10, 64)
	if err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "parse_error", "Invalid customer id", zap.Error(err))
	}
	span.SetAttributes(attribute.Int64("customer.id", int64(customerID)))

	var req dto.InstitutionalFinancialSave
	if err := c.BodyParser(&req); err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "parse_error", "Cannot parse request body", zap.Error(err))
	}

	if err := h.validate.Struct(req); err != nil {
		return h.serviceError(ctx, span, c, start, err)
	}

	serviceCtx, cancel := context.WithTimeout(ctx, serviceTimeout)
	defer cancel()

	if err := h.financialServices.SaveInstitutional(serviceCtx, customerID, req); err != nil {
		return h.serviceError(ctx, span, c, start, err,
			zap.Uint64("customer_id", customerID))
	}

	return h.recordSuccess(ctx, span, c, start, fiber.StatusOK, nil,
		zap.Uint64("customer_id", customerID),
	)
}
