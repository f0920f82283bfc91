package handler

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/danakita/borrower-onboarding/internal/legacy"
)

// SyncHandler serves the legacy mirror read surface the verification tooling
// consumes. The filter syntax follows the old loopback convention:
// filter[where][<table>_migration_id]=<id>.
type SyncHandler struct {
	base
	syncRepository *legacy.SyncRepository
}

func NewSyncHandler(
	syncRepository *legacy.SyncRepository,
	meter metric.Meter,
	tracer trace.Tracer,
	log *zap.Logger,
) *SyncHandler {
	return &SyncHandler{
		base:           newBase(meter, tracer, log),
		syncRepository: syncRepository,
	}
}

func (h *SyncHandler) migrationID(c *fiber.Ctx, table string) (uint64, error) {
	raw := c.Query("filter[where][" + table + "_migration_id]")
	return strconv.ParseUint(raw, 10, 64)
}

func (h *SyncHandler) serve(c *fiber.Ctx, name, table string, find func(context.Context, uint64) (any, error)) error {
	ctx, span, start := h.begin(c, name)
	defer span.End()

	migrationID, err := h.migrationID(c, table)
	if err != nil {
		return h.recordError(ctx, span, c, start, err,
			fiber.StatusBadRequest, "parse_error", "Invalid migration id filter", zap.Error(err))
	}
	span.SetAttributes(attribute.Int64("migration.id", int64(migrationID)))

	serviceCtx, cancel := context.WithTimeout(ctx, serviceTimeout)
	defer cancel()

	rows, err := find(serviceCtx, migrationID)
	if err != nil {
		return h.serviceError(ctx, span, c, start, err,
			zap.Uint64("migration_id", migrationID))
	}

	// The consumer expects a bare array, not the meta envelope.
	return c.Status(fiber.StatusOK).JSON(rows)
}

// Borrowers answers GET /bpd.
func (h *SyncHandler) Borrowers(c *fiber.Ctx) error {
	return h.serve(c, "handler.SyncBorrowers", "bpd", func(ctx context.Context, id uint64) (any, error) {
		borrower, err := h.syncRepository.FindBorrowerByMigrationID(ctx, id)
		if err != nil {
			return nil, err
		}
		if borrower == nil {
			return []any{}, nil
		}
		return []any{borrower}, nil
	})
}

// BalanceSheets answers GET /bs.
func (h *SyncHandler) BalanceSheets(c *fiber.Ctx) error {
	return h.serve(c, "handler.SyncBalanceSheets", "bs", func(ctx context.Context, id uint64) (any, error) {
		return h.syncRepository.FindBalanceSheets(ctx, id)
	})
}

// FinancialRatios answers GET /fr.
func (h *SyncHandler) FinancialRatios(c *fiber.Ctx) error {
	return h.serve(c, "handler.SyncFinancialRatios", "fr", func(ctx context.Context, id uint64) (any, error) {
		return h.syncRepository.FindRatios(ctx, id)
	})
}

// FinancialTrends answers GET /ft.
func (h *SyncHandler) FinancialTrends(c *fiber.Ctx) error {
	return h.serve(c, "handler.SyncFinancialTrends", "ft", func(ctx context.Context, id uint64) (any, error) {
		return h.syncRepository.FindTrends(ctx, id)
	})
}
