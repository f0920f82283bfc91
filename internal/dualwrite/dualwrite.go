// Package dualwrite holds the coordinator that makes a new-core write and its
// legacy mirror write visible together or not at all. There is no native
// two-phase commit between the two MySQL stores, so the coordinator runs a
// saga: commit the legacy leg first, then the new-core leg, and compensate the
// legacy commit if the new-core commit fails.
package dualwrite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/danakita/borrower-onboarding/internal/legacy"
	"github.com/danakita/borrower-onboarding/internal/model"
	"github.com/danakita/borrower-onboarding/pkg/common"
)

// CommitFn applies one submission to both stores. Both handles are open
// transactions; the function must write through them and nothing else.
type CommitFn func(newTx, legacyTx *gorm.DB) error

// CompensateFn undoes an already-committed legacy leg. It runs on a fresh
// transaction after the new-core commit failed.
type CompensateFn func(legacyTx *gorm.DB) error

type Coordinator struct {
	newCore *gorm.DB
	sync    *legacy.SyncRepository
	rdb     *redis.Client
	lockTTL time.Duration

	tracer trace.Tracer
	log    *zap.Logger

	commitCount       metric.Int64Counter
	commitFailures    metric.Int64Counter
	compensationCount metric.Int64Counter
	commitDuration    metric.Float64Histogram
}

func NewCoordinator(
	newCore *gorm.DB,
	sync *legacy.SyncRepository,
	rdb *redis.Client,
	lockTTL time.Duration,
	meter metric.Meter,
	tracer trace.Tracer,
	log *zap.Logger,
) *Coordinator {
	commitCount, _ := meter.Int64Counter(
		"dualwrite.commit.count",
		metric.WithDescription("Number of dual-write commits attempted"),
		metric.WithUnit("{commit}"),
	)

	commitFailures, _ := meter.Int64Counter(
		"dualwrite.commit.failures",
		metric.WithDescription("Number of dual-write commits aborted or rolled back"),
		metric.WithUnit("{commit}"),
	)

	compensationCount, _ := meter.Int64Counter(
		"dualwrite.compensations",
		metric.WithDescription("Number of legacy compensations after a new-core commit failure"),
		metric.WithUnit("{compensation}"),
	)

	commitDuration, _ := meter.Float64Histogram(
		"dualwrite.commit.duration",
		metric.WithDescription("Duration of dual-write commits"),
		metric.WithUnit("ms"),
	)

	return &Coordinator{
		newCore:           newCore,
		sync:              sync,
		rdb:               rdb,
		lockTTL:           lockTTL,
		tracer:            tracer,
		log:               log,
		commitCount:       commitCount,
		commitFailures:    commitFailures,
		compensationCount: compensationCount,
		commitDuration:    commitDuration,
	}
}

func lockKey(customerID uint64) string {
	return fmt.Sprintf("dualwrite:lock:%d", customerID)
}

// Commit runs fn against both stores with all-or-nothing visibility.
//
// The sequence per customer:
//  1. acquire the per-customer advisory lock (SetNX with TTL),
//  2. verify the identity precondition: the new-core email must match the
//     legacy mirror email, otherwise the stores are already desynchronized
//     and the whole operation aborts with ErrSyncFailed,
//  3. open transactions on both stores and apply fn,
//  4. commit legacy first, then new core; if the new-core commit fails,
//     compensate the legacy commit.
//
// Reads never take the lock, so the aggregator always sees the last fully
// committed state.
func (c *Coordinator) Commit(ctx context.Context, customerID uint64, fn CommitFn, compensate CompensateFn) error {
	ctx, span := c.tracer.Start(ctx, "dualwrite.Commit")
	defer span.End()

	start := time.Now()
	span.SetAttributes(attribute.Int64("customer.id", int64(customerID)))

	c.commitCount.Add(ctx, 1)

	key := lockKey(customerID)
	acquired, err := c.rdb.SetNX(ctx, key, "1", c.lockTTL).Result()
	if err != nil {
		span.SetStatus(codes.Error, "Failed to acquire commit lock")
		span.RecordError(err)
		c.commitFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", "lock")))
		return err
	}
	if !acquired {
		span.SetStatus(codes.Error, "Commit lock held by another submission")
		c.commitFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", "lock")))
		return common.ErrLockNotAcquired
	}
	defer c.rdb.Del(context.WithoutCancel(ctx), key)

	if err := c.checkIdentity(ctx, customerID); err != nil {
		span.SetStatus(codes.Error, "Identity precondition failed")
		span.RecordError(err)
		c.commitFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", "precondition")))

		c.log.Warn("Dual-write aborted before any write",
			zap.Uint64("customer_id", customerID),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		return err
	}

	newTx := c.newCore.WithContext(ctx).Begin()
	if newTx.Error != nil {
		c.commitFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", "begin")))
		return newTx.Error
	}
	legacyTx := c.sync.DB().WithContext(ctx).Begin()
	if legacyTx.Error != nil {
		newTx.Rollback()
		c.commitFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", "begin")))
		return legacyTx.Error
	}

	committed := false
	defer func() {
		if !committed {
			newTx.Rollback()
			legacyTx.Rollback()
		}
	}()

	if err := fn(newTx, legacyTx); err != nil {
		span.SetStatus(codes.Error, "Dual-write apply failed")
		span.RecordError(err)
		c.commitFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", "apply")))
		return err
	}

	// Legacy commits first. A legacy commit failure rolls the new-core
	// transaction back, which is free; the reverse order would need a
	// compensating write on every legacy failure instead of only on the
	// rarer new-core failure.
	if err := legacyTx.Commit().Error; err != nil {
		span.SetStatus(codes.Error, "Legacy commit failed")
		span.RecordError(err)
		c.commitFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", "legacy_commit")))

		c.log.Error("Legacy commit failed, rolling back new core",
			zap.Uint64("customer_id", customerID),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		return common.ErrSyncFailed
	}

	if err := newTx.Commit().Error; err != nil {
		span.SetStatus(codes.Error, "New-core commit failed after legacy commit")
		span.RecordError(err)
		c.commitFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", "newcore_commit")))

		c.compensateLegacy(ctx, customerID, compensate)

		committed = true // both legs are resolved, skip the deferred rollback
		return common.ErrSyncFailed
	}

	committed = true

	c.commitDuration.Record(ctx, float64(time.Since(start).Milliseconds()))

	c.log.Info("Dual-write committed",
		zap.Uint64("customer_id", customerID),
		zap.String("trace_id", span.SpanContext().TraceID().String()),
	)

	span.SetStatus(codes.Ok, "Dual-write committed")

	return nil
}

// checkIdentity enforces the cross-store precondition: an out-of-band change
// to either identity record means the mirror can no longer be trusted and the
// commit must not proceed.
func (c *Coordinator) checkIdentity(ctx context.Context, customerID uint64) error {
	var customer model.Customer
	if err := c.newCore.WithContext(ctx).First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrCustomerNotFound
		}
		return err
	}

	mirror, err := c.sync.FindBorrowerByMigrationID(ctx, customerID)
	if err != nil {
		return err
	}
	if mirror == nil {
		// First write for this borrower; the commit itself creates the
		// mirror row.
		return nil
	}
	if mirror.Email != customer.Email {
		return common.ErrSyncFailed
	}

	return nil
}

func (c *Coordinator) compensateLegacy(ctx context.Context, customerID uint64, compensate CompensateFn) {
	c.compensationCount.Add(ctx, 1)

	if compensate == nil {
		c.log.Error("No compensation registered for failed new-core commit",
			zap.Uint64("customer_id", customerID),
		)
		return
	}

	ctx = context.WithoutCancel(ctx)
	tx := c.sync.DB().WithContext(ctx).Begin()
	if tx.Error != nil {
		c.log.Error("Failed to open compensation transaction",
			zap.Uint64("customer_id", customerID),
			zap.Error(tx.Error),
		)
		return
	}

	if err := compensate(tx); err != nil {
		tx.Rollback()
		c.log.Error("Legacy compensation failed, mirror left inconsistent",
			zap.Uint64("customer_id", customerID),
			zap.Error(err),
		)
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.log.Error("Legacy compensation commit failed, mirror left inconsistent",
			zap.Uint64("customer_id", customerID),
			zap.Error(err),
		)
		return
	}

	c.log.Warn("Legacy commit compensated after new-core failure",
		zap.Uint64("customer_id", customerID),
	)
}
