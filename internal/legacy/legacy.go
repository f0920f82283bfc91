// Package legacy is the mirror layer over the legacy MySQL store. Reads run
// against the legacy connection directly; writes take the transaction handle
// opened by the dual-write coordinator so a failed commit leaves no mirror row
// behind.
package legacy

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/danakita/borrower-onboarding/internal/model"
	"github.com/danakita/borrower-onboarding/pkg/common"
)

type SyncRepository struct {
	db     *gorm.DB
	tracer trace.Tracer
	log    *zap.Logger

	rowsMirrored metric.Int64Counter
	syncErrors   metric.Int64Counter
}

func NewSyncRepository(db *gorm.DB, meter metric.Meter, tracer trace.Tracer, log *zap.Logger) *SyncRepository {
	rowsMirrored, _ := meter.Int64Counter(
		"legacy.rows.mirrored",
		metric.WithDescription("Number of rows written into the legacy mirror"),
		metric.WithUnit("{row}"),
	)

	syncErrors, _ := meter.Int64Counter(
		"legacy.sync.errors",
		metric.WithDescription("Number of failed legacy mirror writes"),
		metric.WithUnit("{error}"),
	)

	return &SyncRepository{
		db:           db,
		tracer:       tracer,
		log:          log,
		rowsMirrored: rowsMirrored,
		syncErrors:   syncErrors,
	}
}

// DB exposes the legacy connection for the coordinator's transaction begin.
func (r *SyncRepository) DB() *gorm.DB {
	return r.db
}

// FindBorrowerByMigrationID reads the identity mirror row. The dual-write
// coordinator consults this before every commit for the email precondition.
func (r *SyncRepository) FindBorrowerByMigrationID(ctx context.Context, migrationID uint64) (*model.LegacyBorrower, error) {
	ctx, span := r.tracer.Start(ctx, "legacy.FindBorrowerByMigrationID")
	defer span.End()

	span.SetAttributes(attribute.Int64("migration.id", int64(migrationID)))

	var borrower model.LegacyBorrower
	err := r.db.WithContext(ctx).Where("bpd_migration_id = ?", migrationID).First(&borrower).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Ok, "Borrower mirror not found")
			return nil, nil
		}

		span.SetStatus(codes.Error, "Error reading borrower mirror")
		span.RecordError(err)

		r.log.Error("Error reading borrower mirror",
			zap.Uint64("migration_id", migrationID),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		return nil, err
	}

	span.SetStatus(codes.Ok, "Borrower mirror found")

	return &borrower, nil
}

func (r *SyncRepository) FindBankAccounts(ctx context.Context, migrationID uint64) ([]model.LegacyBankAccount, error) {
	var rows []model.LegacyBankAccount
	err := r.db.WithContext(ctx).
		Where("bid_migration_id = ?", migrationID).
		Order("bid_id ASC").
		Find(&rows).Error

	return rows, err
}

func (r *SyncRepository) FindLegalDocuments(ctx context.Context, migrationID uint64) ([]model.LegacyLegalDocument, error) {
	var rows []model.LegacyLegalDocument
	err := r.db.WithContext(ctx).
		Where("lid_migration_id = ?", migrationID).
		Order("lid_id ASC").
		Find(&rows).Error

	return rows, err
}

func (r *SyncRepository) FindStatementFiles(ctx context.Context, migrationID uint64) ([]model.LegacyStatementFile, error) {
	var rows []model.LegacyStatementFile
	err := r.db.WithContext(ctx).
		Where("bst_migration_id = ?", migrationID).
		Order("bst_id ASC").
		Find(&rows).Error

	return rows, err
}

func (r *SyncRepository) FindBalanceSheets(ctx context.Context, migrationID uint64) ([]model.LegacyBalanceSheet, error) {
	var rows []model.LegacyBalanceSheet
	err := r.db.WithContext(ctx).
		Where("bs_migration_id = ?", migrationID).
		Order("bs_year_to ASC").
		Find(&rows).Error

	return rows, err
}

func (r *SyncRepository) FindRatios(ctx context.Context, migrationID uint64) ([]model.LegacyFinancialRatio, error) {
	var rows []model.LegacyFinancialRatio
	err := r.db.WithContext(ctx).
		Where("fr_migration_id = ?", migrationID).
		Order("fr_year_to ASC").
		Find(&rows).Error

	return rows, err
}

func (r *SyncRepository) FindTrends(ctx context.Context, migrationID uint64) ([]model.LegacyFinancialTrend, error) {
	var rows []model.LegacyFinancialTrend
	err := r.db.WithContext(ctx).
		Where("ft_migration_id = ?", migrationID).
		Order("ft_period ASC").
		Find(&rows).Error

	return rows, err
}

// --- Mirror writes. All take the coordinator's legacy transaction. --- //

// UpsertBorrower creates or refreshes the identity mirror row keyed by
// bpd_migration_id.
func (r *SyncRepository) UpsertBorrower(tx *gorm.DB, borrower *model.LegacyBorrower) error {
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "bpd_migration_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"bpd_username", "bpd_email", "bpd_reg_status", "bpd_company_name",
			"bpd_place_of_birth", "bpd_date_of_birth", "bpd_fill_finish_date",
		}),
	}).Create(borrower).Error
	if err != nil {
		r.syncErrors.Add(tx.Statement.Context, 1)
		return err
	}

	r.rowsMirrored.Add(tx.Statement.Context, 1, metric.WithAttributes(attribute.String("table", "bpd")))
	return nil
}

// UpdateRegistrationStatus mirrors a status transition, stamping or clearing
// the fill-finish date alongside it. A customer without a mirror row means the
// stores are already desynchronized, so the update reports a sync failure
// rather than a missing record.
func (r *SyncRepository) UpdateRegistrationStatus(tx *gorm.DB, migrationID uint64, status string, fillFinish *time.Time) error {
	result := tx.Model(&model.LegacyBorrower{}).
		Where("bpd_migration_id = ?", migrationID).
		Updates(map[string]any{
			"bpd_reg_status":       status,
			"bpd_fill_finish_date": fillFinish,
		})
	if result.Error != nil {
		r.syncErrors.Add(tx.Statement.Context, 1)
		return result.Error
	}
	if result.RowsAffected == 0 {
		r.syncErrors.Add(tx.Statement.Context, 1)
		return common.ErrSyncFailed
	}

	return nil
}

// ReplaceBankAccounts swaps the full mirrored set for one borrower. The
// save-all semantics of the bank form make replace simpler and safer than
// row-by-row diffing.
func (r *SyncRepository) ReplaceBankAccounts(tx *gorm.DB, migrationID uint64, accounts []model.LegacyBankAccount) error {
	if err := tx.Where("bid_migration_id = ?", migrationID).Delete(&model.LegacyBankAccount{}).Error; err != nil {
		r.syncErrors.Add(tx.Statement.Context, 1)
		return err
	}
	if len(accounts) == 0 {
		return nil
	}
	if err := tx.Create(&accounts).Error; err != nil {
		r.syncErrors.Add(tx.Statement.Context, 1)
		return err
	}

	r.rowsMirrored.Add(tx.Statement.Context, int64(len(accounts)), metric.WithAttributes(attribute.String("table", "bid")))
	return nil
}

func (r *SyncRepository) UpsertLegalDocument(tx *gorm.DB, doc *model.LegacyLegalDocument) error {
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "lid_newcore_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"lid_doc_type", "lid_doc_number", "lid_doc_file", "lid_expired_date",
		}),
	}).Create(doc).Error
	if err != nil {
		r.syncErrors.Add(tx.Statement.Context, 1)
		return err
	}

	r.rowsMirrored.Add(tx.Statement.Context, 1, metric.WithAttributes(attribute.String("table", "lid")))
	return nil
}

func (r *SyncRepository) UpsertStatementFile(tx *gorm.DB, file *model.LegacyStatementFile) error {
	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "bst_newcore_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"bst_file_type", "bst_file_date", "bst_file",
		}),
	}).Create(file).Error
	if err != nil {
		r.syncErrors.Add(tx.Statement.Context, 1)
		return err
	}

	r.rowsMirrored.Add(tx.Statement.Context, 1, metric.WithAttributes(attribute.String("table", "bst")))
	return nil
}

// ReplaceFinancials swaps the derived financial mirror (balance sheets,
// ratios, trends) in one shot. The institutional save always recomputes the
// full set, so the mirror follows the same all-or-nothing shape.
func (r *SyncRepository) ReplaceFinancials(
	tx *gorm.DB,
	migrationID uint64,
	sheets []model.LegacyBalanceSheet,
	ratios []model.LegacyFinancialRatio,
	trends []model.LegacyFinancialTrend,
) error {
	ctx := tx.Statement.Context

	if err := tx.Where("bs_migration_id = ?", migrationID).Delete(&model.LegacyBalanceSheet{}).Error; err != nil {
		r.syncErrors.Add(ctx, 1)
		return err
	}
	if err := tx.Where("fr_migration_id = ?", migrationID).Delete(&model.LegacyFinancialRatio{}).Error; err != nil {
		r.syncErrors.Add(ctx, 1)
		return err
	}
	if err := tx.Where("ft_migration_id = ?", migrationID).Delete(&model.LegacyFinancialTrend{}).Error; err != nil {
		r.syncErrors.Add(ctx, 1)
		return err
	}

	if len(sheets) > 0 {
		if err := tx.Create(&sheets).Error; err != nil {
			r.syncErrors.Add(ctx, 1)
			return err
		}
		r.rowsMirrored.Add(ctx, int64(len(sheets)), metric.WithAttributes(attribute.String("table", "bs")))
	}
	if len(ratios) > 0 {
		if err := tx.Create(&ratios).Error; err != nil {
			r.syncErrors.Add(ctx, 1)
			return err
		}
		r.rowsMirrored.Add(ctx, int64(len(ratios)), metric.WithAttributes(attribute.String("table", "fr")))
	}
	if len(trends) > 0 {
		if err := tx.Create(&trends).Error; err != nil {
			r.syncErrors.Add(ctx, 1)
			return err
		}
		r.rowsMirrored.Add(ctx, int64(len(trends)), metric.WithAttributes(attribute.String("table", "ft")))
	}

	return nil
}

// UpdateBorrowerProfile mirrors the flattened profile fields the legacy
// backoffice reads off the borrower row. Missing mirror rows surface as sync
// failures, same as UpdateRegistrationStatus.
func (r *SyncRepository) UpdateBorrowerProfile(tx *gorm.DB, migrationID uint64, fields map[string]any) error {
	result := tx.Model(&model.LegacyBorrower{}).
		Where("bpd_migration_id = ?", migrationID).
		Updates(fields)
	if result.Error != nil {
		r.syncErrors.Add(tx.Statement.Context, 1)
		return result.Error
	}
	if result.RowsAffected == 0 {
		r.syncErrors.Add(tx.Statement.Context, 1)
		return common.ErrSyncFailed
	}

	return nil
}
