package repository

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/danakita/borrower-onboarding/internal/domain"
	"github.com/danakita/borrower-onboarding/internal/model"
)

type financialRepository struct {
	db      *gorm.DB
	tracer  trace.Tracer
	log     *zap.Logger
	metrics dbMetrics
}

func NewFinancialRepository(db *gorm.DB, meter metric.Meter, tracer trace.Tracer, log *zap.Logger) FinancialRepository {
	return &financialRepository{
		db:      db,
		tracer:  tracer,
		log:     log,
		metrics: newDBMetrics(meter),
	}
}

// FindStatementFileByID implements FinancialRepository.
func (r *financialRepository) FindStatementFileByID(ctx context.Context, id uint64) (*domain.StatementFile, error) {
	ctx, span := r.tracer.Start(ctx, "repository.FindStatementFileByID")
	defer span.End()

	done := r.metrics.begin(ctx, "select", "statement_files")

	span.SetAttributes(attribute.Int64("statement_file.id", int64(id)))

	var file model.StatementFile
	if err := r.db.WithContext(ctx).First(&file, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Ok, "Statement file not found")
			done("not_found")
			return nil, nil
		}

		span.SetStatus(codes.Error, "Error finding statement file")
		span.RecordError(err)

		r.log.Error("Error finding statement file",
			zap.Uint64("id", id),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		done("error")
		return nil, err
	}

	done("success")
	span.SetStatus(codes.Ok, "Statement file found")

	return model.StatementFileToEntity(file), nil
}

// FindStatementFiles implements FinancialRepository.
func (r *financialRepository) FindStatementFiles(ctx context.Context, customerID uint64) ([]domain.StatementFile, error) {
	ctx, span := r.tracer.Start(ctx, "repository.FindStatementFiles")
	defer span.End()

	done := r.metrics.begin(ctx, "select", "statement_files")

	span.SetAttributes(attribute.Int64("customer.id", int64(customerID)))

	var files []model.StatementFile
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("statement_file_date DESC").
		Find(&files).Error; err != nil {
		span.SetStatus(codes.Error, "Error finding statement files")
		span.RecordError(err)

		r.log.Error("Error finding statement files",
			zap.Uint64("customer_id", customerID),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		done("error")
		return nil, err
	}

	done("success")
	span.SetStatus(codes.Ok, "Statement files found")

	return model.StatementFilesToEntity(files), nil
}

// FindStatementDetails implements FinancialRepository.
func (r *financialRepository) FindStatementDetails(ctx context.Context, customerID uint64) ([]domain.FinancialStatementDetail, error) {
	ctx, span := r.tracer.Start(ctx, "repository.FindStatementDetails")
	defer span.End()

	done := r.metrics.begin(ctx, "select", "financial_statement_details")

	var details []model.FinancialStatementDetail
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("year_to ASC").
		Find(&details).Error; err != nil {
		span.SetStatus(codes.Error, "Error finding statement details")
		span.RecordError(err)

		r.log.Error("Error finding statement details",
			zap.Uint64("customer_id", customerID),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		done("error")
		return nil, err
	}

	done("success")
	span.SetStatus(codes.Ok, "Statement details found")

	return model.FinancialStatementDetailsToEntity(details), nil
}

// FindBalanceSheets implements FinancialRepository.
func (r *financialRepository) FindBalanceSheets(ctx context.Context, customerID uint64) ([]domain.BalanceSheet, error) {
	ctx, span := r.tracer.Start(ctx, "repository.FindBalanceSheets")
	defer span.End()

	done := r.metrics.begin(ctx, "select", "balance_sheets")

	var sheets []model.BalanceSheet
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("year_to ASC").
		Find(&sheets).Error; err != nil {
		span.SetStatus(codes.Error, "Error finding balance sheets")
		span.RecordError(err)

		r.log.Error("Error finding balance sheets",
			zap.Uint64("customer_id", customerID),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		done("error")
		return nil, err
	}

	done("success")
	span.SetStatus(codes.Ok, "Balance sheets found")

	results := make([]domain.BalanceSheet, len(sheets))
	for i, s := range sheets {
		results[i] = *model.BalanceSheetToEntity(s)
	}

	return results, nil
}

// FindRatios implements FinancialRepository.
func (r *financialRepository) FindRatios(ctx context.Context, customerID uint64) ([]domain.FinancialRatio, error) {
	ctx, span := r.tracer.Start(ctx, "repository.FindFinancialRatios")
	defer span.End()

	done := r.metrics.begin(ctx, "select", "financial_ratios")

	var ratios []model.FinancialRatio
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("year_to ASC").
		Find(&ratios).Error; err != nil {
		span.SetStatus(codes.Error, "Error finding financial ratios")
		span.RecordError(err)

		r.log.Error("Error finding financial ratios",
			zap.Uint64("customer_id", customerID),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		done("error")
		return nil, err
	}

	done("success")
	span.SetStatus(codes.Ok, "Financial ratios found")

	results := make([]domain.FinancialRatio, len(ratios))
	for i, ratio := range ratios {
		results[i] = *model.FinancialRatioToEntity(ratio)
	}

	return results, nil
}

// FindTrends implements FinancialRepository.
func (r *financialRepository) FindTrends(ctx context.Context, customerID uint64) ([]domain.FinancialTrend, error) {
	ctx, span := r.tracer.Start(ctx, "repository.FindFinancialTrends")
	defer span.End()

	done := r.metrics.begin(ctx, "select", "financial_trends")

	var trends []model.FinancialTrend
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("trend_period ASC").
		Find(&trends).Error; err != nil {
		span.SetStatus(codes.Error, "Error finding financial trends")
		span.RecordError(err)

		r.log.Error("Error finding financial trends",
			zap.Uint64("customer_id", customerID),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		done("error")
		return nil, err
	}

	done("success")
	span.SetStatus(codes.Ok, "Financial trends found")

	results := make([]domain.FinancialTrend, len(trends))
	for i, trend := range trends {
		results[i] = *model.FinancialTrendToEntity(trend)
	}

	return results, nil
}
