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

type bankRepository struct {
	db      *gorm.DB
	tracer  trace.Tracer
	log     *zap.Logger
	metrics dbMetrics
}

func NewBankRepository(db *gorm.DB, meter metric.Meter, tracer trace.Tracer, log *zap.Logger) BankRepository {
	return &bankRepository{
		db:      db,
		tracer:  tracer,
		log:     log,
		metrics: newDBMetrics(meter),
	}
}

// FindByID implements BankRepository.
func (r *bankRepository) FindByID(ctx context.Context, id uint64) (*domain.BankInformation, error) {
	ctx, span := r.tracer.Start(ctx, "repository.FindBankInformationByID")
	defer span.End()

	done := r.metrics.begin(ctx, "select", "bank_informations")

	span.SetAttributes(attribute.Int64("bank_information.id", int64(id)))

	var bank model.BankInformation
	if err := r.db.WithContext(ctx).First(&bank, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Ok, "Bank information not found")
			done("not_found")
			return nil, nil
		}

		span.SetStatus(codes.Error, "Error finding bank information")
		span.RecordError(err)

		r.log.Error("Error finding bank information",
			zap.Uint64("id", id),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		done("error")
		return nil, err
	}

	done("success")
	span.SetStatus(codes.Ok, "Bank information found")

	return model.BankInformationToEntity(bank), nil
}

// FindByCustomerID implements BankRepository.
func (r *bankRepository) FindByCustomerID(ctx context.Context, customerID uint64) ([]domain.BankInformation, error) {
	ctx, span := r.tracer.Start(ctx, "repository.FindBankInformationsByCustomer")
	defer span.End()

	done := r.metrics.begin(ctx, "select", "bank_informations")

	span.SetAttributes(attribute.Int64("customer.id", int64(customerID)))

	var banks []model.BankInformation
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Find(&banks).Error; err != nil {
		span.SetStatus(codes.Error, "Error finding bank informations")
		span.RecordError(err)

		r.log.Error("Error finding bank informations",
			zap.Uint64("customer_id", customerID),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		done("error")
		return nil, err
	}

	done("success")
	span.SetStatus(codes.Ok, "Bank informations found")
	span.SetAttributes(attribute.Int("result.count", len(banks)))

	return model.BankInformationsToEntity(banks), nil
}
