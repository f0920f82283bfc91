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

type legalRepository struct {
	db      *gorm.DB
	tracer  trace.Tracer
	log     *zap.Logger
	metrics dbMetrics
}

func NewLegalRepository(db *gorm.DB, meter metric.Meter, tracer trace.Tracer, log *zap.Logger) LegalRepository {
	return &legalRepository{
		db:      db,
		tracer:  tracer,
		log:     log,
		metrics: newDBMetrics(meter),
	}
}

// FindByCustomerID implements LegalRepository.
func (r *legalRepository) FindByCustomerID(ctx context.Context, customerID uint64) ([]domain.LegalInformation, error) {
	ctx, span := r.tracer.Start(ctx, "repository.FindLegalInformationsByCustomer")
	defer span.End()

	done := r.metrics.begin(ctx, "select", "legal_informations")

	span.SetAttributes(attribute.Int64("customer.id", int64(customerID)))

	var docs []model.LegalInformation
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("document_type_id ASC").
		Find(&docs).Error; err != nil {
		span.SetStatus(codes.Error, "Error finding legal informations")
		span.RecordError(err)

		r.log.Error("Error finding legal informations",
			zap.Uint64("customer_id", customerID),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		done("error")
		return nil, err
	}

	done("success")
	span.SetStatus(codes.Ok, "Legal informations found")

	return model.LegalInformationsToEntity(docs), nil
}

// FindByTypeAndNumber implements LegalRepository. Used by the tax-id
// uniqueness check, so it looks across all customers.
func (r *legalRepository) FindByTypeAndNumber(ctx context.Context, typeID domain.DocumentTypeID, number string) (*domain.LegalInformation, error) {
	ctx, span := r.tracer.Start(ctx, "repository.FindLegalInformationByNumber")
	defer span.End()

	done := r.metrics.begin(ctx, "select", "legal_informations")

	span.SetAttributes(attribute.Int("document.type_id", int(typeID)))

	var doc model.LegalInformation
	err := r.db.WithContext(ctx).
		Where("document_type_id = ? AND document_number = ?", uint(typeID), number).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Ok, "Legal information not found")
			done("not_found")
			return nil, nil
		}

		span.SetStatus(codes.Error, "Error finding legal information by number")
		span.RecordError(err)

		r.log.Error("Error finding legal information by number",
			zap.Int("document_type_id", int(typeID)),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		done("error")
		return nil, err
	}

	done("success")
	span.SetStatus(codes.Ok, "Legal information found")

	return model.LegalInformationToEntity(doc), nil
}
