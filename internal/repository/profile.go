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

type profileRepository struct {
	db      *gorm.DB
	tracer  trace.Tracer
	log     *zap.Logger
	metrics dbMetrics
}

func NewProfileRepository(db *gorm.DB, meter metric.Meter, tracer trace.Tracer, log *zap.Logger) ProfileRepository {
	return &profileRepository{
		db:      db,
		tracer:  tracer,
		log:     log,
		metrics: newDBMetrics(meter),
	}
}

// FindPersonal implements ProfileRepository.
func (r *profileRepository) FindPersonal(ctx context.Context, customerID uint64) (*domain.PersonalProfile, error) {
	ctx, span := r.tracer.Start(ctx, "repository.FindPersonalProfile")
	defer span.End()

	done := r.metrics.begin(ctx, "select", "personal_profiles")

	span.SetAttributes(attribute.Int64("customer.id", int64(customerID)))

	var profile model.PersonalProfile
	if err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Ok, "Personal profile not found")
			done("not_found")
			return nil, nil
		}

		span.SetStatus(codes.Error, "Error finding personal profile")
		span.RecordError(err)

		r.log.Error("Error finding personal profile",
			zap.Uint64("customer_id", customerID),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		done("error")
		return nil, err
	}

	done("success")
	span.SetStatus(codes.Ok, "Personal profile found")

	return model.PersonalProfileToEntity(profile), nil
}

// FindBusiness implements ProfileRepository.
func (r *profileRepository) FindBusiness(ctx context.Context, customerID uint64) (*domain.BusinessProfile, error) {
	ctx, span := r.tracer.Start(ctx, "repository.FindBusinessProfile")
	defer span.End()

	done := r.metrics.begin(ctx, "select", "business_profiles")

	span.SetAttributes(attribute.Int64("customer.id", int64(customerID)))

	var profile model.BusinessProfile
	if err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Ok, "Business profile not found")
			done("not_found")
			return nil, nil
		}

		span.SetStatus(codes.Error, "Error finding business profile")
		span.RecordError(err)

		r.log.Error("Error finding business profile",
			zap.Uint64("customer_id", customerID),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		done("error")
		return nil, err
	}

	done("success")
	span.SetStatus(codes.Ok, "Business profile found")

	return model.BusinessProfileToEntity(profile), nil
}

// FindProductPreference implements ProfileRepository.
func (r *profileRepository) FindProductPreference(ctx context.Context, customerID uint64) (*domain.ProductPreference, error) {
	ctx, span := r.tracer.Start(ctx, "repository.FindProductPreference")
	defer span.End()

	done := r.metrics.begin(ctx, "select", "product_preferences")

	var pref model.ProductPreference
	if err := r.db.WithContext(ctx).Where("customer_id = ?", customerID).First(&pref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Ok, "Product preference not found")
			done("not_found")
			return nil, nil
		}

		span.SetStatus(codes.Error, "Error finding product preference")
		span.RecordError(err)

		r.log.Error("Error finding product preference",
			zap.Uint64("customer_id", customerID),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		done("error")
		return nil, err
	}

	done("success")
	span.SetStatus(codes.Ok, "Product preference found")

	return &domain.ProductPreference{
		CustomerID: pref.CustomerID,
		ProductID:  pref.ProductID,
		UpdatedAt:  pref.UpdatedAt,
	}, nil
}
