package repository

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/danakita/borrower-onboarding/internal/model"
)

type geographyRepository struct {
	db      *gorm.DB
	tracer  trace.Tracer
	log     *zap.Logger
	metrics dbMetrics
}

func NewGeographyRepository(db *gorm.DB, meter metric.Meter, tracer trace.Tracer, log *zap.Logger) GeographyRepository {
	return &geographyRepository{
		db:      db,
		tracer:  tracer,
		log:     log,
		metrics: newDBMetrics(meter),
	}
}

// CityInProvince implements GeographyRepository. The coverage check consults
// the seeded reference table, not free-form input.
func (r *geographyRepository) CityInProvince(ctx context.Context, cityID, provinceID uint) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "repository.CityInProvince")
	defer span.End()

	done := r.metrics.begin(ctx, "select", "cities")

	span.SetAttributes(
		attribute.Int("geography.city_id", int(cityID)),
		attribute.Int("geography.province_id", int(provinceID)),
	)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.City{}).
		Where("id = ? AND province_id = ?", cityID, provinceID).
		Count(&count).Error
	if err != nil {
		span.SetStatus(codes.Error, "Error checking city coverage")
		span.RecordError(err)

		r.log.Error("Error checking city coverage",
			zap.Uint("city_id", cityID),
			zap.Uint("province_id", provinceID),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		done("error")
		return false, err
	}

	done("success")
	span.SetStatus(codes.Ok, "City coverage checked")

	return count > 0, nil
}

// ProvinceExists implements GeographyRepository.
func (r *geographyRepository) ProvinceExists(ctx context.Context, provinceID uint) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "repository.ProvinceExists")
	defer span.End()

	done := r.metrics.begin(ctx, "select", "provinces")

	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Province{}).
		Where("id = ?", provinceID).
		Count(&count).Error
	if err != nil {
		span.SetStatus(codes.Error, "Error checking province")
		span.RecordError(err)

		r.log.Error("Error checking province",
			zap.Uint("province_id", provinceID),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		done("error")
		return false, err
	}

	done("success")
	span.SetStatus(codes.Ok, "Province checked")

	return count > 0, nil
}
