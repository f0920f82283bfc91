package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/danakita/borrower-onboarding/internal/dto"
	"github.com/danakita/borrower-onboarding/internal/dualwrite"
	"github.com/danakita/borrower-onboarding/internal/i18n"
	"github.com/danakita/borrower-onboarding/internal/legacy"
	"github.com/danakita/borrower-onboarding/internal/model"
	"github.com/danakita/borrower-onboarding/internal/repository"
	"github.com/danakita/borrower-onboarding/internal/validation"
)

const minimumBorrowerAge = 17

type personalService struct {
	customerRepository  repository.CustomerRepository
	geographyRepository repository.GeographyRepository
	coordinator         *dualwrite.Coordinator
	syncRepository      *legacy.SyncRepository
	newCore             *gorm.DB

	tracer  trace.Tracer
	log     *zap.Logger
	metrics svcMetrics
}

func NewPersonalService(
	customerRepository repository.CustomerRepository,
	geographyRepository repository.GeographyRepository,
	coordinator *dualwrite.Coordinator,
	syncRepository *legacy.SyncRepository,
	newCore *gorm.DB,
	meter metric.Meter,
	tracer trace.Tracer,
	log *zap.Logger,
) PersonalServices {
	return &personalService{
		customerRepository:  customerRepository,
		geographyRepository: geographyRepository,
		coordinator:         coordinator,
		syncRepository:      syncRepository,
		newCore:             newCore,
		tracer:              tracer,
		log:                 log,
		metrics:             newSvcMetrics(meter),
	}
}

// Save implements PersonalServices.
func (s *personalService) Save(ctx context.Context, customerID uint64, req dto.SavePersonalProfile) error {
	ctx, span := s.tracer.Start(ctx, "service.SavePersonalProfile")
	defer span.End()

	done := s.metrics.begin(ctx, "personal_save")
	var err error
	defer func() { done(err) }()

	span.SetAttributes(attribute.Int64("customer.id", int64(customerID)))

	if _, err = requireEditable(ctx, s.customerRepository, customerID); err != nil {
		span.SetStatus(codes.Error, "Mutation not permitted")
		return err
	}

	dob, parseErr := time.Parse("2006-01-02", req.DateOfBirth)
	if parseErr != nil {
		err = validation.Invalid("dateOfBirth")
		return err
	}
	if fieldErr := validation.MinimumAge(dob, time.Now(), minimumBorrowerAge); fieldErr != nil {
		span.SetStatus(codes.Error, "Below minimum age")
		err = fieldErr
		return err
	}
	if fieldErr := validation.PostalCode(req.PostalCode); fieldErr != nil {
		err = fieldErr
		return err
	}

	if req.ProvinceID == nil {
		if req.CityID != nil || req.DistrictID != nil {
			err = &validation.FieldError{Field: "provinceId", Code: i18n.CodeGeographyParentBlank}
			return err
		}
	} else if req.CityID != nil {
		covered, geoErr := s.geographyRepository.CityInProvince(ctx, *req.CityID, *req.ProvinceID)
		if geoErr != nil {
			err = geoErr
			return err
		}
		if !covered {
			span.SetStatus(codes.Error, "Geography check failed")
			err = &validation.FieldError{Field: "cityId", Code: i18n.CodeGeographyMismatch}
			return err
		}
	}

	prevMirror, err := s.syncRepository.FindBorrowerByMigrationID(ctx, customerID)
	if err != nil {
		return err
	}

	profile := dto.PersonalProfileToEntity(req, customerID)

	err = s.coordinator.Commit(ctx, customerID,
		func(newTx, legacyTx *gorm.DB) error {
			row := model.PersonalProfileFromEntity(profile)
			if txErr := newTx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "customer_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"place_of_birth", "date_of_birth", "religion", "education", "occupation",
					"marital_status", "province_id", "city_id", "district_id", "village_id",
					"address", "postal_code",
				}),
			}).Create(&row).Error; txErr != nil {
				return txErr
			}

			return s.syncRepository.UpdateBorrowerProfile(legacyTx, customerID, map[string]any{
				"bpd_place_of_birth": profile.PlaceOfBirth,
				"bpd_date_of_birth":  profile.DateOfBirth,
			})
		},
		func(legacyTx *gorm.DB) error {
			if prevMirror == nil {
				return nil
			}
			return s.syncRepository.UpdateBorrowerProfile(legacyTx, customerID, map[string]any{
				"bpd_place_of_birth": prevMirror.PlaceOfBirth,
				"bpd_date_of_birth":  prevMirror.DateOfBirth,
			})
		},
	)
	if err != nil {
		span.SetStatus(codes.Error, "Dual-write failed")
		span.RecordError(err)

		s.log.Error("Failed to save personal profile",
			zap.Uint64("customer_id", customerID),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		return err
	}

	s.log.Info("Personal profile saved",
		zap.Uint64("customer_id", customerID),
		zap.String("trace_id", span.SpanContext().TraceID().String()),
	)

	span.SetStatus(codes.Ok, "Personal profile saved")

	return nil
}

// UpdateProductPreference implements PersonalServices. The preference has no
// legacy counterpart, so the write stays on the new-core store only.
func (s *personalService) UpdateProductPreference(ctx context.Context, customerID uint64, req dto.UpdateProductPreference) error {
	ctx, span := s.tracer.Start(ctx, "service.UpdateProductPreference")
	defer span.End()

	done := s.metrics.begin(ctx, "product_preference_update")
	var err error
	defer func() { done(err) }()

	span.SetAttributes(attribute.Int64("customer.id", int64(customerID)))

	if _, err = requireEditable(ctx, s.customerRepository, customerID); err != nil {
		span.SetStatus(codes.Error, "Mutation not permitted")
		return err
	}

	row := model.ProductPreference{
		CustomerID: customerID,
		ProductID:  req.ProductID,
	}
	err = s.newCore.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"product_id"}),
	}).Create(&row).Error
	if err != nil {
		span.SetStatus(codes.Error, "Failed to update product preference")
		span.RecordError(err)
		return err
	}

	span.SetStatus(codes.Ok, "Product preference updated")

	return nil
}
