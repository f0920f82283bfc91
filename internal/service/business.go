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

type businessService struct {
	customerRepository  repository.CustomerRepository
	geographyRepository repository.GeographyRepository
	coordinator         *dualwrite.Coordinator
	syncRepository      *legacy.SyncRepository

	tracer  trace.Tracer
	log     *zap.Logger
	metrics svcMetrics
}

func NewBusinessService(
	customerRepository repository.CustomerRepository,
	geographyRepository repository.GeographyRepository,
	coordinator *dualwrite.Coordinator,
	syncRepository *legacy.SyncRepository,
	meter metric.Meter,
	tracer trace.Tracer,
	log *zap.Logger,
) BusinessServices {
	return &businessService{
		customerRepository:  customerRepository,
		geographyRepository: geographyRepository,
		coordinator:         coordinator,
		syncRepository:      syncRepository,
		tracer:              tracer,
		log:                 log,
		metrics:             newSvcMetrics(meter),
	}
}

// checkGeography validates the address hierarchy against the seeded coverage
// table: a child without its parent is rejected, and the city must fall inside
// the selected province.
func (s *businessService) checkGeography(ctx context.Context, provinceID, cityID, districtID *uint) *validation.FieldError {
	if provinceID == nil {
		if cityID != nil || districtID != nil {
			return &validation.FieldError{Field: "provinceId", Code: i18n.CodeGeographyParentBlank}
		}
		return nil
	}
	if cityID == nil {
		return nil
	}

	covered, err := s.geographyRepository.CityInProvince(ctx, *cityID, *provinceID)
	if err != nil {
		return &validation.FieldError{Field: "cityId", Code: i18n.CodeFieldInvalid, Args: []any{"City"}}
	}
	if !covered {
		return &validation.FieldError{Field: "cityId", Code: i18n.CodeGeographyMismatch}
	}

	return nil
}

// Save implements BusinessServices.
func (s *businessService) Save(ctx context.Context, customerID uint64, req dto.SaveBusinessProfile) error {
	ctx, span := s.tracer.Start(ctx, "service.SaveBusinessProfile")
	defer span.End()

	done := s.metrics.begin(ctx, "business_save")
	var err error
	defer func() { done(err) }()

	span.SetAttributes(attribute.Int64("customer.id", int64(customerID)))

	if _, err = requireEditable(ctx, s.customerRepository, customerID); err != nil {
		span.SetStatus(codes.Error, "Mutation not permitted")
		return err
	}

	if fieldErr := validation.PostalCode(req.PostalCode); fieldErr != nil {
		err = fieldErr
		return err
	}
	if fieldErr := validation.PhoneNumber("phoneNumber", req.PhoneNumber); fieldErr != nil {
		err = fieldErr
		return err
	}
	if req.EmployeeCount <= 0 {
		err = &validation.FieldError{Field: "totalEmployee", Code: i18n.CodeEmployeeCount}
		return err
	}

	established, parseErr := time.Parse("2006-01-02", req.DateEstablished)
	if parseErr != nil {
		err = validation.Invalid("dateOfEstablishment")
		return err
	}
	if established.After(time.Now()) {
		err = &validation.FieldError{Field: "dateOfEstablishment", Code: i18n.CodeEstablishedFuture}
		return err
	}

	if fieldErr := s.checkGeography(ctx, req.ProvinceID, req.CityID, req.DistrictID); fieldErr != nil {
		span.SetStatus(codes.Error, "Geography check failed")
		err = fieldErr
		return err
	}

	prevMirror, err := s.syncRepository.FindBorrowerByMigrationID(ctx, customerID)
	if err != nil {
		return err
	}

	profile := dto.BusinessProfileToEntity(req, customerID)

	err = s.coordinator.Commit(ctx, customerID,
		func(newTx, legacyTx *gorm.DB) error {
			row := model.BusinessProfileFromEntity(profile)
			if txErr := newTx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "customer_id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"company_name", "province_id", "city_id", "district_id", "village_id",
					"address", "postal_code", "phone_number", "employee_count", "date_established",
				}),
			}).Create(&row).Error; txErr != nil {
				return txErr
			}

			return s.syncRepository.UpdateBorrowerProfile(legacyTx, customerID, map[string]any{
				"bpd_company_name": profile.CompanyName,
			})
		},
		func(legacyTx *gorm.DB) error {
			if prevMirror == nil {
				return nil
			}
			return s.syncRepository.UpdateBorrowerProfile(legacyTx, customerID, map[string]any{
				"bpd_company_name": prevMirror.CompanyName,
			})
		},
	)
	if err != nil {
		span.SetStatus(codes.Error, "Dual-write failed")
		span.RecordError(err)

		s.log.Error("Failed to save business profile",
			zap.Uint64("customer_id", customerID),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		return err
	}

	s.log.Info("Business profile saved",
		zap.Uint64("customer_id", customerID),
		zap.String("trace_id", span.SpanContext().TraceID().String()),
	)

	span.SetStatus(codes.Ok, "Business profile saved")

	return nil
}
