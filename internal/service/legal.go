package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/danakita/borrower-onboarding/internal/domain"
	"github.com/danakita/borrower-onboarding/internal/dto"
	"github.com/danakita/borrower-onboarding/internal/dualwrite"
	"github.com/danakita/borrower-onboarding/internal/legacy"
	"github.com/danakita/borrower-onboarding/internal/model"
	"github.com/danakita/borrower-onboarding/internal/repository"
	"github.com/danakita/borrower-onboarding/internal/validation"
	"github.com/danakita/borrower-onboarding/pkg/common"
)

type legalService struct {
	customerRepository repository.CustomerRepository
	legalRepository    repository.LegalRepository
	coordinator        *dualwrite.Coordinator
	syncRepository     *legacy.SyncRepository

	tracer  trace.Tracer
	log     *zap.Logger
	metrics svcMetrics
}

func NewLegalService(
	customerRepository repository.CustomerRepository,
	legalRepository repository.LegalRepository,
	coordinator *dualwrite.Coordinator,
	syncRepository *legacy.SyncRepository,
	meter metric.Meter,
	tracer trace.Tracer,
	log *zap.Logger,
) LegalServices {
	return &legalService{
		customerRepository: customerRepository,
		legalRepository:    legalRepository,
		coordinator:        coordinator,
		syncRepository:     syncRepository,
		tracer:             tracer,
		log:                log,
		metrics:            newSvcMetrics(meter),
	}
}

// SaveAll implements LegalServices. Each entry is validated by the ruleset of
// its document type, then upserted one row per type per customer.
func (s *legalService) SaveAll(ctx context.Context, customerID uint64, req dto.SaveAllLegalInformation) ([]domain.LegalInformation, error) {
	ctx, span := s.tracer.Start(ctx, "service.SaveAllLegalInformation")
	defer span.End()

	done := s.metrics.begin(ctx, "legal_save_all")
	var err error
	defer func() { done(err) }()

	span.SetAttributes(
		attribute.Int64("customer.id", int64(customerID)),
		attribute.Int("legal.count", len(req.LegalInformation)),
	)

	if _, err = requireEditable(ctx, s.customerRepository, customerID); err != nil {
		span.SetStatus(codes.Error, "Mutation not permitted")
		return nil, err
	}

	for _, item := range req.LegalInformation {
		typeID := domain.DocumentTypeID(item.DocumentTypeID)
		if fieldErr := validation.Document(typeID, item.DocumentNumber, item.DocumentFile); fieldErr != nil {
			span.SetStatus(codes.Error, "Document rejected")
			err = fieldErr
			return nil, err
		}

		// Tax id numbers are unique across customers. A customer may
		// resubmit its own number.
		if typeID == domain.DocumentNPWP {
			existing, findErr := s.legalRepository.FindByTypeAndNumber(ctx, typeID, item.DocumentNumber)
			if findErr != nil {
				err = findErr
				return nil, err
			}
			if existing != nil && existing.CustomerID != customerID {
				span.SetStatus(codes.Error, "Tax id already registered")
				err = common.ErrNPWPExists
				return nil, err
			}
		}

		if item.LegalInformationID != 0 {
			owned, findErr := s.legalRepository.FindByCustomerID(ctx, customerID)
			if findErr != nil {
				err = findErr
				return nil, err
			}
			found := false
			for _, doc := range owned {
				if doc.ID == item.LegalInformationID {
					found = true
					break
				}
			}
			if !found {
				span.SetStatus(codes.Error, "Legal information not owned by caller")
				err = common.ErrRecordNotOwned
				return nil, err
			}
		}
	}

	prevMirror, err := s.syncRepository.FindLegalDocuments(ctx, customerID)
	if err != nil {
		return nil, err
	}

	err = s.coordinator.Commit(ctx, customerID,
		func(newTx, legacyTx *gorm.DB) error {
			for _, item := range req.LegalInformation {
				entity := dto.LegalInformationToEntity(item, customerID)
				row := model.LegalInformationFromEntity(&entity)

				if txErr := newTx.Clauses(clause.OnConflict{
					Columns: []clause.Column{{Name: "customer_id"}, {Name: "document_type_id"}},
					DoUpdates: clause.AssignmentColumns([]string{
						"document_number", "document_file_url", "document_expired_date",
					}),
				}).Create(&row).Error; txErr != nil {
					return txErr
				}

				// Create under OnConflict does not refresh the row id on
				// update, so re-read it for the mirror correlation key.
				var saved model.LegalInformation
				if txErr := newTx.
					Where("customer_id = ? AND document_type_id = ?", customerID, row.DocumentTypeID).
					First(&saved).Error; txErr != nil {
					return txErr
				}

				if txErr := s.syncRepository.UpsertLegalDocument(legacyTx, &model.LegacyLegalDocument{
					MigrationID:    customerID,
					NewCoreID:      saved.ID,
					DocumentTypeID: saved.DocumentTypeID,
					DocumentNumber: saved.DocumentNumber,
					DocumentFile:   saved.DocumentFileURL,
					ExpiredDate:    saved.DocumentExpiredDate,
				}); txErr != nil {
					return txErr
				}
			}

			return nil
		},
		func(legacyTx *gorm.DB) error {
			if txErr := legacyTx.Where("lid_migration_id = ?", customerID).
				Delete(&model.LegacyLegalDocument{}).Error; txErr != nil {
				return txErr
			}
			if len(prevMirror) == 0 {
				return nil
			}
			restore := make([]model.LegacyLegalDocument, len(prevMirror))
			copy(restore, prevMirror)
			return legacyTx.Create(&restore).Error
		},
	)
	if err != nil {
		span.SetStatus(codes.Error, "Dual-write failed")
		span.RecordError(err)

		s.log.Error("Failed to save legal informations",
			zap.Uint64("customer_id", customerID),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		return nil, err
	}

	saved, err := s.legalRepository.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Legal informations saved",
		zap.Uint64("customer_id", customerID),
		zap.Int("count", len(saved)),
		zap.String("trace_id", span.SpanContext().TraceID().String()),
	)

	span.SetStatus(codes.Ok, "Legal informations saved")

	return saved, nil
}
