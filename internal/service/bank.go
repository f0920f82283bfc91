package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/danakita/borrower-onboarding/internal/domain"
	"github.com/danakita/borrower-onboarding/internal/dto"
	"github.com/danakita/borrower-onboarding/internal/dualwrite"
	"github.com/danakita/borrower-onboarding/internal/i18n"
	"github.com/danakita/borrower-onboarding/internal/legacy"
	"github.com/danakita/borrower-onboarding/internal/model"
	"github.com/danakita/borrower-onboarding/internal/repository"
	"github.com/danakita/borrower-onboarding/internal/validation"
	"github.com/danakita/borrower-onboarding/pkg/common"
)

type bankService struct {
	customerRepository repository.CustomerRepository
	bankRepository     repository.BankRepository
	coordinator        *dualwrite.Coordinator
	syncRepository     *legacy.SyncRepository

	tracer  trace.Tracer
	log     *zap.Logger
	metrics svcMetrics
}

func NewBankService(
	customerRepository repository.CustomerRepository,
	bankRepository repository.BankRepository,
	coordinator *dualwrite.Coordinator,
	syncRepository *legacy.SyncRepository,
	meter metric.Meter,
	tracer trace.Tracer,
	log *zap.Logger,
) BankServices {
	return &bankService{
		customerRepository: customerRepository,
		bankRepository:     bankRepository,
		coordinator:        coordinator,
		syncRepository:     syncRepository,
		tracer:             tracer,
		log:                log,
		metrics:            newSvcMetrics(meter),
	}
}

// SaveAll implements BankServices. The payload is the full set of the
// customer's bank accounts; entries with an id update the existing row,
// entries without one create a new row. Entries carrying a foreign customerId
// are silently reassigned to the caller.
func (s *bankService) SaveAll(ctx context.Context, customerID uint64, req dto.SaveAllBankInformation) ([]domain.BankInformation, error) {
	ctx, span := s.tracer.Start(ctx, "service.SaveAllBankInformation")
	defer span.End()

	done := s.metrics.begin(ctx, "bank_save_all")
	var err error
	defer func() { done(err) }()

	span.SetAttributes(
		attribute.Int64("customer.id", int64(customerID)),
		attribute.Int("bank.count", len(req.BankInformation)),
	)

	if _, err = requireEditable(ctx, s.customerRepository, customerID); err != nil {
		span.SetStatus(codes.Error, "Mutation not permitted")
		return nil, err
	}

	// Exactly one disbursement account per submission.
	disbursements := 0
	for _, item := range req.BankInformation {
		if item.UseAsDisbursement != nil && *item.UseAsDisbursement {
			disbursements++
		}
	}
	if disbursements != 1 {
		span.SetStatus(codes.Error, "Disbursement cardinality violated")
		err = &validation.FieldError{Field: "useAsDisbursement", Code: i18n.CodeDisbursementCount}
		return nil, err
	}

	for _, item := range req.BankInformation {
		if fieldErr := validation.FileExtension("bankAccountCoverFile", item.BankAccountCoverFile); fieldErr != nil {
			span.SetStatus(codes.Error, "Cover file rejected")
			err = fieldErr
			return nil, err
		}
	}

	// Ownership: referenced ids must belong to the caller. A foreign id is a
	// missing resource, not a bad value.
	for _, item := range req.BankInformation {
		if item.BankInformationID == 0 {
			continue
		}
		existing, findErr := s.bankRepository.FindByID(ctx, item.BankInformationID)
		if findErr != nil {
			err = findErr
			return nil, err
		}
		if existing == nil || existing.CustomerID != customerID {
			span.SetStatus(codes.Error, "Bank information not owned by caller")
			err = common.ErrRecordNotOwned
			return nil, err
		}
	}

	prevMirror, err := s.syncRepository.FindBankAccounts(ctx, customerID)
	if err != nil {
		return nil, err
	}

	err = s.coordinator.Commit(ctx, customerID,
		func(newTx, legacyTx *gorm.DB) error {
			for _, item := range req.BankInformation {
				entity := dto.BankInformationToEntity(item, customerID)
				row := model.BankInformationFromEntity(&entity)
				if row.ID != 0 {
					if txErr := newTx.Model(&model.BankInformation{}).
						Where("id = ? AND customer_id = ?", row.ID, customerID).
						Updates(map[string]any{
							"master_bank_id":      row.MasterBankID,
							"account_number":      row.AccountNumber,
							"account_holder_name": row.AccountHolderName,
							"cover_file_url":      row.CoverFileURL,
							"use_as_disbursement": row.UseAsDisbursement,
						}).Error; txErr != nil {
						return txErr
					}
					continue
				}
				if txErr := newTx.Create(&row).Error; txErr != nil {
					return txErr
				}
			}

			var finalRows []model.BankInformation
			if txErr := newTx.Where("customer_id = ?", customerID).Order("id ASC").Find(&finalRows).Error; txErr != nil {
				return txErr
			}

			mirror := make([]model.LegacyBankAccount, len(finalRows))
			for i, row := range finalRows {
				mirror[i] = model.LegacyBankAccount{
					MigrationID:       customerID,
					NewCoreID:         row.ID,
					MasterBankID:      row.MasterBankID,
					AccountNumber:     row.AccountNumber,
					AccountHolderName: row.AccountHolderName,
					CoverFileURL:      row.CoverFileURL,
					UseAsDisbursement: row.UseAsDisbursement,
				}
			}

			return s.syncRepository.ReplaceBankAccounts(legacyTx, customerID, mirror)
		},
		func(legacyTx *gorm.DB) error {
			restore := make([]model.LegacyBankAccount, len(prevMirror))
			copy(restore, prevMirror)
			return s.syncRepository.ReplaceBankAccounts(legacyTx, customerID, restore)
		},
	)
	if err != nil {
		span.SetStatus(codes.Error, "Dual-write failed")
		span.RecordError(err)

		s.log.Error("Failed to save bank informations",
			zap.Uint64("customer_id", customerID),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		return nil, err
	}

	saved, err := s.bankRepository.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Bank informations saved",
		zap.Uint64("customer_id", customerID),
		zap.Int("count", len(saved)),
		zap.String("trace_id", span.SpanContext().TraceID().String()),
	)

	span.SetStatus(codes.Ok, "Bank informations saved")

	return saved, nil
}
