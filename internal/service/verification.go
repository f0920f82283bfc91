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

	"github.com/danakita/borrower-onboarding/internal/domain"
	"github.com/danakita/borrower-onboarding/internal/dualwrite"
	"github.com/danakita/borrower-onboarding/internal/i18n"
	"github.com/danakita/borrower-onboarding/internal/legacy"
	"github.com/danakita/borrower-onboarding/internal/model"
	"github.com/danakita/borrower-onboarding/internal/repository"
	"github.com/danakita/borrower-onboarding/internal/validation"
	"github.com/danakita/borrower-onboarding/pkg/common"
)

const (
	institutionalStatementYears = 2
	eStatementRecencyMonths     = 6
)

// requiredDocuments lists the legal document set per borrower type. Every
// borrower needs a tax id; institutional borrowers additionally need the
// company papers.
var requiredDocuments = map[domain.UserType][]domain.DocumentTypeID{
	domain.UserIndividual: {domain.DocumentNPWP},
	domain.UserInstitutional: {
		domain.DocumentNPWP,
		domain.DocumentSIUP,
		domain.DocumentAktaPendirian,
		domain.DocumentTDP,
	},
}

type verificationService struct {
	customerRepository  repository.CustomerRepository
	bankRepository      repository.BankRepository
	legalRepository     repository.LegalRepository
	financialRepository repository.FinancialRepository
	profileRepository   repository.ProfileRepository
	coordinator         *dualwrite.Coordinator
	syncRepository      *legacy.SyncRepository

	tracer  trace.Tracer
	log     *zap.Logger
	metrics svcMetrics
}

func NewVerificationService(
	customerRepository repository.CustomerRepository,
	bankRepository repository.BankRepository,
	legalRepository repository.LegalRepository,
	financialRepository repository.FinancialRepository,
	profileRepository repository.ProfileRepository,
	coordinator *dualwrite.Coordinator,
	syncRepository *legacy.SyncRepository,
	meter metric.Meter,
	tracer trace.Tracer,
	log *zap.Logger,
) VerificationServices {
	return &verificationService{
		customerRepository:  customerRepository,
		bankRepository:      bankRepository,
		legalRepository:     legalRepository,
		financialRepository: financialRepository,
		profileRepository:   profileRepository,
		coordinator:         coordinator,
		syncRepository:      syncRepository,
		tracer:              tracer,
		log:                 log,
		metrics:             newSvcMetrics(meter),
	}
}

func sectionEmpty(section string) *validation.FieldError {
	return &validation.FieldError{Field: section, Code: i18n.CodeSectionEmpty, Args: []any{section}}
}

// checkCompleteness walks every required sub-entity group and returns a
// violation naming the first incomplete one.
func (s *verificationService) checkCompleteness(ctx context.Context, customer *domain.Customer) error {
	personal, err := s.profileRepository.FindPersonal(ctx, customer.ID)
	if err != nil {
		return err
	}
	if personal == nil {
		return sectionEmpty("PersonalProfile")
	}

	if customer.UserType == domain.UserInstitutional {
		business, err := s.profileRepository.FindBusiness(ctx, customer.ID)
		if err != nil {
			return err
		}
		if business == nil {
			return sectionEmpty("BusinessProfile")
		}
	}

	docs, err := s.legalRepository.FindByCustomerID(ctx, customer.ID)
	if err != nil {
		return err
	}
	held := make(map[domain.DocumentTypeID]bool, len(docs))
	for _, doc := range docs {
		held[doc.DocumentTypeID] = true
	}
	for _, required := range requiredDocuments[customer.UserType] {
		if !held[required] {
			return sectionEmpty("LegalInformation")
		}
	}

	banks, err := s.bankRepository.FindByCustomerID(ctx, customer.ID)
	if err != nil {
		return err
	}
	if len(banks) == 0 {
		return sectionEmpty("BankInformation")
	}

	if customer.UserType == domain.UserInstitutional {
		details, err := s.financialRepository.FindStatementDetails(ctx, customer.ID)
		if err != nil {
			return err
		}
		if len(details) < institutionalStatementYears {
			return &validation.FieldError{
				Field: "FinancialStatement",
				Code:  i18n.CodeFinancialYearsMissing,
				Args:  []any{institutionalStatementYears},
			}
		}
		return nil
	}

	// Individual borrowers need a recent e-statement instead of audited
	// statement years.
	files, err := s.financialRepository.FindStatementFiles(ctx, customer.ID)
	if err != nil {
		return err
	}
	cutoff := time.Now().AddDate(0, -eStatementRecencyMonths, 0)
	for _, file := range files {
		if file.StatementFileType == domain.StatementEStatement && file.StatementFileDate.After(cutoff) {
			return nil
		}
	}

	return &validation.FieldError{
		Field: "FinancialStatement",
		Code:  i18n.CodeEStatementStale,
		Args:  []any{eStatementRecencyMonths},
	}
}

// RequestVerification implements VerificationServices. On success the status
// moves to pending verification and the fill-finish timestamp is stamped in
// both stores within the same commit; any failure leaves it unset everywhere.
func (s *verificationService) RequestVerification(ctx context.Context, customerID uint64) error {
	ctx, span := s.tracer.Start(ctx, "service.RequestVerification")
	defer span.End()

	done := s.metrics.begin(ctx, "request_verification")
	var err error
	defer func() { done(err) }()

	span.SetAttributes(attribute.Int64("customer.id", int64(customerID)))

	customer, err := s.customerRepository.FindByID(ctx, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		err = common.ErrCustomerNotFound
		return err
	}

	if customer.RegistrationStatus == domain.StatusPendingVerification {
		span.SetStatus(codes.Error, "Verification already requested")
		err = common.ErrAlreadyPending
		return err
	}
	if !customer.RegistrationStatus.CanTransitionTo(domain.StatusPendingVerification) {
		span.SetStatus(codes.Error, "Transition not allowed")
		err = common.ErrStatusRestricted
		return err
	}

	if !customer.EmailVerified {
		span.SetStatus(codes.Error, "Email not verified")
		err = common.ErrEmailNotVerified
		return err
	}

	if err = s.checkCompleteness(ctx, customer); err != nil {
		span.SetStatus(codes.Error, "Completeness check failed")

		s.log.Info("Verification request rejected",
			zap.Uint64("customer_id", customerID),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		return err
	}

	err = s.transition(ctx, customer, domain.StatusPendingVerification, true)
	if err != nil {
		span.SetStatus(codes.Error, "Dual-write failed")
		span.RecordError(err)
		return err
	}

	s.log.Info("Verification requested",
		zap.Uint64("customer_id", customerID),
		zap.String("trace_id", span.SpanContext().TraceID().String()),
	)

	span.SetStatus(codes.Ok, "Verification requested")

	return nil
}

// transition applies a status change to both stores. stampFillFinish marks
// the completion timestamp on the move into pending verification.
func (s *verificationService) transition(ctx context.Context, customer *domain.Customer, target domain.RegistrationStatus, stampFillFinish bool) error {
	prevMirror, err := s.syncRepository.FindBorrowerByMigrationID(ctx, customer.ID)
	if err != nil {
		return err
	}

	var fillFinish *time.Time
	if stampFillFinish {
		now := time.Now()
		fillFinish = &now
	} else {
		fillFinish = customer.FillFinishAt
	}

	return s.coordinator.Commit(ctx, customer.ID,
		func(newTx, legacyTx *gorm.DB) error {
			result := newTx.Model(&model.Customer{}).
				Where("id = ? AND registration_status = ?", customer.ID, string(customer.RegistrationStatus)).
				Updates(map[string]any{
					"registration_status": string(target),
					"cr_fill_finish_at":   fillFinish,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return common.ErrInvalidTransition
			}

			return s.syncRepository.UpdateRegistrationStatus(legacyTx, customer.ID, string(target), fillFinish)
		},
		func(legacyTx *gorm.DB) error {
			if prevMirror == nil {
				return nil
			}
			return s.syncRepository.UpdateRegistrationStatus(legacyTx, customer.ID, prevMirror.RegStatus, prevMirror.FillFinishDate)
		},
	)
}

// adminTransition is the shared shape of the backoffice actions.
func (s *verificationService) adminTransition(ctx context.Context, customerID uint64, target domain.RegistrationStatus, operation string) error {
	ctx, span := s.tracer.Start(ctx, "service.StatusTransition")
	defer span.End()

	done := s.metrics.begin(ctx, operation)
	var err error
	defer func() { done(err) }()

	span.SetAttributes(
		attribute.Int64("customer.id", int64(customerID)),
		attribute.String("status.target", string(target)),
	)

	customer, err := s.customerRepository.FindByID(ctx, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		err = common.ErrCustomerNotFound
		return err
	}

	// Repeating a rejection is a no-op, so backoffice retries stay safe.
	if target == domain.StatusRejected && customer.RegistrationStatus == domain.StatusRejected {
		span.SetStatus(codes.Ok, "Already rejected")
		return nil
	}

	if !customer.RegistrationStatus.CanTransitionTo(target) {
		span.SetStatus(codes.Error, "Transition not allowed")
		err = common.ErrInvalidTransition
		return err
	}

	// Moving back to editable reopens the form; the completion stamp no
	// longer holds.
	if target == domain.StatusEditable {
		customer.FillFinishAt = nil
	}

	err = s.transition(ctx, customer, target, false)
	if err != nil {
		span.SetStatus(codes.Error, "Dual-write failed")
		span.RecordError(err)
		return err
	}

	s.log.Info("Registration status changed",
		zap.Uint64("customer_id", customerID),
		zap.String("from", string(customer.RegistrationStatus)),
		zap.String("to", string(target)),
		zap.String("trace_id", span.SpanContext().TraceID().String()),
	)

	span.SetStatus(codes.Ok, "Registration status changed")

	return nil
}

// Activate implements VerificationServices.
func (s *verificationService) Activate(ctx context.Context, customerID uint64) error {
	return s.adminTransition(ctx, customerID, domain.StatusActive, "activate")
}

// Deactivate implements VerificationServices.
func (s *verificationService) Deactivate(ctx context.Context, customerID uint64) error {
	return s.adminTransition(ctx, customerID, domain.StatusInactive, "deactivate")
}

// Reject implements VerificationServices.
func (s *verificationService) Reject(ctx context.Context, customerID uint64) error {
	return s.adminTransition(ctx, customerID, domain.StatusRejected, "reject")
}

// Reopen implements VerificationServices. A rejected borrower returns to the
// editable status to fix and resubmit.
func (s *verificationService) Reopen(ctx context.Context, customerID uint64) error {
	return s.adminTransition(ctx, customerID, domain.StatusEditable, "reopen")
}
