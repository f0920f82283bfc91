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
	"github.com/danakita/borrower-onboarding/internal/legacy"
	"github.com/danakita/borrower-onboarding/internal/model"
	"github.com/danakita/borrower-onboarding/internal/repository"
	"github.com/danakita/borrower-onboarding/pkg/common"
	"github.com/danakita/borrower-onboarding/pkg/password"
)

type partnerService struct {
	customerRepository repository.CustomerRepository
	personalServices   PersonalServices
	bankServices       BankServices
	coordinator        *dualwrite.Coordinator
	syncRepository     *legacy.SyncRepository

	tracer  trace.Tracer
	log     *zap.Logger
	metrics svcMetrics
}

func NewPartnerService(
	customerRepository repository.CustomerRepository,
	personalServices PersonalServices,
	bankServices BankServices,
	coordinator *dualwrite.Coordinator,
	syncRepository *legacy.SyncRepository,
	meter metric.Meter,
	tracer trace.Tracer,
	log *zap.Logger,
) PartnerServices {
	return &partnerService{
		customerRepository: customerRepository,
		personalServices:   personalServices,
		bankServices:       bankServices,
		coordinator:        coordinator,
		syncRepository:     syncRepository,
		tracer:             tracer,
		log:                log,
		metrics:            newSvcMetrics(meter),
	}
}

// Register implements PartnerServices. A partner submits the borrower's basic
// identity; the borrower row and its legacy mirror are created in one commit.
// A borrower whose onboarding is still running cannot be registered again.
func (s *partnerService) Register(ctx context.Context, partnerName string, req dto.PartnerRegistration) (*dto.PartnerRegistrationResponse, error) {
	ctx, span := s.tracer.Start(ctx, "service.PartnerRegister")
	defer span.End()

	done := s.metrics.begin(ctx, "partner_register")
	var err error
	defer func() { done(err) }()

	span.SetAttributes(attribute.String("partner.name", partnerName))

	existing, err := s.customerRepository.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		span.SetStatus(codes.Error, "Registration still in progress")
		err = common.ErrAlreadyInProgress
		return nil, err
	}

	// Partner-registered borrowers get a random placeholder password and
	// finish credential setup through the frontoffice flow.
	placeholder, err := password.HashPassword(newSessionID())
	if err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		Username:           req.Username,
		Email:              req.Email,
		Password:           placeholder,
		Role:               domain.CustomerRole,
		UserType:           domain.UserType(req.UserType),
		RegistrationStatus: domain.StatusEditable,
	}

	created, err := s.customerRepository.Create(ctx, customer)
	if err != nil {
		span.SetStatus(codes.Error, "Failed to create customer")
		span.RecordError(err)
		return nil, err
	}

	// The mirror row is created in its own commit; the customer row already
	// exists, so the identity precondition passes trivially.
	err = s.coordinator.Commit(ctx, created.ID,
		func(newTx, legacyTx *gorm.DB) error {
			return s.syncRepository.UpsertBorrower(legacyTx, &model.LegacyBorrower{
				MigrationID: created.ID,
				Username:    created.Username,
				Email:       created.Email,
				RegStatus:   string(created.RegistrationStatus),
			})
		},
		func(legacyTx *gorm.DB) error {
			return legacyTx.Where("bpd_migration_id = ?", created.ID).
				Delete(&model.LegacyBorrower{}).Error
		},
	)
	if err != nil {
		// The identity row must not survive without its mirror; an orphan
		// would also make every retry fail the in-progress check above.
		span.SetStatus(codes.Error, "Mirror creation failed")
		span.RecordError(err)

		if delErr := s.customerRepository.Delete(context.WithoutCancel(ctx), created.ID); delErr != nil {
			s.log.Error("Failed to unwind customer row after mirror failure",
				zap.Uint64("customer_id", created.ID),
				zap.String("trace_id", span.SpanContext().TraceID().String()),
				zap.Error(delErr),
			)
		}

		return nil, err
	}

	s.log.Info("Partner registration completed",
		zap.String("partner", partnerName),
		zap.Uint64("customer_id", created.ID),
		zap.String("trace_id", span.SpanContext().TraceID().String()),
	)

	span.SetStatus(codes.Ok, "Partner registration completed")

	return &dto.PartnerRegistrationResponse{
		PartnerName: partnerName,
		CustomerID:  created.ID,
		Email:       created.Email,
		Status:      string(created.RegistrationStatus),
	}, nil
}

// CompleteRegistration implements PartnerServices. The partner pushes the
// borrower's remaining sections through the same validation and dual-write
// paths the frontoffice uses.
func (s *partnerService) CompleteRegistration(ctx context.Context, partnerName string, req dto.PartnerCompletingRegistration) (*dto.PartnerRegistrationResponse, error) {
	ctx, span := s.tracer.Start(ctx, "service.PartnerCompleteRegistration")
	defer span.End()

	done := s.metrics.begin(ctx, "partner_complete_registration")
	var err error
	defer func() { done(err) }()

	span.SetAttributes(attribute.String("partner.name", partnerName))

	customer, err := s.customerRepository.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		err = common.ErrCustomerNotFound
		return nil, err
	}
	if !customer.RegistrationStatus.CanMutate() {
		span.SetStatus(codes.Error, "Registration already past editing")
		err = common.ErrAlreadyInProgress
		return nil, err
	}

	if req.PersonalProfile != nil {
		if err = s.personalServices.Save(ctx, customer.ID, *req.PersonalProfile); err != nil {
			span.SetStatus(codes.Error, "Personal profile rejected")
			return nil, err
		}
	}
	if len(req.BankInformation) > 0 {
		if _, err = s.bankServices.SaveAll(ctx, customer.ID, dto.SaveAllBankInformation{
			BankInformation: req.BankInformation,
		}); err != nil {
			span.SetStatus(codes.Error, "Bank information rejected")
			return nil, err
		}
	}

	s.log.Info("Partner completing registration applied",
		zap.String("partner", partnerName),
		zap.Uint64("customer_id", customer.ID),
		zap.String("trace_id", span.SpanContext().TraceID().String()),
	)

	span.SetStatus(codes.Ok, "Partner completing registration applied")

	return &dto.PartnerRegistrationResponse{
		PartnerName: partnerName,
		CustomerID:  customer.ID,
		Email:       customer.Email,
		Status:      string(customer.RegistrationStatus),
	}, nil
}
