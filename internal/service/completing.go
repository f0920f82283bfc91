package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/danakita/borrower-onboarding/internal/dto"
	"github.com/danakita/borrower-onboarding/internal/repository"
	"github.com/danakita/borrower-onboarding/internal/validation"
	"github.com/danakita/borrower-onboarding/pkg/common"
)

type completingService struct {
	customerRepository  repository.CustomerRepository
	bankRepository      repository.BankRepository
	legalRepository     repository.LegalRepository
	financialRepository repository.FinancialRepository
	profileRepository   repository.ProfileRepository

	tracer  trace.Tracer
	log     *zap.Logger
	metrics svcMetrics
}

func NewCompletingService(
	customerRepository repository.CustomerRepository,
	bankRepository repository.BankRepository,
	legalRepository repository.LegalRepository,
	financialRepository repository.FinancialRepository,
	profileRepository repository.ProfileRepository,
	meter metric.Meter,
	tracer trace.Tracer,
	log *zap.Logger,
) CompletingServices {
	return &completingService{
		customerRepository:  customerRepository,
		bankRepository:      bankRepository,
		legalRepository:     legalRepository,
		financialRepository: financialRepository,
		profileRepository:   profileRepository,
		tracer:              tracer,
		log:                 log,
		metrics:             newSvcMetrics(meter),
	}
}

// GetCompletingData implements CompletingServices. The view reads only
// committed new-core rows, so a failed dual-write never shows up here.
func (s *completingService) GetCompletingData(ctx context.Context, customerID uint64) (*dto.CompletingData, error) {
	ctx, span := s.tracer.Start(ctx, "service.GetCompletingData")
	defer span.End()

	done := s.metrics.begin(ctx, "completing_data")
	var err error
	defer func() { done(err) }()

	span.SetAttributes(attribute.Int64("customer.id", int64(customerID)))

	customer, err := s.customerRepository.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		err = common.ErrCustomerNotFound
		return nil, err
	}

	personal, err := s.profileRepository.FindPersonal(ctx, customerID)
	if err != nil {
		return nil, err
	}
	business, err := s.profileRepository.FindBusiness(ctx, customerID)
	if err != nil {
		return nil, err
	}
	banks, err := s.bankRepository.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	docs, err := s.legalRepository.FindByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	files, err := s.financialRepository.FindStatementFiles(ctx, customerID)
	if err != nil {
		return nil, err
	}

	legal := make([]dto.LegalInformationResponse, len(docs))
	for i, doc := range docs {
		name, _ := validation.DocumentTypeName(doc.DocumentTypeID)
		legal[i] = dto.LegalInformationFromEntity(doc, name)
	}

	data := &dto.CompletingData{
		BasicInfo: dto.BasicInfo{
			CustomerID:         customer.ID,
			Username:           customer.Username,
			Email:              customer.Email,
			EmailVerified:      customer.EmailVerified,
			UserType:           string(customer.UserType),
			RegistrationStatus: string(customer.RegistrationStatus),
			FillFinishAt:       customer.FillFinishAt,
		},
		AdvancedInfo: dto.AdvancedInfo{
			PersonalProfile:    dto.PersonalProfileFromEntity(personal),
			BusinessProfile:    dto.BusinessProfileFromEntity(business),
			LegalInformation:   legal,
			BankInformation:    dto.BankInformationsFromEntity(banks),
			FinancialStatement: dto.StatementFilesFromEntity(files),
		},
	}

	span.SetStatus(codes.Ok, "Completing data assembled")

	return data, nil
}
