package service

import (
	"context"
	"mime/multipart"

	"github.com/danakita/borrower-onboarding/internal/domain"
	"github.com/danakita/borrower-onboarding/internal/dto"
)

type Media interface {
	Upload(ctx context.Context, file *multipart.FileHeader, folder string) (string, error)
}

type BankServices interface {
	SaveAll(ctx context.Context, customerID uint64, req dto.SaveAllBankInformation) ([]domain.BankInformation, error)
}

type BusinessServices interface {
	Save(ctx context.Context, customerID uint64, req dto.SaveBusinessProfile) error
}

type LegalServices interface {
	SaveAll(ctx context.Context, customerID uint64, req dto.SaveAllLegalInformation) ([]domain.LegalInformation, error)
}

type FinancialServices interface {
	Add(ctx context.Context, customerID uint64, req dto.FinancialInformation) (*domain.StatementFile, error)
	Update(ctx context.Context, customerID uint64, statementFileID uint64, req dto.FinancialInformation) (*domain.StatementFile, error)
	SaveInstitutional(ctx context.Context, customerID uint64, req dto.InstitutionalFinancialSave) error
}

type PersonalServices interface {
	Save(ctx context.Context, customerID uint64, req dto.SavePersonalProfile) error
	UpdateProductPreference(ctx context.Context, customerID uint64, req dto.UpdateProductPreference) error
}

type VerificationServices interface {
	RequestVerification(ctx context.Context, customerID uint64) error
	Activate(ctx context.Context, customerID uint64) error
	Deactivate(ctx context.Context, customerID uint64) error
	Reject(ctx context.Context, customerID uint64) error
	Reopen(ctx context.Context, customerID uint64) error
}

type CompletingServices interface {
	GetCompletingData(ctx context.Context, customerID uint64) (*dto.CompletingData, error)
}

type AuthServices interface {
	Login(ctx context.Context, req dto.Login) (*dto.LoginResponse, error)
}

type PartnerServices interface {
	Register(ctx context.Context, partnerName string, req dto.PartnerRegistration) (*dto.PartnerRegistrationResponse, error)
	CompleteRegistration(ctx context.Context, partnerName string, req dto.PartnerCompletingRegistration) (*dto.PartnerRegistrationResponse, error)
}
