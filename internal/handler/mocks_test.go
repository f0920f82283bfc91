package handler_test

import (
	"context"
	"mime/multipart"

	"github.com/danakita/borrower-onboarding/internal/domain"
	"github.com/danakita/borrower-onboarding/internal/dto"
)

type MockBankService struct {
	MockSaveAllResult []domain.BankInformation
	MockError         error

	LastCustomerID uint64
	LastRequest    dto.SaveAllBankInformation
}

func (m *MockBankService) SaveAll(_ context.Context, customerID uint64, req dto.SaveAllBankInformation) ([]domain.BankInformation, error) {
	m.LastCustomerID = customerID
	m.LastRequest = req
	if m.MockError != nil {
		return nil, m.MockError
	}
	return m.MockSaveAllResult, nil
}

type MockBusinessService struct {
	MockError error
}

func (m *MockBusinessService) Save(_ context.Context, _ uint64, _ dto.SaveBusinessProfile) error {
	return m.MockError
}

type MockLegalService struct {
	MockSaveAllResult []domain.LegalInformation
	MockError         error
}

func (m *MockLegalService) SaveAll(_ context.Context, _ uint64, _ dto.SaveAllLegalInformation) ([]domain.LegalInformation, error) {
	if m.MockError != nil {
		return nil, m.MockError
	}
	return m.MockSaveAllResult, nil
}

type MockFinancialService struct {
	MockStatementFile *domain.StatementFile
	MockError         error

	LastStatementFileID uint64
}

func (m *MockFinancialService) Add(_ context.Context, _ uint64, _ dto.FinancialInformation) (*domain.StatementFile, error) {
	if m.MockError != nil {
		return nil, m.MockError
	}
	return m.MockStatementFile, nil
}

func (m *MockFinancialService) Update(_ context.Context, _ uint64, statementFileID uint64, _ dto.FinancialInformation) (*domain.StatementFile, error) {
	m.LastStatementFileID = statementFileID
	if m.MockError != nil {
		return nil, m.MockError
	}
	return m.MockStatementFile, nil
}

func (m *MockFinancialService) SaveInstitutional(_ context.Context, _ uint64, _ dto.InstitutionalFinancialSave) error {
	return m.MockError
}

type MockPersonalService struct {
	MockError error

	LastCustomerID uint64
}

func (m *MockPersonalService) Save(_ context.Context, customerID uint64, _ dto.SavePersonalProfile) error {
	m.LastCustomerID = customerID
	return m.MockError
}

func (m *MockPersonalService) UpdateProductPreference(_ context.Context, customerID uint64, _ dto.UpdateProductPreference) error {
	m.LastCustomerID = customerID
	return m.MockError
}

type MockVerificationService struct {
	MockError error

	Requested   []uint64
	Activated   []uint64
	Rejected    []uint64
	Reopened    []uint64
	Deactivated []uint64
}

func (m *MockVerificationService) RequestVerification(_ context.Context, customerID uint64) error {
	m.Requested = append(m.Requested, customerID)
	return m.MockError
}

func (m *MockVerificationService) Activate(_ context.Context, customerID uint64) error {
	m.Activated = append(m.Activated, customerID)
	return m.MockError
}

func (m *MockVerificationService) Deactivate(_ context.Context, customerID uint64) error {
	m.Deactivated = append(m.Deactivated, customerID)
	return m.MockError
}

func (m *MockVerificationService) Reject(_ context.Context, customerID uint64) error {
	m.Rejected = append(m.Rejected, customerID)
	return m.MockError
}

func (m *MockVerificationService) Reopen(_ context.Context, customerID uint64) error {
	m.Reopened = append(m.Reopened, customerID)
	return m.MockError
}

type MockCompletingService struct {
	MockData  *dto.CompletingData
	MockError error
}

func (m *MockCompletingService) GetCompletingData(_ context.Context, _ uint64) (*dto.CompletingData, error) {
	if m.MockError != nil {
		return nil, m.MockError
	}
	return m.MockData, nil
}

type MockAuthService struct {
	MockResponse *dto.LoginResponse
	MockError    error
}

func (m *MockAuthService) Login(_ context.Context, _ dto.Login) (*dto.LoginResponse, error) {
	if m.MockError != nil {
		return nil, m.MockError
	}
	return m.MockResponse, nil
}

type MockPartnerService struct {
	MockResponse *dto.PartnerRegistrationResponse
	MockError    error

	LastPartnerName string
}

func (m *MockPartnerService) Register(_ context.Context, partnerName string, _ dto.PartnerRegistration) (*dto.PartnerRegistrationResponse, error) {
	m.LastPartnerName = partnerName
	if m.MockError != nil {
		return nil, m.MockError
	}
	return m.MockResponse, nil
}

func (m *MockPartnerService) CompleteRegistration(_ context.Context, partnerName string, _ dto.PartnerCompletingRegistration) (*dto.PartnerRegistrationResponse, error) {
	m.LastPartnerName = partnerName
	if m.MockError != nil {
		return nil, m.MockError
	}
	return m.MockResponse, nil
}

type MockMediaService struct {
	MockUploadURL   string
	MockUploadError error
}

func (m *MockMediaService) Upload(_ context.Context, _ *multipart.FileHeader, _ string) (string, error) {
	if m.MockUploadError != nil {
		return "", m.MockUploadError
	}
	return m.MockUploadURL, nil
}
