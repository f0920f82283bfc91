package repository

import (
	"context"

	"github.com/danakita/borrower-onboarding/internal/domain"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	Delete(ctx context.Context, id uint64) error
	FindByID(ctx context.Context, id uint64) (*domain.Customer, error)
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
	FindPaginated(ctx context.Context, params domain.Params) ([]domain.Customer, int64, error)
}

type BankRepository interface {
	FindByID(ctx context.Context, id uint64) (*domain.BankInformation, error)
	FindByCustomerID(ctx context.Context, customerID uint64) ([]domain.BankInformation, error)
}

type LegalRepository interface {
	FindByCustomerID(ctx context.Context, customerID uint64) ([]domain.LegalInformation, error)
	FindByTypeAndNumber(ctx context.Context, typeID domain.DocumentTypeID, number string) (*domain.LegalInformation, error)
}

type FinancialRepository interface {
	FindStatementFileByID(ctx context.Context, id uint64) (*domain.StatementFile, error)
	FindStatementFiles(ctx context.Context, customerID uint64) ([]domain.StatementFile, error)
	FindStatementDetails(ctx context.Context, customerID uint64) ([]domain.FinancialStatementDetail, error)
	FindBalanceSheets(ctx context.Context, customerID uint64) ([]domain.BalanceSheet, error)
	FindRatios(ctx context.Context, customerID uint64) ([]domain.FinancialRatio, error)
	FindTrends(ctx context.Context, customerID uint64) ([]domain.FinancialTrend, error)
}

type ProfileRepository interface {
	FindPersonal(ctx context.Context, customerID uint64) (*domain.PersonalProfile, error)
	FindBusiness(ctx context.Context, customerID uint64) (*domain.BusinessProfile, error)
	FindProductPreference(ctx context.Context, customerID uint64) (*domain.ProductPreference, error)
}

type GeographyRepository interface {
	CityInProvince(ctx context.Context, cityID, provinceID uint) (bool, error)
	ProvinceExists(ctx context.Context, provinceID uint) (bool, error)
}
