package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/danakita/borrower-onboarding/internal/domain"
)

// BankInformationItem is one row of a save-all submission. UseAsDisbursement is
// a pointer so an absent boolean is caught by shape validation instead of
// silently defaulting to false.
type BankInformationItem struct {
	BankInformationID     uint64 `json:"bankInformationId"`
	CustomerID            uint64 `json:"customerId"`
	MasterBankID          uint   `json:"masterBankId" validate:"required"`
	BankAccountNumber     string `json:"bankAccountNumber" validate:"required,numeric"`
	BankAccountHolderName string `json:"bankAccountHolderName" validate:"required"`
	BankAccountCoverFile  string `json:"bankAccountCoverFile" validate:"required"`
	UseAsDisbursement     *bool  `json:"useAsDisbursement" validate:"required"`
}

type SaveAllBankInformation struct {
	BankInformation []BankInformationItem `json:"bankInformation" validate:"required,min=1,dive"`
}

type SaveBusinessProfile struct {
	CompanyName     string `json:"companyName" validate:"required"`
	ProvinceID      *uint  `json:"provinceId"`
	CityID          *uint  `json:"cityId"`
	DistrictID      *uint  `json:"districtId"`
	VillageID       *uint  `json:"villageId"`
	Address         string `json:"address" validate:"required"`
	PostalCode      string `json:"postalCode" validate:"required"`
	PhoneNumber     string `json:"phoneNumber" validate:"required"`
	EmployeeCount   int    `json:"totalEmployee" validate:"required"`
	DateEstablished string `json:"dateOfEstablishment" validate:"required,datetime=2006-01-02"`
}

// FinancialInformation is one statement-file record, either a financial
// statement (type 10) or an e-statement (type 30).
type FinancialInformation struct {
	StatementFileType *int   `json:"statementFileType" validate:"required"`
	StatementFileDate string `json:"statementFileDate" validate:"required,datetime=2006-01-02"`
	StatementFile     string `json:"statementFile" validate:"required"`
}

type LegalInformationItem struct {
	LegalInformationID  uint64 `json:"legalInformationId"`
	DocumentTypeID      uint   `json:"documentTypeId" validate:"required"`
	DocumentNumber      string `json:"documentNumber"`
	DocumentFile        string `json:"documentFile" validate:"required"`
	DocumentExpiredDate string `json:"documentExpiredDate" validate:"omitempty,datetime=2006-01-02"`
}

type SaveAllLegalInformation struct {
	LegalInformation []LegalInformationItem `json:"legalInformation" validate:"required,min=1,dive"`
}

type FinancialStatementYear struct {
	YearTo          int             `json:"yearTo" validate:"required,min=1,max=3"`
	FiscalYearLabel string          `json:"fiscalYear" validate:"required"`
	FiscalMonths    int             `json:"fiscalMonths" validate:"required,min=1,max=12"`
	Sales           decimal.Decimal `json:"sales"`
	COGS            decimal.Decimal `json:"cogs"`
	GrossProfit     decimal.Decimal `json:"grossProfit"`
	SGA             decimal.Decimal `json:"sga"`
	Depreciation    decimal.Decimal `json:"depreciation"`
	OperatingProfit decimal.Decimal `json:"operatingProfit"`
	InterestExpense decimal.Decimal `json:"interestExpense"`
	Tax             decimal.Decimal `json:"tax"`
	Installment     decimal.Decimal `json:"installment"`
}

type BalanceSheetYear struct {
	YearTo             int             `json:"yearTo" validate:"required,min=1,max=3"`
	AccountsReceivable decimal.Decimal `json:"accountsReceivable"`
	Inventory          decimal.Decimal `json:"inventory"`
	AccountsPayable    decimal.Decimal `json:"accountsPayable"`
	BankDebt           decimal.Decimal `json:"bankDebt"`
	CurrentAssets      decimal.Decimal `json:"currentAssets"`
	CurrentLiabilities decimal.Decimal `json:"currentLiabilities"`
	TotalLiabilities   decimal.Decimal `json:"totalLiabilities"`
	Equity             decimal.Decimal `json:"equity"`
}

// InstitutionalFinancialSave carries the per-year figures the backoffice enters
// for an institutional borrower. Ratios and trends are derived server-side.
type InstitutionalFinancialSave struct {
	FinancialStatement []FinancialStatementYear `json:"financialStatement" validate:"required,min=2,max=3,dive"`
	BalanceSheet       []BalanceSheetYear       `json:"balanceSheet" validate:"required,min=2,max=3,dive"`
}

type SavePersonalProfile struct {
	PlaceOfBirth  string `json:"placeOfBirth" validate:"required"`
	DateOfBirth   string `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	Religion      string `json:"religion" validate:"required"`
	Education     string `json:"education" validate:"required"`
	Occupation    string `json:"occupation" validate:"required"`
	MaritalStatus string `json:"maritalStatus" validate:"required"`
	ProvinceID    *uint  `json:"provinceId"`
	CityID        *uint  `json:"cityId"`
	DistrictID    *uint  `json:"districtId"`
	VillageID     *uint  `json:"villageId"`
	Address       string `json:"address" validate:"required"`
	PostalCode    string `json:"postalCode" validate:"required"`
}

type UpdateProductPreference struct {
	ProductID uint `json:"productId" validate:"required"`
}

type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type PartnerRegistration struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phoneNumber" validate:"required"`
	UserType string `json:"userType" validate:"required,oneof=INDIVIDUAL INSTITUTIONAL"`
}

type PartnerCompletingRegistration struct {
	Email           string               `json:"email" validate:"required,email"`
	PersonalProfile *SavePersonalProfile `json:"personalProfile"`
	BankInformation []BankInformationItem `json:"bankInformation" validate:"omitempty,dive"`
}

// --- Mapping --- //

func BankInformationToEntity(item BankInformationItem, customerID uint64) domain.BankInformation {
	return domain.BankInformation{
		ID:                item.BankInformationID,
		CustomerID:        customerID,
		MasterBankID:      item.MasterBankID,
		AccountNumber:     item.BankAccountNumber,
		AccountHolderName: item.BankAccountHolderName,
		CoverFileURL:      item.BankAccountCoverFile,
		UseAsDisbursement: item.UseAsDisbursement != nil && *item.UseAsDisbursement,
	}
}

func BusinessProfileToEntity(req SaveBusinessProfile, customerID uint64) *domain.BusinessProfile {
	established, _ := time.Parse("2006-01-02", req.DateEstablished)
	profile := &domain.BusinessProfile{
		CustomerID:      customerID,
		CompanyName:     req.CompanyName,
		Address:         req.Address,
		PostalCode:      req.PostalCode,
		PhoneNumber:     req.PhoneNumber,
		EmployeeCount:   req.EmployeeCount,
		DateEstablished: established,
	}
	if req.ProvinceID != nil {
		profile.ProvinceID = *req.ProvinceID
	}
	if req.CityID != nil {
		profile.CityID = *req.CityID
	}
	if req.DistrictID != nil {
		profile.DistrictID = *req.DistrictID
	}
	if req.VillageID != nil {
		profile.VillageID = *req.VillageID
	}

	return profile
}

func FinancialInformationToEntity(req FinancialInformation, customerID uint64) *domain.StatementFile {
	date, _ := time.Parse("2006-01-02", req.StatementFileDate)
	fileType := 0
	if req.StatementFileType != nil {
		fileType = *req.StatementFileType
	}

	return &domain.StatementFile{
		CustomerID:        customerID,
		StatementFileType: domain.StatementFileType(fileType),
		StatementFileDate: date,
		StatementFileURL:  req.StatementFile,
	}
}

func LegalInformationToEntity(item LegalInformationItem, customerID uint64) domain.LegalInformation {
	entity := domain.LegalInformation{
		ID:              item.LegalInformationID,
		CustomerID:      customerID,
		DocumentTypeID:  domain.DocumentTypeID(item.DocumentTypeID),
		DocumentNumber:  item.DocumentNumber,
		DocumentFileURL: item.DocumentFile,
	}
	if item.DocumentExpiredDate != "" {
		expired, err := time.Parse("2006-01-02", item.DocumentExpiredDate)
		if err == nil {
			entity.DocumentExpiredDate = &expired
		}
	}

	return entity
}

func FinancialStatementYearToEntity(item FinancialStatementYear, customerID uint64) domain.FinancialStatementDetail {
	return domain.FinancialStatementDetail{
		CustomerID:      customerID,
		YearTo:          item.YearTo,
		FiscalYearLabel: item.FiscalYearLabel,
		FiscalMonths:    item.FiscalMonths,
		Sales:           item.Sales,
		COGS:            item.COGS,
		GrossProfit:     item.GrossProfit,
		SGA:             item.SGA,
		Depreciation:    item.Depreciation,
		OperatingProfit: item.OperatingProfit,
		InterestExpense: item.InterestExpense,
		Tax:             item.Tax,
		Installment:     item.Installment,
	}
}

func BalanceSheetYearToEntity(item BalanceSheetYear, customerID uint64) domain.BalanceSheet {
	return domain.BalanceSheet{
		CustomerID:         customerID,
		YearTo:             item.YearTo,
		AccountsReceivable: item.AccountsReceivable,
		Inventory:          item.Inventory,
		AccountsPayable:    item.AccountsPayable,
		BankDebt:           item.BankDebt,
		CurrentAssets:      item.CurrentAssets,
		CurrentLiabilities: item.CurrentLiabilities,
		TotalLiabilities:   item.TotalLiabilities,
		Equity:             item.Equity,
	}
}

func PersonalProfileToEntity(req SavePersonalProfile, customerID uint64) *domain.PersonalProfile {
	birthDate, _ := time.Parse("2006-01-02", req.DateOfBirth)
	profile := &domain.PersonalProfile{
		CustomerID:    customerID,
		PlaceOfBirth:  req.PlaceOfBirth,
		DateOfBirth:   birthDate,
		Religion:      req.Religion,
		Education:     req.Education,
		Occupation:    req.Occupation,
		MaritalStatus: req.MaritalStatus,
		Address:       req.Address,
		PostalCode:    req.PostalCode,
	}
	if req.ProvinceID != nil {
		profile.ProvinceID = *req.ProvinceID
	}
	if req.CityID != nil {
		profile.CityID = *req.CityID
	}
	if req.DistrictID != nil {
		profile.DistrictID = *req.DistrictID
	}
	if req.VillageID != nil {
		profile.VillageID = *req.VillageID
	}

	return profile
}
