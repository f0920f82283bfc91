package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/danakita/borrower-onboarding/internal/domain"
)

type LoginResponse struct {
	AccessToken    string         `json:"accessToken"`
	LegacyAuthUser LegacyAuthUser `json:"legacyAuthUser"`
	SessionID      string         `json:"sessionId"`
}

type LegacyAuthUser struct {
	LegacyID uint64 `json:"legacyId"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type BankInformationResponse struct {
	BankInformationID     uint64 `json:"bankInformationId"`
	CustomerID            uint64 `json:"customerId"`
	MasterBankID          uint   `json:"masterBankId"`
	BankAccountNumber     string `json:"bankAccountNumber"`
	BankAccountHolderName string `json:"bankAccountHolderName"`
	BankAccountCoverFile  string `json:"bankAccountCoverFile"`
	UseAsDisbursement     bool   `json:"useAsDisbursement"`
}

type LegalInformationResponse struct {
	LegalInformationID  uint64     `json:"legalInformationId"`
	DocumentTypeID      uint       `json:"documentTypeId"`
	DocumentType        string     `json:"documentType"`
	DocumentNumber      string     `json:"documentNumber"`
	DocumentFile        string     `json:"documentFile"`
	DocumentExpiredDate *time.Time `json:"documentExpiredDate,omitempty"`
}

type StatementFileResponse struct {
	FinancialInformationID uint64    `json:"financialInformationId"`
	StatementFileType      int       `json:"statementFileType"`
	StatementFileDate      time.Time `json:"statementFileDate"`
	StatementFile          string    `json:"statementFile"`
}

type PersonalProfileResponse struct {
	PlaceOfBirth  string    `json:"placeOfBirth"`
	DateOfBirth   time.Time `json:"dateOfBirth"`
	Religion      string    `json:"religion"`
	Education     string    `json:"education"`
	Occupation    string    `json:"occupation"`
	MaritalStatus string    `json:"maritalStatus"`
	ProvinceID    uint      `json:"provinceId"`
	CityID        uint      `json:"cityId"`
	DistrictID    uint      `json:"districtId"`
	VillageID     uint      `json:"villageId"`
	Address       string    `json:"address"`
	PostalCode    string    `json:"postalCode"`
}

type BusinessProfileResponse struct {
	CompanyName     string    `json:"companyName"`
	ProvinceID      uint      `json:"provinceId"`
	CityID          uint      `json:"cityId"`
	DistrictID      uint      `json:"districtId"`
	VillageID       uint      `json:"villageId"`
	Address         string    `json:"address"`
	PostalCode      string    `json:"postalCode"`
	PhoneNumber     string    `json:"phoneNumber"`
	EmployeeCount   int       `json:"totalEmployee"`
	DateEstablished time.Time `json:"dateOfEstablishment"`
}

type FinancialRatioResponse struct {
	YearTo                 int             `json:"yearTo"`
	GPM                    decimal.Decimal `json:"gpm"`
	NPM                    decimal.Decimal `json:"npm"`
	ARDOH                  decimal.Decimal `json:"ardoh"`
	INVDOH                 decimal.Decimal `json:"invdoh"`
	APDOH                  decimal.Decimal `json:"apdoh"`
	CashCycle              decimal.Decimal `json:"cashCycle"`
	CashRatio              decimal.Decimal `json:"cashRatio"`
	EBITDA                 decimal.Decimal `json:"ebitda"`
	Leverage               decimal.Decimal `json:"leverage"`
	WorkingInvestmentNeeds decimal.Decimal `json:"workingInvestmentNeeds"`
	TIE                    decimal.Decimal `json:"tie"`
	DSCR                   decimal.Decimal `json:"dscr"`
}

type FinancialTrendResponse struct {
	TrendPeriod           string          `json:"trendPeriod"`
	SalesGrowth           decimal.Decimal `json:"salesGrowth"`
	GrossProfitGrowth     decimal.Decimal `json:"grossProfitGrowth"`
	OperatingProfitGrowth decimal.Decimal `json:"operatingProfitGrowth"`
}

// CompletingData is the consolidated per-customer read model: the client-facing
// profile view and the input to the verification completeness check.
type CompletingData struct {
	BasicInfo    BasicInfo    `json:"basicInfo"`
	AdvancedInfo AdvancedInfo `json:"advancedInfo"`
}

type BasicInfo struct {
	CustomerID         uint64     `json:"customerId"`
	Username           string     `json:"username"`
	Email              string     `json:"email"`
	EmailVerified      bool       `json:"emailVerified"`
	UserType           string     `json:"userType"`
	RegistrationStatus string     `json:"registrationStatus"`
	FillFinishAt       *time.Time `json:"fillFinishAt,omitempty"`
}

type AdvancedInfo struct {
	PersonalProfile    *PersonalProfileResponse   `json:"personalProfile"`
	BusinessProfile    *BusinessProfileResponse   `json:"businessProfile"`
	LegalInformation   []LegalInformationResponse `json:"legalInformation"`
	BankInformation    []BankInformationResponse  `json:"bankInformation"`
	FinancialStatement []StatementFileResponse    `json:"financialStatement"`
}

type PartnerRegistrationResponse struct {
	PartnerName string `json:"partner_name"`
	CustomerID  uint64 `json:"customerId"`
	Email       string `json:"email"`
	Status      string `json:"registrationStatus"`
}

type UploadResponse struct {
	FileURL string `json:"fileUrl"`
}

// --- Mapping --- //

func BankInformationFromEntity(data domain.BankInformation) BankInformationResponse {
	return BankInformationResponse{
		BankInformationID:     data.ID,
		CustomerID:            data.CustomerID,
		MasterBankID:          data.MasterBankID,
		BankAccountNumber:     data.AccountNumber,
		BankAccountHolderName: data.AccountHolderName,
		BankAccountCoverFile:  data.CoverFileURL,
		UseAsDisbursement:     data.UseAsDisbursement,
	}
}

func BankInformationsFromEntity(data []domain.BankInformation) []BankInformationResponse {
	responses := make([]BankInformationResponse, len(data))
	for i, b := range data {
		responses[i] = BankInformationFromEntity(b)
	}

	return responses
}

func LegalInformationFromEntity(data domain.LegalInformation, typeName string) LegalInformationResponse {
	return LegalInformationResponse{
		LegalInformationID:  data.ID,
		DocumentTypeID:      uint(data.DocumentTypeID),
		DocumentType:        typeName,
		DocumentNumber:      data.DocumentNumber,
		DocumentFile:        data.DocumentFileURL,
		DocumentExpiredDate: data.DocumentExpiredDate,
	}
}

func StatementFileFromEntity(data domain.StatementFile) StatementFileResponse {
	return StatementFileResponse{
		FinancialInformationID: data.ID,
		StatementFileType:      int(data.StatementFileType),
		StatementFileDate:      data.StatementFileDate,
		StatementFile:          data.StatementFileURL,
	}
}

func StatementFilesFromEntity(data []domain.StatementFile) []StatementFileResponse {
	responses := make([]StatementFileResponse, len(data))
	for i, s := range data {
		responses[i] = StatementFileFromEntity(s)
	}

	return responses
}

func PersonalProfileFromEntity(data *domain.PersonalProfile) *PersonalProfileResponse {
	if data == nil {
		return nil
	}

	return &PersonalProfileResponse{
		PlaceOfBirth:  data.PlaceOfBirth,
		DateOfBirth:   data.DateOfBirth,
		Religion:      data.Religion,
		Education:     data.Education,
		Occupation:    data.Occupation,
		MaritalStatus: data.MaritalStatus,
		ProvinceID:    data.ProvinceID,
		CityID:        data.CityID,
		DistrictID:    data.DistrictID,
		VillageID:     data.VillageID,
		Address:       data.Address,
		PostalCode:    data.PostalCode,
	}
}

func BusinessProfileFromEntity(data *domain.BusinessProfile) *BusinessProfileResponse {
	if data == nil {
		return nil
	}

	return &BusinessProfileResponse{
		CompanyName:     data.CompanyName,
		ProvinceID:      data.ProvinceID,
		CityID:          data.CityID,
		DistrictID:      data.DistrictID,
		VillageID:       data.VillageID,
		Address:         data.Address,
		PostalCode:      data.PostalCode,
		PhoneNumber:     data.PhoneNumber,
		EmployeeCount:   data.EmployeeCount,
		DateEstablished: data.DateEstablished,
	}
}

func FinancialRatioFromEntity(data domain.FinancialRatio) FinancialRatioResponse {
	return FinancialRatioResponse{
		YearTo:                 data.YearTo,
		GPM:                    data.GPM,
		NPM:                    data.NPM,
		ARDOH:                  data.ARDOH,
		INVDOH:                 data.INVDOH,
		APDOH:                  data.APDOH,
		CashCycle:              data.CashCycle,
		CashRatio:              data.CashRatio,
		EBITDA:                 data.EBITDA,
		Leverage:               data.Leverage,
		WorkingInvestmentNeeds: data.WorkingInvestmentNeeds,
		TIE:                    data.TIE,
		DSCR:                   data.DSCR,
	}
}

func FinancialTrendFromEntity(data domain.FinancialTrend) FinancialTrendResponse {
	return FinancialTrendResponse{
		TrendPeriod:           data.TrendPeriod,
		SalesGrowth:           data.SalesGrowth,
		GrossProfitGrowth:     data.GrossProfitGrowth,
		OperatingProfitGrowth: data.OperatingProfitGrowth,
	}
}
