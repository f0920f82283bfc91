package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
)

type Role string

const (
	CustomerRole   Role = "customer"
	BackofficeRole Role = "backoffice"
	PartnerRole    Role = "partner"
)

type UserType string

const (
	UserIndividual    UserType = "INDIVIDUAL"
	UserInstitutional UserType = "INSTITUTIONAL"
)

// Customer is the identity anchor every sub-entity hangs off.
type Customer struct {
	ID                 uint64
	Username           string
	Email              string
	EmailVerified      bool
	Password           string
	Role               Role
	UserType           UserType
	RegistrationStatus RegistrationStatus
	FillFinishAt       *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time

	BankInformations []BankInformation
}

type BankInformation struct {
	ID                uint64
	CustomerID        uint64
	MasterBankID      uint
	AccountNumber     string
	AccountHolderName string
	CoverFileURL      string
	UseAsDisbursement bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type BusinessProfile struct {
	CustomerID      uint64
	CompanyName     string
	ProvinceID      uint
	CityID          uint
	DistrictID      uint
	VillageID       uint
	Address         string
	PostalCode      string
	PhoneNumber     string
	EmployeeCount   int
	DateEstablished time.Time
	UpdatedAt       time.Time
}

// DocumentTypeID keys the per-type legal document ruleset.
type DocumentTypeID uint

const (
	DocumentNPWP DocumentTypeID = iota + 1
	DocumentSIUP
	DocumentAktaPendirian
	DocumentAktaTerbaru
	DocumentMenkumham
	DocumentTDP
	DocumentSKDU
)

type LegalInformation struct {
	ID                  uint64
	CustomerID          uint64
	DocumentTypeID      DocumentTypeID
	DocumentNumber      string
	DocumentFileURL     string
	DocumentExpiredDate *time.Time
	UpdatedAt           time.Time
}

// StatementFileType enum: 10 is a financial statement, 30 an e-statement.
type StatementFileType int

const (
	StatementFinancial  StatementFileType = 10
	StatementEStatement StatementFileType = 30
)

type StatementFile struct {
	ID                uint64
	CustomerID        uint64
	StatementFileType StatementFileType
	StatementFileDate time.Time
	StatementFileURL  string
	UpdatedAt         time.Time
}

// FinancialStatementDetail holds one fiscal year of P&L figures, YearTo 1..3
// with 1 the most recent year. FiscalMonths spans the fiscal year label and
// drives the day-count normalization of the derived ratios.
type FinancialStatementDetail struct {
	ID              uint64
	CustomerID      uint64
	YearTo          int
	FiscalYearLabel string
	FiscalMonths    int
	Sales           decimal.Decimal
	COGS            decimal.Decimal
	GrossProfit     decimal.Decimal
	SGA             decimal.Decimal
	Depreciation    decimal.Decimal
	OperatingProfit decimal.Decimal
	InterestExpense decimal.Decimal
	Tax             decimal.Decimal
	Installment     decimal.Decimal
}

type BalanceSheet struct {
	ID                 uint64
	CustomerID         uint64
	YearTo             int
	AccountsReceivable decimal.Decimal
	Inventory          decimal.Decimal
	AccountsPayable    decimal.Decimal
	BankDebt           decimal.Decimal
	CurrentAssets      decimal.Decimal
	CurrentLiabilities decimal.Decimal
	TotalLiabilities   decimal.Decimal
	Equity             decimal.Decimal
}

type FinancialRatio struct {
	CustomerID             uint64
	YearTo                 int
	GPM                    decimal.Decimal
	NPM                    decimal.Decimal
	ARDOH                  decimal.Decimal
	INVDOH                 decimal.Decimal
	APDOH                  decimal.Decimal
	CashCycle              decimal.Decimal
	CashRatio              decimal.Decimal
	EBITDA                 decimal.Decimal
	Leverage               decimal.Decimal
	WorkingInvestmentNeeds decimal.Decimal
	TIE                    decimal.Decimal
	DSCR                   decimal.Decimal
}

// FinancialTrend holds year-over-year percentage deltas between two adjacent
// statement years, TrendPeriod "1 to 2" or "2 to 3".
type FinancialTrend struct {
	CustomerID            uint64
	TrendPeriod           string
	SalesGrowth           decimal.Decimal
	GrossProfitGrowth     decimal.Decimal
	OperatingProfitGrowth decimal.Decimal
}

type PersonalProfile struct {
	CustomerID    uint64
	PlaceOfBirth  string
	DateOfBirth   time.Time
	Religion      string
	Education     string
	Occupation    string
	MaritalStatus string
	ProvinceID    uint
	CityID        uint
	DistrictID    uint
	VillageID     uint
	Address       string
	PostalCode    string
	UpdatedAt     time.Time
}

type ProductPreference struct {
	CustomerID uint64
	ProductID  uint
	UpdatedAt  time.Time
}

type Province struct {
	ID   uint
	Name string
}

type City struct {
	ID         uint
	ProvinceID uint
	Name       string
}

type JwtCustomClaims struct {
	UserID uint64 `json:"user_id"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

type Params struct {
	Status string
	Page   int
	Limit  int
}

type Paginated struct {
	Data       any
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}
