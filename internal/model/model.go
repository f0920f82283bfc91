package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer represents the customers table in the new-core store
type Customer struct {
	ID                 uint64             `gorm:"primaryKey;autoIncrement" json:"id"`
	Username           string             `gorm:"type:varchar(100);not null;uniqueIndex" json:"username"`
	Email              string             `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	EmailVerified      bool               `gorm:"not null;default:false" json:"email_verified"`
	Password           string             `gorm:"type:varchar(255);not null" json:"-"`
	Role               string             `gorm:"type:enum('customer','backoffice','partner');default:'customer';not null" json:"role"`
	UserType           UserType           `gorm:"type:enum('INDIVIDUAL','INSTITUTIONAL');not null" json:"user_type"`
	RegistrationStatus RegistrationStatus `gorm:"type:enum('EDITABLE','PENDING_VERIFICATION','ACTIVE','INACTIVE','REJECTED');default:'EDITABLE';not null" json:"registration_status"`
	FillFinishAt       *time.Time         `gorm:"column:cr_fill_finish_at" json:"cr_fill_finish_at"`
	CreatedAt          time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	BankInformations []BankInformation `gorm:"foreignKey:CustomerID" json:"bank_informations,omitempty"`
}

type UserType string

const (
	UserIndividual    UserType = "INDIVIDUAL"
	UserInstitutional UserType = "INSTITUTIONAL"
)

type RegistrationStatus string

const (
	StatusEditable            RegistrationStatus = "EDITABLE"
	StatusPendingVerification RegistrationStatus = "PENDING_VERIFICATION"
	StatusActive              RegistrationStatus = "ACTIVE"
	StatusInactive            RegistrationStatus = "INACTIVE"
	StatusRejected            RegistrationStatus = "REJECTED"
)

// BankInformation represents the bank_informations table
type BankInformation struct {
	ID                uint64    `gorm:"primaryKey;autoIncrement" json:"bankInformationId"`
	CustomerID        uint64    `gorm:"not null;index" json:"customerId"`
	MasterBankID      uint      `gorm:"not null" json:"masterBankId"`
	AccountNumber     string    `gorm:"type:varchar(34);not null" json:"bankAccountNumber"`
	AccountHolderName string    `gorm:"type:varchar(255);not null" json:"bankAccountHolderName"`
	CoverFileURL      string    `gorm:"type:varchar(255)" json:"bankAccountCoverFile"`
	UseAsDisbursement bool      `gorm:"not null;default:false" json:"useAsDisbursement"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Customer Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

// BusinessProfile represents the business_profiles table, one per
// institutional customer
type BusinessProfile struct {
	CustomerID      uint64    `gorm:"primaryKey" json:"customerId"`
	CompanyName     string    `gorm:"type:varchar(255);not null" json:"companyName"`
	ProvinceID      uint      `gorm:"not null" json:"provinceId"`
	CityID          uint      `gorm:"not null" json:"cityId"`
	DistrictID      uint      `json:"districtId"`
	VillageID       uint      `json:"villageId"`
	Address         string    `gorm:"type:varchar(500)" json:"address"`
	PostalCode      string    `gorm:"type:varchar(5)" json:"postalCode"`
	PhoneNumber     string    `gorm:"type:varchar(20)" json:"phoneNumber"`
	EmployeeCount   int       `gorm:"not null" json:"employeeCount"`
	DateEstablished time.Time `gorm:"type:date;not null" json:"dateEstablished"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Customer Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

// LegalInformation represents the legal_informations table, one row per
// document type per customer
type LegalInformation struct {
	ID                  uint64     `gorm:"primaryKey;autoIncrement" json:"legalInformationId"`
	CustomerID          uint64     `gorm:"not null;index:idx_legal_customer_doc,unique" json:"customerId"`
	DocumentTypeID      uint       `gorm:"not null;index:idx_legal_customer_doc,unique" json:"documentTypeId"`
	DocumentNumber      string     `gorm:"type:varchar(50)" json:"documentNumber"`
	DocumentFileURL     string     `gorm:"type:varchar(255)" json:"documentFile"`
	DocumentExpiredDate *time.Time `gorm:"type:date" json:"documentExpiredDate"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Customer Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

// StatementFile represents the statement_files table (e-statements and
// financial statement documents)
type StatementFile struct {
	ID                uint64    `gorm:"primaryKey;autoIncrement" json:"financialInformationId"`
	CustomerID        uint64    `gorm:"not null;index" json:"customerId"`
	StatementFileType int       `gorm:"not null" json:"statementFileType"`
	StatementFileDate time.Time `gorm:"type:date;not null" json:"statementFileDate"`
	StatementFileURL  string    `gorm:"type:varchar(255);not null" json:"statementFileUrl"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Customer Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

// FinancialStatementDetail represents the financial_statement_details table,
// one row per fiscal year (year_to 1..3)
type FinancialStatementDetail struct {
	ID              uint64          `gorm:"primaryKey;autoIncrement" json:"financialStatementDetailId"`
	CustomerID      uint64          `gorm:"not null;index:idx_fsd_customer_year,unique" json:"customerId"`
	YearTo          int             `gorm:"not null;index:idx_fsd_customer_year,unique" json:"yearTo"`
	FiscalYearLabel string          `gorm:"type:varchar(50)" json:"fiscalYearLabel"`
	FiscalMonths    int             `gorm:"not null;default:12" json:"fiscalMonths"`
	Sales           decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"sales"`
	COGS            decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"cogs"`
	GrossProfit     decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"grossProfit"`
	SGA             decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"sga"`
	Depreciation    decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"depreciation"`
	OperatingProfit decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"operatingProfit"`
	InterestExpense decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"interestExpense"`
	Tax             decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"tax"`
	Installment     decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"installment"`

	Customer Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

// BalanceSheet represents the balance_sheets table, one row per fiscal year
type BalanceSheet struct {
	ID                 uint64          `gorm:"primaryKey;autoIncrement" json:"balanceSheetId"`
	CustomerID         uint64          `gorm:"not null;index:idx_bs_customer_year,unique" json:"customerId"`
	YearTo             int             `gorm:"not null;index:idx_bs_customer_year,unique" json:"yearTo"`
	AccountsReceivable decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"accountsReceivable"`
	Inventory          decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"inventory"`
	AccountsPayable    decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"accountsPayable"`
	BankDebt           decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"bankDebt"`
	CurrentAssets      decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"currentAssets"`
	CurrentLiabilities decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"currentLiabilities"`
	TotalLiabilities   decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"totalLiabilities"`
	Equity             decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"equity"`

	Customer Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

// FinancialRatio represents the financial_ratios table, derived per fiscal year
type FinancialRatio struct {
	CustomerID             uint64          `gorm:"primaryKey" json:"customerId"`
	YearTo                 int             `gorm:"primaryKey" json:"yearTo"`
	GPM                    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"gpm"`
	NPM                    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"npm"`
	ARDOH                  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"ardoh"`
	INVDOH                 decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"invdoh"`
	APDOH                  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"apdoh"`
	CashCycle              decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"cashCycle"`
	CashRatio              decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"cashRatio"`
	EBITDA                 decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"ebitda"`
	Leverage               decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"leverage"`
	WorkingInvestmentNeeds decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"workingInvestmentNeeds"`
	TIE                    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"tie"`
	DSCR                   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"dscr"`
}

// FinancialTrend represents the financial_trends table, derived between two
// adjacent statement years
type FinancialTrend struct {
	CustomerID            uint64          `gorm:"primaryKey" json:"customerId"`
	TrendPeriod           string          `gorm:"primaryKey;type:varchar(10)" json:"trendPeriod"`
	SalesGrowth           decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"salesGrowth"`
	GrossProfitGrowth     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"grossProfitGrowth"`
	OperatingProfitGrowth decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"operatingProfitGrowth"`
}

// PersonalProfile represents the personal_profiles table
type PersonalProfile struct {
	CustomerID    uint64    `gorm:"primaryKey" json:"customerId"`
	PlaceOfBirth  string    `gorm:"type:varchar(100);not null" json:"placeOfBirth"`
	DateOfBirth   time.Time `gorm:"type:date;not null" json:"dateOfBirth"`
	Religion      string    `gorm:"type:varchar(50)" json:"religion"`
	Education     string    `gorm:"type:varchar(50)" json:"education"`
	Occupation    string    `gorm:"type:varchar(100)" json:"occupation"`
	MaritalStatus string    `gorm:"type:varchar(50)" json:"maritalStatus"`
	ProvinceID    uint      `json:"provinceId"`
	CityID        uint      `json:"cityId"`
	DistrictID    uint      `json:"districtId"`
	VillageID     uint      `json:"villageId"`
	Address       string    `gorm:"type:varchar(500)" json:"address"`
	PostalCode    string    `gorm:"type:varchar(5)" json:"postalCode"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Customer Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

// ProductPreference represents the product_preferences table
type ProductPreference struct {
	CustomerID uint64    `gorm:"primaryKey" json:"customerId"`
	ProductID  uint      `gorm:"not null" json:"productId"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Customer Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

// Province and City form the seeded geography coverage reference
type Province struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`

	Cities []City `gorm:"foreignKey:ProvinceID" json:"cities,omitempty"`
}

type City struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ProvinceID uint   `gorm:"not null;index" json:"province_id"`
	Name       string `gorm:"type:varchar(100);not null" json:"name"`

	Province Province `gorm:"foreignKey:ProvinceID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Customer) TableName() string                 { return "customers" }
func (BankInformation) TableName() string          { return "bank_informations" }
func (BusinessProfile) TableName() string          { return "business_profiles" }
func (LegalInformation) TableName() string         { return "legal_informations" }
func (StatementFile) TableName() string            { return "statement_files" }
func (FinancialStatementDetail) TableName() string { return "financial_statement_details" }
func (BalanceSheet) TableName() string             { return "balance_sheets" }
func (FinancialRatio) TableName() string           { return "financial_ratios" }
func (FinancialTrend) TableName() string           { return "financial_trends" }
func (PersonalProfile) TableName() string          { return "personal_profiles" }
func (ProductPreference) TableName() string        { return "product_preferences" }
func (Province) TableName() string                 { return "provinces" }
func (City) TableName() string                     { return "cities" }

// AutoMigrate migrates the new-core schema
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Customer{},
		&BankInformation{},
		&BusinessProfile{},
		&LegalInformation{},
		&StatementFile{},
		&FinancialStatementDetail{},
		&BalanceSheet{},
		&FinancialRatio{},
		&FinancialTrend{},
		&PersonalProfile{},
		&ProductPreference{},
		&Province{},
		&City{},
	)
}
