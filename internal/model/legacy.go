package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Legacy mirror models. Every table carries a *_migration_id column tying its
// rows back to the new-core customer id, and row-level mirrors additionally
// carry the new-core row id so updates can be correlated.

// LegacyBorrower mirrors the customer identity plus the flattened personal and
// business profile the legacy backoffice reads (bpd table)
type LegacyBorrower struct {
	ID              uint64     `gorm:"column:bpd_id;primaryKey;autoIncrement" json:"bpd_id"`
	MigrationID     uint64     `gorm:"column:bpd_migration_id;not null;uniqueIndex" json:"bpd_migration_id"`
	Username        string     `gorm:"column:bpd_username;type:varchar(100)" json:"bpd_username"`
	Email           string     `gorm:"column:bpd_email;type:varchar(255);not null" json:"bpd_email"`
	RegStatus       string     `gorm:"column:bpd_reg_status;type:varchar(30)" json:"bpd_reg_status"`
	CompanyName     string     `gorm:"column:bpd_company_name;type:varchar(255)" json:"bpd_company_name"`
	PlaceOfBirth    string     `gorm:"column:bpd_place_of_birth;type:varchar(100)" json:"bpd_place_of_birth"`
	DateOfBirth     *time.Time `gorm:"column:bpd_date_of_birth;type:date" json:"bpd_date_of_birth"`
	FillFinishDate  *time.Time `gorm:"column:bpd_fill_finish_date" json:"bpd_fill_finish_date"`
	CreatedAt       time.Time  `gorm:"column:bpd_created_at;autoCreateTime" json:"bpd_created_at"`
	UpdatedAt       time.Time  `gorm:"column:bpd_updated_at;autoUpdateTime" json:"bpd_updated_at"`
}

// LegacyBankAccount mirrors bank_informations (bid table)
type LegacyBankAccount struct {
	ID                uint64    `gorm:"column:bid_id;primaryKey;autoIncrement" json:"bid_id"`
	MigrationID       uint64    `gorm:"column:bid_migration_id;not null;index" json:"bid_migration_id"`
	NewCoreID         uint64    `gorm:"column:bid_newcore_id;not null;uniqueIndex" json:"bid_newcore_id"`
	MasterBankID      uint      `gorm:"column:bid_bank_id" json:"bid_bank_id"`
	AccountNumber     string    `gorm:"column:bid_account_number;type:varchar(34)" json:"bid_account_number"`
	AccountHolderName string    `gorm:"column:bid_holder_name;type:varchar(255)" json:"bid_holder_name"`
	CoverFileURL      string    `gorm:"column:bid_cover_file;type:varchar(255)" json:"bid_cover_file"`
	UseAsDisbursement bool      `gorm:"column:bid_use_as_disbursement" json:"bid_use_as_disbursement"`
	UpdatedAt         time.Time `gorm:"column:bid_updated_at;autoUpdateTime" json:"bid_updated_at"`
}

// LegacyLegalDocument mirrors legal_informations (lid table)
type LegacyLegalDocument struct {
	ID             uint64     `gorm:"column:lid_id;primaryKey;autoIncrement" json:"lid_id"`
	MigrationID    uint64     `gorm:"column:lid_migration_id;not null;index" json:"lid_migration_id"`
	NewCoreID      uint64     `gorm:"column:lid_newcore_id;not null;uniqueIndex" json:"lid_newcore_id"`
	DocumentTypeID uint       `gorm:"column:lid_doc_type" json:"lid_doc_type"`
	DocumentNumber string     `gorm:"column:lid_doc_number;type:varchar(50)" json:"lid_doc_number"`
	DocumentFile   string     `gorm:"column:lid_doc_file;type:varchar(255)" json:"lid_doc_file"`
	ExpiredDate    *time.Time `gorm:"column:lid_expired_date;type:date" json:"lid_expired_date"`
	UpdatedAt      time.Time  `gorm:"column:lid_updated_at;autoUpdateTime" json:"lid_updated_at"`
}

// LegacyStatementFile mirrors statement_files (bst table)
type LegacyStatementFile struct {
	ID          uint64    `gorm:"column:bst_id;primaryKey;autoIncrement" json:"bst_id"`
	MigrationID uint64    `gorm:"column:bst_migration_id;not null;index" json:"bst_migration_id"`
	NewCoreID   uint64    `gorm:"column:bst_newcore_id;not null;uniqueIndex" json:"bst_newcore_id"`
	FileType    int       `gorm:"column:bst_file_type" json:"bst_file_type"`
	FileDate    time.Time `gorm:"column:bst_file_date;type:date" json:"bst_file_date"`
	FileURL     string    `gorm:"column:bst_file;type:varchar(255)" json:"bst_file"`
	UpdatedAt   time.Time `gorm:"column:bst_updated_at;autoUpdateTime" json:"bst_updated_at"`
}

// LegacyBalanceSheet mirrors balance_sheets (bs table)
type LegacyBalanceSheet struct {
	ID                 uint64          `gorm:"column:bs_id;primaryKey;autoIncrement" json:"bs_id"`
	MigrationID        uint64          `gorm:"column:bs_migration_id;not null;index:idx_bs_migration_year,unique" json:"bs_migration_id"`
	YearTo             int             `gorm:"column:bs_year_to;not null;index:idx_bs_migration_year,unique" json:"bs_year_to"`
	AccountsReceivable decimal.Decimal `gorm:"column:bs_ar;type:decimal(20,2)" json:"bs_ar"`
	Inventory          decimal.Decimal `gorm:"column:bs_inventory;type:decimal(20,2)" json:"bs_inventory"`
	AccountsPayable    decimal.Decimal `gorm:"column:bs_ap;type:decimal(20,2)" json:"bs_ap"`
	BankDebt           decimal.Decimal `gorm:"column:bs_bank_debt;type:decimal(20,2)" json:"bs_bank_debt"`
	CurrentAssets      decimal.Decimal `gorm:"column:bs_current_assets;type:decimal(20,2)" json:"bs_current_assets"`
	CurrentLiabilities decimal.Decimal `gorm:"column:bs_current_liabilities;type:decimal(20,2)" json:"bs_current_liabilities"`
	TotalLiabilities   decimal.Decimal `gorm:"column:bs_total_liabilities;type:decimal(20,2)" json:"bs_total_liabilities"`
	Equity             decimal.Decimal `gorm:"column:bs_equity;type:decimal(20,2)" json:"bs_equity"`
	UpdatedAt          time.Time       `gorm:"column:bs_updated_at;autoUpdateTime" json:"bs_updated_at"`
}

// LegacyFinancialRatio mirrors financial_ratios (fr table)
type LegacyFinancialRatio struct {
	ID          uint64          `gorm:"column:fr_id;primaryKey;autoIncrement" json:"fr_id"`
	MigrationID uint64          `gorm:"column:fr_migration_id;not null;index:idx_fr_migration_year,unique" json:"fr_migration_id"`
	YearTo      int             `gorm:"column:fr_year_to;not null;index:idx_fr_migration_year,unique" json:"fr_year_to"`
	GPM         decimal.Decimal `gorm:"column:fr_gpm;type:decimal(20,4)" json:"fr_gpm"`
	NPM         decimal.Decimal `gorm:"column:fr_npm;type:decimal(20,4)" json:"fr_npm"`
	ARDOH       decimal.Decimal `gorm:"column:fr_ardoh;type:decimal(20,4)" json:"fr_ardoh"`
	INVDOH      decimal.Decimal `gorm:"column:fr_invdoh;type:decimal(20,4)" json:"fr_invdoh"`
	APDOH       decimal.Decimal `gorm:"column:fr_apdoh;type:decimal(20,4)" json:"fr_apdoh"`
	CashCycle   decimal.Decimal `gorm:"column:fr_cash_cycle;type:decimal(20,4)" json:"fr_cash_cycle"`
	CashRatio   decimal.Decimal `gorm:"column:fr_cash_ratio;type:decimal(20,4)" json:"fr_cash_ratio"`
	EBITDA      decimal.Decimal `gorm:"column:fr_ebitda;type:decimal(20,2)" json:"fr_ebitda"`
	Leverage    decimal.Decimal `gorm:"column:fr_leverage;type:decimal(20,4)" json:"fr_leverage"`
	WINeeds     decimal.Decimal `gorm:"column:fr_wi_needs;type:decimal(20,2)" json:"fr_wi_needs"`
	TIE         decimal.Decimal `gorm:"column:fr_tie;type:decimal(20,4)" json:"fr_tie"`
	DSCR        decimal.Decimal `gorm:"column:fr_dscr;type:decimal(20,4)" json:"fr_dscr"`
	UpdatedAt   time.Time       `gorm:"column:fr_updated_at;autoUpdateTime" json:"fr_updated_at"`
}

// LegacyFinancialTrend mirrors financial_trends (ft table)
type LegacyFinancialTrend struct {
	ID              uint64          `gorm:"column:ft_id;primaryKey;autoIncrement" json:"ft_id"`
	MigrationID     uint64          `gorm:"column:ft_migration_id;not null;index:idx_ft_migration_period,unique" json:"ft_migration_id"`
	TrendPeriod     string          `gorm:"column:ft_period;type:varchar(10);not null;index:idx_ft_migration_period,unique" json:"ft_period"`
	SalesGrowth     decimal.Decimal `gorm:"column:ft_sales_growth;type:decimal(20,4)" json:"ft_sales_growth"`
	GrossGrowth     decimal.Decimal `gorm:"column:ft_gross_growth;type:decimal(20,4)" json:"ft_gross_growth"`
	OperatingGrowth decimal.Decimal `gorm:"column:ft_operating_growth;type:decimal(20,4)" json:"ft_operating_growth"`
	UpdatedAt       time.Time       `gorm:"column:ft_updated_at;autoUpdateTime" json:"ft_updated_at"`
}

func (LegacyBorrower) TableName() string       { return "bpd" }
func (LegacyBankAccount) TableName() string    { return "bid" }
func (LegacyLegalDocument) TableName() string  { return "lid" }
func (LegacyStatementFile) TableName() string  { return "bst" }
func (LegacyBalanceSheet) TableName() string   { return "bs" }
func (LegacyFinancialRatio) TableName() string { return "fr" }
func (LegacyFinancialTrend) TableName() string { return "ft" }

// LegacyAutoMigrate migrates the legacy mirror schema
func LegacyAutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&LegacyBorrower{},
		&LegacyBankAccount{},
		&LegacyLegalDocument{},
		&LegacyStatementFile{},
		&LegacyBalanceSheet{},
		&LegacyFinancialRatio{},
		&LegacyFinancialTrend{},
	)
}
