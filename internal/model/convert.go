package model

import (
	"github.com/danakita/borrower-onboarding/internal/domain"
)

func CustomerFromEntity(data *domain.Customer) Customer {
	return Customer{
		ID:                 data.ID,
		Username:           data.Username,
		Email:              data.Email,
		EmailVerified:      data.EmailVerified,
		Password:           data.Password,
		Role:               string(data.Role),
		UserType:           UserType(data.UserType),
		RegistrationStatus: RegistrationStatus(data.RegistrationStatus),
		FillFinishAt:       data.FillFinishAt,
	}
}

func CustomerToEntity(data Customer) *domain.Customer {
	return &domain.Customer{
		ID:                 data.ID,
		Username:           data.Username,
		Email:              data.Email,
		EmailVerified:      data.EmailVerified,
		Password:           data.Password,
		Role:               domain.Role(data.Role),
		UserType:           domain.UserType(data.UserType),
		RegistrationStatus: domain.RegistrationStatus(data.RegistrationStatus),
		FillFinishAt:       data.FillFinishAt,
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
}

func BankInformationFromEntity(data *domain.BankInformation) BankInformation {
	return BankInformation{
		ID:                data.ID,
		CustomerID:        data.CustomerID,
		MasterBankID:      data.MasterBankID,
		AccountNumber:     data.AccountNumber,
		AccountHolderName: data.AccountHolderName,
		CoverFileURL:      data.CoverFileURL,
		UseAsDisbursement: data.UseAsDisbursement,
	}
}

func BankInformationToEntity(data BankInformation) *domain.BankInformation {
	return &domain.BankInformation{
		ID:                data.ID,
		CustomerID:        data.CustomerID,
		MasterBankID:      data.MasterBankID,
		AccountNumber:     data.AccountNumber,
		AccountHolderName: data.AccountHolderName,
		CoverFileURL:      data.CoverFileURL,
		UseAsDisbursement: data.UseAsDisbursement,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

func BankInformationsToEntity(data []BankInformation) []domain.BankInformation {
	responses := make([]domain.BankInformation, len(data))
	for i, b := range data {
		responses[i] = *BankInformationToEntity(b)
	}

	return responses
}

func BusinessProfileFromEntity(data *domain.BusinessProfile) BusinessProfile {
	return BusinessProfile{
		CustomerID:      data.CustomerID,
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

func BusinessProfileToEntity(data BusinessProfile) *domain.BusinessProfile {
	return &domain.BusinessProfile{
		CustomerID:      data.CustomerID,
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
		UpdatedAt:       data.UpdatedAt,
	}
}

func LegalInformationFromEntity(data *domain.LegalInformation) LegalInformation {
	return LegalInformation{
		ID:                  data.ID,
		CustomerID:          data.CustomerID,
		DocumentTypeID:      uint(data.DocumentTypeID),
		DocumentNumber:      data.DocumentNumber,
		DocumentFileURL:     data.DocumentFileURL,
		DocumentExpiredDate: data.DocumentExpiredDate,
	}
}

func LegalInformationToEntity(data LegalInformation) *domain.LegalInformation {
	return &domain.LegalInformation{
		ID:                  data.ID,
		CustomerID:          data.CustomerID,
		DocumentTypeID:      domain.DocumentTypeID(data.DocumentTypeID),
		DocumentNumber:      data.DocumentNumber,
		DocumentFileURL:     data.DocumentFileURL,
		DocumentExpiredDate: data.DocumentExpiredDate,
		UpdatedAt:           data.UpdatedAt,
	}
}

func LegalInformationsToEntity(data []LegalInformation) []domain.LegalInformation {
	responses := make([]domain.LegalInformation, len(data))
	for i, l := range data {
		responses[i] = *LegalInformationToEntity(l)
	}

	return responses
}

func StatementFileFromEntity(data *domain.StatementFile) StatementFile {
	return StatementFile{
		ID:                data.ID,
		CustomerID:        data.CustomerID,
		StatementFileType: int(data.StatementFileType),
		StatementFileDate: data.StatementFileDate,
		StatementFileURL:  data.StatementFileURL,
	}
}

func StatementFileToEntity(data StatementFile) *domain.StatementFile {
	return &domain.StatementFile{
		ID:                data.ID,
		CustomerID:        data.CustomerID,
		StatementFileType: domain.StatementFileType(data.StatementFileType),
		StatementFileDate: data.StatementFileDate,
		StatementFileURL:  data.StatementFileURL,
		UpdatedAt:         data.UpdatedAt,
	}
}

func StatementFilesToEntity(data []StatementFile) []domain.StatementFile {
	responses := make([]domain.StatementFile, len(data))
	for i, s := range data {
		responses[i] = *StatementFileToEntity(s)
	}

	return responses
}

func FinancialStatementDetailFromEntity(data *domain.FinancialStatementDetail) FinancialStatementDetail {
	return FinancialStatementDetail{
		ID:              data.ID,
		CustomerID:      data.CustomerID,
		YearTo:          data.YearTo,
		FiscalYearLabel: data.FiscalYearLabel,
		FiscalMonths:    data.FiscalMonths,
		Sales:           data.Sales,
		COGS:            data.COGS,
		GrossProfit:     data.GrossProfit,
		SGA:             data.SGA,
		Depreciation:    data.Depreciation,
		OperatingProfit: data.OperatingProfit,
		InterestExpense: data.InterestExpense,
		Tax:             data.Tax,
		Installment:     data.Installment,
	}
}

func FinancialStatementDetailToEntity(data FinancialStatementDetail) *domain.FinancialStatementDetail {
	return &domain.FinancialStatementDetail{
		ID:              data.ID,
		CustomerID:      data.CustomerID,
		YearTo:          data.YearTo,
		FiscalYearLabel: data.FiscalYearLabel,
		FiscalMonths:    data.FiscalMonths,
		Sales:           data.Sales,
		COGS:            data.COGS,
		GrossProfit:     data.GrossProfit,
		SGA:             data.SGA,
		Depreciation:    data.Depreciation,
		OperatingProfit: data.OperatingProfit,
		InterestExpense: data.InterestExpense,
		Tax:             data.Tax,
		Installment:     data.Installment,
	}
}

func FinancialStatementDetailsToEntity(data []FinancialStatementDetail) []domain.FinancialStatementDetail {
	responses := make([]domain.FinancialStatementDetail, len(data))
	for i, d := range data {
		responses[i] = *FinancialStatementDetailToEntity(d)
	}

	return responses
}

func BalanceSheetFromEntity(data *domain.BalanceSheet) BalanceSheet {
	return BalanceSheet{
		ID:                 data.ID,
		CustomerID:         data.CustomerID,
		YearTo:             data.YearTo,
		AccountsReceivable: data.AccountsReceivable,
		Inventory:          data.Inventory,
		AccountsPayable:    data.AccountsPayable,
		BankDebt:           data.BankDebt,
		CurrentAssets:      data.CurrentAssets,
		CurrentLiabilities: data.CurrentLiabilities,
		TotalLiabilities:   data.TotalLiabilities,
		Equity:             data.Equity,
	}
}

func BalanceSheetToEntity(data BalanceSheet) *domain.BalanceSheet {
	return &domain.BalanceSheet{
		ID:                 data.ID,
		CustomerID:         data.CustomerID,
		YearTo:             data.YearTo,
		AccountsReceivable: data.AccountsReceivable,
		Inventory:          data.Inventory,
		AccountsPayable:    data.AccountsPayable,
		BankDebt:           data.BankDebt,
		CurrentAssets:      data.CurrentAssets,
		CurrentLiabilities: data.CurrentLiabilities,
		TotalLiabilities:   data.TotalLiabilities,
		Equity:             data.Equity,
	}
}

func FinancialRatioFromEntity(data *domain.FinancialRatio) FinancialRatio {
	return FinancialRatio{
		CustomerID:             data.CustomerID,
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

func FinancialRatioToEntity(data FinancialRatio) *domain.FinancialRatio {
	return &domain.FinancialRatio{
		CustomerID:             data.CustomerID,
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

func FinancialTrendFromEntity(data *domain.FinancialTrend) FinancialTrend {
	return FinancialTrend{
		CustomerID:            data.CustomerID,
		TrendPeriod:           data.TrendPeriod,
		SalesGrowth:           data.SalesGrowth,
		GrossProfitGrowth:     data.GrossProfitGrowth,
		OperatingProfitGrowth: data.OperatingProfitGrowth,
	}
}

func FinancialTrendToEntity(data FinancialTrend) *domain.FinancialTrend {
	return &domain.FinancialTrend{
		CustomerID:            data.CustomerID,
		TrendPeriod:           data.TrendPeriod,
		SalesGrowth:           data.SalesGrowth,
		GrossProfitGrowth:     data.GrossProfitGrowth,
		OperatingProfitGrowth: data.OperatingProfitGrowth,
	}
}

func PersonalProfileFromEntity(data *domain.PersonalProfile) PersonalProfile {
	return PersonalProfile{
		CustomerID:    data.CustomerID,
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

func PersonalProfileToEntity(data PersonalProfile) *domain.PersonalProfile {
	return &domain.PersonalProfile{
		CustomerID:    data.CustomerID,
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
		UpdatedAt:     data.UpdatedAt,
	}
}
