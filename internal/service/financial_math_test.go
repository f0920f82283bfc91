package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/danakita/borrower-onboarding/internal/domain"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestDayCount(t *testing.T) {
	assert.True(t, dayCount(12).Equal(dec(365)))
	assert.True(t, dayCount(6).Equal(dec(180)))
	assert.True(t, dayCount(1).Equal(dec(30)))
}

func TestSafeDivZeroDenominator(t *testing.T) {
	assert.True(t, safeDiv(dec(100), decimal.Zero).IsZero())
	assert.True(t, safeDiv(dec(10), dec(4)).Equal(decimal.NewFromFloat(2.5)))
}

func TestComputeRatios(t *testing.T) {
	detail := domain.FinancialStatementDetail{
		CustomerID:      7,
		YearTo:          1,
		FiscalMonths:    12,
		Sales:           dec(1000),
		COGS:            dec(600),
		GrossProfit:     dec(400),
		Depreciation:    dec(50),
		OperatingProfit: dec(200),
		InterestExpense: dec(20),
		Tax:             dec(30),
		Installment:     dec(80),
	}
	sheet := domain.BalanceSheet{
		CustomerID:         7,
		YearTo:             1,
		AccountsReceivable: dec(100),
		Inventory:          dec(60),
		AccountsPayable:    dec(30),
		CurrentAssets:      dec(300),
		CurrentLiabilities: dec(150),
		TotalLiabilities:   dec(500),
		Equity:             dec(250),
	}

	ratio := computeRatios(detail, sheet)

	assert.Equal(t, uint64(7), ratio.CustomerID)
	assert.True(t, ratio.GPM.Equal(dec(40)), "GPM: %s", ratio.GPM)
	// net profit = 200 - 20 - 30 = 150 -> NPM 15%
	assert.True(t, ratio.NPM.Equal(dec(15)), "NPM: %s", ratio.NPM)
	// ARDOH = 100/1000 * 365 = 36.5
	assert.True(t, ratio.ARDOH.Equal(decimal.NewFromFloat(36.5)), "ARDOH: %s", ratio.ARDOH)
	// INVDOH = 60/600 * 365 = 36.5
	assert.True(t, ratio.INVDOH.Equal(decimal.NewFromFloat(36.5)), "INVDOH: %s", ratio.INVDOH)
	// APDOH = 30/600 * 365 = 18.25
	assert.True(t, ratio.APDOH.Equal(decimal.NewFromFloat(18.25)), "APDOH: %s", ratio.APDOH)
	// cash cycle = 36.5 + 36.5 - 18.25
	assert.True(t, ratio.CashCycle.Equal(decimal.NewFromFloat(54.75)), "CashCycle: %s", ratio.CashCycle)
	assert.True(t, ratio.CashRatio.Equal(dec(2)), "CashRatio: %s", ratio.CashRatio)
	assert.True(t, ratio.EBITDA.Equal(dec(250)), "EBITDA: %s", ratio.EBITDA)
	assert.True(t, ratio.Leverage.Equal(dec(2)), "Leverage: %s", ratio.Leverage)
	// WI needs = 100 + 60 - 30
	assert.True(t, ratio.WorkingInvestmentNeeds.Equal(dec(130)))
	// TIE = 250/20 = 12.5
	assert.True(t, ratio.TIE.Equal(decimal.NewFromFloat(12.5)), "TIE: %s", ratio.TIE)
	// DSCR = 250/(80+20) = 2.5
	assert.True(t, ratio.DSCR.Equal(decimal.NewFromFloat(2.5)), "DSCR: %s", ratio.DSCR)
}

func TestComputeRatiosZeroFigures(t *testing.T) {
	ratio := computeRatios(domain.FinancialStatementDetail{FiscalMonths: 12}, domain.BalanceSheet{})

	assert.True(t, ratio.GPM.IsZero())
	assert.True(t, ratio.TIE.IsZero())
	assert.True(t, ratio.DSCR.IsZero())
	assert.True(t, ratio.CashRatio.IsZero())
}

func TestComputeTrends(t *testing.T) {
	details := []domain.FinancialStatementDetail{
		{YearTo: 1, Sales: dec(1200), GrossProfit: dec(480), OperatingProfit: dec(240)},
		{YearTo: 2, Sales: dec(1000), GrossProfit: dec(400), OperatingProfit: dec(200)},
		{YearTo: 3, Sales: dec(800), GrossProfit: dec(320), OperatingProfit: dec(100)},
	}

	trends := computeTrends(9, details)

	assert.Len(t, trends, 2)

	assert.Equal(t, "1 to 2", trends[0].TrendPeriod)
	assert.True(t, trends[0].SalesGrowth.Equal(dec(20)), "sales growth: %s", trends[0].SalesGrowth)
	assert.True(t, trends[0].GrossProfitGrowth.Equal(dec(20)))
	assert.True(t, trends[0].OperatingProfitGrowth.Equal(dec(20)))

	assert.Equal(t, "2 to 3", trends[1].TrendPeriod)
	assert.True(t, trends[1].SalesGrowth.Equal(dec(25)))
	assert.True(t, trends[1].OperatingProfitGrowth.Equal(dec(100)))
}

func TestComputeTrendsTwoYearsOnly(t *testing.T) {
	details := []domain.FinancialStatementDetail{
		{YearTo: 1, Sales: dec(1100)},
		{YearTo: 2, Sales: dec(1000)},
	}

	trends := computeTrends(9, details)

	assert.Len(t, trends, 1)
	assert.Equal(t, "1 to 2", trends[0].TrendPeriod)
}
