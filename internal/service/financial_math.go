package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/danakita/borrower-onboarding/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// dayCount normalizes the ratio day-base to the span of the fiscal year
// label: a full 12-month year uses 365 days, a short year uses 30 days per
// month.
func dayCount(fiscalMonths int) decimal.Decimal {
	if fiscalMonths == 12 {
		return decimal.NewFromInt(365)
	}
	return decimal.NewFromInt(int64(30 * fiscalMonths))
}

// safeDiv returns a/b, or zero when b is zero. Derived ratios prefer a zero
// cell over a rejected submission when a denominator figure is absent.
func safeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.DivRound(b, 4)
}

// computeRatios derives the per-year ratio set from a statement year and its
// matching balance sheet.
func computeRatios(detail domain.FinancialStatementDetail, sheet domain.BalanceSheet) domain.FinancialRatio {
	days := dayCount(detail.FiscalMonths)

	netProfit := detail.OperatingProfit.Sub(detail.InterestExpense).Sub(detail.Tax)
	ebitda := detail.OperatingProfit.Add(detail.Depreciation)

	ardoh := safeDiv(sheet.AccountsReceivable, detail.Sales).Mul(days)
	invdoh := safeDiv(sheet.Inventory, detail.COGS).Mul(days)
	apdoh := safeDiv(sheet.AccountsPayable, detail.COGS).Mul(days)

	return domain.FinancialRatio{
		CustomerID:             detail.CustomerID,
		YearTo:                 detail.YearTo,
		GPM:                    safeDiv(detail.GrossProfit, detail.Sales).Mul(hundred),
		NPM:                    safeDiv(netProfit, detail.Sales).Mul(hundred),
		ARDOH:                  ardoh,
		INVDOH:                 invdoh,
		APDOH:                  apdoh,
		CashCycle:              ardoh.Add(invdoh).Sub(apdoh),
		CashRatio:              safeDiv(sheet.CurrentAssets, sheet.CurrentLiabilities),
		EBITDA:                 ebitda,
		Leverage:               safeDiv(sheet.TotalLiabilities, sheet.Equity),
		WorkingInvestmentNeeds: sheet.AccountsReceivable.Add(sheet.Inventory).Sub(sheet.AccountsPayable),
		TIE:                    safeDiv(ebitda, detail.InterestExpense),
		DSCR:                   safeDiv(ebitda, detail.Installment.Add(detail.InterestExpense)),
	}
}

// growth is the year-over-year percentage delta from older to recent.
func growth(recent, older decimal.Decimal) decimal.Decimal {
	return safeDiv(recent.Sub(older), older).Mul(hundred)
}

// computeTrends derives the trend rows between adjacent statement years.
// YearTo 1 is the most recent year, so "1 to 2" compares year 1 against
// year 2 and so on.
func computeTrends(customerID uint64, details []domain.FinancialStatementDetail) []domain.FinancialTrend {
	byYear := make(map[int]domain.FinancialStatementDetail, len(details))
	for _, d := range details {
		byYear[d.YearTo] = d
	}

	var trends []domain.FinancialTrend
	for recent := 1; recent <= 2; recent++ {
		older := recent + 1
		r, okRecent := byYear[recent]
		o, okOlder := byYear[older]
		if !okRecent || !okOlder {
			continue
		}
		trends = append(trends, domain.FinancialTrend{
			CustomerID:            customerID,
			TrendPeriod:           fmt.Sprintf("%d to %d", recent, older),
			SalesGrowth:           growth(r.Sales, o.Sales),
			GrossProfitGrowth:     growth(r.GrossProfit, o.GrossProfit),
			OperatingProfitGrowth: growth(r.OperatingProfit, o.OperatingProfit),
		})
	}

	return trends
}
