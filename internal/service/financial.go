package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/danakita/borrower-onboarding/internal/domain"
	"github.com/danakita/borrower-onboarding/internal/dto"
	"github.com/danakita/borrower-onboarding/internal/dualwrite"
	"github.com/danakita/borrower-onboarding/internal/i18n"
	"github.com/danakita/borrower-onboarding/internal/legacy"
	"github.com/danakita/borrower-onboarding/internal/model"
	"github.com/danakita/borrower-onboarding/internal/repository"
	"github.com/danakita/borrower-onboarding/internal/validation"
	"github.com/danakita/borrower-onboarding/pkg/common"
)

type financialService struct {
	customerRepository  repository.CustomerRepository
	financialRepository repository.FinancialRepository
	coordinator         *dualwrite.Coordinator
	syncRepository      *legacy.SyncRepository
	windowYears         int

	tracer  trace.Tracer
	log     *zap.Logger
	metrics svcMetrics
}

func NewFinancialService(
	customerRepository repository.CustomerRepository,
	financialRepository repository.FinancialRepository,
	coordinator *dualwrite.Coordinator,
	syncRepository *legacy.SyncRepository,
	windowYears int,
	meter metric.Meter,
	tracer trace.Tracer,
	log *zap.Logger,
) FinancialServices {
	return &financialService{
		customerRepository:  customerRepository,
		financialRepository: financialRepository,
		coordinator:         coordinator,
		syncRepository:      syncRepository,
		windowYears:         windowYears,
		tracer:              tracer,
		log:                 log,
		metrics:             newSvcMetrics(meter),
	}
}

func (s *financialService) validateStatement(req dto.FinancialInformation) *validation.FieldError {
	if req.StatementFileType == nil {
		return &validation.FieldError{Field: "Statement FileType", Code: i18n.CodeFieldBlank, Args: []any{"Statement FileType"}}
	}
	if fieldErr := validation.StatementFileType(*req.StatementFileType); fieldErr != nil {
		return fieldErr
	}

	date, err := time.Parse("2006-01-02", req.StatementFileDate)
	if err != nil {
		return validation.Invalid("Statement Date")
	}
	if fieldErr := validation.StatementDate(date, time.Now(), s.windowYears); fieldErr != nil {
		return fieldErr
	}

	return validation.FileExtension("statementFile", req.StatementFile)
}

func (s *financialService) commitStatementFile(ctx context.Context, customerID uint64, entity *domain.StatementFile) (*domain.StatementFile, error) {
	prevMirror, err := s.syncRepository.FindStatementFiles(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var savedID uint64
	err = s.coordinator.Commit(ctx, customerID,
		func(newTx, legacyTx *gorm.DB) error {
			row := model.StatementFileFromEntity(entity)
			if row.ID != 0 {
				if txErr := newTx.Model(&model.StatementFile{}).
					Where("id = ? AND customer_id = ?", row.ID, customerID).
					Updates(map[string]any{
						"statement_file_type": row.StatementFileType,
						"statement_file_date": row.StatementFileDate,
						"statement_file_url":  row.StatementFileURL,
					}).Error; txErr != nil {
					return txErr
				}
			} else {
				if txErr := newTx.Create(&row).Error; txErr != nil {
					return txErr
				}
			}
			savedID = row.ID

			return s.syncRepository.UpsertStatementFile(legacyTx, &model.LegacyStatementFile{
				MigrationID: customerID,
				NewCoreID:   row.ID,
				FileType:    row.StatementFileType,
				FileDate:    row.StatementFileDate,
				FileURL:     row.StatementFileURL,
			})
		},
		func(legacyTx *gorm.DB) error {
			if txErr := legacyTx.Where("bst_migration_id = ?", customerID).
				Delete(&model.LegacyStatementFile{}).Error; txErr != nil {
				return txErr
			}
			if len(prevMirror) == 0 {
				return nil
			}
			restore := make([]model.LegacyStatementFile, len(prevMirror))
			copy(restore, prevMirror)
			return legacyTx.Create(&restore).Error
		},
	)
	if err != nil {
		return nil, err
	}

	return s.financialRepository.FindStatementFileByID(ctx, savedID)
}

// Add implements FinancialServices.
func (s *financialService) Add(ctx context.Context, customerID uint64, req dto.FinancialInformation) (*domain.StatementFile, error) {
	ctx, span := s.tracer.Start(ctx, "service.AddFinancialInformation")
	defer span.End()

	done := s.metrics.begin(ctx, "financial_add")
	var err error
	defer func() { done(err) }()

	span.SetAttributes(attribute.Int64("customer.id", int64(customerID)))

	if _, err = requireEditable(ctx, s.customerRepository, customerID); err != nil {
		span.SetStatus(codes.Error, "Mutation not permitted")
		return nil, err
	}

	if fieldErr := s.validateStatement(req); fieldErr != nil {
		span.SetStatus(codes.Error, "Statement rejected")
		err = fieldErr
		return nil, err
	}

	saved, err := s.commitStatementFile(ctx, customerID, dto.FinancialInformationToEntity(req, customerID))
	if err != nil {
		span.SetStatus(codes.Error, "Dual-write failed")
		span.RecordError(err)

		s.log.Error("Failed to add financial information",
			zap.Uint64("customer_id", customerID),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		return nil, err
	}

	span.SetStatus(codes.Ok, "Financial information added")

	return saved, nil
}

// Update implements FinancialServices.
func (s *financialService) Update(ctx context.Context, customerID uint64, statementFileID uint64, req dto.FinancialInformation) (*domain.StatementFile, error) {
	ctx, span := s.tracer.Start(ctx, "service.UpdateFinancialInformation")
	defer span.End()

	done := s.metrics.begin(ctx, "financial_update")
	var err error
	defer func() { done(err) }()

	span.SetAttributes(
		attribute.Int64("customer.id", int64(customerID)),
		attribute.Int64("statement_file.id", int64(statementFileID)),
	)

	if _, err = requireEditable(ctx, s.customerRepository, customerID); err != nil {
		span.SetStatus(codes.Error, "Mutation not permitted")
		return nil, err
	}

	existing, err := s.financialRepository.FindStatementFileByID(ctx, statementFileID)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.CustomerID != customerID {
		span.SetStatus(codes.Error, "Statement file not owned by caller")
		err = common.ErrRecordNotOwned
		return nil, err
	}

	if fieldErr := s.validateStatement(req); fieldErr != nil {
		span.SetStatus(codes.Error, "Statement rejected")
		err = fieldErr
		return nil, err
	}

	entity := dto.FinancialInformationToEntity(req, customerID)
	entity.ID = statementFileID

	saved, err := s.commitStatementFile(ctx, customerID, entity)
	if err != nil {
		span.SetStatus(codes.Error, "Dual-write failed")
		span.RecordError(err)
		return nil, err
	}

	span.SetStatus(codes.Ok, "Financial information updated")

	return saved, nil
}

// SaveInstitutional implements FinancialServices. The backoffice enters the
// per-year statement and balance figures; ratios and trends are derived here
// and dual-written together with the inputs.
func (s *financialService) SaveInstitutional(ctx context.Context, customerID uint64, req dto.InstitutionalFinancialSave) error {
	ctx, span := s.tracer.Start(ctx, "service.SaveInstitutionalFinancial")
	defer span.End()

	done := s.metrics.begin(ctx, "financial_institutional_save")
	var err error
	defer func() { done(err) }()

	span.SetAttributes(attribute.Int64("customer.id", int64(customerID)))

	customer, err := s.customerRepository.FindByID(ctx, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		err = common.ErrCustomerNotFound
		return err
	}

	details := make([]domain.FinancialStatementDetail, len(req.FinancialStatement))
	for i, item := range req.FinancialStatement {
		details[i] = dto.FinancialStatementYearToEntity(item, customerID)
	}
	sheets := make([]domain.BalanceSheet, len(req.BalanceSheet))
	sheetByYear := make(map[int]domain.BalanceSheet, len(req.BalanceSheet))
	for i, item := range req.BalanceSheet {
		sheets[i] = dto.BalanceSheetYearToEntity(item, customerID)
		sheetByYear[item.YearTo] = sheets[i]
	}

	var ratios []domain.FinancialRatio
	for _, detail := range details {
		sheet, ok := sheetByYear[detail.YearTo]
		if !ok {
			err = validation.Invalid("balanceSheet")
			return err
		}
		ratios = append(ratios, computeRatios(detail, sheet))
	}
	trends := computeTrends(customerID, details)

	prevSheets, err := s.syncRepository.FindBalanceSheets(ctx, customerID)
	if err != nil {
		return err
	}
	prevRatios, err := s.syncRepository.FindRatios(ctx, customerID)
	if err != nil {
		return err
	}
	prevTrends, err := s.syncRepository.FindTrends(ctx, customerID)
	if err != nil {
		return err
	}

	err = s.coordinator.Commit(ctx, customerID,
		func(newTx, legacyTx *gorm.DB) error {
			for _, detail := range details {
				row := model.FinancialStatementDetailFromEntity(&detail)
				if txErr := newTx.Clauses(clause.OnConflict{
					Columns: []clause.Column{{Name: "customer_id"}, {Name: "year_to"}},
					DoUpdates: clause.AssignmentColumns([]string{
						"fiscal_year_label", "fiscal_months", "sales", "cogs", "gross_profit",
						"sga", "depreciation", "operating_profit", "interest_expense", "tax", "installment",
					}),
				}).Create(&row).Error; txErr != nil {
					return txErr
				}
			}
			for _, sheet := range sheets {
				row := model.BalanceSheetFromEntity(&sheet)
				if txErr := newTx.Clauses(clause.OnConflict{
					Columns: []clause.Column{{Name: "customer_id"}, {Name: "year_to"}},
					DoUpdates: clause.AssignmentColumns([]string{
						"accounts_receivable", "inventory", "accounts_payable", "bank_debt",
						"current_assets", "current_liabilities", "total_liabilities", "equity",
					}),
				}).Create(&row).Error; txErr != nil {
					return txErr
				}
			}

			// Derived rows are replaced wholesale; stale years must not
			// survive a recompute.
			if txErr := newTx.Where("customer_id = ?", customerID).Delete(&model.FinancialRatio{}).Error; txErr != nil {
				return txErr
			}
			if txErr := newTx.Where("customer_id = ?", customerID).Delete(&model.FinancialTrend{}).Error; txErr != nil {
				return txErr
			}
			for _, ratio := range ratios {
				row := model.FinancialRatioFromEntity(&ratio)
				if txErr := newTx.Create(&row).Error; txErr != nil {
					return txErr
				}
			}
			for _, trend := range trends {
				row := model.FinancialTrendFromEntity(&trend)
				if txErr := newTx.Create(&row).Error; txErr != nil {
					return txErr
				}
			}

			mirrorSheets := make([]model.LegacyBalanceSheet, len(sheets))
			for i, sheet := range sheets {
				mirrorSheets[i] = model.LegacyBalanceSheet{
					MigrationID:        customerID,
					YearTo:             sheet.YearTo,
					AccountsReceivable: sheet.AccountsReceivable,
					Inventory:          sheet.Inventory,
					AccountsPayable:    sheet.AccountsPayable,
					BankDebt:           sheet.BankDebt,
					CurrentAssets:      sheet.CurrentAssets,
					CurrentLiabilities: sheet.CurrentLiabilities,
					TotalLiabilities:   sheet.TotalLiabilities,
					Equity:             sheet.Equity,
				}
			}
			mirrorRatios := make([]model.LegacyFinancialRatio, len(ratios))
			for i, ratio := range ratios {
				mirrorRatios[i] = model.LegacyFinancialRatio{
					MigrationID: customerID,
					YearTo:      ratio.YearTo,
					GPM:         ratio.GPM,
					NPM:         ratio.NPM,
					ARDOH:       ratio.ARDOH,
					INVDOH:      ratio.INVDOH,
					APDOH:       ratio.APDOH,
					CashCycle:   ratio.CashCycle,
					CashRatio:   ratio.CashRatio,
					EBITDA:      ratio.EBITDA,
					Leverage:    ratio.Leverage,
					WINeeds:     ratio.WorkingInvestmentNeeds,
					TIE:         ratio.TIE,
					DSCR:        ratio.DSCR,
				}
			}
			mirrorTrends := make([]model.LegacyFinancialTrend, len(trends))
			for i, trend := range trends {
				mirrorTrends[i] = model.LegacyFinancialTrend{
					MigrationID:     customerID,
					TrendPeriod:     trend.TrendPeriod,
					SalesGrowth:     trend.SalesGrowth,
					GrossGrowth:     trend.GrossProfitGrowth,
					OperatingGrowth: trend.OperatingProfitGrowth,
				}
			}

			return s.syncRepository.ReplaceFinancials(legacyTx, customerID, mirrorSheets, mirrorRatios, mirrorTrends)
		},
		func(legacyTx *gorm.DB) error {
			restoreSheets := make([]model.LegacyBalanceSheet, len(prevSheets))
			copy(restoreSheets, prevSheets)
			restoreRatios := make([]model.LegacyFinancialRatio, len(prevRatios))
			copy(restoreRatios, prevRatios)
			restoreTrends := make([]model.LegacyFinancialTrend, len(prevTrends))
			copy(restoreTrends, prevTrends)
			return s.syncRepository.ReplaceFinancials(legacyTx, customerID, restoreSheets, restoreRatios, restoreTrends)
		},
	)
	if err != nil {
		span.SetStatus(codes.Error, "Dual-write failed")
		span.RecordError(err)

		s.log.Error("Failed to save institutional financials",
			zap.Uint64("customer_id", customerID),
			zap.String("trace_id", span.SpanContext().TraceID().String()),
			zap.Error(err),
		)

		return err
	}

	s.log.Info("Institutional financials saved",
		zap.Uint64("customer_id", customerID),
		zap.Int("years", len(details)),
		zap.Int("trends", len(trends)),
		zap.String("trace_id", span.SpanContext().TraceID().String()),
	)

	span.SetStatus(codes.Ok, "Institutional financials saved")

	return nil
}
