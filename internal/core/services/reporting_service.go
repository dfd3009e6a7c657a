package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/nayeemdev/retail_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/nayeemdev/retail_ledger_app/internal/core/ports/services"
	"github.com/nayeemdev/retail_ledger_app/internal/middleware"
)

// reportingService builds read-only report views over posted journal lines.
// Empty data yields zero totals; a balance-sheet mismatch is reported as a
// flag rather than an error so the caller can still see the numbers.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance lists per-account debit and credit totals as of a date.
func (s *reportingService) TrialBalance(ctx context.Context, scopeID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, scopeID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to build trial balance: %w", err)
	}
	if rows == nil {
		rows = []domain.TrialBalanceRow{}
	}
	return rows, nil
}

func sumTotals(totals []domain.AccountTotal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.NetAmount)
	}
	return sum
}

// ProfitAndLoss aggregates income and expense accounts over a period.
func (s *reportingService) ProfitAndLoss(ctx context.Context, scopeID string, from, to time.Time) (*domain.PAndLReport, error) {
	income, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, scopeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to build profit and loss: %w", err)
	}
	if income == nil {
		income = []domain.AccountTotal{}
	}
	if expenses == nil {
		expenses = []domain.AccountTotal{}
	}

	report := &domain.PAndLReport{
		Income:       income,
		Expenses:     expenses,
		TotalIncome:  sumTotals(income),
		TotalExpense: sumTotals(expenses),
	}
	report.NetProfit = report.TotalIncome.Sub(report.TotalExpense)
	return report, nil
}

// BalanceSheet aggregates asset, liability and equity accounts as of a date.
// Earnings to date are folded into equity as a synthetic line so the two sides
// are comparable; Balanced reports whether they actually reconcile.
func (s *reportingService) BalanceSheet(ctx context.Context, scopeID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assets, liabilities, equity, err := s.reportingRepo.GetBalanceSheetData(ctx, scopeID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to build balance sheet: %w", err)
	}
	if assets == nil {
		assets = []domain.AccountTotal{}
	}
	if liabilities == nil {
		liabilities = []domain.AccountTotal{}
	}
	if equity == nil {
		equity = []domain.AccountTotal{}
	}

	income, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, scopeID, time.Time{}, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to compute earnings for balance sheet: %w", err)
	}
	earnings := sumTotals(income).Sub(sumTotals(expenses))
	if !earnings.IsZero() {
		equity = append(equity, domain.AccountTotal{
			AccountCode: "",
			AccountName: "Current Earnings",
			NetAmount:   earnings,
		})
	}

	report := &domain.BalanceSheetReport{
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      sumTotals(assets),
		TotalLiabilities: sumTotals(liabilities),
		TotalEquity:      sumTotals(equity),
	}
	report.Balanced = report.TotalAssets.Equal(report.TotalLiabilities.Add(report.TotalEquity))

	if !report.Balanced {
		logger.Warn("Balance sheet does not reconcile",
			slog.String("scope_id", scopeID),
			slog.String("total_assets", report.TotalAssets.String()),
			slog.String("total_liabilities", report.TotalLiabilities.String()),
			slog.String("total_equity", report.TotalEquity.String()))
	}

	return report, nil
}
