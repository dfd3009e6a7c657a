package services

import (
	"context"
	"time"

	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
)

// ReportingSvcFacade produces read-only report views over posted journal
// lines and balance snapshots. Reports tolerate empty data and return zero
// totals; a reconciliation mismatch surfaces as a flag, never an error.
type ReportingSvcFacade interface {
	TrialBalance(ctx context.Context, scopeID string, asOf time.Time) ([]domain.TrialBalanceRow, error)
	ProfitAndLoss(ctx context.Context, scopeID string, from, to time.Time) (*domain.PAndLReport, error)
	BalanceSheet(ctx context.Context, scopeID string, asOf time.Time) (*domain.BalanceSheetReport, error)
}
