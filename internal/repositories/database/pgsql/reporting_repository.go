package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/nayeemdev/retail_ledger_app/internal/core/ports/repositories"
)

// reportingRepository aggregates posted journal lines into report views.
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetTrialBalanceData retrieves per-account debit/credit totals as of a date.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, scopeID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.code,
			a.name,
			a.account_type,
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM journal_lines l
		JOIN journals j ON l.journal_id = j.journal_id
		JOIN accounts a ON l.account_code = a.code
		WHERE j.scope_id = $1 AND j.journal_date <= $2
		GROUP BY a.code, a.name, a.account_type
		ORDER BY a.code;
	`

	rows, err := r.Pool.Query(ctx, query, scopeID, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string

		if err := rows.Scan(
			&row.AccountCode,
			&row.AccountName,
			&accountType,
			&row.TotalDebit,
			&row.TotalCredit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}

		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}

	if len(result) == 0 {
		return []domain.TrialBalanceRow{}, nil
	}

	return result, nil
}

// GetProfitAndLossData retrieves income and expense account totals over a
// period. A zero-valued from bound means "since the beginning".
func (r *reportingRepository) GetProfitAndLossData(ctx context.Context, scopeID string, from, to time.Time) ([]domain.AccountTotal, []domain.AccountTotal, error) {
	query := `
		SELECT
			a.account_type,
			a.code,
			a.name,
			COALESCE(SUM(l.debit - l.credit), 0) AS net
		FROM journal_lines l
		JOIN journals j ON l.journal_id = j.journal_id
		JOIN accounts a ON l.account_code = a.code
		WHERE j.scope_id = $1
			AND ($2::timestamptz IS NULL OR j.journal_date >= $2)
			AND j.journal_date <= $3
			AND a.account_type IN ('INCOME', 'EXPENSE')
		GROUP BY a.account_type, a.code, a.name
		ORDER BY a.code;
	`

	rows, err := r.Pool.Query(ctx, query, scopeID, nullableTime(from), to)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying profit and loss data: %w", err)
	}
	defer rows.Close()

	var income []domain.AccountTotal
	var expenses []domain.AccountTotal

	for rows.Next() {
		var accountType string
		var total domain.AccountTotal
		var net decimal.Decimal

		if err := rows.Scan(&accountType, &total.AccountCode, &total.AccountName, &net); err != nil {
			return nil, nil, fmt.Errorf("error scanning profit and loss row: %w", err)
		}

		// Income accounts grow on the credit side, expenses on the debit side.
		// Normalize both to positive-when-growing.
		switch accountType {
		case string(domain.Income):
			total.NetAmount = net.Neg()
			income = append(income, total)
		case string(domain.Expense):
			total.NetAmount = net
			expenses = append(expenses, total)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating profit and loss rows: %w", err)
	}

	if income == nil {
		income = []domain.AccountTotal{}
	}
	if expenses == nil {
		expenses = []domain.AccountTotal{}
	}

	return income, expenses, nil
}

// GetBalanceSheetData retrieves asset, liability and equity totals as of a date.
func (r *reportingRepository) GetBalanceSheetData(ctx context.Context, scopeID string, asOf time.Time) ([]domain.AccountTotal, []domain.AccountTotal, []domain.AccountTotal, error) {
	query := `
		SELECT
			a.account_type,
			a.code,
			a.name,
			COALESCE(SUM(l.debit - l.credit), 0) AS net
		FROM journal_lines l
		JOIN journals j ON l.journal_id = j.journal_id
		JOIN accounts a ON l.account_code = a.code
		WHERE j.scope_id = $1
			AND j.journal_date <= $2
			AND a.account_type IN ('ASSET', 'LIABILITY', 'EQUITY')
		GROUP BY a.account_type, a.code, a.name
		ORDER BY a.code;
	`

	rows, err := r.Pool.Query(ctx, query, scopeID, asOf)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error querying balance sheet data: %w", err)
	}
	defer rows.Close()

	var assets []domain.AccountTotal
	var liabilities []domain.AccountTotal
	var equity []domain.AccountTotal

	for rows.Next() {
		var accountType string
		var total domain.AccountTotal
		var net decimal.Decimal

		if err := rows.Scan(&accountType, &total.AccountCode, &total.AccountName, &net); err != nil {
			return nil, nil, nil, fmt.Errorf("error scanning balance sheet row: %w", err)
		}

		// Assets grow on the debit side; liabilities and equity on the credit
		// side. Normalize to positive-when-growing for display.
		switch accountType {
		case string(domain.Asset):
			total.NetAmount = net
			assets = append(assets, total)
		case string(domain.Liability):
			total.NetAmount = net.Neg()
			liabilities = append(liabilities, total)
		case string(domain.Equity):
			total.NetAmount = net.Neg()
			equity = append(equity, total)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("error iterating balance sheet rows: %w", err)
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

	return assets, liabilities, equity, nil
}
