package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/nayeemdev/retail_ledger_app/internal/apperrors"
	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/nayeemdev/retail_ledger_app/internal/core/ports/repositories"
)

type PgxBalanceRepository struct {
	BaseRepository
}

// newPgxBalanceRepository creates a new repository for running balance rows.
func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepository {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceRepository = (*PgxBalanceRepository)(nil)

const balanceColumns = `balance_id, scope_id, channel, bank_id, opening_balance, current_balance, created_at, created_by, last_updated_at, last_updated_by`

func scanBalanceAccount(row pgx.Row) (*domain.BalanceAccount, error) {
	var b domain.BalanceAccount
	var bankID sql.NullString
	err := row.Scan(
		&b.BalanceID,
		&b.ScopeID,
		&b.Channel,
		&bankID,
		&b.OpeningBalance,
		&b.CurrentBalance,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if bankID.Valid {
		b.BankID = bankID.String
	}
	return &b, nil
}

// CreateBalanceAccount inserts a new balance row. The partial unique indexes
// on (scope_id, channel) and (scope_id, channel, bank_id) enforce one row per
// cash scope and per bank identity.
func (r *PgxBalanceRepository) CreateBalanceAccount(ctx context.Context, acct domain.BalanceAccount) error {
	query := `
		INSERT INTO balance_accounts (balance_id, scope_id, channel, bank_id, opening_balance, current_balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		acct.BalanceID,
		acct.ScopeID,
		acct.Channel,
		acct.BankID,
		acct.OpeningBalance,
		acct.CurrentBalance,
		acct.CreatedAt,
		acct.CreatedBy,
		acct.LastUpdatedAt,
		acct.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert balance account for scope "+acct.ScopeID, err)
	}
	return nil
}

// FindForUpdateInTx reads a balance row under FOR UPDATE so concurrent
// adjustments to the same row serialize until the transaction commits.
func (r *PgxBalanceRepository) FindForUpdateInTx(ctx context.Context, tx pgx.Tx, scopeID string, channel domain.Channel, bankID string) (*domain.BalanceAccount, error) {
	query := `
		SELECT ` + balanceColumns + `
		FROM balance_accounts
		WHERE scope_id = $1 AND channel = $2 AND bank_id IS NOT DISTINCT FROM NULLIF($3, '')
		FOR UPDATE;
	`
	acct, err := scanBalanceAccount(tx.QueryRow(ctx, query, scopeID, channel, bankID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock balance account for scope "+scopeID, err)
	}
	return acct, nil
}

// ApplyDeltaInTx adds a signed delta to current_balance and returns the new
// value. Callers must hold the row lock from FindForUpdateInTx.
func (r *PgxBalanceRepository) ApplyDeltaInTx(ctx context.Context, tx pgx.Tx, balanceID string, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error) {
	query := `
		UPDATE balance_accounts
		SET current_balance = current_balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE balance_id = $1
		RETURNING current_balance;
	`
	var newBalance decimal.Decimal
	err := tx.QueryRow(ctx, query, balanceID, delta, now, userID).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, apperrors.NewAppError(500, "failed to apply delta to balance "+balanceID, err)
	}
	return newBalance, nil
}

// FindCashAccount retrieves the single CASH balance row of a business unit.
func (r *PgxBalanceRepository) FindCashAccount(ctx context.Context, scopeID string) (*domain.BalanceAccount, error) {
	query := `SELECT ` + balanceColumns + ` FROM balance_accounts WHERE scope_id = $1 AND channel = 'CASH';`

	acct, err := scanBalanceAccount(r.Pool.QueryRow(ctx, query, scopeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find cash account for scope "+scopeID, err)
	}
	return acct, nil
}

// ListBankAccounts retrieves all BANK balance rows of a business unit.
func (r *PgxBalanceRepository) ListBankAccounts(ctx context.Context, scopeID string) ([]domain.BalanceAccount, error) {
	query := `SELECT ` + balanceColumns + ` FROM balance_accounts WHERE scope_id = $1 AND channel = 'BANK' ORDER BY bank_id;`

	rows, err := r.Pool.Query(ctx, query, scopeID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bank accounts for scope "+scopeID, err)
	}
	defer rows.Close()

	accounts := []domain.BalanceAccount{}
	for rows.Next() {
		acct, err := scanBalanceAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan balance row for scope "+scopeID, err)
		}
		accounts = append(accounts, *acct)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating balance rows for scope "+scopeID, err)
	}

	return accounts, nil
}
