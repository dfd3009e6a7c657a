package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nayeemdev/retail_ledger_app/internal/apperrors"
	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/nayeemdev/retail_ledger_app/internal/core/ports/repositories"
)

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense events.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepository {
	return &PgxExpenseRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExpenseRepository = (*PgxExpenseRepository)(nil)

const expenseColumns = `expense_id, scope_id, account_code, expense_date, amount, recorded_by, note, channel, bank_id, journal_id, created_at, created_by, last_updated_at, last_updated_by`

func scanExpense(row pgx.Row) (*domain.ExpenseEvent, error) {
	var e domain.ExpenseEvent
	var accountCode, channel, bankID, journalID sql.NullString
	err := row.Scan(
		&e.ExpenseID,
		&e.ScopeID,
		&accountCode,
		&e.Date,
		&e.AmountValue,
		&e.RecordedBy,
		&e.Note,
		&channel,
		&bankID,
		&journalID,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	e.AccountCode = accountCode.String
	e.Channel = domain.Channel(channel.String)
	e.BankID = bankID.String
	if journalID.Valid {
		e.JournalID = &journalID.String
	}
	return &e, nil
}

func (r *PgxExpenseRepository) InsertInTx(ctx context.Context, tx pgx.Tx, ev domain.ExpenseEvent) error {
	query := `
		INSERT INTO expenses (expense_id, scope_id, account_code, expense_date, amount, recorded_by, note, channel, bank_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		ev.ExpenseID, ev.ScopeID, ev.AccountCode, ev.Date, ev.AmountValue, ev.RecordedBy, ev.Note,
		string(ev.Channel), ev.BankID, ev.CreatedAt, ev.CreatedBy, ev.LastUpdatedAt, ev.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert expense "+ev.ExpenseID, err)
	}
	return nil
}

func (r *PgxExpenseRepository) UpdateInTx(ctx context.Context, tx pgx.Tx, ev domain.ExpenseEvent) error {
	query := `
		UPDATE expenses
		SET scope_id = $2, account_code = NULLIF($3, ''), expense_date = $4, amount = $5, recorded_by = $6,
		    note = $7, channel = NULLIF($8, ''), bank_id = NULLIF($9, ''), last_updated_at = $10, last_updated_by = $11
		WHERE expense_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		ev.ExpenseID, ev.ScopeID, ev.AccountCode, ev.Date, ev.AmountValue, ev.RecordedBy, ev.Note,
		string(ev.Channel), ev.BankID, ev.LastUpdatedAt, ev.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update expense "+ev.ExpenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxExpenseRepository) DeleteInTx(ctx context.Context, tx pgx.Tx, expenseID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM expenses WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete expense "+expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxExpenseRepository) SetJournalIDInTx(ctx context.Context, tx pgx.Tx, expenseID string, journalID *string) error {
	tag, err := tx.Exec(ctx, `UPDATE expenses SET journal_id = $2 WHERE expense_id = $1;`, expenseID, journalID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to link journal to expense "+expenseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxExpenseRepository) FindByID(ctx context.Context, expenseID string) (*domain.ExpenseEvent, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`

	ev, err := scanExpense(r.Pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find expense "+expenseID, err)
	}
	return ev, nil
}

// List retrieves expense events newest first, optionally filtered by scope and
// date window.
func (r *PgxExpenseRepository) List(ctx context.Context, filter portsrepo.EventFilter) ([]domain.ExpenseEvent, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE ($1 = '' OR scope_id = $1)
		  AND ($2::timestamptz IS NULL OR expense_date >= $2)
		  AND ($3::timestamptz IS NULL OR expense_date <= $3)
		ORDER BY expense_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, filter.ScopeID, nullableTime(filter.From), nullableTime(filter.To))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query expenses", err)
	}
	defer rows.Close()

	events := []domain.ExpenseEvent{}
	for rows.Next() {
		ev, err := scanExpense(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan expense row", err)
		}
		events = append(events, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating expense rows", err)
	}

	return events, nil
}
