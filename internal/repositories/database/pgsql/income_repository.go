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

type PgxIncomeRepository struct {
	BaseRepository
}

// newPgxIncomeRepository creates a new repository for income events.
func newPgxIncomeRepository(pool *pgxpool.Pool) portsrepo.IncomeRepository {
	return &PgxIncomeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.IncomeRepository = (*PgxIncomeRepository)(nil)

const incomeColumns = `income_id, scope_id, account_code, income_date, amount, received_by, note, channel, bank_id, journal_id, created_at, created_by, last_updated_at, last_updated_by`

func scanIncome(row pgx.Row) (*domain.IncomeEvent, error) {
	var e domain.IncomeEvent
	var accountCode, channel, bankID sql.NullString
	var journalID sql.NullString
	err := row.Scan(
		&e.IncomeID,
		&e.ScopeID,
		&accountCode,
		&e.Date,
		&e.AmountValue,
		&e.ReceivedBy,
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

func (r *PgxIncomeRepository) InsertInTx(ctx context.Context, tx pgx.Tx, ev domain.IncomeEvent) error {
	query := `
		INSERT INTO incomes (income_id, scope_id, account_code, income_date, amount, received_by, note, channel, bank_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		ev.IncomeID, ev.ScopeID, ev.AccountCode, ev.Date, ev.AmountValue, ev.ReceivedBy, ev.Note,
		string(ev.Channel), ev.BankID, ev.CreatedAt, ev.CreatedBy, ev.LastUpdatedAt, ev.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert income "+ev.IncomeID, err)
	}
	return nil
}

func (r *PgxIncomeRepository) UpdateInTx(ctx context.Context, tx pgx.Tx, ev domain.IncomeEvent) error {
	query := `
		UPDATE incomes
		SET scope_id = $2, account_code = NULLIF($3, ''), income_date = $4, amount = $5, received_by = $6,
		    note = $7, channel = NULLIF($8, ''), bank_id = NULLIF($9, ''), last_updated_at = $10, last_updated_by = $11
		WHERE income_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		ev.IncomeID, ev.ScopeID, ev.AccountCode, ev.Date, ev.AmountValue, ev.ReceivedBy, ev.Note,
		string(ev.Channel), ev.BankID, ev.LastUpdatedAt, ev.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update income "+ev.IncomeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxIncomeRepository) DeleteInTx(ctx context.Context, tx pgx.Tx, incomeID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM incomes WHERE income_id = $1;`, incomeID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete income "+incomeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxIncomeRepository) SetJournalIDInTx(ctx context.Context, tx pgx.Tx, incomeID string, journalID *string) error {
	tag, err := tx.Exec(ctx, `UPDATE incomes SET journal_id = $2 WHERE income_id = $1;`, incomeID, journalID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to link journal to income "+incomeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxIncomeRepository) FindByID(ctx context.Context, incomeID string) (*domain.IncomeEvent, error) {
	query := `SELECT ` + incomeColumns + ` FROM incomes WHERE income_id = $1;`

	ev, err := scanIncome(r.Pool.QueryRow(ctx, query, incomeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find income "+incomeID, err)
	}
	return ev, nil
}

// List retrieves income events newest first, optionally filtered by scope and
// date window.
func (r *PgxIncomeRepository) List(ctx context.Context, filter portsrepo.EventFilter) ([]domain.IncomeEvent, error) {
	query := `
		SELECT ` + incomeColumns + `
		FROM incomes
		WHERE ($1 = '' OR scope_id = $1)
		  AND ($2::timestamptz IS NULL OR income_date >= $2)
		  AND ($3::timestamptz IS NULL OR income_date <= $3)
		ORDER BY income_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, filter.ScopeID, nullableTime(filter.From), nullableTime(filter.To))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query incomes", err)
	}
	defer rows.Close()

	events := []domain.IncomeEvent{}
	for rows.Next() {
		ev, err := scanIncome(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan income row", err)
		}
		events = append(events, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating income rows", err)
	}

	return events, nil
}
