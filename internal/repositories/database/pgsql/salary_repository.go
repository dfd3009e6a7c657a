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

type PgxSalaryRepository struct {
	BaseRepository
}

// newPgxSalaryRepository creates a new repository for salary events.
func newPgxSalaryRepository(pool *pgxpool.Pool) portsrepo.SalaryRepository {
	return &PgxSalaryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SalaryRepository = (*PgxSalaryRepository)(nil)

const salaryColumns = `salary_id, scope_id, staff_name, salary_month, base_amount, allowance, bonus, salary_date, note, channel, bank_id, journal_id, created_at, created_by, last_updated_at, last_updated_by`

func scanSalary(row pgx.Row) (*domain.SalaryEvent, error) {
	var e domain.SalaryEvent
	var channel, bankID, journalID sql.NullString
	err := row.Scan(
		&e.SalaryID,
		&e.ScopeID,
		&e.StaffName,
		&e.SalaryMonth,
		&e.BaseAmount,
		&e.Allowance,
		&e.Bonus,
		&e.Date,
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
	e.Channel = domain.Channel(channel.String)
	e.BankID = bankID.String
	if journalID.Valid {
		e.JournalID = &journalID.String
	}
	return &e, nil
}

func (r *PgxSalaryRepository) InsertInTx(ctx context.Context, tx pgx.Tx, ev domain.SalaryEvent) error {
	query := `
		INSERT INTO salaries (salary_id, scope_id, staff_name, salary_month, base_amount, allowance, bonus, salary_date, note, channel, bank_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), NULLIF($11, ''), $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		ev.SalaryID, ev.ScopeID, ev.StaffName, ev.SalaryMonth, ev.BaseAmount, ev.Allowance, ev.Bonus,
		ev.Date, ev.Note, string(ev.Channel), ev.BankID, ev.CreatedAt, ev.CreatedBy, ev.LastUpdatedAt, ev.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert salary "+ev.SalaryID, err)
	}
	return nil
}

func (r *PgxSalaryRepository) UpdateInTx(ctx context.Context, tx pgx.Tx, ev domain.SalaryEvent) error {
	query := `
		UPDATE salaries
		SET scope_id = $2, staff_name = $3, salary_month = $4, base_amount = $5, allowance = $6, bonus = $7,
		    salary_date = $8, note = $9, channel = NULLIF($10, ''), bank_id = NULLIF($11, ''),
		    last_updated_at = $12, last_updated_by = $13
		WHERE salary_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		ev.SalaryID, ev.ScopeID, ev.StaffName, ev.SalaryMonth, ev.BaseAmount, ev.Allowance, ev.Bonus,
		ev.Date, ev.Note, string(ev.Channel), ev.BankID, ev.LastUpdatedAt, ev.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update salary "+ev.SalaryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSalaryRepository) DeleteInTx(ctx context.Context, tx pgx.Tx, salaryID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM salaries WHERE salary_id = $1;`, salaryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete salary "+salaryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSalaryRepository) SetJournalIDInTx(ctx context.Context, tx pgx.Tx, salaryID string, journalID *string) error {
	tag, err := tx.Exec(ctx, `UPDATE salaries SET journal_id = $2 WHERE salary_id = $1;`, salaryID, journalID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to link journal to salary "+salaryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSalaryRepository) FindByID(ctx context.Context, salaryID string) (*domain.SalaryEvent, error) {
	query := `SELECT ` + salaryColumns + ` FROM salaries WHERE salary_id = $1;`

	ev, err := scanSalary(r.Pool.QueryRow(ctx, query, salaryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find salary "+salaryID, err)
	}
	return ev, nil
}

// List retrieves salary events newest first, optionally filtered by scope and
// date window.
func (r *PgxSalaryRepository) List(ctx context.Context, filter portsrepo.EventFilter) ([]domain.SalaryEvent, error) {
	query := `
		SELECT ` + salaryColumns + `
		FROM salaries
		WHERE ($1 = '' OR scope_id = $1)
		  AND ($2::timestamptz IS NULL OR salary_date >= $2)
		  AND ($3::timestamptz IS NULL OR salary_date <= $3)
		ORDER BY salary_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, filter.ScopeID, nullableTime(filter.From), nullableTime(filter.To))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query salaries", err)
	}
	defer rows.Close()

	events := []domain.SalaryEvent{}
	for rows.Next() {
		ev, err := scanSalary(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan salary row", err)
		}
		events = append(events, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating salary rows", err)
	}

	return events, nil
}
