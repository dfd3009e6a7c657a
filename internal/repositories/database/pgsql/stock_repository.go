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

type PgxStockRepository struct {
	BaseRepository
}

// newPgxStockRepository creates a new repository for stock adjustment events.
func newPgxStockRepository(pool *pgxpool.Pool) portsrepo.StockRepository {
	return &PgxStockRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StockRepository = (*PgxStockRepository)(nil)

const stockColumns = `adjustment_id, scope_id, amount, increase, adjustment_date, note, journal_id, created_at, created_by, last_updated_at, last_updated_by`

func scanStockAdjust(row pgx.Row) (*domain.StockAdjustEvent, error) {
	var e domain.StockAdjustEvent
	var journalID sql.NullString
	err := row.Scan(
		&e.AdjustmentID,
		&e.ScopeID,
		&e.AmountValue,
		&e.Increase,
		&e.Date,
		&e.Note,
		&journalID,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if journalID.Valid {
		e.JournalID = &journalID.String
	}
	return &e, nil
}

func (r *PgxStockRepository) InsertInTx(ctx context.Context, tx pgx.Tx, ev domain.StockAdjustEvent) error {
	query := `
		INSERT INTO stock_adjustments (adjustment_id, scope_id, amount, increase, adjustment_date, note, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		ev.AdjustmentID, ev.ScopeID, ev.AmountValue, ev.Increase, ev.Date, ev.Note,
		ev.CreatedAt, ev.CreatedBy, ev.LastUpdatedAt, ev.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert stock adjustment "+ev.AdjustmentID, err)
	}
	return nil
}

func (r *PgxStockRepository) UpdateInTx(ctx context.Context, tx pgx.Tx, ev domain.StockAdjustEvent) error {
	query := `
		UPDATE stock_adjustments
		SET scope_id = $2, amount = $3, increase = $4, adjustment_date = $5, note = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE adjustment_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		ev.AdjustmentID, ev.ScopeID, ev.AmountValue, ev.Increase, ev.Date, ev.Note,
		ev.LastUpdatedAt, ev.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update stock adjustment "+ev.AdjustmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxStockRepository) DeleteInTx(ctx context.Context, tx pgx.Tx, adjustmentID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM stock_adjustments WHERE adjustment_id = $1;`, adjustmentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete stock adjustment "+adjustmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxStockRepository) SetJournalIDInTx(ctx context.Context, tx pgx.Tx, adjustmentID string, journalID *string) error {
	tag, err := tx.Exec(ctx, `UPDATE stock_adjustments SET journal_id = $2 WHERE adjustment_id = $1;`, adjustmentID, journalID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to link journal to stock adjustment "+adjustmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxStockRepository) FindByID(ctx context.Context, adjustmentID string) (*domain.StockAdjustEvent, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_adjustments WHERE adjustment_id = $1;`

	ev, err := scanStockAdjust(r.Pool.QueryRow(ctx, query, adjustmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find stock adjustment "+adjustmentID, err)
	}
	return ev, nil
}

// List retrieves stock adjustments newest first, optionally filtered by scope
// and date window.
func (r *PgxStockRepository) List(ctx context.Context, filter portsrepo.EventFilter) ([]domain.StockAdjustEvent, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_adjustments
		WHERE ($1 = '' OR scope_id = $1)
		  AND ($2::timestamptz IS NULL OR adjustment_date >= $2)
		  AND ($3::timestamptz IS NULL OR adjustment_date <= $3)
		ORDER BY adjustment_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, filter.ScopeID, nullableTime(filter.From), nullableTime(filter.To))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query stock adjustments", err)
	}
	defer rows.Close()

	events := []domain.StockAdjustEvent{}
	for rows.Next() {
		ev, err := scanStockAdjust(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan stock adjustment row", err)
		}
		events = append(events, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating stock adjustment rows", err)
	}

	return events, nil
}
