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

type PgxAssetRepository struct {
	BaseRepository
}

// newPgxAssetRepository creates a new repository for asset events.
func newPgxAssetRepository(pool *pgxpool.Pool) portsrepo.AssetRepository {
	return &PgxAssetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AssetRepository = (*PgxAssetRepository)(nil)

const assetColumns = `asset_id, scope_id, name, asset_code, total_price, asset_date, note, channel, bank_id, journal_id, created_at, created_by, last_updated_at, last_updated_by`

func scanAsset(row pgx.Row) (*domain.AssetEvent, error) {
	var e domain.AssetEvent
	var channel, bankID, journalID sql.NullString
	err := row.Scan(
		&e.AssetID,
		&e.ScopeID,
		&e.Name,
		&e.AssetCode,
		&e.TotalPrice,
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

func (r *PgxAssetRepository) InsertInTx(ctx context.Context, tx pgx.Tx, ev domain.AssetEvent) error {
	query := `
		INSERT INTO assets (asset_id, scope_id, name, asset_code, total_price, asset_date, note, channel, bank_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		ev.AssetID, ev.ScopeID, ev.Name, ev.AssetCode, ev.TotalPrice, ev.Date, ev.Note,
		string(ev.Channel), ev.BankID, ev.CreatedAt, ev.CreatedBy, ev.LastUpdatedAt, ev.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert asset "+ev.AssetID, err)
	}
	return nil
}

func (r *PgxAssetRepository) UpdateInTx(ctx context.Context, tx pgx.Tx, ev domain.AssetEvent) error {
	query := `
		UPDATE assets
		SET scope_id = $2, name = $3, asset_code = $4, total_price = $5, asset_date = $6, note = $7,
		    channel = NULLIF($8, ''), bank_id = NULLIF($9, ''), last_updated_at = $10, last_updated_by = $11
		WHERE asset_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		ev.AssetID, ev.ScopeID, ev.Name, ev.AssetCode, ev.TotalPrice, ev.Date, ev.Note,
		string(ev.Channel), ev.BankID, ev.LastUpdatedAt, ev.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update asset "+ev.AssetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAssetRepository) DeleteInTx(ctx context.Context, tx pgx.Tx, assetID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM assets WHERE asset_id = $1;`, assetID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete asset "+assetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAssetRepository) SetJournalIDInTx(ctx context.Context, tx pgx.Tx, assetID string, journalID *string) error {
	tag, err := tx.Exec(ctx, `UPDATE assets SET journal_id = $2 WHERE asset_id = $1;`, assetID, journalID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to link journal to asset "+assetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAssetRepository) FindByID(ctx context.Context, assetID string) (*domain.AssetEvent, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE asset_id = $1;`

	ev, err := scanAsset(r.Pool.QueryRow(ctx, query, assetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find asset "+assetID, err)
	}
	return ev, nil
}

// List retrieves asset events newest first, optionally filtered by scope and
// date window.
func (r *PgxAssetRepository) List(ctx context.Context, filter portsrepo.EventFilter) ([]domain.AssetEvent, error) {
	query := `
		SELECT ` + assetColumns + `
		FROM assets
		WHERE ($1 = '' OR scope_id = $1)
		  AND ($2::timestamptz IS NULL OR asset_date >= $2)
		  AND ($3::timestamptz IS NULL OR asset_date <= $3)
		ORDER BY asset_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, filter.ScopeID, nullableTime(filter.From), nullableTime(filter.To))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query assets", err)
	}
	defer rows.Close()

	events := []domain.AssetEvent{}
	for rows.Next() {
		ev, err := scanAsset(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan asset row", err)
		}
		events = append(events, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating asset rows", err)
	}

	return events, nil
}
