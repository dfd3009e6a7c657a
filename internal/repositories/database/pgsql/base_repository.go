package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nayeemdev/retail_ledger_app/internal/apperrors"
	portsrepo "github.com/nayeemdev/retail_ledger_app/internal/core/ports/repositories"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// pgxTxManager runs functions inside one database transaction. Every posting
// workflow goes through WithTx so its balance updates, journal writes and
// event links commit or roll back as a unit.
type pgxTxManager struct {
	BaseRepository
}

func newPgxTxManager(pool *pgxpool.Pool) portsrepo.TxManager {
	return &pgxTxManager{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TxManager = (*pgxTxManager)(nil)

// WithTx begins a transaction, runs fn, and commits if fn returned nil.
// Rollback on error is deferred and ignored once the commit succeeds.
func (m *pgxTxManager) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	defer m.Rollback(ctx, tx)

	if err := fn(tx); err != nil {
		return err
	}

	return m.Commit(ctx, tx)
}
