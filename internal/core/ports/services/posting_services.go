package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
)

// PostingOrchestrator turns a source event into its balance adjustments and
// journal posting, and reverses that effect on update/delete. Both operations
// are tx-scoped: the calling event service owns the enclosing transaction so
// that the event row, balance rows and journal commit together.
type PostingOrchestrator interface {
	// ApplyCreateInTx adjusts balances, posts the journal for the event and
	// returns the new journal ID for linking.
	ApplyCreateInTx(ctx context.Context, tx pgx.Tx, ev domain.PostingSource, userID string) (string, error)
	// ReverseInTx undoes the event's balance effect and retracts its journal.
	ReverseInTx(ctx context.Context, tx pgx.Tx, ev domain.PostingSource, userID string) error
}
