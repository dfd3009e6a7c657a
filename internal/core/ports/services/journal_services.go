package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
	"github.com/nayeemdev/retail_ledger_app/internal/dto"
)

// JournalSvcFacade is the journal engine. PostInTx and RetractInTx are
// tx-scoped and called by the posting orchestrator; the read operations serve
// the HTTP surface.
type JournalSvcFacade interface {
	PostInTx(ctx context.Context, tx pgx.Tx, draft dto.JournalDraft, creatorUserID string) (*domain.JournalEntry, error)
	RetractInTx(ctx context.Context, tx pgx.Tx, journalID string) error
	GetJournalByID(ctx context.Context, scopeID, journalID string) (*domain.JournalEntry, error)
	ListJournals(ctx context.Context, scopeID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
	ListAccountLines(ctx context.Context, scopeID, accountCode string, from, to time.Time) ([]domain.JournalLine, error)
}
