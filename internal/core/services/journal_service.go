package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nayeemdev/retail_ledger_app/internal/apperrors"
	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/nayeemdev/retail_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/nayeemdev/retail_ledger_app/internal/core/ports/services"
	"github.com/nayeemdev/retail_ledger_app/internal/dto"
	"github.com/nayeemdev/retail_ledger_app/internal/middleware"
	"github.com/nayeemdev/retail_ledger_app/internal/utils/accounting"
)

var (
	ErrJournalMinLines    = errors.New("journal entry must have at least two lines")
	ErrJournalMinAccounts = errors.New("journal entry must affect at least two different accounts")
	ErrAccountNotFound    = errors.New("account not found")
	ErrScopeMissing       = errors.New("journal scope is required")
)

// journalService is the journal engine: it builds and persists balanced
// journal entries and retracts them on reversal. Posting and retraction are
// tx-scoped; the posting orchestrator owns the transaction.
type journalService struct {
	journalRepo portsrepo.JournalRepository
	accountRepo portsrepo.AccountRepository
}

// NewJournalService creates a new journal engine service.
func NewJournalService(journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountRepository) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// PostInTx validates a draft and persists the entry plus its lines inside the
// caller's transaction. Validation failures surface before any write.
func (s *journalService) PostInTx(ctx context.Context, tx pgx.Tx, draft dto.JournalDraft, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if draft.ScopeID == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrScopeMissing)
	}
	if len(draft.Lines) < 2 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrJournalMinLines)
	}

	accountSet := make(map[string]bool)
	for _, line := range draft.Lines {
		accountSet[line.AccountCode] = true
	}
	if len(accountSet) < 2 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrJournalMinAccounts)
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()

	lines := make([]domain.JournalLine, len(draft.Lines))
	codes := make([]string, 0, len(accountSet))
	for code := range accountSet {
		codes = append(codes, code)
	}
	for i, dl := range draft.Lines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			JournalID:   journalID,
			AccountCode: dl.AccountCode,
			Debit:       dl.Debit,
			Credit:      dl.Credit,
			Description: dl.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
	}

	// Double-entry check: per-line XOR invariant plus debits == credits.
	if err := accounting.ValidateEntryBalance(lines); err != nil {
		if errors.Is(err, domain.ErrUnbalancedEntry) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUnbalanced, err)
		}
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	accountsMap, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		logger.Error("Failed to fetch accounts for journal posting", slog.String("error", err.Error()), slog.String("scope_id", draft.ScopeID))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, code := range codes {
		acc, found := accountsMap[code]
		if !found {
			return nil, fmt.Errorf("%w: code %s", ErrAccountNotFound, code)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, code)
		}
	}

	entry := domain.JournalEntry{
		JournalID: journalID,
		ScopeID:   draft.ScopeID,
		Date:      draft.Date,
		Reference: draft.Reference,
		Narration: draft.Narration,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveJournalInTx(ctx, tx, entry, lines); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Debug("Journal entry posted", slog.String("journal_id", journalID), slog.String("reference", entry.Reference))
	entry.Lines = lines
	return &entry, nil
}

// RetractInTx deletes a journal and all of its lines inside the caller's
// transaction. There is no partial retraction.
func (s *journalService) RetractInTx(ctx context.Context, tx pgx.Tx, journalID string) error {
	if journalID == "" {
		return fmt.Errorf("%w: journal ID is required for retraction", apperrors.ErrValidation)
	}
	if err := s.journalRepo.DeleteJournalInTx(ctx, tx, journalID); err != nil {
		return fmt.Errorf("failed to retract journal %s: %w", journalID, err)
	}
	return nil
}

// GetJournalByID retrieves a journal entry with its lines.
func (s *journalService) GetJournalByID(ctx context.Context, scopeID, journalID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal by ID", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		}
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}

	// Obscure existence across scopes.
	if entry.ScopeID != scopeID {
		return nil, apperrors.ErrNotFound
	}

	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		logger.Error("Failed to fetch lines for journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to retrieve lines for journal %s: %w", journalID, apperrors.ErrInternal)
	}
	entry.Lines = lines

	return entry, nil
}

// ListJournals retrieves a paginated list of journals for a business unit.
func (s *journalService) ListJournals(ctx context.Context, scopeID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entries, nextToken, err := s.journalRepo.ListJournalsByScope(ctx, scopeID, params.Limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list journals from repository", slog.String("error", err.Error()), slog.String("scope_id", scopeID))
		return nil, fmt.Errorf("failed to retrieve journals: %w", err)
	}

	responses := make([]dto.JournalResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToJournalResponse(&entries[i])
	}

	return &dto.ListJournalsResponse{
		Journals:  responses,
		NextToken: nextToken,
	}, nil
}

// ListAccountLines retrieves the lines posted to one account for a business
// unit over a date range. Serves trial-balance style drill downs.
func (s *journalService) ListAccountLines(ctx context.Context, scopeID, accountCode string, from, to time.Time) ([]domain.JournalLine, error) {
	if scopeID == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrScopeMissing)
	}
	if accountCode == "" {
		return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}

	lines, err := s.journalRepo.ListLinesByAccount(ctx, scopeID, accountCode, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list lines for account %s: %w", accountCode, err)
	}
	if lines == nil {
		lines = []domain.JournalLine{}
	}
	return lines, nil
}
