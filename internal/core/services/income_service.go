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
)

type incomeService struct {
	txManager  portsrepo.TxManager
	incomeRepo portsrepo.IncomeRepository
	orch       portssvc.PostingOrchestrator
}

// NewIncomeService creates a new income event service.
func NewIncomeService(txManager portsrepo.TxManager, incomeRepo portsrepo.IncomeRepository, orch portssvc.PostingOrchestrator) portssvc.IncomeSvcFacade {
	return &incomeService{
		txManager:  txManager,
		incomeRepo: incomeRepo,
		orch:       orch,
	}
}

var _ portssvc.IncomeSvcFacade = (*incomeService)(nil)

func buildIncomeEvent(incomeID string, req dto.CreateIncomeRequest, audit domain.AuditFields) domain.IncomeEvent {
	return domain.IncomeEvent{
		IncomeID:    incomeID,
		ScopeID:     req.ScopeID,
		AccountCode: req.AccountCode,
		Date:        req.Date,
		AmountValue: req.Amount,
		ReceivedBy:  req.ReceivedBy,
		Note:        req.Note,
		Settlement:  domain.Settlement{Channel: domain.Channel(req.Channel), BankID: req.BankID},
		AuditFields: audit,
	}
}

// Create records an income event and posts its journal in one transaction.
func (s *incomeService) Create(ctx context.Context, req dto.CreateIncomeRequest, userID string) (*domain.IncomeEvent, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	ev := buildIncomeEvent(uuid.NewString(), req, domain.AuditFields{
		CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID,
	})

	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.incomeRepo.InsertInTx(ctx, tx, ev); err != nil {
			return fmt.Errorf("failed to insert income: %w", err)
		}
		journalID, err := s.orch.ApplyCreateInTx(ctx, tx, ev, userID)
		if err != nil {
			return err
		}
		if err := s.incomeRepo.SetJournalIDInTx(ctx, tx, ev.IncomeID, &journalID); err != nil {
			return fmt.Errorf("failed to link journal to income: %w", err)
		}
		ev.JournalID = &journalID
		return nil
	})
	if err != nil {
		logger.Error("Failed to create income", slog.String("error", err.Error()), slog.String("scope_id", req.ScopeID))
		return nil, err
	}

	logger.Info("Income recorded", slog.String("income_id", ev.IncomeID), slog.String("amount", ev.AmountValue.String()))
	return &ev, nil
}

// Update reverses the stored effect and re-applies the event with new values.
// An update that changes nothing still nets out to the original state.
func (s *incomeService) Update(ctx context.Context, incomeID string, req dto.CreateIncomeRequest, userID string) (*domain.IncomeEvent, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.incomeRepo.FindByID(ctx, incomeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: income %s", apperrors.ErrNotFound, incomeID)
		}
		return nil, fmt.Errorf("failed to find income %s: %w", incomeID, err)
	}

	now := time.Now().UTC()
	updated := buildIncomeEvent(existing.IncomeID, req, domain.AuditFields{
		CreatedAt: existing.CreatedAt, CreatedBy: existing.CreatedBy,
		LastUpdatedAt: now, LastUpdatedBy: userID,
	})

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.orch.ReverseInTx(ctx, tx, existing, userID); err != nil {
			return err
		}
		if err := s.incomeRepo.UpdateInTx(ctx, tx, updated); err != nil {
			return fmt.Errorf("failed to update income: %w", err)
		}
		journalID, err := s.orch.ApplyCreateInTx(ctx, tx, updated, userID)
		if err != nil {
			return err
		}
		if err := s.incomeRepo.SetJournalIDInTx(ctx, tx, updated.IncomeID, &journalID); err != nil {
			return fmt.Errorf("failed to link journal to income: %w", err)
		}
		updated.JournalID = &journalID
		return nil
	})
	if err != nil {
		logger.Error("Failed to update income", slog.String("error", err.Error()), slog.String("income_id", incomeID))
		return nil, err
	}

	return &updated, nil
}

// Delete reverses the event's effect and removes the row and its journal.
func (s *incomeService) Delete(ctx context.Context, incomeID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.incomeRepo.FindByID(ctx, incomeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: income %s", apperrors.ErrNotFound, incomeID)
		}
		return fmt.Errorf("failed to find income %s: %w", incomeID, err)
	}

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.orch.ReverseInTx(ctx, tx, existing, userID); err != nil {
			return err
		}
		if err := s.incomeRepo.DeleteInTx(ctx, tx, incomeID); err != nil {
			return fmt.Errorf("failed to delete income: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to delete income", slog.String("error", err.Error()), slog.String("income_id", incomeID))
		return err
	}

	logger.Info("Income deleted", slog.String("income_id", incomeID))
	return nil
}

func (s *incomeService) GetByID(ctx context.Context, incomeID string) (*domain.IncomeEvent, error) {
	ev, err := s.incomeRepo.FindByID(ctx, incomeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find income %s: %w", incomeID, err)
	}
	return ev, nil
}

func (s *incomeService) List(ctx context.Context, filter dto.EventListParams) ([]domain.IncomeEvent, error) {
	events, err := s.incomeRepo.List(ctx, portsrepo.EventFilter{ScopeID: filter.ScopeID, From: filter.From, To: filter.To})
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	return events, nil
}
