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

type expenseService struct {
	txManager   portsrepo.TxManager
	expenseRepo portsrepo.ExpenseRepository
	orch        portssvc.PostingOrchestrator
}

// NewExpenseService creates a new expense event service.
func NewExpenseService(txManager portsrepo.TxManager, expenseRepo portsrepo.ExpenseRepository, orch portssvc.PostingOrchestrator) portssvc.ExpenseSvcFacade {
	return &expenseService{
		txManager:   txManager,
		expenseRepo: expenseRepo,
		orch:        orch,
	}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func buildExpenseEvent(expenseID string, req dto.CreateExpenseRequest, audit domain.AuditFields) domain.ExpenseEvent {
	return domain.ExpenseEvent{
		ExpenseID:   expenseID,
		ScopeID:     req.ScopeID,
		AccountCode: req.AccountCode,
		AmountValue: req.Amount,
		Date:        req.Date,
		RecordedBy:  req.RecordedBy,
		Note:        req.Note,
		Settlement:  domain.Settlement{Channel: domain.Channel(req.Channel), BankID: req.BankID},
		AuditFields: audit,
	}
}

// Create records an expense event and posts its journal in one transaction.
func (s *expenseService) Create(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.ExpenseEvent, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	ev := buildExpenseEvent(uuid.NewString(), req, domain.AuditFields{
		CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID,
	})

	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.expenseRepo.InsertInTx(ctx, tx, ev); err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}
		journalID, err := s.orch.ApplyCreateInTx(ctx, tx, ev, userID)
		if err != nil {
			return err
		}
		if err := s.expenseRepo.SetJournalIDInTx(ctx, tx, ev.ExpenseID, &journalID); err != nil {
			return fmt.Errorf("failed to link journal to expense: %w", err)
		}
		ev.JournalID = &journalID
		return nil
	})
	if err != nil {
		logger.Error("Failed to create expense", slog.String("error", err.Error()), slog.String("scope_id", req.ScopeID))
		return nil, err
	}

	logger.Info("Expense recorded", slog.String("expense_id", ev.ExpenseID), slog.String("amount", ev.AmountValue.String()))
	return &ev, nil
}

// Update reverses the stored effect and re-applies the event with new values.
func (s *expenseService) Update(ctx context.Context, expenseID string, req dto.CreateExpenseRequest, userID string) (*domain.ExpenseEvent, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expenseID)
		}
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}

	now := time.Now().UTC()
	updated := buildExpenseEvent(existing.ExpenseID, req, domain.AuditFields{
		CreatedAt: existing.CreatedAt, CreatedBy: existing.CreatedBy,
		LastUpdatedAt: now, LastUpdatedBy: userID,
	})

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.orch.ReverseInTx(ctx, tx, existing, userID); err != nil {
			return err
		}
		if err := s.expenseRepo.UpdateInTx(ctx, tx, updated); err != nil {
			return fmt.Errorf("failed to update expense: %w", err)
		}
		journalID, err := s.orch.ApplyCreateInTx(ctx, tx, updated, userID)
		if err != nil {
			return err
		}
		if err := s.expenseRepo.SetJournalIDInTx(ctx, tx, updated.ExpenseID, &journalID); err != nil {
			return fmt.Errorf("failed to link journal to expense: %w", err)
		}
		updated.JournalID = &journalID
		return nil
	})
	if err != nil {
		logger.Error("Failed to update expense", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		return nil, err
	}

	return &updated, nil
}

// Delete reverses the event's effect and removes the row and its journal.
func (s *expenseService) Delete(ctx context.Context, expenseID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expenseID)
		}
		return fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.orch.ReverseInTx(ctx, tx, existing, userID); err != nil {
			return err
		}
		if err := s.expenseRepo.DeleteInTx(ctx, tx, expenseID); err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to delete expense", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
		return err
	}

	logger.Info("Expense deleted", slog.String("expense_id", expenseID))
	return nil
}

func (s *expenseService) GetByID(ctx context.Context, expenseID string) (*domain.ExpenseEvent, error) {
	ev, err := s.expenseRepo.FindByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}
	return ev, nil
}

func (s *expenseService) List(ctx context.Context, filter dto.EventListParams) ([]domain.ExpenseEvent, error) {
	events, err := s.expenseRepo.List(ctx, portsrepo.EventFilter{ScopeID: filter.ScopeID, From: filter.From, To: filter.To})
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return events, nil
}
