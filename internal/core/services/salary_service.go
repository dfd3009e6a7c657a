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

type salaryService struct {
	txManager  portsrepo.TxManager
	salaryRepo portsrepo.SalaryRepository
	orch       portssvc.PostingOrchestrator
}

// NewSalaryService creates a new salary event service.
func NewSalaryService(txManager portsrepo.TxManager, salaryRepo portsrepo.SalaryRepository, orch portssvc.PostingOrchestrator) portssvc.SalarySvcFacade {
	return &salaryService{
		txManager:  txManager,
		salaryRepo: salaryRepo,
		orch:       orch,
	}
}

var _ portssvc.SalarySvcFacade = (*salaryService)(nil)

func buildSalaryEvent(salaryID string, req dto.CreateSalaryRequest, audit domain.AuditFields) domain.SalaryEvent {
	return domain.SalaryEvent{
		SalaryID:    salaryID,
		ScopeID:     req.ScopeID,
		StaffName:   req.StaffName,
		SalaryMonth: req.SalaryMonth,
		BaseAmount:  req.BaseAmount,
		Allowance:   req.Allowance,
		Bonus:       req.Bonus,
		Date:        req.Date,
		Note:        req.Note,
		Settlement:  domain.Settlement{Channel: domain.Channel(req.Channel), BankID: req.BankID},
		AuditFields: audit,
	}
}

// Create records a salary payout and posts its journal in one transaction.
// The posted amount is always base + allowance + bonus.
func (s *salaryService) Create(ctx context.Context, req dto.CreateSalaryRequest, userID string) (*domain.SalaryEvent, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	ev := buildSalaryEvent(uuid.NewString(), req, domain.AuditFields{
		CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID,
	})

	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.salaryRepo.InsertInTx(ctx, tx, ev); err != nil {
			return fmt.Errorf("failed to insert salary: %w", err)
		}
		journalID, err := s.orch.ApplyCreateInTx(ctx, tx, ev, userID)
		if err != nil {
			return err
		}
		if err := s.salaryRepo.SetJournalIDInTx(ctx, tx, ev.SalaryID, &journalID); err != nil {
			return fmt.Errorf("failed to link journal to salary: %w", err)
		}
		ev.JournalID = &journalID
		return nil
	})
	if err != nil {
		logger.Error("Failed to create salary", slog.String("error", err.Error()), slog.String("scope_id", req.ScopeID))
		return nil, err
	}

	logger.Info("Salary recorded",
		slog.String("salary_id", ev.SalaryID),
		slog.String("staff", ev.StaffName),
		slog.String("total", ev.Amount().String()))
	return &ev, nil
}

// Update reverses the stored effect and re-applies the event with new values.
func (s *salaryService) Update(ctx context.Context, salaryID string, req dto.CreateSalaryRequest, userID string) (*domain.SalaryEvent, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.salaryRepo.FindByID(ctx, salaryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: salary %s", apperrors.ErrNotFound, salaryID)
		}
		return nil, fmt.Errorf("failed to find salary %s: %w", salaryID, err)
	}

	now := time.Now().UTC()
	updated := buildSalaryEvent(existing.SalaryID, req, domain.AuditFields{
		CreatedAt: existing.CreatedAt, CreatedBy: existing.CreatedBy,
		LastUpdatedAt: now, LastUpdatedBy: userID,
	})

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.orch.ReverseInTx(ctx, tx, existing, userID); err != nil {
			return err
		}
		if err := s.salaryRepo.UpdateInTx(ctx, tx, updated); err != nil {
			return fmt.Errorf("failed to update salary: %w", err)
		}
		journalID, err := s.orch.ApplyCreateInTx(ctx, tx, updated, userID)
		if err != nil {
			return err
		}
		if err := s.salaryRepo.SetJournalIDInTx(ctx, tx, updated.SalaryID, &journalID); err != nil {
			return fmt.Errorf("failed to link journal to salary: %w", err)
		}
		updated.JournalID = &journalID
		return nil
	})
	if err != nil {
		logger.Error("Failed to update salary", slog.String("error", err.Error()), slog.String("salary_id", salaryID))
		return nil, err
	}

	return &updated, nil
}

// Delete reverses the event's effect and removes the row and its journal.
func (s *salaryService) Delete(ctx context.Context, salaryID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.salaryRepo.FindByID(ctx, salaryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: salary %s", apperrors.ErrNotFound, salaryID)
		}
		return fmt.Errorf("failed to find salary %s: %w", salaryID, err)
	}

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.orch.ReverseInTx(ctx, tx, existing, userID); err != nil {
			return err
		}
		if err := s.salaryRepo.DeleteInTx(ctx, tx, salaryID); err != nil {
			return fmt.Errorf("failed to delete salary: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to delete salary", slog.String("error", err.Error()), slog.String("salary_id", salaryID))
		return err
	}

	logger.Info("Salary deleted", slog.String("salary_id", salaryID))
	return nil
}

func (s *salaryService) GetByID(ctx context.Context, salaryID string) (*domain.SalaryEvent, error) {
	ev, err := s.salaryRepo.FindByID(ctx, salaryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find salary %s: %w", salaryID, err)
	}
	return ev, nil
}

func (s *salaryService) List(ctx context.Context, filter dto.EventListParams) ([]domain.SalaryEvent, error) {
	events, err := s.salaryRepo.List(ctx, portsrepo.EventFilter{ScopeID: filter.ScopeID, From: filter.From, To: filter.To})
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries: %w", err)
	}
	return events, nil
}
