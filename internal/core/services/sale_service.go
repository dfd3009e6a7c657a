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

type saleService struct {
	txManager portsrepo.TxManager
	saleRepo  portsrepo.SaleRepository
	orch      portssvc.PostingOrchestrator
}

// NewSaleService creates a new sale event service.
func NewSaleService(txManager portsrepo.TxManager, saleRepo portsrepo.SaleRepository, orch portssvc.PostingOrchestrator) portssvc.SaleSvcFacade {
	return &saleService{
		txManager: txManager,
		saleRepo:  saleRepo,
		orch:      orch,
	}
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

func buildSaleEvent(saleID string, req dto.CreateSaleRequest, audit domain.AuditFields) domain.SaleEvent {
	return domain.SaleEvent{
		SaleID:       saleID,
		ScopeID:      req.ScopeID,
		CustomerName: req.CustomerName,
		InvoiceNo:    req.InvoiceNo,
		Date:         req.Date,
		TotalPayable: req.TotalPayable,
		Note:         req.Note,
		Payments:     buildEventPayments(req.Payments),
		AuditFields:  audit,
	}
}

// Create records a sale invoice and posts its journal in one transaction. Any
// uncollected remainder stays on Accounts Receivable.
func (s *saleService) Create(ctx context.Context, req dto.CreateSaleRequest, userID string) (*domain.SaleEvent, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	ev := buildSaleEvent(uuid.NewString(), req, domain.AuditFields{
		CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID,
	})

	if ev.DueAmount().IsNegative() {
		return nil, fmt.Errorf("%w: payments exceed total payable", apperrors.ErrValidation)
	}

	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.saleRepo.InsertInTx(ctx, tx, ev); err != nil {
			return fmt.Errorf("failed to insert sale: %w", err)
		}
		journalID, err := s.orch.ApplyCreateInTx(ctx, tx, ev, userID)
		if err != nil {
			return err
		}
		if err := s.saleRepo.SetJournalIDInTx(ctx, tx, ev.SaleID, &journalID); err != nil {
			return fmt.Errorf("failed to link journal to sale: %w", err)
		}
		ev.JournalID = &journalID
		return nil
	})
	if err != nil {
		logger.Error("Failed to create sale", slog.String("error", err.Error()), slog.String("scope_id", req.ScopeID))
		return nil, err
	}

	logger.Info("Sale recorded",
		slog.String("sale_id", ev.SaleID),
		slog.String("total", ev.TotalPayable.String()),
		slog.String("due", ev.DueAmount().String()))
	return &ev, nil
}

// Update reverses the stored effect and re-applies the event with new values,
// replacing the payment rows wholesale.
func (s *saleService) Update(ctx context.Context, saleID string, req dto.CreateSaleRequest, userID string) (*domain.SaleEvent, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleID)
		}
		return nil, fmt.Errorf("failed to find sale %s: %w", saleID, err)
	}

	now := time.Now().UTC()
	updated := buildSaleEvent(existing.SaleID, req, domain.AuditFields{
		CreatedAt: existing.CreatedAt, CreatedBy: existing.CreatedBy,
		LastUpdatedAt: now, LastUpdatedBy: userID,
	})

	if updated.DueAmount().IsNegative() {
		return nil, fmt.Errorf("%w: payments exceed total payable", apperrors.ErrValidation)
	}

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.orch.ReverseInTx(ctx, tx, existing, userID); err != nil {
			return err
		}
		if err := s.saleRepo.UpdateInTx(ctx, tx, updated); err != nil {
			return fmt.Errorf("failed to update sale: %w", err)
		}
		journalID, err := s.orch.ApplyCreateInTx(ctx, tx, updated, userID)
		if err != nil {
			return err
		}
		if err := s.saleRepo.SetJournalIDInTx(ctx, tx, updated.SaleID, &journalID); err != nil {
			return fmt.Errorf("failed to link journal to sale: %w", err)
		}
		updated.JournalID = &journalID
		return nil
	})
	if err != nil {
		logger.Error("Failed to update sale", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return nil, err
	}

	return &updated, nil
}

// Delete reverses the event's effect and removes the row and its journal.
func (s *saleService) Delete(ctx context.Context, saleID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: sale %s", apperrors.ErrNotFound, saleID)
		}
		return fmt.Errorf("failed to find sale %s: %w", saleID, err)
	}

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.orch.ReverseInTx(ctx, tx, existing, userID); err != nil {
			return err
		}
		if err := s.saleRepo.DeleteInTx(ctx, tx, saleID); err != nil {
			return fmt.Errorf("failed to delete sale: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to delete sale", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return err
	}

	logger.Info("Sale deleted", slog.String("sale_id", saleID))
	return nil
}

func (s *saleService) GetByID(ctx context.Context, saleID string) (*domain.SaleEvent, error) {
	ev, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find sale %s: %w", saleID, err)
	}
	return ev, nil
}

func (s *saleService) List(ctx context.Context, filter dto.EventListParams) ([]domain.SaleEvent, error) {
	events, err := s.saleRepo.List(ctx, portsrepo.EventFilter{ScopeID: filter.ScopeID, From: filter.From, To: filter.To})
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return events, nil
}
