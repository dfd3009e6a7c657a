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

// stockService records stock value changes. These post journals between the
// Inventory and Raw Materials accounts but never move cash or bank balances,
// so reversal is journal-only.
type stockService struct {
	txManager portsrepo.TxManager
	stockRepo portsrepo.StockRepository
	orch      portssvc.PostingOrchestrator
}

// NewStockService creates a new stock adjustment service.
func NewStockService(txManager portsrepo.TxManager, stockRepo portsrepo.StockRepository, orch portssvc.PostingOrchestrator) portssvc.StockSvcFacade {
	return &stockService{
		txManager: txManager,
		stockRepo: stockRepo,
		orch:      orch,
	}
}

var _ portssvc.StockSvcFacade = (*stockService)(nil)

func buildStockEvent(adjustmentID string, req dto.CreateStockAdjustRequest, audit domain.AuditFields) domain.StockAdjustEvent {
	return domain.StockAdjustEvent{
		AdjustmentID: adjustmentID,
		ScopeID:      req.ScopeID,
		AmountValue:  req.Amount,
		Increase:     req.Increase,
		Date:         req.Date,
		Note:         req.Note,
		AuditFields:  audit,
	}
}

// Create records a stock value change and posts its journal in one transaction.
func (s *stockService) Create(ctx context.Context, req dto.CreateStockAdjustRequest, userID string) (*domain.StockAdjustEvent, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	ev := buildStockEvent(uuid.NewString(), req, domain.AuditFields{
		CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID,
	})

	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.stockRepo.InsertInTx(ctx, tx, ev); err != nil {
			return fmt.Errorf("failed to insert stock adjustment: %w", err)
		}
		journalID, err := s.orch.ApplyCreateInTx(ctx, tx, ev, userID)
		if err != nil {
			return err
		}
		if err := s.stockRepo.SetJournalIDInTx(ctx, tx, ev.AdjustmentID, &journalID); err != nil {
			return fmt.Errorf("failed to link journal to stock adjustment: %w", err)
		}
		ev.JournalID = &journalID
		return nil
	})
	if err != nil {
		logger.Error("Failed to create stock adjustment", slog.String("error", err.Error()), slog.String("scope_id", req.ScopeID))
		return nil, err
	}

	logger.Info("Stock adjustment recorded",
		slog.String("adjustment_id", ev.AdjustmentID),
		slog.String("amount", ev.AmountValue.String()),
		slog.Bool("increase", ev.Increase))
	return &ev, nil
}

// Update reverses the stored journal and re-posts with new values.
func (s *stockService) Update(ctx context.Context, adjustmentID string, req dto.CreateStockAdjustRequest, userID string) (*domain.StockAdjustEvent, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.stockRepo.FindByID(ctx, adjustmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: stock adjustment %s", apperrors.ErrNotFound, adjustmentID)
		}
		return nil, fmt.Errorf("failed to find stock adjustment %s: %w", adjustmentID, err)
	}

	now := time.Now().UTC()
	updated := buildStockEvent(existing.AdjustmentID, req, domain.AuditFields{
		CreatedAt: existing.CreatedAt, CreatedBy: existing.CreatedBy,
		LastUpdatedAt: now, LastUpdatedBy: userID,
	})

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.orch.ReverseInTx(ctx, tx, existing, userID); err != nil {
			return err
		}
		if err := s.stockRepo.UpdateInTx(ctx, tx, updated); err != nil {
			return fmt.Errorf("failed to update stock adjustment: %w", err)
		}
		journalID, err := s.orch.ApplyCreateInTx(ctx, tx, updated, userID)
		if err != nil {
			return err
		}
		if err := s.stockRepo.SetJournalIDInTx(ctx, tx, updated.AdjustmentID, &journalID); err != nil {
			return fmt.Errorf("failed to link journal to stock adjustment: %w", err)
		}
		updated.JournalID = &journalID
		return nil
	})
	if err != nil {
		logger.Error("Failed to update stock adjustment", slog.String("error", err.Error()), slog.String("adjustment_id", adjustmentID))
		return nil, err
	}

	return &updated, nil
}

// Delete reverses the stored journal and removes the row.
func (s *stockService) Delete(ctx context.Context, adjustmentID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.stockRepo.FindByID(ctx, adjustmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: stock adjustment %s", apperrors.ErrNotFound, adjustmentID)
		}
		return fmt.Errorf("failed to find stock adjustment %s: %w", adjustmentID, err)
	}

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.orch.ReverseInTx(ctx, tx, existing, userID); err != nil {
			return err
		}
		if err := s.stockRepo.DeleteInTx(ctx, tx, adjustmentID); err != nil {
			return fmt.Errorf("failed to delete stock adjustment: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to delete stock adjustment", slog.String("error", err.Error()), slog.String("adjustment_id", adjustmentID))
		return err
	}

	logger.Info("Stock adjustment deleted", slog.String("adjustment_id", adjustmentID))
	return nil
}

func (s *stockService) GetByID(ctx context.Context, adjustmentID string) (*domain.StockAdjustEvent, error) {
	ev, err := s.stockRepo.FindByID(ctx, adjustmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to find stock adjustment %s: %w", adjustmentID, err)
	}
	return ev, nil
}

func (s *stockService) List(ctx context.Context, filter dto.EventListParams) ([]domain.StockAdjustEvent, error) {
	events, err := s.stockRepo.List(ctx, portsrepo.EventFilter{ScopeID: filter.ScopeID, From: filter.From, To: filter.To})
	if err != nil {
		return nil, fmt.Errorf("failed to list stock adjustments: %w", err)
	}
	return events, nil
}
