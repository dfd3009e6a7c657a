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

type purchaseService struct {
	txManager    portsrepo.TxManager
	purchaseRepo portsrepo.PurchaseRepository
	orch         portssvc.PostingOrchestrator
}

// NewPurchaseService creates a new purchase event service.
func NewPurchaseService(txManager portsrepo.TxManager, purchaseRepo portsrepo.PurchaseRepository, orch portssvc.PostingOrchestrator) portssvc.PurchaseSvcFacade {
	return &purchaseService{
		txManager:    txManager,
		purchaseRepo: purchaseRepo,
		orch:         orch,
	}
}

var _ portssvc.PurchaseSvcFacade = (*purchaseService)(nil)

// buildEventPayments assigns fresh IDs to the payment rows of a request.
func buildEventPayments(payments []dto.PaymentRequest) []domain.EventPayment {
	out := make([]domain.EventPayment, len(payments))
	for i, p := range payments {
		out[i] = domain.EventPayment{
			PaymentID: uuid.NewString(),
			Amount:    p.Amount,
			Channel:   domain.Channel(p.Channel),
			BankID:    p.BankID,
		}
	}
	return out
}

func buildPurchaseEvent(purchaseID string, req dto.CreatePurchaseRequest, audit domain.AuditFields) domain.PurchaseEvent {
	return domain.PurchaseEvent{
		PurchaseID:   purchaseID,
		ScopeID:      req.ScopeID,
		VendorName:   req.VendorName,
		InvoiceNo:    req.InvoiceNo,
		Date:         req.Date,
		TotalPayable: req.TotalPayable,
		Note:         req.Note,
		Payments:     buildEventPayments(req.Payments),
		AuditFields:  audit,
	}
}

// Create records a purchase and posts its journal in one transaction. Any
// unpaid remainder stays on Accounts Payable.
func (s *purchaseService) Create(ctx context.Context, req dto.CreatePurchaseRequest, userID string) (*domain.PurchaseEvent, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	ev := buildPurchaseEvent(uuid.NewString(), req, domain.AuditFields{
		CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID,
	})

	if ev.DueAmount().IsNegative() {
		return nil, fmt.Errorf("%w: payments exceed total payable", apperrors.ErrValidation)
	}

	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.purchaseRepo.InsertInTx(ctx, tx, ev); err != nil {
			return fmt.Errorf("failed to insert purchase: %w", err)
		}
		journalID, err := s.orch.ApplyCreateInTx(ctx, tx, ev, userID)
		if err != nil {
			return err
		}
		if err := s.purchaseRepo.SetJournalIDInTx(ctx, tx, ev.PurchaseID, &journalID); err != nil {
			return fmt.Errorf("failed to link journal to purchase: %w", err)
		}
		ev.JournalID = &journalID
		return nil
	})
	if err != nil {
		logger.Error("Failed to create purchase", slog.String("error", err.Error()), slog.String("scope_id", req.ScopeID))
		return nil, err
	}

	logger.Info("Purchase recorded",
		slog.String("purchase_id", ev.PurchaseID),
		slog.String("total", ev.TotalPayable.String()),
		slog.String("due", ev.DueAmount().String()))
	return &ev, nil
}

// Update reverses the stored effect and re-applies the event with new values,
// replacing the payment rows wholesale.
func (s *purchaseService) Update(ctx context.Context, purchaseID string, req dto.CreatePurchaseRequest, userID string) (*domain.PurchaseEvent, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: purchase %s", apperrors.ErrNotFound, purchaseID)
		}
		return nil, fmt.Errorf("failed to find purchase %s: %w", purchaseID, err)
	}

	now := time.Now().UTC()
	updated := buildPurchaseEvent(existing.PurchaseID, req, domain.AuditFields{
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
		if err := s.purchaseRepo.UpdateInTx(ctx, tx, updated); err != nil {
			return fmt.Errorf("failed to update purchase: %w", err)
		}
		journalID, err := s.orch.ApplyCreateInTx(ctx, tx, updated, userID)
		if err != nil {
			return err
		}
		if err := s.purchaseRepo.SetJournalIDInTx(ctx, tx, updated.PurchaseID, &journalID); err != nil {
			return fmt.Errorf("failed to link journal to purchase: %w", err)
		}
		updated.JournalID = &journalID
		return nil
	})
	if err != nil {
		logger.Error("Failed to update purchase", slog.String("error", err.Error()), slog.String("purchase_id", purchaseID))
		return nil, err
	}

	return &updated, nil
}

// Delete reverses the event's effect and removes the row and its journal.
func (s *purchaseService) Delete(ctx context.Context, purchaseID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: purchase %s", apperrors.ErrNotFound, purchaseID)
		}
		return fmt.Errorf("failed to find purchase %s: %w", purchaseID, err)
	}

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.orch.ReverseInTx(ctx, tx, existing, userID); err != nil {
			return err
		}
		if err := s.purchaseRepo.DeleteInTx(ctx, tx, purchaseID); err != nil {
			return fmt.Errorf("failed to delete purchase: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to delete purchase", slog.String("error", err.Error()), slog.String("purchase_id", purchaseID))
		return err
	}

	logger.Info("Purchase deleted", slog.String("purchase_id", purchaseID))
	return nil
}

func (s *purchaseService) GetByID(ctx context.Context, purchaseID string) (*domain.PurchaseEvent, error) {
	ev, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find purchase %s: %w", purchaseID, err)
	}
	return ev, nil
}

func (s *purchaseService) List(ctx context.Context, filter dto.EventListParams) ([]domain.PurchaseEvent, error) {
	events, err := s.purchaseRepo.List(ctx, portsrepo.EventFilter{ScopeID: filter.ScopeID, From: filter.From, To: filter.To})
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return events, nil
}
