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

type assetService struct {
	txManager portsrepo.TxManager
	assetRepo portsrepo.AssetRepository
	orch      portssvc.PostingOrchestrator
}

// NewAssetService creates a new asset event service.
func NewAssetService(txManager portsrepo.TxManager, assetRepo portsrepo.AssetRepository, orch portssvc.PostingOrchestrator) portssvc.AssetSvcFacade {
	return &assetService{
		txManager: txManager,
		assetRepo: assetRepo,
		orch:      orch,
	}
}

var _ portssvc.AssetSvcFacade = (*assetService)(nil)

func buildAssetEvent(assetID string, req dto.CreateAssetRequest, audit domain.AuditFields) domain.AssetEvent {
	return domain.AssetEvent{
		AssetID:     assetID,
		ScopeID:     req.ScopeID,
		Name:        req.Name,
		AssetCode:   req.AssetCode,
		TotalPrice:  req.TotalPrice,
		Date:        req.Date,
		Note:        req.Note,
		Settlement:  domain.Settlement{Channel: domain.Channel(req.Channel), BankID: req.BankID},
		AuditFields: audit,
	}
}

// Create records an asset acquisition and posts its journal in one transaction.
func (s *assetService) Create(ctx context.Context, req dto.CreateAssetRequest, userID string) (*domain.AssetEvent, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	ev := buildAssetEvent(uuid.NewString(), req, domain.AuditFields{
		CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID,
	})

	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.assetRepo.InsertInTx(ctx, tx, ev); err != nil {
			return fmt.Errorf("failed to insert asset: %w", err)
		}
		journalID, err := s.orch.ApplyCreateInTx(ctx, tx, ev, userID)
		if err != nil {
			return err
		}
		if err := s.assetRepo.SetJournalIDInTx(ctx, tx, ev.AssetID, &journalID); err != nil {
			return fmt.Errorf("failed to link journal to asset: %w", err)
		}
		ev.JournalID = &journalID
		return nil
	})
	if err != nil {
		logger.Error("Failed to create asset", slog.String("error", err.Error()), slog.String("scope_id", req.ScopeID))
		return nil, err
	}

	logger.Info("Asset recorded", slog.String("asset_id", ev.AssetID), slog.String("price", ev.TotalPrice.String()))
	return &ev, nil
}

// Update reverses the stored effect and re-applies the event with new values.
func (s *assetService) Update(ctx context.Context, assetID string, req dto.CreateAssetRequest, userID string) (*domain.AssetEvent, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: asset %s", apperrors.ErrNotFound, assetID)
		}
		return nil, fmt.Errorf("failed to find asset %s: %w", assetID, err)
	}

	now := time.Now().UTC()
	updated := buildAssetEvent(existing.AssetID, req, domain.AuditFields{
		CreatedAt: existing.CreatedAt, CreatedBy: existing.CreatedBy,
		LastUpdatedAt: now, LastUpdatedBy: userID,
	})

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.orch.ReverseInTx(ctx, tx, existing, userID); err != nil {
			return err
		}
		if err := s.assetRepo.UpdateInTx(ctx, tx, updated); err != nil {
			return fmt.Errorf("failed to update asset: %w", err)
		}
		journalID, err := s.orch.ApplyCreateInTx(ctx, tx, updated, userID)
		if err != nil {
			return err
		}
		if err := s.assetRepo.SetJournalIDInTx(ctx, tx, updated.AssetID, &journalID); err != nil {
			return fmt.Errorf("failed to link journal to asset: %w", err)
		}
		updated.JournalID = &journalID
		return nil
	})
	if err != nil {
		logger.Error("Failed to update asset", slog.String("error", err.Error()), slog.String("asset_id", assetID))
		return nil, err
	}

	return &updated, nil
}

// Delete reverses the event's effect and removes the row and its journal.
func (s *assetService) Delete(ctx context.Context, assetID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: asset %s", apperrors.ErrNotFound, assetID)
		}
		return fmt.Errorf("failed to find asset %s: %w", assetID, err)
	}

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.orch.ReverseInTx(ctx, tx, existing, userID); err != nil {
			return err
		}
		if err := s.assetRepo.DeleteInTx(ctx, tx, assetID); err != nil {
			return fmt.Errorf("failed to delete asset: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to delete asset", slog.String("error", err.Error()), slog.String("asset_id", assetID))
		return err
	}

	logger.Info("Asset deleted", slog.String("asset_id", assetID))
	return nil
}

func (s *assetService) GetByID(ctx context.Context, assetID string) (*domain.AssetEvent, error) {
	ev, err := s.assetRepo.FindByID(ctx, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to find asset %s: %w", assetID, err)
	}
	return ev, nil
}

func (s *assetService) List(ctx context.Context, filter dto.EventListParams) ([]domain.AssetEvent, error) {
	events, err := s.assetRepo.List(ctx, portsrepo.EventFilter{ScopeID: filter.ScopeID, From: filter.From, To: filter.To})
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return events, nil
}
