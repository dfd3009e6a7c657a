package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/nayeemdev/retail_ledger_app/internal/apperrors"
	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/nayeemdev/retail_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/nayeemdev/retail_ledger_app/internal/core/ports/services"
	"github.com/nayeemdev/retail_ledger_app/internal/dto"
	"github.com/nayeemdev/retail_ledger_app/internal/middleware"
	"github.com/nayeemdev/retail_ledger_app/internal/utils/accounting"
)

// balanceService is the balance ledger: it opens per-(scope, channel) running
// balance rows and applies every cash/bank movement through one locked
// read-modify-write path.
type balanceService struct {
	balanceRepo portsrepo.BalanceRepository
}

// NewBalanceService creates a new balance ledger service.
func NewBalanceService(balanceRepo portsrepo.BalanceRepository) portssvc.BalanceSvcFacade {
	return &balanceService{balanceRepo: balanceRepo}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// OpenBalanceAccount creates the balance row for a (scope, channel) pair.
// The current balance starts equal to the opening balance and is only moved
// by AdjustInTx afterwards.
func (s *balanceService) OpenBalanceAccount(ctx context.Context, req dto.OpenBalanceAccountRequest, creatorUserID string) (*domain.BalanceAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Channel == domain.ChannelBank && req.BankID == "" {
		return nil, fmt.Errorf("%w: bank identity is required for a BANK balance account", apperrors.ErrInvalidChannel)
	}
	if req.Channel == domain.ChannelCash && req.BankID != "" {
		return nil, fmt.Errorf("%w: bank identity must be empty for a CASH balance account", apperrors.ErrValidation)
	}
	if req.OpeningBalance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance must not be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	acct := domain.BalanceAccount{
		BalanceID:      uuid.NewString(),
		ScopeID:        req.ScopeID,
		Channel:        req.Channel,
		BankID:         req.BankID,
		OpeningBalance: req.OpeningBalance,
		CurrentBalance: req.OpeningBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.balanceRepo.CreateBalanceAccount(ctx, acct); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: balance account already exists for scope %s channel %s", apperrors.ErrDuplicate, req.ScopeID, req.Channel)
		}
		logger.Error("Failed to create balance account", slog.String("error", err.Error()), slog.String("scope_id", req.ScopeID))
		return nil, fmt.Errorf("failed to create balance account: %w", err)
	}

	logger.Info("Balance account opened", slog.String("scope_id", req.ScopeID), slog.String("channel", string(req.Channel)))
	return &acct, nil
}

// AdjustInTx applies one balance move under an exclusive row lock. The lock
// is taken by the FOR UPDATE read and held until the caller's transaction
// commits, so concurrent adjustments to the same row serialize.
func (s *balanceService) AdjustInTx(ctx context.Context, tx pgx.Tx, scopeID string, move domain.BalanceMove, userID string) (decimal.Decimal, error) {
	if move.Amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: adjustment amount must not be negative", apperrors.ErrValidation)
	}
	switch move.Channel {
	case domain.ChannelCash:
		// no bank identity needed
	case domain.ChannelBank:
		if move.BankID == "" {
			return decimal.Zero, fmt.Errorf("%w: bank identity is required for BANK adjustments", apperrors.ErrInvalidChannel)
		}
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", apperrors.ErrInvalidChannel, move.Channel)
	}

	acct, err := s.balanceRepo.FindForUpdateInTx(ctx, tx, scopeID, move.Channel, move.BankID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%w: no balance account for scope %s channel %s", apperrors.ErrNotFound, scopeID, move.Channel)
		}
		return decimal.Zero, fmt.Errorf("failed to lock balance account: %w", err)
	}

	delta := accounting.SignedDelta(move)
	newBalance, err := s.balanceRepo.ApplyDeltaInTx(ctx, tx, acct.BalanceID, delta, userID, time.Now().UTC())
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to apply balance delta: %w", err)
	}

	return newBalance, nil
}

// Snapshot returns the current cash and bank balances for a business unit.
// Missing rows are tolerated: a unit without a cash account simply reports none.
func (s *balanceService) Snapshot(ctx context.Context, scopeID string) (*domain.BalanceSnapshot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	snapshot := &domain.BalanceSnapshot{}

	cash, err := s.balanceRepo.FindCashAccount(ctx, scopeID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to fetch cash balance", slog.String("error", err.Error()), slog.String("scope_id", scopeID))
		return nil, fmt.Errorf("failed to fetch cash balance: %w", err)
	}
	snapshot.Cash = cash

	banks, err := s.balanceRepo.ListBankAccounts(ctx, scopeID)
	if err != nil {
		logger.Error("Failed to fetch bank balances", slog.String("error", err.Error()), slog.String("scope_id", scopeID))
		return nil, fmt.Errorf("failed to fetch bank balances: %w", err)
	}
	snapshot.Banks = banks

	return snapshot, nil
}
