package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nayeemdev/retail_ledger_app/internal/apperrors"
	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
	portsrepo "github.com/nayeemdev/retail_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/nayeemdev/retail_ledger_app/internal/core/ports/services"
	"github.com/nayeemdev/retail_ledger_app/internal/dto"
	"github.com/nayeemdev/retail_ledger_app/internal/middleware"
)

// accountService is the account directory: a read-only resolver over the
// global chart of accounts, keyed by code. Accounts are seeded at setup and
// rarely change afterwards.
type accountService struct {
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new account directory service.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// ResolveByCode looks up one account by its stable code.
func (s *accountService) ResolveByCode(ctx context.Context, code string) (*domain.Account, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, code)
		}
		return nil, fmt.Errorf("failed to resolve account %s: %w", code, err)
	}
	return account, nil
}

// ListAccounts returns the full chart of accounts.
func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// CreateAccount adds a chart-of-accounts node. Used by setup and by
// per-category income/expense account creation.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.ParentCode != "" {
		if _, err := s.ResolveByCode(ctx, req.ParentCode); err != nil {
			return nil, fmt.Errorf("parent account %s: %w", req.ParentCode, err)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        req.Code,
		Name:        req.Name,
		AccountType: req.AccountType,
		ParentCode:  req.ParentCode,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, req.Code)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("code", account.Code), slog.String("type", string(account.AccountType)))
	return &account, nil
}

// DeactivateAccount marks an account inactive. Accounts referenced by journal
// lines are never deleted; deactivation only blocks future postings.
func (s *accountService) DeactivateAccount(ctx context.Context, code string, userID string) error {
	if err := s.accountRepo.SetAccountActive(ctx, code, false, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", code, err)
	}
	return nil
}
