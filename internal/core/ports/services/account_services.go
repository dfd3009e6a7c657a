package services

import (
	"context"

	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
	"github.com/nayeemdev/retail_ledger_app/internal/dto"
)

// AccountSvcFacade is the account directory: a read-mostly resolver over the
// global chart of accounts, plus setup-time mutations.
type AccountSvcFacade interface {
	ResolveByCode(ctx context.Context, code string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, code string, userID string) error
}
