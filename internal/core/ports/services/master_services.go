package services

import (
	"context"

	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
)

// MasterSvcFacade serves the reference lookups handlers need to resolve
// scopes and bank identities.
type MasterSvcFacade interface {
	ListBusinessUnits(ctx context.Context) ([]domain.BusinessUnit, error)
	GetBusinessUnit(ctx context.Context, unitID string) (*domain.BusinessUnit, error)
	ListBanks(ctx context.Context) ([]domain.Bank, error)
	GetBank(ctx context.Context, bankID string) (*domain.Bank, error)
}
