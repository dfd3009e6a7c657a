package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
	"github.com/nayeemdev/retail_ledger_app/internal/dto"
)

// BalanceSvcFacade is the balance ledger. AdjustInTx is the single mutator of
// running balances and must be called inside the orchestrator's transaction;
// the row lock it takes is held until that transaction commits.
type BalanceSvcFacade interface {
	OpenBalanceAccount(ctx context.Context, req dto.OpenBalanceAccountRequest, creatorUserID string) (*domain.BalanceAccount, error)
	AdjustInTx(ctx context.Context, tx pgx.Tx, scopeID string, move domain.BalanceMove, userID string) (decimal.Decimal, error)
	Snapshot(ctx context.Context, scopeID string) (*domain.BalanceSnapshot, error)
}
