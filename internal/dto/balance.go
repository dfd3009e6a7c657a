package dto

import (
	"github.com/shopspring/decimal"

	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
)

// OpenBalanceAccountRequest defines the input for opening a cash or bank
// balance account for a business unit.
type OpenBalanceAccountRequest struct {
	ScopeID        string          `json:"scopeID" binding:"required"`
	Channel        domain.Channel  `json:"channel" binding:"required,oneof=CASH BANK"`
	BankID         string          `json:"bankID"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// BalanceAccountResponse defines the data returned for a balance account.
type BalanceAccountResponse struct {
	ScopeID        string          `json:"scopeID"`
	Channel        string          `json:"channel"`
	BankID         string          `json:"bankID,omitempty"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}

// ToBalanceAccountResponse converts a domain.BalanceAccount.
func ToBalanceAccountResponse(b *domain.BalanceAccount) BalanceAccountResponse {
	return BalanceAccountResponse{
		ScopeID:        b.ScopeID,
		Channel:        string(b.Channel),
		BankID:         b.BankID,
		OpeningBalance: b.OpeningBalance,
		CurrentBalance: b.CurrentBalance,
	}
}
