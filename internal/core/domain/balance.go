package domain

import "github.com/shopspring/decimal"

// Channel is the payment medium a money-moving event settles through.
type Channel string

const (
	ChannelCash Channel = "CASH"
	ChannelBank Channel = "BANK"
)

// AdjustDirection indicates whether an adjustment increases or decreases a
// running balance.
type AdjustDirection string

const (
	AdjustCredit AdjustDirection = "CREDIT" // increase
	AdjustDebit  AdjustDirection = "DEBIT"  // decrease
)

// BalanceAccount is the running-balance snapshot for one (scope, channel)
// pair. Cash rows are keyed by scope alone; bank rows additionally carry the
// bank identity. CurrentBalance starts equal to OpeningBalance and is only
// ever moved by the balance repository's Adjust path.
type BalanceAccount struct {
	BalanceID      string          `json:"balanceID"`
	ScopeID        string          `json:"scopeID"`
	Channel        Channel         `json:"channel"`
	BankID         string          `json:"bankID"` // Empty for CASH
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	AuditFields
}

// BalanceMove is one cash/bank movement a posting workflow must apply.
type BalanceMove struct {
	Channel   Channel
	BankID    string
	Amount    decimal.Decimal
	Direction AdjustDirection
}

// Reversed returns the move with its direction flipped, used when undoing a
// previously applied event effect.
func (m BalanceMove) Reversed() BalanceMove {
	rev := m
	if m.Direction == AdjustCredit {
		rev.Direction = AdjustDebit
	} else {
		rev.Direction = AdjustCredit
	}
	return rev
}
