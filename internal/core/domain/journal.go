package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents a single, balanced financial event composed of
// multiple debit/credit lines. Lines are owned exclusively by the entry and
// are removed with it.
type JournalEntry struct {
	JournalID string    `json:"journalID"` // Primary Key (UUID)
	ScopeID   string    `json:"scopeID"`   // Owning business unit
	Date      time.Time `json:"date"`      // Date the event occurred
	Reference string    `json:"reference"` // Human label, e.g. "INCOME-42"
	Narration string    `json:"narration"` // Nullable user description
	AuditFields
	Lines []JournalLine `json:"lines,omitempty"` // Often loaded separately
}

// JournalLine is one posting within a journal entry: it references one account
// and carries either a debit or a credit amount, never both.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	JournalID   string          `json:"journalID"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	AuditFields
}

// Validate checks the per-line invariant: both amounts non-negative and
// exactly one of debit/credit positive.
func (l JournalLine) Validate() error {
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return ErrNegativeAmount
	}
	if l.Debit.IsPositive() == l.Credit.IsPositive() {
		return ErrDebitCreditExclusive
	}
	return nil
}
