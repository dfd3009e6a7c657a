package accounting

import (
	"fmt"

	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValidateLine checks the per-line invariant for a journal line: amounts are
// non-negative and exactly one of debit/credit is positive.
// This is used in both services and repositories to keep posting logic consistent.
func ValidateLine(line domain.JournalLine) error {
	if err := line.Validate(); err != nil {
		return fmt.Errorf("line for account %s: %w", line.AccountCode, err)
	}
	return nil
}

// SumDebits returns the total debit amount across lines, which for a balanced
// entry equals the economic value of the journal.
func SumDebits(lines []domain.JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Debit)
	}
	return total
}

// SumCredits returns the total credit amount across lines.
func SumCredits(lines []domain.JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Credit)
	}
	return total
}

// ValidateEntryBalance checks the double-entry invariant for a set of lines:
// at least two lines, each line valid, and sum(debit) == sum(credit).
func ValidateEntryBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("journal entry must have at least two lines")
	}

	for _, line := range lines {
		if err := ValidateLine(line); err != nil {
			return err
		}
	}

	debits := SumDebits(lines)
	credits := SumCredits(lines)
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: debits sum is %s and credits sum is %s",
			domain.ErrUnbalancedEntry, debits.String(), credits.String())
	}

	return nil
}

// SignedDelta converts a balance move into the signed amount applied to a
// running balance: CREDIT increases, DEBIT decreases.
func SignedDelta(move domain.BalanceMove) decimal.Decimal {
	if move.Direction == domain.AdjustCredit {
		return move.Amount
	}
	return move.Amount.Neg()
}
