package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
)

func debitLine(code string, amount int64) domain.JournalLine {
	return domain.JournalLine{AccountCode: code, Debit: decimal.NewFromInt(amount)}
}

func creditLine(code string, amount int64) domain.JournalLine {
	return domain.JournalLine{AccountCode: code, Credit: decimal.NewFromInt(amount)}
}

func TestSumDebitsAndCredits(t *testing.T) {
	lines := []domain.JournalLine{
		debitLine("1000", 300),
		debitLine("1200", 700),
		creditLine("4000", 1000),
	}

	assert.True(t, SumDebits(lines).Equal(decimal.NewFromInt(1000)), "Debits should sum to 1000")
	assert.True(t, SumCredits(lines).Equal(decimal.NewFromInt(1000)), "Credits should sum to 1000")

	assert.True(t, SumDebits(nil).IsZero(), "Empty slice should sum to zero")
	assert.True(t, SumCredits(nil).IsZero(), "Empty slice should sum to zero")
}

func TestValidateLine(t *testing.T) {
	assert.NoError(t, ValidateLine(debitLine("1000", 50)))
	assert.NoError(t, ValidateLine(creditLine("4000", 50)))

	// Negative amount
	err := ValidateLine(domain.JournalLine{AccountCode: "1000", Debit: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
	assert.Contains(t, err.Error(), "1000", "Error should name the account")

	// Both sides positive
	err = ValidateLine(domain.JournalLine{
		AccountCode: "1000",
		Debit:       decimal.NewFromInt(10),
		Credit:      decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrDebitCreditExclusive)

	// Neither side positive
	err = ValidateLine(domain.JournalLine{AccountCode: "1000"})
	assert.ErrorIs(t, err, domain.ErrDebitCreditExclusive)
}

func TestValidateEntryBalance(t *testing.T) {
	// Balanced two-line entry
	assert.NoError(t, ValidateEntryBalance([]domain.JournalLine{
		debitLine("1000", 100),
		creditLine("4000", 100),
	}))

	// Balanced split entry
	assert.NoError(t, ValidateEntryBalance([]domain.JournalLine{
		debitLine("1100", 900),
		creditLine("1010", 300),
		creditLine("2000", 600),
	}))

	// Fewer than two lines
	err := ValidateEntryBalance([]domain.JournalLine{debitLine("1000", 100)})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least two lines")

	// Unbalanced entry
	err = ValidateEntryBalance([]domain.JournalLine{
		debitLine("1000", 100),
		creditLine("4000", 99),
	})
	assert.ErrorIs(t, err, domain.ErrUnbalancedEntry)

	// One bad line fails the whole entry
	err = ValidateEntryBalance([]domain.JournalLine{
		debitLine("1000", 100),
		{AccountCode: "4000", Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(100)},
	})
	assert.ErrorIs(t, err, domain.ErrDebitCreditExclusive)
}

func TestSignedDelta(t *testing.T) {
	credit := domain.BalanceMove{
		Channel:   domain.ChannelCash,
		Amount:    decimal.NewFromInt(250),
		Direction: domain.AdjustCredit,
	}
	assert.True(t, SignedDelta(credit).Equal(decimal.NewFromInt(250)), "Credit should increase the balance")

	debit := domain.BalanceMove{
		Channel:   domain.ChannelCash,
		Amount:    decimal.NewFromInt(250),
		Direction: domain.AdjustDebit,
	}
	assert.True(t, SignedDelta(debit).Equal(decimal.NewFromInt(-250)), "Debit should decrease the balance")
}
