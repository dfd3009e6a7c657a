package domain

import "errors"

// Invariant errors raised by domain-level validation. Services wrap these with
// apperrors.ErrValidation before surfacing them.
var (
	// ErrNegativeAmount indicates a debit or credit amount below zero.
	ErrNegativeAmount = errors.New("debit and credit amounts must not be negative")

	// ErrDebitCreditExclusive indicates a line where debit and credit are both
	// positive or both zero; exactly one side must carry the amount.
	ErrDebitCreditExclusive = errors.New("exactly one of debit or credit must be positive")

	// ErrUnbalancedEntry indicates that the sum of debits does not equal the
	// sum of credits across the lines of a journal entry.
	ErrUnbalancedEntry = errors.New("journal entry debits and credits do not balance")
)
