package domain

import "github.com/shopspring/decimal"

// TrialBalanceRow represents one account's debit/credit totals as of a date.
type TrialBalanceRow struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
}

// AccountTotal is an account's net posted amount over a reporting period.
type AccountTotal struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	NetAmount   decimal.Decimal `json:"netAmount"`
}

// PAndLReport is the profit and loss view over a period.
type PAndLReport struct {
	Income       []AccountTotal  `json:"income"`
	Expenses     []AccountTotal  `json:"expenses"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	NetProfit    decimal.Decimal `json:"netProfit"`
}

// BalanceSheetReport is the assets vs liabilities+equity view as of a date.
// Balanced is a diagnostic flag: a reconciliation mismatch is surfaced here
// rather than raised as an error.
type BalanceSheetReport struct {
	Assets           []AccountTotal  `json:"assets"`
	Liabilities      []AccountTotal  `json:"liabilities"`
	Equity           []AccountTotal  `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	Balanced         bool            `json:"balanced"`
}

// BalanceSnapshot is the quick cash/bank view for one business unit.
type BalanceSnapshot struct {
	Cash  *BalanceAccount  `json:"cash,omitempty"`
	Banks []BalanceAccount `json:"banks"`
}
