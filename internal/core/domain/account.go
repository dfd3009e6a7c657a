package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// Well-known account codes. The chart of accounts is global and keyed by code;
// these rows are seeded by migration and must exist before any posting runs.
const (
	CodeCash               = "1000"
	CodeBank               = "1010"
	CodeInventory          = "1100"
	CodeRawMaterials       = "1110"
	CodeAccountsReceivable = "1200"
	CodeFixedAssets        = "1500"
	CodeAccountsPayable    = "2000"
	CodeSalesRevenue       = "4000"
	CodeOtherIncome        = "4100"
	CodeGeneralExpense     = "5000"
	CodeSalaryExpense      = "5100"
)

// Account represents a chart-of-accounts node. Lookup is always by Code, never
// by free-text name. ParentCode is a weak back reference only; no balance
// rollup happens through the hierarchy.
type Account struct {
	AccountID   string      `json:"accountID"`
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	ParentCode  string      `json:"parentCode"` // Nullable
	IsActive    bool        `json:"isActive"`
	AuditFields
}
