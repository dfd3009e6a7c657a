package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/nayeemdev/retail_ledger_app/internal/core/domain"
)

// TxManager runs a function inside one database transaction. Every posting
// workflow executes all of its steps through a single TxManager call so that
// balance adjustments, journal writes and event links commit or roll back
// together.
type TxManager interface {
	WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// AccountRepository provides access to the global chart of accounts.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	SetAccountActive(ctx context.Context, code string, active bool, userID string, now time.Time) error
}

// JournalRepository persists journal entries and their lines. Writes are
// tx-scoped; the orchestrator owns the enclosing transaction.
type JournalRepository interface {
	SaveJournalInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry, lines []domain.JournalLine) error
	DeleteJournalInTx(ctx context.Context, tx pgx.Tx, journalID string) error
	FindJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error)
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)
	ListJournalsByScope(ctx context.Context, scopeID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
	ListLinesByAccount(ctx context.Context, scopeID, accountCode string, from, to time.Time) ([]domain.JournalLine, error)
}

// BalanceRepository maintains the per-(scope, channel) running balances.
// FindForUpdateInTx acquires an exclusive row lock held to tx commit;
// ApplyDeltaInTx is the sole mutator of current_balance after creation.
type BalanceRepository interface {
	CreateBalanceAccount(ctx context.Context, acct domain.BalanceAccount) error
	FindForUpdateInTx(ctx context.Context, tx pgx.Tx, scopeID string, channel domain.Channel, bankID string) (*domain.BalanceAccount, error)
	ApplyDeltaInTx(ctx context.Context, tx pgx.Tx, balanceID string, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error)
	FindCashAccount(ctx context.Context, scopeID string) (*domain.BalanceAccount, error)
	ListBankAccounts(ctx context.Context, scopeID string) ([]domain.BalanceAccount, error)
}

// EventFilter narrows event listings; zero values mean "no filter".
type EventFilter struct {
	ScopeID string
	From    time.Time
	To      time.Time
}

// IncomeRepository persists income events.
type IncomeRepository interface {
	InsertInTx(ctx context.Context, tx pgx.Tx, ev domain.IncomeEvent) error
	UpdateInTx(ctx context.Context, tx pgx.Tx, ev domain.IncomeEvent) error
	DeleteInTx(ctx context.Context, tx pgx.Tx, incomeID string) error
	SetJournalIDInTx(ctx context.Context, tx pgx.Tx, incomeID string, journalID *string) error
	FindByID(ctx context.Context, incomeID string) (*domain.IncomeEvent, error)
	List(ctx context.Context, filter EventFilter) ([]domain.IncomeEvent, error)
}

// ExpenseRepository persists expense events.
type ExpenseRepository interface {
	InsertInTx(ctx context.Context, tx pgx.Tx, ev domain.ExpenseEvent) error
	UpdateInTx(ctx context.Context, tx pgx.Tx, ev domain.ExpenseEvent) error
	DeleteInTx(ctx context.Context, tx pgx.Tx, expenseID string) error
	SetJournalIDInTx(ctx context.Context, tx pgx.Tx, expenseID string, journalID *string) error
	FindByID(ctx context.Context, expenseID string) (*domain.ExpenseEvent, error)
	List(ctx context.Context, filter EventFilter) ([]domain.ExpenseEvent, error)
}

// SalaryRepository persists salary expense events.
type SalaryRepository interface {
	InsertInTx(ctx context.Context, tx pgx.Tx, ev domain.SalaryEvent) error
	UpdateInTx(ctx context.Context, tx pgx.Tx, ev domain.SalaryEvent) error
	DeleteInTx(ctx context.Context, tx pgx.Tx, salaryID string) error
	SetJournalIDInTx(ctx context.Context, tx pgx.Tx, salaryID string, journalID *string) error
	FindByID(ctx context.Context, salaryID string) (*domain.SalaryEvent, error)
	List(ctx context.Context, filter EventFilter) ([]domain.SalaryEvent, error)
}

// PurchaseRepository persists purchase events together with their payment rows.
type PurchaseRepository interface {
	InsertInTx(ctx context.Context, tx pgx.Tx, ev domain.PurchaseEvent) error
	UpdateInTx(ctx context.Context, tx pgx.Tx, ev domain.PurchaseEvent) error
	DeleteInTx(ctx context.Context, tx pgx.Tx, purchaseID string) error
	SetJournalIDInTx(ctx context.Context, tx pgx.Tx, purchaseID string, journalID *string) error
	FindByID(ctx context.Context, purchaseID string) (*domain.PurchaseEvent, error)
	List(ctx context.Context, filter EventFilter) ([]domain.PurchaseEvent, error)
}

// SaleRepository persists sale events together with their payment rows.
type SaleRepository interface {
	InsertInTx(ctx context.Context, tx pgx.Tx, ev domain.SaleEvent) error
	UpdateInTx(ctx context.Context, tx pgx.Tx, ev domain.SaleEvent) error
	DeleteInTx(ctx context.Context, tx pgx.Tx, saleID string) error
	SetJournalIDInTx(ctx context.Context, tx pgx.Tx, saleID string, journalID *string) error
	FindByID(ctx context.Context, saleID string) (*domain.SaleEvent, error)
	List(ctx context.Context, filter EventFilter) ([]domain.SaleEvent, error)
}

// AssetRepository persists asset acquisition events.
type AssetRepository interface {
	InsertInTx(ctx context.Context, tx pgx.Tx, ev domain.AssetEvent) error
	UpdateInTx(ctx context.Context, tx pgx.Tx, ev domain.AssetEvent) error
	DeleteInTx(ctx context.Context, tx pgx.Tx, assetID string) error
	SetJournalIDInTx(ctx context.Context, tx pgx.Tx, assetID string, journalID *string) error
	FindByID(ctx context.Context, assetID string) (*domain.AssetEvent, error)
	List(ctx context.Context, filter EventFilter) ([]domain.AssetEvent, error)
}

// StockRepository persists stock value change events.
type StockRepository interface {
	InsertInTx(ctx context.Context, tx pgx.Tx, ev domain.StockAdjustEvent) error
	UpdateInTx(ctx context.Context, tx pgx.Tx, ev domain.StockAdjustEvent) error
	DeleteInTx(ctx context.Context, tx pgx.Tx, adjustmentID string) error
	SetJournalIDInTx(ctx context.Context, tx pgx.Tx, adjustmentID string, journalID *string) error
	FindByID(ctx context.Context, adjustmentID string) (*domain.StockAdjustEvent, error)
	List(ctx context.Context, filter EventFilter) ([]domain.StockAdjustEvent, error)
}

// MasterRepository provides read-mostly reference lookups.
type MasterRepository interface {
	ListBusinessUnits(ctx context.Context) ([]domain.BusinessUnit, error)
	FindBusinessUnitByID(ctx context.Context, unitID string) (*domain.BusinessUnit, error)
	ListBanks(ctx context.Context) ([]domain.Bank, error)
	FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error)
}

// ReportingRepository aggregates journal lines for report views. Empty result
// sets yield zero totals, never errors.
type ReportingRepository interface {
	GetTrialBalanceData(ctx context.Context, scopeID string, asOf time.Time) ([]domain.TrialBalanceRow, error)
	GetProfitAndLossData(ctx context.Context, scopeID string, from, to time.Time) (income []domain.AccountTotal, expenses []domain.AccountTotal, err error)
	GetBalanceSheetData(ctx context.Context, scopeID string, asOf time.Time) (assets, liabilities, equity []domain.AccountTotal, err error)
}

// RepositoryProvider bundles all repositories for service construction.
type RepositoryProvider struct {
	TxManager     TxManager
	AccountRepo   AccountRepository
	JournalRepo   JournalRepository
	BalanceRepo   BalanceRepository
	IncomeRepo    IncomeRepository
	ExpenseRepo   ExpenseRepository
	SalaryRepo    SalaryRepository
	PurchaseRepo  PurchaseRepository
	SaleRepo      SaleRepository
	AssetRepo     AssetRepository
	StockRepo     StockRepository
	MasterRepo    MasterRepository
	ReportingRepo ReportingRepository
}
