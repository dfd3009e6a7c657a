package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/nayeemdev/retail_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository over one shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		TxManager:     newPgxTxManager(dbPool),
		AccountRepo:   newPgxAccountRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		BalanceRepo:   newPgxBalanceRepository(dbPool),
		IncomeRepo:    newPgxIncomeRepository(dbPool),
		ExpenseRepo:   newPgxExpenseRepository(dbPool),
		SalaryRepo:    newPgxSalaryRepository(dbPool),
		PurchaseRepo:  newPgxPurchaseRepository(dbPool),
		SaleRepo:      newPgxSaleRepository(dbPool),
		AssetRepo:     newPgxAssetRepository(dbPool),
		StockRepo:     newPgxStockRepository(dbPool),
		MasterRepo:    newPgxMasterRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
	}
}
