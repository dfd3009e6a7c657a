package services

import (
	portsrepo "github.com/nayeemdev/retail_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/nayeemdev/retail_ledger_app/internal/core/ports/services"
)

// NewServiceContainer wires every service from the repository provider. The
// posting orchestrator is shared by all source-event services so the posting
// recipes live in exactly one place.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	journalSvc := NewJournalService(repos.JournalRepo, repos.AccountRepo)
	balanceSvc := NewBalanceService(repos.BalanceRepo)
	orch := NewPostingService(journalSvc, balanceSvc)

	return &portssvc.ServiceContainer{
		Account:   NewAccountService(repos.AccountRepo),
		Journal:   journalSvc,
		Balance:   balanceSvc,
		Income:    NewIncomeService(repos.TxManager, repos.IncomeRepo, orch),
		Expense:   NewExpenseService(repos.TxManager, repos.ExpenseRepo, orch),
		Salary:    NewSalaryService(repos.TxManager, repos.SalaryRepo, orch),
		Purchase:  NewPurchaseService(repos.TxManager, repos.PurchaseRepo, orch),
		Sale:      NewSaleService(repos.TxManager, repos.SaleRepo, orch),
		Asset:     NewAssetService(repos.TxManager, repos.AssetRepo, orch),
		Stock:     NewStockService(repos.TxManager, repos.StockRepo, orch),
		Master:    NewMasterService(repos.MasterRepo),
		Reporting: NewReportingService(repos.ReportingRepo),
	}
}
