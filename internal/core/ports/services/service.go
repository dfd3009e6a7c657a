package services

// ServiceContainer holds all service facades for handler registration.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Journal   JournalSvcFacade
	Balance   BalanceSvcFacade
	Income    IncomeSvcFacade
	Expense   ExpenseSvcFacade
	Salary    SalarySvcFacade
	Purchase  PurchaseSvcFacade
	Sale      SaleSvcFacade
	Asset     AssetSvcFacade
	Stock     StockSvcFacade
	Master    MasterSvcFacade
	Reporting ReportingSvcFacade
}
